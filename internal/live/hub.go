package live

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"masjid-admin/internal/metrics"
)

// EventsChannel is the Redis pub/sub channel shared by console replicas.
const EventsChannel = "masjid-admin:events"

const writeWait = 5 * time.Second

// Event tells browsers that a view's data changed on the backend.
type Event struct {
	Type string    `json:"type"`
	View string    `json:"view"`
	At   time.Time `json:"at"`
}

// Invalidate builds the event sent after a successful write.
func Invalidate(view string) Event {
	return Event{Type: "invalidate", View: view, At: time.Now().UTC()}
}

// Hub fans invalidation events out to connected browsers. With Redis it
// also relays events between console replicas.
type Hub struct {
	rdb      *redis.Client
	upgrader websocket.Upgrader

	clients    map[*websocket.Conn]bool
	clientsMux sync.Mutex
	broadcast  chan Event
}

func NewHub(rdb *redis.Client, allowedOrigins []string) *Hub {
	return &Hub{
		rdb: rdb,
		upgrader: websocket.Upgrader{
			CheckOrigin: originChecker(allowedOrigins),
		},
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan Event, 16),
	}
}

// originChecker accepts same-host requests and the configured origins.
func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		set[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || set["*"] || set[origin] {
			return true
		}
		u, err := url.Parse(origin)
		return err == nil && u.Host == r.Host
	}
}

// Run delivers events until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	if h.rdb != nil {
		go h.subscribe(ctx)
	}
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case e := <-h.broadcast:
			h.send(e)
		}
	}
}

// Publish queues e for every browser, across replicas when Redis is set.
func (h *Hub) Publish(ctx context.Context, e Event) {
	if h.rdb != nil {
		payload, err := json.Marshal(e)
		if err == nil {
			if err = h.rdb.Publish(ctx, EventsChannel, payload).Err(); err == nil {
				return
			}
		}
		log.Warn().Err(err).Msg("[Live] redis publish failed, delivering locally")
	}
	h.enqueue(e)
}

func (h *Hub) enqueue(e Event) {
	select {
	case h.broadcast <- e:
	default:
		log.Warn().Str("view", e.View).Msg("[Live] event queue full, dropping event")
	}
}

func (h *Hub) subscribe(ctx context.Context) {
	sub := h.rdb.Subscribe(ctx, EventsChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var e Event
			if err := json.Unmarshal([]byte(msg.Payload), &e); err != nil {
				log.Warn().Err(err).Msg("[Live] malformed event on channel")
				continue
			}
			h.enqueue(e)
		}
	}
}

// ServeWS upgrades the request and keeps the socket registered until the
// browser goes away. Browsers only listen; inbound frames are discarded.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("[Live] websocket upgrade error")
		return
	}
	defer conn.Close()

	h.clientsMux.Lock()
	h.clients[conn] = true
	metrics.LiveClients.Set(float64(len(h.clients)))
	h.clientsMux.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.remove(conn)
			return
		}
	}
}

func (h *Hub) ClientCount() int {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()
	return len(h.clients)
}

func (h *Hub) send(e Event) {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()
	for client := range h.clients {
		client.SetWriteDeadline(time.Now().Add(writeWait))
		if err := client.WriteJSON(e); err != nil {
			client.Close()
			delete(h.clients, client)
		}
	}
	metrics.LiveClients.Set(float64(len(h.clients)))
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.clientsMux.Lock()
	delete(h.clients, conn)
	metrics.LiveClients.Set(float64(len(h.clients)))
	h.clientsMux.Unlock()
}

func (h *Hub) closeAll() {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()
	for client := range h.clients {
		client.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		client.Close()
		delete(h.clients, client)
	}
	metrics.LiveClients.Set(0)
}
