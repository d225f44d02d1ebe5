package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"masjid-admin/internal/handlers"
	"masjid-admin/static"
)

// LiveEndpoint upgrades browsers to the invalidation stream.
type LiveEndpoint interface {
	ServeWS(w http.ResponseWriter, r *http.Request)
}

func NewRouter(
	pageHandler *handlers.PageHandler,
	reportHandler *handlers.ReportHandler,
	healthHandler *handlers.HealthHandler,
	live LiveEndpoint,
) *mux.Router {
	r := mux.NewRouter()

	// Serve static files
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(static.FS))))

	// Console views
	r.HandleFunc("/", pageHandler.DashboardPage).Methods("GET")
	r.HandleFunc("/dashboard", pageHandler.DashboardPage).Methods("GET")
	r.HandleFunc("/members", pageHandler.MembersPage).Methods("GET")
	r.HandleFunc("/members", pageHandler.CreateMember).Methods("POST")
	r.HandleFunc("/members/{id}", pageHandler.MemberStatementPage).Methods("GET")
	r.HandleFunc("/payments", pageHandler.PaymentsPage).Methods("GET")
	r.HandleFunc("/payments", pageHandler.CreatePayment).Methods("POST")

	// Downloads
	r.HandleFunc("/payments/receipt/{receipt_number}.pdf", reportHandler.ReceiptPDF).Methods("GET")
	r.HandleFunc("/payments/export.xlsx", reportHandler.LedgerXLSX).Methods("GET")

	if live != nil {
		r.HandleFunc("/ws", live.ServeWS).Methods("GET")
	}

	// Health check endpoints (no auth required)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")

	// Prometheus metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	return r
}
