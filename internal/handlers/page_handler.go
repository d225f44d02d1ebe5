package handlers

import (
	"context"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"masjid-admin/internal/cache"
	"masjid-admin/internal/live"
	"masjid-admin/internal/models"
	"masjid-admin/internal/services"
	"masjid-admin/internal/timeutil"
	"masjid-admin/templates"
	"masjid-admin/pkg/utils"
)

const duplicateSubmissionAlert = "This form was already submitted."

// EventPublisher broadcasts invalidation events to open browsers.
type EventPublisher interface {
	Publish(ctx context.Context, e live.Event)
}

type PageHandler struct {
	templates *template.Template
	api       services.Backend
	guard     cache.SubmissionGuard
	events    EventPublisher
	orgName   string
	clock     timeutil.Clock
}

func NewPageHandler(api services.Backend, guard cache.SubmissionGuard, events EventPublisher, orgName string, clock timeutil.Clock) *PageHandler {
	funcs := template.FuncMap{
		"upper":      strings.ToUpper,
		"proofLabel": proofLabel,
		"date": func(ts models.Timestamp) string {
			return timeutil.DisplayDate(ts.Time)
		},
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
	}
	// Parse all templates from embedded filesystem
	tmpl := template.Must(template.New("console").Funcs(funcs).ParseFS(templates.FS, "*.html"))

	if clock == nil {
		clock = time.Now
	}
	return &PageHandler{
		templates: tmpl,
		api:       api,
		guard:     guard,
		events:    events,
		orgName:   orgName,
		clock:     clock,
	}
}

// views starts a navigation; each request activates a fresh view.
func (h *PageHandler) views() *services.ViewRouter {
	return services.NewViewRouter(h.api, h.clock)
}

func (h *PageHandler) newPage(r *http.Request, active services.Tab) *pageData {
	return &pageData{
		OrgName:           h.orgName,
		Tabs:              services.Tabs,
		Active:            active,
		CSRFField:         csrfField(r),
		FormToken:         uuid.NewString(),
		IDProofTypes:      models.IDProofTypes,
		PaymentTypes:      models.PaymentTypes,
		PaymentTypeLabels: models.PaymentTypeLabels,
	}
}

// DashboardPage serves the landing view.
func (h *PageHandler) DashboardPage(w http.ResponseWriter, r *http.Request) {
	nav := h.views()
	view := nav.Dashboard()
	view.Load(r.Context())

	if wantsJSON(r) {
		utils.JSON(w, http.StatusOK, view.State())
		return
	}

	page := h.newPage(r, nav.Active())
	page.Dashboard = view.State()
	h.render(w, http.StatusOK, "dashboard.html", page)
}

// MemberStatementPage shows one member with their payments.
func (h *PageHandler) MemberStatementPage(w http.ResponseWriter, r *http.Request) {
	nav := h.views()
	view := nav.MemberStatement(mux.Vars(r)["id"])
	view.Load(r.Context())
	state := view.State()

	status := http.StatusOK
	if state.NotFound {
		status = http.StatusNotFound
	}

	if wantsJSON(r) {
		utils.JSON(w, status, state)
		return
	}

	page := h.newPage(r, nav.Active())
	page.Statement = state
	h.render(w, status, "member_statement.html", page)
}

// claim takes the submission token of a post. ok is false for a token that
// was already used; release frees it again after a failed submission.
func (h *PageHandler) claim(ctx context.Context, r *http.Request, values map[string]string) (release func(), ok bool) {
	noop := func() {}
	token := values["form_token"]
	if token == "" {
		token = r.Header.Get("X-Submission-Token")
	}
	if token == "" || h.guard == nil {
		return noop, true
	}

	claimed, err := h.guard.Claim(ctx, token)
	if err != nil {
		log.Warn().Err(err).Msg("submission guard unavailable, accepting post")
		return noop, true
	}
	if !claimed {
		return noop, false
	}
	return func() {
		if err := h.guard.Release(context.WithoutCancel(ctx), token); err != nil {
			log.Warn().Err(err).Msg("failed to release submission token")
		}
	}, true
}

func (h *PageHandler) publish(ctx context.Context, tabs ...services.Tab) {
	if h.events == nil {
		return
	}
	for _, tab := range tabs {
		h.events.Publish(ctx, live.Invalidate(string(tab)))
	}
}

func duplicateNotice() *services.Notice {
	return &services.Notice{Kind: services.NoticeAlert, Text: duplicateSubmissionAlert}
}
