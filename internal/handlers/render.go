package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/csrf"
	"github.com/rs/zerolog/log"

	"masjid-admin/internal/backend"
	"masjid-admin/internal/models"
	"masjid-admin/internal/services"
)

// pageData is what every console template renders from.
type pageData struct {
	OrgName   string
	Tabs      []services.Tab
	Active    services.Tab
	Notice    *services.Notice
	CSRFField template.HTML
	FormToken string
	FormOpen  bool
	Errors    map[string]string

	Dashboard    services.DashboardState
	Members      services.MembersState
	MemberDraft  models.CreateMemberRequest
	Payments     services.PaymentsState
	PaymentDraft services.PaymentDraft
	Statement    services.MemberStatementState

	IDProofTypes      []string
	PaymentTypes      []string
	PaymentTypeLabels map[string]string
}

type errorResponse struct {
	Error  string            `json:"error"`
	Detail string            `json:"detail,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

// wantsJSON mirrors content negotiation for API callers: JSON bodies or an
// Accept header asking for JSON without HTML.
func wantsJSON(r *http.Request) bool {
	if isJSONBody(r) {
		return true
	}
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}

func isJSONBody(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}

func (h *PageHandler) render(w http.ResponseWriter, status int, name string, data *pageData) {
	var buf strings.Builder
	if err := h.templates.ExecuteTemplate(&buf, name, data); err != nil {
		log.Error().Err(err).Str("template", name).Msg("template render failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprint(w, buf.String())
}

// maxFormBytes caps console posts; both forms are a handful of short fields.
const maxFormBytes = 64 << 10

// formValues reads a urlencoded form or a flat JSON object into strings.
func formValues(w http.ResponseWriter, r *http.Request) (map[string]string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	values := make(map[string]string)

	if isJSONBody(r) {
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		var raw map[string]any
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("invalid JSON body: %w", err)
		}
		for k, v := range raw {
			switch t := v.(type) {
			case nil:
				values[k] = ""
			case string:
				values[k] = t
			case bool:
				values[k] = strconv.FormatBool(t)
			case json.Number:
				values[k] = t.String()
			default:
				return nil, fmt.Errorf("field %s must be a string, number or boolean", k)
			}
		}
		return values, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("invalid form body: %w", err)
	}
	for k := range r.PostForm {
		values[k] = r.PostForm.Get(k)
	}
	return values, nil
}

// Keys present in posts that are not draft fields.
var reservedFields = map[string]bool{"form_token": true, "csrf_token": true}

type fieldSetter interface {
	Set(field, value string) error
}

func applyFields(form fieldSetter, values map[string]string) {
	for k, v := range values {
		if reservedFields[k] {
			continue
		}
		if err := form.Set(k, v); errors.Is(err, services.ErrUnknownField) {
			log.Debug().Str("field", k).Msg("ignoring unknown form field")
		}
	}
}

// failureStatus maps a failed submission to the response status.
func failureStatus(err error) int {
	var verr *services.ValidationError
	var apiErr *backend.APIError
	switch {
	case errors.As(err, &verr), errors.Is(err, services.ErrMissingFields):
		return http.StatusUnprocessableEntity
	case errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500:
		return apiErr.Status
	default:
		return http.StatusBadGateway
	}
}

func failureBody(err error) errorResponse {
	body := errorResponse{Error: err.Error()}
	if n := services.NoticeOf(err); n != nil {
		body.Error = n.Text
	}
	if detail, ok := backend.DetailOf(err); ok {
		body.Detail = detail
	}
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		body.Fields = verr.Fields
	}
	return body
}

func fieldErrors(err error) map[string]string {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return verr.Fields
	}
	return nil
}

func csrfField(r *http.Request) template.HTML {
	return csrf.TemplateField(r)
}

var proofLabels = map[string]string{
	models.IDProofAadhar: "Aadhar Card",
	models.IDProofPan:    "PAN Card",
}

func proofLabel(proofType string) string {
	if label, ok := proofLabels[proofType]; ok {
		return label
	}
	return proofType
}
