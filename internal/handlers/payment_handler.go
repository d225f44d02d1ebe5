package handlers

import (
	"net/http"

	"masjid-admin/internal/services"
	"masjid-admin/pkg/utils"
)

// PaymentsPage lists payments. ?form=open shows the record-payment modal.
func (h *PageHandler) PaymentsPage(w http.ResponseWriter, r *http.Request) {
	nav := h.views()
	view := nav.Payments()
	view.Load(r.Context())

	if wantsJSON(r) {
		utils.JSON(w, http.StatusOK, view.State())
		return
	}

	form := view.NewForm()
	if r.URL.Query().Get("form") == "open" {
		form.Open()
	}
	h.renderPayments(w, r, http.StatusOK, view, form, nil, nil)
}

// CreatePayment submits the record-payment form.
func (h *PageHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	values, err := formValues(w, r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	nav := h.views()
	view := nav.Payments()
	form := view.NewForm()
	form.Open()
	applyFields(form, values)

	release, ok := h.claim(r.Context(), r, values)
	if !ok {
		if wantsJSON(r) {
			utils.RespondError(w, http.StatusConflict, duplicateSubmissionAlert)
			return
		}
		view.Load(r.Context())
		form.Close()
		h.renderPayments(w, r, http.StatusConflict, view, form, duplicateNotice(), nil)
		return
	}

	receipt, err := form.Submit(r.Context())
	if err != nil {
		release()
		status := failureStatus(err)
		if wantsJSON(r) {
			utils.JSON(w, status, failureBody(err))
			return
		}
		view.Load(r.Context())
		h.renderPayments(w, r, status, view, form, services.NoticeOf(err), fieldErrors(err))
		return
	}

	h.publish(r.Context(), services.TabPayments, services.TabDashboard)

	if wantsJSON(r) {
		utils.JSON(w, http.StatusCreated, receipt)
		return
	}
	notice := receipt.Notice
	h.renderPayments(w, r, http.StatusOK, view, form, &notice, nil)
}

func (h *PageHandler) renderPayments(w http.ResponseWriter, r *http.Request, status int, view *services.PaymentsView, form *services.PaymentForm, notice *services.Notice, errs map[string]string) {
	page := h.newPage(r, services.TabPayments)
	page.Payments = view.State()
	page.PaymentDraft = form.Draft()
	page.FormOpen = form.IsOpen()
	page.Notice = notice
	page.Errors = errs
	h.render(w, status, "payments.html", page)
}
