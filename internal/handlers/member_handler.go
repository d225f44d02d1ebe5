package handlers

import (
	"errors"
	"net/http"

	"masjid-admin/internal/services"
	"masjid-admin/pkg/utils"
)

// MembersPage lists members. ?form=open shows the add-member modal.
func (h *PageHandler) MembersPage(w http.ResponseWriter, r *http.Request) {
	nav := h.views()
	view := nav.Members()
	view.Load(r.Context())

	if wantsJSON(r) {
		utils.JSON(w, http.StatusOK, view.State())
		return
	}

	form := view.NewForm()
	if r.URL.Query().Get("form") == "open" {
		form.Open()
	}
	h.renderMembers(w, r, http.StatusOK, view, form, nil, nil)
}

// CreateMember submits the add-member form.
func (h *PageHandler) CreateMember(w http.ResponseWriter, r *http.Request) {
	values, err := formValues(w, r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	nav := h.views()
	view := nav.Members()
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
		h.renderMembers(w, r, http.StatusConflict, view, form, duplicateNotice(), nil)
		return
	}

	member, err := form.Submit(r.Context())
	if err != nil {
		release()
		status := failureStatus(err)
		if wantsJSON(r) {
			utils.JSON(w, status, failureBody(err))
			return
		}
		view.Load(r.Context())
		h.renderMembers(w, r, status, view, form, services.NoticeOf(err), fieldErrors(err))
		return
	}

	h.publish(r.Context(), services.TabMembers, services.TabDashboard)

	if wantsJSON(r) {
		utils.JSON(w, http.StatusCreated, member)
		return
	}
	h.renderMembers(w, r, http.StatusOK, view, form, nil, nil)
}

func (h *PageHandler) renderMembers(w http.ResponseWriter, r *http.Request, status int, view *services.MembersView, form *services.MemberForm, notice *services.Notice, errs map[string]string) {
	page := h.newPage(r, services.TabMembers)
	page.Members = view.State()
	page.MemberDraft = form.Draft()
	page.FormOpen = form.IsOpen()
	page.Notice = notice
	page.Errors = errs
	h.render(w, status, "members.html", page)
}

func (h *PageHandler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusBadRequest
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		status = http.StatusRequestEntityTooLarge
	}
	if wantsJSON(r) {
		utils.RespondError(w, status, err.Error())
		return
	}
	http.Error(w, err.Error(), status)
}
