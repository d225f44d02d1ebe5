package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"masjid-admin/internal/metrics"
	"masjid-admin/internal/models"
)

const memberRejectedAlert = "Error adding member"

// DefaultMemberDraft is a blank member: Aadhar proof, not on the committee.
func DefaultMemberDraft() models.CreateMemberRequest {
	return models.CreateMemberRequest{IDProofType: models.IDProofAadhar}
}

// MemberForm holds the member creation draft between edits.
type MemberForm struct {
	api   Backend
	owner Reloader

	mu    sync.Mutex
	draft models.CreateMemberRequest
	open  bool

	// submitting guards one controller. Across HTTP requests each post builds
	// a fresh form, so the one-time form token is what stops replays.
	submitting atomic.Bool
}

func NewMemberForm(api Backend, owner Reloader) *MemberForm {
	return &MemberForm{api: api, owner: owner, draft: DefaultMemberDraft()}
}

func (f *MemberForm) Open() {
	f.mu.Lock()
	f.open = true
	f.mu.Unlock()
}

// Close hides the form. The draft is kept for the next Open.
func (f *MemberForm) Close() {
	f.mu.Lock()
	f.open = false
	f.mu.Unlock()
}

func (f *MemberForm) IsOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

func (f *MemberForm) Draft() models.CreateMemberRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Set updates one draft field by its wire name.
func (f *MemberForm) Set(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch field {
	case "name":
		f.draft.Name = value
	case "phone":
		f.draft.Phone = value
	case "email":
		f.draft.Email = value
	case "address":
		f.draft.Address = value
	case "id_proof_type":
		f.draft.IDProofType = value
	case "id_proof_number":
		f.draft.IDProofNumber = value
	case "committee_position":
		f.draft.CommitteePosition = value
	case "is_committee_member":
		f.draft.IsCommitteeMember = parseCheckbox(value)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return nil
}

// SetCommitteeMember toggles the committee flag. The position text is left
// as typed either way.
func (f *MemberForm) SetCommitteeMember(on bool) {
	f.mu.Lock()
	f.draft.IsCommitteeMember = on
	f.mu.Unlock()
}

// ShowsPositionField reports whether the committee position input is visible.
func (f *MemberForm) ShowsPositionField() bool {
	return f.Draft().IsCommitteeMember
}

func (f *MemberForm) Validate() error {
	if verr := validateDraft(f.Draft()); verr != nil {
		return verr
	}
	return nil
}

// Submit sends the draft. On success the form closes, the draft resets and
// the owning view reloads once. On rejection the draft and form stay as they
// were and the returned error carries the alert.
func (f *MemberForm) Submit(ctx context.Context) (*models.Member, error) {
	if !f.submitting.CompareAndSwap(false, true) {
		return nil, ErrSubmitInFlight
	}
	defer f.submitting.Store(false)

	if err := f.Validate(); err != nil {
		metrics.FormSubmissionsTotal.WithLabelValues("member", "invalid").Inc()
		return nil, err
	}

	draft := f.Draft()
	member, err := f.api.CreateMember(ctx, draft)
	if err != nil {
		metrics.FormSubmissionsTotal.WithLabelValues("member", "rejected").Inc()
		log.Error().Err(err).Str("form", "member").Msg("Error adding member")
		return nil, &SubmitError{Notice: Notice{Kind: NoticeAlert, Text: memberRejectedAlert}, Err: err}
	}
	metrics.FormSubmissionsTotal.WithLabelValues("member", "created").Inc()

	f.mu.Lock()
	f.open = false
	f.draft = DefaultMemberDraft()
	f.mu.Unlock()

	if f.owner != nil {
		if err := f.owner.Reload(ctx); err != nil {
			log.Warn().Err(err).Str("form", "member").Msg("reload after submit failed")
		}
	}
	return member, nil
}

func parseCheckbox(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on", "true", "1", "yes":
		return true
	}
	b, _ := strconv.ParseBool(value)
	return b
}
