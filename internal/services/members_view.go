package services

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"masjid-admin/internal/models"
)

type MembersState struct {
	Loading bool            `json:"loading"`
	Failed  bool            `json:"failed"`
	Members []models.Member `json:"members"`
}

// MembersView is the member roster. It owns the member creation form.
type MembersView struct {
	api Backend

	mu    sync.RWMutex
	gen   uint64
	state MembersState
}

func NewMembersView(api Backend) *MembersView {
	return &MembersView{api: api, state: MembersState{Loading: true, Members: []models.Member{}}}
}

func (v *MembersView) Tab() Tab { return TabMembers }

func (v *MembersView) State() MembersState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

func (v *MembersView) Load(ctx context.Context) error {
	v.mu.Lock()
	v.gen++
	gen := v.gen
	v.state = MembersState{Loading: true, Members: []models.Member{}}
	v.mu.Unlock()

	members, err := v.api.ListMembers(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.gen {
		return err
	}
	if err != nil {
		log.Error().Err(err).Str("view", "members").Msg("Error fetching members")
		v.state = MembersState{Failed: true, Members: []models.Member{}}
		return err
	}
	v.state = MembersState{Members: members}
	return nil
}

// Reload re-fetches the roster; called by the form after a member is created.
func (v *MembersView) Reload(ctx context.Context) error { return v.Load(ctx) }

func (v *MembersView) NewForm() *MemberForm {
	return NewMemberForm(v.api, v)
}
