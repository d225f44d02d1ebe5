package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"masjid-admin/internal/backend"
	"masjid-admin/internal/models"
)

type MemberStatementState struct {
	Loading  bool             `json:"loading"`
	Failed   bool             `json:"failed"`
	NotFound bool             `json:"not_found"`
	Member   *models.Member   `json:"member"`
	Payments []models.Payment `json:"payments"`
	Total    decimal.Decimal  `json:"total"`
}

// MemberStatementView shows one member with their payment history.
type MemberStatementView struct {
	api      Backend
	memberID string

	mu    sync.RWMutex
	state MemberStatementState
}

func NewMemberStatementView(api Backend, memberID string) *MemberStatementView {
	return &MemberStatementView{api: api, memberID: memberID, state: MemberStatementState{Loading: true}}
}

func (v *MemberStatementView) Tab() Tab { return TabMembers }

func (v *MemberStatementView) State() MemberStatementState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

func (v *MemberStatementView) Load(ctx context.Context) error {
	v.mu.Lock()
	v.state = MemberStatementState{Loading: true}
	v.mu.Unlock()

	var (
		member   *models.Member
		payments []models.Payment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := v.api.GetMember(gctx, v.memberID)
		if err != nil {
			return fmt.Errorf("member %s: %w", v.memberID, err)
		}
		member = m
		return nil
	})
	g.Go(func() error {
		p, err := v.api.ListMemberPayments(gctx, v.memberID)
		if err != nil {
			return fmt.Errorf("member %s payments: %w", v.memberID, err)
		}
		payments = p
		return nil
	})

	if err := g.Wait(); err != nil {
		v.mu.Lock()
		v.state = MemberStatementState{Failed: true, NotFound: errors.Is(err, backend.ErrNotFound)}
		v.mu.Unlock()
		log.Error().Err(err).Str("view", "member_statement").Str("member_id", v.memberID).Msg("Error fetching member statement")
		return err
	}

	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}

	v.mu.Lock()
	v.state = MemberStatementState{Member: member, Payments: payments, Total: total}
	v.mu.Unlock()
	return nil
}
