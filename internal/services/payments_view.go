package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"masjid-admin/internal/models"
	"masjid-admin/internal/timeutil"
)

type PaymentsState struct {
	Loading  bool             `json:"loading"`
	Failed   bool             `json:"failed"`
	Payments []models.Payment `json:"payments"`
	// Members feed the payment form's member picker.
	Members []models.Member `json:"members"`
}

// PaymentsView is the payment ledger. It owns the payment form.
type PaymentsView struct {
	api   Backend
	clock timeutil.Clock

	mu    sync.RWMutex
	gen   uint64
	state PaymentsState
}

func NewPaymentsView(api Backend, clock timeutil.Clock) *PaymentsView {
	return &PaymentsView{api: api, clock: clock, state: emptyPayments(true)}
}

func emptyPayments(loading bool) PaymentsState {
	return PaymentsState{Loading: loading, Payments: []models.Payment{}, Members: []models.Member{}}
}

func (v *PaymentsView) Tab() Tab { return TabPayments }

func (v *PaymentsView) State() PaymentsState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

// Load fetches payments and members concurrently, in backend order.
func (v *PaymentsView) Load(ctx context.Context) error {
	v.mu.Lock()
	v.gen++
	gen := v.gen
	v.state = emptyPayments(true)
	v.mu.Unlock()

	var (
		payments []models.Payment
		members  []models.Member
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := v.api.ListPayments(gctx)
		if err != nil {
			return fmt.Errorf("payments: %w", err)
		}
		payments = p
		return nil
	})
	g.Go(func() error {
		m, err := v.api.ListMembers(gctx)
		if err != nil {
			return fmt.Errorf("members: %w", err)
		}
		members = m
		return nil
	})
	err := g.Wait()

	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.gen {
		return err
	}
	if err != nil {
		log.Error().Err(err).Str("view", "payments").Msg("Error fetching data")
		s := emptyPayments(false)
		s.Failed = true
		v.state = s
		return err
	}
	v.state = PaymentsState{Payments: payments, Members: members}
	return nil
}

// Reload re-fetches payments and members after a payment is recorded.
func (v *PaymentsView) Reload(ctx context.Context) error { return v.Load(ctx) }

func (v *PaymentsView) NewForm() *PaymentForm {
	return NewPaymentForm(v.api, v, v.clock)
}

// FindByReceipt looks a loaded payment up by its receipt number.
func (s PaymentsState) FindByReceipt(receipt string) (models.Payment, bool) {
	for _, p := range s.Payments {
		if p.ReceiptNumber == receipt {
			return p, true
		}
	}
	return models.Payment{}, false
}
