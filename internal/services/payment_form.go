package services

import (
	"context"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"masjid-admin/internal/backend"
	"masjid-admin/internal/metrics"
	"masjid-admin/internal/models"
	"masjid-admin/internal/timeutil"
)

const (
	missingFieldsAlert = "Please fill all required fields"
	paymentFailedAlert = "Error processing payment: "
)

var minimumAmount = decimal.NewFromInt(1)

// PaymentDraft is the payment form as typed. Amount stays text until submit.
type PaymentDraft struct {
	MemberID      string `json:"member_id"`
	Amount        string `json:"amount"`
	PaymentType   string `json:"payment_type" validate:"oneof=monthly_chanda ramzan_taravi donation"`
	TransactionID string `json:"transaction_id"`
	MonthYear     string `json:"month_year" validate:"omitempty,datetime=2006-01"`
}

// PaymentReceipt is a recorded payment and the confirmation to show for it.
type PaymentReceipt struct {
	Payment *models.Payment `json:"payment"`
	Notice  Notice          `json:"notice"`
}

// PaymentForm holds the payment recording draft between edits.
type PaymentForm struct {
	api   Backend
	owner Reloader
	clock timeutil.Clock

	mu    sync.Mutex
	draft PaymentDraft
	open  bool

	// submitting guards one controller. Across HTTP requests each post builds
	// a fresh form, so the one-time form token is what stops replays.
	submitting atomic.Bool
}

func NewPaymentForm(api Backend, owner Reloader, clock timeutil.Clock) *PaymentForm {
	if clock == nil {
		clock = time.Now
	}
	f := &PaymentForm{api: api, owner: owner, clock: clock}
	f.draft = f.defaults()
	return f
}

// defaults is monthly chanda for the current month.
func (f *PaymentForm) defaults() PaymentDraft {
	return PaymentDraft{
		PaymentType: models.PaymentTypeMonthlyChanda,
		MonthYear:   timeutil.MonthKey(f.clock()),
	}
}

func (f *PaymentForm) Open() {
	f.mu.Lock()
	f.open = true
	f.mu.Unlock()
}

func (f *PaymentForm) Close() {
	f.mu.Lock()
	f.open = false
	f.mu.Unlock()
}

func (f *PaymentForm) IsOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

func (f *PaymentForm) Draft() PaymentDraft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Set updates one draft field by its wire name. Changing the payment type
// never touches month_year.
func (f *PaymentForm) Set(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch field {
	case "member_id":
		f.draft.MemberID = value
	case "amount":
		f.draft.Amount = value
	case "payment_type":
		f.draft.PaymentType = value
	case "transaction_id":
		f.draft.TransactionID = value
	case "month_year":
		f.draft.MonthYear = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return nil
}

// ShowsMonthPicker is true only for monthly chanda.
func (f *PaymentForm) ShowsMonthPicker() bool {
	return f.Draft().PaymentType == models.PaymentTypeMonthlyChanda
}

// Validate applies the required-fields guard, then format checks.
func (f *PaymentForm) Validate() error {
	_, err := f.request()
	return err
}

func (f *PaymentForm) request() (models.CreatePaymentRequest, error) {
	d := f.Draft()

	if d.MemberID == "" || d.Amount == "" || d.PaymentType == "" {
		return models.CreatePaymentRequest{}, &SubmitError{
			Notice: Notice{Kind: NoticeAlert, Text: missingFieldsAlert},
			Err:    ErrMissingFields,
		}
	}

	verr := validateDraft(d)
	if verr == nil {
		verr = &ValidationError{}
	}
	amount, err := decimal.NewFromString(d.Amount)
	switch {
	case err != nil:
		verr.add("amount", "must be a number")
	case amount.LessThan(minimumAmount):
		verr.add("amount", "must be at least 1")
	case !amount.Equal(amount.Round(2)):
		verr.add("amount", "must have at most two decimal places")
	case math.IsInf(amount.InexactFloat64(), 0):
		verr.add("amount", "is too large")
	}
	if len(verr.Fields) > 0 {
		return models.CreatePaymentRequest{}, verr
	}

	return models.CreatePaymentRequest{
		MemberID:      d.MemberID,
		Amount:        amount.InexactFloat64(),
		PaymentType:   d.PaymentType,
		TransactionID: d.TransactionID,
		MonthYear:     d.MonthYear,
	}, nil
}

// Submit records the payment. On success the confirmation carries the
// backend's receipt number, the form closes and resets, and the owning view
// reloads payments and members.
func (f *PaymentForm) Submit(ctx context.Context) (*PaymentReceipt, error) {
	if !f.submitting.CompareAndSwap(false, true) {
		return nil, ErrSubmitInFlight
	}
	defer f.submitting.Store(false)

	req, err := f.request()
	if err != nil {
		metrics.FormSubmissionsTotal.WithLabelValues("payment", "invalid").Inc()
		return nil, err
	}

	payment, err := f.api.CreatePayment(ctx, req)
	if err != nil {
		metrics.FormSubmissionsTotal.WithLabelValues("payment", "rejected").Inc()
		log.Error().Err(err).Str("form", "payment").Str("member_id", req.MemberID).Msg("Error processing payment")

		reason := err.Error()
		if detail, ok := backend.DetailOf(err); ok {
			reason = detail
		}
		return nil, &SubmitError{Notice: Notice{Kind: NoticeAlert, Text: paymentFailedAlert + reason}, Err: err}
	}
	metrics.FormSubmissionsTotal.WithLabelValues("payment", "recorded").Inc()

	f.mu.Lock()
	f.open = false
	f.draft = f.defaults()
	f.mu.Unlock()

	if f.owner != nil {
		if err := f.owner.Reload(ctx); err != nil {
			log.Warn().Err(err).Str("form", "payment").Msg("reload after submit failed")
		}
	}

	return &PaymentReceipt{
		Payment: payment,
		Notice: Notice{
			Kind: NoticeConfirm,
			Text: "Payment recorded successfully! Receipt Number: " + payment.ReceiptNumber,
		},
	}, nil
}
