package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"masjid-admin/internal/models"
)

// Backend is the slice of the membership API the console reads and writes.
// *backend.Client satisfies it.
type Backend interface {
	DashboardStats(ctx context.Context) (*models.DashboardStats, error)
	PrayerTimes(ctx context.Context) (*models.PrayerTimes, error)
	ActiveImam(ctx context.Context) (*models.Imam, error)
	Announcements(ctx context.Context) ([]models.Announcement, error)
	ListMembers(ctx context.Context) ([]models.Member, error)
	GetMember(ctx context.Context, id string) (*models.Member, error)
	CreateMember(ctx context.Context, req models.CreateMemberRequest) (*models.Member, error)
	ListPayments(ctx context.Context) ([]models.Payment, error)
	ListMemberPayments(ctx context.Context, memberID string) ([]models.Payment, error)
	CreatePayment(ctx context.Context, req models.CreatePaymentRequest) (*models.Payment, error)
}

// Reloader is implemented by views that forms invalidate after a write.
type Reloader interface {
	Reload(ctx context.Context) error
}

var (
	// ErrSubmitInFlight is returned by a second Submit on the same form while
	// the first is outstanding.
	ErrSubmitInFlight = errors.New("a submission is already in progress")
	ErrUnknownField   = errors.New("unknown form field")
	ErrMissingFields  = errors.New("required fields are missing")
)

type NoticeKind string

const (
	NoticeAlert   NoticeKind = "alert"
	NoticeConfirm NoticeKind = "confirm"
)

// Notice is a blocking message shown to the operator after a submission.
type Notice struct {
	Kind NoticeKind `json:"kind"`
	Text string     `json:"text"`
}

// SubmitError is a failed submission together with the alert to show.
type SubmitError struct {
	Notice Notice
	Err    error
}

func (e *SubmitError) Error() string { return e.Notice.Text }
func (e *SubmitError) Unwrap() error { return e.Err }

// NoticeOf returns the alert carried by err, if any.
func NoticeOf(err error) *Notice {
	var se *SubmitError
	if errors.As(err, &se) {
		n := se.Notice
		return &n
	}
	return nil
}

// ValidationError lists draft fields that failed client side checks.
// A draft that fails validation is never sent.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = msg
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func formValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
			panic(fmt.Sprintf("register notblank validation: %v", err))
		}
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// validateDraft runs struct tags and maps failures to field messages.
func validateDraft(draft any) *ValidationError {
	err := formValidator().Struct(draft)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return &ValidationError{Fields: map[string]string{"form": err.Error()}}
	}

	out := &ValidationError{}
	for _, fe := range ve {
		out.add(fe.Field(), messageFor(fe))
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "datetime":
		return "must be a month in YYYY-MM format"
	default:
		return "is invalid"
	}
}
