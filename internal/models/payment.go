package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	PaymentTypeMonthlyChanda = "monthly_chanda"
	PaymentTypeRamzanTaravi  = "ramzan_taravi"
	PaymentTypeDonation      = "donation"
)

// PaymentTypes lists the payment types in the order the form offers them.
var PaymentTypes = []string{PaymentTypeMonthlyChanda, PaymentTypeRamzanTaravi, PaymentTypeDonation}

// PaymentTypeLabels are the option captions of the payment type picker.
var PaymentTypeLabels = map[string]string{
	PaymentTypeMonthlyChanda: "Monthly Chanda",
	PaymentTypeRamzanTaravi:  "Ramzan Taravi",
	PaymentTypeDonation:      "Donation",
}

type Payment struct {
	ID                  string          `json:"id"`
	MemberID            string          `json:"member_id"`
	MemberName          string          `json:"member_name"`
	MemberAccountNumber string          `json:"member_account_number"`
	Amount              decimal.Decimal `json:"amount"`
	PaymentType         string          `json:"payment_type"`
	PaymentMethod       string          `json:"payment_method"`
	TransactionID       *string         `json:"transaction_id"`
	ReceiptNumber       string          `json:"receipt_number"`
	PaymentDate         Timestamp       `json:"payment_date"`
	MonthYear           *string         `json:"month_year"`
	Status              string          `json:"status"`
}

// CreatePaymentRequest is the body of POST payments. month_year is sent for
// every type, the backend only reads it for monthly chanda.
type CreatePaymentRequest struct {
	MemberID      string  `json:"member_id"`
	Amount        float64 `json:"amount"`
	PaymentType   string  `json:"payment_type"`
	TransactionID string  `json:"transaction_id"`
	MonthYear     string  `json:"month_year"`
}

// TypeLabel renders payment_type for the ledger: first underscore becomes a
// space, then upper case ("monthly_chanda" -> "MONTHLY CHANDA").
func (p Payment) TypeLabel() string {
	return PaymentTypeLabel(p.PaymentType)
}

func PaymentTypeLabel(paymentType string) string {
	return strings.ToUpper(strings.Replace(paymentType, "_", " ", 1))
}

func (p Payment) HasMonth() bool {
	return p.MonthYear != nil && *p.MonthYear != ""
}

func (p Payment) HasTransaction() bool {
	return p.TransactionID != nil && *p.TransactionID != ""
}
