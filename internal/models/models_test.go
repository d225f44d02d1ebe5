package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestMember_RoleBadge(t *testing.T) {
	tests := []struct {
		name   string
		member Member
		want   Badge
	}{
		{"secretary", Member{IsCommitteeMember: true, CommitteePosition: strPtr("Secretary")}, Badge{"Secretary", BadgeGreen}},
		{"committee without position", Member{IsCommitteeMember: true}, Badge{"Committee Member", BadgeGreen}},
		{"committee blank position", Member{IsCommitteeMember: true, CommitteePosition: strPtr(" ")}, Badge{"Committee Member", BadgeGreen}},
		{"regular keeps stale position hidden", Member{CommitteePosition: strPtr("Treasurer")}, Badge{"Regular Member", BadgeBlue}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.member.RoleBadge())
		})
	}
}

func TestMember_OptionLabel(t *testing.T) {
	m := Member{Name: "Abdul Rahman", AccountNumber: "MMA1B2C3D4"}
	assert.Equal(t, "Abdul Rahman - MMA1B2C3D4", m.OptionLabel())
}

func TestPaymentTypeLabel(t *testing.T) {
	assert.Equal(t, "MONTHLY CHANDA", PaymentTypeLabel(PaymentTypeMonthlyChanda))
	assert.Equal(t, "RAMZAN TARAVI", PaymentTypeLabel(PaymentTypeRamzanTaravi))
	assert.Equal(t, "DONATION", PaymentTypeLabel(PaymentTypeDonation))
	// Only the first underscore is replaced.
	assert.Equal(t, "A B_C", PaymentTypeLabel("a_b_c"))
}

func TestPrayerTimes_ScheduleOrder(t *testing.T) {
	p := PrayerTimes{Fajr: "05:30", Dhuhr: "12:30", Asr: "15:45", Maghrib: "18:15", Isha: "19:30"}

	var names []string
	for _, prayer := range p.Schedule() {
		names = append(names, prayer.Name)
	}
	assert.Equal(t, []string{"Fajr", "Dhuhr", "Asr", "Maghrib", "Isha"}, names)
	assert.Equal(t, "18:15", p.Schedule()[3].Time)
}

func TestPayment_DecodeBackendJSON(t *testing.T) {
	raw := `{
		"id": "p1", "member_id": "m1", "member_name": "Ali", "member_account_number": "MM00000001",
		"amount": 500.5, "payment_type": "monthly_chanda", "payment_method": "UPI",
		"transaction_id": null, "receipt_number": "RCP20261014ABC123",
		"payment_date": "2026-10-14T09:15:00.123456", "month_year": "2026-10", "status": "completed"
	}`

	var p Payment
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	assert.True(t, p.Amount.Equal(decimal.RequireFromString("500.5")))
	assert.Equal(t, "500.5", p.Amount.String())
	assert.False(t, p.HasTransaction())
	assert.True(t, p.HasMonth())
	assert.Equal(t, time.Date(2026, time.October, 14, 9, 15, 0, 123456000, time.UTC), p.PaymentDate.Time)
}

func TestTimestamp_RFC3339AndNull(t *testing.T) {
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`"2026-10-14T09:15:00+05:30"`), &ts))
	assert.Equal(t, time.Date(2026, time.October, 14, 3, 45, 0, 0, time.UTC), ts.UTC())

	require.NoError(t, json.Unmarshal([]byte(`null`), &ts))
	assert.True(t, ts.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
}
