package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentsView_LoadsPaymentsAndMembers(t *testing.T) {
	fake := seededBackend(t)
	v := NewPaymentsView(fake.Client(), fixedClock)

	require.NoError(t, v.Load(context.Background()))

	s := v.State()
	assert.False(t, s.Loading)
	require.Len(t, s.Payments, 2)
	require.Len(t, s.Members, 2)
	// backend order is kept
	assert.Equal(t, "RCP20261010A1B2C3", s.Payments[0].ReceiptNumber)
	assert.Equal(t, "MONTHLY CHANDA", s.Payments[0].TypeLabel())
	assert.Equal(t, "Abdul Rahman - MM1A2B3C4D", s.Members[0].OptionLabel())
}

func TestPaymentsView_MembersFailureIsAllOrNothing(t *testing.T) {
	fake := seededBackend(t)
	fake.Fail(http.MethodGet, "/members", http.StatusInternalServerError, "boom")
	v := NewPaymentsView(fake.Client(), fixedClock)

	require.Error(t, v.Load(context.Background()))

	s := v.State()
	assert.False(t, s.Loading)
	assert.True(t, s.Failed)
	assert.Empty(t, s.Payments)
	assert.Empty(t, s.Members)
}

func TestPaymentsState_FindByReceipt(t *testing.T) {
	v := NewPaymentsView(seededBackend(t).Client(), fixedClock)
	require.NoError(t, v.Load(context.Background()))

	p, ok := v.State().FindByReceipt("RCP20261010D4E5F6")
	require.True(t, ok)
	assert.Equal(t, "Yusuf Khan", p.MemberName)

	_, ok = v.State().FindByReceipt("RCP-missing")
	assert.False(t, ok)
}
