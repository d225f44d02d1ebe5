package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewRouter_DefaultsToDashboard(t *testing.T) {
	r := NewViewRouter(seededBackend(t).Client(), fixedClock)
	assert.Equal(t, TabDashboard, r.Active())
}

func TestParseTab(t *testing.T) {
	assert.Equal(t, TabMembers, ParseTab("members"))
	assert.Equal(t, TabPayments, ParseTab("payments"))
	assert.Equal(t, TabDashboard, ParseTab("dashboard"))
	assert.Equal(t, TabDashboard, ParseTab("settings"))
	assert.Equal(t, TabDashboard, ParseTab(""))
}

func TestViewRouter_SelectBuildsFreshViews(t *testing.T) {
	r := NewViewRouter(seededBackend(t).Client(), fixedClock)

	first := r.Members()
	second := r.Members()
	assert.NotSame(t, first, second)
	assert.Equal(t, TabMembers, r.Active())

	_, ok := r.Select(TabPayments).(*PaymentsView)
	assert.True(t, ok)
	assert.Equal(t, TabPayments, r.Active())
}

func TestViewRouter_EveryActivationRefetches(t *testing.T) {
	fake := seededBackend(t)
	r := NewViewRouter(fake.Client(), fixedClock)

	_, err := r.Activate(context.Background(), TabMembers)
	require.NoError(t, err)
	_, err = r.Activate(context.Background(), TabDashboard)
	require.NoError(t, err)
	v, err := r.Activate(context.Background(), TabMembers)
	require.NoError(t, err)

	assert.Equal(t, TabMembers, v.Tab())
	assert.Equal(t, 2, fake.Calls(http.MethodGet, "/members"))
	assert.Equal(t, 1, fake.Calls(http.MethodGet, "/dashboard/stats"))
}

func TestViewRouter_MemberStatementUnderMembersTab(t *testing.T) {
	r := NewViewRouter(seededBackend(t).Client(), fixedClock)
	v := r.MemberStatement("m-1")

	assert.Equal(t, TabMembers, r.Active())
	require.NoError(t, v.Load(context.Background()))
	assert.Equal(t, "Abdul Rahman", v.State().Member.Name)
}
