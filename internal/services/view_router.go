package services

import (
	"context"
	"sync"
	"time"

	"masjid-admin/internal/timeutil"
)

type Tab string

const (
	TabDashboard Tab = "dashboard"
	TabMembers   Tab = "members"
	TabPayments  Tab = "payments"
)

// Tabs is the navigation order.
var Tabs = []Tab{TabDashboard, TabMembers, TabPayments}

// Title is the navigation caption of the tab.
func (t Tab) Title() string {
	switch t {
	case TabMembers:
		return "Members"
	case TabPayments:
		return "Payments"
	default:
		return "Dashboard"
	}
}

// ParseTab maps a path segment to a tab; anything unknown is the dashboard.
func ParseTab(s string) Tab {
	switch Tab(s) {
	case TabMembers, TabPayments:
		return Tab(s)
	default:
		return TabDashboard
	}
}

type View interface {
	Tab() Tab
	Load(ctx context.Context) error
}

// ViewRouter tracks the active tab. Every selection builds a new view, so
// nothing is shared or cached between activations.
type ViewRouter struct {
	api   Backend
	clock timeutil.Clock

	mu     sync.Mutex
	active Tab
}

func NewViewRouter(api Backend, clock timeutil.Clock) *ViewRouter {
	if clock == nil {
		clock = time.Now
	}
	return &ViewRouter{api: api, clock: clock, active: TabDashboard}
}

func (r *ViewRouter) Active() Tab {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Select makes tab active and returns a fresh, not yet loaded view for it.
func (r *ViewRouter) Select(tab Tab) View {
	tab = ParseTab(string(tab))

	r.mu.Lock()
	r.active = tab
	r.mu.Unlock()

	switch tab {
	case TabMembers:
		return NewMembersView(r.api)
	case TabPayments:
		return NewPaymentsView(r.api, r.clock)
	default:
		return NewDashboardView(r.api)
	}
}

// Activate selects tab and loads its view. Load failures are reported but
// the view is still returned in its empty state.
func (r *ViewRouter) Activate(ctx context.Context, tab Tab) (View, error) {
	v := r.Select(tab)
	return v, v.Load(ctx)
}

func (r *ViewRouter) Dashboard() *DashboardView {
	return r.Select(TabDashboard).(*DashboardView)
}

func (r *ViewRouter) Members() *MembersView {
	return r.Select(TabMembers).(*MembersView)
}

func (r *ViewRouter) Payments() *PaymentsView {
	return r.Select(TabPayments).(*PaymentsView)
}

// MemberStatement opens one member's history under the members tab.
func (r *ViewRouter) MemberStatement(memberID string) *MemberStatementView {
	r.mu.Lock()
	r.active = TabMembers
	r.mu.Unlock()
	return NewMemberStatementView(r.api, memberID)
}
