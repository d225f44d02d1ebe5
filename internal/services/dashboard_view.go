package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"masjid-admin/internal/models"
)

type DashboardState struct {
	Loading     bool                   `json:"loading"`
	Failed      bool                   `json:"failed"`
	Stats       *models.DashboardStats `json:"stats"`
	PrayerTimes *models.PrayerTimes    `json:"prayer_times"`

	// Imam and Announcements are best effort; their failure leaves them empty.
	Imam          *models.Imam          `json:"imam"`
	Announcements []models.Announcement `json:"announcements"`
}

// DashboardView shows summary counts, recent payments, today's prayers, the
// active imam and the notice board.
type DashboardView struct {
	api Backend

	mu    sync.RWMutex
	gen   uint64
	state DashboardState
}

func NewDashboardView(api Backend) *DashboardView {
	return &DashboardView{api: api, state: DashboardState{Loading: true}}
}

func (v *DashboardView) Tab() Tab { return TabDashboard }

func (v *DashboardView) State() DashboardState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

// Load fetches stats and prayer times together. Both must succeed for
// either to be shown. The imam and announcements load alongside and are
// dropped on failure without failing the view.
func (v *DashboardView) Load(ctx context.Context) error {
	gen := v.begin()

	var (
		stats         *models.DashboardStats
		prayers       *models.PrayerTimes
		imam          *models.Imam
		announcements []models.Announcement
	)

	var extras sync.WaitGroup
	extras.Add(2)
	go func() {
		defer extras.Done()
		i, err := v.api.ActiveImam(ctx)
		if err != nil {
			log.Warn().Err(err).Str("view", "dashboard").Msg("Error fetching imam")
			return
		}
		imam = i
	}()
	go func() {
		defer extras.Done()
		a, err := v.api.Announcements(ctx)
		if err != nil {
			log.Warn().Err(err).Str("view", "dashboard").Msg("Error fetching announcements")
			return
		}
		announcements = a
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := v.api.DashboardStats(gctx)
		if err != nil {
			return fmt.Errorf("dashboard stats: %w", err)
		}
		stats = s
		return nil
	})
	g.Go(func() error {
		p, err := v.api.PrayerTimes(gctx)
		if err != nil {
			return fmt.Errorf("prayer times: %w", err)
		}
		prayers = p
		return nil
	})

	err := g.Wait()
	extras.Wait()
	if err != nil {
		log.Error().Err(err).Str("view", "dashboard").Msg("Error fetching dashboard data")
		v.finish(gen, DashboardState{Failed: true})
		return err
	}
	v.finish(gen, DashboardState{
		Stats:         stats,
		PrayerTimes:   prayers,
		Imam:          imam,
		Announcements: announcements,
	})
	return nil
}

func (v *DashboardView) Reload(ctx context.Context) error { return v.Load(ctx) }

func (v *DashboardView) begin() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.gen++
	v.state = DashboardState{Loading: true}
	return v.gen
}

// finish publishes s unless a newer load started meanwhile.
func (v *DashboardView) finish(gen uint64, s DashboardState) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if gen == v.gen {
		v.state = s
	}
}

// HasRecentPayments reports whether the recent payments feed has rows.
func (s DashboardState) HasRecentPayments() bool {
	return s.Stats != nil && len(s.Stats.RecentPayments) > 0
}
