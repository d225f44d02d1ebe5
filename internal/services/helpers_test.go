package services

import (
	"testing"
	"time"

	"masjid-admin/internal/backend/backendtest"
)

var fixedNow = time.Date(2026, time.October, 14, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func seededBackend(t *testing.T) *backendtest.Server {
	t.Helper()
	return backendtest.NewServer(t).Seed()
}
