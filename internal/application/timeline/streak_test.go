package timeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glutenpeek/tracker-service/internal/domain"
)

func addScanAt(t *testing.T, store *memStore, userID, at string) *domain.Scan {
	t.Helper()
	scan, err := domain.NewScan(userID, 100, mustTime(t, at), mustTime(t, at))
	require.NoError(t, err)
	store.scans = append(store.scans, scan)
	return scan
}

func TestStreak_ConsecutiveDaysEndingToday(t *testing.T) {
	now := mustTime(t, "2024-03-10T15:00:00Z")
	store := newMemStore()
	svc := newTestService(store, newMemProducts(), fakeClock{t: now}, nil, nil)

	addScanAt(t, store, "user_A", "2024-03-10T08:00:00Z")
	addScanAt(t, store, "user_A", "2024-03-09T21:00:00Z")
	addScanAt(t, store, "user_A", "2024-03-08T12:00:00Z")
	// gap on 03-07; the run before it must not count
	addScanAt(t, store, "user_A", "2024-03-06T12:00:00Z")

	n, err := svc.Streak(context.Background(), "user_A")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestStreak_ZeroWithoutActivityToday(t *testing.T) {
	now := mustTime(t, "2024-03-10T15:00:00Z")
	store := newMemStore()
	svc := newTestService(store, newMemProducts(), fakeClock{t: now}, nil, nil)

	addScanAt(t, store, "user_A", "2024-03-09T08:00:00Z")
	addScanAt(t, store, "user_A", "2024-03-08T08:00:00Z")

	n, err := svc.Streak(context.Background(), "user_A")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestStreak_NoEvents(t *testing.T) {
	now := mustTime(t, "2024-03-10T15:00:00Z")
	svc := newTestService(newMemStore(), newMemProducts(), fakeClock{t: now}, nil, nil)

	n, err := svc.Streak(context.Background(), "user_A")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestStreak_MultipleEventsPerDayCountOnce(t *testing.T) {
	now := mustTime(t, "2024-03-10T15:00:00Z")
	store := newMemStore()
	svc := newTestService(store, newMemProducts(), fakeClock{t: now}, nil, nil)

	scan := addScanAt(t, store, "user_A", "2024-03-10T08:00:00Z")
	addScanAt(t, store, "user_A", "2024-03-10T09:00:00Z")
	addScanAt(t, store, "user_A", "2024-03-10T10:00:00Z")

	sym, err := domain.NewSymptom("user_A", scan.ID, 100, mustTime(t, "2024-03-09T18:00:00Z"), domain.SeverityMap{"nausea": 2}, now)
	require.NoError(t, err)
	store.symptoms = append(store.symptoms, sym)

	n, err := svc.Streak(context.Background(), "user_A")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestStreak_SymptomOnlyDayCounts(t *testing.T) {
	now := mustTime(t, "2024-03-10T15:00:00Z")
	store := newMemStore()
	svc := newTestService(store, newMemProducts(), fakeClock{t: now}, nil, nil)

	sym, err := domain.NewSymptom("user_A", "scan_1", 100, mustTime(t, "2024-03-10T07:00:00Z"), domain.SeverityMap{"headache": 4}, now)
	require.NoError(t, err)
	store.symptoms = append(store.symptoms, sym)

	n, err := svc.Streak(context.Background(), "user_A")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStreak_UTCDayBoundary(t *testing.T) {
	// 23:30 UTC on the 9th is still the 9th even though many local zones
	// are already on the 10th.
	now := mustTime(t, "2024-03-10T15:00:00Z")
	store := newMemStore()
	svc := newTestService(store, newMemProducts(), fakeClock{t: now}, nil, nil)

	addScanAt(t, store, "user_A", "2024-03-09T23:30:00Z")

	n, err := svc.Streak(context.Background(), "user_A")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestStreak_CachedValueShortCircuitsStore(t *testing.T) {
	now := mustTime(t, "2024-03-10T15:00:00Z")
	store := newMemStore()
	cache := newMemCache()
	svc := newTestService(store, newMemProducts(), fakeClock{t: now}, cache, nil)

	addScanAt(t, store, "user_A", "2024-03-10T08:00:00Z")

	n, err := svc.Streak(context.Background(), "user_A")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// new activity without invalidation: the cached value still wins
	addScanAt(t, store, "user_A", "2024-03-09T08:00:00Z")
	n, err = svc.Streak(context.Background(), "user_A")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStreak_RequiresUser(t *testing.T) {
	now := mustTime(t, "2024-03-10T15:00:00Z")
	svc := newTestService(newMemStore(), newMemProducts(), fakeClock{t: now}, nil, nil)

	_, err := svc.Streak(context.Background(), "")
	assertCode(t, err, domain.CodeUnauthorized)
}
