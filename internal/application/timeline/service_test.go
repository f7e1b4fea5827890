package timeline

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/glutenpeek/tracker-service/internal/domain"
)

// --- Mocks & Helpers ---

type fakeClock struct{ t time.Time }

func (c fakeClock) Now() time.Time { return c.t }

// memCache stores JSON-encoded values so Get exercises the same decode path
// the redis client does.
type memCache struct {
	store   map[string][]byte
	deletes []string
}

func newMemCache() *memCache { return &memCache{store: map[string][]byte{}} }

func (m *memCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	b, ok := m.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dest)
}

func (m *memCache) Set(ctx context.Context, key string, val any, ttl time.Duration) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	m.store[key] = b
	return nil
}

func (m *memCache) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.store, k)
		m.deletes = append(m.deletes, k)
	}
	return nil
}

type memStore struct {
	scans    []*domain.Scan
	symptoms []*domain.Symptom
	dayIDs   map[string]string
}

func newMemStore() *memStore { return &memStore{dayIDs: map[string]string{}} }

func (m *memStore) InsertScan(ctx context.Context, s *domain.Scan, dayID string) error {
	m.scans = append(m.scans, s)
	return nil
}

func (m *memStore) InsertSymptom(ctx context.Context, s *domain.Symptom, dayID string) error {
	m.symptoms = append(m.symptoms, s)
	return nil
}

func (m *memStore) GetScan(ctx context.Context, id string) (*domain.Scan, error) {
	for _, s := range m.scans {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, domain.ErrNotFound("scan not found")
}

func (m *memStore) ScanExists(ctx context.Context, id string) (bool, error) {
	_, err := m.GetScan(ctx, id)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (m *memStore) ScansInRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.Scan, error) {
	var out []*domain.Scan
	for _, s := range m.scans {
		if s.UserID != userID {
			continue
		}
		if !s.OccurredAt.Before(from) && s.OccurredAt.Before(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memStore) SymptomsInRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.Symptom, error) {
	var out []*domain.Symptom
	for _, s := range m.symptoms {
		if s.UserID != userID {
			continue
		}
		if !s.OccurredAt.Before(from) && s.OccurredAt.Before(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memStore) ScanTimes(ctx context.Context, userID string) ([]time.Time, error) {
	var out []time.Time
	for _, s := range m.scans {
		if s.UserID == userID {
			out = append(out, s.OccurredAt)
		}
	}
	return out, nil
}

func (m *memStore) SymptomTimes(ctx context.Context, userID string) ([]time.Time, error) {
	var out []time.Time
	for _, s := range m.symptoms {
		if s.UserID == userID {
			out = append(out, s.OccurredAt)
		}
	}
	return out, nil
}

func (m *memStore) RecentScans(ctx context.Context, userID string, limit int, hasCursor bool, afterAt time.Time, afterID string) ([]*domain.Scan, error) {
	var mine []*domain.Scan
	for _, s := range m.scans {
		if s.UserID == userID {
			mine = append(mine, s)
		}
	}
	sort.Slice(mine, func(i, j int) bool {
		if !mine[i].OccurredAt.Equal(mine[j].OccurredAt) {
			return mine[i].OccurredAt.After(mine[j].OccurredAt)
		}
		return mine[i].ID > mine[j].ID
	})
	var out []*domain.Scan
	for _, s := range mine {
		if hasCursor {
			// strictly after the boundary in (occurred_at DESC, id DESC)
			if s.OccurredAt.After(afterAt) {
				continue
			}
			if s.OccurredAt.Equal(afterAt) && s.ID >= afterID {
				continue
			}
		}
		out = append(out, s)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *memStore) SymptomsByScanIDs(ctx context.Context, scanIDs []string) ([]*domain.Symptom, error) {
	want := map[string]struct{}{}
	for _, id := range scanIDs {
		want[id] = struct{}{}
	}
	var out []*domain.Symptom
	for _, s := range m.symptoms {
		if _, ok := want[s.ScanID]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

type memDays struct {
	created map[string]string
}

func newMemDays() *memDays { return &memDays{created: map[string]string{}} }

func (m *memDays) EnsureDay(ctx context.Context, userID, day string) (string, error) {
	key := userID + "|" + day
	if id, ok := m.created[key]; ok {
		return id, nil
	}
	id := "day_" + day + "_" + userID
	m.created[key] = id
	return id, nil
}

type memProducts struct {
	byBarcode map[int64]domain.ProductSummary
	statuses  map[int64]*domain.Status
}

func newMemProducts() *memProducts {
	return &memProducts{
		byBarcode: map[int64]domain.ProductSummary{},
		statuses:  map[int64]*domain.Status{},
	}
}

func (m *memProducts) GetByBarcodes(ctx context.Context, barcodes []int64) (map[int64]domain.ProductSummary, error) {
	out := map[int64]domain.ProductSummary{}
	for _, b := range barcodes {
		if p, ok := m.byBarcode[b]; ok {
			out[b] = p
		}
	}
	return out, nil
}

func (m *memProducts) LatestStatuses(ctx context.Context, barcodes []int64) (map[int64]*domain.Status, error) {
	out := map[int64]*domain.Status{}
	for _, b := range barcodes {
		if s, ok := m.statuses[b]; ok {
			out[b] = s
		}
	}
	return out, nil
}

type capturingPublisher struct {
	keys []string
}

func (p *capturingPublisher) PublishEvent(ctx context.Context, routingKey string, payload any) error {
	p.keys = append(p.keys, routingKey)
	return nil
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	tt, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("bad time literal %q: %v", s, err)
	}
	return tt.UTC()
}

func newTestService(store *memStore, products *memProducts, clock fakeClock, cache Cache, pub EventPublisher) *Service {
	if pub == nil {
		pub = NoopPublisher{}
	}
	return New(store, newMemDays(), products, clock, pub, cache, 0, 0)
}

func assertCode(t *testing.T, err error, code domain.ErrCode) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s, got nil", code)
	}
	var appErr *domain.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	if appErr.Code != code {
		t.Fatalf("expected code %s, got %s (%v)", code, appErr.Code, err)
	}
}
