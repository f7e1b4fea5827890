package timeline

import (
	"context"
	"time"

	"github.com/glutenpeek/tracker-service/internal/domain"
)

type Clock interface {
	Now() time.Time
}

// EventStore holds the two event kinds. Range queries are half-open
// [from, to) over the event timestamp.
type EventStore interface {
	InsertScan(ctx context.Context, s *domain.Scan, dayID string) error
	InsertSymptom(ctx context.Context, s *domain.Symptom, dayID string) error

	GetScan(ctx context.Context, id string) (*domain.Scan, error)
	ScanExists(ctx context.Context, id string) (bool, error)

	ScansInRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.Scan, error)
	SymptomsInRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.Symptom, error)

	ScanTimes(ctx context.Context, userID string) ([]time.Time, error)
	SymptomTimes(ctx context.Context, userID string) ([]time.Time, error)

	RecentScans(ctx context.Context, userID string, limit int, hasCursor bool, afterAt time.Time, afterID string) ([]*domain.Scan, error)
	SymptomsByScanIDs(ctx context.Context, scanIDs []string) ([]*domain.Symptom, error)
}

// DayStore materializes day buckets. EnsureDay must be idempotent, keyed by
// (userID, day): concurrent duplicate creates upsert harmlessly.
type DayStore interface {
	EnsureDay(ctx context.Context, userID, day string) (string, error)
}

// ProductResolver answers batched lookups keyed by the distinct barcode set,
// bounding secondary queries to O(distinct products).
type ProductResolver interface {
	GetByBarcodes(ctx context.Context, barcodes []int64) (map[int64]domain.ProductSummary, error)
	LatestStatuses(ctx context.Context, barcodes []int64) (map[int64]*domain.Status, error)
}

type EventPublisher interface {
	PublishEvent(ctx context.Context, routingKey string, payload any) error
}

type NoopPublisher struct{}

func (NoopPublisher) PublishEvent(ctx context.Context, routingKey string, payload any) error {
	return nil
}

type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, val any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
