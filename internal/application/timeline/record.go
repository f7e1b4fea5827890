package timeline

import (
	"context"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/glutenpeek/tracker-service/internal/domain"
	"github.com/glutenpeek/tracker-service/internal/metrics"
)

type RecordScanCmd struct {
	ActorID        string
	ProductBarcode int64
	OccurredAt     time.Time
}

func (s *Service) RecordScan(ctx context.Context, cmd RecordScanCmd) (*domain.Scan, error) {
	now := s.clock.Now()
	scan, err := domain.NewScan(cmd.ActorID, cmd.ProductBarcode, cmd.OccurredAt, now)
	if err != nil {
		return nil, err
	}

	// Materialize the day bucket before the event lands in it. The upsert
	// is keyed (user_id, day): a concurrent duplicate create is harmless.
	dayID, err := s.days.EnsureDay(ctx, scan.UserID, domain.CalendarDay(scan.OccurredAt))
	if err != nil {
		return nil, err
	}
	if err := s.store.InsertScan(ctx, scan, dayID); err != nil {
		return nil, err
	}

	s.invalidateStreak(ctx, scan.UserID)
	s.publish(ctx, "scan.recorded", scan)
	metrics.RecordScan()
	return scan, nil
}

type ReportSymptomsCmd struct {
	ActorID    string
	ScanID     string
	OccurredAt time.Time
	Severities domain.SeverityMap
}

func (s *Service) ReportSymptoms(ctx context.Context, cmd ReportSymptomsCmd) (*domain.Symptom, error) {
	scan, err := s.store.GetScan(ctx, cmd.ScanID)
	if err != nil {
		return nil, err
	}
	if scan.UserID != cmd.ActorID {
		return nil, domain.ErrNotFound("scan not found")
	}

	occurredAt := cmd.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = s.clock.Now()
	}

	now := s.clock.Now()
	sym, err := domain.NewSymptom(cmd.ActorID, scan.ID, scan.ProductBarcode, occurredAt, cmd.Severities, now)
	if err != nil {
		return nil, err
	}

	dayID, err := s.days.EnsureDay(ctx, sym.UserID, domain.CalendarDay(sym.OccurredAt))
	if err != nil {
		return nil, err
	}
	if err := s.store.InsertSymptom(ctx, sym, dayID); err != nil {
		return nil, err
	}

	s.invalidateStreak(ctx, sym.UserID)
	s.publish(ctx, "symptom.reported", sym)
	metrics.RecordSymptomReport()
	return sym, nil
}

func (s *Service) invalidateStreak(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	key := streakCacheKey(userID, domain.CalendarDay(s.clock.Now()))
	if err := s.cache.Delete(ctx, key); err != nil {
		zlog.Warn().Err(err).Str("key", key).Msg("streak cache invalidation failed")
	}
}

// publish is best-effort: a broker blip must not fail the write path.
func (s *Service) publish(ctx context.Context, routingKey string, payload any) {
	if s.pub == nil {
		return
	}
	if err := s.pub.PublishEvent(ctx, routingKey, payload); err != nil {
		zlog.Warn().Err(err).Str("routing_key", routingKey).Msg("domain event publish failed")
	}
}
