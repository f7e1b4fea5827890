package timeline

import (
	"context"
	"strings"

	zlog "github.com/rs/zerolog/log"

	"github.com/glutenpeek/tracker-service/internal/domain"
	"github.com/glutenpeek/tracker-service/internal/metrics"
)

// Streak counts consecutive active calendar days ending today (UTC).
// A day with events of either kind counts once; a user with no activity
// today has streak 0 no matter how long the last historical run was.
func (s *Service) Streak(ctx context.Context, userID string) (int, error) {
	if strings.TrimSpace(userID) == "" {
		return 0, domain.ErrUnauthorized("user identity is required")
	}

	today := domain.CalendarDay(s.clock.Now())
	cacheKey := streakCacheKey(userID, today)

	if s.cache != nil {
		var cached int
		found, err := s.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			zlog.Warn().Err(err).Str("key", cacheKey).Msg("streak cache get failed")
		} else if found {
			metrics.RecordStreak("cache")
			return cached, nil
		}
	}

	scanTimes, err := s.store.ScanTimes(ctx, userID)
	if err != nil {
		return 0, err
	}
	symptomTimes, err := s.store.SymptomTimes(ctx, userID)
	if err != nil {
		return 0, err
	}

	active := make(map[string]struct{}, len(scanTimes)+len(symptomTimes))
	for _, t := range scanTimes {
		active[domain.CalendarDay(t)] = struct{}{}
	}
	for _, t := range symptomTimes {
		active[domain.CalendarDay(t)] = struct{}{}
	}

	streak := 0
	if _, ok := active[today]; ok {
		streak = 1
		// Walk backward one day at a time until the first gap. Bounded by
		// the number of distinct active days.
		day, _ := ParseDay(today)
		for {
			day = day.AddDate(0, 0, -1)
			if _, ok := active[domain.CalendarDay(day)]; !ok {
				break
			}
			streak++
		}
	}

	metrics.RecordStreak("store")
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, streak, s.ttlStreak); err != nil {
			zlog.Warn().Err(err).Str("key", cacheKey).Msg("streak cache set failed")
		}
	}
	return streak, nil
}

func streakCacheKey(userID, day string) string {
	return "tracker:streak:" + userID + ":" + day
}
