package timeline

import "time"

type Service struct {
	store    EventStore
	days     DayStore
	products ProductResolver
	pub      EventPublisher
	cache    Cache
	clock    Clock

	ttlStreak time.Duration
	ttlFeed   time.Duration
}

func New(
	store EventStore,
	days DayStore,
	products ProductResolver,
	clock Clock,
	pub EventPublisher,
	cache Cache,
	ttlStreak, ttlFeed time.Duration,
) *Service {
	if ttlStreak == 0 {
		ttlStreak = 5 * time.Minute
	}
	if ttlFeed == 0 {
		ttlFeed = 15 * time.Second
	}

	return &Service{
		store:     store,
		days:      days,
		products:  products,
		pub:       pub,
		cache:     cache,
		clock:     clock,
		ttlStreak: ttlStreak,
		ttlFeed:   ttlFeed,
	}
}
