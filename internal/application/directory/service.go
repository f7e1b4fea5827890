package directory

import (
	"context"
	"strings"

	"github.com/glutenpeek/tracker-service/internal/domain"
	"github.com/glutenpeek/tracker-service/internal/pagination"
)

type UserRepo interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Exists(ctx context.Context, id string) (bool, error)

	// SearchByName pages (name ASC, id ASC); q is an optional
	// case-insensitive prefix filter applied before pagination.
	SearchByName(ctx context.Context, q string, limit int, hasCursor bool, afterName, afterID string) ([]*domain.User, error)
}

// Streaker computes the activity streak embedded in profile responses.
type Streaker interface {
	Streak(ctx context.Context, userID string) (int, error)
}

type Service struct {
	users   UserRepo
	streaks Streaker
}

func New(users UserRepo, streaks Streaker) *Service {
	return &Service{users: users, streaks: streaks}
}

// Profile is a user plus their current streak.
type Profile struct {
	User   *domain.User
	Streak int
}

func (s *Service) GetProfile(ctx context.Context, userID string) (Profile, error) {
	if strings.TrimSpace(userID) == "" {
		return Profile{}, domain.ErrUnauthorized("user identity is required")
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	streak, err := s.streaks.Streak(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	return Profile{User: u, Streak: streak}, nil
}

// Search pages the user directory by (name ASC, id ASC).
func (s *Service) Search(ctx context.Context, q, cursorToken string, limit int) (pagination.Page[*domain.User], error) {
	limit = pagination.ClampLimit(limit)
	q = strings.TrimSpace(q)

	cur, err := pagination.Decode(cursorToken)
	if err != nil {
		return pagination.Page[*domain.User]{}, err
	}
	var afterName, afterID string
	hasCursor := cur != nil
	if hasCursor {
		afterName, afterID = cur.Key, cur.ID
		ok, err := s.users.Exists(ctx, afterID)
		if err != nil {
			return pagination.Page[*domain.User]{}, err
		}
		if !ok {
			return pagination.Page[*domain.User]{}, domain.ErrInvalidCursor("cursor no longer resolves")
		}
	}

	items, err := s.users.SearchByName(ctx, q, limit+1, hasCursor, afterName, afterID)
	if err != nil {
		return pagination.Page[*domain.User]{}, err
	}
	return pagination.Build(items, limit, func(u *domain.User) pagination.Cursor {
		return pagination.Cursor{Key: u.Name, ID: u.ID}
	}), nil
}
