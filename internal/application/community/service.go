package community

import (
	"context"
	"time"

	"github.com/glutenpeek/tracker-service/internal/domain"
	"github.com/glutenpeek/tracker-service/internal/pagination"
)

type PostRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Post, error)
	Exists(ctx context.Context, id string) (bool, error)

	// ListRecent pages (created_at DESC, id DESC).
	ListRecent(ctx context.Context, limit int, hasCursor bool, afterAt time.Time, afterID string) ([]*domain.Post, error)
}

type Service struct {
	posts PostRepo
}

func New(posts PostRepo) *Service { return &Service{posts: posts} }

func (s *Service) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	return s.posts.GetByID(ctx, id)
}

// Feed pages all posts, newest first. New posts inserted between fetches
// sort before the cursor position and never shift already-seen items.
func (s *Service) Feed(ctx context.Context, cursorToken string, limit int) (pagination.Page[*domain.Post], error) {
	limit = pagination.ClampLimit(limit)

	cur, err := pagination.Decode(cursorToken)
	if err != nil {
		return pagination.Page[*domain.Post]{}, err
	}
	var afterAt time.Time
	var afterID string
	hasCursor := cur != nil
	if hasCursor {
		afterAt, err = time.Parse(time.RFC3339Nano, cur.Key)
		if err != nil {
			return pagination.Page[*domain.Post]{}, domain.ErrInvalidCursor("malformed cursor")
		}
		afterID = cur.ID
		ok, err := s.posts.Exists(ctx, afterID)
		if err != nil {
			return pagination.Page[*domain.Post]{}, err
		}
		if !ok {
			return pagination.Page[*domain.Post]{}, domain.ErrInvalidCursor("cursor no longer resolves")
		}
	}

	items, err := s.posts.ListRecent(ctx, limit+1, hasCursor, afterAt, afterID)
	if err != nil {
		return pagination.Page[*domain.Post]{}, err
	}
	return pagination.Build(items, limit, func(p *domain.Post) pagination.Cursor {
		return pagination.Cursor{Key: p.CreatedAt.UTC().Format(time.RFC3339Nano), ID: p.ID}
	}), nil
}
