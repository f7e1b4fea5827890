package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/glutenpeek/tracker-service/internal/domain"
)

type PostRepo struct {
	db *sql.DB
}

func NewPostRepo(db *sql.DB) *PostRepo { return &PostRepo{db: db} }

func (r *PostRepo) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	row := r.db.QueryRowContext(ctx, getPostSQL, id)
	var p domain.Post
	err := row.Scan(&p.ID, &p.UserID, &p.PostText, pq.Array(&p.MediaURLs), pq.Array(&p.Likes), &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound("post not found")
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostRepo) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, id,
	).Scan(&exists)
	return exists, err
}

func (r *PostRepo) ListRecent(ctx context.Context, limit int, hasCursor bool, afterAt time.Time, afterID string) ([]*domain.Post, error) {
	q := `
SELECT id, user_id, post_text, media_urls, likes, created_at, updated_at
FROM posts`
	args := []any{}
	if hasCursor {
		args = append(args, afterAt.UTC(), afterID)
		q += `
WHERE (created_at, id) < ($1, $2)`
	}
	args = append(args, limit)
	q += `
ORDER BY created_at DESC, id DESC
LIMIT $` + pos(len(args))

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Post
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.PostText, pq.Array(&p.MediaURLs), pq.Array(&p.Likes), &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
