package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/glutenpeek/tracker-service/internal/domain"
)

type ClaimRepo struct {
	db *sql.DB
}

func NewClaimRepo(db *sql.DB) *ClaimRepo { return &ClaimRepo{db: db} }

func (r *ClaimRepo) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM claims WHERE id = $1)`, id,
	).Scan(&exists)
	return exists, err
}

func (r *ClaimRepo) ListByUser(ctx context.Context, userID string, limit int, hasCursor bool, afterAt time.Time, afterID string) ([]*domain.Claim, error) {
	q := `
SELECT id, user_id, product_barcode, explanation, media_proof_url, closed, created_at, updated_at
FROM claims
WHERE user_id = $1`
	args := []any{userID}
	if hasCursor {
		args = append(args, afterAt.UTC(), afterID)
		q += ` AND (created_at, id) < ($2, $3)`
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

	var out []*domain.Claim
	for rows.Next() {
		var c domain.Claim
		if err := rows.Scan(&c.ID, &c.UserID, &c.ProductBarcode, &c.Explanation, &c.MediaProofURL, &c.Closed, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
