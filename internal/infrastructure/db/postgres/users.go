package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/glutenpeek/tracker-service/internal/domain"
)

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, getUserSQL, id)
	var u domain.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Bio, &u.PictureURL, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound("user not found")
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id,
	).Scan(&exists)
	return exists, err
}

func (r *UserRepo) SearchByName(ctx context.Context, q string, limit int, hasCursor bool, afterName, afterID string) ([]*domain.User, error) {
	where := []string{}
	args := []any{}

	if q != "" {
		args = append(args, likePrefix(q))
		where = append(where, `name ILIKE $`+pos(len(args)))
	}
	if hasCursor {
		args = append(args, afterName, afterID)
		where = append(where, `(name, id) > ($`+pos(len(args)-1)+`, $`+pos(len(args))+`)`)
	}

	query := `
SELECT id, name, email, bio, picture_url, created_at
FROM users`
	if len(where) > 0 {
		query += `
WHERE ` + strings.Join(where, " AND ")
	}
	args = append(args, limit)
	query += `
ORDER BY name ASC, id ASC
LIMIT $` + pos(len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Bio, &u.PictureURL, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
