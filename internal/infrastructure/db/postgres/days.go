package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

// DayRepo materializes day buckets. Duplicate creates for the same
// (user_id, day) resolve to the existing row.
type DayRepo struct {
	db *sql.DB
}

func NewDayRepo(db *sql.DB) *DayRepo { return &DayRepo{db: db} }

func (r *DayRepo) EnsureDay(ctx context.Context, userID, day string) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx, ensureDaySQL, uuid.NewString(), userID, day).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}
