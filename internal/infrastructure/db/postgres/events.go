package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/lib/pq"

	"github.com/glutenpeek/tracker-service/internal/domain"
)

// EventRepo persists the two event kinds (scans, symptoms).
type EventRepo struct {
	db *sql.DB
}

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

func (r *EventRepo) InsertScan(ctx context.Context, s *domain.Scan, dayID string) error {
	_, err := r.db.ExecContext(ctx, insertScanSQL,
		s.ID, s.UserID, dayID, s.ProductBarcode, s.OccurredAt, s.CreatedAt,
	)
	return err
}

func (r *EventRepo) InsertSymptom(ctx context.Context, s *domain.Symptom, dayID string) error {
	sev, err := json.Marshal(s.Severities)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, insertSymptomSQL,
		s.ID, s.UserID, s.ScanID, dayID, s.ProductBarcode, s.OccurredAt, sev, s.CreatedAt,
	)
	return err
}

func (r *EventRepo) GetScan(ctx context.Context, id string) (*domain.Scan, error) {
	row := r.db.QueryRowContext(ctx, getScanSQL, id)
	var s domain.Scan
	err := row.Scan(&s.ID, &s.UserID, &s.ProductBarcode, &s.OccurredAt, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound("scan not found")
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *EventRepo) ScanExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM scans WHERE id = $1)`, id,
	).Scan(&exists)
	return exists, err
}

func (r *EventRepo) ScansInRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.Scan, error) {
	rows, err := r.db.QueryContext(ctx, scansInRangeSQL, userID, from.UTC(), to.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanScans(rows)
}

func (r *EventRepo) SymptomsInRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.Symptom, error) {
	rows, err := r.db.QueryContext(ctx, symptomsInRangeSQL, userID, from.UTC(), to.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSymptoms(rows)
}

func (r *EventRepo) ScanTimes(ctx context.Context, userID string) ([]time.Time, error) {
	return r.times(ctx, scanTimesSQL, userID)
}

func (r *EventRepo) SymptomTimes(ctx context.Context, userID string) ([]time.Time, error) {
	return r.times(ctx, symptomTimesSQL, userID)
}

func (r *EventRepo) times(ctx context.Context, q, userID string) ([]time.Time, error) {
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []time.Time
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *EventRepo) RecentScans(ctx context.Context, userID string, limit int, hasCursor bool, afterAt time.Time, afterID string) ([]*domain.Scan, error) {
	q := `
SELECT id, user_id, product_barcode, occurred_at, created_at
FROM scans
WHERE user_id = $1`
	args := []any{userID}
	if hasCursor {
		q += ` AND (occurred_at, id) < ($2, $3)`
		args = append(args, afterAt.UTC(), afterID)
	}
	q += `
ORDER BY occurred_at DESC, id DESC
LIMIT $` + pos(len(args)+1)
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanScans(rows)
}

func (r *EventRepo) SymptomsByScanIDs(ctx context.Context, scanIDs []string) ([]*domain.Symptom, error) {
	if len(scanIDs) == 0 {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, scan_id, product_barcode, occurred_at, severities, created_at
FROM symptoms
WHERE scan_id = ANY($1)
ORDER BY occurred_at ASC, id ASC
`, pq.Array(scanIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSymptoms(rows)
}

func scanScans(rows *sql.Rows) ([]*domain.Scan, error) {
	var out []*domain.Scan
	for rows.Next() {
		var s domain.Scan
		if err := rows.Scan(&s.ID, &s.UserID, &s.ProductBarcode, &s.OccurredAt, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanSymptoms(rows *sql.Rows) ([]*domain.Symptom, error) {
	var out []*domain.Symptom
	for rows.Next() {
		var s domain.Symptom
		var sev []byte
		if err := rows.Scan(&s.ID, &s.UserID, &s.ScanID, &s.ProductBarcode, &s.OccurredAt, &sev, &s.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(sev, &s.Severities); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
