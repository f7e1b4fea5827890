package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/lib/pq"

	"github.com/glutenpeek/tracker-service/internal/domain"
)

type ProductRepo struct {
	db *sql.DB
}

func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) GetByBarcode(ctx context.Context, barcode int64) (*domain.Product, error) {
	row := r.db.QueryRowContext(ctx, getProductSQL, barcode)
	var p domain.Product
	err := row.Scan(&p.ID, &p.Barcode, &p.Name, pq.Array(&p.Ingredients), &p.PictureURL, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound("product not found")
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`, id,
	).Scan(&exists)
	return exists, err
}

// GetByBarcodes is the single batched lookup behind scan enrichment.
func (r *ProductRepo) GetByBarcodes(ctx context.Context, barcodes []int64) (map[int64]domain.ProductSummary, error) {
	if len(barcodes) == 0 {
		return map[int64]domain.ProductSummary{}, nil
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT barcode, name, picture_url FROM products WHERE barcode = ANY($1)
`, pq.Array(barcodes))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64]domain.ProductSummary, len(barcodes))
	for rows.Next() {
		var barcode int64
		var s domain.ProductSummary
		if err := rows.Scan(&barcode, &s.Name, &s.PictureURL); err != nil {
			return nil, err
		}
		out[barcode] = s
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ProductRepo) LatestStatus(ctx context.Context, barcode int64) (*domain.Status, error) {
	row := r.db.QueryRowContext(ctx, latestStatusSQL, barcode)
	var s domain.Status
	err := row.Scan(&s.ID, &s.ProductBarcode, &s.Safe, &s.Explanation, &s.RecordedAt)
	if err == sql.ErrNoRows {
		return nil, nil // no verdict yet; caller renders "status unknown"
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// LatestStatuses picks the newest verdict per barcode in one query.
func (r *ProductRepo) LatestStatuses(ctx context.Context, barcodes []int64) (map[int64]*domain.Status, error) {
	if len(barcodes) == 0 {
		return map[int64]*domain.Status{}, nil
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT DISTINCT ON (product_barcode)
       id, product_barcode, safe, explanation, recorded_at
FROM statuses
WHERE product_barcode = ANY($1)
ORDER BY product_barcode, recorded_at DESC, id DESC
`, pq.Array(barcodes))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64]*domain.Status, len(barcodes))
	for rows.Next() {
		var s domain.Status
		if err := rows.Scan(&s.ID, &s.ProductBarcode, &s.Safe, &s.Explanation, &s.RecordedAt); err != nil {
			return nil, err
		}
		out[s.ProductBarcode] = &s
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ProductRepo) SearchByName(ctx context.Context, q string, limit int, hasCursor bool, afterName, afterID string) ([]*domain.Product, error) {
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
SELECT id, barcode, name, ingredients, picture_url, created_at
FROM products`
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

	var out []*domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Barcode, &p.Name, pq.Array(&p.Ingredients), &p.PictureURL, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// likePrefix escapes LIKE metacharacters in user input and appends the
// prefix wildcard.
func likePrefix(q string) string {
	rep := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return rep.Replace(q) + "%"
}
