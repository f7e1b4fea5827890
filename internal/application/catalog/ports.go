package catalog

import (
	"context"
	"time"

	"github.com/glutenpeek/tracker-service/internal/domain"
)

type ProductRepo interface {
	GetByBarcode(ctx context.Context, barcode int64) (*domain.Product, error)
	LatestStatus(ctx context.Context, barcode int64) (*domain.Status, error)
	Exists(ctx context.Context, id string) (bool, error)

	// SearchByName pages (name ASC, id ASC); q is an optional
	// case-insensitive prefix filter applied before pagination.
	SearchByName(ctx context.Context, q string, limit int, hasCursor bool, afterName, afterID string) ([]*domain.Product, error)
}

type ClaimRepo interface {
	Exists(ctx context.Context, id string) (bool, error)

	// ListByUser pages (created_at DESC, id DESC).
	ListByUser(ctx context.Context, userID string, limit int, hasCursor bool, afterAt time.Time, afterID string) ([]*domain.Claim, error)
}
