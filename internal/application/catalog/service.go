package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/glutenpeek/tracker-service/internal/domain"
	"github.com/glutenpeek/tracker-service/internal/pagination"
)

type Service struct {
	products ProductRepo
	claims   ClaimRepo
}

func New(products ProductRepo, claims ClaimRepo) *Service {
	return &Service{products: products, claims: claims}
}

// ProductView joins a product with its latest safety verdict.
type ProductView struct {
	Product *domain.Product
	Status  domain.StatusSummary
}

func (s *Service) GetProduct(ctx context.Context, barcode int64) (ProductView, error) {
	p, err := s.products.GetByBarcode(ctx, barcode)
	if err != nil {
		return ProductView{}, err
	}
	st, err := s.products.LatestStatus(ctx, barcode)
	if err != nil {
		return ProductView{}, err
	}
	return ProductView{Product: p, Status: domain.SummarizeStatus(st)}, nil
}

// SearchProducts pages the catalog by (name ASC, id ASC).
func (s *Service) SearchProducts(ctx context.Context, q, cursorToken string, limit int) (pagination.Page[*domain.Product], error) {
	limit = pagination.ClampLimit(limit)
	q = strings.TrimSpace(q)

	cur, err := pagination.Decode(cursorToken)
	if err != nil {
		return pagination.Page[*domain.Product]{}, err
	}
	var afterName, afterID string
	hasCursor := cur != nil
	if hasCursor {
		afterName, afterID = cur.Key, cur.ID
		ok, err := s.products.Exists(ctx, afterID)
		if err != nil {
			return pagination.Page[*domain.Product]{}, err
		}
		if !ok {
			return pagination.Page[*domain.Product]{}, domain.ErrInvalidCursor("cursor no longer resolves")
		}
	}

	items, err := s.products.SearchByName(ctx, q, limit+1, hasCursor, afterName, afterID)
	if err != nil {
		return pagination.Page[*domain.Product]{}, err
	}
	return pagination.Build(items, limit, func(p *domain.Product) pagination.Cursor {
		return pagination.Cursor{Key: p.Name, ID: p.ID}
	}), nil
}

// ListClaims pages a user's claims, newest first.
func (s *Service) ListClaims(ctx context.Context, userID, cursorToken string, limit int) (pagination.Page[*domain.Claim], error) {
	if strings.TrimSpace(userID) == "" {
		return pagination.Page[*domain.Claim]{}, domain.ErrUnauthorized("user identity is required")
	}
	limit = pagination.ClampLimit(limit)

	cur, err := pagination.Decode(cursorToken)
	if err != nil {
		return pagination.Page[*domain.Claim]{}, err
	}
	var afterAt time.Time
	var afterID string
	hasCursor := cur != nil
	if hasCursor {
		afterAt, err = time.Parse(time.RFC3339Nano, cur.Key)
		if err != nil {
			return pagination.Page[*domain.Claim]{}, domain.ErrInvalidCursor("malformed cursor")
		}
		afterID = cur.ID
		ok, err := s.claims.Exists(ctx, afterID)
		if err != nil {
			return pagination.Page[*domain.Claim]{}, err
		}
		if !ok {
			return pagination.Page[*domain.Claim]{}, domain.ErrInvalidCursor("cursor no longer resolves")
		}
	}

	items, err := s.claims.ListByUser(ctx, userID, limit+1, hasCursor, afterAt, afterID)
	if err != nil {
		return pagination.Page[*domain.Claim]{}, err
	}
	return pagination.Build(items, limit, func(c *domain.Claim) pagination.Cursor {
		return pagination.Cursor{Key: c.CreatedAt.UTC().Format(time.RFC3339Nano), ID: c.ID}
	}), nil
}
