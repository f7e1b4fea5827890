package dto

import (
	"github.com/glutenpeek/tracker-service/internal/application/catalog"
	"github.com/glutenpeek/tracker-service/internal/application/directory"
	"github.com/glutenpeek/tracker-service/internal/application/timeline"
	"github.com/glutenpeek/tracker-service/internal/domain"
	"github.com/glutenpeek/tracker-service/internal/pagination"
)

// ToPageResp converts an internal page, mapping each item. The empty-string
// continuation cursor becomes JSON null.
func ToPageResp[T, R any](p pagination.Page[T], conv func(T) R) PageResp[R] {
	items := make([]R, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, conv(it))
	}
	var next *string
	if p.NextCursor != "" {
		next = &p.NextCursor
	}
	return PageResp[R]{Items: items, NextCursor: next}
}

func ToScanResp(s *domain.Scan) ScanResp {
	return ScanResp{
		ID:             s.ID,
		UserID:         s.UserID,
		ProductBarcode: s.ProductBarcode,
		Date:           s.OccurredAt,
	}
}

func ToSymptomResp(s *domain.Symptom) SymptomResp {
	return SymptomResp{
		ID:             s.ID,
		UserID:         s.UserID,
		ScanID:         s.ScanID,
		ProductBarcode: s.ProductBarcode,
		Date:           s.OccurredAt,
		Symptoms:       s.Severities,
	}
}

func ToDayBucketResp(b domain.DayBucket) DayBucketResp {
	scans := make([]EnrichedScanResp, 0, len(b.Scans))
	for _, es := range b.Scans {
		scans = append(scans, EnrichedScanResp{
			ID:             es.Scan.ID,
			ProductBarcode: es.Scan.ProductBarcode,
			Date:           es.Scan.OccurredAt,
			Product:        ProductSummaryResp{Name: es.Product.Name, PictureURL: es.Product.PictureURL},
		})
	}
	symptoms := make([]SymptomResp, 0, len(b.Symptoms))
	for _, sy := range b.Symptoms {
		symptoms = append(symptoms, ToSymptomResp(sy))
	}
	return DayBucketResp{
		Date:     b.Date,
		UserID:   b.UserID,
		Scans:    scans,
		Symptoms: symptoms,
	}
}

func ToFeedItemResp(it timeline.FeedItem) FeedItemResp {
	entries := make([]SymptomEntryResp, 0, len(it.ReportedSymptoms))
	for _, e := range it.ReportedSymptoms {
		entries = append(entries, SymptomEntryResp{Name: e.Name, Severity: e.Severity})
	}
	return FeedItemResp{
		ID:               it.Scan.ID,
		Date:             it.Scan.OccurredAt,
		Product:          ProductSummaryResp{Name: it.Product.Name, PictureURL: it.Product.PictureURL},
		ProductStatus:    StatusResp{Level: it.ProductStatus.Level, Description: it.ProductStatus.Description},
		ReportedSymptoms: entries,
	}
}

func ToProductResp(v catalog.ProductView) ProductResp {
	return ProductResp{
		ID:          v.Product.ID,
		Barcode:     v.Product.Barcode,
		Name:        v.Product.Name,
		Ingredients: v.Product.Ingredients,
		PictureURL:  v.Product.PictureURL,
		Status:      &StatusResp{Level: v.Status.Level, Description: v.Status.Description},
	}
}

func ToProductItemResp(p *domain.Product) ProductResp {
	return ProductResp{
		ID:          p.ID,
		Barcode:     p.Barcode,
		Name:        p.Name,
		Ingredients: p.Ingredients,
		PictureURL:  p.PictureURL,
	}
}

func ToPostResp(p *domain.Post) PostResp {
	return PostResp{
		ID:        p.ID,
		UserID:    p.UserID,
		PostText:  p.PostText,
		MediaURLs: p.MediaURLs,
		Likes:     p.Likes,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func ToClaimResp(c *domain.Claim) ClaimResp {
	return ClaimResp{
		ID:             c.ID,
		UserID:         c.UserID,
		ProductBarcode: c.ProductBarcode,
		Explanation:    c.Explanation,
		MediaProofURL:  c.MediaProofURL,
		Closed:         c.Closed,
		CreatedAt:      c.CreatedAt,
	}
}

func ToUserResp(u *domain.User) UserResp {
	return UserResp{
		ID:         u.ID,
		Name:       u.Name,
		Bio:        u.Bio,
		PictureURL: u.PictureURL,
	}
}

func ToProfileResp(p directory.Profile) ProfileResp {
	return ProfileResp{
		ID:         p.User.ID,
		Name:       p.User.Name,
		Email:      p.User.Email,
		Bio:        p.User.Bio,
		PictureURL: p.User.PictureURL,
		Streak:     p.Streak,
	}
}
