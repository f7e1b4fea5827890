package timeline

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/glutenpeek/tracker-service/internal/domain"
	"github.com/glutenpeek/tracker-service/internal/pagination"
)

// FeedItem is one scan in the recency feed, enriched with its product
// summary, the product's latest safety verdict, and the symptoms the user
// reported against it.
type FeedItem struct {
	Scan             *domain.Scan
	Product          domain.ProductSummary
	ProductStatus    domain.StatusSummary
	ReportedSymptoms []SymptomEntry
}

type SymptomEntry struct {
	Name     string `json:"name"`
	Severity int    `json:"severity"`
}

// RecentScans pages through a user's scans, newest first
// (occurred_at DESC, id DESC).
func (s *Service) RecentScans(ctx context.Context, userID, cursorToken string, limit int) (pagination.Page[FeedItem], error) {
	if strings.TrimSpace(userID) == "" {
		return pagination.Page[FeedItem]{}, domain.ErrUnauthorized("user identity is required")
	}
	limit = pagination.ClampLimit(limit)

	cur, err := pagination.Decode(cursorToken)
	if err != nil {
		return pagination.Page[FeedItem]{}, err
	}

	var afterAt time.Time
	var afterID string
	hasCursor := cur != nil
	if hasCursor {
		afterAt, err = time.Parse(time.RFC3339Nano, cur.Key)
		if err != nil {
			return pagination.Page[FeedItem]{}, domain.ErrInvalidCursor("malformed cursor")
		}
		afterID = cur.ID
		// A cursor anchored on a deleted scan would silently resume from
		// the wrong position in the order; reject it instead.
		ok, err := s.store.ScanExists(ctx, afterID)
		if err != nil {
			return pagination.Page[FeedItem]{}, err
		}
		if !ok {
			return pagination.Page[FeedItem]{}, domain.ErrInvalidCursor("cursor no longer resolves")
		}
	}

	cacheKey := feedCacheKey(userID, limit)
	if !hasCursor && s.cache != nil {
		var cached pagination.Page[FeedItem]
		found, err := s.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			zlog.Warn().Err(err).Str("key", cacheKey).Msg("feed cache get failed")
		} else if found {
			return cached, nil
		}
	}

	scans, err := s.store.RecentScans(ctx, userID, limit+1, hasCursor, afterAt, afterID)
	if err != nil {
		return pagination.Page[FeedItem]{}, err
	}

	items, err := s.enrichFeed(ctx, scans)
	if err != nil {
		return pagination.Page[FeedItem]{}, err
	}

	page := pagination.Build(items, limit, func(it FeedItem) pagination.Cursor {
		return pagination.Cursor{
			Key: it.Scan.OccurredAt.UTC().Format(time.RFC3339Nano),
			ID:  it.Scan.ID,
		}
	})

	if !hasCursor && s.cache != nil && len(page.Items) > 0 {
		if err := s.cache.Set(ctx, cacheKey, page, s.ttlFeed); err != nil {
			zlog.Warn().Err(err).Str("key", cacheKey).Msg("feed cache set failed")
		}
	}
	return page, nil
}

func (s *Service) enrichFeed(ctx context.Context, scans []*domain.Scan) ([]FeedItem, error) {
	if len(scans) == 0 {
		return nil, nil
	}

	summaries, err := s.resolveProducts(ctx, scans)
	if err != nil {
		return nil, err
	}

	barcodes := make([]int64, 0, len(summaries))
	for b := range summaries {
		barcodes = append(barcodes, b)
	}
	statuses, err := s.products.LatestStatuses(ctx, barcodes)
	if err != nil {
		return nil, err
	}

	scanIDs := make([]string, 0, len(scans))
	for _, sc := range scans {
		scanIDs = append(scanIDs, sc.ID)
	}
	symptoms, err := s.store.SymptomsByScanIDs(ctx, scanIDs)
	if err != nil {
		return nil, err
	}
	symptomsByScan := make(map[string][]*domain.Symptom, len(symptoms))
	for _, sy := range symptoms {
		symptomsByScan[sy.ScanID] = append(symptomsByScan[sy.ScanID], sy)
	}

	items := make([]FeedItem, 0, len(scans))
	for _, sc := range scans {
		items = append(items, FeedItem{
			Scan:             sc,
			Product:          summaries[sc.ProductBarcode],
			ProductStatus:    domain.SummarizeStatus(statuses[sc.ProductBarcode]),
			ReportedSymptoms: dedupeSymptoms(symptomsByScan[sc.ID]),
		})
	}
	return items, nil
}

// dedupeSymptoms flattens the severity maps of all reports for a scan,
// keeping the highest severity per symptom name.
func dedupeSymptoms(reports []*domain.Symptom) []SymptomEntry {
	if len(reports) == 0 {
		return nil
	}
	highest := map[string]int{}
	for _, r := range reports {
		for name, sev := range r.Severities {
			if sev > highest[name] {
				highest[name] = sev
			}
		}
	}
	out := make([]SymptomEntry, 0, len(highest))
	for name, sev := range highest {
		out = append(out, SymptomEntry{Name: name, Severity: sev})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func feedCacheKey(userID string, limit int) string {
	return "tracker:feed:" + userID + ":" + strconv.Itoa(limit)
}
