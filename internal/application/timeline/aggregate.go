package timeline

import (
	"context"
	"strings"
	"time"

	"github.com/glutenpeek/tracker-service/internal/domain"
)

// ParseDay parses an ISO calendar date and pins it to the start of that day
// in the reference timezone (UTC).
func ParseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.ParseInLocation(domain.DayFormat, s, time.UTC)
	if err != nil {
		return time.Time{}, domain.ErrInvalidDate("date must be YYYY-MM-DD")
	}
	return t, nil
}

// Aggregate returns one bucket per calendar day from start to end inclusive,
// ascending, with empty buckets present: this models a calendar, not a
// sparse event log.
func (s *Service) Aggregate(ctx context.Context, userID, startDate, endDate string) ([]domain.DayBucket, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.ErrUnauthorized("user identity is required")
	}
	start, err := ParseDay(startDate)
	if err != nil {
		return nil, err
	}
	end, err := ParseDay(endDate)
	if err != nil {
		return nil, err
	}
	if start.After(end) {
		return nil, domain.ErrInvalidRange("start date must not be after end date")
	}

	// Half-open instant interval [start, end+1d). The upper bound is the
	// start of the day AFTER end, so late events on the last day are kept.
	// AddDate returns a fresh value; start and end stay untouched for the
	// day-list loop below.
	from := start
	to := end.AddDate(0, 0, 1)

	scans, err := s.store.ScansInRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	symptoms, err := s.store.SymptomsInRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	summaries, err := s.resolveProducts(ctx, scans)
	if err != nil {
		return nil, err
	}

	scansByDay := make(map[string][]domain.EnrichedScan, len(scans))
	for _, sc := range scans {
		day := domain.CalendarDay(sc.OccurredAt)
		scansByDay[day] = append(scansByDay[day], domain.EnrichedScan{
			Scan:    sc,
			Product: summaries[sc.ProductBarcode],
		})
	}
	symptomsByDay := make(map[string][]*domain.Symptom, len(symptoms))
	for _, sy := range symptoms {
		day := domain.CalendarDay(sy.OccurredAt)
		symptomsByDay[day] = append(symptomsByDay[day], sy)
	}

	var out []domain.DayBucket
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := domain.CalendarDay(d)
		out = append(out, domain.DayBucket{
			Date:     key,
			UserID:   userID,
			Scans:    scansByDay[key],
			Symptoms: symptomsByDay[key],
		})
	}
	return out, nil
}

// resolveProducts batches one lookup over the distinct barcode set. A scan
// whose product is gone gets the placeholder summary instead of failing the
// whole aggregation.
func (s *Service) resolveProducts(ctx context.Context, scans []*domain.Scan) (map[int64]domain.ProductSummary, error) {
	if len(scans) == 0 {
		return map[int64]domain.ProductSummary{}, nil
	}
	seen := make(map[int64]struct{}, len(scans))
	barcodes := make([]int64, 0, len(scans))
	for _, sc := range scans {
		if _, ok := seen[sc.ProductBarcode]; ok {
			continue
		}
		seen[sc.ProductBarcode] = struct{}{}
		barcodes = append(barcodes, sc.ProductBarcode)
	}

	found, err := s.products.GetByBarcodes(ctx, barcodes)
	if err != nil {
		return nil, err
	}
	out := make(map[int64]domain.ProductSummary, len(barcodes))
	for _, b := range barcodes {
		if p, ok := found[b]; ok {
			out[b] = p
		} else {
			out[b] = domain.PlaceholderProduct()
		}
	}
	return out, nil
}
