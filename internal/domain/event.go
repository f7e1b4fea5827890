package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DayFormat is the canonical calendar-date layout. All instant-to-date
// conversions go through the UTC reference timezone; mixing a local date
// with UTC range boundaries is the bug class this package exists to avoid.
const DayFormat = "2006-01-02"

// CalendarDay normalizes an instant to its calendar date in the reference
// timezone (UTC).
func CalendarDay(t time.Time) string {
	return t.UTC().Format(DayFormat)
}

// Scan is a product-scan event. The timestamp is the sole ordering and
// grouping key; UserID never changes after creation.
type Scan struct {
	ID             string
	UserID         string
	ProductBarcode int64
	OccurredAt     time.Time
	CreatedAt      time.Time
}

func NewScan(userID string, barcode int64, occurredAt, now time.Time) (*Scan, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrUnauthorized("user identity is required")
	}
	if barcode <= 0 {
		return nil, ErrValidation("product_barcode must be positive")
	}
	if occurredAt.IsZero() {
		return nil, ErrValidation("date is required")
	}
	return &Scan{
		ID:             uuid.NewString(),
		UserID:         userID,
		ProductBarcode: barcode,
		OccurredAt:     occurredAt.UTC(),
		CreatedAt:      now.UTC(),
	}, nil
}

// SeverityMap maps a symptom name to its reported severity (1..5).
type SeverityMap map[string]int

const (
	SeverityMin = 1
	SeverityMax = 5
)

// Validate rejects empty maps and out-of-range severities at the boundary,
// before anything reaches persistence.
func (m SeverityMap) Validate() error {
	if len(m) == 0 {
		return ErrValidation("at least one symptom is required")
	}
	for name, sev := range m {
		if strings.TrimSpace(name) == "" {
			return ErrValidation("symptom name must be non-empty")
		}
		if sev < SeverityMin || sev > SeverityMax {
			return ErrValidationMeta("severity out of range", map[string]string{
				name: "must be between 1 and 5",
			})
		}
	}
	return nil
}

// Symptom is a symptom-report event tied to a scan.
type Symptom struct {
	ID             string
	UserID         string
	ScanID         string
	ProductBarcode int64
	OccurredAt     time.Time
	Severities     SeverityMap
	CreatedAt      time.Time
}

func NewSymptom(userID, scanID string, barcode int64, occurredAt time.Time, severities SeverityMap, now time.Time) (*Symptom, error) {
	userID = strings.TrimSpace(userID)
	scanID = strings.TrimSpace(scanID)
	if userID == "" {
		return nil, ErrUnauthorized("user identity is required")
	}
	if scanID == "" {
		return nil, ErrValidation("scan_id is required")
	}
	if barcode <= 0 {
		return nil, ErrValidation("product_barcode must be positive")
	}
	if occurredAt.IsZero() {
		return nil, ErrValidation("date is required")
	}
	if err := severities.Validate(); err != nil {
		return nil, err
	}
	return &Symptom{
		ID:             uuid.NewString(),
		UserID:         userID,
		ScanID:         scanID,
		ProductBarcode: barcode,
		OccurredAt:     occurredAt.UTC(),
		Severities:     severities,
		CreatedAt:      now.UTC(),
	}, nil
}

// DayBucket aggregates one user's events for one calendar day.
// It is a pure function of the event set; the persisted day row (if any)
// only anchors symptom reports and must behave identically.
type DayBucket struct {
	Date     string
	UserID   string
	Scans    []EnrichedScan
	Symptoms []*Symptom
}

// EnrichedScan is a scan joined with its denormalized product summary.
type EnrichedScan struct {
	Scan    *Scan
	Product ProductSummary
}
