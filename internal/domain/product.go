package domain

import (
	"strings"
	"time"
)

type Product struct {
	ID          string
	Barcode     int64
	Name        string
	Ingredients []string
	PictureURL  string
	CreatedAt   time.Time
}

// ProductSummary is the denormalized record attached to scans. A missing
// product degrades to the placeholder instead of failing the aggregation.
type ProductSummary struct {
	Name       string `json:"name"`
	PictureURL string `json:"pictureUrl"`
}

func PlaceholderProduct() ProductSummary {
	return ProductSummary{Name: "Unknown Product", PictureURL: "/placeholder-product.jpg"}
}

// Status is a point-in-time safety verdict for a product. Safe is the raw
// flag recorded by moderation; Explanation carries the reasoning.
type Status struct {
	ID             string
	ProductBarcode int64
	Safe           bool
	Explanation    string
	RecordedAt     time.Time
}

// StatusSummary is the 1..5 level shown to clients.
type StatusSummary struct {
	Level       int    `json:"level"`
	Description string `json:"description"`
}

// SummarizeStatus maps the latest moderation verdict to a display level.
// Nil means no verdict recorded yet.
func SummarizeStatus(s *Status) StatusSummary {
	if s == nil {
		return StatusSummary{Level: 3, Description: "Status unknown"}
	}
	if !s.Safe {
		desc := s.Explanation
		if desc == "" {
			desc = "Not suitable for consumption"
		}
		return StatusSummary{Level: 1, Description: desc}
	}
	if strings.Contains(strings.ToLower(s.Explanation), "trace") {
		return StatusSummary{Level: 3, Description: s.Explanation}
	}
	desc := s.Explanation
	if desc == "" {
		desc = "Certified safe for consumption"
	}
	return StatusSummary{Level: 5, Description: desc}
}
