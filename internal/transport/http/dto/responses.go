package dto

import "time"

// PageResp is the wire shape of a keyset page. NextCursor is null iff no
// further items exist.
type PageResp[T any] struct {
	Items      []T     `json:"items"`
	NextCursor *string `json:"nextCursor"`
}

type ScanResp struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	ProductBarcode int64     `json:"productBarcode"`
	Date           time.Time `json:"date"`
}

type SymptomResp struct {
	ID             string         `json:"id"`
	UserID         string         `json:"userId"`
	ScanID         string         `json:"scanId"`
	ProductBarcode int64          `json:"productBarcode"`
	Date           time.Time      `json:"date"`
	Symptoms       map[string]int `json:"symptoms"`
}

type ProductSummaryResp struct {
	Name       string `json:"name"`
	PictureURL string `json:"pictureUrl"`
}

type StatusResp struct {
	Level       int    `json:"level"`
	Description string `json:"description"`
}

type DayBucketResp struct {
	Date     string             `json:"date"`
	UserID   string             `json:"userId"`
	Scans    []EnrichedScanResp `json:"scans"`
	Symptoms []SymptomResp      `json:"symptoms"`
}

type EnrichedScanResp struct {
	ID             string             `json:"id"`
	ProductBarcode int64              `json:"productBarcode"`
	Date           time.Time          `json:"date"`
	Product        ProductSummaryResp `json:"product"`
}

type SymptomEntryResp struct {
	Name     string `json:"name"`
	Severity int    `json:"severity"`
}

type FeedItemResp struct {
	ID               string             `json:"id"`
	Date             time.Time          `json:"date"`
	Product          ProductSummaryResp `json:"product"`
	ProductStatus    StatusResp         `json:"productStatus"`
	ReportedSymptoms []SymptomEntryResp `json:"reportedSymptoms"`
}

type ProductResp struct {
	ID          string      `json:"id"`
	Barcode     int64       `json:"barcode"`
	Name        string      `json:"name"`
	Ingredients []string    `json:"ingredients"`
	PictureURL  string      `json:"pictureUrl"`
	Status      *StatusResp `json:"status,omitempty"`
}

type PostResp struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	PostText  string    `json:"postText"`
	MediaURLs []string  `json:"mediaUrls"`
	Likes     []string  `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ClaimResp struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	ProductBarcode int64     `json:"productBarcode"`
	Explanation    string    `json:"explanation"`
	MediaProofURL  string    `json:"mediaProofUrl,omitempty"`
	Closed         bool      `json:"closed"`
	CreatedAt      time.Time `json:"createdAt"`
}

type UserResp struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Bio        string `json:"bio,omitempty"`
	PictureURL string `json:"pfp,omitempty"`
}

type ProfileResp struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Bio        string `json:"bio,omitempty"`
	PictureURL string `json:"pfp,omitempty"`
	Streak     int    `json:"streak"`
}
