package domain

import "time"

type Post struct {
	ID        string
	UserID    string
	PostText  string
	MediaURLs []string
	Likes     []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Claim is a user-filed challenge against a product's safety verdict.
type Claim struct {
	ID             string
	UserID         string
	ProductBarcode int64
	Explanation    string
	MediaProofURL  string
	Closed         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type User struct {
	ID         string
	Name       string
	Email      string
	Bio        string
	PictureURL string
	CreatedAt  time.Time
}
