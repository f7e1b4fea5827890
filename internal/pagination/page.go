package pagination

const (
	DefaultLimit = 10
	MaxLimit     = 50
)

// ClampLimit applies the server-side default and cap.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// Page is one keyset-paginated slice of a collection. NextCursor is empty
// iff no further items exist after this page.
type Page[T any] struct {
	Items      []T
	NextCursor string
}

// KeyFunc extracts the (sortKey, id) pair that anchors the page boundary.
type KeyFunc[T any] func(T) Cursor

// Build trims an over-fetched result set (limit+1 rows requested) down to
// the page and derives the continuation cursor from the last kept item.
// Requesting one extra row is what tells us whether a next page exists
// without a separate count query.
func Build[T any](items []T, limit int, key KeyFunc[T]) Page[T] {
	if len(items) <= limit {
		return Page[T]{Items: items}
	}
	items = items[:limit]
	last := key(items[limit-1])
	return Page[T]{Items: items, NextCursor: Encode(&last)}
}
