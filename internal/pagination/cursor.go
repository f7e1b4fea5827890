package pagination

import (
	"encoding/base64"
	"strings"

	"github.com/glutenpeek/tracker-service/internal/domain"
)

// Cursor identifies the last item of the previous page by its sort key and
// tie-breaking unique id. Key is the string-encoded primary sort value
// (RFC3339Nano for time keys, the raw lowercase value for name keys).
type Cursor struct {
	Key string
	ID  string
}

// Encode builds the opaque token: base64url("id|key"). The id goes first
// because the key may itself contain the separator.
func Encode(c *Cursor) string {
	if c == nil {
		return ""
	}
	raw := c.ID + "|" + c.Key
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// Decode reconstructs the query boundary. An unparseable token is a client
// error, never a silent empty result.
func Decode(s string) (*Cursor, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, domain.ErrInvalidCursor("malformed cursor")
	}
	parts := strings.SplitN(string(b), "|", 2)
	if len(parts) != 2 || parts[0] == "" {
		return nil, domain.ErrInvalidCursor("malformed cursor")
	}
	return &Cursor{ID: parts[0], Key: parts[1]}, nil
}
