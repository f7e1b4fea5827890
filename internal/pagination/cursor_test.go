package pagination

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glutenpeek/tracker-service/internal/domain"
)

func TestCursor_RoundTrip(t *testing.T) {
	cases := []Cursor{
		{Key: "2024-03-01T10:00:00.000000001Z", ID: "a1b2"},
		{Key: "gluten-free | oats", ID: "u-42"}, // key may contain the separator
		{Key: "", ID: "only-id"},
	}
	for _, c := range cases {
		tok := Encode(&c)
		got, err := Decode(tok)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, c.Key, got.Key)
		assert.Equal(t, c.ID, got.ID)
	}
}

func TestCursor_EmptyToken(t *testing.T) {
	got, err := Decode("")
	assert.NoError(t, err)
	assert.Nil(t, got)

	got, err = Decode("   ")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestCursor_Malformed(t *testing.T) {
	for _, tok := range []string{
		"not base64 %%%",
		"aGVsbG8",      // decodes but has no separator
		"fHNvbWUta2V5", // "|some-key": empty id
	} {
		got, err := Decode(tok)
		assert.Nil(t, got)
		require.Error(t, err, "token %q", tok)
		var ae *domain.AppError
		require.True(t, errors.As(err, &ae))
		assert.Equal(t, domain.CodeInvalidCursor, ae.Code)
	}
}

func TestCursor_EncodeNil(t *testing.T) {
	assert.Equal(t, "", Encode(nil))
}

func TestBuild_NoMorePages(t *testing.T) {
	items := []int{1, 2, 3}
	p := Build(items, 5, func(i int) Cursor { return Cursor{ID: "x"} })
	assert.Equal(t, items, p.Items)
	assert.Empty(t, p.NextCursor)

	// exactly limit rows back: also no next page
	p = Build(items, 3, func(i int) Cursor { return Cursor{ID: "x"} })
	assert.Len(t, p.Items, 3)
	assert.Empty(t, p.NextCursor)
}

func TestBuild_OverfetchTrims(t *testing.T) {
	items := []string{"a", "b", "c", "d"} // limit+1 rows came back
	p := Build(items, 3, func(s string) Cursor { return Cursor{Key: s, ID: "id-" + s} })
	assert.Equal(t, []string{"a", "b", "c"}, p.Items)

	cur, err := Decode(p.NextCursor)
	require.NoError(t, err)
	// the cursor anchors on the LAST KEPT item, not the dropped extra one
	assert.Equal(t, "c", cur.Key)
	assert.Equal(t, "id-c", cur.ID)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, ClampLimit(0))
	assert.Equal(t, DefaultLimit, ClampLimit(-7))
	assert.Equal(t, 25, ClampLimit(25))
	assert.Equal(t, MaxLimit, ClampLimit(5000))
}
