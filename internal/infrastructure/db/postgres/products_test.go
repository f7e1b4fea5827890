package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepo_GetByBarcodes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductRepo(db)

	t.Run("empty_input_skips_query", func(t *testing.T) {
		out, err := repo.GetByBarcodes(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("maps_rows_by_barcode", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"barcode", "name", "picture_url"}).
			AddRow(int64(100), "Rice Cakes", "/p/100.jpg").
			AddRow(int64(200), "Oat Bar", "/p/200.jpg")

		mock.ExpectQuery(`WHERE barcode = ANY\(\$1\)`).
			WithArgs(pq.Array([]int64{100, 200})).
			WillReturnRows(rows)

		out, err := repo.GetByBarcodes(context.Background(), []int64{100, 200})
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, "Rice Cakes", out[100].Name)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepo_LatestStatus_NoVerdict(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductRepo(db)

	mock.ExpectQuery(`FROM statuses`).
		WithArgs(int64(100)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_barcode", "safe", "explanation", "recorded_at"}))

	st, err := repo.LatestStatus(context.Background(), 100)
	require.NoError(t, err)
	assert.Nil(t, st)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepo_SearchByName(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductRepo(db)
	cols := []string{"id", "barcode", "name", "ingredients", "picture_url", "created_at"}
	now := time.Now().UTC()

	t.Run("first_page_without_filter", func(t *testing.T) {
		mock.ExpectQuery(`FROM products\s+ORDER BY name ASC, id ASC\s+LIMIT \$1`).
			WithArgs(11).
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow("p1", int64(100), "Oat Bar", pq.Array([]string{"oats"}), "/p/100.jpg", now))

		out, err := repo.SearchByName(context.Background(), "", 11, false, "", "")
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, []string{"oats"}, out[0].Ingredients)
	})

	t.Run("prefix_filter_and_cursor", func(t *testing.T) {
		mock.ExpectQuery(`name ILIKE \$1 AND \(name, id\) > \(\$2, \$3\)`).
			WithArgs("oat%", "Oat Bar", "p1", 11).
			WillReturnRows(sqlmock.NewRows(cols))

		_, err := repo.SearchByName(context.Background(), "oat", 11, true, "Oat Bar", "p1")
		require.NoError(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikePrefix_EscapesMetacharacters(t *testing.T) {
	assert.Equal(t, "oat%", likePrefix("oat"))
	assert.Equal(t, `100\%\_raw\\%`, likePrefix(`100%_raw\`))
}
