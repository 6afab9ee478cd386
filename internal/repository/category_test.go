package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestCategoryRepository_List(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	// No Redis client wired in tests, so List always hits the database.
	rows := sqlmock.NewRows([]string{"id", "name"}).
		AddRow("b2c3d4e5f60718293a4b5c6d", "Programming").
		AddRow("c3d4e5f60718293a4b5c6d7e", "Travel")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "categories" ORDER BY name ASC`)).
		WillReturnRows(rows)

	categories, err := repo.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, categories, 2)
	assert.Equal(t, "Programming", categories[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_Exists(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	categoryID := "b2c3d4e5f60718293a4b5c6d"

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "categories" WHERE id = $1`)).
			WithArgs(categoryID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.Exists(ctx, categoryID)
		assert.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("Missing", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "categories" WHERE id = $1`)).
			WithArgs(categoryID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		exists, err := repo.Exists(ctx, categoryID)
		assert.NoError(t, err)
		assert.False(t, exists)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
