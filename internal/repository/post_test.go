package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"inkwell/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestPostRepository_Get(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	postID := "64f1b2c3d4e5f60718293a4b"

	tests := []struct {
		name          string
		mockBehavior  func()
		expectedError bool
	}{
		{
			name: "Success",
			mockBehavior: func() {
				rows := sqlmock.NewRows([]string{"id", "title", "slug"}).
					AddRow(postID, "First Post", "first-post")
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE id = $1 ORDER BY "posts"."id" LIMIT $2`)).
					WithArgs(postID, 1).
					WillReturnRows(rows)
			},
		},
		{
			name: "Not Found",
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE id = $1`)).
					WithArgs(postID, 1).
					WillReturnError(gorm.ErrRecordNotFound)
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()
			post, err := repo.Get(ctx, postID)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, post)
			} else if assert.NotNil(t, post) {
				assert.Equal(t, "First Post", post.Title)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostRepository_FindByKey_BySlug(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	postID := "64f1b2c3d4e5f60718293a4b"
	authorID := "a1b2c3d4e5f60718293a4b5c"
	categoryID := "b2c3d4e5f60718293a4b5c6d"

	postRows := sqlmock.NewRows([]string{"id", "title", "slug", "author_id", "category_id"}).
		AddRow(postID, "First Post", "first-post", authorID, categoryID)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE slug = $1`)).
		WithArgs("first-post", 1).
		WillReturnRows(postRows)

	// Preloads run in alphabetical order: Author, Category, Comments, Comments.User.
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id","name","email" FROM "users"`)).
		WithArgs(authorID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}).
			AddRow(authorID, "Ada", "ada@example.com"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id","name" FROM "categories"`)).
		WithArgs(categoryID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(categoryID, "Technology"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "comments" WHERE "comments"."post_id" = $1 ORDER BY created_at ASC`)).
		WithArgs(postID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "post_id", "user_id", "content"}))

	post, err := repo.FindByKey(ctx, models.LookupKey{Kind: models.LookupBySlug, Value: "first-post"})
	assert.NoError(t, err)
	if assert.NotNil(t, post) {
		assert.Equal(t, postID, post.ID)
		if assert.NotNil(t, post.Author) {
			assert.Equal(t, "Ada", post.Author.Name)
			assert.Equal(t, "ada@example.com", post.Author.Email)
		}
		if assert.NotNil(t, post.Category) {
			assert.Equal(t, "Technology", post.Category.Name)
		}
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_List(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	t.Run("Published Only With Category Filter", func(t *testing.T) {
		categoryID := "b2c3d4e5f60718293a4b5c6d"

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "posts" WHERE is_published = $1 AND category_id = $2`)).
			WithArgs(true, categoryID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		postID := "64f1b2c3d4e5f60718293a4b"
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE is_published = $1 AND category_id = $2 ORDER BY created_at DESC LIMIT $3`)).
			WithArgs(true, categoryID, 10).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).AddRow(postID, "First Post"))

		posts, total, err := repo.List(ctx, ListPostsFilter{CategoryID: categoryID, Limit: 10, Offset: 0})
		assert.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, posts, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Count Error Propagates", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "posts"`)).
			WillReturnError(errors.New("connection timeout"))

		posts, total, err := repo.List(ctx, ListPostsFilter{Limit: 10})
		assert.Error(t, err)
		assert.Zero(t, total)
		assert.Nil(t, posts)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostRepository_Search(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE is_published = $1 AND (title ILIKE $2 OR content ILIKE $3 OR tags ILIKE $4) ORDER BY created_at DESC`)).
		WithArgs(true, "%gopher%", "%gopher%", "%gopher%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}))

	posts, err := repo.Search(ctx, "gopher")
	assert.NoError(t, err)
	assert.NotNil(t, posts, "empty result must stay a JSON array, not null")
	assert.Empty(t, posts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_IncrementViews(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	postID := "64f1b2c3d4e5f60718293a4b"

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "posts" SET "view_count"=view_count + $1 WHERE id = $2`)).
		WithArgs(1, postID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.IncrementViews(ctx, postID)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	postID := "64f1b2c3d4e5f60718293a4b"

	t.Run("Removes Comments And Post In One Transaction", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "comments" WHERE post_id = $1`)).
			WithArgs(postID).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "posts" WHERE id = $1`)).
			WithArgs(postID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Delete(ctx, postID)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rolls Back On Error", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "comments" WHERE post_id = $1`)).
			WithArgs(postID).
			WillReturnError(errors.New("connection timeout"))
		mock.ExpectRollback()

		err := repo.Delete(ctx, postID)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostRepository_SlugExists(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "posts" WHERE slug = $1`)).
		WithArgs("first-post").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.SlugExists(ctx, "first-post")
	assert.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
