// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// ListPostsFilter narrows the public post listing.
type ListPostsFilter struct {
	CategoryID string
	Limit      int
	Offset     int
}

// PostRepository defines the interface for post data operations.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	// Get loads a bare post row without resolving relations.
	Get(ctx context.Context, id string) (*models.Post, error)
	// FindByKey loads a fully resolved post: author {name,email},
	// category {name}, and comments with each commenter's name.
	FindByKey(ctx context.Context, key models.LookupKey) (*models.Post, error)
	// List returns a page of published posts plus the total match count.
	List(ctx context.Context, filter ListPostsFilter) ([]*models.Post, int64, error)
	Search(ctx context.Context, query string) ([]*models.Post, error)
	// IncrementViews bumps view_count by one in a single UPDATE statement.
	IncrementViews(ctx context.Context, id string) error
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id string) error
	AddComment(ctx context.Context, comment *models.Comment) error
	SlugExists(ctx context.Context, slug string) (bool, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) Get(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) FindByKey(ctx context.Context, key models.LookupKey) (*models.Post, error) {
	q := r.applyPostDetails(r.db.WithContext(ctx)).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Comments.User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		})

	switch key.Kind {
	case models.LookupBySlug:
		q = q.Where("slug = ?", key.Value)
	default:
		q = q.Where("id = ?", key.Value)
	}

	var post models.Post
	if err := q.First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, filter ListPostsFilter) ([]*models.Post, int64, error) {
	published := func(db *gorm.DB) *gorm.DB {
		q := db.Where("is_published = ?", true)
		if filter.CategoryID != "" {
			q = q.Where("category_id = ?", filter.CategoryID)
		}
		return q
	}

	var total int64
	if err := published(r.db.WithContext(ctx).Model(&models.Post{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Non-nil even when empty so the response serializes as a JSON array.
	posts := []*models.Post{}
	err := published(r.applyPostDetails(r.db.WithContext(ctx))).
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) Search(ctx context.Context, query string) ([]*models.Post, error) {
	like := "%" + query + "%"
	posts := []*models.Post{}
	err := r.db.WithContext(ctx).
		Preload("Author", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		Preload("Category", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		Where("is_published = ?", true).
		Where("title ILIKE ? OR content ILIKE ? OR tags ILIKE ?", like, like, like).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// applyPostDetails resolves the author to {name,email} and the category to {name}.
func (r *postRepository) applyPostDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email")
		}).
		Preload("Category", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		})
}

func (r *postRepository) IncrementViews(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	// Comments go with their post. The FK cascade covers Postgres; deleting
	// explicitly keeps the behavior identical on the sqlite test driver.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Post{}).Error
	})
}

func (r *postRepository) AddComment(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *postRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("slug = ?", slug).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
