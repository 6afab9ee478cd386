package repository

import (
	"context"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository defines the interface for category data operations.
type CategoryRepository interface {
	// List returns all categories ordered by name, served through the
	// cache-aside layer when Redis is available.
	List(ctx context.Context) ([]*models.Category, error)
	Get(ctx context.Context, id string) (*models.Category, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, category *models.Category) error
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	var categories []*models.Category
	err := cache.Aside(ctx, cache.CategoryListKey(), &categories, cache.CategoryTTL, func() error {
		return r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	})
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) Get(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return err
	}
	cache.Invalidate(ctx, cache.CategoryListKey())
	return nil
}
