// Package service contains the application's business logic.
package service

import (
	"context"
	"errors"
	"math"
	"strings"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

var validate = validator.New()

// Caller identifies who is performing an operation. Handlers build it from
// the authenticated request; services never reach back into the transport.
type Caller struct {
	ID   string
	Role string
}

// IsAdmin reports whether the caller holds the admin role.
func (c Caller) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

// CanModify reports whether the caller may update or delete the post.
// Authors own their posts; admins own everything.
func CanModify(post *models.Post, caller Caller) bool {
	if post == nil {
		return false
	}
	return post.AuthorID == caller.ID || caller.IsAdmin()
}

// CreatePostInput carries the fields accepted when creating a post.
type CreatePostInput struct {
	Title         string   `json:"title" validate:"required,max=100"`
	Content       string   `json:"content" validate:"required"`
	Excerpt       string   `json:"excerpt" validate:"max=200"`
	CategoryID    string   `json:"category" validate:"required"`
	Tags          []string `json:"tags"`
	FeaturedImage string   `json:"featuredImage"`
	IsPublished   *bool    `json:"isPublished"`
}

// UpdatePostInput carries a partial update. Nil fields are left untouched.
// Author is accepted so an admin can reassign a post to another user.
type UpdatePostInput struct {
	Title         *string   `json:"title" validate:"omitempty,max=100"`
	Content       *string   `json:"content"`
	Excerpt       *string   `json:"excerpt" validate:"omitempty,max=200"`
	CategoryID    *string   `json:"category"`
	Tags          *[]string `json:"tags"`
	FeaturedImage *string   `json:"featuredImage"`
	IsPublished   *bool     `json:"isPublished"`
	Author        *string   `json:"author"`
}

// ListPostsResult bundles a page of posts with its pagination block.
type ListPostsResult struct {
	Posts      []*models.Post
	Pagination models.Pagination
}

// PostService defines the business operations for posts.
type PostService interface {
	ListPosts(ctx context.Context, page, limit int, categoryID string) (*ListPostsResult, error)
	SearchPosts(ctx context.Context, query string) ([]*models.Post, error)
	GetPost(ctx context.Context, key models.LookupKey) (*models.Post, error)
	CreatePost(ctx context.Context, caller Caller, input CreatePostInput) (*models.Post, error)
	UpdatePost(ctx context.Context, caller Caller, id string, input UpdatePostInput) (*models.Post, error)
	DeletePost(ctx context.Context, caller Caller, id string) error
	AddComment(ctx context.Context, caller Caller, postID, content string) (*models.Post, error)
}

type postService struct {
	posts      repository.PostRepository
	categories repository.CategoryRepository
}

// NewPostService creates a new post service.
func NewPostService(posts repository.PostRepository, categories repository.CategoryRepository) PostService {
	return &postService{posts: posts, categories: categories}
}

func (s *postService) ListPosts(ctx context.Context, page, limit int, categoryID string) (*ListPostsResult, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	posts, total, err := s.posts.List(ctx, repository.ListPostsFilter{
		CategoryID: categoryID,
		Limit:      limit,
		Offset:     (page - 1) * limit,
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return &ListPostsResult{
		Posts: posts,
		Pagination: models.Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: int(math.Ceil(float64(total) / float64(limit))),
		},
	}, nil
}

func (s *postService) SearchPosts(ctx context.Context, query string) ([]*models.Post, error) {
	if query == "" {
		return nil, models.NewValidationError("Please provide a search query")
	}

	posts, err := s.posts.Search(ctx, query)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (s *postService) GetPost(ctx context.Context, key models.LookupKey) (*models.Post, error) {
	post, err := s.posts.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post not found")
		}
		return nil, models.NewInternalError(err)
	}

	// Every fetch counts as a view. The repository bumps the stored counter
	// atomically; the in-memory copy is adjusted so the response reflects it.
	if err := s.posts.IncrementViews(ctx, post.ID); err != nil {
		return nil, models.NewInternalError(err)
	}
	post.ViewCount++
	middleware.PostViews.Inc()

	return post, nil
}

func (s *postService) CreatePost(ctx context.Context, caller Caller, input CreatePostInput) (*models.Post, error) {
	if err := validate.Struct(input); err != nil {
		return nil, models.NewValidationError(validationMessage(err))
	}

	exists, err := s.categories.Exists(ctx, input.CategoryID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if !exists {
		return nil, models.NewValidationError("Category not found")
	}

	postSlug, err := s.uniqueSlug(ctx, input.Title)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	published := true
	if input.IsPublished != nil {
		published = *input.IsPublished
	}

	post := &models.Post{
		Title:         input.Title,
		Slug:          postSlug,
		Content:       input.Content,
		Excerpt:       input.Excerpt,
		CategoryID:    input.CategoryID,
		AuthorID:      caller.ID,
		Tags:          input.Tags,
		FeaturedImage: input.FeaturedImage,
		IsPublished:   published,
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}

	return s.resolve(ctx, post.ID)
}

func (s *postService) UpdatePost(ctx context.Context, caller Caller, id string, input UpdatePostInput) (*models.Post, error) {
	post, err := s.posts.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post not found")
		}
		return nil, models.NewInternalError(err)
	}

	if !CanModify(post, caller) {
		return nil, models.NewForbiddenError("Not authorized to update this post")
	}

	if err := validate.Struct(input); err != nil {
		return nil, models.NewValidationError(validationMessage(err))
	}

	// The slug is assigned at creation and stays stable so existing
	// slug URLs keep resolving; title changes do not touch it.
	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Content != nil {
		post.Content = *input.Content
	}
	if input.Excerpt != nil {
		post.Excerpt = *input.Excerpt
	}
	if input.CategoryID != nil {
		exists, err := s.categories.Exists(ctx, *input.CategoryID)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		if !exists {
			return nil, models.NewValidationError("Category not found")
		}
		post.CategoryID = *input.CategoryID
	}
	if input.Tags != nil {
		post.Tags = *input.Tags
	}
	if input.FeaturedImage != nil {
		post.FeaturedImage = *input.FeaturedImage
	}
	if input.IsPublished != nil {
		post.IsPublished = *input.IsPublished
	}
	if input.Author != nil {
		post.AuthorID = *input.Author
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}

	return s.resolve(ctx, post.ID)
}

func (s *postService) DeletePost(ctx context.Context, caller Caller, id string) error {
	post, err := s.posts.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Post not found")
		}
		return models.NewInternalError(err)
	}

	if !CanModify(post, caller) {
		return models.NewForbiddenError("Not authorized to delete this post")
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (s *postService) AddComment(ctx context.Context, caller Caller, postID, content string) (*models.Post, error) {
	if strings.TrimSpace(content) == "" {
		return nil, models.NewValidationError("Comment content is required")
	}

	post, err := s.posts.Get(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post not found")
		}
		return nil, models.NewInternalError(err)
	}

	comment := &models.Comment{
		PostID:  post.ID,
		UserID:  caller.ID,
		Content: content,
	}
	if err := s.posts.AddComment(ctx, comment); err != nil {
		return nil, models.NewInternalError(err)
	}

	return s.resolve(ctx, post.ID)
}

// resolve reloads a post with its author, category, and comments populated.
func (s *postService) resolve(ctx context.Context, id string) (*models.Post, error) {
	post, err := s.posts.FindByKey(ctx, models.LookupKey{Kind: models.LookupByID, Value: id})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

// uniqueSlug derives a URL slug from the title, suffixing a short random
// token when the plain slug is already taken.
func (s *postService) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := slug.Make(title)
	taken, err := s.posts.SlugExists(ctx, base)
	if err != nil {
		return "", err
	}
	if !taken {
		return base, nil
	}
	return base + "-" + models.NewID()[:8], nil
}

// validationMessage turns validator errors into the short messages the API
// returns, instead of the library's struct-oriented default text.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request body"
	}

	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return "Please provide a " + field
	case "max":
		return "The " + field + " may not exceed " + fe.Param() + " characters"
	default:
		return "Invalid value for " + field
	}
}
