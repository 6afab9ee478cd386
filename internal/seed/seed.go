// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// categoryFixtures is the canonical category set the blog ships with.
var categoryFixtures = []models.Category{
	{Name: "Technology", Description: "Tech news, tutorials, and innovations"},
	{Name: "Programming", Description: "Code tutorials, best practices, and development"},
	{Name: "Web Development", Description: "Frontend, backend, and full-stack development"},
	{Name: "Lifestyle", Description: "Life tips, health, and personal development"},
	{Name: "Travel", Description: "Travel guides, tips, and adventures"},
	{Name: "Food", Description: "Recipes, restaurants, and culinary experiences"},
	{Name: "Business", Description: "Entrepreneurship, startups, and business insights"},
	{Name: "Design", Description: "UI/UX design, graphics, and creative work"},
	{Name: "Education", Description: "Learning resources and educational content"},
	{Name: "Entertainment", Description: "Movies, games, music, and fun content"},
}

// Categories ensures the fixed category set exists. Existing categories with
// the same name are left alone.
func Categories(db *gorm.DB) error {
	for _, fixture := range categoryFixtures {
		var count int64
		if err := db.Model(&models.Category{}).Where("name = ?", fixture.Name).Count(&count).Error; err != nil {
			return fmt.Errorf("check category %q: %w", fixture.Name, err)
		}
		if count > 0 {
			continue
		}
		category := fixture
		if err := db.Create(&category).Error; err != nil {
			return fmt.Errorf("create category %q: %w", fixture.Name, err)
		}
	}
	log.Printf("Seeded %d categories", len(categoryFixtures))
	return nil
}

// Run populates the database with fake users, posts, and comments.
func Run(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return err
		}
	}

	if err := Categories(db); err != nil {
		return err
	}

	var categories []models.Category
	if err := db.Find(&categories).Error; err != nil {
		return fmt.Errorf("load categories: %w", err)
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return err
	}

	posts, err := createPosts(db, users, categories, opts.NumPosts)
	if err != nil {
		return err
	}

	if err := createComments(db, users, posts); err != nil {
		return err
	}

	log.Printf("Seeding complete: %d users, %d posts", len(users), len(posts))
	return nil
}

func clearData(db *gorm.DB) error {
	// Delete in dependency order
	for _, model := range []any{&models.Comment{}, &models.Post{}, &models.Category{}, &models.User{}} {
		if err := db.Where("1 = 1").Delete(model).Error; err != nil {
			return fmt.Errorf("clear data: %w", err)
		}
	}
	log.Println("Cleared existing data")
	return nil
}

func createUsers(db *gorm.DB, count int) ([]models.User, error) {
	if count < 1 {
		count = 10
	}

	// One known admin account for local development
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	users := make([]models.User, 0, count)
	admin := models.User{
		Name:     "Admin",
		Email:    "admin@example.com",
		Password: string(hashed),
		Role:     models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	users = append(users, admin)

	for i := 1; i < count; i++ {
		user := models.User{
			Name:     gofakeit.Name(),
			Email:    fmt.Sprintf("%d.%s", i, gofakeit.Email()),
			Password: string(hashed),
			Role:     models.RoleUser,
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		users = append(users, user)
	}

	log.Printf("Created %d users", len(users))
	return users, nil
}

func createPosts(db *gorm.DB, users []models.User, categories []models.Category, count int) ([]models.Post, error) {
	if count < 1 {
		count = 50
	}

	posts := make([]models.Post, 0, count)
	for i := 0; i < count; i++ {
		title := strings.TrimSuffix(gofakeit.Sentence(6), ".")
		author := users[rand.Intn(len(users))]
		category := categories[rand.Intn(len(categories))]

		post := models.Post{
			Title:         title,
			Slug:          fmt.Sprintf("%s-%d", slug.Make(title), i),
			Content:       gofakeit.Paragraph(3, 5, 8, "\n\n"),
			Excerpt:       gofakeit.Sentence(12),
			CategoryID:    category.ID,
			AuthorID:      author.ID,
			Tags:          []string{gofakeit.Word(), gofakeit.Word()},
			FeaturedImage: fmt.Sprintf("https://picsum.photos/seed/%s/800/400", gofakeit.UUID()),
			IsPublished:   rand.Intn(10) > 1, // a handful of drafts
			ViewCount:     int64(rand.Intn(500)),
			CreatedAt:     time.Now().Add(-time.Duration(rand.Intn(90*24)) * time.Hour),
		}
		if err := db.Create(&post).Error; err != nil {
			return nil, fmt.Errorf("create post: %w", err)
		}
		posts = append(posts, post)
	}

	log.Printf("Created %d posts", len(posts))
	return posts, nil
}

func createComments(db *gorm.DB, users []models.User, posts []models.Post) error {
	total := 0
	for _, post := range posts {
		if !post.IsPublished {
			continue
		}
		for i := 0; i < rand.Intn(5); i++ {
			comment := models.Comment{
				PostID:  post.ID,
				UserID:  users[rand.Intn(len(users))].ID,
				Content: gofakeit.Sentence(10),
			}
			if err := db.Create(&comment).Error; err != nil {
				return fmt.Errorf("create comment: %w", err)
			}
			total++
		}
	}

	log.Printf("Created %d comments", total)
	return nil
}
