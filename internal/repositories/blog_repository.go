package repositories

import (
	"errors"

	"launchboard_backend/internal/models"

	"gorm.io/gorm"
)

var ErrBlogPostNotFound = errors.New("blog post not found")

type BlogRepository interface {
	ListPublished(db *gorm.DB, limit, offset int) ([]models.BlogPost, int64, error)
	FindBySlug(db *gorm.DB, slug string) (*models.BlogPost, error)
	Create(db *gorm.DB, post *models.BlogPost) error
}

type blogRepository struct{}

func NewBlogRepository() BlogRepository {
	return &blogRepository{}
}

func (r *blogRepository) ListPublished(db *gorm.DB, limit, offset int) ([]models.BlogPost, int64, error) {
	query := db.Model(&models.BlogPost{}).Where("published = ?", true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.BlogPost
	err := query.Order("published_at DESC").Limit(limit).Offset(offset).Find(&posts).Error
	return posts, total, err
}

func (r *blogRepository) FindBySlug(db *gorm.DB, slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := db.First(&post, "slug = ? AND published = ?", slug, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlogPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *blogRepository) Create(db *gorm.DB, post *models.BlogPost) error {
	return db.Create(post).Error
}
