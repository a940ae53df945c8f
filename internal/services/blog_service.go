package services

import (
	"errors"

	"launchboard_backend/internal/models"
	"launchboard_backend/internal/repositories"
	"launchboard_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type BlogService interface {
	List(db *gorm.DB, page, pageSize int) ([]models.BlogPost, int64, error)
	GetBySlug(db *gorm.DB, slug string) (*models.BlogPost, error)
}

type blogService struct {
	blogRepo repositories.BlogRepository
}

func NewBlogService(blogRepo repositories.BlogRepository) BlogService {
	return &blogService{blogRepo: blogRepo}
}

func (s *blogService) List(db *gorm.DB, page, pageSize int) ([]models.BlogPost, int64, error) {
	offset := (page - 1) * pageSize
	posts, total, err := s.blogRepo.ListPublished(db, pageSize, offset)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	return posts, total, nil
}

func (s *blogService) GetBySlug(db *gorm.DB, slug string) (*models.BlogPost, error) {
	post, err := s.blogRepo.FindBySlug(db, slug)
	if err != nil {
		if errors.Is(err, repositories.ErrBlogPostNotFound) {
			return nil, apperrors.NewNotFoundError("blog", "Post not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return post, nil
}
