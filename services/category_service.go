package services

import (
	"errors"

	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"yamdb-api/models"
	"yamdb-api/repositories"
)

type CategoryService interface {
	CreateCategory(req models.CreateCategoryRequest) (*models.Category, error)
	GetCategories(search string) ([]models.Category, error)
	DeleteCategory(categorySlug string) error
}

type categoryService struct {
	categoryRepo repositories.CategoryRepository
}

func NewCategoryService(categoryRepo repositories.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) CreateCategory(req models.CreateCategoryRequest) (*models.Category, error) {
	categorySlug := req.Slug
	if categorySlug == "" {
		categorySlug = slug.Make(req.Name)
	}

	category := &models.Category{Name: req.Name, Slug: categorySlug}
	if err := s.categoryRepo.Create(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrorConflict{Message: "category already exists"}
		}
		return nil, models.ErrorInternalServer{Message: "failed to create category"}
	}

	return category, nil
}

func (s *categoryService) GetCategories(search string) ([]models.Category, error) {
	categories, err := s.categoryRepo.GetAll(search)
	if err != nil {
		return nil, models.ErrorInternalServer{Message: "failed to list categories"}
	}
	return categories, nil
}

func (s *categoryService) DeleteCategory(categorySlug string) error {
	category, err := s.categoryRepo.GetBySlug(categorySlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrorNotFound{Message: "category not found"}
		}
		return models.ErrorInternalServer{Message: "failed to look up category"}
	}

	if err := s.categoryRepo.Delete(category.ID); err != nil {
		return models.ErrorInternalServer{Message: "failed to delete category"}
	}
	return nil
}
