package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"yamdb-api/cache"
	"yamdb-api/models"
	"yamdb-api/repositories"
)

type TitleService interface {
	CreateTitle(req models.CreateTitleRequest) (*models.Title, error)
	GetTitle(id uint) (*models.Title, error)
	GetTitles(params models.TitleListParams) ([]models.Title, int64, error)
	UpdateTitle(id uint, req models.UpdateTitleRequest) (*models.Title, error)
	DeleteTitle(id uint) error
}

type titleService struct {
	titleRepo    repositories.TitleRepository
	categoryRepo repositories.CategoryRepository
	genreRepo    repositories.GenreRepository
	ratings      *cache.RatingCache
}

func NewTitleService(
	titleRepo repositories.TitleRepository,
	categoryRepo repositories.CategoryRepository,
	genreRepo repositories.GenreRepository,
	ratings *cache.RatingCache,
) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
		ratings:      ratings,
	}
}

func (s *titleService) CreateTitle(req models.CreateTitleRequest) (*models.Title, error) {
	if err := validateYear(req.Year); err != nil {
		return nil, err
	}

	category, err := s.resolveCategory(req.Category)
	if err != nil {
		return nil, err
	}

	genres, err := s.resolveGenres(req.Genre)
	if err != nil {
		return nil, err
	}

	title := &models.Title{
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		Genre:       genres,
	}
	if category != nil {
		title.CategoryID = &category.ID
	}

	if err := s.titleRepo.Create(title); err != nil {
		return nil, models.ErrorInternalServer{Message: "failed to create title"}
	}

	return s.GetTitle(title.ID)
}

// GetTitle loads the title and fills the computed rating, consulting
// the cache before running the aggregate.
func (s *titleService) GetTitle(id uint) (*models.Title, error) {
	title, err := s.titleRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "title not found"}
		}
		return nil, models.ErrorInternalServer{Message: "failed to look up title"}
	}

	if rating, ok := s.ratings.Get(id); ok {
		title.Rating = rating
		return title, nil
	}

	rating, err := s.titleRepo.GetRating(id)
	if err != nil {
		return nil, models.ErrorInternalServer{Message: "failed to compute rating"}
	}
	title.Rating = rating
	s.ratings.Set(id, rating)

	return title, nil
}

func (s *titleService) GetTitles(params models.TitleListParams) ([]models.Title, int64, error) {
	titles, total, err := s.titleRepo.GetList(params)
	if err != nil {
		return nil, 0, models.ErrorInternalServer{Message: "failed to list titles"}
	}
	return titles, total, nil
}

func (s *titleService) UpdateTitle(id uint, req models.UpdateTitleRequest) (*models.Title, error) {
	title, err := s.titleRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "title not found"}
		}
		return nil, models.ErrorInternalServer{Message: "failed to look up title"}
	}

	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Year != nil {
		if err := validateYear(req.Year); err != nil {
			return nil, err
		}
		title.Year = req.Year
	}
	if req.Description != nil {
		title.Description = *req.Description
	}
	if req.Category != nil {
		category, err := s.resolveCategory(*req.Category)
		if err != nil {
			return nil, err
		}
		if category == nil {
			title.CategoryID = nil
			title.Category = nil
		} else {
			title.CategoryID = &category.ID
			title.Category = category
		}
	}

	if err := s.titleRepo.Update(title); err != nil {
		return nil, models.ErrorInternalServer{Message: "failed to update title"}
	}

	if req.Genre != nil {
		genres, err := s.resolveGenres(*req.Genre)
		if err != nil {
			return nil, err
		}
		if err := s.titleRepo.SetGenres(title, genres); err != nil {
			return nil, models.ErrorInternalServer{Message: "failed to update title genres"}
		}
	}

	return s.GetTitle(id)
}

func (s *titleService) DeleteTitle(id uint) error {
	if _, err := s.titleRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrorNotFound{Message: "title not found"}
		}
		return models.ErrorInternalServer{Message: "failed to look up title"}
	}

	if err := s.titleRepo.Delete(id); err != nil {
		return models.ErrorInternalServer{Message: "failed to delete title"}
	}
	s.ratings.Invalidate(id)
	return nil
}

// validateYear rejects years too far in the future; announced works up
// to ten years out are still accepted.
func validateYear(year *int) error {
	if year == nil {
		return nil
	}
	max := time.Now().Year() + models.MaxYearOffset
	if *year > max {
		return models.ErrorValidation{
			Message: fmt.Sprintf("title year must not be later than %d", max),
		}
	}
	return nil
}

func (s *titleService) resolveCategory(categorySlug string) (*models.Category, error) {
	if categorySlug == "" {
		return nil, nil
	}

	category, err := s.categoryRepo.GetBySlug(categorySlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorValidation{Message: "unknown category slug: " + categorySlug}
		}
		return nil, models.ErrorInternalServer{Message: "failed to look up category"}
	}
	return category, nil
}

func (s *titleService) resolveGenres(slugs []string) ([]models.Genre, error) {
	if len(slugs) == 0 {
		return nil, nil
	}

	genres, err := s.genreRepo.GetBySlugs(slugs)
	if err != nil {
		return nil, models.ErrorInternalServer{Message: "failed to look up genres"}
	}

	if len(genres) != len(slugs) {
		found := make(map[string]bool, len(genres))
		for _, g := range genres {
			found[g.Slug] = true
		}
		for _, s := range slugs {
			if !found[s] {
				return nil, models.ErrorValidation{Message: "unknown genre slug: " + s}
			}
		}
	}
	return genres, nil
}
