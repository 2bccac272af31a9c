package services

import (
	"errors"

	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"yamdb-api/models"
	"yamdb-api/repositories"
)

type GenreService interface {
	CreateGenre(req models.CreateGenreRequest) (*models.Genre, error)
	GetGenres(search string) ([]models.Genre, error)
	DeleteGenre(genreSlug string) error
}

type genreService struct {
	genreRepo repositories.GenreRepository
}

func NewGenreService(genreRepo repositories.GenreRepository) GenreService {
	return &genreService{genreRepo: genreRepo}
}

func (s *genreService) CreateGenre(req models.CreateGenreRequest) (*models.Genre, error) {
	genreSlug := req.Slug
	if genreSlug == "" {
		genreSlug = slug.Make(req.Name)
	}

	genre := &models.Genre{Name: req.Name, Slug: genreSlug}
	if err := s.genreRepo.Create(genre); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrorConflict{Message: "genre already exists"}
		}
		return nil, models.ErrorInternalServer{Message: "failed to create genre"}
	}

	return genre, nil
}

func (s *genreService) GetGenres(search string) ([]models.Genre, error) {
	genres, err := s.genreRepo.GetAll(search)
	if err != nil {
		return nil, models.ErrorInternalServer{Message: "failed to list genres"}
	}
	return genres, nil
}

func (s *genreService) DeleteGenre(genreSlug string) error {
	genre, err := s.genreRepo.GetBySlug(genreSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrorNotFound{Message: "genre not found"}
		}
		return models.ErrorInternalServer{Message: "failed to look up genre"}
	}

	if err := s.genreRepo.Delete(genre.ID); err != nil {
		return models.ErrorInternalServer{Message: "failed to delete genre"}
	}
	return nil
}
