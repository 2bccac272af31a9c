package repositories

import (
	"yamdb-api/models"

	"gorm.io/gorm"
)

type GenreRepository interface {
	Create(genre *models.Genre) error
	GetBySlug(slug string) (*models.Genre, error)
	GetBySlugs(slugs []string) ([]models.Genre, error)
	GetAll(search string) ([]models.Genre, error)
	Delete(id uint) error
}

type genreRepository struct {
	db *gorm.DB
}

func NewGenreRepository(db *gorm.DB) GenreRepository {
	return &genreRepository{db: db}
}

func (r *genreRepository) Create(genre *models.Genre) error {
	return r.db.Create(genre).Error
}

func (r *genreRepository) GetBySlug(slug string) (*models.Genre, error) {
	var genre models.Genre
	err := r.db.Where("slug = ?", slug).First(&genre).Error
	return &genre, err
}

func (r *genreRepository) GetBySlugs(slugs []string) ([]models.Genre, error) {
	var genres []models.Genre
	err := r.db.Where("slug IN ?", slugs).Find(&genres).Error
	return genres, err
}

func (r *genreRepository) GetAll(search string) ([]models.Genre, error) {
	var genres []models.Genre
	query := r.db.Order("name")
	if search != "" {
		query = query.Where("name LIKE ?", search+"%")
	}
	err := query.Find(&genres).Error
	return genres, err
}

func (r *genreRepository) Delete(id uint) error {
	return r.db.Delete(&models.Genre{}, id).Error
}
