package repositories

import (
	"database/sql"

	"yamdb-api/models"

	"gorm.io/gorm"
)

// ratingSelect annotates each row with the mean review score. NULL when
// the title has no reviews, which gorm scans into a nil *float64.
const ratingSelect = "titles.*, (SELECT AVG(score) FROM reviews WHERE reviews.title_id = titles.id) AS rating"

type TitleRepository interface {
	Create(title *models.Title) error
	GetByID(id uint) (*models.Title, error)
	GetList(params models.TitleListParams) ([]models.Title, int64, error)
	Update(title *models.Title) error
	SetGenres(title *models.Title, genres []models.Genre) error
	Delete(id uint) error
	GetRating(titleID uint) (*float64, error)
}

type titleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

func (r *titleRepository) Create(title *models.Title) error {
	return r.db.Create(title).Error
}

// GetByID does not compute the rating; the service layer fills it via
// GetRating so single-title reads can go through the cache.
func (r *titleRepository) GetByID(id uint) (*models.Title, error) {
	var title models.Title
	err := r.db.Preload("Category").Preload("Genre").First(&title, id).Error
	return &title, err
}

func (r *titleRepository) GetList(params models.TitleListParams) ([]models.Title, int64, error) {
	var titles []models.Title
	var total int64

	query := r.db.Model(&models.Title{}).Preload("Category").Preload("Genre")

	if params.Year != nil {
		query = query.Where("titles.year = ?", *params.Year)
	}

	if params.Category != "" {
		query = query.Joins("JOIN categories ON categories.id = titles.category_id").
			Where("categories.slug = ?", params.Category)
	}

	if params.Genre != "" {
		query = query.Joins("JOIN title_genres ON title_genres.title_id = titles.id").
			Joins("JOIN genres ON genres.id = title_genres.genre_id").
			Where("genres.slug = ?", params.Genre)
	}

	if params.Name != "" {
		query = query.Where("titles.name LIKE ?", "%"+params.Name+"%")
	}

	query.Count(&total)

	offset := (params.Page - 1) * params.Limit
	err := query.Select(ratingSelect).
		Order("titles.name").
		Offset(offset).Limit(params.Limit).
		Find(&titles).Error

	return titles, total, err
}

func (r *titleRepository) Update(title *models.Title) error {
	return r.db.Save(title).Error
}

func (r *titleRepository) SetGenres(title *models.Title, genres []models.Genre) error {
	return r.db.Model(title).Association("Genre").Replace(genres)
}

func (r *titleRepository) Delete(id uint) error {
	return r.db.Delete(&models.Title{}, id).Error
}

func (r *titleRepository) GetRating(titleID uint) (*float64, error) {
	var avg sql.NullFloat64
	err := r.db.Model(&models.Review{}).
		Where("title_id = ?", titleID).
		Select("AVG(score)").
		Row().Scan(&avg)
	if err != nil {
		return nil, err
	}
	if !avg.Valid {
		return nil, nil
	}
	return &avg.Float64, nil
}
