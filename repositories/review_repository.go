package repositories

import (
	"yamdb-api/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(review *models.Review) error
	GetByID(titleID, reviewID uint) (*models.Review, error)
	GetByTitle(titleID uint) ([]models.Review, error)
	ExistsByTitleAndAuthor(titleID, authorID uint) (bool, error)
	Update(review *models.Review) error
	Delete(id uint) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

func (r *reviewRepository) GetByID(titleID, reviewID uint) (*models.Review, error) {
	var review models.Review
	err := r.db.Preload("Author").
		Where("title_id = ? AND id = ?", titleID, reviewID).
		First(&review).Error
	return &review, err
}

func (r *reviewRepository) GetByTitle(titleID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Preload("Author").
		Where("title_id = ?", titleID).
		Order("pub_date desc").
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) ExistsByTitleAndAuthor(titleID, authorID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Review{}).
		Where("title_id = ? AND author_id = ?", titleID, authorID).
		Count(&count).Error
	return count > 0, err
}

func (r *reviewRepository) Update(review *models.Review) error {
	return r.db.Save(review).Error
}

func (r *reviewRepository) Delete(id uint) error {
	return r.db.Delete(&models.Review{}, id).Error
}
