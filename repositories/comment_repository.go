package repositories

import (
	"yamdb-api/models"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(reviewID, commentID uint) (*models.Comment, error)
	GetByReview(reviewID uint) ([]models.Comment, error)
	Update(comment *models.Comment) error
	Delete(id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *commentRepository) GetByID(reviewID, commentID uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Preload("Author").
		Where("review_id = ? AND id = ?", reviewID, commentID).
		First(&comment).Error
	return &comment, err
}

func (r *commentRepository) GetByReview(reviewID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Preload("Author").
		Where("review_id = ?", reviewID).
		Order("pub_date desc").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) Update(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

func (r *commentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Comment{}, id).Error
}
