package services

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"yamdb-api/cache"
	"yamdb-api/models"
	"yamdb-api/permissions"
	"yamdb-api/repositories"
)

type ReviewService interface {
	CreateReview(titleID uint, req models.CreateReviewRequest, caller *models.User) (*models.ReviewResponse, error)
	GetReviews(titleID uint) ([]models.ReviewResponse, error)
	GetReview(titleID, reviewID uint) (*models.ReviewResponse, error)
	UpdateReview(titleID, reviewID uint, req models.UpdateReviewRequest, caller *models.User) (*models.ReviewResponse, error)
	DeleteReview(titleID, reviewID uint, caller *models.User) error
}

type reviewService struct {
	reviewRepo repositories.ReviewRepository
	titleRepo  repositories.TitleRepository
	ratings    *cache.RatingCache
}

func NewReviewService(reviewRepo repositories.ReviewRepository, titleRepo repositories.TitleRepository, ratings *cache.RatingCache) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		titleRepo:  titleRepo,
		ratings:    ratings,
	}
}

// CreateReview enforces one review per (title, author). The exists
// check is only a fast path: two concurrent creates race past it and
// the composite unique index rejects the loser, which is translated to
// the same conflict error.
func (s *reviewService) CreateReview(titleID uint, req models.CreateReviewRequest, caller *models.User) (*models.ReviewResponse, error) {
	if err := s.ensureTitle(titleID); err != nil {
		return nil, err
	}

	exists, err := s.reviewRepo.ExistsByTitleAndAuthor(titleID, caller.ID)
	if err != nil {
		return nil, models.ErrorInternalServer{Message: "failed to check existing reviews"}
	}
	if exists {
		return nil, models.ErrorConflict{Message: "your review for this title already exists"}
	}

	review := &models.Review{
		TitleID:  titleID,
		AuthorID: caller.ID,
		Text:     req.Text,
		Score:    req.Score,
	}

	if err := s.reviewRepo.Create(review); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrorConflict{Message: "your review for this title already exists"}
		}
		return nil, models.ErrorInternalServer{Message: "failed to create review"}
	}

	s.ratings.Invalidate(titleID)

	review.Author = *caller
	resp := models.NewReviewResponse(review)
	return &resp, nil
}

func (s *reviewService) GetReviews(titleID uint) ([]models.ReviewResponse, error) {
	if err := s.ensureTitle(titleID); err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.GetByTitle(titleID)
	if err != nil {
		return nil, models.ErrorInternalServer{Message: "failed to list reviews"}
	}
	return models.NewReviewResponseList(reviews), nil
}

func (s *reviewService) GetReview(titleID, reviewID uint) (*models.ReviewResponse, error) {
	review, err := s.getReview(titleID, reviewID)
	if err != nil {
		return nil, err
	}
	resp := models.NewReviewResponse(review)
	return &resp, nil
}

func (s *reviewService) UpdateReview(titleID, reviewID uint, req models.UpdateReviewRequest, caller *models.User) (*models.ReviewResponse, error) {
	review, err := s.getReview(titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if permissions.Authorize(permissions.KindReview, http.MethodPatch, caller, &review.Author) != permissions.Allow {
		return nil, models.ErrorForbidden{Message: "you do not have permission to edit this review"}
	}

	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		review.Score = *req.Score
	}

	if err := s.reviewRepo.Update(review); err != nil {
		return nil, models.ErrorInternalServer{Message: "failed to update review"}
	}

	s.ratings.Invalidate(titleID)

	resp := models.NewReviewResponse(review)
	return &resp, nil
}

func (s *reviewService) DeleteReview(titleID, reviewID uint, caller *models.User) error {
	review, err := s.getReview(titleID, reviewID)
	if err != nil {
		return err
	}

	if permissions.Authorize(permissions.KindReview, http.MethodDelete, caller, &review.Author) != permissions.Allow {
		return models.ErrorForbidden{Message: "you do not have permission to delete this review"}
	}

	if err := s.reviewRepo.Delete(review.ID); err != nil {
		return models.ErrorInternalServer{Message: "failed to delete review"}
	}

	s.ratings.Invalidate(titleID)
	return nil
}

func (s *reviewService) ensureTitle(titleID uint) error {
	if _, err := s.titleRepo.GetByID(titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrorNotFound{Message: "title not found"}
		}
		return models.ErrorInternalServer{Message: "failed to look up title"}
	}
	return nil
}

func (s *reviewService) getReview(titleID, reviewID uint) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(titleID, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "review not found"}
		}
		return nil, models.ErrorInternalServer{Message: "failed to look up review"}
	}
	return review, nil
}
