package services

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"yamdb-api/models"
	"yamdb-api/permissions"
	"yamdb-api/repositories"
)

type CommentService interface {
	CreateComment(titleID, reviewID uint, req models.CreateCommentRequest, caller *models.User) (*models.CommentResponse, error)
	GetComments(titleID, reviewID uint) ([]models.CommentResponse, error)
	GetComment(titleID, reviewID, commentID uint) (*models.CommentResponse, error)
	UpdateComment(titleID, reviewID, commentID uint, req models.UpdateCommentRequest, caller *models.User) (*models.CommentResponse, error)
	DeleteComment(titleID, reviewID, commentID uint, caller *models.User) error
}

type commentService struct {
	commentRepo repositories.CommentRepository
	reviewRepo  repositories.ReviewRepository
}

func NewCommentService(commentRepo repositories.CommentRepository, reviewRepo repositories.ReviewRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
	}
}

func (s *commentService) CreateComment(titleID, reviewID uint, req models.CreateCommentRequest, caller *models.User) (*models.CommentResponse, error) {
	if err := s.ensureReview(titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ReviewID: reviewID,
		AuthorID: caller.ID,
		Text:     req.Text,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, models.ErrorInternalServer{Message: "failed to create comment"}
	}

	comment.Author = *caller
	resp := models.NewCommentResponse(comment)
	return &resp, nil
}

func (s *commentService) GetComments(titleID, reviewID uint) ([]models.CommentResponse, error) {
	if err := s.ensureReview(titleID, reviewID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.GetByReview(reviewID)
	if err != nil {
		return nil, models.ErrorInternalServer{Message: "failed to list comments"}
	}
	return models.NewCommentResponseList(comments), nil
}

func (s *commentService) GetComment(titleID, reviewID, commentID uint) (*models.CommentResponse, error) {
	comment, err := s.getComment(titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	resp := models.NewCommentResponse(comment)
	return &resp, nil
}

func (s *commentService) UpdateComment(titleID, reviewID, commentID uint, req models.UpdateCommentRequest, caller *models.User) (*models.CommentResponse, error) {
	comment, err := s.getComment(titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if permissions.Authorize(permissions.KindComment, http.MethodPatch, caller, &comment.Author) != permissions.Allow {
		return nil, models.ErrorForbidden{Message: "you do not have permission to edit this comment"}
	}

	if req.Text != nil {
		comment.Text = *req.Text
	}

	if err := s.commentRepo.Update(comment); err != nil {
		return nil, models.ErrorInternalServer{Message: "failed to update comment"}
	}

	resp := models.NewCommentResponse(comment)
	return &resp, nil
}

func (s *commentService) DeleteComment(titleID, reviewID, commentID uint, caller *models.User) error {
	comment, err := s.getComment(titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if permissions.Authorize(permissions.KindComment, http.MethodDelete, caller, &comment.Author) != permissions.Allow {
		return models.ErrorForbidden{Message: "you do not have permission to delete this comment"}
	}

	if err := s.commentRepo.Delete(comment.ID); err != nil {
		return models.ErrorInternalServer{Message: "failed to delete comment"}
	}
	return nil
}

// ensureReview also verifies the review belongs to the title from the
// URL, so a comment path with a mismatched title 404s.
func (s *commentService) ensureReview(titleID, reviewID uint) error {
	if _, err := s.reviewRepo.GetByID(titleID, reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrorNotFound{Message: "review not found"}
		}
		return models.ErrorInternalServer{Message: "failed to look up review"}
	}
	return nil
}

func (s *commentService) getComment(titleID, reviewID, commentID uint) (*models.Comment, error) {
	if err := s.ensureReview(titleID, reviewID); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(reviewID, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "comment not found"}
		}
		return nil, models.ErrorInternalServer{Message: "failed to look up comment"}
	}
	return comment, nil
}
