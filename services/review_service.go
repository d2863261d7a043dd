package services

import (
	"context"
	"errors"
	"time"

	"homenest-api/domain"
	"homenest-api/dto"
	"homenest-api/repositories"
)

// ReviewService is the business contract for property reviews.
type ReviewService interface {
	Create(ctx context.Context, req dto.CreateReviewRequest) (*dto.InsertResult, error)
	List(ctx context.Context, propertyID, email string) ([]domain.Review, error)
	// Delete removes a review when the requester is an admin or the
	// review's author. Anyone else gets ErrForbidden. Deleting an already
	// absent review still succeeds with a zero count.
	Delete(ctx context.Context, id, requesterEmail string, isAdmin bool) (*dto.DeleteResult, error)
}

type reviewService struct {
	repo repositories.ReviewRepository
}

// NewReviewService creates the service.
func NewReviewService(repo repositories.ReviewRepository) ReviewService {
	return &reviewService{repo: repo}
}

func (s *reviewService) Create(ctx context.Context, req dto.CreateReviewRequest) (*dto.InsertResult, error) {
	review := &domain.Review{
		PropertyID:    req.PropertyID,
		ReviewerEmail: req.ReviewerEmail,
		ReviewerName:  req.ReviewerName,
		Rating:        req.Rating,
		Comment:       req.Comment,
		CreatedAt:     time.Now().UTC(),
	}

	id, err := s.repo.Insert(ctx, review)
	if err != nil {
		return nil, err
	}
	return &dto.InsertResult{InsertedID: id}, nil
}

func (s *reviewService) List(ctx context.Context, propertyID, email string) ([]domain.Review, error) {
	return s.repo.List(ctx, propertyID, email)
}

func (s *reviewService) Delete(ctx context.Context, id, requesterEmail string, isAdmin bool) (*dto.DeleteResult, error) {
	if !isAdmin {
		review, err := s.repo.FindByID(ctx, id)
		if errors.Is(err, repositories.ErrNotFound) {
			// nothing left to protect; deletion stays idempotent
			return &dto.DeleteResult{DeletedCount: 0}, nil
		}
		if err != nil {
			return nil, err
		}
		if review.ReviewerEmail == "" || review.ReviewerEmail != requesterEmail {
			return nil, ErrForbidden
		}
	}

	count, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.DeleteResult{DeletedCount: count}, nil
}
