package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homenest-api/domain"
	"homenest-api/dto"
)

func TestDeleteReview_OwnerMayDelete(t *testing.T) {
	repo := newMockReviewRepository()
	repo.reviews["review-1"] = &domain.Review{ReviewerEmail: "author@example.com"}
	service := NewReviewService(repo)

	result, err := service.Delete(context.Background(), "review-1", "author@example.com", false)

	require.NoError(t, err)
	assert.Equal(t, int64(1), result.DeletedCount)
	assert.Empty(t, repo.reviews)
}

func TestDeleteReview_StrangerIsDenied(t *testing.T) {
	repo := newMockReviewRepository()
	repo.reviews["review-1"] = &domain.Review{ReviewerEmail: "author@example.com"}
	service := NewReviewService(repo)

	_, err := service.Delete(context.Background(), "review-1", "stranger@example.com", false)

	assert.ErrorIs(t, err, ErrForbidden)
	assert.Len(t, repo.reviews, 1, "a denied delete must not mutate the store")
}

func TestDeleteReview_AdminMayDeleteAny(t *testing.T) {
	repo := newMockReviewRepository()
	repo.reviews["review-1"] = &domain.Review{ReviewerEmail: "author@example.com"}
	service := NewReviewService(repo)

	result, err := service.Delete(context.Background(), "review-1", "admin@example.com", true)

	require.NoError(t, err)
	assert.Equal(t, int64(1), result.DeletedCount)
}

func TestDeleteReview_AbsentReviewIsZeroCountSuccess(t *testing.T) {
	service := NewReviewService(newMockReviewRepository())

	result, err := service.Delete(context.Background(), "missing", "anyone@example.com", false)
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.DeletedCount)

	result, err = service.Delete(context.Background(), "missing", "admin@example.com", true)
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.DeletedCount)
}

func TestCreateReview_SetsCreatedAt(t *testing.T) {
	repo := newMockReviewRepository()
	service := NewReviewService(repo)

	result, err := service.Create(context.Background(), dto.CreateReviewRequest{
		PropertyID:    "prop-1",
		ReviewerEmail: "author@example.com",
		Rating:        4,
		Comment:       "lovely place",
	})

	require.NoError(t, err)
	stored := repo.reviews[result.InsertedID]
	require.NotNil(t, stored)
	assert.False(t, stored.CreatedAt.IsZero())
}
