package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"homenest-api/domain"
	"homenest-api/storage"
)

// ReviewRepository is the data-access contract for review documents.
type ReviewRepository interface {
	Insert(ctx context.Context, review *domain.Review) (string, error)
	List(ctx context.Context, propertyID, email string) ([]domain.Review, error)
	FindByID(ctx context.Context, id string) (*domain.Review, error)
	DeleteByID(ctx context.Context, id string) (int64, error)
}

type reviewRepository struct {
	store *storage.Store
}

// NewReviewRepository creates a repository bound to the shared store.
func NewReviewRepository(store *storage.Store) ReviewRepository {
	return &reviewRepository{store: store}
}

func (r *reviewRepository) col(ctx context.Context) (*mongo.Collection, error) {
	return r.store.Collection(ctx, storage.ReviewsCollection)
}

func (r *reviewRepository) Insert(ctx context.Context, review *domain.Review) (string, error) {
	col, err := r.col(ctx)
	if err != nil {
		return "", err
	}

	res, err := col.InsertOne(ctx, review)
	if err != nil {
		return "", err
	}
	return insertedHex(res), nil
}

// List filters by property or by reviewer; with neither it returns every
// review. A match on nothing is an empty list, never an error.
func (r *reviewRepository) List(ctx context.Context, propertyID, email string) ([]domain.Review, error) {
	col, err := r.col(ctx)
	if err != nil {
		return nil, err
	}

	filter := bson.M{}
	if propertyID != "" {
		filter["propertyId"] = propertyID
	} else if email != "" {
		filter["reviewerEmail"] = email
	}

	cursor, err := col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	reviews := []domain.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id string) (*domain.Review, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	col, err := r.col(ctx)
	if err != nil {
		return nil, err
	}

	var review domain.Review
	err = col.FindOne(ctx, bson.M{"_id": oid}).Decode(&review)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) DeleteByID(ctx context.Context, id string) (int64, error) {
	oid, err := objectID(id)
	if err != nil {
		return 0, err
	}
	col, err := r.col(ctx)
	if err != nil {
		return 0, err
	}

	res, err := col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
