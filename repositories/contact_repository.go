package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"homenest-api/domain"
	"homenest-api/storage"
)

// ContactRepository is the data-access contract for contact messages.
type ContactRepository interface {
	Insert(ctx context.Context, message *domain.ContactMessage) (string, error)
	ListAll(ctx context.Context) ([]domain.ContactMessage, error)
}

type contactRepository struct {
	store *storage.Store
}

// NewContactRepository creates a repository bound to the shared store.
func NewContactRepository(store *storage.Store) ContactRepository {
	return &contactRepository{store: store}
}

func (r *contactRepository) col(ctx context.Context) (*mongo.Collection, error) {
	return r.store.Collection(ctx, storage.ContactCollection)
}

func (r *contactRepository) Insert(ctx context.Context, message *domain.ContactMessage) (string, error) {
	col, err := r.col(ctx)
	if err != nil {
		return "", err
	}

	res, err := col.InsertOne(ctx, message)
	if err != nil {
		return "", err
	}
	return insertedHex(res), nil
}

// ListAll returns every message, newest first.
func (r *contactRepository) ListAll(ctx context.Context) ([]domain.ContactMessage, error) {
	col, err := r.col(ctx)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	messages := []domain.ContactMessage{}
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
