package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"homenest-api/domain"
	"homenest-api/dto"
	"homenest-api/storage"
)

// UserRepository is the data-access contract for user documents. Email is
// the lookup key throughout; documents are never addressed by oid.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Insert(ctx context.Context, user *domain.User) (string, error)
	List(ctx context.Context, email string) ([]domain.User, error)
	UpdateByEmail(ctx context.Context, email string, req dto.UpdateUserRequest) (*dto.UpdateResult, error)
	DeleteByEmail(ctx context.Context, email string) (int64, error)
}

type userRepository struct {
	store *storage.Store
}

// NewUserRepository creates a repository bound to the shared store.
func NewUserRepository(store *storage.Store) UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) col(ctx context.Context) (*mongo.Collection, error) {
	return r.store.Collection(ctx, storage.UsersCollection)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	col, err := r.col(ctx)
	if err != nil {
		return nil, err
	}

	var user domain.User
	err = col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Insert(ctx context.Context, user *domain.User) (string, error) {
	col, err := r.col(ctx)
	if err != nil {
		return "", err
	}

	res, err := col.InsertOne(ctx, user)
	if err != nil {
		return "", err
	}
	return insertedHex(res), nil
}

// List returns every user, or just the one matching email when given.
func (r *userRepository) List(ctx context.Context, email string) ([]domain.User, error) {
	col, err := r.col(ctx)
	if err != nil {
		return nil, err
	}

	filter := bson.M{}
	if email != "" {
		filter["email"] = email
	}

	cursor, err := col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	users := []domain.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) UpdateByEmail(ctx context.Context, email string, req dto.UpdateUserRequest) (*dto.UpdateResult, error) {
	col, err := r.col(ctx)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if req.Role != "" {
		set["role"] = req.Role
	}
	if req.Name != "" {
		set["name"] = req.Name
	}

	res, err := col.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	return &dto.UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

func (r *userRepository) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	col, err := r.col(ctx)
	if err != nil {
		return 0, err
	}

	res, err := col.DeleteOne(ctx, bson.M{"email": email})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
