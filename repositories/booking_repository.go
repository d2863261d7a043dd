package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"homenest-api/domain"
	"homenest-api/dto"
	"homenest-api/storage"
)

// BookingRepository is the data-access contract for booking documents.
type BookingRepository interface {
	Insert(ctx context.Context, booking *domain.Booking) (string, error)
	ListByUser(ctx context.Context, email string) ([]domain.Booking, error)
	ListByProperty(ctx context.Context, propertyID string) ([]domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
	UpdateByID(ctx context.Context, id string, req dto.UpdateBookingRequest) (*dto.UpdateResult, error)
	DeleteByID(ctx context.Context, id string) (int64, error)
}

type bookingRepository struct {
	store *storage.Store
}

// NewBookingRepository creates a repository bound to the shared store.
func NewBookingRepository(store *storage.Store) BookingRepository {
	return &bookingRepository{store: store}
}

func (r *bookingRepository) col(ctx context.Context) (*mongo.Collection, error) {
	return r.store.Collection(ctx, storage.BookingsCollection)
}

func (r *bookingRepository) Insert(ctx context.Context, booking *domain.Booking) (string, error) {
	col, err := r.col(ctx)
	if err != nil {
		return "", err
	}

	res, err := col.InsertOne(ctx, booking)
	if err != nil {
		return "", err
	}
	return insertedHex(res), nil
}

func (r *bookingRepository) ListByUser(ctx context.Context, email string) ([]domain.Booking, error) {
	return r.list(ctx, bson.M{"userEmail": email})
}

func (r *bookingRepository) ListByProperty(ctx context.Context, propertyID string) ([]domain.Booking, error) {
	return r.list(ctx, bson.M{"propertyId": propertyID})
}

func (r *bookingRepository) ListAll(ctx context.Context) ([]domain.Booking, error) {
	return r.list(ctx, bson.M{})
}

func (r *bookingRepository) list(ctx context.Context, filter bson.M) ([]domain.Booking, error) {
	col, err := r.col(ctx)
	if err != nil {
		return nil, err
	}

	cursor, err := col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	bookings := []domain.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) UpdateByID(ctx context.Context, id string, req dto.UpdateBookingRequest) (*dto.UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	col, err := r.col(ctx)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if req.Status != "" {
		set["status"] = req.Status
	}
	if req.PaymentStatus != "" {
		set["paymentStatus"] = req.PaymentStatus
	}

	res, err := col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	return &dto.UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

func (r *bookingRepository) DeleteByID(ctx context.Context, id string) (int64, error) {
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
