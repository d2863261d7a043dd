package repositories

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"homenest-api/domain"
	"homenest-api/dto"
	"homenest-api/storage"
)

// PropertyRepository is the data-access contract for property documents.
type PropertyRepository interface {
	List(ctx context.Context, query dto.PropertyListQuery) ([]domain.Property, error)
	Latest(ctx context.Context, limit int64) ([]domain.Property, error)
	ListByOwner(ctx context.Context, email string) ([]domain.Property, error)
	FindByID(ctx context.Context, id string) (*domain.Property, error)
	Insert(ctx context.Context, property *domain.Property) (string, error)
	Update(ctx context.Context, id string, req dto.UpdatePropertyRequest) (*dto.UpdateResult, error)
	SetStatus(ctx context.Context, id string, status string) error
	Delete(ctx context.Context, id string) (int64, error)
}

type propertyRepository struct {
	store *storage.Store
}

// NewPropertyRepository creates a repository bound to the shared store.
func NewPropertyRepository(store *storage.Store) PropertyRepository {
	return &propertyRepository{store: store}
}

func (r *propertyRepository) col(ctx context.Context) (*mongo.Collection, error) {
	return r.store.Collection(ctx, storage.PropertiesCollection)
}

// listFilter translates the public listing query into a store filter and
// sort. Search matches the property name case-insensitively, category is an
// exact match, sortBy is price ascending or recency descending.
func listFilter(query dto.PropertyListQuery) (bson.M, *options.FindOptions) {
	filter := bson.M{}
	if query.Search != "" {
		filter["propertyName"] = bson.M{
			"$regex":   regexp.QuoteMeta(query.Search),
			"$options": "i",
		}
	}
	if query.Category != "" {
		filter["category"] = query.Category
	}

	opts := options.Find()
	switch query.SortBy {
	case "price":
		opts.SetSort(bson.D{{Key: "price", Value: 1}})
	case "date":
		opts.SetSort(bson.D{{Key: "createdAt", Value: -1}})
	}
	return filter, opts
}

func (r *propertyRepository) List(ctx context.Context, query dto.PropertyListQuery) ([]domain.Property, error) {
	col, err := r.col(ctx)
	if err != nil {
		return nil, err
	}

	filter, opts := listFilter(query)
	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	properties := []domain.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

func (r *propertyRepository) Latest(ctx context.Context, limit int64) ([]domain.Property, error) {
	col, err := r.col(ctx)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	cursor, err := col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	properties := []domain.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

func (r *propertyRepository) ListByOwner(ctx context.Context, email string) ([]domain.Property, error) {
	col, err := r.col(ctx)
	if err != nil {
		return nil, err
	}

	cursor, err := col.Find(ctx, bson.M{"userEmail": email})
	if err != nil {
		return nil, err
	}
	properties := []domain.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

func (r *propertyRepository) FindByID(ctx context.Context, id string) (*domain.Property, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	col, err := r.col(ctx)
	if err != nil {
		return nil, err
	}

	var property domain.Property
	err = col.FindOne(ctx, bson.M{"_id": oid}).Decode(&property)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *propertyRepository) Insert(ctx context.Context, property *domain.Property) (string, error) {
	col, err := r.col(ctx)
	if err != nil {
		return "", err
	}

	res, err := col.InsertOne(ctx, property)
	if err != nil {
		return "", err
	}
	return insertedHex(res), nil
}

// updateDoc builds the whitelisted replacement set. The identifier, owner
// and createdAt never appear here; status only when the payload carries it.
func updateDoc(req dto.UpdatePropertyRequest) bson.M {
	set := bson.M{
		"propertyName": req.PropertyName,
		"description":  req.Description,
		"category":     req.Category,
		"price":        req.Price,
		"location":     req.Location,
		"image":        req.Image,
		"updatedAt":    time.Now().UTC(),
	}
	if req.Status != "" {
		set["status"] = req.Status
	}
	return set
}

func (r *propertyRepository) Update(ctx context.Context, id string, req dto.UpdatePropertyRequest) (*dto.UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	col, err := r.col(ctx)
	if err != nil {
		return nil, err
	}

	res, err := col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": updateDoc(req)})
	if err != nil {
		return nil, err
	}
	return &dto.UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

func (r *propertyRepository) SetStatus(ctx context.Context, id string, status string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	col, err := r.col(ctx)
	if err != nil {
		return err
	}

	_, err = col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"status": status}})
	return err
}

func (r *propertyRepository) Delete(ctx context.Context, id string) (int64, error) {
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
