package services

import (
	"context"
	"time"

	"homenest-api/domain"
	"homenest-api/dto"
	"homenest-api/events"
	"homenest-api/repositories"
)

const latestPropertiesLimit = 6

// PropertyService is the business contract for property listings.
type PropertyService interface {
	List(ctx context.Context, query dto.PropertyListQuery) ([]domain.Property, error)
	Latest(ctx context.Context) ([]domain.Property, error)
	ListByOwner(ctx context.Context, email string) ([]domain.Property, error)
	Get(ctx context.Context, id string) (*domain.Property, error)
	Create(ctx context.Context, req dto.CreatePropertyRequest) (*dto.InsertResult, error)
	Update(ctx context.Context, id string, req dto.UpdatePropertyRequest) (*dto.UpdateResult, error)
	Delete(ctx context.Context, id string) (*dto.DeleteResult, error)
}

type propertyService struct {
	repo      repositories.PropertyRepository
	publisher events.Publisher
}

// NewPropertyService creates the service.
func NewPropertyService(repo repositories.PropertyRepository, publisher events.Publisher) PropertyService {
	return &propertyService{repo: repo, publisher: publisher}
}

func (s *propertyService) List(ctx context.Context, query dto.PropertyListQuery) ([]domain.Property, error) {
	return s.repo.List(ctx, query)
}

func (s *propertyService) Latest(ctx context.Context) ([]domain.Property, error) {
	return s.repo.Latest(ctx, latestPropertiesLimit)
}

func (s *propertyService) ListByOwner(ctx context.Context, email string) ([]domain.Property, error) {
	return s.repo.ListByOwner(ctx, email)
}

func (s *propertyService) Get(ctx context.Context, id string) (*domain.Property, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *propertyService) Create(ctx context.Context, req dto.CreatePropertyRequest) (*dto.InsertResult, error) {
	property := &domain.Property{
		UserEmail:    req.UserEmail,
		PropertyName: req.PropertyName,
		Description:  req.Description,
		Category:     req.Category,
		Price:        req.Price,
		Location:     req.Location,
		Image:        req.Image,
		Status:       domain.PropertyStatusAvailable,
		CreatedAt:    time.Now().UTC(),
	}

	id, err := s.repo.Insert(ctx, property)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, events.Event{Resource: "property", Action: events.ActionCreated, ID: id})
	return &dto.InsertResult{InsertedID: id}, nil
}

func (s *propertyService) Update(ctx context.Context, id string, req dto.UpdatePropertyRequest) (*dto.UpdateResult, error) {
	result, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, events.Event{Resource: "property", Action: events.ActionUpdated, ID: id})
	return result, nil
}

func (s *propertyService) Delete(ctx context.Context, id string) (*dto.DeleteResult, error) {
	count, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, events.Event{Resource: "property", Action: events.ActionDeleted, ID: id})
	return &dto.DeleteResult{DeletedCount: count}, nil
}
