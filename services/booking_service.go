package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"homenest-api/domain"
	"homenest-api/dto"
	"homenest-api/events"
	"homenest-api/repositories"
)

// BookingService is the business contract for bookings.
type BookingService interface {
	// Create records the booking and then flips the referenced property's
	// status to booked. The two writes are not transactional: when the
	// status flip fails the booking stands and the gap is logged.
	Create(ctx context.Context, req dto.CreateBookingRequest) (*dto.InsertResult, error)
	ListByUser(ctx context.Context, email string) ([]domain.Booking, error)
	ListByProperty(ctx context.Context, propertyID string) ([]domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
	Update(ctx context.Context, id string, req dto.UpdateBookingRequest) (*dto.UpdateResult, error)
	Delete(ctx context.Context, id string) (*dto.DeleteResult, error)
}

type bookingService struct {
	repo       repositories.BookingRepository
	properties repositories.PropertyRepository
	publisher  events.Publisher
}

// NewBookingService creates the service.
func NewBookingService(repo repositories.BookingRepository, properties repositories.PropertyRepository, publisher events.Publisher) BookingService {
	return &bookingService{repo: repo, properties: properties, publisher: publisher}
}

func (s *bookingService) Create(ctx context.Context, req dto.CreateBookingRequest) (*dto.InsertResult, error) {
	booking := &domain.Booking{
		PropertyID:    req.PropertyID,
		UserEmail:     req.UserEmail,
		Status:        domain.BookingStatusPending,
		PaymentStatus: domain.PaymentStatusUnpaid,
		CreatedAt:     time.Now().UTC(),
	}

	id, err := s.repo.Insert(ctx, booking)
	if err != nil {
		return nil, err
	}

	if err := s.properties.SetStatus(ctx, req.PropertyID, domain.PropertyStatusBooked); err != nil {
		// Accepted inconsistency window: the booking is recorded against a
		// property still marked available.
		logrus.WithError(err).WithFields(logrus.Fields{
			"bookingId":  id,
			"propertyId": req.PropertyID,
		}).Warn("booking recorded but property status flip failed")
	}

	s.publisher.Publish(ctx, events.Event{Resource: "booking", Action: events.ActionCreated, ID: id})
	return &dto.InsertResult{InsertedID: id}, nil
}

func (s *bookingService) ListByUser(ctx context.Context, email string) ([]domain.Booking, error) {
	return s.repo.ListByUser(ctx, email)
}

func (s *bookingService) ListByProperty(ctx context.Context, propertyID string) ([]domain.Booking, error) {
	return s.repo.ListByProperty(ctx, propertyID)
}

func (s *bookingService) ListAll(ctx context.Context) ([]domain.Booking, error) {
	return s.repo.ListAll(ctx)
}

func (s *bookingService) Update(ctx context.Context, id string, req dto.UpdateBookingRequest) (*dto.UpdateResult, error) {
	result, err := s.repo.UpdateByID(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, events.Event{Resource: "booking", Action: events.ActionUpdated, ID: id})
	return result, nil
}

func (s *bookingService) Delete(ctx context.Context, id string) (*dto.DeleteResult, error) {
	count, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, events.Event{Resource: "booking", Action: events.ActionDeleted, ID: id})
	return &dto.DeleteResult{DeletedCount: count}, nil
}
