package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"homenest-api/domain"
	"homenest-api/dto"
	"homenest-api/events"
	"homenest-api/repositories"
)

// In-memory repository mocks shared by the service tests.

type mockUserRepository struct {
	users   map[string]*domain.User
	inserts int
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: map[string]*domain.User{}}
}

func (m *mockUserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := m.users[email]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *mockUserRepository) Insert(_ context.Context, user *domain.User) (string, error) {
	m.inserts++
	m.users[user.Email] = user
	return fmt.Sprintf("id-%d", m.inserts), nil
}

func (m *mockUserRepository) List(_ context.Context, email string) ([]domain.User, error) {
	users := []domain.User{}
	for _, user := range m.users {
		if email == "" || user.Email == email {
			users = append(users, *user)
		}
	}
	return users, nil
}

func (m *mockUserRepository) UpdateByEmail(_ context.Context, email string, req dto.UpdateUserRequest) (*dto.UpdateResult, error) {
	user, ok := m.users[email]
	if !ok {
		return &dto.UpdateResult{}, nil
	}
	if req.Role != "" {
		user.Role = domain.Role(req.Role)
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	return &dto.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *mockUserRepository) DeleteByEmail(_ context.Context, email string) (int64, error) {
	if _, ok := m.users[email]; !ok {
		return 0, nil
	}
	delete(m.users, email)
	return 1, nil
}

type mockPropertyRepository struct {
	properties map[string]*domain.Property
	statuses   map[string]string
	insertErr  error
	statusErr  error
	nextID     int
}

func newMockPropertyRepository() *mockPropertyRepository {
	return &mockPropertyRepository{
		properties: map[string]*domain.Property{},
		statuses:   map[string]string{},
	}
}

func (m *mockPropertyRepository) List(context.Context, dto.PropertyListQuery) ([]domain.Property, error) {
	properties := []domain.Property{}
	for _, p := range m.properties {
		properties = append(properties, *p)
	}
	return properties, nil
}

func (m *mockPropertyRepository) Latest(context.Context, int64) ([]domain.Property, error) {
	return m.List(context.Background(), dto.PropertyListQuery{})
}

func (m *mockPropertyRepository) ListByOwner(_ context.Context, email string) ([]domain.Property, error) {
	properties := []domain.Property{}
	for _, p := range m.properties {
		if p.UserEmail == email {
			properties = append(properties, *p)
		}
	}
	return properties, nil
}

func (m *mockPropertyRepository) FindByID(_ context.Context, id string) (*domain.Property, error) {
	p, ok := m.properties[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (m *mockPropertyRepository) Insert(_ context.Context, property *domain.Property) (string, error) {
	if m.insertErr != nil {
		return "", m.insertErr
	}
	m.nextID++
	id := fmt.Sprintf("prop-%d", m.nextID)
	m.properties[id] = property
	return id, nil
}

func (m *mockPropertyRepository) Update(_ context.Context, id string, _ dto.UpdatePropertyRequest) (*dto.UpdateResult, error) {
	if _, ok := m.properties[id]; !ok {
		return &dto.UpdateResult{}, nil
	}
	return &dto.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *mockPropertyRepository) SetStatus(_ context.Context, id string, status string) error {
	if m.statusErr != nil {
		return m.statusErr
	}
	m.statuses[id] = status
	if p, ok := m.properties[id]; ok {
		p.Status = status
	}
	return nil
}

func (m *mockPropertyRepository) Delete(_ context.Context, id string) (int64, error) {
	if _, ok := m.properties[id]; !ok {
		return 0, nil
	}
	delete(m.properties, id)
	return 1, nil
}

type mockBookingRepository struct {
	bookings  map[string]*domain.Booking
	insertErr error
	nextID    int
}

func newMockBookingRepository() *mockBookingRepository {
	return &mockBookingRepository{bookings: map[string]*domain.Booking{}}
}

func (m *mockBookingRepository) Insert(_ context.Context, booking *domain.Booking) (string, error) {
	if m.insertErr != nil {
		return "", m.insertErr
	}
	m.nextID++
	id := fmt.Sprintf("booking-%d", m.nextID)
	m.bookings[id] = booking
	return id, nil
}

func (m *mockBookingRepository) ListByUser(_ context.Context, email string) ([]domain.Booking, error) {
	bookings := []domain.Booking{}
	for _, b := range m.bookings {
		if b.UserEmail == email {
			bookings = append(bookings, *b)
		}
	}
	return bookings, nil
}

func (m *mockBookingRepository) ListByProperty(_ context.Context, propertyID string) ([]domain.Booking, error) {
	bookings := []domain.Booking{}
	for _, b := range m.bookings {
		if b.PropertyID == propertyID {
			bookings = append(bookings, *b)
		}
	}
	return bookings, nil
}

func (m *mockBookingRepository) ListAll(context.Context) ([]domain.Booking, error) {
	bookings := []domain.Booking{}
	for _, b := range m.bookings {
		bookings = append(bookings, *b)
	}
	return bookings, nil
}

func (m *mockBookingRepository) UpdateByID(_ context.Context, id string, req dto.UpdateBookingRequest) (*dto.UpdateResult, error) {
	b, ok := m.bookings[id]
	if !ok {
		return &dto.UpdateResult{}, nil
	}
	if req.Status != "" {
		b.Status = req.Status
	}
	if req.PaymentStatus != "" {
		b.PaymentStatus = req.PaymentStatus
	}
	return &dto.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *mockBookingRepository) DeleteByID(_ context.Context, id string) (int64, error) {
	if _, ok := m.bookings[id]; !ok {
		return 0, nil
	}
	delete(m.bookings, id)
	return 1, nil
}

type mockReviewRepository struct {
	reviews map[string]*domain.Review
	nextID  int
}

func newMockReviewRepository() *mockReviewRepository {
	return &mockReviewRepository{reviews: map[string]*domain.Review{}}
}

func (m *mockReviewRepository) Insert(_ context.Context, review *domain.Review) (string, error) {
	m.nextID++
	id := fmt.Sprintf("review-%d", m.nextID)
	m.reviews[id] = review
	return id, nil
}

func (m *mockReviewRepository) List(_ context.Context, propertyID, email string) ([]domain.Review, error) {
	reviews := []domain.Review{}
	for _, r := range m.reviews {
		if propertyID != "" && r.PropertyID != propertyID {
			continue
		}
		if propertyID == "" && email != "" && r.ReviewerEmail != email {
			continue
		}
		reviews = append(reviews, *r)
	}
	return reviews, nil
}

func (m *mockReviewRepository) FindByID(_ context.Context, id string) (*domain.Review, error) {
	r, ok := m.reviews[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *r
	return &copied, nil
}

func (m *mockReviewRepository) DeleteByID(_ context.Context, id string) (int64, error) {
	if _, ok := m.reviews[id]; !ok {
		return 0, nil
	}
	delete(m.reviews, id)
	return 1, nil
}

type mockContactRepository struct {
	messages []*domain.ContactMessage
}

func (m *mockContactRepository) Insert(_ context.Context, message *domain.ContactMessage) (string, error) {
	m.messages = append(m.messages, message)
	return fmt.Sprintf("contact-%d", len(m.messages)), nil
}

func (m *mockContactRepository) ListAll(context.Context) ([]domain.ContactMessage, error) {
	messages := []domain.ContactMessage{}
	for _, msg := range m.messages {
		messages = append(messages, *msg)
	}
	return messages, nil
}

// recordingPublisher captures events so tests can assert on them.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

var errStore = errors.New("store unavailable")
