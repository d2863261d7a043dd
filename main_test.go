package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"homenest-api/domain"
	"homenest-api/dto"
	"homenest-api/events"
	"homenest-api/identity"
	"homenest-api/repositories"
	"homenest-api/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubVerifier maps bearer tokens to callers, standing in for the identity
// provider in routing tests.
type stubVerifier struct {
	callers map[string]*identity.Identity
}

func (s *stubVerifier) Verify(_ context.Context, header string) (*identity.Identity, error) {
	if header == "" {
		return nil, identity.ErrMissingToken
	}
	const prefix = "Bearer "
	if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
		return nil, identity.ErrInvalidToken
	}
	caller, ok := s.callers[header[len(prefix):]]
	if !ok {
		return nil, identity.ErrInvalidToken
	}
	return caller, nil
}

// In-memory repositories backing real services, so routing tests exercise
// the whole handler chain without a running database.

type memUserRepo struct {
	users map[string]*domain.User
}

func (m *memUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return u, nil
}
func (m *memUserRepo) Insert(_ context.Context, user *domain.User) (string, error) {
	user.ID = primitive.NewObjectID()
	m.users[user.Email] = user
	return user.ID.Hex(), nil
}
func (m *memUserRepo) List(_ context.Context, email string) ([]domain.User, error) {
	out := []domain.User{}
	for _, u := range m.users {
		if email == "" || u.Email == email {
			out = append(out, *u)
		}
	}
	return out, nil
}
func (m *memUserRepo) UpdateByEmail(_ context.Context, email string, req dto.UpdateUserRequest) (*dto.UpdateResult, error) {
	u, ok := m.users[email]
	if !ok {
		return &dto.UpdateResult{}, nil
	}
	if req.Role != "" {
		u.Role = domain.Role(req.Role)
	}
	if req.Name != "" {
		u.Name = req.Name
	}
	return &dto.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}
func (m *memUserRepo) DeleteByEmail(_ context.Context, email string) (int64, error) {
	if _, ok := m.users[email]; !ok {
		return 0, nil
	}
	delete(m.users, email)
	return 1, nil
}

type memPropertyRepo struct {
	properties map[string]*domain.Property
}

func (m *memPropertyRepo) List(_ context.Context, _ dto.PropertyListQuery) ([]domain.Property, error) {
	out := []domain.Property{}
	for _, p := range m.properties {
		out = append(out, *p)
	}
	return out, nil
}
func (m *memPropertyRepo) Latest(_ context.Context, _ int64) ([]domain.Property, error) {
	return m.List(context.Background(), dto.PropertyListQuery{})
}
func (m *memPropertyRepo) ListByOwner(_ context.Context, email string) ([]domain.Property, error) {
	out := []domain.Property{}
	for _, p := range m.properties {
		if p.UserEmail == email {
			out = append(out, *p)
		}
	}
	return out, nil
}
func (m *memPropertyRepo) FindByID(_ context.Context, id string) (*domain.Property, error) {
	p, ok := m.properties[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return p, nil
}
func (m *memPropertyRepo) Insert(_ context.Context, property *domain.Property) (string, error) {
	property.ID = primitive.NewObjectID()
	m.properties[property.ID.Hex()] = property
	return property.ID.Hex(), nil
}
func (m *memPropertyRepo) Update(_ context.Context, id string, _ dto.UpdatePropertyRequest) (*dto.UpdateResult, error) {
	if _, ok := m.properties[id]; !ok {
		return &dto.UpdateResult{}, nil
	}
	return &dto.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}
func (m *memPropertyRepo) SetStatus(_ context.Context, id string, status string) error {
	p, ok := m.properties[id]
	if !ok {
		return repositories.ErrNotFound
	}
	p.Status = status
	return nil
}
func (m *memPropertyRepo) Delete(_ context.Context, id string) (int64, error) {
	if _, ok := m.properties[id]; !ok {
		return 0, nil
	}
	delete(m.properties, id)
	return 1, nil
}

type memBookingRepo struct {
	bookings map[string]*domain.Booking
	updates  int
}

func (m *memBookingRepo) Insert(_ context.Context, booking *domain.Booking) (string, error) {
	booking.ID = primitive.NewObjectID()
	m.bookings[booking.ID.Hex()] = booking
	return booking.ID.Hex(), nil
}
func (m *memBookingRepo) ListByUser(_ context.Context, email string) ([]domain.Booking, error) {
	out := []domain.Booking{}
	for _, b := range m.bookings {
		if b.UserEmail == email {
			out = append(out, *b)
		}
	}
	return out, nil
}
func (m *memBookingRepo) ListByProperty(_ context.Context, propertyID string) ([]domain.Booking, error) {
	out := []domain.Booking{}
	for _, b := range m.bookings {
		if b.PropertyID == propertyID {
			out = append(out, *b)
		}
	}
	return out, nil
}
func (m *memBookingRepo) ListAll(_ context.Context) ([]domain.Booking, error) {
	out := []domain.Booking{}
	for _, b := range m.bookings {
		out = append(out, *b)
	}
	return out, nil
}
func (m *memBookingRepo) UpdateByID(_ context.Context, id string, req dto.UpdateBookingRequest) (*dto.UpdateResult, error) {
	m.updates++
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
func (m *memBookingRepo) DeleteByID(_ context.Context, id string) (int64, error) {
	if _, ok := m.bookings[id]; !ok {
		return 0, nil
	}
	delete(m.bookings, id)
	return 1, nil
}

type memReviewRepo struct {
	reviews map[string]*domain.Review
}

func (m *memReviewRepo) Insert(_ context.Context, review *domain.Review) (string, error) {
	review.ID = primitive.NewObjectID()
	m.reviews[review.ID.Hex()] = review
	return review.ID.Hex(), nil
}
func (m *memReviewRepo) List(_ context.Context, propertyID, email string) ([]domain.Review, error) {
	out := []domain.Review{}
	for _, r := range m.reviews {
		if propertyID != "" && r.PropertyID != propertyID {
			continue
		}
		if email != "" && r.ReviewerEmail != email {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}
func (m *memReviewRepo) FindByID(_ context.Context, id string) (*domain.Review, error) {
	r, ok := m.reviews[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return r, nil
}
func (m *memReviewRepo) DeleteByID(_ context.Context, id string) (int64, error) {
	if _, ok := m.reviews[id]; !ok {
		return 0, nil
	}
	delete(m.reviews, id)
	return 1, nil
}

type memContactRepo struct {
	messages []*domain.ContactMessage
}

func (m *memContactRepo) Insert(_ context.Context, message *domain.ContactMessage) (string, error) {
	message.ID = primitive.NewObjectID()
	m.messages = append(m.messages, message)
	return message.ID.Hex(), nil
}
func (m *memContactRepo) ListAll(_ context.Context) ([]domain.ContactMessage, error) {
	out := []domain.ContactMessage{}
	for _, msg := range m.messages {
		out = append(out, *msg)
	}
	return out, nil
}

// env bundles the fakes behind a fully wired router.
type env struct {
	router     *gin.Engine
	users      *memUserRepo
	properties *memPropertyRepo
	bookings   *memBookingRepo
	reviews    *memReviewRepo
	contact    *memContactRepo
}

func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{
		users:      &memUserRepo{users: map[string]*domain.User{}},
		properties: &memPropertyRepo{properties: map[string]*domain.Property{}},
		bookings:   &memBookingRepo{bookings: map[string]*domain.Booking{}},
		reviews:    &memReviewRepo{reviews: map[string]*domain.Review{}},
		contact:    &memContactRepo{},
	}

	e.users.users["admin@example.com"] = &domain.User{Email: "admin@example.com", Name: "Admin", Role: domain.RoleAdmin}
	e.users.users["ana@example.com"] = &domain.User{Email: "ana@example.com", Name: "Ana", Role: domain.RoleUser}

	verifier := &stubVerifier{callers: map[string]*identity.Identity{
		"admin-token": {UID: "admin-uid", Email: "admin@example.com"},
		"user-token":  {UID: "user-uid", Email: "ana@example.com"},
	}}

	userService := services.NewUserService(e.users)
	propertyService := services.NewPropertyService(e.properties, events.NoopPublisher{})
	bookingService := services.NewBookingService(e.bookings, e.properties, events.NoopPublisher{})
	reviewService := services.NewReviewService(e.reviews)
	contactService := services.NewContactService(e.contact)

	e.router = setupRouter(verifier, userService, propertyService, bookingService, reviewService, contactService)
	return e
}

func (e *env) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestLiveness(t *testing.T) {
	e := newEnv(t)
	w := e.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "HomeNest backend server is running!")
}

func TestUnknownRouteIs404(t *testing.T) {
	e := newEnv(t)
	w := e.do(t, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Route not found")
}

func TestUnmappedMethodIs405(t *testing.T) {
	e := newEnv(t)
	w := e.do(t, http.MethodPut, "/users", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Contains(t, w.Body.String(), "Method not allowed")
}

func TestRegister_NewAndExisting(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodPost, "/users", "", dto.RegisterUserRequest{Email: "new@example.com", Name: "New"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "insertedId")

	w = e.do(t, http.MethodPost, "/users", "", dto.RegisterUserRequest{Email: "new@example.com", Name: "Renamed"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "User already exists")
	assert.Equal(t, "New", e.users.users["new@example.com"].Name, "duplicate registration must not overwrite")
}

func TestRegister_InvalidPayload(t *testing.T) {
	e := newEnv(t)
	w := e.do(t, http.MethodPost, "/users", "", map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProtectedRoute_MissingToken(t *testing.T) {
	e := newEnv(t)
	w := e.do(t, http.MethodGet, "/my-bookings", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Unauthorized. Token not found!")
}

func TestProtectedRoute_InvalidToken(t *testing.T) {
	e := newEnv(t)
	w := e.do(t, http.MethodGet, "/my-bookings", "forged", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Unauthorized access.")
}

func TestAdminRoute_DeniedForRegularUser(t *testing.T) {
	e := newEnv(t)
	booking := &domain.Booking{PropertyID: "abc", UserEmail: "ana@example.com", Status: domain.BookingStatusPending}
	id, err := e.bookings.Insert(context.Background(), booking)
	require.NoError(t, err)

	w := e.do(t, http.MethodPatch, "/bookings/"+id, "user-token", dto.UpdateBookingRequest{Status: domain.BookingStatusConfirmed})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Access denied. Admin only.")
	assert.Equal(t, domain.BookingStatusPending, booking.Status, "denied request must not mutate the store")
	assert.Zero(t, e.bookings.updates)
}

func TestAdminRoute_AllowedForAdmin(t *testing.T) {
	e := newEnv(t)
	booking := &domain.Booking{PropertyID: "abc", UserEmail: "ana@example.com", Status: domain.BookingStatusPending}
	id, err := e.bookings.Insert(context.Background(), booking)
	require.NoError(t, err)

	w := e.do(t, http.MethodPatch, "/bookings/"+id, "admin-token", dto.UpdateBookingRequest{Status: domain.BookingStatusConfirmed})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.BookingStatusConfirmed, booking.Status)
	assert.Contains(t, w.Body.String(), `"matchedCount":1`)
}

func TestCreateBooking_FlipsPropertyStatus(t *testing.T) {
	e := newEnv(t)
	property := &domain.Property{UserEmail: "owner@example.com", PropertyName: "Loft", Status: domain.PropertyStatusAvailable}
	propertyID, err := e.properties.Insert(context.Background(), property)
	require.NoError(t, err)

	w := e.do(t, http.MethodPost, "/bookings", "user-token", dto.CreateBookingRequest{
		PropertyID: propertyID,
		UserEmail:  "ana@example.com",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "insertedId")
	assert.Equal(t, domain.PropertyStatusBooked, property.Status)

	bookings, err := e.bookings.ListByUser(context.Background(), "ana@example.com")
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, domain.BookingStatusPending, bookings[0].Status)
	assert.Equal(t, domain.PaymentStatusUnpaid, bookings[0].PaymentStatus)
}

func TestPublicListingsNeedNoToken(t *testing.T) {
	e := newEnv(t)
	for _, path := range []string{"/properties", "/latest-properties", "/reviews", "/reviews/abc123"} {
		w := e.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, w.Code, "GET %s", path)
	}
}

func TestReviewDelete_OwnerOnly(t *testing.T) {
	e := newEnv(t)
	review := &domain.Review{PropertyID: "p1", ReviewerEmail: "someone-else@example.com", Rating: 4}
	id, err := e.reviews.Insert(context.Background(), review)
	require.NoError(t, err)

	w := e.do(t, http.MethodDelete, "/reviews/"+id, "user-token", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	require.Len(t, e.reviews.reviews, 1, "denied delete must leave the review")

	w = e.do(t, http.MethodDelete, "/reviews/"+id, "admin-token", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, e.reviews.reviews)
}

func TestContactFlow(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodPost, "/contact", "", dto.CreateContactRequest{
		Name:    "Visitor",
		Email:   "visitor@example.com",
		Message: "Is the loft still free?",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, e.contact.messages, 1)
	assert.Equal(t, domain.ContactMessageStatusNew, e.contact.messages[0].Status)

	// listing the inbox is admin territory
	w = e.do(t, http.MethodGet, "/contact", "user-token", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = e.do(t, http.MethodGet, "/contact", "admin-token", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "visitor@example.com")
}

func TestCORSHeadersOnAPIResponses(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodGet, "/properties", "", nil)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = e.do(t, http.MethodOptions, "/bookings", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}
