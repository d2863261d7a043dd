package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"homenest-api/dto"
	"homenest-api/middleware"
	"homenest-api/repositories"
	"homenest-api/services"
)

// BookingController handles the booking endpoints.
type BookingController struct {
	service services.BookingService
}

// NewBookingController creates the controller.
func NewBookingController(service services.BookingService) *BookingController {
	return &BookingController{service: service}
}

// Create handles POST /bookings. The referenced property's status is
// flipped to booked after the booking insert succeeds.
func (ctrl *BookingController) Create(c *gin.Context) {
	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	result, err := ctrl.service.Create(c.Request.Context(), req)
	if err != nil {
		internalError(c, err, "failed to create booking")
		return
	}
	c.JSON(http.StatusOK, result)
}

// MyBookings handles GET /my-bookings. Filters by the caller's email, or by
// propertyId when the query asks for it.
func (ctrl *BookingController) MyBookings(c *gin.Context) {
	if propertyID := c.Query("propertyId"); propertyID != "" {
		bookings, err := ctrl.service.ListByProperty(c.Request.Context(), propertyID)
		if err != nil {
			internalError(c, err, "failed to list property bookings")
			return
		}
		c.JSON(http.StatusOK, bookings)
		return
	}

	email := c.Query("email")
	if email == "" {
		if caller := middleware.IdentityFromContext(c); caller != nil {
			email = caller.Email
		}
	}

	bookings, err := ctrl.service.ListByUser(c.Request.Context(), email)
	if err != nil {
		internalError(c, err, "failed to list bookings")
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// AllBookings handles GET /all-bookings. Admin only.
func (ctrl *BookingController) AllBookings(c *gin.Context) {
	bookings, err := ctrl.service.ListAll(c.Request.Context())
	if err != nil {
		internalError(c, err, "failed to list all bookings")
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// Update handles PATCH /bookings/:id. Admin only; status mutation.
func (ctrl *BookingController) Update(c *gin.Context) {
	var req dto.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	result, err := ctrl.service.Update(c.Request.Context(), c.Param("id"), req)
	if errors.Is(err, repositories.ErrInvalidID) {
		invalidID(c)
		return
	}
	if err != nil {
		internalError(c, err, "failed to update booking")
		return
	}
	c.JSON(http.StatusOK, result)
}

// Delete handles DELETE /bookings/:id. Idempotent.
func (ctrl *BookingController) Delete(c *gin.Context) {
	result, err := ctrl.service.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repositories.ErrInvalidID) {
		invalidID(c)
		return
	}
	if err != nil {
		internalError(c, err, "failed to delete booking")
		return
	}
	c.JSON(http.StatusOK, result)
}
