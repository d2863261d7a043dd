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

// ReviewController handles the review endpoints.
type ReviewController struct {
	service services.ReviewService
	users   services.UserService
}

// NewReviewController creates the controller. The user service backs the
// owner-or-admin check on deletion.
func NewReviewController(service services.ReviewService, users services.UserService) *ReviewController {
	return &ReviewController{service: service, users: users}
}

// List handles GET /reviews. Public; filters by propertyId or email.
func (ctrl *ReviewController) List(c *gin.Context) {
	reviews, err := ctrl.service.List(c.Request.Context(), c.Query("propertyId"), c.Query("email"))
	if err != nil {
		internalError(c, err, "failed to list reviews")
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// ListByProperty handles GET /reviews/:propertyId. Public.
func (ctrl *ReviewController) ListByProperty(c *gin.Context) {
	reviews, err := ctrl.service.List(c.Request.Context(), c.Param("propertyId"), "")
	if err != nil {
		internalError(c, err, "failed to list property reviews")
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// MyReviews handles GET /my-reviews. The reviewer email defaults to the
// verified caller.
func (ctrl *ReviewController) MyReviews(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		if caller := middleware.IdentityFromContext(c); caller != nil {
			email = caller.Email
		}
	}

	reviews, err := ctrl.service.List(c.Request.Context(), "", email)
	if err != nil {
		internalError(c, err, "failed to list own reviews")
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// Create handles POST /reviews.
func (ctrl *ReviewController) Create(c *gin.Context) {
	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	result, err := ctrl.service.Create(c.Request.Context(), req)
	if err != nil {
		internalError(c, err, "failed to create review")
		return
	}
	c.JSON(http.StatusOK, result)
}

// Delete handles DELETE /reviews/:id. Allowed for an admin or for the
// review's author; anyone else authenticated gets a 403.
func (ctrl *ReviewController) Delete(c *gin.Context) {
	caller := middleware.IdentityFromContext(c)
	if caller == nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "unauthorized",
			Message: "Unauthorized access.",
		})
		return
	}

	isAdmin, err := ctrl.users.IsAdmin(c.Request.Context(), caller.Email)
	if err != nil {
		internalError(c, err, "admin role lookup failed")
		return
	}

	result, err := ctrl.service.Delete(c.Request.Context(), c.Param("id"), caller.Email, isAdmin)
	if errors.Is(err, repositories.ErrInvalidID) {
		invalidID(c)
		return
	}
	if errors.Is(err, services.ErrForbidden) {
		c.JSON(http.StatusForbidden, dto.ErrorResponse{
			Error:   "forbidden",
			Message: "Access denied.",
		})
		return
	}
	if err != nil {
		internalError(c, err, "failed to delete review")
		return
	}
	c.JSON(http.StatusOK, result)
}
