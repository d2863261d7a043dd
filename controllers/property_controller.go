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

// PropertyController handles the property endpoints.
type PropertyController struct {
	service services.PropertyService
}

// NewPropertyController creates the controller.
func NewPropertyController(service services.PropertyService) *PropertyController {
	return &PropertyController{service: service}
}

// List handles GET /properties. Public; an empty result is an empty list,
// never an error.
func (ctrl *PropertyController) List(c *gin.Context) {
	var query dto.PropertyListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, err.Error())
		return
	}

	properties, err := ctrl.service.List(c.Request.Context(), query)
	if err != nil {
		internalError(c, err, "failed to list properties")
		return
	}
	c.JSON(http.StatusOK, properties)
}

// Latest handles GET /latest-properties. Public; newest six listings.
func (ctrl *PropertyController) Latest(c *gin.Context) {
	properties, err := ctrl.service.Latest(c.Request.Context())
	if err != nil {
		internalError(c, err, "failed to list latest properties")
		return
	}
	c.JSON(http.StatusOK, properties)
}

// MyProperties handles GET /my-properties. The owner email defaults to the
// verified caller when the query does not carry one.
func (ctrl *PropertyController) MyProperties(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		if caller := middleware.IdentityFromContext(c); caller != nil {
			email = caller.Email
		}
	}

	properties, err := ctrl.service.ListByOwner(c.Request.Context(), email)
	if err != nil {
		internalError(c, err, "failed to list owner properties")
		return
	}
	c.JSON(http.StatusOK, properties)
}

// Get handles GET /properties/:id.
func (ctrl *PropertyController) Get(c *gin.Context) {
	property, err := ctrl.service.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repositories.ErrInvalidID) {
		invalidID(c)
		return
	}
	if errors.Is(err, repositories.ErrNotFound) {
		notFound(c, "Property not found")
		return
	}
	if err != nil {
		internalError(c, err, "failed to fetch property")
		return
	}
	c.JSON(http.StatusOK, property)
}

// Create handles POST /properties.
func (ctrl *PropertyController) Create(c *gin.Context) {
	var req dto.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	result, err := ctrl.service.Create(c.Request.Context(), req)
	if err != nil {
		internalError(c, err, "failed to create property")
		return
	}
	c.JSON(http.StatusOK, result)
}

// Update handles PUT /properties/:id. Only the whitelisted fields are
// replaced; unknown payload fields are ignored.
func (ctrl *PropertyController) Update(c *gin.Context) {
	var req dto.UpdatePropertyRequest
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
		internalError(c, err, "failed to update property")
		return
	}
	c.JSON(http.StatusOK, result)
}

// Delete handles DELETE /properties/:id. Idempotent.
func (ctrl *PropertyController) Delete(c *gin.Context) {
	result, err := ctrl.service.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repositories.ErrInvalidID) {
		invalidID(c)
		return
	}
	if err != nil {
		internalError(c, err, "failed to delete property")
		return
	}
	c.JSON(http.StatusOK, result)
}
