package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homenest-api/dto"
	"homenest-api/services"
)

// ContactController handles the contact-form endpoints.
type ContactController struct {
	service services.ContactService
}

// NewContactController creates the controller.
func NewContactController(service services.ContactService) *ContactController {
	return &ContactController{service: service}
}

// Create handles POST /contact. Public; no token required.
func (ctrl *ContactController) Create(c *gin.Context) {
	var req dto.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	result, err := ctrl.service.Create(c.Request.Context(), req)
	if err != nil {
		internalError(c, err, "failed to save contact message")
		return
	}
	c.JSON(http.StatusOK, result)
}

// List handles GET /contact. Admin only; newest first.
func (ctrl *ContactController) List(c *gin.Context) {
	messages, err := ctrl.service.ListAll(c.Request.Context())
	if err != nil {
		internalError(c, err, "failed to list contact messages")
		return
	}
	c.JSON(http.StatusOK, messages)
}
