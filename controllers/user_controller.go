package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homenest-api/dto"
	"homenest-api/services"
)

// UserController handles the /users endpoints.
type UserController struct {
	service services.UserService
}

// NewUserController creates the controller.
func NewUserController(service services.UserService) *UserController {
	return &UserController{service: service}
}

// Register handles POST /users. Public; registering an email twice returns
// the existing-user notice and writes nothing.
func (ctrl *UserController) Register(c *gin.Context) {
	var req dto.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	result, existed, err := ctrl.service.Register(c.Request.Context(), req)
	if err != nil {
		internalError(c, err, "failed to register user")
		return
	}
	if existed {
		c.JSON(http.StatusOK, dto.NoticeResponse{Message: "User already exists"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// List handles GET /users. Admin only; accepts an exact email filter.
func (ctrl *UserController) List(c *gin.Context) {
	users, err := ctrl.service.List(c.Request.Context(), c.Query("email"))
	if err != nil {
		internalError(c, err, "failed to list users")
		return
	}
	c.JSON(http.StatusOK, users)
}

// Update handles PATCH /users/:email. Admin only; used for role promotion.
func (ctrl *UserController) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	result, err := ctrl.service.Update(c.Request.Context(), c.Param("email"), req)
	if err != nil {
		internalError(c, err, "failed to update user")
		return
	}
	c.JSON(http.StatusOK, result)
}

// Delete handles DELETE /users/:email. Idempotent: an unknown email yields
// a zero-count success.
func (ctrl *UserController) Delete(c *gin.Context) {
	result, err := ctrl.service.Delete(c.Request.Context(), c.Param("email"))
	if err != nil {
		internalError(c, err, "failed to delete user")
		return
	}
	c.JSON(http.StatusOK, result)
}
