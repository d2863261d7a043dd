// Package controllers maps HTTP requests onto the services and shapes the
// responses. Store failures are logged with detail here and surfaced to the
// caller as an opaque internal error.
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homenest-api/dto"
	"homenest-api/middleware"
)

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "bad_request",
		Message: message,
	})
}

func invalidID(c *gin.Context) {
	badRequest(c, "Invalid identifier")
}

func notFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, dto.ErrorResponse{
		Error:   "not_found",
		Message: message,
	})
}

// internalError hides the failure detail from the caller; it only goes to
// the request log.
func internalError(c *gin.Context, err error, detail string) {
	middleware.Logger(c).WithError(err).Error(detail)
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error:   "internal_error",
		Message: "Internal server error",
	})
}
