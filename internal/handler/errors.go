package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"manager_system/internal/middleware"
	"manager_system/internal/model"
	"manager_system/internal/service"

	"github.com/gin-gonic/gin"
)

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrTokenInvalid),
		errors.Is(err, service.ErrTokenExpired),
		errors.Is(err, service.ErrTokenMalformed),
		errors.Is(err, service.ErrInvalidSignature):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrAccessDenied),
		errors.Is(err, service.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// publicErrors are answered with their own text only, so wrapped
// context such as record ids stays in the logs.
var publicErrors = []error{
	service.ErrInvalidCredentials,
	service.ErrTokenInvalid,
	service.ErrTokenExpired,
	service.ErrTokenMalformed,
	service.ErrInvalidSignature,
	service.ErrAccessDenied,
	service.ErrUnauthorized,
	service.ErrNotFound,
	service.ErrAlreadyExists,
}

// publicMessage is the error text returned to clients. Invalid input keeps
// its detail so the caller can correct the request.
func publicMessage(err error) string {
	for _, sentinel := range publicErrors {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}

// respondError writes err as a JSON error body. Unexpected errors are
// logged and answered with fallback instead of their text.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error(fallback, "error", err, "path", c.FullPath())
		_ = c.Error(err)
		c.JSON(status, gin.H{"error": fallback})
		return
	}
	c.JSON(status, gin.H{"error": publicMessage(err)})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
}

// identity returns the caller set by the JWT middleware or aborts with 401.
func identity(c *gin.Context) (model.Identity, bool) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return model.Identity{}, false
	}
	return id, true
}
