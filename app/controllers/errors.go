// Package controllers adapts HTTP requests to the services and maps domain
// errors to status codes.
package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/nexus/app/models"
	"github.com/shashiranjanraj/nexus/pkg/auth"
	"github.com/shashiranjanraj/nexus/pkg/ctx"
	"github.com/shashiranjanraj/nexus/pkg/logger"
)

// fail writes the response for err. Domain errors become 4xx with a fixed
// message; store outages become 503; anything else is logged and hidden
// behind a 500. A store failure wins over any domain error wrapped with it.
func fail(c *ctx.Context, err error) {
	switch {
	case errors.Is(err, models.ErrStoreUnavailable):
		logger.WithCtx(c.Context()).Error("store unavailable", "error", err)
		c.Error(http.StatusServiceUnavailable, "Service temporarily unavailable")
	case errors.Is(err, models.ErrDuplicateEmail):
		c.Error(http.StatusBadRequest, "This email address is already registered")
	case errors.Is(err, models.ErrAuthenticationFailed):
		c.Error(http.StatusBadRequest, "Incorrect email or password")
	case errors.Is(err, models.ErrInvalidIdentifier):
		c.Error(http.StatusBadRequest, "Invalid product ID format")
	case errors.Is(err, models.ErrNotFound):
		c.Error(http.StatusNotFound, "Product not found")
	case errors.Is(err, auth.ErrEmptyPassword):
		c.ValidationError(map[string]string{"password": "is required"})
	case errors.Is(err, auth.ErrPasswordTooLong):
		c.ValidationError(map[string]string{"password": "must be at most 72 bytes long"})
	default:
		logger.WithCtx(c.Context()).Error("unhandled error", "error", err)
		c.Error(http.StatusInternalServerError, "Internal server error")
	}
}
