package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"budget-be/internal/service"
)

// principalID returns the authenticated user's id set by the auth
// middleware. A missing id means the middleware did not run.
func principalID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		c.Abort()
		return "", false
	}
	return v.(string), true
}

// handleServiceError maps service-level failures to HTTP responses.
// Unexpected errors are logged and surfaced as a generic 500 so internals
// never leak to the caller.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrExpired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token has expired. Please request a new one."})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to access this resource"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("ERROR: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred"})
	}
}

// parseStartDate parses an optional inclusive lower bound. Accepts a plain
// ISO date or a full RFC3339 timestamp.
func parseStartDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// parseEndDate parses an optional inclusive upper bound. A plain ISO date
// is extended to the end of that day so the bound stays inclusive.
func parseEndDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		end := t.Add(24*time.Hour - time.Nanosecond)
		return &end, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
