package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/Imdachu/imf-gadget/metrics"
	"github.com/Imdachu/imf-gadget/services"
	"github.com/gin-gonic/gin"
)

// errorMessages holds the operation specific text for each error class
type errorMessages struct {
	validation     string
	notFound       string
	internal       string
	internalStatus int
}

// classify maps an error from the services package to an HTTP status
// and a message safe to show to the caller
func classify(err error, m errorMessages) (int, string) {
	switch {
	case errors.Is(err, services.ErrValidation):
		if m.validation == "" {
			return http.StatusBadRequest, "Invalid request body"
		}
		return http.StatusBadRequest, m.validation
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict, "User already exists"
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, services.ErrMissingToken):
		return http.StatusUnauthorized, "No token provided"
	case errors.Is(err, services.ErrInvalidToken):
		return http.StatusForbidden, "Invalid token"
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound, m.notFound
	}

	status := m.internalStatus
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return status, m.internal
}

// respondError writes {"error": ...} for err. Unexpected failures are
// logged with their cause; the body never carries it.
func respondError(c *gin.Context, tag string, err error, m errorMessages) {
	status, msg := classify(err, m)
	if errors.Is(err, services.ErrInternal) || status >= http.StatusInternalServerError {
		log.Printf("❌ [%s] %v", tag, err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// outcome returns the metrics outcome label for err
func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, services.ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrConflict),
		errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrMissingToken),
		errors.Is(err, services.ErrInvalidToken):
		return metrics.OutcomeRejected
	default:
		return metrics.OutcomeError
	}
}
