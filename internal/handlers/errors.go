package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Chibschibs-tech/fitnest/internal/models"
	"github.com/Chibschibs-tech/fitnest/internal/scheduling"
)

// statusFor maps engine errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, scheduling.ErrInvalidScheduleInput),
		errors.Is(err, scheduling.ErrInvalidPauseDuration),
		errors.Is(err, scheduling.ErrResumeTooSoon):
		return http.StatusBadRequest
	case errors.Is(err, scheduling.ErrOrderNotFound),
		errors.Is(err, scheduling.ErrDeliveryNotFound):
		return http.StatusNotFound
	case errors.Is(err, scheduling.ErrAlreadyPaused),
		errors.Is(err, scheduling.ErrPauseLimitExceeded),
		errors.Is(err, scheduling.ErrPauseNotEligible),
		errors.Is(err, scheduling.ErrNotPaused),
		errors.Is(err, scheduling.ErrScheduleLocked),
		errors.Is(err, scheduling.ErrSubscriptionClosed),
		errors.Is(err, scheduling.ErrDeliveryConflict):
		return http.StatusConflict
	case errors.Is(err, scheduling.ErrStorage):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// respondError writes err as {"error": ...}. Storage and unknown errors
// are logged and hidden behind a generic message.
func (h *Handlers) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	body := gin.H{"error": err.Error()}

	var notEligible *scheduling.PauseNotEligibleError
	if errors.As(err, &notEligible) {
		body["pauseEligibleDate"] = notEligible.EligibleAt
		if notEligible.NextDelivery != nil {
			body["nextDeliveryDate"] = notEligible.NextDelivery.Format(models.DateLayout)
		}
	}

	switch status {
	case http.StatusServiceUnavailable:
		h.Log.Error("storage failure", zap.String("path", c.FullPath()), zap.Error(err))
		c.Header("Retry-After", "1")
		body["error"] = "Service temporarily unavailable, please retry"
	case http.StatusInternalServerError:
		h.Log.Error("unexpected error", zap.String("path", c.FullPath()), zap.Error(err))
		body["error"] = "Internal server error"
	}
	c.JSON(status, body)
}

// trimDate renders an optional calendar date.
func trimDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(models.DateLayout)
	return &s
}
