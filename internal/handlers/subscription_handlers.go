package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Chibschibs-tech/fitnest/internal/middleware"
	"github.com/Chibschibs-tech/fitnest/internal/models"
	"github.com/Chibschibs-tech/fitnest/internal/scheduling"
)

//
// --- Subscription Handlers (owner or manager) ---
//

// ScheduleResponse is the body of GET /v1/subscriptions/:id/schedule.
type ScheduleResponse struct {
	OrderID           int64             `json:"orderId"`
	Deliveries        []models.Delivery `json:"deliveries"`
	NextDeliveryDate  *string           `json:"nextDeliveryDate"`
	CanPause          bool              `json:"canPause"`
	PauseEligibleDate *time.Time        `json:"pauseEligibleDate,omitempty"`
	Synthetic         bool              `json:"synthetic,omitempty"`
}

type PauseInput struct {
	PauseDurationDays *int `json:"pauseDurationDays" binding:"required"`
}

type ResumeInput struct {
	ResumeDate *string `json:"resumeDate" binding:"omitempty,datetime=2006-01-02"`
}

// GetSchedule is the handler for GET /v1/subscriptions/:id/schedule
func (h *Handlers) GetSchedule(c *gin.Context) {
	orderID, ok := h.authorizeOrder(c)
	if !ok {
		return
	}

	s, err := h.Scheduler.GetDeliverySchedule(c.Request.Context(), orderID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ScheduleResponse{
		OrderID:           s.OrderID,
		Deliveries:        s.Deliveries,
		NextDeliveryDate:  trimDate(s.NextDeliveryDate),
		CanPause:          s.CanPause,
		PauseEligibleDate: s.PauseEligibleDate,
		Synthetic:         s.Synthetic,
	})
}

// PauseSubscription is the handler for POST /v1/subscriptions/:id/pause
func (h *Handlers) PauseSubscription(c *gin.Context) {
	orderID, ok := h.authorizeOrder(c)
	if !ok {
		return
	}

	var input PauseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Scheduler.PauseSubscription(c.Request.Context(), orderID, *input.PauseDurationDays); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":           "Subscription paused",
		"pauseDurationDays": *input.PauseDurationDays,
	})
}

// ResumeSubscription is the handler for POST /v1/subscriptions/:id/resume
// The body is optional; without a resumeDate the shifted dates are kept.
func (h *Handlers) ResumeSubscription(c *gin.Context) {
	orderID, ok := h.authorizeOrder(c)
	if !ok {
		return
	}

	var input ResumeInput
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var resumeDate *time.Time
	if input.ResumeDate != nil {
		d, err := models.ParseDay(*input.ResumeDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "resumeDate must be YYYY-MM-DD"})
			return
		}
		resumeDate = &d
	}

	if err := h.Scheduler.ResumeSubscription(c.Request.Context(), orderID, resumeDate); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Subscription resumed"})
}

// authorizeOrder parses :id and checks the caller owns the order or is a
// manager. Foreign orders are reported as not found.
func (h *Handlers) authorizeOrder(c *gin.Context) (int64, bool) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || orderID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return 0, false
	}

	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return 0, false
	}

	order, err := h.Scheduler.Order(c.Request.Context(), orderID)
	if err != nil {
		h.respondError(c, err)
		return 0, false
	}
	if order.UserID != identity.UserID && !identity.IsManager() {
		h.respondError(c, scheduling.ErrOrderNotFound)
		return 0, false
	}
	return orderID, true
}
