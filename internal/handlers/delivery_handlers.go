package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Chibschibs-tech/fitnest/internal/models"
	"github.com/Chibschibs-tech/fitnest/internal/scheduling"
)

//
// --- Delivery Handlers (Manager-Only) ---
//

// GenerateScheduleInput is the body of POST /v1/manager/deliveries/generate.
// Omitted fields fall back to the order's own plan.
type GenerateScheduleInput struct {
	OrderID      int64    `json:"orderId" binding:"required,gt=0"`
	StartDate    *string  `json:"startDate" binding:"omitempty,datetime=2006-01-02"`
	TotalWeeks   *int     `json:"totalWeeks"`
	DeliveryDays []string `json:"deliveryDays" binding:"omitempty,dive,weekday"`
}

// GenerateSchedule is the handler for POST /v1/manager/deliveries/generate
func (h *Handlers) GenerateSchedule(c *gin.Context) {
	var input GenerateScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	order, err := h.Scheduler.Order(ctx, input.OrderID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	req := scheduling.ScheduleRequest{
		OrderID:    input.OrderID,
		TotalWeeks: scheduling.DefaultTotalWeeks,
		Days:       models.DefaultDeliveryDays,
	}

	switch {
	case input.StartDate != nil:
		if req.StartDate, err = models.ParseDay(*input.StartDate); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "startDate must be YYYY-MM-DD"})
			return
		}
	case order.DeliveryStartDate != nil:
		req.StartDate = *order.DeliveryStartDate
	default:
		req.StartDate = h.Scheduler.Today()
	}

	switch {
	case input.TotalWeeks != nil:
		req.TotalWeeks = *input.TotalWeeks
	case order.DurationWeeks > 0:
		req.TotalWeeks = order.DurationWeeks
	}

	// A present but empty list is passed on so the engine rejects it.
	if input.DeliveryDays != nil {
		if req.Days, err = models.ParseWeekdaySet(input.DeliveryDays); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	deliveries, err := h.Scheduler.GenerateSchedule(ctx, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"orderId":      req.OrderID,
		"startDate":    req.StartDate.Format(models.DateLayout),
		"totalWeeks":   req.TotalWeeks,
		"deliveryDays": req.Days,
		"deliveries":   deliveries,
	})
}

// MarkDelivered is the handler for PATCH /v1/manager/deliveries/:id/delivered
func (h *Handlers) MarkDelivered(c *gin.Context) {
	deliveryID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || deliveryID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid delivery ID"})
		return
	}

	if err := h.Scheduler.MarkDelivered(c.Request.Context(), deliveryID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Delivery marked as delivered", "deliveryId": deliveryID})
}
