package models

import "time"

// OrderStatus is the lifecycle state of a subscription order.
type OrderStatus string

const (
	OrderActive     OrderStatus = "active"
	OrderPaused     OrderStatus = "paused"
	OrderCancelled  OrderStatus = "cancelled"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderProcessing OrderStatus = "processing"
	OrderCompleted  OrderStatus = "completed"
)

// Valid reports whether s is one of the known order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderActive, OrderPaused, OrderCancelled, OrderConfirmed, OrderProcessing, OrderCompleted:
		return true
	}
	return false
}

// Closed reports whether the order can no longer change its delivery plan.
func (s OrderStatus) Closed() bool {
	return s == OrderCancelled || s == OrderCompleted
}

// MaxPauses is the number of pauses a subscription may use over its lifetime.
const MaxPauses = 1

// Order is the model for the 'orders' table.
// A meal-plan order doubles as the subscription that pause/resume act on.
type Order struct {
	ID                int64       `json:"id" db:"id"`
	UserID            int64       `json:"userId" db:"user_id"` // The customer
	Status            OrderStatus `json:"status" db:"status"`
	PauseCount        int         `json:"pauseCount" db:"pause_count"`
	PausedAt          *time.Time  `json:"pausedAt,omitempty" db:"paused_at"`
	DeliveryStartDate *time.Time  `json:"deliveryStartDate,omitempty" db:"delivery_start_date"`
	DurationWeeks     int         `json:"durationWeeks" db:"duration_weeks"`
	CreatedAt         time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time   `json:"updatedAt" db:"updated_at"`
}
