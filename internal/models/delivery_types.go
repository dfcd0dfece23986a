package models

import (
	"encoding/json"
	"time"
)

// DeliveryStatus is the state of a single scheduled drop-off.
type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "pending"
	DeliveryScheduled DeliveryStatus = "scheduled"
	DeliveryInTransit DeliveryStatus = "in_transit"
	DeliveryDelivered DeliveryStatus = "delivered"
)

// DateLayout is the wire and storage format of calendar dates.
const DateLayout = "2006-01-02"

// Delivery is the model for the 'deliveries' table.
type Delivery struct {
	ID            int64          `json:"id" db:"id"`
	OrderID       int64          `json:"orderId" db:"order_id"`
	ScheduledDate time.Time      `json:"-" db:"scheduled_date"` // 00:00 UTC of the calendar day
	Status        DeliveryStatus `json:"status" db:"status"`
	WeekNumber    int            `json:"weekNumber" db:"week_number"`
	CreatedAt     time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time      `json:"updatedAt" db:"updated_at"`
}

// deliveryJSON renders ScheduledDate as a plain date instead of an RFC 3339 instant.
type deliveryJSON struct {
	ID            int64          `json:"id"`
	OrderID       int64          `json:"orderId"`
	ScheduledDate string         `json:"scheduledDate"`
	Status        DeliveryStatus `json:"status"`
	WeekNumber    int            `json:"weekNumber"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

func (d Delivery) MarshalJSON() ([]byte, error) {
	return json.Marshal(deliveryJSON{
		ID:            d.ID,
		OrderID:       d.OrderID,
		ScheduledDate: d.ScheduledDate.Format(DateLayout),
		Status:        d.Status,
		WeekNumber:    d.WeekNumber,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	})
}

// Day truncates t to its calendar date, expressed as 00:00 UTC.
// The wall clock of t is kept; only the time of day is dropped.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD string into a calendar date.
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
