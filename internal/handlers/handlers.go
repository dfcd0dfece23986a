package handlers

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Chibschibs-tech/fitnest/internal/models"
	"github.com/Chibschibs-tech/fitnest/internal/scheduling"
)

//go:generate mockgen -destination=mocks/mock_scheduler.go -package=mocks github.com/Chibschibs-tech/fitnest/internal/handlers Scheduler

// Scheduler is the part of the scheduling engine the handlers use.
type Scheduler interface {
	Order(ctx context.Context, id int64) (*models.Order, error)
	Today() time.Time
	GetDeliverySchedule(ctx context.Context, orderID int64) (*scheduling.Schedule, error)
	GenerateSchedule(ctx context.Context, req scheduling.ScheduleRequest) ([]models.Delivery, error)
	PauseSubscription(ctx context.Context, orderID int64, days int) error
	ResumeSubscription(ctx context.Context, orderID int64, resumeDate *time.Time) error
	MarkDelivered(ctx context.Context, deliveryID int64) error
}

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	Scheduler Scheduler
	Log       *zap.Logger
}

func New(s Scheduler, log *zap.Logger) *Handlers {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handlers{Scheduler: s, Log: log}
}
