package controllers

import (
	"context"
	"sync"
	"time"

	"investmanager/src/scheduler"
	"investmanager/src/services"
)

// RateWarmer resolves every priced asset type for a day.
type RateWarmer interface {
	Warm(ctx context.Context, date time.Time) []services.WarmResult
	WarmToday(ctx context.Context) []services.WarmResult
}

type Controller struct {
	Warmer         RateWarmer
	Location       *time.Location
	SchedulerMutex sync.Mutex
	Scheduler      *scheduler.ScheduledTask
}

func NewController(warmer RateWarmer, location *time.Location) *Controller {
	return &Controller{Warmer: warmer, Location: location}
}
