package controllers

import (
	"context"
	"time"

	"investmanager/src/scheduler"
	"investmanager/src/schemas"
	"investmanager/src/utils"

	"github.com/sirupsen/logrus"
)

// WarmRates resolves all rates for date so the shared cache is populated.
func (c *Controller) WarmRates(ctx context.Context, date time.Time) *schemas.WarmResponse {
	results := c.Warmer.Warm(ctx, date)

	response := &schemas.WarmResponse{
		Date:    date.Format(utils.ShortDashDateLayout),
		Results: make([]schemas.WarmResultResponse, 0, len(results)),
	}
	for _, result := range results {
		item := schemas.WarmResultResponse{Code: string(result.Code)}
		if result.Error != nil {
			item.Error = result.Error.Error()
		} else {
			item.Rate = result.Rate.InexactFloat64()
		}
		response.Results = append(response.Results, item)
	}
	return response
}

// ScheduleWarming replaces any running warm job with one on cronSpec.
func (c *Controller) ScheduleWarming(cronSpec string, logger *logrus.Logger) error {
	c.StopWarming()

	task, err := scheduler.NewScheduledTask(cronSpec, func(ctx context.Context) {
		entry := logger.WithField("job", "warm_rates")
		ctx = utils.WithLogger(ctx, entry)
		c.Warmer.WarmToday(ctx)
	})
	if err != nil {
		return err
	}

	c.SchedulerMutex.Lock()
	c.Scheduler = task
	c.SchedulerMutex.Unlock()

	logger.WithFields(logrus.Fields{
		"spec":     cronSpec,
		"next_run": task.Entry().Next,
	}).Info("rate warming scheduled")
	return nil
}

func (c *Controller) StopWarming() {
	c.SchedulerMutex.Lock()
	defer c.SchedulerMutex.Unlock()
	if c.Scheduler != nil {
		c.Scheduler.Cancel()
		c.Scheduler = nil
	}
}
