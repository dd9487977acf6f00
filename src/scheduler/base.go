package scheduler

import (
	"context"
	"sync"

	"github.com/robfig/cron/v3"
)

// ScheduledTask runs a job on a cron spec until cancelled. Runs that have already
// started see their context cancelled.
type ScheduledTask struct {
	cronID cron.EntryID
	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

func NewScheduledTask(cronSpec string, taskFunc func(ctx context.Context)) (*ScheduledTask, error) {
	ctx, cancel := context.WithCancel(context.Background())
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	task := &ScheduledTask{
		cron:   c,
		ctx:    ctx,
		cancel: cancel,
	}

	id, err := c.AddFunc(cronSpec, func() {
		if ctx.Err() != nil {
			return
		}
		taskFunc(ctx)
	})
	if err != nil {
		cancel()
		return nil, err
	}

	task.cronID = id
	c.Start()
	return task, nil
}

// Entry exposes the cron entry, including the time of the next run.
func (s *ScheduledTask) Entry() cron.Entry {
	return s.cron.Entry(s.cronID)
}

func (s *ScheduledTask) Cancel() {
	s.once.Do(func() {
		s.cron.Remove(s.cronID)
		s.cancel()
		s.cron.Stop()
	})
}
