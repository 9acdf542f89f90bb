// Package scheduler drives the dispatch functions on a fixed interval,
// standing in for an external cron trigger. The interval matches the
// eligibility tolerance window, so every per-subscriber send time is hit;
// the dispatch-side dedup markers absorb double fires.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/allofdaniel/yessirpanda-dashboard-sub000/internal/dispatch"
	"github.com/go-co-op/gocron"
)

// TriggerIntervalMinutes is how often each dispatch function is invoked
const TriggerIntervalMinutes = 3

// Scheduler manages the periodic dispatch trigger
type Scheduler struct {
	scheduler  *gocron.Scheduler
	dispatcher *dispatch.Dispatcher
}

// New creates a new scheduler instance
func New(d *dispatch.Dispatcher, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		scheduler:  gocron.NewScheduler(loc),
		dispatcher: d,
	}
}

// Start begins running all scheduled dispatches in a non-blocking manner
func (s *Scheduler) Start() {
	for _, dispatchType := range []string{
		dispatch.TypeMorningWords,
		dispatch.TypeMorningTest,
		dispatch.TypeLunchTest,
		dispatch.TypeEveningReview,
	} {
		dt := dispatchType
		s.scheduler.Every(TriggerIntervalMinutes).Minutes().Do(func() {
			s.runDispatch(dt)
		})
	}
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// runDispatch executes one dispatch type and logs its batch summary
func (s *Scheduler) runDispatch(dispatchType string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	summary, err := s.dispatcher.Run(ctx, dispatchType)
	if err != nil {
		log.Printf("scheduler: %s dispatch failed: %v", dispatchType, err)
		return
	}
	if summary.Sent > 0 || summary.SkippedNoWords > 0 || summary.SkippedAlreadySent > 0 {
		log.Printf("scheduler: %s sent=%d skippedNoWords=%d skippedAlreadySent=%d",
			dispatchType, summary.Sent, summary.SkippedNoWords, summary.SkippedAlreadySent)
	}
}
