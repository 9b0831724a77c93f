package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// PollScheduler decides when the next poll happens. It never starts cron
// goroutines; the schedule is only used to compute wake-up times.
type PollScheduler struct {
	schedule cron.Schedule
	spec     string
	now      func() time.Time
	logger   *logrus.Entry
}

// ParseSchedule accepts a standard cron spec ("*/10 * * * *"), a descriptor
// ("@every 10m", "@hourly") or a plain Go duration ("10m").
func ParseSchedule(spec string) (cron.Schedule, error) {
	if d, err := time.ParseDuration(spec); err == nil {
		if d < time.Second {
			return nil, fmt.Errorf("poll interval %s is shorter than one second", spec)
		}
		return cron.Every(d), nil
	}
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid poll schedule %q: %w", spec, err)
	}
	return sched, nil
}

func NewPollScheduler(spec string, logger *logrus.Entry) (*PollScheduler, error) {
	sched, err := ParseSchedule(spec)
	if err != nil {
		return nil, err
	}
	return &PollScheduler{
		schedule: sched,
		spec:     spec,
		now:      time.Now,
		logger:   logger,
	}, nil
}

// Next returns the next poll time after t.
func (s *PollScheduler) Next(t time.Time) time.Time {
	return s.schedule.Next(t)
}

// Wait blocks until the next scheduled poll or until ctx is done.
func (s *PollScheduler) Wait(ctx context.Context) error {
	now := s.now()
	next := s.schedule.Next(now)
	delay := next.Sub(now)
	if delay < 0 {
		delay = 0
	}
	s.logger.WithField("next_poll", next.Format(time.RFC3339)).Debugf("Sleeping %s until next poll (schedule %q).", delay.Round(time.Second), s.spec)

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
