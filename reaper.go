package pumpkindb

import (
	"time"

	"gopkg.in/tomb.v2"
)

// ReaperConfig configures the periodic cancellation of runaway programs.
type ReaperConfig struct {
	// MaxAge is how long a program may run before the reaper cancels its
	// context. Zero disables reaping.
	MaxAge time.Duration

	// Interval is how often the reaper sweeps for over-long-running
	// programs.
	Interval time.Duration

	// Errors, if set, receives a count of how many programs were cancelled
	// on each non-empty sweep.
	Errors func(cancelled int)
}

func (c *ReaperConfig) setDefaults() {
	if c.Interval <= 0 {
		c.Interval = time.Second
	}
}

// Reaper periodically cancels programs that have run longer than the
// configured MaxAge, enforcing spec §5's bound on worker occupancy by a
// single misbehaving or looping program. Adapted from quasar's Cleaner,
// whose tomb-managed ticker periodically trims a ledger honoring retention;
// here each tick trims the scheduler's active-job set instead of the
// storage log.
type Reaper struct {
	scheduler *Scheduler
	config    ReaperConfig
	tomb      tomb.Tomb
}

// NewReaper creates and starts a reaper watching scheduler. A zero MaxAge
// disables it (the goroutine still runs but never cancels anything).
func NewReaper(scheduler *Scheduler, config ReaperConfig) *Reaper {
	config.setDefaults()

	r := &Reaper{
		scheduler: scheduler,
		config:    config,
	}
	r.tomb.Go(r.worker)
	return r
}

// Close stops the reaper.
func (r *Reaper) Close() {
	r.tomb.Kill(nil)
	_ = r.tomb.Wait()
}

func (r *Reaper) worker() error {
	if r.config.MaxAge <= 0 {
		<-r.tomb.Dying()
		return tomb.ErrDying
	}

	for {
		select {
		case <-time.After(r.config.Interval):
		case <-r.tomb.Dying():
			return tomb.ErrDying
		}

		n := r.scheduler.reap(r.config.MaxAge)
		if n > 0 && r.config.Errors != nil {
			r.config.Errors(n)
		}
	}
}
