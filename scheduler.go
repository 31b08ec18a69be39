package pumpkindb

import (
	"context"
	"sync"
	"time"

	"gopkg.in/tomb.v2"
)

// SchedulerConfig configures the worker pool (spec §5: a small, fixed-size
// pool of cooperative threads running environments to completion or
// suspension without preemption).
type SchedulerConfig struct {
	// Workers is the number of goroutines running submitted programs
	// concurrently. Each worker runs one environment to completion before
	// picking up the next job, so a program that blocks (e.g. awaiting a
	// write-transaction slot) occupies exactly one worker for its duration.
	Workers int
}

func (c *SchedulerConfig) setDefaults() {
	if c.Workers <= 0 {
		c.Workers = 4
	}
}

type job struct {
	ctx     context.Context
	program []byte
	result  chan<- jobResult
}

type jobResult struct {
	values []Value
	err    error
}

// Scheduler is PumpkinDB's cooperative scheduler: a bounded pool of workers,
// each a goroutine that pulls one submitted program at a time and runs it to
// completion. Adapted from quasar's Worker/Producer pair, whose tomb-managed
// goroutine pulls batches off a channel and drives them to completion one at
// a time; here each "batch" is a single program run against a fresh
// Environment rather than a ledger write.
type Scheduler struct {
	engine *Engine
	config SchedulerConfig
	queue  chan job
	tomb   tomb.Tomb

	mutex  sync.Mutex
	active map[*context.CancelFunc]time.Time
}

// NewScheduler creates and starts a scheduler bound to engine.
func NewScheduler(engine *Engine, config SchedulerConfig) *Scheduler {
	config.setDefaults()

	s := &Scheduler{
		engine: engine,
		config: config,
		queue:  make(chan job, config.Workers),
		active: map[*context.CancelFunc]time.Time{},
	}

	for i := 0; i < config.Workers; i++ {
		s.tomb.Go(s.worker)
	}

	return s
}

// Submit enqueues program for execution and blocks until the job fits in the
// scheduler's queue (buffered with one slot per worker), not until it
// finishes; the result arrives on the returned channel.
// Submit returns false if the scheduler is shutting down.
func (s *Scheduler) Submit(ctx context.Context, program []byte) (<-chan jobResult, bool) {
	result := make(chan jobResult, 1)

	select {
	case s.queue <- job{ctx: ctx, program: program, result: result}:
		return result, true
	case <-s.tomb.Dying():
		return nil, false
	}
}

// Close stops accepting new work and waits for in-flight programs to finish.
func (s *Scheduler) Close() {
	s.tomb.Kill(nil)
	close(s.queue)
	_ = s.tomb.Wait()
}

func (s *Scheduler) worker() error {
	for j := range s.queue {
		runCtx, cancel := context.WithCancel(j.ctx)
		s.track(&cancel)

		env := NewEnvironment(s.engine)
		values, err := env.Run(runCtx, j.program)
		env.Close()

		s.untrack(&cancel)
		cancel()

		select {
		case j.result <- jobResult{values: values, err: err}:
		default:
		}

		select {
		case <-s.tomb.Dying():
			return tomb.ErrDying
		default:
		}
	}
	return tomb.ErrDying
}

func (s *Scheduler) track(cancel *context.CancelFunc) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.active[cancel] = time.Now()
}

func (s *Scheduler) untrack(cancel *context.CancelFunc) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.active, cancel)
}

// reap cancels every running program started more than maxAge ago, returning
// how many it cancelled.
func (s *Scheduler) reap(maxAge time.Duration) int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	cutoff := time.Now().Add(-maxAge)
	n := 0
	for cancel, started := range s.active {
		if started.Before(cutoff) {
			(*cancel)()
			n++
		}
	}
	return n
}
