package pumpkindb

import (
	"context"

	"github.com/pumpkindb/pumpkindb/storage"
)

// EngineConfig configures a running PumpkinDB instance.
type EngineConfig struct {
	Storage   storage.Config
	Scheduler SchedulerConfig
	Reaper    ReaperConfig
}

// Engine is the top-level orchestrator: it owns the storage backend, the
// messaging bus, and the scheduler, and is the object every Environment
// holds a back-reference to. Adapted from quasar's Queue, which wires a
// Ledger, a Matrix, and a Worker pool together behind a single entry point.
type Engine struct {
	Storage storage.Backend
	Bus     *Bus

	scheduler *Scheduler
	reaper    *Reaper
}

// Open starts a new engine backed by a pebble store at config.Storage's
// directory.
func Open(config EngineConfig) (*Engine, error) {
	backend, err := storage.Open(config.Storage)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		Storage: backend,
		Bus:     NewBus(),
	}
	e.scheduler = NewScheduler(e, config.Scheduler)
	e.reaper = NewReaper(e.scheduler, config.Reaper)

	return e, nil
}

// Submit runs program to completion on the scheduler's worker pool and
// returns its final stack contents, blocking until it finishes or ctx is
// cancelled.
func (e *Engine) Submit(ctx context.Context, program []byte) ([]Value, error) {
	result, ok := e.scheduler.Submit(ctx, program)
	if !ok {
		return nil, NewError(KindDatabaseError, "engine is shutting down")
	}

	select {
	case r := <-result:
		return r.values, r.err
	case <-ctx.Done():
		return nil, NewError(KindDatabaseError, ctx.Err().Error())
	}
}

// Close stops the reaper and scheduler and closes the storage backend.
func (e *Engine) Close() error {
	e.reaper.Close()
	e.scheduler.Close()
	return e.Storage.Close()
}
