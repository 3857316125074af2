package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/kode4food/sluice/internal/config"
	"github.com/kode4food/sluice/pkg/api"
	"github.com/kode4food/sluice/pkg/events"
)

type (
	// Engine is the core flow execution engine. It walks a flow's tasks
	// sequentially, consults conditions to pick the next task, and
	// records every run in its execution store
	Engine struct {
		registry    *Registry
		store       *Store
		hub         *events.Hub
		taskTimeout time.Duration
	}
)

// MaxIterations bounds the number of tasks a single execution may run
// before it is aborted as a probable cycle
const MaxIterations = 100

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrExecutionNotFound = errors.New("execution not found")
)

// New creates an engine backed by the provided registry, store, and
// event hub
func New(
	registry *Registry, store *Store, hub *events.Hub, cfg *config.Config,
) *Engine {
	return &Engine{
		registry:    registry,
		store:       store,
		hub:         hub,
		taskTimeout: cfg.TaskTimeoutDuration(),
	}
}

// GetExecution returns a copy of the identified execution state
func (e *Engine) GetExecution(
	id api.ExecutionID,
) (*api.ExecutionState, error) {
	state, ok := e.store.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrExecutionNotFound, id)
	}
	return state, nil
}

// ExecutionStateSeq returns the identified execution state along with
// the hub sequence a subscriber should resume from
func (e *Engine) ExecutionStateSeq(
	id api.ExecutionID,
) (*api.ExecutionState, int64, error) {
	state, err := e.GetExecution(id)
	if err != nil {
		return nil, 0, err
	}
	return state, e.hub.NextSequence(), nil
}

// ListExecutions returns copies of all recorded executions ordered by
// start time
func (e *Engine) ListExecutions() []*api.ExecutionState {
	return e.store.List()
}

// Tasks returns the names of all registered tasks in sorted order
func (e *Engine) Tasks() []api.Name {
	return e.registry.List()
}
