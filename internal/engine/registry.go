package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/kode4food/sluice/pkg/api"
	"github.com/kode4food/sluice/pkg/log"
)

// Registry maps task names to their implementations. Registration is
// last-writer-wins; invoking is fault-isolated so that a misbehaving
// task can never take the engine down with it
type Registry struct {
	mu    sync.RWMutex
	tasks map[api.Name]api.TaskFunc
}

// NewRegistry creates an empty task registry
func NewRegistry() *Registry {
	return &Registry{
		tasks: map[api.Name]api.TaskFunc{},
	}
}

// Register associates a task name with its implementation. Registering
// a name twice overwrites the previous implementation
func (r *Registry) Register(name api.Name, fn api.TaskFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[name]; ok {
		slog.Warn("Task already registered, overwriting",
			log.TaskName(name))
	}
	r.tasks[name] = fn
	slog.Info("Task registered",
		log.TaskName(name))
}

// Get returns the implementation registered under name
func (r *Registry) Get(name api.Name) (api.TaskFunc, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, ok := r.tasks[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, name)
	}
	return fn, nil
}

// Has returns true if a task is registered under name
func (r *Registry) Has(name api.Name) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.tasks[name]
	return ok
}

// List returns the registered task names in sorted order
func (r *Registry) List() []api.Name {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]api.Name, 0, len(r.tasks))
	for name := range r.tasks {
		res = append(res, name)
	}
	slices.Sort(res)
	return res
}

// Len returns the number of registered tasks
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tasks)
}

// Clear removes all registered tasks
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = map[api.Name]api.TaskFunc{}
}

// Invoke runs the named task and always produces a TaskResult. Lookup
// failures, panics, cancellation, and malformed outputs all map to a
// failure result rather than propagating to the caller
func (r *Registry) Invoke(
	ctx context.Context, name api.Name, args api.Args,
) *api.TaskResult {
	res := &api.TaskResult{
		TaskName:  name,
		Status:    api.StatusPending,
		StartedAt: time.Now(),
	}

	fn, err := r.Get(name)
	if err != nil {
		return failResult(res, err.Error())
	}

	output := make(chan *api.TaskOutput, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("Task panicked",
					log.TaskName(name),
					slog.Any("panic", rec))
				output <- &api.TaskOutput{
					Status: api.StatusFailure,
					Error:  fmt.Sprintf("task execution failed: %v", rec),
				}
			}
		}()
		output <- fn(ctx, args)
	}()

	select {
	case out := <-output:
		return applyOutput(res, out)
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return failResult(res, "task execution timed out")
		}
		return failResult(res, ctx.Err().Error())
	}
}

// applyOutput folds a task's output into its result. Any status other
// than success maps to failure; data and error carry over regardless
func applyOutput(res *api.TaskResult, out *api.TaskOutput) *api.TaskResult {
	if out == nil {
		return failResult(res, "invalid task output")
	}

	res.Status = api.StatusFailure
	if out.Status == api.StatusSuccess {
		res.Status = api.StatusSuccess
	}
	res.Data = out.Data
	res.Error = out.Error

	completed := time.Now()
	res.CompletedAt = &completed
	return res
}

func failResult(res *api.TaskResult, msg string) *api.TaskResult {
	res.Status = api.StatusFailure
	res.Error = msg

	completed := time.Now()
	res.CompletedAt = &completed
	return res
}
