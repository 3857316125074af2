package engine

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kode4food/sluice/pkg/api"
	"github.com/kode4food/sluice/pkg/log"
)

// Execute runs a flow to completion and returns its final result. The
// execution state is registered with the store before the first task
// runs, so concurrent readers can observe the run in flight. All faults
// are captured in the result; Execute itself never fails
func (e *Engine) Execute(
	ctx context.Context, flow *api.Flow, initial api.Args,
) *api.ExecutionResult {
	if err := flow.Validate(); err != nil {
		return e.invalidFlow(flow, err)
	}

	id := newExecutionID()
	e.store.Put(&api.ExecutionState{
		ExecutionID: id,
		FlowID:      flow.ID,
		FlowName:    flow.Name,
		Status:      api.StatusRunning,
		StartedAt:   time.Now(),
	})

	slog.Info("Flow execution starting",
		log.ExecutionID(id),
		log.FlowID(flow.ID),
		slog.Int("task_count", len(flow.Tasks)))

	e.publishExecutionStarted(id, flow)

	err := e.runFlow(ctx, flow, id, initial)
	final := e.finalizeExecution(id, err)

	if err != nil {
		slog.Error("Flow execution failed",
			log.ExecutionID(id),
			log.FlowID(flow.ID),
			log.Error(err))
		e.publishExecutionFailed(final)
		return &api.ExecutionResult{
			ExecutionID:    id,
			FlowID:         flow.ID,
			Status:         final.Status,
			Message:        fmt.Sprintf("flow execution failed: %s", err),
			ExecutionState: final,
		}
	}

	slog.Info("Flow execution completed",
		log.ExecutionID(id),
		log.FlowID(flow.ID),
		log.Status(final.Status),
		slog.Int("task_count", len(final.TaskResults)))
	e.publishExecutionCompleted(final)

	return &api.ExecutionResult{
		ExecutionID:    id,
		FlowID:         flow.ID,
		Status:         final.Status,
		Message:        resultMessage(final),
		ExecutionState: final,
	}
}

// runFlow walks the flow from its start task, invoking each task and
// following conditions, until it reaches the end marker, runs out of
// conditions, or trips the iteration guard
func (e *Engine) runFlow(
	ctx context.Context, flow *api.Flow, id api.ExecutionID,
	initial api.Args,
) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%v", rec)
		}
	}()

	flowCtx := initial
	if flowCtx == nil {
		flowCtx = api.Args{}
	}

	current := flow.StartTask
	iterations := 0

	for current != api.EndTask && iterations < MaxIterations {
		iterations++

		if flow.GetTask(current) == nil {
			return fmt.Errorf("task '%s' not found in flow", current)
		}

		name := current
		e.store.Update(id, func(st *api.ExecutionState) {
			st.CurrentTask = &name
		})
		e.publishTaskStarted(id, flow.ID, current)

		result := e.invoke(ctx, current, flowCtx)

		e.store.Update(id, func(st *api.ExecutionState) {
			st.AddTaskResult(result)
		})

		if result.Successful() {
			e.publishTaskCompleted(id, flow.ID, result)
		} else {
			e.publishTaskFailed(id, flow.ID, result)
		}

		if len(result.Data) > 0 {
			flowCtx = flowCtx.Set(current+"_result", result.Data)
		}

		cond := flow.ConditionFor(current)
		if cond == nil {
			slog.Info("No condition for task, flow complete",
				log.ExecutionID(id),
				log.TaskName(current))
			break
		}
		current = evaluateCondition(cond, result)
	}

	// the guard fires even when the final transition reached the end
	// marker on the boundary iteration
	if iterations >= MaxIterations {
		return errors.New(
			"flow execution exceeded maximum iterations: " +
				"possible infinite loop",
		)
	}
	return nil
}

// invoke bounds a task invocation by the configured timeout
func (e *Engine) invoke(
	ctx context.Context, name api.Name, args api.Args,
) *api.TaskResult {
	if e.taskTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.taskTimeout)
		defer cancel()
	}
	return e.registry.Invoke(ctx, name, args)
}

// finalizeExecution stamps the terminal status and completion time,
// returning a copy of the resulting state
func (e *Engine) finalizeExecution(
	id api.ExecutionID, runErr error,
) *api.ExecutionState {
	now := time.Now()
	var final *api.ExecutionState
	e.store.Update(id, func(st *api.ExecutionState) {
		st.CurrentTask = nil
		st.CompletedAt = &now
		if runErr != nil {
			st.Status = api.StatusFailure
			st.Error = runErr.Error()
		} else if st.Status == api.StatusRunning {
			st.Status = api.StatusSuccess
		}
		final = st.Clone()
	})
	return final
}

// invalidFlow records a failure state for a flow that never started
func (e *Engine) invalidFlow(
	flow *api.Flow, err error,
) *api.ExecutionResult {
	id := newExecutionID()
	now := time.Now()
	state := &api.ExecutionState{
		ExecutionID: id,
		FlowID:      flow.ID,
		FlowName:    flow.Name,
		Status:      api.StatusFailure,
		StartedAt:   now,
		CompletedAt: &now,
		Error:       err.Error(),
	}
	e.store.Put(state)

	slog.Error("Flow validation failed",
		log.FlowID(flow.ID),
		log.Error(err))
	e.publishExecutionFailed(state)

	return &api.ExecutionResult{
		ExecutionID:    id,
		FlowID:         flow.ID,
		Status:         api.StatusFailure,
		Message:        fmt.Sprintf("flow execution failed: %s", err),
		ExecutionState: state.Clone(),
	}
}

// evaluateCondition picks the next task based on whether the result's
// status matches the condition's expected outcome
func evaluateCondition(
	cond *api.Condition, result *api.TaskResult,
) api.Name {
	if result.Status == cond.Outcome {
		return cond.TargetTaskSuccess
	}
	return cond.TargetTaskFailure
}

func resultMessage(state *api.ExecutionState) string {
	switch state.Status {
	case api.StatusSuccess:
		return fmt.Sprintf(
			"Flow '%s' completed successfully. Executed %d task(s).",
			state.FlowName, len(state.TaskResults),
		)
	case api.StatusFailure:
		if task, ok := state.FailedTask(); ok {
			return fmt.Sprintf(
				"Flow '%s' failed at task '%s'.", state.FlowName, task,
			)
		}
		return fmt.Sprintf("Flow '%s' failed.", state.FlowName)
	default:
		return fmt.Sprintf(
			"Flow '%s' status: %s", state.FlowName, state.Status,
		)
	}
}

// newExecutionID returns a short unique execution identifier
func newExecutionID() api.ExecutionID {
	id := uuid.New()
	return api.ExecutionID("exec_" + hex.EncodeToString(id[:])[:12])
}
