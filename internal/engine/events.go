package engine

import (
	"encoding/json"
	"log/slog"

	"github.com/kode4food/sluice/pkg/api"
	"github.com/kode4food/sluice/pkg/events"
	"github.com/kode4food/sluice/pkg/log"
)

func (e *Engine) publish(
	et api.EventType, id api.ExecutionID, flowID api.FlowID, payload any,
) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Warn("Failed to encode event payload",
			log.ExecutionID(id),
			log.Error(err))
		return
	}
	e.hub.Publish(&events.Event{
		Type:        et,
		ExecutionID: id,
		FlowID:      flowID,
		Data:        data,
	})
}

func (e *Engine) publishExecutionStarted(
	id api.ExecutionID, flow *api.Flow,
) {
	e.publish(api.EventTypeExecutionStarted, id, flow.ID,
		&api.ExecutionStartedEvent{
			ExecutionID: id,
			FlowID:      flow.ID,
			FlowName:    flow.Name,
			StartTask:   flow.StartTask,
		})
}

func (e *Engine) publishTaskStarted(
	id api.ExecutionID, flowID api.FlowID, name api.Name,
) {
	e.publish(api.EventTypeTaskStarted, id, flowID,
		&api.TaskStartedEvent{
			ExecutionID: id,
			FlowID:      flowID,
			TaskName:    name,
		})
}

func (e *Engine) publishTaskCompleted(
	id api.ExecutionID, flowID api.FlowID, result *api.TaskResult,
) {
	var duration int64
	if result.CompletedAt != nil {
		duration = result.CompletedAt.Sub(result.StartedAt).Milliseconds()
	}
	e.publish(api.EventTypeTaskCompleted, id, flowID,
		&api.TaskCompletedEvent{
			ExecutionID: id,
			FlowID:      flowID,
			TaskName:    result.TaskName,
			Data:        result.Data,
			Duration:    duration,
		})
}

func (e *Engine) publishTaskFailed(
	id api.ExecutionID, flowID api.FlowID, result *api.TaskResult,
) {
	e.publish(api.EventTypeTaskFailed, id, flowID,
		&api.TaskFailedEvent{
			ExecutionID: id,
			FlowID:      flowID,
			TaskName:    result.TaskName,
			Error:       result.Error,
		})
}

func (e *Engine) publishExecutionCompleted(state *api.ExecutionState) {
	e.publish(api.EventTypeExecutionCompleted,
		state.ExecutionID, state.FlowID,
		&api.ExecutionCompletedEvent{
			ExecutionID: state.ExecutionID,
			FlowID:      state.FlowID,
			Status:      state.Status,
			TaskCount:   len(state.TaskResults),
		})
}

func (e *Engine) publishExecutionFailed(state *api.ExecutionState) {
	e.publish(api.EventTypeExecutionFailed,
		state.ExecutionID, state.FlowID,
		&api.ExecutionFailedEvent{
			ExecutionID: state.ExecutionID,
			FlowID:      state.FlowID,
			Error:       state.Error,
		})
}
