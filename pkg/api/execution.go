package api

import (
	"maps"
	"time"
)

type (
	// Status represents the state of a task result or a flow execution
	Status string

	// TaskResult records a single task invocation within an execution.
	// One result is appended per invocation, in chronological order,
	// whether or not the task succeeded
	TaskResult struct {
		TaskName    Name       `json:"task_name"`
		Status      Status     `json:"status"`
		Data        Args       `json:"data,omitempty"`
		Error       string     `json:"error,omitempty"`
		StartedAt   time.Time  `json:"started_at"`
		CompletedAt *time.Time `json:"completed_at"`
	}

	// ExecutionState is the complete record of one flow execution. It is
	// registered with the store before the first task runs and remains
	// readable after the run completes
	ExecutionState struct {
		ExecutionID ExecutionID   `json:"execution_id"`
		FlowID      FlowID        `json:"flow_id"`
		FlowName    string        `json:"flow_name"`
		Status      Status        `json:"status"`
		CurrentTask *Name         `json:"current_task"`
		TaskResults []*TaskResult `json:"task_results"`
		StartedAt   time.Time     `json:"started_at"`
		CompletedAt *time.Time    `json:"completed_at"`
		Error       string        `json:"error,omitempty"`
	}

	// ExecutionResult is the response returned for a completed execution
	ExecutionResult struct {
		ExecutionID    ExecutionID     `json:"execution_id"`
		FlowID         FlowID          `json:"flow_id"`
		Status         Status          `json:"status"`
		Message        string          `json:"message"`
		ExecutionState *ExecutionState `json:"execution_state"`
	}
)

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
	StatusRunning Status = "running"
	StatusPending Status = "pending"
)

// Successful returns true if the task completed with a success status
func (r *TaskResult) Successful() bool {
	return r.Status == StatusSuccess
}

// Clone returns a deep copy of the task result
func (r *TaskResult) Clone() *TaskResult {
	res := *r
	res.Data = maps.Clone(r.Data)
	if r.CompletedAt != nil {
		t := *r.CompletedAt
		res.CompletedAt = &t
	}
	return &res
}

// AddTaskResult appends a result to the execution trace
func (st *ExecutionState) AddTaskResult(r *TaskResult) {
	st.TaskResults = append(st.TaskResults, r)
}

// LastTaskResult returns the most recent task result, or nil if no task
// has run yet
func (st *ExecutionState) LastTaskResult() *TaskResult {
	if len(st.TaskResults) == 0 {
		return nil
	}
	return st.TaskResults[len(st.TaskResults)-1]
}

// FailedTask returns the name of the first failed task in the trace
func (st *ExecutionState) FailedTask() (Name, bool) {
	for _, r := range st.TaskResults {
		if r.Status == StatusFailure {
			return r.TaskName, true
		}
	}
	return "", false
}

// Clone returns a deep copy of the execution state. Readers receive
// clones so that an in-flight run never mutates a value they hold
func (st *ExecutionState) Clone() *ExecutionState {
	res := *st
	if st.CurrentTask != nil {
		ct := *st.CurrentTask
		res.CurrentTask = &ct
	}
	if st.CompletedAt != nil {
		t := *st.CompletedAt
		res.CompletedAt = &t
	}
	res.TaskResults = make([]*TaskResult, len(st.TaskResults))
	for i, r := range st.TaskResults {
		res.TaskResults[i] = r.Clone()
	}
	return &res
}
