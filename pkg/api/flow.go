package api

import (
	"errors"
	"fmt"
)

type (
	// Task declares a unit of work within a flow. The name must match a
	// registered task implementation for the task to run
	Task struct {
		Name        Name   `json:"name"`
		Description string `json:"description"`
	}

	// Condition routes a flow after its source task completes. The task's
	// result status is compared textually against the expected outcome:
	// on a match the flow proceeds to TargetTaskSuccess, otherwise to
	// TargetTaskFailure. Either target may be EndTask
	Condition struct {
		Name              Name   `json:"name"`
		Description       string `json:"description,omitempty"`
		SourceTask        Name   `json:"source_task"`
		Outcome           Status `json:"outcome"`
		TargetTaskSuccess Name   `json:"target_task_success"`
		TargetTaskFailure Name   `json:"target_task_failure"`
	}

	// Flow is a declarative definition of tasks and the conditions that
	// connect them. Flows are immutable once validated; the engine never
	// modifies a definition during a run
	Flow struct {
		ID         FlowID       `json:"id"`
		Name       string       `json:"name"`
		StartTask  Name         `json:"start_task"`
		Tasks      []*Task      `json:"tasks"`
		Conditions []*Condition `json:"conditions"`
	}
)

var (
	ErrNoTasks           = errors.New("flow must have at least one task")
	ErrStartTaskNotFound = errors.New("start task not found in tasks list")
	ErrInvalidOutcome    = errors.New(
		"condition outcome must be 'success' or 'failure'",
	)
)

// Validate checks that a flow definition is structurally sound: it has at
// least one task, its start task is declared, and every condition expects
// a recognized outcome. A flow that fails validation is never partially
// executed
func (f *Flow) Validate() error {
	if len(f.Tasks) == 0 {
		return fmt.Errorf("%w: %s", ErrNoTasks, f.ID)
	}
	if f.GetTask(f.StartTask) == nil {
		return fmt.Errorf("%w: %s", ErrStartTaskNotFound, f.StartTask)
	}
	for _, c := range f.Conditions {
		if c.Outcome != StatusSuccess && c.Outcome != StatusFailure {
			return fmt.Errorf("%w: %s has %q",
				ErrInvalidOutcome, c.Name, c.Outcome)
		}
	}
	return nil
}

// GetTask returns the first declared task with the given name, or nil if
// the flow does not declare one
func (f *Flow) GetTask(name Name) *Task {
	for _, t := range f.Tasks {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// ConditionFor returns the first declared condition whose source task
// matches, or nil if none does. When duplicates exist, declaration order
// wins
func (f *Flow) ConditionFor(name Name) *Condition {
	for _, c := range f.Conditions {
		if c.SourceTask == name {
			return c
		}
	}
	return nil
}

// TaskNames returns the declared task names in declaration order
func (f *Flow) TaskNames() []Name {
	res := make([]Name, len(f.Tasks))
	for i, t := range f.Tasks {
		res[i] = t.Name
	}
	return res
}
