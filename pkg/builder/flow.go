package builder

import (
	"github.com/kode4food/sluice/pkg/api"
)

// Flow is a builder for assembling flow definitions
type Flow struct {
	id         api.FlowID
	name       string
	startTask  api.Name
	tasks      []*api.Task
	conditions []*api.Condition
}

// NewFlow creates a new flow builder with the specified name
func NewFlow(name string) *Flow {
	return &Flow{
		id:   NewFlowID(name),
		name: name,
	}
}

// WithID overrides the generated flow ID
func (f *Flow) WithID(id api.FlowID) *Flow {
	res := *f
	res.id = id
	return &res
}

// WithStartTask sets the task the flow begins with
func (f *Flow) WithStartTask(name api.Name) *Flow {
	res := *f
	res.startTask = name
	return &res
}

// WithTasks sets the flow's tasks, replacing any added so far
func (f *Flow) WithTasks(names ...api.Name) *Flow {
	res := *f
	res.tasks = make([]*api.Task, len(names))
	for i, name := range names {
		res.tasks[i] = &api.Task{Name: name}
	}
	return &res
}

// WithTask appends a single task to the flow
func (f *Flow) WithTask(name api.Name) *Flow {
	res := *f
	res.tasks = make([]*api.Task, len(f.tasks)+1)
	copy(res.tasks, f.tasks)
	res.tasks[len(f.tasks)] = &api.Task{Name: name}
	return &res
}

// WithTaskDescribed appends a task carrying a description
func (f *Flow) WithTaskDescribed(name api.Name, description string) *Flow {
	res := *f
	res.tasks = make([]*api.Task, len(f.tasks)+1)
	copy(res.tasks, f.tasks)
	res.tasks[len(f.tasks)] = &api.Task{
		Name:        name,
		Description: description,
	}
	return &res
}

// BranchOn adds a condition evaluated after source completes. When the
// task's status equals outcome, execution continues with success;
// otherwise with failure
func (f *Flow) BranchOn(
	source api.Name, outcome api.Status, success, failure api.Name,
) *Flow {
	res := *f
	res.conditions = make([]*api.Condition, len(f.conditions)+1)
	copy(res.conditions, f.conditions)
	res.conditions[len(f.conditions)] = &api.Condition{
		Name:              source + "_check",
		SourceTask:        source,
		Outcome:           outcome,
		TargetTaskSuccess: success,
		TargetTaskFailure: failure,
	}
	return &res
}

// Branch adds a success-outcome condition for source
func (f *Flow) Branch(source api.Name, success, failure api.Name) *Flow {
	return f.BranchOn(source, api.StatusSuccess, success, failure)
}

// Build assembles and validates the flow definition
func (f *Flow) Build() (*api.Flow, error) {
	res := &api.Flow{
		ID:         f.id,
		Name:       f.name,
		StartTask:  f.startTask,
		Tasks:      f.tasks,
		Conditions: f.conditions,
	}
	if err := res.Validate(); err != nil {
		return nil, err
	}
	return res, nil
}
