package api

import "context"

type (
	// TaskOutput is the fixed result shape every task implementation
	// returns. Status decides how conditions route the flow; Data is
	// merged into the accumulated context under "<task_name>_result";
	// Error carries a human-readable failure description. Data and Error
	// are both recorded regardless of status
	TaskOutput struct {
		Status Status `json:"status"`
		Data   Args   `json:"data,omitempty"`
		Error  string `json:"error,omitempty"`
	}

	// TaskFunc is the contract for a task implementation. It receives the
	// accumulated execution context and must return a TaskOutput; faults
	// it raises by panicking are recovered by the registry and recorded
	// as failed results rather than propagated
	TaskFunc func(ctx context.Context, args Args) *TaskOutput
)
