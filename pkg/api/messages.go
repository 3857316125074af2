package api

type (
	// ExecuteRequest contains a flow definition to execute and an optional
	// initial context made available to the first task
	ExecuteRequest struct {
		Flow    *Flow `json:"flow"`
		Context Args  `json:"context,omitempty"`
	}

	// ExecutionListResponse contains the recorded execution states
	ExecutionListResponse struct {
		Executions []*ExecutionState `json:"executions"`
		Count      int               `json:"count"`
	}

	// TaskListResponse contains the names of registered tasks
	TaskListResponse struct {
		Tasks []Name `json:"tasks"`
		Count int    `json:"count"`
	}

	// HealthResponse provides service health information
	HealthResponse struct {
		Status  string `json:"status"`
		Service string `json:"service"`
		Version string `json:"version"`
	}

	// ErrorResponse contains error details for failed requests
	ErrorResponse struct {
		Error  string `json:"error"`
		Status int    `json:"status,omitempty"`
	}
)
