package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kode4food/sluice/internal/engine"
	"github.com/kode4food/sluice/pkg/api"
	"github.com/kode4food/sluice/pkg/log"
)

var (
	ErrInvalidJSON  = errors.New("invalid JSON payload")
	ErrGetExecution = errors.New("failed to get execution")
)

func (s *Server) executeFlow(c *gin.Context) {
	var req api.ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Error:  fmt.Sprintf("%s: %v", ErrInvalidJSON, err),
			Status: http.StatusBadRequest,
		})
		return
	}

	if req.Flow == nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Error:  "request must contain a 'flow' object",
			Status: http.StatusBadRequest,
		})
		return
	}

	if err := req.Flow.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Error:  fmt.Sprintf("invalid flow definition: %v", err),
			Status: http.StatusBadRequest,
		})
		return
	}

	slog.Info("Flow execution requested",
		log.FlowID(req.Flow.ID),
		log.Username(currentUser(c).Username))

	result := s.engine.Execute(c.Request.Context(), req.Flow, req.Context)
	c.JSON(http.StatusOK, result)
}

func (s *Server) listExecutions(c *gin.Context) {
	executions := s.engine.ListExecutions()
	c.JSON(http.StatusOK, api.ExecutionListResponse{
		Executions: executions,
		Count:      len(executions),
	})
}

func (s *Server) getExecution(c *gin.Context) {
	id := api.ExecutionID(c.Param("executionID"))

	state, err := s.engine.GetExecution(id)
	if err == nil {
		c.JSON(http.StatusOK, state)
		return
	}

	if errors.Is(err, engine.ErrExecutionNotFound) {
		c.JSON(http.StatusNotFound, api.ErrorResponse{
			Error:  err.Error(),
			Status: http.StatusNotFound,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, api.ErrorResponse{
		Error:  fmt.Sprintf("%s: %v", ErrGetExecution, err),
		Status: http.StatusInternalServerError,
	})
}
