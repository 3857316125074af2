package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kode4food/sluice/pkg/api"
)

func (s *Server) listTasks(c *gin.Context) {
	tasks := s.engine.Tasks()
	c.JSON(http.StatusOK, api.TaskListResponse{
		Tasks: tasks,
		Count: len(tasks),
	})
}
