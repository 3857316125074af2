package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	app "github.com/kode4food/sluice"
	"github.com/kode4food/sluice/pkg/api"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, api.HealthResponse{
		Status:  "healthy",
		Service: app.Name,
		Version: app.Version,
	})
}
