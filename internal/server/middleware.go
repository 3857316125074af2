package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kode4food/sluice/pkg/api"
)

// userKey is the gin context key under which the authenticated user is
// stored for downstream handlers
const userKey = "sluice.user"

func (s *Server) authRequired(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{
			Error:  "missing bearer token",
			Status: http.StatusUnauthorized,
		})
		return
	}

	user, err := s.auth.VerifyToken(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{
			Error:  err.Error(),
			Status: http.StatusUnauthorized,
		})
		return
	}

	c.Set(userKey, user)
	c.Next()
}

func (s *Server) requireRole(role api.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil || !user.Role.Satisfies(role) {
			c.AbortWithStatusJSON(http.StatusForbidden, api.ErrorResponse{
				Error: fmt.Sprintf(
					"insufficient permissions, requires role: %s", role,
				),
				Status: http.StatusForbidden,
			})
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *api.User {
	val, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, ok := val.(*api.User)
	if !ok {
		return nil
	}
	return user
}
