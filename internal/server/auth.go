package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kode4food/sluice/internal/auth"
	"github.com/kode4food/sluice/pkg/api"
	"github.com/kode4food/sluice/pkg/log"
)

var ErrIssueToken = errors.New("failed to issue token")

func (s *Server) handleLogin(c *gin.Context) {
	var req api.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Error:  fmt.Sprintf("%s: %v", ErrInvalidJSON, err),
			Status: http.StatusBadRequest,
		})
		return
	}

	user, err := s.auth.Authenticate(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{
			Error:  "incorrect username or password",
			Status: http.StatusUnauthorized,
		})
		return
	}

	token, expiresIn, err := s.auth.IssueToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{
			Error:  fmt.Sprintf("%s: %v", ErrIssueToken, err),
			Status: http.StatusInternalServerError,
		})
		return
	}

	slog.Info("User logged in", log.Username(user.Username))
	c.JSON(http.StatusOK, api.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   expiresIn,
	})
}

func (s *Server) handleRegister(c *gin.Context) {
	var req api.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Error:  fmt.Sprintf("%s: %v", ErrInvalidJSON, err),
			Status: http.StatusBadRequest,
		})
		return
	}

	if req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Error:  "username and password are required",
			Status: http.StatusBadRequest,
		})
		return
	}

	user, err := s.auth.CreateUser(&req)
	if err == nil {
		slog.Info("User registered",
			log.Username(user.Username),
			slog.String("created_by", currentUser(c).Username))
		c.JSON(http.StatusCreated, user)
		return
	}

	if errors.Is(err, auth.ErrUserExists) {
		c.JSON(http.StatusConflict, api.ErrorResponse{
			Error:  err.Error(),
			Status: http.StatusConflict,
		})
		return
	}
	c.JSON(http.StatusBadRequest, api.ErrorResponse{
		Error:  err.Error(),
		Status: http.StatusBadRequest,
	})
}

func (s *Server) handleMe(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

func (s *Server) handleListUsers(c *gin.Context) {
	users := s.auth.ListUsers()
	c.JSON(http.StatusOK, api.UserListResponse{
		Users: users,
		Count: len(users),
	})
}
