package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	cm "github.com/Sauce1o9/Elementopia-Mobile/internal/client/models"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/common"
)

func (s *Server) ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

func (s *Server) login(c *gin.Context) {
	var req cm.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		writeError(c, http.StatusBadRequest, "Username and password are required")
		return
	}

	token, err := s.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorInvalidLoginPassword) {
			writeError(c, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		s.internalError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "Logged in", "username", req.Username)
	c.JSON(http.StatusOK, cm.LoginResponse{Message: "Login successful", Token: token})
}

func (s *Server) register(c *gin.Context) {
	var req cm.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	u, err := s.users.Register(c.Request.Context(), req)
	if err != nil {
		s.userError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "Registered", "username", u.Username, "id", u.ID)
	c.JSON(http.StatusCreated, u.DTO())
}

func (s *Server) currentUser(c *gin.Context) {
	u, err := s.users.CurrentUser(c.Request.Context(), identity(c).UserID)
	if err != nil {
		s.userError(c, err)
		return
	}
	c.JSON(http.StatusOK, u.DTO())
}

func (s *Server) allScores(c *gin.Context) {
	users, err := s.users.Scores(c.Request.Context())
	if err != nil {
		s.internalError(c, err)
		return
	}

	out := make([]cm.UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, u.Summary())
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) updateProfile(c *gin.Context) {
	var p cm.UserProfile
	if err := c.ShouldBindJSON(&p); err != nil {
		writeError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	u, err := s.users.UpdateProfile(c.Request.Context(), identity(c).UserID, p)
	if err != nil {
		s.userError(c, err)
		return
	}
	c.JSON(http.StatusOK, u.Profile())
}

// userError maps the service's sentinel errors onto status codes.
func (s *Server) userError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrorLoginAlreadyExists):
		writeError(c, http.StatusConflict, "Username already exists")
	case errors.Is(err, common.ErrorNotFound):
		writeError(c, http.StatusNotFound, "User not found")
	default:
		s.internalError(c, err)
	}
}

func (s *Server) internalError(c *gin.Context, err error) {
	s.logger.Error(c.Request.Context(), err.Error(), "path", c.Request.URL.Path)
	writeError(c, http.StatusInternalServerError, "Internal server error")
}
