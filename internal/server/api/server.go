// Package api serves the Elementopia REST contract over gin.
package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	cm "github.com/Sauce1o9/Elementopia-Mobile/internal/client/models"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/logging"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/server/auth"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/server/models"
)

const shutdownTimeout = 5 * time.Second

// UserService is the business logic behind the /user routes.
type UserService interface {
	Register(ctx context.Context, req cm.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	Authenticate(token string) (auth.Identity, error)
	CurrentUser(ctx context.Context, id int64) (*models.User, error)
	UpdateProfile(ctx context.Context, id int64, p cm.UserProfile) (*models.User, error)
	Scores(ctx context.Context) ([]*models.User, error)
}

type Server struct {
	address string
	users   UserService
	logger  logging.Logger
	router  *gin.Engine
}

func NewServer(address string, l logging.Logger, us UserService) *Server {
	s := &Server{
		address: address,
		users:   us,
		logger:  l.With("module", "http_server"),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), s.logRequests())

	api := r.Group("/api")
	api.GET("/ping", s.ping)

	user := api.Group("/user")
	user.POST("/login", s.login)
	user.POST("/register", s.register)

	authed := user.Group("", s.requireAuth())
	authed.GET("/current-user", s.currentUser)
	authed.GET("/getAllUserScore", s.allScores)
	authed.PUT("/update-profile", s.updateProfile)
	authed.GET("/students", requireRole(cm.RoleTeacher), s.allScores)

	return r
}

// Handler exposes the router, e.g. for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shCtx); err != nil {
			s.logger.Error(ctx, "shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
