// Package httpapi exposes the task tracker's HTTP surface.
package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/and161185/taskkeep/internal/service"
)

// Server wires services into HTTP handlers.
type Server struct {
	httpSrv *http.Server
	auth    service.AuthService
	tasks   service.TaskService
	log     *zap.Logger
}

// New constructs the HTTP server with injected services.
func New(addr string, auth service.AuthService, tasks service.TaskService, log *zap.Logger) *Server {
	s := &Server{auth: auth, tasks: tasks, log: log}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(Recovery(log), RequestLogger(log))

	users := router.Group("/users")
	{
		users.POST("/register", s.register)
		users.POST("/token", s.token)
	}

	tg := router.Group("/tasks", s.requireAuth())
	{
		tg.POST("/", s.createTask)
		tg.GET("/", s.listTasks)
		tg.GET("/:taskID", s.getTask)
		tg.PUT("/:taskID", s.updateTask)
		tg.PATCH("/:taskID", s.updateTask)
		tg.DELETE("/:taskID", s.deleteTask)
		tg.POST("/:taskID/complete", s.completeTask)
		tg.POST("/:taskID/uncomplete", s.uncompleteTask)
	}

	s.httpSrv = &http.Server{Addr: addr, Handler: router}
	return s
}

// Start begins serving and blocks until the listener fails or closes.
func (s *Server) Start() error {
	return s.httpSrv.ListenAndServe()
}

// Shutdown drains in-flight requests within the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}
