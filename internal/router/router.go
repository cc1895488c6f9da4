package router

import (
	"github.com/fasthttp/router"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/taskspace/api/handler"
	"github.com/fastygo/taskspace/domain"
	"github.com/fastygo/taskspace/internal/middleware"
)

type Handlers struct {
	Auth   *apiHandler.AuthHandler
	Task   *apiHandler.TaskHandler
	Health *apiHandler.HealthHandler
}

func New(handlers Handlers, sessions middleware.SessionSource, logger *zap.Logger) *router.Router {
	r := router.New()
	authed := middleware.RequireSession(sessions, logger)
	views := func(v domain.View) middleware.Middleware {
		return middleware.RequireView(v, logger)
	}

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/logout", handlers.Auth.Logout)
	r.GET("/api/v1/session", handlers.Auth.Session)
	r.GET("/api/v1/menu", authed(handlers.Auth.Menu))

	// Views
	r.GET("/api/v1/dashboard", middleware.Chain(handlers.Task.Dashboard, authed, views(domain.ViewDashboard)))
	r.POST("/api/v1/tasks", middleware.Chain(handlers.Task.CreateTask, authed, views(domain.ViewCreateTask)))
	r.GET("/api/v1/tasks", middleware.Chain(handlers.Task.GetTasks, authed, views(domain.ViewTasks)))
	r.POST("/api/v1/tasks/{id}/toggle", middleware.Chain(handlers.Task.ToggleTask, authed, views(domain.ViewTasks)))
	r.PUT("/api/v1/tasks/{id}", middleware.Chain(handlers.Task.UpdateTask, authed, views(domain.ViewTasks)))
	r.DELETE("/api/v1/tasks/{id}", middleware.Chain(handlers.Task.DeleteTask, authed, views(domain.ViewTasks)))
	r.GET("/api/v1/operations", authed(handlers.Task.Operations))

	return r
}
