package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-task-tracker/internal/container"
	handlers "github.com/oksasatya/go-task-tracker/internal/interface/http"
	"github.com/oksasatya/go-task-tracker/internal/interface/middleware"
	"github.com/oksasatya/go-task-tracker/pkg/helpers"
)

// TaskModule wires task CRUD behind the bearer-token guard.
// Routes:
//
//	POST   /task/tasks
//	GET    /task/tasks
//	GET    /task/tasks/:id
//	PUT    /task/tasks/:id
//	DELETE /task/tasks/:id
type TaskModule struct {
	Handler *handlers.TaskHandler
	JWT     *helpers.JWTManager
}

func NewTaskModule(h *handlers.TaskHandler, jwt *helpers.JWTManager) *TaskModule {
	return &TaskModule{Handler: h, JWT: jwt}
}

func (m *TaskModule) Register(rg *gin.RouterGroup) {
	tasks := rg.Group("/task")
	tasks.Use(middleware.Auth(m.JWT))
	tasks.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		tasks.POST("/tasks", m.Handler.Create)
		tasks.GET("/tasks", m.Handler.List)
		tasks.GET("/tasks/:id", m.Handler.Get)
		tasks.PUT("/tasks/:id", m.Handler.Update)
		tasks.DELETE("/tasks/:id", m.Handler.Delete)
	}
}
