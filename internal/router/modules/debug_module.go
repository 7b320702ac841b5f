package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-task-tracker/internal/container"
	"github.com/oksasatya/go-task-tracker/internal/interface/middleware"
)

type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	if cfg := container.GetConfig(); cfg == nil || !cfg.DebugMetricsEnabled {
		return
	}
	// Public metrics endpoint (expvar), rate-limited per IP with a bypass
	// for private/loopback addresses
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
