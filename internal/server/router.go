package server

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shahidarif12/AstraCommand/internal/auth"
	"github.com/shahidarif12/AstraCommand/internal/handler"
	"github.com/shahidarif12/AstraCommand/internal/middleware"
	"github.com/shahidarif12/AstraCommand/internal/store"
)

type Deps struct {
	Store       *store.Store
	TokenConfig auth.TokenConfig
}

func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	agentHandler := &handler.AgentHandler{Store: deps.Store}
	agent := r.Group("/api/v1/agent")
	agent.POST("/register", agentHandler.Register)
	agent.POST("/heartbeat", agentHandler.Heartbeat)
	agent.POST("/command", agentHandler.FetchCommand)
	agent.POST("/log", agentHandler.ReportLog)

	loginLimiter := middleware.NewRateLimiter(10, time.Minute)
	adminHandler := &handler.AdminHandler{
		Store:        deps.Store,
		TokenConfig:  deps.TokenConfig,
		LoginLimiter: loginLimiter,
	}

	r.POST("/api/v1/admin/login", adminHandler.Login)

	admin := r.Group("/api/v1/admin")
	admin.Use(middleware.RequireAdmin(deps.TokenConfig))
	admin.POST("/commands", adminHandler.SendCommand)
	admin.GET("/commands", adminHandler.CommandHistory)
	admin.GET("/devices", adminHandler.ListDevices)
	admin.DELETE("/devices/:device_id", adminHandler.DeleteDevice)
	admin.GET("/logs", adminHandler.QueryLogs)
	admin.DELETE("/logs/:id", adminHandler.DeleteLog)
	admin.GET("/overview", adminHandler.Overview)

	return r
}
