package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/organizai/organizai/config"
	"github.com/organizai/organizai/controllers"
	"github.com/organizai/organizai/gamification"
	"github.com/organizai/organizai/middleware"
	"github.com/organizai/organizai/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		// fallback to default recovery if logger failed to init
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Client-Module"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	engine := gamification.NewService(db, cfg)
	actionsController := controllers.NewActionsController(engine)
	summaryController := controllers.NewSummaryController(engine)
	goalsController := controllers.NewGoalsController(engine)
	usersController := controllers.NewUsersController(engine)

	api := r.Group("/api/v1")

	// Reads: dashboard views
	api.GET("/users/:id", usersController.GetProfile)
	api.GET("/users/:id/summary", summaryController.GetSummary)
	api.GET("/users/:id/goals", goalsController.ListGoals)

	// Writes: reporting modules and goal management
	writes := api.Group("")
	writes.Use(middleware.RateLimitMiddleware())
	writes.POST("/users", usersController.UpsertProfile)
	writes.POST("/actions", actionsController.RecordAction)
	writes.POST("/users/:id/evaluate", actionsController.Evaluate)
	writes.POST("/goals", goalsController.CreateGoal)
	writes.POST("/goals/:id/confirm", goalsController.ConfirmGoal)
	writes.POST("/users/:id/goals/check", goalsController.CheckGoals)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "api route not found")
	})

	return r
}
