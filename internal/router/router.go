package router

import (
	"log/slog"

	"github.com/Adarsha5421/Grainly-final/internal/activity"
	"github.com/Adarsha5421/Grainly-final/internal/config"
	"github.com/Adarsha5421/Grainly-final/internal/handler"
	"github.com/Adarsha5421/Grainly-final/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and wires the activity
// interceptor in front of every API route.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	activitySvc := activity.NewService(activity.NewStore(db), slog.Default())
	jwtSecret := cfg.JWT.Secret

	// ====== API ======
	// every API request is observed; observation never blocks or fails a request
	api := r.Group("/api")
	api.Use(middleware.ActivityLogger(activitySvc, jwtSecret, db))

	// public routes
	authHandler := handler.NewAuthHandler(db, activitySvc, jwtSecret, cfg.JWT.ExpireHours)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	pulseHandler := handler.NewPulseHandler(db)
	api.GET("/pulses", pulseHandler.List)
	api.GET("/pulses/:id", pulseHandler.Get)

	contactHandler := handler.NewContactHandler(db)
	api.POST("/contact", contactHandler.Submit)

	// routes that require a logged-in user
	protected := api.Group("")
	protected.Use(middleware.AuthRequired(jwtSecret, db))

	protected.GET("/me", handler.GetMe)
	protected.POST("/auth/logout", authHandler.Logout)

	// admin back office
	admin := protected.Group("/admin")
	admin.Use(middleware.AdminRequired())

	activityHandler := handler.NewActivityHandler(activitySvc, cfg.Activity)
	admin.GET("/activity-logs", activityHandler.ListLogs)
	admin.GET("/security-alerts", activityHandler.SecurityAlerts)
	admin.GET("/activity-analytics", activityHandler.Analytics)
	admin.GET("/users/:id/activity-summary", activityHandler.UserSummary)
	admin.GET("/activity-logs/export", activityHandler.Export)
	admin.DELETE("/activity-logs/cleanup", activityHandler.Cleanup)

	return r
}
