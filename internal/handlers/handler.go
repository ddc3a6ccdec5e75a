package handlers

import (
	"net/http"
	"time"

	"littlewins/internal/logger"
	"littlewins/internal/observability"
	"littlewins/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	now      func() time.Time
	upgrader websocket.Upgrader
}

// Option configures a Handler.
type Option func(*Handler)

// WithAllowedOrigins sets the origins accepted for WebSocket upgrades.
func WithAllowedOrigins(origins []string) Option {
	return func(h *Handler) { h.upgrader.CheckOrigin = originChecker(origins) }
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts ...Option) *Handler {
	h := &Handler{services: services, log: log, now: time.Now}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestIDMiddleware, observability.GinMiddleware(), h.requestLogMiddleware)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerPublicAPIRoutes(router)
	h.registerAPIRoutes(router)

	// Session countdown over WebSocket, same port
	router.GET("/ws/timer", h.timerStream)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
	}
}

func (h *Handler) registerPublicAPIRoutes(r *gin.Engine) {
	activities := r.Group("/api/v1/activities")
	{
		activities.GET("/all", h.listActivities)
		activities.GET("/modes", h.listModes)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		api.GET("/me", h.me)
		api.GET("/activities", h.nextActivity)
		h.registerSessionRoutes(api)
	}
}

func (h *Handler) registerSessionRoutes(api *gin.RouterGroup) {
	sessions := api.Group("/sessions")
	{
		// Body example: {"mode":"Relax","duration":5,"activity_id":"r1","activity_title":"Box Breathing","completed_at":"2025-03-10T09:00:00Z"}
		sessions.POST("", h.recordSession)
		sessions.GET("", h.listSessions)
		sessions.GET("/stats", h.getStats)
		sessions.GET("/daily-counts", h.getDailyCounts)
		sessions.GET("/:id", h.getSession)
		sessions.PUT("/:id/photo", h.attachPhoto)
	}
}

const statusOK = "ok"

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}
