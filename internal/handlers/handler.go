package handlers

import (
	"auto_grow/internal/logger"
	"auto_grow/internal/models"
	"auto_grow/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Version is reported on GET /.
const Version = "1.0.0"

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/", h.root)
	router.GET("/health", h.health)

	// Credential verification (unauthenticated)
	h.registerAuthRoutes(router)

	// Domain endpoints (HTTP Basic)
	h.registerAPIRoutes(router)

	ws := router.Group("/ws", h.basicAuthMiddleware)
	{
		ws.GET("/trackings/:deviceId", h.wsLatestTracking)
	}

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/login", h.login)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api", h.basicAuthMiddleware)
	{
		registerCRUD[models.Device, models.DeviceCreate, models.DeviceUpdate](h, api.Group("/devices"), "device", h.services.Devices)
		registerCRUD[models.Stage, models.StageCreate, models.StageUpdate](h, api.Group("/stages"), "stage", h.services.Stages)
		registerCRUD[models.Protocol, models.ProtocolCreate, models.ProtocolUpdate](h, api.Group("/protocols"), "protocol", h.services.Protocols)
		registerCRUD[models.CustomAction, models.CustomActionCreate, models.CustomActionUpdate](h, api.Group("/custom-actions"), "custom_action", h.services.CustomActions)
		h.registerTrackingRoutes(api)
	}
}

func (h *Handler) registerTrackingRoutes(api *gin.RouterGroup) {
	trackings := api.Group("/trackings")
	{
		registerCRUD[models.Tracking, models.TrackingCreate, models.TrackingUpdate](h, trackings, "tracking", h.services.Trackings)
		trackings.GET("/device/:deviceId", h.trackingsByDevice)
		trackings.GET("/device/:deviceId/history/:window", h.trackingHistory)
		trackings.GET("/device/:deviceId/latest", h.latestTracking)
	}
}
