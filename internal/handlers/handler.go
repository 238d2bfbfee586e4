package handlers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"contacts_api/internal/logger"
	"contacts_api/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Options tunes the router; the zero value serves a public contact book
// with stack traces in error bodies and no rate limiting.
type Options struct {
	// ProtectContacts puts /api/contacts and /ws/contacts behind the bearer check.
	ProtectContacts bool
	// HideStackTrace drops stackTrace from error bodies (production).
	HideStackTrace bool
	// CORSAllowedOrigins enables CORS for the listed origins when non-empty.
	CORSAllowedOrigins []string

	// Redis backs the register/login rate limiter; nil disables it.
	Redis           *redis.Client
	AuthRateLimit   int
	RateLimitWindow time.Duration
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	opts     Options
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts Options) *Handler {
	return &Handler{services: services, log: log, opts: opts}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(requestID(), h.errorMiddleware, gin.CustomRecovery(h.recoverPanic))
	if len(h.opts.CORSAllowedOrigins) > 0 {
		router.Use(cors.New(corsConfig(h.opts.CORSAllowedOrigins)))
	}
	router.NoRoute(h.notFound)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	h.registerUserRoutes(router)
	h.registerContactRoutes(router)
	h.registerLogRoutes(router)

	return router
}

func corsConfig(origins []string) cors.Config {
	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

func (h *Handler) registerUserRoutes(r *gin.Engine) {
	limit := RateLimit(h.opts.Redis, h.opts.AuthRateLimit, h.opts.RateLimitWindow, KeyByIPAndPath(), nil)

	users := r.Group("/api/users")
	{
		users.POST("/register", limit, h.registerUser)
		users.POST("/login", limit, h.loginUser)
		users.GET("/current", h.identityMiddleware, h.currentUser)
	}
}

func (h *Handler) registerContactRoutes(r *gin.Engine) {
	var guard []gin.HandlerFunc
	if h.opts.ProtectContacts {
		guard = append(guard, h.identityMiddleware)
	}

	contacts := r.Group("/api/contacts", guard...)
	{
		contacts.GET("", h.listContacts)
		contacts.POST("", h.createContact)
		contacts.GET("/:id", h.getContact)
		contacts.PUT("/:id", h.updateContact)
		contacts.PATCH("/:id", h.updateContact)
		contacts.DELETE("/:id", h.deleteContact)
	}

	// Contact snapshot stream over WebSocket, same port
	r.GET("/ws/contacts", append(guard, h.wsConnect)...)
}

func (h *Handler) registerLogRoutes(r *gin.Engine) {
	r.GET("/api/logs", h.identityMiddleware, h.getLogs)
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
