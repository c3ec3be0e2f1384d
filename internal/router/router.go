package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/fonsecabarber/barber-api/internal/handler"
	"github.com/fonsecabarber/barber-api/internal/middleware"
	"github.com/fonsecabarber/barber-api/pkg/metrics"
	"github.com/fonsecabarber/barber-api/pkg/validator"
)

// JSON bodies are small; only the upload routes accept large requests.
const maxJSONBody = 10 << 20

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Router struct {
	engine       *gin.Engine
	config       RouterConfig
	content      Handler
	health       Handler
	admin        Handler
	appointments Handler
	media        Handler
	chat         Handler
	metrics      gin.HandlerFunc
}

type RouterConfig struct {
	Production     bool
	AllowedOrigins []string
	RateLimit      rate.Limit
	RateBurst      int
	RateLimited    bool
	// MaxUploadBytes is the per-file limit; the request body may exceed it by the multipart framing.
	MaxUploadBytes int64
	WriteDeadline  time.Duration
	Metrics        *metrics.Metrics
}

type Handlers struct {
	Content      Handler
	Health       Handler
	Admin        Handler
	Appointments Handler
	Media        Handler
	Chat         Handler
	// Metrics serves /metrics when set.
	Metrics gin.HandlerFunc
}

func NewRouter(handlers Handlers, config RouterConfig) *Router {
	if config.Production {
		gin.SetMode(gin.ReleaseMode)
	}
	validator.RegisterGin()

	engine := gin.New()
	engine.HandleMethodNotAllowed = false

	r := &Router{
		engine:       engine,
		config:       config,
		content:      handlers.Content,
		health:       handlers.Health,
		admin:        handlers.Admin,
		appointments: handlers.Appointments,
		media:        handlers.Media,
		chat:         handlers.Chat,
		metrics:      handlers.Metrics,
	}

	engine.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.ErrorHandler(),
		middleware.SecurityHeaders(middleware.DefaultSecurityConfig(config.Production)),
		middleware.CORS(config.AllowedOrigins),
	)
	if config.Metrics != nil {
		engine.Use(middleware.Metrics(config.Metrics))
	}

	engine.NoRoute(handler.NotFound)
	return r
}

// Setup serves every route both under /api and at the root.
func (r *Router) Setup() {
	if r.metrics != nil {
		r.engine.GET("/metrics", r.metrics)
	}

	var limited []gin.HandlerFunc
	if r.config.RateLimited {
		rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  r.config.RateLimit,
			Burst: r.config.RateBurst,
		})
		limited = append(limited, rateLimiter.RateLimit())
	}

	writes := append([]gin.HandlerFunc{
		middleware.SizeLimit(middleware.DefaultSizeLimitConfig(maxJSONBody)),
		middleware.Deadline(r.config.WriteDeadline),
	}, limited...)
	uploads := append([]gin.HandlerFunc{
		middleware.SizeLimit(middleware.DefaultSizeLimitConfig(r.config.MaxUploadBytes + 1<<20)),
	}, limited...)

	for _, prefix := range []string{"/api", ""} {
		base := r.engine.Group(prefix)
		register(base, r.content)
		register(base, r.health)
		register(base.Group("", writes...), r.admin)
		register(base.Group("", writes...), r.appointments)
		register(base.Group("", writes...), r.chat)
		register(base.Group("", uploads...), r.media)
	}
}

func register(rg *gin.RouterGroup, h Handler) {
	if h != nil {
		h.RegisterRoutes(rg)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
