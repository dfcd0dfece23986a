package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Chibschibs-tech/fitnest/internal/handlers"
	"github.com/Chibschibs-tech/fitnest/internal/logger"
	"github.com/Chibschibs-tech/fitnest/internal/middleware"
)

// Options carries what the router needs besides the handlers.
type Options struct {
	Tokens     middleware.TokenValidator
	CORSOrigin string
	Gatherer   prometheus.Gatherer
}

func SetupRouter(h *handlers.Handlers, opts Options) *gin.Engine {
	handlers.RegisterValidators()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.RequestLogger())
	// Must run before any route so preflight requests are answered.
	router.Use(middleware.CORSMiddleware(opts.CORSOrigin))

	if opts.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	v1 := router.Group("/v1")
	{
		// --- Ping Route (Public) ---
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// --- Subscription Routes (owner or manager) ---
		subscriptions := v1.Group("/subscriptions")
		subscriptions.Use(middleware.AuthMiddleware(opts.Tokens))
		{
			subscriptions.GET("/:id/schedule", h.GetSchedule)
			subscriptions.POST("/:id/pause", h.PauseSubscription)
			subscriptions.POST("/:id/resume", h.ResumeSubscription)
		}

		// --- Manager-Only Routes ---
		manager := v1.Group("/manager")
		manager.Use(middleware.AuthMiddleware(opts.Tokens))
		manager.Use(middleware.ManagerMiddleware())
		{
			manager.POST("/deliveries/generate", h.GenerateSchedule)
			manager.PATCH("/deliveries/:id/delivered", h.MarkDelivered)
		}
	}

	return router
}
