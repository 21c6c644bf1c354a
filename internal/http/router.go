package api

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	intconfig "hoponhub/internal/config"
	h "hoponhub/internal/http/handlers"
	"hoponhub/internal/http/middleware"
	"hoponhub/internal/http/pages"
	"hoponhub/internal/session"
	"hoponhub/internal/utils"
)

func newEngine(module string) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(module), middleware.Metrics(module), gin.Recovery())
	if err := r.SetTrustedProxies(nil); err != nil {
		utils.Logger(module).Warn().Err(err).Msg("failed to set trusted proxies")
	}
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}

// NewAPIRouter serves the JSON booking backend under /api.
func NewAPIRouter(env intconfig.Env) *gin.Engine {
	r := newEngine("api")
	r.Use(middleware.CORS(env.CORSAllowedOrigins))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "Not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/routes", h.Routes)

		api.POST("/init-db", h.InitDB)
		api.GET("/buses/search", h.SearchBuses)
		api.GET("/seats/:routeId", h.GetSeats)
		api.POST("/bookings", h.CreateBooking)
		api.POST("/payment", h.ProcessPayment)
		api.GET("/booking/:id", h.GetBooking)
	}

	h.SetRouter(r)
	return r
}

// NewWebRouter serves the booking pages. Every page request carries a
// session resolved by sessions.
func NewWebRouter(pc *pages.Controller, sessions *session.Manager) *gin.Engine {
	r := newEngine("web")
	r.GET("/healthz", func(c *gin.Context) { c.String(stdhttp.StatusOK, "ok") })

	web := r.Group("/", middleware.Session(sessions))
	pc.Register(web)
	return r
}
