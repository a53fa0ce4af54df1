package app

import (
	"net/http"
	"time"

	"github.com/shashiranjanraj/nexus/app/controllers"
	"github.com/shashiranjanraj/nexus/app/routes"
	"github.com/shashiranjanraj/nexus/config"
	"github.com/shashiranjanraj/nexus/pkg/bind"
	"github.com/shashiranjanraj/nexus/pkg/metrics"
	"github.com/shashiranjanraj/nexus/pkg/middleware"
	"github.com/shashiranjanraj/nexus/pkg/reqid"
	"github.com/shashiranjanraj/nexus/pkg/response"
	"github.com/shashiranjanraj/nexus/pkg/router"
)

// Services are the use cases the HTTP surface drives.
type Services struct {
	Auth    controllers.Authenticator
	Catalog controllers.Catalog
	Tokens  middleware.TokenParser
}

// NewHandler builds the router with the global middleware stack and every
// API route. It opens no connections, so route:list can call it with zero
// Services.
func NewHandler(cfg *config.Config, svc Services) *router.Router {
	r := router.New()

	// Global middleware stack (outermost → innermost):
	//  1. Prometheus metrics, for total latency
	//  2. Request ID, before anything logs
	//  3. Logger, tags the request logger with the ID
	//  4. Recovery, logs panics through the request logger
	//  5. CORS
	r.Use(metrics.Middleware())
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.Recovery)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions(cfg.CORSOrigins...)))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) { response.NotFound(w) })
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) { response.MethodNotAllowed(w) })

	binder := bind.New(cfg.MaxBodyBytes)

	var limiter *middleware.RateLimiter
	if cfg.AuthRateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.AuthRateLimit, time.Minute)
	}

	routes.RegisterAPI(r, routes.Handlers{
		Auth:        controllers.NewAuthController(svc.Auth, binder),
		Products:    controllers.NewProductController(svc.Catalog, binder),
		Tokens:      svc.Tokens,
		AuthLimiter: limiter,
	})

	return r
}
