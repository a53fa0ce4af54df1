package routes

import (
	"github.com/shashiranjanraj/nexus/app/controllers"
	"github.com/shashiranjanraj/nexus/pkg/ctx"
	"github.com/shashiranjanraj/nexus/pkg/metrics"
	"github.com/shashiranjanraj/nexus/pkg/middleware"
	"github.com/shashiranjanraj/nexus/pkg/router"
)

// Handlers is everything RegisterAPI mounts.
type Handlers struct {
	Auth     *controllers.AuthController
	Products *controllers.ProductController
	Tokens   middleware.TokenParser

	// AuthLimiter throttles /register and /login when non-nil.
	AuthLimiter *middleware.RateLimiter
}

func RegisterAPI(r *router.Router, h Handlers) {
	r.Get("/", "health", ctx.Wrap(controllers.Health))
	r.Get("/metrics", "metrics", metrics.Handler())

	var credentials []router.Middleware
	if h.AuthLimiter != nil {
		credentials = append(credentials, h.AuthLimiter.Middleware)
	}
	r.Post("/register", "auth.register", ctx.Wrap(h.Auth.Register), credentials...)
	r.Post("/login", "auth.login", ctx.Wrap(h.Auth.Login), credentials...)

	protected := r.Group("/", middleware.Auth(h.Tokens))
	protected.Get("/me", "auth.me", ctx.Wrap(h.Auth.Me))

	products := r.Group("/products")
	products.Post("/", "products.store", ctx.Wrap(h.Products.Store))
	products.Get("/", "products.index", ctx.Wrap(h.Products.Index))
	products.Get("/{id}", "products.show", ctx.Wrap(h.Products.Show))
}
