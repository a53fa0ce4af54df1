// Package app wires configuration, both stores, the services and the HTTP
// surface into one Application.
//
//	cfg, _ := config.Load()
//	a, err := app.Boot(ctx, cfg)
//	if err != nil { ... }
//	defer a.Close()
//	return a.Serve(ctx)
package app

import (
	"context"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/nexus/app/models"
	"github.com/shashiranjanraj/nexus/app/repositories"
	"github.com/shashiranjanraj/nexus/app/services"
	"github.com/shashiranjanraj/nexus/config"
	"github.com/shashiranjanraj/nexus/pkg/auth"
	"github.com/shashiranjanraj/nexus/pkg/cache"
	"github.com/shashiranjanraj/nexus/pkg/database"
	"github.com/shashiranjanraj/nexus/pkg/logger"
	"github.com/shashiranjanraj/nexus/pkg/router"
)

// Application is a booted service: open stores plus the HTTP handler built
// on top of them.
type Application struct {
	Config *config.Config
	DB     *gorm.DB
	Mongo  *mongo.Client
	Cache  *cache.Cache

	router *router.Router
}

// Boot connects to both stores and the optional cache, creates the users
// table if it is missing, and builds the handler. On error everything
// opened so far is closed again.
func Boot(ctx context.Context, cfg *config.Config) (*Application, error) {
	a := &Application{Config: cfg}
	if err := a.open(ctx); err != nil {
		a.Close()
		return nil, err
	}

	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.JWTTTL)
	users := repositories.NewUserRepository(a.DB, auth.NewHasher(cfg.BcryptCost))
	products := repositories.NewProductRepository(a.Mongo, cfg.MongoDatabase, cfg.MongoCollection)

	var productCache services.ProductCache
	if a.Cache.Enabled() {
		productCache = a.Cache
	}

	a.router = NewHandler(cfg, Services{
		Auth:    services.NewAuthService(users, issuer),
		Catalog: services.NewCatalogService(products, productCache, cfg.CacheTTL),
		Tokens:  issuer,
	})

	logger.Info("application booted",
		"db_driver", cfg.DatabaseDriver,
		"mongo_database", cfg.MongoDatabase,
		"cache", a.Cache.Enabled(),
	)
	return a, nil
}

func (a *Application) open(ctx context.Context) error {
	var err error
	if a.DB, err = database.Open(ctx, a.Config); err != nil {
		return err
	}
	if err = database.Migrate(a.DB, &models.User{}); err != nil {
		return err
	}
	if a.Mongo, err = database.ConnectMongo(ctx, a.Config.MongoURI); err != nil {
		return err
	}
	a.Cache, err = cache.New(ctx, cache.Options{Addr: a.Config.RedisAddr, Password: a.Config.RedisPassword})
	return err
}

// Handler returns the root HTTP handler.
func (a *Application) Handler() http.Handler {
	return a.router.Handler()
}

// Routes lists the mounted routes.
func (a *Application) Routes() []router.Route {
	return a.router.Routes()
}

// Close releases every store connection. Safe on a partially booted app.
func (a *Application) Close() {
	if a.Cache != nil {
		if err := a.Cache.Close(); err != nil {
			logger.Warn("close cache", "error", err)
		}
	}
	if a.Mongo != nil {
		if err := database.DisconnectMongo(a.Mongo); err != nil {
			logger.Warn("close mongo", "error", err)
		}
	}
	if a.DB != nil {
		if err := database.Close(a.DB); err != nil {
			logger.Warn("close database", "error", err)
		}
	}
}

// Migrate creates the relational schema if absent and exits. The document
// store needs no schema.
func Migrate(ctx context.Context, cfg *config.Config) error {
	db, err := database.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close(db) //nolint:errcheck

	if err := database.Migrate(db, &models.User{}); err != nil {
		return fmt.Errorf("migrate users: %w", err)
	}
	return nil
}
