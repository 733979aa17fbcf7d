// Package app composes repositories, services and handlers into a runnable
// fiber application.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/wichananm65/basket-api/internal/auth"
	"github.com/wichananm65/basket-api/internal/basket"
	"github.com/wichananm65/basket-api/internal/config"
	"github.com/wichananm65/basket-api/internal/database"
	"github.com/wichananm65/basket-api/internal/product"
	"github.com/wichananm65/basket-api/internal/server"
	"github.com/wichananm65/basket-api/internal/user"
)

// Deps holds the repositories of every resource and whatever has to be
// released when the process stops.
type Deps struct {
	Users       user.Repository
	Products    product.Repository
	BasketItems basket.Repository

	closers []func() error
}

// NewMemoryDeps returns in-memory repositories seeded with users and products.
func NewMemoryDeps(users []user.User, products []product.Product) *Deps {
	userRepo := user.NewInMemoryRepository(users)
	basketRepo := basket.NewInMemoryRepository(nil)
	basketRepo.CheckUsers(userRepo)

	return &Deps{
		Users:       userRepo,
		Products:    product.NewInMemoryRepository(products),
		BasketItems: basketRepo,
	}
}

// NewPostgresDeps returns repositories backed by db. Closing the Deps closes db.
func NewPostgresDeps(db *sql.DB) *Deps {
	return &Deps{
		Users:       user.NewPostgresRepository(db),
		Products:    product.NewPostgresRepository(db),
		BasketItems: basket.NewPostgresRepository(db),
		closers:     []func() error{db.Close},
	}
}

// Open builds the Deps selected by cfg. For Postgres storage it optionally
// starts an embedded server (its output goes to pgLogs), connects and makes
// sure the schema exists.
func Open(ctx context.Context, cfg config.Config, pgLogs io.Writer) (*Deps, error) {
	if cfg.Storage == config.StorageMemory {
		log.Info("using in-memory storage")
		return NewMemoryDeps(nil, nil), nil
	}

	dsn := cfg.DatabaseURL
	var embedded *database.Embedded
	if cfg.EmbeddedPostgres {
		var err error
		embedded, err = database.StartEmbedded(cfg.EmbeddedPort, pgLogs)
		if err != nil {
			return nil, err
		}
		dsn = embedded.DSN()
		log.Infof("embedded postgres listening on port %d", cfg.EmbeddedPort)
	}

	db, err := database.Open(ctx, dsn)
	if err == nil {
		err = database.EnsureSchema(ctx, db)
		if err != nil {
			db.Close()
		}
	}
	if err != nil {
		if embedded != nil {
			_ = embedded.Stop()
		}
		return nil, err
	}

	deps := NewPostgresDeps(db)
	if embedded != nil {
		deps.closers = append(deps.closers, embedded.Stop)
	}
	return deps, nil
}

// Close releases resources in the order they were acquired.
func (d *Deps) Close() error {
	var errs []error
	for _, closeFn := range d.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("closing dependencies: %w", errors.Join(errs...))
	}
	return nil
}

// NewServer registers every resource under /api/v1. When cfg.JWTSecret is set
// the API requires a bearer token; /health stays public.
func NewServer(cfg config.Config, deps *Deps, accessLog io.Writer) *fiber.App {
	app := server.New(server.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
		AccessLog:    accessLog,
	})

	userService := user.NewService(deps.Users)
	if refs, ok := deps.BasketItems.(user.ReferenceGuard); ok {
		userService.SetReferenceGuard(refs)
	}
	basketService := basket.NewService(deps.BasketItems, deps.Products, deps.Users)

	api := app.Group(server.APIPrefix)
	if cfg.JWTSecret != "" {
		api.Use(auth.Middleware(cfg.JWTSecret))
	} else {
		log.Warn("JWT_SECRET is empty, the API is not protected")
	}

	user.NewHandler(userService).RegisterRoutes(api)
	basket.NewHandler(basketService).RegisterRoutes(api)

	return app
}
