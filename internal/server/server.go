// Package server wires configuration, storage and the feature handlers into
// one fiber application.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"

	"github.com/wichananm65/skincare-storefront/internal/banner"
	"github.com/wichananm65/skincare-storefront/internal/blog"
	"github.com/wichananm65/skincare-storefront/internal/cart"
	"github.com/wichananm65/skincare-storefront/internal/category"
	"github.com/wichananm65/skincare-storefront/internal/config"
	"github.com/wichananm65/skincare-storefront/internal/contact"
	"github.com/wichananm65/skincare-storefront/internal/database"
	"github.com/wichananm65/skincare-storefront/internal/favorite"
	"github.com/wichananm65/skincare-storefront/internal/logging"
	"github.com/wichananm65/skincare-storefront/internal/order"
	"github.com/wichananm65/skincare-storefront/internal/product"
	"github.com/wichananm65/skincare-storefront/internal/quiz"
	"github.com/wichananm65/skincare-storefront/internal/recommended"
	"github.com/wichananm65/skincare-storefront/internal/session"
)

// Server owns the fiber app and the database handles behind it.
type Server struct {
	app    *fiber.App
	cfg    config.Config
	logger *zap.Logger

	carts   *cart.Service
	quizzes *quiz.Service

	pg     *sql.DB
	sqlite *sql.DB
}

// New builds every service and registers its routes. Databases are opened
// only when the configuration asks for them.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Server, error) {
	s := &Server{cfg: cfg, logger: logging.OrNop(logger)}
	if cfg.UsesDefaultSecret() {
		s.logger.Warn("session tokens are signed with the built-in development secret; set JWT_SECRET")
	}

	products, err := s.loadCatalog(ctx)
	if err != nil {
		s.Close()
		return nil, err
	}
	repos, err := s.openStorage(ctx)
	if err != nil {
		s.Close()
		return nil, err
	}
	posts, err := blog.Seed()
	if err != nil {
		s.Close()
		return nil, err
	}

	productService := product.NewService(product.NewInMemoryRepository(products))
	cartService := cart.NewService(repos.carts, s.logger)
	s.carts = cartService
	orderService := order.NewService(repos.orders, cartService, s.logger)
	favoriteService := favorite.NewService(repos.favorites, productService)
	quizService := quiz.NewService(productService)
	s.quizzes = quizService
	issuer := session.NewIssuer(cfg.Session.Secret, cfg.Session.TTL)

	s.app = fiber.New(fiber.Config{
		AppName:               "storefront",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})
	s.app.Use(recover.New())
	s.app.Use(requestid.New())
	s.app.Use(logging.Middleware(s.logger))
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORS.AllowOrigins,
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	quizHandler := quiz.NewHandler(quizService)

	session.NewHandler(issuer).RegisterPublicRoutes(s.app)
	// featured must be registered before the product :slug route
	recommended.NewHandler(recommended.NewService(productService)).RegisterPublicRoutes(s.app)
	product.NewHandler(productService).RegisterPublicRoutes(s.app)
	category.NewHandler(category.NewService(productService)).RegisterPublicRoutes(s.app)
	banner.NewHandler(banner.NewService(banner.NewDefaultRepository())).RegisterPublicRoutes(s.app)
	blog.NewHandler(blog.NewService(posts)).RegisterPublicRoutes(s.app)
	quizHandler.RegisterPublicRoutes(s.app)
	contact.NewHandler(contact.NewService(cfg.Contact.Delay, s.logger)).RegisterPublicRoutes(s.app)

	s.app.Use(session.Middleware(cfg.Session.Secret))

	cart.NewHandler(cartService, productService).RegisterProtectedRoutes(s.app)
	quizHandler.RegisterProtectedRoutes(s.app)
	order.NewHandler(orderService).RegisterProtectedRoutes(s.app)
	favorite.NewHandler(favoriteService).RegisterProtectedRoutes(s.app)

	s.logger.Info("storefront configured",
		zap.Int("products", len(products)),
		zap.Int("posts", len(posts)),
		zap.String("storage", cfg.Storage.Driver),
		zap.String("catalog", cfg.Catalog.Source))
	return s, nil
}

func (s *Server) App() *fiber.App {
	return s.app
}

// Listen blocks serving HTTP on the configured address.
func (s *Server) Listen() error {
	s.logger.Info("listening", zap.String("addr", s.cfg.Addr))
	return s.app.Listen(s.cfg.Addr)
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// SweepSessions disposes of carts and quiz progress idle for longer than
// the session lifetime, every session.sweep_interval, until ctx ends.
func (s *Server) SweepSessions(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.Session.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Server) sweep(ctx context.Context) {
	carts := s.carts.EvictIdle(ctx, s.cfg.Session.TTL)
	quizzes := s.quizzes.EvictIdle(s.cfg.Session.TTL)
	if carts+quizzes > 0 {
		s.logger.Info("swept idle sessions",
			zap.Int("carts", carts),
			zap.Int("quizzes", quizzes),
			zap.Int("carts_in_memory", s.carts.Len()),
			zap.Int("quizzes_in_memory", s.quizzes.Len()))
	}
}

// Close releases the database handles.
func (s *Server) Close() error {
	var errs []error
	if s.pg != nil {
		errs = append(errs, s.pg.Close())
	}
	if s.sqlite != nil {
		errs = append(errs, s.sqlite.Close())
	}
	return errors.Join(errs...)
}

func (s *Server) postgres(ctx context.Context) (*sql.DB, error) {
	if s.pg != nil {
		return s.pg, nil
	}
	db, err := database.OpenPostgres(ctx, s.cfg.Storage.DatabaseURL)
	if err != nil {
		return nil, err
	}
	s.pg = db
	return db, nil
}

// loadCatalog returns the embedded catalog, or the Postgres one seeded from
// it on first start.
func (s *Server) loadCatalog(ctx context.Context) ([]product.Product, error) {
	seed, err := product.Seed()
	if err != nil {
		return nil, fmt.Errorf("load catalog seed: %w", err)
	}
	if s.cfg.Catalog.Source != config.CatalogPostgres {
		return seed, nil
	}

	db, err := s.postgres(ctx)
	if err != nil {
		return nil, err
	}
	repo := product.NewPostgresRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("create catalog schema: %w", err)
	}
	n, err := repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		s.logger.Info("seeding catalog", zap.Int("products", len(seed)))
		if err := repo.Seed(ctx, seed); err != nil {
			return nil, fmt.Errorf("seed catalog: %w", err)
		}
	}
	return repo.Load(ctx)
}

type schemaOwner interface {
	EnsureSchema(ctx context.Context) error
}

type repositories struct {
	carts     cart.SnapshotRepository
	orders    order.Repository
	favorites favorite.Repository
}

// openStorage picks the repositories for storage.driver. Favorites are only
// persisted with Postgres; the other drivers keep them in memory.
func (s *Server) openStorage(ctx context.Context) (repositories, error) {
	switch s.cfg.Storage.Driver {
	case config.DriverSQLite:
		db, err := database.OpenSQLite(ctx, s.cfg.Storage.SQLitePath)
		if err != nil {
			return repositories{}, err
		}
		s.sqlite = db
		carts, orders := cart.NewSQLiteRepository(db), order.NewSQLiteRepository(db)
		repos := repositories{carts: carts, orders: orders, favorites: favorite.NewInMemoryRepository()}
		return repos, ensureSchemas(ctx, carts, orders)
	case config.DriverPostgres:
		db, err := s.postgres(ctx)
		if err != nil {
			return repositories{}, err
		}
		carts, orders, favs := cart.NewPostgresRepository(db), order.NewPostgresRepository(db), favorite.NewPostgresRepository(db)
		repos := repositories{carts: carts, orders: orders, favorites: favs}
		return repos, ensureSchemas(ctx, carts, orders, favs)
	default:
		return repositories{
			carts:     cart.NewInMemoryRepository(),
			orders:    order.NewInMemoryRepository(),
			favorites: favorite.NewInMemoryRepository(),
		}, nil
	}
}

func ensureSchemas(ctx context.Context, owners ...schemaOwner) error {
	for _, o := range owners {
		if err := o.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// errorHandler keeps unhandled errors in the {"message": ...} shape used by
// the handlers.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{"message": err.Error()})
}
