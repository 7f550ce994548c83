package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"contacthub/internal/config"
	"contacthub/internal/database"
	"contacthub/internal/handlers"
	"contacthub/internal/logger"
	"contacthub/internal/metrics"
	"contacthub/internal/middleware"
	"contacthub/internal/repositories"
	"contacthub/internal/services"
	"contacthub/pkg/rabbitmq"
)

// BodyLimit caps request bodies at 10 KiB.
const BodyLimit = 10 * 1024

// App is the assembled HTTP server and the resources it owns.
type App struct {
	Fiber   *fiber.App
	Service *services.ContactService
	Metrics *metrics.Metrics
	cfg     *config.Config
	closers []func() error
}

// New opens the configured store and, when RABBITMQ_URL is set, the event
// publisher, then assembles the server.
func New(cfg *config.Config) (*App, error) {
	log := logger.GetLogger()
	var closers []func() error

	var repo repositories.ContactRepository
	switch cfg.DBDriver {
	case "memory":
		repo = repositories.NewMemoryContactRepository()
	default:
		db, err := database.Open(cfg.DBDriver, cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		closers = append(closers, func() error { return database.Close(db) })
		repo = repositories.NewGORMContactRepository(db)
	}
	log.Infow("Contact store ready", "driver", cfg.DBDriver)

	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mq, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			closeAll(closers)
			return nil, fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		closers = append(closers, mq.Close)
		publisher = mq
	}

	a := NewWithRepository(cfg, repo, publisher)
	a.closers = append(a.closers, closers...)
	return a, nil
}

// NewWithRepository assembles the server around an existing repository.
// publisher may be nil.
func NewWithRepository(cfg *config.Config, repo repositories.ContactRepository, publisher services.EventPublisher) *App {
	m := metrics.New()
	service := services.NewContactService(repo, publisher, m)

	app := fiber.New(fiber.Config{
		AppName:      "contacthub",
		BodyLimit:    BodyLimit,
		ErrorHandler: handlers.ErrorHandler,
		// Parsed values outlive the request in the memory store.
		Immutable: true,
	})

	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(m))
	app.Use(recover.New())
	app.Use(middleware.CORS(cfg))

	system := handlers.NewSystemHandler()
	app.Get("/", system.HandleRoot)
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	api := app.Group("/api")
	api.Get("/health", system.HandleHealth)
	handlers.NewContactHandler(service).RegisterRoutes(api)

	app.Use(system.HandleNotFound)

	return &App{
		Fiber:   app,
		Service: service,
		Metrics: m,
		cfg:     cfg,
	}
}

// Listen serves on the configured port until Shutdown is called.
func (a *App) Listen() error {
	logger.GetLogger().Infow("Starting server", "addr", a.cfg.ListenAddr(), "environment", a.cfg.Environment)
	return a.Fiber.Listen(a.cfg.ListenAddr())
}

// Shutdown stops accepting requests, waits up to timeout for in-flight ones,
// then releases the store and the publisher.
func (a *App) Shutdown(timeout time.Duration) error {
	err := a.Fiber.ShutdownWithTimeout(timeout)
	return errors.Join(err, closeAll(a.closers))
}

func closeAll(closers []func() error) error {
	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
