package app

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/biosecret/voice-todo/config"
	"github.com/biosecret/voice-todo/database"
	"github.com/biosecret/voice-todo/handlers"
	"github.com/biosecret/voice-todo/logging"
	"github.com/biosecret/voice-todo/middleware"
	"github.com/biosecret/voice-todo/notify"
	"github.com/biosecret/voice-todo/router"
	"github.com/biosecret/voice-todo/services"
	"github.com/biosecret/voice-todo/store"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const shutdownTimeout = 5 * time.Second

// Deps is everything the server needs, built once at startup.
type Deps struct {
	Config    *config.Config
	Logger    logging.Logger
	Accounts  store.AccountStore
	Tasks     store.TaskStore
	Health    store.Pinger
	Publisher notify.Publisher
	AccessLog io.Writer
	Started   time.Time
}

// NewServer wires the services and routes into a Fiber app.
func NewServer(d Deps) *fiber.App {
	if d.Logger == nil {
		d.Logger = logging.Discard()
	}
	if d.AccessLog == nil {
		d.AccessLog = os.Stdout
	}
	if d.Started.IsZero() {
		d.Started = time.Now()
	}

	authService := services.NewAuthService(d.Accounts, d.Config.JWTSecret, d.Config.BcryptCost)
	taskService := services.NewTaskService(d.Tasks, d.Publisher, d.Logger, d.Config.SharedTasks)

	app := fiber.New(fiber.Config{
		AppName:               "voice-todo",
		ErrorHandler:          handlers.ErrorHandler(d.Logger),
		DisableStartupMessage: true,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: d.Config.CORSOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${ip}]:${port} ${status} - ${method} ${path} ${latency}\n",
		Output: d.AccessLog,
	}))

	router.SetupRoutes(app, router.Handlers{
		Auth:   handlers.NewAuthHandler(authService),
		Tasks:  handlers.NewTaskHandler(taskService),
		Status: handlers.NewStatusHandler(d.Health, d.Started),
	}, middleware.JWTMiddleware(authService))

	config.AddSwaggerRoutes(app)

	app.Use(handlers.NotFound)

	return app
}

// SetupAndRunApp loads the configuration, connects the store and the
// optional event publisher, and serves until SIGINT or SIGTERM.
func SetupAndRunApp() error {
	if err := config.LoadENV(); err != nil {
		return err
	}
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	log := logging.NewJSON(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := Deps{Config: cfg, Logger: log, Publisher: notify.Noop{}, Started: time.Now()}

	switch cfg.Store {
	case config.StoreMemory:
		mem := store.NewMemory()
		deps.Accounts, deps.Tasks, deps.Health = mem.Accounts(), mem.Tasks(), mem
		log.Warn(ctx, "using in-memory store, data is lost on exit")
	default:
		db, err := database.StartPostgreSQL(ctx, cfg.DatabaseURI)
		if err != nil {
			return err
		}
		defer func() {
			if err := database.ClosePostgreSQL(db); err != nil {
				log.Error(context.Background(), "close database", "error", err)
			}
		}()
		pg := store.NewPostgres(db)
		deps.Accounts, deps.Tasks, deps.Health = pg.Accounts(), pg.Tasks(), pg
		log.Info(ctx, "connected to PostgreSQL")
	}

	if cfg.MQTTURL != "" {
		pub, err := notify.NewMQTTPublisher(cfg.MQTTURL, "voice-todo-api")
		if err != nil {
			return err
		}
		defer pub.Close()
		deps.Publisher = pub
		log.Info(ctx, "publishing task events over MQTT")
	}

	app := NewServer(deps)

	go func() {
		<-ctx.Done()
		log.Info(context.Background(), "shutting down")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			log.Error(context.Background(), "shutdown", "error", err)
		}
	}()

	log.Info(ctx, "listening", "addr", cfg.Addr(), "store", cfg.Store, "shared_tasks", cfg.SharedTasks)
	return app.Listen(cfg.Addr())
}
