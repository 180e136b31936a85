package main

import (
	"context"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	_ "time/tzdata"

	"startask/internal/config"
	"startask/internal/handler"
	"startask/internal/middleware"
	"startask/internal/pkg/logging"
	"startask/internal/repository"
	"startask/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, using environment variables")
	}

	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.IsProduction())

	db, err := config.NewDB(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err := repository.Migrate(db, cfg.DatabaseDriver); err != nil {
		log.WithError(err).Fatal("Failed to apply migrations")
	}

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to Redis")
	}
	if redis != nil {
		defer redis.Close()
	} else {
		log.Warn("REDIS_URL not set, sweeps are coordinated in-process only")
	}

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.WithError(err).Warn("Failed to connect to MinIO, sweep reports will not be archived")
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redis, minioClient, cfg)
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	handler.SetupRoutes(app, handlers, services.Auth)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	if services.Scheduler != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			services.Scheduler.Run(ctx)
		}()
	} else {
		log.Info("Deadline sweep scheduler disabled")
	}

	go func() {
		<-ctx.Done()
		log.Info("Shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Error("Server shutdown failed")
		}
	}()

	log.WithField("port", cfg.Port).Info("Server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("Failed to start server")
	}

	stop()
	wg.Wait()
}
