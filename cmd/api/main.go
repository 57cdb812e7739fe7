package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/homeschoolhq/hq-go-api/internal/config"
	"github.com/homeschoolhq/hq-go-api/internal/database"
	"github.com/homeschoolhq/hq-go-api/internal/handler"
	"github.com/homeschoolhq/hq-go-api/internal/middleware"
	"github.com/homeschoolhq/hq-go-api/internal/router"
	"github.com/homeschoolhq/hq-go-api/internal/service"
	"github.com/homeschoolhq/hq-go-api/internal/storage"
	"github.com/homeschoolhq/hq-go-api/internal/store"
	"github.com/homeschoolhq/hq-go-api/pkg/artifacts"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	backend, redisClient, err := buildStorage(cfg, logger)
	if err != nil {
		log.Fatalf("failed to initialise storage: %v", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	container := loadContainer(backend, logger)

	var uploader service.ArtifactUploader
	if cfg.ArtifactUploadsEnabled() {
		cloud, err := artifacts.NewCloudinaryStore(artifacts.Config{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryUploadFolder,
		}, logger)
		if err != nil {
			log.Fatalf("failed to create cloudinary client: %v", err)
		}
		uploader = cloud
	} else {
		logger.Info().Msg("artifact uploads disabled, cloudinary credentials missing")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	studentService := service.NewStudentService(container, validate, logger)
	attendanceService := service.NewAttendanceService(container, validate, logger)
	lessonService := service.NewLessonService(container, validate, logger)
	portfolioService := service.NewPortfolioService(container, uploader, validate, cfg.UploadMaxMB, logger)
	gradeService := service.NewGradeService(container, validate, logger)
	reportService := service.NewReportService(container, redisClient, cfg.ReportCacheTTL, logger)
	calendarService := service.NewCalendarService(container, logger)
	feedbackService := service.NewFeedbackService(container, validate, cfg.FeedbackEmail, logger)
	settingsService := service.NewSettingsService(container, validate, logger)
	adminService := service.NewAdminService(container, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		StudentHandler:    handler.NewStudentHandler(studentService, logger),
		AttendanceHandler: handler.NewAttendanceHandler(attendanceService, logger),
		LessonHandler:     handler.NewLessonHandler(lessonService, logger),
		PortfolioHandler:  handler.NewPortfolioHandler(portfolioService, logger),
		GradeHandler:      handler.NewGradeHandler(gradeService, logger),
		ReportHandler:     handler.NewReportHandler(reportService, gradeService, logger),
		CalendarHandler:   handler.NewCalendarHandler(calendarService, logger),
		FeedbackHandler:   handler.NewFeedbackHandler(feedbackService, logger),
		SettingsHandler:   handler.NewSettingsHandler(settingsService, logger),
		AdminHandler:      handler.NewAdminHandler(adminService, logger),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

// buildStorage selects the persistence backend from the configured driver.
// The redis client is returned alongside so the report cache can share it.
func buildStorage(cfg config.Config, logger zerolog.Logger) (storage.DocumentStorage, *redis.Client, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverRedis:
		client, err := database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return storage.NewRedisStorage(client, logger), client, nil

	case config.StorageDriverSQLite:
		db, err := database.ConnectSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		backend, err := storage.NewGormStorage(db, logger)
		if err != nil {
			return nil, nil, err
		}
		return backend, optionalRedis(cfg, logger), nil

	case config.StorageDriverPostgres:
		db, err := database.ConnectPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		backend, err := storage.NewGormStorage(db, logger)
		if err != nil {
			return nil, nil, err
		}
		return backend, optionalRedis(cfg, logger), nil

	default:
		return storage.NewFileStorage(cfg.StoragePath, logger), optionalRedis(cfg, logger), nil
	}
}

// optionalRedis connects the report cache when a redis url is configured with
// a non-redis storage driver. Cache failures are not fatal.
func optionalRedis(cfg config.Config, logger zerolog.Logger) *redis.Client {
	if cfg.RedisURL == "" {
		return nil
	}

	client, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		logger.Warn().Err(err).Msg("report cache disabled, redis unreachable")
		return nil
	}
	return client
}

// loadContainer restores the persisted document, falling back to seeded demo
// data on first run or when the stored payload cannot be decoded.
func loadContainer(backend storage.DocumentStorage, logger zerolog.Logger) *store.Container {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	doc, found, err := backend.Load(ctx)
	switch {
	case err != nil:
		logger.Warn().Err(err).Msg("stored document unreadable, starting from seed data")
		doc = store.Seed(time.Now().UTC())
	case !found:
		logger.Info().Msg("no stored document, starting from seed data")
		doc = store.Seed(time.Now().UTC())
	}

	container := store.NewContainer(doc, backend, logger)
	if err != nil || !found {
		container.Reset(ctx, doc)
	}
	return container
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
