package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinic-booking-bot/config"
	deliveryHttp "clinic-booking-bot/internal/delivery/http"
	"clinic-booking-bot/internal/delivery/http/handler"
	"clinic-booking-bot/internal/delivery/http/middleware"
	"clinic-booking-bot/internal/delivery/telegram"
	"clinic-booking-bot/internal/dialog"
	"clinic-booking-bot/internal/infrastructure/cache"
	"clinic-booking-bot/internal/infrastructure/database"
	"clinic-booking-bot/internal/repository"
	"clinic-booking-bot/internal/service"
	"clinic-booking-bot/internal/usecase"
	"clinic-booking-bot/pkg/jwt"
	"clinic-booking-bot/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Controller  *dialog.Controller
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Run migrations
	if err := database.RunMigrations(cfg.DB); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	server, controller, err := initializeServer(cfg, db, redisClient)
	if err != nil {
		return nil, err
	}
	app.Server = server
	app.Controller = controller

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer wires repositories, usecases, the dialogue controller
// and both delivery surfaces into one HTTP server.
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*http.Server, *dialog.Controller, error) {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	doctorRepo := repository.NewDoctorRepository()
	serviceRepo := repository.NewServiceRepository()
	appointmentRepo := repository.NewAppointmentRepository()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize usecases
	catalogUsecase := usecase.NewCatalogUsecase(db, log, doctorRepo, serviceRepo, cfg.Booking.StoreTimeout, cfg.Booking.RejectDuplicateServices)
	bookingUsecase := usecase.NewBookingUsecase(db, log, appointmentRepo, cfg.Booking.StoreTimeout)
	adminUsecase := usecase.NewAdminUsecase(db, log, appointmentRepo, cfg.Booking.StoreTimeout)
	authUsecase := usecase.NewAuthUsecase(log, cfg.Admin, jwtService)

	// Initialize session store and dialogue controller
	sessionService := service.NewSessionService(redisClient, log, cfg.Booking.SessionTTL)
	controller := dialog.NewController(
		log,
		cfg.Clinic,
		cfg.Booking,
		cfg.Telegram.AdminIDs,
		catalogUsecase,
		bookingUsecase,
		adminUsecase,
		sessionService,
		nil,
	)

	// Initialize Telegram bot
	bot, err := telegram.NewBot(cfg.Telegram.BotToken, controller, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize telegram bot: %w", err)
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	catalogHandler := handler.NewCatalogHandler(catalogUsecase, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(adminUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(authHandler, catalogHandler, appointmentHandler, cfg.Telegram.WebhookPath, bot.WebhookHandler(), authMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
	return server, controller, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Stop the dialogue controller's background workers
	if app.Controller != nil {
		app.Controller.Stop()
	}

	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
