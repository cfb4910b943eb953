package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"healthsystem/config"
	deliveryHttp "healthsystem/internal/delivery/http"
	"healthsystem/internal/delivery/http/handler"
	"healthsystem/internal/delivery/http/middleware"
	"healthsystem/internal/identity"
	"healthsystem/internal/infrastructure/cache"
	"healthsystem/internal/infrastructure/database"
	"healthsystem/internal/infrastructure/session"
	"healthsystem/internal/repository"
	"healthsystem/internal/service"
	"healthsystem/internal/usecase"
	"healthsystem/pkg/hasher"
	"healthsystem/pkg/jwt"
	"healthsystem/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	Brokers     *database.Factory
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized. There is no
// shared connection pool: each request opens its own connection on first use.
func New(ctx context.Context) (*App, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	app := &App{}

	// Setup logger
	log := SetupLogger("info")
	app.Log = log

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	log.SetLevel(ParseLevel(cfg.App.LogLevel))
	log.Info("Configuration loaded successfully")

	registry, err := database.NewRegistry(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("invalid database credentials: %w", err)
	}
	resolver, err := identity.NewResolver(cfg.DB.FallbackRole, log)
	if err != nil {
		return nil, err
	}
	opener := database.NewPgxOpener(cfg.DB)
	log.WithField("dsn", opener.DSN()).Info("Database target configured")

	if cfg.DB.AutoMigrate {
		if err := migrate(cfg, registry, log); err != nil {
			return nil, err
		}
	}

	if cfg.DB.VerifyOnStart {
		if err := database.VerifyCredentials(ctx, registry, opener); err != nil {
			return nil, fmt.Errorf("failed to verify database credentials: %w", err)
		}
		log.Info("Database credentials verified for every role")
	}

	app.Brokers = database.NewFactory(registry, resolver, opener, cfg.DB.StatementTimeout, log)

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis, log)
	if err != nil {
		return nil, err
	}
	app.RedisClient = redisClient

	// Initialize all layers
	app.Server = initializeServer(cfg, log, app.Brokers, redisClient)

	return app, nil
}

func migrate(cfg *config.Config, registry *database.Registry, log *logrus.Logger) error {
	m, err := database.NewMigrator(cfg.DB, registry, log)
	if err != nil {
		return err
	}
	defer m.Close()
	return m.Up()
}

// SetupLogger configures the logrus logger
func SetupLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(ParseLevel(level))
	return log
}

// ParseLevel falls back to info for unknown names.
func ParseLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, log *logrus.Logger, brokers *database.Factory, redisClient *redis.Client) *http.Server {
	// Initialize services
	jwtService := jwt.NewJWTService(cfg.Session)
	customValidator := validator.NewValidator()
	sessionStore := session.NewStore(redisClient)
	throttle := service.NewLoginThrottleService(redisClient, log, cfg.Session.MaxLoginAttempts, cfg.Session.LoginWindow)

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	auditLogRepo := repository.NewAuditLogRepository()
	patientRepo := repository.NewPatientRepository()
	physicianRepo := repository.NewPhysicianRepository()
	clinicRepo := repository.NewClinicRepository()
	worksAtRepo := repository.NewWorksAtRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	billingRepo := repository.NewBillingRepository()
	reportRepo := repository.NewHealthReportRepository()
	prescriptionRepo := repository.NewPrescriptionRepository()
	historyRepo := repository.NewMedicalHistoryRepository()
	profileRepo := repository.NewProfileRepository()
	datasetRepo := repository.NewDatasetRepository()

	auditService := service.NewAuditService(log, auditLogRepo)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(log, hasher.NewBcrypt(0), userRepo, patientRepo, physicianRepo,
		clinicRepo, worksAtRepo, profileRepo, sessionStore, jwtService, auditService, throttle)
	patientUsecase := usecase.NewPatientUsecase(log, patientRepo)
	physicianUsecase := usecase.NewPhysicianUsecase(log, physicianRepo)
	appointmentUsecase := usecase.NewAppointmentUsecase(log, appointmentRepo, auditService)
	clinicUsecase := usecase.NewClinicUsecase(log, clinicRepo, worksAtRepo)
	billingUsecase := usecase.NewBillingUsecase(log, billingRepo, auditService)
	clinicalUsecase := usecase.NewClinicalUsecase(log, reportRepo, prescriptionRepo, historyRepo)
	datasetUsecase := usecase.NewDatasetUsecase(log, datasetRepo)
	auditLogUsecase := usecase.NewAuditLogUsecase(log, auditLogRepo)

	// Initialize handlers
	base := handler.NewBase(log, customValidator, cfg.App.IsProduction())
	handlers := deliveryHttp.Handlers{
		Auth:        handler.NewAuthHandler(base, authUsecase, jwtService),
		Patient:     handler.NewPatientHandler(base, patientUsecase),
		Physician:   handler.NewPhysicianHandler(base, physicianUsecase),
		Appointment: handler.NewAppointmentHandler(base, appointmentUsecase),
		Clinic:      handler.NewClinicHandler(base, clinicUsecase),
		Billing:     handler.NewBillingHandler(base, billingUsecase),
		Clinical:    handler.NewClinicalHandler(base, clinicalUsecase),
		Dataset:     handler.NewDatasetHandler(base, datasetUsecase),
		AuditLog:    handler.NewAuditLogHandler(base, auditLogUsecase),
	}

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, sessionStore, log)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.AllowedOrigins)

	// Initialize router
	router := deliveryHttp.NewRouter(handlers, authMiddleware, corsMiddleware, brokers, log)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
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

	app.Log.Info("Shutting down server...")

	// In-flight requests close their own connections as they finish.
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close closes the Redis client. Database connections are per request and
// are already released.
func (app *App) Close() {
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
