package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"unifit_backend/internal/auth"
	"unifit_backend/internal/config"
	"unifit_backend/internal/email"
	"unifit_backend/internal/handlers"
	"unifit_backend/internal/logger"
	"unifit_backend/internal/middleware"
	"unifit_backend/internal/models"
	"unifit_backend/internal/repositories"
	"unifit_backend/internal/routes"
	"unifit_backend/internal/services"
	"unifit_backend/internal/session"
	"unifit_backend/internal/storage"
	"unifit_backend/internal/validator"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := gormDB.AutoMigrate(&models.User{}, &models.PasswordResetCode{}); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
		UseSSL:    cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	sessionManager := initializeSessions(cfg)
	tokens := auth.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TTLMinutes)*time.Minute)

	serviceContainer := initializeServices(cfg, gormDB, storageInstance, sessionManager, tokens)
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, appHandlers, middleware.AuthMiddleware(tokens))

	// Local storage serves uploads straight from disk; s3/minio URLs
	// point at the bucket instead.
	if cfg.Storage.Type == "local" {
		ginRouter.Static(cfg.Storage.BaseURL, cfg.Storage.BasePath)
	}

	return ginRouter
}

func initializeSessions(cfg *config.Config) *session.Manager {
	var (
		durable session.Store
		err     error
	)
	switch cfg.Session.Type {
	case "redis":
		durable, err = session.NewRedisStore(cfg.Session.RedisAddr, cfg.Session.RedisPassword)
	default:
		durable, err = session.NewFileStore(cfg.Session.FilePath)
	}
	if err != nil {
		logger.Fatal("Failed to initialize session store", "type", cfg.Session.Type, "error", err)
	}
	logger.Info("Session store initialized", "type", cfg.Session.Type)
	return session.NewManager(durable)
}

func initializeServices(
	cfg *config.Config,
	gormDB *gorm.DB,
	storageInstance storage.Storage,
	sessionManager *session.Manager,
	tokens *auth.TokenManager,
) *services.ServiceContainer {
	userRepo := repositories.NewUserRepository(gormDB)
	codeRepo := repositories.NewResetCodeRepository(gormDB)

	mailer, err := email.NewSMTPProvider(&email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
		UseTLS:    cfg.Email.UseTLS,
	})
	if err != nil {
		logger.Fatal("Failed to initialize email provider", "error", err)
	}

	return &services.ServiceContainer{
		AuthService:    services.NewAuthService(userRepo, codeRepo, mailer, sessionManager, tokens),
		UserService:    services.NewUserService(userRepo, storageInstance, cfg.Upload.MaxSize),
		CalorieService: services.NewCalorieService(),
		EmailService:   mailer,
	}
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	base := handlers.NewBaseHandler(validator.New())

	return &handlers.AppHandlers{
		AuthHandler:      handlers.NewAuthHandler(base, container.AuthService),
		UserHandler:      handlers.NewUserHandler(base, container.UserService),
		CalorieHandler:   handlers.NewCalorieHandler(base, container.CalorieService),
		ResetMailHandler: handlers.NewResetMailHandler(container.EmailService),
	}
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ginRouter := gin.New()
	ginRouter.HandleMethodNotAllowed = true
	ginRouter.Use(gin.Recovery())
	ginRouter.Use(middleware.RequestIDMiddleware())
	ginRouter.Use(middleware.LoggingMiddleware())
	ginRouter.Use(middleware.CORSMiddleware())
	return ginRouter
}
