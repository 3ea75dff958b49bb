package app

import (
	"context"
	"fmt"

	"benchracers_backend/database"
	"benchracers_backend/internal/auth"
	"benchracers_backend/internal/config"
	"benchracers_backend/internal/email"
	"benchracers_backend/internal/handlers"
	"benchracers_backend/internal/logger"
	"benchracers_backend/internal/middleware"
	"benchracers_backend/internal/models"
	"benchracers_backend/internal/repositories"
	"benchracers_backend/internal/routes"
	"benchracers_backend/internal/services"
	"benchracers_backend/internal/storage"
	"benchracers_backend/internal/validator"
	"benchracers_backend/internal/workers"

	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.ConnectGorm()
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

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := seedFirstEditor(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first editor", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	// Фоновые задачи: награды и очистка токенов
	awardWorker := workers.NewAwardWorker(gormDB, repositories.NewAwardRepository())
	awardWorker.Start(context.Background())

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("🚀 Server starting on %s", address))
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
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	serviceContainer := initializeServices(cfg, storageInstance)
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(cfg, gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(cfg *config.Config, storageInstance storage.Storage) *services.ServiceContainer {
	var emailService email.Provider
	if cfg.Email.SMTPPassword != "" {
		provider, err := email.NewSMTPProvider(cfg)
		if err != nil {
			logger.Fatal("Failed to initialize SMTP provider", "error", err)
		}
		emailService = provider
	} else {
		logger.Warn("SMTP is not configured, using mock email provider")
		emailService = &MockEmailProvider{}
	}

	// --- Инициализация репозиториев ---
	userRepo := repositories.NewUserRepository()
	entryRepo := repositories.NewEntryRepository()
	commentRepo := repositories.NewCommentRepository()
	modRepo := repositories.NewModRepository()
	tagRepo := repositories.NewTagRepository()
	awardRepo := repositories.NewAwardRepository()
	reportRepo := repositories.NewReportRepository()

	// --- Инициализация сервисов ---
	authService := services.NewAuthService(userRepo, emailService)
	userService := services.NewUserService(userRepo, awardRepo)
	garageService := services.NewGarageService(entryRepo, modRepo, tagRepo, storageInstance)
	exploreService := services.NewExploreService(entryRepo, commentRepo, reportRepo)
	commentService := services.NewCommentService(commentRepo, entryRepo)
	adminService := services.NewAdminService(userRepo, entryRepo, modRepo, tagRepo, awardRepo, reportRepo)

	return &services.ServiceContainer{
		AuthService:    authService,
		UserService:    userService,
		GarageService:  garageService,
		ExploreService: exploreService,
		CommentService: commentService,
		AdminService:   adminService,
		EmailService:   emailService,
	}
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	userRepo := repositories.NewUserRepository()

	return &handlers.AppHandlers{
		UserHandler:    handlers.NewUserHandler(baseHandler, container.AuthService, container.UserService),
		GarageHandler:  handlers.NewGarageHandler(baseHandler, container.GarageService),
		ExploreHandler: handlers.NewExploreHandler(baseHandler, container.ExploreService),
		CommentHandler: handlers.NewCommentHandler(baseHandler, container.CommentService),
		AdminHandler:   handlers.NewAdminHandler(baseHandler, container.AdminService, userRepo),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.FrontendURL))
	router.Use(middleware.DBMiddleware(db))
	return router
}

// seedFirstEditor создает первого редактора из конфигурации,
// если его еще нет. Без редактора админ-маршруты недоступны.
func seedFirstEditor(db *gorm.DB, cfg *config.Config) error {
	editorEmail := cfg.FirstEditorEmail
	editorPassword := cfg.FirstEditorPassword

	if editorEmail == "" || editorPassword == "" {
		logger.Warn("FIRST_EDITOR_EMAIL or FIRST_EDITOR_PASSWORD is not set. Skipping editor seeding.")
		return nil
	}

	var editor models.User
	result := db.Where("email = ?", editorEmail).First(&editor)
	if result.Error == nil {
		logger.Info("Editor already exists. Skipping creation.", "email", editorEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for editor user: %w", result.Error)
	}

	hash, err := auth.HashPassword(editorPassword)
	if err != nil {
		return fmt.Errorf("failed to hash editor password: %w", err)
	}

	newEditor := &models.User{
		Email:        editorEmail,
		Name:         "Editor",
		PasswordHash: hash,
		IsVerified:   true,
		IsEditor:     true,
	}
	if err := db.Create(newEditor).Error; err != nil {
		return fmt.Errorf("failed to create editor user: %w", err)
	}

	logger.Warn("First editor created", "email", editorEmail)
	return nil
}
