package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"cryptobet.backend/internal/config"
	"cryptobet.backend/internal/infrastructure/jobs"
	"cryptobet.backend/internal/infrastructure/models"
	"cryptobet.backend/internal/infrastructure/repositories"
	"cryptobet.backend/internal/interfaces/http/handlers"
	"cryptobet.backend/internal/interfaces/http/middleware"
	"cryptobet.backend/internal/usecases"
	"cryptobet.backend/pkg/jwt"
	"cryptobet.backend/pkg/logger"
	"cryptobet.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	newSecureStore = redis.NewSecureStore
	runServer      = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB       = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis
	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("Connected to PostgreSQL via GORM")
		if err := db.AutoMigrate(&models.User{}, &models.EmailVerification{}, &models.Asset{}, &models.Investment{}); err != nil {
			log.Printf("Schema migration failed: %v (continuing with existing schema)", err)
		}
	}

	// Initialize JWT service
	jwtService := jwt.NewService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	emailVerifRepo := repositories.NewEmailVerificationRepository(db)
	assetRepo := repositories.NewAssetRepository(db)
	investmentRepo := repositories.NewInvestmentRepository(db)

	// Wizard sessions live in Redis, encrypted at rest
	wizardStore, err := newSecureStore("wizard", cfg.Security.WizardEncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize wizard session store: %w", err)
	}
	wizardRepo := repositories.NewWizardSessionRepository(wizardStore, cfg.Investment.WizardTTL)

	// Seed the settlement asset catalog on first boot
	if err := seedAssets(context.Background(), assetRepo); err != nil {
		log.Printf("Asset seeding skipped: %v", err)
	}

	// Initialize usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, emailVerifRepo, jwtService, cfg.Investment.CodeExpiry, cfg.Investment.ResendWait)
	assetUsecase := usecases.NewAssetUsecase(assetRepo)
	investmentUsecase := usecases.NewInvestmentUsecase(investmentRepo, assetRepo, userRepo, cfg.Investment.MinimumUSD, cfg.Investment.TokenPriceUSD)
	wizardUsecase := usecases.NewWizardUsecase(wizardRepo, investmentRepo, assetRepo, userRepo, cfg.Investment.MinimumUSD, cfg.Investment.TokenPriceUSD)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	assetHandler := handlers.NewAssetHandler(assetUsecase)
	investmentHandler := handlers.NewInvestmentHandler(investmentUsecase)
	wizardHandler := handlers.NewWizardHandler(wizardUsecase)
	adminHandler := handlers.NewAdminHandler(authUsecase, investmentUsecase)

	authMiddleware := middleware.AuthMiddleware(jwtService)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cleanupJob := jobs.NewVerificationCleanupJob(emailVerifRepo, cfg.Investment.CodeExpiry/2)
	go cleanupJob.Start(ctx)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:       authHandler,
		assetHandler:      assetHandler,
		investmentHandler: investmentHandler,
		wizardHandler:     wizardHandler,
		adminHandler:      adminHandler,
		authMiddleware:    authMiddleware,
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")
		cleanupJob.Stop()
		cancel()
	}()

	// Start server
	log.Printf("CryptoBet Backend starting on port %s", cfg.Server.Port)
	log.Printf("API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
