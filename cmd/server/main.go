package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"manager_system/internal/config"
	"manager_system/internal/handler"
	"manager_system/internal/logging"
	"manager_system/internal/middleware"
	"manager_system/internal/repository"
	"manager_system/internal/service"
	"manager_system/internal/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	envErr := godotenv.Load()

	// --- Configuration ---
	serverCfg, err := config.LoadServerConfig()
	if err != nil {
		fatal(slog.Default(), "failed to load server config", err)
	}

	logger, err := logging.New(serverCfg.LogLevel, os.Stdout)
	if err != nil {
		fatal(slog.Default(), "failed to create logger", err)
	}
	slog.SetDefault(logger)
	if envErr != nil {
		logger.Info("no .env file found, relying on environment variables")
	}

	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		fatal(logger, "failed to load DB config", err)
	}
	authCfg, err := config.LoadAuthConfig()
	if err != nil {
		fatal(logger, "failed to load auth config", err)
	}
	seedCfg := config.LoadSeedConfig()

	gin.SetMode(serverCfg.GinMode)
	if err := handler.RegisterValidators(); err != nil {
		fatal(logger, "failed to register validators", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database Connection ---
	dbPool, err := config.ConnectDB(ctx, dbCfg, logger)
	if err != nil {
		fatal(logger, "failed to connect to database", err)
	}
	defer dbPool.Close()

	// --- Auto Migration ---
	if err := config.AutoMigrate(ctx, dbPool, logger); err != nil {
		fatal(logger, "failed to auto-migrate database", err)
	}

	// --- Initialize Utilities ---
	jwtUtil := utils.NewJWTUtil(authCfg.AccessSecret, authCfg.RefreshSecret, authCfg.AccessTTL, authCfg.RefreshTTL)

	// --- Initialize Repositories ---
	userRepo := repository.NewUserRepository(dbPool)
	companyRepo := repository.NewCompanyRepository(dbPool)
	branchRepo := repository.NewBranchRepository(dbPool)

	if err := service.Seed(ctx, service.SeedOptions{
		CompanyName:   seedCfg.CompanyName,
		CompanyEmail:  seedCfg.CompanyEmail,
		AdminEmail:    seedCfg.AdminEmail,
		AdminPassword: seedCfg.AdminPassword,
	}, companyRepo, userRepo, logging.WithComponent(logger, "seed")); err != nil {
		fatal(logger, "failed to seed database", err)
	}

	// --- Initialize Services ---
	refreshStore := service.NewRefreshStore(userRepo)
	authService := service.NewAuthService(userRepo, refreshStore, jwtUtil, logging.WithComponent(logger, "auth"))
	userService := service.NewUserService(userRepo, companyRepo, branchRepo, logging.WithComponent(logger, "user"))
	companyService := service.NewCompanyService(companyRepo, logging.WithComponent(logger, "company"))
	branchService := service.NewBranchService(branchRepo, companyRepo, logging.WithComponent(logger, "branch"))

	// --- Initialize Handlers ---
	handlerLogger := logging.WithComponent(logger, "http")
	authHandler := handler.NewAuthHandler(authService, handlerLogger)
	userHandler := handler.NewUserHandler(userService, handlerLogger)
	companyHandler := handler.NewCompanyHandler(companyService, handlerLogger)
	branchHandler := handler.NewBranchHandler(branchService, handlerLogger)

	// --- Setup Gin Router ---
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(handlerLogger))
	router.Use(cors.New(cors.Config{
		AllowOriginFunc:  serverCfg.OriginAllowed,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// --- Initialize Middlewares ---
	jwtAuthMW := middleware.JWTAuthMiddleware(jwtUtil)

	// --- Register Routes ---
	apiGroup := router.Group("/api/v1")
	authHandler.RegisterAuthRoutes(apiGroup, jwtAuthMW)
	userHandler.RegisterUserRoutes(apiGroup, jwtAuthMW)
	companyHandler.RegisterCompanyRoutes(apiGroup, jwtAuthMW)
	branchHandler.RegisterBranchRoutes(apiGroup, jwtAuthMW)

	router.GET("/health", func(c *gin.Context) {
		if err := dbPool.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "healthy"})
	})

	// --- Start Server ---
	srv := &http.Server{
		Addr:              ":" + serverCfg.Port,
		Handler:           router,
		ReadHeaderTimeout: serverCfg.RequestTimeout,
		ReadTimeout:       serverCfg.RequestTimeout,
		WriteTimeout:      serverCfg.RequestTimeout,
	}

	go func() {
		logger.Info("server starting", "port", serverCfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal(logger, "listen", err)
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exiting")
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "error", err)
	os.Exit(1)
}
