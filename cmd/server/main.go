package main

import (
	"log"
	"net/http"

	_ "reviewboard/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"reviewboard/internal/auth"
	"reviewboard/internal/cache"
	"reviewboard/internal/config"
	"reviewboard/internal/db"
	"reviewboard/internal/handler"
	"reviewboard/internal/model"
	"reviewboard/internal/repository"
	"reviewboard/internal/router"
	"reviewboard/internal/service"
)

// @title Company Review API
// @version 1.0
// @description Authenticated API for submitting and retrieving company reviews, with JWT access/refresh tokens.
// @host localhost:8080
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Review{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	reviewRepo := repository.NewReviewRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	reviewService := service.NewReviewService(reviewRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	reviewHandler := handler.NewReviewHandler(reviewService)

	// Register routes
	router.Register(e, jwtService, authHandler, reviewHandler)

	docsHost := cfg.SwaggerHost
	if docsHost == "" {
		docsHost = "http://localhost:" + cfg.ServerPort
	}
	log.Printf("API documentation available at: %s/docs/index.html", docsHost)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
