package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"cornelius-notes/cornelius/broker"
	"cornelius-notes/cornelius/config"
	"cornelius-notes/cornelius/database"
	"cornelius-notes/cornelius/logger"
	"cornelius-notes/cornelius/middleware"
	"cornelius-notes/cornelius/routes"
	"cornelius-notes/cornelius/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.AppEnv)

	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Setup(cfg)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	// Entity events are best effort; the API runs without a broker.
	if err := broker.InitProducer(cfg.NatsURL); err != nil {
		logger.Log.Warn().Err(err).Msg("NATS unavailable, entity events are disabled")
	} else {
		defer broker.CloseProducer()
	}

	authService := services.NewAuthService(cfg.JWTSecret, cfg.JWTExpirationHours)
	services.AuthServiceInstance = authService

	userService := services.NewUserService(authService)
	services.UserServiceInstance = userService

	services.CategoryServiceInstance = services.NewCategoryService()
	services.NoteServiceInstance = services.NewNoteService()
	services.LinkServiceInstance = services.NewLinkService()
	services.SearchServiceInstance = services.NewSearchService()

	router := gin.Default()
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	routes.RegisterAuthRoutes(router, db, authService, userService)

	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(authService))
	{
		routes.RegisterUserRoutes(api, db, services.UserServiceInstance)
		routes.RegisterCategoryRoutes(api, db, services.CategoryServiceInstance)
		routes.RegisterNoteRoutes(api, db, services.NoteServiceInstance, services.LinkServiceInstance)
		routes.RegisterSearchRoutes(api, db, services.SearchServiceInstance)
		routes.RegisterMarkupRoutes(api)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		logger.Log.Info().Msg("shutting down server")
		broker.CloseProducer()
		db.Close()
		os.Exit(0)
	}()

	logger.Log.Info().Str("port", cfg.AppPort).Msg("API server is running")
	if err := http.ListenAndServe(":"+cfg.AppPort, router); err != nil {
		logger.Log.Fatal().Err(err).Msg("failed to start server")
	}
}
