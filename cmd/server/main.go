package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"ticboard/internal/api/controller"
	apirepository "ticboard/internal/api/repository"
	"ticboard/internal/api/service"
	"ticboard/internal/config"
	"ticboard/internal/db"
	"ticboard/internal/hub"
	"ticboard/internal/logger"
	"ticboard/internal/repository"
	"ticboard/internal/server"
	"ticboard/internal/telemetry"
	"time"
)

func main() {
	ctx := context.Background()

	configPath := flag.String("config", "", "path to the yaml config file (env-only when empty)")
	flag.Parse()

	conf, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize telemetry
	shutdown, err := telemetry.InitOtel(conf.OTLPEndpoint)
	if err != nil {
		log.Fatalf("failed to initialize telemetry: %v", err)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	logger.Init(conf.LogLevel)

	// Initialize Redis
	rdb, err := db.NewRedisClient(ctx, conf.Redis.Addr())
	if err != nil {
		log.Fatalf("failed to initialize redis: %v", err)
	}

	// Initialize SQLite DB
	sqlDB, err := db.Connect(conf.SQLitePath)
	if err != nil {
		log.Fatalf("failed to initialize sqlite db: %v", err)
	}

	// Create repositories
	sessionRepo := repository.NewSessionRepository(rdb, conf.SessionTTL)
	userRepo := apirepository.NewUserRepository(sqlDB)

	// Create services
	userService := service.NewUserService(userRepo, []byte(conf.JWTSecretKey))

	// Create controllers
	userController := controller.NewUserController(userService)

	// Create hub
	h := hub.NewHub(sessionRepo, rdb)
	sessionController := controller.NewSessionController(h)

	// Create the Gin-based server
	srv := server.NewServer(h, userController, sessionController)

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	httpServer := &http.Server{
		Addr:    ":" + conf.HTTPPort,
		Handler: srv.Engine(),
	}

	go func() {
		log.Printf("http server started on :%s", conf.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	<-stop

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
