package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/carshop/backend/internal/config"
	"github.com/carshop/backend/internal/es"
	"github.com/carshop/backend/internal/handlers"
	"github.com/carshop/backend/internal/handlers/cart"
	"github.com/carshop/backend/internal/logging"
	authmw "github.com/carshop/backend/internal/middleware/auth"
	loggingmw "github.com/carshop/backend/internal/middleware/logging"
	"github.com/carshop/backend/internal/mykafka"
	"github.com/carshop/backend/internal/repo"
	"github.com/carshop/backend/internal/service/token"
	httpserver "github.com/carshop/backend/internal/transport/http"
	"github.com/carshop/backend/internal/upload"
)

const carIndex = "car"

func main() {
	logger := logging.New(config.EnvDefault("LOG_LEVEL", "info"))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	db, err := config.InitDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}

	store := repo.New(db)
	if err := store.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminPasswordHash); err != nil {
		log.Fatalf("admin seed error: %v", err)
	}

	tokens, err := token.New([]byte(cfg.JWTSecret), cfg.JWTAlgorithm, time.Duration(cfg.TokenExpireMinutes)*time.Minute)
	if err != nil {
		log.Fatal(err)
	}

	uploads, err := upload.NewStore(cfg.UploadDir)
	if err != nil {
		log.Fatal(err)
	}

	var prod *mykafka.Producer
	if cfg.KafkaAddress != "" {
		prod, err = mykafka.NewProducer([]string{cfg.KafkaAddress})
		if err != nil {
			log.Fatal(err)
		}
	}

	carHandler := &handlers.CarHandler{Repo: store, Index: carIndex}
	adminHandler := &handlers.AdminHandler{
		Repo:      store,
		Tokens:    tokens,
		Uploads:   uploads,
		Producer:  prod,
		Index:     carIndex,
		AdminName: cfg.AdminName,
	}
	if cfg.ES_URL != "" {
		client, err := es.NewClient(cfg)
		if err != nil {
			log.Fatal(err)
		}
		carHandler.ES = client
		adminHandler.ES = client
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		AuthHandler:  &handlers.AuthHandler{Repo: store, Tokens: tokens, Producer: prod},
		AdminHandler: adminHandler,
		CarHandler:   carHandler,
		CartHandler:  &cart.CartHandler{Repo: store, Producer: prod},
		Auth:         &authmw.Middleware{Tokens: tokens, Repo: store, AdminName: cfg.AdminName},
		UploadDir:    cfg.UploadDir,
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("starting server", "app", cfg.AppName, "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
