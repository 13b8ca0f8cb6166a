package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"reseller-backend/internal/auth"
	"reseller-backend/internal/clock"
	"reseller-backend/internal/config"
	"reseller-backend/internal/metrics"
	"reseller-backend/internal/middleware"
	"reseller-backend/internal/routes"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal(err)
	}
	config.SetupLogging(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db := config.InitDB(cfg.Database)

	var revocations auth.RevocationList = auth.NewMemoryRevocations(clock.System{})
	if cfg.Redis.URL != "" {
		client, err := auth.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal(err)
		}
		defer client.Close()
		revocations = auth.NewRedisRevocations(client)
		log.Info("token revocations stored in redis")
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())
	// CORS config
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigin,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, db, routes.Deps{
		Config:      cfg,
		Clock:       clock.System{},
		Metrics:     metrics.New(),
		Revocations: revocations,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.WithField("addr", srv.Addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown failed")
	}
	log.Info("server stopped")
}
