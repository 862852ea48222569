package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inamrestro/restaurant-app/config"
	"github.com/inamrestro/restaurant-app/feed"
	"github.com/inamrestro/restaurant-app/metrics"
	"github.com/inamrestro/restaurant-app/middlewares"
	"github.com/inamrestro/restaurant-app/router"
	"github.com/inamrestro/restaurant-app/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to load config: %v", err)
	}
	utils.InitLogger(cfg.LogLevel)

	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize DB
	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := config.SeedAdmin(db, cfg); err != nil {
		utils.ErrorLogger.Fatalf("Failed to seed admin: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Live feed: websocket hub always, RabbitMQ when configured
	hub := feed.NewHub()
	publishers := feed.Fanout{hub}
	if cfg.AMQPURL != "" {
		amqpPub, err := feed.NewAMQPPublisher(cfg.AMQPURL)
		if err != nil {
			utils.ErrorLogger.Printf("RabbitMQ unavailable, events stay local: %v", err)
		} else {
			defer amqpPub.Close()
			publishers = append(publishers, amqpPub)
		}
	}

	revoked := utils.NewRevocationList()
	revoked.StartSweeper(ctx, time.Minute)
	sessions := utils.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL, revoked)

	loginLimiter := middlewares.NewRateLimiter(cfg.LoginRatePerMin, 5)
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				loginLimiter.Cleanup(10 * time.Minute)
			}
		}
	}()

	r := router.SetupRouter(router.Deps{
		DB:           db,
		Config:       cfg,
		Sessions:     sessions,
		Hub:          hub,
		Publisher:    publishers,
		Metrics:      m,
		LoginLimiter: loginLimiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatal(err)
		}
	}()

	<-ctx.Done()
	utils.InfoLogger.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.ErrorLogger.Printf("Server shutdown: %v", err)
	}
}
