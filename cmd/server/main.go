package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"supplygenie/backend/chat"
	"supplygenie/backend/chat/api"
	"supplygenie/backend/pkg/auth"
	"supplygenie/backend/pkg/cache"
	"supplygenie/backend/pkg/config"
	"supplygenie/backend/pkg/errors"
	"supplygenie/backend/pkg/logger"
	"supplygenie/backend/pkg/middleware"
	"supplygenie/backend/pkg/mongox"
	"supplygenie/backend/pkg/observability"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func main() {
	cfg := config.New()

	logConfig := logger.DefaultConfig()
	logConfig.Level = cfg.Logging.Level
	logConfig.JSON = cfg.Logging.Format != "text"

	log := logger.New(logConfig)
	logger.SetGlobal(log)

	log.Info("starting supplygenie server", "env", cfg.Server.Env)

	// The Mongo client itself connects lazily on the first persistence
	// call; surface a missing URI at boot instead of on the first request.
	if cfg.Mongo.URI == "" {
		log.Warn("MONGODB_URI not set; persistence calls will fail")
	}

	shutdownTracing := observability.SetupTracing("supplygenie-server")
	defer shutdownTracing()
	observability.SetupMetrics()

	chatCache := cache.New(log)
	defer chatCache.Close()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
		log.LogError(err, "invalid trusted proxy configuration")
	}
	r.Use(middleware.RequestIDMiddleware())
	r.Use(logger.Middleware(log))
	r.Use(errors.RecoveryWithLogger())
	r.Use(errors.ErrorHandler())

	limiter := middleware.NewRateLimiter(log, middleware.RateLimiterOptions{
		Limit:          rate.Limit(cfg.Security.RateLimit),
		Burst:          cfg.Security.RateLimitBurst,
		ExpiryDuration: time.Hour,
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	})
	r.Use(limiter.Middleware())

	handler := chat.NewChatHandlerWithDI(chatCache, log)

	var chatMiddleware []gin.HandlerFunc
	if cfg.Auth.Enabled {
		chatMiddleware = append(chatMiddleware, auth.Middleware(auth.NewService(cfg.Auth.Secret)))
	}
	api.RegisterChatRoutes(r, handler, chatMiddleware...)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	go func() {
		log.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.LogError(err, "server failed to start")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.LogError(err, "server forced to shutdown")
	}
	if err := mongox.Disconnect(ctx); err != nil {
		log.LogError(err, "mongo disconnect failed")
	}

	log.Info("server exited gracefully")
}
