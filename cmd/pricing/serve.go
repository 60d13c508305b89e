package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/wyfcoding/exactpricing/internal/pricing/application"
	httphandler "github.com/wyfcoding/exactpricing/internal/pricing/interfaces/http"
	"github.com/wyfcoding/exactpricing/pkg/config"
	"github.com/wyfcoding/exactpricing/pkg/logger"
	"github.com/wyfcoding/exactpricing/pkg/metrics"
	"github.com/wyfcoding/exactpricing/pkg/middleware"
	"github.com/wyfcoding/exactpricing/pkg/ratelimit"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the pricing HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg)
		},
	}
}

func runServe(ctx context.Context, cfg *config.Config) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(cfg.ServiceName)
	if err := m.Register(reg); err != nil {
		return err
	}

	svc := application.NewPricingService(serviceOptions(cfg), m)
	srv := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      newEngine(cfg, svc, m, reg),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "HTTP server starting", "service", cfg.ServiceName, "addr", srv.Addr, "version", cfg.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info(context.Background(), "HTTP server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newEngine(cfg *config.Config, svc *application.PricingService, m *metrics.Metrics, g prometheus.Gatherer) *gin.Engine {
	if cfg.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	e := gin.New()
	// 日志与指标中间件须在 recovery 之前注册
	e.Use(
		middleware.GinLoggingMiddleware(),
		middleware.GinMetricsMiddleware(m),
		middleware.GinRecoveryMiddleware(),
		middleware.GinCORSMiddleware(),
	)

	api := e.Group("/")
	api.Use(middleware.RateLimitMiddleware(ratelimit.NewLocalRateLimiter(), cfg.RateLimit))
	httphandler.NewPricingHandler(svc.Command, svc.Query).RegisterRoutes(api)
	e.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   cfg.ServiceName,
			"version":   cfg.Version,
			"timestamp": time.Now().Unix(),
		})
	})
	if cfg.Metrics.Enabled {
		e.GET(cfg.Metrics.Path, gin.WrapH(metrics.Handler(g)))
	}
	return e
}
