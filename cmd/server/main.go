package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	catalogapp "github.com/mbsolutions/storefront/internal/application/catalog"
	orderapp "github.com/mbsolutions/storefront/internal/application/order"
	"github.com/mbsolutions/storefront/internal/infrastructure/auth"
	"github.com/mbsolutions/storefront/internal/infrastructure/config"
	"github.com/mbsolutions/storefront/internal/infrastructure/logger"
	"github.com/mbsolutions/storefront/internal/infrastructure/notify"
	"github.com/mbsolutions/storefront/internal/infrastructure/persistence"
	"github.com/mbsolutions/storefront/internal/infrastructure/storage"
	"github.com/mbsolutions/storefront/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	// .env is optional, environment variables win either way
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting storefront",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	productRepo, err := persistence.NewFileProductRepository(cfg.Store.ProductsFile)
	if err != nil {
		log.Fatal("Failed to open product store", zap.Error(err))
	}
	orderRepo, err := persistence.NewFileOrderRepository(cfg.Store.OrdersFile)
	if err != nil {
		log.Fatal("Failed to open order store", zap.Error(err))
	}

	imageStore, err := storage.NewImageStore(storage.Config{
		Dir:        cfg.Images.Dir,
		MaxWidth:   cfg.Images.MaxWidth,
		Quality:    cfg.Images.Quality,
		Processing: cfg.Images.Processing,
	}, log)
	if err != nil {
		log.Fatal("Failed to prepare image directory", zap.Error(err))
	}

	var notifier orderapp.Notifier
	if cfg.SMTP.Enabled() {
		notifier = notify.NewMailer(cfg.SMTP, log)
		log.Info("Order notification enabled",
			zap.String("host", cfg.SMTP.Host),
			zap.String("to", cfg.SMTP.SalesTo),
		)
	} else {
		notifier = notify.NoopNotifier{}
		log.Info("Order notification disabled, SMTP not configured")
	}

	productService := catalogapp.NewProductService(productRepo, imageStore)
	orderService := orderapp.NewOrderService(orderRepo, notifier, log)

	tokens := auth.NewTokenService(cfg.JWT)
	credentials := auth.NewCredentials(cfg.Admin)
	limiter := auth.NewLoginLimiter(cfg.HTTP.LoginRateLimit, cfg.HTTP.LoginRateWindow)

	engine := router.New(router.Dependencies{
		Config:       cfg,
		Logger:       log,
		Products:     productService,
		Orders:       orderService,
		Tokens:       tokens,
		Credentials:  credentials,
		LoginLimiter: limiter,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
