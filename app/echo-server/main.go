package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpmetrics "kledje/app/echo-server/metrics"
	"kledje/app/echo-server/router"
	offerService "kledje/business/offer"
	"kledje/business/orders"
	productService "kledje/business/product"
	settingsService "kledje/business/settings"
	uploadService "kledje/business/upload"
	userService "kledje/business/user"
	"kledje/domain"
	"kledje/internal/middleware"
	"kledje/internal/repository/notification"
	psqlRepo "kledje/internal/repository/postgres"
	redisRepo "kledje/internal/repository/redis"
	"kledje/internal/repository/storage"
	"kledje/internal/rest"
	"kledje/internal/schema"
	"kledje/pkg/config"
	"kledje/pkg/database"
	"kledje/pkg/logger"
	"kledje/pkg/metrics"
	"kledje/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	defer logger.Sync()
	logger.Info("Starting "+cfg.App.Name, "version", cfg.App.Version, "environment", cfg.App.Environment)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer func() {
		if err := database.ClosePostgres(db); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}()

	logger.Info("Database connected successfully")

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Fatal("Failed to migrate database", "error", err)
		}
		logger.Info("Database migrated")
	}

	var rdb *goredis.Client
	if cfg.Redis.Enabled() {
		rdb, err = database.InitRedis(cfg)
		if err != nil {
			logger.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
			rdb = nil
		} else {
			defer func() { _ = database.CloseRedis(rdb) }()
		}
	}

	httpmetrics.Init()
	metrics.Init()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	productRepo := psqlRepo.NewProductRepository(db)
	offerRepo := psqlRepo.NewOfferRepository(db)
	ordersRepo := psqlRepo.NewOrdersRepository(db)
	settingsRepo := psqlRepo.NewSettingsRepository(db)

	imageStore, localUploads := newImageStore(cfg)
	mailer := newMailer(cfg)

	tokens := utils.NewTokenManager(cfg.JWT.SecretKey, cfg.JWT.ExpiresIn)
	requestValidator := schema.New()

	// Init service
	userSvc := userService.NewUserService(userRepo, tokens, validator.New())
	productSvc := productService.NewProductService(productRepo)
	offerSvc := offerService.NewOfferService(offerRepo)
	ordersSvc := orders.NewOrdersService(ordersRepo, mailer, nil)
	settingsSvc := settingsService.NewSettingsService(settingsRepo)
	uploadSvc := uploadService.NewUploadService(imageStore, uploadService.Limits{
		MaxFileSize: cfg.Upload.MaxFileSize,
		MaxFiles:    cfg.Upload.MaxFiles,
	})

	// Init handler
	userHandler := rest.NewUserHandler(userSvc)
	productHandler := rest.NewProductHandler(productSvc, requestValidator)
	offerHandler := rest.NewOfferHandler(offerSvc, requestValidator)
	ordersHandler := rest.NewOrdersHandler(ordersSvc, requestValidator)
	settingsHandler := rest.NewSettingsHandler(settingsSvc)
	uploadHandler := rest.NewUploadHandler(uploadSvc)
	healthHandler := rest.NewHealthHandler(cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler(!cfg.App.IsProduction())

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(requestLogger())
	e.Use(httpmetrics.Middleware())
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "SAMEORIGIN",
		HSTSMaxAge:         15552000,
	}))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	e.Use(echomiddleware.Gzip())
	e.Use(echomiddleware.BodyLimit(cfg.Server.BodyLimit))

	if localUploads != "" {
		e.Static("/uploads", localUploads)
	}

	e.GET("/health", healthHandler.Health)
	e.GET("/metrics", httpmetrics.Handler())

	guards := router.Guards{
		AuthRequired: middleware.AuthMiddleware(tokens, userRepo),
		AuthOptional: middleware.OptionalAuthMiddleware(tokens, userRepo),
		AdminOnly:    middleware.AdminOnly(),
	}

	// Setup routes
	api := e.Group("/api", rateLimiter(cfg, rdb))
	api.GET("", healthHandler.Index)
	router.SetupAuthRoutes(api, userHandler, guards)
	router.SetupProductRoutes(api, productHandler, guards)
	router.SetupOfferRoutes(api, offerHandler, guards)
	router.SetOrdersRoutes(api, ordersHandler, guards)
	router.SetupSettingsRoutes(api, settingsHandler, guards)
	router.SetupUploadRoutes(api, uploadHandler, guards)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	ordersSvc.Wait()

	logger.Info("Server stopped")
}

// newImageStore prefers MinIO. The second return value is the directory to
// serve at /uploads when files stay on local disk.
func newImageStore(cfg *config.Config) (uploadService.ImageStore, string) {
	if cfg.Minio.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		store, err := storage.NewMinioStore(ctx, storage.MinioConfig{
			Endpoint:  cfg.Minio.Endpoint,
			AccessKey: cfg.Minio.AccessKey,
			SecretKey: cfg.Minio.SecretKey,
			Bucket:    cfg.Minio.Bucket,
			UseSSL:    cfg.Minio.UseSSL,
			PublicURL: cfg.Minio.PublicURL,
		})
		if err != nil {
			logger.Fatal("Failed to init object storage", "error", err)
		}
		logger.Info("Uploads stored in MinIO", "bucket", cfg.Minio.Bucket)
		return store, ""
	}

	store, err := storage.NewLocalStore(cfg.Upload.Dir, cfg.Upload.PublicBaseURL)
	if err != nil {
		logger.Fatal("Failed to init upload directory", "error", err)
	}
	logger.Info("Uploads stored on disk", "dir", store.Dir())
	return store, store.Dir()
}

func newMailer(cfg *config.Config) orders.Mailer {
	switch {
	case cfg.Mailjet.Enabled():
		logger.Info("Emails sent through Mailjet")
		return notification.NewMailjetRepository(notification.MailjetConfig{
			MailjetBaseURL:           cfg.Mailjet.MailjetBaseUrl,
			MailjetBasicAuthUsername: cfg.Mailjet.MailjetBasicAuthUsername,
			MailjetBasicAuthPassword: cfg.Mailjet.MailjetBasicAuthPassword,
			MailjetSenderEmail:       cfg.Mailjet.MailjetSenderEmail,
			MailjetSenderName:        cfg.Mailjet.MailjetSenderName,
		})
	case cfg.SMTP.Enabled():
		logger.Info("Emails sent through SMTP", "host", cfg.SMTP.Host)
		return notification.NewSMTPRepository(notification.SMTPConfig{
			Host:        cfg.SMTP.Host,
			Port:        cfg.SMTP.Port,
			Username:    cfg.SMTP.Username,
			Password:    cfg.SMTP.Password,
			SenderEmail: cfg.SMTP.SenderEmail,
			SenderName:  cfg.SMTP.SenderName,
		})
	default:
		logger.Warn("No email transport configured, emails are logged only")
		return notification.NewLogMailer()
	}
}

func requestLogger() echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			logger.Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency.String(),
				"remote_ip", v.RemoteIP,
			)
			return nil
		},
	})
}

// rateLimiter counts requests per client IP. Redis shares the window across
// instances; without it each process keeps its own token buckets.
func rateLimiter(cfg *config.Config, rdb *goredis.Client) echo.MiddlewareFunc {
	var store echomiddleware.RateLimiterStore
	if rdb != nil {
		store = redisRepo.NewRateLimitStore(rdb, cfg.RateLimit.Window, cfg.RateLimit.MaxRequests)
	} else {
		store = echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(float64(cfg.RateLimit.MaxRequests) / cfg.RateLimit.Window.Seconds()),
			Burst:     cfg.RateLimit.MaxRequests,
			ExpiresIn: cfg.RateLimit.Window,
		})
	}

	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			logger.Warn("Rate limit exceeded", "ip", identifier)
			return domain.NewRateLimitedError(domain.MsgTooManyRequests)
		},
	})
}
