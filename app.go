package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"storefront/internal/config"
	"storefront/internal/handlers"
	"storefront/internal/metrics"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/pkg/mailer"
	"storefront/pkg/rabbitmq"
	"storefront/pkg/storage"
	"storefront/pkg/tokenstore"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// infrastructure groups the external adapters the application depends on.
type infrastructure struct {
	notifier  services.ReceiptNotifier
	blacklist services.TokenBlacklist
	store     services.ImageStore
	// mediaRoot is served under /media when images are kept on disk.
	mediaRoot string
	closers   []io.Closer
}

// Close releases every connection opened by connect.
func (i *infrastructure) Close() {
	for _, c := range i.closers {
		if err := c.Close(); err != nil {
			logrus.WithError(err).Warn("Error closing connection")
		}
	}
}

// connect opens the adapters selected by cfg: token blacklist, image storage
// and the receipt notification path.
func connect(ctx context.Context, cfg *config.Config) (*infrastructure, error) {
	infra := &infrastructure{}

	if cfg.RedisAddr != "" {
		redisStore, err := tokenstore.NewRedis(ctx, tokenstore.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		infra.blacklist = redisStore
		infra.closers = append(infra.closers, redisStore)
	} else {
		logrus.Warn("REDIS_ADDR is empty, revoked tokens are kept in memory")
		infra.blacklist = tokenstore.NewMemory()
	}

	switch cfg.Storage.Driver {
	case "minio":
		store, err := storage.NewMinIO(ctx, storage.MinIOConfig{
			Endpoint:  cfg.Storage.MinIOEndpoint,
			AccessKey: cfg.Storage.MinIOAccessKey,
			SecretKey: cfg.Storage.MinIOSecretKey,
			Bucket:    cfg.Storage.MinIOBucket,
			UseSSL:    cfg.Storage.MinIOUseSSL,
		})
		if err != nil {
			infra.Close()
			return nil, err
		}
		infra.store = store
	default:
		disk, err := storage.NewDisk(cfg.Storage.MediaRoot)
		if err != nil {
			infra.Close()
			return nil, err
		}
		infra.store = disk
		infra.mediaRoot = disk.Root()
	}

	var sender services.MailSender
	if cfg.SMTP.Host != "" {
		sender = mailer.New(mailer.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	}

	switch {
	case cfg.RabbitMQURL != "":
		client, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.ReceiptQueue})
		if err != nil {
			infra.Close()
			return nil, err
		}
		infra.closers = append(infra.closers, client)
		infra.notifier = services.NewQueueNotifier(client)
		if sender == nil {
			logrus.Warn("SMTP_HOST is empty, queued receipts are not consumed")
			break
		}
		if err := client.Consume(services.ReceiptConsumer(sender)); err != nil {
			infra.Close()
			return nil, err
		}
	case sender != nil:
		infra.notifier = services.NewMailNotifier(sender)
	default:
		infra.notifier = services.LogNotifier{}
	}

	return infra, nil
}

// server is the assembled HTTP application.
type server struct {
	app     *fiber.App
	orders  *services.OrderService
	limiter *middleware.RateLimiter
}

// newApp wires repositories, services and handlers into a Fiber app.
func newApp(cfg *config.Config, db *gorm.DB, infra *infrastructure) (*server, error) {
	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	roleRepo := repositories.NewGORMRoleRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	cardRepo := repositories.NewGORMProductCardRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)

	if err := roleRepo.EnsureNames(cfg.DefaultRoles); err != nil {
		return nil, fmt.Errorf("failed to seed roles: %w", err)
	}

	// --- Services ---
	authService := services.NewAuthService(userRepo, roleRepo, infra.blacklist, services.AuthConfig{
		Secret:             cfg.JWTSecret,
		AccessTTL:          cfg.AccessTokenTTL,
		RefreshTTL:         cfg.RefreshTokenTTL,
		PasswordMinEntropy: cfg.PasswordMinEntropy,
	})
	importer := services.NewImageImporter(infra.store, cfg.ImageFetchTimeout)
	productService := services.NewProductService(productRepo, categoryRepo, importer, infra.store)
	categoryService := services.NewCategoryService(categoryRepo)
	orderService := services.NewOrderService(productRepo, cardRepo, infra.notifier, cfg.ShopName)
	contentService := services.NewContentService(
		repositories.NewGORMListRepository[models.Banner](db),
		repositories.NewGORMListRepository[models.Service](db),
		repositories.NewGORMListRepository[models.OurPartner](db),
		repositories.NewGORMListRepository[models.Consultant](db),
	)

	// --- Handlers ---
	media := handlers.Media{BaseURL: cfg.Storage.MediaURL}
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService, media)
	categoryHandler := handlers.NewCategoryHandler(categoryService, productService, media)
	orderHandler := handlers.NewOrderHandler(orderService)
	contentHandler := handlers.NewContentHandler(contentService, media)

	// --- Fiber app ---
	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSOrigins}))
	app.Use(metrics.Middleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	app.Get("/metrics", metrics.Handler())
	if infra.mediaRoot != "" {
		app.Static("/media", infra.mediaRoot)
	}

	protect := middleware.AuthRequired(authService)
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	throttle := limiter.Handler()

	authHandler.RegisterRoutes(app, protect)
	productHandler.RegisterRoutes(app, protect)
	categoryHandler.RegisterRoutes(app, protect)
	orderHandler.RegisterRoutes(app, throttle)
	contentHandler.RegisterRoutes(app, throttle)

	return &server{app: app, orders: orderService, limiter: limiter}, nil
}
