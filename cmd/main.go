package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	miniolib "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/ecomarket/storefront-core/internal/cart"
	"github.com/ecomarket/storefront-core/internal/catalog"
	"github.com/ecomarket/storefront-core/internal/config"
	"github.com/ecomarket/storefront-core/internal/logger"
	"github.com/ecomarket/storefront-core/internal/model"
	"github.com/ecomarket/storefront-core/internal/pricing"
	"github.com/ecomarket/storefront-core/internal/seller"
	"github.com/ecomarket/storefront-core/internal/service"
	"github.com/ecomarket/storefront-core/internal/session"
	"github.com/ecomarket/storefront-core/internal/storage/file"
	"github.com/ecomarket/storefront-core/internal/storage/memory"
	miniostore "github.com/ecomarket/storefront-core/internal/storage/minio"
	"github.com/ecomarket/storefront-core/internal/storage/postgres"
	redisstore "github.com/ecomarket/storefront-core/internal/storage/redis"
	"github.com/ecomarket/storefront-core/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)
	logger.Info("starting ecomarket storefront core", "version", buildVersion, "build_date", buildDate)

	kv, cleanup, err := newKeyValue(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize storage backend", "backend", cfg.Storage.Backend, "error", err)
	}
	defer cleanup()

	provider, err := catalog.NewProvider()
	if err != nil {
		logger.Fatal("failed to load catalog", "error", err)
	}

	tokenManager := token.NewJWT(cfg.Session.TokenSecret)
	sess := session.NewService(ctx, provider, kv, tokenManager, logger, cfg.Session.DemoPassword, cfg.Session.LoginLatency)
	cartStore := cart.NewStore(ctx, kv, logger)
	promo := pricing.NewValidator(cfg.Pricing.PromoLatency, logger)
	storefront := service.NewStorefront(provider, cartStore, promo, sess, logger)

	runDemo(ctx, cfg, logger, storefront, sess, provider)
}

// runDemo walks the core flows once: login, cart mutations, promo
// application and the seller dashboard figures. The storefront has no
// network surface; this is the in-process equivalent of clicking through
// the original pages.
func runDemo(
	ctx context.Context,
	cfg *config.Config,
	logger *logger.Logger,
	storefront *service.Storefront,
	sess *session.Service,
	provider *catalog.Provider,
) {
	if user, ok := sess.Current(); ok {
		logger.Info("session rehydrated", "email", user.Email)
	}

	user, ok := sess.Login(ctx, "buyer@example.com", cfg.Session.DemoPassword)
	if !ok {
		logger.Error("demo login failed")
		return
	}
	logger.Info("logged in", "name", user.Name)

	if err := storefront.AddToCart(ctx, "1", 1); err != nil {
		logger.Error("failed to add to cart", "error", err)
		return
	}
	if err := storefront.ChangeQuantity(ctx, "1", 2); err != nil {
		logger.Error("failed to change quantity", "error", err)
		return
	}

	result, err := storefront.ApplyPromo(ctx, "ECO20")
	if err != nil {
		logger.Error("promo validation aborted", "error", err)
		return
	}
	logger.Info("promo validated", "code", result.Code, "valid", result.Valid)

	quote := storefront.Quote()
	logger.Info("order quote",
		"subtotal", quote.Subtotal,
		"shipping", quote.Shipping,
		"discount", quote.Discount,
		"total", quote.Total)

	if err := storefront.Checkout(ctx); err != nil {
		logger.Error("checkout refused", "error", err)
		return
	}

	stats := seller.New(provider)
	summary := stats.Summary()
	logger.Info("seller dashboard",
		"total_sales", summary.TotalSales,
		"orders", summary.TotalOrders,
		"avg_order_value", summary.AverageOrderValue,
		"products", summary.ProductCount)
}

// newKeyValue builds the persisted-storage backend selected by config.
func newKeyValue(ctx context.Context, cfg *config.Config, logger *logger.Logger) (model.KeyValue, func(), error) {
	noop := func() {}

	switch cfg.Storage.Backend {
	case "memory":
		return memory.New(), noop, nil

	case "file":
		return file.New(cfg.Storage.FilePath), noop, nil

	case "redis":
		store, err := redisstore.New(ctx, cfg.Storage.RedisURL)
		if err != nil {
			return nil, noop, err
		}
		return store, func() {
			if err := store.Close(); err != nil {
				logger.Error("failed to close redis store", "error", err)
			}
		}, nil

	case "postgres":
		store, err := postgres.New(ctx, cfg.Storage.PostgresDSN)
		if err != nil {
			return nil, noop, err
		}
		return store, func() {
			if err := store.Close(); err != nil {
				logger.Error("failed to close postgres store", "error", err)
			}
		}, nil

	case "minio":
		client, err := miniolib.New(cfg.Storage.Minio.Endpoint, &miniolib.Options{
			Creds:  credentials.NewStaticV4(cfg.Storage.Minio.AccessKey, cfg.Storage.Minio.SecretKey, ""),
			Secure: cfg.Storage.Minio.UseSSL,
		})
		if err != nil {
			return nil, noop, err
		}
		store, err := miniostore.New(ctx, client, cfg.Storage.Minio.Bucket)
		if err != nil {
			return nil, noop, err
		}
		return store, noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
