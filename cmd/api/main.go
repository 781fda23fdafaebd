package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/twmb/franz-go/pkg/kgo"

	"storefront/internal/cache"
	"storefront/internal/config"
	httphandler "storefront/internal/delivery/http"
	"storefront/internal/delivery/kafka"
	"storefront/internal/repository"
	"storefront/internal/usecase"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	cfg := config.Load()

	pool, err := initDB(cfg)
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	if err := repository.RunMigrations(pool, "db/migrations"); err != nil {
		zlog.Fatal().Err(err).Msg("failed to run migrations")
	}

	store := repository.New(pool)

	var couponCache usecase.CouponCache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
			DB:   cfg.RedisDatabase(),
		})
		defer redisClient.Close()
		couponCache = cache.NewCouponCache(redisClient, time.Duration(cfg.CouponCacheTTL())*time.Second)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var events usecase.EventPublisher = kafka.NewNopPublisher()
	var producerClient, consumerClient *kgo.Client

	if cfg.EventsOn() {
		brokers := strings.Split(cfg.KafkaBrokers, ",")

		producerClient, err = kgo.NewClient(
			kgo.SeedBrokers(brokers...),
			kgo.ClientID(cfg.KafkaClientID),
		)
		if err != nil {
			zlog.Fatal().Err(err).Msg("failed to create kafka producer client")
		}

		if err := kafka.EnsureTopics(ctx, producerClient, cfg); err != nil {
			zlog.Warn().Err(err).Msg("failed to ensure topics")
		}

		events = kafka.NewPublisher(producerClient)

		consumerClient, err = kgo.NewClient(
			kgo.SeedBrokers(brokers...),
			kgo.ClientID(cfg.KafkaClientID+"-consumer"),
			kgo.ConsumerGroup(cfg.KafkaGroupID),
			kgo.ConsumeTopics(kafka.TopicCouponRedeemed, kafka.TopicStockLow),
			kgo.DisableAutoCommit(),
		)
		if err != nil {
			zlog.Fatal().Err(err).Msg("failed to create kafka consumer client")
		}

		consumer := kafka.NewConsumer(consumerClient, store)
		go consumer.Start(ctx)
	}

	coupons := usecase.NewCouponService(store, couponCache, events)
	addresses := usecase.NewAddressService(store)
	shipping := usecase.NewShippingService(store)
	inventory := usecase.NewInventoryService(store, events)
	carts := usecase.NewCartService(store, coupons, shipping)
	wishlists := usecase.NewWishlistService(store)

	handler := httphandler.NewHandler(coupons, addresses, shipping, inventory, carts, wishlists)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	handler.Routes(r)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		zlog.Info().Str("port", cfg.AppPort).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Error().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	zlog.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error().Err(err).Msg("http shutdown error")
	}

	if producerClient != nil {
		producerClient.Close()
	}
	if consumerClient != nil {
		consumerClient.Close()
	}

	wg.Wait()
	zlog.Info().Msg("shutdown complete")
}

func initDB(cfg *config.Config) (*pgxpool.Pool, error) {
	connStr := fmt.Sprintf(
		"postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
		cfg.DBSSLMode,
	)

	pool, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return pool, nil
}
