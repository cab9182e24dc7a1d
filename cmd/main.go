package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gitlab.com/sprinkles/storefront/internal/cache"
	"gitlab.com/sprinkles/storefront/internal/config"
	"gitlab.com/sprinkles/storefront/internal/db"
	"gitlab.com/sprinkles/storefront/internal/kafka"
	"gitlab.com/sprinkles/storefront/internal/logger"
	"gitlab.com/sprinkles/storefront/internal/repository/postgresql"
	"gitlab.com/sprinkles/storefront/internal/server"
	"gitlab.com/sprinkles/storefront/internal/session"
	"gitlab.com/sprinkles/storefront/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("local").Fatal("invalid configuration", zap.Error(err))
	}

	log := logger.New(cfg.App.Env)
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("application stopped with error", zap.Error(err))
		os.Exit(1)
	}
	log.Info("application stopped")
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	database, err := db.NewDb(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := db.Migrate(ctx, database); err != nil {
		return err
	}
	log.Info("database schema is up to date")

	accountRepo := postgresql.NewAccountRepo(database)
	productRepo := postgresql.NewProductRepo(database)
	orderRepo := postgresql.NewOrderRepo(database)
	historyRepo := postgresql.NewHistoryRepo(database)
	outboxRepo := postgresql.NewOutboxTaskRepo()
	sessionRepo := postgresql.NewSessionRepo(database)

	catalog := cache.NewCatalogCache(productRepo, log)
	if err := catalog.LoadInitialData(ctx); err != nil {
		// the catalog is read from the database until the cache is warm
		log.Warn("failed to warm catalog cache", zap.Error(err))
	}

	stg := storage.NewStorage(database, accountRepo, productRepo, orderRepo, historyRepo, outboxRepo,
		storage.WithCatalogCache(catalog),
		storage.WithLogger(log),
		storage.WithQueryTimeout(cfg.DB.QueryTimeout),
		storage.WithOrderTopic(cfg.Kafka.OrderTopic),
	)

	if err := stg.EnsureAdmin(ctx, storage.AdminSeed{
		Name:     cfg.Admin.Name,
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
		Address:  cfg.Admin.Address,
	}); err != nil {
		return err
	}

	sessions := session.NewManager(sessionRepo, session.Config{
		Secret:        []byte(cfg.Session.Secret),
		TTL:           cfg.Session.TTL,
		CookieName:    cfg.Session.CookieName,
		Secure:        cfg.Session.Secure,
		SweepInterval: cfg.Session.SweepInterval,
	}, log)

	var producer kafka.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		producer = kafka.NewBrokerProducer(cfg.Kafka.Brokers, log)
	} else {
		producer = kafka.NewLogProducer(log)
	}
	publisher := kafka.NewPublisher(database, outboxRepo, producer, kafka.PublisherConfig{
		PollInterval: cfg.Outbox.PollInterval,
		BatchSize:    cfg.Outbox.BatchSize,
		MaxAttempts:  cfg.Outbox.MaxAttempts,
	}, log)

	srv := server.New(stg, sessions, log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx, cfg.Server.Address())
	})
	g.Go(func() error {
		return publisher.Run(gctx)
	})
	g.Go(func() error {
		return sessions.RunJanitor(gctx)
	})

	return g.Wait()
}
