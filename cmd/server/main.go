// Command server runs the lease signing coordinator.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leasegate/internal/activity"
	leasinghandler "leasegate/internal/leasing/handler"
	leasingmetrics "leasegate/internal/leasing/metrics"
	"leasegate/internal/leasing/service"
	"leasegate/internal/leasing/store"
	"leasegate/internal/notification"
	"leasegate/internal/notification/dispatcher"
	"leasegate/internal/notification/outbox"
	"leasegate/internal/platform/config"
	"leasegate/internal/platform/database"
	"leasegate/internal/platform/health"
	"leasegate/internal/platform/logger"
	"leasegate/internal/platform/messaging"
	"leasegate/internal/seeder"
	"leasegate/internal/session"
	transporthttp "leasegate/internal/transport/http"
	"leasegate/pkg/domain"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.FromEnv()
	log := logger.New(cfg.Debug)

	sessions, err := session.NewJWTService(cfg.SessionKey, cfg.SessionTokenTTL)
	if err != nil {
		return err
	}

	healthHandler := health.New(cfg.Environment)

	var (
		leaseStore    store.Store
		txRunner      store.StoreTx
		activityStore activity.Store
		noteStore     notification.Store
		outboxStore   outbox.Store
	)

	if cfg.DatabaseURL != "" {
		pool, err := database.New(database.DefaultConfig(cfg.DatabaseURL))
		if err != nil {
			return err
		}
		defer pool.Close()
		healthHandler.RegisterCheck("database", pool.Health)

		db := pool.DB()
		leaseStore = store.NewPostgres(db)
		txRunner = store.NewPostgresTxRunner(db)
		activityStore = activity.NewPostgres(db)
		noteStore = notification.NewPostgres(db)
		outboxStore = outbox.NewPostgres(db)
		log.Info("using postgresql store")
	} else {
		activityStore = activity.NewInMemoryStore()
		noteStore = notification.NewInMemoryStore()
		outboxStore = outbox.NewInMemoryStore()
		memStore := store.NewInMemoryStore(activityStore, noteStore, outboxStore)
		leaseStore = memStore
		txRunner = store.NewInMemoryTx(memStore)
		log.Warn("DATABASE_URL not set, using in-memory store")

		if cfg.SeedDemoData {
			seeder.Seed(memStore, log)
			logDemoTokens(log, sessions)
		}
	}

	signingService := service.New(leaseStore, withTimeout(txRunner, cfg.SignTxTimeout),
		service.WithMetrics(leasingmetrics.New()),
		service.WithLogger(log),
	)
	notificationService := notification.NewService(noteStore, log)

	if cfg.AMQPURL != "" {
		broker, err := messaging.Dial(cfg.AMQPURL)
		if err != nil {
			return err
		}
		defer broker.Close()
		if err := broker.DeclareQueue(cfg.NotificationQueue); err != nil {
			return err
		}
		healthHandler.RegisterCheck("rabbitmq", func(context.Context) error { return broker.Health() })

		worker := dispatcher.New(outboxStore, broker.QueuePublisher(cfg.NotificationQueue), log,
			dispatcher.WithPollInterval(cfg.OutboxPoll),
			dispatcher.WithBatchSize(cfg.OutboxBatchSize),
		)
		worker.Start()
		defer worker.Stop()
		log.Info("notification dispatcher started", "queue", cfg.NotificationQueue)
	} else {
		log.Warn("AMQP_URL not set, notifications stay in the outbox")
	}

	router := transporthttp.NewRouter(transporthttp.Deps{
		Logger:        log,
		Validator:     sessions,
		Health:        healthHandler,
		Leasing:       leasinghandler.NewHandler(signingService, log),
		Notifications: notification.NewHandler(notificationService, log),
		Activity:      activity.NewHandler(activityStore, log),
	})

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.Addr, "environment", cfg.Environment)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// timeoutTxRunner bounds each signing transaction so a stuck store cannot
// hold a request past its useful lifetime.
type timeoutTxRunner struct {
	inner   store.StoreTx
	timeout time.Duration
}

func withTimeout(inner store.StoreTx, timeout time.Duration) store.StoreTx {
	if timeout <= 0 {
		return inner
	}
	return &timeoutTxRunner{inner: inner, timeout: timeout}
}

func (t *timeoutTxRunner) RunInTx(ctx context.Context, id domain.LeaseID, fn func(store.Store) error) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.RunInTx(ctx, id, fn)
}

func logDemoTokens(log *slog.Logger, sessions *session.JWTService) {
	demo := []struct {
		label  string
		userID domain.UserID
		role   domain.Role
	}{
		{"landlord", seeder.DemoLandlordID, domain.RoleLandlord},
		{"tenant_a", seeder.DemoTenantAID, domain.RoleTenant},
		{"tenant_b", seeder.DemoTenantBID, domain.RoleTenant},
	}
	for _, d := range demo {
		token, err := sessions.IssueToken(d.userID, d.role)
		if err != nil {
			log.Error("failed to issue demo token", "user", d.label, "error", err)
			continue
		}
		log.Info("demo session token", "user", d.label, "token", token)
	}
}
