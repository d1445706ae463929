// walletd runs the backend collaborator: ledger records, holder inboxes, the
// DID document registry, and presentation requests behind a bearer-token API.
// Wallet engines talk to it through internal/backend/client.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"dcert/internal/backend/handler"
	"dcert/internal/backend/store/inbox"
	"dcert/internal/backend/store/ledger"
	"dcert/internal/backend/store/presentation"
	"dcert/internal/backend/store/registry"
	"dcert/internal/backend/token"
	"dcert/internal/platform/config"
	"dcert/internal/platform/database"
	"dcert/internal/platform/httpserver"
	"dcert/internal/platform/logger"
	"dcert/internal/platform/metrics"
	"dcert/internal/platform/redis"
	"dcert/pkg/platform/audit"
	auditkafka "dcert/pkg/platform/audit/publishers/kafka"
	auditmemory "dcert/pkg/platform/audit/store/memory"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	log.Info("initializing walletd", "addr", cfg.Addr)

	checks := map[string]handler.HealthCheck{}

	var ledgerStore handler.LedgerStore = ledger.NewMemory()
	db, err := database.New(cfg.Database)
	if err != nil {
		log.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if db != nil {
		if _, err := db.DB().ExecContext(context.Background(), ledger.Schema); err != nil {
			log.Error("ledger schema setup failed", "error", err)
			os.Exit(1)
		}
		ledgerStore = ledger.NewPostgres(db.DB())
		checks["database"] = db.Health
		defer db.Close()
		log.Info("ledger store: postgres")
	} else {
		log.Info("ledger store: memory")
	}

	var inboxStore handler.InboxStore = inbox.NewMemory()
	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		inboxStore = inbox.NewRedis(redisClient.Client)
		checks["redis"] = redisClient.Health
		defer redisClient.Close()
		log.Info("inbox store: redis")
	} else {
		log.Info("inbox store: memory")
	}

	var auditStore audit.Store = auditmemory.NewInMemoryStore()
	if cfg.Kafka.Brokers != "" {
		publisher, err := auditkafka.New(auditkafka.Config{
			Brokers:         cfg.Kafka.Brokers,
			Topic:           cfg.Kafka.AuditTopic,
			Retries:         5,
			DeliveryTimeout: 10 * time.Second,
		}, log)
		if err != nil {
			log.Error("kafka audit publisher setup failed", "error", err)
			os.Exit(1)
		}
		auditStore = publisher
		checks["kafka"] = func(ctx context.Context) error {
			if !publisher.Healthy(ctx) {
				return errors.New("kafka unreachable")
			}
			return nil
		}
		defer publisher.Close()
		log.Info("audit sink: kafka", "topic", cfg.Kafka.AuditTopic)
	} else {
		log.Info("audit sink: memory")
	}

	tokens := token.NewService(cfg.JWTSigningKey, "dcert-backend", "dcert-wallet")
	m := metrics.New()

	h := handler.New(ledgerStore, inboxStore, registry.NewMemory(), presentation.NewMemory(), log,
		handler.WithAudit(audit.NewPublisher(auditStore)))
	router := handler.NewRouter(h, tokens.MiddlewareValidator(), log, m, cfg.RequestTimeout, checks)

	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down server gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("walletd exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
