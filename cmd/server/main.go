package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	lnurlService "satnam/internal/lnurl/service"
	"satnam/internal/platform/audit"
	"satnam/internal/platform/config"
	"satnam/internal/platform/httpserver"
	"satnam/internal/platform/logger"
	"satnam/internal/platform/metrics"
	"satnam/internal/platform/middleware"
	platformRedis "satnam/internal/platform/redis"
	"satnam/internal/resolver/keyring"
	resolverService "satnam/internal/resolver/service"
	routingService "satnam/internal/routing/service"
	httptransport "satnam/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	auditPublisher := newAuditPublisher(cfg, log)
	defer auditPublisher.Close()

	keys, err := keyring.Parse(cfg.ResolutionSecrets)
	if err != nil {
		return err
	}
	auditPublisher.Emit(ctx, audit.Event{
		Category: audit.CategorySecurity,
		Action:   audit.ActionKeyringLoaded,
		Detail:   "resolution keyring loaded",
	})

	redisClient, err := platformRedis.New(cfg.RedisURL)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	artifactStore, pool, err := newArtifactStore(ctx, cfg, redisClient)
	if err != nil {
		return err
	}
	if pool != nil {
		defer pool.Close()
	}

	resolver, err := resolverService.New(keys, artifactStore,
		resolverService.WithLogger(log),
		resolverService.WithAuditPublisher(auditPublisher),
		resolverService.WithFetchTimeout(cfg.FetchTimeout),
		resolverService.WithStrictIntegrity(cfg.StrictIntegrity),
	)
	if err != nil {
		return err
	}

	signer, err := invoiceSigner(cfg)
	if err != nil {
		return err
	}

	negotiator, err := lnurlService.New(resolver, signer, lnurlService.Config{
		PublicURL:      cfg.PublicURL,
		HomeDomain:     cfg.HomeDomain,
		MinSendable:    cfg.MinSendable,
		MaxSendable:    cfg.MaxSendable,
		CommentAllowed: cfg.CommentAllowed,
		InvoiceExpiry:  cfg.InvoiceExpiry,
	}, lnurlService.WithLogger(log))
	if err != nil {
		return err
	}

	routingCfg := routingService.DefaultConfig()
	routingCfg.MembershipTimeout = cfg.MembershipTimeout
	selector, err := routingService.New(newMembershipVerifier(redisClient), routingCfg,
		routingService.WithLogger(log),
		routingService.WithAuditPublisher(auditPublisher),
	)
	if err != nil {
		return err
	}

	validator, err := middleware.NewHMACValidator(cfg.JWTSigningKey)
	if err != nil {
		return err
	}

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Pay:          negotiator,
		Resolver:     resolver,
		Routes:       selector,
		JWTValidator: validator,
		Logger:       log,
		Metrics:      metrics.New(),
	})

	srv := httpserver.New(cfg.Addr, router)

	auditPublisher.Emit(ctx, audit.Event{
		Category: audit.CategoryOperations,
		Action:   audit.ActionServiceStarted,
		Detail:   "listening on " + cfg.Addr,
	})
	log.Info("starting satnam", "addr", cfg.Addr, "domain", cfg.HomeDomain)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err = g.Wait()

	auditPublisher.Emit(context.Background(), audit.Event{
		Category: audit.CategoryOperations,
		Action:   audit.ActionServiceStopped,
		Detail:   "server stopped",
	})
	return err
}

func newAuditPublisher(cfg config.Config, log *slog.Logger) audit.Publisher {
	if cfg.KafkaBrokers == "" {
		return audit.Noop{}
	}
	publisher, err := audit.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, log)
	if err != nil {
		log.Warn("audit pipeline disabled", "error", err)
		return audit.Noop{}
	}
	return publisher
}
