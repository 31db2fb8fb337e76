package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ustudiopd/EventLive-sub001/internal/audit"
	auditpublisher "github.com/ustudiopd/EventLive-sub001/internal/audit/publisher"
	auditstore "github.com/ustudiopd/EventLive-sub001/internal/audit/store"
	"github.com/ustudiopd/EventLive-sub001/internal/authz/guard"
	authzhandler "github.com/ustudiopd/EventLive-sub001/internal/authz/handler"
	"github.com/ustudiopd/EventLive-sub001/internal/authz/membership"
	agencymembers "github.com/ustudiopd/EventLive-sub001/internal/authz/membership/store/agency"
	clientmembers "github.com/ustudiopd/EventLive-sub001/internal/authz/membership/store/client"
	identityhandler "github.com/ustudiopd/EventLive-sub001/internal/identity/handler"
	identityservice "github.com/ustudiopd/EventLive-sub001/internal/identity/service"
	"github.com/ustudiopd/EventLive-sub001/internal/identity/session"
	profilestore "github.com/ustudiopd/EventLive-sub001/internal/identity/store/profile"
	"github.com/ustudiopd/EventLive-sub001/internal/platform/config"
	"github.com/ustudiopd/EventLive-sub001/internal/platform/httpserver"
	"github.com/ustudiopd/EventLive-sub001/internal/platform/logger"
	"github.com/ustudiopd/EventLive-sub001/internal/platform/metrics"
	"github.com/ustudiopd/EventLive-sub001/internal/platform/postgres"
	redisplatform "github.com/ustudiopd/EventLive-sub001/internal/platform/redis"
	tenancyhandler "github.com/ustudiopd/EventLive-sub001/internal/tenancy/handler"
	tenancyservice "github.com/ustudiopd/EventLive-sub001/internal/tenancy/service"
	agencystore "github.com/ustudiopd/EventLive-sub001/internal/tenancy/store/agency"
	allowedemailstore "github.com/ustudiopd/EventLive-sub001/internal/tenancy/store/allowedemail"
	clientstore "github.com/ustudiopd/EventLive-sub001/internal/tenancy/store/client"
	domainstore "github.com/ustudiopd/EventLive-sub001/internal/tenancy/store/domain"
	webinarstore "github.com/ustudiopd/EventLive-sub001/internal/tenancy/store/webinar"
	httptransport "github.com/ustudiopd/EventLive-sub001/internal/transport/http"
)

const auditWorkerBuffer = 256

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	db, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		log.Error("postgres connection failed", "error", err)
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
	} else {
		log.Warn("DATABASE_URL not set, using in-memory stores")
	}

	rdb, err := redisplatform.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if rdb != nil {
		defer rdb.Close()
	}

	m := metrics.New()

	// Identity: profiles, sessions, signed session tokens.
	var profiles identityservice.ProfileStore
	if db != nil {
		profiles = profilestore.NewPostgres(db)
	} else {
		profiles = profilestore.NewInMemory()
	}

	var sessions identityservice.SessionStore
	if rdb != nil {
		sessions = session.NewRedis(rdb.Client)
	} else {
		sessions = session.NewInMemory()
	}

	tokens := session.NewTokenService(cfg.SessionSigningKey)
	identitySvc := identityservice.New(profiles, sessions, tokens, cfg.SessionTTL, log)

	// Authorization: membership lookups and guards.
	var agencyRoles membership.AgencyStore
	var clientRoles membership.ClientStore
	if db != nil {
		agencyRoles = agencymembers.NewPostgres(db)
		clientRoles = clientmembers.NewPostgres(db)
	} else {
		agencyRoles = agencymembers.NewInMemory()
		clientRoles = clientmembers.NewInMemory()
	}
	memberships := membership.NewResolver(agencyRoles, clientRoles)
	guards := guard.New(identitySvc, memberships, m, log)
	dashboard := guard.NewDashboardResolver(identitySvc, memberships, cfg.SuperAdminPath)

	// Audit: durable store plus optional Kafka fan-out through a worker so a
	// slow broker never blocks a request.
	var auditLog audit.Store
	if db != nil {
		auditLog = auditstore.NewPostgres(db)
	} else {
		auditLog = auditstore.NewInMemory()
	}

	var worker *audit.Worker
	var sink audit.Sink
	if cfg.KafkaBrokers != "" {
		kafka, err := auditpublisher.NewKafka(strings.Split(cfg.KafkaBrokers, ","), cfg.KafkaAuditTopic)
		if err != nil {
			log.Error("kafka connection failed", "error", err)
			os.Exit(1)
		}
		defer kafka.Close()
		worker = audit.NewWorker(kafka, auditWorkerBuffer, log)
		sink = worker
	}
	auditor := audit.NewRecorder(auditLog, sink, m, log)

	// Tenancy: the agency -> client -> webinar tree.
	var stores tenancyservice.Stores
	if db != nil {
		stores = tenancyservice.Stores{
			Agencies:      agencystore.NewPostgres(db),
			Clients:       clientstore.NewPostgres(db),
			Webinars:      webinarstore.NewPostgres(db),
			Domains:       domainstore.NewPostgres(db),
			AllowedEmails: allowedemailstore.NewPostgres(db),
		}
	} else {
		stores = tenancyservice.Stores{
			Agencies:      agencystore.NewInMemory(),
			Clients:       clientstore.NewInMemory(),
			Webinars:      webinarstore.NewInMemory(),
			Domains:       domainstore.NewInMemory(),
			AllowedEmails: allowedemailstore.NewInMemory(),
		}
	}
	tenancySvc := tenancyservice.New(guards, stores, auditor, m, log)

	router := httptransport.New(httptransport.Deps{
		Identity:  identityhandler.New(identitySvc, log),
		Dashboard: authzhandler.New(dashboard, log),
		Tenancy:   tenancyhandler.New(tenancySvc, log),
		Sessions:  tokens,
		Metrics:   m,
		Logger:    log,
	})

	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if worker != nil {
		g.Go(func() error {
			if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
