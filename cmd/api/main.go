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

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Vare321/-AIS-of-the-CTP-Insurance-Company/internal/core"
	transporthttp "github.com/Vare321/-AIS-of-the-CTP-Insurance-Company/internal/http"
	"github.com/Vare321/-AIS-of-the-CTP-Insurance-Company/internal/http/handlers"
	"github.com/Vare321/-AIS-of-the-CTP-Insurance-Company/internal/http/health"
	"github.com/Vare321/-AIS-of-the-CTP-Insurance-Company/internal/jobs"
	"github.com/Vare321/-AIS-of-the-CTP-Insurance-Company/internal/middleware"
	"github.com/Vare321/-AIS-of-the-CTP-Insurance-Company/internal/notify"
	"github.com/Vare321/-AIS-of-the-CTP-Insurance-Company/internal/platform/config"
	"github.com/Vare321/-AIS-of-the-CTP-Insurance-Company/internal/platform/logging"
	"github.com/Vare321/-AIS-of-the-CTP-Insurance-Company/internal/store/dynamo"
	"github.com/Vare321/-AIS-of-the-CTP-Insurance-Company/internal/store/mongo"
)

type repos struct {
	clients  core.ClientRepo
	vehicles core.VehicleRepo
	policies core.PolicyRepo
}

func main() {
	cfg := config.MustLoad()
	log := logging.New(cfg.Env)
	addr := fmt.Sprintf(":%s", cfg.Port)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("starting ctp-insurance API", "addr", addr, "env", cfg.Env, "db", cfg.DBType)

	repos, pinger, cleanup, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open store", "err", err)
		os.Exit(1)
	}
	defer cleanup()

	// Services
	quoteSvc := core.NewQuoteService()
	clientSvc := core.NewClientService(repos.clients, repos.vehicles)
	vehicleSvc := core.NewVehicleService(repos.vehicles, repos.clients, repos.policies)
	policySvc := core.NewPolicyService(repos.policies, repos.vehicles)
	statsSvc := core.NewStatsService(repos.policies)

	// Expiry scan worker
	expiryWorker := jobs.NewExpiryWorker(
		repos.policies,
		notify.NewLogNotifier(log),
		time.Duration(cfg.ExpiryWindowDays)*24*time.Hour,
		time.Duration(cfg.WorkerIntervalSec)*time.Second,
		log,
	)
	go expiryWorker.Start(ctx)

	// Router
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(time.Duration(cfg.HTTPRequestTimeoutSec) * time.Second))

	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.LimitRequestBody(middleware.MaxBodySize))

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPM, time.Minute)
	rateLimiter.StartWithContext(ctx)
	r.Use(rateLimiter.Middleware)

	r.Use(middleware.SimpleAPIKey(cfg.APIKey))

	r.Mount("/", health.New(log, pinger, time.Duration(cfg.MongoOpTimeoutMs)*time.Millisecond))

	api := transporthttp.NewRouter(transporthttp.Deps{
		Mounts: []handlers.Mountable{
			handlers.NewQuoteHandler(quoteSvc, log),
			handlers.NewClientHandler(clientSvc, log),
			handlers.NewVehicleHandler(vehicleSvc, log),
			handlers.NewPolicyHandler(policySvc, log),
			handlers.NewStatsHandler(statsSvc, log),
		},
	})
	r.Mount("/api/v1", api)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTPReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTPWriteTimeoutSec) * time.Second,
		IdleTimeout:  time.Duration(cfg.HTTPIdleTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		log.Error("server failed", "err", err)
		os.Exit(1)
	case <-ctx.Done():
		log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "err", err)
	}
}

// openStore connects to the configured backend and returns repository
// implementations plus a readiness pinger.
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (repos, health.Pinger, func(), error) {
	switch cfg.DBType {
	case "dynamodb":
		client, err := dynamo.NewClient(ctx, dynamo.Config{
			Region:          cfg.AWSRegion,
			Endpoint:        cfg.DynamoDBEndpoint,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		})
		if err != nil {
			return repos{}, nil, nil, err
		}
		if err := dynamo.EnsureTables(ctx, client.DB, log); err != nil {
			return repos{}, nil, nil, err
		}
		return repos{
			clients:  dynamo.NewClientRepo(client.DB),
			vehicles: dynamo.NewVehicleRepo(client.DB),
			policies: dynamo.NewPolicyRepo(client.DB),
		}, client, func() {}, nil

	case "mongo":
		client, err := mongo.NewClient(cfg)
		if err != nil {
			return repos{}, nil, nil, err
		}
		if err := mongo.EnsureIndexes(ctx, client.DB); err != nil {
			_ = client.Close(context.Background())
			return repos{}, nil, nil, err
		}
		opTimeout := time.Duration(cfg.MongoOpTimeoutMs) * time.Millisecond
		return repos{
				clients:  mongo.NewClientRepo(client.DB, opTimeout),
				vehicles: mongo.NewVehicleRepo(client.DB, opTimeout),
				policies: mongo.NewPolicyRepo(client.DB, opTimeout),
			}, client, func() {
				_ = client.Close(context.Background())
			}, nil

	default:
		return repos{}, nil, nil, fmt.Errorf("unknown DB_TYPE %q", cfg.DBType)
	}
}
