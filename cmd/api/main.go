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

	"eats-backend/graph"
	"eats-backend/internal/admin"
	"eats-backend/internal/app/orders"
	"eats-backend/internal/app/payments"
	"eats-backend/internal/app/restaurants"
	"eats-backend/internal/app/users"
	"eats-backend/internal/auth"
	"eats-backend/internal/config"
	"eats-backend/internal/logging"
	"eats-backend/internal/mail"
	"eats-backend/internal/storage/postgres"
	httptransport "eats-backend/internal/transport/http"
	"eats-backend/internal/uploads"

	"github.com/99designs/gqlgen/graphql/handler"
	"github.com/99designs/gqlgen/graphql/handler/extension"
	"github.com/99designs/gqlgen/graphql/handler/lru"
	"github.com/99designs/gqlgen/graphql/handler/transport"
	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/getsentry/sentry-go"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	log := logging.Setup(cfg.Log.Level)

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
		}); err != nil {
			log.Error("init sentry", "error", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	db, err := postgres.Open(cfg.Database.DSN)
	if err != nil {
		return err
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		return err
	}
	store := postgres.New(db)

	var sender interface {
		SendVerificationEmail(ctx context.Context, email, code string) bool
	} = mail.NewLogSender(log)
	if cfg.MailEnabled() {
		sender = mail.NewService(mail.NewClient(cfg.Mail.Domain, cfg.Mail.APIKey, cfg.Mail.FromEmail), log)
	} else {
		log.Warn("mailgun not configured, verification mail is logged only")
	}
	dispatcher := mail.NewDispatcher(sender, log, cfg.Mail.QueueSize, cfg.Mail.Workers)

	tokens := auth.NewJWT(cfg.JWT.PrivateKey, cfg.JWT.TTL)
	paymentService := payments.NewService(store, log)

	gqlSrv := handler.New(graph.NewExecutableSchema(graph.Config{
		Resolvers: &graph.Resolver{
			Users:    users.NewService(store, tokens, dispatcher, log),
			Catalog:  restaurants.NewService(store, log),
			Orders:   orders.NewService(store, log),
			Payments: paymentService,
		},
	}))

	gqlSrv.AddTransport(transport.Options{})
	gqlSrv.AddTransport(transport.GET{})
	gqlSrv.AddTransport(transport.POST{})

	gqlSrv.SetQueryCache(lru.New(1000))

	gqlSrv.Use(extension.Introspection{})
	gqlSrv.Use(extension.AutomaticPersistedQuery{
		Cache: lru.New(100),
	})

	mux := http.NewServeMux()
	mux.Handle("/", playground.Handler("GraphQL playground", "/query"))
	mux.Handle("/query", gqlSrv)

	if cfg.UploadsEnabled() {
		s3Cfg := uploads.Config{
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Bucket:    cfg.S3.Bucket,
			PublicURL: cfg.S3.PublicURL,
		}
		client, err := uploads.NewS3Client(ctx, s3Cfg)
		if err != nil {
			return err
		}
		mux.Handle("/uploads", uploads.NewHandler(client, s3Cfg, log))
	}

	authMw := httptransport.JWTAuthMiddleware{
		Tokens: tokens,
		Users:  store.Users(),
		Log:    log,
	}

	srv := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           authMw.Wrap(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	adminSrv := admin.NewServer(":"+cfg.Admin.Port, map[string]admin.HealthCheck{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	})

	go paymentService.RunSweeper(ctx, cfg.Promotion.SweepInterval)

	errs := make(chan error, 2)
	go func() {
		log.Info("admin server listening", "addr", adminSrv.BindAddress())
		errs <- adminSrv.Listen()
	}()
	go func() {
		log.Info("connect for GraphQL playground", "url", "http://localhost:"+cfg.HTTP.Port+"/")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errs <- err
			return
		}
		errs <- nil
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case runErr = <-errs:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown", "error", err)
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Error("mail dispatcher shutdown", "error", err)
	}
	if err := adminSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("admin shutdown", "error", err)
	}
	return runErr
}
