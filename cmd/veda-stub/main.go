package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/veda-client/internal/pkg/application/authz"
	"github.com/diwise/veda-client/internal/pkg/application/platform"
	"github.com/diwise/veda-client/internal/pkg/application/subscriptions"
	"github.com/diwise/veda-client/internal/pkg/infrastructure/router"
	"github.com/diwise/veda-client/internal/pkg/infrastructure/storage"
	api "github.com/diwise/veda-client/internal/pkg/presentation/api/veda"
)

const serviceName string = "veda-stub"

func main() {
	ctx, flags := parseExternalConfig(context.Background(), DefaultFlags())

	serviceVersion := buildinfo.SourceVersion()
	ctx, logger, cleanup := o11y.Init(ctx, serviceName, serviceVersion, flags[logFormat])
	defer cleanup()

	usersConfig, err := os.Open(flags[usersConfigPath])
	if err != nil {
		fatal(ctx, "failed to open users configuration", err)
	}

	opaConfig, err := os.Open(flags[policyPath])
	if err != nil {
		fatal(ctx, "failed to open authz policies", err)
	}

	cfg := &AppConfig{
		usersConfig: usersConfig,
		opaConfig:   opaConfig,
		storage:     storage.LoadConfiguration(ctx),
	}

	handler, shutdown, err := initialize(ctx, flags, cfg)
	if err != nil {
		fatal(ctx, "failed to initialize service", err)
	}
	defer shutdown()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:    net.JoinHostPort(flags[listenAddress], flags[servicePort]),
		Handler: handler,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	shutdownComplete := make(chan struct{})

	go func() {
		defer close(shutdownComplete)

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shut down gracefully", "err", err.Error())
		}
	}()

	logger.Info("starting to listen for connections", "port", flags[servicePort], "version", serviceVersion)

	err = srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		fatal(ctx, "failed to listen for connections", err)
	}

	// handlers may still report changes until the server has shut down completely
	<-shutdownComplete

	logger.Info("shutting down")
}

func initialize(ctx context.Context, flags FlagMap, cfg *AppConfig) (http.Handler, func(), error) {
	logger := logging.GetFromContext(ctx)

	defer cfg.usersConfig.Close()
	defer cfg.opaConfig.Close()

	platformConfig, err := platform.LoadConfiguration(cfg.usersConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load users configuration: %w", err)
	}

	authorizer, err := authz.NewAuthorizer(ctx, cfg.opaConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to compile authz policies: %w", err)
	}

	var store storage.Store

	if cfg.storage.Enabled() {
		store, err = storage.NewPostgreSQLStore(ctx, cfg.storage)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
	} else {
		logger.Info("no database configured, individuals will be kept in memory")
		store = storage.NewMemoryStore()
	}

	var notifier subscriptions.Notifier
	if flags[notifierEndpoint] != "" {
		notifier, err = subscriptions.NewNotifier(ctx, flags[notifierEndpoint])
		if err != nil {
			store.Close()
			return nil, nil, err
		}
		err = notifier.Start()
		if err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("failed to start notifier: %w", err)
		}
	}

	app, err := newPlatform(ctx, *platformConfig, store, authorizer, notifier)
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	r := router.New(serviceName, logger)

	err = api.RegisterHandlers(ctx, r, app)
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	shutdown := func() {
		if notifier != nil {
			notifier.Stop()
		}
		store.Close()
	}

	return r, shutdown, nil
}

func newPlatform(ctx context.Context, cfg platform.Config, store storage.Store, authorizer authz.Authorizer, notifier subscriptions.Notifier) (platform.PlatformAPI, error) {
	if notifier != nil {
		return platform.New(ctx, cfg, store, authorizer, platform.WithNotifier(notifier))
	}
	return platform.New(ctx, cfg, store, authorizer)
}

func fatal(ctx context.Context, msg string, err error) {
	logger := logging.GetFromContext(ctx)
	logger.Error(msg, "err", err.Error())
	os.Exit(1)
}
