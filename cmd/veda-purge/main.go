package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/veda-client/internal/pkg/infrastructure/storage"
)

const (
	appName string = "veda-purge"
)

// veda-purge removes individuals marked as deleted from the stub platform's database
func main() {
	appVersion := buildinfo.SourceVersion()

	ctx, log, cleanup := o11y.Init(context.Background(), appName, appVersion, "json")
	defer cleanup()

	cfg := storage.LoadConfiguration(ctx)
	if !cfg.Enabled() {
		log.Error("no database configured, set POSTGRES_HOST")
		os.Exit(1)
	}

	s, err := storage.NewPostgreSQLStore(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "err", err.Error())
		os.Exit(1)
	}
	defer s.Close()

	log.Debug("begin purge")

	purged, err := storage.PurgeDeleted(ctx, s)
	for _, uri := range purged {
		log.Debug("purged individual", slog.String("uri", uri))
	}
	if err != nil {
		log.Error("failed to purge deleted individuals", "err", err.Error(), "purged", len(purged))
		os.Exit(1)
	}

	if v, ok := s.(storage.Vacuumer); ok {
		log.Debug("vacuum")

		err = v.Vacuum(ctx)
		if err != nil {
			log.Error("failed to vacuum table", "err", err.Error())
			os.Exit(1)
		}
	}

	log.Info("done purging", slog.Int("total", len(purged)))
}
