// Command healthcheck probes a running request pipeline server through its
// version endpoint and exits non-zero when the server does not answer with
// a successful response. It reads the same configuration as the server.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/MKhiriev/go-request-pipeline/internal/adapter"
	"github.com/MKhiriev/go-request-pipeline/internal/config"
	"github.com/MKhiriev/go-request-pipeline/internal/logger"
)

const probeTimeout = 5 * time.Second

func main() {
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(1)
	}

	// Console only, the probe must not write into the server's log files.
	log := logger.NewLogger("healthcheck", config.Log{NoColor: cfg.Log.NoColor}, cfg.App.Env)

	server, err := adapter.NewHTTPServerAdapter(cfg.Server.HTTPAddress, probeTimeout, log)
	if err != nil {
		log.Error().Err(err).Msg("error creating server adapter")
		os.Exit(1)
	}

	if err = probe(context.Background(), server, log); err != nil {
		log.Error().Err(err).Msg("server is unhealthy")
		os.Exit(1)
	}
}

func probe(ctx context.Context, server adapter.ServerAdapter, log *logger.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	version, err := server.GetServerVersion(ctx)
	if err != nil {
		return err
	}

	log.Info().
		Str("version", version.Version).
		Str("commit", version.Commit).
		Msg("server is healthy")
	return nil
}
