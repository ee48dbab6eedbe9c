package main

import (
	"fmt"
	"os"

	"github.com/MKhiriev/go-request-pipeline/internal/config"
	"github.com/MKhiriev/go-request-pipeline/internal/handler/http"
	"github.com/MKhiriev/go-request-pipeline/internal/logger"
	"github.com/MKhiriev/go-request-pipeline/internal/server"
	"github.com/MKhiriev/go-request-pipeline/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(1)
	}

	appInfo := models.NewAppInfo(cfg.App.Env, firstNonEmpty(buildVersion, cfg.App.Version), buildDate, buildCommit)
	printBuildInfo(appInfo)

	log := logger.NewLogger("request-pipeline", cfg.Log, cfg.App.Env)
	defer func() {
		if err := log.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "error closing log files: %v\n", err)
		}
	}()

	log.Debug().Any("config", redactedConfig(*cfg)).Msg("received configs")

	handler := http.NewHandler(cfg, appInfo, log)

	srv, err := server.NewServer(handler.Init(), cfg.Server, log)
	if err != nil {
		log.Error().Err(err).Msg("error creating server")
		return
	}

	srv.RunServer()
}

func printBuildInfo(info models.AppInfo) {
	fmt.Printf("Build version: %s\n", info.Version())
	fmt.Printf("Build date: %s\n", info.Date())
	fmt.Printf("Build commit: %s\n", info.Commit())
}

// redactedConfig hides the token sign key before the config is logged.
func redactedConfig(cfg config.StructuredConfig) config.StructuredConfig {
	if cfg.App.TokenSignKey != "" {
		cfg.App.TokenSignKey = "[REDACTED]"
	}
	return cfg
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
