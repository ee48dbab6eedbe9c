package http

import (
	"github.com/MKhiriev/go-request-pipeline/internal/config"
	"github.com/MKhiriev/go-request-pipeline/internal/logger"
	"github.com/MKhiriev/go-request-pipeline/internal/sanitizer"
	"github.com/MKhiriev/go-request-pipeline/internal/utils"
	"github.com/MKhiriev/go-request-pipeline/models"
)

type Handler struct {
	cfg     *config.StructuredConfig
	appInfo models.AppInfo

	requestIDs *utils.RequestIDGenerator
	sanitizer  *sanitizer.Sanitizer

	// errors is the composed error pipeline: the error logger followed by
	// the terminal handler.
	errors ErrorHandler

	logger *logger.Logger
}

func NewHandler(cfg *config.StructuredConfig, appInfo models.AppInfo, logger *logger.Logger) *Handler {
	h := &Handler{
		cfg:        cfg,
		appInfo:    appInfo,
		requestIDs: utils.NewRequestIDGenerator(nil),
		sanitizer:  sanitizer.New(cfg.Log.SensitiveFields...),
		logger:     logger,
	}
	h.errors = ChainErrors(ErrorHandlerFunc(h.handleError), h.logErrors)

	logger.Info().Msg("http handler created")
	return h
}
