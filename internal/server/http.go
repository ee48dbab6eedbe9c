package server

import (
	"context"
	"errors"
	stdlog "log"
	"net"
	"net/http"

	"github.com/MKhiriev/go-request-pipeline/internal/config"
	"github.com/MKhiriev/go-request-pipeline/internal/logger"
)

type httpServer struct {
	server *http.Server
	logger *logger.Logger
}

func newHTTPServer(handler http.Handler, cfg config.Server, logger *logger.Logger) *httpServer {
	serverLogger := logger.With().Str("component", "http.Server").Logger()

	return &httpServer{
		server: &http.Server{
			Addr:              cfg.HTTPAddress,
			Handler:           handler,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
			ErrorLog:          stdlog.New(&serverLogger, "", 0),
		},
		logger: logger,
	}
}

// listen binds the configured address.
func (h *httpServer) listen(ctx context.Context) (net.Listener, error) {
	var lc net.ListenConfig
	return lc.Listen(ctx, "tcp", h.server.Addr)
}

// serve blocks until the server is shut down. A regular shutdown is not an
// error.
func (h *httpServer) serve(ln net.Listener) error {
	h.logger.Info().Str("address", ln.Addr().String()).Msg("Launching HTTP server")
	if err := h.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// shutdown stops accepting connections and waits for in-flight requests
// until ctx expires, then closes whatever is left.
func (h *httpServer) shutdown(ctx context.Context) error {
	if err := h.server.Shutdown(ctx); err != nil {
		h.logger.Warn().Err(err).Msg("HTTP server did not drain in time, closing connections")
		return errors.Join(err, h.server.Close())
	}
	return nil
}
