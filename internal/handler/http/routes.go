package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-request-pipeline/internal/app"
	"github.com/MKhiriev/go-request-pipeline/internal/apperr"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Init builds the router with the full request pipeline:
//
//	CORS -> request id -> performance log -> panic recovery -> body parsing
//	-> ingress log -> authentication -> routes
//
// Errors from any stage after the request id go through the error logger
// and then the terminal error handler.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(
		cors.Handler(h.corsOptions()),
		preflightStatus(h.cfg.CORS.OptionsSuccessStatus),
		h.withRequestID,
		h.withPerformanceLogging,
		h.withRecovery,
		h.withBody,
		h.withRequestLogging,
		h.withAuth,
	)

	router.Get("/api/version", h.Catch(h.getServerVersion))

	if h.cfg.Server.RouteNotFound {
		router.NotFound(h.Catch(h.routeNotFound))
		router.MethodNotAllowed(h.Catch(h.methodNotAllowed))
	}

	return router
}

func (h *Handler) corsOptions() cors.Options {
	return cors.Options{
		AllowedOrigins:     h.cfg.CORS.AllowedOrigins,
		AllowedMethods:     h.cfg.CORS.AllowedMethods,
		AllowedHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:     []string{requestIDHeader},
		AllowCredentials:   h.cfg.CORS.CredentialsAllowed(),
		MaxAge:             h.cfg.CORS.MaxAge,
		OptionsPassthrough: true,
	}
}

// preflightStatus ends CORS preflight requests with the given status. The
// cors handler passes them through so the status can be chosen here.
func preflightStatus(status int) func(http.Handler) http.Handler {
	if status == 0 {
		status = http.StatusOK
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.WriteHeader(status)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (h *Handler) routeNotFound(w http.ResponseWriter, r *http.Request) error {
	return apperr.New(r.Context(), fmt.Sprintf(app.MsgRouteNotFound, h.sanitizer.URL(requestURL(r))), http.StatusNotFound,
		apperr.WithCode(app.CodeRouteNotFound))
}

func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) error {
	return apperr.New(r.Context(), fmt.Sprintf(app.MsgMethodNotAllowed, r.Method, h.sanitizer.URL(requestURL(r))), http.StatusMethodNotAllowed,
		apperr.WithCode(app.CodeMethodNotAllowed))
}
