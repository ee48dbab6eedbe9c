package http

import (
	"net/http"

	"github.com/MKhiriev/go-request-pipeline/internal/utils"
	"github.com/MKhiriev/go-request-pipeline/models"
	"github.com/go-chi/chi/v5"
)

// newRequestContext builds the request record for r.
func newRequestContext(r *http.Request, requestID string) *models.RequestContext {
	return &models.RequestContext{
		RequestID: requestID,
		Method:    r.Method,
		URL:       requestURL(r),
		ClientIP:  utils.ClientIP(r),
		UserAgent: r.UserAgent(),
		Header:    r.Header,
		Query:     r.URL.Query(),
	}
}

// requestContext returns the record installed by withRequestID. Requests
// that bypassed it get a fresh record without a correlation id.
func requestContext(r *http.Request) *models.RequestContext {
	if rc, ok := utils.GetRequestFromContext(r.Context()); ok {
		return rc
	}
	return newRequestContext(r, "")
}

// requestURL returns the request target as sent by the client.
func requestURL(r *http.Request) string {
	if r.RequestURI != "" {
		return r.RequestURI
	}
	return r.URL.RequestURI()
}

// routeParams returns the URL parameters matched by chi so far.
func routeParams(r *http.Request) map[string]any {
	params := map[string]any{}
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return params
	}
	for i, key := range rctx.URLParams.Keys {
		if i < len(rctx.URLParams.Values) {
			params[key] = rctx.URLParams.Values[i]
		}
	}
	return params
}
