package utils

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
)

// WriteJSON serializes data to JSON and writes it to the HTTP response with
// the given status code.
//
// The "Content-Type" header is set to "application/json". If marshaling
// fails, nothing but a plain 500 is written and a wrapped error is returned,
// so the caller can log the failure; the response is never left empty.
//
// Example usage:
//
//	utils.WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// ClientIP returns the host part of r.RemoteAddr.
//
// When the address carries no port (e.g. it was rewritten by a proxy-aware
// middleware), it is returned unchanged.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
