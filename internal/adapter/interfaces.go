// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides a client for the request pipeline server.
//
// The primary abstraction is [ServerAdapter], implemented over HTTP by
// [NewHTTPServerAdapter]. Non-2xx responses are decoded from the structured
// error body into a [*ResponseError] that wraps one of the sentinel errors
// defined in errors.go, so callers can use [errors.Is] (e.g. [ErrNotFound]
// for 404, [ErrUnauthorized] for 401) and still read the server's message,
// code and correlation id.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-request-pipeline/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines communication with the request pipeline server.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to all subsequent requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// GetServerVersion fetches the build metadata of the running server from
	// GET /api/version.
	GetServerVersion(ctx context.Context) (models.VersionResponse, error)
}
