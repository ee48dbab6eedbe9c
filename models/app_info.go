// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "runtime"

const unknownBuildValue = "N/A"

// AppInfo carries immutable metadata about the running process.
//
// Build values are injected by linker flags during CI/CD, the environment
// comes from configuration. AppInfo is served by the version endpoint and
// attached as "app" metadata to every error log record, so that a log line
// can be traced back to the release and deployment that produced it.
type AppInfo struct {
	env     string
	version string
	date    string
	commit  string
}

// NewAppInfo constructs [AppInfo]. Empty build values are reported as "N/A".
func NewAppInfo(env, version, date, commit string) AppInfo {
	return AppInfo{
		env:     env,
		version: orUnknown(version),
		date:    orUnknown(date),
		commit:  orUnknown(commit),
	}
}

// Env returns the deployment environment (e.g. "production").
func (a AppInfo) Env() string {
	return a.env
}

// Version returns the semantic version string of the build.
func (a AppInfo) Version() string {
	return a.version
}

// Date returns the build timestamp string.
func (a AppInfo) Date() string {
	return a.date
}

// Commit returns the source-control commit hash used for the build.
func (a AppInfo) Commit() string {
	return a.commit
}

// GoVersion returns the Go runtime version the binary was built with.
func (a AppInfo) GoVersion() string {
	return runtime.Version()
}

// VersionResponse converts the build values into the version endpoint body.
func (a AppInfo) VersionResponse() VersionResponse {
	return VersionResponse{
		Version: a.version,
		Date:    a.date,
		Commit:  a.commit,
	}
}

func orUnknown(v string) string {
	if v == "" {
		return unknownBuildValue
	}
	return v
}
