// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Built-in defaults
//  2. Environment variables, including those loaded from a .env file
//  3. Command-line flags
//  4. JSON or YAML config file (chosen by the .yaml/.yml extension)
//
// The main entry point is [GetStructuredConfig].
package config
