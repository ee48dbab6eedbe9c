package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the layout of the
// config file. The same keys are used for JSON and YAML files.
type StructuredJSONConfig struct {
	App struct {
		Env          string `json:"env" yaml:"env"`
		Version      string `json:"version" yaml:"version"`
		TokenSignKey string `json:"token_sign_key" yaml:"token_sign_key"`
		TokenIssuer  string `json:"token_issuer" yaml:"token_issuer"`
	} `json:"app,omitempty" yaml:"app"`

	Server struct {
		HTTPAddress       string   `json:"http_address" yaml:"http_address"`
		BodyLimit         int64    `json:"body_limit" yaml:"body_limit"`
		ReadHeaderTimeout Duration `json:"read_header_timeout" yaml:"read_header_timeout"`
		ShutdownTimeout   Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
		RouteNotFound     bool     `json:"route_not_found" yaml:"route_not_found"`
	} `json:"server,omitempty" yaml:"server"`

	CORS struct {
		AllowedOrigins       []string `json:"allowed_origins" yaml:"allowed_origins"`
		AllowedMethods       []string `json:"allowed_methods" yaml:"allowed_methods"`
		AllowCredentials     *bool    `json:"allow_credentials" yaml:"allow_credentials"`
		OptionsSuccessStatus int      `json:"options_success_status" yaml:"options_success_status"`
		MaxAge               int      `json:"max_age" yaml:"max_age"`
	} `json:"cors,omitempty" yaml:"cors"`

	Log struct {
		Dir             string   `json:"dir" yaml:"dir"`
		MaxSizeMB       int      `json:"max_size_mb" yaml:"max_size_mb"`
		MaxBackups      int      `json:"max_backups" yaml:"max_backups"`
		MaxAgeDays      int      `json:"max_age_days" yaml:"max_age_days"`
		Compress        *bool    `json:"compress" yaml:"compress"`
		NoColor         bool     `json:"no_color" yaml:"no_color"`
		SensitiveFields []string `json:"sensitive_fields" yaml:"sensitive_fields"`
	} `json:"log,omitempty" yaml:"log"`
}

// parseJSON reads the config file. Files ending in .yaml or .yml are
// decoded as YAML, anything else as JSON.
func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	data, err := os.ReadFile(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a config file: %w", err)
	}

	var jsonCfg StructuredJSONConfig
	switch strings.ToLower(filepath.Ext(jsonFilePath)) {
	case ".yaml", ".yml":
		if err = yaml.Unmarshal(data, &jsonCfg); err != nil {
			return nil, fmt.Errorf("error decoding yaml configs: %w", err)
		}
	default:
		if err = json.Unmarshal(data, &jsonCfg); err != nil {
			return nil, fmt.Errorf("error decoding json configs: %w", err)
		}
	}

	cfg := &StructuredConfig{
		App: App{
			Env:          jsonCfg.App.Env,
			Version:      jsonCfg.App.Version,
			TokenSignKey: jsonCfg.App.TokenSignKey,
			TokenIssuer:  jsonCfg.App.TokenIssuer,
		},
		Server: Server{
			HTTPAddress:       jsonCfg.Server.HTTPAddress,
			BodyLimit:         jsonCfg.Server.BodyLimit,
			ReadHeaderTimeout: time.Duration(jsonCfg.Server.ReadHeaderTimeout),
			ShutdownTimeout:   time.Duration(jsonCfg.Server.ShutdownTimeout),
			RouteNotFound:     jsonCfg.Server.RouteNotFound,
		},
		CORS: CORS{
			AllowedOrigins:       jsonCfg.CORS.AllowedOrigins,
			AllowedMethods:       jsonCfg.CORS.AllowedMethods,
			AllowCredentials:     jsonCfg.CORS.AllowCredentials,
			OptionsSuccessStatus: jsonCfg.CORS.OptionsSuccessStatus,
			MaxAge:               jsonCfg.CORS.MaxAge,
		},
		Log: Log{
			Dir:             jsonCfg.Log.Dir,
			MaxSizeMB:       jsonCfg.Log.MaxSizeMB,
			MaxBackups:      jsonCfg.Log.MaxBackups,
			MaxAgeDays:      jsonCfg.Log.MaxAgeDays,
			Compress:        jsonCfg.Log.Compress,
			NoColor:         jsonCfg.Log.NoColor,
			SensitiveFields: jsonCfg.Log.SensitiveFields,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

// UnmarshalYAML accepts the same forms as UnmarshalJSON.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	if n, err := time.ParseDuration(s); err == nil {
		*d = Duration(n)
		return nil
	}
	var n int64
	if err := node.Decode(&n); err != nil {
		return fmt.Errorf("invalid duration %q", s)
	}
	*d = Duration(time.Duration(n))
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
