package config

import (
	"errors"
	"flag"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// stringList is a comma separated flag.Value.
type stringList []string

func (l *stringList) String() string {
	return strings.Join(*l, ",")
}

func (l *stringList) Set(s string) error {
	*l = nil
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			*l = append(*l, item)
		}
	}
	return nil
}

// parseFlags parses the configuration flags found in args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-env deployment environment (development, production, test)
//	-c/-config json or yaml file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-body-limit maximum request body size in bytes
//	-shutdown-timeout graceful shutdown timeout (e.g., "10s")
//	-route-not-found enable catch-all 404/405 responses
//	-cors-origins comma separated allowed origins
//	-log-dir directory of the rotating log files
//	-log-no-color disable console colors
func parseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress NetAddress
	var appEnv string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var bodyLimit int64
	var shutdownTimeout time.Duration
	var routeNotFound bool
	var corsOrigins stringList
	var logDir string
	var logNoColor bool

	fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&appEnv, "env", "", "Deployment environment")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON or YAML config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON or YAML config file path (alias)")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.Int64Var(&bodyLimit, "body-limit", 0, "Maximum request body size in bytes")
	fs.DurationVar(&shutdownTimeout, "shutdown-timeout", 0, "Graceful shutdown timeout (e.g., 10s)")
	fs.BoolVar(&routeNotFound, "route-not-found", false, "Enable catch-all 404/405 responses")
	fs.Var(&corsOrigins, "cors-origins", "Comma separated allowed origins")
	fs.StringVar(&logDir, "log-dir", "", "Log files directory")
	fs.BoolVar(&logNoColor, "log-no-color", false, "Disable console colors")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			Env:          appEnv,
			TokenSignKey: tokenSignKey,
			TokenIssuer:  tokenIssuer,
		},
		Server: Server{
			HTTPAddress:     serverAddress.String(),
			BodyLimit:       bodyLimit,
			ShutdownTimeout: shutdownTimeout,
			RouteNotFound:   routeNotFound,
		},
		CORS: CORS{
			AllowedOrigins: corsOrigins,
		},
		Log: Log{
			Dir:     logDir,
			NoColor: logNoColor,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// An empty host listens on all interfaces. Otherwise the host must be
// "localhost" or a valid IP address.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be between 1 and 65535")
	}

	if host != "" && host != "localhost" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
