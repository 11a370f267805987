package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-grpc-address grpc health server address in format [host]:[port]
//	-d database DSN
//	-r redis URL of the session store
//	-c/-config json file path with configs
//	-session-sign-key session cookie signing key
//	-session-issuer session cookie issuer name
//	-session-ttl session lifetime (e.g., "336h")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-mailer-url e-mail webhook URL
//	-mailer-secret e-mail webhook shared secret
//	-mailer-timeout e-mail webhook timeout (e.g., "10s")
//	-min-password-length minimum password length
//	-code-ttl recovery code lifetime (e.g., "15m")
//	-log-level minimum log level (debug, info, warn, error)
func ParseFlags() *StructuredConfig {
	var serverAddress, grpcServerAddress NetAddress
	var databaseDSN string
	var redisURL string
	var jsonConfigPath string
	var sessionSignKey string
	var sessionIssuer string
	var sessionTTL time.Duration
	var requestTimeout time.Duration
	var mailerURL string
	var mailerSecret string
	var mailerTimeout time.Duration
	var minPasswordLength int
	var codeTTL time.Duration
	var logLevel string

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.Var(&grpcServerAddress, "grpc-address", "Net grpc server address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&redisURL, "r", "", "Redis URL")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&sessionSignKey, "session-sign-key", "", "Session signing key")
	flag.StringVar(&sessionIssuer, "session-issuer", "", "Session issuer")
	flag.DurationVar(&sessionTTL, "session-ttl", 0, "Session lifetime (e.g., 336h)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&mailerURL, "mailer-url", "", "E-mail webhook URL")
	flag.StringVar(&mailerSecret, "mailer-secret", "", "E-mail webhook secret")
	flag.DurationVar(&mailerTimeout, "mailer-timeout", 0, "E-mail webhook timeout (e.g., 10s)")
	flag.IntVar(&minPasswordLength, "min-password-length", 0, "Minimum password length")
	flag.DurationVar(&codeTTL, "code-ttl", 0, "Recovery code lifetime (e.g., 15m)")
	flag.StringVar(&logLevel, "log-level", "", "Minimum log level")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			LogLevel: logLevel,
		},
		Auth: Auth{
			SessionSignKey:    sessionSignKey,
			SessionIssuer:     sessionIssuer,
			SessionTTL:        sessionTTL,
			MinPasswordLength: minPasswordLength,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			Redis: Redis{
				URL: redisURL,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			GRPCAddress:    grpcServerAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Mailer: Mailer{
			WebhookURL:    mailerURL,
			WebhookSecret: mailerSecret,
			Timeout:       mailerTimeout,
		},
		Recovery: Recovery{
			CodeTTL: codeTTL,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns the address as host:port, or "" when nothing was set so
// that the flag layer does not override env or JSON values.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses host:port. The host may be empty (all interfaces), "localhost"
// or a literal IP address.
func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return err
	}
	if port < 1 || port > 65535 {
		return errors.New("port number is a positive integer up to 65535")
	}

	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}
