package platform

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"pulse/internal/link"

	"github.com/joho/godotenv"
)

// FlagsConfig holds all boolean or string flags for the app.
type FlagsConfig struct {
	// Headless disables the HTTP server when true.
	Headless bool
	// NoLink skips dialing the monitored websocket.
	NoLink bool
}

// AppConfig contains the configuration for the app.
type AppConfig struct {
	Flags      *FlagsConfig
	NatsCfg    *EmbeddedServerConfig
	HTTPSrvCfg *HTTPServerConfig
	LinkCfg    *link.Config
	LogLevel   slog.Level
}

// LoadAppConfig loads an optional .env file, then builds the AppConfig from
// defaults overlaid with PULSE_* environment variables.
func LoadAppConfig() *AppConfig {
	_ = godotenv.Load() // .env is optional
	return loadAppConfig(os.Getenv)
}

func loadAppConfig(getenv func(string) string) *AppConfig {
	cfg := &AppConfig{
		Flags:      defaultFlagsCfg(),
		NatsCfg:    defaultNatsCfg(),
		HTTPSrvCfg: defaultHTTPServerCfg(),
		LogLevel:   slog.LevelInfo,
	}

	env := envReader{getenv: getenv}
	cfg.Flags.Headless = env.bool("PULSE_HEADLESS", cfg.Flags.Headless)
	cfg.Flags.NoLink = env.bool("PULSE_NO_LINK", cfg.Flags.NoLink)

	cfg.HTTPSrvCfg.Port = env.int("PULSE_PORT", cfg.HTTPSrvCfg.Port)
	cfg.HTTPSrvCfg.EnableTLS = env.bool("PULSE_TLS", cfg.HTTPSrvCfg.EnableTLS)
	cfg.HTTPSrvCfg.CertFile = env.str("PULSE_TLS_CERT", cfg.HTTPSrvCfg.CertFile)
	cfg.HTTPSrvCfg.KeyFile = env.str("PULSE_TLS_KEY", cfg.HTTPSrvCfg.KeyFile)
	cfg.HTTPSrvCfg.SessionKey = env.str("PULSE_SESSION_KEY", cfg.HTTPSrvCfg.SessionKey)

	cfg.NatsCfg.InProcess = env.bool("PULSE_NATS_IN_PROCESS", cfg.NatsCfg.InProcess)
	cfg.NatsCfg.StoreDir = env.str("PULSE_NATS_STORE_DIR", cfg.NatsCfg.StoreDir)
	cfg.NatsCfg.LeafNodeURL = env.str("PULSE_NATS_LEAF_URL", cfg.NatsCfg.LeafNodeURL)
	cfg.NatsCfg.LeafNodeCreds = env.str("PULSE_NATS_LEAF_CREDS", cfg.NatsCfg.LeafNodeCreds)

	cfg.LinkCfg = defaultLinkCfg(cfg.HTTPSrvCfg)
	cfg.LinkCfg.Name = env.str("PULSE_LINK_NAME", cfg.LinkCfg.Name)
	cfg.LinkCfg.URL = env.str("PULSE_LINK_URL", cfg.LinkCfg.URL)
	cfg.LinkCfg.HandshakeTimeout = env.duration("PULSE_LINK_HANDSHAKE_TIMEOUT", cfg.LinkCfg.HandshakeTimeout)

	if lvl := getenv("PULSE_LOG_LEVEL"); lvl != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(lvl)); err != nil {
			slog.Warn("invalid PULSE_LOG_LEVEL, using info", "value", lvl)
			cfg.LogLevel = slog.LevelInfo
		}
	}
	return cfg
}

// defaultFlagsCfg returns the default FlagsConfig.
func defaultFlagsCfg() *FlagsConfig {
	return &FlagsConfig{
		Headless: false,
		NoLink:   false,
	}
}

// defaultHTTPServerCfg returns sane defaults for the HTTP server.
func defaultHTTPServerCfg() *HTTPServerConfig {
	return &HTTPServerConfig{
		Port:         8080,
		ReadTimeout:  -1,
		WriteTimeout: -1,
		IdleTimeout:  -1,
		EnableTLS:    false,
		CertFile:     "./local_certs/localhost+2.pem",
		KeyFile:      "./local_certs/localhost+2-key.pem",
		SessionKey:   "very-secret-key-change-me",
	}
}

// defaultNatsCfg returns the default EmbeddedServerConfig.
func defaultNatsCfg() *EmbeddedServerConfig {
	return &EmbeddedServerConfig{
		InProcess:       true,
		EnableLogging:   true,
		JetStream:       true,
		JetStreamDomain: "",
		StoreDir:        "./store/js",
	}
}

// defaultLinkCfg points the link at this server's own websocket endpoint.
func defaultLinkCfg(http *HTTPServerConfig) *link.Config {
	scheme := "ws"
	if http.EnableTLS {
		scheme = "wss"
	}
	return &link.Config{
		Name:             "self",
		URL:              scheme + "://localhost:" + strconv.Itoa(http.Port) + "/websocket",
		HandshakeTimeout: 10 * time.Second,
	}
}

type envReader struct {
	getenv func(string) string
}

func (e envReader) str(key, def string) string {
	if v := e.getenv(key); v != "" {
		return v
	}
	return def
}

func (e envReader) bool(key string, def bool) bool {
	switch strings.ToLower(e.getenv(key)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return def
	}
}

func (e envReader) int(key string, def int) int {
	v := e.getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer in environment", "key", key, "value", v)
		return def
	}
	return n
}

func (e envReader) duration(key string, def time.Duration) time.Duration {
	v := e.getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("invalid duration in environment", "key", key, "value", v)
		return def
	}
	return d
}
