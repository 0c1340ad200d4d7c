package platform

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadAppConfig_Defaults(t *testing.T) {
	cfg := loadAppConfig(envMap(nil))

	assert.False(t, cfg.Flags.Headless)
	assert.False(t, cfg.Flags.NoLink)
	assert.Equal(t, 8080, cfg.HTTPSrvCfg.Port)
	assert.False(t, cfg.HTTPSrvCfg.EnableTLS)
	assert.True(t, cfg.NatsCfg.InProcess)
	assert.True(t, cfg.NatsCfg.JetStream)
	assert.Equal(t, "self", cfg.LinkCfg.Name)
	assert.Equal(t, "ws://localhost:8080/websocket", cfg.LinkCfg.URL)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.NoError(t, cfg.LinkCfg.Validate())
}

func TestLoadAppConfig_Env(t *testing.T) {
	cfg := loadAppConfig(envMap(map[string]string{
		"PULSE_HEADLESS":               "true",
		"PULSE_PORT":                   "9090",
		"PULSE_TLS":                    "1",
		"PULSE_NATS_STORE_DIR":         "/tmp/js",
		"PULSE_LINK_HANDSHAKE_TIMEOUT": "3s",
		"PULSE_LOG_LEVEL":              "debug",
	}))

	assert.True(t, cfg.Flags.Headless)
	assert.Equal(t, 9090, cfg.HTTPSrvCfg.Port)
	assert.True(t, cfg.HTTPSrvCfg.EnableTLS)
	assert.Equal(t, "/tmp/js", cfg.NatsCfg.StoreDir)
	assert.Equal(t, "wss://localhost:9090/websocket", cfg.LinkCfg.URL)
	assert.Equal(t, 3*time.Second, cfg.LinkCfg.HandshakeTimeout)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoadAppConfig_BadValuesKeepDefaults(t *testing.T) {
	cfg := loadAppConfig(envMap(map[string]string{
		"PULSE_PORT":                   "eighty",
		"PULSE_HEADLESS":               "maybe",
		"PULSE_LINK_HANDSHAKE_TIMEOUT": "soon",
		"PULSE_LOG_LEVEL":              "loud",
		"PULSE_LINK_URL":               "ws://upstream.example/ws",
	}))

	assert.Equal(t, 8080, cfg.HTTPSrvCfg.Port)
	assert.False(t, cfg.Flags.Headless)
	assert.Equal(t, 10*time.Second, cfg.LinkCfg.HandshakeTimeout)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "ws://upstream.example/ws", cfg.LinkCfg.URL)
}
