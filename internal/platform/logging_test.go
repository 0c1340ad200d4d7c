package platform

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNATSServerLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewNATSServerLogger(newJSONLogger(&buf, slog.LevelInfo))

	l.Noticef("dropped at info %d", 1)
	assert.Zero(t, buf.Len())

	l.Fatalf("store %s unusable", "js")
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "ERROR", rec["level"])
	assert.Equal(t, "store js unusable", rec["msg"])
	assert.Equal(t, "fatal", rec["nats_level"])
	assert.Equal(t, "nats", rec["component"])
}
