package ui

import (
	"bytes"
	"context"
	"io/fs"
	"testing"

	"pulse/internal/spinner"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Index(spinner.Config{}).Render(context.Background(), &buf))

	out := buf.String()
	assert.Contains(t, out, `data-on-load="@get('/ui')"`)
	assert.Contains(t, out, `id="ws-status-circle"`)
	assert.Contains(t, out, `id="spinner-slot"`)
	assert.Contains(t, out, `<loading-spinner color="#f97316" size="50">`)
	assert.Contains(t, out, `name="_messageType" value="SpinnerConfigureCommand"`)
	assert.Contains(t, out, `type="color" name="color"`)
	assert.Contains(t, out, `id="event-log"`)
	assert.Contains(t, out, "<h2>Status badge</h2>")
	assert.Contains(t, out, `src="/js/loading-spinner.js"`)
	assert.Contains(t, out, `src="/js/status-indicator.js"`)
}

func TestIndex_SessionConfig(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Index(spinner.Config{Color: "#22c55e", Size: "80"}).Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), `<loading-spinner color="#22c55e" size="80">`)
}

func TestStaticFS(t *testing.T) {
	sub, err := fs.Sub(StaticFS, "static")
	require.NoError(t, err)
	_, err = fs.Stat(sub, "pulse.css")
	assert.NoError(t, err)
	assert.NotEmpty(t, FaviconSVG)
}
