package util

import (
	"bytes"
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownHTML(t *testing.T) {
	fsys := fstest.MapFS{
		"doc.md":  {Data: []byte("# Title\n\n| a | b |\n|---|---|\n| 1 | 2 |\n")},
		"snip.go": {Data: []byte("package main\n")},
	}

	var buf bytes.Buffer
	require.NoError(t, MarkdownHTML("doc.md", fsys).Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), "<h1>Title</h1>")
	assert.Contains(t, buf.String(), "<table>")

	buf.Reset()
	require.NoError(t, MarkdownHTML("snip.go", fsys).Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), "<pre")
	assert.Contains(t, buf.String(), "package")
}

func TestMarkdownHTML_Missing(t *testing.T) {
	var buf bytes.Buffer
	err := MarkdownHTML("nope.md", fstest.MapFS{}).Render(context.Background(), &buf)
	assert.Error(t, err)
}
