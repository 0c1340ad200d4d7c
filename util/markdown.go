package util

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	hl "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
)

// rendered documents, keyed by path
var mdCache sync.Map // map[string]string

var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		hl.NewHighlighting(hl.WithStyle("github")),
	),
)

// MarkdownHTML converts a Markdown file in fsys to embeddable HTML. Files
// without a .md extension are wrapped in a fenced block and highlighted as
// source. Output is memoised per path.
func MarkdownHTML(path string, fsys fs.FS) templ.Component {
	if v, ok := mdCache.Load(path); ok {
		return templ.Raw(v.(string))
	}

	src, err := fs.ReadFile(fsys, path)
	if err != nil {
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error { return err })
	}

	if lang := strings.TrimPrefix(filepath.Ext(path), "."); lang != "md" && lang != "" {
		src = append([]byte("```"+lang+"\n"), append(src, []byte("\n```")...)...)
	}

	var buf bytes.Buffer
	if err := md.Convert(src, &buf); err != nil {
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error { return err })
	}

	out := buf.String()
	mdCache.Store(path, out)
	return templ.Raw(out)
}
