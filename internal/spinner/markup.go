package spinner

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

const shadowStyle = `<style>` +
	`@keyframes spin{from{transform:rotate(0deg)}to{transform:rotate(360deg)}}` +
	`@keyframes reverse-spin{from{transform:rotate(0deg)}to{transform:rotate(-360deg)}}` +
	`:host{display:inline-block}` +
	`.spinner,.small-spinner{transform-origin:center}` +
	`.spinner{animation:spin 3s linear infinite}` +
	`.small-spinner{animation:reverse-spin 2s linear infinite}` +
	`</style>`

const svgTemplate = `<svg width="%[2]s" height="%[2]s" viewBox="0 0 50 50">` +
	`<circle class="spinner" cx="25" cy="25" r="20" fill="none" stroke-width="5" stroke="%[1]s" stroke-dasharray="94.2" stroke-dashoffset="0" stroke-linecap="round"/>` +
	`<circle class="small-spinner" cx="25" cy="25" r="10" fill="none" stroke-width="3" stroke="%[1]s" stroke-dasharray="47.1" stroke-dashoffset="0" stroke-linecap="round"/>` +
	`</svg>`

// HTML returns the full element markup for cfg. The output depends only on
// the resolved config.
func HTML(cfg Config) string {
	cfg = cfg.Resolved()
	color := templ.EscapeString(cfg.Color)
	size := templ.EscapeString(cfg.Size)
	return `<` + TagName + ` color="` + color + `" size="` + size + `">` +
		`<template shadowrootmode="open">` +
		shadowStyle +
		fmt.Sprintf(svgTemplate, color, size) +
		`</template>` +
		`</` + TagName + `>`
}

// Markup renders HTML(cfg) as a templ component.
func Markup(cfg Config) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, HTML(cfg))
		return err
	})
}
