package ui

import (
	"context"
	"embed"
	"io"

	"pulse/internal/messages"
	"pulse/internal/spinner"
	"pulse/internal/status"
	components "pulse/ui/components"
	"pulse/util"

	"github.com/a-h/templ"
)

//go:embed static
var StaticFS embed.FS

//go:embed docs
var DocsFS embed.FS

//go:embed favicon.svg
var FaviconSVG []byte

const datastarSrc = "https://cdn.jsdelivr.net/gh/starfederation/datastar@v1.0.0-beta.11/bundles/datastar.js"

// Index renders the page shell with the session's spinner config. The badge
// starts red; the /ui stream replaces both with live state once connected.
func Index(cfg spinner.Config) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		circle, ping := status.NewBadgeNodes()
		badge := status.NewIndicator(circle, ping).Badge()

		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="en"><head>`+
			`<meta charset="UTF-8"><meta name="viewport" content="width=device-width, initial-scale=1.0">`+
			`<title>pulse</title>`+
			`<link rel="icon" href="/favicon.svg" type="image/svg+xml">`+
			`<script src="https://cdn.tailwindcss.com"></script>`+
			`<script type="module" src="`+datastarSrc+`"></script>`+
			`<script type="module" src="`+spinner.ScriptPath+`"></script>`+
			`<script type="module" src="`+status.ScriptPath+`"></script>`+
			`<link rel="stylesheet" href="/static/pulse.css">`+
			`</head>`+
			`<body class="bg-gradient-to-br from-gray-900 to-gray-700 h-screen flex flex-col justify-center items-center" data-on-load="@get('/ui')">`); err != nil {
			return err
		}
		if err := badge.Render(ctx, w); err != nil {
			return err
		}
		if err := components.SpinnerSlot(spinner.Markup(cfg)).Render(ctx, w); err != nil {
			return err
		}
		for _, messageType := range messages.GetCommandTypes() {
			if err := components.CommandForm(messageType).Render(ctx, w); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `<details class="mt-6 w-2/3 text-gray-200"><summary class="cursor-pointer">Usage</summary><div class="usage">`); err != nil {
			return err
		}
		if err := util.MarkdownHTML("docs/usage.md", DocsFS).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</div></details>`); err != nil {
			return err
		}
		_, err := io.WriteString(w, `<div id="event-log" class="mt-6 w-2/3 max-h-48 overflow-y-auto"></div></body></html>`)
		return err
	})
}
