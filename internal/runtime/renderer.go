package runtime

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"pulse/util"

	"github.com/a-h/templ"
	datastar "github.com/starfederation/datastar/sdk/go"
)

// Msg is the part of a stream message a renderer reads. jetstream.Msg
// satisfies it.
type Msg interface {
	Subject() string
	Data() []byte
}

// SSE is the part of the datastar event generator renderers write to.
type SSE interface {
	MergeFragmentTempl(t templ.Component, opts ...datastar.MergeFragmentOption) error
}

// RenderFuncB: minimal signature – render given message into the SSE stream.
type RenderFuncB func(ctx context.Context, msg Msg, sse SSE) error

type Renderer struct {
	Pattern    string
	MatchFunc  func(string) bool
	RenderFunc RenderFuncB
}

// RendererSpec is a catalogue entry: a wildcard pattern and a factory that
// can build a concrete Renderer for a subscription subject matching the
// pattern, bound to one stream's View.
type RendererSpec struct {
	Pattern string
	Build   func(subj string, v *View) Renderer
}

// Specs is filled by renderers.go during init and treated as read-only.
var Specs []RendererSpec

// ForSubjects returns a slice of Renderers suited for the exact subjects the
// UI stream is subscribing to. It materialises a renderer for every
// (subject, spec) pair where the subject matches the spec's wildcard pattern.
// The fallback renderer is always appended as last element.
func ForSubjects(subjects []string, v *View) []Renderer {
	out := make([]Renderer, 0)
	seen := make(map[string]struct{})
	for _, s := range subjects {
		for _, spec := range Specs {
			if util.SubjectMatches(spec.Pattern, s) {
				key := spec.Pattern + "|" + s
				if _, ok := seen[key]; ok {
					continue
				}
				seen[key] = struct{}{}
				out = append(out, spec.Build(s, v))
			}
		}
	}
	// Ensure fallback renderer is last
	out = append(out, fallback)
	return out
}

// Dispatch hands msg to the first matching renderer.
func Dispatch(ctx context.Context, renderers []Renderer, msg Msg, sse SSE) error {
	for _, r := range renderers {
		if r.MatchFunc(msg.Subject()) {
			return r.RenderFunc(ctx, msg, sse)
		}
	}
	return nil
}

// newRenderer creates a renderer matching a specific subject pattern (with wildcards).
func newRenderer(pattern string, fn RenderFuncB) Renderer {
	return Renderer{
		Pattern:    pattern,
		MatchFunc:  func(subj string) bool { return util.SubjectMatches(pattern, subj) },
		RenderFunc: fn,
	}
}

// newTypedRenderer decodes the JSON payload into T and invokes handler.
func newTypedRenderer[T any](pattern string, handler func(context.Context, Msg, SSE, T) error) Renderer {
	return newRenderer(pattern, func(ctx context.Context, msg Msg, sse SSE) error {
		var p T
		dec := json.NewDecoder(bytes.NewReader(msg.Data()))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&p); err != nil {
			return fmt.Errorf("decode %T: %w", p, err)
		}
		return handler(ctx, msg, sse, p)
	})
}

// EventLogID is the element unmatched events are appended to.
const EventLogID = "event-log"

// fallback renderer renders any message as <pre> in the event log.
var fallback = newRenderer(
	">",
	func(ctx context.Context, msg Msg, sse SSE) error {
		frag := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
			_, err := fmt.Fprintf(w, "<pre>%s\n%s</pre>",
				templ.EscapeString(msg.Subject()), templ.EscapeString(string(msg.Data())))
			return err
		})
		return sse.MergeFragmentTempl(
			frag,
			datastar.WithSelectorID(EventLogID),
			datastar.WithMergeAppend(),
		)
	},
)
