package platform

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"pulse/internal/messages"
	"pulse/internal/runtime"
	"pulse/internal/spinner"
	"pulse/ui"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/xid"
)

// Health returns 200 OK.
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// IndexPage renders the page with the caller's stored spinner config. A
// missing bucket falls back to defaults so the page still loads.
func IndexPage(js jetstream.JetStream) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cfg spinner.Config
		kv, err := js.KeyValue(r.Context(), runtime.SpinnersBucket)
		if err == nil {
			cfg, err = runtime.LoadSpinnerConfig(r.Context(), kv, SessionID(r))
		}
		if err != nil {
			slog.Warn("index: spinner config unavailable", "sid", SessionID(r), "err", err)
		}
		templ.Handler(ui.Index(cfg)).ServeHTTP(w, r)
	}
}

func scriptHandler(src string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
		_, _ = io.WriteString(w, src)
	}
}

// SendCommand handles all typed command submissions. The message type comes
// from the _messageType field, or from the path after /command/.
func SendCommand(js jetstream.JetStream) http.HandlerFunc {
	publisher := messages.NewPublisher(js)

	return func(w http.ResponseWriter, r *http.Request) {
		data, err := parseCommandBody(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		messageType, _ := data["_messageType"].(string)
		if messageType == "" {
			messageType = chi.URLParam(r, "*")
		}
		if messageType == "" {
			http.Error(w, "missing _messageType", http.StatusBadRequest)
			return
		}

		// Remove meta fields
		delete(data, "_messageType")

		// Commands scoped to the caller's session get it from the middleware
		if messageType == "SpinnerConfigureCommand" {
			sessionID := SessionID(r)
			if sessionID == "" {
				http.Error(w, "missing session ID", http.StatusBadRequest)
				return
			}
			data["session_id"] = sessionID
		}

		cmd, err := messages.BuildCommand(messageType, data)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		// Validate before sending
		if err := cmd.Validate(); err != nil {
			http.Error(w, fmt.Sprintf("validation error: %v", err), http.StatusBadRequest)
			return
		}

		if err := publisher.PublishCommand(r.Context(), cmd); err != nil {
			http.Error(w, fmt.Sprintf("publish error: %v", err), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status": "sent",
			"type":   messageType,
		})
	}
}

// parseCommandBody supports JSON, multipart/form-data and urlencoded bodies.
func parseCommandBody(r *http.Request) (map[string]any, error) {
	var data map[string]any
	contentType := r.Header.Get("Content-Type")
	switch {
	case strings.Contains(contentType, "application/json"):
		if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
			return nil, fmt.Errorf("invalid JSON")
		}
		if data == nil {
			data = map[string]any{}
		}
		return data, nil
	case strings.Contains(contentType, "multipart/form-data"):
		// The constant 10 << 20 limits the total memory used for parts to 10MB.
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			return nil, fmt.Errorf("invalid multipart form data")
		}
	default:
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("invalid form data")
		}
	}
	data = make(map[string]any, len(r.Form))
	for key, values := range r.Form {
		if len(values) == 1 {
			data[key] = values[0]
		} else {
			data[key] = values
		}
	}
	return data, nil
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// WebsocketHandler accepts websocket clients and holds each connection until
// the peer closes it. Incoming text frames are logged and discarded.
func WebsocketHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Warn("websocket upgrade failed", "err", err)
			return
		}
		connID := xid.New().String()
		log := slog.With("conn", connID, "remote", r.RemoteAddr)
		log.Info("websocket opened")
		defer conn.Close()

		done := make(chan struct{})
		defer close(done)
		go func() {
			select {
			case <-r.Context().Done():
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
					time.Now().Add(time.Second))
				_ = conn.Close()
			case <-done:
			}
		}()

		for {
			mt, data, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					log.Warn("websocket closed unexpectedly", "err", err)
				} else {
					log.Info("websocket closed")
				}
				return
			}
			if mt == websocket.TextMessage {
				log.Debug("websocket message", "bytes", len(data))
			}
		}
	}
}
