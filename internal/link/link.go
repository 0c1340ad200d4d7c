// Package link dials a websocket and reports its lifecycle as status
// notifications. A Link dials once; it does not reconnect.
package link

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"strings"
	"sync"
	"time"

	"pulse/internal/status"

	"github.com/gorilla/websocket"
)

// Config holds the link's dial settings.
type Config struct {
	Name             string
	URL              string
	Header           http.Header
	HandshakeTimeout time.Duration
}

// Link is a status.Source backed by one websocket connection.
type Link struct {
	cfg    Config
	hub    *status.Hub
	dialer *websocket.Dialer

	mu      sync.RWMutex
	current status.Status
}

// New returns a link that has not dialed yet.
func New(cfg Config) *Link {
	if cfg.HandshakeTimeout <= 0 {
		cfg.HandshakeTimeout = 10 * time.Second
	}
	return &Link{
		cfg: cfg,
		hub: status.NewHub(),
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: cfg.HandshakeTimeout,
		},
	}
}

// Name returns the configured link name.
func (l *Link) Name() string { return l.cfg.Name }

// Subscribe implements status.Source.
func (l *Link) Subscribe(fn func(status.Status)) func() {
	return l.hub.Subscribe(fn)
}

// Status returns the last emitted status, or "" before Run.
func (l *Link) Status() status.Status {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

func (l *Link) emit(n status.Notification) {
	s := status.StatusFor(n)
	l.mu.Lock()
	l.current = s
	l.mu.Unlock()
	l.hub.Publish(s)
}

// Run dials the link and blocks until the connection ends or ctx is done.
// It always emits connecting first and closed last.
func (l *Link) Run(ctx context.Context) error {
	l.emit(status.NotifyConnecting)

	wsURL := l.cfg.URL
	if strings.HasPrefix(wsURL, "http") {
		wsURL = "ws" + strings.TrimPrefix(wsURL, "http")
	}
	conn, resp, err := l.dialer.DialContext(ctx, wsURL, l.cfg.Header)
	if err != nil {
		l.emit(status.NotifyClosed)
		if resp != nil {
			dump, _ := httputil.DumpResponse(resp, false)
			return fmt.Errorf("dial %s failed with response[%s]: %w", wsURL, dump, err)
		}
		return fmt.Errorf("dial %s: %w", wsURL, err)
	}
	slog.Info("link opened", "link", l.cfg.Name, "url", wsURL)
	l.emit(status.NotifyOpened)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
			_ = conn.Close()
		case <-done:
		}
	}()

	readErr := l.readLoop(conn)
	_ = conn.Close()
	l.emit(status.NotifyClosed)
	slog.Info("link closed", "link", l.cfg.Name, "err", readErr)

	switch {
	case ctx.Err() != nil:
		return nil
	case websocket.IsCloseError(readErr, websocket.CloseNormalClosure, websocket.CloseGoingAway):
		return nil
	default:
		return fmt.Errorf("link %s: %w", l.cfg.Name, readErr)
	}
}

func (l *Link) readLoop(conn *websocket.Conn) error {
	for {
		if _, _, err := conn.NextReader(); err != nil {
			return err
		}
	}
}

// ErrNoURL is returned by Validate when the link has nowhere to dial.
var ErrNoURL = errors.New("link: url is required")

// Validate checks the config before dialing.
func (c Config) Validate() error {
	if c.URL == "" {
		return ErrNoURL
	}
	if c.Name == "" || strings.ContainsAny(c.Name, ". *>") {
		return fmt.Errorf("link: invalid name %q", c.Name)
	}
	return nil
}
