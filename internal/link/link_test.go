package link_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	. "pulse/internal/link"
	"pulse/internal/status"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recorder struct {
	mu  sync.Mutex
	got []status.Status
}

func (r *recorder) record(s status.Status) {
	r.mu.Lock()
	r.got = append(r.got, s)
	r.mu.Unlock()
}

func (r *recorder) statuses() []status.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]status.Status(nil), r.got...)
}

var upgrader = websocket.Upgrader{}

// closingHandler accepts the connection and closes it normally.
func closingHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if !assert.NoError(t, err) {
			return
		}
		defer conn.Close()
		_ = conn.WriteMessage(websocket.TextMessage, []byte("hello"))
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"))
		// wait for the peer's close reply
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}
}

// holdingHandler keeps the connection until the peer goes away.
func holdingHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if !assert.NoError(t, err) {
			return
		}
		defer conn.Close()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}
}

func TestLink_NormalLifecycle(t *testing.T) {
	sv := httptest.NewServer(closingHandler(t))
	t.Cleanup(sv.Close)

	l := New(Config{Name: "upstream", URL: sv.URL})
	rec := &recorder{}
	l.Subscribe(rec.record)

	require.NoError(t, l.Run(context.Background()))
	assert.Equal(t, []status.Status{status.Connecting, status.Open, status.Closed}, rec.statuses())
	assert.Equal(t, status.Closed, l.Status())
}

func TestLink_DialFailure(t *testing.T) {
	sv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(sv.Close)

	l := New(Config{Name: "upstream", URL: sv.URL})
	rec := &recorder{}
	l.Subscribe(rec.record)

	err := l.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, websocket.ErrBadHandshake)
	assert.Equal(t, []status.Status{status.Connecting, status.Closed}, rec.statuses())
}

func TestLink_ContextCancel(t *testing.T) {
	sv := httptest.NewServer(holdingHandler(t))
	t.Cleanup(sv.Close)

	l := New(Config{Name: "upstream", URL: sv.URL})
	opened := make(chan struct{})
	var once sync.Once
	l.Subscribe(func(s status.Status) {
		if s == status.Open {
			once.Do(func() { close(opened) })
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- l.Run(ctx) }()

	select {
	case <-opened:
	case <-time.After(5 * time.Second):
		t.Fatal("link never opened")
	}
	cancel()

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("link did not stop")
	}
	assert.Equal(t, status.Closed, l.Status())
}

func TestLink_DrivesIndicator(t *testing.T) {
	sv := httptest.NewServer(closingHandler(t))
	t.Cleanup(sv.Close)

	l := New(Config{Name: "upstream", URL: sv.URL})
	circle, ping := status.NewBadgeNodes()
	ind := status.NewIndicator(circle, ping)
	detach := ind.Attach(l)
	defer detach()

	require.NoError(t, l.Run(context.Background()))
	assert.True(t, circle.HasClass(status.ClassRed))
	assert.False(t, ping.HasClass(status.ClassGreen))
}

func TestConfig_Validate(t *testing.T) {
	assert.ErrorIs(t, Config{Name: "a"}.Validate(), ErrNoURL)
	assert.Error(t, Config{Name: "a.b", URL: "ws://x"}.Validate())
	assert.NoError(t, Config{Name: "upstream", URL: "ws://x"}.Validate())
}
