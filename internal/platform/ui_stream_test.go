package platform

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"pulse/internal/messages"
	"pulse/internal/runtime"
	"pulse/internal/status"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withSession serves h with a fixed session id instead of the cookie store.
func withSession(sid string, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionCtxKey{}, sid)))
	})
}

// sseBody collects the lines of a streaming response.
type sseBody struct {
	mu    sync.Mutex
	lines []string
}

func (b *sseBody) fragments(id string) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []string
	for _, l := range b.lines {
		if strings.HasPrefix(l, "data:") && strings.Contains(l, `id="`+id+`"`) {
			out = append(out, l)
		}
	}
	return out
}

func (b *sseBody) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.Join(b.lines, "\n")
}

func openUIStream(t *testing.T, js jetstream.JetStream, sid string) *sseBody {
	t.Helper()
	sv := httptest.NewServer(withSession(sid, UIStream(js)))
	ctx, cancel := context.WithCancel(context.Background())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sv.URL, nil)
	require.NoError(t, err)
	resp, err := sv.Client().Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := &sseBody{}
	done := make(chan struct{})
	go func() {
		defer close(done)
		sc := bufio.NewScanner(resp.Body)
		sc.Buffer(make([]byte, 64*1024), 1024*1024)
		for sc.Scan() {
			body.mu.Lock()
			body.lines = append(body.lines, sc.Text())
			body.mu.Unlock()
		}
	}()
	t.Cleanup(func() {
		cancel()
		resp.Body.Close()
		<-done
		sv.Close()
	})
	return body
}

func publishLink(t *testing.T, js jetstream.JetStream, ns ...status.Notification) {
	t.Helper()
	pub := messages.NewPublisher(js)
	for _, n := range ns {
		require.NoError(t, pub.PublishEvent(context.Background(), messages.NewLinkStatusEvent("test", n)))
	}
}

func configure(t *testing.T, js jetstream.JetStream, sid, patch string) {
	t.Helper()
	_, err := runtime.NewSpinnerManager(js).Configure(context.Background(),
		*messages.NewSpinnerConfigureCommand(sid, json.RawMessage(patch)))
	require.NoError(t, err)
}

func TestUIStream_ReplaysLatestState(t *testing.T) {
	js := startJetStream(t)
	configure(t, js, "sid-1", `{"color":"#22c55e"}`)
	configure(t, js, "sid-2", `{"color":"#000000"}`)
	publishLink(t, js, status.NotifyConnecting, status.NotifyOpened)

	body := openUIStream(t, js, "sid-1")

	// initial badge, then one merge per replayed link event
	require.Eventually(t, func() bool {
		return len(body.fragments(status.CircleID)) == 3
	}, 5*time.Second, 20*time.Millisecond, body.String())

	badges := body.fragments(status.CircleID)
	assert.Contains(t, badges[0], status.ClassRed)
	assert.Contains(t, badges[1], status.ClassAmber)
	last := badges[2]
	assert.Contains(t, last, status.ClassGreen)
	assert.NotContains(t, last, status.ClassRed)
	assert.NotContains(t, last, status.ClassAmber)

	// stored config renders once; the replayed event is a duplicate
	spinners := body.fragments("spinner-slot")
	require.Len(t, spinners, 1)
	assert.Contains(t, spinners[0], `stroke="#22c55e"`)
	assert.NotContains(t, body.String(), "#000000")
}

func TestUIStream_LiveUpdates(t *testing.T) {
	js := startJetStream(t)
	body := openUIStream(t, js, "sid-1")

	require.Eventually(t, func() bool {
		return len(body.fragments("spinner-slot")) == 1
	}, 5*time.Second, 20*time.Millisecond, body.String())

	configure(t, js, "sid-2", `{"size":"10"}`)
	configure(t, js, "sid-1", `{"size":"80"}`)
	publishLink(t, js, status.NotifyClosed)

	require.Eventually(t, func() bool {
		return len(body.fragments("spinner-slot")) == 2 && len(body.fragments(status.CircleID)) == 2
	}, 5*time.Second, 20*time.Millisecond, body.String())

	spinners := body.fragments("spinner-slot")
	assert.Contains(t, spinners[1], `width="80"`)
	assert.NotContains(t, body.String(), `width="10"`)
	assert.Contains(t, body.fragments(status.CircleID)[1], status.ClassRed)
}

func TestIndexPage_RendersSessionConfig(t *testing.T) {
	js := startJetStream(t)
	configure(t, js, "sid-1", `{"color":"#22c55e","size":"80"}`)

	rec := httptest.NewRecorder()
	withSession("sid-1", IndexPage(js)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<loading-spinner color="#22c55e" size="80">`)

	rec = httptest.NewRecorder()
	withSession("sid-new", IndexPage(js)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Contains(t, rec.Body.String(), `<loading-spinner color="#f97316" size="50">`)
}

func TestScriptRoutes(t *testing.T) {
	js := startJetStream(t)
	router := NewRouter(js, *defaultHTTPServerCfg())

	for _, path := range []string{"/js/loading-spinner.js", "/js/status-indicator.js"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Header().Get("Content-Type"), "javascript", path)
		assert.NotEmpty(t, rec.Body.String(), path)
	}
}
