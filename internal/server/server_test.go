package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/sardine/pkg/cache"
	"github.com/matzehuels/sardine/pkg/observability"
	"github.com/matzehuels/sardine/pkg/pipeline"
	"github.com/matzehuels/sardine/pkg/store"
)

const squareSite = `{
  "name": "square",
  "boundary": [[0, 0], [6000, 0], [6000, 6000], [0, 6000]],
  "access_points": [{"location": [3000, 0]}]
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	runner := pipeline.NewRunner(cache.NewNullCache(), cache.NewScopedKeyer(nil, "api:"), nil)
	ts := httptest.NewServer(New(Config{Runner: runner, Store: store.NewMemoryStore()}))
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, rd)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp := do(t, http.MethodGet, ts.URL+"/healthz", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decode[healthResponse](t, resp).Status)
}

func TestValidate(t *testing.T) {
	ts := newTestServer(t)

	t.Run("valid", func(t *testing.T) {
		resp := do(t, http.MethodPost, ts.URL+"/v1/validate", squareSite)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		got := decode[validateResponse](t, resp)
		assert.True(t, got.Valid, got.Message)
		assert.Equal(t, 4, got.UsableEdges)
		require.Len(t, got.AccessPoints, 1)
		assert.InDelta(t, 1, got.AccessPoints[0].Direction[1], 1e-9, "access should point into the lot")
	})

	t.Run("self-intersecting", func(t *testing.T) {
		crossed := `{"boundary": [[0, 0], [100, 0], [100, 100], [50, -50], [0, 100]]}`
		resp := do(t, http.MethodPost, ts.URL+"/v1/validate", crossed)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		got := decode[validateResponse](t, resp)
		assert.False(t, got.Valid)
		assert.Contains(t, got.Message, "self-intersect")
	})

	t.Run("malformed", func(t *testing.T) {
		resp := do(t, http.MethodPost, ts.URL+"/v1/validate", `{"boundary": [[0, 0]]}`)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Equal(t, "INVALID_FORMAT", string(decode[errorBody](t, resp).Error.Code))
	})
}

func TestSolveAndLotLifecycle(t *testing.T) {
	ts := newTestServer(t)

	resp := do(t, http.MethodPost, ts.URL+"/v1/solve", squareSite)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	solved := decode[solveResponse](t, resp)
	require.NotEmpty(t, solved.ID)
	assert.Equal(t, "/v1/lots/"+solved.ID, resp.Header.Get("Location"))
	assert.Positive(t, solved.Stats.Spots)
	assert.Contains(t, string(solved.Lot), `"spots"`)

	lotURL := ts.URL + "/v1/lots/" + solved.ID

	resp = do(t, http.MethodGet, lotURL, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	resp = do(t, http.MethodGet, lotURL+"/render?format=svg&width=640&labels=true", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `width="640"`)

	resp = do(t, http.MethodGet, ts.URL+"/v1/lots", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[listResponse](t, resp)
	require.Len(t, list.Lots, 1)
	assert.Equal(t, solved.ID, list.Lots[0].ID)
	assert.Equal(t, "square", list.Lots[0].Name)

	resp = do(t, http.MethodDelete, lotURL, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodGet, lotURL, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", string(decode[errorBody](t, resp).Error.Code))
}

func TestSolveArtifact(t *testing.T) {
	ts := newTestServer(t)

	resp := do(t, http.MethodPost, ts.URL+"/v1/solve?format=dot", squareSite)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Lot-ID"))
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, strings.HasPrefix(string(body), "graph roads"), "body = %.40q", body)
}

func TestSolveErrors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name   string
		url    string
		body   string
		status int
		code   string
	}{
		{"open boundary", "/v1/solve", `{"boundary": [[0, 0], [6000, 0], [6000, 6000]], "closed": false}`, http.StatusUnprocessableEntity, "INVALID_BOUNDARY"},
		{"bad settings", "/v1/solve", `{"boundary": [[0, 0], [6000, 0], [6000, 6000]], "settings": {"spot_width": -1}}`, http.StatusUnprocessableEntity, "INVALID_SETTINGS"},
		{"unknown field", "/v1/solve", `{"boundary": [[0, 0], [6000, 0], [6000, 6000]], "colour": "red"}`, http.StatusUnprocessableEntity, "INVALID_FORMAT"},
		{"oversized lot", "/v1/solve", `{"boundary": [[0, 0], [1e7, 0], [1e7, 1e7], [0, 1e7]], "settings": {"spot_width": 1, "skirt_offset": 0}}`, http.StatusUnprocessableEntity, "INVALID_SETTINGS"},
		{"bad format", "/v1/solve?format=gif", squareSite, http.StatusUnprocessableEntity, "INVALID_FORMAT"},
		{"bad width", "/v1/solve?width=wide", squareSite, http.StatusUnprocessableEntity, "INVALID_INPUT"},
		{"bad id", "/v1/lots/not-a-uuid", "", http.StatusUnprocessableEntity, "INVALID_INPUT"},
		{"long id", "/v1/lots/" + strings.Repeat("a", 80), "", http.StatusUnprocessableEntity, "INVALID_INPUT"},
		{"bad limit", "/v1/lots?limit=-1", "", http.StatusUnprocessableEntity, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := http.MethodPost
			if tt.body == "" {
				method = http.MethodGet
			}
			resp := do(t, method, ts.URL+tt.url, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.code, string(decode[errorBody](t, resp).Error.Code))
		})
	}
}

type recordingHTTPHooks struct {
	mu     sync.Mutex
	routes []string
	errors int
}

func (h *recordingHTTPHooks) OnRequest(context.Context, string, string) {}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, method, route string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes = append(h.routes, method+" "+route)
}

func (h *recordingHTTPHooks) OnError(context.Context, string, string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errors++
}

func TestHTTPHooks(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	defer observability.SetHTTPHooks(observability.NoopHTTPHooks{})

	ts := newTestServer(t)
	do(t, http.MethodGet, ts.URL+"/healthz", "")
	do(t, http.MethodGet, ts.URL+"/v1/lots/8d1b2f4e-0f4e-4d7c-9a51-2f0c1d6e7b3a", "")

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	assert.Equal(t, []string{"GET /healthz", "GET /v1/lots/{id}"}, hooks.routes)
	assert.Equal(t, 1, hooks.errors)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, statusFor(io.EOF))
}
