package proxy

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"finance_ledger/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type captured struct {
	method      string
	path        string
	body        []byte
	contentType string
}

// upstream starts a fake Ledger Service answering every call with status and body
func upstream(t *testing.T, status int, body string) (*httptest.Server, *captured) {
	t.Helper()
	got := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.method = r.Method
		got.path = r.URL.Path
		got.contentType = r.Header.Get("Content-Type")
		got.body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

func serve(r http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestForwardsCreateVerbatim(t *testing.T) {
	created := `{"id":1,"txDate":"2024-01-05T00:00:00Z","category":"Salary","note":null,"amount":1000,"createdAt":"2024-01-05T10:00:00Z","type":"income"}`
	srv, got := upstream(t, http.StatusCreated, created)
	r := NewRouter(NewForwarder(srv.URL, srv.Client()), web.Assets())

	body := []byte(`{"txDate":"2024-01-05", "category":"Salary", "amount":1000, "type":"income"}`)
	w := serve(r, http.MethodPost, "/api/transactions", body)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, created, w.Body.String())
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/api/transactions", got.path)
	assert.Equal(t, body, got.body, "body reaches the backend byte for byte")
	assert.Equal(t, "application/json", got.contentType)
}

func TestForwardsReads(t *testing.T) {
	for _, path := range []string{"/api/transactions", "/api/summary"} {
		t.Run(path, func(t *testing.T) {
			srv, got := upstream(t, http.StatusOK, `{"ok":true}`)
			r := NewRouter(NewForwarder(srv.URL, nil), web.Assets())

			w := serve(r, http.MethodGet, path, nil)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, `{"ok":true}`, w.Body.String())
			assert.Equal(t, http.MethodGet, got.method)
			assert.Equal(t, path, got.path)
			assert.Empty(t, got.body)
		})
	}
}

func TestRelaysUpstreamErrors(t *testing.T) {
	tests := []struct {
		status int
		body   string
	}{
		{http.StatusBadRequest, `{"error":"txDate, category, amount are required"}`},
		{http.StatusInternalServerError, `{"error":"Failed to fetch transactions"}`},
	}
	for _, tc := range tests {
		srv, _ := upstream(t, tc.status, tc.body)
		r := NewRouter(NewForwarder(srv.URL, nil), web.Assets())

		w := serve(r, http.MethodPost, "/api/transactions", []byte(`{"category":"Food"}`))
		assert.Equal(t, tc.status, w.Code, "upstream status is relayed, not turned into 502")
		assert.Equal(t, tc.body, w.Body.String())
	}
}

func TestUnreachableBackend(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close() // Nothing listens there any more

	r := NewRouter(NewForwarder(url, nil), web.Assets())
	for _, tc := range []struct {
		method string
		path   string
		body   []byte
	}{
		{http.MethodGet, "/api/transactions", nil},
		{http.MethodPost, "/api/transactions", []byte(`not even json`)},
		{http.MethodGet, "/api/summary", nil},
	} {
		w := serve(r, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.JSONEq(t, `{"error":"Proxy failed to reach backend"}`, w.Body.String())
	}
}

func TestNonJSONUpstreamIsBadGateway(t *testing.T) {
	srv, _ := upstream(t, http.StatusOK, `<html>gateway page</html>`)
	r := NewRouter(NewForwarder(srv.URL, nil), web.Assets())

	w := serve(r, http.MethodGet, "/api/summary", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"error":"Proxy failed to reach backend"}`, w.Body.String())
}

func TestServesUI(t *testing.T) {
	r := NewRouter(NewForwarder("http://127.0.0.1:1", nil), web.Assets())

	w := serve(r, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Finance Ledger")

	w = serve(r, http.MethodGet, "/style.css", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/css")

	w = serve(r, http.MethodGet, "/app.js", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, http.MethodGet, "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, w.Body.String())

	w = serve(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestServesCustomAssets(t *testing.T) {
	assets := fstest.MapFS{
		"index.html":   {Data: []byte("<html>custom</html>")},
		"img/logo.svg": {Data: []byte("<svg/>")},
	}
	r := NewRouter(NewForwarder("http://127.0.0.1:1", nil), assets)

	w := serve(r, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "<html>custom</html>", w.Body.String())

	w = serve(r, http.MethodGet, "/img/logo.svg", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "<svg/>", w.Body.String())
}

func TestStaticAssetsAreReadOnly(t *testing.T) {
	r := NewRouter(NewForwarder("http://127.0.0.1:1", nil), web.Assets())

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		w := serve(r, method, "/style.css", []byte(`{}`))
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code, method)
		assert.JSONEq(t, `{"error":"Method not allowed"}`, w.Body.String())
	}

	w := serve(r, http.MethodHead, "/style.css", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
