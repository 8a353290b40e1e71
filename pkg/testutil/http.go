package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// DoRequest performs an HTTP request against a handler and returns the response recorder.
func DoRequest(t *testing.T, handler http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// ParseJSON decodes the response body into the given value.
func ParseJSON(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err, "reading response body")
	require.NoError(t, json.Unmarshal(body, v), "parsing JSON %q", string(body))
}

// AssertStatus checks that the response has the expected status code.
func AssertStatus(t *testing.T, rr *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if rr.Code != expected {
		t.Errorf("expected status %d, got %d (body: %s)", expected, rr.Code, rr.Body.String())
	}
}

// AssertBodyContains checks that the response body contains every fragment.
func AssertBodyContains(t *testing.T, rr *httptest.ResponseRecorder, fragments ...string) {
	t.Helper()
	body := rr.Body.String()
	for _, f := range fragments {
		if !strings.Contains(body, f) {
			t.Errorf("expected body to contain %q, got: %s", f, body)
		}
	}
}

// FakeProvider serves a provider's token and profile endpoints.
type FakeProvider struct {
	*httptest.Server

	// Token handles POST /token. Defaults to issuing "tok123".
	Token http.HandlerFunc
	// Profile handles GET /user. Defaults to {"login":"octocat"}.
	Profile http.HandlerFunc
}

// NewFakeProvider starts a fake provider; it is closed when the test ends.
func NewFakeProvider(t *testing.T) *FakeProvider {
	t.Helper()
	fp := &FakeProvider{
		Token: func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token":"tok123","token_type":"bearer","scope":"read:user"}`))
		},
		Profile: func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"login":"octocat","id":1}`))
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) { fp.Token(w, r) })
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) { fp.Profile(w, r) })
	fp.Server = httptest.NewServer(mux)
	t.Cleanup(fp.Server.Close)
	return fp
}

// TokenURL is the fake token endpoint.
func (fp *FakeProvider) TokenURL() string { return fp.URL + "/token" }

// ProfileURL is the fake profile endpoint.
func (fp *FakeProvider) ProfileURL() string { return fp.URL + "/user" }
