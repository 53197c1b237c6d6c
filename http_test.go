package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
)

func TestHandler(t *testing.T) {
	r := NewRegistry()
	c := r.NewCounter("handler_requests_total", []string{"path"}, "Total requests.")
	c.MustWith("/foo").Inc()

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code; got %d; want %d", resp.StatusCode, http.StatusOK)
	}
	if ct := resp.Header.Get("Content-Type"); ct != TextContentType {
		t.Fatalf("unexpected Content-Type; got %q; want %q", ct, TextContentType)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if cl := resp.Header.Get("Content-Length"); cl != strconv.Itoa(len(body)) {
		t.Fatalf("unexpected Content-Length; got %q; want %d", cl, len(body))
	}
	expectedLine := `handler_requests_total{path="/foo"} 1.000000` + "\n"
	if !strings.Contains(string(body), expectedLine) {
		t.Fatalf("missing %q in response body %q", expectedLine, body)
	}
}

func TestHandlerEmptyRegistry(t *testing.T) {
	r := NewRegistry()
	rw := httptest.NewRecorder()
	r.Handler().ServeHTTP(rw, httptest.NewRequest("GET", "/metrics", nil))
	if rw.Code != http.StatusOK {
		t.Fatalf("unexpected status code; got %d; want %d", rw.Code, http.StatusOK)
	}
	if body := rw.Body.String(); body != "" {
		t.Fatalf("unexpected body for empty registry; got %q; want empty", body)
	}
}
