package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/collagely/collagely/pkg/pipeline"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(nil, nil, logger)
	return NewServer(runner, logger)
}

func post(t *testing.T, s *Server, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if id := rec.Header().Get("X-Request-ID"); id == "" {
		t.Error("expected X-Request-ID header")
	}
}

func TestRequestIDEcho(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "test-id-123")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if id := rec.Header().Get("X-Request-ID"); id != "test-id-123" {
		t.Errorf("X-Request-ID = %q, want echo of client value", id)
	}
}

func TestLayoutEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := post(t, s, "/v1/layout", `{"photo_count": 9, "page_width": 794, "page_height": 1123}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Layout     pipeline.Layout `json:"layout"`
		LayoutHash string          `json:"layout_hash"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Layout.Mode != pipeline.ModeGrid {
		t.Errorf("mode = %q, want grid", resp.Layout.Mode)
	}
	if resp.Layout.SlotCount() != 9 {
		t.Errorf("slots = %d, want 9", resp.Layout.SlotCount())
	}
	if resp.LayoutHash == "" {
		t.Error("expected layout hash")
	}
}

func TestRingEndpointForcesMode(t *testing.T) {
	s := newTestServer(t)

	rec := post(t, s, "/v1/ring", `{"photo_count": 7, "page_width": 800, "page_height": 800}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Layout pipeline.Layout `json:"layout"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Layout.Mode != pipeline.ModeRing {
		t.Errorf("mode = %q, want ring", resp.Layout.Mode)
	}
}

func TestLayoutRejectsMissingCount(t *testing.T) {
	s := newTestServer(t)

	rec := post(t, s, "/v1/layout", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
		RequestID string `json:"request_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error.Code != "INVALID_REQUEST" {
		t.Errorf("code = %q, want INVALID_REQUEST", resp.Error.Code)
	}
	if resp.RequestID == "" {
		t.Error("expected request_id in error envelope")
	}
}

func TestLayoutRejectsMalformedBody(t *testing.T) {
	s := newTestServer(t)

	rec := post(t, s, "/v1/layout", `not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestRenderPlaceholders(t *testing.T) {
	s := newTestServer(t)

	rec := post(t, s, "/v1/render",
		`{"photo_count": 5, "page_width": 400, "page_height": 560, "placeholders": true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}
	if xc := rec.Header().Get("X-Cache"); xc != "miss" {
		t.Errorf("X-Cache = %q, want miss", xc)
	}
	if rec.Header().Get("X-Layout-Hash") == "" {
		t.Error("expected X-Layout-Hash header")
	}

	pngMagic := []byte{0x89, 'P', 'N', 'G'}
	if !bytes.HasPrefix(rec.Body.Bytes(), pngMagic) {
		t.Error("body is not a PNG")
	}
}

func TestRenderRejectsBadFormat(t *testing.T) {
	s := newTestServer(t)

	rec := post(t, s, "/v1/render",
		`{"photo_count": 5, "page_width": 400, "page_height": 560, "placeholders": true, "formats": ["gif"]}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestRenderRejectsMultipleFormats(t *testing.T) {
	s := newTestServer(t)

	rec := post(t, s, "/v1/render",
		`{"photo_count": 5, "page_width": 400, "page_height": 560, "placeholders": true, "formats": ["png", "pdf"]}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
