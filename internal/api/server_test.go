package api

import (
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/screenstitch/screenstitch/internal/capture"
	"github.com/screenstitch/screenstitch/internal/config"
	"github.com/screenstitch/screenstitch/internal/display"
	"github.com/screenstitch/screenstitch/internal/pixbuf"
)

type fakeEnumerator struct {
	displays []display.Display
}

func (f *fakeEnumerator) Displays() ([]display.Display, error) {
	return f.displays, nil
}

type fakeBackend struct {
	miss bool
}

func (f *fakeBackend) Start() error      { return nil }
func (f *fakeBackend) Stop() error       { return nil }
func (f *fakeBackend) Name() string      { return "fake" }
func (f *fakeBackend) IsAvailable() bool { return true }

func (f *fakeBackend) Capture(x, y, width, height int) (*pixbuf.Buffer, error) {
	if f.miss {
		return nil, nil
	}
	buf := &pixbuf.Buffer{
		Pix:           make([]byte, width*height*4),
		Width:         width,
		Height:        height,
		BitsPerPixel:  32,
		BytesPerPixel: 4,
		Order:         pixbuf.OrderBGRA,
	}
	for i := 3; i < len(buf.Pix); i += 4 {
		buf.Pix[i] = 255
	}
	return buf, nil
}

func newTestServer(t *testing.T, backend capture.Backend) *Server {
	t.Helper()

	enum := &fakeEnumerator{displays: []display.Display{
		{ID: "0", Position: display.Point{X: 0, Y: 0}, Size: display.Size{Width: 1920, Height: 1080}},
		{ID: "1", Position: display.Point{X: 1920, Y: 0}, Size: display.Size{Width: 1280, Height: 1024}},
	}}
	configMgr, err := config.NewManager(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	mgr := capture.NewManager(enum, backend, display.Resolver{})
	return NewServer(mgr, enum, configMgr)
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t, &fakeBackend{})
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/api/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestHandleGetDisplays(t *testing.T) {
	s := newTestServer(t, &fakeBackend{})
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/api/displays", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var displays []display.Display
	if err := json.NewDecoder(rec.Body).Decode(&displays); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(displays) != 2 || displays[1].ID != "1" {
		t.Errorf("displays = %+v", displays)
	}
}

func TestHandleCaptureEntireScreen(t *testing.T) {
	s := newTestServer(t, &fakeBackend{})
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/api/capture?display=1", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q, want image/png", ct)
	}
	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 1280 || img.Bounds().Dy() != 1024 {
		t.Errorf("image size %v, want 1280x1024", img.Bounds())
	}
}

func TestHandleCaptureArea(t *testing.T) {
	s := newTestServer(t, &fakeBackend{})
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec,
		httptest.NewRequest("GET", "/api/capture?x=10&y=10&width=200&height=100", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 200 || img.Bounds().Dy() != 100 {
		t.Errorf("image size %v, want 200x100", img.Bounds())
	}
}

func TestHandleCaptureAreaBadParams(t *testing.T) {
	s := newTestServer(t, &fakeBackend{})
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec,
		httptest.NewRequest("GET", "/api/capture?x=abc&width=10&height=10", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleCaptureUnknownDisplay(t *testing.T) {
	s := newTestServer(t, &fakeBackend{})
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec,
		httptest.NewRequest("GET", "/api/capture?x=0&y=0&width=10&height=10&display=9", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestHandleCaptureNoResult(t *testing.T) {
	s := newTestServer(t, &fakeBackend{miss: true})
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/api/capture", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
}

func TestHandleCaptureCombined(t *testing.T) {
	s := newTestServer(t, &fakeBackend{})
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/api/capture/combined", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 3200 || img.Bounds().Dy() != 1080 {
		t.Errorf("image size %v, want 3200x1080", img.Bounds())
	}
}

func TestHandleColor(t *testing.T) {
	s := newTestServer(t, &fakeBackend{})
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/api/color?x=5&y=5", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["hex"] != "#000000" {
		t.Errorf("hex = %v, want #000000", got["hex"])
	}
}

func TestHandleColorMissingParams(t *testing.T) {
	s := newTestServer(t, &fakeBackend{})
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/api/color", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
