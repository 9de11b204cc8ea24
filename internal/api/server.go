// Package api exposes capture operations over HTTP.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/screenstitch/screenstitch/internal/capture"
	"github.com/screenstitch/screenstitch/internal/config"
	"github.com/screenstitch/screenstitch/internal/display"
	"github.com/screenstitch/screenstitch/internal/geometry"
	"github.com/screenstitch/screenstitch/internal/logger"
	"github.com/screenstitch/screenstitch/internal/output"
	"github.com/screenstitch/screenstitch/internal/pixbuf"
)

// Server represents the HTTP API server
type Server struct {
	router     *mux.Router
	captureMgr *capture.Manager
	enum       display.Enumerator
	configMgr  *config.Manager
	upgrader   websocket.Upgrader
}

// NewServer creates a new API server
func NewServer(captureMgr *capture.Manager, enum display.Enumerator, configMgr *config.Manager) *Server {
	s := &Server{
		router:     mux.NewRouter(),
		captureMgr: captureMgr,
		enum:       enum,
		configMgr:  configMgr,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/displays", s.handleGetDisplays).Methods("GET")
	api.HandleFunc("/capture", s.handleCapture).Methods("GET")
	api.HandleFunc("/capture/combined", s.handleCaptureCombined).Methods("GET")
	api.HandleFunc("/capture/stream", s.handleCaptureStream)
	api.HandleFunc("/color", s.handleColor).Methods("GET")
	api.HandleFunc("/health", s.handleHealth).Methods("GET")
}

// Start starts the HTTP server
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	logger.WithComponent("api").Info().
		Str("addr", addr).
		Msg("Starting HTTP server")
	return http.ListenAndServe(addr, s.router)
}

// Handler returns the underlying HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleGetDisplays(w http.ResponseWriter, r *http.Request) {
	displays, err := s.enum.Displays()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(displays)
}

// handleCapture serves either an entire-screen capture (no geometry params)
// or an area capture (x, y, width, height). An optional "display" parameter
// names the target display, and "format" selects the encoding.
func (s *Server) handleCapture(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	displayID := q.Get("display")

	if q.Get("width") == "" && q.Get("height") == "" {
		img, err := s.captureMgr.CaptureEntireScreen(displayID)
		s.writeCapture(w, r, img, err)
		return
	}

	rect, err := rectFromQuery(q.Get("x"), q.Get("y"), q.Get("width"), q.Get("height"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var target *display.Display
	if displayID != "" {
		displays, err := s.enum.Displays()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		for i := range displays {
			if displays[i].ID == displayID {
				target = &displays[i]
				break
			}
		}
		if target == nil {
			http.Error(w, fmt.Sprintf("unknown display: %s", displayID), http.StatusNotFound)
			return
		}
	}

	img, err := s.captureMgr.CaptureArea(rect, target)
	s.writeCapture(w, r, img, err)
}

func (s *Server) handleCaptureCombined(w http.ResponseWriter, r *http.Request) {
	img, err := s.captureMgr.CaptureAllDisplays()
	s.writeCapture(w, r, img, err)
}

func (s *Server) handleColor(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	x, errX := strconv.ParseFloat(q.Get("x"), 64)
	y, errY := strconv.ParseFloat(q.Get("y"), 64)
	if errX != nil || errY != nil {
		http.Error(w, "x and y query parameters are required", http.StatusBadRequest)
		return
	}

	c, err := s.captureMgr.CapturePixelColor(x, y)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if c == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"r":   c.R,
		"g":   c.G,
		"b":   c.B,
		"a":   c.A,
		"hex": fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleCaptureStream pushes encoded entire-screen frames over a websocket
// at the configured FPS until the client disconnects.
func (s *Server) handleCaptureStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.WithComponent("api").Warn().Err(err).Msg("Websocket upgrade failed")
		return
	}
	defer conn.Close()

	cfg := s.configMgr.Get()
	fps := cfg.Stream.FPS
	if fps <= 0 {
		fps = 10
	}
	displayID := r.URL.Query().Get("display")

	log := logger.WithComponent("api")
	log.Info().Int("fps", fps).Msg("Capture stream started")

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for range ticker.C {
		img, err := s.captureMgr.CaptureEntireScreen(displayID)
		if err != nil {
			log.Error().Err(err).Msg("Stream capture failed")
			return
		}
		if img == nil {
			continue
		}

		wr, err := conn.NextWriter(websocket.BinaryMessage)
		if err != nil {
			log.Debug().Err(err).Msg("Capture stream client gone")
			return
		}
		if err := output.Encode(wr, img, output.FormatJPEG, cfg.Capture.JPEGQuality); err != nil {
			wr.Close()
			log.Error().Err(err).Msg("Failed to encode stream frame")
			return
		}
		if err := wr.Close(); err != nil {
			return
		}
	}
}

// writeCapture encodes a capture result, mapping the nil "nothing to
// capture" result to 204 No Content.
func (s *Server) writeCapture(w http.ResponseWriter, r *http.Request, img *pixbuf.Buffer, err error) {
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if img == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	cfg := s.configMgr.Get()
	format := output.FormatPNG
	name := r.URL.Query().Get("format")
	if name == "" {
		name = cfg.Capture.Format
	}
	if name != "" {
		f, err := output.ParseFormat(name)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		format = f
	}

	w.Header().Set("Content-Type", format.ContentType())
	if err := output.Encode(w, img, format, cfg.Capture.JPEGQuality); err != nil {
		logger.WithComponent("api").Error().Err(err).Msg("Failed to encode capture")
	}
}

func rectFromQuery(xs, ys, ws, hs string) (geometry.Rect, error) {
	parse := func(name, s string, def float64) (float64, error) {
		if s == "" {
			return def, nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %q", name, s)
		}
		return v, nil
	}
	x, err := parse("x", xs, 0)
	if err != nil {
		return geometry.Rect{}, err
	}
	y, err := parse("y", ys, 0)
	if err != nil {
		return geometry.Rect{}, err
	}
	width, err := parse("width", ws, 0)
	if err != nil {
		return geometry.Rect{}, err
	}
	height, err := parse("height", hs, 0)
	if err != nil {
		return geometry.Rect{}, err
	}
	return geometry.NewRect(x, y, width, height), nil
}
