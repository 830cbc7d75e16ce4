// seehuhn.de/go/iconfont - explore icon fonts and export glyphs as SVG
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package server implements the web interface of the icon font explorer.
//
// The server shows a single HTML page.  The page loads the glyph grid and
// the exported SVG documents from a small JSON API, and listens on a
// websocket for notifications when a new font or mapping has been applied.
package server

import (
	"bufio"
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"seehuhn.de/go/iconfont/catalog"
	"seehuhn.de/go/iconfont/explorer"
	"seehuhn.de/go/iconfont/fontfile"
	"seehuhn.de/go/iconfont/internal/config"
	"seehuhn.de/go/iconfont/mapping"
)

// Server serves the explorer user interface for one session.
type Server struct {
	cfg     *config.Config
	session *explorer.Session
	log     *zap.Logger
	hub     *hub
	mux     *http.ServeMux
}

// New creates a server.  If session is nil, a new session is created using
// the range rules selected in cfg.  If logger is nil, nothing is logged.
func New(cfg *config.Config, session *explorer.Session, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if session == nil {
		session = explorer.NewSession(Rules(cfg))
	}
	s := &Server{
		cfg:     cfg,
		session: session,
		log:     logger,
		hub:     newHub(logger),
		mux:     http.NewServeMux(),
	}

	s.mux.HandleFunc("GET /{$}", s.handlePage)
	s.mux.HandleFunc("GET /font", s.handleFontData)
	s.mux.HandleFunc("GET /ws", s.hub.serveWS)
	s.mux.HandleFunc("GET /api/font", s.handleFontInfo)
	s.mux.HandleFunc("POST /api/font", s.handleFontUpload)
	s.mux.HandleFunc("POST /api/mapping", s.handleMappingUpload)
	s.mux.HandleFunc("GET /api/categories", s.handleCategories)
	s.mux.HandleFunc("GET /api/icons", s.handleIcons)
	s.mux.HandleFunc("GET /api/icons/{hex}", s.handleIcon)
	s.mux.HandleFunc("GET /api/icons/{hex}/svg", s.handleSVG)
	s.mux.HandleFunc("GET /api/icons/{hex}/path", s.handlePath)

	return s
}

// Rules returns the catalog rules selected by the configuration.
func Rules(cfg *config.Config) *catalog.Builder {
	if cfg.ListedRanges {
		return &catalog.Builder{Ranges: catalog.ListedRanges}
	}
	return nil
}

// Session returns the explorer session of the server.
func (s *Server) Session() *explorer.Session {
	return s.session
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(rec, r)
	s.log.Debug("request",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", rec.status),
		zap.Duration("duration", time.Since(start)))
}

// Close disconnects all websocket clients.
func (s *Server) Close() {
	s.hub.close()
}

func (s *Server) fontOptions() *fontfile.Options {
	return &fontfile.Options{Backend: s.cfg.Backend}
}

// LoadFontFile loads the font from the named file.  Connected browsers are
// notified once the font has been applied.
func (s *Server) LoadFontFile(ctx context.Context, fname string) error {
	fd, err := os.Open(fname)
	if err != nil {
		return err
	}
	defer fd.Close()

	ticket, err := s.session.LoadFont(ctx, fd, s.fontOptions())
	if errors.Is(err, explorer.ErrStaleLoad) {
		s.log.Info("discarded stale font load", zap.String("file", fname))
		return err
	} else if err != nil {
		s.log.Error("cannot load font", zap.String("file", fname), zap.Error(err))
		return err
	}
	s.fontApplied(ticket, fname)
	return nil
}

// LoadMappingFile reads a name mapping from the named file and applies it.
func (s *Server) LoadMappingFile(fname string) error {
	table, err := mapping.ReadFile(fname)
	if err != nil {
		s.log.Error("cannot read mapping", zap.String("file", fname), zap.Error(err))
		return err
	}
	s.mappingApplied(table, fname)
	return nil
}

func (s *Server) fontApplied(ticket uint64, source string) {
	st := s.session.State()
	s.log.Info("font loaded",
		zap.String("source", source),
		zap.String("family", st.Font.FamilyName),
		zap.Int("glyphs", st.Font.NumGlyphs()),
		zap.Int("icons", st.Catalog.Len()),
		zap.Uint64("seq", ticket))
	s.hub.broadcast(reloadMessage{Type: "reload", Seq: ticket})
}

func (s *Server) mappingApplied(table mapping.Table, source string) {
	s.session.SetMapping(table)
	st := s.session.State()
	s.log.Info("mapping applied",
		zap.String("source", source),
		zap.Int("entries", len(table)))
	s.hub.broadcast(reloadMessage{Type: "reload", Seq: st.Applied})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Hijack is needed for the websocket upgrade.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("connection cannot be hijacked")
	}
	r.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
