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

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"seehuhn.de/go/iconfont/catalog"
	"seehuhn.de/go/iconfont/explorer"
	"seehuhn.de/go/iconfont/fontfile"
	"seehuhn.de/go/iconfont/glyphpath"
	"seehuhn.de/go/iconfont/mapping"
	"seehuhn.de/go/iconfont/svgexport"
)

// RecordInfo is the JSON representation of a catalog record.
type RecordInfo struct {
	Name         string `json:"name"`
	OriginalName string `json:"originalName,omitempty"`
	Char         string `json:"char"`
	CodePoint    int    `json:"codePoint"`
	HexCode      string `json:"hexCode"`
	GlyphIndex   int    `json:"glyphIndex"`
	Category     string `json:"category"`
	HasOutline   bool   `json:"hasOutline"`
}

func newRecordInfo(rec *catalog.Record) RecordInfo {
	return RecordInfo{
		Name:         rec.Name,
		OriginalName: rec.OriginalName,
		Char:         string(rec.CodePoint),
		CodePoint:    int(rec.CodePoint),
		HexCode:      rec.HexCode,
		GlyphIndex:   rec.GlyphIndex,
		Category:     rec.Category,
		HasOutline:   !glyphpath.IsEmpty(rec.Glyph.Outline),
	}
}

// FontInfo is the JSON representation of the explorer status.
type FontInfo struct {
	Loaded     bool   `json:"loaded"`
	Family     string `json:"family,omitempty"`
	NumGlyphs  int    `json:"numGlyphs"`
	NumIcons   int    `json:"numIcons"`
	UnitsPerEm int    `json:"unitsPerEm,omitempty"`
	Format     string `json:"format,omitempty"`
	Backend    string `json:"backend,omitempty"`
	Mapping    int    `json:"mappingEntries"`
	Seq        uint64 `json:"seq"`
	Status     string `json:"status"`
	Message    string `json:"message,omitempty"`
}

func newFontInfo(st explorer.State) FontInfo {
	info := FontInfo{
		Mapping: len(st.Mapping),
		Seq:     st.Applied,
		Status:  st.Status.Kind.String(),
		Message: st.Status.Message,
	}
	if st.Font != nil {
		info.Loaded = true
		info.Family = st.Font.FamilyName
		info.NumGlyphs = st.Font.NumGlyphs()
		info.NumIcons = st.Catalog.Len()
		info.UnitsPerEm = int(st.Font.UnitsPerEm)
		info.Format = st.Font.Format
		info.Backend = st.Font.Backend
	}
	return info
}

// CategoryInfo describes one entry of the category filter.
type CategoryInfo struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// IconList is the response of the icon search.
type IconList struct {
	Icons []RecordInfo `json:"icons"`
	Total int          `json:"total"`
	Stats string       `json:"stats"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type reloadMessage struct {
	Type string `json:"type"`
	Seq  uint64 `json:"seq"`
}

// errBadRequest marks errors caused by invalid request parameters.
var errBadRequest = errors.New("bad request")

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

func (s *Server) handleFontInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, newFontInfo(s.session.State()))
}

func (s *Server) handleFontData(w http.ResponseWriter, r *http.Request) {
	st := s.session.State()
	if st.Font == nil {
		s.writeError(w, explorer.ErrNoFont)
		return
	}
	ctype := "font/ttf"
	if st.Font.Format == "otf" {
		ctype = "font/otf"
	}
	w.Header().Set("Content-Type", ctype)
	w.Header().Set("Content-Length", strconv.Itoa(len(st.Font.Data)))
	w.Write(st.Font.Data)
}

func (s *Server) handleFontUpload(w http.ResponseWriter, r *http.Request) {
	if err := s.limitBody(w, r); err != nil {
		s.writeError(w, err)
		return
	}

	body, source, err := uploadBody(r, "font")
	if err != nil {
		s.writeError(w, err)
		return
	}
	defer body.Close()

	ticket, err := s.session.LoadFont(r.Context(), body, s.fontOptions())
	if err != nil {
		s.log.Info("font upload failed", zap.String("source", source), zap.Error(err))
		s.writeError(w, err)
		return
	}
	s.fontApplied(ticket, source)
	s.writeJSON(w, http.StatusOK, newFontInfo(s.session.State()))
}

func (s *Server) handleMappingUpload(w http.ResponseWriter, r *http.Request) {
	if err := s.limitBody(w, r); err != nil {
		s.writeError(w, err)
		return
	}

	format, err := mapping.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.writeError(w, badRequest("%v", err))
		return
	}
	body, source, err := uploadBody(r, "mapping")
	if err != nil {
		s.writeError(w, err)
		return
	}
	defer body.Close()

	table, err := mapping.Read(body, format)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.mappingApplied(table, source)
	s.writeJSON(w, http.StatusOK, newFontInfo(s.session.State()))
}

// uploadBody returns the uploaded file, either from the multipart form
// field with the given name or from the raw request body.
func uploadBody(r *http.Request, field string) (io.ReadCloser, string, error) {
	ctype, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ctype != "multipart/form-data" {
		return r.Body, "upload", nil
	}

	file, header, err := r.FormFile(field)
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return nil, "", fmt.Errorf("form field %q: %w", field, err)
	} else if err != nil {
		return nil, "", badRequest("form field %q: %v", field, err)
	}
	return file, header.Filename, nil
}

// limitBody caps the request body at the configured upload size.
// Requests which announce a larger body are rejected before reading.
func (s *Server) limitBody(w http.ResponseWriter, r *http.Request) error {
	limit := s.cfg.MaxUploadSize
	if r.ContentLength > limit {
		return &http.MaxBytesError{Limit: limit}
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	return nil
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	st := s.session.State()
	if st.Catalog == nil {
		s.writeError(w, explorer.ErrNoFont)
		return
	}
	res := []CategoryInfo{{Name: catalog.CategoryAll, Label: "All"}}
	for _, cat := range st.Catalog.Categories() {
		res = append(res, CategoryInfo{Name: cat, Label: catalog.DisplayName(cat)})
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleIcons(w http.ResponseWriter, r *http.Request) {
	st := s.session.State()
	if st.Catalog == nil {
		s.writeError(w, explorer.ErrNoFont)
		return
	}

	q := r.URL.Query()
	st = explorer.Search(st, q.Get("q"))
	st = explorer.SelectCategory(st, q.Get("category"))

	res := IconList{
		Icons: make([]RecordInfo, 0, len(st.Visible)),
		Total: st.Catalog.Len(),
		Stats: explorer.Stats(st),
	}
	for _, rec := range st.Visible {
		res.Icons = append(res.Icons, newRecordInfo(rec))
	}
	s.writeJSON(w, http.StatusOK, res)
}

// selectHex selects the glyph named in the request path, in a private copy
// of the session state.
func (s *Server) selectHex(r *http.Request) (explorer.State, error) {
	return explorer.SelectHex(s.session.State(), r.PathValue("hex"))
}

func (s *Server) handleIcon(w http.ResponseWriter, r *http.Request) {
	st, err := s.selectHex(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newRecordInfo(st.Selected))
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.exportConfig(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	st, err := s.selectHex(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	download, err := boolParam(r, "download", false)
	if err != nil {
		s.writeError(w, err)
		return
	}
	st, doc, err := explorer.Generate(st, cfg)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml; charset=utf-8")
	if download {
		fname := svgexport.Filename(st.Selected.Name, st.Selected.HexCode)
		w.Header().Set("Content-Disposition",
			mime.FormatMediaType("attachment", map[string]string{"filename": fname}))
	}
	io.WriteString(w, doc)
}

func (s *Server) handlePath(w http.ResponseWriter, r *http.Request) {
	size, err := floatParam(r, "size", s.cfg.SVG.Size)
	if err != nil {
		s.writeError(w, err)
		return
	}
	st, err := s.selectHex(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	d, err := explorer.CopyPath(st, size)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, d)
}

// exportConfig combines the server defaults with the request parameters.
func (s *Server) exportConfig(r *http.Request) (*svgexport.Config, error) {
	cfg := s.cfg.SVG.Export()
	var err error
	if cfg.CanvasSize, err = floatParam(r, "size", cfg.CanvasSize); err != nil {
		return nil, err
	}
	if cfg.StrokeWidth, err = floatParam(r, "stroke-width", cfg.StrokeWidth); err != nil {
		return nil, err
	}
	if cfg.Metadata, err = boolParam(r, "metadata", cfg.Metadata); err != nil {
		return nil, err
	}
	q := r.URL.Query()
	if q.Has("fill") {
		cfg.Fill = q.Get("fill")
	}
	if q.Has("stroke") {
		cfg.Stroke = q.Get("stroke")
	}
	return &cfg, nil
}

func floatParam(r *http.Request, name string, def float64) (float64, error) {
	val := r.URL.Query().Get(name)
	if val == "" {
		return def, nil
	}
	x, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, badRequest("parameter %q: invalid number %q", name, val)
	}
	return x, nil
}

func boolParam(r *http.Request, name string, def bool) (bool, error) {
	val := r.URL.Query().Get(name)
	if val == "" {
		return def, nil
	}
	x, err := strconv.ParseBool(val)
	if err != nil {
		return false, badRequest("parameter %q: invalid boolean %q", name, val)
	}
	return x, nil
}

// statusCode maps errors to HTTP status codes.
func statusCode(err error) int {
	var parseErr *fontfile.ParseError
	var formatErr *mapping.FormatError
	var transformErr *svgexport.TransformError
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, errBadRequest),
		errors.As(err, &parseErr),
		errors.As(err, &formatErr):
		return http.StatusBadRequest
	case errors.Is(err, explorer.ErrNotFound),
		errors.Is(err, explorer.ErrNoFont):
		return http.StatusNotFound
	case errors.Is(err, svgexport.ErrEmptyOutline),
		errors.As(err, &transformErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, explorer.ErrStaleLoad):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := statusCode(err)
	if code == http.StatusInternalServerError {
		s.log.Error("request failed", zap.Error(err))
	}
	s.writeJSON(w, code, errorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("cannot write response", zap.Error(err))
	}
}
