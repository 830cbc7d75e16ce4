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

// Package explorer implements the application state of the icon font
// explorer.
//
// The state is a plain value.  Every operation takes the current state and
// returns a new one, without modifying its input.  This keeps the behaviour
// independent of any user interface: the HTTP server in package server and
// the tests drive the same functions.
//
// Font loading is split into [BeginLoad] and [FinishLoad].  Each load gets a
// ticket from a monotonic counter, and the result of a load which completes
// after a newer load has been applied is discarded with [ErrStaleLoad].
package explorer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"seehuhn.de/go/iconfont/catalog"
	"seehuhn.de/go/iconfont/fontfile"
	"seehuhn.de/go/iconfont/mapping"
	"seehuhn.de/go/iconfont/svgexport"
)

var (
	// ErrNoFont is returned by operations which need a loaded font.
	ErrNoFont = errors.New("no font loaded")

	// ErrNoSelection is returned by export operations when no glyph is
	// selected.
	ErrNoSelection = errors.New("no glyph selected")

	// ErrStaleLoad indicates that the result of a font load was discarded,
	// because a newer load has already been applied.
	ErrStaleLoad = errors.New("stale font load discarded")

	// ErrNotFound is returned when a glyph cannot be selected.
	ErrNotFound = errors.New("glyph not found")
)

// StatusKind classifies the status line of the explorer.
type StatusKind int

// These are the possible kinds of status.
const (
	StatusIdle StatusKind = iota
	StatusLoading
	StatusReady
	StatusError
)

func (k StatusKind) String() string {
	switch k {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("StatusKind(%d)", int(k))
	}
}

// Status is the message shown to the user after a font load.
type Status struct {
	Kind    StatusKind
	Message string
}

// State is the complete state of the explorer.
type State struct {
	// Seq is the ticket of the most recent call to BeginLoad.
	Seq uint64

	// Applied is the ticket of the load which produced Font, or 0.
	Applied uint64

	// Finished is the ticket of the most recent load which completed,
	// successfully or not.  Results of older loads are discarded.
	Finished uint64

	Font    *fontfile.Font
	Catalog *catalog.Catalog
	Mapping mapping.Table

	// Rules, if set, override the default classification rules.
	Rules *catalog.Builder

	Query    catalog.Query
	Visible  []*catalog.Record
	Selected *catalog.Record

	// LastSVG is the most recently generated SVG document for the
	// selected glyph, or the empty string.
	LastSVG string

	Status Status
}

// BeginLoad records the start of a font load and returns the ticket which
// must be passed to FinishLoad.
func BeginLoad(s State) (State, uint64) {
	s.Seq++
	s.Status = Status{Kind: StatusLoading, Message: "Loading font file..."}
	return s, s.Seq
}

// FinishLoad applies the outcome of the font load with the given ticket.
//
// If a load with a newer ticket has already finished, whether it succeeded
// or failed, the state is returned unchanged together with ErrStaleLoad.  If loadErr is non-nil,
// the previous font and catalog are kept, the status reports the error and
// loadErr is returned.
func FinishLoad(s State, ticket uint64, font *fontfile.Font, loadErr error) (State, error) {
	if ticket <= s.Finished || ticket > s.Seq {
		return s, ErrStaleLoad
	}
	s.Finished = ticket

	if loadErr == nil && font == nil {
		loadErr = errors.New("decoder returned no font")
	}
	if loadErr != nil {
		s.Status = Status{Kind: StatusError, Message: "Error loading font: " + loadErr.Error()}
		return s, loadErr
	}

	s.Applied = ticket
	s.Font = font
	s.Catalog = s.builder().Build(font, s.Mapping)
	s.Query = catalog.Query{}
	s.Visible = s.Catalog.Filter(s.Query)
	s.Selected = nil
	s.LastSVG = ""
	s.Status = Status{
		Kind:    StatusReady,
		Message: fmt.Sprintf("Font loaded: %s (%d glyphs)", font.FamilyName, font.NumGlyphs()),
	}
	return s, nil
}

// LoadFont reads and decodes a font and makes it the current font.
// Reading honours ctx; decoding runs to completion once the data is read.
func LoadFont(ctx context.Context, s State, r io.Reader, opt *fontfile.Options) (State, error) {
	s, ticket := BeginLoad(s)
	font, err := ReadFont(ctx, r, opt)
	return FinishLoad(s, ticket, font, err)
}

// ReadFont reads all of r and decodes the font data.
func ReadFont(ctx context.Context, r io.Reader, opt *fontfile.Options) (*fontfile.Font, error) {
	data, err := readAll(ctx, r)
	if err != nil {
		return nil, err
	}
	return fontfile.Decode(data, opt)
}

func readAll(ctx context.Context, r io.Reader) ([]byte, error) {
	buf := &bytes.Buffer{}
	chunk := make([]byte, 32*1024)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, err := r.Read(chunk)
		buf.Write(chunk[:n])
		if err == io.EOF {
			return buf.Bytes(), nil
		} else if err != nil {
			return nil, err
		}
	}
}

// SetMapping installs a new name mapping and rebuilds the catalog.
// A nil table removes the mapping.  The selection is kept if the selected
// code point is still present.
func SetMapping(s State, m mapping.Table) State {
	s.Mapping = m
	s.LastSVG = ""
	if s.Font == nil {
		return s
	}

	s.Catalog = s.builder().Build(s.Font, m)
	s.Visible = s.Catalog.Filter(s.Query)
	if s.Selected != nil {
		s.Selected, _ = s.Catalog.Lookup(s.Selected.HexCode)
	}
	return s
}

// Search sets the search text and updates the visible records.
func Search(s State, text string) State {
	s.Query.Text = text
	return s.refilter()
}

// SelectCategory restricts the visible records to one category.
// Use catalog.CategoryAll to show all categories.
func SelectCategory(s State, category string) State {
	s.Query.Category = category
	return s.refilter()
}

func (s State) refilter() State {
	if s.Catalog == nil {
		s.Visible = nil
		return s
	}
	s.Visible = s.Catalog.Filter(s.Query)
	return s
}

// Select selects the i-th visible record.
func Select(s State, i int) (State, error) {
	if s.Catalog == nil {
		return s, ErrNoFont
	}
	if i < 0 || i >= len(s.Visible) {
		return s, fmt.Errorf("index %d: %w", i, ErrNotFound)
	}
	return s.selectRecord(s.Visible[i]), nil
}

// SelectHex selects the record with the given hex code.  The record does
// not need to be visible.
func SelectHex(s State, hex string) (State, error) {
	if s.Catalog == nil {
		return s, ErrNoFont
	}
	rec, ok := s.Catalog.Lookup(hex)
	if !ok {
		return s, fmt.Errorf("U+%s: %w", hex, ErrNotFound)
	}
	return s.selectRecord(rec), nil
}

func (s State) selectRecord(rec *catalog.Record) State {
	if rec != s.Selected {
		s.LastSVG = ""
	}
	s.Selected = rec
	return s
}

// Generate creates the SVG document for the selected glyph and stores it
// in LastSVG.  On error, the state is returned unchanged.
func Generate(s State, cfg *svgexport.Config) (State, string, error) {
	rec, err := s.selection()
	if err != nil {
		return s, "", err
	}
	if cfg == nil {
		cfg = &svgexport.DefaultConfig
	}

	meta := &svgexport.Meta{
		Name:       rec.Name,
		FontFamily: s.Font.FamilyName,
		CodePoint:  rec.CodePoint,
		GlyphIndex: rec.GlyphIndex,
		Category:   rec.Category,
	}
	doc, err := svgexport.Document(rec.Glyph.Outline, rec.Glyph.BBox(), cfg,
		float64(s.Font.UnitsPerEm), meta)
	if err != nil {
		return s, "", err
	}
	s.LastSVG = doc
	return s, doc, nil
}

// CopySVG returns the last generated SVG document, generating it first if
// necessary.
func CopySVG(s State, cfg *svgexport.Config) (State, string, error) {
	if s.LastSVG != "" && s.Selected != nil {
		return s, s.LastSVG, nil
	}
	return Generate(s, cfg)
}

// CopyPath returns the path data of the selected glyph, transformed for a
// canvas of the given size.
func CopyPath(s State, canvasSize float64) (string, error) {
	rec, err := s.selection()
	if err != nil {
		return "", err
	}
	return svgexport.PathData(rec.Glyph.Outline, rec.Glyph.BBox(), canvasSize,
		float64(s.Font.UnitsPerEm))
}

// Download returns the file name and contents for saving the selected
// glyph as an SVG file.
func Download(s State, cfg *svgexport.Config) (State, string, string, error) {
	s, doc, err := CopySVG(s, cfg)
	if err != nil {
		return s, "", "", err
	}
	return s, svgexport.Filename(s.Selected.Name, s.Selected.HexCode), doc, nil
}

// Stats returns the summary line shown above the icon grid.
func Stats(s State) string {
	if s.Catalog == nil || len(s.Visible) == 0 {
		return "No icons found"
	}
	return fmt.Sprintf("Showing %d of %d icons", len(s.Visible), s.Catalog.Len())
}

func (s State) selection() (*catalog.Record, error) {
	if s.Font == nil || s.Catalog == nil {
		return nil, ErrNoFont
	}
	if s.Selected == nil {
		return nil, ErrNoSelection
	}
	return s.Selected, nil
}

func (s State) builder() *catalog.Builder {
	if s.Rules != nil {
		return s.Rules
	}
	return &catalog.Builder{}
}
