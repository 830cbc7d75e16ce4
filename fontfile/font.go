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

// Package fontfile decodes TrueType and OpenType font files into a flat
// list of glyphs with outlines.
//
// The binary parsing is done by one of two backends: seehuhn.de/go/sfnt
// (the default) or golang.org/x/image/font/sfnt.  Both produce the same
// [Font] structure, with outlines in font design units and the y-axis
// pointing up.
package fontfile

import (
	"fmt"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/iconfont/glyphpath"
)

// NoCodePoint is stored in Glyph.CodePoint for glyphs which are not
// reachable through the character map.
const NoCodePoint rune = -1

// Font is a decoded font file.
type Font struct {
	FamilyName string
	UnitsPerEm uint16
	Ascender   float64
	Descender  float64 // negative

	// Format is the container format detected for the font data,
	// e.g. "ttf" or "otf".
	Format string

	// Backend names the decoder which produced the font.
	Backend string

	// Glyphs is indexed by glyph ID.
	Glyphs []*Glyph

	// Data holds the raw font file.
	Data []byte
}

// NumGlyphs returns the number of glyphs in the font.
func (f *Font) NumGlyphs() int {
	return len(f.Glyphs)
}

// GlyphForRune returns the glyph which has r as its code point,
// or nil if there is no such glyph.
func (f *Font) GlyphForRune(r rune) *Glyph {
	for _, g := range f.Glyphs {
		if g.CodePoint == r {
			return g
		}
	}
	return nil
}

// Glyph is a single glyph of a font.
type Glyph struct {
	Index int

	// CodePoint is the lowest Unicode code point which the character map
	// assigns to the glyph, or NoCodePoint.
	CodePoint rune

	// Name is the glyph name from the font, or the empty string.
	Name string

	// Outline is the glyph outline in design units.  Glyphs without
	// contours have an empty, non-nil outline.
	Outline *path.Data
}

// HasCodePoint reports whether the glyph can be reached via the character
// map.
func (g *Glyph) HasCodePoint() bool {
	return g.CodePoint >= 0
}

// BBox returns the bounding box of the glyph outline in design units.
func (g *Glyph) BBox() rect.Rect {
	if glyphpath.IsEmpty(g.Outline) {
		return rect.Rect{}
	}
	return glyphpath.BBox(g.Outline.Iter())
}

func (g *Glyph) String() string {
	if !g.HasCodePoint() {
		return fmt.Sprintf("glyph %d %q", g.Index, g.Name)
	}
	return fmt.Sprintf("glyph %d %q U+%04X", g.Index, g.Name, g.CodePoint)
}
