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

package fontfile

import (
	"bytes"
	"unicode"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/glyph"
)

func decodeSfnt(data []byte) (*Font, error) {
	info, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if info.Outlines == nil {
		return nil, errNoOutlines
	}

	// Build a reverse mapping from GID to the lowest character code.
	gidToRune := make(map[glyph.ID]rune)
	if info.CMapTable != nil {
		subtable, err := info.CMapTable.GetBest()
		if err == nil && subtable != nil {
			low, high := subtable.CodeRange()
			if low < 0 {
				low = 0
			}
			if high > unicode.MaxRune {
				high = unicode.MaxRune
			}
			for r := low; r <= high; r++ {
				gid := subtable.Lookup(r)
				if gid == 0 {
					continue
				}
				if _, seen := gidToRune[gid]; !seen {
					gidToRune[gid] = r
				}
			}
		}
	}

	font := &Font{
		FamilyName: info.FamilyName,
		UnitsPerEm: info.UnitsPerEm,
		Ascender:   float64(info.Ascent),
		Descender:  float64(info.Descent),
		Backend:    BackendSfnt,
	}

	numGlyphs := info.NumGlyphs()
	font.Glyphs = make([]*Glyph, numGlyphs)
	for i := range numGlyphs {
		gid := glyph.ID(i)
		g := &Glyph{
			Index:     i,
			CodePoint: NoCodePoint,
			Name:      info.GlyphName(gid),
		}
		if r, ok := gidToRune[gid]; ok {
			g.CodePoint = r
		}

		g.Outline = path.DataFromPath(info.Outlines.Path(gid))

		font.Glyphs[i] = g
	}

	return font, nil
}
