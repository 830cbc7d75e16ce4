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
	"golang.org/x/image/font"
	xsfnt "golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// The x/image parser has no reverse character map, so the code point
// assignment is found by probing.  These ranges cover the planes which are
// used by icon fonts in practice.
var probeRanges = [][2]rune{
	{0x0000, 0x2FFFF},    // BMP, SMP, SIP
	{0xE0000, 0x10FFFF}, // SSP and the supplementary private use areas
}

func decodeXImage(data []byte) (*Font, error) {
	f, err := xsfnt.Parse(data)
	if err != nil {
		return nil, err
	}

	var buf xsfnt.Buffer

	upem := f.UnitsPerEm()
	// At ppem == unitsPerEm one pixel is one design unit, so that the
	// 26.6 fixed point values convert to design units exactly.
	ppem := fixed.I(int(upem))

	res := &Font{
		UnitsPerEm: uint16(upem),
		Backend:    BackendXImage,
	}
	if name, err := f.Name(&buf, xsfnt.NameIDFamily); err == nil {
		res.FamilyName = name
	}
	if m, err := f.Metrics(&buf, ppem, font.HintingNone); err == nil {
		res.Ascender = fromFixed(m.Ascent)
		res.Descender = -fromFixed(m.Descent)
	}

	numGlyphs := f.NumGlyphs()
	gidToRune := make(map[xsfnt.GlyphIndex]rune)
	for _, rng := range probeRanges {
		for r := rng[0]; r <= rng[1]; r++ {
			if r >= 0xD800 && r <= 0xDFFF {
				continue
			}
			gid, err := f.GlyphIndex(&buf, r)
			if err != nil || gid == 0 || int(gid) >= numGlyphs {
				continue
			}
			if _, seen := gidToRune[gid]; !seen {
				gidToRune[gid] = r
			}
		}
	}

	res.Glyphs = make([]*Glyph, numGlyphs)
	for i := range numGlyphs {
		gid := xsfnt.GlyphIndex(i)
		g := &Glyph{
			Index:     i,
			CodePoint: NoCodePoint,
			Outline:   &path.Data{},
		}
		if r, ok := gidToRune[gid]; ok {
			g.CodePoint = r
		}
		if name, err := f.GlyphName(&buf, gid); err == nil {
			g.Name = name
		}

		// Glyphs which fail to load (e.g. color glyphs) are kept with an
		// empty outline.
		segments, err := f.LoadGlyph(&buf, gid, ppem, nil)
		if err == nil {
			g.Outline = segmentsToPath(segments)
		}

		res.Glyphs[i] = g
	}

	return res, nil
}

// segmentsToPath converts x/image segments to path data.  The y-axis is
// flipped back to point up, and the implicit closing of each contour is
// made explicit.
func segmentsToPath(segments xsfnt.Segments) *path.Data {
	d := &path.Data{}
	open := false
	for _, s := range segments {
		a := s.Args
		switch s.Op {
		case xsfnt.SegmentOpMoveTo:
			if open {
				d.Close()
			}
			d.MoveTo(toVec(a[0]))
			open = true
		case xsfnt.SegmentOpLineTo:
			d.LineTo(toVec(a[0]))
		case xsfnt.SegmentOpQuadTo:
			d.QuadTo(toVec(a[0]), toVec(a[1]))
		case xsfnt.SegmentOpCubeTo:
			d.CubeTo(toVec(a[0]), toVec(a[1]), toVec(a[2]))
		}
	}
	if open {
		d.Close()
	}
	return d
}

// toVec converts a point from the y-down pixel space used by x/image.
func toVec(p fixed.Point26_6) vec.Vec2 {
	return vec.Vec2{X: fromFixed(p.X), Y: -fromFixed(p.Y)}
}

func fromFixed(x fixed.Int26_6) float64 {
	return float64(x) / 64
}
