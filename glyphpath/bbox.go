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

package glyphpath

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// BBox returns the exact bounding box of the path.  An empty path has the
// zero rectangle as its bounding box.
func BBox(p path.Path) rect.Rect {
	var b bboxBuilder
	var cur, start vec.Vec2
	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			cur = pts[0]
			start = cur
			b.add(cur)
		case path.CmdLineTo:
			cur = pts[0]
			b.add(cur)
		case path.CmdQuadTo:
			b.quad(cur, pts[0], pts[1])
			cur = pts[1]
		case path.CmdCubeTo:
			b.cube(cur, pts[0], pts[1], pts[2])
			cur = pts[2]
		case path.CmdClose:
			cur = start
		}
	}
	if !b.valid {
		return rect.Rect{}
	}
	return b.r
}

type bboxBuilder struct {
	r     rect.Rect
	valid bool
}

func (b *bboxBuilder) add(p vec.Vec2) {
	if !b.valid {
		b.r = rect.Rect{LLx: p.X, LLy: p.Y, URx: p.X, URy: p.Y}
		b.valid = true
		return
	}
	b.r.LLx = math.Min(b.r.LLx, p.X)
	b.r.LLy = math.Min(b.r.LLy, p.Y)
	b.r.URx = math.Max(b.r.URx, p.X)
	b.r.URy = math.Max(b.r.URy, p.Y)
}

func (b *bboxBuilder) quad(p0, p1, p2 vec.Vec2) {
	b.add(p0)
	b.add(p2)
	for _, t := range quadExtrema(p0.X, p1.X, p2.X) {
		b.add(quadAt(p0, p1, p2, t))
	}
	for _, t := range quadExtrema(p0.Y, p1.Y, p2.Y) {
		b.add(quadAt(p0, p1, p2, t))
	}
}

func (b *bboxBuilder) cube(p0, p1, p2, p3 vec.Vec2) {
	b.add(p0)
	b.add(p3)
	for _, t := range cubeExtrema(p0.X, p1.X, p2.X, p3.X) {
		b.add(cubeAt(p0, p1, p2, p3, t))
	}
	for _, t := range cubeExtrema(p0.Y, p1.Y, p2.Y, p3.Y) {
		b.add(cubeAt(p0, p1, p2, p3, t))
	}
}

func quadExtrema(a, b, c float64) []float64 {
	den := a - 2*b + c
	if den == 0 {
		return nil
	}
	t := (a - b) / den
	if t <= 0 || t >= 1 {
		return nil
	}
	return []float64{t}
}

func cubeExtrema(p0, p1, p2, p3 float64) []float64 {
	// B'(t)/3 = a t^2 + b t + c
	a := -p0 + 3*p1 - 3*p2 + p3
	b := 2 * (p0 - 2*p1 + p2)
	c := p1 - p0

	var roots []float64
	if math.Abs(a) < 1e-12 {
		if b != 0 {
			roots = append(roots, -c/b)
		}
	} else {
		disc := b*b - 4*a*c
		switch {
		case disc == 0:
			roots = append(roots, -b/(2*a))
		case disc > 0:
			sq := math.Sqrt(disc)
			roots = append(roots, (-b+sq)/(2*a), (-b-sq)/(2*a))
		}
	}

	res := roots[:0]
	for _, t := range roots {
		if t > 0 && t < 1 {
			res = append(res, t)
		}
	}
	return res
}

func quadAt(p0, p1, p2 vec.Vec2, t float64) vec.Vec2 {
	s := 1 - t
	return vec.Vec2{
		X: s*s*p0.X + 2*s*t*p1.X + t*t*p2.X,
		Y: s*s*p0.Y + 2*s*t*p1.Y + t*t*p2.Y,
	}
}

func cubeAt(p0, p1, p2, p3 vec.Vec2, t float64) vec.Vec2 {
	s := 1 - t
	return vec.Vec2{
		X: s*s*s*p0.X + 3*s*s*t*p1.X + 3*s*t*t*p2.X + t*t*t*p3.X,
		Y: s*s*s*p0.Y + 3*s*s*t*p1.Y + 3*s*t*t*p2.Y + t*t*t*p3.Y,
	}
}
