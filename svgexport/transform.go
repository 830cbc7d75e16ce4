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

// Package svgexport converts glyph outlines into SVG path data and SVG
// documents.
//
// The glyph is scaled so that its larger bounding box dimension covers 80%
// of a square canvas, centered on the canvas, and flipped vertically since
// font design space has the y-axis pointing up while SVG has it pointing
// down.  All numbers in the path data are printed with exactly two digits
// after the decimal point, so the output is reproducible.
package svgexport

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/iconfont/glyphpath"
	"seehuhn.de/go/iconfont/internal/float"
)

// ErrEmptyOutline is returned when a glyph without path data is exported.
var ErrEmptyOutline = errors.New("glyph has no path data")

// TransformError indicates that the coordinate transformation could not be
// computed, for example because the scale factor is not finite.
type TransformError struct {
	Reason string
}

func (err *TransformError) Error() string {
	return "cannot transform glyph outline: " + err.Reason
}

// FillRatio is the fraction of the canvas covered by the larger dimension
// of the glyph bounding box.
const FillRatio = 0.8

// DefaultUnitsPerEm is used for the fallback scale, when the font does not
// specify a positive number of design units per em.
const DefaultUnitsPerEm = 1000

// Transform maps font design units to SVG canvas coordinates.
type Transform struct {
	Scale float64

	// Matrix moves the bounding box center to the origin, scales and
	// flips the y-axis, and then moves the origin to the canvas center.
	Matrix matrix.Matrix
}

// NewTransform computes the transformation which centers a glyph with the
// given bounding box on a square canvas.
//
// For glyphs without extent (e.g. a space), the scale falls back to
// canvasSize/unitsPerEm.
func NewTransform(bbox rect.Rect, canvasSize, unitsPerEm float64) (*Transform, error) {
	if !(canvasSize > 0) || math.IsInf(canvasSize, 0) {
		return nil, &TransformError{Reason: fmt.Sprintf("invalid canvas size %g", canvasSize)}
	}

	glyphWidth := bbox.URx - bbox.LLx
	glyphHeight := bbox.URy - bbox.LLy
	maxDimension := math.Max(glyphWidth, glyphHeight)

	var scale float64
	if maxDimension > 0 {
		scale = canvasSize * FillRatio / maxDimension
	} else {
		if !(unitsPerEm > 0) {
			unitsPerEm = DefaultUnitsPerEm
		}
		scale = canvasSize / unitsPerEm
	}
	if !(scale > 0) || math.IsInf(scale, 0) {
		return nil, &TransformError{Reason: fmt.Sprintf("invalid scale factor %g", scale)}
	}

	glyphCenter := vec.Vec2{
		X: (bbox.LLx + bbox.URx) / 2,
		Y: (bbox.LLy + bbox.URy) / 2,
	}
	if !isFinite(glyphCenter) {
		return nil, &TransformError{Reason: "bounding box is not finite"}
	}

	center := canvasSize / 2
	t := &Transform{
		Scale: scale,
		Matrix: matrix.Translate(-glyphCenter.X, -glyphCenter.Y).
			Scale(scale, -scale).
			Translate(center, center),
	}
	return t, nil
}

// Apply maps a point from design units to canvas coordinates.
func (t *Transform) Apply(p vec.Vec2) vec.Vec2 {
	x, y := t.Matrix.Apply(p.X, p.Y)
	return vec.Vec2{X: x, Y: y}
}

// PathData transforms the outline and returns it in SVG path syntax.
func PathData(d *path.Data, bbox rect.Rect, canvasSize, unitsPerEm float64) (string, error) {
	if glyphpath.IsEmpty(d) {
		return "", ErrEmptyOutline
	}
	t, err := NewTransform(bbox, canvasSize, unitsPerEm)
	if err != nil {
		return "", err
	}
	return t.PathData(d)
}

// PathData returns the transformed outline in SVG path syntax.
func (t *Transform) PathData(d *path.Data) (string, error) {
	if glyphpath.IsEmpty(d) {
		return "", ErrEmptyOutline
	}

	b := &strings.Builder{}
	i := 0
	for cmd, pts := range d.Iter().Transform(t.Matrix) {
		var letter byte
		switch cmd {
		case path.CmdMoveTo:
			letter = 'M'
		case path.CmdLineTo:
			letter = 'L'
		case path.CmdQuadTo:
			letter = 'Q'
		case path.CmdCubeTo:
			letter = 'C'
		case path.CmdClose:
			b.WriteByte('Z')
			i++
			continue
		default:
			return "", &TransformError{Reason: fmt.Sprintf("command %d: unknown operation %d", i, cmd)}
		}

		b.WriteByte(letter)
		for j, q := range pts {
			if !isFinite(q) {
				return "", &TransformError{Reason: fmt.Sprintf("command %d: non-finite coordinate", i)}
			}
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(float.Fixed(q.X, 2))
			b.WriteByte(',')
			b.WriteString(float.Fixed(q.Y, 2))
		}
		i++
	}
	return b.String(), nil
}

func isFinite(v vec.Vec2) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}
