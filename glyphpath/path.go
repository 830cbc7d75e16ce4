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

// Package glyphpath provides helpers for glyph outlines.
//
// Outlines are stored as [path.Data] in font design units, with the y-axis
// pointing up.  The bounding box computed by [BBox] is exact: for curve
// segments the extrema of the curve are used instead of the control points.
package glyphpath

import (
	"fmt"
	"strings"

	"seehuhn.de/go/geom/path"
)

// IsEmpty reports whether the outline has no commands.
func IsEmpty(d *path.Data) bool {
	return d == nil || len(d.Cmds) == 0
}

// NumContours returns the number of sub-paths.
func NumContours(p path.Path) int {
	n := 0
	for cmd := range p {
		if cmd == path.CmdMoveTo {
			n++
		}
	}
	return n
}

// Format returns a human readable representation of the path,
// for use in test failures and debug output.
func Format(p path.Path) string {
	var parts []string
	for cmd, pts := range p {
		s := cmdName(cmd)
		if len(pts) > 0 {
			coords := make([]string, len(pts))
			for i, pt := range pts {
				coords[i] = fmt.Sprintf("%g,%g", pt.X, pt.Y)
			}
			s += "(" + strings.Join(coords, " ") + ")"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}

func cmdName(cmd path.Command) string {
	switch cmd {
	case path.CmdMoveTo:
		return "MoveTo"
	case path.CmdLineTo:
		return "LineTo"
	case path.CmdQuadTo:
		return "QuadTo"
	case path.CmdCubeTo:
		return "CubeTo"
	case path.CmdClose:
		return "Close"
	default:
		return fmt.Sprintf("Command(%d)", byte(cmd))
	}
}
