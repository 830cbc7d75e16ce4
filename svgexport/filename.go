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

package svgexport

import (
	"strings"
	"unicode"
)

// Filename returns the file name used when a glyph is saved as an SVG file,
// in the form "<slug>-<hexCode>.svg".
func Filename(name, hexCode string) string {
	slug := Slugify(name)
	if slug == "" {
		slug = "glyph"
	}
	return slug + "-" + hexCode + ".svg"
}

// Slugify turns a glyph name into a file name component.  Runs of white
// space become a single hyphen, and characters which are not allowed in
// file names on common systems are removed.  Letter case is preserved.
func Slugify(name string) string {
	var parts []string
	for _, field := range strings.Fields(name) {
		field = strings.Map(func(r rune) rune {
			if unicode.IsControl(r) || strings.ContainsRune(`/\:*?"<>|`, r) {
				return -1
			}
			return r
		}, field)
		if field != "" {
			parts = append(parts, field)
		}
	}
	return strings.Join(parts, "-")
}
