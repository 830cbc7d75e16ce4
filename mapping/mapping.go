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

// Package mapping reads tables which assign names like "nf-cod-add" to
// code points, as published by icon font projects.
//
// Two shapes are understood, in JSON, YAML and TOML syntax: a flat table
// mapping names to hex codes, and the Nerd Fonts "glyphnames.json" shape,
// where every name maps to an object with a "code" field.
package mapping

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Entry is one row of a name mapping.
type Entry struct {
	Name string // e.g. "nf-dev-git"
	Hex  string // e.g. "E702"
}

// Table is an ordered name mapping.  The order matters: when more than one
// name refers to the same code point, later entries take precedence.
type Table []Entry

// NormalizeHex converts a hex code into canonical form: upper case, at
// least four digits, without a "U+" or "0x" prefix.
func NormalizeHex(s string) (string, error) {
	r, err := ParseHex(s)
	if err != nil {
		return "", err
	}
	return Hex(r), nil
}

// ParseHex converts a hex code like "e700", "U+E700" or "0xE700" into a
// code point.
func ParseHex(s string) (rune, error) {
	t := strings.TrimSpace(s)
	if len(t) >= 2 {
		switch t[:2] {
		case "U+", "u+", "0x", "0X":
			t = t[2:]
		}
	}
	if t == "" || len(t) > 8 {
		return 0, fmt.Errorf("invalid hex code %q", s)
	}
	x, err := strconv.ParseUint(t, 16, 32)
	if err != nil || x > utf8.MaxRune {
		return 0, fmt.Errorf("invalid hex code %q", s)
	}
	return rune(x), nil
}

// Hex returns the canonical hex code of a code point.
func Hex(r rune) string {
	return fmt.Sprintf("%04X", r)
}

// Normalize returns a copy of the table with all hex codes in canonical
// form.  Entries with an empty name are dropped.
func (t Table) Normalize() (Table, error) {
	res := make(Table, 0, len(t))
	for _, e := range t {
		if e.Name == "" {
			continue
		}
		hex, err := NormalizeHex(e.Hex)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", e.Name, err)
		}
		res = append(res, Entry{Name: e.Name, Hex: hex})
	}
	return res, nil
}

// ByHex returns the entry used for each hex code.  If several entries share
// a hex code, the last one wins.  Hex codes which cannot be parsed are
// ignored.
func (t Table) ByHex() map[string]Entry {
	res := make(map[string]Entry, len(t))
	for _, e := range t {
		hex, err := NormalizeHex(e.Hex)
		if err != nil || e.Name == "" {
			continue
		}
		res[hex] = Entry{Name: e.Name, Hex: hex}
	}
	return res
}

// DisplayName converts a mapping key into a human readable name,
// e.g. "nf-dev-git" becomes "dev git".
func DisplayName(key string) string {
	return strings.ReplaceAll(strings.Replace(key, "nf-", "", 1), "-", " ")
}
