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

// Package catalog turns the glyphs of an icon font into a searchable list
// of named and categorized records.
//
// A record is created for every glyph which can be reached through the
// character map of the font.  Names and categories come from an optional
// name mapping (see package mapping), from the glyph names in the font, and
// from the Unicode block of the code point, in this order of precedence.
package catalog

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"seehuhn.de/go/iconfont/fontfile"
	"seehuhn.de/go/iconfont/mapping"
)

// Record describes one glyph of the catalog.  Records are shared between
// the catalog and all query results and must not be modified.
type Record struct {
	// Name is the display name of the glyph.
	Name string

	// OriginalName is the mapping key which supplied the name, or the
	// empty string if no mapping entry applied.
	OriginalName string

	CodePoint  rune
	HexCode    string // upper case, at least 4 digits
	GlyphIndex int
	Category   string

	Glyph *fontfile.Glyph

	foldedName string
	foldedHex  string
}

func (r *Record) String() string {
	return fmt.Sprintf("U+%s %q (%s)", r.HexCode, r.Name, r.Category)
}

// Catalog is the immutable list of records for one font.
type Catalog struct {
	familyName string
	unitsPerEm uint16
	records    []*Record
	byHex      map[string]*Record
	categories []string
}

// Builder holds the classification rules used to build a catalog.
// The zero value uses DefaultRanges and DefaultTokens.
type Builder struct {
	Ranges []RangeRule
	Tokens []TokenRule
}

// Build creates the catalog for a font, using the default rules.
// The mapping may be nil.
func Build(font *fontfile.Font, m mapping.Table) *Catalog {
	b := &Builder{}
	return b.Build(font, m)
}

// Build creates the catalog for a font.  The mapping may be nil.
// If font is nil, the result is an empty catalog.
func (b *Builder) Build(font *fontfile.Font, m mapping.Table) *Catalog {
	ranges := b.Ranges
	if ranges == nil {
		ranges = DefaultRanges
	}
	tokens := b.Tokens
	if tokens == nil {
		tokens = DefaultTokens
	}

	c := &Catalog{byHex: make(map[string]*Record)}
	if font == nil {
		return c
	}
	c.familyName = font.FamilyName
	c.unitsPerEm = font.UnitsPerEm

	names := m.ByHex()
	for _, g := range font.Glyphs {
		if !g.HasCodePoint() {
			continue
		}

		hex := mapping.Hex(g.CodePoint)
		rec := &Record{
			Name:       "glyph-" + hex,
			CodePoint:  g.CodePoint,
			HexCode:    hex,
			GlyphIndex: g.Index,
			Category:   RangeCategory(ranges, g.CodePoint),
			Glyph:      g,
		}
		if g.Name != "" && g.Name != ".notdef" {
			rec.Name = strings.NewReplacer("_", " ", "-", " ").Replace(g.Name)
		}
		if e, ok := names[hex]; ok {
			rec.Name = mapping.DisplayName(e.Name)
			rec.OriginalName = e.Name
			if cat, ok := TokenCategory(tokens, e.Name); ok {
				rec.Category = cat
			}
		}
		rec.foldedName = fold(rec.Name)
		rec.foldedHex = fold(rec.HexCode)

		c.records = append(c.records, rec)
		if _, seen := c.byHex[hex]; !seen {
			c.byHex[hex] = rec
		}
	}

	for _, rec := range c.records {
		c.categories = append(c.categories, rec.Category)
	}
	slices.Sort(c.categories)
	c.categories = slices.Compact(c.categories)

	return c
}

// Len returns the number of records in the catalog.
func (c *Catalog) Len() int {
	return len(c.records)
}

// Records returns all records, in glyph index order.
func (c *Catalog) Records() []*Record {
	return slices.Clone(c.records)
}

// At returns the i-th record.
func (c *Catalog) At(i int) *Record {
	return c.records[i]
}

// Lookup returns the record for the given hex code.  The hex code is
// normalized first, so "e700", "U+E700" and "E700" are equivalent.
func (c *Catalog) Lookup(hex string) (*Record, bool) {
	key, err := mapping.NormalizeHex(hex)
	if err != nil {
		return nil, false
	}
	rec, ok := c.byHex[key]
	return rec, ok
}

// LookupName returns the first record with the given name or mapping key.
func (c *Catalog) LookupName(name string) (*Record, bool) {
	for _, rec := range c.records {
		if rec.Name == name || (rec.OriginalName != "" && rec.OriginalName == name) {
			return rec, true
		}
	}
	return nil, false
}

// Categories returns the sorted list of distinct categories.
func (c *Catalog) Categories() []string {
	return slices.Clone(c.categories)
}

// FamilyName returns the family name of the font.
func (c *Catalog) FamilyName() string {
	return c.familyName
}

// UnitsPerEm returns the number of font design units per em.
func (c *Catalog) UnitsPerEm() uint16 {
	return c.unitsPerEm
}

// DisplayName returns the label shown for a category, with the first letter
// capitalized.
func DisplayName(category string) string {
	if category == "" {
		return ""
	}
	for i := range category {
		if i == 0 {
			continue
		}
		return cases.Upper(language.Und).String(category[:i]) + category[i:]
	}
	return cases.Upper(language.Und).String(category)
}
