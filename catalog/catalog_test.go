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

package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/gofont/goregular"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/iconfont/fontfile"
	"seehuhn.de/go/iconfont/mapping"
)

var box = (&path.Data{}).
	MoveTo(vec.Vec2{X: 0, Y: 0}).
	LineTo(vec.Vec2{X: 100, Y: 0}).
	LineTo(vec.Vec2{X: 100, Y: 100}).
	Close()

// testFont returns a small font with glyphs in several Unicode blocks.
func testFont() *fontfile.Font {
	glyphs := []*fontfile.Glyph{
		{Index: 0, CodePoint: fontfile.NoCodePoint, Name: ".notdef"},
		{Index: 1, CodePoint: 0x41, Name: "A", Outline: box},
		{Index: 2, CodePoint: 0xE702, Name: "uniE702", Outline: box},
		{Index: 3, CodePoint: 0xF001, Outline: box},
		{Index: 4, CodePoint: 0xE201, Name: "weather_sun-icon", Outline: box},
		{Index: 5, CodePoint: 0xE000, Name: ".notdef", Outline: box},
		{Index: 6, CodePoint: fontfile.NoCodePoint, Name: "unreachable"},
		{Index: 7, CodePoint: 0x10FFFD},
	}
	return &fontfile.Font{
		FamilyName: "Test Icons",
		UnitsPerEm: 1000,
		Glyphs:     glyphs,
	}
}

type summary struct {
	Name, Original, Hex, Category string
	Index                         int
}

func summarize(recs []*Record) []summary {
	var res []summary
	for _, r := range recs {
		res = append(res, summary{r.Name, r.OriginalName, r.HexCode, r.Category, r.GlyphIndex})
	}
	return res
}

func TestBuild(t *testing.T) {
	c := Build(testFont(), nil)

	want := []summary{
		{"A", "", "0041", "other", 1},
		{"uniE702", "", "E702", "dev", 2},
		{"glyph-F001", "", "F001", "fontawesome", 3},
		{"weather sun icon", "", "E201", "weather", 4},
		{"glyph-E000", "", "E000", "private-use", 5},
		{"glyph-10FFFD", "", "10FFFD", "other", 7},
	}
	if d := cmp.Diff(want, summarize(c.Records())); d != "" {
		t.Error(d)
	}

	wantCat := []string{"dev", "fontawesome", "other", "private-use", "weather"}
	if d := cmp.Diff(wantCat, c.Categories()); d != "" {
		t.Error(d)
	}

	if c.FamilyName() != "Test Icons" || c.UnitsPerEm() != 1000 || c.Len() != 6 {
		t.Errorf("unexpected catalog header %q %d %d", c.FamilyName(), c.UnitsPerEm(), c.Len())
	}
	if c.At(1).Glyph != testFontGlyph(c, 0xE702) {
		t.Error("record does not refer to its glyph")
	}
}

func testFontGlyph(c *Catalog, r rune) *fontfile.Glyph {
	for _, rec := range c.records {
		if rec.CodePoint == r {
			return rec.Glyph
		}
	}
	return nil
}

func TestBuildListedRanges(t *testing.T) {
	b := &Builder{Ranges: ListedRanges}
	c := b.Build(testFont(), nil)

	got := map[string]string{}
	for _, rec := range c.Records() {
		got[rec.HexCode] = rec.Category
	}
	want := map[string]string{
		"0041":   "other",
		"E702":   "private-use",
		"F001":   "private-use",
		"E201":   "private-use",
		"E000":   "private-use",
		"10FFFD": "other",
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Error(d)
	}
}

func TestBuildMapping(t *testing.T) {
	m := mapping.Table{
		{Name: "nf-dev-git", Hex: "e702"},
		{Name: "nf-fa-star", Hex: "F001"},
		{Name: "nf-fa-other", Hex: "U+F001"},
		{Name: "nf-foo-bar", Hex: "E000"},
		{Name: "nf-cod-add", Hex: "41"},
		{Name: "nf-unused", Hex: "FFFF"},
		{Name: "nf-broken", Hex: "not hex"},
	}
	c := Build(testFont(), m)

	want := []summary{
		{"cod add", "nf-cod-add", "0041", "vscode", 1},
		{"dev git", "nf-dev-git", "E702", "dev", 2},
		{"fa other", "nf-fa-other", "F001", "fontawesome", 3},
		{"weather sun icon", "", "E201", "weather", 4},
		{"foo bar", "nf-foo-bar", "E000", "private-use", 5},
		{"glyph-10FFFD", "", "10FFFD", "other", 7},
	}
	if d := cmp.Diff(want, summarize(c.Records())); d != "" {
		t.Error(d)
	}

	// rebuilding without the mapping restores the font's own names
	c = Build(testFont(), nil)
	if rec, _ := c.Lookup("41"); rec.Name != "A" || rec.Category != "other" {
		t.Errorf("got %s after rebuild", rec)
	}
}

func TestBuildNil(t *testing.T) {
	c := Build(nil, nil)
	if c.Len() != 0 || len(c.Categories()) != 0 {
		t.Error("nil font gave a non-empty catalog")
	}
	if got := c.Filter(Query{}); got == nil || len(got) != 0 {
		t.Errorf("Filter on empty catalog = %v", got)
	}
}

func TestLookup(t *testing.T) {
	c := Build(testFont(), mapping.Table{{Name: "nf-dev-git", Hex: "E702"}})
	for _, key := range []string{"E702", "e702", "U+E702", "0xe702"} {
		rec, ok := c.Lookup(key)
		if !ok || rec.GlyphIndex != 2 {
			t.Errorf("Lookup(%q) = %v, %t", key, rec, ok)
		}
	}
	if _, ok := c.Lookup("1234"); ok {
		t.Error("found a glyph which does not exist")
	}
	if _, ok := c.Lookup("junk"); ok {
		t.Error("invalid hex code accepted")
	}

	for _, name := range []string{"dev git", "nf-dev-git"} {
		rec, ok := c.LookupName(name)
		if !ok || rec.HexCode != "E702" {
			t.Errorf("LookupName(%q) = %v, %t", name, rec, ok)
		}
	}
}

func TestRangeCategory(t *testing.T) {
	for r := rune(0xE700); r <= 0xE7FF; r++ {
		if got := RangeCategory(DefaultRanges, r); got != "dev" {
			t.Fatalf("U+%04X: got %q, want dev", r, got)
		}
		if got := RangeCategory(ListedRanges, r); got != "private-use" {
			t.Fatalf("U+%04X: got %q with listed ranges", r, got)
		}
	}

	cases := []struct {
		r    rune
		want string
	}{
		{0x41, "other"},
		{0xDFFF, "other"},
		{0xE000, "private-use"},
		{0xE1FF, "private-use"},
		{0xE200, "weather"},
		{0xE2FF, "weather"},
		{0xEFFF, "private-use"},
		{0xF000, "fontawesome"},
		{0xF2FF, "fontawesome"},
		{0xF300, "private-use"},
		{0xF8FF, "private-use"},
		{0xF900, "other"},
	}
	for _, c := range cases {
		if got := RangeCategory(DefaultRanges, c.r); got != c.want {
			t.Errorf("U+%04X: got %q, want %q", c.r, got, c.want)
		}
	}
	if got := RangeCategory(nil, 0xE700); got != CategoryOther {
		t.Errorf("empty rule list gave %q", got)
	}
}

func TestTokenCategory(t *testing.T) {
	cases := []struct {
		key  string
		want string
		ok   bool
	}{
		{"nf-cod-add", "vscode", true},
		{"nf-fa-star", "fontawesome", true},
		{"nf-dev-git", "dev", true},
		{"nf-custom-file", "file", true}, // "file" comes before "custom"
		{"nf-md-weather_sunny", "material", true},
		{"nf-md-weather", "weather", true}, // "weather" comes before "md"
		{"nf-oct-repo", "octicons", true},
		{"nf-mdi-account", "material", true},
		{"nf-linux-tux", "linux", true},
		{"nf-pom-clean_code", "powerline", true},
		{"nf-powerline-x", "powerline", true},
		{"nf-seti-go", "seti", true},
		{"nf-custom-vim", "custom", true},
		{"nf-facebook", "", false}, // tokens must match whole parts
		{"nf-foo-bar", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := TokenCategory(DefaultTokens, c.key)
		if got != c.want || ok != c.ok {
			t.Errorf("TokenCategory(%q) = %q, %t; want %q, %t", c.key, got, ok, c.want, c.ok)
		}
	}
}

func TestDisplayName(t *testing.T) {
	cases := map[string]string{
		"dev":         "Dev",
		"private-use": "Private-use",
		"vscode":      "Vscode",
		"x":           "X",
		"":            "",
	}
	for in, want := range cases {
		if got := DisplayName(in); got != want {
			t.Errorf("DisplayName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFilter(t *testing.T) {
	c := Build(testFont(), nil)

	hexes := func(recs []*Record) []string {
		res := []string{}
		for _, r := range recs {
			res = append(res, r.HexCode)
		}
		return res
	}

	cases := []struct {
		q    Query
		want []string
	}{
		{Query{}, []string{"0041", "E702", "F001", "E201", "E000", "10FFFD"}},
		{Query{Category: CategoryAll}, []string{"0041", "E702", "F001", "E201", "E000", "10FFFD"}},
		{Query{Text: "e70"}, []string{"E702"}},
		{Query{Text: "GLYPH"}, []string{"F001", "E000", "10FFFD"}},
		{Query{Text: "glyph", Category: "private-use"}, []string{"E000"}},
		{Query{Category: "weather"}, []string{"E201"}},
		{Query{Text: "Ａ"}, []string{"0041", "E201"}}, // full-width A
		{Query{Text: "sun icon"}, []string{"E201"}},
		{Query{Text: "zzz"}, []string{}},
		{Query{Category: "no-such-category"}, []string{}},
	}
	for _, tc := range cases {
		got := hexes(c.Filter(tc.q))
		if d := cmp.Diff(tc.want, got); d != "" {
			t.Errorf("%+v: %s", tc.q, d)
		}
	}
}

func TestFilterSubset(t *testing.T) {
	c := Build(testFont(), mapping.Table{{Name: "nf-cod-add", Hex: "41"}})

	texts := []string{"", "a", "e", "glyph", "0", "xyz"}
	for _, text := range texts {
		all := c.Filter(Query{Text: text})
		pos := map[*Record]int{}
		for i, rec := range all {
			pos[rec] = i
		}
		for _, cat := range c.Categories() {
			last := -1
			for _, rec := range c.Filter(Query{Text: text, Category: cat}) {
				i, ok := pos[rec]
				if !ok {
					t.Fatalf("%q/%s: %s not in unfiltered result", text, cat, rec)
				}
				if i <= last {
					t.Fatalf("%q/%s: order not preserved", text, cat)
				}
				last = i
				if !(Query{Text: text, Category: cat}).Matches(rec) {
					t.Fatalf("%q/%s: Matches disagrees with Filter", text, cat)
				}
			}
		}
	}
}

func TestBuildRealFont(t *testing.T) {
	font, err := fontfile.Decode(goregular.TTF, nil)
	if err != nil {
		t.Fatal(err)
	}
	c := Build(font, nil)

	n := 0
	for _, g := range font.Glyphs {
		if g.HasCodePoint() {
			n++
		}
	}
	if c.Len() != n {
		t.Errorf("catalog has %d records, font has %d mapped glyphs", c.Len(), n)
	}

	rec, ok := c.Lookup("0041")
	if !ok {
		t.Fatal("no record for U+0041")
	}
	if g := font.GlyphForRune('A'); rec.GlyphIndex != g.Index {
		t.Errorf("U+0041 maps to glyph %d, want %d", rec.GlyphIndex, g.Index)
	}

	for i := 1; i < c.Len(); i++ {
		if c.At(i-1).GlyphIndex >= c.At(i).GlyphIndex {
			t.Fatal("records are not in glyph index order")
		}
	}
}
