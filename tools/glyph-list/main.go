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

package main

import (
	"flag"
	"fmt"
	"hash/fnv"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"seehuhn.de/go/iconfont/catalog"
	"seehuhn.de/go/iconfont/fontfile"
	"seehuhn.de/go/iconfont/mapping"
	"seehuhn.de/go/iconfont/tools/internal/buildinfo"
	"seehuhn.de/go/iconfont/tools/internal/profile"
)

var (
	query        = flag.String("q", "", "only list glyphs whose name or hex code contains `text`")
	category     = flag.String("category", catalog.CategoryAll, "only list glyphs in `category`")
	mappingFile  = flag.String("mapping", "", "read glyph names from the mapping `file` (JSON, YAML or TOML)")
	backend      = flag.String("backend", fontfile.BackendSfnt, "font decoder `name`: "+strings.Join(fontfile.Backends, ", "))
	categories   = flag.Bool("categories", false, "list the categories with glyph counts instead of the glyphs")
	listedRanges = flag.Bool("listed-ranges", false, "apply the code point ranges in their listed order")
	cpuprofile   = flag.String("cpuprofile", "", "write cpu profile to `file`")
	memprofile   = flag.String("memprofile", "", "write memory profile to `file`")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "glyph-list — list the glyphs of an icon font\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", buildinfo.Short("glyph-list"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  glyph-list [options] font.ttf\n\n")
		fmt.Fprintf(os.Stderr, "Arguments:\n")
		fmt.Fprintf(os.Stderr, "  font.ttf   TrueType or OpenType font file\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  glyph-list -q arrow SymbolsNerdFont-Regular.ttf\n")
		fmt.Fprintf(os.Stderr, "  glyph-list -mapping glyphnames.json -category dev icons.ttf\n")
		fmt.Fprintf(os.Stderr, "  glyph-list -categories icons.ttf\n")
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(fname string) error {
	stop, err := profile.Start(*cpuprofile, *memprofile)
	if err != nil {
		return err
	}
	defer stop()

	font, err := fontfile.ReadFile(fname, &fontfile.Options{Backend: *backend})
	if err != nil {
		return err
	}
	var m mapping.Table
	if *mappingFile != "" {
		m, err = mapping.ReadFile(*mappingFile)
		if err != nil {
			return err
		}
	}

	b := &catalog.Builder{}
	if *listedRanges {
		b.Ranges = catalog.ListedRanges
	}
	cat := b.Build(font, m)

	out := termenv.NewOutput(os.Stdout)
	if *categories {
		return listCategories(out, cat)
	}

	recs := cat.Filter(catalog.Query{Text: *query, Category: *category})
	return listGlyphs(out, recs, terminalWidth())
}

func listCategories(out *termenv.Output, cat *catalog.Catalog) error {
	counts := make(map[string]int)
	for _, rec := range cat.Records() {
		counts[rec.Category]++
	}
	for _, c := range cat.Categories() {
		label := out.String(fmt.Sprintf("%-16s", c)).Foreground(categoryColor(out, c))
		_, err := fmt.Fprintf(out, "%s %6d\n", label, counts[c])
		if err != nil {
			return err
		}
	}
	return nil
}

func listGlyphs(out *termenv.Output, recs []*catalog.Record, width int) error {
	catWidth := 0
	for _, rec := range recs {
		catWidth = max(catWidth, len(rec.Category))
	}

	// hex code, glyph index and the separating spaces
	const fixed = 8 + 1 + 6 + 1
	nameWidth := width - fixed - catWidth - 1
	for _, rec := range recs {
		name := rec.Name
		if r := []rune(name); width > 0 && nameWidth > 3 && len(r) > nameWidth {
			name = string(r[:nameWidth-3]) + "..."
		}
		label := out.String(fmt.Sprintf("%-*s", catWidth, rec.Category)).
			Foreground(categoryColor(out, rec.Category))
		_, err := fmt.Fprintf(out, "%-8s %6d %s %s\n",
			rec.HexCode, rec.GlyphIndex, label, name)
		if err != nil {
			return err
		}
	}
	if len(recs) == 0 {
		_, err := io.WriteString(os.Stderr, "no glyphs found\n")
		return err
	}
	return nil
}

// palette holds the ANSI colours used for the category column.
var palette = []string{"1", "2", "3", "4", "5", "6", "9", "10", "11", "12", "13", "14"}

// categoryColor assigns every category a stable colour.
func categoryColor(out *termenv.Output, category string) termenv.Color {
	if category == catalog.CategoryOther {
		return out.Color("8")
	}
	h := fnv.New32a()
	h.Write([]byte(category))
	return out.Color(palette[h.Sum32()%uint32(len(palette))])
}

// terminalWidth returns the width of the terminal connected to stdout,
// or 0 if the output is not a terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	w, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return w
}
