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
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"seehuhn.de/go/iconfont/catalog"
	"seehuhn.de/go/iconfont/explorer"
	"seehuhn.de/go/iconfont/fontfile"
	"seehuhn.de/go/iconfont/mapping"
	"seehuhn.de/go/iconfont/svgexport"
	"seehuhn.de/go/iconfont/tools/internal/buildinfo"
	"seehuhn.de/go/iconfont/tools/internal/profile"
)

var (
	size        = flag.Float64("size", svgexport.DefaultConfig.CanvasSize, "canvas `size` in pixels")
	fill        = flag.String("fill", svgexport.DefaultConfig.Fill, "fill `colour`")
	stroke      = flag.String("stroke", svgexport.DefaultConfig.Stroke, "stroke `colour`, empty for no stroke")
	strokeWidth = flag.Float64("stroke-width", svgexport.DefaultConfig.StrokeWidth, "stroke `width` in pixels")
	metadata    = flag.Bool("metadata", false, "embed XMP metadata describing the glyph")
	pathOnly    = flag.Bool("path", false, "print only the path data instead of a complete SVG file")
	mappingFile = flag.String("mapping", "", "read glyph names from the mapping `file`")
	backend     = flag.String("backend", fontfile.BackendSfnt, "font decoder `name`: "+strings.Join(fontfile.Backends, ", "))
	output      = flag.String("o", "", "write the SVG to `file` or into a directory instead of stdout")
	cpuprofile  = flag.String("cpuprofile", "", "write cpu profile to `file`")
	memprofile  = flag.String("memprofile", "", "write memory profile to `file`")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "glyph-svg — export a single glyph as an SVG file\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", buildinfo.Short("glyph-svg"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  glyph-svg [options] font.ttf glyph\n\n")
		fmt.Fprintf(os.Stderr, "Arguments:\n")
		fmt.Fprintf(os.Stderr, "  font.ttf   TrueType or OpenType font file\n")
		fmt.Fprintf(os.Stderr, "  glyph      hex code (e.g. E700 or U+E700) or glyph name\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  glyph-svg icons.ttf E700 > icon.svg\n")
		fmt.Fprintf(os.Stderr, "  glyph-svg -size 64 -fill red -o out/ icons.ttf uniE702\n")
		fmt.Fprintf(os.Stderr, "  glyph-svg -path -size 24 icons.ttf F001\n")
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0), flag.Arg(1)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(fname, glyph string) error {
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

	s := explorer.State{Font: font, Mapping: m}
	s.Catalog = catalog.Build(font, m)

	rec, err := lookup(s.Catalog, glyph)
	if err != nil {
		return err
	}
	s, err = explorer.SelectHex(s, rec.HexCode)
	if err != nil {
		return err
	}

	if *pathOnly {
		d, err := explorer.CopyPath(s, *size)
		if err != nil {
			return err
		}
		fmt.Println(d)
		return nil
	}

	cfg := &svgexport.Config{
		CanvasSize:  *size,
		Fill:        *fill,
		Stroke:      *stroke,
		StrokeWidth: *strokeWidth,
		Metadata:    *metadata,
	}
	_, name, doc, err := explorer.Download(s, cfg)
	if err != nil {
		return err
	}

	if *output == "" {
		_, err = os.Stdout.WriteString(doc)
		return err
	}
	target := *output
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		target = filepath.Join(target, name)
	}
	return os.WriteFile(target, []byte(doc), 0o644)
}

func lookup(cat *catalog.Catalog, glyph string) (*catalog.Record, error) {
	if rec, ok := cat.LookupName(glyph); ok {
		return rec, nil
	}
	if rec, ok := cat.Lookup(glyph); ok {
		return rec, nil
	}
	if _, err := mapping.NormalizeHex(glyph); err == nil {
		return nil, fmt.Errorf("%s: no glyph with this code point", glyph)
	}
	return nil, errors.New(glyph + ": no glyph with this name")
}
