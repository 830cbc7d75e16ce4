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
	"fmt"
	"html"
	"math"
	"strings"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/iconfont/glyphpath"
	"seehuhn.de/go/iconfont/internal/float"
)

// Config describes the appearance of an exported SVG document.
type Config struct {
	// CanvasSize is the width and height of the square SVG canvas.
	CanvasSize float64

	// Fill is the fill color.  The value "none" disables filling.
	Fill string

	// Stroke is the stroke color.  It is only used if StrokeWidth > 0.
	Stroke string

	// StrokeWidth is the stroke width in canvas units.  If this is zero, no
	// stroke attributes are written.
	StrokeWidth float64

	// Metadata enables an XMP metadata block describing the glyph.
	Metadata bool
}

// DefaultConfig is the configuration used by the tools and the explorer
// unless overridden.
var DefaultConfig = Config{
	CanvasSize: 100,
	Fill:       "#000000",
	Stroke:     "#000000",
}

// Validate checks that the configuration can be used to produce a document.
func (c *Config) Validate() error {
	if !(c.CanvasSize > 0) || math.IsInf(c.CanvasSize, 0) {
		return &TransformError{Reason: fmt.Sprintf("invalid canvas size %g", c.CanvasSize)}
	}
	if !(c.StrokeWidth >= 0) || math.IsInf(c.StrokeWidth, 0) {
		return &TransformError{Reason: fmt.Sprintf("invalid stroke width %g", c.StrokeWidth)}
	}
	if strings.TrimSpace(c.Fill) == "" {
		return &TransformError{Reason: "missing fill color"}
	}
	if c.StrokeWidth > 0 && strings.TrimSpace(c.Stroke) == "" {
		return &TransformError{Reason: "missing stroke color"}
	}
	return nil
}

// Meta describes the glyph shown in a document.  It is used for the
// optional metadata block.
type Meta struct {
	Name       string
	FontFamily string
	CodePoint  rune
	GlyphIndex int
	Category   string
}

// Document transforms the outline and wraps the path data in a complete
// SVG document.  The meta argument may be nil; it is only used if
// cfg.Metadata is set.
func Document(p *path.Data, bbox rect.Rect, cfg *Config, unitsPerEm float64, meta *Meta) (string, error) {
	if glyphpath.IsEmpty(p) {
		return "", ErrEmptyOutline
	}
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	d, err := PathData(p, bbox, cfg.CanvasSize, unitsPerEm)
	if err != nil {
		return "", err
	}

	var metadata string
	if cfg.Metadata && meta != nil {
		metadata, err = xmpMetadata(meta)
		if err != nil {
			return "", err
		}
	}

	return wrap(d, cfg, metadata), nil
}

func wrap(d string, cfg *Config, metadata string) string {
	size := float.Format(cfg.CanvasSize)

	attrs := []string{`d="` + d + `"`}
	if cfg.Fill == "none" {
		attrs = append(attrs, `fill="none"`)
	} else {
		attrs = append(attrs, `fill="`+html.EscapeString(cfg.Fill)+`"`)
	}
	if cfg.StrokeWidth > 0 {
		attrs = append(attrs,
			`stroke="`+html.EscapeString(cfg.Stroke)+`"`,
			`stroke-width="`+float.Format(cfg.StrokeWidth)+`"`)
	}

	b := &strings.Builder{}
	fmt.Fprintf(b, `<svg width="%s" height="%s" viewBox="0 0 %s %s" xmlns="http://www.w3.org/2000/svg">`,
		size, size, size, size)
	b.WriteString("\n")
	if metadata != "" {
		b.WriteString("  <metadata>\n")
		b.WriteString(metadata)
		if !strings.HasSuffix(metadata, "\n") {
			b.WriteString("\n")
		}
		b.WriteString("  </metadata>\n")
	}
	b.WriteString("  <path " + strings.Join(attrs, " ") + "/>\n")
	b.WriteString("</svg>")
	return b.String()
}
