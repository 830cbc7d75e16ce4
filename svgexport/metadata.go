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
	"bytes"
	"fmt"
	"strconv"

	"golang.org/x/text/language"
	"seehuhn.de/go/xmp"
)

// Generator is recorded as xmp:CreatorTool in the XMP metadata.
const Generator = "seehuhn.de/go/iconfont"

// IconFont is the XMP namespace for icon glyph metadata.
type IconFont struct {
	_          xmp.Namespace `xmp:"https://seehuhn.de/go/iconfont/ns/1.0/"`
	_          xmp.Prefix    `xmp:"iconfont"`
	FontFamily xmp.Text
	CodePoint  xmp.Text
	GlyphIndex xmp.Text
	Category   xmp.Text
}

func xmpMetadata(meta *Meta) (string, error) {
	dc := &xmp.DublinCore{}
	dc.Title.Set(language.MustParse("x-default"), meta.Name)
	desc := fmt.Sprintf("U+%04X", meta.CodePoint)
	if meta.FontFamily != "" {
		desc = meta.FontFamily + " " + desc
	}
	dc.Description.Set(language.MustParse("x-default"), desc)

	icon := &IconFont{
		FontFamily: xmp.NewText(meta.FontFamily),
		CodePoint:  xmp.NewText(fmt.Sprintf("U+%04X", meta.CodePoint)),
		GlyphIndex: xmp.NewText(strconv.Itoa(meta.GlyphIndex)),
		Category:   xmp.NewText(meta.Category),
	}
	basic := &xmp.Basic{
		CreatorTool: xmp.NewAgentName(Generator),
	}

	packet := xmp.NewPacket()
	err := packet.Set(dc, basic, icon)
	if err != nil {
		return "", &TransformError{Reason: "metadata: " + err.Error()}
	}

	buf := &bytes.Buffer{}
	err = packet.Write(buf, &xmp.PacketOptions{Pretty: true})
	if err != nil {
		return "", &TransformError{Reason: "metadata: " + err.Error()}
	}
	return buf.String(), nil
}
