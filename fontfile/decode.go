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

package fontfile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/h2non/filetype"
)

// Names of the available decoder backends.
const (
	BackendSfnt   = "sfnt"
	BackendXImage = "ximage"
)

// Backends lists the names of all decoder backends.
var Backends = []string{BackendSfnt, BackendXImage}

// Options control how a font file is decoded.
type Options struct {
	// Backend selects the decoder.  The empty string selects BackendSfnt.
	Backend string
}

// ParseError is returned when a font file cannot be decoded.
type ParseError struct {
	Format string
	Err    error
}

func (err *ParseError) Error() string {
	msg := "cannot decode font"
	if err.Format != "" {
		msg += " (" + err.Format + ")"
	}
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	return msg
}

func (err *ParseError) Unwrap() error {
	return err.Err
}

var (
	errEmpty       = errors.New("no data")
	errUnsupported = errors.New("unsupported container format")
	errNoOutlines  = errors.New("font has no glyph outlines")
)

// Decode parses a TrueType or OpenType font.
// If the data cannot be parsed, the error is a *ParseError.
func Decode(data []byte, opt *Options) (*Font, error) {
	if opt == nil {
		opt = &Options{}
	}
	if len(data) == 0 {
		return nil, &ParseError{Err: errEmpty}
	}

	format := sniff(data)
	switch format {
	case "woff", "woff2":
		return nil, &ParseError{Format: format, Err: errUnsupported}
	}

	var decode func([]byte) (*Font, error)
	switch opt.Backend {
	case "", BackendSfnt:
		decode = decodeSfnt
	case BackendXImage:
		decode = decodeXImage
	default:
		return nil, fmt.Errorf("unknown font decoder %q", opt.Backend)
	}

	font, err := safeDecode(decode, data)
	if err != nil {
		return nil, &ParseError{Format: format, Err: err}
	}
	font.Format = format
	font.Data = data
	return font, nil
}

// Read reads all data from r and decodes the font.
func Read(r io.Reader, opt *Options) (*Font, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Decode(data, opt)
}

// ReadFile reads and decodes the named font file.
func ReadFile(fname string, opt *Options) (*Font, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	return Decode(data, opt)
}

// sniff returns the container format of the font data, or the empty string
// if the format is not recognised.
func sniff(data []byte) string {
	kind, err := filetype.Match(data)
	if err != nil {
		return ""
	}
	switch kind.Extension {
	case "ttf", "otf", "woff", "woff2":
		return kind.Extension
	}
	return ""
}

// safeDecode converts panics inside a backend into errors.  Both parsers
// assume well-formed tables in a few places.
func safeDecode(decode func([]byte) (*Font, error), data []byte) (font *Font, err error) {
	defer func() {
		if r := recover(); r != nil {
			font = nil
			err = fmt.Errorf("malformed font: %v", r)
		}
	}()
	return decode(data)
}
