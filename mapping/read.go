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

package mapping

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format identifies the syntax of a mapping file.
type Format int

// These are the supported mapping file formats.
const (
	JSON Format = iota + 1
	YAML
	TOML
)

func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	case TOML:
		return "toml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat converts a format name like "json" or ".yml" into a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "json", "":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "toml":
		return TOML, nil
	}
	return 0, fmt.Errorf("unknown mapping format %q", s)
}

// FormatError is returned when a mapping file cannot be parsed.
type FormatError struct {
	Format Format
	Key    string // the offending entry, if known
	Err    error
}

func (err *FormatError) Error() string {
	if err.Key != "" {
		return fmt.Sprintf("%s mapping: entry %q: %v", err.Format, err.Key, err.Err)
	}
	return fmt.Sprintf("%s mapping: %v", err.Format, err.Err)
}

func (err *FormatError) Unwrap() error {
	return err.Err
}

var (
	errNotObject = errors.New("top level value must be an object")
	errBadValue  = errors.New("value must be a hex string or an object with a \"code\" field")
)

// ReadFile reads a mapping file.  The format is determined by the file name
// extension.
func ReadFile(fname string) (Table, error) {
	format, err := ParseFormat(filepath.Ext(fname))
	if err != nil {
		return nil, err
	}

	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	return Read(fd, format)
}

// Read reads a mapping in the given format.  The hex codes in the returned
// table are in canonical form.
func Read(r io.Reader, format Format) (Table, error) {
	var t Table
	var err error
	switch format {
	case JSON:
		t, err = readJSON(r)
	case YAML:
		t, err = readYAML(r)
	case TOML:
		t, err = readTOML(r)
	default:
		return nil, fmt.Errorf("unknown mapping format %s", format)
	}
	if err != nil {
		return nil, err
	}

	for i, e := range t {
		hex, err := NormalizeHex(e.Hex)
		if err != nil {
			return nil, &FormatError{Format: format, Key: e.Name, Err: err}
		}
		t[i].Hex = hex
	}
	return t, nil
}

// readJSON walks the token stream, so that the order of the keys is kept.
func readJSON(r io.Reader) (Table, error) {
	dec := json.NewDecoder(r)
	wrap := func(key string, err error) error {
		return &FormatError{Format: JSON, Key: key, Err: err}
	}

	tok, err := dec.Token()
	if err != nil {
		return nil, wrap("", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, wrap("", errNotObject)
	}

	var t Table
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, wrap("", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, wrap("", fmt.Errorf("unexpected token %v", tok))
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, wrap(key, err)
		}

		var hex string
		if json.Unmarshal(raw, &hex) == nil {
			t = append(t, Entry{Name: key, Hex: hex})
			continue
		}
		var obj struct {
			Code *string `json:"code"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, wrap(key, errBadValue)
		}
		if obj.Code == nil {
			// e.g. the "METADATA" entry of glyphnames.json
			continue
		}
		t = append(t, Entry{Name: key, Hex: *obj.Code})
	}

	if _, err := dec.Token(); err != nil {
		return nil, wrap("", err)
	}
	return t, nil
}

func readYAML(r io.Reader) (Table, error) {
	wrap := func(key string, err error) error {
		return &FormatError{Format: YAML, Key: key, Err: err}
	}

	var doc yaml.Node
	err := yaml.NewDecoder(r).Decode(&doc)
	if err == io.EOF {
		return nil, nil
	} else if err != nil {
		return nil, wrap("", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, nil
		}
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, wrap("", errNotObject)
	}

	var t Table
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		val := root.Content[i+1]
		switch val.Kind {
		case yaml.ScalarNode:
			t = append(t, Entry{Name: key, Hex: val.Value})
		case yaml.MappingNode:
			var obj struct {
				Code *string `yaml:"code"`
			}
			if err := val.Decode(&obj); err != nil {
				return nil, wrap(key, errBadValue)
			}
			if obj.Code != nil {
				t = append(t, Entry{Name: key, Hex: *obj.Code})
			}
		default:
			return nil, wrap(key, errBadValue)
		}
	}
	return t, nil
}

// readTOML sorts the entries by name, since the decoder does not report
// the order of the keys in the document.
func readTOML(r io.Reader) (Table, error) {
	wrap := func(key string, err error) error {
		return &FormatError{Format: TOML, Key: key, Err: err}
	}

	var data map[string]any
	if err := toml.NewDecoder(r).Decode(&data); err != nil {
		return nil, wrap("", err)
	}

	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var t Table
	for _, key := range keys {
		switch val := data[key].(type) {
		case string:
			t = append(t, Entry{Name: key, Hex: val})
		case map[string]any:
			code, present := val["code"]
			if !present {
				continue
			}
			hex, ok := code.(string)
			if !ok {
				return nil, wrap(key, errBadValue)
			}
			t = append(t, Entry{Name: key, Hex: hex})
		default:
			return nil, wrap(key, errBadValue)
		}
	}
	return t, nil
}
