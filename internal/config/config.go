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

// Package config holds the settings of the explorer server.
//
// Settings are taken, in increasing order of precedence, from the built-in
// defaults, an optional TOML file, environment variables with prefix
// ICONFONT_, and command line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap/zapcore"
	"golang.org/x/exp/slices"

	"seehuhn.de/go/iconfont/fontfile"
	"seehuhn.de/go/iconfont/svgexport"
)

// EnvPrefix is prepended to the names of all environment variables.
const EnvPrefix = "ICONFONT_"

// Config is the server configuration.
type Config struct {
	Addr    string `toml:"addr" env:"ADDR"`
	Font    string `toml:"font" env:"FONT"`
	Mapping string `toml:"mapping" env:"MAPPING"`
	Backend string `toml:"backend" env:"BACKEND"`

	// ListedRanges selects catalog.ListedRanges instead of the default
	// range rules.
	ListedRanges bool `toml:"listed_ranges" env:"LISTED_RANGES"`

	// Watch reloads the font and mapping files when they change on disk.
	Watch bool `toml:"watch" env:"WATCH"`

	LogLevel      string `toml:"log_level" env:"LOG_LEVEL"`
	MaxUploadSize int64  `toml:"max_upload_size" env:"MAX_UPLOAD_SIZE"`

	SVG SVG `toml:"svg" envPrefix:"SVG_"`
}

// SVG holds the default export settings.  Individual requests can override
// them.
type SVG struct {
	Size        float64 `toml:"size" env:"SIZE"`
	Fill        string  `toml:"fill" env:"FILL"`
	Stroke      string  `toml:"stroke" env:"STROKE"`
	StrokeWidth float64 `toml:"stroke_width" env:"STROKE_WIDTH"`
	Metadata    bool    `toml:"metadata" env:"METADATA"`
}

// Export converts the settings into an svgexport configuration.
func (s SVG) Export() svgexport.Config {
	return svgexport.Config{
		CanvasSize:  s.Size,
		Fill:        s.Fill,
		Stroke:      s.Stroke,
		StrokeWidth: s.StrokeWidth,
		Metadata:    s.Metadata,
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	d := svgexport.DefaultConfig
	return &Config{
		Addr:          "localhost:8080",
		Backend:       fontfile.BackendSfnt,
		LogLevel:      "info",
		MaxUploadSize: 32 << 20,
		SVG: SVG{
			Size:        d.CanvasSize,
			Fill:        d.Fill,
			Stroke:      d.Stroke,
			StrokeWidth: d.StrokeWidth,
			Metadata:    d.Metadata,
		},
	}
}

// LoadFile merges the settings from a TOML file into c.
// Unknown keys are an error.
func (c *Config) LoadFile(fname string) error {
	fd, err := os.Open(fname)
	if err != nil {
		return err
	}
	defer fd.Close()
	return c.loadTOML(fd, fname)
}

func (c *Config) loadTOML(r io.Reader, fname string) error {
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		return fmt.Errorf("%s: %w", fname, err)
	}
	return nil
}

// LoadEnv merges the settings from environment variables into c.
// If environ is nil, the process environment is used.
func (c *Config) LoadEnv(environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(c, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// RegisterFlags defines command line flags for all settings, using the
// current values of c as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Addr, "addr", c.Addr, "listen on `address`")
	fs.StringVar(&c.Mapping, "mapping", c.Mapping, "read glyph names from the mapping `file` (.json, .yaml or .toml)")
	fs.StringVar(&c.Backend, "backend", c.Backend, "font decoder `name` (sfnt or ximage)")
	fs.BoolVar(&c.ListedRanges, "listed-ranges", c.ListedRanges, "give the private-use range precedence over icon blocks")
	fs.BoolVar(&c.Watch, "watch", c.Watch, "reload font and mapping when the files change")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "minimum log `level`")
	fs.Int64Var(&c.MaxUploadSize, "max-upload", c.MaxUploadSize, "maximum upload size in `bytes`")
	fs.Float64Var(&c.SVG.Size, "size", c.SVG.Size, "default SVG canvas `size`")
	fs.StringVar(&c.SVG.Fill, "fill", c.SVG.Fill, "default fill `color`")
	fs.StringVar(&c.SVG.Stroke, "stroke", c.SVG.Stroke, "default stroke `color`")
	fs.Float64Var(&c.SVG.StrokeWidth, "stroke-width", c.SVG.StrokeWidth, "default stroke `width`")
	fs.BoolVar(&c.SVG.Metadata, "metadata", c.SVG.Metadata, "embed XMP metadata in SVG files")
}

// Load builds the configuration from all sources.  The flags are defined
// on fs and parsed from args.  An optional positional argument names the
// font file.  If environ is nil, the process environment is used.
func Load(fs *flag.FlagSet, args []string, environ map[string]string) (*Config, error) {
	// The first pass only finds the configuration file.
	var configFile string
	pre := flag.NewFlagSet(fs.Name(), flag.ContinueOnError)
	pre.SetOutput(io.Discard)
	Default().RegisterFlags(pre)
	pre.StringVar(&configFile, "config", "", "")
	if err := pre.Parse(args); err != nil && !errors.Is(err, flag.ErrHelp) {
		return nil, err
	}

	c := Default()
	if configFile != "" {
		if err := c.LoadFile(configFile); err != nil {
			return nil, err
		}
	}
	if err := c.LoadEnv(environ); err != nil {
		return nil, err
	}

	c.RegisterFlags(fs)
	fs.String("config", configFile, "read settings from the TOML `file`")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	switch fs.NArg() {
	case 0:
	case 1:
		c.Font = fs.Arg(0)
	default:
		return nil, fmt.Errorf("too many arguments: %q", fs.Args())
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("missing listen address")
	}
	if !slices.Contains(fontfile.Backends, c.Backend) {
		return fmt.Errorf("unknown font backend %q", c.Backend)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.MaxUploadSize <= 0 {
		return fmt.Errorf("invalid upload limit %d", c.MaxUploadSize)
	}
	if c.Watch && c.Font == "" && c.Mapping == "" {
		return errors.New("nothing to watch: no font or mapping file given")
	}
	svg := c.SVG.Export()
	return svg.Validate()
}

// Level returns the log level.
func (c *Config) Level() (zapcore.Level, error) {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return l, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return l, nil
}
