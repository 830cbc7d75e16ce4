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
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"seehuhn.de/go/iconfont/internal/config"
	"seehuhn.de/go/iconfont/server"
	"seehuhn.de/go/iconfont/tools/internal/buildinfo"
	"seehuhn.de/go/iconfont/tools/internal/profile"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")
	memprofile = flag.String("memprofile", "", "write memory profile to `file`")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "iconfont-explorer — browse the glyphs of an icon font\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", buildinfo.Short("iconfont-explorer"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  iconfont-explorer [options] [font.ttf]\n\n")
		fmt.Fprintf(os.Stderr, "Arguments:\n")
		fmt.Fprintf(os.Stderr, "  font.ttf   font to show at startup; more fonts can be uploaded in the browser\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nAll options can also be set in the configuration file or via\n")
		fmt.Fprintf(os.Stderr, "environment variables, e.g. %sADDR or %sSVG_FILL.\n", config.EnvPrefix, config.EnvPrefix)
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  iconfont-explorer SymbolsNerdFont-Regular.ttf\n")
		fmt.Fprintf(os.Stderr, "  iconfont-explorer -watch -mapping glyphnames.json icons.ttf\n")
	}
	cfg, err := config.Load(flag.CommandLine, os.Args[1:], nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	stop, err := profile.Start(*cpuprofile, *memprofile)
	if err != nil {
		return err
	}
	defer stop()

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	srv := server.New(cfg, nil, logger)
	defer srv.Close()

	if cfg.Mapping != "" {
		if err := srv.LoadMappingFile(cfg.Mapping); err != nil {
			return err
		}
	}
	if cfg.Font != "" {
		if err := srv.LoadFontFile(ctx, cfg.Font); err != nil {
			return err
		}
	}

	if cfg.Watch {
		w, err := srv.NewWatcher()
		if err != nil {
			return err
		}
		defer w.Close()
		go w.Run(ctx)
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		errc <- httpServer.ListenAndServe()
	}()
	logger.Info("listening",
		zap.String("addr", "http://"+cfg.Addr+"/"),
		zap.String("version", buildinfo.Version()))

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	err = httpServer.Shutdown(shutdownCtx)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.Encoding = "console"
	zcfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	return zcfg.Build()
}
