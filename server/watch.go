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

package server

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// settleTime is the delay between the last change to a file and the
// reload, so that a file is not read while it is still being written.
const settleTime = 200 * time.Millisecond

// Watcher reloads the font and mapping files of a server when they change.
type Watcher struct {
	srv     *Server
	fsw     *fsnotify.Watcher
	font    string
	mapping string

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewWatcher starts watching the font and mapping files named in the server
// configuration.  The directories containing the files are watched, since
// many programs replace files instead of writing them in place.
func (s *Server) NewWatcher() (*Watcher, error) {
	w := &Watcher{
		srv:    s,
		timers: make(map[string]*time.Timer),
	}
	if s.cfg.Font != "" {
		w.font = filepath.Clean(s.cfg.Font)
	}
	if s.cfg.Mapping != "" {
		w.mapping = filepath.Clean(s.cfg.Mapping)
	}
	if w.font == "" && w.mapping == "" {
		return nil, errors.New("no files to watch")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	dirs := map[string]bool{}
	for _, fname := range []string{w.font, w.mapping} {
		if fname == "" {
			continue
		}
		dir := filepath.Dir(fname)
		if dirs[dir] {
			continue
		}
		dirs[dir] = true
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	w.fsw = fsw
	return w, nil
}

// Run processes file system events until ctx is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.stopTimers()
	log := w.srv.log
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			switch filepath.Clean(ev.Name) {
			case w.font:
				w.schedule(w.font, func() {
					w.srv.LoadFontFile(ctx, w.font)
				})
			case w.mapping:
				w.schedule(w.mapping, func() {
					w.srv.LoadMappingFile(w.mapping)
				})
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			log.Warn("file watcher error", zap.Error(err))
		}
	}
}

// schedule runs reload after the file has been quiet for settleTime.
func (w *Watcher) schedule(fname string, reload func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.timers[fname]; ok {
		t.Reset(settleTime)
		return
	}
	w.srv.log.Debug("file changed", zap.String("file", fname))
	w.timers[fname] = time.AfterFunc(settleTime, func() {
		w.mu.Lock()
		delete(w.timers, fname)
		w.mu.Unlock()
		reload()
	})
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for fname, t := range w.timers {
		t.Stop()
		delete(w.timers, fname)
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
