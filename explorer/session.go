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

package explorer

import (
	"context"
	"io"
	"sync"

	"seehuhn.de/go/iconfont/catalog"
	"seehuhn.de/go/iconfont/fontfile"
	"seehuhn.de/go/iconfont/mapping"
)

// Session holds an explorer state which is shared between goroutines.
type Session struct {
	mu    sync.Mutex
	state State
}

// NewSession returns a session without a font.  If rules is nil, the
// default classification rules are used.
func NewSession(rules *catalog.Builder) *Session {
	return &Session{state: State{Rules: rules}}
}

// State returns a snapshot of the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Update applies fn to the current state.  If fn returns an error, the
// state is left unchanged.
func (s *Session) Update(fn func(State) (State, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(s.state)
	if err != nil {
		return err
	}
	s.state = next
	return nil
}

// LoadFont reads and decodes a font without holding the lock, and then
// applies the result.  If a newer load has finished in the meantime, the
// result is discarded and ErrStaleLoad is returned.
//
// On success, the ticket of the applied load is returned.
func (s *Session) LoadFont(ctx context.Context, r io.Reader, opt *fontfile.Options) (uint64, error) {
	s.mu.Lock()
	var ticket uint64
	s.state, ticket = BeginLoad(s.state)
	s.mu.Unlock()

	font, err := ReadFont(ctx, r, opt)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state, err = FinishLoad(s.state, ticket, font, err)
	if err != nil {
		return 0, err
	}
	return ticket, nil
}

// SetMapping installs a new name mapping.
func (s *Session) SetMapping(m mapping.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = SetMapping(s.state, m)
}
