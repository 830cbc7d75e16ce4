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
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/iconfont/catalog"
	"seehuhn.de/go/iconfont/fontfile"
	"seehuhn.de/go/iconfont/mapping"
	"seehuhn.de/go/iconfont/svgexport"
)

var box = (&path.Data{}).
	MoveTo(vec.Vec2{X: 0, Y: 0}).
	LineTo(vec.Vec2{X: 100, Y: 0}).
	LineTo(vec.Vec2{X: 100, Y: 100}).
	Close()

func testFont(family string) *fontfile.Font {
	return &fontfile.Font{
		FamilyName: family,
		UnitsPerEm: 1000,
		Glyphs: []*fontfile.Glyph{
			{Index: 0, CodePoint: fontfile.NoCodePoint, Name: ".notdef"},
			{Index: 1, CodePoint: 0x41, Name: "A", Outline: box},
			{Index: 2, CodePoint: 0xE702, Name: "uniE702", Outline: box},
			{Index: 3, CodePoint: 0x20, Name: "space"},
			{Index: 4, CodePoint: 0xF001, Outline: box},
		},
	}
}

func loaded(t *testing.T) State {
	t.Helper()
	s, ticket := BeginLoad(State{})
	s, err := FinishLoad(s, ticket, testFont("Test Icons"), nil)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestLoadFont(t *testing.T) {
	s, err := LoadFont(context.Background(), State{}, bytes.NewReader(goregular.TTF), nil)
	if err != nil {
		t.Fatal(err)
	}
	if s.Status.Kind != StatusReady {
		t.Errorf("status %s: %s", s.Status.Kind, s.Status.Message)
	}
	wantMsg := fmt.Sprintf("Font loaded: Go (%d glyphs)", s.Font.NumGlyphs())
	if s.Status.Message != wantMsg {
		t.Errorf("got status %q, want %q", s.Status.Message, wantMsg)
	}
	if s.Seq != 1 || s.Applied != 1 {
		t.Errorf("Seq=%d Applied=%d", s.Seq, s.Applied)
	}
	n := s.Catalog.Len()
	if n == 0 || len(s.Visible) != n {
		t.Errorf("%d of %d records visible", len(s.Visible), n)
	}
	if got, want := Stats(s), fmt.Sprintf("Showing %d of %d icons", n, n); got != want {
		t.Errorf("Stats = %q, want %q", got, want)
	}
}

func TestLoadFontError(t *testing.T) {
	s := loaded(t)
	prev := s.Catalog

	s, err := LoadFont(context.Background(), s, strings.NewReader("not a font"), nil)
	var perr *fontfile.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("got %v, want *fontfile.ParseError", err)
	}
	if s.Catalog != prev || s.Font.FamilyName != "Test Icons" {
		t.Error("failed load replaced the catalog")
	}
	if s.Status.Kind != StatusError || !strings.HasPrefix(s.Status.Message, "Error loading font: ") {
		t.Errorf("unexpected status %s %q", s.Status.Kind, s.Status.Message)
	}
	if s.Applied != 1 || s.Seq != 2 || s.Finished != 2 {
		t.Errorf("Seq=%d Applied=%d Finished=%d", s.Seq, s.Applied, s.Finished)
	}
}

func TestLoadFontCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s, err := LoadFont(ctx, State{}, bytes.NewReader(goregular.TTF), nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
	if s.Font != nil {
		t.Error("canceled load installed a font")
	}
}

func TestStaleLoad(t *testing.T) {
	older := testFont("Older")
	newer := testFont("Newer")

	s, t1 := BeginLoad(State{})
	s, t2 := BeginLoad(s)
	s, err := FinishLoad(s, t2, newer, nil)
	if err != nil {
		t.Fatal(err)
	}
	s, err = FinishLoad(s, t1, older, nil)
	if !errors.Is(err, ErrStaleLoad) {
		t.Errorf("got %v, want ErrStaleLoad", err)
	}
	if s.Font != newer || s.Catalog.FamilyName() != "Newer" {
		t.Error("stale load replaced the newer font")
	}

	// a failed stale load must not change the status either
	s2, err := FinishLoad(s, t1, nil, errors.New("boom"))
	if !errors.Is(err, ErrStaleLoad) || s2.Status != s.Status {
		t.Errorf("stale failure changed the state: %v %v", err, s2.Status)
	}

	// a newer load which failed still supersedes an older one
	s, t1 = BeginLoad(State{})
	s, t2 = BeginLoad(s)
	s, err = FinishLoad(s, t2, nil, errors.New("bad font B"))
	if err == nil || errors.Is(err, ErrStaleLoad) {
		t.Fatalf("failed load: got %v", err)
	}
	failed := s.Status
	s, err = FinishLoad(s, t1, older, nil)
	if !errors.Is(err, ErrStaleLoad) {
		t.Errorf("older load after newer failure: got %v, want ErrStaleLoad", err)
	}
	if s.Font != nil || s.Catalog != nil || s.Status != failed {
		t.Errorf("older load replaced the state of a newer failed load: %v", s.Status)
	}

	// in-order completion applies both loads
	s, t1 = BeginLoad(State{})
	s, t2 = BeginLoad(s)
	s, err = FinishLoad(s, t1, older, nil)
	if err != nil {
		t.Fatal(err)
	}
	s, err = FinishLoad(s, t2, newer, nil)
	if err != nil {
		t.Fatal(err)
	}
	if s.Font != newer {
		t.Error("newer load was not applied")
	}

	// tickets which were never issued are rejected
	if _, err := FinishLoad(s, s.Seq+1, older, nil); !errors.Is(err, ErrStaleLoad) {
		t.Errorf("unknown ticket: got %v", err)
	}
}

func TestReloadDiscardsCatalog(t *testing.T) {
	s := loaded(t)
	s = SelectCategory(Search(s, "glyph"), "fontawesome")
	s, err := SelectHex(s, "E702")
	if err != nil {
		t.Fatal(err)
	}

	other := &fontfile.Font{
		FamilyName: "Other",
		UnitsPerEm: 2048,
		Glyphs: []*fontfile.Glyph{
			{Index: 0, CodePoint: fontfile.NoCodePoint},
			{Index: 1, CodePoint: 0x42, Name: "B", Outline: box},
		},
	}
	s, ticket := BeginLoad(s)
	s, err = FinishLoad(s, ticket, other, nil)
	if err != nil {
		t.Fatal(err)
	}
	if s.Catalog.Len() != 1 || len(s.Visible) != 1 {
		t.Errorf("catalog not replaced: %d records, %d visible", s.Catalog.Len(), len(s.Visible))
	}
	if s.Selected != nil || s.LastSVG != "" || s.Query != (catalog.Query{}) {
		t.Error("selection or query survived a font load")
	}
}

func TestSearch(t *testing.T) {
	s := loaded(t)

	s1 := Search(s, "glyph")
	if len(s1.Visible) != 1 || s1.Visible[0].HexCode != "F001" {
		t.Errorf("unexpected search result %v", s1.Visible)
	}
	if got := Stats(s1); got != "Showing 1 of 4 icons" {
		t.Errorf("Stats = %q", got)
	}
	if len(s.Visible) != 4 {
		t.Error("Search modified its input")
	}

	s2 := Search(s, "zzz")
	if got := Stats(s2); got != "No icons found" {
		t.Errorf("Stats = %q", got)
	}

	s3 := SelectCategory(s, "other")
	if len(s3.Visible) != 2 {
		t.Errorf("%d records in category other", len(s3.Visible))
	}
	s3 = SelectCategory(s3, catalog.CategoryAll)
	if len(s3.Visible) != 4 {
		t.Errorf("%d records in category all", len(s3.Visible))
	}

	if got := Stats(State{}); got != "No icons found" {
		t.Errorf("Stats without font = %q", got)
	}
	if s := Search(State{}, "x"); s.Visible != nil {
		t.Error("search without font gave results")
	}
}

func TestSelect(t *testing.T) {
	if _, err := Select(State{}, 0); !errors.Is(err, ErrNoFont) {
		t.Errorf("got %v, want ErrNoFont", err)
	}
	if _, err := SelectHex(State{}, "41"); !errors.Is(err, ErrNoFont) {
		t.Errorf("got %v, want ErrNoFont", err)
	}

	s := Search(loaded(t), "e7")
	s, err := Select(s, 0)
	if err != nil {
		t.Fatal(err)
	}
	if s.Selected.HexCode != "E702" {
		t.Errorf("selected %s", s.Selected)
	}

	for _, i := range []int{-1, 1, 100} {
		if _, err := Select(s, i); !errors.Is(err, ErrNotFound) {
			t.Errorf("Select(%d): got %v, want ErrNotFound", i, err)
		}
	}
	if _, err := SelectHex(s, "1234"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestGenerate(t *testing.T) {
	s := loaded(t)
	if _, _, err := Generate(s, nil); !errors.Is(err, ErrNoSelection) {
		t.Errorf("got %v, want ErrNoSelection", err)
	}
	if _, _, err := Generate(State{}, nil); !errors.Is(err, ErrNoFont) {
		t.Errorf("got %v, want ErrNoFont", err)
	}

	s, err := SelectHex(s, "e702")
	if err != nil {
		t.Fatal(err)
	}
	next, doc, err := Generate(s, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(doc, `viewBox="0 0 100 100"`) {
		t.Errorf("unexpected document\n%s", doc)
	}
	if next.LastSVG != doc || s.LastSVG != "" {
		t.Error("LastSVG not updated correctly")
	}

	// CopySVG reuses the last document, even for a different configuration
	cfg := svgexport.DefaultConfig
	cfg.CanvasSize = 24
	_, copied, err := CopySVG(next, &cfg)
	if err != nil {
		t.Fatal(err)
	}
	if copied != doc {
		t.Error("CopySVG did not reuse the generated document")
	}
	_, fresh, err := CopySVG(s, &cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(fresh, `viewBox="0 0 24 24"`) {
		t.Errorf("CopySVG did not generate a document\n%s", fresh)
	}

	// selecting another glyph invalidates the document
	other, err := SelectHex(next, "41")
	if err != nil {
		t.Fatal(err)
	}
	if other.LastSVG != "" {
		t.Error("LastSVG survived a selection change")
	}
	same, err := SelectHex(next, "E702")
	if err != nil {
		t.Fatal(err)
	}
	if same.LastSVG != doc {
		t.Error("reselecting the same glyph discarded LastSVG")
	}
}

func TestEmptyOutline(t *testing.T) {
	s, err := SelectHex(loaded(t), "0020")
	if err != nil {
		t.Fatal(err)
	}
	next, doc, err := Generate(s, nil)
	if !errors.Is(err, svgexport.ErrEmptyOutline) {
		t.Errorf("got %v, want ErrEmptyOutline", err)
	}
	if doc != "" || next.LastSVG != "" {
		t.Error("document produced for an empty outline")
	}
	if _, err := CopyPath(s, 100); !errors.Is(err, svgexport.ErrEmptyOutline) {
		t.Errorf("CopyPath: got %v, want ErrEmptyOutline", err)
	}
	if _, _, _, err := Download(s, nil); !errors.Is(err, svgexport.ErrEmptyOutline) {
		t.Errorf("Download: got %v, want ErrEmptyOutline", err)
	}
}

func TestCopyPath(t *testing.T) {
	s, err := SelectHex(loaded(t), "41")
	if err != nil {
		t.Fatal(err)
	}
	d, err := CopyPath(s, 100)
	if err != nil {
		t.Fatal(err)
	}
	if want := "M10.00,90.00L90.00,90.00L90.00,10.00Z"; d != want {
		t.Errorf("got %s, want %s", d, want)
	}
	if _, err := CopyPath(loaded(t), 100); !errors.Is(err, ErrNoSelection) {
		t.Errorf("got %v, want ErrNoSelection", err)
	}
}

func TestDownload(t *testing.T) {
	s, err := SelectHex(loaded(t), "E702")
	if err != nil {
		t.Fatal(err)
	}
	s, name, content, err := Download(s, nil)
	if err != nil {
		t.Fatal(err)
	}
	if name != "uniE702-E702.svg" {
		t.Errorf("file name %q", name)
	}
	if content == "" || content != s.LastSVG {
		t.Error("download content does not match LastSVG")
	}
}

func TestSetMapping(t *testing.T) {
	m := mapping.Table{{Name: "nf-dev-git", Hex: "e702"}}

	// without a font, the mapping is only stored
	s := SetMapping(State{}, m)
	if s.Catalog != nil || len(s.Mapping) != 1 {
		t.Error("unexpected state after SetMapping without font")
	}

	s = loaded(t)
	s, err := SelectHex(s, "E702")
	if err != nil {
		t.Fatal(err)
	}
	s, _, err = Generate(s, nil)
	if err != nil {
		t.Fatal(err)
	}

	s = SetMapping(s, m)
	if s.LastSVG != "" {
		t.Error("LastSVG survived a mapping change")
	}
	if s.Selected == nil || s.Selected.Name != "dev git" || s.Selected.OriginalName != "nf-dev-git" {
		t.Errorf("selection not updated: %v", s.Selected)
	}

	// a font loaded later uses the mapping as well
	s, ticket := BeginLoad(s)
	s, err = FinishLoad(s, ticket, testFont("Again"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if rec, _ := s.Catalog.Lookup("E702"); rec.Name != "dev git" {
		t.Errorf("mapping not applied on reload: %s", rec)
	}

	s = SetMapping(s, nil)
	if rec, _ := s.Catalog.Lookup("E702"); rec.Name != "uniE702" {
		t.Errorf("mapping not removed: %s", rec)
	}
}

func TestSessionConcurrentLoads(t *testing.T) {
	sess := NewSession(nil)

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = sess.LoadFont(context.Background(), bytes.NewReader(goregular.TTF), nil)
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil && !errors.Is(err, ErrStaleLoad) {
			t.Error(err)
		}
	}
	s := sess.State()
	if s.Seq != n || s.Applied != n {
		t.Errorf("Seq=%d Applied=%d, want %d", s.Seq, s.Applied, n)
	}
	if s.Status.Kind != StatusReady {
		t.Errorf("status %s", s.Status.Kind)
	}
}

func TestSessionUpdate(t *testing.T) {
	sess := NewSession(&catalog.Builder{Ranges: catalog.ListedRanges})
	_, err := sess.LoadFont(context.Background(), bytes.NewReader(goregular.TTF), nil)
	if err != nil {
		t.Fatal(err)
	}

	err = sess.Update(func(s State) (State, error) {
		return SelectHex(s, "0041")
	})
	if err != nil {
		t.Fatal(err)
	}
	if sel := sess.State().Selected; sel == nil || sel.HexCode != "0041" {
		t.Errorf("selection not stored: %v", sel)
	}

	err = sess.Update(func(s State) (State, error) {
		return SelectHex(s, "junk")
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
	if sel := sess.State().Selected; sel == nil || sel.HexCode != "0041" {
		t.Error("failed update changed the state")
	}

	sess.SetMapping(mapping.Table{{Name: "nf-fa-letter_a", Hex: "41"}})
	s := sess.State()
	if s.Selected == nil || s.Selected.Category != "fontawesome" {
		t.Errorf("mapping not applied: %v", s.Selected)
	}
}
