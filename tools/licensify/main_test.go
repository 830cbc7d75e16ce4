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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLicensify(t *testing.T) {
	dir := t.TempDir()
	bare := filepath.Join(dir, "a", "bare.go")
	done := filepath.Join(dir, "a", "done.go")
	skipped := filepath.Join(dir, "_pack", "x.go")
	hidden := filepath.Join(dir, ".cache", "y.go")
	writeFile(t, bare, "package a\n")
	writeFile(t, done, header+"package a\n")
	writeFile(t, skipped, "package x\n")
	writeFile(t, hidden, "package y\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "package notes\n")

	missing, err := licensify(dir, true)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]string{bare}, missing); d != "" {
		t.Errorf("check mode (-want +got):\n%s", d)
	}
	body, _ := os.ReadFile(bare)
	if strings.HasPrefix(string(body), header) {
		t.Error("check mode modified a file")
	}

	missing, err = licensify(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]string{bare}, missing); d != "" {
		t.Errorf("update mode (-want +got):\n%s", d)
	}
	body, _ = os.ReadFile(bare)
	if string(body) != header+"package a\n" {
		t.Errorf("wrong content after update:\n%s", body)
	}
	body, _ = os.ReadFile(skipped)
	if string(body) != "package x\n" {
		t.Error("file in skipped directory was modified")
	}

	missing, err = licensify(dir, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(missing) != 0 {
		t.Errorf("still missing after update: %v", missing)
	}
}
