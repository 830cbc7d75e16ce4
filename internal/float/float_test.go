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

package float

import (
	"math"
	"testing"
)

func TestFixed(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{math.Copysign(0, -1), "0.00"},
		{50, "50.00"},
		{1.5, "1.50"},
		{0.125, "0.13"},   // exact tie, rounded up
		{-0.125, "-0.13"}, // exact tie, rounded away from zero
		{0.375, "0.38"},
		{2.675, "2.67"}, // 2.67499999999999982236431605997495353221893310546875
		{1.005, "1.00"}, // 1.00499999999999989341858963598497211933135986328125
		{-0.001, "-0.00"},
		{123456.789, "123456.79"},
		{0.07, "0.07"},
	}
	for _, c := range cases {
		if got := Fixed(c.in, 2); got != c.want {
			t.Errorf("Fixed(%v, 2) = %q, want %q", c.in, got, c.want)
		}
	}

	if got := Fixed(2.5, 0); got != "3" {
		t.Errorf("Fixed(2.5, 0) = %q, want %q", got, "3")
	}
	if got := Fixed(0.5, 3); got != "0.500" {
		t.Errorf("Fixed(0.5, 3) = %q, want %q", got, "0.500")
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{100, "100"},
		{1.5, "1.5"},
		{0.25, "0.25"},
		{math.Copysign(0, -1), "0"},
		{-3, "-3"},
		{0.1, "0.1"},
		{1e-7, "0.0000001"},
		{1e21, "1000000000000000000000"},
	}
	for _, c := range cases {
		if got := Format(c.in); got != c.want {
			t.Errorf("Format(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}
