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

// Package float formats numbers for SVG output.
package float

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Fixed formats x with exactly the given number of digits after the
// decimal point.
//
// Rounding is done on the exact binary value of x.  Exact ties are rounded
// away from zero, so that the output agrees with JavaScript's
// Number.prototype.toFixed.  Negative zero is printed without a sign.
func Fixed(x float64, digits int) string {
	if math.IsNaN(x) || math.IsInf(x, 0) || digits < 0 {
		return strconv.FormatFloat(x, 'f', digits, 64)
	}

	sign := ""
	if x < 0 {
		sign = "-"
		x = -x
	}

	const prec = 256
	scaled := new(big.Float).SetPrec(prec).SetFloat64(x)
	pow := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	scaled.Mul(scaled, new(big.Float).SetPrec(prec).SetInt(pow))

	n, _ := scaled.Int(nil) // truncates
	frac := new(big.Float).SetPrec(prec).SetInt(n)
	frac.Sub(scaled, frac)
	if frac.Cmp(half) >= 0 {
		n.Add(n, one)
	}

	s := n.String()
	if digits > 0 {
		if len(s) <= digits {
			s = strings.Repeat("0", digits-len(s)+1) + s
		}
		k := len(s) - digits
		s = s[:k] + "." + s[k:]
	}
	return sign + s
}

var (
	half = big.NewFloat(0.5)
	one  = big.NewInt(1)
)

// Format returns the shortest decimal representation of x, without
// exponent.  Negative zero is printed as "0".
func Format(x float64) string {
	if x == 0 {
		return "0"
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}
