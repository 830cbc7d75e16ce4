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

package catalog

import (
	"strings"

	"golang.org/x/exp/slices"
)

// Special category names.
const (
	// CategoryAll selects every record in a query.
	CategoryAll = "all"

	// CategoryOther is used for code points outside all range rules.
	CategoryOther = "other"
)

// RangeRule assigns a category to the code points First, ..., Last.
type RangeRule struct {
	First, Last rune
	Category    string
}

// Contains reports whether r lies in the range.
func (rule RangeRule) Contains(r rune) bool {
	return r >= rule.First && r <= rule.Last
}

// DefaultRanges classifies code points by Unicode block.  The specific
// icon blocks inside the private use area come before the general
// private-use rule, so that each of them can match.
var DefaultRanges = []RangeRule{
	{First: 0xF000, Last: 0xF2FF, Category: "fontawesome"},
	{First: 0xE200, Last: 0xE2FF, Category: "weather"},
	{First: 0xE700, Last: 0xE7FF, Category: "dev"},
	{First: 0xE000, Last: 0xF8FF, Category: "private-use"},
}

// ListedRanges contains the same rules as DefaultRanges, but with the
// private-use rule first.  With first-match-wins evaluation this assigns
// "private-use" to the whole private use area.
var ListedRanges = []RangeRule{
	{First: 0xE000, Last: 0xF8FF, Category: "private-use"},
	{First: 0xF000, Last: 0xF2FF, Category: "fontawesome"},
	{First: 0xE200, Last: 0xE2FF, Category: "weather"},
	{First: 0xE700, Last: 0xE7FF, Category: "dev"},
}

// RangeCategory returns the category of the first rule which contains r,
// or CategoryOther.
func RangeCategory(rules []RangeRule, r rune) string {
	for _, rule := range rules {
		if rule.Contains(r) {
			return rule.Category
		}
	}
	return CategoryOther
}

// TokenRule assigns a category to mapping keys which contain one of the
// given tokens.
type TokenRule struct {
	Tokens   []string
	Category string
}

// DefaultTokens classifies Nerd Fonts mapping keys like "nf-cod-add" by
// their icon set.
var DefaultTokens = []TokenRule{
	{Tokens: []string{"cod"}, Category: "vscode"},
	{Tokens: []string{"fa"}, Category: "fontawesome"},
	{Tokens: []string{"dev"}, Category: "dev"},
	{Tokens: []string{"file"}, Category: "file"},
	{Tokens: []string{"weather"}, Category: "weather"},
	{Tokens: []string{"oct"}, Category: "octicons"},
	{Tokens: []string{"md", "mdi"}, Category: "material"},
	{Tokens: []string{"linux"}, Category: "linux"},
	{Tokens: []string{"pom", "powerline"}, Category: "powerline"},
	{Tokens: []string{"seti"}, Category: "seti"},
	{Tokens: []string{"custom"}, Category: "custom"},
}

// TokenCategory splits key at every "-" and returns the category of the
// first rule which has a token among the parts.  The second return value
// is false if no rule matches.
func TokenCategory(rules []TokenRule, key string) (string, bool) {
	parts := strings.Split(key, "-")
	for _, rule := range rules {
		for _, token := range rule.Tokens {
			if slices.Contains(parts, token) {
				return rule.Category, true
			}
		}
	}
	return "", false
}
