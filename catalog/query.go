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

	"github.com/xdg-go/stringprep"
	"golang.org/x/text/cases"
)

// Query selects records from a catalog.
type Query struct {
	// Text is matched case-insensitively against the record name and hex
	// code.  The empty string matches every record.
	Text string

	// Category restricts the result to one category.  The empty string and
	// CategoryAll select every category.
	Category string
}

// Matches reports whether the record is selected by the query.
func (q Query) Matches(rec *Record) bool {
	return q.compile().matches(rec)
}

type compiledQuery struct {
	text     string
	category string
}

func (q Query) compile() compiledQuery {
	cq := compiledQuery{category: q.Category}
	if cq.category == CategoryAll {
		cq.category = ""
	}
	if q.Text != "" {
		cq.text = fold(q.Text)
	}
	return cq
}

func (cq compiledQuery) matches(rec *Record) bool {
	if cq.category != "" && rec.Category != cq.category {
		return false
	}
	if cq.text == "" {
		return true
	}
	return strings.Contains(rec.foldedName, cq.text) ||
		strings.Contains(rec.foldedHex, cq.text)
}

// Filter returns the records selected by q, in catalog order.
// The result is never nil.
func (c *Catalog) Filter(q Query) []*Record {
	cq := q.compile()
	res := make([]*Record, 0, len(c.records))
	for _, rec := range c.records {
		if cq.matches(rec) {
			res = append(res, rec)
		}
	}
	return res
}

// fold normalizes a string for case-insensitive comparison.
func fold(s string) string {
	if prepped, err := stringprep.SASLprep.Prepare(s); err == nil {
		s = prepped
	}
	return cases.Fold().String(s)
}
