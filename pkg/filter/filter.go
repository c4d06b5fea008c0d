/*
Copyright © 2026 The rv Authors

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU Affero General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU Affero General Public License for more details.

You should have received a copy of the GNU Affero General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

// Package filter selects lines of disassembly text. It never touches the
// artifact the text came from.
package filter

import (
	"regexp"
	"strings"
)

// Matcher reports whether a line should be kept.
type Matcher func(line string) bool

// Compile turns a --grep pattern into a Matcher. The pattern is a
// case-sensitive regular expression; grep-style \| alternation is
// accepted. A pattern that does not compile is matched as a literal
// substring.
func Compile(pattern string) Matcher {
	re, err := regexp.Compile(strings.ReplaceAll(pattern, `\|`, "|"))
	if err != nil {
		return func(line string) bool { return strings.Contains(line, pattern) }
	}
	return re.MatchString
}

// Filter returns the lines of text that match pattern, in their original
// order and byte for byte. An empty pattern returns text unchanged.
func Filter(text, pattern string) string {
	if pattern == "" {
		return text
	}
	return Lines(text, Compile(pattern))
}

// Lines keeps the lines of text accepted by m. Line terminators stay with
// their line; the match test sees the line without its trailing newline.
func Lines(text string, m Matcher) string {
	var sb strings.Builder
	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			continue
		}
		if m(strings.TrimSuffix(line, "\n")) {
			sb.WriteString(line)
		}
	}
	return sb.String()
}
