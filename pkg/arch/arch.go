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

// Package arch turns architecture tokens such as "32imac" or "32imc_zba_zbb"
// into the -march/-mabi pair handed to the RISC-V compiler.
//
// A token is either the name of a curated preset or has the form
//
//	<width><letters>[_<extension>]*
//
// where width is 32 or 64, letters are single-letter ISA extensions in any
// order (they are put into canonical order here), and each underscore
// suffix is a multi-letter extension copied through verbatim in the order
// given. The ABI is derived from the width and the floating point letters.
package arch

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ranaumarnadeem/riscv-docker-toolchain/pkg/fault"
)

type Width int

const (
	Width32 Width = 32
	Width64 Width = 64
)

func (w Width) String() string {
	return fmt.Sprintf("%d-bit", int(w))
}

// Canonical order of the single-letter extensions that may follow the base.
// The base itself is 'i', or 'g' which stands for imafd. Whenever all of
// imafd are present the ISA is spelled with 'g', so 32imafdc and 32gc give
// the same -march.
const canonicalOrder = "mafdqcbvh"

// Letters folded into 'g'.
const generalLetters = "imafd"

var extensionPattern = regexp.MustCompile(`^[a-z][a-z0-9]*$`)

// Resolved is an immutable, resolved architecture.
type Resolved struct {
	isa   string
	abi   string
	width Width
}

func (r Resolved) ISA() string  { return r.isa }
func (r Resolved) ABI() string  { return r.abi }
func (r Resolved) Width() Width { return r.width }

// Flags returns the compiler flags selecting this architecture, -march
// before -mabi.
func (r Resolved) Flags() []string {
	return []string{"-march=" + r.isa, "-mabi=" + r.abi}
}

func (r Resolved) String() string {
	return fmt.Sprintf("%s/%s", r.isa, r.abi)
}

func invalidf(format string, args ...any) error {
	return fault.Errorf(fault.InvalidArchitecture, format, args...)
}

// Resolve parses an architecture token. Presets win over the letter grammar.
func Resolve(token string) (Resolved, error) {
	tok := strings.ToLower(strings.TrimSpace(token))
	if tok == "" {
		return Resolved{}, invalidf("empty architecture")
	}
	if p, ok := lookupPreset(tok); ok {
		return fromPreset(p), nil
	}
	return parse(token, tok)
}

// parse applies the <width><letters>[_<extension>]* grammar to the
// lower-cased token tok; token is the original text, used in messages.
func parse(token, tok string) (Resolved, error) {
	parts := strings.Split(tok, "_")
	head, extras := parts[0], parts[1:]

	digits := 0
	for digits < len(head) && head[digits] >= '0' && head[digits] <= '9' {
		digits++
	}
	var width Width
	switch head[:digits] {
	case "32":
		width = Width32
	case "64":
		width = Width64
	case "":
		return Resolved{}, invalidf("%q: expected a leading width of 32 or 64", token)
	default:
		return Resolved{}, invalidf("%q: unsupported width %s (expected 32 or 64)", token, head[:digits])
	}

	letters := head[digits:]
	if letters == "" {
		return Resolved{}, invalidf("%q: no base instruction set (expected i or g after the width)", token)
	}
	seen := make(map[byte]bool, len(letters))
	for i := 0; i < len(letters); i++ {
		c := letters[i]
		switch {
		case c == 'e':
			return Resolved{}, invalidf("%q: the embedded base (e) is not supported", token)
		case c == 'i' || c == 'g' || strings.IndexByte(canonicalOrder, c) >= 0:
			seen[c] = true
		default:
			return Resolved{}, invalidf("%q: unknown extension letter %q", token, string(c))
		}
	}
	if !seen['i'] && !seen['g'] {
		return Resolved{}, invalidf("%q: no base instruction set (expected i or g)", token)
	}
	if hasAll(seen, generalLetters) {
		seen['g'] = true
	}

	for _, x := range extras {
		if !extensionPattern.MatchString(x) {
			return Resolved{}, invalidf("%q: malformed extension %q", token, x)
		}
	}

	isa := canonicalISA(width, seen, extras)
	return Resolved{isa: isa, abi: inferABI(width, seen), width: width}, nil
}

func canonicalISA(width Width, seen map[byte]bool, extras []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "rv%d", int(width))
	if seen['g'] {
		sb.WriteByte('g')
	} else {
		sb.WriteByte('i')
	}
	for i := 0; i < len(canonicalOrder); i++ {
		c := canonicalOrder[i]
		if !seen[c] {
			continue
		}
		if seen['g'] && strings.IndexByte(generalLetters, c) >= 0 {
			continue
		}
		sb.WriteByte(c)
	}
	for _, x := range extras {
		sb.WriteByte('_')
		sb.WriteString(x)
	}
	return sb.String()
}

func hasAll(seen map[byte]bool, letters string) bool {
	for i := 0; i < len(letters); i++ {
		if !seen[letters[i]] {
			return false
		}
	}
	return true
}

// inferABI applies the standard selection: ilp32 or lp64 by width, with a
// 'd' suffix when double precision (or wider) float is present, else 'f'
// when single precision is.
func inferABI(width Width, seen map[byte]bool) string {
	abi := "ilp32"
	if width == Width64 {
		abi = "lp64"
	}
	switch {
	case seen['d'] || seen['q'] || seen['g']:
		return abi + "d"
	case seen['f']:
		return abi + "f"
	}
	return abi
}
