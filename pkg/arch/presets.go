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

package arch

import "strings"

// Preset is a named, fixed architecture.
type Preset struct {
	Name        string
	ISA         string
	ABI         string
	Description string
}

var presets = []Preset{
	{"32i", "rv32i", "ilp32", "base integer only"},
	{"32im", "rv32im", "ilp32", "integer, multiply/divide"},
	{"32imc", "rv32imc", "ilp32", "integer, multiply, compressed"},
	{"32ima", "rv32ima", "ilp32", "integer, multiply, atomics"},
	{"32imac", "rv32imac", "ilp32", "typical 32-bit microcontroller"},
	{"32imaf", "rv32imaf", "ilp32f", "single-precision float"},
	{"32imafc", "rv32imafc", "ilp32f", "single-precision float, compressed"},
	{"32imafd", "rv32g", "ilp32d", "double-precision float"},
	{"32imafdc", "rv32gc", "ilp32d", "double-precision float, compressed"},
	{"32gc", "rv32gc", "ilp32d", "general purpose, compressed"},
	{"64i", "rv64i", "lp64", "base integer only"},
	{"64im", "rv64im", "lp64", "integer, multiply/divide"},
	{"64imc", "rv64imc", "lp64", "integer, multiply, compressed"},
	{"64imac", "rv64imac", "lp64", "64-bit, no floating point"},
	{"64imafc", "rv64imafc", "lp64f", "single-precision float, compressed"},
	{"64imafdc", "rv64gc", "lp64d", "double-precision float, compressed"},
	{"64gc", "rv64gc", "lp64d", "general purpose, Linux capable"},
	{"hifive1", "rv32imac", "ilp32", "SiFive HiFive1 (FE310)"},
	{"esp32c3", "rv32imc", "ilp32", "Espressif ESP32-C3"},
	{"k210", "rv64gc", "lp64d", "Kendryte K210"},
	{"visionfive2", "rv64gc", "lp64d", "StarFive VisionFive 2 (JH7110)"},
}

// Presets returns a copy of the preset table in display order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

func lookupPreset(name string) (Preset, bool) {
	for _, p := range presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

func fromPreset(p Preset) Resolved {
	w := Width32
	if strings.HasPrefix(p.ISA, "rv64") {
		w = Width64
	}
	return Resolved{isa: p.ISA, abi: p.ABI, width: w}
}
