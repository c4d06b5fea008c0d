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

// Package baremetal picks the linker script and startup code used for
// builds that do not link the C library.
package baremetal

import "github.com/ranaumarnadeem/riscv-docker-toolchain/pkg/arch"

// Dir is where the image installs the assets (see the Dockerfile).
const Dir = "/opt/riscv/baremetal"

type Assets struct {
	LinkerScript string
	Startup      string
}

var (
	assets32 = Assets{Dir + "/link32.ld", Dir + "/crt0_32.S"}
	assets64 = Assets{Dir + "/link64.ld", Dir + "/crt0_64.S"}
)

// Select returns the assets for a word width. Anything that is not 64-bit
// gets the 32-bit pair; arch only produces the two widths.
func Select(w arch.Width) Assets {
	if w == arch.Width64 {
		return assets64
	}
	return assets32
}

// Flags returns the compiler arguments for a bare-metal link: the linker
// script, the startup code, then the switches that drop crt0 and libc.
func (a Assets) Flags() []string {
	return []string{"-T", a.LinkerScript, a.Startup, "-nostartfiles", "-nostdlib"}
}

// Libs returns what a bare-metal link still needs after the inputs.
// -nostdlib drops libgcc too, and without it integer multiply and divide
// on a base-only ISA fail to link.
func (a Assets) Libs() []string {
	return []string{"-lgcc"}
}
