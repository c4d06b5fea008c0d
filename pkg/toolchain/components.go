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

package toolchain

// Component is a tool shipped in the image.
type Component struct {
	Name    string
	Package string
	Version string
}

// Components lists the versions installed by the Dockerfile's base image
// (ubuntu:24.04). Keep in step with the Dockerfile.
var Components = []Component{
	{"gcc", "gcc-riscv64-unknown-elf", "13.2.0"},
	{"binutils (as, ld, objdump, objcopy)", "binutils-riscv64-unknown-elf", "2.42"},
	{"picolibc", "picolibc-riscv64-unknown-elf", "1.8.6"},
}
