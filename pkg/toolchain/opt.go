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

import (
	"strings"

	"github.com/ranaumarnadeem/riscv-docker-toolchain/pkg/fault"
)

// OptLevel is one of the optimization levels rv accepts, without the
// leading dash ("O2").
type OptLevel string

const DefaultOpt = "O2"

var optLevels = []OptLevel{"O0", "O1", "O2", "O3", "Os", "Oz"}

func OptLevels() []OptLevel {
	out := make([]OptLevel, len(optLevels))
	copy(out, optLevels)
	return out
}

// ParseOpt accepts "O2" or "-O2".
func ParseOpt(s string) (OptLevel, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "-")
	for _, o := range optLevels {
		if string(o) == s {
			return o, nil
		}
	}
	names := make([]string, len(optLevels))
	for i, o := range optLevels {
		names[i] = string(o)
	}
	return "", fault.Errorf(fault.InvalidOption, "optimization level %q (expected one of %s)", s, strings.Join(names, ", "))
}

func (o OptLevel) Flag() string {
	return "-" + string(o)
}
