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

package dispatch

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"

	"github.com/ranaumarnadeem/riscv-docker-toolchain/pkg/fault"
)

// Report writes err for the user: the message, the failed tool's stderr
// verbatim, then any remediation hint.
func Report(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(w, "%s %v\n", color.Red.Sprint("rv:"), err)
	var fe *fault.Error
	if !errors.As(err, &fe) {
		return
	}
	if fe.Stderr != "" {
		io.WriteString(w, fe.Stderr)
		if !strings.HasSuffix(fe.Stderr, "\n") {
			io.WriteString(w, "\n")
		}
	}
	if fe.Hint != "" {
		fmt.Fprintf(w, "%s %s\n", color.Yellow.Sprint("hint:"), fe.Hint)
	}
}
