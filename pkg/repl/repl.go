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

// Package repl reads commands line by line and hands each one, split with
// shell quoting rules, to the same entry point a one-shot invocation uses.
// A failing line is reported and the loop goes on; only an exit directive
// or end of input stops it.
package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/kballard/go-shellquote"
	"golang.org/x/term"

	"github.com/ranaumarnadeem/riscv-docker-toolchain/pkg/fault"
)

const DefaultPrompt = "rv> "

var exitDirectives = map[string]bool{"exit": true, "quit": true, "q": true}

type Loop struct {
	In     io.Reader
	Out    io.Writer
	Prompt string // empty when input is not a terminal

	// Exec runs one tokenized line.
	Exec func(args []string) error
	// Report shows a failed line to the user.
	Report func(err error)
}

// IsTerminal reports whether f is an interactive terminal, in which case
// a prompt is worth printing.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Split tokenizes a line the way a POSIX shell would split command
// arguments. A line starting with # is a comment.
func Split(line string) ([]string, error) {
	if strings.HasPrefix(strings.TrimSpace(line), "#") {
		return nil, nil
	}
	words, err := shellquote.Split(line)
	if err != nil {
		return nil, fault.Wrap(fault.InvalidOption, err, "cannot parse line")
	}
	return words, nil
}

// Run loops until exit or end of input. It returns the number of lines
// that failed, and an error only if reading the input failed. Lines may be
// of any length.
func (l *Loop) Run() (int, error) {
	failures := 0
	in := bufio.NewReader(l.In)
	for {
		if l.Prompt != "" {
			fmt.Fprint(l.Out, l.Prompt)
		}
		line, readErr := in.ReadString('\n')
		if readErr != nil && line == "" {
			if l.Prompt != "" {
				fmt.Fprintln(l.Out)
			}
			if errors.Is(readErr, io.EOF) {
				return failures, nil
			}
			return failures, readErr
		}

		args, err := Split(strings.TrimRight(line, "\r\n"))
		switch {
		case err == nil && len(args) == 0:
			continue
		case err == nil && len(args) == 1 && exitDirectives[args[0]]:
			return failures, nil
		case err == nil:
			log.Printf("repl: %q\n", args)
			err = l.Exec(args)
		}
		if err != nil {
			failures++
			l.Report(err)
		}
	}
}
