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

// Package dispatch maps a command name and its options onto one of the
// toolchain operations. All validation happens here, before anything is
// run inside the execution environment.
package dispatch

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ranaumarnadeem/riscv-docker-toolchain/pkg/fault"
	"github.com/ranaumarnadeem/riscv-docker-toolchain/pkg/toolchain"
)

// Request is one command as typed, on the command line or in the REPL.
// Options are keyed by long option name without dashes.
type Request struct {
	Command string
	Args    []string
	Options map[string]string
}

// Tools is the part of toolchain.Invoker the dispatcher drives.
type Tools interface {
	Build(req toolchain.BuildRequest) (*toolchain.Result, error)
	Disassemble(req toolchain.DumpRequest) (*toolchain.Result, error)
	Flatten(req toolchain.BinRequest) (*toolchain.Result, error)
	Shell() (*toolchain.Result, error)
}

type Dispatcher struct {
	Tools      Tools
	Env        toolchain.Environment
	DefaultOpt string
	Version    string

	Out io.Writer
	Err io.Writer
}

type handler func(d *Dispatcher, req Request) (*toolchain.Result, error)

type command struct {
	name     string
	argName  string // positional argument, "" for none
	options  []string
	required []string
	summary  string
	handler  handler
}

// Because the help handler prints this table, it cannot appear in the
// table's initializer (initialization loop); init patches it in.
func seeInitBelow(d *Dispatcher, req Request) (*toolchain.Result, error) {
	return nil, nil
}

var commands = []command{
	{"help", "", nil, nil, "list commands", seeInitBelow},
	{"build", "source", []string{"arch", "output", "opt", "bare", "cflags"}, []string{"arch"}, "compile a source file", build},
	{"dump", "artifact", []string{"grep"}, nil, "disassemble an artifact", dump},
	{"bin", "artifact", []string{"output"}, nil, "flatten an ELF artifact to a raw binary", bin},
	{"archs", "", nil, nil, "list architecture presets", archs},
	{"version", "", nil, nil, "print component versions", version},
	{"shell", "", nil, nil, "open a shell in the execution environment", shell},
	{"build-image", "", nil, nil, "build the execution environment image", buildImage},
}

func init() {
	commands[0].handler = help
}

func lookup(name string) (*command, bool) {
	for i := range commands {
		if commands[i].name == name {
			return &commands[i], true
		}
	}
	return nil, false
}

// Names returns the command names in table order.
func Names() []string {
	names := make([]string, len(commands))
	for i, c := range commands {
		names[i] = c.name
	}
	return names
}

// Summary returns the one-line description of a command.
func Summary(name string) string {
	if c, ok := lookup(name); ok {
		return c.summary
	}
	return ""
}

// Dispatch validates req and runs it. An empty command is help.
func (d *Dispatcher) Dispatch(req Request) (*toolchain.Result, error) {
	name := req.Command
	if name == "" {
		name = "help"
	}
	c, ok := lookup(name)
	if !ok {
		return nil, fault.Errorf(fault.InvalidOption, "unknown command %q (try help)", name)
	}
	if err := c.validate(req); err != nil {
		return nil, err
	}
	return c.handler(d, req)
}

func (c *command) validate(req Request) error {
	switch {
	case c.argName != "" && len(req.Args) == 0:
		return fault.Errorf(fault.MissingRequiredOption, "%s requires a %s", c.name, c.argName)
	case c.argName != "" && len(req.Args) > 1:
		return fault.Errorf(fault.InvalidOption, "%s: unexpected arguments %q", c.name, strings.Join(req.Args[1:], " "))
	case c.argName == "" && len(req.Args) > 0:
		return fault.Errorf(fault.InvalidOption, "%s: unexpected arguments %q", c.name, strings.Join(req.Args, " "))
	}

	keys := make([]string, 0, len(req.Options))
	for k := range req.Options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !contains(c.options, k) {
			return fault.Errorf(fault.InvalidOption, "%s: unknown option --%s", c.name, k)
		}
	}
	for _, k := range c.required {
		if strings.TrimSpace(req.Options[k]) == "" {
			return fault.Errorf(fault.MissingRequiredOption, "%s requires --%s", c.name, k)
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

// requireEnvironment fails unless the toolchain image exists. It never
// creates it.
func (d *Dispatcher) requireEnvironment() error {
	ok, err := d.present()
	if err != nil {
		return err
	}
	if !ok {
		return &fault.Error{
			Kind: fault.EnvironmentNotFound,
			Msg:  "image " + d.Env.Name() + " is not present",
			Hint: "run 'rv build-image' first",
		}
	}
	return nil
}

func (d *Dispatcher) present() (bool, error) {
	ok, err := d.Env.Present()
	if err != nil {
		return false, &fault.Error{
			Kind: fault.EnvironmentNotFound,
			Msg:  "cannot query image " + d.Env.Name(),
			Hint: "is the container engine installed and running?",
			Err:  err,
		}
	}
	return ok, nil
}

func help(d *Dispatcher, req Request) (*toolchain.Result, error) {
	fmtStr := "%-13s%-11s%s\n"
	fmt.Fprintf(d.Out, fmtStr, "Command", "Argument", "Description")
	fmt.Fprintf(d.Out, fmtStr, "-------", "--------", "-----------")
	for _, c := range commands {
		fmt.Fprintf(d.Out, fmtStr, c.name, c.argName, c.summary)
	}
	fmt.Fprintln(d.Out, "\nWith no command, rv reads commands from standard input; exit or quit leaves.")
	return nil, nil
}
