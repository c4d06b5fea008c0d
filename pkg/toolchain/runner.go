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

// Package toolchain runs the RISC-V cross tools inside the prebuilt
// container image: compile, disassemble, flatten to raw binary, and an
// interactive shell. Every operation is a single blocking run of the
// container engine; nothing is retried.
package toolchain

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"strings"

	"github.com/ranaumarnadeem/riscv-docker-toolchain/pkg/fault"
)

// Result is what a tool run reports. It is returned alongside any error so
// callers can always inspect both streams.
type Result struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
	Artifact string // path of the file produced, if any
}

func (r *Result) Success() bool {
	return r != nil && r.ExitCode == 0
}

// Runner is the one primitive everything else is built on: run a command
// inside the execution environment with the working tree mounted.
type Runner interface {
	// Run captures both output streams.
	Run(argv []string) (*Result, error)
	// Attach connects the command to the terminal and blocks until it
	// exits.
	Attach(argv []string) (int, error)
}

// ContainerRunner runs commands with "<engine> run" against an image.
type ContainerRunner struct {
	Engine     string // docker or podman
	Image      string
	WorkDir    string // host directory mounted at MountPoint
	MountPoint string
	TTY        bool // allocate a terminal for Attach

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (r *ContainerRunner) command(interactive bool, argv []string) *exec.Cmd {
	args := []string{"run", "--rm"}
	if interactive {
		args = append(args, "-i")
		if r.TTY {
			args = append(args, "-t")
		}
	}
	args = append(args, "-v", r.WorkDir+":"+r.MountPoint, "-w", r.MountPoint)
	if uid := os.Getuid(); uid >= 0 {
		args = append(args, "--user", fmt.Sprintf("%d:%d", uid, os.Getgid()))
	}
	args = append(args, r.Image)
	args = append(args, argv...)

	cmd := exec.Command(r.Engine, args...)
	cmd.Dir = r.WorkDir
	log.Printf("exec: %s %s\n", r.Engine, strings.Join(args, " "))
	return cmd
}

func (r *ContainerRunner) Run(argv []string) (*Result, error) {
	cmd := r.command(false, argv)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	code, err := wait(cmd.Run(), r.Engine)
	if err != nil {
		return nil, err
	}
	return &Result{ExitCode: code, Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}, nil
}

func (r *ContainerRunner) Attach(argv []string) (int, error) {
	cmd := r.command(true, argv)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	return wait(cmd.Run(), r.Engine)
}

// wait turns the error from exec.Cmd.Run into an exit status. Only a
// failure to start the engine is an error.
func wait(err error, engine string) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, &fault.Error{
		Kind: fault.EnvironmentNotFound,
		Msg:  "cannot run " + engine,
		Hint: "install " + engine + " or set RV_ENGINE",
		Err:  err,
	}
}
