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
	"errors"
	"io"
	"log"
	"os/exec"

	"github.com/ranaumarnadeem/riscv-docker-toolchain/pkg/fault"
)

// Environment is the handle on the prebuilt toolchain image. Only
// build-image may call Build; everything else checks Present.
type Environment interface {
	Name() string
	Present() (bool, error)
	Build() error
}

// Image is an Environment backed by a container engine image.
type Image struct {
	Engine     string
	Tag        string
	Dockerfile string
	ContextDir string
	WorkDir    string

	Stdout io.Writer
	Stderr io.Writer
}

func (i *Image) Name() string { return i.Tag }

// Present asks the engine whether the image exists. A non-zero answer
// means absent; an engine that cannot be started is an error.
func (i *Image) Present() (bool, error) {
	cmd := exec.Command(i.Engine, "image", "inspect", i.Tag)
	cmd.Dir = i.WorkDir
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	log.Printf("checking for image %s\n", i.Tag)
	err := cmd.Run()
	if err == nil {
		return true, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return false, nil
	}
	return false, err
}

// Build runs "<engine> build", streaming its output. This is slow and
// is the only operation that changes the environment.
func (i *Image) Build() error {
	cmd := exec.Command(i.Engine, "build", "-t", i.Tag, "-f", i.Dockerfile, i.ContextDir)
	cmd.Dir = i.WorkDir
	cmd.Stdout = i.Stdout
	cmd.Stderr = i.Stderr
	log.Printf("exec: %v\n", cmd.Args)
	code, err := wait(cmd.Run(), i.Engine)
	if err != nil {
		return err
	}
	if code != 0 {
		return &fault.Error{Kind: fault.ExternalToolFailure, Msg: i.Engine + " build", Status: code}
	}
	return nil
}
