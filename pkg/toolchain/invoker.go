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
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ranaumarnadeem/riscv-docker-toolchain/pkg/arch"
	"github.com/ranaumarnadeem/riscv-docker-toolchain/pkg/baremetal"
	"github.com/ranaumarnadeem/riscv-docker-toolchain/pkg/fault"
)

const (
	ElfExt = ".elf"
	BinExt = ".bin"
)

type BuildRequest struct {
	Source     string
	Arch       arch.Resolved
	Output     string // empty: <OutputDir>/<source stem>.elf
	Opt        OptLevel
	BareMetal  bool
	ExtraFlags []string
}

type DumpRequest struct {
	Artifact string
	Grep     string // applied by the caller, never by the tool
}

type BinRequest struct {
	Artifact string
	Output   string // empty: Artifact with its extension replaced by .bin
}

// Invoker maps requests onto tool runs. Paths in requests are host paths,
// relative to WorkDir unless absolute; they must lie inside WorkDir since
// that is all the container sees.
type Invoker struct {
	Runner    Runner
	Prefix    string // e.g. riscv64-unknown-elf-
	WorkDir   string
	OutputDir string
}

func (inv *Invoker) tool(name string) string {
	return inv.Prefix + name
}

// DefaultOutput is where a build of source lands when no -o is given.
func (inv *Invoker) DefaultOutput(source string) string {
	stem := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	return filepath.Join(inv.OutputDir, stem+ElfExt)
}

// DefaultBinOutput swaps the artifact's extension for .bin.
func DefaultBinOutput(artifact string) string {
	return strings.TrimSuffix(artifact, filepath.Ext(artifact)) + BinExt
}

func (inv *Invoker) hostPath(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(inv.WorkDir, p)
}

// containerPath gives p relative to the mount point, in slash form.
func (inv *Invoker) containerPath(p string) (string, error) {
	rel, err := filepath.Rel(inv.WorkDir, inv.hostPath(p))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fault.Errorf(fault.IOFailure, "%s is outside the working tree %s", p, inv.WorkDir)
	}
	return path.Clean(filepath.ToSlash(rel)), nil
}

func (inv *Invoker) mustExist(p, what string) error {
	info, err := os.Stat(inv.hostPath(p))
	if errors.Is(err, fs.ErrNotExist) {
		return fault.Errorf(fault.IOFailure, "%s %s does not exist", what, p)
	}
	if err != nil {
		return fault.Wrap(fault.IOFailure, err, p)
	}
	if info.IsDir() {
		return fault.Errorf(fault.IOFailure, "%s %s is a directory", what, p)
	}
	return nil
}

func (inv *Invoker) makeDirFor(p string) error {
	dir := filepath.Dir(inv.hostPath(p))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fault.Wrap(fault.IOFailure, err, "creating "+dir)
	}
	return nil
}

// BuildArgs is the compiler command line for req, in the order: arch,
// abi, optimization, bare-metal inputs, extra flags, source, bare-metal
// libraries, output. Later flags override earlier ones, so extra flags win.
func (inv *Invoker) BuildArgs(req BuildRequest, output string) ([]string, error) {
	src, err := inv.containerPath(req.Source)
	if err != nil {
		return nil, err
	}
	out, err := inv.containerPath(output)
	if err != nil {
		return nil, err
	}
	opt := req.Opt
	if opt == "" {
		opt = DefaultOpt
	}

	assets := baremetal.Select(req.Arch.Width())
	argv := []string{inv.tool("gcc")}
	argv = append(argv, req.Arch.Flags()...)
	argv = append(argv, opt.Flag())
	if req.BareMetal {
		argv = append(argv, assets.Flags()...)
	}
	argv = append(argv, req.ExtraFlags...)
	argv = append(argv, src)
	if req.BareMetal {
		argv = append(argv, assets.Libs()...)
	}
	argv = append(argv, "-o", out)
	return argv, nil
}

// Build compiles one source file. A compiler error comes back as an
// ExternalToolFailure holding the compiler's stderr.
func (inv *Invoker) Build(req BuildRequest) (*Result, error) {
	output := req.Output
	if output == "" {
		output = inv.DefaultOutput(req.Source)
	}
	argv, err := inv.BuildArgs(req, output)
	if err != nil {
		return nil, err
	}
	if err := inv.mustExist(req.Source, "source"); err != nil {
		return nil, err
	}
	if err := inv.makeDirFor(output); err != nil {
		return nil, err
	}
	res, err := inv.run(argv)
	if err != nil {
		return res, err
	}
	res.Artifact = output
	return res, nil
}

// Disassemble returns the full objdump listing; filtering is left to the
// caller.
func (inv *Invoker) Disassemble(req DumpRequest) (*Result, error) {
	artifact, err := inv.containerPath(req.Artifact)
	if err != nil {
		return nil, err
	}
	if err := inv.mustExist(req.Artifact, "artifact"); err != nil {
		return nil, err
	}
	return inv.run([]string{inv.tool("objdump"), "-d", artifact})
}

// Flatten converts an ELF artifact to a raw binary image.
func (inv *Invoker) Flatten(req BinRequest) (*Result, error) {
	output := req.Output
	if output == "" {
		output = DefaultBinOutput(req.Artifact)
	}
	if inv.hostPath(output) == inv.hostPath(req.Artifact) {
		return nil, fault.Errorf(fault.InvalidOption, "output %s would overwrite the artifact; pass -o", output)
	}
	in, err := inv.containerPath(req.Artifact)
	if err != nil {
		return nil, err
	}
	out, err := inv.containerPath(output)
	if err != nil {
		return nil, err
	}
	if err := inv.mustExist(req.Artifact, "artifact"); err != nil {
		return nil, err
	}
	if err := inv.makeDirFor(output); err != nil {
		return nil, err
	}
	res, err := inv.run([]string{inv.tool("objcopy"), "-O", "binary", in, out})
	if err != nil {
		return res, err
	}
	res.Artifact = output
	return res, nil
}

// Shell opens an interactive shell in the environment. The exit status is
// reported but a non-zero one is not a failure.
func (inv *Invoker) Shell() (*Result, error) {
	code, err := inv.Runner.Attach([]string{"/bin/bash"})
	if err != nil {
		return nil, err
	}
	return &Result{ExitCode: code}, nil
}

func (inv *Invoker) run(argv []string) (*Result, error) {
	res, err := inv.Runner.Run(argv)
	if err != nil {
		return nil, err
	}
	if res.ExitCode != 0 {
		return res, &fault.Error{
			Kind:   fault.ExternalToolFailure,
			Msg:    fmt.Sprintf("%s exited with status %d", argv[0], res.ExitCode),
			Stderr: string(res.Stderr),
			Status: res.ExitCode,
		}
	}
	return res, nil
}
