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
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ranaumarnadeem/riscv-docker-toolchain/pkg/fault"
	"github.com/ranaumarnadeem/riscv-docker-toolchain/pkg/toolchain"
)

// recordingTools stands in for toolchain.Invoker and counts invocations.
type recordingTools struct {
	builds []toolchain.BuildRequest
	dumps  []toolchain.DumpRequest
	bins   []toolchain.BinRequest
	shells int
	result *toolchain.Result
	err    error
}

func (r *recordingTools) calls() int {
	return len(r.builds) + len(r.dumps) + len(r.bins) + r.shells
}

func (r *recordingTools) res() *toolchain.Result {
	if r.result != nil {
		return r.result
	}
	return &toolchain.Result{}
}

func (r *recordingTools) Build(req toolchain.BuildRequest) (*toolchain.Result, error) {
	r.builds = append(r.builds, req)
	return r.res(), r.err
}

func (r *recordingTools) Disassemble(req toolchain.DumpRequest) (*toolchain.Result, error) {
	r.dumps = append(r.dumps, req)
	return r.res(), r.err
}

func (r *recordingTools) Flatten(req toolchain.BinRequest) (*toolchain.Result, error) {
	r.bins = append(r.bins, req)
	return r.res(), r.err
}

func (r *recordingTools) Shell() (*toolchain.Result, error) {
	r.shells++
	return r.res(), r.err
}

type fakeEnv struct {
	present bool
	err     error
	checks  int
	builds  int
}

func (f *fakeEnv) Name() string { return "riscv-toolchain:test" }

func (f *fakeEnv) Present() (bool, error) {
	f.checks++
	return f.present, f.err
}

func (f *fakeEnv) Build() error {
	f.builds++
	f.present = true
	return nil
}

func newDispatcher() (*Dispatcher, *recordingTools, *fakeEnv, *bytes.Buffer) {
	tools := &recordingTools{}
	env := &fakeEnv{present: true}
	var out bytes.Buffer
	d := &Dispatcher{Tools: tools, Env: env, DefaultOpt: "O2", Version: "test", Out: &out, Err: &out}
	return d, tools, env, &out
}

func TestBuildWithoutArchFailsFast(t *testing.T) {
	d, tools, env, _ := newDispatcher()
	_, err := d.Dispatch(Request{Command: "build"})
	assert.True(t, fault.Is(err, fault.MissingRequiredOption), "%v", err)

	_, err = d.Dispatch(Request{Command: "build", Args: []string{"examples/blink.c"}})
	assert.True(t, fault.Is(err, fault.MissingRequiredOption), "%v", err)

	_, err = d.Dispatch(Request{Command: "build", Args: []string{"examples/blink.c"}, Options: map[string]string{"arch": ""}})
	assert.True(t, fault.Is(err, fault.MissingRequiredOption), "%v", err)

	assert.Equal(t, 0, tools.calls())
	assert.Equal(t, 0, env.checks)
}

func TestBuildWithoutSource(t *testing.T) {
	d, tools, _, _ := newDispatcher()
	_, err := d.Dispatch(Request{Command: "build", Options: map[string]string{"arch": "32imac"}})
	assert.True(t, fault.Is(err, fault.MissingRequiredOption))
	assert.Equal(t, 0, tools.calls())
}

func TestUnknownOptionRejected(t *testing.T) {
	d, tools, _, _ := newDispatcher()
	for _, req := range []Request{
		{Command: "build", Args: []string{"a.c"}, Options: map[string]string{"arch": "32i", "march": "x"}},
		{Command: "dump", Args: []string{"a.elf"}, Options: map[string]string{"output": "x"}},
		{Command: "archs", Options: map[string]string{"grep": "x"}},
		{Command: "version", Args: []string{"extra"}},
		{Command: "bin", Args: []string{"a.elf", "b.elf"}},
		{Command: "frobnicate"},
	} {
		_, err := d.Dispatch(req)
		assert.True(t, fault.Is(err, fault.InvalidOption), "%+v: %v", req, err)
	}
	assert.Equal(t, 0, tools.calls())
}

func TestBuildBadValues(t *testing.T) {
	d, tools, env, _ := newDispatcher()
	cases := []struct {
		opts map[string]string
		kind fault.Kind
	}{
		{map[string]string{"arch": "bogus"}, fault.InvalidArchitecture},
		{map[string]string{"arch": "32imac", "opt": "O7"}, fault.InvalidOption},
		{map[string]string{"arch": "32imac", "bare": "maybe"}, fault.InvalidOption},
		{map[string]string{"arch": "32imac", "cflags": `-DX="unterminated`}, fault.InvalidOption},
	}
	for _, c := range cases {
		_, err := d.Dispatch(Request{Command: "build", Args: []string{"a.c"}, Options: c.opts})
		assert.True(t, fault.Is(err, c.kind), "%v: %v", c.opts, err)
	}
	assert.Equal(t, 0, tools.calls())
	assert.Equal(t, 0, env.checks, "validation precedes the environment check")
}

func TestBuildRequestContents(t *testing.T) {
	d, tools, _, out := newDispatcher()
	tools.result = &toolchain.Result{Artifact: "build/blink.elf", Stderr: []byte("warning: unused\n")}
	_, err := d.Dispatch(Request{Command: "build", Args: []string{"examples/blink.c"}, Options: map[string]string{
		"arch": "32imc_zba_zbb", "opt": "Os", "bare": "true", "cflags": `-g -DNAME="a b"`, "output": "out/z.elf",
	}})
	require.NoError(t, err)
	require.Len(t, tools.builds, 1)
	b := tools.builds[0]
	assert.Equal(t, "examples/blink.c", b.Source)
	assert.Equal(t, "rv32imc_zba_zbb", b.Arch.ISA())
	assert.Equal(t, "ilp32", b.Arch.ABI())
	assert.Equal(t, toolchain.OptLevel("Os"), b.Opt)
	assert.True(t, b.BareMetal)
	assert.Equal(t, []string{"-g", "-DNAME=a b"}, b.ExtraFlags)
	assert.Equal(t, "out/z.elf", b.Output)
	assert.Contains(t, out.String(), "warning: unused")
	assert.Contains(t, out.String(), "build/blink.elf")
}

func TestBuildUsesDefaultOpt(t *testing.T) {
	d, tools, _, _ := newDispatcher()
	d.DefaultOpt = "O1"
	_, err := d.Dispatch(Request{Command: "build", Args: []string{"a.c"}, Options: map[string]string{"arch": "64gc"}})
	require.NoError(t, err)
	assert.Equal(t, toolchain.OptLevel("O1"), tools.builds[0].Opt)
	assert.False(t, tools.builds[0].BareMetal)
	assert.Empty(t, tools.builds[0].ExtraFlags)
}

func TestEnvironmentMissing(t *testing.T) {
	for _, cmd := range []Request{
		{Command: "build", Args: []string{"a.c"}, Options: map[string]string{"arch": "32imac"}},
		{Command: "dump", Args: []string{"a.elf"}},
		{Command: "bin", Args: []string{"a.elf"}},
		{Command: "shell"},
	} {
		d, tools, env, _ := newDispatcher()
		env.present = false
		_, err := d.Dispatch(cmd)
		assert.True(t, fault.Is(err, fault.EnvironmentNotFound), "%s: %v", cmd.Command, err)
		assert.Equal(t, fault.ExitNoEnvironment, fault.ExitCode(err))
		assert.Equal(t, 0, tools.calls())
		assert.Equal(t, 0, env.builds, "never built implicitly")
	}
}

func TestEnvironmentQueryFails(t *testing.T) {
	d, tools, env, _ := newDispatcher()
	env.err = errors.New("exec: \"docker\": executable file not found in $PATH")
	_, err := d.Dispatch(Request{Command: "dump", Args: []string{"a.elf"}})
	assert.True(t, fault.Is(err, fault.EnvironmentNotFound))
	assert.Equal(t, 0, tools.calls())
}

func TestLocalCommandsNeedNoEnvironment(t *testing.T) {
	for _, name := range []string{"archs", "version", "help", ""} {
		d, tools, env, out := newDispatcher()
		env.present = false
		_, err := d.Dispatch(Request{Command: name})
		require.NoError(t, err, name)
		assert.NotEmpty(t, out.String(), name)
		assert.Equal(t, 0, env.checks, name)
		assert.Equal(t, 0, tools.calls(), name)
	}
}

func TestArchsListsPresets(t *testing.T) {
	d, _, _, out := newDispatcher()
	_, err := d.Dispatch(Request{Command: "archs"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "32imac")
	assert.Contains(t, out.String(), "rv64gc")
	assert.Contains(t, out.String(), "lp64d")
}

func TestVersion(t *testing.T) {
	d, _, _, out := newDispatcher()
	_, err := d.Dispatch(Request{Command: "version"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "rv test")
	assert.Contains(t, out.String(), "riscv-toolchain:test")
	assert.Contains(t, out.String(), "13.2.0")
}

func TestHelpListsEveryCommand(t *testing.T) {
	d, _, _, out := newDispatcher()
	_, err := d.Dispatch(Request{Command: "help"})
	require.NoError(t, err)
	for _, n := range Names() {
		assert.Contains(t, out.String(), n)
	}
}

func TestBuildImage(t *testing.T) {
	d, _, env, out := newDispatcher()
	env.present = false
	_, err := d.Dispatch(Request{Command: "build-image"})
	require.NoError(t, err)
	assert.Equal(t, 1, env.builds)

	out.Reset()
	_, err = d.Dispatch(Request{Command: "build-image"})
	require.NoError(t, err)
	assert.Equal(t, 1, env.builds, "no rebuild when present")
	assert.Contains(t, out.String(), "already present")
}

func TestToolFailurePropagates(t *testing.T) {
	d, tools, _, out := newDispatcher()
	tools.err = &fault.Error{Kind: fault.ExternalToolFailure, Stderr: "fatal error: x.h: No such file\n", Status: 1}
	_, err := d.Dispatch(Request{Command: "build", Args: []string{"a.c"}, Options: map[string]string{"arch": "32imac"}})
	require.Error(t, err)
	assert.Len(t, tools.builds, 1)
	assert.NotContains(t, out.String(), "built")

	var rep bytes.Buffer
	Report(&rep, err)
	assert.Contains(t, rep.String(), "fatal error: x.h: No such file\n")
}

func TestReportHint(t *testing.T) {
	var rep bytes.Buffer
	Report(&rep, &fault.Error{Kind: fault.EnvironmentNotFound, Msg: "image x is not present", Hint: "run 'rv build-image' first"})
	assert.Contains(t, rep.String(), "environment not found: image x is not present")
	assert.Contains(t, rep.String(), "run 'rv build-image' first")

	rep.Reset()
	Report(&rep, nil)
	assert.Empty(t, rep.String())
}

// fakeRunner plays gcc, objdump and objcopy against a temp working tree.
type fakeRunner struct {
	dir   string
	argvs [][]string
}

const listing = `
build/blink.elf:     file format elf32-littleriscv

Disassembly of section .text:

00010074 <delay>:
   10074:	1141                	addi	sp,sp,-16
   10076:	0001                	nop
   10078:	c602                	sw	zero,12(sp)
   1007a:	0001                	nop
   1007c:	0141                	addi	sp,sp,16
`

func (f *fakeRunner) Run(argv []string) (*toolchain.Result, error) {
	f.argvs = append(f.argvs, argv)
	switch {
	case strings.HasSuffix(argv[0], "objdump"):
		return &toolchain.Result{Stdout: []byte(listing)}, nil
	default:
		out := argv[len(argv)-1]
		return &toolchain.Result{}, os.WriteFile(filepath.Join(f.dir, out), []byte("artifact"), 0o644)
	}
}

func (f *fakeRunner) Attach(argv []string) (int, error) { return 0, nil }

func TestBuildDumpBinEndToEnd(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "examples"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "examples", "blink.c"), []byte("int main(void){}\n"), 0o644))

	runner := &fakeRunner{dir: dir}
	inv := &toolchain.Invoker{Runner: runner, Prefix: "riscv64-unknown-elf-", WorkDir: dir, OutputDir: "build"}
	var out bytes.Buffer
	d := &Dispatcher{Tools: inv, Env: &fakeEnv{present: true}, DefaultOpt: "O2", Out: &out, Err: &out}

	res, err := d.Dispatch(Request{Command: "build", Args: []string{"examples/blink.c"}, Options: map[string]string{"arch": "32imac"}})
	require.NoError(t, err)
	assert.True(t, res.Success())
	artifact := res.Artifact
	assert.Equal(t, filepath.Join("build", "blink.elf"), artifact)
	assert.FileExists(t, filepath.Join(dir, artifact))
	assert.Equal(t, []string{
		"riscv64-unknown-elf-gcc", "-march=rv32imac", "-mabi=ilp32", "-O2", "examples/blink.c", "-o", "build/blink.elf",
	}, runner.argvs[0])

	out.Reset()
	_, err = d.Dispatch(Request{Command: "dump", Args: []string{artifact}, Options: map[string]string{"grep": "nop"}})
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	for _, l := range lines {
		assert.Contains(t, l, "nop")
	}

	out.Reset()
	res, err = d.Dispatch(Request{Command: "bin", Args: []string{artifact}})
	require.NoError(t, err)
	assert.Equal(t, strings.TrimSuffix(artifact, ".elf")+".bin", res.Artifact)
	assert.NotEqual(t, artifact, res.Artifact)
	assert.Equal(t, filepath.Dir(artifact), filepath.Dir(res.Artifact))
	assert.FileExists(t, filepath.Join(dir, res.Artifact))
}

func TestCustomExtensionsEndToEnd(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "zba_zbb_test.c"), []byte("int f(void){}\n"), 0o644))
	runner := &fakeRunner{dir: dir}
	inv := &toolchain.Invoker{Runner: runner, Prefix: "riscv64-unknown-elf-", WorkDir: dir, OutputDir: "build"}
	var out bytes.Buffer
	d := &Dispatcher{Tools: inv, Env: &fakeEnv{present: true}, DefaultOpt: "O2", Out: &out, Err: &out}

	_, err := d.Dispatch(Request{Command: "build", Args: []string{"zba_zbb_test.c"}, Options: map[string]string{"arch": "32imc_zba_zbb"}})
	require.NoError(t, err)
	assert.Contains(t, runner.argvs[0], "-march=rv32imc_zba_zbb")
	assert.Contains(t, runner.argvs[0], "-mabi=ilp32")
}
