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

// Command handlers. Each one finishes all local parsing before it asks
// for the execution environment, so a bad option never costs a container
// run.

import (
	"fmt"
	"strconv"

	"github.com/gookit/color"
	"github.com/kballard/go-shellquote"

	"github.com/ranaumarnadeem/riscv-docker-toolchain/pkg/arch"
	"github.com/ranaumarnadeem/riscv-docker-toolchain/pkg/fault"
	"github.com/ranaumarnadeem/riscv-docker-toolchain/pkg/filter"
	"github.com/ranaumarnadeem/riscv-docker-toolchain/pkg/toolchain"
)

func build(d *Dispatcher, req Request) (*toolchain.Result, error) {
	resolved, err := arch.Resolve(req.Options["arch"])
	if err != nil {
		return nil, err
	}

	opt := d.DefaultOpt
	if v, ok := req.Options["opt"]; ok {
		opt = v
	}
	level, err := toolchain.ParseOpt(opt)
	if err != nil {
		return nil, err
	}

	bare := false
	if v, ok := req.Options["bare"]; ok {
		if bare, err = strconv.ParseBool(v); err != nil {
			return nil, fault.Errorf(fault.InvalidOption, "--bare=%q", v)
		}
	}

	var extra []string
	if v := req.Options["cflags"]; v != "" {
		if extra, err = shellquote.Split(v); err != nil {
			return nil, fault.Wrap(fault.InvalidOption, err, "--cflags")
		}
	}

	if err := d.requireEnvironment(); err != nil {
		return nil, err
	}
	res, err := d.Tools.Build(toolchain.BuildRequest{
		Source:     req.Args[0],
		Arch:       resolved,
		Output:     req.Options["output"],
		Opt:        level,
		BareMetal:  bare,
		ExtraFlags: extra,
	})
	if err != nil {
		return res, err
	}
	// Warnings.
	d.Err.Write(res.Stderr)
	fmt.Fprintf(d.Out, "%s %s (%s, %s)\n", color.Green.Sprint("built"), res.Artifact, resolved, level.Flag())
	return res, nil
}

func dump(d *Dispatcher, req Request) (*toolchain.Result, error) {
	if err := d.requireEnvironment(); err != nil {
		return nil, err
	}
	res, err := d.Tools.Disassemble(toolchain.DumpRequest{Artifact: req.Args[0], Grep: req.Options["grep"]})
	if err != nil {
		return res, err
	}
	fmt.Fprint(d.Out, filter.Filter(string(res.Stdout), req.Options["grep"]))
	return res, nil
}

func bin(d *Dispatcher, req Request) (*toolchain.Result, error) {
	if err := d.requireEnvironment(); err != nil {
		return nil, err
	}
	res, err := d.Tools.Flatten(toolchain.BinRequest{Artifact: req.Args[0], Output: req.Options["output"]})
	if err != nil {
		return res, err
	}
	fmt.Fprintf(d.Out, "%s %s\n", color.Green.Sprint("wrote"), res.Artifact)
	return res, nil
}

func archs(d *Dispatcher, req Request) (*toolchain.Result, error) {
	fmtStr := "%-13s%-13s%-8s%s\n"
	fmt.Fprintf(d.Out, fmtStr, "Preset", "ISA", "ABI", "Description")
	fmt.Fprintf(d.Out, fmtStr, "------", "---", "---", "-----------")
	for _, p := range arch.Presets() {
		fmt.Fprintf(d.Out, fmtStr, p.Name, p.ISA, p.ABI, p.Description)
	}
	fmt.Fprintln(d.Out, "\nCustom: <32|64><letters>[_<ext>]..., e.g. 32imc_zba_zbb")
	return nil, nil
}

func version(d *Dispatcher, req Request) (*toolchain.Result, error) {
	fmt.Fprintf(d.Out, "rv %s\n", d.Version)
	fmt.Fprintf(d.Out, "image %s\n", d.Env.Name())
	for _, c := range toolchain.Components {
		fmt.Fprintf(d.Out, "  %-36s %s\n", c.Name, c.Version)
	}
	return nil, nil
}

func shell(d *Dispatcher, req Request) (*toolchain.Result, error) {
	if err := d.requireEnvironment(); err != nil {
		return nil, err
	}
	return d.Tools.Shell()
}

func buildImage(d *Dispatcher, req Request) (*toolchain.Result, error) {
	ok, err := d.present()
	if err != nil {
		return nil, err
	}
	if ok {
		fmt.Fprintf(d.Out, "image %s already present\n", d.Env.Name())
		return nil, nil
	}
	fmt.Fprintf(d.Out, "building image %s (this takes a while)\n", d.Env.Name())
	if err := d.Env.Build(); err != nil {
		return nil, err
	}
	fmt.Fprintf(d.Out, "%s image %s\n", color.Green.Sprint("built"), d.Env.Name())
	return nil, nil
}
