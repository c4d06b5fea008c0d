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

// Package config holds the settings that locate the toolchain image and
// shape the commands run inside it.
//
// Settings are layered: built-in defaults, then .rv.yaml in the working
// directory, then RV_* environment variables. Command-line flags are
// applied last by the caller.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/xyproto/env/v2"
	"gopkg.in/yaml.v3"

	"github.com/ranaumarnadeem/riscv-docker-toolchain/pkg/fault"
	"github.com/ranaumarnadeem/riscv-docker-toolchain/pkg/toolchain"
)

const FileName = ".rv.yaml"

type Config struct {
	Image      string `yaml:"image"`
	Engine     string `yaml:"engine"`
	Dockerfile string `yaml:"dockerfile"`
	ContextDir string `yaml:"context"`
	OutputDir  string `yaml:"output_dir"`
	DefaultOpt string `yaml:"opt"`
	ToolPrefix string `yaml:"tool_prefix"`
	MountPoint string `yaml:"mount_point"`
	Debug      bool   `yaml:"debug"`

	// WorkDir is the tree mounted into the container. Never read from
	// the file.
	WorkDir string `yaml:"-"`
}

func Default() Config {
	return Config{
		Image:      "riscv-toolchain:latest",
		Engine:     "docker",
		Dockerfile: "Dockerfile",
		ContextDir: ".",
		OutputDir:  "build",
		DefaultOpt: toolchain.DefaultOpt,
		ToolPrefix: "riscv64-unknown-elf-",
		MountPoint: "/work",
	}
}

// Load builds the configuration for workDir.
func Load(workDir string) (Config, error) {
	c := Default()
	c.WorkDir = workDir

	path := filepath.Join(workDir, FileName)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(data, &c); err != nil {
			return c, fault.Wrap(fault.InvalidOption, err, path)
		}
		log.Printf("read %s\n", path)
	case errors.Is(err, fs.ErrNotExist):
	default:
		return c, fault.Wrap(fault.IOFailure, err, "reading "+path)
	}

	c.applyEnv()

	if _, err := toolchain.ParseOpt(c.DefaultOpt); err != nil {
		return c, err
	}
	return c, nil
}

func decode(data []byte, c *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Image = env.Str("RV_IMAGE", c.Image)
	c.Engine = env.Str("RV_ENGINE", c.Engine)
	c.OutputDir = env.Str("RV_OUTPUT_DIR", c.OutputDir)
	c.DefaultOpt = env.Str("RV_OPT", c.DefaultOpt)
	c.ToolPrefix = env.Str("RV_TOOL_PREFIX", c.ToolPrefix)
	if env.Has("RV_DEBUG") {
		c.Debug = env.Bool("RV_DEBUG")
	}
}
