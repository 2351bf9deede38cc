// Copyright 2026 The Cockroach Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

package cli

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v2"

	"github.com/cockroachdb/searchprof/pkg/cli/cliflags"
	"github.com/cockroachdb/searchprof/pkg/util/humanizeutil"
)

// Output formats.
const (
	formatJSON  = "json"
	formatTable = "table"
)

// Config is the YAML configuration file accepted by --config, e.g.
//
//	decode:
//	  max_depth: 32
//	  max_nodes: 5000
//	max_payload: 1MiB
//	format: json
//	verbosity: 1
//
// Unknown fields are rejected.
type Config struct {
	Decode struct {
		MaxDepth int `yaml:"max_depth"`
		MaxNodes int `yaml:"max_nodes"`
	} `yaml:"decode"`
	MaxPayload string `yaml:"max_payload"`
	Format     string `yaml:"format"`
	Verbosity  int32  `yaml:"verbosity"`
}

func loadConfig(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "reading configuration")
	}
	if err := yaml.UnmarshalStrict(b, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing configuration %s", path)
	}
	return cfg, nil
}

// resolve applies the configuration file to every setting whose flag was
// not given explicitly, then validates the result.
func (c *cliContext) resolve(fs *pflag.FlagSet) error {
	if c.configPath != "" {
		cfg, err := loadConfig(c.configPath)
		if err != nil {
			return err
		}
		if err := c.applyConfig(fs, cfg); err != nil {
			return err
		}
	}
	if c.format == "" {
		c.format = formatJSON
		if isInteractive {
			c.format = formatTable
		}
	}

	switch c.format {
	case formatJSON, formatTable:
	default:
		return errors.Newf("unknown output format %q, expected %s or %s", c.format, formatJSON, formatTable)
	}
	if c.limits.MaxDepth <= 0 || c.limits.MaxNodes <= 0 {
		return errors.Newf("decode limits must be positive, got depth %d and nodes %d",
			c.limits.MaxDepth, c.limits.MaxNodes)
	}
	if c.maxPayload <= 0 {
		return errors.Newf("maximum payload must be positive, got %s", humanizeutil.IBytes(c.maxPayload))
	}
	return nil
}

func (c *cliContext) applyConfig(fs *pflag.FlagSet, cfg Config) error {
	unset := func(flagInfo cliflags.FlagInfo) bool { return !fs.Changed(flagInfo.Name) }
	if cfg.Decode.MaxDepth != 0 && unset(cliflags.MaxDepth) {
		c.limits.MaxDepth = cfg.Decode.MaxDepth
	}
	if cfg.Decode.MaxNodes != 0 && unset(cliflags.MaxNodes) {
		c.limits.MaxNodes = cfg.Decode.MaxNodes
	}
	if cfg.MaxPayload != "" && unset(cliflags.MaxPayload) {
		v, err := humanizeutil.ParseBytes(cfg.MaxPayload)
		if err != nil {
			return errors.Wrap(err, "parsing max_payload")
		}
		c.maxPayload = v
	}
	if cfg.Format != "" && unset(cliflags.Format) {
		c.format = cfg.Format
	}
	if cfg.Verbosity != 0 && unset(cliflags.Verbosity) {
		c.verbosity = cfg.Verbosity
	}
	return nil
}
