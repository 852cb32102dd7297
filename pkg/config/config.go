// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gravclosure/go-closure/pkg/construct"
	"gopkg.in/yaml.v3"
)

// ErrInvalid indicates a configuration which cannot be used.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the settings of a run.  Every field can also be set from the
// command line, in which case the command line takes precedence.
type Config struct {
	// Number of worker goroutines computing coefficients (0 means one per CPU).
	Workers uint `yaml:"workers"`
	// Spatial dimension over which indices range.
	Dimension uint `yaml:"dimension"`
	// Print results as S-expressions rather than rendered text.
	Lisp bool `yaml:"lisp"`
	// Enable debug logging.
	Verbose bool `yaml:"verbose"`
	// Report timing, memory and coordinator metrics.
	Stats bool `yaml:"stats"`
	// Use a modular rank computation to skip exact elimination where possible.
	Precheck bool `yaml:"precheck"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Workers:   0,
		Dimension: 3,
		Precheck:  true,
	}
}

// Load reads a configuration file, where any setting not mentioned retains
// its default value.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("load config file: %w", err)
	}
	//
	return Parse(data)
}

// Parse a configuration from its YAML form.  Unknown settings are rejected.
func Parse(data []byte) (Config, error) {
	var (
		config  = Default()
		decoder = yaml.NewDecoder(bytes.NewReader(data))
	)
	//
	decoder.KnownFields(true)
	//
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return Default(), fmt.Errorf("parse config: %w", err)
	}
	//
	if err := config.Validate(); err != nil {
		return Default(), err
	}
	//
	return config, nil
}

// Validate checks this configuration can be used.
func (c Config) Validate() error {
	if c.Dimension == 0 {
		return fmt.Errorf("%w: dimension must be positive", ErrInvalid)
	}
	//
	return nil
}

// ConstructOptions returns the options for constructing coefficients under
// this configuration.
func (c Config) ConstructOptions() construct.Options {
	opts := construct.DefaultOptions()
	opts.Dimension = c.Dimension
	opts.Basis.ModularPrecheck = c.Precheck
	//
	return opts
}
