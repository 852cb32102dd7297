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
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Config_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func Test_Config_Partial(t *testing.T) {
	cfg, err := Parse([]byte("workers: 4\nlisp: true\n"))
	require.NoError(t, err)
	//
	assert.Equal(t, uint(4), cfg.Workers)
	assert.True(t, cfg.Lisp)
	// Defaults retained
	assert.Equal(t, uint(3), cfg.Dimension)
	assert.True(t, cfg.Precheck)
}

func Test_Config_Options(t *testing.T) {
	cfg, err := Parse([]byte("dimension: 4\nprecheck: false\n"))
	require.NoError(t, err)
	//
	opts := cfg.ConstructOptions()
	assert.Equal(t, uint(4), opts.Dimension)
	assert.False(t, opts.Basis.ModularPrecheck)
}

func Test_Config_Invalid_01(t *testing.T) {
	_, err := Parse([]byte("dimension: 0\n"))
	assert.True(t, errors.Is(err, ErrInvalid))
}

func Test_Config_Invalid_02(t *testing.T) {
	_, err := Parse([]byte("workerz: 2\n"))
	assert.Error(t, err)
}

func Test_Config_Invalid_03(t *testing.T) {
	_, err := Parse([]byte("workers: -1\n"))
	assert.Error(t, err)
}

func Test_Config_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "closure.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stats: true\n"), 0o600))
	//
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Stats)
	//
	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
