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
package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gravclosure/go-closure/pkg/config"
	"github.com/gravclosure/go-closure/pkg/expr"
	"github.com/gravclosure/go-closure/pkg/script"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const source = `; Specialise the (2,0,2,0) coefficient
(substitute (coefficient 2 0 2 0) (e_1 (- e_2)))
(coefficient 1 0 1 0)
`

func Test_RunScript_01(t *testing.T) {
	var (
		out bytes.Buffer
		reg = prometheus.NewRegistry()
	)
	//
	results := check_RunScript(t, source, config.Default(), reg)
	printResults(&out, results, false)
	//
	assert.Equal(t, `e_2 * (-\gamma_{ac}\gamma_{bd} - \gamma_{ad}\gamma_{bc} + \gamma_{ab}\gamma_{cd})`+"\n"+
		`e_1 * \gamma_{ab}`+"\n", out.String())
	// Metrics
	out.Reset()
	reportMetrics(&out, reg)
	assert.Contains(t, out.String(), "closure_coefficients_computations_total 2")
}

func Test_RunScript_Lisp(t *testing.T) {
	var out bytes.Buffer
	//
	results := check_RunScript(t, "(coefficient 1 0 1 0)", config.Default(), prometheus.NewRegistry())
	printResults(&out, results, true)
	assert.Equal(t, "(+ (* e_1 (gamma a b)))\n", out.String())
}

func Test_RunScript_Options(t *testing.T) {
	cfg := config.Default()
	cfg.Precheck = false
	cfg.Workers = 1
	//
	results := check_RunScript(t, "(coefficient 1 1 1 0)", cfg, prometheus.NewRegistry())
	assert.Equal(t, `e_1 * \epsilon_{abc}`, results[0].String())
	// No Levi-Civita symbol in even dimensions
	cfg.Dimension = 2
	results = check_RunScript(t, "(coefficient 1 1 1 0)", cfg, prometheus.NewRegistry())
	assert.Equal(t, `0`, results[0].String())
}

func Test_RunScript_Error(t *testing.T) {
	stmts, err := script.Parse("(coefficient 1 0 1 0)\n(+ x (coefficient 1 0 1 0))")
	require.NoError(t, err)
	//
	_, err = runScript(context.Background(), stmts, config.Default(), prometheus.NewRegistry())
	assert.True(t, errors.Is(err, script.ErrMixedOperands))
	assert.Contains(t, err.Error(), "line 2")
}

func Test_RunScript_Metrics(t *testing.T) {
	stmts, err := script.Parse("(coefficient 2 0 0 0)\n(coefficient 2 0 0 0)")
	require.NoError(t, err)
	//
	reg := prometheus.NewRegistry()
	_, err = runScript(context.Background(), stmts, config.Default(), reg)
	require.NoError(t, err)
	// Shared coefficient computed once
	var out bytes.Buffer
	//
	reportMetrics(&out, reg)
	assert.Contains(t, out.String(), "closure_coefficients_computations_total 1")
	assert.NotContains(t, out.String(), "closure_coefficients_failures_total 1")
}

func Test_PrintSyntaxError(t *testing.T) {
	var (
		out  bytes.Buffer
		text = "(+ x 1)\n  (foo 1)\n"
	)
	//
	_, err := script.Parse(text)
	//
	var serr *script.SyntaxError
	//
	require.True(t, errors.As(err, &serr))
	printSyntaxError(&out, "test.clo", serr, text)
	//
	lines := strings.Split(out.String(), "\n")
	assert.Equal(t, "test.clo:2:3: unknown operator foo in (foo 1)", lines[0])
	assert.Equal(t, "  (foo 1)", lines[1])
	assert.Equal(t, "  ^", lines[2])
}

func Test_ReadConfig_01(t *testing.T) {
	path := filepath.Join(t.TempDir(), "closure.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 3\ndimension: 4\n"), 0o600))
	//
	require.NoError(t, runCmd.ParseFlags([]string{"--config", path, "--dimension", "5", "--no-precheck"}))
	//
	cfg := readConfig(runCmd)
	assert.Equal(t, uint(3), cfg.Workers)
	assert.Equal(t, uint(5), cfg.Dimension)
	assert.False(t, cfg.Precheck)
	assert.False(t, cfg.Lisp)
}

func check_RunScript(t *testing.T, text string, cfg config.Config, reg prometheus.Registerer) []expr.Expression {
	stmts, err := script.Parse(text)
	require.NoError(t, err)
	//
	results, err := runScript(context.Background(), stmts, cfg, reg)
	require.NoError(t, err)
	require.Len(t, results, len(stmts))
	//
	return results
}
