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
package script

import (
	"context"
	"errors"
	"testing"

	"github.com/gravclosure/go-closure/pkg/coeff"
	"github.com/gravclosure/go-closure/pkg/construct"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const specialise = "(substitute (coefficient 2 0 2 0) (e_1 (- e_2)))"

func Test_Parse_01(t *testing.T) {
	stmts, err := Parse("; header\n\n(+ x 1)\n   \n(* y 2) ; trailing\n")
	require.NoError(t, err)
	require.Len(t, stmts, 2)
	//
	assert.Equal(t, 3, stmts[0].Line)
	assert.Equal(t, "(+ x 1)", stmts[0].Source)
	assert.Equal(t, 5, stmts[1].Line)
	assert.Empty(t, stmts[1].Keys)
}

func Test_Parse_Keys(t *testing.T) {
	stmts, err := Parse("(+ (coefficient 1 0 1 0) (coefficient 2 0 0 0) (coefficient 1 0 1 0))")
	require.NoError(t, err)
	//
	assert.Equal(t, []coeff.Key{
		coeff.NewKey(construct.CoefficientName, 1, 0, 1, 0),
		coeff.NewKey(construct.CoefficientName, 2, 0, 0, 0),
	}, stmts[0].Keys)
}

func Test_Parse_Invalid_01(t *testing.T) {
	check_SyntaxError(t, "(+ 1", 1, 5)
}

func Test_Parse_Invalid_02(t *testing.T) {
	check_SyntaxError(t, "x\n  (foo 1)", 2, 3)
}

func Test_Parse_Invalid_03(t *testing.T) {
	check_SyntaxError(t, "(coefficient 1 0 x 0)", 1, 18)
}

func Test_Parse_Invalid_04(t *testing.T) {
	check_SyntaxError(t, "(coefficient 1 0 1)", 1, 1)
}

func Test_Parse_Invalid_05(t *testing.T) {
	check_SyntaxError(t, "(+ x) y", 1, 7)
}

func Test_Parse_Invalid_06(t *testing.T) {
	check_SyntaxError(t, "(substitute x (1 y))", 1, 15)
	check_SyntaxError(t, "(-)", 1, 1)
	check_SyntaxError(t, "((+ x) y)", 1, 1)
}

func Test_Parse_Invalid_07(t *testing.T) {
	// Columns follow the offending term, not its text
	check_SyntaxError(t, "(coefficient  1 0 x 0)", 1, 19)
	check_SyntaxError(t, "(* x (coefficient x x 1 0))", 1, 19)
	check_SyntaxError(t, "(+ (foo) (foo))\n(+ y\t(foo 1))", 1, 4)
	check_SyntaxError(t, "x\n(+ y\t(foo 1))", 2, 6)
}

func Test_Evaluate_01(t *testing.T) {
	check_Evaluate(t, "-x", "(- x (* 2 x))")
}

func Test_Evaluate_02(t *testing.T) {
	check_Evaluate(t, "3/2", "(+ 1 1/2)")
}

func Test_Evaluate_03(t *testing.T) {
	check_Evaluate(t, "x - y", "(- x y)")
	check_Evaluate(t, "-x", "(- x)")
}

func Test_Evaluate_04(t *testing.T) {
	check_Evaluate(t, "2 * y", "(substitute (+ x y) (x y))")
}

func Test_Script_EndToEnd(t *testing.T) {
	check_Script(t, []string{
		`e_2 * (-\gamma_{ac}\gamma_{bd} - \gamma_{ad}\gamma_{bc} + \gamma_{ab}\gamma_{cd})`,
	}, specialise)
}

func Test_Script_Shared(t *testing.T) {
	check_Script(t, []string{
		`e_1 * \gamma_{ab}`,
		`-e_1 * \gamma_{ab}`,
		`3 * \gamma_{ab}`,
		`e_1`,
	}, "(coefficient 1 0 1 0)\n(- (coefficient 1 0 1 0))\n(substitute (coefficient 1 0 1 0) (e_1 3))\n(coefficient 0 0 0 0)")
}

func Test_Script_Mixed(t *testing.T) {
	stmts, err := Parse("(+ x (coefficient 1 0 1 0))")
	require.NoError(t, err)
	//
	c := coeff.NewCoordinator(construct.Generator(construct.DefaultOptions()))
	eq := stmts[0].Register(c)
	c.StartAll()
	//
	_, err = eq.Wait(context.Background())
	assert.True(t, errors.Is(err, ErrMixedOperands))
}

func check_SyntaxError(t *testing.T, text string, line int, column int) {
	_, err := Parse(text)
	//
	var serr *SyntaxError
	//
	require.True(t, errors.As(err, &serr), "expected syntax error for %q", text)
	assert.Equal(t, line, serr.Line)
	assert.Equal(t, column, serr.Column)
}

func check_Evaluate(t *testing.T, expected string, text string) {
	stmts, err := Parse(text)
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	//
	val, err := stmts[0].Evaluate(nil)
	require.NoError(t, err)
	assert.Equal(t, expected, val.String())
}

func check_Script(t *testing.T, expected []string, text string) {
	stmts, err := Parse(text)
	require.NoError(t, err)
	//
	var (
		c   = coeff.NewCoordinator(construct.Generator(construct.DefaultOptions()), coeff.WithWorkers(4))
		eqs = make([]*coeff.Equation, len(stmts))
	)
	//
	for i, s := range stmts {
		eqs[i] = s.Register(c)
	}
	//
	c.StartAll()
	//
	for i, eq := range eqs {
		val, err := eq.Wait(context.Background())
		require.NoError(t, err)
		assert.Equal(t, expected[i], val.String())
	}
}
