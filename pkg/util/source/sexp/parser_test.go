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
package sexp

import (
	"testing"

	"github.com/gravclosure/go-closure/pkg/util/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Parse_01(t *testing.T) {
	check_Parse(t, "x", "x")
}

func Test_Parse_02(t *testing.T) {
	check_Parse(t, "(+ x 1)", "(+ x 1)")
}

func Test_Parse_03(t *testing.T) {
	check_Parse(t, "  (substitute (coefficient 2 0 2 0)\n (e_1 (- e_2)))  ", "(substitute (coefficient 2 0 2 0) (e_1 (- e_2)))")
}

func Test_Parse_04(t *testing.T) {
	check_Parse(t, "(f x) ; trailing comment", "(f x)")
}

func Test_Parse_05(t *testing.T) {
	check_Parse(t, "()", "()")
}

func Test_Parse_Empty(t *testing.T) {
	term, err := Parse("   ; nothing here")
	require.Nil(t, err)
	assert.Nil(t, term)
}

func Test_Parse_Invalid_01(t *testing.T) {
	check_ParseError(t, "(+ x", "unexpected end-of-file")
}

func Test_Parse_Invalid_02(t *testing.T) {
	check_ParseError(t, ")", "unexpected end-of-list")
}

func Test_Parse_Invalid_03(t *testing.T) {
	check_ParseError(t, "(x) y", "unexpected remainder")
}

func Test_SourceMap(t *testing.T) {
	p := NewParser("  (add  x (mul y 1)) ")
	term, err := p.Parse()
	require.Nil(t, err)
	//
	var (
		srcmap = p.SourceMap()
		list   = term.AsList()
		inner  = list.Get(2).AsList()
	)
	//
	check_Span(t, srcmap.Get(term), 2, 20)
	check_Span(t, srcmap.Get(list.Get(0)), 3, 6)
	check_Span(t, srcmap.Get(list.Get(1)), 8, 9)
	check_Span(t, srcmap.Get(inner), 10, 19)
	check_Span(t, srcmap.Get(inner.Get(2)), 17, 18)
	assert.False(t, srcmap.Has(NewSymbol("x")))
}

func check_Span(t *testing.T, span source.Span, start int, end int) {
	assert.Equal(t, start, span.Start())
	assert.Equal(t, end, span.End())
}

func Test_MatchSymbols(t *testing.T) {
	term, err := Parse("(coefficient 2 0 2 0)")
	require.Nil(t, err)
	assert.True(t, term.AsList().MatchSymbols(1, "coefficient"))
	assert.False(t, term.AsList().MatchSymbols(1, "substitute"))
}

func check_Parse(t *testing.T, input string, expected string) {
	term, err := Parse(input)
	require.Nil(t, err)
	require.NotNil(t, term)
	assert.Equal(t, expected, term.String())
}

func check_ParseError(t *testing.T, input string, msg string) {
	_, err := Parse(input)
	require.NotNil(t, err)
	assert.Equal(t, msg, err.Message)
}
