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
package subst

import (
	"errors"
	"testing"

	"github.com/gravclosure/go-closure/pkg/expr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	a = expr.NewVariable("a")
	b = expr.NewVariable("b")
	c = expr.NewVariable("c")
	m = expr.NewVariable("m")
	n = expr.NewVariable("n")
	x = expr.NewVariable("x")
	y = expr.NewVariable("y")
	z = expr.NewVariable("z")
)

func Test_Apply_01(t *testing.T) {
	s := New().MustInsert(x, y).MustInsert(y, z)
	assert.Equal(t, "z", s.Apply(x).String())
}

func Test_Apply_02(t *testing.T) {
	s := New().MustInsert(x, y)
	assert.Equal(t, "y", s.Apply(x).String())
}

func Test_Apply_03(t *testing.T) {
	s := New().MustInsert(y, z).MustInsert(x, y)
	assert.Equal(t, "y", s.Apply(x).String())
}

func Test_Apply_04(t *testing.T) {
	s := New().MustInsert(a, expr.Add(m, n))
	e := expr.Mul(expr.Int(2), a, b)
	//
	assert.Equal(t, "2 * (m + n) * b", s.Apply(e).String())
	// Original is unchanged
	assert.Equal(t, "2 * a * b", e.String())
}

func Test_Apply_Identity(t *testing.T) {
	s := New().MustInsert(x, y)
	e := expr.Add(a, expr.Mul(expr.Frac(1, 3), b))
	//
	assert.Equal(t, e.String(), s.Apply(e).String())
}

func Test_Apply_Idempotent(t *testing.T) {
	s := New().MustInsert(a, expr.Add(m, n)).MustInsert(c, b)
	e := expr.Add(a, c)
	// No rule target occurs in any replacement, so applying twice is the
	// same as applying once.
	once := s.Apply(e)
	assert.Equal(t, once.String(), s.Apply(once).String())
}

func Test_Insert_Invalid(t *testing.T) {
	var rerr *RuleError
	//
	err := New().Insert(expr.Add(x, y), z)
	require.Error(t, err)
	assert.True(t, errors.As(err, &rerr))
	assert.Panics(t, func() { New().MustInsert(expr.Int(1), z) })
}

func Test_Insert_NilReplacement(t *testing.T) {
	var (
		rerr *RuleError
		s    = New()
	)
	//
	err := s.Insert(x, nil)
	require.True(t, errors.As(err, &rerr))
	assert.Same(t, x, rerr.Target)
	assert.Equal(t, 0, s.Len())
	// Nothing to apply, hence nothing to fail
	assert.Equal(t, "x + y", s.Apply(expr.Add(x, y)).String())
	//
	err = s.Insert(nil, y)
	require.True(t, errors.As(err, &rerr))
	assert.Contains(t, err.Error(), "nil")
	assert.Panics(t, func() { New().MustInsert(y, nil) })
}

func Test_Merge_01(t *testing.T) {
	first := New().MustInsert(a, expr.Add(m, n)).MustInsert(c, b)
	second := New().MustInsert(b, expr.Subtract(m, n))
	//
	assert.Equal(t, "a = m + n\nc = m - n\nb = m - n\n", Merge(first, second).String())
	// Inputs are unchanged
	assert.Equal(t, "a = m + n\nc = b\n", first.String())
}

func Test_Merge_02(t *testing.T) {
	// Later replacements are not rewritten by earlier rules
	first := New().MustInsert(a, b)
	second := New().MustInsert(c, a)
	//
	assert.Equal(t, "a = b\nc = a\n", Merge(first, second).String())
}

func Test_Merge_Empty(t *testing.T) {
	assert.Equal(t, "", Merge().String())
	assert.Equal(t, 0, Merge(New(), New()).Len())
}

func Test_Wrap_01(t *testing.T) {
	s := New().MustInsert(a, expr.Add(m, n)).MustInsert(c, b)
	w := s.Wrap(expr.Add(a, c))
	//
	assert.Equal(t, "m + n + b", w.String())
	assert.Equal(t, "(substitute (+ a c) (a (+ m n)) (c b))", w.Lisp().String())
}

func Test_ApplyTensor_01(t *testing.T) {
	var (
		e1 = expr.NewVariable("e_1")
		e2 = expr.NewVariable("e_2")
	)
	//
	sum := expr.TensorAdd(
		expr.Scale(e1, expr.Juxtapose(expr.Metric("a", "c"), expr.Metric("b", "d"))),
		expr.Scale(e1, expr.Juxtapose(expr.Metric("a", "d"), expr.Metric("b", "c"))),
		expr.Scale(e2, expr.Juxtapose(expr.Metric("a", "b"), expr.Metric("c", "d"))),
	)
	tensor := expr.NewTensor(3, sum, "a", "b", "c", "d")
	s := New().MustInsert(e1, expr.Neg(e2))
	//
	expected := `e_2 * (-\gamma_{ac}\gamma_{bd} - \gamma_{ad}\gamma_{bc} + \gamma_{ab}\gamma_{cd})`
	assert.Equal(t, expected, s.ApplyTensor(sum).String())
	//
	nt := s.ApplyToTensor(tensor)
	assert.Equal(t, expected, nt.String())
	assert.Equal(t, tensor.Indices, nt.Indices)
	assert.Equal(t, `e_1 * (\gamma_{ac}\gamma_{bd} + \gamma_{ad}\gamma_{bc}) + e_2 * \gamma_{ab}\gamma_{cd}`,
		tensor.String())
}
