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
package basis

import (
	"errors"
	"testing"

	"github.com/gravclosure/go-closure/pkg/expr"
	"github.com/gravclosure/go-closure/pkg/linalg"
	"github.com/gravclosure/go-closure/pkg/util/field/rational"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Select_01(t *testing.T) {
	check_Select(t, []int{0, 1}, vector(1, 0), vector(0, 1), vector(1, 1))
}

func Test_Select_02(t *testing.T) {
	check_Select(t, []int{0, 2}, vector(1, 1), vector(2, 2), vector(1, -1))
}

func Test_Select_03(t *testing.T) {
	check_Select(t, []int{1, 2}, vector(0, 0, 0), vector(0, 3, 1), vector(2, 0, 0))
}

func Test_Select_04(t *testing.T) {
	// Full rank
	check_Select(t, []int{0, 1, 2}, vector(1, 2, 3), vector(0, 1, 4), vector(5, 6, 0))
}

func Test_Select_Empty(t *testing.T) {
	check_Select(t, []int{})
}

func Test_Select_Zero(t *testing.T) {
	check_Select(t, []int{}, vector(0, 0))
}

func Test_Select_Fractions(t *testing.T) {
	var (
		half   = rational.Frac(1, 2)
		third  = rational.Frac(1, 3)
		sixth  = rational.Frac(1, 6)
		zero   = rational.Frac(0, 1)
		first  = table(half, third)
		second = table(third, zero)
		third_ = table(sixth, third)
	)
	// first - second = (1/6, 1/3)
	check_SelectTensors(t, []int{0, 1}, first, second, third_)
}

func Test_ModularRank_Fractions(t *testing.T) {
	var (
		half  = rational.Frac(1, 2)
		third = rational.Frac(1, 3)
		zero  = rational.Frac(0, 1)
	)
	// (3, 2) = 6 * (1/2, 1/3)
	check_ModularRank(t, 1, linalg.VectorOf(half, third), linalg.VectorOf(rational.Frac(3, 1), rational.Frac(2, 1)))
	check_ModularRank(t, 2, linalg.VectorOf(half, zero), linalg.VectorOf(zero, third))
	// (-1/2, 1/4) = -1/2 * (1, -1/2)
	check_ModularRank(t, 1, linalg.VectorOf(rational.Frac(1, 1), rational.Frac(-1, 2)),
		linalg.VectorOf(rational.Frac(-1, 2), rational.Frac(1, 4)))
}

func Test_Select_Metric(t *testing.T) {
	// Candidates for a rank four tensor symmetric in (ab) and (cd)
	var (
		c1 = metrics([2]string{"a", "c"}, [2]string{"b", "d"}, [2]string{"a", "d"}, [2]string{"b", "c"})
		c2 = metrics([2]string{"a", "b"}, [2]string{"c", "d"})
		c3 = metrics([2]string{"a", "b"}, [2]string{"c", "d"}, [2]string{"a", "b"}, [2]string{"c", "d"})
	)
	//
	check_SelectTensors(t, []int{0, 1}, c1, c2, c3)
}

func Test_Select_Shape(t *testing.T) {
	var shapeErr *linalg.ShapeError
	//
	candidates := expr.NewTensorContainer(vector(1, 0), vector(1, 0, 0))
	_, err := Select(candidates, DefaultOptions())
	assert.True(t, errors.As(err, &shapeErr))
}

func Test_Select_Symbolic(t *testing.T) {
	candidates := expr.NewTensorContainer(expr.NewTensor(2, expr.Named("R", "a"), "a"))
	_, err := Select(candidates, DefaultOptions())
	assert.True(t, errors.Is(err, expr.ErrSymbolic))
}

func Test_Select_Logging(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	//
	candidates := expr.NewTensorContainer(vector(1, 0), vector(0, 1), vector(1, 1))
	selected, err := Select(candidates, Options{ModularPrecheck: true, Logger: logger})
	require.NoError(t, err)
	assert.Equal(t, 2, selected.Len())
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "selected 2 of 3 candidates", hook.LastEntry().Message)
}

// ============================================================================
// Helpers
// ============================================================================

func check_ModularRank(t *testing.T, expected uint, rows ...linalg.Vector[rational.Element]) {
	matrix, err := linalg.NewMatrix(rows...)
	require.NoError(t, err)
	assert.Equal(t, expected, modularRank(matrix))
	// Exact rank agrees
	assert.Equal(t, expected, matrix.Rank())
}

func check_Select(t *testing.T, expected []int, candidates ...*expr.Tensor) {
	check_SelectTensors(t, expected, candidates...)
}

func check_SelectTensors(t *testing.T, expected []int, candidates ...*expr.Tensor) {
	for _, precheck := range []bool{true, false} {
		container := expr.NewTensorContainer(candidates...)
		selected, err := Select(container, Options{ModularPrecheck: precheck})
		require.NoError(t, err)
		require.Equal(t, len(expected), selected.Len(), "precheck=%t", precheck)
		//
		for i, index := range expected {
			assert.Same(t, candidates[index], selected.At(i), "precheck=%t", precheck)
		}
		// Input is unchanged
		assert.Equal(t, len(candidates), container.Len())
	}
}

// Construct a tensor with a single index whose components are the given
// integers.
func vector(values ...int64) *expr.Tensor {
	var elements = make([]rational.Element, len(values))
	//
	for i, v := range values {
		elements[i] = rational.Frac(v, 1)
	}
	//
	return table(elements...)
}

func table(values ...rational.Element) *expr.Tensor {
	leaf, err := expr.Table("v", []string{"a"}, []uint{uint(len(values))}, values)
	if err != nil {
		panic(err.Error())
	}
	//
	return &expr.Tensor{
		Indices:   []expr.Index{{Name: "a", Range: uint(len(values))}},
		Body:      leaf,
		Dimension: uint(len(values)),
	}
}

// Construct the sum of products of metric pairs, where each consecutive pair
// of index pairs forms one term.
func metrics(pairs ...[2]string) *expr.Tensor {
	var terms []expr.TensorExpr
	//
	for i := 0; i < len(pairs); i += 2 {
		terms = append(terms, expr.Juxtapose(expr.Metric(pairs[i][0], pairs[i][1]),
			expr.Metric(pairs[i+1][0], pairs[i+1][1])))
	}
	//
	return expr.NewTensor(3, expr.TensorAdd(terms...), "a", "b", "c", "d")
}
