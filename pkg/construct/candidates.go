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
package construct

import (
	"fmt"
	"slices"

	"github.com/gravclosure/go-closure/pkg/expr"
)

// IndexNames returns n distinct index names a, b, c, ... which, beyond the
// alphabet, continue as a1, b1, c1, ...
func IndexNames(n uint) []string {
	var names = make([]string, n)
	//
	for i := range n {
		if i < 26 {
			names[i] = string(rune('a' + i))
		} else {
			names[i] = fmt.Sprintf("%c%d", rune('a'+(i%26)), i/26)
		}
	}
	//
	return names
}

// Candidates enumerates the elementary tensors which can be formed over the
// given (distinct) index names from the metric and, where the number of
// indices is odd and the dimension is odd, a single Levi-Civita symbol.  The
// metric pairings are enumerated by partnering the first remaining index with
// each other index, from the outermost inwards.
func Candidates(names []string, dim uint) []expr.TensorExpr {
	var candidates []expr.TensorExpr
	//
	if len(names)%2 == 0 {
		for _, p := range pairings(names) {
			candidates = append(candidates, expr.Juxtapose(p...))
		}
		//
		return candidates
	}
	//
	if dim%2 == 0 || uint(len(names)) < dim {
		return nil
	}
	// Odd number of indices
	for _, chosen := range combinations(len(names), int(dim)) {
		var (
			eps  = expr.Epsilon(pick(names, chosen)...)
			rest = omit(names, chosen)
		)
		//
		for _, p := range pairings(rest) {
			candidates = append(candidates, expr.Juxtapose(append([]*expr.Leaf{eps}, p...)...))
		}
	}
	//
	return candidates
}

// Enumerate all complete pairings of the given names into metrics.
func pairings(names []string) [][]*expr.Leaf {
	if len(names) == 0 {
		return [][]*expr.Leaf{nil}
	}
	//
	var result [][]*expr.Leaf
	//
	for j := len(names) - 1; j >= 1; j-- {
		var (
			metric = expr.Metric(names[0], names[j])
			rest   = omit(names, []int{0, j})
		)
		//
		for _, p := range pairings(rest) {
			result = append(result, append([]*expr.Leaf{metric}, p...))
		}
	}
	//
	return result
}

// Enumerate all k-element subsets of [0,n) in lexicographic order.
func combinations(n int, k int) [][]int {
	var (
		result  [][]int
		current = make([]int, 0, k)
		visit   func(int)
	)
	//
	visit = func(start int) {
		if len(current) == k {
			result = append(result, slices.Clone(current))
			return
		}
		//
		for i := start; i < n; i++ {
			current = append(current, i)
			visit(i + 1)
			current = current[:len(current)-1]
		}
	}
	//
	visit(0)
	//
	return result
}

func pick(names []string, positions []int) []string {
	var picked = make([]string, len(positions))
	//
	for i, p := range positions {
		picked[i] = names[p]
	}
	//
	return picked
}

func omit(names []string, positions []int) []string {
	var rest []string
	//
	for i, n := range names {
		if !slices.Contains(positions, i) {
			rest = append(rest, n)
		}
	}
	//
	return rest
}
