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
	"cmp"
	"slices"
	"strings"

	"github.com/gravclosure/go-closure/pkg/expr"
)

// BlockSymmetries returns generators for the symmetries of a coefficient whose
// indices are split into the given blocks.  Each block is totally symmetric,
// and the (first,second) blocks are exchanged with the (third,fourth) blocks
// when their sizes agree.
func BlockSymmetries(blocks [][]string) []expr.Symmetry {
	var symmetries []expr.Symmetry
	//
	for _, block := range blocks {
		for i := 0; i+1 < len(block); i++ {
			symmetries = append(symmetries, expr.Swap(block[i], block[i+1]))
		}
	}
	//
	if len(blocks) == 4 && len(blocks[0]) == len(blocks[2]) && len(blocks[1]) == len(blocks[3]) &&
		len(blocks[0])+len(blocks[1]) > 0 {
		var (
			lhs = slices.Concat(blocks[0], blocks[1])
			rhs = slices.Concat(blocks[2], blocks[3])
		)
		//
		symmetries = append(symmetries, expr.Symmetry{
			From: slices.Concat(lhs, rhs),
			To:   slices.Concat(rhs, lhs),
			Sign: 1,
		})
	}
	//
	return symmetries
}

// A group element, given as the image of each index name together with a sign.
type permutation struct {
	image []string
	sign  int
}

// Group computes every element of the group generated by the given
// symmetries, acting on the given index names.  Elements are returned in the
// order discovered, starting from the identity.
func group(names []string, generators []expr.Symmetry) []permutation {
	var (
		identity = permutation{slices.Clone(names), 1}
		elements = []permutation{identity}
		seen     = map[string]bool{strings.Join(names, " "): true}
	)
	//
	for i := 0; i < len(elements); i++ {
		for _, g := range generators {
			next := permutation{make([]string, len(names)), elements[i].sign * g.Sign}
			//
			for j, n := range elements[i].image {
				next.image[j] = g.Rename(n)
			}
			//
			if key := strings.Join(next.image, " "); !seen[key] {
				seen[key] = true
				elements = append(elements, next)
			}
		}
	}
	//
	return elements
}

// Symmetrise sums the images of a tensor expression under every element of
// the group generated by the given symmetries.
func Symmetrise(t expr.TensorExpr, names []string, generators []expr.Symmetry) expr.TensorExpr {
	var images []expr.TensorExpr
	//
	for _, p := range group(names, generators) {
		mapping := make(map[string]string, len(names))
		//
		for i, n := range names {
			mapping[n] = p.image[i]
		}
		//
		image := expr.RenameIndices(t, func(n string) string {
			if m, ok := mapping[n]; ok {
				return m
			}
			//
			return n
		})
		//
		if p.sign < 0 {
			image = expr.Scale(expr.Int(-1), image)
		}
		//
		images = append(images, image)
	}
	//
	return expr.TensorAdd(images...)
}

// Canonicalise rewrites a tensor expression into a canonical form, such that
// two expressions which are equal up to the symmetries of the metric and
// Levi-Civita symbol render identically.  Metric indices are sorted,
// Levi-Civita indices are sorted (introducing the sign of the permutation),
// factors are sorted, terms are sorted and like terms combined.  Finally, the
// sum is normalised such that its first term has a unit numeric coefficient.
func Canonicalise(t expr.TensorExpr) *expr.TensorSum {
	var terms []expr.TensorTerm
	//
	for _, term := range expr.TensorAdd(t).Terms {
		body, sign := canonicalBody(term.Body)
		if sign != 0 {
			terms = append(terms, expr.TensorTerm{
				Coefficient: expr.Mul(expr.Int(int64(sign)), expr.CloneScalar(term.Coefficient)),
				Body:        body,
			})
		}
	}
	//
	slices.SortStableFunc(terms, func(l, r expr.TensorTerm) int {
		return cmp.Compare(l.Body.String(), r.Body.String())
	})
	//
	sum := expr.NewTensorSum(terms...)
	//
	if sum.IsZero() {
		return sum
	}
	// Normalise
	coeff, _ := expr.SplitCoefficient(sum.Terms[0].Coefficient)
	//
	if coeff.IsOne() {
		return sum
	}
	//
	return expr.Scale(expr.NumberOf(coeff.Inverse()), sum)
}

// Canonicalise the factors of an elementary tensor (or product thereof),
// returning the sign introduced.  A sign of zero indicates the body vanishes.
func canonicalBody(body expr.TensorExpr) (expr.TensorExpr, int) {
	var (
		sign    = 1
		factors []*expr.Leaf
	)
	//
	for _, f := range expr.Factors(body) {
		leaf, s := canonicalLeaf(f)
		//
		if sign *= s; sign == 0 {
			return nil, 0
		}
		//
		factors = append(factors, leaf)
	}
	//
	slices.SortStableFunc(factors, func(l, r *expr.Leaf) int {
		return cmp.Compare(l.String(), r.String())
	})
	//
	return expr.Juxtapose(factors...), sign
}

func canonicalLeaf(l *expr.Leaf) (*expr.Leaf, int) {
	var indices = l.Indices()
	//
	switch l.LeafKind() {
	case expr.MetricLeaf:
		slices.Sort(indices)
		return expr.Metric(indices[0], indices[1]), 1
	case expr.EpsilonLeaf:
		sign := sortWithSign(indices)
		return expr.Epsilon(indices...), sign
	default:
		return l, 1
	}
}

// Sort a sequence of names in place, returning the sign of the permutation
// applied (or zero if a name is repeated).
func sortWithSign(names []string) int {
	var sign = 1
	// Insertion sort, counting transpositions.
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j-1] >= names[j]; j-- {
			if names[j-1] == names[j] {
				return 0
			}
			//
			names[j-1], names[j] = names[j], names[j-1]
			sign = -sign
		}
	}
	//
	return sign
}
