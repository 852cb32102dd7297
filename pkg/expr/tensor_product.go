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
package expr

import (
	"slices"
	"strings"

	"github.com/gravclosure/go-closure/pkg/util/collection/array"
	"github.com/gravclosure/go-closure/pkg/util/source/sexp"
)

// TensorProduct represents the product of two or more elementary tensors.  An
// index name occurring in more than one factor is contracted (i.e. summed
// over), whilst the remaining index names are free.
type TensorProduct struct {
	Factors []*Leaf
	// Contracted index names, in order of first occurrence.
	contracted []string
	// Free index names, in order of occurrence.
	free []string
}

// Juxtapose constructs the product of one or more elementary tensors.  A
// single factor without repeated indices is returned as is.  Otherwise, a
// product is constructed so that repeated indices are contracted.
func Juxtapose(factors ...*Leaf) TensorExpr {
	if len(factors) == 1 && !factors[0].selfContracted() {
		return factors[0]
	}
	//
	return newTensorProduct(factors)
}

func newTensorProduct(factors []*Leaf) *TensorProduct {
	var (
		counts = make(map[string]uint)
		order  []string
	)
	//
	for _, f := range factors {
		for _, index := range f.indices {
			if counts[index] == 0 {
				order = append(order, index)
			}
			//
			counts[index]++
		}
	}
	//
	contracted := array.RemoveMatching(order, func(i string) bool { return counts[i] == 1 })
	free := array.RemoveMatching(order, func(i string) bool { return counts[i] != 1 })
	//
	return &TensorProduct{factors, contracted, free}
}

// Contracted returns the names of the contracted indices of this product.
func (p *TensorProduct) Contracted() []string {
	return slices.Clone(p.contracted)
}

// FreeIndices returns the names of the free indices of this product.
func (p *TensorProduct) FreeIndices() []string {
	return slices.Clone(p.free)
}

// Kind implementation for the Expression interface.
func (p *TensorProduct) Kind() Kind { return KindTensorProduct }

// Precedence implementation for the Expression interface.
func (p *TensorProduct) Precedence() uint { return precJuxtaposition }

// Lisp implementation for the Expression interface.
func (p *TensorProduct) Lisp() sexp.SExp {
	return lispOfTerms("*", p.Factors)
}

func (p *TensorProduct) String() string {
	var builder strings.Builder
	//
	for _, f := range p.Factors {
		builder.WriteString(f.String())
	}
	//
	return builder.String()
}

func (p *TensorProduct) tensor() {}

// Factors returns the elementary tensors making up an elementary tensor or
// product thereof.  This panics when given a sum.
func Factors(body TensorExpr) []*Leaf {
	switch t := body.(type) {
	case *Leaf:
		return []*Leaf{t}
	case *TensorProduct:
		return t.Factors
	default:
		panic("tensor sum is not a product")
	}
}
