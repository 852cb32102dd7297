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
	"strings"

	"github.com/gravclosure/go-closure/pkg/util/collection/array"
	"github.com/gravclosure/go-closure/pkg/util/field"
	"github.com/gravclosure/go-closure/pkg/util/field/rational"
	"github.com/gravclosure/go-closure/pkg/util/source/sexp"
)

// Product represents the multiplication of two or more scalars.  Products
// constructed via Mul never directly contain another product, and contain at
// most one constant which, if present, is the first factor and not one.
type Product struct {
	Factors []Scalar
}

// Mul multiplies two or more scalars together.  Nested products are
// flattened, constants are folded into a single leading coefficient and unit
// factors are removed.  A zero factor yields zero.  The arguments become owned
// by the result.
func Mul(factors ...Scalar) Scalar {
	var (
		coeff  = field.One[rational.Element]()
		others []Scalar
	)
	// Flatten any nested products
	factors = array.Flatten(factors, flattenProduct)
	//
	for _, f := range factors {
		if n, ok := f.(*Number); ok {
			coeff = coeff.Mul(n.Value)
		} else {
			others = append(others, f)
		}
	}
	// Final simplifications
	switch {
	case coeff.IsZero():
		return Int(0)
	case len(others) == 0:
		return NumberOf(coeff)
	case coeff.IsOne() && len(others) == 1:
		return others[0]
	case coeff.IsOne():
		return &Product{others}
	default:
		return &Product{append([]Scalar{NumberOf(coeff)}, others...)}
	}
}

// Neg negates a given scalar.
func Neg(s Scalar) Scalar {
	return Mul(Int(-1), s)
}

// Kind implementation for the Expression interface.
func (p *Product) Kind() Kind { return KindProduct }

// Precedence implementation for the Expression interface.
func (p *Product) Precedence() uint { return precProduct }

// Lisp implementation for the Expression interface.
func (p *Product) Lisp() sexp.SExp {
	return lispOfTerms("*", p.Factors)
}

func (p *Product) String() string {
	var (
		builder strings.Builder
		start   = 0
	)
	//
	if n, ok := p.Factors[0].(*Number); ok {
		start = 1
		//
		if n.Value.Neg().IsOne() {
			builder.WriteString("-")
		} else {
			builder.WriteString(n.String())
			builder.WriteString(" * ")
		}
	}
	//
	for i := start; i < len(p.Factors); i++ {
		if i != start {
			builder.WriteString(" * ")
		}
		//
		builder.WriteString(render(p.Factors[i], precProduct))
	}
	//
	return builder.String()
}

func (p *Product) scalar() {}

func flattenProduct(term Scalar) []Scalar {
	if t, ok := term.(*Product); ok {
		return t.Factors
	}
	//
	return nil
}

// SplitCoefficient splits a scalar into its numeric coefficient and the
// remaining (symbolic) part.  For a constant, the symbolic part is nil.
func SplitCoefficient(term Scalar) (rational.Element, Scalar) {
	return splitCoefficient(term)
}

func splitCoefficient(term Scalar) (rational.Element, Scalar) {
	switch t := term.(type) {
	case *Number:
		return t.Value, nil
	case *Product:
		if n, ok := t.Factors[0].(*Number); ok {
			if len(t.Factors) == 2 {
				return n.Value, t.Factors[1]
			}
			//
			return n.Value, &Product{t.Factors[1:]}
		}
	}
	//
	return field.One[rational.Element](), term
}

// Scaled reconstructs a term from a numeric coefficient and a (possibly nil)
// symbolic part.
func scaled(coeff rational.Element, rest Scalar) Scalar {
	switch {
	case rest == nil:
		return NumberOf(coeff)
	case coeff.IsOne():
		return rest
	default:
		return Mul(NumberOf(coeff), rest)
	}
}
