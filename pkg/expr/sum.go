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
	"github.com/gravclosure/go-closure/pkg/util/field/rational"
	"github.com/gravclosure/go-closure/pkg/util/source/sexp"
)

// Sum represents the addition of two or more scalars.  Sums constructed via
// Add never directly contain another sum, contain at most one constant and
// never contain two terms differing only in their numeric coefficient.
type Sum struct {
	Terms []Scalar
}

// Add two or more scalars together.  Nested sums are flattened, like terms are
// collected (i.e. "x + 2*x" becomes "3 * x") and zero terms are removed.  The
// arguments become owned by the result.
func Add(terms ...Scalar) Scalar {
	var (
		keys   []string
		coeffs = make(map[string]rational.Element)
		rests  = make(map[string]Scalar)
	)
	// Flatten any nested sums
	terms = array.Flatten(terms, flattenSum)
	// Collect like terms
	for _, term := range terms {
		coeff, rest := splitCoefficient(term)
		key := identityKey(rest)
		//
		if _, ok := coeffs[key]; !ok {
			keys = append(keys, key)
			rests[key] = rest
		}
		//
		coeffs[key] = coeffs[key].Add(coeff)
	}
	// Rebuild terms
	nterms := make([]Scalar, 0, len(keys))
	//
	for _, key := range keys {
		if coeff := coeffs[key]; !coeff.IsZero() {
			nterms = append(nterms, scaled(coeff, rests[key]))
		}
	}
	// Final simplifications
	switch len(nterms) {
	case 0:
		return Int(0)
	case 1:
		return nterms[0]
	default:
		return &Sum{nterms}
	}
}

// Subtract zero or more scalars from a given scalar.
func Subtract(lhs Scalar, rhs ...Scalar) Scalar {
	var terms = []Scalar{lhs}
	//
	for _, r := range rhs {
		terms = append(terms, Neg(r))
	}
	//
	return Add(terms...)
}

// Kind implementation for the Expression interface.
func (p *Sum) Kind() Kind { return KindSum }

// Precedence implementation for the Expression interface.
func (p *Sum) Precedence() uint { return precSum }

// Lisp implementation for the Expression interface.
func (p *Sum) Lisp() sexp.SExp {
	return lispOfTerms("+", p.Terms)
}

func (p *Sum) String() string {
	var builder strings.Builder
	//
	for i, term := range p.Terms {
		if abs, ok := negation(term); ok {
			if i == 0 {
				builder.WriteString("-")
			} else {
				builder.WriteString(" - ")
			}
			//
			builder.WriteString(render(abs, precProduct))
		} else {
			if i != 0 {
				builder.WriteString(" + ")
			}
			//
			builder.WriteString(render(term, precSum))
		}
	}
	//
	return builder.String()
}

func (p *Sum) scalar() {}

func flattenSum(term Scalar) []Scalar {
	if t, ok := term.(*Sum); ok {
		return t.Terms
	}
	//
	return nil
}

// Negation determines whether a given term carries a negative numeric
// coefficient and, if so, returns its absolute value.
func negation(term Scalar) (Scalar, bool) {
	coeff, rest := splitCoefficient(term)
	//
	if coeff.Sign() >= 0 {
		return nil, false
	}
	//
	return scaled(coeff.Neg(), rest), true
}

func lispOfTerms[E Expression](operator string, terms []E) sexp.SExp {
	var list = sexp.NewList(sexp.NewSymbol(operator))
	//
	for _, t := range terms {
		list.Append(t.Lisp())
	}
	//
	return list
}
