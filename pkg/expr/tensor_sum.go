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

	"github.com/gravclosure/go-closure/pkg/util/field/rational"
	"github.com/gravclosure/go-closure/pkg/util/source/sexp"
)

// TensorTerm is a single term of a tensor sum, consisting of a scalar
// coefficient and an elementary tensor (or product thereof).
type TensorTerm struct {
	Coefficient Scalar
	Body        TensorExpr
}

// TensorSum represents a linear combination of elementary tensors (or
// products thereof) with scalar coefficients.
type TensorSum struct {
	Terms []TensorTerm
}

// NewTensorSum constructs a tensor sum from zero or more terms.  Terms whose
// bodies coincide and whose coefficients differ only by a numeric factor are
// combined, and terms with a zero coefficient are removed.  The order of first
// occurrence is retained.
func NewTensorSum(terms ...TensorTerm) *TensorSum {
	var (
		keys   []string
		coeffs = make(map[string]rational.Element)
		parts  = make(map[string]TensorTerm)
	)
	//
	for _, term := range terms {
		coeff, rest := splitCoefficient(term.Coefficient)
		key := identityKey(rest) + "|" + term.Body.String()
		//
		if _, ok := coeffs[key]; !ok {
			keys = append(keys, key)
			parts[key] = TensorTerm{rest, term.Body}
		}
		//
		coeffs[key] = coeffs[key].Add(coeff)
	}
	//
	nterms := make([]TensorTerm, 0, len(keys))
	//
	for _, key := range keys {
		if coeff := coeffs[key]; !coeff.IsZero() {
			part := parts[key]
			nterms = append(nterms, TensorTerm{scaled(coeff, part.Coefficient), part.Body})
		}
	}
	//
	return &TensorSum{nterms}
}

// TensorAdd adds zero or more tensor expressions together.
func TensorAdd(tensors ...TensorExpr) *TensorSum {
	var terms []TensorTerm
	//
	for _, t := range tensors {
		terms = append(terms, termsOf(t)...)
	}
	//
	return NewTensorSum(terms...)
}

// Scale multiplies every coefficient of a tensor expression by a given scalar.
func Scale(factor Scalar, t TensorExpr) *TensorSum {
	var terms = termsOf(t)
	//
	for i, term := range terms {
		terms[i] = TensorTerm{Mul(CloneScalar(factor), term.Coefficient), term.Body}
	}
	//
	return NewTensorSum(terms...)
}

// TensorMul multiplies two tensor expressions together, distributing over
// their terms.  Index names shared between the two are contracted.
func TensorMul(lhs TensorExpr, rhs TensorExpr) *TensorSum {
	var terms []TensorTerm
	//
	for _, l := range termsOf(lhs) {
		for _, r := range termsOf(rhs) {
			var (
				coeff   = Mul(CloneScalar(l.Coefficient), CloneScalar(r.Coefficient))
				factors = append(cloneLeaves(Factors(l.Body)), cloneLeaves(Factors(r.Body))...)
			)
			//
			terms = append(terms, TensorTerm{coeff, Juxtapose(factors...)})
		}
	}
	//
	return NewTensorSum(terms...)
}

// IsZero checks whether this sum has no terms.
func (p *TensorSum) IsZero() bool {
	return len(p.Terms) == 0
}

// Kind implementation for the Expression interface.
func (p *TensorSum) Kind() Kind { return KindTensorSum }

// Precedence implementation for the Expression interface.
func (p *TensorSum) Precedence() uint {
	var segments = p.segments()
	//
	switch {
	case len(segments) != 1:
		return precSum
	case strings.HasPrefix(segments[0], "-"):
		return precNegation
	case strings.Contains(segments[0], " * "):
		return precProduct
	default:
		return precJuxtaposition
	}
}

// Lisp implementation for the Expression interface.
func (p *TensorSum) Lisp() sexp.SExp {
	var list = sexp.NewList(sexp.NewSymbol("+"))
	//
	for _, term := range p.Terms {
		list.Append(sexp.NewList(sexp.NewSymbol("*"), term.Coefficient.Lisp(), term.Body.Lisp()))
	}
	//
	return list
}

// String renders this sum with terms grouped by their symbolic coefficient.
// For example, "e_2 * (-\gamma_{ab} + \gamma_{cd})".
func (p *TensorSum) String() string {
	var (
		builder  strings.Builder
		segments = p.segments()
	)
	//
	if len(segments) == 0 {
		return "0"
	}
	//
	builder.WriteString(segments[0])
	//
	for _, segment := range segments[1:] {
		if strings.HasPrefix(segment, "-") {
			builder.WriteString(" - ")
			builder.WriteString(segment[1:])
		} else {
			builder.WriteString(" + ")
			builder.WriteString(segment)
		}
	}
	//
	return builder.String()
}

func (p *TensorSum) tensor() {}

// A group of terms sharing the same symbolic coefficient.
type termGroup struct {
	rest   Scalar
	coeffs []rational.Element
	bodies []TensorExpr
}

// Segments returns the top-level summands of this sum, as they are rendered.
func (p *TensorSum) segments() []string {
	var (
		segments []string
		groups   []*termGroup
		index    = make(map[string]*termGroup)
	)
	// Group terms
	for _, term := range p.Terms {
		coeff, rest := splitCoefficient(term.Coefficient)
		key := identityKey(rest)
		//
		group, ok := index[key]
		if !ok {
			group = &termGroup{rest: rest}
			index[key] = group
			groups = append(groups, group)
		}
		//
		group.coeffs = append(group.coeffs, coeff)
		group.bodies = append(group.bodies, term.Body)
	}
	// Render groups
	for _, g := range groups {
		switch {
		case g.rest == nil:
			for i, body := range g.bodies {
				segments = append(segments, weighted(g.coeffs[i], body))
			}
		case len(g.bodies) == 1:
			coeff := scaled(g.coeffs[0], g.rest)
			segments = append(segments, render(coeff, precProduct)+" * "+render(g.bodies[0], precProduct))
		default:
			var inner = make([]string, len(g.bodies))
			//
			for i, body := range g.bodies {
				inner[i] = weighted(g.coeffs[i], body)
			}
			//
			segments = append(segments, render(g.rest, precProduct)+" * ("+joinSegments(inner)+")")
		}
	}
	//
	return segments
}

func weighted(coeff rational.Element, body TensorExpr) string {
	switch {
	case coeff.IsOne():
		return body.String()
	case coeff.Neg().IsOne():
		return "-" + body.String()
	default:
		return coeff.String() + " * " + body.String()
	}
}

func joinSegments(segments []string) string {
	var builder strings.Builder
	//
	for i, segment := range segments {
		switch {
		case i == 0:
			builder.WriteString(segment)
		case strings.HasPrefix(segment, "-"):
			builder.WriteString(" - ")
			builder.WriteString(segment[1:])
		default:
			builder.WriteString(" + ")
			builder.WriteString(segment)
		}
	}
	//
	return builder.String()
}

// Terms of a tensor expression, where elementary tensors (and products
// thereof) have a unit coefficient.  The returned terms are independent of
// the given expression.
func termsOf(t TensorExpr) []TensorTerm {
	switch t := t.(type) {
	case *TensorSum:
		var terms = make([]TensorTerm, len(t.Terms))
		//
		for i, term := range t.Terms {
			terms[i] = TensorTerm{CloneScalar(term.Coefficient), CloneTensor(term.Body)}
		}
		//
		return terms
	default:
		return []TensorTerm{{Int(1), CloneTensor(t)}}
	}
}

func cloneLeaves(leaves []*Leaf) []*Leaf {
	var nleaves = make([]*Leaf, len(leaves))
	//
	for i, l := range leaves {
		nleaves[i] = l.clone()
	}
	//
	return nleaves
}
