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
	"fmt"

	"github.com/gravclosure/go-closure/pkg/util/collection/array"
	"github.com/gravclosure/go-closure/pkg/util/source/sexp"
)

// Rule rewrites every occurrence of a target symbol with a replacement.
type Rule struct {
	Target      *Variable
	Replacement Scalar
}

func (r Rule) String() string {
	return fmt.Sprintf("%s = %s", r.Target.String(), r.Replacement.String())
}

// Substituted wraps a scalar together with rules which have yet to be applied
// to it.  The wrapper is transparent: it renders (and evaluates) as the result
// of applying its rules in order.
type Substituted struct {
	Body  Scalar
	Rules []Rule
}

// Substitute wraps a given scalar with zero or more pending rules.
func Substitute(body Scalar, rules ...Rule) *Substituted {
	return &Substituted{body, rules}
}

// Resolve applies the pending rules, returning the resulting scalar.
func (p *Substituted) Resolve() Scalar {
	return ApplyRules(CloneScalar(p.Body), p.Rules)
}

// Kind implementation for the Expression interface.
func (p *Substituted) Kind() Kind { return KindSubstituted }

// Precedence implementation for the Expression interface.
func (p *Substituted) Precedence() uint {
	return p.Resolve().Precedence()
}

// Lisp implementation for the Expression interface.
func (p *Substituted) Lisp() sexp.SExp {
	var list = sexp.NewList(sexp.NewSymbol("substitute"), p.Body.Lisp())
	//
	for _, r := range p.Rules {
		list.Append(sexp.NewList(r.Target.Lisp(), r.Replacement.Lisp()))
	}
	//
	return list
}

func (p *Substituted) String() string {
	return p.Resolve().String()
}

func (p *Substituted) scalar() {}

// ApplyRules applies a sequence of rules to a given scalar, such that each rule
// rewrites the result of the rules before it.
func ApplyRules(s Scalar, rules []Rule) Scalar {
	for _, r := range rules {
		s = Replace(s, r.Target, r.Replacement)
	}
	//
	return s
}

// Replace every occurrence of a given symbol within a scalar by (a clone of) a
// given replacement.  When the symbol does not occur, the scalar is returned
// unchanged.  Otherwise, the affected parts of the tree are rebuilt (and
// resimplified) whilst unaffected subtrees are reused.
func Replace(s Scalar, target *Variable, replacement Scalar) Scalar {
	if !Occurs(s, target) {
		return s
	}
	//
	switch t := s.(type) {
	case *Variable:
		return CloneScalar(replacement)
	case *Sum:
		return Add(replaceAll(t.Terms, target, replacement)...)
	case *Product:
		return Mul(replaceAll(t.Factors, target, replacement)...)
	case *Substituted:
		return Replace(t.Resolve(), target, replacement)
	default:
		panic(fmt.Sprintf("unexpected %s in substitution", s.Kind()))
	}
}

func replaceAll(terms []Scalar, target *Variable, replacement Scalar) []Scalar {
	return array.Map(terms, func(term Scalar) Scalar {
		return Replace(term, target, replacement)
	})
}

// ReplaceTensor replaces every occurrence of a given symbol within the scalar
// coefficients of a tensor expression.  The index structure is untouched.
func ReplaceTensor(t TensorExpr, target *Variable, replacement Scalar) TensorExpr {
	if s, ok := t.(*TensorSum); ok && Occurs(s, target) {
		var terms = make([]TensorTerm, len(s.Terms))
		//
		for i, term := range s.Terms {
			terms[i] = TensorTerm{Replace(term.Coefficient, target, replacement), term.Body}
		}
		//
		return NewTensorSum(terms...)
	}
	// Elementary tensors have no coefficients.
	return t
}

// ApplyTensorRules applies a sequence of rules to the coefficients of a given
// tensor expression, such that each rule rewrites the result of the rules
// before it.
func ApplyTensorRules(t TensorExpr, rules []Rule) TensorExpr {
	for _, r := range rules {
		t = ReplaceTensor(t, r.Target, r.Replacement)
	}
	//
	return t
}
