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
	"fmt"
	"slices"
	"strings"

	"github.com/gravclosure/go-closure/pkg/expr"
	"github.com/gravclosure/go-closure/pkg/util/collection/array"
)

// RuleError reports an attempt to insert a malformed rule, such as one whose
// target is not a variable or whose replacement is missing.
type RuleError struct {
	Target  expr.Scalar
	Message string
}

func (e *RuleError) Error() string {
	var target = "nil"
	//
	if e.Target != nil {
		target = e.Target.String()
	}
	//
	return fmt.Sprintf("substitution for %s %s", target, e.Message)
}

// Substitution is an ordered sequence of rules, each replacing a variable with
// a scalar.  Rules are applied sequentially, such that each rule rewrites the
// result of the rules before it.  Hence, applying [x->y, y->z] to x yields z.
type Substitution struct {
	rules []expr.Rule
}

// New constructs an empty substitution.
func New() *Substitution {
	return &Substitution{}
}

// Of constructs a substitution from a sequence of rules.
func Of(rules ...expr.Rule) *Substitution {
	return &Substitution{slices.Clone(rules)}
}

// Insert appends a rule replacing a given target with a given replacement.
// The target must be a variable, and the replacement must be given.
func (p *Substitution) Insert(target expr.Scalar, replacement expr.Scalar) error {
	v, ok := target.(*expr.Variable)
	if !ok || v == nil {
		return &RuleError{target, "has a target which is not a variable"}
	} else if replacement == nil {
		return &RuleError{target, "has no replacement"}
	}
	//
	p.rules = append(p.rules, expr.Rule{Target: v, Replacement: replacement})
	//
	return nil
}

// MustInsert is as for Insert, but panics if the rule is malformed.
func (p *Substitution) MustInsert(target expr.Scalar, replacement expr.Scalar) *Substitution {
	if err := p.Insert(target, replacement); err != nil {
		panic(err.Error())
	}
	//
	return p
}

// Len returns the number of rules in this substitution.
func (p *Substitution) Len() int {
	return len(p.rules)
}

// Rules returns the rules of this substitution, in order.
func (p *Substitution) Rules() []expr.Rule {
	return slices.Clone(p.rules)
}

// Apply this substitution to (a copy of) a given scalar.  The given scalar is
// not modified.
func (p *Substitution) Apply(s expr.Scalar) expr.Scalar {
	return expr.ApplyRules(expr.CloneScalar(s), p.rules)
}

// ApplyTensor applies this substitution to the scalar coefficients of (a copy
// of) a given tensor expression.  The index structure is left untouched.
func (p *Substitution) ApplyTensor(t expr.TensorExpr) expr.TensorExpr {
	return expr.ApplyTensorRules(expr.CloneTensor(t), p.rules)
}

// ApplyToTensor applies this substitution to the body of a given tensor,
// producing a new tensor with the same indices and symmetries.
func (p *Substitution) ApplyToTensor(t *expr.Tensor) *expr.Tensor {
	var nt = t.Clone()
	//
	nt.Body = expr.ApplyTensorRules(nt.Body, p.rules)
	//
	return nt
}

// Wrap a given scalar with the rules of this substitution, deferring their
// application.  The result renders as the substituted scalar.
func (p *Substitution) Wrap(s expr.Scalar) *expr.Substituted {
	return expr.Substitute(s, p.Rules()...)
}

// Merge combines zero or more substitutions in order.  The rules of each
// substitution are first applied to the replacements accumulated from those
// before it, and then appended.  Replacements from later substitutions are
// not rewritten by earlier ones.
func Merge(substitutions ...*Substitution) *Substitution {
	var rules []expr.Rule
	//
	for _, s := range substitutions {
		rules = array.Map(rules, func(r expr.Rule) expr.Rule {
			return expr.Rule{Target: r.Target, Replacement: s.Apply(r.Replacement)}
		})
		//
		rules = append(rules, s.rules...)
	}
	//
	return &Substitution{rules}
}

// String returns one "variable = replacement" line per rule.
func (p *Substitution) String() string {
	var builder strings.Builder
	//
	for _, r := range p.rules {
		builder.WriteString(r.String())
		builder.WriteString("\n")
	}
	//
	return builder.String()
}
