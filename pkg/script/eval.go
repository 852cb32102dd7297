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
package script

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gravclosure/go-closure/pkg/coeff"
	"github.com/gravclosure/go-closure/pkg/expr"
	"github.com/gravclosure/go-closure/pkg/subst"
)

// ErrMixedOperands indicates an attempt to add a scalar to a tensor.
var ErrMixedOperands = errors.New("cannot mix scalar and tensor operands")

// Register this statement as an equation of a given coordinator.
func (s *Statement) Register(c *coeff.Coordinator) *coeff.Equation {
	return c.NewEquation(s.Source, s.Keys, s.Evaluate)
}

// Evaluate this statement given the values of its coefficients (in the order
// of its keys).  Symbols in the statement refer to the variables of the same
// name within those values, where the earliest coefficient takes precedence.
// Any other symbol denotes a fresh variable, shared throughout the statement.
func (s *Statement) Evaluate(values []expr.Expression) (expr.Expression, error) {
	var table = expr.NewSymbolTable()
	//
	if len(values) != len(s.Keys) {
		return nil, fmt.Errorf("expected %d coefficients (was %d)", len(s.Keys), len(values))
	}
	// Bind in reverse so that earlier coefficients take precedence.
	for _, v := range slices.Backward(values) {
		table.Bind(expr.Variables(v)...)
	}
	//
	return s.root.eval(&scope{values, table})
}

type scope struct {
	values []expr.Expression
	table  *expr.SymbolTable
}

// Term is a node of a compiled statement.
type term interface {
	eval(env *scope) (expr.Expression, error)
}

type constant struct {
	value expr.Scalar
}

func (t *constant) eval(env *scope) (expr.Expression, error) {
	return expr.CloneScalar(t.value), nil
}

type variable struct {
	name string
}

func (t *variable) eval(env *scope) (expr.Expression, error) {
	return env.table.Resolve(t.name), nil
}

type reference struct {
	index int
}

func (t *reference) eval(env *scope) (expr.Expression, error) {
	return expr.Clone(env.values[t.index]), nil
}

type operation struct {
	operator string
	args     []term
}

func (t *operation) eval(env *scope) (expr.Expression, error) {
	var args = make([]expr.Expression, len(t.args))
	//
	for i, a := range t.args {
		val, err := a.eval(env)
		if err != nil {
			return nil, err
		}
		//
		args[i] = val
	}
	//
	switch t.operator {
	case "+":
		return add(args)
	case "*":
		return multiply(args), nil
	default:
		if len(args) == 1 {
			return negate(args[0]), nil
		}
		//
		for i := 1; i < len(args); i++ {
			args[i] = negate(args[i])
		}
		//
		return add(args)
	}
}

type ruleTerm struct {
	target      string
	replacement term
}

type substitution struct {
	body  term
	rules []ruleTerm
}

func (t *substitution) eval(env *scope) (expr.Expression, error) {
	var s = subst.New()
	//
	for _, r := range t.rules {
		val, err := r.replacement.eval(env)
		if err != nil {
			return nil, err
		}
		//
		replacement, ok := val.(expr.Scalar)
		if !ok {
			return nil, fmt.Errorf("replacement for %s is not a scalar", r.target)
		}
		//
		if err := s.Insert(env.table.Resolve(r.target), replacement); err != nil {
			return nil, err
		}
	}
	//
	body, err := t.body.eval(env)
	if err != nil {
		return nil, err
	}
	//
	switch b := body.(type) {
	case expr.Scalar:
		return s.Apply(b), nil
	case expr.TensorExpr:
		return s.ApplyTensor(b), nil
	default:
		return nil, fmt.Errorf("unexpected %s", body.Kind())
	}
}

func add(args []expr.Expression) (expr.Expression, error) {
	var (
		scalars []expr.Scalar
		tensors []expr.TensorExpr
	)
	//
	for _, a := range args {
		switch a := a.(type) {
		case expr.Scalar:
			scalars = append(scalars, a)
		case expr.TensorExpr:
			tensors = append(tensors, a)
		}
	}
	//
	switch {
	case len(tensors) == 0:
		return expr.Add(scalars...), nil
	case len(scalars) == 0:
		return expr.TensorAdd(tensors...), nil
	default:
		return nil, ErrMixedOperands
	}
}

// Multiply the arguments together, where scalars scale and tensors are
// juxtaposed.
func multiply(args []expr.Expression) expr.Expression {
	var (
		scalars []expr.Scalar
		tensor  expr.TensorExpr
	)
	//
	for _, a := range args {
		switch a := a.(type) {
		case expr.Scalar:
			scalars = append(scalars, a)
		case expr.TensorExpr:
			if tensor == nil {
				tensor = a
			} else {
				tensor = expr.TensorMul(tensor, a)
			}
		}
	}
	//
	if tensor == nil {
		return expr.Mul(scalars...)
	}
	//
	return expr.Scale(expr.Mul(scalars...), tensor)
}

func negate(e expr.Expression) expr.Expression {
	if t, ok := e.(expr.TensorExpr); ok {
		return expr.Scale(expr.Int(-1), t)
	}
	//
	return expr.Neg(e.(expr.Scalar))
}
