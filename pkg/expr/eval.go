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
	"maps"

	"github.com/gravclosure/go-closure/pkg/util/field"
	"github.com/gravclosure/go-closure/pkg/util/field/rational"
)

// EvalScalar evaluates a scalar to its exact rational value.  This fails with
// ErrSymbolic when the scalar contains a free variable.
func EvalScalar(s Scalar) (rational.Element, error) {
	switch t := s.(type) {
	case *Number:
		return t.Value, nil
	case *Variable:
		return rational.Element{}, fmt.Errorf("variable %s: %w", t.name, ErrSymbolic)
	case *Sum:
		return foldScalars(t.Terms, field.Zero[rational.Element](), rational.Element.Add)
	case *Product:
		return foldScalars(t.Factors, field.One[rational.Element](), rational.Element.Mul)
	case *Substituted:
		return EvalScalar(t.Resolve())
	default:
		panic(fmt.Sprintf("unknown scalar %s", s.Kind()))
	}
}

func foldScalars(terms []Scalar, acc rational.Element,
	fn func(rational.Element, rational.Element) rational.Element) (rational.Element, error) {
	//
	for _, term := range terms {
		val, err := EvalScalar(term)
		if err != nil {
			return val, err
		}
		//
		acc = fn(acc, val)
	}
	//
	return acc, nil
}

// EvalTensor evaluates a single component of a tensor expression.  The
// component is determined by an assignment of values to the free indices of the
// expression, whilst contracted indices are summed over the range [0,dim).
// The metric evaluates as the Kronecker delta, the Levi-Civita symbol as the
// sign of the permutation given by its index values and table leaves read
// their components.  This fails with ErrUnknownIndex when a free index has no
// value, or ErrSymbolic when a leaf (or coefficient) has no numeric value.
func EvalTensor(t TensorExpr, env map[string]uint, dim uint) (rational.Element, error) {
	switch t := t.(type) {
	case *Leaf:
		if t.selfContracted() {
			return EvalTensor(newTensorProduct([]*Leaf{t}), env, dim)
		}
		//
		return evalLeaf(t, env)
	case *TensorProduct:
		var nenv = make(map[string]uint, len(env)+len(t.contracted))
		//
		maps.Copy(nenv, env)
		//
		return evalContraction(t.Factors, t.contracted, nenv, dim)
	case *TensorSum:
		var acc = field.Zero[rational.Element]()
		//
		for _, term := range t.Terms {
			coeff, err := EvalScalar(term.Coefficient)
			if err != nil {
				return acc, err
			}
			//
			val, err := EvalTensor(term.Body, env, dim)
			if err != nil {
				return acc, err
			}
			//
			acc = acc.Add(coeff.Mul(val))
		}
		//
		return acc, nil
	default:
		panic(fmt.Sprintf("unknown tensor %s", t.Kind()))
	}
}

// Sum the product of the given factors over every assignment of the given
// contracted indices.
func evalContraction(factors []*Leaf, contracted []string, env map[string]uint, dim uint) (rational.Element, error) {
	if len(contracted) == 0 {
		var acc = field.One[rational.Element]()
		//
		for _, f := range factors {
			val, err := evalLeaf(f, env)
			if err != nil || val.IsZero() {
				return val, err
			}
			//
			acc = acc.Mul(val)
		}
		//
		return acc, nil
	}
	//
	var acc = field.Zero[rational.Element]()
	//
	for v := range dim {
		env[contracted[0]] = v
		//
		val, err := evalContraction(factors, contracted[1:], env, dim)
		if err != nil {
			return acc, err
		}
		//
		acc = acc.Add(val)
	}
	//
	return acc, nil
}

func evalLeaf(l *Leaf, env map[string]uint) (rational.Element, error) {
	var values = make([]uint, len(l.indices))
	//
	for i, index := range l.indices {
		val, ok := env[index]
		if !ok {
			return rational.Element{}, fmt.Errorf("index %s of %s: %w", index, l.String(), ErrUnknownIndex)
		}
		//
		values[i] = val
	}
	//
	switch l.kind {
	case MetricLeaf:
		if values[0] == values[1] {
			return field.One[rational.Element](), nil
		}
		//
		return field.Zero[rational.Element](), nil
	case EpsilonLeaf:
		return field.Int64[rational.Element](permutationSign(values)), nil
	case TableLeaf:
		var offset = uint(0)
		//
		for i, val := range values {
			if val >= l.ranges[i] {
				return rational.Element{}, fmt.Errorf("index %s of %s out of range (%d)", l.indices[i], l.String(), val)
			}
			//
			offset = (offset * l.ranges[i]) + val
		}
		//
		return l.values[offset], nil
	default:
		return rational.Element{}, fmt.Errorf("tensor %s: %w", l.String(), ErrSymbolic)
	}
}

// Sign of the permutation described by a sequence of values, which is zero
// when any value is repeated.
func permutationSign(values []uint) int64 {
	var sign = int64(1)
	//
	for i := range values {
		for j := i + 1; j < len(values); j++ {
			switch {
			case values[i] == values[j]:
				return 0
			case values[i] > values[j]:
				sign = -sign
			}
		}
	}
	//
	return sign
}
