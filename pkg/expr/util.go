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
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Occurs checks whether a given variable occurs anywhere within an expression.
// For a substituted scalar, this considers the result of its rules.
func Occurs(e Expression, v *Variable) bool {
	switch t := e.(type) {
	case *Number, *Leaf, *TensorProduct:
		return false
	case *Variable:
		return t.Same(v)
	case *Sum:
		return occursIn(t.Terms, v)
	case *Product:
		return occursIn(t.Factors, v)
	case *Substituted:
		return Occurs(t.Resolve(), v)
	case *TensorSum:
		for _, term := range t.Terms {
			if Occurs(term.Coefficient, v) {
				return true
			}
		}
		//
		return false
	default:
		panic(fmt.Sprintf("unknown expression %s", e.Kind()))
	}
}

func occursIn(terms []Scalar, v *Variable) bool {
	for _, term := range terms {
		if Occurs(term, v) {
			return true
		}
	}
	//
	return false
}

// Variables returns the distinct variables occurring within an expression, in
// order of first occurrence.
func Variables(e Expression) []*Variable {
	var (
		vars []*Variable
		seen = make(map[uuid.UUID]bool)
	)
	//
	collectVariables(e, func(v *Variable) {
		if !seen[v.id] {
			seen[v.id] = true
			vars = append(vars, v)
		}
	})
	//
	return vars
}

func collectVariables(e Expression, fn func(*Variable)) {
	switch t := e.(type) {
	case *Variable:
		fn(t)
	case *Sum:
		for _, term := range t.Terms {
			collectVariables(term, fn)
		}
	case *Product:
		for _, factor := range t.Factors {
			collectVariables(factor, fn)
		}
	case *Substituted:
		collectVariables(t.Resolve(), fn)
	case *TensorSum:
		for _, term := range t.Terms {
			collectVariables(term.Coefficient, fn)
		}
	}
}

// Key identifying the structure of a (symbolic) scalar, used for collecting
// like terms.  Unlike the rendered form, this distinguishes variables which
// happen to share the same name.  Sums and products are commutative, hence the
// keys of their children are sorted.
func identityKey(s Scalar) string {
	switch t := s.(type) {
	case nil:
		return ""
	case *Number:
		return t.Value.String()
	case *Variable:
		return t.id.String()
	case *Sum:
		return compositeKey("+", t.Terms)
	case *Product:
		return compositeKey("*", t.Factors)
	case *Substituted:
		return identityKey(t.Resolve())
	default:
		panic(fmt.Sprintf("unknown scalar %s", s.Kind()))
	}
}

func compositeKey(operator string, terms []Scalar) string {
	var keys = make([]string, len(terms))
	//
	for i, term := range terms {
		keys[i] = identityKey(term)
	}
	//
	slices.Sort(keys)
	//
	return fmt.Sprintf("(%s %s)", operator, strings.Join(keys, " "))
}
