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
)

// Clone produces a deep copy of a given expression.  Variables are not copied,
// since their identity is shared between all occurrences.
func Clone(e Expression) Expression {
	switch t := e.(type) {
	case Scalar:
		return CloneScalar(t)
	case TensorExpr:
		return CloneTensor(t)
	default:
		panic(fmt.Sprintf("unknown expression %s", e.Kind()))
	}
}

// CloneScalar produces a deep copy of a given scalar.
func CloneScalar(s Scalar) Scalar {
	switch t := s.(type) {
	case *Number:
		// Rational values are immutable
		return &Number{t.Value}
	case *Variable:
		return t
	case *Sum:
		return &Sum{array.Map(t.Terms, CloneScalar)}
	case *Product:
		return &Product{array.Map(t.Factors, CloneScalar)}
	case *Substituted:
		rules := array.Map(t.Rules, func(r Rule) Rule {
			return Rule{r.Target, CloneScalar(r.Replacement)}
		})
		//
		return &Substituted{CloneScalar(t.Body), rules}
	default:
		panic(fmt.Sprintf("unknown scalar %s", s.Kind()))
	}
}

// CloneTensor produces a deep copy of a given tensor expression.
func CloneTensor(e TensorExpr) TensorExpr {
	switch t := e.(type) {
	case *Leaf:
		return t.clone()
	case *TensorProduct:
		return newTensorProduct(cloneLeaves(t.Factors))
	case *TensorSum:
		terms := array.Map(t.Terms, func(term TensorTerm) TensorTerm {
			return TensorTerm{CloneScalar(term.Coefficient), CloneTensor(term.Body)}
		})
		//
		return &TensorSum{terms}
	default:
		panic(fmt.Sprintf("unknown tensor %s", e.Kind()))
	}
}
