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

	"github.com/gravclosure/go-closure/pkg/util/source/sexp"
)

// Kind identifies the variant of an expression node.
type Kind uint8

const (
	// KindNumber identifies an exact rational constant.
	KindNumber Kind = iota
	// KindVariable identifies a reference to a symbol.
	KindVariable
	// KindSum identifies a sum of scalars.
	KindSum
	// KindProduct identifies a product of scalars.
	KindProduct
	// KindSubstituted identifies a scalar with pending substitution rules.
	KindSubstituted
	// KindLeaf identifies an elementary tensor, such as a metric.
	KindLeaf
	// KindTensorProduct identifies a product of elementary tensors.
	KindTensorProduct
	// KindTensorSum identifies a linear combination of tensors with scalar
	// coefficients.
	KindTensorSum
)

var kindNames = []string{"number", "variable", "sum", "product", "substituted", "leaf", "tensor-product",
	"tensor-sum"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	//
	return fmt.Sprintf("kind(%d)", k)
}

// Binding strength of the various operators, used only for determining where
// parentheses are required when rendering.
const (
	precSum uint = iota + 1
	precProduct
	precNegation
	precJuxtaposition
	precAtom
)

// Expression represents a node in a scalar or tensor expression tree.  The set
// of variants is closed: every Expression is either a Scalar or a TensorExpr
// from this package.
type Expression interface {
	fmt.Stringer
	// Kind returns the variant tag of this node.
	Kind() Kind
	// Precedence returns the binding strength of the outermost operator of
	// this node.  A child is parenthesised when its precedence is lower than
	// that of its parent.
	Precedence() uint
	// Lisp converts this expression into an S-Expression, for example so that
	// it can be serialised.
	Lisp() sexp.SExp
}

// Scalar is an expression which evaluates to a single value.
type Scalar interface {
	Expression
	scalar()
}

// TensorExpr is an expression whose value depends on an assignment of index
// values.
type TensorExpr interface {
	Expression
	tensor()
}

// Render renders a child expression appearing in the context of an operator of
// a given precedence.
func render(child Expression, parent uint) string {
	if child.Precedence() < parent {
		return fmt.Sprintf("(%s)", child.String())
	}
	//
	return child.String()
}
