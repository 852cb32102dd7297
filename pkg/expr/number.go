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
	"github.com/gravclosure/go-closure/pkg/util/field"
	"github.com/gravclosure/go-closure/pkg/util/field/rational"
	"github.com/gravclosure/go-closure/pkg/util/source/sexp"
)

// Number represents an exact rational constant.
type Number struct {
	Value rational.Element
}

// Int constructs an integer constant.
func Int(val int64) *Number {
	return &Number{field.Int64[rational.Element](val)}
}

// Frac constructs the rational constant p/q.
func Frac(p, q int64) *Number {
	return &Number{rational.Frac(p, q)}
}

// NumberOf constructs a constant from a given rational element.
func NumberOf(val rational.Element) *Number {
	return &Number{val}
}

// Kind implementation for the Expression interface.
func (p *Number) Kind() Kind { return KindNumber }

// Precedence implementation for the Expression interface.  Negative constants
// bind like a unary negation.
func (p *Number) Precedence() uint {
	if p.Value.Sign() < 0 {
		return precNegation
	}
	//
	return precAtom
}

// Lisp implementation for the Expression interface.
func (p *Number) Lisp() sexp.SExp {
	return sexp.NewSymbol(p.Value.String())
}

func (p *Number) String() string {
	return p.Value.String()
}

func (p *Number) scalar() {}
