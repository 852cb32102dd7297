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
package rational

import (
	"math/big"
)

// Element is an exact rational number conforming to the field.Element
// interface.  Elements are immutable: every operation allocates a fresh
// underlying big.Rat, so values can be freely copied and shared.  The zero
// value represents 0.
type Element struct {
	val *big.Rat
}

// New constructs an element from a given rational.  The rational is copied.
func New(val *big.Rat) Element {
	return Element{new(big.Rat).Set(val)}
}

// Frac constructs the element p/q.
func Frac(p, q int64) Element {
	if q == 0 {
		panic("rational with zero denominator")
	}
	//
	return Element{big.NewRat(p, q)}
}

// Rat returns a copy of the underlying rational.
func (x Element) Rat() *big.Rat {
	if x.val == nil {
		return new(big.Rat)
	}
	//
	return new(big.Rat).Set(x.val)
}

// Add x + y
func (x Element) Add(y Element) Element {
	return Element{new(big.Rat).Add(x.rat(), y.rat())}
}

// Cmp returns 1 if x > y, 0 if x = y, and -1 if x < y.
func (x Element) Cmp(y Element) int {
	return x.rat().Cmp(y.rat())
}

// Inverse x⁻¹, or 0 if x = 0.
func (x Element) Inverse() Element {
	if x.IsZero() {
		return Element{}
	}
	//
	return Element{new(big.Rat).Inv(x.val)}
}

// IsOne implementation for the Element interface
func (x Element) IsOne() bool {
	return x.val != nil && x.val.IsInt() && x.val.Num().IsInt64() && x.val.Num().Int64() == 1
}

// IsZero implementation for the Element interface
func (x Element) IsZero() bool {
	return x.val == nil || x.val.Sign() == 0
}

// Sign returns -1, 0 or +1 depending on the sign of x.
func (x Element) Sign() int {
	return x.rat().Sign()
}

// Mul x * y
func (x Element) Mul(y Element) Element {
	return Element{new(big.Rat).Mul(x.rat(), y.rat())}
}

// Neg -x
func (x Element) Neg() Element {
	return Element{new(big.Rat).Neg(x.rat())}
}

// Sub x - y
func (x Element) Sub(y Element) Element {
	return Element{new(big.Rat).Sub(x.rat(), y.rat())}
}

// SetInt64 implementation for Element.
func (x Element) SetInt64(val int64) Element {
	return Element{new(big.Rat).SetInt64(val)}
}

// SetBigInt implementation for Element.
func (x Element) SetBigInt(val *big.Int) Element {
	return Element{new(big.Rat).SetInt(val)}
}

func (x Element) String() string {
	return x.rat().RatString()
}

func (x Element) rat() *big.Rat {
	if x.val == nil {
		return new(big.Rat)
	}
	//
	return x.val
}
