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
package field

import (
	"fmt"
	"math/big"
)

// An Element of a field over which exact linear algebra can be performed.  The
// zero value of any implementation must represent 0.
type Element[Operand any] interface {
	fmt.Stringer
	// Add x+y
	Add(y Operand) Operand
	// Cmp returns 1 if x > y, 0 if x = y, and -1 if x < y.
	Cmp(y Operand) int
	// Check whether this value is zero (or not).
	IsZero() bool
	// Check whether this value is one (or not).
	IsOne() bool
	// Compute x * y
	Mul(y Operand) Operand
	// Compute x⁻¹, or 0 if x = 0.
	Inverse() Operand
	// Compute -x
	Neg() Operand
	// Compute x - y
	Sub(y Operand) Operand
	// SetInt64 returns the element corresponding to a given (signed) integer.
	SetInt64(val int64) Operand
	// SetBigInt returns the element corresponding to a given (signed) integer.
	// Elements of finite fields reduce the value modulo their characteristic.
	SetBigInt(val *big.Int) Operand
}

// Zero constructs a field element representing 0
func Zero[F Element[F]]() F {
	var element F
	//
	return element
}

// One constructs a field element representing 1
func One[F Element[F]]() F {
	var element F
	//
	return element.SetInt64(1)
}

// Int64 construct a field element from a given int64
func Int64[F Element[F]](val int64) F {
	var element F
	//
	return element.SetInt64(val)
}

// BigInt construct a field element from a given big.Int
func BigInt[F Element[F]](val *big.Int) F {
	var element F
	//
	return element.SetBigInt(val)
}

// Rat constructs a field element from a given rational number, by dividing its
// numerator by its denominator within the field.  For finite fields, this
// panics if the denominator is divisible by the characteristic.
func Rat[F Element[F]](val *big.Rat) F {
	var (
		num   = BigInt[F](val.Num())
		denom = BigInt[F](val.Denom())
	)
	//
	if denom.IsZero() {
		panic(fmt.Sprintf("denominator of %s vanishes in field", val.String()))
	}
	//
	return num.Mul(denom.Inverse())
}
