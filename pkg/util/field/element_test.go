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
	"math/big"
	"testing"

	"github.com/gravclosure/go-closure/pkg/util/field/bls12_377"
	"github.com/gravclosure/go-closure/pkg/util/field/rational"
	"github.com/stretchr/testify/assert"
)

func init() {
	// make sure the interface is adhered to.
	_ = Element[rational.Element](rational.Element{})
	_ = Element[bls12_377.Element](bls12_377.Element{})
}

func Test_Rational_Zero(t *testing.T) {
	assert.True(t, Zero[rational.Element]().IsZero())
	assert.True(t, One[rational.Element]().IsOne())
	assert.Equal(t, "0", Zero[rational.Element]().String())
}

func Test_Rational_Arithmetic(t *testing.T) {
	var (
		half  = rational.Frac(1, 2)
		third = rational.Frac(1, 3)
	)
	//
	assert.Equal(t, "5/6", half.Add(third).String())
	assert.Equal(t, "1/6", half.Sub(third).String())
	assert.Equal(t, "1/6", half.Mul(third).String())
	assert.Equal(t, "3", third.Inverse().String())
	assert.Equal(t, "-1/2", half.Neg().String())
	assert.Equal(t, 1, half.Cmp(third))
	assert.True(t, Zero[rational.Element]().Inverse().IsZero())
}

func Test_Rational_FromRat(t *testing.T) {
	r := Rat[rational.Element](big.NewRat(-3, 4))
	assert.Equal(t, "-3/4", r.String())
}

func Test_Bls12_NegativeReduces(t *testing.T) {
	var (
		minusOne = Int64[bls12_377.Element](-1)
		one      = One[bls12_377.Element]()
	)
	//
	assert.True(t, minusOne.Add(one).IsZero())
	assert.True(t, minusOne.Neg().IsOne())
}

func Test_Bls12_FromRat(t *testing.T) {
	var (
		half = Rat[bls12_377.Element](big.NewRat(1, 2))
		two  = Int64[bls12_377.Element](2)
	)
	//
	assert.True(t, half.Mul(two).IsOne())
}
