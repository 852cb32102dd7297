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
package linalg

import (
	"strings"

	"github.com/gravclosure/go-closure/pkg/util/field"
)

// Vector is a fixed-length sequence of field elements.
type Vector[F field.Element[F]] struct {
	elements []F
}

// NewVector constructs a vector of a given length, where every element is zero.
func NewVector[F field.Element[F]](n uint) Vector[F] {
	return Vector[F]{make([]F, n)}
}

// VectorOf constructs a vector from the given elements.  The elements are
// copied.
func VectorOf[F field.Element[F]](elements ...F) Vector[F] {
	var nelements = make([]F, len(elements))
	//
	copy(nelements, elements)
	//
	return Vector[F]{nelements}
}

// Len returns the number of elements in this vector.
func (v Vector[F]) Len() uint {
	return uint(len(v.elements))
}

// Get returns the ith element of this vector.
func (v Vector[F]) Get(i uint) F {
	return v.elements[i]
}

// Set the ith element of this vector.
func (v Vector[F]) Set(i uint, val F) {
	v.elements[i] = val
}

// Clone returns an independent copy of this vector.
func (v Vector[F]) Clone() Vector[F] {
	return VectorOf(v.elements...)
}

// IsZero checks whether every element of this vector is zero.
func (v Vector[F]) IsZero() bool {
	for _, e := range v.elements {
		if !e.IsZero() {
			return false
		}
	}
	//
	return true
}

// Leading returns the index of the first nonzero element of this vector, and
// false if this vector is zero.
func (v Vector[F]) Leading() (uint, bool) {
	for i, e := range v.elements {
		if !e.IsZero() {
			return uint(i), true
		}
	}
	//
	return 0, false
}

// Scale returns this vector multiplied by a given factor.
func (v Vector[F]) Scale(factor F) Vector[F] {
	var res = NewVector[F](v.Len())
	//
	for i, e := range v.elements {
		res.elements[i] = e.Mul(factor)
	}
	//
	return res
}

// SubScaled returns v - factor * w.  Both vectors must have the same length.
func (v Vector[F]) SubScaled(factor F, w Vector[F]) Vector[F] {
	var res = NewVector[F](v.Len())
	//
	for i, e := range v.elements {
		res.elements[i] = e.Sub(factor.Mul(w.elements[i]))
	}
	//
	return res
}

// Equals checks whether two vectors have the same length and elements.
func (v Vector[F]) Equals(w Vector[F]) bool {
	if len(v.elements) != len(w.elements) {
		return false
	}
	//
	for i := range v.elements {
		if v.elements[i].Cmp(w.elements[i]) != 0 {
			return false
		}
	}
	//
	return true
}

func (v Vector[F]) String() string {
	var builder strings.Builder
	//
	builder.WriteString("(")
	//
	for i, e := range v.elements {
		if i != 0 {
			builder.WriteString(",")
		}
		//
		builder.WriteString(e.String())
	}
	//
	builder.WriteString(")")
	//
	return builder.String()
}
