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
	"slices"

	"github.com/gravclosure/go-closure/pkg/util/field"
)

// Echelon represents a matrix in row-echelon form.  Every row is normalised so
// that its pivot (i.e. first nonzero element) is one, and rows are ordered by
// pivot column.  Each row also records which row of the original matrix
// introduced it.
type Echelon[F field.Element[F]] struct {
	rows    []Vector[F]
	pivots  []uint
	sources []uint
	cols    uint
}

// Rank returns the number of nonzero rows.
func (e *Echelon[F]) Rank() uint {
	return uint(len(e.rows))
}

// Pivots returns the pivot column of each row, in ascending order.
func (e *Echelon[F]) Pivots() []uint {
	return slices.Clone(e.pivots)
}

// Independent returns the original row indices which contributed a pivot, in
// ascending order.
func (e *Echelon[F]) Independent() []uint {
	var indices = slices.Clone(e.sources)
	//
	slices.Sort(indices)
	//
	return indices
}

// Matrix returns the reduced rows as a matrix.
func (e *Echelon[F]) Matrix() Matrix[F] {
	// Rows are constructed with identical lengths, hence this cannot fail.
	m, _ := NewMatrix(e.rows...)
	m.cols = e.cols
	//
	return m
}

// Reduce eliminates every established pivot from a given vector, returning
// what remains.  The result is zero iff the vector lies in the span of the
// rows.
func (e *Echelon[F]) Reduce(row Vector[F]) Vector[F] {
	// Pivot columns ascend, and row i is zero before pivot i, so eliminating in
	// order never reintroduces an earlier pivot.
	for i, pivot := range e.pivots {
		if factor := row.Get(pivot); !factor.IsZero() {
			row = row.SubScaled(factor, e.rows[i])
		}
	}
	//
	return row
}

// Insert a given row, returning true if it contributed a new pivot.
func (e *Echelon[F]) insert(source uint, row Vector[F]) bool {
	row = e.Reduce(row)
	// Check what remains
	pivot, ok := row.Leading()
	if !ok {
		return false
	}
	// Normalise
	row = row.Scale(row.Get(pivot).Inverse())
	// Insert maintaining pivot order
	index, _ := slices.BinarySearch(e.pivots, pivot)
	e.rows = slices.Insert(e.rows, index, row)
	e.pivots = slices.Insert(e.pivots, index, pivot)
	e.sources = slices.Insert(e.sources, index, source)
	//
	return true
}
