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

// Matrix is a dense, row-major matrix of field elements.  All rows have
// identical length.
type Matrix[F field.Element[F]] struct {
	rows []Vector[F]
	cols uint
}

// NewMatrix constructs a matrix from zero or more rows.  Rows are copied, and
// must all have the same length.
func NewMatrix[F field.Element[F]](rows ...Vector[F]) (Matrix[F], error) {
	var (
		nrows = make([]Vector[F], len(rows))
		cols  uint
	)
	//
	for i, row := range rows {
		if i == 0 {
			cols = row.Len()
		} else if row.Len() != cols {
			return Matrix[F]{}, &ShapeError{uint(i), cols, row.Len()}
		}
		//
		nrows[i] = row.Clone()
	}
	//
	return Matrix[F]{nrows, cols}, nil
}

// Rows returns the number of rows in this matrix.
func (m Matrix[F]) Rows() uint {
	return uint(len(m.rows))
}

// Cols returns the number of columns in this matrix.
func (m Matrix[F]) Cols() uint {
	return m.cols
}

// Row returns the ith row of this matrix.
func (m Matrix[F]) Row(i uint) Vector[F] {
	return m.rows[i]
}

// Get returns the element at a given row and column.
func (m Matrix[F]) Get(row, col uint) F {
	return m.rows[row].Get(col)
}

// RowEchelon reduces this matrix to row-echelon form using exact elimination.
// Rows are considered top to bottom; each row is reduced against the pivots
// established by the rows before it and, if anything remains, contributes a
// new pivot at its first nonzero column.  Thus, the rows recorded as
// independent are exactly those which are not a linear combination of earlier
// rows.  This matrix is not modified.
func (m Matrix[F]) RowEchelon() Echelon[F] {
	var echelon = Echelon[F]{cols: m.cols}
	//
	for i, row := range m.rows {
		echelon.insert(uint(i), row)
	}
	//
	return echelon
}

// Rank returns the rank of this matrix.
func (m Matrix[F]) Rank() uint {
	echelon := m.RowEchelon()
	//
	return echelon.Rank()
}

func (m Matrix[F]) String() string {
	var builder strings.Builder
	//
	builder.WriteString("[")
	//
	for i, row := range m.rows {
		if i != 0 {
			builder.WriteString(";")
		}
		//
		builder.WriteString(row.String())
	}
	//
	builder.WriteString("]")
	//
	return builder.String()
}
