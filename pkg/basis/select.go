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
package basis

import (
	"fmt"
	"io"

	"github.com/gravclosure/go-closure/pkg/expr"
	"github.com/gravclosure/go-closure/pkg/linalg"
	"github.com/gravclosure/go-closure/pkg/util/field"
	"github.com/gravclosure/go-closure/pkg/util/field/bls12_377"
	"github.com/gravclosure/go-closure/pkg/util/field/rational"
	log "github.com/sirupsen/logrus"
)

// Options controls how a basis is selected.
type Options struct {
	// ModularPrecheck enables a rank computation over the BLS12-377 scalar
	// field prior to exact elimination.  Since the rank modulo a prime never
	// exceeds the rank over the rationals, full modular rank shows every
	// candidate is independent.
	ModularPrecheck bool
	// Logger receives debugging output.  When nil, nothing is logged.
	Logger log.FieldLogger
}

// DefaultOptions returns the default options, which enable the modular
// precheck.
func DefaultOptions() Options {
	return Options{ModularPrecheck: true}
}

// Select determines a maximal linearly independent subset of the given
// candidate tensors.  Each candidate is evaluated to its vector of components,
// and candidates are kept (in their original order) when their vector
// contributes a pivot during row reduction.  Candidates whose components are
// all zero are never selected.  This fails if a candidate cannot be evaluated,
// or if candidates have differing numbers of components.
func Select(candidates *expr.TensorContainer, opts Options) (*expr.TensorContainer, error) {
	var (
		logger  = loggerOf(opts)
		rows    []linalg.Vector[rational.Element]
		sources []int
	)
	//
	for i, t := range candidates.Tensors() {
		components, err := t.Components()
		if err != nil {
			return nil, fmt.Errorf("evaluating candidate %s: %w", t.String(), err)
		}
		//
		if row := linalg.VectorOf(components...); !row.IsZero() {
			rows = append(rows, row)
			sources = append(sources, i)
		}
	}
	//
	matrix, err := linalg.NewMatrix(rows...)
	if err != nil {
		return nil, err
	}
	//
	selected := independentRows(matrix, opts.ModularPrecheck, logger)
	result := expr.NewTensorContainer()
	//
	for _, row := range selected {
		result.Insert(candidates.At(sources[row]))
	}
	//
	logger.Debugf("selected %d of %d candidates", result.Len(), candidates.Len())
	//
	return result, nil
}

// Determine indices of the independent rows of a given matrix.
func independentRows(matrix linalg.Matrix[rational.Element], precheck bool, logger log.FieldLogger) []uint {
	if precheck && matrix.Rows() > 0 {
		rank := modularRank(matrix)
		//
		if rank == matrix.Rows() {
			logger.Debugf("modular rank %d is full, skipping exact elimination", rank)
			//
			return allRows(matrix.Rows())
		}
		//
		logger.Debugf("modular rank %d of %d rows, falling back to exact elimination", rank, matrix.Rows())
	}
	//
	echelon := matrix.RowEchelon()
	//
	return echelon.Independent()
}

// Compute the rank of a rational matrix after mapping it into the BLS12-377
// scalar field.  Components are small rationals, hence no denominator vanishes
// modulo the field's characteristic.
func modularRank(matrix linalg.Matrix[rational.Element]) uint {
	var rows = make([]linalg.Vector[bls12_377.Element], matrix.Rows())
	//
	for i := range matrix.Rows() {
		row := matrix.Row(i)
		rows[i] = linalg.NewVector[bls12_377.Element](row.Len())
		//
		for j := range row.Len() {
			rows[i].Set(j, field.Rat[bls12_377.Element](row.Get(j).Rat()))
		}
	}
	// Rows have identical lengths, hence this cannot fail.
	modular, _ := linalg.NewMatrix(rows...)
	//
	return modular.Rank()
}

func allRows(n uint) []uint {
	var rows = make([]uint, n)
	//
	for i := range n {
		rows[i] = i
	}
	//
	return rows
}

func loggerOf(opts Options) log.FieldLogger {
	if opts.Logger != nil {
		return opts.Logger
	}
	//
	logger := log.New()
	logger.SetOutput(io.Discard)
	//
	return logger
}
