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
package construct

import (
	"context"
	"fmt"

	"github.com/gravclosure/go-closure/pkg/basis"
	"github.com/gravclosure/go-closure/pkg/coeff"
	"github.com/gravclosure/go-closure/pkg/expr"
)

// CoefficientName is the name of coefficient keys handled by Generator.
const CoefficientName = "coefficient"

// Options configures the construction of coefficients.
type Options struct {
	// Spatial dimension over which indices range.
	Dimension uint
	// Options used for selecting a basis.
	Basis basis.Options
}

// DefaultOptions returns options for three spatial dimensions.
func DefaultOptions() Options {
	return Options{Dimension: 3, Basis: basis.DefaultOptions()}
}

// Basis determines a basis for the tensors of shape (l,ld,r,rd), which have
// l+ld+r+rd free indices and the symmetries given by BlockSymmetries.  The
// candidates are built from the metric (and Levi-Civita symbol) before being
// symmetrised and canonicalised, after which a linearly independent subset is
// selected.
func Basis(l, ld, r, rd uint, opts Options) (*expr.TensorContainer, error) {
	var (
		names      = IndexNames(l + ld + r + rd)
		blocks     = splitBlocks(names, l, ld, r, rd)
		symmetries = BlockSymmetries(blocks)
		candidates = expr.NewTensorContainer()
	)
	//
	for _, c := range Candidates(names, opts.Dimension) {
		body := Canonicalise(Symmetrise(c, names, symmetries))
		//
		if !body.IsZero() {
			tensor := expr.NewTensor(opts.Dimension, body, names...)
			tensor.Symmetries = symmetries
			candidates.Insert(tensor)
		}
	}
	//
	return basis.Select(candidates, opts.Basis)
}

// Coefficient constructs the most general tensor of shape (l,ld,r,rd), as a
// linear combination of basis tensors each weighted by a fresh unknown e_1,
// e_2, etc.  A coefficient without indices is simply the unknown e_1.
func Coefficient(l, ld, r, rd uint, opts Options) (expr.Expression, error) {
	if l+ld+r+rd == 0 {
		return unknown(1), nil
	}
	//
	tensors, err := Basis(l, ld, r, rd, opts)
	if err != nil {
		return nil, err
	}
	//
	var terms = make([]expr.TensorExpr, tensors.Len())
	//
	for i, t := range tensors.Tensors() {
		terms[i] = expr.Scale(unknown(i+1), t.Body)
	}
	//
	return expr.TensorAdd(terms...), nil
}

// Generator returns a coefficient generator which constructs coefficients
// using the given options.  Only keys named "coefficient" with four shape
// parameters are recognised.
func Generator(opts Options) coeff.Generator {
	return func(ctx context.Context, key coeff.Key) (expr.Expression, error) {
		if key.Name != CoefficientName {
			return nil, fmt.Errorf("%s: %w", key.String(), coeff.ErrUnknownCoefficient)
		}
		//
		params, err := key.Params()
		if err != nil {
			return nil, err
		} else if len(params) != 4 {
			return nil, fmt.Errorf("%s requires four parameters: %w", key.String(), coeff.ErrUnknownCoefficient)
		}
		//
		return Coefficient(params[0], params[1], params[2], params[3], opts)
	}
}

func unknown(i int) *expr.Variable {
	name := fmt.Sprintf("e_%d", i)
	return expr.NewVariableWithText(name, name)
}

func splitBlocks(names []string, sizes ...uint) [][]string {
	var (
		blocks = make([][]string, len(sizes))
		start  = uint(0)
	)
	//
	for i, n := range sizes {
		blocks[i] = names[start : start+n]
		start += n
	}
	//
	return blocks
}
