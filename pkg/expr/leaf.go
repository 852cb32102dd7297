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
	"slices"
	"strconv"
	"strings"

	"github.com/gravclosure/go-closure/pkg/util/collection/array"
	"github.com/gravclosure/go-closure/pkg/util/field/rational"
	"github.com/gravclosure/go-closure/pkg/util/source/sexp"
)

// LeafKind distinguishes the different kinds of elementary tensor.
type LeafKind uint8

const (
	// MetricLeaf is the (Euclidean) spatial metric γ.
	MetricLeaf LeafKind = iota
	// EpsilonLeaf is the totally antisymmetric Levi-Civita symbol ε.
	EpsilonLeaf
	// TableLeaf is a tensor given by an explicit table of components.
	TableLeaf
	// SymbolicLeaf is a named tensor whose components are unknown.
	SymbolicLeaf
)

// Leaf is an elementary tensor carrying a symbol and a list of index names.
type Leaf struct {
	kind    LeafKind
	symbol  string
	indices []string
	// Only used for table leaves.
	ranges []uint
	values []rational.Element
}

// Metric constructs the spatial metric γ over two indices.
func Metric(i, j string) *Leaf {
	return &Leaf{kind: MetricLeaf, symbol: `\gamma`, indices: []string{i, j}}
}

// Epsilon constructs the Levi-Civita symbol ε over the given indices.
func Epsilon(indices ...string) *Leaf {
	return &Leaf{kind: EpsilonLeaf, symbol: `\epsilon`, indices: slices.Clone(indices)}
}

// Named constructs a tensor with a given symbol, whose components are unknown.
func Named(symbol string, indices ...string) *Leaf {
	return &Leaf{kind: SymbolicLeaf, symbol: symbol, indices: slices.Clone(indices)}
}

// Table constructs a tensor with a given symbol and explicitly given
// components, listed lexicographically over the index values (i.e. the last
// index varies fastest).
func Table(symbol string, indices []string, ranges []uint, values []rational.Element) (*Leaf, error) {
	var n = uint(1)
	//
	if len(indices) != len(ranges) {
		return nil, fmt.Errorf("tensor %s has %d indices but %d ranges", symbol, len(indices), len(ranges))
	}
	//
	for _, r := range ranges {
		n *= r
	}
	//
	if uint(len(values)) != n {
		return nil, fmt.Errorf("tensor %s requires %d components (was %d)", symbol, n, len(values))
	}
	//
	return &Leaf{TableLeaf, symbol, slices.Clone(indices), slices.Clone(ranges), slices.Clone(values)}, nil
}

// LeafKind returns the kind of this elementary tensor.
func (p *Leaf) LeafKind() LeafKind { return p.kind }

// Symbol returns the symbol of this tensor.
func (p *Leaf) Symbol() string { return p.symbol }

// Indices returns the index names of this tensor.
func (p *Leaf) Indices() []string { return slices.Clone(p.indices) }

// Rename constructs a copy of this tensor whose indices are renamed using a
// given function.
func (p *Leaf) Rename(fn func(string) string) *Leaf {
	var leaf = p.clone()
	//
	leaf.indices = array.Map(p.indices, fn)
	//
	return leaf
}

// Kind implementation for the Expression interface.
func (p *Leaf) Kind() Kind { return KindLeaf }

// Precedence implementation for the Expression interface.
func (p *Leaf) Precedence() uint { return precAtom }

// Lisp implementation for the Expression interface.
func (p *Leaf) Lisp() sexp.SExp {
	var list *sexp.List
	//
	switch p.kind {
	case MetricLeaf:
		list = sexp.NewList(sexp.NewSymbol("gamma"))
	case EpsilonLeaf:
		list = sexp.NewList(sexp.NewSymbol("epsilon"))
	case TableLeaf:
		return p.lispOfTable()
	default:
		list = sexp.NewList(sexp.NewSymbol("tensor"), sexp.NewSymbol(p.symbol))
	}
	//
	for _, index := range p.indices {
		list.Append(sexp.NewSymbol(index))
	}
	//
	return list
}

// Encode a table leaf as (table T (a 2) (b 3) (v0 v1 ...)), giving the range
// of each index followed by the components.
func (p *Leaf) lispOfTable() sexp.SExp {
	var (
		list   = sexp.NewList(sexp.NewSymbol("table"), sexp.NewSymbol(p.symbol))
		values = sexp.NewList()
	)
	//
	for i, index := range p.indices {
		list.Append(sexp.NewList(sexp.NewSymbol(index), sexp.NewSymbol(strconv.FormatUint(uint64(p.ranges[i]), 10))))
	}
	//
	for _, v := range p.values {
		values.Append(NumberOf(v).Lisp())
	}
	//
	list.Append(values)
	//
	return list
}

func (p *Leaf) String() string {
	if len(p.indices) == 0 {
		return p.symbol
	}
	//
	return fmt.Sprintf("%s_{%s}", p.symbol, strings.Join(p.indices, ""))
}

func (p *Leaf) tensor() {}

// Check whether some index name occurs more than once.
func (p *Leaf) selfContracted() bool {
	for i, index := range p.indices {
		if slices.Contains(p.indices[i+1:], index) {
			return true
		}
	}
	//
	return false
}

func (p *Leaf) clone() *Leaf {
	return &Leaf{p.kind, p.symbol, slices.Clone(p.indices), slices.Clone(p.ranges), slices.Clone(p.values)}
}
