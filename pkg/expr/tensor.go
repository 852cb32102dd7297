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

	"github.com/gravclosure/go-closure/pkg/util/collection/array"
	"github.com/gravclosure/go-closure/pkg/util/field/rational"
)

// Index is a named free index of a tensor, ranging over [0,Range).
type Index struct {
	Name  string
	Range uint
}

// Symmetry describes a relabelling of index names under which a tensor is
// (anti)symmetric.  For example, a tensor T_{ab} symmetric in a and b has the
// symmetry {From: [a,b], To: [b,a], Sign: 1}.
type Symmetry struct {
	From []string
	To   []string
	Sign int
}

// Swap constructs the symmetry which exchanges two indices.
func Swap(i, j string) Symmetry {
	return Symmetry{[]string{i, j}, []string{j, i}, 1}
}

// Rename returns the image of a given index name under this symmetry.
func (s Symmetry) Rename(name string) string {
	if i := slices.Index(s.From, name); i >= 0 {
		return s.To[i]
	}
	//
	return name
}

// Apply this symmetry to a given tensor expression, producing a new expression
// whose indices have been relabelled (and which is negated for an
// antisymmetry).
func (s Symmetry) Apply(t TensorExpr) TensorExpr {
	var renamed = RenameIndices(t, s.Rename)
	//
	if s.Sign < 0 {
		return Scale(Int(-1), renamed)
	}
	//
	return renamed
}

// Tensor is a tensor expression together with its free indices and declared
// symmetries.  Contracted indices range over [0,Dimension).
type Tensor struct {
	Indices    []Index
	Symmetries []Symmetry
	Body       TensorExpr
	Dimension  uint
}

// NewTensor constructs a tensor over a given spatial dimension, where every
// free index ranges over that dimension.
func NewTensor(dimension uint, body TensorExpr, names ...string) *Tensor {
	var indices = make([]Index, len(names))
	//
	for i, n := range names {
		indices[i] = Index{n, dimension}
	}
	//
	return &Tensor{indices, nil, body, dimension}
}

// Size returns the number of components of this tensor.
func (p *Tensor) Size() uint {
	var n = uint(1)
	//
	for _, index := range p.Indices {
		n *= index.Range
	}
	//
	return n
}

// Component evaluates the component of this tensor identified by the given
// index values.
func (p *Tensor) Component(values ...uint) (rational.Element, error) {
	if len(values) != len(p.Indices) {
		return rational.Element{}, fmt.Errorf("tensor has %d indices (not %d)", len(p.Indices), len(values))
	}
	//
	var env = make(map[string]uint, len(values))
	//
	for i, index := range p.Indices {
		env[index.Name] = values[i]
	}
	//
	return EvalTensor(p.Body, env, p.Dimension)
}

// ForEachComponent calls a given function for every assignment of values to
// the indices of this tensor, enumerated lexicographically (i.e. the last index
// varies fastest).  Enumeration stops at the first error.
func (p *Tensor) ForEachComponent(fn func(values []uint) error) error {
	var values = make([]uint, len(p.Indices))
	//
	for range p.Size() {
		if err := fn(slices.Clone(values)); err != nil {
			return err
		}
		// Increment
		for i := len(values) - 1; i >= 0; i-- {
			if values[i]++; values[i] < p.Indices[i].Range {
				break
			}
			//
			values[i] = 0
		}
	}
	//
	return nil
}

// Components evaluates every component of this tensor, in the order given by
// ForEachComponent.
func (p *Tensor) Components() ([]rational.Element, error) {
	var components = make([]rational.Element, 0, p.Size())
	//
	err := p.ForEachComponent(func(values []uint) error {
		val, err := p.Component(values...)
		components = append(components, val)
		//
		return err
	})
	//
	return components, err
}

// Clone returns a deep copy of this tensor.
func (p *Tensor) Clone() *Tensor {
	symmetries := array.Map(p.Symmetries, func(s Symmetry) Symmetry {
		return Symmetry{slices.Clone(s.From), slices.Clone(s.To), s.Sign}
	})
	//
	return &Tensor{slices.Clone(p.Indices), symmetries, CloneTensor(p.Body), p.Dimension}
}

func (p *Tensor) String() string {
	return p.Body.String()
}

// RenameIndices constructs a copy of a tensor expression whose index names are
// relabelled by a given function.  Sums are renormalised, since relabelling
// may cause terms to coincide.
func RenameIndices(t TensorExpr, fn func(string) string) TensorExpr {
	switch t := t.(type) {
	case *Leaf:
		return Juxtapose(t.Rename(fn))
	case *TensorProduct:
		return newTensorProduct(array.Map(t.Factors, func(l *Leaf) *Leaf { return l.Rename(fn) }))
	case *TensorSum:
		terms := array.Map(t.Terms, func(term TensorTerm) TensorTerm {
			return TensorTerm{CloneScalar(term.Coefficient), RenameIndices(term.Body, fn)}
		})
		//
		return NewTensorSum(terms...)
	default:
		panic(fmt.Sprintf("unknown tensor %s", t.Kind()))
	}
}

// TensorContainer is an ordered collection of tensors, which permits
// duplicates.
type TensorContainer struct {
	tensors []*Tensor
}

// NewTensorContainer constructs a container holding the given tensors.
func NewTensorContainer(tensors ...*Tensor) *TensorContainer {
	return &TensorContainer{slices.Clone(tensors)}
}

// Insert appends a tensor onto this container.
func (p *TensorContainer) Insert(t *Tensor) {
	p.tensors = append(p.tensors, t)
}

// Len returns the number of tensors in this container.
func (p *TensorContainer) Len() int { return len(p.tensors) }

// IsEmpty checks whether this container holds any tensors.
func (p *TensorContainer) IsEmpty() bool { return len(p.tensors) == 0 }

// At returns the ith tensor of this container.
func (p *TensorContainer) At(i int) *Tensor { return p.tensors[i] }

// Tensors returns the tensors of this container, in order.
func (p *TensorContainer) Tensors() []*Tensor {
	return slices.Clone(p.tensors)
}
