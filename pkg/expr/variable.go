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
	"sync"

	"github.com/google/uuid"
	"github.com/gravclosure/go-closure/pkg/util/source/sexp"
)

// Variable is a handle onto a symbol.  Variables carry an identity rather than
// a value: two variables are the same symbol iff they have the same id,
// regardless of their names.  Variables are immutable, and are shared (rather
// than copied) when an expression is cloned.
type Variable struct {
	id   uuid.UUID
	name string
	text string
}

// NewVariable creates a fresh symbol with a given name, which is also used as
// its display text.
func NewVariable(name string) *Variable {
	return &Variable{uuid.New(), name, name}
}

// NewVariableWithText creates a fresh symbol whose display text differs from
// its name (e.g. a LaTeX rendering).
func NewVariableWithText(name string, text string) *Variable {
	return &Variable{uuid.New(), name, text}
}

// Id returns the unique identifier of this symbol.
func (p *Variable) Id() uuid.UUID { return p.id }

// Name returns the name of this symbol.
func (p *Variable) Name() string { return p.name }

// Same checks whether two variables refer to the same symbol.
func (p *Variable) Same(other *Variable) bool {
	return p.id == other.id
}

// Kind implementation for the Expression interface.
func (p *Variable) Kind() Kind { return KindVariable }

// Precedence implementation for the Expression interface.
func (p *Variable) Precedence() uint { return precAtom }

// Lisp implementation for the Expression interface.
func (p *Variable) Lisp() sexp.SExp {
	return sexp.NewSymbol(p.name)
}

func (p *Variable) String() string {
	return p.text
}

func (p *Variable) scalar() {}

// SymbolTable resolves names to symbols within a given scope, such that every
// occurrence of a name refers to the same symbol.  It is safe for concurrent
// use.
type SymbolTable struct {
	mu      sync.Mutex
	symbols map[string]*Variable
}

// NewSymbolTable constructs an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{symbols: make(map[string]*Variable)}
}

// Bind registers existing symbols under their names, replacing any symbol
// previously registered under the same name.
func (p *SymbolTable) Bind(vars ...*Variable) {
	p.mu.Lock()
	defer p.mu.Unlock()
	//
	for _, v := range vars {
		p.symbols[v.name] = v
	}
}

// Resolve returns the symbol registered under a given name, creating a fresh
// one when none exists.
func (p *SymbolTable) Resolve(name string) *Variable {
	p.mu.Lock()
	defer p.mu.Unlock()
	//
	if v, ok := p.symbols[name]; ok {
		return v
	}
	//
	v := NewVariable(name)
	p.symbols[name] = v
	//
	return v
}
