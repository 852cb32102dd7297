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
package coeff

import (
	"context"
	"fmt"
	"sync"

	"github.com/gravclosure/go-closure/pkg/expr"
)

// Body combines the values of the coefficients on which an equation depends,
// given in the same order as its keys.  The values are independent copies and
// can be freely modified.
type Body func(values []expr.Expression) (expr.Expression, error)

// Equation is an expression over one or more coefficients, which can be
// evaluated once they have all been computed.
type Equation struct {
	source  string
	entries []*Entry
	body    Body
	// Memoised outcome
	once   sync.Once
	result expr.Expression
	err    error
}

// NewEquation registers an equation with a given coordinator.  The entries for
// its coefficients are requested, but not started.
func (c *Coordinator) NewEquation(source string, keys []Key, body Body) *Equation {
	var entries = make([]*Entry, len(keys))
	//
	for i, k := range keys {
		entries[i] = c.Get(k)
	}
	//
	return &Equation{source: source, entries: entries, body: body}
}

// Source returns the text from which this equation was constructed.
func (p *Equation) Source() string { return p.source }

// Dependencies returns the keys of the coefficients used by this equation.
func (p *Equation) Dependencies() []Key {
	var keys = make([]Key, len(p.entries))
	//
	for i, e := range p.entries {
		keys[i] = e.key
	}
	//
	return keys
}

// Wait blocks until every coefficient of this equation has been computed, and
// then returns the result of its body.  If any coefficient fails, its error is
// returned immediately without waiting for the others.  The body is evaluated
// at most once, and its outcome is shared by all callers.
func (p *Equation) Wait(ctx context.Context) (expr.Expression, error) {
	if err := p.await(ctx); err != nil {
		return nil, err
	}
	//
	p.once.Do(p.evaluate)
	//
	if p.err != nil {
		return nil, p.err
	}
	//
	return expr.Clone(p.result), nil
}

// Wait on all dependencies concurrently, returning the first error observed.
func (p *Equation) await(ctx context.Context) error {
	wctx, cancel := context.WithCancel(ctx)
	defer cancel()
	// Buffered so that no waiter is left blocked
	results := make(chan error, len(p.entries))
	//
	for _, e := range p.entries {
		go func() { results <- e.Wait(wctx) }()
	}
	//
	for range p.entries {
		if err := <-results; err != nil {
			return err
		}
	}
	//
	return nil
}

func (p *Equation) evaluate() {
	var values = make([]expr.Expression, len(p.entries))
	//
	for i, e := range p.entries {
		val, err := e.Value()
		if err != nil {
			p.err = err
			return
		}
		//
		values[i] = val
	}
	//
	if p.result, p.err = p.body(values); p.err != nil {
		p.err = fmt.Errorf("evaluating %s: %w", p.source, p.err)
	} else if p.result == nil {
		p.err = fmt.Errorf("evaluating %s: no result", p.source)
	}
}
