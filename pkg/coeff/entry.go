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

// State of a coefficient computation.
type State uint8

const (
	// Pending indicates a computation which has been requested, but not
	// started.
	Pending State = iota
	// Running indicates a computation which has been dispatched to a worker.
	Running
	// Done indicates a computation which finished with a value.
	Done
	// Error indicates a computation which failed.
	Error
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Running:
		return "running"
	case Done:
		return "done"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("state(%d)", s)
	}
}

// Entry records the computation of a single coefficient.  An entry moves from
// Pending to Running at most once, and then to either Done or Error where it
// remains.
type Entry struct {
	key   Key
	mu    sync.Mutex
	state State
	value expr.Expression
	err   error
	// Closed once the entry reaches Done or Error.
	done chan struct{}
}

func newEntry(key Key) *Entry {
	return &Entry{key: key, done: make(chan struct{})}
}

// Key returns the key identifying this entry.
func (e *Entry) Key() Key { return e.key }

// State returns the current state of this entry.
func (e *Entry) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	//
	return e.state
}

// Done returns a channel which is closed when this entry completes (either
// with a value or an error).
func (e *Entry) Done() <-chan struct{} {
	return e.done
}

// Wait blocks until this entry completes, or the given context is cancelled.
// Cancelling the context does not cancel the computation itself.
func (e *Entry) Wait(ctx context.Context) error {
	select {
	case <-e.done:
		e.mu.Lock()
		defer e.mu.Unlock()
		//
		return e.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Value returns an independent copy of the computed value.  This fails if the
// computation failed, or has not yet completed.
func (e *Entry) Value() (expr.Expression, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	//
	switch e.state {
	case Done:
		return expr.Clone(e.value), nil
	case Error:
		return nil, e.err
	default:
		return nil, fmt.Errorf("%s is %s: %w", e.key.String(), e.state.String(), ErrNotReady)
	}
}

// Move from Pending to Running, returning true if this caller won the right to
// perform the computation.
func (e *Entry) start() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	//
	if e.state != Pending {
		return false
	}
	//
	e.state = Running
	//
	return true
}

// Record the outcome of the computation, and release all waiters.
func (e *Entry) complete(value expr.Expression, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	//
	if err != nil {
		e.state, e.err = Error, err
	} else {
		e.state, e.value = Done, value
	}
	//
	close(e.done)
}
