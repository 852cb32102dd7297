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
	"io"
	"slices"
	"sync"
	"time"

	"github.com/gravclosure/go-closure/pkg/expr"
	"github.com/gravclosure/go-closure/pkg/util"
	log "github.com/sirupsen/logrus"
)

// Generator computes the value of a coefficient.  A generator must not block
// waiting on another coefficient of the same coordinator, since the worker
// executing it may be the only one available.
type Generator func(ctx context.Context, key Key) (expr.Expression, error)

// Option configures a coordinator.
type Option func(*Coordinator)

// WithWorkers sets the maximum number of coefficients computed concurrently.
// Zero means the number of available CPUs.
func WithWorkers(workers uint) Option {
	return func(c *Coordinator) { c.pool = util.NewPool(workers) }
}

// WithLogger sets the logger used to report progress.
func WithLogger(logger log.FieldLogger) Option {
	return func(c *Coordinator) { c.logger = logger }
}

// WithMetrics sets the metrics updated by the coordinator.
func WithMetrics(metrics *Metrics) Option {
	return func(c *Coordinator) { c.metrics = metrics }
}

// Coordinator maintains the set of coefficients requested so far, ensuring
// each is computed at most once and that every requester observes the same
// outcome.  The map lock is only held to find or insert entries, whilst the
// state of each entry is guarded by its own lock.
type Coordinator struct {
	generator Generator
	pool      *util.Pool
	logger    log.FieldLogger
	metrics   *Metrics
	// Guards entries and order
	mu      sync.Mutex
	entries map[Key]*Entry
	// Keys in order of first request
	order []Key
}

// NewCoordinator constructs a coordinator which computes coefficients using a
// given generator.
func NewCoordinator(generator Generator, opts ...Option) *Coordinator {
	c := &Coordinator{generator: generator, entries: make(map[Key]*Entry)}
	//
	for _, opt := range opts {
		opt(c)
	}
	//
	if c.pool == nil {
		c.pool = util.NewPool(0)
	}
	//
	if c.logger == nil {
		discard := log.New()
		discard.SetOutput(io.Discard)
		c.logger = discard
	}
	//
	if c.metrics == nil {
		c.metrics = NewMetrics(nil)
	}
	//
	return c
}

// Get returns the entry for a given key, creating a pending entry if none
// exists.  This never blocks on a computation.
func (c *Coordinator) Get(key Key) *Entry {
	c.metrics.Requests.Inc()
	//
	c.mu.Lock()
	defer c.mu.Unlock()
	//
	if e, ok := c.entries[key]; ok {
		return e
	}
	//
	e := newEntry(key)
	c.entries[key] = e
	c.order = append(c.order, key)
	c.logger.WithField("key", key.String()).Debug("requested coefficient")
	//
	return e
}

// Start returns the entry for a given key, dispatching its computation if it
// is still pending.
func (c *Coordinator) Start(key Key) *Entry {
	e := c.Get(key)
	c.dispatch(e)
	//
	return e
}

// StartAll dispatches every pending entry, in order of first request.
func (c *Coordinator) StartAll() {
	for _, e := range c.snapshot() {
		c.dispatch(e)
	}
}

// Keys returns the keys requested so far, in order of first request.
func (c *Coordinator) Keys() []Key {
	c.mu.Lock()
	defer c.mu.Unlock()
	//
	return slices.Clone(c.order)
}

// Entries returns the entries requested so far, in order of first request.
func (c *Coordinator) Entries() []*Entry {
	return c.snapshot()
}

// Drain blocks until every dispatched computation has finished.
func (c *Coordinator) Drain() {
	c.pool.Wait()
}

func (c *Coordinator) snapshot() []*Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	//
	entries := make([]*Entry, len(c.order))
	//
	for i, k := range c.order {
		entries[i] = c.entries[k]
	}
	//
	return entries
}

func (c *Coordinator) dispatch(e *Entry) {
	if e.start() {
		c.metrics.Started.Inc()
		c.pool.Submit(func() { c.run(e) })
	}
}

func (c *Coordinator) run(e *Entry) {
	var (
		logger = c.logger.WithField("key", e.key.String())
		start  = time.Now()
	)
	//
	logger.Debug("computing coefficient")
	//
	value, err := c.generate(e.key)
	//
	c.metrics.Duration.Observe(time.Since(start).Seconds())
	//
	if err != nil {
		c.metrics.Failures.Inc()
		logger.WithError(err).Debug("coefficient failed")
	} else {
		logger.WithField("elapsed", time.Since(start).Round(time.Millisecond)).Debug("computed coefficient")
	}
	//
	e.complete(value, err)
}

// Run the generator, converting any failure (including a panic) into a
// computation error.
func (c *Coordinator) generate(key Key) (value expr.Expression, err error) {
	defer func() {
		if r := recover(); r != nil {
			value, err = nil, &ComputationError{Key: key, Panic: r}
		}
	}()
	//
	value, err = c.generator(context.Background(), key)
	//
	switch {
	case err != nil:
		return nil, &ComputationError{Key: key, Err: err}
	case value == nil:
		return nil, &ComputationError{Key: key, Err: fmt.Errorf("generator returned no value")}
	default:
		return value, nil
	}
}
