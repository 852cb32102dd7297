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
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gravclosure/go-closure/pkg/expr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	keyA = NewKey("coefficient", 2, 0, 2, 0)
	keyB = NewKey("coefficient", 1, 0, 1, 0)
)

func Test_Key_01(t *testing.T) {
	assert.Equal(t, "coefficient(2,0,2,0)", keyA.String())
	//
	params, err := keyA.Params()
	require.NoError(t, err)
	assert.Equal(t, []uint{2, 0, 2, 0}, params)
	//
	_, err = Key{"coefficient", "2,x"}.Params()
	assert.Error(t, err)
}

func Test_Coordinator_AtMostOnce(t *testing.T) {
	var (
		calls   atomic.Int64
		release = make(chan struct{})
		wg      sync.WaitGroup
	)
	//
	c := NewCoordinator(func(ctx context.Context, key Key) (expr.Expression, error) {
		calls.Add(1)
		<-release
		//
		return expr.Int(42), nil
	}, WithWorkers(4))
	//
	entries := make([]*Entry, 64)
	//
	for i := range entries {
		wg.Add(1)
		//
		go func() {
			defer wg.Done()
			entries[i] = c.Start(keyA)
		}()
	}
	//
	wg.Wait()
	close(release)
	//
	for _, e := range entries {
		assert.Same(t, entries[0], e)
		require.NoError(t, e.Wait(context.Background()))
	}
	//
	c.Drain()
	assert.Equal(t, int64(1), calls.Load())
	assert.Equal(t, Done, entries[0].State())
	assert.Equal(t, []Key{keyA}, c.Keys())
}

func Test_Coordinator_Pending(t *testing.T) {
	c := NewCoordinator(constant(expr.Int(1)))
	e := c.Get(keyA)
	//
	assert.Equal(t, Pending, e.State())
	//
	_, err := e.Value()
	assert.True(t, errors.Is(err, ErrNotReady))
	// Waiting on a pending entry respects the context.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.True(t, errors.Is(e.Wait(ctx), context.DeadlineExceeded))
	//
	c.StartAll()
	require.NoError(t, e.Wait(context.Background()))
	assert.Equal(t, Done, e.State())
}

func Test_Coordinator_Value(t *testing.T) {
	x := expr.NewVariable("x")
	c := NewCoordinator(constant(expr.Add(x, expr.Int(1))))
	e := c.Start(keyA)
	require.NoError(t, e.Wait(context.Background()))
	//
	v1, err := e.Value()
	require.NoError(t, err)
	v2, err := e.Value()
	require.NoError(t, err)
	// Each reader receives an independent copy
	v1.(*expr.Sum).Terms[0] = expr.Int(7)
	assert.Equal(t, "x + 1", v2.String())
	//
	v3, _ := e.Value()
	assert.Equal(t, "x + 1", v3.String())
}

func Test_Coordinator_StickyError(t *testing.T) {
	var (
		calls  atomic.Int64
		reason = errors.New("no candidates")
	)
	//
	c := NewCoordinator(func(ctx context.Context, key Key) (expr.Expression, error) {
		calls.Add(1)
		return nil, reason
	})
	//
	var cerr *ComputationError
	//
	err := c.Start(keyA).Wait(context.Background())
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, keyA, cerr.Key)
	assert.True(t, errors.Is(err, reason))
	// Future requests observe the same error, without recomputing.
	e := c.Start(keyA)
	assert.Equal(t, Error, e.State())
	assert.Same(t, err, e.Wait(context.Background()))
	//
	_, verr := e.Value()
	assert.Same(t, err, verr)
	//
	c.Drain()
	assert.Equal(t, int64(1), calls.Load())
}

func Test_Coordinator_Panic(t *testing.T) {
	var cerr *ComputationError
	//
	c := NewCoordinator(func(ctx context.Context, key Key) (expr.Expression, error) {
		panic("boom")
	})
	//
	err := c.Start(keyA).Wait(context.Background())
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "boom", cerr.Panic)
	assert.Contains(t, err.Error(), "coefficient(2,0,2,0)")
}

func Test_Coordinator_NilValue(t *testing.T) {
	var cerr *ComputationError
	//
	c := NewCoordinator(constant(nil))
	err := c.Start(keyA).Wait(context.Background())
	assert.True(t, errors.As(err, &cerr))
}

func Test_Coordinator_Metrics(t *testing.T) {
	var (
		reg     = prometheus.NewRegistry()
		metrics = NewMetrics(reg)
		fail    = errors.New("fail")
	)
	//
	c := NewCoordinator(func(ctx context.Context, key Key) (expr.Expression, error) {
		if key == keyB {
			return nil, fail
		}
		//
		return expr.Int(1), nil
	}, WithMetrics(metrics), WithWorkers(2))
	//
	_ = c.Start(keyA).Wait(context.Background())
	_ = c.Start(keyB).Wait(context.Background())
	_ = c.Start(keyA).Wait(context.Background())
	c.Drain()
	//
	assert.Equal(t, float64(3), testutil.ToFloat64(metrics.Requests))
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.Started))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.Failures))
	//
	count, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func Test_Equation_Done(t *testing.T) {
	c := NewCoordinator(func(ctx context.Context, key Key) (expr.Expression, error) {
		params, _ := key.Params()
		return expr.Int(int64(params[0])), nil
	})
	//
	var calls atomic.Int64
	//
	eq := c.NewEquation("(+ A B)", []Key{keyA, keyB}, func(values []expr.Expression) (expr.Expression, error) {
		calls.Add(1)
		return expr.Add(values[0].(expr.Scalar), values[1].(expr.Scalar)), nil
	})
	//
	assert.Equal(t, []Key{keyA, keyB}, eq.Dependencies())
	c.StartAll()
	//
	for range 3 {
		val, err := eq.Wait(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "3", val.String())
	}
	// Body is evaluated once
	assert.Equal(t, int64(1), calls.Load())
}

func Test_Equation_EarlyError(t *testing.T) {
	var (
		release = make(chan struct{})
		fail    = errors.New("fail")
	)
	//
	defer close(release)
	//
	c := NewCoordinator(func(ctx context.Context, key Key) (expr.Expression, error) {
		if key == keyA {
			// Never finishes during this test
			<-release
			return expr.Int(1), nil
		}
		//
		return nil, fail
	}, WithWorkers(2))
	//
	eq := c.NewEquation("(+ A B)", []Key{keyA, keyB}, func(values []expr.Expression) (expr.Expression, error) {
		return values[0], nil
	})
	c.StartAll()
	//
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	//
	_, err := eq.Wait(ctx)
	assert.True(t, errors.Is(err, fail))
	assert.Equal(t, Running, c.Get(keyA).State())
}

func Test_Equation_BodyError(t *testing.T) {
	var fail = errors.New("fail")
	//
	c := NewCoordinator(constant(expr.Int(1)))
	eq := c.NewEquation("(f A)", []Key{keyA}, func(values []expr.Expression) (expr.Expression, error) {
		return nil, fail
	})
	c.StartAll()
	//
	_, err := eq.Wait(context.Background())
	assert.True(t, errors.Is(err, fail))
	assert.Contains(t, err.Error(), "(f A)")
}

func constant(e expr.Expression) Generator {
	return func(ctx context.Context, key Key) (expr.Expression, error) {
		if e == nil {
			return nil, nil
		}
		//
		return expr.Clone(e), nil
	}
}
