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
package util

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Pool executes jobs concurrently, such that at most a fixed number of jobs
// are running at any given moment.  Submitting a job never blocks the caller.
type Pool struct {
	workers uint
	sem     *semaphore.Weighted
	running sync.WaitGroup
}

// NewPool constructs a pool with a given number of workers.  When this is
// zero, the number of available CPUs is used instead.
func NewPool(workers uint) *Pool {
	if workers == 0 {
		workers = uint(runtime.NumCPU())
	}
	//
	return &Pool{workers: workers, sem: semaphore.NewWeighted(int64(workers))}
}

// Workers returns the maximum number of jobs which can run at the same time.
func (p *Pool) Workers() uint {
	return p.workers
}

// Submit a job for execution.  The job is queued until a worker becomes
// available.
func (p *Pool) Submit(job func()) {
	p.running.Add(1)
	//
	go func() {
		defer p.running.Done()
		// Acquiring without a deadline cannot fail.
		_ = p.sem.Acquire(context.Background(), 1)
		defer p.sem.Release(1)
		//
		job()
	}()
}

// Wait blocks until every submitted job has completed.
func (p *Pool) Wait() {
	p.running.Wait()
}
