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
	"errors"
	"fmt"
)

// ErrUnknownCoefficient indicates a key which no generator knows how to
// compute.
var ErrUnknownCoefficient = errors.New("unknown coefficient")

// ErrNotReady indicates an attempt to read the value of a coefficient whose
// computation has not yet finished.
var ErrNotReady = errors.New("coefficient not ready")

// ComputationError reports the failure of a coefficient computation.  Once
// recorded against an entry, it is returned to every waiter on that entry.
type ComputationError struct {
	Key Key
	// Underlying failure, which may be nil for a panic.
	Err error
	// Value recovered from a panicking generator, if any.
	Panic any
}

func (e *ComputationError) Error() string {
	if e.Panic != nil {
		return fmt.Sprintf("computing %s: panic: %v", e.Key.String(), e.Panic)
	}
	//
	return fmt.Sprintf("computing %s: %v", e.Key.String(), e.Err)
}

func (e *ComputationError) Unwrap() error {
	return e.Err
}
