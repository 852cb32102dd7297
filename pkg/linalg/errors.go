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
package linalg

import "fmt"

// ShapeError is returned when a matrix is constructed from vectors of unequal
// length.
type ShapeError struct {
	// Row at which the mismatch was detected.
	Row uint
	// Expected row length (that of the first row).
	Expected uint
	// Actual length of the offending row.
	Actual uint
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("row %d has length %d (expected %d)", e.Row, e.Actual, e.Expected)
}
