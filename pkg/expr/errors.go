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
	"errors"
	"fmt"

	"github.com/gravclosure/go-closure/pkg/util/source/sexp"
)

// ErrSymbolic indicates an attempt to evaluate an expression which has no
// numeric value, such as one containing a free variable.
var ErrSymbolic = errors.New("symbolic expression")

// ErrUnknownIndex indicates an attempt to evaluate a tensor without a value
// for one of its free indices.
var ErrUnknownIndex = errors.New("unknown index")

// FormatError reports an S-Expression which does not describe a valid
// expression.
type FormatError struct {
	// Offending S-Expression
	Term sexp.SExp
	// Reason it was rejected
	Message string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid expression %s (%s)", e.Term.String(), e.Message)
}

func formatError(term sexp.SExp, msg string, args ...any) *FormatError {
	return &FormatError{term, fmt.Sprintf(msg, args...)}
}
