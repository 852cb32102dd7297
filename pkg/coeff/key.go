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
	"fmt"
	"strconv"
	"strings"

	"github.com/gravclosure/go-closure/pkg/util/collection/array"
)

// Key identifies a coefficient by its generator name and shape parameters, for
// example coefficient(2,0,2,0).
type Key struct {
	Name  string
	Shape string
}

// NewKey constructs a key from a name and zero or more shape parameters.
func NewKey(name string, shape ...uint) Key {
	var params = array.Map(shape, func(n uint) string { return strconv.FormatUint(uint64(n), 10) })
	//
	return Key{name, strings.Join(params, ",")}
}

// Params decodes the shape parameters of this key.
func (k Key) Params() ([]uint, error) {
	if k.Shape == "" {
		return nil, nil
	}
	//
	var (
		parts  = strings.Split(k.Shape, ",")
		params = make([]uint, len(parts))
	)
	//
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid shape %q for %s", k.Shape, k.Name)
		}
		//
		params[i] = uint(n)
	}
	//
	return params, nil
}

func (k Key) String() string {
	return fmt.Sprintf("%s(%s)", k.Name, k.Shape)
}
