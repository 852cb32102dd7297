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
	"math/big"
	"regexp"
	"strconv"

	"github.com/gravclosure/go-closure/pkg/util/field/rational"
	"github.com/gravclosure/go-closure/pkg/util/source/sexp"
)

var numberRegex = regexp.MustCompile(`^-?[0-9]+(/[0-9]+)?$`)

// IsNumber checks whether a given symbol denotes a rational constant, such as
// "3" or "-1/2".
func IsNumber(symbol string) bool {
	return numberRegex.MatchString(symbol)
}

// ParseScalar decodes a scalar from its S-Expression form.  Symbols other than
// numbers are resolved as variables using the given table.
func ParseScalar(term sexp.SExp, table *SymbolTable) (Scalar, error) {
	if s := term.AsSymbol(); s != nil {
		return parseAtom(s, table)
	}
	//
	list := term.AsList()
	//
	switch {
	case list.Len() == 0:
		return nil, formatError(term, "empty list")
	case list.Head() == "":
		return nil, formatError(term, "expected operator")
	case list.Head() == "substitute":
		return parseSubstitute(list, table)
	}
	//
	args, err := parseScalars(list.Elements[1:], table)
	if err != nil {
		return nil, err
	}
	//
	switch list.Head() {
	case "+":
		return Add(args...), nil
	case "*":
		return Mul(args...), nil
	case "-":
		if len(args) == 0 {
			return nil, formatError(term, "missing operand")
		} else if len(args) == 1 {
			return Neg(args[0]), nil
		}
		//
		return Subtract(args[0], args[1:]...), nil
	default:
		return nil, formatError(term, "unknown operator %s", list.Head())
	}
}

func parseAtom(s *sexp.Symbol, table *SymbolTable) (Scalar, error) {
	if IsNumber(s.Value) {
		val, ok := new(big.Rat).SetString(s.Value)
		if !ok || val == nil {
			return nil, formatError(s, "invalid number")
		}
		//
		return NumberOf(rational.New(val)), nil
	}
	//
	if !isIdentifier(s.Value) {
		return nil, formatError(s, "invalid symbol")
	}
	//
	return table.Resolve(s.Value), nil
}

func parseSubstitute(list *sexp.List, table *SymbolTable) (Scalar, error) {
	if list.Len() < 2 {
		return nil, formatError(list, "missing body")
	}
	//
	body, err := ParseScalar(list.Get(1), table)
	if err != nil {
		return nil, err
	}
	//
	rules := make([]Rule, 0, list.Len()-2)
	//
	for _, e := range list.Elements[2:] {
		rule, err := ParseRule(e, table)
		if err != nil {
			return nil, err
		}
		//
		rules = append(rules, rule)
	}
	//
	return Substitute(body, rules...), nil
}

// ParseRule decodes a rule of the form (x replacement).
func ParseRule(term sexp.SExp, table *SymbolTable) (Rule, error) {
	list := term.AsList()
	//
	if list == nil || list.Len() != 2 {
		return Rule{}, formatError(term, "expected (variable replacement)")
	}
	//
	target, err := ParseScalar(list.Get(0), table)
	if err != nil {
		return Rule{}, err
	}
	//
	v, ok := target.(*Variable)
	if !ok {
		return Rule{}, formatError(list.Get(0), "expected variable")
	}
	//
	replacement, err := ParseScalar(list.Get(1), table)
	if err != nil {
		return Rule{}, err
	}
	//
	return Rule{v, replacement}, nil
}

func parseScalars(terms []sexp.SExp, table *SymbolTable) ([]Scalar, error) {
	var scalars = make([]Scalar, len(terms))
	//
	for i, t := range terms {
		s, err := ParseScalar(t, table)
		if err != nil {
			return nil, err
		}
		//
		scalars[i] = s
	}
	//
	return scalars, nil
}

// ParseTensor decodes a tensor expression from its S-Expression form, as
// produced by the Lisp method.
func ParseTensor(term sexp.SExp, table *SymbolTable) (TensorExpr, error) {
	list := term.AsList()
	//
	if list == nil || list.Len() == 0 {
		return nil, formatError(term, "expected tensor")
	}
	//
	switch list.Head() {
	case "gamma", "epsilon", "tensor", "table":
		var (
			leaf *Leaf
			err  error
		)
		//
		if list.Head() == "table" {
			leaf, err = parseTable(list)
		} else {
			leaf, err = parseLeaf(list)
		}
		//
		if err != nil {
			return nil, err
		}
		//
		return leaf, nil
	case "*":
		var factors = make([]*Leaf, 0, list.Len()-1)
		//
		for _, e := range list.Elements[1:] {
			l, err := ParseTensor(e, table)
			if err != nil {
				return nil, err
			} else if leaf, ok := l.(*Leaf); ok {
				factors = append(factors, leaf)
			} else {
				return nil, formatError(e, "expected elementary tensor")
			}
		}
		//
		if len(factors) == 0 {
			return nil, formatError(term, "missing factors")
		}
		//
		return Juxtapose(factors...), nil
	case "+":
		var terms = make([]TensorTerm, 0, list.Len()-1)
		//
		for _, e := range list.Elements[1:] {
			t, err := parseTensorTerm(e, table)
			if err != nil {
				return nil, err
			}
			//
			terms = append(terms, t)
		}
		//
		return NewTensorSum(terms...), nil
	default:
		return nil, formatError(term, "unknown tensor operator")
	}
}

func parseTensorTerm(term sexp.SExp, table *SymbolTable) (TensorTerm, error) {
	list := term.AsList()
	//
	if list == nil || !list.MatchSymbols(1, "*") || list.Len() != 3 {
		return TensorTerm{}, formatError(term, "expected (* coefficient tensor)")
	}
	//
	coeff, err := ParseScalar(list.Get(1), table)
	if err != nil {
		return TensorTerm{}, err
	}
	//
	body, err := ParseTensor(list.Get(2), table)
	if err != nil {
		return TensorTerm{}, err
	} else if _, ok := body.(*TensorSum); ok {
		return TensorTerm{}, formatError(list.Get(2), "nested tensor sum")
	}
	//
	return TensorTerm{coeff, body}, nil
}

func parseLeaf(list *sexp.List) (*Leaf, error) {
	var (
		start   = 1
		symbol  string
		indices []string
	)
	//
	if list.Head() == "tensor" {
		if list.Len() < 2 || list.Get(1).AsSymbol() == nil {
			return nil, formatError(list, "missing tensor symbol")
		}
		//
		symbol, start = list.Get(1).AsSymbol().Value, 2
	}
	//
	for _, e := range list.Elements[start:] {
		if s := e.AsSymbol(); s == nil || !isIdentifier(s.Value) {
			return nil, formatError(e, "invalid index")
		} else {
			indices = append(indices, s.Value)
		}
	}
	//
	switch list.Head() {
	case "gamma":
		if len(indices) != 2 {
			return nil, formatError(list, "metric requires two indices")
		}
		//
		return Metric(indices[0], indices[1]), nil
	case "epsilon":
		return Epsilon(indices...), nil
	default:
		return Named(symbol, indices...), nil
	}
}

func parseTable(list *sexp.List) (*Leaf, error) {
	var (
		n       = list.Len()
		indices []string
		ranges  []uint
		values  []rational.Element
	)
	//
	if n < 3 || list.Get(1).AsSymbol() == nil || list.Get(n-1).AsList() == nil {
		return nil, formatError(list, "expected (table symbol (index range)... (components...))")
	}
	//
	for _, e := range list.Elements[2 : n-1] {
		pair := e.AsList()
		//
		if pair == nil || pair.Len() != 2 || pair.Get(0).AsSymbol() == nil || pair.Get(1).AsSymbol() == nil ||
			!isIdentifier(pair.Get(0).String()) {
			return nil, formatError(e, "expected (index range)")
		}
		//
		r, err := strconv.ParseUint(pair.Get(1).String(), 10, 32)
		if err != nil {
			return nil, formatError(pair.Get(1), "invalid range")
		}
		//
		indices = append(indices, pair.Get(0).String())
		ranges = append(ranges, uint(r))
	}
	//
	for _, e := range list.Get(n - 1).AsList().Elements {
		if s := e.AsSymbol(); s == nil || !IsNumber(s.Value) {
			return nil, formatError(e, "expected component value")
		}
		//
		val, err := ParseScalar(e, nil)
		if err != nil {
			return nil, err
		}
		//
		values = append(values, val.(*Number).Value)
	}
	//
	leaf, err := Table(list.Get(1).String(), indices, ranges, values)
	if err != nil {
		return nil, formatError(list, "%s", err.Error())
	}
	//
	return leaf, nil
}

func isIdentifier(s string) bool {
	if len(s) == 0 || IsNumber(s) || s == "+" || s == "-" || s == "*" {
		return false
	}
	//
	for _, c := range s {
		switch {
		case c == '(' || c == ')' || c == ';':
			return false
		case c == ' ' || c == '\t' || c == '\n':
			return false
		}
	}
	//
	return true
}
