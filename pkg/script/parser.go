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
package script

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gravclosure/go-closure/pkg/coeff"
	"github.com/gravclosure/go-closure/pkg/construct"
	"github.com/gravclosure/go-closure/pkg/expr"
	"github.com/gravclosure/go-closure/pkg/util/source"
	"github.com/gravclosure/go-closure/pkg/util/source/sexp"
)

// SyntaxError reports a malformed line of a script.
type SyntaxError struct {
	// Line number (starting from 1)
	Line int
	// Column number (starting from 1)
	Column int
	// Description of the problem
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// Statement is a single line of a script, describing an expression over zero
// or more coefficients.
type Statement struct {
	// Line on which this statement occurs (starting from 1)
	Line int
	// Text of this statement, excluding comments.
	Source string
	// Coefficients referenced by this statement, in order of first occurrence.
	Keys []coeff.Key
	root term
}

// Parse a script into its statements.  Each non-empty line (after removing
// comments) must contain exactly one S-Expression.
func Parse(text string) ([]*Statement, error) {
	var statements []*Statement
	//
	for i, line := range strings.Split(text, "\n") {
		stmt, err := parseLine(i+1, line)
		if err != nil {
			return nil, err
		} else if stmt != nil {
			statements = append(statements, stmt)
		}
	}
	//
	return statements, nil
}

func parseLine(lineno int, line string) (*Statement, error) {
	var parser = sexp.NewParser(line)
	//
	term, serr := parser.Parse()
	if serr != nil {
		return nil, &SyntaxError{lineno, serr.Index + 1, serr.Message}
	} else if term == nil {
		// Blank line or comment
		return nil, nil
	}
	// Check nothing follows
	if parser.Next() != nil {
		return nil, &SyntaxError{lineno, len(strings.TrimRight(line, " \t\r")), "unexpected remainder"}
	}
	//
	stmt := &Statement{Line: lineno, Source: term.String()}
	c := compiler{stmt: stmt, srcmap: parser.SourceMap()}
	//
	root, err := c.compile(term)
	if err != nil {
		return nil, err
	}
	//
	stmt.root = root
	//
	return stmt, nil
}

type compiler struct {
	stmt   *Statement
	srcmap *source.Map[sexp.SExp]
}

func (c *compiler) compile(s sexp.SExp) (term, error) {
	if sym := s.AsSymbol(); sym != nil {
		return c.compileSymbol(sym)
	}
	//
	list := s.AsList()
	//
	switch list.Head() {
	case "+", "*", "-":
		if list.Len() < 2 {
			return nil, c.error(s, "missing operands")
		}
		//
		args, err := c.compileAll(list.Elements[1:])
		if err != nil {
			return nil, err
		}
		//
		return &operation{list.Head(), args}, nil
	case "coefficient":
		return c.compileCoefficient(list)
	case "substitute":
		return c.compileSubstitute(list)
	case "":
		return nil, c.error(s, "expected operator")
	default:
		return nil, c.error(s, "unknown operator "+list.Head())
	}
}

func (c *compiler) compileAll(terms []sexp.SExp) ([]term, error) {
	var args = make([]term, len(terms))
	//
	for i, t := range terms {
		arg, err := c.compile(t)
		if err != nil {
			return nil, err
		}
		//
		args[i] = arg
	}
	//
	return args, nil
}

func (c *compiler) compileSymbol(sym *sexp.Symbol) (term, error) {
	if expr.IsNumber(sym.Value) {
		val, err := expr.ParseScalar(sym, expr.NewSymbolTable())
		if err != nil {
			return nil, c.error(sym, err.Error())
		}
		//
		return &constant{val}, nil
	}
	//
	return &variable{sym.Value}, nil
}

func (c *compiler) compileCoefficient(list *sexp.List) (term, error) {
	if list.Len() != 5 {
		return nil, c.error(list, "coefficient requires four parameters")
	}
	//
	var shape = make([]uint, 4)
	//
	for i, e := range list.Elements[1:] {
		sym := e.AsSymbol()
		if sym == nil {
			return nil, c.error(e, "expected integer")
		}
		//
		n, err := strconv.ParseUint(sym.Value, 10, 32)
		if err != nil {
			return nil, c.error(e, "expected integer")
		}
		//
		shape[i] = uint(n)
	}
	//
	key := coeff.NewKey(construct.CoefficientName, shape...)
	//
	for i, k := range c.stmt.Keys {
		if k == key {
			return &reference{i}, nil
		}
	}
	//
	c.stmt.Keys = append(c.stmt.Keys, key)
	//
	return &reference{len(c.stmt.Keys) - 1}, nil
}

func (c *compiler) compileSubstitute(list *sexp.List) (term, error) {
	if list.Len() < 2 {
		return nil, c.error(list, "missing body")
	}
	//
	body, err := c.compile(list.Get(1))
	if err != nil {
		return nil, err
	}
	//
	rules := make([]ruleTerm, 0, list.Len()-2)
	//
	for _, e := range list.Elements[2:] {
		rule := e.AsList()
		//
		if rule == nil || rule.Len() != 2 || rule.Get(0).AsSymbol() == nil || expr.IsNumber(rule.Get(0).String()) {
			return nil, c.error(e, "expected (variable replacement)")
		}
		//
		replacement, err := c.compile(rule.Get(1))
		if err != nil {
			return nil, err
		}
		//
		rules = append(rules, ruleTerm{rule.Get(0).AsSymbol().Value, replacement})
	}
	//
	return &substitution{body, rules}, nil
}

// Construct a syntax error for a given term, positioned at the start of that
// term.
func (c *compiler) error(s sexp.SExp, msg string) *SyntaxError {
	var span = c.srcmap.Get(s)
	//
	return &SyntaxError{c.stmt.Line, span.Start() + 1, fmt.Sprintf("%s in %s", msg, s.String())}
}
