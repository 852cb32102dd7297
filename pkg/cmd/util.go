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
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gravclosure/go-closure/pkg/config"
	"github.com/gravclosure/go-closure/pkg/script"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// GetFlag gets an expected flag, or panic if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetUint gets an expected unsigned integer, or panic if an error arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string, or panic if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Read the configuration file (if given), and then apply any settings given
// explicitly on the command line.
func readConfig(cmd *cobra.Command) config.Config {
	var (
		cfg  = config.Default()
		path = GetString(cmd, "config")
		err  error
	)
	//
	if path != "" {
		if cfg, err = config.Load(path); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
	}
	// Command line overrides
	flags := cmd.Flags()
	//
	if flags.Changed("workers") {
		cfg.Workers = GetUint(cmd, "workers")
	}
	//
	if flags.Changed("dimension") {
		cfg.Dimension = GetUint(cmd, "dimension")
	}
	//
	cfg.Lisp = cfg.Lisp || GetFlag(cmd, "lisp")
	cfg.Verbose = cfg.Verbose || GetFlag(cmd, "verbose")
	cfg.Stats = cfg.Stats || GetFlag(cmd, "stats")
	cfg.Precheck = cfg.Precheck && !GetFlag(cmd, "no-precheck")
	//
	if err := cfg.Validate(); err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return cfg
}

// Configure the standard logger.  Colours are only used when logging to a
// terminal.
func configureLogging(verbose bool, out *os.File) {
	log.SetOutput(out)
	log.SetFormatter(&log.TextFormatter{
		ForceColors:   term.IsTerminal(int(out.Fd())),
		DisableColors: !term.IsTerminal(int(out.Fd())),
	})
	//
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
}

// Read and parse a script file, exiting if it cannot be opened or contains a
// syntax error.
func readScriptFile(filename string) []*script.Statement {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	text := string(bytes)
	//
	stmts, err := script.Parse(text)
	//
	var serr *script.SyntaxError
	//
	if errors.As(err, &serr) {
		printSyntaxError(os.Stdout, filename, serr, text)
		os.Exit(2)
	} else if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return stmts
}

// Print a syntax error with appropriate highlighting.
func printSyntaxError(out io.Writer, filename string, err *script.SyntaxError, text string) {
	line := enclosingLine(err.Line, text)
	// Print error + line number
	fmt.Fprintf(out, "%s:%d:%d: %s\n", filename, err.Line, err.Column, err.Message)
	// Print line
	fmt.Fprintln(out, line)
	// Print indent (todo: account for tabs)
	fmt.Fprint(out, strings.Repeat(" ", max(err.Column-1, 0)))
	// Print highlight
	fmt.Fprintln(out, "^")
}

// Determine the text of a given line (starting from 1).
func enclosingLine(num int, text string) string {
	lines := strings.Split(text, "\n")
	//
	if num < 1 || num > len(lines) {
		return ""
	}
	//
	return strings.TrimRight(lines[num-1], "\r")
}
