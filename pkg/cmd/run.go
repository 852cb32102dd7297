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
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gravclosure/go-closure/pkg/coeff"
	"github.com/gravclosure/go-closure/pkg/config"
	"github.com/gravclosure/go-closure/pkg/construct"
	"github.com/gravclosure/go-closure/pkg/expr"
	"github.com/gravclosure/go-closure/pkg/script"
	"github.com/gravclosure/go-closure/pkg/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] script_file",
	Short: "Evaluate the equations of a script.",
	Long: `Evaluate the equations of a script, printing one result per equation.
	Coefficients referenced by the equations are constructed concurrently.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		cfg := readConfig(cmd)
		configureLogging(cfg.Verbose || cfg.Stats, os.Stderr)
		//
		var (
			stats = util.NewPerfStats()
			stmts = readScriptFile(args[0])
			reg   = prometheus.NewRegistry()
		)
		//
		stats.Log("Reading script file")
		//
		results, err := runScript(cmd.Context(), stmts, cfg, reg)
		//
		if cfg.Stats {
			stats.Log("Evaluating script")
			reportMetrics(os.Stderr, reg)
		}
		//
		if err != nil {
			log.Error(err)
			os.Exit(2)
		}
		//
		printResults(os.Stdout, results, cfg.Lisp)
	},
}

// Evaluate every statement of a script, returning their results in order.
// Evaluation stops at the first failing statement.
func runScript(ctx context.Context, stmts []*script.Statement, cfg config.Config,
	reg prometheus.Registerer) ([]expr.Expression, error) {
	var (
		coordinator = coeff.NewCoordinator(
			construct.Generator(constructOptions(cfg)),
			coeff.WithWorkers(cfg.Workers),
			coeff.WithLogger(log.StandardLogger()),
			coeff.WithMetrics(coeff.NewMetrics(reg)))
		equations = make([]*coeff.Equation, len(stmts))
		results   = make([]expr.Expression, len(stmts))
	)
	//
	if ctx == nil {
		ctx = context.Background()
	}
	//
	for i, s := range stmts {
		equations[i] = s.Register(coordinator)
	}
	//
	coordinator.StartAll()
	//
	group, gctx := errgroup.WithContext(ctx)
	//
	for i, eq := range equations {
		group.Go(func() error {
			val, err := eq.Wait(gctx)
			if err != nil {
				return fmt.Errorf("line %d: %w", stmts[i].Line, err)
			}
			//
			results[i] = val
			//
			return nil
		})
	}
	//
	if err := group.Wait(); err != nil {
		return nil, err
	}
	//
	return results, nil
}

func constructOptions(cfg config.Config) construct.Options {
	opts := cfg.ConstructOptions()
	opts.Basis.Logger = log.StandardLogger()
	//
	return opts
}

// Print results, one per line, either rendered or as S-expressions.
func printResults(out io.Writer, results []expr.Expression, lisp bool) {
	for _, r := range results {
		if lisp {
			fmt.Fprintln(out, r.Lisp().String())
		} else {
			fmt.Fprintln(out, r.String())
		}
	}
}

// Write the gathered metrics in the Prometheus text format.
func reportMetrics(out io.Writer, gatherer prometheus.Gatherer) {
	families, err := gatherer.Gather()
	if err != nil {
		log.Error(err)
		return
	}
	//
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(out, mf); err != nil {
			log.Error(err)
			return
		}
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Uint("workers", 0, "number of worker goroutines (0 means one per CPU)")
	runCmd.Flags().Uint("dimension", 3, "spatial dimension over which indices range")
	runCmd.Flags().Bool("lisp", false, "print results as S-expressions")
	runCmd.Flags().Bool("stats", false, "report timing, memory and coordinator metrics")
	runCmd.Flags().Bool("no-precheck", false, "disable the modular rank precheck in basis selection")
}
