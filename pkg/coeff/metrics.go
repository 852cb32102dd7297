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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records the activity of a coordinator.
type Metrics struct {
	// Requests counts lookups of coefficients, whether or not they were
	// already known.
	Requests prometheus.Counter
	// Started counts computations dispatched to the worker pool.
	Started prometheus.Counter
	// Failures counts computations which finished with an error.
	Failures prometheus.Counter
	// Duration measures how long each computation took.
	Duration prometheus.Histogram
}

// NewMetrics constructs the coordinator metrics, registering them with the
// given registry.  When the registry is nil, the metrics are not registered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	//
	return &Metrics{
		Requests: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "closure",
			Subsystem: "coefficients",
			Name:      "requests_total",
			Help:      "Total coefficient lookups",
		}),
		Started: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "closure",
			Subsystem: "coefficients",
			Name:      "computations_total",
			Help:      "Total coefficient computations started",
		}),
		Failures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "closure",
			Subsystem: "coefficients",
			Name:      "failures_total",
			Help:      "Total coefficient computations which failed",
		}),
		Duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "closure",
			Subsystem: "coefficients",
			Name:      "duration_seconds",
			Help:      "Coefficient computation time in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
	}
}
