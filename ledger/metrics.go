// Copyright 2025 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ledger

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type ledgerMetrics struct {
	operationsTotal   *prometheus.CounterVec
	operationLatency  *prometheus.HistogramVec
	votesTotal        *prometheus.CounterVec
	proposalsTotal    *prometheus.CounterVec
	creditsMinted     prometheus.Counter
	staleRecordsTotal prometheus.Counter
}

func (m *ledgerMetrics) init(promRegistry prometheus.Registerer) {
	// promauto.With(nil) creates unregistered collectors
	promautoFactory := promauto.With(promRegistry)
	m.operationsTotal = promautoFactory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "academia_ledger_operations_total",
			Help: "total ledger operations by operation and result",
		},
		[]string{"operation", "result"},
	)
	m.operationLatency = promautoFactory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "academia_ledger_operation_duration_seconds",
			Help:    "latency of ledger operations including commit",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms to ~4s
		},
		[]string{"operation"},
	)
	m.votesTotal = promautoFactory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "academia_ledger_votes_total",
			Help: "total votes cast on proposals",
		},
		[]string{"vote"},
	)
	m.proposalsTotal = promautoFactory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "academia_ledger_proposal_transitions_total",
			Help: "total proposal state transitions by target state",
		},
		[]string{"state"},
	)
	m.creditsMinted = promautoFactory.NewCounter(prometheus.CounterOpts{
		Name: "academia_ledger_credits_minted_total",
		Help: "total credit tokens minted to proposal authors",
	})
	m.staleRecordsTotal = promautoFactory.NewCounter(prometheus.CounterOpts{
		Name: "academia_ledger_stale_records_total",
		Help: "total operations rejected because of a concurrent update",
	})
}

func (m *ledgerMetrics) observeOperation(
	name string,
	err error,
	elapsed time.Duration,
) {
	m.operationsTotal.WithLabelValues(name, errorResult(err)).Inc()
	m.operationLatency.WithLabelValues(name).Observe(elapsed.Seconds())
}
