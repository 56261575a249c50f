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

package badger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const badgerMetricNamePrefix = "database_blob_"

type blobMetrics struct {
	txnConflicts prometheus.Counter
	txnCommits   prometheus.Counter
}

func (d *BlobStoreBadger) registerBlobMetrics() {
	promautoFactory := promauto.With(d.promRegistry)
	d.metrics.txnCommits = promautoFactory.NewCounter(
		prometheus.CounterOpts{
			Name: badgerMetricNamePrefix + "txn_commits_total",
			Help: "Total number of committed blob transactions",
		},
	)
	d.metrics.txnConflicts = promautoFactory.NewCounter(
		prometheus.CounterOpts{
			Name: badgerMetricNamePrefix + "txn_conflicts_total",
			Help: "Total number of blob transactions rejected due to a write conflict",
		},
	)
	promautoFactory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: badgerMetricNamePrefix + "lsm_size_bytes",
			Help: "Size of the badger LSM tree",
		},
		func() float64 {
			lsm, _ := d.db.Size()
			return float64(lsm)
		},
	)
	promautoFactory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: badgerMetricNamePrefix + "vlog_size_bytes",
			Help: "Size of the badger value log",
		},
		func() float64 {
			_, vlog := d.db.Size()
			return float64(vlog)
		},
	)
}

func (d *BlobStoreBadger) recordCommit(err error) {
	if d.metrics.txnCommits == nil {
		return
	}
	if err != nil {
		d.metrics.txnConflicts.Inc()
		return
	}
	d.metrics.txnCommits.Inc()
}
