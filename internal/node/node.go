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

package node

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/blinklabs-io/academia"
	"github.com/blinklabs-io/academia/internal/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// RunFunc is the work done against a started engine
type RunFunc func(ctx context.Context, engine *academia.Engine) error

// Run starts an engine from cfg, hands it to fn and shuts it down again.
// SIGINT and SIGTERM cancel the context passed to fn
func Run(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	fn RunFunc,
) error {
	logger.Debug(fmt.Sprintf("config: %+v", cfg), "component", "node")
	shutdownTimeout, err := cfg.ShutdownTimeoutDuration()
	if err != nil {
		return err
	}
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	engine, err := academia.New(
		academia.NewConfig(
			academia.WithLogger(logger),
			academia.WithDatabasePath(cfg.DatabasePath),
			academia.WithBlobPlugin(cfg.BlobPlugin),
			academia.WithMetadataPlugin(cfg.MetadataPlugin),
			academia.WithParams(cfg.Ledger),
			academia.WithPrometheusRegistry(registry),
			academia.WithReviewNotices(cfg.ReviewNotices),
			academia.WithShutdownTimeout(shutdownTimeout),
			academia.WithTracing(cfg.Tracing),
			academia.WithTracingStdout(cfg.TracingStdout),
		),
	)
	if err != nil {
		return err
	}
	// Wait for interrupt/termination signal
	signalCtx, signalCtxStop := signal.NotifyContext(
		ctx,
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer signalCtxStop()
	if err := engine.Start(signalCtx); err != nil {
		return err
	}
	runErr := fn(signalCtx, engine)
	if stopErr := engine.Stop(); stopErr != nil {
		runErr = errors.Join(runErr, fmt.Errorf("engine shutdown: %w", stopErr))
	}
	if cfg.MetricsTextfile != "" {
		if err := prometheus.WriteToTextfile(cfg.MetricsTextfile, registry); err != nil {
			runErr = errors.Join(runErr, fmt.Errorf("failed to write metrics: %w", err))
		}
	}
	return runErr
}
