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

package node_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blinklabs-io/academia"
	"github.com/blinklabs-io/academia/address"
	"github.com/blinklabs-io/academia/internal/config"
	"github.com/blinklabs-io/academia/internal/node"
	"github.com/blinklabs-io/academia/ledger"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		DatabasePath:    t.TempDir(),
		BlobPlugin:      config.DefaultBlobPlugin,
		MetadataPlugin:  config.DefaultMetadataPlugin,
		ShutdownTimeout: "5s",
		Ledger:          ledger.DefaultParams(),
		MetricsTextfile: filepath.Join(t.TempDir(), "academia.prom"),
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestRunWritesMetrics(t *testing.T) {
	cfg := testConfig(t)
	var signer address.Identity
	signer[0] = 1
	err := node.Run(
		context.Background(),
		cfg,
		discardLogger(),
		func(ctx context.Context, engine *academia.Engine) error {
			_, err := engine.Ledger().CreateIdGeneratorFor(
				ctx,
				signer,
				ledger.IdGeneratorParams{Namespace: "highRank"},
			)
			return err
		},
	)
	require.NoError(t, err)
	data, err := os.ReadFile(cfg.MetricsTextfile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "academia_ledger_operations_total")
}

func TestRunReturnsFuncError(t *testing.T) {
	cfg := testConfig(t)
	testErr := errors.New("boom")
	err := node.Run(
		context.Background(),
		cfg,
		discardLogger(),
		func(context.Context, *academia.Engine) error {
			return testErr
		},
	)
	require.ErrorIs(t, err, testErr)
}

func TestRunRejectsBadShutdownTimeout(t *testing.T) {
	cfg := testConfig(t)
	cfg.ShutdownTimeout = "never"
	called := false
	err := node.Run(
		context.Background(),
		cfg,
		discardLogger(),
		func(context.Context, *academia.Engine) error {
			called = true
			return nil
		},
	)
	require.Error(t, err)
	assert.False(t, called)
}
