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

package academia

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blinklabs-io/academia/database"
	"github.com/blinklabs-io/academia/ledger"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()
	assert.NotNil(t, cfg.logger)
	assert.Equal(t, database.DefaultBlobPlugin, cfg.blobPlugin)
	assert.Equal(t, database.DefaultMetadataPlugin, cfg.metadataPlugin)
	assert.Equal(t, ledger.DefaultParams(), cfg.params)
	assert.Empty(t, cfg.dataDir)
	assert.False(t, cfg.tracing)
}

func TestConfigOptions(t *testing.T) {
	params := ledger.DefaultParams()
	params.RewardAmount = 25
	cfg := NewConfig(
		WithDatabasePath("/tmp/academia"),
		WithBlobPlugin("badger"),
		WithMetadataPlugin("postgres"),
		WithParams(params),
		WithShutdownTimeout(5*time.Second),
		WithTracing(true),
		WithTracingStdout(true),
		WithReviewNotices(true),
	)
	assert.Equal(t, "/tmp/academia", cfg.dataDir)
	assert.Equal(t, "postgres", cfg.metadataPlugin)
	assert.Equal(t, uint64(25), cfg.params.RewardAmount)
	assert.Equal(t, 5*time.Second, cfg.shutdownTimeout)
	assert.True(t, cfg.tracing)
	assert.True(t, cfg.tracingStdout)
	assert.True(t, cfg.reviewNotices)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    []ConfigOptionFunc
		wantErr bool
	}{
		{name: "defaults"},
		{
			name:    "no blob plugin",
			opts:    []ConfigOptionFunc{WithBlobPlugin("")},
			wantErr: true,
		},
		{
			name:    "no metadata plugin",
			opts:    []ConfigOptionFunc{WithMetadataPlugin("")},
			wantErr: true,
		},
		{
			name:    "stdout tracing without tracing",
			opts:    []ConfigOptionFunc{WithTracingStdout(true)},
			wantErr: true,
		},
		{
			name: "stdout tracing",
			opts: []ConfigOptionFunc{
				WithTracing(true),
				WithTracingStdout(true),
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(NewConfig(tc.opts...))
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}
