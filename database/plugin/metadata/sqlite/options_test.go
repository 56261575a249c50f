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

package sqlite

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/blinklabs-io/academia/database/plugin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsApply(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := prometheus.NewRegistry()
	m, err := NewWithOptions(
		WithDataDir("/tmp/test"),
		WithLogger(logger),
		WithPromRegistry(reg),
		WithCacheSizeKB(2048),
		WithVacuumInterval(time.Hour),
		WithBusyTimeout(250*time.Millisecond),
		WithSynchronous("normal"),
	)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/test", m.dataDir)
	assert.Same(t, logger, m.logger)
	assert.Equal(t, prometheus.Registerer(reg), m.promRegistry)
	assert.Equal(t, 2048, m.cacheSizeKB)
	assert.Equal(t, time.Hour, m.vacuumInterval)
	assert.Equal(t, 250*time.Millisecond, m.busyTimeout)
	assert.Equal(t, "NORMAL", m.synchronous)
}

func TestNewWithOptionsDefaults(t *testing.T) {
	m, err := NewWithOptions()
	require.NoError(t, err)
	assert.Equal(t, DefaultCacheSizeKB, m.cacheSizeKB)
	assert.Equal(t, DefaultVacuumInterval, m.vacuumInterval)
	assert.Equal(t, DefaultBusyTimeout, m.busyTimeout)
	assert.Equal(t, DefaultSynchronous, m.synchronous)
	assert.NotNil(t, m.logger)
}

func TestNewWithOptionsInvalid(t *testing.T) {
	testDefs := []struct {
		name string
		opt  SqliteOptionFunc
	}{
		{
			name: "synchronous",
			opt:  WithSynchronous("sometimes"),
		},
		{
			name: "cache size",
			opt:  WithCacheSizeKB(0),
		},
		{
			name: "vacuum interval",
			opt:  WithVacuumInterval(0),
		},
		{
			name: "busy timeout",
			opt:  WithBusyTimeout(-time.Second),
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			_, err := NewWithOptions(testDef.opt)
			assert.Error(t, err)
		})
	}
}

func TestDsnPragmas(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "nested")
	m, err := NewWithOptions(WithDataDir(dataDir))
	require.NoError(t, err)
	dsn, err := m.dsn()
	require.NoError(t, err)
	assert.DirExists(t, dataDir)
	assert.Contains(t, dsn, filepath.Join(dataDir, "metadata.sqlite"))
	assert.Contains(t, dsn, "journal_mode(WAL)")
	assert.Contains(t, dsn, "synchronous(FULL)")
	assert.Contains(t, dsn, "cache_size(-16384)")
	assert.Contains(t, dsn, "busy_timeout(5000)")
}

func TestInMemoryDsnIsUnique(t *testing.T) {
	m, err := NewWithOptions()
	require.NoError(t, err)
	first, err := m.dsn()
	require.NoError(t, err)
	second, err := m.dsn()
	require.NoError(t, err)
	assert.Contains(t, first, "mode=memory")
	assert.NotEqual(t, first, second)
}

func TestCmdlineOptions(t *testing.T) {
	cmdlineOptionsMutex.RLock()
	saved := cmdlineOptions
	cmdlineOptionsMutex.RUnlock()
	t.Cleanup(func() {
		cmdlineOptionsMutex.Lock()
		cmdlineOptions = saved
		cmdlineOptionsMutex.Unlock()
	})

	cmdlineOptionsMutex.Lock()
	cmdlineOptions.busyTimeoutMs = 1500
	cmdlineOptions.synchronous = "extra"
	cmdlineOptions.vacuumInterval = "90m"
	cmdlineOptionsMutex.Unlock()
	p := NewFromCmdlineOptions(plugin.StartOptions{})
	m, ok := p.(*MetadataStoreSqlite)
	require.True(t, ok)
	assert.Equal(t, 1500*time.Millisecond, m.busyTimeout)
	assert.Equal(t, "EXTRA", m.synchronous)
	assert.Equal(t, 90*time.Minute, m.vacuumInterval)

	cmdlineOptionsMutex.Lock()
	cmdlineOptions.vacuumInterval = "daily"
	cmdlineOptionsMutex.Unlock()
	p = NewFromCmdlineOptions(plugin.StartOptions{})
	_, ok = p.(*MetadataStoreSqlite)
	assert.False(t, ok)
	assert.Error(t, p.Start())
}
