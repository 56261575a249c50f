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

package postgres

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blinklabs-io/academia/database/plugin"
)

func TestOptions(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := prometheus.NewRegistry()
	m, err := NewWithOptions(
		WithHost("db.local"),
		WithPort(6543),
		WithUser("registrar"),
		WithPassword("secret"),
		WithDatabase("faculty"),
		WithSSLMode("require"),
		WithTimeZone("Europe/Madrid"),
		WithSchema("ledger"),
		WithApplicationName("academia-test"),
		WithMaxOpenConns(8),
		WithMaxIdleConns(2),
		WithConnMaxLifetime(10*time.Minute),
		WithLogger(logger),
		WithPromRegistry(reg),
	)
	require.NoError(t, err)
	assert.Equal(t, connectionConfig{
		host:            "db.local",
		port:            6543,
		user:            "registrar",
		password:        "secret",
		database:        "faculty",
		sslMode:         "require",
		timeZone:        "Europe/Madrid",
		schema:          "ledger",
		applicationName: "academia-test",
	}, m.conn)
	assert.Equal(t, poolConfig{
		maxOpenConns:    8,
		maxIdleConns:    2,
		connMaxLifetime: 10 * time.Minute,
	}, m.pool)
	assert.Same(t, logger, m.logger)
	assert.Equal(t, prometheus.Registerer(reg), m.promRegistry)
}

func TestDefaults(t *testing.T) {
	m, err := NewWithOptions(WithMaxIdleConns(50))
	require.NoError(t, err)
	assert.Equal(t, "localhost", m.conn.host)
	assert.Equal(t, uint(5432), m.conn.port)
	assert.Equal(t, "academia", m.conn.database)
	assert.Equal(t, defaultMaxOpenConns, m.pool.maxOpenConns)
	// Idle connections never exceed the pool size
	assert.Equal(t, defaultMaxOpenConns, m.pool.maxIdleConns)
	assert.Equal(t, time.Hour, m.pool.connMaxLifetime)
	assert.NotNil(t, m.logger)
}

func TestConnectionString(t *testing.T) {
	testDefs := []struct {
		name     string
		opts     []PostgresOptionFunc
		expected string
	}{
		{
			name:     "defaults",
			opts:     []PostgresOptionFunc{WithPassword("secret")},
			expected: "host=localhost user=postgres password=secret dbname=academia port=5432 sslmode=disable TimeZone=UTC application_name=academia",
		},
		{
			name:     "schema",
			opts:     []PostgresOptionFunc{WithPassword("secret"), WithSchema("ledger")},
			expected: "host=localhost user=postgres password=secret dbname=academia port=5432 sslmode=disable TimeZone=UTC application_name=academia search_path=ledger",
		},
		{
			name:     "dsn wins",
			opts:     []PostgresOptionFunc{WithHost("ignored"), WithDSN("  host=db dbname=academia ")},
			expected: "host=db dbname=academia",
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			m, err := NewWithOptions(testDef.opts...)
			require.NoError(t, err)
			assert.Equal(t, testDef.expected, m.connectionString())
		})
	}
}

func TestCmdlineOptions(t *testing.T) {
	entry, ok := plugin.GetPluginEntry(plugin.PluginTypeMetadata, "postgres")
	require.True(t, ok)
	var names []string
	for _, opt := range entry.Options {
		names = append(names, opt.Name)
	}
	assert.Subset(t, names, []string{"schema", "application-name", "max-open-conns", "conn-max-lifetime"})

	require.NoError(t, plugin.SetPluginOption(plugin.PluginTypeMetadata, "postgres", "conn-max-lifetime", "bogus"))
	defer func() {
		require.NoError(t, plugin.SetPluginOption(
			plugin.PluginTypeMetadata,
			"postgres",
			"conn-max-lifetime",
			defaultConnMaxLifetime.String(),
		))
	}()
	p := NewFromCmdlineOptions(plugin.StartOptions{})
	require.Error(t, p.Start())

	require.NoError(t, plugin.SetPluginOption(plugin.PluginTypeMetadata, "postgres", "schema", "ledger"))
	defer func() {
		require.NoError(t, plugin.SetPluginOption(plugin.PluginTypeMetadata, "postgres", "schema", ""))
	}()
	require.NoError(t, plugin.SetPluginOption(plugin.PluginTypeMetadata, "postgres", "conn-max-lifetime", "30m"))
	p = NewFromCmdlineOptions(plugin.StartOptions{})
	m, ok := p.(*MetadataStorePostgres)
	require.True(t, ok)
	assert.Equal(t, "ledger", m.conn.schema)
	assert.Equal(t, 30*time.Minute, m.pool.connMaxLifetime)
}
