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
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type PostgresOptionFunc func(*MetadataStorePostgres)

func WithLogger(logger *slog.Logger) PostgresOptionFunc {
	return func(m *MetadataStorePostgres) {
		m.logger = logger
	}
}

// WithPromRegistry registers the connection pool collector on registry
func WithPromRegistry(
	registry prometheus.Registerer,
) PostgresOptionFunc {
	return func(m *MetadataStorePostgres) {
		m.promRegistry = registry
	}
}

func WithHost(host string) PostgresOptionFunc {
	return func(m *MetadataStorePostgres) {
		m.conn.host = host
	}
}

func WithPort(port uint) PostgresOptionFunc {
	return func(m *MetadataStorePostgres) {
		m.conn.port = port
	}
}

func WithUser(user string) PostgresOptionFunc {
	return func(m *MetadataStorePostgres) {
		m.conn.user = user
	}
}

func WithPassword(password string) PostgresOptionFunc {
	return func(m *MetadataStorePostgres) {
		m.conn.password = password
	}
}

func WithDatabase(database string) PostgresOptionFunc {
	return func(m *MetadataStorePostgres) {
		m.conn.database = database
	}
}

func WithSSLMode(sslMode string) PostgresOptionFunc {
	return func(m *MetadataStorePostgres) {
		m.conn.sslMode = sslMode
	}
}

func WithTimeZone(timeZone string) PostgresOptionFunc {
	return func(m *MetadataStorePostgres) {
		m.conn.timeZone = timeZone
	}
}

// WithSchema keeps the journal and index tables in their own schema, so one
// database can serve several ledgers
func WithSchema(schema string) PostgresOptionFunc {
	return func(m *MetadataStorePostgres) {
		m.conn.schema = schema
	}
}

// WithApplicationName sets the name reported in pg_stat_activity
func WithApplicationName(name string) PostgresOptionFunc {
	return func(m *MetadataStorePostgres) {
		m.conn.applicationName = name
	}
}

// WithDSN specifies a full connection string. It takes precedence over every
// other connection option
func WithDSN(dsn string) PostgresOptionFunc {
	return func(m *MetadataStorePostgres) {
		m.conn.dsn = dsn
	}
}

func WithMaxOpenConns(count int) PostgresOptionFunc {
	return func(m *MetadataStorePostgres) {
		m.pool.maxOpenConns = count
	}
}

func WithMaxIdleConns(count int) PostgresOptionFunc {
	return func(m *MetadataStorePostgres) {
		m.pool.maxIdleConns = count
	}
}

func WithConnMaxLifetime(lifetime time.Duration) PostgresOptionFunc {
	return func(m *MetadataStorePostgres) {
		m.pool.connMaxLifetime = lifetime
	}
}
