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
	"strconv"
	"strings"
	"time"

	"github.com/blinklabs-io/academia/database/plugin/metadata/internal/gormstore"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	defaultHost            = "localhost"
	defaultPort            = 5432
	defaultUser            = "postgres"
	defaultDatabase        = "academia"
	defaultSSLMode         = "disable"
	defaultTimeZone        = "UTC"
	defaultApplicationName = "academia"
	defaultMaxOpenConns    = 20
	defaultMaxIdleConns    = 5
	defaultConnMaxLifetime = time.Hour
)

type connectionConfig struct {
	host            string
	port            uint
	user            string
	password        string
	database        string
	sslMode         string
	timeZone        string
	schema          string
	applicationName string
	dsn             string
}

type poolConfig struct {
	maxOpenConns    int
	maxIdleConns    int
	connMaxLifetime time.Duration
}

// MetadataStorePostgres keeps the operation journal, proposal index and
// review events in Postgres
type MetadataStorePostgres struct {
	*gormstore.Store
	promRegistry prometheus.Registerer
	logger       *slog.Logger
	conn         connectionConfig
	pool         poolConfig
}

func NewWithOptions(opts ...PostgresOptionFunc) (*MetadataStorePostgres, error) {
	db := &MetadataStorePostgres{}
	for _, opt := range opts {
		opt(db)
	}
	db.applyDefaults()
	if db.logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		db.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	// Connecting happens in Start()
	return db, nil
}

func (d *MetadataStorePostgres) applyDefaults() {
	setDefault := func(value *string, def string) {
		if *value == "" {
			*value = def
		}
	}
	setDefault(&d.conn.host, defaultHost)
	setDefault(&d.conn.user, defaultUser)
	setDefault(&d.conn.database, defaultDatabase)
	setDefault(&d.conn.sslMode, defaultSSLMode)
	setDefault(&d.conn.timeZone, defaultTimeZone)
	setDefault(&d.conn.applicationName, defaultApplicationName)
	if d.conn.port == 0 {
		d.conn.port = defaultPort
	}
	if d.pool.maxOpenConns <= 0 {
		d.pool.maxOpenConns = defaultMaxOpenConns
	}
	if d.pool.maxIdleConns <= 0 {
		d.pool.maxIdleConns = defaultMaxIdleConns
	}
	if d.pool.maxIdleConns > d.pool.maxOpenConns {
		d.pool.maxIdleConns = d.pool.maxOpenConns
	}
	if d.pool.connMaxLifetime <= 0 {
		d.pool.connMaxLifetime = defaultConnMaxLifetime
	}
}

func (d *MetadataStorePostgres) connectionString() string {
	if dsn := strings.TrimSpace(d.conn.dsn); dsn != "" {
		return dsn
	}
	parts := []string{
		"host=" + d.conn.host,
		"user=" + d.conn.user,
		"password=" + d.conn.password,
		"dbname=" + d.conn.database,
		"port=" + strconv.FormatUint(uint64(d.conn.port), 10),
		"sslmode=" + d.conn.sslMode,
		"TimeZone=" + d.conn.timeZone,
		"application_name=" + d.conn.applicationName,
	}
	if d.conn.schema != "" {
		parts = append(parts, "search_path="+d.conn.schema)
	}
	return strings.Join(parts, " ")
}

// Start implements the plugin.Plugin interface
func (d *MetadataStorePostgres) Start() error {
	metadataDb, err := gorm.Open(
		postgres.Open(d.connectionString()),
		&gorm.Config{
			Logger:                 gormlogger.Discard,
			SkipDefaultTransaction: true,
			PrepareStmt:            true,
		},
	)
	if err != nil {
		return err
	}
	sqlDB, err := metadataDb.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(d.pool.maxOpenConns)
	sqlDB.SetMaxIdleConns(d.pool.maxIdleConns)
	sqlDB.SetConnMaxLifetime(d.pool.connMaxLifetime)
	d.logger.Info(
		"connected to postgres metadata store",
		"component", "database",
		"host", d.conn.host,
		"port", d.conn.port,
		"database", d.conn.database,
		"schema", d.conn.schema,
	)

	store, err := gormstore.New(metadataDb, d.logger)
	if err != nil {
		return err
	}
	d.Store = store
	if err := d.Migrate(); err != nil {
		return err
	}
	if d.promRegistry != nil {
		d.promRegistry.MustRegister(
			collectors.NewDBStatsCollector(sqlDB, "metadata_postgres"),
		)
	}
	return nil
}

// Stop implements the plugin.Plugin interface
func (d *MetadataStorePostgres) Stop() error {
	return d.Close()
}

// Close closes the connection pool. It is a no-op if Start was never called
func (d *MetadataStorePostgres) Close() error {
	if d.Store == nil {
		return nil
	}
	return d.Store.Close()
}
