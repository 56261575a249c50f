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
	"sync"
	"time"

	"github.com/blinklabs-io/academia/database/plugin"
)

var (
	cmdlineOptions struct {
		host            string
		port            uint64
		user            string
		password        string
		database        string
		sslMode         string
		timeZone        string
		schema          string
		applicationName string
		dsn             string
		maxOpenConns    int
		maxIdleConns    int
		connMaxLifetime string
	}
	cmdlineOptionsMutex sync.RWMutex
)

func stringOption(name, description, def string, dest *string) plugin.PluginOption {
	*dest = def
	return plugin.PluginOption{
		Name:         name,
		Type:         plugin.PluginOptionTypeString,
		Description:  description,
		DefaultValue: def,
		Dest:         dest,
	}
}

func intOption(name, description string, def int, dest *int) plugin.PluginOption {
	*dest = def
	return plugin.PluginOption{
		Name:         name,
		Type:         plugin.PluginOptionTypeInt,
		Description:  description,
		DefaultValue: def,
		Dest:         dest,
	}
}

func init() {
	cmdlineOptionsMutex.Lock()
	defer cmdlineOptionsMutex.Unlock()
	cmdlineOptions.port = defaultPort
	plugin.Register(
		plugin.PluginEntry{
			Type:               plugin.PluginTypeMetadata,
			Name:               "postgres",
			Description:        "Postgres relational database",
			NewFromOptionsFunc: NewFromCmdlineOptions,
			Options: []plugin.PluginOption{
				stringOption("host", "Postgres host", defaultHost, &cmdlineOptions.host),
				{
					Name:         "port",
					Type:         plugin.PluginOptionTypeUint,
					Description:  "Postgres port",
					DefaultValue: uint64(defaultPort),
					Dest:         &(cmdlineOptions.port),
				},
				stringOption("user", "Postgres user", defaultUser, &cmdlineOptions.user),
				// No default password, credentials must be supplied
				stringOption("password", "Postgres password (required)", "", &cmdlineOptions.password),
				stringOption("database", "Postgres database name", defaultDatabase, &cmdlineOptions.database),
				stringOption("ssl-mode", "Postgres sslmode", defaultSSLMode, &cmdlineOptions.sslMode),
				stringOption("timezone", "Postgres TimeZone", defaultTimeZone, &cmdlineOptions.timeZone),
				stringOption("schema", "schema holding the ledger tables (search_path)", "", &cmdlineOptions.schema),
				stringOption(
					"application-name",
					"application name reported to the server",
					defaultApplicationName,
					&cmdlineOptions.applicationName,
				),
				stringOption("dsn", "Full Postgres DSN (overrides other connection options when set)", "", &cmdlineOptions.dsn),
				intOption("max-open-conns", "connection pool size", defaultMaxOpenConns, &cmdlineOptions.maxOpenConns),
				intOption("max-idle-conns", "idle connections kept in the pool", defaultMaxIdleConns, &cmdlineOptions.maxIdleConns),
				stringOption(
					"conn-max-lifetime",
					"maximum connection lifetime, e.g. 30m",
					defaultConnMaxLifetime.String(),
					&cmdlineOptions.connMaxLifetime,
				),
			},
		},
	)
}

func NewFromCmdlineOptions(startOpts plugin.StartOptions) plugin.Plugin {
	cmdlineOptionsMutex.RLock()
	opts := []PostgresOptionFunc{
		WithHost(cmdlineOptions.host),
		WithPort(uint(cmdlineOptions.port)),
		WithUser(cmdlineOptions.user),
		WithPassword(cmdlineOptions.password),
		WithDatabase(cmdlineOptions.database),
		WithSSLMode(cmdlineOptions.sslMode),
		WithTimeZone(cmdlineOptions.timeZone),
		WithSchema(cmdlineOptions.schema),
		WithApplicationName(cmdlineOptions.applicationName),
		WithDSN(cmdlineOptions.dsn),
		WithMaxOpenConns(cmdlineOptions.maxOpenConns),
		WithMaxIdleConns(cmdlineOptions.maxIdleConns),
		WithLogger(startOpts.Logger),
		WithPromRegistry(startOpts.PromRegistry),
	}
	lifetime := cmdlineOptions.connMaxLifetime
	cmdlineOptionsMutex.RUnlock()

	if lifetime != "" {
		d, err := time.ParseDuration(lifetime)
		if err != nil {
			// Return a plugin that defers the error to Start()
			return plugin.NewErrorPlugin(err)
		}
		opts = append(opts, WithConnMaxLifetime(d))
	}
	p, err := NewWithOptions(opts...)
	if err != nil {
		return plugin.NewErrorPlugin(err)
	}
	return p
}
