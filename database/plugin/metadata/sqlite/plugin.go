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
	"sync"
	"time"

	"github.com/blinklabs-io/academia/database/plugin"
)

var (
	cmdlineOptions struct {
		synchronous    string
		vacuumInterval string
		busyTimeoutMs  int
		cacheSizeKB    int
	}
	cmdlineOptionsMutex sync.RWMutex
)

func init() {
	cmdlineOptionsMutex.Lock()
	defer cmdlineOptionsMutex.Unlock()
	cmdlineOptions.cacheSizeKB = DefaultCacheSizeKB
	cmdlineOptions.busyTimeoutMs = int(DefaultBusyTimeout.Milliseconds())
	cmdlineOptions.synchronous = DefaultSynchronous
	cmdlineOptions.vacuumInterval = DefaultVacuumInterval.String()
	plugin.Register(
		plugin.PluginEntry{
			Type:               plugin.PluginTypeMetadata,
			Name:               "sqlite",
			Description:        "SQLite relational database",
			NewFromOptionsFunc: NewFromCmdlineOptions,
			Options: []plugin.PluginOption{
				{
					Name:         "cache-size",
					Type:         plugin.PluginOptionTypeInt,
					Description:  "page cache size in KiB",
					DefaultValue: DefaultCacheSizeKB,
					Dest:         &(cmdlineOptions.cacheSizeKB),
				},
				{
					Name:         "busy-timeout",
					Type:         plugin.PluginOptionTypeInt,
					Description:  "milliseconds to wait on a locked database",
					DefaultValue: int(DefaultBusyTimeout.Milliseconds()),
					Dest:         &(cmdlineOptions.busyTimeoutMs),
				},
				{
					Name:         "synchronous",
					Type:         plugin.PluginOptionTypeString,
					Description:  "synchronous pragma (OFF, NORMAL, FULL, EXTRA)",
					DefaultValue: DefaultSynchronous,
					Dest:         &(cmdlineOptions.synchronous),
				},
				{
					Name:         "vacuum-interval",
					Type:         plugin.PluginOptionTypeString,
					Description:  "time between VACUUM runs, e.g. 24h",
					DefaultValue: DefaultVacuumInterval.String(),
					Dest:         &(cmdlineOptions.vacuumInterval),
				},
			},
		},
	)
}

func NewFromCmdlineOptions(startOpts plugin.StartOptions) plugin.Plugin {
	cmdlineOptionsMutex.RLock()
	opts := []SqliteOptionFunc{
		WithDataDir(startOpts.DataDir),
		WithLogger(startOpts.Logger),
		WithPromRegistry(startOpts.PromRegistry),
		WithCacheSizeKB(cmdlineOptions.cacheSizeKB),
		WithBusyTimeout(time.Duration(cmdlineOptions.busyTimeoutMs) * time.Millisecond),
		WithSynchronous(cmdlineOptions.synchronous),
	}
	vacuumInterval := cmdlineOptions.vacuumInterval
	cmdlineOptionsMutex.RUnlock()
	if vacuumInterval != "" {
		interval, err := time.ParseDuration(vacuumInterval)
		if err != nil {
			// Return a plugin that defers the error to Start()
			return plugin.NewErrorPlugin(err)
		}
		opts = append(opts, WithVacuumInterval(interval))
	}
	p, err := NewWithOptions(opts...)
	if err != nil {
		return plugin.NewErrorPlugin(err)
	}
	return p
}
