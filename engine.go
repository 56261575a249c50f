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
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/blinklabs-io/academia/database"
	"github.com/blinklabs-io/academia/event"
	"github.com/blinklabs-io/academia/ledger"
)

// Engine owns the storage, event bus and ledger of an academia instance
type Engine struct {
	eventBus      *event.EventBus
	db            *database.Database
	ledger        *ledger.Ledger
	shutdownFuncs []func(context.Context) error
	config        Config
	mu            sync.Mutex
	started       bool
	stopped       bool
}

func New(cfg Config) (*Engine, error) {
	e := &Engine{
		config: cfg,
	}
	if err := e.configValidate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return e, nil
}

// Start opens the database and brings up the ledger. The engine can only be
// started once
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return errors.New("engine already started")
	}
	if err := e.start(ctx); err != nil {
		// Release whatever was opened before the failure
		_ = e.shutdown()
		return err
	}
	e.started = true
	return nil
}

func (e *Engine) start(ctx context.Context) error {
	// Configure tracing
	if e.config.tracing {
		if err := e.setupTracing(ctx); err != nil {
			return err
		}
	}
	e.eventBus = event.NewEventBus(e.config.promRegistry, e.config.logger)
	// Load database
	db, err := database.New(&database.Config{
		DataDir:        e.config.dataDir,
		BlobPlugin:     e.config.blobPlugin,
		MetadataPlugin: e.config.metadataPlugin,
		Logger:         e.config.logger,
		PromRegistry:   e.config.promRegistry,
	})
	if err != nil {
		var dbErr database.CommitTimestampError
		if errors.As(err, &dbErr) {
			e.config.logger.Error(
				"database stores are out of sync",
				"component", "engine",
				"error", err,
			)
		}
		if db != nil {
			_ = db.Close()
		}
		return fmt.Errorf("failed to open database: %w", err)
	}
	if db == nil {
		return errors.New("empty database returned")
	}
	e.db = db
	// Load ledger
	l, err := ledger.NewLedger(ledger.LedgerConfig{
		Database:     e.db,
		EventBus:     e.eventBus,
		Logger:       e.config.logger,
		PromRegistry: e.config.promRegistry,
		Params:       e.config.params,
		Now:          e.config.now,
	})
	if err != nil {
		return fmt.Errorf("failed to load ledger: %w", err)
	}
	e.ledger = l
	if e.config.reviewNotices {
		e.eventBus.SubscribeFunc(
			event.ReviewCreatedEventType,
			e.handleReviewCreatedEvent,
		)
	}
	e.config.logger.Info(
		"engine started",
		"component", "engine",
		"data_dir", e.config.dataDir,
		"blob_plugin", e.config.blobPlugin,
		"metadata_plugin", e.config.metadataPlugin,
	)
	return nil
}

func (e *Engine) handleReviewCreatedEvent(evt event.Event) {
	data, ok := evt.Data.(event.ReviewCreatedEvent)
	if !ok {
		return
	}
	e.config.logger.Info(
		"professor review requested",
		"component", "engine",
		"subject_code", data.SubjectCode,
		"proposal_id", data.ProposalID,
		"review_id", data.ReviewID,
	)
}

// Ledger returns the ledger of a started engine
func (e *Engine) Ledger() *ledger.Ledger {
	return e.ledger
}

// EventBus returns the event bus of a started engine
func (e *Engine) EventBus() *event.EventBus {
	return e.eventBus
}

func (e *Engine) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return nil
	}
	e.stopped = true
	return e.shutdown()
}

func (e *Engine) shutdown() error {
	// Create shutdown context with timeout (default 30s if not configured)
	shutdownTimeout := 30 * time.Second
	if e.config.shutdownTimeout > 0 {
		shutdownTimeout = e.config.shutdownTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var err error

	e.config.logger.Debug("starting graceful shutdown", "component", "engine")

	// Stop event delivery before the stores go away
	if e.eventBus != nil {
		e.eventBus.Close()
	}

	if e.db != nil {
		if closeErr := e.db.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("database close: %w", closeErr))
		}
		e.db = nil
	}

	// Call registered shutdown functions
	for _, fn := range e.shutdownFuncs {
		if fnErr := fn(ctx); fnErr != nil {
			err = errors.Join(err, fmt.Errorf("shutdown function: %w", fnErr))
		}
	}
	e.shutdownFuncs = nil

	e.config.logger.Debug("graceful shutdown complete", "component", "engine")
	return err
}
