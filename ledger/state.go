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

package ledger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/blinklabs-io/academia/address"
	"github.com/blinklabs-io/academia/database"
	"github.com/blinklabs-io/academia/database/models"
	"github.com/blinklabs-io/academia/database/types"
	"github.com/blinklabs-io/academia/event"
	"github.com/blinklabs-io/academia/token"
)

const tracerName = "github.com/blinklabs-io/academia/ledger"

type LedgerConfig struct {
	Database     *database.Database
	EventBus     *event.EventBus
	Logger       *slog.Logger
	PromRegistry prometheus.Registerer
	// Params defaults to DefaultParams() when left empty
	Params Params
	// Now defaults to time.Now
	Now func() time.Time
}

// Ledger applies operations to the academic records. Every operation runs
// in its own read-write transaction and either applies in full or not at all
type Ledger struct {
	config  LedgerConfig
	db      *database.Database
	tokens  *token.Program
	tracer  trace.Tracer
	metrics ledgerMetrics
}

func NewLedger(cfg LedgerConfig) (*Ledger, error) {
	if cfg.Database == nil {
		return nil, errors.New("ledger: no database configured")
	}
	if cfg.Logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		cfg.Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if cfg.Params == (Params{}) {
		cfg.Params = DefaultParams()
	}
	if err := cfg.Params.validate(); err != nil {
		return nil, err
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	l := &Ledger{
		config: cfg,
		db:     cfg.Database,
		tokens: token.New(cfg.Database),
		tracer: otel.Tracer(tracerName),
	}
	l.metrics.init(cfg.PromRegistry)
	return l, nil
}

func (l *Ledger) Params() Params {
	return l.config.Params
}

// operation carries the state of one ledger operation through its
// transaction
type operation struct {
	txn    *database.Txn
	name   string
	status string
	target address.Address
	signer address.Identity
}

// execute runs fn inside a read-write transaction, records the outcome in
// the operation journal and commits. Events queued with publish are only
// delivered once the commit succeeded
func (l *Ledger) execute(
	ctx context.Context,
	name string,
	signer address.Identity,
	fn func(*operation) error,
) (string, error) {
	_, span := l.tracer.Start(
		ctx,
		"ledger."+name,
		trace.WithAttributes(
			attribute.String("ledger.operation", name),
			attribute.String("ledger.signer", signer.String()),
		),
	)
	defer span.End()
	start := time.Now()
	if err := ctx.Err(); err != nil {
		l.metrics.observeOperation(name, err, time.Since(start))
		return "", err
	}
	op := &operation{name: name, signer: signer}
	err := l.db.Transaction(true).Do(func(txn *database.Txn) error {
		op.txn = txn
		if err := fn(op); err != nil {
			return err
		}
		return l.db.AddOperation(
			&models.Operation{
				OperationID: uuid.NewString(),
				Name:        name,
				Signer:      signer.String(),
				Status:      op.status,
				Target:      op.target.String(),
			},
			txn,
		)
	})
	if err != nil && errors.Is(err, types.ErrTxnConflict) {
		l.metrics.staleRecordsTotal.Inc()
		err = fmt.Errorf("%s: %w: %w", name, ErrStaleRecord, err)
	}
	l.metrics.observeOperation(name, err, time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		l.config.Logger.Debug(
			"operation failed",
			"component", "ledger",
			"operation", name,
			"signer", signer.String(),
			"error", err,
		)
		return "", err
	}
	span.SetAttributes(attribute.String("ledger.status", op.status))
	l.config.Logger.Info(
		"operation applied",
		"component", "ledger",
		"operation", name,
		"signer", signer.String(),
		"target", op.target.String(),
		"status", op.status,
	)
	return op.status, nil
}

// publish queues an event for delivery after the operation commits. A slow
// subscriber never holds up the operation; a full queue drops the event
func (l *Ledger) publish(op *operation, evtType event.EventType, data any) {
	if l.config.EventBus == nil {
		return
	}
	op.txn.OnCommit(func() {
		l.config.EventBus.PublishAsync(evtType, event.NewEvent(evtType, data))
	})
}

func (l *Ledger) now() time.Time {
	return l.config.Now()
}

// loadRecord decodes the record at addr, mapping a missing record to
// ErrNotFound
func (l *Ledger) loadRecord(
	addr address.Address,
	dest any,
	txn *database.Txn,
	what string,
) error {
	if err := l.db.GetRecord(addr, dest, txn); err != nil {
		if errors.Is(err, database.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s %s", ErrNotFound, what, addr)
		}
		return err
	}
	return nil
}

// createRecord stores value at addr, failing with ErrAlreadyInitialized if
// the address is occupied
func (l *Ledger) createRecord(
	addr address.Address,
	value any,
	txn *database.Txn,
	what string,
) error {
	exists, err := l.db.RecordExists(addr, txn)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s %s", ErrAlreadyInitialized, what, addr)
	}
	return l.db.PutRecord(addr, value, txn)
}

func isNotFound(err error) bool {
	return errors.Is(err, database.ErrRecordNotFound)
}
