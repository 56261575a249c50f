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

package database_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/blinklabs-io/academia/address"
	"github.com/blinklabs-io/academia/database"
	"github.com/blinklabs-io/academia/database/models"
	"github.com/blinklabs-io/academia/database/plugin"
	"github.com/blinklabs-io/academia/database/types"
)

const flakyMetadataPlugin = "flaky-metadata"

var (
	flakyStoresMu sync.Mutex
	flakyStores   []*flakyMetadataStore
)

func init() {
	plugin.Register(plugin.PluginEntry{
		Type:        plugin.PluginTypeMetadata,
		Name:        flakyMetadataPlugin,
		Description: "in-memory metadata store whose commits can be made to fail",
		NewFromOptionsFunc: func(plugin.StartOptions) plugin.Plugin {
			store := &flakyMetadataStore{}
			flakyStoresMu.Lock()
			flakyStores = append(flakyStores, store)
			flakyStoresMu.Unlock()
			return store
		},
	})
}

// flakyMetadataStore keeps journal rows in memory
type flakyMetadataStore struct {
	mu         sync.Mutex
	operations []models.Operation
	timestamp  int64
	failCommit atomic.Bool
}

type flakyMetadataTxn struct {
	store      *flakyMetadataStore
	operations []models.Operation
	timestamp  int64
}

func (t *flakyMetadataTxn) Commit() error {
	if t.store.failCommit.Load() {
		return errors.New("metadata unavailable")
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	t.store.operations = append(t.store.operations, t.operations...)
	if t.timestamp > 0 {
		t.store.timestamp = t.timestamp
	}
	return nil
}

func (t *flakyMetadataTxn) Rollback() error {
	t.operations = nil
	return nil
}

func (s *flakyMetadataStore) Start() error {
	return nil
}

func (s *flakyMetadataStore) Stop() error {
	return nil
}

func (s *flakyMetadataStore) Close() error {
	return nil
}

func (s *flakyMetadataStore) DB() *gorm.DB {
	return nil
}

func (s *flakyMetadataStore) Transaction() types.Txn {
	return &flakyMetadataTxn{store: s}
}

func (s *flakyMetadataStore) GetCommitTimestamp() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timestamp, nil
}

func (s *flakyMetadataStore) SetCommitTimestamp(timestamp int64, txn types.Txn) error {
	txn.(*flakyMetadataTxn).timestamp = timestamp
	return nil
}

func (s *flakyMetadataStore) AddOperation(op *models.Operation, txn types.Txn) error {
	t := txn.(*flakyMetadataTxn)
	t.operations = append(t.operations, *op)
	return nil
}

func (s *flakyMetadataStore) GetOperations(int, types.Txn) ([]models.Operation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Operation(nil), s.operations...), nil
}

func (s *flakyMetadataStore) SetProposalIndex(*models.ProposalIndex, types.Txn) error {
	return nil
}

func (s *flakyMetadataStore) DeleteProposalIndex(uint32, uint32, types.Txn) error {
	return nil
}

func (s *flakyMetadataStore) GetProposalIndexes(string, types.Txn) ([]models.ProposalIndex, error) {
	return nil, nil
}

func (s *flakyMetadataStore) AddReviewEvent(*models.ReviewEvent, types.Txn) error {
	return nil
}

func (s *flakyMetadataStore) GetReviewEvents(uint32, types.Txn) ([]models.ReviewEvent, error) {
	return nil, nil
}

func newFlakyDatabase(t *testing.T) (*database.Database, *flakyMetadataStore) {
	t.Helper()
	db, err := database.New(&database.Config{MetadataPlugin: flakyMetadataPlugin})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	flakyStoresMu.Lock()
	defer flakyStoresMu.Unlock()
	return db, flakyStores[len(flakyStores)-1]
}

func TestMetadataFailureAfterBlobCommit(t *testing.T) {
	db, store := newFlakyDatabase(t)
	addr := address.Derive("faculty", address.Uint32(3))
	store.failCommit.Store(true)

	var hookRan bool
	err := db.Transaction(true).Do(func(txn *database.Txn) error {
		txn.OnCommit(func() { hookRan = true })
		if err := db.PutRecord(addr, &models.Faculty{ID: 3, Name: "Arts"}, txn); err != nil {
			return err
		}
		return db.AddOperation(&models.Operation{
			OperationID: "op-1",
			Name:        "createFaculty",
			Signer:      "00",
			Status:      "true",
		}, txn)
	})
	// The records are durable, so the transaction counts as committed
	require.NoError(t, err)
	assert.True(t, hookRan)
	var faculty models.Faculty
	require.NoError(t, db.GetRecord(addr, &faculty, nil))
	assert.Equal(t, "Arts", faculty.Name)
	ops, err := db.Operations(0)
	require.NoError(t, err)
	assert.Empty(t, ops)

	// The journal picks up again once the metadata store recovers
	store.failCommit.Store(false)
	require.NoError(t, db.Transaction(true).Do(func(txn *database.Txn) error {
		return db.AddOperation(&models.Operation{
			OperationID: "op-2",
			Name:        "createFaculty",
			Signer:      "00",
			Status:      "true",
		}, txn)
	}))
	ops, err = db.Operations(0)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, "op-2", ops[0].OperationID)
}
