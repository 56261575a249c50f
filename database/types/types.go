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

package types

import (
	"errors"
)

var (
	// ErrBlobKeyNotFound is returned by Get when a key is missing. The
	// database layer maps it to its own not-found error
	ErrBlobKeyNotFound = errors.New("blob key not found")
	// ErrTxnWrongType is returned when a store is handed a transaction it
	// did not create
	ErrTxnWrongType = errors.New("invalid transaction type")
	ErrNilTxn       = errors.New("nil transaction")
	// ErrNoStoreAvailable is returned when committing a read-write
	// transaction with neither store attached
	ErrNoStoreAvailable     = errors.New("no store available")
	ErrBlobStoreUnavailable = errors.New("blob store unavailable")
	// ErrTxnConflict is returned at commit when a key read by the
	// transaction, present or not, was written by another transaction that
	// committed first. Ledger operations surface it as a stale record
	ErrTxnConflict = errors.New("transaction conflict")
	ErrTxnReadOnly = errors.New("read-only transaction")
)

// BlobItem is a key/value pair yielded by a BlobIterator
type BlobItem interface {
	Key() []byte
	ValueCopy(dst []byte) ([]byte, error)
}

// BlobIterator walks blob keys in order. Vote receipts are counted and
// removed through it by proposal prefix. Items are only valid while the
// creating transaction is open
type BlobIterator interface {
	Rewind()
	Seek(prefix []byte)
	Valid() bool
	ValidForPrefix(prefix []byte) bool
	Next()
	Item() BlobItem
	Close()
	Err() error
}

// BlobIteratorOptions configures blob iterator creation
type BlobIteratorOptions struct {
	Prefix  []byte
	Reverse bool
	// KeysOnly skips value prefetching
	KeysOnly bool
}

// Txn is the handle a store returns for one transaction. database.Txn pairs
// one from each store
type Txn interface {
	Commit() error
	Rollback() error
}
