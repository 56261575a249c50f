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

package database

import (
	"errors"
	"fmt"

	"github.com/blinklabs-io/academia/address"
	"github.com/blinklabs-io/academia/database/models"
	"github.com/blinklabs-io/academia/database/types"
	"github.com/blinklabs-io/gouroboros/cbor"
)

// ErrRecordNotFound is returned when no record is stored at an address
var ErrRecordNotFound = errors.New("record not found")

// readTxn returns txn, or a new read-only blob transaction and a function
// that releases it
func (d *Database) readTxn(txn *Txn) (*Txn, func()) {
	if txn != nil {
		return txn, func() {}
	}
	tmpTxn := NewBlobOnlyTxn(d, false)
	return tmpTxn, tmpTxn.Release
}

func (d *Database) writeTxn(txn *Txn) (types.Txn, error) {
	if txn == nil {
		return nil, types.ErrNilTxn
	}
	if !txn.ReadWrite() {
		return nil, types.ErrTxnReadOnly
	}
	if txn.Blob() == nil {
		return nil, types.ErrBlobStoreUnavailable
	}
	return txn.Blob(), nil
}

// GetRecord decodes the record stored at addr into dest
func (d *Database) GetRecord(
	addr address.Address,
	dest any,
	txn *Txn,
) error {
	txn, release := d.readTxn(txn)
	defer release()
	data, err := d.blob.Get(
		txn.Blob(),
		types.RecordBlobKey(addr.Bytes()),
	)
	if err != nil {
		if errors.Is(err, types.ErrBlobKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrRecordNotFound, addr)
		}
		return err
	}
	if _, err := cbor.Decode(data, dest); err != nil {
		return fmt.Errorf("decode record %s: %w", addr, err)
	}
	return nil
}

// RecordExists reports whether a record is stored at addr. Inside a
// read-write transaction the lookup counts as a read, so a concurrent
// creation of the same record makes the commit fail
func (d *Database) RecordExists(addr address.Address, txn *Txn) (bool, error) {
	txn, release := d.readTxn(txn)
	defer release()
	_, err := d.blob.Get(
		txn.Blob(),
		types.RecordBlobKey(addr.Bytes()),
	)
	if err != nil {
		if errors.Is(err, types.ErrBlobKeyNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// PutRecord encodes value and stores it at addr
func (d *Database) PutRecord(
	addr address.Address,
	value any,
	txn *Txn,
) error {
	blobTxn, err := d.writeTxn(txn)
	if err != nil {
		return err
	}
	data, err := cbor.Encode(value)
	if err != nil {
		return fmt.Errorf("encode record %s: %w", addr, err)
	}
	return d.blob.Set(blobTxn, types.RecordBlobKey(addr.Bytes()), data)
}

// DeleteRecord removes the record stored at addr
func (d *Database) DeleteRecord(addr address.Address, txn *Txn) error {
	blobTxn, err := d.writeTxn(txn)
	if err != nil {
		return err
	}
	return d.blob.Delete(blobTxn, types.RecordBlobKey(addr.Bytes()))
}

// GetVoteReceipt returns the receipt of a voter on a proposal
func (d *Database) GetVoteReceipt(
	proposal address.Address,
	voter address.Identity,
	txn *Txn,
) (*models.VoteReceipt, error) {
	txn, release := d.readTxn(txn)
	defer release()
	data, err := d.blob.Get(
		txn.Blob(),
		types.VoteReceiptBlobKey(proposal.Bytes(), voter.Bytes()),
	)
	if err != nil {
		if errors.Is(err, types.ErrBlobKeyNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	ret := &models.VoteReceipt{}
	if _, err := cbor.Decode(data, ret); err != nil {
		return nil, fmt.Errorf("decode vote receipt: %w", err)
	}
	return ret, nil
}

// SetVoteReceipt stores the receipt of a voter on a proposal
func (d *Database) SetVoteReceipt(
	proposal address.Address,
	receipt *models.VoteReceipt,
	txn *Txn,
) error {
	blobTxn, err := d.writeTxn(txn)
	if err != nil {
		return err
	}
	data, err := cbor.Encode(receipt)
	if err != nil {
		return fmt.Errorf("encode vote receipt: %w", err)
	}
	return d.blob.Set(
		blobTxn,
		types.VoteReceiptBlobKey(proposal.Bytes(), receipt.Voter.Bytes()),
		data,
	)
}

// DeleteVoteReceipts removes every receipt recorded against a proposal and
// returns how many were removed
func (d *Database) DeleteVoteReceipts(
	proposal address.Address,
	txn *Txn,
) (int, error) {
	blobTxn, err := d.writeTxn(txn)
	if err != nil {
		return 0, err
	}
	prefix := types.VoteReceiptBlobKeyPrefixFor(proposal.Bytes())
	iter := d.blob.NewIterator(
		blobTxn,
		types.BlobIteratorOptions{Prefix: prefix, KeysOnly: true},
	)
	var keys [][]byte
	for iter.Seek(prefix); iter.ValidForPrefix(prefix); iter.Next() {
		keys = append(keys, iter.Item().Key())
	}
	iterErr := iter.Err()
	iter.Close()
	if iterErr != nil {
		return 0, iterErr
	}
	for _, key := range keys {
		if err := d.blob.Delete(blobTxn, key); err != nil {
			return 0, err
		}
	}
	return len(keys), nil
}

// CountVoteReceipts returns the number of receipts recorded against a proposal
func (d *Database) CountVoteReceipts(
	proposal address.Address,
	txn *Txn,
) (int, error) {
	txn, release := d.readTxn(txn)
	defer release()
	prefix := types.VoteReceiptBlobKeyPrefixFor(proposal.Bytes())
	iter := d.blob.NewIterator(
		txn.Blob(),
		types.BlobIteratorOptions{Prefix: prefix, KeysOnly: true},
	)
	defer iter.Close()
	count := 0
	for iter.Seek(prefix); iter.ValidForPrefix(prefix); iter.Next() {
		count++
	}
	return count, iter.Err()
}
