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

	"github.com/blinklabs-io/academia/database/types"
)

// CommitTimestampError is returned when the record store is older than the
// journal. Records are committed first, so this means records were lost
type CommitTimestampError struct {
	MetadataTimestamp int64
	BlobTimestamp     int64
}

func (e CommitTimestampError) Error() string {
	return fmt.Sprintf(
		"commit timestamp mismatch: %d (metadata) != %d (blob)",
		e.MetadataTimestamp,
		e.BlobTimestamp,
	)
}

func (d *Database) blobCommitTimestamp() (int64, error) {
	ts, err := d.blob.GetCommitTimestamp()
	if err != nil {
		if errors.Is(err, types.ErrBlobKeyNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get blob timestamp from plugin: %w", err)
	}
	return ts, nil
}

// checkCommitTimestamp compares the last commit seen by both stores. A
// journal that missed the latest commit is brought forward, since the
// records it describes are already durable
func (d *Database) checkCommitTimestamp() error {
	metadataTs, err := d.metadata.GetCommitTimestamp()
	if err != nil {
		return fmt.Errorf("failed to get metadata timestamp from plugin: %w", err)
	}
	// Fresh metadata store
	if metadataTs <= 0 {
		return nil
	}
	blobTs, err := d.blobCommitTimestamp()
	if err != nil {
		return err
	}
	switch {
	case blobTs == metadataTs:
		return nil
	case blobTs > metadataTs:
		d.logger.Warn(
			"metadata store missed the last commit, journal rows of that commit are lost",
			"component", "database",
			"metadata_timestamp", metadataTs,
			"blob_timestamp", blobTs,
		)
		txn := d.metadata.Transaction()
		if err := d.metadata.SetCommitTimestamp(blobTs, txn); err != nil {
			_ = txn.Rollback()
			return err
		}
		return txn.Commit()
	default:
		return CommitTimestampError{
			MetadataTimestamp: metadataTs,
			BlobTimestamp:     blobTs,
		}
	}
}

func (d *Database) updateCommitTimestamp(txn *Txn, timestamp int64) error {
	if err := d.metadata.SetCommitTimestamp(timestamp, txn.Metadata()); err != nil {
		return err
	}
	return d.blob.SetCommitTimestamp(timestamp, txn.Blob())
}
