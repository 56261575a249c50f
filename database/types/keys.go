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
	"slices"
)

const (
	RecordBlobKeyPrefix      = "r"
	VoteReceiptBlobKeyPrefix = "v"

	// CommitTimestampBlobKey sits outside the record and receipt prefixes
	CommitTimestampBlobKey = "m:commit_timestamp"
)

// RecordBlobKey returns the blob key for a record stored at a derived address
func RecordBlobKey(addr []byte) []byte {
	return slices.Concat([]byte(RecordBlobKeyPrefix), addr)
}

// VoteReceiptBlobKeyPrefixFor returns the key prefix shared by every vote
// receipt recorded against a proposal
func VoteReceiptBlobKeyPrefixFor(proposalAddr []byte) []byte {
	return slices.Concat([]byte(VoteReceiptBlobKeyPrefix), proposalAddr)
}

// VoteReceiptBlobKey returns the blob key of a single voter's receipt
func VoteReceiptBlobKey(proposalAddr []byte, voter []byte) []byte {
	return slices.Concat(VoteReceiptBlobKeyPrefixFor(proposalAddr), voter)
}
