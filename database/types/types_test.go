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

package types_test

import (
	"bytes"
	"testing"

	"github.com/blinklabs-io/academia/database/types"
)

func TestVoteReceiptKeysSharePrefix(t *testing.T) {
	proposal := bytes.Repeat([]byte{0xaa}, 32)
	voterA := bytes.Repeat([]byte{0x01}, 32)
	voterB := bytes.Repeat([]byte{0x02}, 32)
	prefix := types.VoteReceiptBlobKeyPrefixFor(proposal)
	keyA := types.VoteReceiptBlobKey(proposal, voterA)
	keyB := types.VoteReceiptBlobKey(proposal, voterB)
	if !bytes.HasPrefix(keyA, prefix) || !bytes.HasPrefix(keyB, prefix) {
		t.Fatalf("vote receipt keys do not share the proposal prefix")
	}
	if bytes.Equal(keyA, keyB) {
		t.Fatalf("distinct voters produced the same key")
	}
	other := types.VoteReceiptBlobKeyPrefixFor(bytes.Repeat([]byte{0xbb}, 32))
	if bytes.HasPrefix(keyA, other) {
		t.Fatalf("vote receipt key matched another proposal's prefix")
	}
}

func TestRecordKeyDistinctFromReceipts(t *testing.T) {
	addr := bytes.Repeat([]byte{0xaa}, 32)
	if bytes.HasPrefix(
		types.RecordBlobKey(addr),
		[]byte(types.VoteReceiptBlobKeyPrefix),
	) {
		t.Fatalf("record key collides with vote receipt key space")
	}
}

func TestCommitTimestampKeyOutsideRecordSpace(t *testing.T) {
	key := []byte(types.CommitTimestampBlobKey)
	for _, prefix := range []string{types.RecordBlobKeyPrefix, types.VoteReceiptBlobKeyPrefix} {
		if bytes.HasPrefix(key, []byte(prefix)) {
			t.Fatalf("commit timestamp key shares prefix %q", prefix)
		}
	}
}
