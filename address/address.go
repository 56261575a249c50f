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

// Package address derives the storage location of every ledger record from a
// namespace and an ordered list of seeds. Derivation is pure: the same inputs
// always produce the same Address, so records never hold references to each
// other, only the ids needed to re-derive an address.
package address

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"golang.org/x/crypto/blake2b"
)

const (
	AddressLength  = blake2b.Size256
	IdentityLength = 32

	// AddressHRP is the bech32 human-readable prefix used for addresses
	AddressHRP = "acad"
)

var (
	ErrInvalidAddress  = errors.New("invalid address")
	ErrInvalidIdentity = errors.New("invalid identity")
)

// Address is the storage location of a single record
type Address [AddressLength]byte

// Identity is the public key of an external caller
type Identity [IdentityLength]byte

// Seed is one discriminator mixed into an address derivation
type Seed []byte

// String returns a seed for a textual discriminator
func String(s string) Seed {
	return Seed(s)
}

// Uint32 returns a seed for a numeric discriminator, encoded as 4 little-endian bytes
func Uint32(v uint32) Seed {
	ret := make([]byte, 4)
	binary.LittleEndian.PutUint32(ret, v)
	return ret
}

// FromIdentity returns a seed for an owner identity
func FromIdentity(id Identity) Seed {
	return Seed(id[:])
}

// FromAddress returns a seed for another record's address
func FromAddress(addr Address) Seed {
	return Seed(addr[:])
}

// Derive maps a namespace and seeds to an address. Each component is length
// prefixed before hashing so that distinct seed tuples cannot produce the
// same preimage.
func Derive(namespace string, seeds ...Seed) Address {
	// blake2b.New256 only fails for keys longer than 64 bytes
	h, _ := blake2b.New256(nil)
	writeComponent := func(b []byte) {
		var lenBuf [binary.MaxVarintLen64]byte
		n := binary.PutUvarint(lenBuf[:], uint64(len(b)))
		h.Write(lenBuf[:n])
		h.Write(b)
	}
	writeComponent([]byte(namespace))
	for _, seed := range seeds {
		writeComponent(seed)
	}
	var ret Address
	copy(ret[:], h.Sum(nil))
	return ret
}

func (a Address) Bytes() []byte {
	return a[:]
}

func (a Address) IsZero() bool {
	return a == Address{}
}

// String returns the bech32 encoding of the address
func (a Address) String() string {
	convData, err := bech32.ConvertBits(a[:], 8, 5, true)
	if err != nil {
		return ""
	}
	encoded, err := bech32.Encode(AddressHRP, convData)
	if err != nil {
		return ""
	}
	return encoded
}

// ParseAddress decodes a bech32 address string
func ParseAddress(s string) (Address, error) {
	var ret Address
	hrp, data, err := bech32.Decode(s)
	if err != nil {
		return ret, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	if hrp != AddressHRP {
		return ret, fmt.Errorf(
			"%w: unexpected prefix %q",
			ErrInvalidAddress,
			hrp,
		)
	}
	converted, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return ret, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	if len(converted) != AddressLength {
		return ret, fmt.Errorf(
			"%w: expected %d bytes, got %d",
			ErrInvalidAddress,
			AddressLength,
			len(converted),
		)
	}
	copy(ret[:], converted)
	return ret, nil
}

func (i Identity) Bytes() []byte {
	return i[:]
}

func (i Identity) IsZero() bool {
	return i == Identity{}
}

// String returns the hex encoding of the identity
func (i Identity) String() string {
	return hex.EncodeToString(i[:])
}

// ParseIdentity decodes a hex-encoded identity
func ParseIdentity(s string) (Identity, error) {
	var ret Identity
	data, err := hex.DecodeString(s)
	if err != nil {
		return ret, fmt.Errorf("%w: %w", ErrInvalidIdentity, err)
	}
	if len(data) != IdentityLength {
		return ret, fmt.Errorf(
			"%w: expected %d bytes, got %d",
			ErrInvalidIdentity,
			IdentityLength,
			len(data),
		)
	}
	copy(ret[:], data)
	return ret, nil
}
