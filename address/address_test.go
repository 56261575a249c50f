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

package address_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blinklabs-io/academia/address"
)

func TestDeriveDeterministic(t *testing.T) {
	a := address.Derive("faculty", address.Uint32(7))
	b := address.Derive("faculty", address.Uint32(7))
	assert.Equal(t, a, b)
	assert.False(t, a.IsZero())
}

func TestDeriveDistinctSeeds(t *testing.T) {
	testDefs := []struct {
		name string
		a    address.Address
		b    address.Address
	}{
		{
			name: "namespace",
			a:    address.Derive("faculty", address.Uint32(1)),
			b:    address.Derive("degree", address.Uint32(1)),
		},
		{
			name: "numeric",
			a:    address.Derive("proposal", address.Uint32(1), address.Uint32(43600)),
			b:    address.Derive("proposal", address.Uint32(2), address.Uint32(43600)),
		},
		{
			name: "seed order",
			a:    address.Derive("proposal", address.Uint32(1), address.Uint32(2)),
			b:    address.Derive("proposal", address.Uint32(2), address.Uint32(1)),
		},
		{
			name: "concatenation boundary",
			a:    address.Derive("x", address.String("ab"), address.String("c")),
			b:    address.Derive("x", address.String("a"), address.String("bc")),
		},
		{
			name: "namespace boundary",
			a:    address.Derive("highRankIdHandler"),
			b:    address.Derive("highRank", address.String("IdHandler")),
		},
		{
			name: "missing seed",
			a:    address.Derive("systemInitialization"),
			b:    address.Derive("systemInitialization", address.String("")),
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			assert.NotEqual(t, testDef.a, testDef.b)
		})
	}
}

func TestUint32LittleEndian(t *testing.T) {
	assert.Equal(
		t,
		address.Seed{0x50, 0xaa, 0x00, 0x00},
		address.Uint32(43600),
	)
}

func TestAddressBech32RoundTrip(t *testing.T) {
	addr := address.Derive("creditToken")
	encoded := addr.String()
	require.True(t, strings.HasPrefix(encoded, address.AddressHRP+"1"))
	decoded, err := address.ParseAddress(encoded)
	require.NoError(t, err)
	assert.Equal(t, addr, decoded)
}

func TestParseAddressInvalid(t *testing.T) {
	_, err := address.ParseAddress("not-an-address")
	require.ErrorIs(t, err, address.ErrInvalidAddress)
}

func TestParseIdentity(t *testing.T) {
	var id address.Identity
	for i := range id {
		id[i] = byte(i)
	}
	parsed, err := address.ParseIdentity(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = address.ParseIdentity("abcd")
	require.ErrorIs(t, err, address.ErrInvalidIdentity)
	_, err = address.ParseIdentity("zz")
	require.ErrorIs(t, err, address.ErrInvalidIdentity)
}
