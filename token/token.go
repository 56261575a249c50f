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

// Package token keeps the balances of the credit token. It is a minimal
// fungible-token program: a mint with a single authority, and one account per
// (mint, owner) pair. Records live in the ledger record store next to the
// academic records and take part in the caller's transaction.
package token

import (
	"errors"
	"fmt"
	"math"

	"github.com/blinklabs-io/academia/address"
	"github.com/blinklabs-io/academia/database"
	"github.com/blinklabs-io/gouroboros/cbor"
)

const (
	MintNamespace      = "creditToken"
	AuthorityNamespace = "mintAuthority"
	AccountNamespace   = "associatedToken"
)

var (
	ErrMintExists       = errors.New("mint already exists")
	ErrMintNotFound     = errors.New("mint not found")
	ErrAccountNotFound  = errors.New("token account not found")
	ErrInvalidAuthority = errors.New("invalid mint authority")
	ErrSupplyOverflow   = errors.New("supply overflow")
)

type Mint struct {
	cbor.StructAsArray
	Authority address.Address
	Decimals  uint8
	Supply    uint64
}

// Account holds the balance of one owner for one mint
type Account struct {
	cbor.StructAsArray
	Mint   address.Address
	Owner  address.Address
	Amount uint64
}

// MintAddress returns the address of the credit token mint
func MintAddress() address.Address {
	return address.Derive(MintNamespace)
}

// AuthorityAddress returns the program controlled authority of a mint. Only
// a caller knowing secretCode can reproduce it
func AuthorityAddress(mint address.Address, secretCode string) address.Address {
	return address.Derive(
		AuthorityNamespace,
		address.FromAddress(mint),
		address.String(secretCode),
	)
}

// AccountAddress returns the associated token account of owner for mint
func AccountAddress(mint address.Address, owner address.Address) address.Address {
	return address.Derive(
		AccountNamespace,
		address.FromAddress(mint),
		address.FromAddress(owner),
	)
}

type Program struct {
	db *database.Database
}

func New(db *database.Database) *Program {
	return &Program{db: db}
}

// CreateMint creates the credit token mint with the given authority
func (p *Program) CreateMint(
	authority address.Address,
	decimals uint8,
	txn *database.Txn,
) (address.Address, error) {
	mintAddr := MintAddress()
	exists, err := p.db.RecordExists(mintAddr, txn)
	if err != nil {
		return mintAddr, err
	}
	if exists {
		return mintAddr, fmt.Errorf("%w: %s", ErrMintExists, mintAddr)
	}
	mint := &Mint{Authority: authority, Decimals: decimals}
	if err := p.db.PutRecord(mintAddr, mint, txn); err != nil {
		return mintAddr, err
	}
	return mintAddr, nil
}

// GetMint returns the mint stored at mintAddr
func (p *Program) GetMint(
	mintAddr address.Address,
	txn *database.Txn,
) (*Mint, error) {
	ret := &Mint{}
	if err := p.db.GetRecord(mintAddr, ret, txn); err != nil {
		if errors.Is(err, database.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrMintNotFound, mintAddr)
		}
		return nil, err
	}
	return ret, nil
}

// EnsureAccount returns the associated token account of owner, creating it
// with a zero balance when it does not exist yet
func (p *Program) EnsureAccount(
	mintAddr address.Address,
	owner address.Address,
	txn *database.Txn,
) (address.Address, error) {
	accountAddr := AccountAddress(mintAddr, owner)
	if _, err := p.GetMint(mintAddr, txn); err != nil {
		return accountAddr, err
	}
	exists, err := p.db.RecordExists(accountAddr, txn)
	if err != nil {
		return accountAddr, err
	}
	if exists {
		return accountAddr, nil
	}
	account := &Account{Mint: mintAddr, Owner: owner}
	if err := p.db.PutRecord(accountAddr, account, txn); err != nil {
		return accountAddr, err
	}
	return accountAddr, nil
}

// MintTo credits amount to the account at accountAddr. The authority must be
// the one recorded on the mint
func (p *Program) MintTo(
	mintAddr address.Address,
	accountAddr address.Address,
	authority address.Address,
	amount uint64,
	txn *database.Txn,
) error {
	mint, err := p.GetMint(mintAddr, txn)
	if err != nil {
		return err
	}
	if mint.Authority != authority {
		return ErrInvalidAuthority
	}
	account := &Account{}
	if err := p.db.GetRecord(accountAddr, account, txn); err != nil {
		if errors.Is(err, database.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", ErrAccountNotFound, accountAddr)
		}
		return err
	}
	if account.Mint != mintAddr {
		return fmt.Errorf(
			"%w: account %s belongs to another mint",
			ErrAccountNotFound,
			accountAddr,
		)
	}
	if amount > math.MaxUint64-mint.Supply {
		return ErrSupplyOverflow
	}
	mint.Supply += amount
	account.Amount += amount
	if err := p.db.PutRecord(mintAddr, mint, txn); err != nil {
		return err
	}
	return p.db.PutRecord(accountAddr, account, txn)
}

// Balance returns the amount held by owner. An owner without an account
// holds nothing
func (p *Program) Balance(
	mintAddr address.Address,
	owner address.Address,
	txn *database.Txn,
) (uint64, error) {
	account := &Account{}
	if err := p.db.GetRecord(AccountAddress(mintAddr, owner), account, txn); err != nil {
		if errors.Is(err, database.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return account.Amount, nil
}
