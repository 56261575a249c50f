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
	"math"

	"github.com/blinklabs-io/academia/address"
	"github.com/blinklabs-io/academia/database/models"
	"github.com/blinklabs-io/academia/event"
	"github.com/blinklabs-io/academia/token"
)

type CreditParams struct {
	ProposalRef
	SecretCode string `validate:"required,max=64"`
}

// CreateCreditToken creates the credit token mint. Its authority is derived
// from the mint address and the high rank secret code, so only a caller
// presenting that code can mint
func (l *Ledger) CreateCreditToken(
	ctx context.Context,
	signer address.Identity,
	secretCode string,
) (address.Address, error) {
	var ret address.Address
	_, err := l.execute(ctx, "createCreditToken", signer, func(op *operation) error {
		role, err := l.authorizeHighRank(signer, op.txn)
		if err != nil {
			return err
		}
		if !codesMatch(HashCode(secretCode), role.IdentifierCodeHash) {
			return fmt.Errorf(
				"%w: secret code does not match",
				ErrAuthorizationFailure,
			)
		}
		mintAddr := token.MintAddress()
		op.target = mintAddr
		if _, err := l.tokens.CreateMint(
			token.AuthorityAddress(mintAddr, secretCode),
			0,
			op.txn,
		); err != nil {
			if errors.Is(err, token.ErrMintExists) {
				return fmt.Errorf("%w: %w", ErrAlreadyInitialized, err)
			}
			return err
		}
		ret = mintAddr
		op.status = "true"
		return nil
	})
	if err != nil {
		return address.Address{}, err
	}
	return ret, nil
}

// GiveCreditsToWinningStudent mints the reward to the author of an accepted
// proposal and settles it. A settled proposal cannot be paid again
func (l *Ledger) GiveCreditsToWinningStudent(
	ctx context.Context,
	signer address.Identity,
	params CreditParams,
) (uint64, error) {
	var ret uint64
	_, err := l.execute(ctx, "giveCreditsToWinningStudent", signer, func(op *operation) error {
		if err := validateParams(params); err != nil {
			return err
		}
		role, err := l.authorizeHighRank(signer, op.txn)
		if err != nil {
			return err
		}
		if !codesMatch(HashCode(params.SecretCode), role.IdentifierCodeHash) {
			return fmt.Errorf(
				"%w: secret code does not match",
				ErrAuthorizationFailure,
			)
		}
		proposal, addr, err := l.loadProposal(params.ProposalRef, op.txn)
		if err != nil {
			return err
		}
		op.target = addr
		if err := requireState(proposal, models.ProposalStateAccepted); err != nil {
			return err
		}
		creatorAddr := RoleAddress(proposal.CreatorKind, proposal.CreatorIdentity)
		creator := &models.RoleAccount{}
		if err := l.loadRecord(creatorAddr, creator, op.txn, "proposal creator"); err != nil {
			return err
		}
		amount := l.config.Params.RewardAmount
		mintAddr := token.MintAddress()
		accountAddr, err := l.tokens.EnsureAccount(mintAddr, creatorAddr, op.txn)
		if err != nil {
			return mapTokenError(err)
		}
		if err := l.tokens.MintTo(
			mintAddr,
			accountAddr,
			token.AuthorityAddress(mintAddr, params.SecretCode),
			amount,
			op.txn,
		); err != nil {
			return mapTokenError(err)
		}
		if amount > uint64(math.MaxUint32-creator.Rewards) {
			creator.Rewards = math.MaxUint32
		} else {
			creator.Rewards += uint32(amount)
		}
		if err := l.db.PutRecord(creatorAddr, creator, op.txn); err != nil {
			return err
		}
		if err := l.transition(op, addr, proposal, models.ProposalStateSettled); err != nil {
			return err
		}
		balance, err := l.tokens.Balance(mintAddr, creatorAddr, op.txn)
		if err != nil {
			return err
		}
		op.txn.OnCommit(func() {
			l.metrics.creditsMinted.Add(float64(amount))
		})
		l.publish(op, event.CreditsIssuedEventType, event.CreditsIssuedEvent{
			Owner:       proposal.CreatorIdentity.String(),
			SubjectCode: proposal.SubjectCode,
			ProposalID:  proposal.ID,
			Amount:      amount,
		})
		ret = balance
		op.status = "true"
		return nil
	})
	if err != nil {
		return 0, err
	}
	return ret, nil
}

func mapTokenError(err error) error {
	switch {
	case errors.Is(err, token.ErrInvalidAuthority):
		return fmt.Errorf("%w: %w", ErrAuthorizationFailure, err)
	case errors.Is(err, token.ErrMintNotFound),
		errors.Is(err, token.ErrAccountNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, token.ErrSupplyOverflow):
		return fmt.Errorf("%w: %w", ErrRangeViolation, err)
	default:
		return err
	}
}
