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
	"crypto/subtle"
	"fmt"

	"github.com/blinklabs-io/academia/address"
	"github.com/blinklabs-io/academia/database"
	"github.com/blinklabs-io/academia/database/models"
)

type RoleParams struct {
	Code string `validate:"max=64"`
	// Subject codes the account belongs to. Ignored for high rank accounts
	Subjects []uint32 `validate:"max=256"`
}

func (l *Ledger) CreateHighRank(
	ctx context.Context,
	signer address.Identity,
	code string,
) (*models.RoleAccount, error) {
	return l.createRole(
		ctx,
		"createHighRank",
		models.RoleKindHighRank,
		signer,
		RoleParams{Code: code},
	)
}

func (l *Ledger) CreateProfessor(
	ctx context.Context,
	signer address.Identity,
	params RoleParams,
) (*models.RoleAccount, error) {
	return l.createRole(
		ctx,
		"createProfessor",
		models.RoleKindProfessor,
		signer,
		params,
	)
}

func (l *Ledger) CreateStudent(
	ctx context.Context,
	signer address.Identity,
	params RoleParams,
) (*models.RoleAccount, error) {
	return l.createRole(
		ctx,
		"createStudent",
		models.RoleKindStudent,
		signer,
		params,
	)
}

func (l *Ledger) canonicalCode(kind models.RoleKind) string {
	switch kind {
	case models.RoleKindHighRank:
		return l.config.Params.HighRankCode
	case models.RoleKindProfessor:
		return l.config.Params.ProfessorCode
	case models.RoleKindStudent:
		return l.config.Params.StudentCode
	default:
		return ""
	}
}

func (l *Ledger) createRole(
	ctx context.Context,
	name string,
	kind models.RoleKind,
	signer address.Identity,
	params RoleParams,
) (*models.RoleAccount, error) {
	var ret *models.RoleAccount
	_, err := l.execute(ctx, name, signer, func(op *operation) error {
		if err := validateParams(params); err != nil {
			return err
		}
		op.target = RoleAddress(kind, signer)
		exists, err := l.db.RecordExists(op.target, op.txn)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf(
				"%w: %s account for %s",
				ErrAlreadyInitialized,
				kind,
				signer,
			)
		}
		if !codesMatch(params.Code, l.canonicalCode(kind)) {
			return fmt.Errorf("%w: %s", ErrInvalidIdentifierCode, kind)
		}
		id, err := l.allocateId(IdGeneratorAddress(kind.String()), op.txn)
		if err != nil {
			return err
		}
		role := &models.RoleAccount{
			Kind:               kind,
			ID:                 id,
			IdentifierCodeHash: HashCode(params.Code),
			Authority:          signer,
		}
		if kind != models.RoleKindHighRank {
			role.Subjects = append([]uint32{}, params.Subjects...)
		}
		if err := l.db.PutRecord(op.target, role, op.txn); err != nil {
			return err
		}
		ret = role
		op.status = "true"
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}

func codesMatch(code string, expected string) bool {
	return subtle.ConstantTimeCompare([]byte(code), []byte(expected)) == 1
}

// authorizeHighRank resolves the signer to a high rank account holding the
// canonical administrator code
func (l *Ledger) authorizeHighRank(
	signer address.Identity,
	txn *database.Txn,
) (*models.RoleAccount, error) {
	role := &models.RoleAccount{}
	if err := l.db.GetRecord(
		RoleAddress(models.RoleKindHighRank, signer),
		role,
		txn,
	); err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf(
				"%w: %s is not a high rank",
				ErrAuthorizationFailure,
				signer,
			)
		}
		return nil, err
	}
	if !codesMatch(
		role.IdentifierCodeHash,
		HashCode(l.config.Params.HighRankCode),
	) {
		return nil, fmt.Errorf(
			"%w: high rank code does not match",
			ErrAuthorizationFailure,
		)
	}
	return role, nil
}

// requireMember resolves the signer to a role account of the given kind that
// lists subjectCode
func (l *Ledger) requireMember(
	kind models.RoleKind,
	signer address.Identity,
	subjectCode uint32,
	txn *database.Txn,
) (*models.RoleAccount, error) {
	role := &models.RoleAccount{}
	if err := l.db.GetRecord(RoleAddress(kind, signer), role, txn); err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf(
				"%w: %s has no %s account",
				ErrMembershipFailure,
				signer,
				kind,
			)
		}
		return nil, err
	}
	if !role.BelongsTo(subjectCode) {
		return nil, fmt.Errorf(
			"%w: %s %d does not belong to subject code %d",
			ErrMembershipFailure,
			kind,
			role.ID,
			subjectCode,
		)
	}
	return role, nil
}
