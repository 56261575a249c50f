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
	"fmt"
	"math"
	"slices"

	"github.com/blinklabs-io/academia/address"
	"github.com/blinklabs-io/academia/database"
	"github.com/blinklabs-io/academia/database/models"
)

type IdGeneratorParams struct {
	Namespace string `validate:"required,alphanum,max=32"`
}

// CreateIdGeneratorFor creates the counter for a namespace, starting at 0.
// Role accounts draw their ids from the counters of the "highRank",
// "professor" and "student" namespaces, which must be created this way
// before the first account of each kind. The faculty, degree, specialty
// and subject counters belong to InitializeSystem and are refused here
func (l *Ledger) CreateIdGeneratorFor(
	ctx context.Context,
	signer address.Identity,
	params IdGeneratorParams,
) (*models.IdGenerator, error) {
	var ret *models.IdGenerator
	_, err := l.execute(ctx, "createIdGeneratorFor", signer, func(op *operation) error {
		if err := validateParams(params); err != nil {
			return err
		}
		if slices.Contains(structuralNamespaces, params.Namespace) {
			return fmt.Errorf(
				"%w: namespace %q is created by system initialization",
				ErrConstraintViolation,
				params.Namespace,
			)
		}
		op.target = IdGeneratorAddress(params.Namespace)
		gen := &models.IdGenerator{Namespace: params.Namespace}
		if err := l.createRecord(op.target, gen, op.txn, "id generator"); err != nil {
			return err
		}
		ret = gen
		op.status = "true"
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// createScopedIdGenerator creates a counter bound to a subject code
func (l *Ledger) createScopedIdGenerator(
	namespace string,
	subjectCode uint32,
	start uint32,
	txn *database.Txn,
) error {
	gen := &models.IdGenerator{
		Namespace:          namespace,
		SubjectCode:        subjectCode,
		Scoped:             true,
		SmallerIdAvailable: start,
	}
	return l.createRecord(
		ScopedIdGeneratorAddress(namespace, subjectCode),
		gen,
		txn,
		"id generator",
	)
}

// currentId returns the id the counter at addr would hand out next without
// consuming it
func (l *Ledger) currentId(addr address.Address, txn *database.Txn) (uint32, error) {
	gen := &models.IdGenerator{}
	if err := l.loadRecord(addr, gen, txn, "id generator"); err != nil {
		return 0, err
	}
	return gen.SmallerIdAvailable, nil
}

// allocateId returns the current value of the counter at addr and stores
// the next one in the same transaction. Two transactions allocating from the
// same counter conflict at commit, so an id is never handed out twice
func (l *Ledger) allocateId(addr address.Address, txn *database.Txn) (uint32, error) {
	gen := &models.IdGenerator{}
	if err := l.loadRecord(addr, gen, txn, "id generator"); err != nil {
		return 0, err
	}
	if gen.SmallerIdAvailable == math.MaxUint32 {
		return 0, fmt.Errorf(
			"%w: id generator %s exhausted",
			ErrRangeViolation,
			gen.Namespace,
		)
	}
	id := gen.SmallerIdAvailable
	gen.SmallerIdAvailable++
	if err := l.db.PutRecord(addr, gen, txn); err != nil {
		return 0, err
	}
	return id, nil
}

// expectId checks that id is the next value of the counter at addr and
// consumes it
func (l *Ledger) expectId(
	addr address.Address,
	id int64,
	txn *database.Txn,
) (uint32, error) {
	current, err := l.currentId(addr, txn)
	if err != nil {
		return 0, err
	}
	if id != int64(current) {
		return 0, fmt.Errorf(
			"%w: id %d does not match the next available id %d",
			ErrConstraintViolation,
			id,
			current,
		)
	}
	return l.allocateId(addr, txn)
}
