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

	"github.com/blinklabs-io/academia/address"
	"github.com/blinklabs-io/academia/database"
	"github.com/blinklabs-io/academia/database/models"
)

// structuralNamespaces are the counters created by InitializeSystem
var structuralNamespaces = []string{
	FacultyNamespace,
	DegreeNamespace,
	SpecialtyNamespace,
	SubjectNamespace,
}

// InitializeSystem sets the system flag and creates the faculty, degree,
// specialty and subject counters, each starting at 1
func (l *Ledger) InitializeSystem(
	ctx context.Context,
	signer address.Identity,
) (bool, error) {
	_, err := l.execute(ctx, "initializeSystem", signer, func(op *operation) error {
		if _, err := l.authorizeHighRank(signer, op.txn); err != nil {
			return err
		}
		op.target = SystemInitializationAddress()
		if err := l.createRecord(
			op.target,
			&models.SystemInitialization{Initialized: true},
			op.txn,
			"system initialization",
		); err != nil {
			return err
		}
		for _, namespace := range structuralNamespaces {
			if err := l.createRecord(
				IdGeneratorAddress(namespace),
				&models.IdGenerator{
					Namespace:          namespace,
					SmallerIdAvailable: 1,
				},
				op.txn,
				"id generator",
			); err != nil {
				return err
			}
		}
		op.status = "true"
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (l *Ledger) requireInitialized(txn *database.Txn) error {
	flag := &models.SystemInitialization{}
	if err := l.db.GetRecord(SystemInitializationAddress(), flag, txn); err != nil {
		if isNotFound(err) {
			return fmt.Errorf(
				"%w: system is not initialized",
				ErrInvalidStateTransition,
			)
		}
		return err
	}
	if !flag.Initialized {
		return fmt.Errorf(
			"%w: system is not initialized",
			ErrInvalidStateTransition,
		)
	}
	return nil
}
