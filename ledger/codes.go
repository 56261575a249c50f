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
	"fmt"

	"github.com/blinklabs-io/academia/database"
	"github.com/blinklabs-io/academia/database/models"
)

// registerSubjectCode appends (code, subjectID) to the code registry,
// creating the registry on first use
func (l *Ledger) registerSubjectCode(
	code uint32,
	subjectID uint32,
	txn *database.Txn,
) error {
	addr := CodeSubjectRelationAddress()
	relation := &models.CodeSubjectRelation{}
	if err := l.db.GetRecord(addr, relation, txn); err != nil && !isNotFound(err) {
		return err
	}
	if !relation.Add(code, subjectID) {
		return fmt.Errorf(
			"%w: subject code %d is already registered",
			ErrAlreadyInitialized,
			code,
		)
	}
	return l.db.PutRecord(addr, relation, txn)
}

// SubjectIDByCode returns the id of the subject registered under code
func (l *Ledger) SubjectIDByCode(code uint32) (uint32, error) {
	relation := &models.CodeSubjectRelation{}
	if err := l.loadRecord(
		CodeSubjectRelationAddress(),
		relation,
		nil,
		"code registry",
	); err != nil {
		return 0, err
	}
	id, ok := relation.SubjectID(code)
	if !ok {
		return 0, fmt.Errorf("%w: subject code %d", ErrNotFound, code)
	}
	return id, nil
}
