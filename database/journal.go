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

package database

import (
	"github.com/blinklabs-io/academia/database/models"
	"github.com/blinklabs-io/academia/database/types"
)

func metadataTxn(txn *Txn) types.Txn {
	if txn == nil {
		return nil
	}
	return txn.Metadata()
}

// AddOperation appends a row to the operation journal
func (d *Database) AddOperation(op *models.Operation, txn *Txn) error {
	return d.metadata.AddOperation(op, metadataTxn(txn))
}

// Operations returns the most recent journal rows, newest first. A limit of
// zero returns every row
func (d *Database) Operations(limit int) ([]models.Operation, error) {
	return d.metadata.GetOperations(limit, nil)
}

// SetProposalIndex inserts or updates the index row of a proposal
func (d *Database) SetProposalIndex(
	idx *models.ProposalIndex,
	txn *Txn,
) error {
	return d.metadata.SetProposalIndex(idx, metadataTxn(txn))
}

// DeleteProposalIndex removes the index row of a proposal
func (d *Database) DeleteProposalIndex(
	subjectCode uint32,
	proposalID uint32,
	txn *Txn,
) error {
	return d.metadata.DeleteProposalIndex(
		subjectCode,
		proposalID,
		metadataTxn(txn),
	)
}

// ProposalIndexes returns the index rows in the given state, or all rows
// when state is empty
func (d *Database) ProposalIndexes(state string) ([]models.ProposalIndex, error) {
	return d.metadata.GetProposalIndexes(state, nil)
}

// AddReviewEvent records a review request
func (d *Database) AddReviewEvent(evt *models.ReviewEvent, txn *Txn) error {
	return d.metadata.AddReviewEvent(evt, metadataTxn(txn))
}

// ReviewEvents returns the review requests raised for a subject code
func (d *Database) ReviewEvents(subjectCode uint32) ([]models.ReviewEvent, error) {
	return d.metadata.GetReviewEvents(subjectCode, nil)
}
