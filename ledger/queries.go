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

	"github.com/blinklabs-io/academia/address"
	"github.com/blinklabs-io/academia/database/models"
	"github.com/blinklabs-io/academia/token"
)

func (l *Ledger) IsSystemInitialized() (bool, error) {
	flag := &models.SystemInitialization{}
	if err := l.db.GetRecord(SystemInitializationAddress(), flag, nil); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return flag.Initialized, nil
}

func (l *Ledger) GetRole(
	kind models.RoleKind,
	owner address.Identity,
) (*models.RoleAccount, error) {
	ret := &models.RoleAccount{}
	if err := l.loadRecord(RoleAddress(kind, owner), ret, nil, kind.String()); err != nil {
		return nil, err
	}
	return ret, nil
}

func (l *Ledger) GetIdGenerator(namespace string) (*models.IdGenerator, error) {
	ret := &models.IdGenerator{}
	if err := l.loadRecord(
		IdGeneratorAddress(namespace),
		ret,
		nil,
		"id generator",
	); err != nil {
		return nil, err
	}
	return ret, nil
}

func (l *Ledger) GetScopedIdGenerator(
	namespace string,
	subjectCode uint32,
) (*models.IdGenerator, error) {
	ret := &models.IdGenerator{}
	if err := l.loadRecord(
		ScopedIdGeneratorAddress(namespace, subjectCode),
		ret,
		nil,
		"id generator",
	); err != nil {
		return nil, err
	}
	return ret, nil
}

func (l *Ledger) GetFaculty(id uint32) (*models.Faculty, error) {
	ret := &models.Faculty{}
	if err := l.loadRecord(FacultyAddress(id), ret, nil, "faculty"); err != nil {
		return nil, err
	}
	return ret, nil
}

func (l *Ledger) GetDegree(id uint32) (*models.Degree, error) {
	ret := &models.Degree{}
	if err := l.loadRecord(DegreeAddress(id), ret, nil, "degree"); err != nil {
		return nil, err
	}
	return ret, nil
}

func (l *Ledger) GetSpecialty(id uint32) (*models.Specialty, error) {
	ret := &models.Specialty{}
	if err := l.loadRecord(SpecialtyAddress(id), ret, nil, "specialty"); err != nil {
		return nil, err
	}
	return ret, nil
}

func (l *Ledger) GetSubject(id uint32) (*models.Subject, error) {
	ret := &models.Subject{}
	if err := l.loadRecord(SubjectAddress(id), ret, nil, "subject"); err != nil {
		return nil, err
	}
	return ret, nil
}

func (l *Ledger) GetProposal(subjectCode uint32, id uint32) (*models.Proposal, error) {
	ret := &models.Proposal{}
	if err := l.loadRecord(
		ProposalAddress(id, subjectCode),
		ret,
		nil,
		"proposal",
	); err != nil {
		return nil, err
	}
	return ret, nil
}

func (l *Ledger) GetProfessorProposal(
	subjectCode uint32,
	id uint32,
) (*models.ProfessorProposal, error) {
	ret := &models.ProfessorProposal{}
	if err := l.loadRecord(
		ProfessorProposalAddress(id, subjectCode),
		ret,
		nil,
		"professor proposal",
	); err != nil {
		return nil, err
	}
	return ret, nil
}

// HasVoted reports whether voter already voted on the proposal
func (l *Ledger) HasVoted(
	subjectCode uint32,
	proposalID uint32,
	voter address.Identity,
) (bool, error) {
	_, err := l.db.GetVoteReceipt(
		ProposalAddress(proposalID, subjectCode),
		voter,
		nil,
	)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// CountVotes returns the number of vote receipts recorded against a
// proposal. It matches the proposal's VotesCast while the proposal exists
func (l *Ledger) CountVotes(subjectCode uint32, proposalID uint32) (int, error) {
	return l.db.CountVoteReceipts(ProposalAddress(proposalID, subjectCode), nil)
}

// CreditBalance returns the credit tokens held by a role account
func (l *Ledger) CreditBalance(
	kind models.RoleKind,
	owner address.Identity,
) (uint64, error) {
	return l.tokens.Balance(token.MintAddress(), RoleAddress(kind, owner), nil)
}

// ListProposals returns the indexed proposals in state, or every proposal
// when state is empty
func (l *Ledger) ListProposals(state string) ([]models.ProposalIndex, error) {
	if state != "" {
		if _, err := models.ParseProposalState(state); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConstraintViolation, err)
		}
	}
	return l.db.ProposalIndexes(state)
}

// Operations returns the most recent journal entries, newest first
func (l *Ledger) Operations(limit int) ([]models.Operation, error) {
	return l.db.Operations(limit)
}

// ReviewEvents returns the review requests raised for a subject code
func (l *Ledger) ReviewEvents(subjectCode uint32) ([]models.ReviewEvent, error) {
	return l.db.ReviewEvents(subjectCode)
}
