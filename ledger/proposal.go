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
	"github.com/blinklabs-io/academia/event"
)

type ProposalParams struct {
	SubjectID int64  `validate:"gte=0,lte=4294967295"`
	Title     string `validate:"required,max=100"`
	Content   string `validate:"required,max=2500"`
}

// ProposalRef names a proposal by its subject code and its id within the code
type ProposalRef struct {
	SubjectCode int64 `validate:"gte=0,lte=4294967295"`
	ProposalID  int64 `validate:"gte=0,lte=4294967295"`
}

func (r ProposalRef) ids() (uint32, uint32) {
	//nolint:gosec // range checked by validator
	return uint32(r.SubjectCode), uint32(r.ProposalID)
}

func (l *Ledger) CreateProposalByStudent(
	ctx context.Context,
	signer address.Identity,
	params ProposalParams,
) (*models.Proposal, error) {
	return l.createProposal(
		ctx,
		"createProposalByStudent",
		models.RoleKindStudent,
		signer,
		params,
	)
}

func (l *Ledger) CreateProposalByProfessor(
	ctx context.Context,
	signer address.Identity,
	params ProposalParams,
) (*models.Proposal, error) {
	return l.createProposal(
		ctx,
		"createProposalByProfessor",
		models.RoleKindProfessor,
		signer,
		params,
	)
}

func (l *Ledger) createProposal(
	ctx context.Context,
	name string,
	kind models.RoleKind,
	signer address.Identity,
	params ProposalParams,
) (*models.Proposal, error) {
	var ret *models.Proposal
	_, err := l.execute(ctx, name, signer, func(op *operation) error {
		if err := validateParams(params); err != nil {
			return err
		}
		subject := &models.Subject{}
		if err := l.loadRecord(
			SubjectAddress(uint32(params.SubjectID)), //nolint:gosec // range checked by validator
			subject,
			op.txn,
			"subject",
		); err != nil {
			return err
		}
		creator, err := l.requireMember(kind, signer, subject.Code, op.txn)
		if err != nil {
			return err
		}
		id, err := l.allocateId(
			ScopedIdGeneratorAddress(ProposalNamespace, subject.Code),
			op.txn,
		)
		if err != nil {
			return err
		}
		// The review id is only reserved once the vote succeeds
		reviewID, err := l.currentId(
			ScopedIdGeneratorAddress(ProfessorProposalNamespace, subject.Code),
			op.txn,
		)
		if err != nil {
			return err
		}
		published := l.now().Unix()
		members := len(subject.Students) + len(subject.Professors)
		proposal := &models.Proposal{
			ID:                            id,
			SubjectCode:                   subject.Code,
			SubjectID:                     subject.ID,
			CreatorID:                     creator.ID,
			CreatorKind:                   kind,
			CreatorIdentity:               signer,
			Title:                         params.Title,
			Content:                       params.Content,
			PublishingTimestamp:           published,
			EndingTimestamp:               published + l.config.Params.VotingPeriod,
			ExpectedVotes:                 uint32(members) + l.config.Params.BaseExtraVotes, //nolint:gosec // bounded by validator
			State:                         models.ProposalStateVotationInProgress,
			AssociatedProfessorProposalID: reviewID,
		}
		op.target = ProposalAddress(id, subject.Code)
		if err := l.createRecord(op.target, proposal, op.txn, "proposal"); err != nil {
			return err
		}
		if err := l.indexProposal(proposal, op); err != nil {
			return err
		}
		op.txn.OnCommit(func() {
			l.metrics.proposalsTotal.WithLabelValues(proposal.State.String()).Inc()
		})
		ret = proposal
		op.status = proposal.State.String()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// loadProposal returns the proposal named by ref together with its address
func (l *Ledger) loadProposal(
	ref ProposalRef,
	txn *database.Txn,
) (*models.Proposal, address.Address, error) {
	code, id := ref.ids()
	addr := ProposalAddress(id, code)
	proposal := &models.Proposal{}
	if err := l.loadRecord(addr, proposal, txn, "proposal"); err != nil {
		return nil, addr, err
	}
	return proposal, addr, nil
}

func requireState(proposal *models.Proposal, state models.ProposalState) error {
	if proposal.State != state {
		return fmt.Errorf(
			"%w: proposal %d is %s, expected %s",
			ErrInvalidStateTransition,
			proposal.ID,
			proposal.State,
			state,
		)
	}
	return nil
}

// transition moves a proposal to state and stores it, keeping the index in
// step and announcing the change once committed
func (l *Ledger) transition(
	op *operation,
	addr address.Address,
	proposal *models.Proposal,
	state models.ProposalState,
) error {
	from := proposal.State
	proposal.State = state
	if err := l.db.PutRecord(addr, proposal, op.txn); err != nil {
		return err
	}
	if err := l.indexProposal(proposal, op); err != nil {
		return err
	}
	op.txn.OnCommit(func() {
		l.metrics.proposalsTotal.WithLabelValues(state.String()).Inc()
	})
	l.publish(op, event.ProposalStateEventType, event.ProposalStateEvent{
		SubjectCode: proposal.SubjectCode,
		ProposalID:  proposal.ID,
		From:        from.String(),
		To:          state.String(),
	})
	return nil
}

func (l *Ledger) indexProposal(proposal *models.Proposal, op *operation) error {
	return l.db.SetProposalIndex(
		&models.ProposalIndex{
			Title:           proposal.Title,
			State:           proposal.State.String(),
			CreatorKind:     proposal.CreatorKind.String(),
			Creator:         proposal.CreatorIdentity.String(),
			EndingTimestamp: proposal.EndingTimestamp,
			SubjectCode:     proposal.SubjectCode,
			ProposalID:      proposal.ID,
			SubjectID:       proposal.SubjectID,
		},
		op.txn,
	)
}
