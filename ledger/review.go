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

	"github.com/blinklabs-io/academia/address"
	"github.com/blinklabs-io/academia/database/models"
	"github.com/blinklabs-io/academia/event"
)

type ProfessorReviewParams struct {
	ProposalRef
	Reference string `validate:"required,max=200"`
}

type HighRankDecisionParams struct {
	ProposalRef
	Approve bool
}

// UpdateProposalByProfessor completes the pending review of a proposal and
// hands it to the high rank
func (l *Ledger) UpdateProposalByProfessor(
	ctx context.Context,
	signer address.Identity,
	params ProfessorReviewParams,
) (*models.ProfessorProposal, error) {
	var ret *models.ProfessorProposal
	_, err := l.execute(ctx, "updateProposalByProfessor", signer, func(op *operation) error {
		if err := validateParams(params); err != nil {
			return err
		}
		code, _ := params.ids()
		if _, err := l.requireMember(models.RoleKindProfessor, signer, code, op.txn); err != nil {
			return err
		}
		proposal, addr, err := l.loadProposal(params.ProposalRef, op.txn)
		if err != nil {
			return err
		}
		op.target = addr
		if err := requireState(proposal, models.ProposalStateWaitingForTeacher); err != nil {
			return err
		}
		reviewAddr := ProfessorProposalAddress(
			proposal.AssociatedProfessorProposalID,
			proposal.SubjectCode,
		)
		review := &models.ProfessorProposal{}
		if err := l.loadRecord(reviewAddr, review, op.txn, "professor proposal"); err != nil {
			return err
		}
		review.Reference = params.Reference
		review.State = models.ProfessorProposalStateComplete
		if err := l.db.PutRecord(reviewAddr, review, op.txn); err != nil {
			return err
		}
		if err := l.transition(op, addr, proposal, models.ProposalStateWaitingForHighRank); err != nil {
			return err
		}
		ret = review
		op.status = proposal.State.String()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// UpdateProposalByHighRank accepts or rejects a reviewed proposal
func (l *Ledger) UpdateProposalByHighRank(
	ctx context.Context,
	signer address.Identity,
	params HighRankDecisionParams,
) (models.ProposalState, error) {
	var ret models.ProposalState
	_, err := l.execute(ctx, "updateProposalByHighRank", signer, func(op *operation) error {
		if err := validateParams(params); err != nil {
			return err
		}
		if _, err := l.authorizeHighRank(signer, op.txn); err != nil {
			return err
		}
		proposal, addr, err := l.loadProposal(params.ProposalRef, op.txn)
		if err != nil {
			return err
		}
		op.target = addr
		if err := requireState(proposal, models.ProposalStateWaitingForHighRank); err != nil {
			return err
		}
		state := models.ProposalStateRejected
		if params.Approve {
			state = models.ProposalStateAccepted
		}
		if err := l.transition(op, addr, proposal, state); err != nil {
			return err
		}
		ret = state
		op.status = state.String()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return ret, nil
}

// DeleteRejectedProposalAccount removes a rejected proposal together with
// its review record and vote receipts
func (l *Ledger) DeleteRejectedProposalAccount(
	ctx context.Context,
	signer address.Identity,
	params ProposalRef,
) (bool, error) {
	_, err := l.execute(ctx, "deleteRejectedProposalAccount", signer, func(op *operation) error {
		if err := validateParams(params); err != nil {
			return err
		}
		if _, err := l.authorizeHighRank(signer, op.txn); err != nil {
			return err
		}
		proposal, addr, err := l.loadProposal(params, op.txn)
		if err != nil {
			return err
		}
		op.target = addr
		if err := requireState(proposal, models.ProposalStateRejected); err != nil {
			return err
		}
		if proposal.HasProfessorProposal {
			reviewAddr := ProfessorProposalAddress(
				proposal.AssociatedProfessorProposalID,
				proposal.SubjectCode,
			)
			exists, err := l.db.RecordExists(reviewAddr, op.txn)
			if err != nil {
				return err
			}
			if exists {
				if err := l.db.DeleteRecord(reviewAddr, op.txn); err != nil {
					return err
				}
			}
		}
		receipts, err := l.db.DeleteVoteReceipts(addr, op.txn)
		if err != nil {
			return err
		}
		if err := l.db.DeleteRecord(addr, op.txn); err != nil {
			return err
		}
		if err := l.db.DeleteProposalIndex(
			proposal.SubjectCode,
			proposal.ID,
			op.txn,
		); err != nil {
			return err
		}
		l.publish(op, event.ProposalDeletedEventType, event.ProposalDeletedEvent{
			SubjectCode:     proposal.SubjectCode,
			ProposalID:      proposal.ID,
			ReceiptsRemoved: receipts,
		})
		op.status = "true"
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
