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
	"strconv"

	"github.com/blinklabs-io/academia/address"
	"github.com/blinklabs-io/academia/database/models"
	"github.com/blinklabs-io/academia/event"
)

type VoteParams struct {
	ProposalRef
	Vote bool
}

// VoteProposalByStudent records a student vote. When the vote completes the
// expected count the proposal either opens a professor review (more
// supporting than against votes) or is rejected. The returned state is the
// state of the proposal after the vote
func (l *Ledger) VoteProposalByStudent(
	ctx context.Context,
	signer address.Identity,
	params VoteParams,
) (models.ProposalState, error) {
	var ret models.ProposalState
	_, err := l.execute(ctx, "voteProposalByStudent", signer, func(op *operation) error {
		if err := validateParams(params); err != nil {
			return err
		}
		code, _ := params.ids()
		if _, err := l.requireMember(models.RoleKindStudent, signer, code, op.txn); err != nil {
			return err
		}
		proposal, addr, err := l.loadProposal(params.ProposalRef, op.txn)
		if err != nil {
			return err
		}
		op.target = addr
		if err := requireState(proposal, models.ProposalStateVotationInProgress); err != nil {
			return err
		}
		if _, err := l.db.GetVoteReceipt(addr, signer, op.txn); err == nil {
			return fmt.Errorf(
				"%w: %s already voted on proposal %d",
				ErrDuplicateVote,
				signer,
				proposal.ID,
			)
		} else if !isNotFound(err) {
			return err
		}
		if err := l.db.SetVoteReceipt(
			addr,
			&models.VoteReceipt{Voter: signer, Vote: params.Vote},
			op.txn,
		); err != nil {
			return err
		}
		if params.Vote {
			proposal.SupportingVotes++
		} else {
			proposal.AgainstVotes++
		}
		op.txn.OnCommit(func() {
			l.metrics.votesTotal.WithLabelValues(strconv.FormatBool(params.Vote)).Inc()
		})
		if proposal.VotesCast() < proposal.ExpectedVotes {
			if err := l.db.PutRecord(addr, proposal, op.txn); err != nil {
				return err
			}
			ret = proposal.State
			op.status = ret.String()
			return nil
		}
		if proposal.SupportingVotes > proposal.AgainstVotes {
			if err := l.openReview(op, proposal); err != nil {
				return err
			}
			if err := l.transition(op, addr, proposal, models.ProposalStateWaitingForTeacher); err != nil {
				return err
			}
		} else {
			if err := l.transition(op, addr, proposal, models.ProposalStateRejected); err != nil {
				return err
			}
		}
		ret = proposal.State
		op.status = ret.String()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return ret, nil
}

// openReview reserves the review id of the proposal's code and creates the
// pending review record
func (l *Ledger) openReview(op *operation, proposal *models.Proposal) error {
	reviewID, err := l.allocateId(
		ScopedIdGeneratorAddress(ProfessorProposalNamespace, proposal.SubjectCode),
		op.txn,
	)
	if err != nil {
		return err
	}
	published := l.now().Unix()
	review := &models.ProfessorProposal{
		ID:                  reviewID,
		OriginalProposalID:  proposal.ID,
		SubjectCode:         proposal.SubjectCode,
		Name:                proposal.Title,
		PublishingTimestamp: published,
		EndingTimestamp:     published + l.config.Params.VotingPeriod,
		State:               models.ProfessorProposalStatePending,
	}
	if err := l.createRecord(
		ProfessorProposalAddress(reviewID, proposal.SubjectCode),
		review,
		op.txn,
		"professor proposal",
	); err != nil {
		return err
	}
	proposal.AssociatedProfessorProposalID = reviewID
	proposal.HasProfessorProposal = true
	if err := l.db.AddReviewEvent(
		&models.ReviewEvent{
			SubjectCode: proposal.SubjectCode,
			ProposalID:  proposal.ID,
			ReviewID:    reviewID,
		},
		op.txn,
	); err != nil {
		return err
	}
	l.publish(op, event.ReviewCreatedEventType, event.ReviewCreatedEvent{
		SubjectCode: proposal.SubjectCode,
		ProposalID:  proposal.ID,
		ReviewID:    reviewID,
	})
	return nil
}
