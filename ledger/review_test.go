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

package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blinklabs-io/academia/address"
	"github.com/blinklabs-io/academia/database/models"
	"github.com/blinklabs-io/academia/event"
	"github.com/blinklabs-io/academia/ledger"
)

// newReviewFixture returns a proposal waiting for its professor review
func newReviewFixture(t *testing.T) (*votingFixture, address.Identity) {
	t.Helper()
	v := newVotingFixture(t)
	professor := v.professor(50, testSubjectCode)
	states := v.castVotes(func(int) bool { return true })
	require.Equal(t, models.ProposalStateWaitingForTeacher, states[len(states)-1])
	return v, professor
}

func TestProfessorReview(t *testing.T) {
	v, professor := newReviewFixture(t)
	_, stateCh := v.eventBus.Subscribe(event.ProposalStateEventType)

	review, err := v.ledger.UpdateProposalByProfessor(v.ctx, professor, ledger.ProfessorReviewParams{
		ProposalRef: v.ref,
		Reference:   "https://example.org/review/1",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ProfessorProposalStateComplete, review.State)
	assert.Equal(t, "https://example.org/review/1", review.Reference)

	proposal, err := v.ledger.GetProposal(testSubjectCode, 1)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStateWaitingForHighRank, proposal.State)
	stored, err := v.ledger.GetProfessorProposal(testSubjectCode, 1)
	require.NoError(t, err)
	assert.Equal(t, models.ProfessorProposalStateComplete, stored.State)

	evt := receiveEvent(t, stateCh)
	assert.Equal(t, event.ProposalStateEvent{
		SubjectCode: testSubjectCode,
		ProposalID:  1,
		From:        "WaitingForTeacher",
		To:          "WaitingForHighRank",
	}, evt.Data)

	// Reviewing twice is out of order
	_, err = v.ledger.UpdateProposalByProfessor(v.ctx, professor, ledger.ProfessorReviewParams{
		ProposalRef: v.ref,
		Reference:   "again",
	})
	require.ErrorIs(t, err, ledger.ErrInvalidStateTransition)
}

func TestProfessorReviewChecks(t *testing.T) {
	v := newVotingFixture(t)
	professor := v.professor(50, testSubjectCode)
	outsider := v.professor(51, 1)

	params := ledger.ProfessorReviewParams{ProposalRef: v.ref, Reference: "ref"}
	// Still voting
	_, err := v.ledger.UpdateProposalByProfessor(v.ctx, professor, params)
	require.ErrorIs(t, err, ledger.ErrInvalidStateTransition)
	_, err = v.ledger.UpdateProposalByProfessor(v.ctx, outsider, params)
	require.ErrorIs(t, err, ledger.ErrMembershipFailure)
	// Students cannot review
	_, err = v.ledger.UpdateProposalByProfessor(v.ctx, v.creator, params)
	require.ErrorIs(t, err, ledger.ErrMembershipFailure)
	params.Reference = ""
	_, err = v.ledger.UpdateProposalByProfessor(v.ctx, professor, params)
	require.ErrorIs(t, err, ledger.ErrConstraintViolation)
}

func TestHighRankDecision(t *testing.T) {
	for _, approve := range []bool{true, false} {
		v, professor := newReviewFixture(t)
		decision := ledger.HighRankDecisionParams{ProposalRef: v.ref, Approve: approve}

		// The review must come first
		_, err := v.ledger.UpdateProposalByHighRank(v.ctx, v.admin, decision)
		require.ErrorIs(t, err, ledger.ErrInvalidStateTransition)

		_, err = v.ledger.UpdateProposalByProfessor(v.ctx, professor, ledger.ProfessorReviewParams{
			ProposalRef: v.ref,
			Reference:   "ref",
		})
		require.NoError(t, err)

		_, err = v.ledger.UpdateProposalByHighRank(v.ctx, v.creator, decision)
		require.ErrorIs(t, err, ledger.ErrAuthorizationFailure)

		state, err := v.ledger.UpdateProposalByHighRank(v.ctx, v.admin, decision)
		require.NoError(t, err)
		if approve {
			assert.Equal(t, models.ProposalStateAccepted, state)
		} else {
			assert.Equal(t, models.ProposalStateRejected, state)
		}
		proposal, err := v.ledger.GetProposal(testSubjectCode, 1)
		require.NoError(t, err)
		assert.Equal(t, state, proposal.State)

		_, err = v.ledger.UpdateProposalByHighRank(v.ctx, v.admin, decision)
		require.ErrorIs(t, err, ledger.ErrInvalidStateTransition)
	}
}

func TestDeleteRejectedProposal(t *testing.T) {
	v := newVotingFixture(t)
	// Not rejected yet
	_, err := v.ledger.DeleteRejectedProposalAccount(v.ctx, v.admin, v.ref)
	require.ErrorIs(t, err, ledger.ErrInvalidStateTransition)

	states := v.castVotes(func(int) bool { return false })
	require.Equal(t, models.ProposalStateRejected, states[len(states)-1])

	_, err = v.ledger.DeleteRejectedProposalAccount(v.ctx, v.creator, v.ref)
	require.ErrorIs(t, err, ledger.ErrAuthorizationFailure)

	_, deletedCh := v.eventBus.Subscribe(event.ProposalDeletedEventType)
	ok, err := v.ledger.DeleteRejectedProposalAccount(v.ctx, v.admin, v.ref)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = v.ledger.GetProposal(testSubjectCode, 1)
	require.ErrorIs(t, err, ledger.ErrNotFound)
	_, err = v.ledger.GetProfessorProposal(testSubjectCode, 1)
	require.ErrorIs(t, err, ledger.ErrNotFound)
	for _, voter := range v.voters {
		voted, err := v.ledger.HasVoted(testSubjectCode, 1, voter)
		require.NoError(t, err)
		assert.False(t, voted)
	}
	votes, err := v.ledger.CountVotes(testSubjectCode, 1)
	require.NoError(t, err)
	assert.Zero(t, votes)
	evt := receiveEvent(t, deletedCh)
	data, ok := evt.Data.(event.ProposalDeletedEvent)
	require.True(t, ok)
	assert.Equal(t, 21, data.ReceiptsRemoved)

	indexes, err := v.ledger.ListProposals("")
	require.NoError(t, err)
	assert.Empty(t, indexes)

	_, err = v.ledger.DeleteRejectedProposalAccount(v.ctx, v.admin, v.ref)
	require.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestDeleteProposalRejectedByHighRank(t *testing.T) {
	v, professor := newReviewFixture(t)
	_, err := v.ledger.UpdateProposalByProfessor(v.ctx, professor, ledger.ProfessorReviewParams{
		ProposalRef: v.ref,
		Reference:   "ref",
	})
	require.NoError(t, err)
	_, err = v.ledger.UpdateProposalByHighRank(v.ctx, v.admin, ledger.HighRankDecisionParams{
		ProposalRef: v.ref,
		Approve:     false,
	})
	require.NoError(t, err)
	_, err = v.ledger.DeleteRejectedProposalAccount(v.ctx, v.admin, v.ref)
	require.NoError(t, err)
	// The completed review goes with the proposal
	_, err = v.ledger.GetProfessorProposal(testSubjectCode, 1)
	require.ErrorIs(t, err, ledger.ErrNotFound)
	_, err = v.ledger.GetProposal(testSubjectCode, 1)
	require.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestListProposalsInvalidState(t *testing.T) {
	f := newFixture(t)
	_, err := f.ledger.ListProposals("Bogus")
	require.ErrorIs(t, err, ledger.ErrConstraintViolation)
}
