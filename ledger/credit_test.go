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

	"github.com/blinklabs-io/academia/database/models"
	"github.com/blinklabs-io/academia/event"
	"github.com/blinklabs-io/academia/ledger"
	"github.com/blinklabs-io/academia/token"
)

func newAcceptedFixture(t *testing.T) *votingFixture {
	t.Helper()
	v, professor := newReviewFixture(t)
	_, err := v.ledger.UpdateProposalByProfessor(v.ctx, professor, ledger.ProfessorReviewParams{
		ProposalRef: v.ref,
		Reference:   "https://example.org/review/1",
	})
	require.NoError(t, err)
	state, err := v.ledger.UpdateProposalByHighRank(v.ctx, v.admin, ledger.HighRankDecisionParams{
		ProposalRef: v.ref,
		Approve:     true,
	})
	require.NoError(t, err)
	require.Equal(t, models.ProposalStateAccepted, state)
	return v
}

func TestGiveCreditsToWinningStudent(t *testing.T) {
	v := newAcceptedFixture(t)
	mintAddr, err := v.ledger.CreateCreditToken(v.ctx, v.admin, "1111")
	require.NoError(t, err)
	assert.Equal(t, token.MintAddress(), mintAddr)

	mint, err := token.New(v.db).GetMint(mintAddr, nil)
	require.NoError(t, err)
	assert.Equal(t, token.AuthorityAddress(mintAddr, "1111"), mint.Authority)

	before, err := v.ledger.CreditBalance(models.RoleKindStudent, v.creator)
	require.NoError(t, err)
	assert.Zero(t, before)

	_, creditsCh := v.eventBus.Subscribe(event.CreditsIssuedEventType)
	balance, err := v.ledger.GiveCreditsToWinningStudent(v.ctx, v.admin, ledger.CreditParams{
		ProposalRef: v.ref,
		SecretCode:  "1111",
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(10), balance)

	after, err := v.ledger.CreditBalance(models.RoleKindStudent, v.creator)
	require.NoError(t, err)
	assert.Equal(t, before+10, after)

	proposal, err := v.ledger.GetProposal(testSubjectCode, 1)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStateSettled, proposal.State)
	creator, err := v.ledger.GetRole(models.RoleKindStudent, v.creator)
	require.NoError(t, err)
	assert.Equal(t, uint32(10), creator.Rewards)

	evt := receiveEvent(t, creditsCh)
	data, ok := evt.Data.(event.CreditsIssuedEvent)
	require.True(t, ok)
	assert.Equal(t, uint64(10), data.Amount)
	assert.Equal(t, v.creator.String(), data.Owner)
	assert.InDelta(t, 10.0, counterValue(t, v.registry, "academia_ledger_credits_minted_total", nil), 0)

	// A settled proposal is paid only once
	_, err = v.ledger.GiveCreditsToWinningStudent(v.ctx, v.admin, ledger.CreditParams{
		ProposalRef: v.ref,
		SecretCode:  "1111",
	})
	require.ErrorIs(t, err, ledger.ErrInvalidStateTransition)
	after, err = v.ledger.CreditBalance(models.RoleKindStudent, v.creator)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), after)
}

func TestGiveCreditsChecks(t *testing.T) {
	v := newAcceptedFixture(t)
	params := ledger.CreditParams{ProposalRef: v.ref, SecretCode: "1111"}

	// The mint has not been created
	_, err := v.ledger.GiveCreditsToWinningStudent(v.ctx, v.admin, params)
	require.ErrorIs(t, err, ledger.ErrNotFound)

	_, err = v.ledger.CreateCreditToken(v.ctx, v.admin, "1234")
	require.ErrorIs(t, err, ledger.ErrAuthorizationFailure)
	_, err = v.ledger.CreateCreditToken(v.ctx, v.creator, "1111")
	require.ErrorIs(t, err, ledger.ErrAuthorizationFailure)
	_, err = v.ledger.CreateCreditToken(v.ctx, v.admin, "1111")
	require.NoError(t, err)
	_, err = v.ledger.CreateCreditToken(v.ctx, v.admin, "1111")
	require.ErrorIs(t, err, ledger.ErrAlreadyInitialized)

	wrongCode := params
	wrongCode.SecretCode = "2222"
	_, err = v.ledger.GiveCreditsToWinningStudent(v.ctx, v.admin, wrongCode)
	require.ErrorIs(t, err, ledger.ErrAuthorizationFailure)

	_, err = v.ledger.GiveCreditsToWinningStudent(v.ctx, v.creator, params)
	require.ErrorIs(t, err, ledger.ErrAuthorizationFailure)

	missing := params
	missing.ProposalID = 9
	_, err = v.ledger.GiveCreditsToWinningStudent(v.ctx, v.admin, missing)
	require.ErrorIs(t, err, ledger.ErrNotFound)

	balance, err := v.ledger.CreditBalance(models.RoleKindStudent, v.creator)
	require.NoError(t, err)
	assert.Zero(t, balance)
}

func TestGiveCreditsRequiresAcceptedProposal(t *testing.T) {
	v := newVotingFixture(t)
	_, err := v.ledger.CreateCreditToken(v.ctx, v.admin, "1111")
	require.NoError(t, err)
	_, err = v.ledger.GiveCreditsToWinningStudent(v.ctx, v.admin, ledger.CreditParams{
		ProposalRef: v.ref,
		SecretCode:  "1111",
	})
	require.ErrorIs(t, err, ledger.ErrInvalidStateTransition)
}
