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

package models_test

import (
	"testing"

	"github.com/blinklabs-io/gouroboros/cbor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blinklabs-io/academia/address"
	"github.com/blinklabs-io/academia/database/models"
)

func TestCodeSubjectRelation(t *testing.T) {
	var rel models.CodeSubjectRelation
	_, ok := rel.SubjectID(43600)
	assert.False(t, ok)
	require.True(t, rel.Add(43600, 1))
	require.True(t, rel.Add(43601, 2))
	assert.False(t, rel.Add(43600, 3), "duplicate code must be refused")
	id, ok := rel.SubjectID(43601)
	require.True(t, ok)
	assert.Equal(t, uint32(2), id)
	assert.Len(t, rel.Codes, 2)
	assert.Len(t, rel.SubjectIDs, 2)
}

func TestProposalStateNames(t *testing.T) {
	for _, state := range []models.ProposalState{
		models.ProposalStateVotationInProgress,
		models.ProposalStateWaitingForTeacher,
		models.ProposalStateWaitingForHighRank,
		models.ProposalStateAccepted,
		models.ProposalStateRejected,
		models.ProposalStateSettled,
	} {
		parsed, err := models.ParseProposalState(state.String())
		require.NoError(t, err)
		assert.Equal(t, state, parsed)
	}
	_, err := models.ParseProposalState("NotStarted")
	assert.Error(t, err)
	assert.Equal(t, "WaitingForTeacher", models.ProposalStateWaitingForTeacher.String())
}

func TestSubjectCourse(t *testing.T) {
	course, err := models.ParseSubjectCourse("Third")
	require.NoError(t, err)
	assert.Equal(t, models.SubjectCourseThird, course)
	assert.True(t, course.Valid())
	assert.False(t, models.SubjectCourse(42).Valid())
	_, err = models.ParseSubjectCourse("Tenth")
	assert.Error(t, err)
}

func TestRoleAccountMembership(t *testing.T) {
	role := models.RoleAccount{
		Kind:     models.RoleKindStudent,
		Subjects: []uint32{43600, 1},
	}
	assert.True(t, role.BelongsTo(43600))
	assert.False(t, role.BelongsTo(2))
	kind, err := models.ParseRoleKind("professor")
	require.NoError(t, err)
	assert.Equal(t, models.RoleKindProfessor, kind)
}

func TestProposalCborRecord(t *testing.T) {
	var creator address.Identity
	creator[0] = 0x42
	orig := models.Proposal{
		ID:                            1,
		SubjectCode:                   43600,
		CreatorKind:                   models.RoleKindStudent,
		CreatorIdentity:               creator,
		Title:                         "Project",
		PublishingTimestamp:           1000,
		EndingTimestamp:               1000 + 2_592_000,
		ExpectedVotes:                 21,
		State:                         models.ProposalStateVotationInProgress,
		AssociatedProfessorProposalID: 1,
	}
	data, err := cbor.Encode(&orig)
	require.NoError(t, err)
	var decoded models.Proposal
	_, err = cbor.Decode(data, &decoded)
	require.NoError(t, err)
	assert.Equal(t, orig.CreatorIdentity, decoded.CreatorIdentity)
	assert.Equal(t, orig.State, decoded.State)
	assert.Equal(t, orig.EndingTimestamp, decoded.EndingTimestamp)
	assert.Equal(t, orig.Title, decoded.Title)
}
