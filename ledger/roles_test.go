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
	"github.com/blinklabs-io/academia/ledger"
)

func TestCreateHighRankTakesCounterValue(t *testing.T) {
	f := newFixture(t).withRoleCounters()
	before, err := f.ledger.GetIdGenerator("highRank")
	require.NoError(t, err)

	role, err := f.ledger.CreateHighRank(f.ctx, f.admin, "1111")
	require.NoError(t, err)
	assert.Equal(t, before.SmallerIdAvailable, role.ID)
	assert.Equal(t, models.RoleKindHighRank, role.Kind)
	assert.Equal(t, f.admin, role.Authority)
	assert.Empty(t, role.Subjects)

	after, err := f.ledger.GetIdGenerator("highRank")
	require.NoError(t, err)
	assert.Equal(t, before.SmallerIdAvailable+1, after.SmallerIdAvailable)

	stored, err := f.ledger.GetRole(models.RoleKindHighRank, f.admin)
	require.NoError(t, err)
	assert.Equal(t, ledger.HashCode("1111"), stored.IdentifierCodeHash)
	assert.NotContains(t, stored.IdentifierCodeHash, "1111")
}

func TestCreateRoleOccupiedAddress(t *testing.T) {
	f := newFixture(t).withRoleCounters()
	f.student(1, testSubjectCode)
	_, err := f.ledger.CreateStudent(f.ctx, identity(1), ledger.RoleParams{Code: "3333"})
	require.ErrorIs(t, err, ledger.ErrAlreadyInitialized)
	// The same identity may still hold an account of another kind
	f.professor(1, testSubjectCode)
}

func TestCreateRoleInvalidCode(t *testing.T) {
	f := newFixture(t).withRoleCounters()
	_, err := f.ledger.CreateHighRank(f.ctx, f.admin, "2222")
	require.ErrorIs(t, err, ledger.ErrInvalidIdentifierCode)
	_, err = f.ledger.CreateProfessor(f.ctx, identity(1), ledger.RoleParams{Code: "1111"})
	require.ErrorIs(t, err, ledger.ErrInvalidIdentifierCode)
	_, err = f.ledger.CreateStudent(f.ctx, identity(1), ledger.RoleParams{Code: ""})
	require.ErrorIs(t, err, ledger.ErrInvalidIdentifierCode)

	// Failed creations do not consume ids
	gen, err := f.ledger.GetIdGenerator("student")
	require.NoError(t, err)
	assert.Zero(t, gen.SmallerIdAvailable)
}

func TestCreateRoleMissingCounter(t *testing.T) {
	f := newFixture(t)
	_, err := f.ledger.CreateStudent(f.ctx, identity(1), ledger.RoleParams{Code: "3333"})
	require.ErrorIs(t, err, ledger.ErrNotFound)
	_, err = f.ledger.GetRole(models.RoleKindStudent, identity(1))
	require.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestCreateRoleStoresSubjects(t *testing.T) {
	f := newFixture(t).withRoleCounters()
	f.student(1, 43600, 12)
	f.student(2)
	role, err := f.ledger.GetRole(models.RoleKindStudent, identity(1))
	require.NoError(t, err)
	assert.Equal(t, []uint32{43600, 12}, role.Subjects)
	assert.True(t, role.BelongsTo(12))
	role, err = f.ledger.GetRole(models.RoleKindStudent, identity(2))
	require.NoError(t, err)
	assert.Equal(t, uint32(1), role.ID)
	assert.False(t, role.BelongsTo(43600))
}

func TestCustomCanonicalCodes(t *testing.T) {
	f := newFixture(t)
	params := ledger.DefaultParams()
	params.StudentCode = "learner"
	l, err := ledger.NewLedger(ledger.LedgerConfig{Database: f.db, Params: params})
	require.NoError(t, err)
	_, err = l.CreateIdGeneratorFor(f.ctx, f.admin, ledger.IdGeneratorParams{Namespace: "student"})
	require.NoError(t, err)
	_, err = l.CreateStudent(f.ctx, identity(1), ledger.RoleParams{Code: "3333"})
	require.ErrorIs(t, err, ledger.ErrInvalidIdentifierCode)
	_, err = l.CreateStudent(f.ctx, identity(1), ledger.RoleParams{Code: "learner"})
	require.NoError(t, err)
}

func TestInitializeSystem(t *testing.T) {
	f := newFixture(t).withRoleCounters()
	initialized, err := f.ledger.IsSystemInitialized()
	require.NoError(t, err)
	assert.False(t, initialized)

	// Only an administrator can initialize
	_, err = f.ledger.InitializeSystem(f.ctx, f.admin)
	require.ErrorIs(t, err, ledger.ErrAuthorizationFailure)

	_, err = f.ledger.CreateHighRank(f.ctx, f.admin, "1111")
	require.NoError(t, err)
	ok, err := f.ledger.InitializeSystem(f.ctx, f.admin)
	require.NoError(t, err)
	assert.True(t, ok)

	initialized, err = f.ledger.IsSystemInitialized()
	require.NoError(t, err)
	assert.True(t, initialized)
	for _, namespace := range []string{"faculty", "degree", "specialty", "subject"} {
		gen, err := f.ledger.GetIdGenerator(namespace)
		require.NoError(t, err)
		assert.Equal(t, uint32(1), gen.SmallerIdAvailable, namespace)
	}

	_, err = f.ledger.InitializeSystem(f.ctx, f.admin)
	require.ErrorIs(t, err, ledger.ErrAlreadyInitialized)
}

func TestInitializeSystemCounterCannotBePreempted(t *testing.T) {
	f := newFixture(t).withRoleCounters()
	_, err := f.ledger.CreateHighRank(f.ctx, f.admin, "1111")
	require.NoError(t, err)
	_, err = f.ledger.CreateIdGeneratorFor(f.ctx, identity(77), ledger.IdGeneratorParams{Namespace: "faculty"})
	require.ErrorIs(t, err, ledger.ErrConstraintViolation)
	initialized, err := f.ledger.InitializeSystem(f.ctx, f.admin)
	require.NoError(t, err)
	assert.True(t, initialized)
	gen, err := f.ledger.GetIdGenerator("faculty")
	require.NoError(t, err)
	assert.Equal(t, uint32(1), gen.SmallerIdAvailable)
}
