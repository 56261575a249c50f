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
)

type FacultyParams struct {
	ID   int64  `validate:"gte=0"`
	Name string `validate:"required,max=200"`
}

type DegreeParams struct {
	ID        int64  `validate:"gte=0"`
	Name      string `validate:"required,max=200"`
	FacultyID int64  `validate:"gte=0,lte=4294967295"`
}

type SpecialtyParams struct {
	ID       int64  `validate:"gte=0"`
	Name     string `validate:"required,max=200"`
	DegreeID int64  `validate:"gte=0,lte=4294967295"`
}

type SubjectParams struct {
	ID          int64                `validate:"gte=0"`
	Name        string               `validate:"required,max=200"`
	DegreeID    int64                `validate:"gte=0,lte=4294967295"`
	SpecialtyID int64                `validate:"gte=0,lte=4294967295"`
	Course      models.SubjectCourse `validate:"lte=9"`
	Code        int64
	Reference   string  `validate:"max=200"`
	Professors  []int64 `validate:"max=256,dive,gte=0"`
	Students    []int64 `validate:"max=4096,dive,gte=0"`
}

// hierarchyPreamble runs the checks shared by every curriculum operation
func (l *Ledger) hierarchyPreamble(
	signer address.Identity,
	params any,
	txn *database.Txn,
) error {
	if _, err := l.authorizeHighRank(signer, txn); err != nil {
		return err
	}
	if err := l.requireInitialized(txn); err != nil {
		return err
	}
	return validateParams(params)
}

func (l *Ledger) CreateFaculty(
	ctx context.Context,
	signer address.Identity,
	params FacultyParams,
) (*models.Faculty, error) {
	var ret *models.Faculty
	_, err := l.execute(ctx, "createFaculty", signer, func(op *operation) error {
		if err := l.hierarchyPreamble(signer, params, op.txn); err != nil {
			return err
		}
		id, err := l.expectId(IdGeneratorAddress(FacultyNamespace), params.ID, op.txn)
		if err != nil {
			return err
		}
		op.target = FacultyAddress(id)
		faculty := &models.Faculty{ID: id, Name: params.Name}
		if err := l.createRecord(op.target, faculty, op.txn, "faculty"); err != nil {
			return err
		}
		ret = faculty
		op.status = "true"
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}

func (l *Ledger) CreateDegree(
	ctx context.Context,
	signer address.Identity,
	params DegreeParams,
) (*models.Degree, error) {
	var ret *models.Degree
	_, err := l.execute(ctx, "createDegree", signer, func(op *operation) error {
		if err := l.hierarchyPreamble(signer, params, op.txn); err != nil {
			return err
		}
		facultyID := uint32(params.FacultyID) //nolint:gosec // range checked by validator
		if err := l.loadRecord(
			FacultyAddress(facultyID),
			&models.Faculty{},
			op.txn,
			"faculty",
		); err != nil {
			return err
		}
		id, err := l.expectId(IdGeneratorAddress(DegreeNamespace), params.ID, op.txn)
		if err != nil {
			return err
		}
		op.target = DegreeAddress(id)
		degree := &models.Degree{
			ID:        id,
			Name:      params.Name,
			FacultyID: facultyID,
		}
		if err := l.createRecord(op.target, degree, op.txn, "degree"); err != nil {
			return err
		}
		ret = degree
		op.status = "true"
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}

func (l *Ledger) CreateSpecialty(
	ctx context.Context,
	signer address.Identity,
	params SpecialtyParams,
) (*models.Specialty, error) {
	var ret *models.Specialty
	_, err := l.execute(ctx, "createSpecialty", signer, func(op *operation) error {
		if err := l.hierarchyPreamble(signer, params, op.txn); err != nil {
			return err
		}
		degreeID := uint32(params.DegreeID) //nolint:gosec // range checked by validator
		if err := l.loadRecord(
			DegreeAddress(degreeID),
			&models.Degree{},
			op.txn,
			"degree",
		); err != nil {
			return err
		}
		id, err := l.expectId(IdGeneratorAddress(SpecialtyNamespace), params.ID, op.txn)
		if err != nil {
			return err
		}
		op.target = SpecialtyAddress(id)
		specialty := &models.Specialty{
			ID:       id,
			Name:     params.Name,
			DegreeID: degreeID,
		}
		if err := l.createRecord(op.target, specialty, op.txn, "specialty"); err != nil {
			return err
		}
		ret = specialty
		op.status = "true"
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// CreateSubject creates a subject, registers its code and opens the proposal
// and review counters of the code
func (l *Ledger) CreateSubject(
	ctx context.Context,
	signer address.Identity,
	params SubjectParams,
) (*models.Subject, error) {
	var ret *models.Subject
	_, err := l.execute(ctx, "createSubject", signer, func(op *operation) error {
		if err := l.hierarchyPreamble(signer, params, op.txn); err != nil {
			return err
		}
		code, err := l.checkSubjectCode(params.Code)
		if err != nil {
			return err
		}
		degreeID := uint32(params.DegreeID)       //nolint:gosec // range checked by validator
		specialtyID := uint32(params.SpecialtyID) //nolint:gosec // range checked by validator
		if err := l.loadRecord(
			DegreeAddress(degreeID),
			&models.Degree{},
			op.txn,
			"degree",
		); err != nil {
			return err
		}
		specialty := &models.Specialty{}
		if err := l.loadRecord(
			SpecialtyAddress(specialtyID),
			specialty,
			op.txn,
			"specialty",
		); err != nil {
			return err
		}
		if specialty.DegreeID != degreeID {
			return fmt.Errorf(
				"%w: specialty %d belongs to degree %d, not %d",
				ErrConstraintViolation,
				specialtyID,
				specialty.DegreeID,
				degreeID,
			)
		}
		professors, err := l.checkMemberIds(
			models.RoleKindProfessor,
			params.Professors,
			op.txn,
		)
		if err != nil {
			return err
		}
		students, err := l.checkMemberIds(
			models.RoleKindStudent,
			params.Students,
			op.txn,
		)
		if err != nil {
			return err
		}
		id, err := l.expectId(IdGeneratorAddress(SubjectNamespace), params.ID, op.txn)
		if err != nil {
			return err
		}
		if err := l.registerSubjectCode(code, id, op.txn); err != nil {
			return err
		}
		op.target = SubjectAddress(id)
		subject := &models.Subject{
			ID:          id,
			Name:        params.Name,
			DegreeID:    degreeID,
			SpecialtyID: specialtyID,
			Course:      params.Course,
			Code:        code,
			Reference:   params.Reference,
			Professors:  professors,
			Students:    students,
		}
		if err := l.createRecord(op.target, subject, op.txn, "subject"); err != nil {
			return err
		}
		if err := l.createScopedIdGenerator(ProposalNamespace, code, 1, op.txn); err != nil {
			return err
		}
		if err := l.createScopedIdGenerator(ProfessorProposalNamespace, code, 1, op.txn); err != nil {
			return err
		}
		ret = subject
		op.status = "true"
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}

func (l *Ledger) checkSubjectCode(code int64) (uint32, error) {
	if code < int64(l.config.Params.MinSubjectCode) ||
		code > int64(l.config.Params.MaxSubjectCode) {
		return 0, fmt.Errorf(
			"%w: subject code %d outside [%d, %d]",
			ErrRangeViolation,
			code,
			l.config.Params.MinSubjectCode,
			l.config.Params.MaxSubjectCode,
		)
	}
	return uint32(code), nil //nolint:gosec // bounded by MaxSubjectCode
}

// checkMemberIds verifies that every id has already been handed out by the
// role counter of kind
func (l *Ledger) checkMemberIds(
	kind models.RoleKind,
	ids []int64,
	txn *database.Txn,
) ([]uint32, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	next, err := l.currentId(IdGeneratorAddress(kind.String()), txn)
	if err != nil {
		return nil, err
	}
	ret := make([]uint32, 0, len(ids))
	for _, id := range ids {
		if id >= int64(next) {
			return nil, fmt.Errorf(
				"%w: incorrect %s id %d",
				ErrConstraintViolation,
				kind,
				id,
			)
		}
		ret = append(ret, uint32(id)) //nolint:gosec // bounded by the counter
	}
	return ret, nil
}
