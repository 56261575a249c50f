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
	"github.com/blinklabs-io/academia/address"
	"github.com/blinklabs-io/academia/database/models"
)

// Address namespaces
const (
	SystemInitializationNamespace = "systemInitialization"
	CodeSubjectRelationNamespace  = "codeIdSubjectRelation"
	FacultyNamespace              = "faculty"
	DegreeNamespace               = "degree"
	SpecialtyNamespace            = "specialty"
	SubjectNamespace              = "subject"
	ProposalNamespace             = "proposal"
	ProfessorProposalNamespace    = "professorProposal"

	idHandlerSuffix = "IdHandler"
)

func SystemInitializationAddress() address.Address {
	return address.Derive(SystemInitializationNamespace)
}

func CodeSubjectRelationAddress() address.Address {
	return address.Derive(CodeSubjectRelationNamespace)
}

// IdGeneratorAddress returns the address of the counter for namespace
func IdGeneratorAddress(namespace string) address.Address {
	return address.Derive(namespace + idHandlerSuffix)
}

// ScopedIdGeneratorAddress returns the address of a counter scoped to a
// subject code
func ScopedIdGeneratorAddress(namespace string, subjectCode uint32) address.Address {
	return address.Derive(
		namespace+idHandlerSuffix,
		address.Uint32(subjectCode),
	)
}

func RoleAddress(kind models.RoleKind, owner address.Identity) address.Address {
	return address.Derive(kind.String(), address.FromIdentity(owner))
}

func FacultyAddress(id uint32) address.Address {
	return address.Derive(FacultyNamespace, address.Uint32(id))
}

func DegreeAddress(id uint32) address.Address {
	return address.Derive(DegreeNamespace, address.Uint32(id))
}

func SpecialtyAddress(id uint32) address.Address {
	return address.Derive(SpecialtyNamespace, address.Uint32(id))
}

func SubjectAddress(id uint32) address.Address {
	return address.Derive(SubjectNamespace, address.Uint32(id))
}

func ProposalAddress(id uint32, subjectCode uint32) address.Address {
	return address.Derive(
		ProposalNamespace,
		address.Uint32(id),
		address.Uint32(subjectCode),
	)
}

func ProfessorProposalAddress(id uint32, subjectCode uint32) address.Address {
	return address.Derive(
		ProfessorProposalNamespace,
		address.Uint32(id),
		address.Uint32(subjectCode),
	)
}
