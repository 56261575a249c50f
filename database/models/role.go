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

package models

import (
	"fmt"
	"slices"

	"github.com/blinklabs-io/academia/address"
	"github.com/blinklabs-io/gouroboros/cbor"
)

type RoleKind uint8

const (
	RoleKindHighRank RoleKind = iota + 1
	RoleKindProfessor
	RoleKindStudent
)

// String returns the address namespace of the role kind
func (k RoleKind) String() string {
	switch k {
	case RoleKindHighRank:
		return "highRank"
	case RoleKindProfessor:
		return "professor"
	case RoleKindStudent:
		return "student"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// ParseRoleKind returns the role kind for its namespace name
func ParseRoleKind(s string) (RoleKind, error) {
	for _, k := range []RoleKind{RoleKindHighRank, RoleKindProfessor, RoleKindStudent} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown role kind: %s", s)
}

// RoleAccount is a high rank, professor or student account owned by a
// single identity. Subjects is empty for high rank accounts
type RoleAccount struct {
	cbor.StructAsArray
	Kind               RoleKind
	ID                 uint32
	IdentifierCodeHash string
	Authority          address.Identity
	Subjects           []uint32
	Rewards            uint32
}

// BelongsTo reports whether the account lists the subject code
func (r *RoleAccount) BelongsTo(subjectCode uint32) bool {
	return slices.Contains(r.Subjects, subjectCode)
}
