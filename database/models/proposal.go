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

	"github.com/blinklabs-io/academia/address"
	"github.com/blinklabs-io/gouroboros/cbor"
)

// ProposalState is the stage of a proposal in the voting workflow
type ProposalState uint8

const (
	ProposalStateVotationInProgress ProposalState = iota + 1
	ProposalStateWaitingForTeacher
	ProposalStateWaitingForHighRank
	ProposalStateAccepted
	ProposalStateRejected
	// ProposalStateSettled marks an accepted proposal whose author has been
	// paid
	ProposalStateSettled
)

var proposalStateNames = map[ProposalState]string{
	ProposalStateVotationInProgress: "VotationInProgress",
	ProposalStateWaitingForTeacher:  "WaitingForTeacher",
	ProposalStateWaitingForHighRank: "WaitingForHighRank",
	ProposalStateAccepted:           "Accepted",
	ProposalStateRejected:           "Rejected",
	ProposalStateSettled:            "Settled",
}

func (s ProposalState) String() string {
	if name, ok := proposalStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", uint8(s))
}

// ParseProposalState returns the state for its name
func ParseProposalState(s string) (ProposalState, error) {
	for state, name := range proposalStateNames {
		if name == s {
			return state, nil
		}
	}
	return 0, fmt.Errorf("unknown proposal state: %s", s)
}

// ProfessorProposalState is the stage of a review record
type ProfessorProposalState uint8

const (
	ProfessorProposalStatePending ProfessorProposalState = iota + 1
	ProfessorProposalStateComplete
)

func (s ProfessorProposalState) String() string {
	switch s {
	case ProfessorProposalStatePending:
		return "Pending"
	case ProfessorProposalStateComplete:
		return "Complete"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

// Proposal is a learning project put to a vote among the members of a
// subject. ID is scoped by SubjectCode
type Proposal struct {
	cbor.StructAsArray
	ID                            uint32
	SubjectCode                   uint32
	SubjectID                     uint32
	CreatorID                     uint32
	CreatorKind                   RoleKind
	CreatorIdentity               address.Identity
	Title                         string
	Content                       string
	PublishingTimestamp           int64
	EndingTimestamp               int64
	ExpectedVotes                 uint32
	SupportingVotes               uint32
	AgainstVotes                  uint32
	State                         ProposalState
	AssociatedProfessorProposalID uint32
	// HasProfessorProposal is set once the review record exists
	HasProfessorProposal bool
}

// VotesCast returns the number of votes recorded so far
func (p *Proposal) VotesCast() uint32 {
	return p.SupportingVotes + p.AgainstVotes
}

// ProfessorProposal is the review record a professor completes once a
// proposal wins its vote
type ProfessorProposal struct {
	cbor.StructAsArray
	ID                  uint32
	OriginalProposalID  uint32
	SubjectCode         uint32
	Name                string
	PublishingTimestamp int64
	EndingTimestamp     int64
	State               ProfessorProposalState
	Reference           string
}

// VoteReceipt records that a voter has cast a vote on a proposal
type VoteReceipt struct {
	cbor.StructAsArray
	Voter address.Identity
	Vote  bool
}
