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

package event

const (
	ReviewCreatedEventType   EventType = "proposal.review_created"
	ProposalStateEventType   EventType = "proposal.state_changed"
	ProposalDeletedEventType EventType = "proposal.deleted"
	CreditsIssuedEventType   EventType = "credit.issued"
)

// ReviewCreatedEvent is emitted once a student vote reaches a favorable
// quorum and a professor review record has been opened for the proposal
type ReviewCreatedEvent struct {
	SubjectCode uint32
	ProposalID  uint32
	ReviewID    uint32
}

// ProposalStateEvent is emitted whenever a proposal changes state
type ProposalStateEvent struct {
	SubjectCode uint32
	ProposalID  uint32
	From        string
	To          string
}

type ProposalDeletedEvent struct {
	SubjectCode     uint32
	ProposalID      uint32
	ReceiptsRemoved int
}

// CreditsIssuedEvent is emitted after reward tokens reach a proposal author
type CreditsIssuedEvent struct {
	Owner       string
	SubjectCode uint32
	ProposalID  uint32
	Amount      uint64
}
