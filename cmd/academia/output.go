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

package main

import (
	"encoding/json"
	"io"

	"github.com/blinklabs-io/academia/address"
	"github.com/blinklabs-io/academia/database/models"
)

type roleView struct {
	Kind      string   `json:"kind"`
	Authority string   `json:"authority"`
	Subjects  []uint32 `json:"subjects,omitempty"`
	ID        uint32   `json:"id"`
	Rewards   uint32   `json:"rewards"`
}

type subjectView struct {
	Name        string   `json:"name"`
	Course      string   `json:"course"`
	Reference   string   `json:"reference"`
	Professors  []uint32 `json:"professors"`
	Students    []uint32 `json:"students"`
	ID          uint32   `json:"id"`
	DegreeID    uint32   `json:"degreeId"`
	SpecialtyID uint32   `json:"specialtyId"`
	Code        uint32   `json:"code"`
}

type proposalView struct {
	Title                string `json:"title"`
	Content              string `json:"content"`
	State                string `json:"state"`
	CreatorKind          string `json:"creatorKind"`
	Creator              string `json:"creator"`
	PublishingTimestamp  int64  `json:"publishingTimestamp"`
	EndingTimestamp      int64  `json:"endingTimestamp"`
	ID                   uint32 `json:"id"`
	SubjectCode          uint32 `json:"subjectCode"`
	SubjectID            uint32 `json:"subjectId"`
	CreatorID            uint32 `json:"creatorId"`
	ExpectedVotes        uint32 `json:"expectedVotes"`
	SupportingVotes      uint32 `json:"supportingVotes"`
	AgainstVotes         uint32 `json:"againstVotes"`
	ProfessorProposalID  uint32 `json:"professorProposalId,omitempty"`
	HasProfessorProposal bool   `json:"hasProfessorProposal"`
}

type reviewView struct {
	Name                string `json:"name"`
	State               string `json:"state"`
	Reference           string `json:"reference"`
	PublishingTimestamp int64  `json:"publishingTimestamp"`
	EndingTimestamp     int64  `json:"endingTimestamp"`
	ID                  uint32 `json:"id"`
	OriginalProposalID  uint32 `json:"originalProposalId"`
	SubjectCode         uint32 `json:"subjectCode"`
}

// outputValue converts ledger records into their printable form. Identities
// and addresses print in their string encodings and enums by name
func outputValue(v any) any {
	switch r := v.(type) {
	case *models.RoleAccount:
		return roleView{
			Kind:      r.Kind.String(),
			Authority: r.Authority.String(),
			Subjects:  r.Subjects,
			ID:        r.ID,
			Rewards:   r.Rewards,
		}
	case *models.Subject:
		return subjectView{
			Name:        r.Name,
			Course:      r.Course.String(),
			Reference:   r.Reference,
			Professors:  r.Professors,
			Students:    r.Students,
			ID:          r.ID,
			DegreeID:    r.DegreeID,
			SpecialtyID: r.SpecialtyID,
			Code:        r.Code,
		}
	case *models.Proposal:
		return proposalView{
			Title:                r.Title,
			Content:              r.Content,
			State:                r.State.String(),
			CreatorKind:          r.CreatorKind.String(),
			Creator:              r.CreatorIdentity.String(),
			PublishingTimestamp:  r.PublishingTimestamp,
			EndingTimestamp:      r.EndingTimestamp,
			ID:                   r.ID,
			SubjectCode:          r.SubjectCode,
			SubjectID:            r.SubjectID,
			CreatorID:            r.CreatorID,
			ExpectedVotes:        r.ExpectedVotes,
			SupportingVotes:      r.SupportingVotes,
			AgainstVotes:         r.AgainstVotes,
			ProfessorProposalID:  r.AssociatedProfessorProposalID,
			HasProfessorProposal: r.HasProfessorProposal,
		}
	case *models.ProfessorProposal:
		return reviewView{
			Name:                r.Name,
			State:               r.State.String(),
			Reference:           r.Reference,
			PublishingTimestamp: r.PublishingTimestamp,
			EndingTimestamp:     r.EndingTimestamp,
			ID:                  r.ID,
			OriginalProposalID:  r.OriginalProposalID,
			SubjectCode:         r.SubjectCode,
		}
	case models.ProposalState:
		return map[string]string{"state": r.String()}
	case address.Address:
		return map[string]string{"address": r.String()}
	default:
		return v
	}
}

func printResult(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(outputValue(v))
}
