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

import "time"

// ProposalIndex mirrors the searchable fields of a proposal record so that
// proposals can be listed by state without scanning the blob store
type ProposalIndex struct {
	UpdatedAt       time.Time
	Title           string `gorm:"size:100;not null"`
	State           string `gorm:"size:32;index;not null"`
	CreatorKind     string `gorm:"size:16;not null"`
	Creator         string `gorm:"size:64;index;not null"` // hex identity
	ID              uint   `gorm:"primarykey"`
	EndingTimestamp int64  `gorm:"not null"`
	SubjectCode     uint32 `gorm:"uniqueIndex:idx_proposal_index_code_id,priority:1;not null"`
	ProposalID      uint32 `gorm:"uniqueIndex:idx_proposal_index_code_id,priority:2;not null"`
	SubjectID       uint32 `gorm:"index;not null"`
}

// TableName returns the table name
func (ProposalIndex) TableName() string {
	return "proposal_index"
}
