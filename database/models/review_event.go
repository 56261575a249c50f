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

// ReviewEvent records every review request raised when a proposal reached
// quorum in favor
type ReviewEvent struct {
	CreatedAt   time.Time
	ID          uint   `gorm:"primarykey"`
	SubjectCode uint32 `gorm:"index;not null"`
	ProposalID  uint32 `gorm:"not null"`
	ReviewID    uint32 `gorm:"not null"`
}

// TableName returns the table name
func (ReviewEvent) TableName() string {
	return "review_event"
}
