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

// Operation is one journal row per committed ledger operation. Status holds
// the terminal status string the operation returned to its caller
type Operation struct {
	CreatedAt   time.Time `gorm:"index"`
	OperationID string    `gorm:"size:36;uniqueIndex;not null"`
	Name        string    `gorm:"size:64;index;not null"`
	Signer      string    `gorm:"size:64;index;not null"` // hex identity
	Status      string    `gorm:"size:64;not null"`
	Target      string    `gorm:"size:128"` // bech32 address of the primary record
	ID          uint      `gorm:"primarykey"`
}

// TableName returns the table name
func (Operation) TableName() string {
	return "operation"
}
