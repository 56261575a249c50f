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
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

const (
	DefaultHighRankCode  = "1111"
	DefaultProfessorCode = "2222"
	DefaultStudentCode   = "3333"

	// DefaultBaseExtraVotes is added to the enrolled members of a subject
	// to get the number of votes a proposal waits for
	DefaultBaseExtraVotes = 20
	// DefaultVotingPeriod is the lifetime of a proposal in seconds (30 days)
	DefaultVotingPeriod = 2_592_000
	DefaultRewardAmount = 10

	DefaultMinSubjectCode = 1
	DefaultMaxSubjectCode = 999_999
)

// Params holds the tunable constants of the ledger
type Params struct {
	HighRankCode   string `yaml:"highRankCode"   envconfig:"HIGH_RANK_CODE"   validate:"required,max=64"`
	ProfessorCode  string `yaml:"professorCode"  envconfig:"PROFESSOR_CODE"   validate:"required,max=64"`
	StudentCode    string `yaml:"studentCode"    envconfig:"STUDENT_CODE"     validate:"required,max=64"`
	BaseExtraVotes uint32 `yaml:"baseExtraVotes" envconfig:"BASE_EXTRA_VOTES"`
	VotingPeriod   int64  `yaml:"votingPeriod"   envconfig:"VOTING_PERIOD"    validate:"gt=0"`
	RewardAmount   uint64 `yaml:"rewardAmount"   envconfig:"REWARD_AMOUNT"    validate:"gt=0"`
	MinSubjectCode uint32 `yaml:"minSubjectCode" envconfig:"MIN_SUBJECT_CODE"`
	MaxSubjectCode uint32 `yaml:"maxSubjectCode" envconfig:"MAX_SUBJECT_CODE" validate:"gtefield=MinSubjectCode"`
}

func DefaultParams() Params {
	return Params{
		HighRankCode:   DefaultHighRankCode,
		ProfessorCode:  DefaultProfessorCode,
		StudentCode:    DefaultStudentCode,
		BaseExtraVotes: DefaultBaseExtraVotes,
		VotingPeriod:   DefaultVotingPeriod,
		RewardAmount:   DefaultRewardAmount,
		MinSubjectCode: DefaultMinSubjectCode,
		MaxSubjectCode: DefaultMaxSubjectCode,
	}
}

// HashCode returns the stored form of a secret code
func HashCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

func (p *Params) validate() error {
	if err := paramValidator.Struct(p); err != nil {
		return fmt.Errorf("invalid ledger params: %w", err)
	}
	return nil
}
