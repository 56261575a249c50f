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

import "errors"

var (
	ErrAlreadyInitialized     = errors.New("already initialized")
	ErrNotFound               = errors.New("not found")
	ErrConstraintViolation    = errors.New("constraint violation")
	ErrRangeViolation         = errors.New("range violation")
	ErrAuthorizationFailure   = errors.New("authorization failure")
	ErrMembershipFailure      = errors.New("membership failure")
	ErrDuplicateVote          = errors.New("duplicate vote")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrInvalidIdentifierCode  = errors.New("invalid identifier code")
	// ErrStaleRecord is returned when a record read by the operation was
	// changed by a concurrent operation before it could commit. The caller
	// may resubmit
	ErrStaleRecord = errors.New("stale record")
)

// errorResult returns the metric label for an operation error
func errorResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrAlreadyInitialized):
		return "already_initialized"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrConstraintViolation):
		return "constraint_violation"
	case errors.Is(err, ErrRangeViolation):
		return "range_violation"
	case errors.Is(err, ErrAuthorizationFailure):
		return "authorization_failure"
	case errors.Is(err, ErrMembershipFailure):
		return "membership_failure"
	case errors.Is(err, ErrDuplicateVote):
		return "duplicate_vote"
	case errors.Is(err, ErrInvalidStateTransition):
		return "invalid_state_transition"
	case errors.Is(err, ErrInvalidIdentifierCode):
		return "invalid_identifier_code"
	case errors.Is(err, ErrStaleRecord):
		return "stale_record"
	default:
		return "error"
	}
}
