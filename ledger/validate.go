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
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validator.Validate caches struct metadata and is safe for concurrent use
var paramValidator = validator.New(validator.WithRequiredStructEnabled())

// validateParams checks the struct tags of operation parameters. Failures are
// reported as ErrConstraintViolation naming the offending fields
func validateParams(params any) error {
	err := paramValidator.Struct(params)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("%w: %w", ErrConstraintViolation, err)
	}
	fields := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fields = append(
			fields,
			fmt.Sprintf("%s (%s)", fieldErr.Field(), fieldErr.Tag()),
		)
	}
	return fmt.Errorf(
		"%w: invalid %s",
		ErrConstraintViolation,
		strings.Join(fields, ", "),
	)
}
