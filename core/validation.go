// Copyright 2025 Poiesic Systems
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

package core

import (
	"fmt"
	"time"
)

// ValidateResult validates a Result according to domain rules.
//
// Validation rules:
//   - SourceID must not be empty
//   - Language must not be empty
//   - Summary must not be empty
//   - CreatedAt must not be in the future
//
// NOT validated:
//   - Transcript (a summary-only run is legal for text sources)
//   - Title and DurationSeconds (best-effort metadata)
//   - ID (derived from SourceID and Language at save time)
func ValidateResult(result *Result) error {
	if result == nil {
		return fmt.Errorf("%w: result is nil", ErrInvalidResult)
	}

	if result.SourceID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidResult, ErrEmptySourceID)
	}

	if result.Language == "" {
		return fmt.Errorf("%w: %w", ErrInvalidResult, ErrEmptyLanguage)
	}

	if result.Summary == "" {
		return fmt.Errorf("%w: %w", ErrInvalidResult, ErrEmptySummary)
	}

	if !result.CreatedAt.IsZero() && !IsValidTimestamp(result.CreatedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidResult, ErrInvalidTimestamp)
	}

	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
