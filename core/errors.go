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

import "errors"

// Domain validation errors
var (
	// ErrInvalidResult indicates a Result failed validation.
	ErrInvalidResult = errors.New("invalid result")

	// ErrEmptySourceID indicates the SourceID field is empty.
	ErrEmptySourceID = errors.New("source id cannot be empty")

	// ErrEmptyLanguage indicates the Language field is empty.
	ErrEmptyLanguage = errors.New("language cannot be empty")

	// ErrEmptySummary indicates the Summary field is empty.
	ErrEmptySummary = errors.New("summary cannot be empty")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")
)
