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

package ingestion

import (
	"errors"
	"fmt"
)

// ErrResultRepositoryRequired is returned when a pipeline is created without
// a result repository.
var ErrResultRepositoryRequired = errors.New("result repository required")

// ErrAIProviderRequired is returned when a pipeline is created without an AI
// provider.
var ErrAIProviderRequired = errors.New("AI provider required")

// ErrObjectStoreRequired is returned by ProcessVideo when the pipeline was
// created without an object store.
var ErrObjectStoreRequired = errors.New("object store required")

// ErrTranscriptSourceRequired is returned by ProcessRemote when the pipeline
// was created without a transcript source.
var ErrTranscriptSourceRequired = errors.New("transcript source required")

// ErrEmptyTranscript is returned when a transcript run is started with no
// transcript text.
var ErrEmptyTranscript = errors.New("transcript is empty")

// PersistenceError indicates a generated result could not be stored. The run
// itself succeeded; callers surface this as a warning, not a failure.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persisting result: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
