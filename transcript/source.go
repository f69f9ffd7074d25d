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

// Package transcript fetches existing captions for remote media sources.
package transcript

import (
	"context"
	"fmt"
	"strings"
)

// Captions is a transcript fetched from a caption provider.
type Captions struct {
	Text     string
	Language string // language actually served, may differ from the request
}

// Metadata is best-effort descriptive information about a source.
type Metadata struct {
	Title           string
	SourceURL       string
	DurationSeconds int64
}

// Source provides captions and metadata for remote media.
type Source interface {
	// Fetch retrieves captions for a source in the given language.
	// An empty language lets the provider pick.
	Fetch(ctx context.Context, sourceID, language string) (*Captions, error)

	// Metadata retrieves descriptive information about a source.
	Metadata(ctx context.Context, sourceID string) (*Metadata, error)
}

// fallbackLanguages are tried, in order, after the requested language.
// The trailing empty entry lets the provider auto-pick.
var fallbackLanguages = []string{"en", "en-US", "en-GB", ""}

// FetchWithFallback tries the requested language first, then the standard
// fallback chain, returning the first non-empty transcript. If every
// candidate fails, the LAST error is returned: by the end of the chain the
// provider was choosing freely, so that error describes the source itself
// rather than a missing localization.
func FetchWithFallback(ctx context.Context, src Source, sourceID, requested string) (*Captions, error) {
	candidates := make([]string, 0, len(fallbackLanguages)+1)
	seen := make(map[string]bool)
	for _, lang := range append([]string{requested}, fallbackLanguages...) {
		key := strings.ToLower(lang)
		if seen[key] {
			continue
		}
		seen[key] = true
		candidates = append(candidates, lang)
	}

	var lastErr error
	for _, lang := range candidates {
		captions, err := src.Fetch(ctx, sourceID, lang)
		if err != nil {
			lastErr = err
			continue
		}
		if captions == nil || strings.TrimSpace(captions.Text) == "" {
			lastErr = fmt.Errorf("empty transcript for %s (language %q)", sourceID, lang)
			continue
		}
		return captions, nil
	}
	return nil, lastErr
}
