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

// Package chunk splits long transcripts into overlapping pieces small
// enough to summarize independently.
package chunk

import "strings"

const (
	// DefaultChunkSize is the maximum chunk length in characters.
	DefaultChunkSize = 7000

	// DefaultOverlapChars is the overlap budget in characters. The actual
	// overlap is expressed in words: OverlapChars / 10.
	DefaultOverlapChars = 1000
)

// OverlapWords converts a character overlap budget to a word count.
func OverlapWords(overlapChars int) int {
	return overlapChars / 10
}

// Split breaks text into chunks of at most chunkSize characters, accumulating
// whitespace-separated words greedily. Each chunk after the first is seeded
// with the last OverlapWords(overlapChars) words of the previous chunk so
// context carries across chunk boundaries; seed words are carried over
// verbatim. A single word longer than chunkSize is emitted alone as its own
// chunk. The final partial chunk is always emitted. Whitespace-only input
// yields nil.
func Split(text string, chunkSize, overlapChars int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	overlapWords := OverlapWords(overlapChars)

	var chunks []string
	var current []string
	currentLen := 0 // length of strings.Join(current, " ")

	for _, word := range words {
		if len(current) > 0 && currentLen+1+len(word) > chunkSize {
			chunks = append(chunks, strings.Join(current, " "))

			seed := overlapWords
			if seed >= len(current) {
				// A seed must be shorter than the chunk it came from,
				// otherwise accumulation cannot make progress.
				seed = len(current) - 1
			}
			if seed > 0 {
				current = append([]string(nil), current[len(current)-seed:]...)
				currentLen = joinedLen(current)
			} else {
				current = current[:0]
				currentLen = 0
			}
		}

		if len(current) == 0 {
			current = append(current, word)
			currentLen = len(word)
			continue
		}
		current = append(current, word)
		currentLen += 1 + len(word)
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}
	return chunks
}

func joinedLen(words []string) int {
	if len(words) == 0 {
		return 0
	}
	n := len(words) - 1
	for _, w := range words {
		n += len(w)
	}
	return n
}
