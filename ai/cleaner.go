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

package ai

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// cleanupRule strips one flavor of conversational preamble. Rules are
// applied in order; order matters because later rules assume earlier
// prefixes are already gone.
type cleanupRule struct {
	re   *regexp.Regexp
	repl string
}

// The rule list covers English and German, the two languages the service
// summarizes in. It is intentionally closed: adding languages means adding
// rules here, nothing is inferred.
var cleanupRules = []cleanupRule{
	// English acknowledgment openers: "Okay, ...", "Sure! ..."
	{regexp.MustCompile(`^(?i:okay|ok|sure|certainly|of course|got it|understood|alright|absolutely)[,.!:]?\s+`), ""},
	// English meta-announcements: "Here is the summary you asked for:"
	{regexp.MustCompile(`^(?i:here'?s|here is|below is|the following is)[^\n]*?(?i:summary|transcript|analysis|breakdown|overview)[^\n]*?:?\s*`), ""},
	// English first-person lead-ins: "I've analyzed the video and ..."
	{regexp.MustCompile(`^(?i:i've|i have|i'll|i will|let me)[^\n]*?[.:!]\s*`), ""},
	// English request echoes: "As requested, ..."
	{regexp.MustCompile(`^(?i:as requested|based on the video|based on your request|based on the transcript)[^\n]*?[,.:]\s*`), ""},
	// German acknowledgment openers: "Gerne, ...", "Natürlich! ..."
	{regexp.MustCompile(`^(?i:okay|gerne|natürlich|selbstverständlich|verstanden|klar|sicher|gut)[,.!:]?\s+`), ""},
	// German meta-announcements: "Hier ist die Zusammenfassung:"
	{regexp.MustCompile(`^(?i:hier ist|hier sind|im folgenden|nachfolgend)[^\n]*?(?i:zusammenfassung|transkript|transkription|analyse|übersicht)[^\n]*?:?\s*`), ""},
	// German first-person lead-ins: "Ich habe das Video analysiert und ..."
	{regexp.MustCompile(`^(?i:ich habe|ich werde|lass mich|wie gewünscht)[^\n]*?[.:!,]\s*`), ""},
	// A bare first line ending in a colon that is not a markdown heading,
	// list item, or emoji-labeled section: "Summary of the video:"
	{regexp.MustCompile(`^[^:\n#*\-•🎯📝🔑🔍💡🔄]{1,80}:\s*\n+`), ""},
}

// maxCleanPasses bounds the fixpoint loop. Stacked preambles deeper than
// this do not occur in practice.
const maxCleanPasses = 10

// OutputCleaner strips conversational preambles from model responses while
// preserving markdown structure and emoji. Cleaning is idempotent: the rule
// list is reapplied until the text stops changing, so cleaning already-clean
// text is a no-op.
type OutputCleaner struct {
	rules []cleanupRule
}

// NewOutputCleaner returns a cleaner with the standard English and German
// rule list.
func NewOutputCleaner() *OutputCleaner {
	return &OutputCleaner{rules: cleanupRules}
}

// Clean returns text with conversational preambles removed and surrounding
// whitespace trimmed.
func (c *OutputCleaner) Clean(text string) string {
	cleaned := strings.TrimSpace(text)
	for i := 0; i < maxCleanPasses; i++ {
		next := cleaned
		for _, rule := range c.rules {
			next = rule.re.ReplaceAllString(next, rule.repl)
		}
		next = strings.TrimSpace(next)
		if next == cleaned {
			break
		}
		cleaned = next
	}
	return cleaned
}

// CheckLength validates that a cleaned response is long enough to be usable.
// Returns a *GenerationError naming the model when it is not.
func CheckLength(cleaned, model string) error {
	if utf8.RuneCountInString(cleaned) < MinOutputLength {
		return &GenerationError{
			Model:  model,
			Reason: "cleaned response shorter than minimum usable length",
		}
	}
	return nil
}
