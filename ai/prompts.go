package ai

import (
	"fmt"
	"strings"
)

const summaryPromptEN = `Summarize the following transcript in English using markdown.

Structure your answer with exactly these sections:

🎯 **Topic** - one sentence naming what the content is about
📝 **Key Points** - the main statements as a bullet list
💡 **Takeaways** - what the viewer should remember

Rules:
- Output only the summary itself. No greeting, no preamble, no closing remark.
- Keep the section headings and emoji exactly as given.
- Stay factual; do not add information that is not in the transcript.

Transcript:
%s`

const summaryPromptDE = `Fasse das folgende Transkript auf Deutsch in Markdown zusammen.

Gliedere deine Antwort in genau diese Abschnitte:

🎯 **Thema** - ein Satz, worum es geht
📝 **Kernaussagen** - die wichtigsten Aussagen als Liste
💡 **Fazit** - was man sich merken sollte

Regeln:
- Gib nur die Zusammenfassung selbst aus. Keine Begrüßung, keine Einleitung, kein Schlusswort.
- Behalte die Abschnittsüberschriften und Emoji exakt bei.
- Bleibe sachlich; erfinde nichts, was nicht im Transkript steht.

Transkript:
%s`

const combinePromptEN = `The following are partial summaries of consecutive sections of one transcript,
numbered in their original order.
Merge them into a single coherent summary with the same section structure
(🎯 **Topic**, 📝 **Key Points**, 💡 **Takeaways**). Remove duplicates that
come from overlapping sections. Output only the merged summary.

%s`

const combinePromptDE = `Die folgenden Texte sind Teilzusammenfassungen aufeinanderfolgender Abschnitte
eines Transkripts, in ihrer ursprünglichen Reihenfolge nummeriert.
Führe sie zu einer einzigen kohärenten Zusammenfassung mit
derselben Gliederung zusammen (🎯 **Thema**, 📝 **Kernaussagen**, 💡 **Fazit**).
Entferne Dubletten aus überlappenden Abschnitten. Gib nur die
Gesamtzusammenfassung aus.

%s`

const videoPromptEN = `Analyze this video. Respond in English with exactly two markdown sections:

## Transcript
A full transcript of the spoken content with [MM:SS] timestamps at speaker
or topic changes.

## Summary
A structured summary with these subsections:
🎯 **Topic** - one sentence naming what the video is about
📝 **Key Points** - the main statements as a bullet list
💡 **Takeaways** - what the viewer should remember

Output nothing outside the two sections.`

const videoPromptDE = `Analysiere dieses Video. Antworte auf Deutsch mit genau zwei Markdown-Abschnitten:

## Transcript
Ein vollständiges Transkript des gesprochenen Inhalts mit [MM:SS]-Zeitmarken
bei Sprecher- oder Themenwechseln.

## Summary
Eine strukturierte Zusammenfassung mit diesen Unterabschnitten:
🎯 **Thema** - ein Satz, worum es im Video geht
📝 **Kernaussagen** - die wichtigsten Aussagen als Liste
💡 **Fazit** - was man sich merken sollte

Gib nichts außerhalb der beiden Abschnitte aus.`

// isGerman reports whether a language tag selects the German prompt variants.
func isGerman(language string) bool {
	lang := strings.ToLower(language)
	return lang == "de" || strings.HasPrefix(lang, "de-")
}

// SummaryPrompt builds the prompt for summarizing one transcript (or one
// transcript chunk) in the requested language. Languages without a dedicated
// variant fall back to English.
func SummaryPrompt(language, transcript string) string {
	if isGerman(language) {
		return fmt.Sprintf(summaryPromptDE, transcript)
	}
	return fmt.Sprintf(summaryPromptEN, transcript)
}

// CombinePrompt builds the prompt that merges partial chunk summaries into
// one final summary. Each partial is labeled with its 1-based section number
// so the model sees the original order.
func CombinePrompt(language string, partials []string) string {
	german := isGerman(language)
	label := "Section %d:\n%s"
	if german {
		label = "Abschnitt %d:\n%s"
	}

	sections := make([]string, len(partials))
	for i, partial := range partials {
		sections[i] = fmt.Sprintf(label, i+1, partial)
	}
	joined := strings.Join(sections, "\n\n")

	if german {
		return fmt.Sprintf(combinePromptDE, joined)
	}
	return fmt.Sprintf(combinePromptEN, joined)
}

// VideoAnalysisPrompt builds the prompt for the single generation call that
// produces both transcript and summary from a staged video file. The section
// headings are fixed; the analyzer's parser keys on them.
func VideoAnalysisPrompt(language string) string {
	if isGerman(language) {
		return videoPromptDE
	}
	return videoPromptEN
}
