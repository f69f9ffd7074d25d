package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantSame bool
	}{
		{
			name:     "same content produces same ID",
			content:  "test content",
			wantSame: true,
		},
		{
			name:     "empty string",
			content:  "",
			wantSame: true,
		},
		{
			name:     "long content",
			content:  "This is a much longer piece of content that should still hash consistently",
			wantSame: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if tt.wantSame && id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("content1")
	id2 := IDFromContent("content2")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestResultKey(t *testing.T) {
	tests := []struct {
		name      string
		sourceID  string
		language  string
		otherID   string
		otherLang string
		wantEqual bool
	}{
		{
			name:      "same source and language",
			sourceID:  "abc123",
			language:  "en",
			otherID:   "abc123",
			otherLang: "en",
			wantEqual: true,
		},
		{
			name:      "same source different language",
			sourceID:  "abc123",
			language:  "en",
			otherID:   "abc123",
			otherLang: "de",
			wantEqual: false,
		},
		{
			name:      "different source same language",
			sourceID:  "abc123",
			language:  "en",
			otherID:   "xyz789",
			otherLang: "en",
			wantEqual: false,
		},
		{
			name:      "separator prevents boundary collisions",
			sourceID:  "abc|en",
			language:  "",
			otherID:   "abc",
			otherLang: "en",
			wantEqual: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k1 := ResultKey(tt.sourceID, tt.language)
			k2 := ResultKey(tt.otherID, tt.otherLang)

			if tt.wantEqual && k1 != k2 {
				t.Errorf("ResultKey() = %d and %d, want equal", k1, k2)
			}
			if !tt.wantEqual && k1 == k2 {
				t.Errorf("ResultKey() produced same ID for distinct (source, language) pairs")
			}
		})
	}
}
