package mock

import (
	"context"

	"github.com/poiesic/recapit/ai"
)

// MockVideoAnalyzer is a test double for ai.VideoAnalyzer.
type MockVideoAnalyzer struct {
	// AnalyzeVideoFunc is called by AnalyzeVideo if set.
	AnalyzeVideoFunc func(ctx context.Context, handle *ai.FileHandle, language string) (*ai.VideoAnalysis, error)

	callCount int
}

// NewMockVideoAnalyzer creates a mock analyzer with default deterministic
// behavior. Note: Returns concrete type to allow test assertions.
func NewMockVideoAnalyzer() *MockVideoAnalyzer {
	return &MockVideoAnalyzer{}
}

// AnalyzeVideo returns a fixed transcript/summary pair unless
// AnalyzeVideoFunc is set.
func (m *MockVideoAnalyzer) AnalyzeVideo(ctx context.Context, handle *ai.FileHandle, language string) (*ai.VideoAnalysis, error) {
	m.callCount++

	if m.AnalyzeVideoFunc != nil {
		return m.AnalyzeVideoFunc(ctx, handle, language)
	}

	return &ai.VideoAnalysis{
		Transcript: "[00:00] mock transcript line one\n[00:10] mock transcript line two",
		Summary:    "🎯 **Topic** - a mock video about testing with plenty of detail to pass length checks.",
	}, nil
}

// CallCount returns the number of AnalyzeVideo calls.
func (m *MockVideoAnalyzer) CallCount() int {
	return m.callCount
}

// Reset clears recorded calls and injected behavior.
func (m *MockVideoAnalyzer) Reset() {
	m.callCount = 0
	m.AnalyzeVideoFunc = nil
}
