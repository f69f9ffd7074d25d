package mock

import (
	"context"
	"fmt"
)

// MockGenerator is a test double for ai.Generator.
// It allows custom behavior injection via function fields.
type MockGenerator struct {
	// GenerateTextFunc is called by GenerateText if set.
	// If nil, uses default deterministic behavior.
	GenerateTextFunc func(ctx context.Context, prompt string) (string, error)

	callCount int
	prompts   []string
}

// NewMockGenerator creates a mock generator with default deterministic behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// GenerateText returns a deterministic completion derived from the prompt
// length unless GenerateTextFunc is set.
func (m *MockGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	m.callCount++
	m.prompts = append(m.prompts, prompt)

	if m.GenerateTextFunc != nil {
		return m.GenerateTextFunc(ctx, prompt)
	}

	return fmt.Sprintf("🎯 **Topic** - mock summary derived from a %d character prompt with enough text to pass length checks.", len(prompt)), nil
}

// CallCount returns the number of times GenerateText was called.
func (m *MockGenerator) CallCount() int {
	return m.callCount
}

// Prompts returns the prompts passed to GenerateText, in call order.
func (m *MockGenerator) Prompts() []string {
	return m.prompts
}

// Reset clears recorded calls and injected behavior.
func (m *MockGenerator) Reset() {
	m.callCount = 0
	m.prompts = nil
	m.GenerateTextFunc = nil
}
