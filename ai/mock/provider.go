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

package mock

import "github.com/poiesic/recapit/ai"

// MockProvider is a test double for ai.AIProvider.
// It aggregates mock generator, file store, and analyzer instances.
type MockProvider struct {
	generator *MockGenerator
	files     *MockFileStore
	analyzer  *MockVideoAnalyzer
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.AIProvider interface for consistency with production constructors.
// Use GetMockGenerator()/GetMockFileStore()/GetMockAnalyzer() to access
// concrete types for test assertions.
func NewMockProvider() ai.AIProvider {
	return &MockProvider{
		generator: NewMockGenerator(),
		files:     NewMockFileStore(),
		analyzer:  NewMockVideoAnalyzer(),
	}
}

// NewMockProviderWithServices creates a mock provider with custom mock services.
// This allows full control over the behavior of each service.
func NewMockProviderWithServices(generator *MockGenerator, files *MockFileStore, analyzer *MockVideoAnalyzer) ai.AIProvider {
	return &MockProvider{
		generator: generator,
		files:     files,
		analyzer:  analyzer,
	}
}

// Generator returns the mock generator.
func (p *MockProvider) Generator() ai.Generator {
	return p.generator
}

// Files returns the mock file store.
func (p *MockProvider) Files() ai.FileStore {
	return p.files
}

// VideoAnalyzer returns the mock analyzer.
func (p *MockProvider) VideoAnalyzer() ai.VideoAnalyzer {
	return p.analyzer
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockGenerator returns the underlying mock generator for test assertions.
func (p *MockProvider) GetMockGenerator() *MockGenerator {
	return p.generator
}

// GetMockFileStore returns the underlying mock file store for test assertions.
func (p *MockProvider) GetMockFileStore() *MockFileStore {
	return p.files
}

// GetMockAnalyzer returns the underlying mock analyzer for test assertions.
func (p *MockProvider) GetMockAnalyzer() *MockVideoAnalyzer {
	return p.analyzer
}
