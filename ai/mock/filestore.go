package mock

import (
	"context"
	"fmt"
	"time"

	"github.com/poiesic/recapit/ai"
)

// MockFileStore is a test double for ai.FileStore.
// It allows custom behavior injection via function fields and records the
// names passed to Delete so tests can assert cleanup happened exactly once.
type MockFileStore struct {
	// UploadFunc is called by Upload if set.
	UploadFunc func(ctx context.Context, data []byte, displayName, mimeType string) (*ai.FileHandle, error)

	// WaitUntilActiveFunc is called by WaitUntilActive if set.
	WaitUntilActiveFunc func(ctx context.Context, name string, interval, maxWait time.Duration) error

	// DeleteFunc is called by Delete if set.
	DeleteFunc func(ctx context.Context, name string) error

	uploadCalls int
	waitCalls   int
	deleted     []string
}

// NewMockFileStore creates a mock file store with default behavior: uploads
// succeed and return a handle, files become active immediately, deletes
// succeed. Note: Returns concrete type to allow test assertions.
func NewMockFileStore() *MockFileStore {
	return &MockFileStore{}
}

// Upload records the call and returns a deterministic handle.
func (m *MockFileStore) Upload(ctx context.Context, data []byte, displayName, mimeType string) (*ai.FileHandle, error) {
	m.uploadCalls++

	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, data, displayName, mimeType)
	}

	return &ai.FileHandle{
		Name:      fmt.Sprintf("files/mock-%d", m.uploadCalls),
		URI:       fmt.Sprintf("https://mock.example/v1beta/files/mock-%d", m.uploadCalls),
		MIMEType:  mimeType,
		SizeBytes: int64(len(data)),
		State:     "PROCESSING",
	}, nil
}

// WaitUntilActive records the call and succeeds immediately by default.
func (m *MockFileStore) WaitUntilActive(ctx context.Context, name string, interval, maxWait time.Duration) error {
	m.waitCalls++

	if m.WaitUntilActiveFunc != nil {
		return m.WaitUntilActiveFunc(ctx, name, interval, maxWait)
	}
	return nil
}

// Delete records the deleted name and succeeds by default.
func (m *MockFileStore) Delete(ctx context.Context, name string) error {
	m.deleted = append(m.deleted, name)

	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, name)
	}
	return nil
}

// UploadCount returns the number of Upload calls.
func (m *MockFileStore) UploadCount() int {
	return m.uploadCalls
}

// WaitCount returns the number of WaitUntilActive calls.
func (m *MockFileStore) WaitCount() int {
	return m.waitCalls
}

// Deleted returns the file names passed to Delete, in call order.
func (m *MockFileStore) Deleted() []string {
	return m.deleted
}

// Reset clears recorded calls and injected behavior.
func (m *MockFileStore) Reset() {
	m.uploadCalls = 0
	m.waitCalls = 0
	m.deleted = nil
	m.UploadFunc = nil
	m.WaitUntilActiveFunc = nil
	m.DeleteFunc = nil
}
