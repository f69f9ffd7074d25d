package gemini

import (
	"fmt"
	"time"
)

// UploadInitError indicates the upload session could not be started.
type UploadInitError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *UploadInitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upload init failed: %v", e.Err)
	}
	return fmt.Sprintf("upload init failed: HTTP %d: %s", e.StatusCode, e.Body)
}

func (e *UploadInitError) Unwrap() error {
	return e.Err
}

// UploadTransferError indicates the byte transfer or finalization failed
// after a session was started.
type UploadTransferError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *UploadTransferError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upload transfer failed: %v", e.Err)
	}
	return fmt.Sprintf("upload transfer failed: HTTP %d: %s", e.StatusCode, e.Body)
}

func (e *UploadTransferError) Unwrap() error {
	return e.Err
}

// ProcessingFailedError indicates the remote service reported the staged
// file as FAILED. Polling stops immediately on this state.
type ProcessingFailedError struct {
	Name string
}

func (e *ProcessingFailedError) Error() string {
	return fmt.Sprintf("remote processing failed for %s", e.Name)
}

// ProcessingTimeoutError indicates the staged file did not become ACTIVE
// within the polling deadline.
type ProcessingTimeoutError struct {
	Name   string
	Waited time.Duration
}

func (e *ProcessingTimeoutError) Error() string {
	return fmt.Sprintf("remote processing of %s did not finish within %s", e.Name, e.Waited)
}
