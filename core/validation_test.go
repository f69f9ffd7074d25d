package core

import (
	"errors"
	"testing"
	"time"
)

func TestValidateResult(t *testing.T) {
	valid := Result{
		SourceID:  "vid-1",
		Language:  "en",
		Summary:   "🎯 A summary.",
		CreatedAt: time.Now().Add(-time.Minute),
	}

	tests := []struct {
		name    string
		mutate  func(r *Result)
		nilArg  bool
		wantErr error
	}{
		{
			name:   "valid result",
			mutate: func(r *Result) {},
		},
		{
			name:    "nil result",
			nilArg:  true,
			wantErr: ErrInvalidResult,
		},
		{
			name:    "empty source id",
			mutate:  func(r *Result) { r.SourceID = "" },
			wantErr: ErrEmptySourceID,
		},
		{
			name:    "empty language",
			mutate:  func(r *Result) { r.Language = "" },
			wantErr: ErrEmptyLanguage,
		},
		{
			name:    "empty summary",
			mutate:  func(r *Result) { r.Summary = "" },
			wantErr: ErrEmptySummary,
		},
		{
			name:    "future created at",
			mutate:  func(r *Result) { r.CreatedAt = time.Now().Add(time.Hour) },
			wantErr: ErrInvalidTimestamp,
		},
		{
			name:   "zero created at is allowed",
			mutate: func(r *Result) { r.CreatedAt = time.Time{} },
		},
		{
			name:   "empty transcript is allowed",
			mutate: func(r *Result) { r.Transcript = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			if tt.nilArg {
				err = ValidateResult(nil)
			} else {
				r := valid
				tt.mutate(&r)
				err = ValidateResult(&r)
			}

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateResult() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateResult() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidResult) {
				t.Errorf("ValidateResult() error = %v, want wrapped ErrInvalidResult", err)
			}
		})
	}
}
