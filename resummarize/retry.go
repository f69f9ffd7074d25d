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

package resummarize

import (
	"context"
	"log/slog"
	"time"
)

// RetryWithBackoff runs a generation call up to maxAttempts times, doubling
// the delay after each failed attempt starting from baseDelay. Model-side
// errors (overload, rate limits) are treated as transient until the attempts
// run out; the error of the final attempt is then returned unwrapped so
// callers can attach their own context. The delay honors ctx cancellation.
func RetryWithBackoff(ctx context.Context, operation func() error, maxAttempts int, baseDelay time.Duration) error {
	if maxAttempts <= 0 {
		return ErrInvalidMaxAttempts
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		lastErr = operation()
		if lastErr == nil {
			if attempt > 1 {
				slog.Debug("generation recovered after retry", "attempt", attempt)
			}
			return nil
		}

		if attempt == maxAttempts {
			break
		}
		slog.Debug("generation attempt failed",
			"attempt", attempt, "max_attempts", maxAttempts, "error", lastErr)

		timer := time.NewTimer(baseDelay << (attempt - 1))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return lastErr
}
