package ai

import "fmt"

// MinOutputLength is the minimum number of runes a cleaned model response
// must contain to be considered usable.
const MinOutputLength = 50

// GenerationError indicates the model produced no usable output.
type GenerationError struct {
	Model  string
	Reason string
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generation failed (model %s): %s: %v", e.Model, e.Reason, e.Err)
	}
	return fmt.Sprintf("generation failed (model %s): %s", e.Model, e.Reason)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
