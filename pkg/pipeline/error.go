package pipeline

import (
	"fmt"
	"strings"
)

// transientKeywords mark a stage failure as worth retrying. Classification
// is by message substring: the core never performs I/O itself, so causes
// like these can only arrive wrapped in an upstream error's text.
var transientKeywords = []string{"timeout", "network", "rate limit", "temporary", "retry"}

// StageError reports which pipeline stage failed and whether retrying the
// run could succeed.
type StageError struct {
	Stage       string `json:"stage"`
	Message     string `json:"message"`
	Details     string `json:"details,omitempty"`
	Recoverable bool   `json:"recoverable"`

	cause error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %s", e.Stage, e.Message)
}

func (e *StageError) Unwrap() error {
	return e.cause
}

func newStageError(stage string, err error) *StageError {
	return &StageError{
		Stage:       stage,
		Message:     err.Error(),
		Recoverable: isTransient(err.Error()),
		cause:       err,
	}
}

func isTransient(message string) bool {
	lower := strings.ToLower(message)
	for _, keyword := range transientKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
