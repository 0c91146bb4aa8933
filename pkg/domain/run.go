package domain

import "time"

// PendingRun is a generation run parked on unanswered clarification
// questions. It is persisted by a RunStore so the caller can come back with
// answers and resume where the analyzer left off.
type PendingRun struct {
	RunID     string                  `json:"run_id"`
	Input     string                  `json:"input"`
	Answers   map[string]string       `json:"answers,omitempty"`
	Profile   RequirementProfile      `json:"profile"`
	Questions []ClarificationQuestion `json:"questions"`
	CreatedAt time.Time               `json:"created_at"`
}
