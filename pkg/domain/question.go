package domain

// ClarificationQuestion is a pre-authored question surfaced when the
// analyzer finds an ambiguity in the request. Questions are identified by a
// stable ID so answers collected in earlier rounds can be matched up.
type ClarificationQuestion struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Category string `json:"category"`

	// Critical questions block generation: the pipeline short-circuits
	// into a clarification-needed outcome while any of them is unanswered.
	Critical bool `json:"critical"`

	// FollowUps are sub-questions shown together with the main question.
	FollowUps []string `json:"follow_ups,omitempty"`
}
