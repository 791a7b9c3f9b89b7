package domain

// Answer is the engine's response to a question.
type Answer struct {
	// Text is the generated answer.
	Text string `json:"answer"`

	// Sources are the passages the answer was grounded on,
	// in retrieval order.
	Sources []Passage `json:"sources"`

	// ModelUsed identifies the generation model that produced the text.
	ModelUsed string `json:"model_used"`

	// NumSources is len(Sources), kept explicit for API consumers.
	NumSources int `json:"num_sources"`
}
