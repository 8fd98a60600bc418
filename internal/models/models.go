package models

// PageRecord is one page of extracted document text. Pages that yield no
// text are never recorded, so Text is always non-empty.
type PageRecord struct {
	Text     string
	Page     int
	Filename string
}

// Chunk is a bounded slice of a single page's text. Page and Filename are
// inherited from the PageRecord the chunk was split from; chunking never
// crosses a page boundary.
type Chunk struct {
	Text     string
	Page     int
	Filename string
}

// Source points back at the document location a retrieved chunk came from.
type Source struct {
	Filename string `json:"filename"`
	Page     int    `json:"page"`
}

// AnswerResult is the outcome of a single question.
type AnswerResult struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatTurn is one entry of the in-memory conversation log.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
