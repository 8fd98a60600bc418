package rag

import "github.com/tmc/langchaingo/prompts"

// The context-grounded instruction. The fixed fallback sentence lets callers
// distinguish "model had nothing" from a real answer.
var answerPrompt = prompts.NewPromptTemplate(
	`Answer the question as thoroughly as possible from the context below.
If the answer is not in the context, just say: "answer not available in context".
Do not make up an answer.

Context:
{{.context}}

Question:
{{.question}}

Answer:
`,
	[]string{"context", "question"},
)
