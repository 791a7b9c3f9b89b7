package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/edupath/edubot/internal/core/domain"
	"github.com/edupath/edubot/internal/core/ports/driven"
)

// DefaultPassageCharLimit bounds each passage's contribution to the prompt.
// Truncation keeps the total prompt inside the backend's context window;
// it is a quality/cost trade-off, not a correctness requirement.
const DefaultPassageCharLimit = 500

// passageDelimiter separates retrieved passages inside the prompt.
const passageDelimiter = "\n\n---\n\n"

// defaultTutorPrompt is the fixed system instruction used when no custom
// prompt is configured. It constrains the model to answer strictly from
// the provided course material and to cite sources.
const defaultTutorPrompt = `You are an intelligent course tutor.

STRICT RULE:
You only answer questions whose answers are found in the provided course
excerpts. If the context contains nothing relevant to the question, reply:
"I'm sorry, but this topic is not covered in your course material. I can
only answer questions based on the content of your course documents."

Your role (ONLY when the context contains relevant information):
- Explain the concept clearly and progressively
- Use concrete examples taken from the provided context
- Guide the student towards understanding
- ALWAYS cite your sources (file name and page number)

Be precise and pedagogical. NEVER answer from general knowledge when the
context does not contain the information.`

// closingInstruction is appended after the question.
const closingInstruction = `Answer using only the course excerpts above.
Remember to cite your sources precisely (file name and page number).`

// PromptAssembler renders a bounded prompt from the system instruction,
// the retrieved passages and the question. All passage labelling and
// truncation rules live here so they are enforced in one place.
type PromptAssembler struct {
	promptStore      driven.PromptStore
	passageCharLimit int
}

// NewPromptAssembler creates a prompt assembler.
// passageCharLimit <= 0 falls back to the default.
func NewPromptAssembler(passageCharLimit int) *PromptAssembler {
	if passageCharLimit <= 0 {
		passageCharLimit = DefaultPassageCharLimit
	}
	return &PromptAssembler{passageCharLimit: passageCharLimit}
}

// SetPromptStore sets the prompt store for loading a customised system
// instruction. If not set, the built-in tutor prompt is used.
func (a *PromptAssembler) SetPromptStore(store driven.PromptStore) {
	a.promptStore = store
}

// PassageCharLimit returns the configured per-passage character limit.
func (a *PromptAssembler) PassageCharLimit() int {
	return a.passageCharLimit
}

// Assemble builds the full prompt: system instruction, labelled passages
// truncated to the per-passage limit, the question, and the closing
// citation instruction.
func (a *PromptAssembler) Assemble(passages []domain.ScoredPassage, question string) string {
	var b strings.Builder

	b.WriteString(a.systemInstruction())
	b.WriteString("\n\nCourse excerpts:\n")

	labelled := make([]string, len(passages))
	for i, p := range passages {
		excerpt := truncate(p.Passage.Excerpt, a.passageCharLimit)
		labelled[i] = fmt.Sprintf("[Document %d - %s, Page %d]\n%s",
			i+1, p.Passage.SourceFile, p.Passage.Page, excerpt)
	}
	b.WriteString(strings.Join(labelled, passageDelimiter))

	b.WriteString("\n\nStudent question: ")
	b.WriteString(question)
	b.WriteString("\n\n")
	b.WriteString(closingInstruction)

	return b.String()
}

// systemInstruction returns the customised system prompt when one is
// configured, falling back to the built-in tutor prompt.
func (a *PromptAssembler) systemInstruction() string {
	if a.promptStore == nil {
		return defaultTutorPrompt
	}
	prompt, err := a.promptStore.Load(driven.PromptTutorSystem)
	if err != nil || strings.TrimSpace(prompt) == "" {
		return defaultTutorPrompt
	}
	return prompt
}

// truncate cuts s to at most limit characters, marking the cut. Limits
// count runes, not bytes, so multi-byte text is never cut mid-rune.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit]) + "..."
}
