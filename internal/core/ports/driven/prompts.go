package driven

// PromptStore provides access to prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not customised, implementations should return an
	// error so the caller falls back to its built-in default.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names used throughout the application.
const (
	// PromptTutorSystem is the fixed system instruction prepended to every
	// assembled prompt. It has no format placeholders.
	PromptTutorSystem = "tutor_system"
)
