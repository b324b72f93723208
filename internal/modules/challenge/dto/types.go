package dto

type ConfirmInput struct {
	// Prompts are passed through to the line selector (e.g. dmenu flags).
	Prompts []string
}
