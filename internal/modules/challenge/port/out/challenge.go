package out

import "context"

// AnswerSource reads one free-text line from the operator.
type AnswerSource interface {
	ReadAnswer(ctx context.Context, prompts []string) (string, error)
}
