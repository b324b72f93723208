package out

import (
	"context"

	challengeout "diagonator/internal/modules/challenge/port/out"
	"diagonator/internal/platform/selector"
)

type SelectorAnswerSource struct {
	selector selector.Selector
}

func NewSelectorAnswerSource(sel selector.Selector) challengeout.AnswerSource {
	return &SelectorAnswerSource{selector: sel}
}

func (s *SelectorAnswerSource) ReadAnswer(ctx context.Context, prompts []string) (string, error) {
	return s.selector.Select(ctx, selector.Request{Prompt: "What time is it?", Args: prompts})
}
