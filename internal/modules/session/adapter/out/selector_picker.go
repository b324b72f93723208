package out

import (
	"context"

	sessionout "diagonator/internal/modules/session/port/out"
	"diagonator/internal/platform/selector"
)

type SelectorPicker struct {
	selector selector.Selector
}

func NewSelectorPicker(sel selector.Selector) sessionout.RequirementPicker {
	return &SelectorPicker{selector: sel}
}

func (p *SelectorPicker) Pick(ctx context.Context, names []string, prompts []string) (string, error) {
	return p.selector.Select(ctx, selector.Request{Prompt: "Complete requirement", Options: names, Args: prompts})
}
