package windowing

import (
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
)

var ErrNewestOverBudget = errors.New("newest messages exceed token budget")

// Stats summarizes a window selection.
type Stats struct {
	Budget    int
	Estimated int
	Included  int
	Skipped   int
}

// Fit returns the longest suffix of msgs, in whole spans, whose estimate is
// within budget and which starts with a user message. budget <= 0 disables
// the limit. When no such suffix exists Fit fails with ErrNewestOverBudget.
func Fit(msgs []anthropic.MessageParam, budget int) ([]anthropic.MessageParam, Stats, error) {
	spans := Spans(msgs)
	stats := Stats{Budget: budget}

	start := len(spans)
	for i := len(spans) - 1; i >= 0; i-- {
		cost := estimateSpan(spans[i], msgs)
		if budget > 0 && stats.Estimated+cost > budget {
			break
		}
		stats.Estimated += cost
		start = i
	}
	if len(spans) == 0 {
		return nil, stats, nil
	}

	// Never open on an assistant turn.
	for start < len(spans) && msgs[spans[start].Start].Role != anthropic.MessageParamRoleUser {
		stats.Estimated -= estimateSpan(spans[start], msgs)
		start++
	}

	stats.Included = len(spans) - start
	stats.Skipped = start
	if start == len(spans) {
		stats.Estimated = 0
		return nil, stats, fmt.Errorf("%w: budget %d", ErrNewestOverBudget, budget)
	}
	return msgs[spans[start].Start:], stats, nil
}
