package windowing

import (
	"encoding/json"
	"unicode/utf8"

	"github.com/anthropics/anthropic-sdk-go"
)

// blockOverhead is the flat cost added per content block.
const blockOverhead = 4

// Estimate returns a deterministic token estimate for m: one unit per rune
// of text, tool input and tool result text, plus a per-block overhead.
func Estimate(m anthropic.MessageParam) int {
	total := 0
	for _, blk := range m.Content {
		total += blockOverhead
		switch {
		case blk.OfText != nil:
			total += utf8.RuneCountInString(blk.OfText.Text)
		case blk.OfToolUse != nil:
			// Retail tool inputs carry whole datasets, so they dominate the cost.
			if b, err := json.Marshal(blk.OfToolUse.Input); err == nil {
				total += utf8.RuneCount(b)
			}
		case blk.OfToolResult != nil:
			for _, c := range blk.OfToolResult.Content {
				if c.OfText != nil {
					total += utf8.RuneCountInString(c.OfText.Text)
				}
			}
		}
	}
	return total
}

func estimateSpan(s Span, msgs []anthropic.MessageParam) int {
	total := 0
	for _, m := range msgs[s.Start:s.End] {
		total += Estimate(m)
	}
	return total
}
