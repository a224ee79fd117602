package windowing

import "github.com/anthropics/anthropic-sdk-go"

// Span is the half-open message range [Start, End).
type Span struct {
	Start int
	End   int
}

// Paired reports whether the span holds a tool_use/tool_result exchange.
func (s Span) Paired() bool {
	return s.End-s.Start == 2
}

// Spans partitions msgs, oldest first.
func Spans(msgs []anthropic.MessageParam) []Span {
	spans := make([]Span, 0, len(msgs))
	for i := 0; i < len(msgs); {
		if i+1 < len(msgs) && answers(msgs[i], msgs[i+1]) {
			spans = append(spans, Span{Start: i, End: i + 2})
			i += 2
			continue
		}
		spans = append(spans, Span{Start: i, End: i + 1})
		i++
	}
	return spans
}

// answers reports whether user holds exactly the tool results for the
// tool_use blocks of asst, ahead of any other content.
func answers(asst, user anthropic.MessageParam) bool {
	if asst.Role != anthropic.MessageParamRoleAssistant || user.Role != anthropic.MessageParamRoleUser {
		return false
	}
	uses := map[string]bool{}
	for _, blk := range asst.Content {
		if tu := blk.OfToolUse; tu != nil && tu.ID != "" {
			uses[tu.ID] = false
		}
	}
	if len(uses) == 0 {
		return false
	}

	leading := true
	for _, blk := range user.Content {
		tr := blk.OfToolResult
		if tr == nil {
			leading = false
			continue
		}
		seen, ok := uses[tr.ToolUseID]
		if !leading || !ok || seen {
			return false
		}
		uses[tr.ToolUseID] = true
	}
	for _, seen := range uses {
		if !seen {
			return false
		}
	}
	return true
}
