// Package windowing selects the newest part of a conversation that fits an
// estimated input-token budget.
//
// Messages are grouped into spans that are never split: an assistant message
// carrying tool_use blocks and the user message answering all of them form one
// span, every other message is a span of its own. The window always opens with
// a user message.
package windowing
