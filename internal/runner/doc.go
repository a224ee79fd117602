// Package runner coordinates message exchange with the Anthropic Messages API
// and dispatches tool calls.
//
// Invariant:
//   - every tool_use block in an assistant message is answered by a tool_result
//     in the very next user message, in the same order.
//
// Flow:
//
//	user(text) -> assistant(tool_use...) -> user(tool_result...) -> ... -> assistant(text)
//
// The number of tool rounds per query is bounded; exceeding it returns
// ErrToolRoundsExceeded.
package runner
