// Package memory provides minimal conversation persistence.
//
// Persistence model:
//   - Only text messages are stored (role + text). Tool blocks stay within the turn that produced them.
//   - The transcript is bounded by Trim before it is sent or saved.
package memory
