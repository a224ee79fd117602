package memory

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/anthropics/anthropic-sdk-go"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a minimal persisted view of a chat turn.
// Only text is stored. Tool blocks are transient.
type Message struct {
	Role string `json:"role"`
	Text string `json:"text,omitempty"`
}

// Store persists a conversation transcript as a JSON file.
type Store struct {
	Path string
}

func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Load returns the persisted messages. A missing file is an empty conversation.
func (s *Store) Load() ([]Message, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var msgs []Message
	if err := json.Unmarshal(b, &msgs); err != nil {
		return nil, fmt.Errorf("decode conversation %s: %w", s.Path, err)
	}
	return msgs, nil
}

// Save overwrites the file with msgs, creating parent directories.
func (s *Store) Save(msgs []Message) error {
	b, err := json.MarshalIndent(msgs, "", " ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.Path, b, 0o644)
}

// Trim keeps at most max of the newest messages. The result never starts with
// an assistant message, since a conversation sent to the model must open with
// the user. max <= 0 keeps everything.
func Trim(msgs []Message, max int) []Message {
	if max > 0 && len(msgs) > max {
		msgs = msgs[len(msgs)-max:]
	}
	for len(msgs) > 0 && msgs[0].Role != RoleUser {
		msgs = msgs[1:]
	}
	return msgs
}

// ToParams converts a text transcript into SDK message params.
func ToParams(msgs []Message) []anthropic.MessageParam {
	conv := make([]anthropic.MessageParam, 0, len(msgs))
	for _, m := range msgs {
		if m.Role == RoleUser {
			conv = append(conv, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Text)))
		} else {
			conv = append(conv, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Text)))
		}
	}
	return conv
}
