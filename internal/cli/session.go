// Package cli drives the interactive retail assistant over a line-oriented
// terminal.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/petasbytes/retail-agent/internal/runner"
	"github.com/petasbytes/retail-agent/internal/telemetry"
	"github.com/petasbytes/retail-agent/memory"
	"go.uber.org/zap"
)

// ClearCommand drops the conversation history.
const ClearCommand = "/clear"

var exitWords = map[string]struct{}{"salir": {}, "exit": {}, "quit": {}}

// Agent answers one query given the prior conversation.
type Agent interface {
	Ask(ctx context.Context, history []anthropic.MessageParam, query string) (*runner.Answer, error)
}

type Session struct {
	agent      Agent
	store      *memory.Store
	historyMax int
	logger     *zap.Logger
	recorder   *telemetry.Recorder
	in         io.Reader
	out        io.Writer

	history []memory.Message
}

type Option func(*Session)

// WithIO replaces stdin/stdout.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(s *Session) {
		s.in = in
		s.out = out
	}
}

// WithStore persists the transcript after every turn.
func WithStore(store *memory.Store) Option {
	return func(s *Session) { s.store = store }
}

// WithHistoryMax bounds the number of messages kept; 0 keeps all.
func WithHistoryMax(n int) Option {
	return func(s *Session) { s.historyMax = n }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

func WithRecorder(rec *telemetry.Recorder) Option {
	return func(s *Session) { s.recorder = rec }
}

func NewSession(agent Agent, opts ...Option) *Session {
	s := &Session{
		agent:  agent,
		logger: zap.NewNop(),
		in:     os.Stdin,
		out:    os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// History returns the current text transcript.
func (s *Session) History() []memory.Message {
	return s.history
}

// Run loads the persisted transcript and serves queries until an exit word,
// end of input or ctx cancellation.
func (s *Session) Run(ctx context.Context) error {
	if s.store != nil {
		persisted, err := s.store.Load()
		if err != nil {
			s.logger.Warn("failed to load persisted conversation", zap.Error(err))
		}
		s.history = memory.Trim(persisted, s.historyMax)
	}

	s.banner()

	readCtx, stopReading := context.WithCancel(ctx)
	defer stopReading()

	scanner := bufio.NewScanner(s.in)
	// stdin reader goroutine -> lines into channel
	inputCh := make(chan string)
	go func() {
		defer close(inputCh)
		for scanner.Scan() {
			select {
			case inputCh <- scanner.Text():
			case <-readCtx.Done():
				return
			}
		}
	}()

	for {
		fmt.Fprint(s.out, "\nQuery: ")
		var (
			line string
			ok   bool
		)
		select {
		case <-ctx.Done():
			fmt.Fprintln(s.out, "\nExiting...")
			return nil
		case line, ok = <-inputCh:
			if !ok {
				fmt.Fprintln(s.out)
				return scanner.Err()
			}
		}

		query := strings.TrimSpace(line)
		if query == "" {
			continue
		}
		if _, quit := exitWords[strings.ToLower(query)]; quit {
			fmt.Fprintln(s.out, "Goodbye!")
			return nil
		}
		if query == ClearCommand {
			s.history = nil
			s.persist()
			fmt.Fprintln(s.out, "Conversation cleared.")
			continue
		}

		s.turn(ctx, query)
	}
}

func (s *Session) turn(ctx context.Context, query string) {
	ctx, turnID := telemetry.EnsureTurnID(ctx)
	s.recorder.Emit(ctx, telemetry.EventQueryReceived,
		zap.Int("query_size", len(query)),
		zap.Int("history_messages", len(s.history)),
	)

	start := time.Now()
	ans, err := s.agent.Ask(ctx, memory.ToParams(s.history), query)
	elapsed := time.Since(start)

	if err != nil {
		s.recorder.Emit(ctx, telemetry.EventTurnCompleted,
			zap.Int64("duration_ms", elapsed.Milliseconds()),
			zap.String("error", err.Error()),
		)
		s.logger.Error("query failed", zap.String("turn_id", turnID), zap.Error(err))
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}

	s.recorder.Emit(ctx, telemetry.EventTurnCompleted,
		zap.Int64("duration_ms", elapsed.Milliseconds()),
		zap.Int("rounds", ans.Rounds),
		zap.Int("tool_calls", len(ans.ToolCalls)),
		zap.Any("error", nil),
	)
	s.logger.Debug("query answered",
		zap.String("turn_id", turnID),
		zap.Int("rounds", ans.Rounds),
		zap.Int("tool_calls", len(ans.ToolCalls)),
		zap.Duration("elapsed", elapsed),
	)

	fmt.Fprintf(s.out, "\nAgent response:\n%s\n", ans.Text)

	s.history = append(s.history, memory.Message{Role: memory.RoleUser, Text: query})
	if strings.TrimSpace(ans.Text) != "" {
		s.history = append(s.history, memory.Message{Role: memory.RoleAssistant, Text: ans.Text})
	}
	s.history = memory.Trim(s.history, s.historyMax)
	s.persist()
}

func (s *Session) persist() {
	if s.store == nil {
		return
	}
	if err := s.store.Save(s.history); err != nil {
		s.logger.Warn("failed to save conversation", zap.Error(err))
	}
}

func (s *Session) banner() {
	rule := strings.Repeat("=", 60)
	fmt.Fprintln(s.out, "Retail Optimization Agent")
	fmt.Fprintln(s.out, rule)
	fmt.Fprintln(s.out, "Commands:")
	fmt.Fprintln(s.out, "- 'exit', 'quit' or 'salir' to leave")
	fmt.Fprintf(s.out, "- '%s' to forget the conversation\n", ClearCommand)
	fmt.Fprintln(s.out, "- any question about sales, inventory or pricing")
	fmt.Fprintln(s.out, rule)
}
