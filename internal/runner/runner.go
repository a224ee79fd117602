package runner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/petasbytes/retail-agent/internal/provider"
	"github.com/petasbytes/retail-agent/internal/telemetry"
	"github.com/petasbytes/retail-agent/internal/windowing"
	"github.com/petasbytes/retail-agent/tools"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var ErrToolRoundsExceeded = errors.New("tool round limit exceeded")

const (
	defaultMaxTokens     = 1024
	defaultMaxToolRounds = 8
)

type Runner struct {
	client        *anthropic.Client
	tools         []tools.ToolDefinition
	model         anthropic.Model
	maxTokens     int64
	maxToolRounds int
	tokenBudget   int
	systemPrompt  string
	logger        *zap.Logger
	recorder      *telemetry.Recorder
}

type Option func(*Runner)

func WithModel(model anthropic.Model) Option {
	return func(r *Runner) { r.model = model }
}

func WithMaxTokens(n int64) Option {
	return func(r *Runner) { r.maxTokens = n }
}

// WithMaxToolRounds bounds how many times one query may go back to the
// model with tool results.
func WithMaxToolRounds(n int) Option {
	return func(r *Runner) { r.maxToolRounds = n }
}

// WithTokenBudget limits the estimated input size of each request; older
// history is left out first. 0 sends everything.
func WithTokenBudget(n int) Option {
	return func(r *Runner) { r.tokenBudget = n }
}

func WithSystemPrompt(prompt string) Option {
	return func(r *Runner) { r.systemPrompt = prompt }
}

func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

func WithRecorder(rec *telemetry.Recorder) Option {
	return func(r *Runner) { r.recorder = rec }
}

func New(client *anthropic.Client, toolDefs []tools.ToolDefinition, opts ...Option) *Runner {
	r := &Runner{
		client:        client,
		tools:         toolDefs,
		model:         provider.DefaultModel,
		maxTokens:     defaultMaxTokens,
		maxToolRounds: defaultMaxToolRounds,
		systemPrompt:  SystemPrompt,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Runner) anthropicTools() []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, anthropic.ToolUnionParam{OfTool: &anthropic.ToolParam{
			Name:        t.Name,
			Description: anthropic.String(t.Description),
			InputSchema: t.InputSchema,
		}})
	}
	return out
}

// ToolCall summarizes one tool execution within a query.
type ToolCall struct {
	Name     string
	Duration time.Duration
	IsError  bool
}

// Answer is the outcome of one user query.
type Answer struct {
	// Text joins the assistant text of every round.
	Text      string
	ToolCalls []ToolCall
	// Rounds counts requests sent to the model.
	Rounds int
}

// Ask appends query to history and exchanges messages with the model until it
// answers without requesting tools. history is not modified.
func (r *Runner) Ask(ctx context.Context, history []anthropic.MessageParam, query string) (*Answer, error) {
	ctx, _ = telemetry.EnsureTurnID(ctx)

	conv := make([]anthropic.MessageParam, 0, len(history)+2)
	conv = append(conv, history...)
	conv = append(conv, anthropic.NewUserMessage(anthropic.NewTextBlock(query)))

	ans := &Answer{}
	var texts []string
	for round := 0; round <= r.maxToolRounds; round++ {
		msg, results, calls, err := r.step(ctx, conv)
		if err != nil {
			return nil, err
		}
		ans.Rounds++
		ans.ToolCalls = append(ans.ToolCalls, calls...)
		if t := messageText(msg); t != "" {
			texts = append(texts, t)
		}

		if len(results) == 0 {
			ans.Text = strings.Join(texts, "\n")
			return ans, nil
		}
		conv = append(conv, msg.ToParam(), anthropic.NewUserMessage(results...))
	}
	r.logger.Warn("tool round limit reached", zap.Int("max_tool_rounds", r.maxToolRounds))
	return nil, fmt.Errorf("%w: %d rounds", ErrToolRoundsExceeded, r.maxToolRounds)
}

// RunOneStep sends the conversation and returns the assistant message plus
// the tool results to append as the next user message. No tool_use blocks
// means the model is done.
func (r *Runner) RunOneStep(ctx context.Context, conv []anthropic.MessageParam) (*anthropic.Message, []anthropic.ContentBlockParamUnion, error) {
	msg, results, _, err := r.step(ctx, conv)
	return msg, results, err
}

func (r *Runner) step(ctx context.Context, conv []anthropic.MessageParam) (*anthropic.Message, []anthropic.ContentBlockParamUnion, []ToolCall, error) {
	window, stats, err := windowing.Fit(conv, r.tokenBudget)
	r.recorder.Emit(ctx, telemetry.EventWindowPrepared,
		zap.String("model", string(r.model)),
		zap.Int("budget", stats.Budget),
		zap.Int("total_estimated", stats.Estimated),
		zap.Int("included_groups", stats.Included),
		zap.Int("skipped_groups", stats.Skipped),
	)
	if err != nil {
		// Raise token_budget or shorten the request.
		return nil, nil, nil, fmt.Errorf("prepare window: %w", err)
	}

	params := anthropic.MessageNewParams{
		Model:     r.model,
		MaxTokens: r.maxTokens,
		Messages:  window,
		Tools:     r.anthropicTools(),
	}
	if r.systemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: r.systemPrompt}}
	}

	start := time.Now()
	msg, err := r.client.Messages.New(ctx, params)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("messages request: %w", err)
	}
	r.logger.Debug("model responded",
		zap.String("stop_reason", string(msg.StopReason)),
		zap.Int("blocks", len(msg.Content)),
		zap.Duration("elapsed", time.Since(start)),
	)

	var uses []anthropic.ToolUseBlock
	for _, block := range msg.Content {
		if v, ok := block.AsAny().(anthropic.ToolUseBlock); ok {
			uses = append(uses, v)
		}
	}
	if len(uses) == 0 {
		return msg, nil, nil, nil
	}

	// Results keep the order of the tool_use blocks they answer.
	results := make([]anthropic.ContentBlockParamUnion, len(uses))
	calls := make([]ToolCall, len(uses))
	g, gctx := errgroup.WithContext(ctx)
	for i, u := range uses {
		g.Go(func() error {
			// Pass raw JSON input through to the tool implementation
			input := json.RawMessage(u.JSON.Input.Raw())
			results[i], calls[i] = r.execTool(gctx, u.ID, u.Name, input)
			return nil
		})
	}
	_ = g.Wait()
	return msg, results, calls, nil
}

func (r *Runner) execTool(ctx context.Context, id, name string, input json.RawMessage) (anthropic.ContentBlockParamUnion, ToolCall) {
	emit := func(d time.Duration, outputSize int, errStr string) {
		errField := zap.Any("error", nil)
		if errStr != "" {
			errField = zap.String("error", errStr)
		}
		r.recorder.Emit(ctx, telemetry.EventToolExec,
			zap.String("tool_name", name),
			zap.Int64("duration_ms", d.Milliseconds()),
			zap.Int("input_size", len(input)),
			zap.Int("output_size", outputSize),
			errField,
		)
	}

	start := time.Now()
	def, ok := r.lookup(name)
	if !ok {
		d := time.Since(start)
		emit(d, 0, "tool not found")
		r.logger.Warn("unknown tool requested", zap.String("tool", name))
		return anthropic.NewToolResultBlock(id, "tool not found", true), ToolCall{Name: name, Duration: d, IsError: true}
	}

	resp, err := def.Function(input)
	d := time.Since(start)
	if err != nil {
		// Telemetry gets a generic string; the model gets the detailed payload.
		emit(d, 0, "tool error")
		r.logger.Debug("tool failed", zap.String("tool", name), zap.Error(err))
		return anthropic.NewToolResultBlock(id, err.Error(), true), ToolCall{Name: name, Duration: d, IsError: true}
	}
	emit(d, len(resp), "")
	r.logger.Debug("tool executed", zap.String("tool", name), zap.Duration("duration", d))
	return anthropic.NewToolResultBlock(id, resp, false), ToolCall{Name: name, Duration: d}
}

func (r *Runner) lookup(name string) (tools.ToolDefinition, bool) {
	for _, d := range r.tools {
		if d.Name == name {
			return d, true
		}
	}
	return tools.ToolDefinition{}, false
}

func messageText(msg *anthropic.Message) string {
	var parts []string
	for _, block := range msg.Content {
		if v, ok := block.AsAny().(anthropic.TextBlock); ok && v.Text != "" {
			parts = append(parts, v.Text)
		}
	}
	return strings.Join(parts, "\n")
}
