package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/google/go-cmp/cmp"
	"github.com/petasbytes/retail-agent/internal/cli"
	"github.com/petasbytes/retail-agent/internal/runner"
	"github.com/petasbytes/retail-agent/internal/telemetry"
	"github.com/petasbytes/retail-agent/memory"
)

type askCall struct {
	historyLen int
	query      string
}

type fakeAgent struct {
	calls  []askCall
	answer func(query string) (*runner.Answer, error)
}

func (f *fakeAgent) Ask(_ context.Context, history []anthropic.MessageParam, query string) (*runner.Answer, error) {
	f.calls = append(f.calls, askCall{historyLen: len(history), query: query})
	if f.answer != nil {
		return f.answer(query)
	}
	return &runner.Answer{Text: "echo: " + query, Rounds: 1}, nil
}

func runSession(t *testing.T, agent cli.Agent, input string, opts ...cli.Option) (*cli.Session, string) {
	t.Helper()
	var out bytes.Buffer
	s := cli.NewSession(agent, append([]cli.Option{cli.WithIO(strings.NewReader(input), &out)}, opts...)...)
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	return s, out.String()
}

func TestSession_ExitWords(t *testing.T) {
	for _, word := range []string{"salir", "EXIT", " Quit "} {
		t.Run(word, func(t *testing.T) {
			agent := &fakeAgent{}
			_, out := runSession(t, agent, word+"\nnever asked\n")
			if len(agent.calls) != 0 {
				t.Fatalf("expected no queries, got %+v", agent.calls)
			}
			if !strings.Contains(out, "Goodbye!") {
				t.Fatalf("missing farewell in %q", out)
			}
		})
	}
}

func TestSession_SkipsBlankLines_AndCarriesHistory(t *testing.T) {
	agent := &fakeAgent{}
	s, out := runSession(t, agent, "\n   \nfirst\nsecond\n")

	want := []askCall{{historyLen: 0, query: "first"}, {historyLen: 2, query: "second"}}
	if diff := cmp.Diff(want, agent.calls, cmp.AllowUnexported(askCall{})); diff != "" {
		t.Fatalf("calls mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(out, "echo: second") {
		t.Fatalf("answer not displayed: %q", out)
	}
	if got := len(s.History()); got != 4 {
		t.Fatalf("expected 4 history messages, got %d", got)
	}
}

func TestSession_ErrorIsDisplayed_AndNotRemembered(t *testing.T) {
	agent := &fakeAgent{answer: func(string) (*runner.Answer, error) {
		return nil, errors.New("boom")
	}}
	s, out := runSession(t, agent, "q\n")
	if !strings.Contains(out, "error: boom") {
		t.Fatalf("error not displayed: %q", out)
	}
	if len(s.History()) != 0 {
		t.Fatalf("failed turn should not be remembered: %+v", s.History())
	}
}

func TestSession_Clear(t *testing.T) {
	agent := &fakeAgent{}
	s, out := runSession(t, agent, "one\n/clear\ntwo\n")
	if !strings.Contains(out, "Conversation cleared.") {
		t.Fatalf("missing clear confirmation: %q", out)
	}
	if agent.calls[1].historyLen != 0 {
		t.Fatalf("history should be empty after clear, got %d", agent.calls[1].historyLen)
	}
	if len(s.History()) != 2 {
		t.Fatalf("expected only the last turn, got %+v", s.History())
	}
}

func TestSession_PersistsAndTrims(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".agent", "conversation.json")
	store := memory.NewStore(path)
	if err := store.Save([]memory.Message{{Role: "assistant", Text: "orphan"}, {Role: "user", Text: "old"}, {Role: "assistant", Text: "old reply"}}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	agent := &fakeAgent{}
	runSession(t, agent, "new\n", cli.WithStore(store), cli.WithHistoryMax(3))

	if agent.calls[0].historyLen != 2 {
		t.Fatalf("expected trimmed history of 2 on load, got %d", agent.calls[0].historyLen)
	}
	got, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []memory.Message{{Role: "user", Text: "new"}, {Role: "assistant", Text: "echo: new"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("persisted mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_EmitsTurnEvents(t *testing.T) {
	var events bytes.Buffer
	agent := &fakeAgent{answer: func(string) (*runner.Answer, error) {
		return &runner.Answer{Text: "ok", Rounds: 2, ToolCalls: []runner.ToolCall{{Name: "analyze_sales_data"}}}, nil
	}}
	runSession(t, agent, "q\n", cli.WithRecorder(telemetry.NewRecorder(&events)))

	var names []string
	var completed map[string]any
	for _, line := range strings.Split(strings.TrimSpace(events.String()), "\n") {
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid JSON line %q: %v", line, err)
		}
		names = append(names, m["event"].(string))
		if m["event"] == telemetry.EventTurnCompleted {
			completed = m
		}
	}
	if diff := cmp.Diff([]string{telemetry.EventQueryReceived, telemetry.EventTurnCompleted}, names); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
	if completed["rounds"] != float64(2) || completed["tool_calls"] != float64(1) {
		t.Fatalf("unexpected turn_completed fields: %v", completed)
	}
	if _, ok := completed["turn_id"]; !ok {
		t.Fatalf("turn_completed missing turn_id: %v", completed)
	}
}

func TestSession_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	// A reader that never yields keeps the loop waiting on ctx.
	r, w := io.Pipe()
	defer w.Close()
	s := cli.NewSession(&fakeAgent{}, cli.WithIO(r, &out))
	if err := s.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "Exiting...") {
		t.Fatalf("missing exit notice: %q", out.String())
	}
}
