package compose

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kilianp07/meetsched/core/model"
)

func scheduledDecision() model.Decision {
	return model.Decision{
		RunID:  "run-1",
		Status: model.StatusScheduled,
		Slot: model.CandidateSlot{
			Date:            time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			Start:           10 * 60,
			DurationMinutes: 60,
		},
		SoftViolations: []model.ConstraintViolation{
			{ParticipantID: "alice", Kind: model.KindLunchOverlap, Severity: model.SeveritySoft, Weight: 1},
		},
		Confidence: 0.75,
	}
}

func TestTemplateComposerScheduled(t *testing.T) {
	got, err := TemplateComposer{}.Compose(scheduledDecision(), []string{"alice", "bob"})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	for _, want := range []string{"2026-03-02", "10:00-11:00", "60 min", "alice, bob", "lunch overlap", "0.75"} {
		if !strings.Contains(got, want) {
			t.Errorf("answer %q missing %q", got, want)
		}
	}
}

func TestTemplateComposerFailed(t *testing.T) {
	d := model.Decision{
		RunID:  "run-2",
		Status: model.StatusFailed,
		Reason: model.ReasonNoFeasibleSlot,
		BlockedBy: []model.ConstraintViolation{
			{ParticipantID: "bob", Kind: model.KindWindowMismatch, Severity: model.SeverityHard},
		},
	}
	got, err := TemplateComposer{}.Compose(d, []string{"alice", "bob"})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if !strings.Contains(got, "no feasible slot") {
		t.Errorf("answer %q missing the failure reason", got)
	}
	if !strings.Contains(got, "bob") || !strings.Contains(got, "outside working window") {
		t.Errorf("answer %q missing the blocking constraint", got)
	}
}

func TestNewSelectsBackend(t *testing.T) {
	if _, ok := New(Config{}).(TemplateComposer); !ok {
		t.Errorf("empty endpoint must select the template composer")
	}
	if _, ok := New(Config{Endpoint: "http://localhost:1234/v1/chat/completions"}).(*LLMComposer); !ok {
		t.Errorf("configured endpoint must select the LLM composer")
	}
}

func TestLLMComposerRewrites(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[1].Role != "user" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}
		_ = json.NewEncoder(w).Encode(chatResponse{Choices: []struct {
			Message chatMessage `json:"message"`
		}{{Message: chatMessage{Role: "assistant", Content: "rewritten answer"}}}})
	}))
	defer srv.Close()

	c := NewLLMComposer(Config{Endpoint: srv.URL})
	got, err := c.Compose(scheduledDecision(), []string{"alice"})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if got != "rewritten answer" {
		t.Errorf("answer = %q, want the rewritten text", got)
	}
}

func TestLLMComposerFallsBackOnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewLLMComposer(Config{Endpoint: srv.URL})
	got, err := c.Compose(scheduledDecision(), []string{"alice"})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	want, _ := TemplateComposer{}.Compose(scheduledDecision(), []string{"alice"})
	if got != want {
		t.Errorf("fallback answer = %q, want template output %q", got, want)
	}
}

func TestLLMComposerFallsBackOnEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := NewLLMComposer(Config{Endpoint: srv.URL})
	got, err := c.Compose(scheduledDecision(), []string{"alice"})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if !strings.Contains(got, "Scheduled:") {
		t.Errorf("answer = %q, want the template fallback", got)
	}
}
