package compose

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kilianp07/meetsched/core/model"
)

// Composer turns a scheduling decision into a human-readable answer.
type Composer interface {
	Compose(decision model.Decision, participants []string) (string, error)
}

// Config selects the composer backend. With an empty Endpoint the
// deterministic template composer is used.
type Config struct {
	Endpoint       string `json:"endpoint"`
	Model          string `json:"model"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

func (c *Config) SetDefaults() {
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	if c.Model == "" {
		c.Model = "gpt-4o-mini"
	}
}

// TemplateComposer produces a fixed-format summary without any external
// service. It is the default and the fallback for LLMComposer.
type TemplateComposer struct{}

func (TemplateComposer) Compose(d model.Decision, participants []string) (string, error) {
	var b strings.Builder
	switch d.Status {
	case model.StatusScheduled:
		fmt.Fprintf(&b, "Scheduled: %s %s-%s (%d min) for %s.",
			d.Slot.Date.Format("2006-01-02"),
			d.Slot.Start.String(),
			d.Slot.End().String(),
			d.Slot.DurationMinutes,
			strings.Join(participants, ", "))
		if len(d.SoftViolations) > 0 {
			fmt.Fprintf(&b, " Compromises: %s.", describeViolations(d.SoftViolations))
		}
		fmt.Fprintf(&b, " Confidence %.2f.", d.Confidence)
	case model.StatusFailed:
		fmt.Fprintf(&b, "No slot could be scheduled for %s: %s.",
			strings.Join(participants, ", "), reasonText(d.Reason))
		if len(d.BlockedBy) > 0 {
			fmt.Fprintf(&b, " Blocking constraints: %s.", describeViolations(d.BlockedBy))
		}
	default:
		return "", fmt.Errorf("compose: unknown decision status %q", d.Status)
	}
	return b.String(), nil
}

func describeViolations(violations []model.ConstraintViolation) string {
	byKind := make(map[model.ConstraintKind][]string)
	for _, v := range violations {
		byKind[v.Kind] = append(byKind[v.Kind], v.ParticipantID)
	}
	kinds := make([]string, 0, len(byKind))
	for k := range byKind {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	parts := make([]string, 0, len(kinds))
	for _, k := range kinds {
		ids := byKind[model.ConstraintKind(k)]
		sort.Strings(ids)
		parts = append(parts, fmt.Sprintf("%s for %s", kindText(model.ConstraintKind(k)), strings.Join(ids, ", ")))
	}
	return strings.Join(parts, "; ")
}

func kindText(k model.ConstraintKind) string {
	switch k {
	case model.KindLunchOverlap:
		return "lunch overlap"
	case model.KindTimeOfDay:
		return "time-of-day mismatch"
	case model.KindDurationExcess:
		return "longer than preferred"
	case model.KindDailyCap:
		return "daily meeting cap exceeded"
	case model.KindWindowMismatch:
		return "outside working window"
	default:
		return string(k)
	}
}

func reasonText(r model.FailReason) string {
	switch r {
	case model.ReasonNoFeasibleSlot:
		return "no feasible slot within the search horizon"
	case model.ReasonRoundLimitExceeded:
		return "the negotiation round limit was reached"
	case model.ReasonCancelled:
		return "the run was cancelled"
	default:
		return string(r)
	}
}

// New builds a composer from config. A configured endpoint yields an
// LLMComposer that falls back to the template on any transport failure.
func New(cfg Config) Composer {
	cfg.SetDefaults()
	if cfg.Endpoint == "" {
		return TemplateComposer{}
	}
	return NewLLMComposer(cfg)
}
