// Package coordinator sequences slot generation and negotiation into one
// run: it drives the relaxation ladder, bounds the number of rounds and
// turns the result into an immutable Decision.
package coordinator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/meetsched/core/calendar"
	"github.com/kilianp07/meetsched/core/events"
	"github.com/kilianp07/meetsched/core/logger"
	"github.com/kilianp07/meetsched/core/metrics"
	"github.com/kilianp07/meetsched/core/model"
	"github.com/kilianp07/meetsched/core/negotiate"
	"github.com/kilianp07/meetsched/core/preference"
	"github.com/kilianp07/meetsched/core/slots"
)

// State is the coordinator lifecycle phase.
type State int

const (
	StateInit State = iota
	StateGenerating
	StateNegotiating
	StateRelaxing
	StateDecided
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateGenerating:
		return "generating"
	case StateNegotiating:
		return "negotiating"
	case StateRelaxing:
		return "relaxing"
	case StateDecided:
		return "decided"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Config defines the parameters of one negotiation run. No hidden defaults:
// callers pass the full surface, usually built from the config package.
type Config struct {
	// Start is the first day scanned; see slots.Config.
	Start time.Time
	// HorizonDays is the number of business days scanned per stage.
	HorizonDays int
	// TargetDurationMinutes is the requested meeting length.
	TargetDurationMinutes int
	// MaxRounds caps the total relaxation stages executed, guaranteeing
	// termination even if the ladder grows. Zero means ladder-bounded only.
	MaxRounds   int
	Negotiation negotiate.Config
}

// Validate checks the run parameters.
func (c Config) Validate() error {
	if c.TargetDurationMinutes <= 0 {
		return fmt.Errorf("target duration must be positive")
	}
	if c.HorizonDays <= 0 {
		return fmt.Errorf("horizon must be positive")
	}
	if c.TargetDurationMinutes < c.Negotiation.MinViableMinutes {
		return fmt.Errorf("target duration %d below minimum viable %d",
			c.TargetDurationMinutes, c.Negotiation.MinViableMinutes)
	}
	return c.Negotiation.Validate()
}

// EventBus is the minimal publishing surface the coordinator needs.
type EventBus interface {
	Publish(any)
}

// Coordinator owns the lifecycle state of one negotiation run. It is the
// only stateful component; build a fresh one per run.
type Coordinator struct {
	idx          *calendar.Index
	negotiator   *negotiate.Negotiator
	participants []string
	cfg          Config
	log          logger.Logger
	bus          EventBus
	sink         metrics.Sink

	runID  string
	state  State
	rounds []model.NegotiationRound
}

// New creates a Coordinator for one run over the read-only inputs.
func New(idx *calendar.Index, prefs *preference.Model, participants []string, cfg Config, log logger.Logger, bus EventBus, sink metrics.Sink) (*Coordinator, error) {
	if idx == nil || prefs == nil {
		return nil, fmt.Errorf("coordinator: nil calendar index or preference model")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("coordinator config: %w", err)
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Coordinator{
		idx:          idx,
		negotiator:   negotiate.New(idx, prefs, participants, cfg.Negotiation.Weights, log),
		participants: participants,
		cfg:          cfg,
		log:          log,
		bus:          bus,
		sink:         sink,
		runID:        uuid.NewString(),
		state:        StateInit,
	}, nil
}

// RunID returns the identifier assigned to this run.
func (c *Coordinator) RunID() string { return c.runID }

// State returns the current lifecycle phase.
func (c *Coordinator) State() State { return c.state }

func (c *Coordinator) transition(to State) {
	from := c.state
	c.state = to
	c.log.Debugf("run %s: %s -> %s", c.runID, from, to)
	if c.bus != nil {
		c.bus.Publish(events.PhaseEvent{RunID: c.runID, From: from.String(), To: to.String()})
	}
}

// Run executes the negotiation to completion. Data-shape problems (unknown
// participant, no participants) return an error; every scheduling outcome,
// including failure to find a slot, returns a Decision.
func (c *Coordinator) Run(ctx context.Context) (model.Decision, error) {
	started := time.Now()
	stages := c.cfg.Negotiation.Stages(c.cfg.TargetDurationMinutes)

	var (
		best      *negotiate.Evaluation
		lastStage negotiate.Stage
		blocked   []model.ConstraintViolation
	)
	candidatesTotal := 0

	for i, st := range stages {
		// Budget checks happen at stage boundaries; a stage itself never blocks.
		if err := ctx.Err(); err != nil {
			return c.fail(model.ReasonCancelled, nil, started), nil
		}
		if c.cfg.MaxRounds > 0 && i >= c.cfg.MaxRounds {
			c.log.Warnf("run %s: round limit %d reached before ladder end", c.runID, c.cfg.MaxRounds)
			return c.fail(model.ReasonRoundLimitExceeded, nil, started), nil
		}

		switch {
		case i == 0:
			c.transition(StateGenerating)
		default:
			c.transition(StateRelaxing)
		}
		gen, err := slots.New(c.idx, c.participants, st.DurationMinutes, slots.Config{
			Start:       c.cfg.Start,
			HorizonDays: c.cfg.HorizonDays,
		})
		if err != nil {
			c.transition(StateFailed)
			return model.Decision{}, err
		}

		c.transition(StateNegotiating)
		ev, report, err := c.negotiator.EvaluateStage(gen, st)
		if err != nil {
			c.transition(StateFailed)
			return model.Decision{}, err
		}
		candidatesTotal += report.Candidates
		lastStage = st
		blocked = report.Blocking

		round := model.NegotiationRound{
			RelaxationLevel: st.Level,
			DurationMinutes: st.DurationMinutes,
			CapRelaxed:      st.CapRelaxed,
			Candidates:      report.Candidates,
			Feasible:        report.Feasible,
			Outcome:         "exhausted",
		}
		if ev != nil {
			round.Outcome = "selected"
		}
		c.rounds = append(c.rounds, round)
		c.publishRound(round)
		c.recordStage(st, report)

		if ev != nil {
			best = ev
			break
		}
	}

	if best == nil {
		if len(blocked) == 0 {
			// No candidate ever reached hard filtering: the calendars have
			// no jointly free span of even the shortest viable duration.
			blocked = c.negotiator.BlockedByAll()
		}
		c.log.Infof("run %s: no feasible slot after level %d (duration %d, cap_relaxed %t)",
			c.runID, lastStage.Level, lastStage.DurationMinutes, lastStage.CapRelaxed)
		return c.fail(model.ReasonNoFeasibleSlot, blocked, started), nil
	}

	c.transition(StateDecided)
	decision := model.Decision{
		RunID:          c.runID,
		Status:         model.StatusScheduled,
		Slot:           best.Slot,
		SoftViolations: best.Soft,
		Confidence:     best.Confidence,
		Rounds:         append([]model.NegotiationRound(nil), c.rounds...),
	}
	c.finish(decision, candidatesTotal, started)
	return decision, nil
}

func (c *Coordinator) fail(reason model.FailReason, blocked []model.ConstraintViolation, started time.Time) model.Decision {
	c.transition(StateFailed)
	decision := model.Decision{
		RunID:     c.runID,
		Status:    model.StatusFailed,
		Reason:    reason,
		BlockedBy: blocked,
		Rounds:    append([]model.NegotiationRound(nil), c.rounds...),
	}
	candidates := 0
	for _, r := range c.rounds {
		candidates += r.Candidates
	}
	c.finish(decision, candidates, started)
	return decision
}

func (c *Coordinator) finish(decision model.Decision, candidates int, started time.Time) {
	if c.bus != nil {
		c.bus.Publish(events.DecisionEvent{Decision: decision})
	}
	if err := c.sink.RecordRun(metrics.RunRecord{
		RunID:        c.runID,
		Status:       decision.Status.String(),
		Reason:       string(decision.Reason),
		Participants: len(c.participants),
		Stages:       len(c.rounds),
		Candidates:   candidates,
		Confidence:   decision.Confidence,
		Elapsed:      time.Since(started),
		Time:         time.Now(),
	}); err != nil {
		c.log.Errorf("run metrics error: %v", err)
	}
}

func (c *Coordinator) publishRound(round model.NegotiationRound) {
	if c.bus == nil {
		return
	}
	c.bus.Publish(events.RoundEvent{
		RunID:           c.runID,
		RelaxationLevel: round.RelaxationLevel,
		DurationMinutes: round.DurationMinutes,
		CapRelaxed:      round.CapRelaxed,
		Candidates:      round.Candidates,
		Feasible:        round.Feasible,
	})
}

func (c *Coordinator) recordStage(st negotiate.Stage, report negotiate.StageReport) {
	if err := c.sink.RecordStage(metrics.StageRecord{
		RunID:           c.runID,
		RelaxationLevel: st.Level,
		DurationMinutes: st.DurationMinutes,
		CapRelaxed:      st.CapRelaxed,
		Candidates:      report.Candidates,
		Feasible:        report.Feasible,
	}); err != nil {
		c.log.Errorf("stage metrics error: %v", err)
	}
}
