package app

import (
	"context"
	"fmt"
	"time"

	"github.com/kilianp07/meetsched/config"
	"github.com/kilianp07/meetsched/core/calendar"
	"github.com/kilianp07/meetsched/core/coordinator"
	"github.com/kilianp07/meetsched/core/events"
	"github.com/kilianp07/meetsched/core/history"
	coremetrics "github.com/kilianp07/meetsched/core/metrics"
	"github.com/kilianp07/meetsched/core/model"
	"github.com/kilianp07/meetsched/core/negotiate"
	"github.com/kilianp07/meetsched/core/preference"
	"github.com/kilianp07/meetsched/infra/compose"
	"github.com/kilianp07/meetsched/infra/loader"
	"github.com/kilianp07/meetsched/infra/logger"
	"github.com/kilianp07/meetsched/infra/metrics"
	"github.com/kilianp07/meetsched/internal/eventbus"
)

// Service wires the calendar index, preference model, coordinator and
// supporting infrastructure for one scheduling run.
type Service struct {
	cfg          *config.Config
	idx          *calendar.Index
	prefs        *preference.Model
	participants []string
	bus          *eventbus.Bus
	sink         coremetrics.Sink
	store        history.Store
	composer     compose.Composer
	log          logger.Logger
	promEnabled  bool
	promPort     string
}

// New creates a Service from the configuration, loading calendars and
// preferences from the configured sources.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.Sink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	busy, err := loadCalendars(cfg.Calendars)
	if err != nil {
		return nil, fmt.Errorf("load calendars: %w", err)
	}
	window, err := cfg.Scheduling.Window()
	if err != nil {
		return nil, err
	}
	idx, err := calendar.NewIndex(busy, window)
	if err != nil {
		return nil, fmt.Errorf("calendar index: %w", err)
	}

	records, err := loader.LoadPreferencesTSV(cfg.Preferences.Path)
	if err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}
	prefs, err := preference.NewModel(records)
	if err != nil {
		return nil, fmt.Errorf("preference model: %w", err)
	}

	participants := cfg.Scheduling.Participants
	if len(participants) == 0 {
		participants = idx.Participants()
	}

	var store history.Store
	if cfg.History.Enabled {
		store, err = history.NewJSONLStore(cfg.History.Path)
		if err != nil {
			return nil, fmt.Errorf("history store: %w", err)
		}
	}

	return &Service{
		cfg:          cfg,
		idx:          idx,
		prefs:        prefs,
		participants: participants,
		bus:          eventbus.New(),
		sink:         sink,
		store:        store,
		composer:     compose.New(cfg.Composer),
		log:          logg,
		promEnabled:  cfg.Metrics.PrometheusEnabled,
		promPort:     cfg.Metrics.PrometheusPort,
	}, nil
}

func loadCalendars(cfg config.CalendarsConfig) (map[string][]model.BusyInterval, error) {
	if cfg.Format == "ics" {
		return loader.LoadCalendarsICS(cfg.ICSFiles)
	}
	return loader.LoadCalendarsTSV(cfg.Path)
}

// Run executes one negotiation and returns the composed answer.
func (s *Service) Run(ctx context.Context) (string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	sub := s.bus.Subscribe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.logEvents(sub)
	}()

	start, err := s.cfg.Scheduling.Start(time.Now())
	if err != nil {
		return "", err
	}
	coord, err := coordinator.New(s.idx, s.prefs, s.participants, coordinator.Config{
		Start:                 start,
		HorizonDays:           s.cfg.Scheduling.HorizonDays,
		TargetDurationMinutes: s.cfg.Scheduling.TargetDurationMinutes,
		MaxRounds:             s.cfg.Scheduling.MaxRounds,
		Negotiation: negotiationConfig(
			s.cfg.Scheduling.RelaxationLadder,
			s.cfg.Scheduling.MinViableDurationMinutes,
		),
	}, s.log, s.bus, s.sink)
	if err != nil {
		return "", err
	}

	decision, err := coord.Run(ctx)
	s.bus.Unsubscribe(sub)
	<-done
	if err != nil {
		return "", err
	}

	if s.store != nil {
		rec := history.Record{
			Timestamp:       time.Now().UTC(),
			Participants:    s.participants,
			RequestedLength: s.cfg.Scheduling.TargetDurationMinutes,
			Decision:        decision,
		}
		if err := s.store.Append(ctx, rec); err != nil {
			s.log.Errorf("history append: %v", err)
		}
	}

	answer, err := s.composer.Compose(decision, s.participants)
	if err != nil {
		return "", fmt.Errorf("compose answer: %w", err)
	}
	return answer, nil
}

func (s *Service) logEvents(sub <-chan eventbus.Event) {
	for e := range sub {
		switch ev := e.(type) {
		case events.PhaseEvent:
			s.log.Debugw("phase transition", map[string]any{
				"run_id": ev.RunID, "from": ev.From, "to": ev.To,
			})
		case events.RoundEvent:
			s.log.Infof("round level=%d duration=%dmin cap_relaxed=%t candidates=%d feasible=%d",
				ev.RelaxationLevel, ev.DurationMinutes, ev.CapRelaxed, ev.Candidates, ev.Feasible)
		case events.DecisionEvent:
			s.log.Infof("decision status=%s reason=%s confidence=%.2f",
				ev.Decision.Status, ev.Decision.Reason, ev.Decision.Confidence)
		}
	}
}

func negotiationConfig(ladder []int, minViable int) negotiate.Config {
	cfg := negotiate.Config{Ladder: ladder, MinViableMinutes: minViable}
	cfg.SetDefaults()
	return cfg
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	if closer, ok := s.sink.(interface{ Close() }); ok {
		closer.Close()
	}
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}
