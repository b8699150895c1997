// Package negotiate evaluates candidate slots against participant
// preferences: hard constraints reject, soft constraints score, and a
// bounded relaxation ladder weakens the constraint set when nothing fits.
package negotiate

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/meetsched/core/calendar"
	"github.com/kilianp07/meetsched/core/logger"
	"github.com/kilianp07/meetsched/core/model"
	"github.com/kilianp07/meetsched/core/preference"
	"github.com/kilianp07/meetsched/core/slots"
)

// Negotiator selects the best feasible slot from a candidate stream.
type Negotiator struct {
	idx          *calendar.Index
	prefs        *preference.Model
	participants []string
	weights      Weights
	log          logger.Logger
}

// New creates a Negotiator over the given read-only inputs.
func New(idx *calendar.Index, prefs *preference.Model, participants []string, w Weights, log logger.Logger) *Negotiator {
	if log == nil {
		log = logger.NopLogger{}
	}
	if w == (Weights{}) {
		w = DefaultWeights()
	}
	return &Negotiator{idx: idx, prefs: prefs, participants: participants, weights: w, log: log}
}

// Evaluation is a hard-feasible candidate with its soft-constraint summary.
type Evaluation struct {
	Slot  model.CandidateSlot
	Soft  []model.ConstraintViolation
	Score int
	// Confidence is the mean per-participant satisfaction in [0,1].
	Confidence float64
}

// StageReport summarizes one relaxation stage for diagnostics.
type StageReport struct {
	Candidates int
	Feasible   int
	// Blocking is the deduplicated set of hard violations seen across all
	// rejected candidates, ordered by participant then kind.
	Blocking []model.ConstraintViolation
}

// EvaluateStage drains the candidate stream, rejects candidates violating a
// hard constraint for any participant and returns the surviving candidate
// with the lowest total soft score. The stream's (date, start) ordering
// makes the tie-break free: a later candidate replaces the best only with a
// strictly lower score.
func (n *Negotiator) EvaluateStage(gen *slots.Generator, st Stage) (*Evaluation, StageReport, error) {
	var best *Evaluation
	report := StageReport{}
	blocking := make(map[model.ConstraintViolation]struct{})

	for {
		slot, ok, err := gen.Next()
		if err != nil {
			return nil, report, err
		}
		if !ok {
			break
		}
		report.Candidates++
		hard, soft, err := n.evaluate(slot, st.CapRelaxed)
		if err != nil {
			return nil, report, err
		}
		if len(hard) > 0 {
			for _, v := range hard {
				blocking[v] = struct{}{}
			}
			continue
		}
		report.Feasible++
		ev := &Evaluation{Slot: slot, Soft: soft, Score: totalWeight(soft)}
		if best == nil || ev.Score < best.Score {
			best = ev
		}
	}

	for v := range blocking {
		report.Blocking = append(report.Blocking, v)
	}
	sort.Slice(report.Blocking, func(i, j int) bool {
		if report.Blocking[i].ParticipantID != report.Blocking[j].ParticipantID {
			return report.Blocking[i].ParticipantID < report.Blocking[j].ParticipantID
		}
		return report.Blocking[i].Kind < report.Blocking[j].Kind
	})

	if best != nil {
		best.Confidence = n.confidence(best.Soft)
		n.log.Debugw("stage evaluated", map[string]any{
			"level":       st.Level,
			"duration":    st.DurationMinutes,
			"cap_relaxed": st.CapRelaxed,
			"candidates":  report.Candidates,
			"feasible":    report.Feasible,
			"best_score":  best.Score,
		})
	} else {
		n.log.Debugf("stage level %d exhausted: %d candidates, none feasible", st.Level, report.Candidates)
	}
	return best, report, nil
}

// evaluate checks one candidate against every participant. Hard violations
// short-circuit scoring for that participant but the scan continues so the
// blocking set covers everyone.
func (n *Negotiator) evaluate(slot model.CandidateSlot, capRelaxed bool) (hard, soft []model.ConstraintViolation, err error) {
	for _, id := range n.participants {
		p := n.prefs.ConstraintsFor(id)

		if slot.Start < p.Earliest || slot.End() > p.Latest {
			hard = append(hard, model.ConstraintViolation{
				ParticipantID: id, Kind: model.KindWindowMismatch, Severity: model.SeverityHard,
			})
			continue
		}

		if p.MaxMeetingsPerDay != model.NoLimit {
			count, cerr := n.idx.MeetingsOn(id, slot.Date)
			if cerr != nil {
				return nil, nil, cerr
			}
			if count+1 > p.MaxMeetingsPerDay {
				if !capRelaxed {
					hard = append(hard, model.ConstraintViolation{
						ParticipantID: id, Kind: model.KindDailyCap, Severity: model.SeverityHard,
					})
					continue
				}
				soft = append(soft, model.ConstraintViolation{
					ParticipantID: id, Kind: model.KindDailyCap, Severity: model.SeveritySoft, Weight: n.weights.DemotedCap,
				})
			}
		}

		if p.AvoidLunch && slot.Interval().Overlaps(model.Lunch) {
			soft = append(soft, model.ConstraintViolation{
				ParticipantID: id, Kind: model.KindLunchOverlap, Severity: model.SeveritySoft, Weight: n.weights.Lunch,
			})
		}
		if mismatchesTimeOfDay(p, slot) {
			soft = append(soft, model.ConstraintViolation{
				ParticipantID: id, Kind: model.KindTimeOfDay, Severity: model.SeveritySoft, Weight: n.weights.TimeOfDay,
			})
		}
		if p.PreferredMaxDurationMinutes != model.NoLimit && slot.DurationMinutes > p.PreferredMaxDurationMinutes {
			soft = append(soft, model.ConstraintViolation{
				ParticipantID: id, Kind: model.KindDurationExcess, Severity: model.SeveritySoft, Weight: n.weights.Duration,
			})
		}
	}
	return hard, soft, nil
}

// mismatchesTimeOfDay flags one-sided morning/afternoon leanings only.
// Both flags set, or neither, means no preference.
func mismatchesTimeOfDay(p model.Preference, slot model.CandidateSlot) bool {
	noon := model.Lunch.Start
	if p.PrefersAfternoon && !p.PrefersMorning && slot.Start < noon {
		return true
	}
	if p.PrefersMorning && !p.PrefersAfternoon && slot.Start >= noon {
		return true
	}
	return false
}

func totalWeight(soft []model.ConstraintViolation) int {
	total := 0
	for _, v := range soft {
		total += v.Weight
	}
	return total
}

// confidence averages per-participant satisfaction, where a participant
// with weighted violations w is satisfied 1/(1+w).
func (n *Negotiator) confidence(soft []model.ConstraintViolation) float64 {
	perParticipant := make(map[string]int, len(n.participants))
	for _, v := range soft {
		perParticipant[v.ParticipantID] += v.Weight
	}
	sat := make([]float64, 0, len(n.participants))
	for _, id := range n.participants {
		sat = append(sat, 1/float64(1+perParticipant[id]))
	}
	return stat.Mean(sat, nil)
}

// BlockedByAll attributes a failure with no candidates at all: when the
// calendars never produce a jointly free span, every participant's window
// is part of the mismatch.
func (n *Negotiator) BlockedByAll() []model.ConstraintViolation {
	out := make([]model.ConstraintViolation, 0, len(n.participants))
	ids := append([]string(nil), n.participants...)
	sort.Strings(ids)
	for _, id := range ids {
		out = append(out, model.ConstraintViolation{
			ParticipantID: id, Kind: model.KindWindowMismatch, Severity: model.SeverityHard,
		})
	}
	return out
}
