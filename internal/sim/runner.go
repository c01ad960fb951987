// Package sim runs full self-play raids with a policy bot in every
// seat and produces raid outcomes for persistence.
package sim

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	engine "github.com/stayfuntaxcol/vossenjacht-sub000/engine"
	"github.com/stayfuntaxcol/vossenjacht-sub000/engine/bot"
	"github.com/stayfuntaxcol/vossenjacht-sub000/engine/catalog"
)

// MaxRounds caps a raid against pathological non-termination; the
// standard track exhausts well before this.
const MaxRounds = 32

// Runner drives self-play raids. One bot instance evaluates every
// seat; the engine state is the only thing that differs per fox.
type Runner struct {
	log *logrus.Logger
	bot *bot.Bot
}

// New returns a Runner over the standard catalog.
func New(log *logrus.Logger) *Runner {
	if log == nil {
		log = logrus.New()
	}
	return &Runner{log: log, bot: bot.New(catalog.Default())}
}

// Bot exposes the shared bot for tuning adjustments before a run.
func (r *Runner) Bot() *bot.Bot {
	return r.bot
}

// SeatOutcome is one fox's final result.
type SeatOutcome struct {
	AgentID    uint8
	Den        engine.Den
	Escaped    bool // left the yard carrying loot
	Caught     bool // taken by the farm; loot forfeit
	Loot       int
	BurrowUsed bool
}

// RaidOutcome is the result of one complete raid.
type RaidOutcome struct {
	ID     uuid.UUID
	Seed   uint64
	Foxes  int
	Rounds int
	Seats  []SeatOutcome
}

// RunRaid plays one raid to completion from the given seed.
func (r *Runner) RunRaid(ctx context.Context, seed uint64, foxes int) (RaidOutcome, error) {
	st := engine.NewRaid(foxes, seed)
	id := uuid.New()
	log := r.log.WithFields(logrus.Fields{"raid": id, "seed": seed, "foxes": foxes})

	caught := make(map[uint8]bool)
	escaped := make(map[uint8]bool)

	rounds := 0
	for ; rounds < MaxRounds; rounds++ {
		if err := ctx.Err(); err != nil {
			return RaidOutcome{}, fmt.Errorf("raid %s: %w", id, err)
		}
		if r.yardEmpty(st) || len(st.Track) == 0 {
			break
		}

		r.movePhase(st)
		r.opsPhase(st)
		r.decisionPhase(st)
		terminal := r.resolvePhase(st, log, caught, escaped)
		if terminal {
			rounds++
			break
		}
		st.EndRound()
	}

	// Foxes still in the yard at dawn slip away with whatever they
	// carry.
	for i := range st.Agents {
		if st.Agents[i].InYard {
			escaped[st.Agents[i].ID] = true
		}
	}

	out := RaidOutcome{ID: id, Seed: seed, Foxes: foxes, Rounds: rounds}
	for i := range st.Agents {
		ag := &st.Agents[i]
		out.Seats = append(out.Seats, SeatOutcome{
			AgentID:    ag.ID,
			Den:        ag.Den,
			Escaped:    escaped[ag.ID] && !caught[ag.ID],
			Caught:     caught[ag.ID],
			Loot:       ag.CarriedValue(),
			BurrowUsed: ag.BurrowUsedMatch,
		})
	}
	log.WithFields(logrus.Fields{
		"rounds":  rounds,
		"caught":  len(caught),
		"escaped": len(out.Seats) - len(caught),
	}).Info("raid finished")
	return out, nil
}

// RunMany plays n raids from consecutive seeds.
func (r *Runner) RunMany(ctx context.Context, n int, seed uint64, foxes int) ([]RaidOutcome, error) {
	out := make([]RaidOutcome, 0, n)
	for i := 0; i < n; i++ {
		res, err := r.RunRaid(ctx, seed+uint64(i), foxes)
		if err != nil {
			return out, err
		}
		out = append(out, res)
	}
	return out, nil
}

func (r *Runner) yardEmpty(st *engine.State) bool {
	for i := range st.Agents {
		if st.Agents[i].InYard {
			return false
		}
	}
	return true
}

// seatOrder returns in-yard agent ids starting from the lead.
func seatOrder(st *engine.State) []uint8 {
	n := len(st.Agents)
	out := make([]uint8, 0, n)
	for off := 0; off < n; off++ {
		ag := &st.Agents[(int(st.LeadIdx)+off)%n]
		if ag.InYard {
			out = append(out, ag.ID)
		}
	}
	return out
}

func (r *Runner) movePhase(st *engine.State) {
	st.Phase = engine.PhaseMove
	for _, id := range seatOrder(st) {
		res := r.bot.EvaluateMove(st, id)
		if res.NoCandidates {
			continue
		}
		r.applyMove(st, id, res.Best)
	}
}

func (r *Runner) applyMove(st *engine.State, id uint8, mv bot.ScoredMove) {
	switch mv.Move {
	case engine.MoveDrawLoot:
		st.DrawLoot(id)
	case engine.MoveDrawActions:
		st.DrawActions(id, 2)
	case engine.MoveScout:
		// A scout is public: every fox in the yard learns the window.
		depth := engine.PrivateScoutDepth
		if depth > len(st.Track) {
			depth = len(st.Track)
		}
		for i := range st.Agents {
			if st.Agents[i].InYard {
				st.Agents[i].KnownEvents = append([]engine.EventID(nil), st.Track[:depth]...)
				st.Agents[i].KnownVersion = st.TrackVersion
			}
		}
	case engine.MoveShift:
		ag := st.Agent(id)
		if ag.RemoveHighestLoot() == 0 {
			return
		}
		st.SwapUpcoming(mv.SwapI, mv.SwapJ)
	}
}

func (r *Runner) opsPhase(st *engine.State) {
	st.Phase = engine.PhaseOps
	for _, id := range seatOrder(st) {
		res := r.bot.EvaluateOps(st, id)
		for _, cp := range res.Best.Play.Cards {
			if !st.ApplyAction(id, cp.Action, cp.Target) {
				break // the first card changed the board under the second
			}
		}
	}
}

func (r *Runner) decisionPhase(st *engine.State) {
	st.Phase = engine.PhaseDecision
	for _, id := range seatOrder(st) {
		res := r.bot.EvaluateDecision(st, id)
		choice := res.Choice
		if res.NoCandidates || choice == engine.ChoiceNone {
			choice = engine.ChoiceLurk
		}
		st.CommitDecision(id, choice)
	}
}

// resolvePhase applies the head event to the roster and updates dash
// pressure. Returns true when the terminal crow ends the raid.
func (r *Runner) resolvePhase(st *engine.State, log *logrus.Entry, caught, escaped map[uint8]bool) bool {
	st.Phase = engine.PhaseResolve
	ev, ok := st.Head()
	if !ok {
		return false
	}

	// Danger is computed against the pre-advance state: the terminal
	// crow is judged by the public counter before its own bump.
	type fate struct {
		id     uint8
		choice engine.Choice
		danger float64
		peak   float64
	}
	fates := make([]fate, 0, len(st.Agents))
	for _, id := range seatOrder(st) {
		ag := st.Agent(id)
		choice := ag.Decision
		if choice == engine.ChoiceNone {
			choice = engine.ChoiceLurk
		}
		vec := r.bot.DangerVector(st, id, ev)
		fates = append(fates, fate{id: id, choice: choice, danger: vec.For(choice), peak: vec.Peak()})
	}

	st.AdvanceTrack()

	flights := 0
	quiet := true
	for _, f := range fates {
		ag := st.Agent(f.id)
		if f.peak > 0 {
			quiet = false
		}
		if f.danger >= r.bot.Tuning.HighDanger {
			caught[f.id] = true
			ag.Loot = nil
			ag.InYard = false
			flights++
			continue
		}
		if f.choice == engine.ChoiceDash {
			escaped[f.id] = true
			ag.InYard = false
			flights++
		}
	}

	// Pressure update for the foxes that stayed.
	for _, f := range fates {
		ag := st.Agent(f.id)
		if !ag.InYard {
			continue
		}
		switch {
		case quiet:
			ag.DashPressure *= r.bot.Tuning.PressureQuietDecay
		case f.peak >= r.bot.Tuning.HighDanger:
			// Survived an event that could have taken them.
			ag.DashPressure += r.bot.Tuning.PressureNearMiss
		}
		ag.DashPressure += r.bot.Tuning.PressurePerFlight * float64(flights)
		if ag.DashPressure > engine.MaxDashPressure {
			ag.DashPressure = engine.MaxDashPressure
		}
	}

	log.WithFields(logrus.Fields{
		"round":   st.Round,
		"event":   ev,
		"crows":   st.Crows,
		"flights": flights,
	}).Debug("event resolved")

	return ev == engine.EventRoosterCrow && st.Crows >= engine.TerminalCrowCount
}
