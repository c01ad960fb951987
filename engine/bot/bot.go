package bot

import (
	engine "github.com/stayfuntaxcol/vossenjacht-sub000/engine"
	"github.com/stayfuntaxcol/vossenjacht-sub000/engine/catalog"
)

// Bot is the policy engine for one seat. It holds no game state of its
// own; every evaluation receives a fresh snapshot from the caller.
type Bot struct {
	Catalog catalog.Lookup
	Tuning  Tuning
}

// New returns a Bot over the given catalog with default tuning.
func New(cat catalog.Lookup) *Bot {
	return &Bot{Catalog: cat, Tuning: DefaultTuning()}
}

// PhaseResult is the union return of EvaluatePhase. Exactly one of
// Move, Ops, Decision is populated, matching the phase evaluated.
type PhaseResult struct {
	Phase    engine.Phase
	Move     *MoveResult
	Ops      *OpsResult
	Decision *DecisionResult
}

// EvaluatePhase dispatches to the phase-appropriate evaluator. The
// resolve phase has no agent choice; it returns an empty result.
func (b *Bot) EvaluatePhase(phase engine.Phase, st *engine.State, agentID uint8) PhaseResult {
	switch phase {
	case engine.PhaseMove:
		r := b.EvaluateMove(st, agentID)
		return PhaseResult{Phase: phase, Move: &r}
	case engine.PhaseOps:
		r := b.EvaluateOps(st, agentID)
		return PhaseResult{Phase: phase, Ops: &r}
	case engine.PhaseDecision:
		r := b.EvaluateDecision(st, agentID)
		return PhaseResult{Phase: phase, Decision: &r}
	}
	return PhaseResult{Phase: phase}
}

// stage returns the setup-bonus and spend-cost scales for the current
// round: setup pieces are held early and cashed in late, spending is
// discouraged early.
func (b *Bot) stage(st *engine.State) (setupScale, spendCost float64) {
	if int(st.Round) >= b.Tuning.LateRound {
		return b.Tuning.SetupLate, b.Tuning.SpendCostLate
	}
	return b.Tuning.SetupEarly, b.Tuning.SpendCostEarly
}

// farBehind reports whether the agent is in a last-place-or-far-behind
// state: no other in-yard fox carries less loot.
func farBehind(st *engine.State, agentID uint8) bool {
	ag := st.Agent(agentID)
	if ag == nil {
		return false
	}
	own := ag.CarriedValue()
	behindAll := false
	for i := range st.Agents {
		other := &st.Agents[i]
		if other.ID == agentID || !other.InYard {
			continue
		}
		if other.CarriedValue() < own {
			return false
		}
		if other.CarriedValue() > own {
			behindAll = true
		}
	}
	return behindAll
}
