package bot

import engine "github.com/stayfuntaxcol/vossenjacht-sub000/engine"

// Reason explains a decision result.
type Reason string

const (
	ReasonForced        Reason = "forced"          // hold_still pins the agent
	ReasonFollow        Reason = "follow"          // mirroring a shadow-trail target
	ReasonTerminalCrow  Reason = "terminal_crow"   // only DASH survives the third crow
	ReasonSafe          Reason = "safe"            // staying is under the safe threshold
	ReasonPreferBurrow  Reason = "danger_prefer_burrow"
	ReasonForcedDash    Reason = "danger_forced_dash"
	ReasonPressureStay  Reason = "pressure_stay"   // no intel, pressure below threshold
	ReasonPressureFlee  Reason = "pressure_flee"   // no intel, pressure at threshold
	ReasonNotInYard     Reason = "not_in_yard"
)

// ScoredChoice is one ranked decision alternative.
type ScoredChoice struct {
	Choice  engine.Choice
	Utility float64
}

// DecisionResult is the outcome of the decision evaluator: the chosen
// terminal choice, the reason a hard rule or the utility fallback
// fired, and the ranked alternatives. NoCandidates marks an agent with
// nothing to decide (already out of the yard); the caller supplies its
// own safe default in that case.
type DecisionResult struct {
	Choice       engine.Choice
	Reason       Reason
	Ranked       []ScoredChoice
	Intel        Intel
	NoCandidates bool
}

// Utility returns the utility of the selected choice.
func (r DecisionResult) Utility() float64 {
	for _, sc := range r.Ranked {
		if sc.Choice == r.Choice {
			return sc.Utility
		}
	}
	return 0
}

// burrowUsable reports whether the agent can still burrow this raid.
func burrowUsable(ag *engine.Agent) bool {
	return ag.BurrowAvailable
}

// EvaluateDecision picks the best of LURK, DASH, BURROW under the hard
// safety rules, with the utility fallback when no rule fires. Absence
// of intel never errors; it degrades to the pressure-based fallback.
func (b *Bot) EvaluateDecision(st *engine.State, agentID uint8) DecisionResult {
	st.Normalize()
	ag := st.Agent(agentID)
	if ag == nil || !ag.InYard {
		return DecisionResult{Choice: engine.ChoiceNone, Reason: ReasonNotInYard, NoCandidates: true}
	}

	intel := b.ResolveIntel(st, agentID, b.Tuning.Lookahead)

	// 1. Forced stay.
	if st.Flags.ForceStay[agentID] {
		return b.rankResult(st, ag, intel, engine.ChoiceLurk, ReasonForced)
	}

	// Shadow bindings mirror an already-committed target decision.
	if target, ok := st.Flags.Follow[agentID]; ok {
		if tgt := st.Agent(target); tgt != nil && tgt.Decision != engine.ChoiceNone {
			mirror := tgt.Decision
			if mirror == engine.ChoiceBurrow && !burrowUsable(ag) {
				mirror = engine.ChoiceLurk
			}
			return b.rankResult(st, ag, intel, mirror, ReasonFollow)
		}
	}

	// 2. Unresolvable identity: pressure fallback. The threshold rises
	// with each fox already observed to have fled.
	next, resolvable := intel.NextEvent()
	if !resolvable {
		threshold := b.Tuning.PressureBase + b.Tuning.PressurePerFled*float64(st.FledCount())
		if ag.DashPressure >= threshold {
			choice := engine.ChoiceDash
			if burrowUsable(ag) {
				choice = engine.ChoiceBurrow
			}
			return b.rankBagResult(st, ag, intel, choice, ReasonPressureFlee)
		}
		return b.rankBagResult(st, ag, intel, engine.ChoiceLurk, ReasonPressureStay)
	}

	vec := b.DangerVector(st, agentID, next)

	// 4. Terminal escalation: DASH unconditionally.
	if terminalCrow(st, next) {
		return b.rankResult(st, ag, intel, engine.ChoiceDash, ReasonTerminalCrow)
	}

	// 3/5. Danger if stay = min(LURK, BURROW) across the stay options
	// actually available. When staying is safe, pick the stay choice
	// that achieves the minimum rather than burning a burrow on a
	// quiet night.
	stay := vec.Lurk
	if burrowUsable(ag) && vec.Burrow < stay {
		stay = vec.Burrow
	}
	if stay <= b.Tuning.SafeDanger {
		if vec.Lurk <= b.Tuning.SafeDanger {
			return b.rankResult(st, ag, intel, engine.ChoiceLurk, ReasonSafe)
		}
		return b.rankResult(st, ag, intel, engine.ChoiceBurrow, ReasonPreferBurrow)
	}

	// 6. Dangerous even for the best stay: burrow if still available,
	// else dash.
	if burrowUsable(ag) {
		return b.rankResult(st, ag, intel, engine.ChoiceBurrow, ReasonPreferBurrow)
	}
	return b.rankResult(st, ag, intel, engine.ChoiceDash, ReasonForcedDash)
}

// rankResult builds the ranked alternatives from the resolved head
// event's danger vector.
func (b *Bot) rankResult(st *engine.State, ag *engine.Agent, intel Intel, choice engine.Choice, reason Reason) DecisionResult {
	var vec Vector
	if next, ok := intel.NextEvent(); ok {
		vec = b.DangerVector(st, ag.ID, next)
	}
	return DecisionResult{
		Choice: choice,
		Reason: reason,
		Ranked: b.rankChoices(ag, vec, intel.Confidence),
		Intel:  intel,
	}
}

// rankBagResult builds ranked alternatives from the expectation over
// the remaining bag, weighted down by the high-danger fraction.
func (b *Bot) rankBagResult(st *engine.State, ag *engine.Agent, intel Intel, choice engine.Choice, reason Reason) DecisionResult {
	vec, highFrac := b.ExpectedDangerOverBag(st, ag.ID, st.RemainingBag())
	return DecisionResult{
		Choice: choice,
		Reason: reason,
		Ranked: b.rankChoices(ag, vec, 1.0-highFrac),
		Intel:  intel,
	}
}

// rankChoices scores each available choice as MaxDanger minus its
// confidence-weighted danger, sorted best first. An unavailable burrow
// is excluded rather than scored.
func (b *Bot) rankChoices(ag *engine.Agent, vec Vector, confidence float64) []ScoredChoice {
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	weight := 0.5 + 0.5*confidence // hedge unresolved danger toward the middle
	ranked := []ScoredChoice{
		{Choice: engine.ChoiceLurk, Utility: MaxDanger - vec.Lurk*weight},
		{Choice: engine.ChoiceDash, Utility: MaxDanger - vec.Dash*weight},
	}
	if burrowUsable(ag) {
		ranked = append(ranked, ScoredChoice{Choice: engine.ChoiceBurrow, Utility: MaxDanger - vec.Burrow*weight})
	}
	// Insertion sort, best first; stable for ties.
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && ranked[j].Utility > ranked[j-1].Utility; j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}
	return ranked
}
