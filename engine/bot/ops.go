package bot

import (
	engine "github.com/stayfuntaxcol/vossenjacht-sub000/engine"
	"github.com/stayfuntaxcol/vossenjacht-sub000/engine/catalog"
)

// CardPlay is one card with its chosen target (NoTarget when the card
// does not take one).
type CardPlay struct {
	Action engine.ActionID
	Target uint8
}

// Play is zero (PASS), one, or two ordered card plays.
type Play struct {
	Cards []CardPlay
}

// IsPass reports whether the play is a pass.
func (p Play) IsPass() bool { return len(p.Cards) == 0 }

// ScoredPlay is one ranked ops alternative.
type ScoredPlay struct {
	Play    Play
	Utility float64
}

// OpsResult is the outcome of the ops evaluator. Urgent marks the
// survival-critical short-circuit, which bypasses scoring entirely.
type OpsResult struct {
	Best         ScoredPlay
	Ranked       []ScoredPlay
	Urgent       bool
	NoCandidates bool
}

// tableUtility evaluates the decision-evaluator utility of the state
// for the agent, its den allies, and its opponents. Runs the decision
// evaluator per seat, so it must only ever be handed clones.
func (b *Bot) tableUtility(st *engine.State, selfID uint8) (self, allies, opps float64) {
	self = b.EvaluateDecision(st, selfID).Utility()
	for _, id := range st.AlliesOf(selfID) {
		allies += b.EvaluateDecision(st, id).Utility()
	}
	for _, id := range st.OpponentsOf(selfID) {
		opps += b.EvaluateDecision(st, id).Utility()
	}
	return self, allies, opps
}

// weightedDelta folds per-group utility deltas into one scalar.
func (b *Bot) weightedDelta(dSelf, dAllies, dOpps float64) float64 {
	return dSelf + b.Tuning.TeamWeight*dAllies - b.Tuning.DenyWeight*dOpps
}

// EvaluateOps scores passing, every legal single-card play, and a
// bounded search over two-card sequences, and returns the best by
// utility. All speculative mutation happens on clones.
func (b *Bot) EvaluateOps(st *engine.State, agentID uint8) OpsResult {
	st.Normalize()
	ag := st.Agent(agentID)
	pass := ScoredPlay{Play: Play{}}
	if ag == nil || !ag.InYard || ag.OpsClosed || len(ag.Hand) == 0 {
		return OpsResult{Best: pass, Ranked: []ScoredPlay{pass}, NoCandidates: true}
	}

	intel := b.ResolveIntel(st, agentID, b.Tuning.Lookahead)

	// Urgent-defense short-circuit: an unplayed ward against an
	// incoming charge or own-den hunt is played immediately.
	if urgent, ok := b.urgentDefense(st, ag, intel); ok {
		return OpsResult{
			Best:   ScoredPlay{Play: urgent, Utility: MaxDanger},
			Ranked: []ScoredPlay{{Play: urgent, Utility: MaxDanger}},
			Urgent: true,
		}
	}

	baseSelf, baseAllies, baseOpps := b.tableUtility(st.Clone(), agentID)
	ctx := b.comboContext(st, ag, intel)
	setupScale, spendCost := b.stage(st)

	// Score every distinct legal single-card candidate.
	singles := b.scoreSingles(st, ag, intel, ctx, setupScale, spendCost, baseSelf, baseAllies, baseOpps)

	ranked := append([]ScoredPlay{pass}, singles...)

	// Bounded two-card sequence search over the top-K first cards.
	if pair, ok := b.searchPairs(st, ag, ctx, singles, spendCost, baseSelf, baseAllies, baseOpps); ok {
		ranked = append(ranked, pair)
	}

	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && ranked[j].Utility > ranked[j-1].Utility; j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}

	best := ranked[0]
	if best.Play.IsPass() && b.Tuning.NeverPass {
		// Prefer any close legal play over passing.
		for _, sp := range ranked[1:] {
			if !sp.Play.IsPass() && sp.Utility > -b.Tuning.NeverPassSlack {
				best = sp
				break
			}
		}
	}
	noCandidates := len(ranked) == 1 // only PASS survived legality checks
	return OpsResult{Best: best, Ranked: ranked, NoCandidates: noCandidates}
}

// urgentDefense returns the immediate den_ward play when survival
// demands it.
func (b *Bot) urgentDefense(st *engine.State, ag *engine.Agent, intel Intel) (Play, bool) {
	if !ag.HasAction(engine.ActionDenWard) || st.Flags.ImmunityByDen[ag.Den] {
		return Play{}, false
	}
	next, ok := intel.NextEvent()
	if !ok {
		return Play{}, false
	}
	facts, ok := b.Catalog.Event(next)
	if !ok {
		return Play{}, false
	}
	charging := facts.Category == catalog.CategoryCharge &&
		(facts.AppliesTo == catalog.RoleAnyone || (facts.AppliesTo == catalog.RoleLead && st.IsLead(ag.ID)))
	ownHunt := facts.Category == catalog.CategoryDenHunt && facts.Den == ag.Den
	if !charging && !ownHunt {
		return Play{}, false
	}
	return Play{Cards: []CardPlay{{Action: engine.ActionDenWard, Target: engine.NoTarget}}}, true
}

// comboContext assembles the situational predicates for matrix
// lookups.
func (b *Bot) comboContext(st *engine.State, ag *engine.Agent, intel Intel) ComboContext {
	high := false
	if next, ok := intel.NextEvent(); ok {
		high = b.DangerVector(st, ag.ID, next).Exposure() >= b.Tuning.HighDanger
	} else {
		_, frac := b.ExpectedDangerOverBag(st, ag.ID, st.RemainingBag())
		high = frac >= 0.5
	}
	return ComboContext{
		Tier:          intel.Tier(),
		LockActive:    st.Flags.LockFuture,
		ScavengeReady: st.ScavengeReady(engine.ActionDenWard),
		HighDanger:    high,
		FarBehind:     farBehind(st, ag.ID),
	}
}

// pickTarget chooses a target for a card that needs one, or reports
// that none is eligible. Denial plays aim at the richest in-yard
// opponent; support bindings follow the safest other fox.
func (b *Bot) pickTarget(st *engine.State, ag *engine.Agent, id engine.ActionID) (uint8, bool) {
	eff := engine.EffectOf(id)
	if !eff.NeedsTarget {
		return engine.NoTarget, true
	}
	switch eff.Kind {
	case engine.EffectFollow:
		return b.safestOther(st, ag.ID)
	case engine.EffectStealLoot:
		return richestOpponent(st, ag.ID, true)
	case engine.EffectSwapDens:
		return richestDistinctDen(st, ag)
	default:
		return richestOpponent(st, ag.ID, false)
	}
}

// richestOpponent returns the in-yard opponent carrying the most loot.
// requireLoot excludes empty-pawed targets.
func richestOpponent(st *engine.State, agentID uint8, requireLoot bool) (uint8, bool) {
	best := engine.NoTarget
	bestVal := -1
	for _, id := range st.OpponentsOf(agentID) {
		opp := st.Agent(id)
		v := opp.CarriedValue()
		if requireLoot && len(opp.Loot) == 0 {
			continue
		}
		if v > bestVal {
			bestVal = v
			best = id
		}
	}
	return best, best != engine.NoTarget
}

// richestDistinctDen returns the richest in-yard opponent from a
// different den; identity swaps need two distinct factions.
func richestDistinctDen(st *engine.State, ag *engine.Agent) (uint8, bool) {
	best := engine.NoTarget
	bestVal := -1
	for _, id := range st.OpponentsOf(ag.ID) {
		opp := st.Agent(id)
		if opp.Den == ag.Den {
			continue
		}
		if v := opp.CarriedValue(); v > bestVal {
			bestVal = v
			best = id
		}
	}
	return best, best != engine.NoTarget
}

// safestOther returns the other in-yard fox with the lowest staying
// exposure. Only the chooser's sanctioned intel informs the ranking;
// when it cannot resolve the head, the bag expectation stands in
// rather than the hidden track.
func (b *Bot) safestOther(st *engine.State, agentID uint8) (uint8, bool) {
	intel := b.ResolveIntel(st, agentID, b.Tuning.Lookahead)
	next, haveNext := intel.NextEvent()
	var bag []engine.EventID
	if !haveNext {
		bag = st.RemainingBag()
	}
	best := engine.NoTarget
	bestDanger := MaxDanger + 1
	for i := range st.Agents {
		other := &st.Agents[i]
		if other.ID == agentID || !other.InYard {
			continue
		}
		var d float64
		if haveNext {
			d = b.DangerVector(st, other.ID, next).Exposure()
		} else {
			vec, _ := b.ExpectedDangerOverBag(st, other.ID, bag)
			d = vec.Exposure()
		}
		if d < bestDanger {
			bestDanger = d
			best = other.ID
		}
	}
	return best, best != engine.NoTarget
}

// legalCandidate reports whether a card can enter the candidate set at
// all: track manipulation is excluded outright while the future is
// locked.
func legalCandidate(st *engine.State, id engine.ActionID) bool {
	if st.Flags.LockFuture && engine.IsTrackManipulation(id) {
		return false
	}
	return engine.EffectOf(id).Kind != engine.EffectNone
}

// scoreSingles evaluates every distinct card in hand as a single play.
func (b *Bot) scoreSingles(st *engine.State, ag *engine.Agent, intel Intel, ctx ComboContext,
	setupScale, spendCost, baseSelf, baseAllies, baseOpps float64) []ScoredPlay {

	var out []ScoredPlay
	seen := map[engine.ActionID]bool{}
	for _, id := range ag.Hand {
		if seen[id] || !legalCandidate(st, id) {
			continue
		}
		seen[id] = true
		target, ok := b.pickTarget(st, ag, id)
		if !ok {
			continue // no eligible target: excluded, never an error
		}
		delta, ok := b.simulatePlay(st, ag.ID, CardPlay{Action: id, Target: target}, baseSelf, baseAllies, baseOpps)
		if !ok {
			continue
		}
		if facts, ok := b.Catalog.Action(id); ok && !facts.Implemented {
			delta *= b.Tuning.Unimplemented
		}
		utility := delta + setupScale*b.bestOutgoing(id, ag.Hand, ctx) - spendCost
		out = append(out, ScoredPlay{
			Play:    Play{Cards: []CardPlay{{Action: id, Target: target}}},
			Utility: utility,
		})
	}
	return out
}

// simulatePlay applies one play to a cloned state and measures the
// weighted utility delta. Randomized effects are averaged over a fixed
// number of independent samples and discounted by the pessimism
// factor.
func (b *Bot) simulatePlay(st *engine.State, agentID uint8, cp CardPlay, baseSelf, baseAllies, baseOpps float64) (float64, bool) {
	samples := 1
	if engine.EffectOf(cp.Action).Random {
		samples = b.Tuning.RandomSamples
		if samples < 1 {
			samples = 1
		}
	}
	total := 0.0
	applied := 0
	for k := 0; k < samples; k++ {
		clone := st.Clone()
		// Decorrelate sample outcomes without touching the real RNG.
		clone.RNG ^= uint64(k+1) * 0x9e3779b97f4a7c15
		if !clone.ApplyAction(agentID, cp.Action, cp.Target) {
			continue
		}
		applied++
		self, allies, opps := b.tableUtility(clone, agentID)
		total += b.weightedDelta(self-baseSelf, allies-baseAllies, opps-baseOpps)
	}
	if applied == 0 {
		return 0, false
	}
	mean := total / float64(applied)
	if samples > 1 {
		mean *= b.Tuning.Pessimism
	}
	return mean, true
}

// searchPairs runs the bounded two-card sequence search: the top-K
// single candidates open, every other distinct card follows, and the
// second card is always evaluated against the post-first mutated
// state.
func (b *Bot) searchPairs(st *engine.State, ag *engine.Agent, ctx ComboContext,
	singles []ScoredPlay, spendCost, baseSelf, baseAllies, baseOpps float64) (ScoredPlay, bool) {

	if len(ag.Hand) < 2 {
		return ScoredPlay{}, false
	}
	// singles arrive unsorted; rank a copy to pick the top-K openers.
	firsts := append([]ScoredPlay(nil), singles...)
	for i := 1; i < len(firsts); i++ {
		for j := i; j > 0 && firsts[j].Utility > firsts[j-1].Utility; j-- {
			firsts[j], firsts[j-1] = firsts[j-1], firsts[j]
		}
	}
	k := b.Tuning.ComboTopK
	if k > len(firsts) {
		k = len(firsts)
	}

	best := ScoredPlay{}
	found := false
	for _, first := range firsts[:k] {
		fc := first.Play.Cards[0]
		afterFirst := st.Clone()
		afterFirst.RNG ^= 0x2545f4914f6cdd1d
		if !afterFirst.ApplyAction(ag.ID, fc.Action, fc.Target) {
			continue
		}
		agAfter := afterFirst.Agent(ag.ID)

		seen := map[engine.ActionID]bool{fc.Action: true}
		for _, second := range agAfter.Hand {
			if seen[second] || !legalCandidate(afterFirst, second) {
				continue
			}
			seen[second] = true
			target, ok := b.pickTarget(afterFirst, agAfter, second)
			if !ok {
				continue
			}
			// Second-card delta is measured against the original
			// baseline but simulated on the post-first state.
			delta, ok := b.simulatePlay(afterFirst, ag.ID, CardPlay{Action: second, Target: target}, baseSelf, baseAllies, baseOpps)
			if !ok {
				continue
			}
			utility := delta +
				b.Tuning.ComboWeight*b.ComboScore(fc.Action, second, ctx) -
				2*spendCost
			if !found || utility > best.Utility {
				found = true
				best = ScoredPlay{
					Play: Play{Cards: []CardPlay{
						fc,
						{Action: second, Target: target},
					}},
					Utility: utility,
				}
			}
		}
	}
	return best, found
}
