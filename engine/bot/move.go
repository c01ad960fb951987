package bot

import (
	engine "github.com/stayfuntaxcol/vossenjacht-sub000/engine"
	"github.com/stayfuntaxcol/vossenjacht-sub000/engine/catalog"
)

// ScoredMove is one ranked move option. Available is false for options
// whose preconditions fail (empty deck, locked track, unpayable cost).
type ScoredMove struct {
	Move      engine.MoveID
	Utility   float64
	Available bool
	// SwapI/SwapJ carry the chosen pair for a shift move.
	SwapI, SwapJ int
}

// MoveResult is the outcome of the move evaluator.
type MoveResult struct {
	Best         ScoredMove
	Ranked       []ScoredMove
	NoCandidates bool
}

// EvaluateMove scores the start-of-round options and picks the best
// available one, net of cost. If nothing is available a no-op
// draw-loot default is returned.
func (b *Bot) EvaluateMove(st *engine.State, agentID uint8) MoveResult {
	st.Normalize()
	ag := st.Agent(agentID)
	if ag == nil || !ag.InYard {
		return MoveResult{NoCandidates: true, Best: ScoredMove{Move: engine.MoveDrawLoot}}
	}

	intel := b.ResolveIntel(st, agentID, b.Tuning.Lookahead)

	ranked := []ScoredMove{
		b.scoreDrawLoot(st, ag, intel),
		b.scoreDrawActions(st, ag, intel),
		b.scoreScout(st, intel),
		b.scoreShift(st, ag, intel),
	}
	// Insertion sort, best first.
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && ranked[j].Utility > ranked[j-1].Utility; j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}

	// A shift must beat the runner-up by a minimum margin; marginal
	// reorders are not worth the loot.
	if ranked[0].Move == engine.MoveShift && len(ranked) > 1 {
		if ranked[0].Utility-ranked[1].Utility < b.Tuning.ShiftMinMargin {
			ranked[0], ranked[1] = ranked[1], ranked[0]
		}
	}

	for _, sm := range ranked {
		if sm.Available {
			return MoveResult{Best: sm, Ranked: ranked}
		}
	}
	// Nothing available: no-op default.
	return MoveResult{
		Best:         ScoredMove{Move: engine.MoveDrawLoot},
		Ranked:       ranked,
		NoCandidates: true,
	}
}

// scoreDrawLoot values a loot draw at the deck's expected composition,
// sharply boosted when the tally is next and the agent is empty-pawed.
func (b *Bot) scoreDrawLoot(st *engine.State, ag *engine.Agent, intel Intel) ScoredMove {
	sm := ScoredMove{Move: engine.MoveDrawLoot, Available: len(st.LootDeck) > 0}
	sm.Utility = st.LootDeckMean()
	if next, ok := intel.NextEvent(); ok {
		if facts, ok := b.Catalog.Event(next); ok &&
			facts.Category == catalog.CategoryTally && len(ag.Loot) == 0 {
			sm.Utility += b.Tuning.TallyBoost
		}
	}
	return sm
}

// actionCardValue derives a card's marginal value from its catalog
// tags. Defensive, track and lock tags are worth more; informational
// tags are worth less when peeking is already unblocked.
func (b *Bot) actionCardValue(st *engine.State, id engine.ActionID, nextDanger float64) float64 {
	facts, ok := b.Catalog.Action(id)
	if !ok {
		return 0.5
	}
	value := 0.0
	for _, tag := range facts.Tags {
		switch tag {
		case catalog.TagDefense:
			value += 3.0
			if nextDanger >= b.Tuning.HighDanger {
				value += 2.0 // counters the resolved threat
			}
		case catalog.TagTrack, catalog.TagLock:
			value += 2.5
			if nextDanger >= b.Tuning.HighDanger {
				value += 1.0
			}
		case catalog.TagDenial:
			value += 2.0
		case catalog.TagUtility:
			value += 1.5
		case catalog.TagInfo:
			if st.Flags.PeekBlocked {
				value += 2.0
			} else {
				value += 1.0
			}
		}
	}
	if !facts.Implemented {
		value *= b.Tuning.Unimplemented
	}
	return value
}

// scoreDrawActions values drawing up to two cards at the deck's mean
// tag-derived value.
func (b *Bot) scoreDrawActions(st *engine.State, ag *engine.Agent, intel Intel) ScoredMove {
	sm := ScoredMove{Move: engine.MoveDrawActions, Available: len(st.ActionDeck) > 0}
	if len(st.ActionDeck) == 0 {
		return sm
	}
	nextDanger := 0.0
	if next, ok := intel.NextEvent(); ok {
		nextDanger = b.DangerVector(st, ag.ID, next).Exposure()
	}
	total := 0.0
	for _, id := range st.ActionDeck {
		total += b.actionCardValue(st, id, nextDanger)
	}
	mean := total / float64(len(st.ActionDeck))
	draws := 2.0
	if len(st.ActionDeck) == 1 {
		draws = 1.0
	}
	sm.Utility = mean * draws * 0.5 // half weight: cards pay off later
	return sm
}

// scoreScout values a public reveal: low when peeking is already
// unrestricted, material only while blocked.
func (b *Bot) scoreScout(st *engine.State, intel Intel) ScoredMove {
	sm := ScoredMove{Move: engine.MoveScout, Available: len(st.Track) > 0}
	if st.Flags.PeekBlocked {
		sm.Utility = b.Tuning.ScoutBlocked * (1.0 - intel.Confidence)
	} else {
		sm.Utility = b.Tuning.ScoutOpen
	}
	return sm
}

// scoreShift searches all pairs inside the visible lookahead window
// for the swap that most reduces the combined danger exposure of the
// agent and its den allies while raising opposing exposure, net of the
// forfeited loot card.
func (b *Bot) scoreShift(st *engine.State, ag *engine.Agent, intel Intel) ScoredMove {
	sm := ScoredMove{Move: engine.MoveShift}
	if st.Flags.LockFuture || ag.HighestLoot() == 0 {
		return sm
	}
	if intel.Confidence < 1.0 || len(intel.Events) < 2 {
		return sm // fewer than two upcoming events visible
	}

	// Exposure is judged on the sanctioned intel window only; the raw
	// track is never consulted here. Full confidence means the window
	// mirrors the upcoming events, swapped or not.
	baseline := b.teamExposure(st, ag.ID, intel.Events[0])
	best := 0.0
	bestI, bestJ := -1, -1
	window := len(intel.Events)
	for i := 0; i < window; i++ {
		for j := i + 1; j < window; j++ {
			clone := st.Clone()
			if !clone.SwapUpcoming(i, j) {
				continue
			}
			head := intel.Events[0]
			if i == 0 {
				head = intel.Events[j]
			}
			gain := baseline - b.teamExposure(st, ag.ID, head)
			if gain > best {
				best = gain
				bestI, bestJ = i, j
			}
		}
	}
	if bestI < 0 {
		return sm
	}
	sm.Available = true
	sm.Utility = best - float64(ag.HighestLoot())
	sm.SwapI, sm.SwapJ = bestI, bestJ
	return sm
}

// teamExposure is the staying exposure to one head event for the agent
// and its allies minus the opposing dens' exposure, the quantity a
// shift tries to minimize. The head is supplied by the caller's intel.
func (b *Bot) teamExposure(st *engine.State, agentID uint8, head engine.EventID) float64 {
	exposure := b.DangerVector(st, agentID, head).Exposure()
	for _, ally := range st.AlliesOf(agentID) {
		exposure += b.Tuning.TeamWeight * b.DangerVector(st, ally, head).Exposure()
	}
	for _, opp := range st.OpponentsOf(agentID) {
		exposure -= b.Tuning.DenyWeight * b.DangerVector(st, opp, head).Exposure()
	}
	return exposure
}
