package bot

import (
	engine "github.com/stayfuntaxcol/vossenjacht-sub000/engine"
	"github.com/stayfuntaxcol/vossenjacht-sub000/engine/catalog"
)

// Vector is the per-event, per-agent danger triple, one entry per
// choice. Derived, never stored.
type Vector struct {
	Dash   float64
	Lurk   float64
	Burrow float64
}

// For returns the component for a choice.
func (v Vector) For(c engine.Choice) float64 {
	switch c {
	case engine.ChoiceDash:
		return v.Dash
	case engine.ChoiceLurk:
		return v.Lurk
	case engine.ChoiceBurrow:
		return v.Burrow
	}
	return 0
}

// Peak returns the highest component.
func (v Vector) Peak() float64 {
	p := v.Dash
	if v.Lurk > p {
		p = v.Lurk
	}
	if v.Burrow > p {
		p = v.Burrow
	}
	return p
}

// Exposure returns the planning-time danger of staying put. A burrow
// is a one-shot resource, so exposure and boost metrics price staying
// at the LURK component instead of treating cover as free.
func (v Vector) Exposure() float64 {
	return v.Lurk
}

// immunityCovers reports whether a den-immunity grant neutralizes the
// event category: den-targeted and generic charge events are covered,
// patrols that punish fleeing are not.
func immunityCovers(cat catalog.Category) bool {
	return cat == catalog.CategoryCharge || cat == catalog.CategoryDenHunt
}

// terminalCrow reports whether the given event, resolved now, would be
// the terminal crow. Tracked via the public escalation counter only.
func terminalCrow(st *engine.State, ev engine.EventID) bool {
	return ev == engine.EventRoosterCrow && st.Crows >= engine.TerminalCrowCount-1
}

// DangerFor returns the danger of making a choice against one event,
// clamped to [0, MaxDanger].
func (b *Bot) DangerFor(st *engine.State, agentID uint8, ev engine.EventID, choice engine.Choice) float64 {
	return b.DangerVector(st, agentID, ev).For(choice)
}

// DangerVector computes the full danger triple for an agent facing an
// event, applying actor scoping, immunity, the burrow rule, and
// forced-stay overrides in that order.
func (b *Bot) DangerVector(st *engine.State, agentID uint8, ev engine.EventID) Vector {
	st.Normalize()
	ag := st.Agent(agentID)
	if ag == nil {
		return Vector{}
	}
	facts, ok := b.Catalog.Event(ev)
	if !ok {
		// Unknown event: documented default is harmless.
		return Vector{}
	}

	// 1. Lead scoping.
	if facts.AppliesTo == catalog.RoleLead && !st.IsLead(agentID) {
		return Vector{}
	}
	// 2. Den scoping.
	if facts.AppliesTo == catalog.RoleDen && facts.Den != ag.Den {
		return Vector{}
	}
	// 3. Immunity.
	if st.Flags.ImmunityByDen[ag.Den] && immunityCovers(facts.Category) {
		return Vector{}
	}

	// 4. Terminal crow: everything but DASH is maximal.
	if terminalCrow(st, ev) {
		v := Vector{Dash: 0, Lurk: MaxDanger, Burrow: MaxDanger}
		if st.Flags.ForceStay[agentID] {
			v.Dash = clamp(b.Tuning.ForcedStayDash)
		}
		return v
	}

	v := Vector{
		Dash:   clamp(facts.DangerDash),
		Lurk:   clamp(facts.DangerLurk),
		Burrow: 0, // burrow is categorically safe outside the terminal crow
	}

	// Tally events only bite empty-pawed foxes.
	if facts.Category == catalog.CategoryTally && len(ag.Loot) > 0 {
		return Vector{}
	}

	// 6. Flee-punishing events carry a lowered, nonzero LURK danger
	// rather than the generic baseline.
	if facts.Category == catalog.CategoryPatrol {
		v.Lurk = clamp(b.Tuning.PatrolLurk)
	}

	// 5. Forced stay overrides DASH with near-maximal danger.
	if st.Flags.ForceStay[agentID] {
		v.Dash = clamp(b.Tuning.ForcedStayDash)
	}

	return v
}

// ExpectedDangerOverBag averages the danger vector uniformly over a
// bag of unresolved events and returns the fraction of the bag whose
// peak danger meets the high-danger threshold, for confidence
// weighting downstream.
func (b *Bot) ExpectedDangerOverBag(st *engine.State, agentID uint8, bag []engine.EventID) (Vector, float64) {
	if len(bag) == 0 {
		return Vector{}, 0
	}
	var sum Vector
	high := 0
	for _, ev := range bag {
		v := b.DangerVector(st, agentID, ev)
		sum.Dash += v.Dash
		sum.Lurk += v.Lurk
		sum.Burrow += v.Burrow
		if v.Peak() >= b.Tuning.HighDanger {
			high++
		}
	}
	n := float64(len(bag))
	return Vector{
		Dash:   sum.Dash / n,
		Lurk:   sum.Lurk / n,
		Burrow: sum.Burrow / n,
	}, float64(high) / n
}
