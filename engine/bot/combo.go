package bot

import engine "github.com/stayfuntaxcol/vossenjacht-sub000/engine"

// ComboContext carries the situational predicates the combo matrix
// gates on.
type ComboContext struct {
	Tier          KnowledgeTier
	LockActive    bool // a lock-future-events flag is up
	ScavengeReady bool // the partner card is reachable from the discard
	HighDanger    bool // upcoming stay-danger at or above the threshold
	FarBehind     bool // last-place-or-far-behind loot position
}

// comboRecord is one sparse matrix entry: a score per knowledge tier
// plus optional gating predicates.
type comboRecord struct {
	NoIntel float64
	Partial float64
	Full    float64

	requiresNoLock bool // score forced to 0 while a lock is active
	requiresReach  bool // partner must be scavenge-reachable
	chaosTempo     bool // eligible for the far-behind bonus
}

// openerBlockScore is forced for any pairing whose first card ends the
// agent's ops for the round.
const openerBlockScore = -8.0

// wildcardPartner matches any second card in the anti-combo list.
const wildcardPartner engine.ActionID = "*"

// comboMatrix is the sparse forward table. Untabulated pairs score 0.
var comboMatrix = map[engine.ActionID]map[engine.ActionID]comboRecord{
	engine.ActionKeenNose: {
		// Scout first, then rewrite what you now know.
		engine.ActionFalseTrail: {NoIntel: 3.5, Partial: 2.5, Full: 0.5, requiresNoLock: true},
		engine.ActionStakeOut:   {NoIntel: 2.5, Partial: 2.0, Full: 0.5},
	},
	engine.ActionFogCover: {
		// Blind the table, keep your own memory.
		engine.ActionKeenNose: {NoIntel: 3.0, Partial: 2.5, Full: 1.5},
	},
	engine.ActionMoonHowl: {
		// Chaos reroll, then re-scout the new order.
		engine.ActionKeenNose: {NoIntel: 2.5, Partial: 2.0, Full: 2.0, chaosTempo: true},
	},
	engine.ActionScavenge: {
		// Setup: pull the ward back before the charge.
		engine.ActionDenWard: {NoIntel: 2.0, Partial: 2.0, Full: 2.0, requiresReach: true},
	},
	engine.ActionSnareLock: {
		// Lock the order, then pin it down further.
		engine.ActionStakeOut: {NoIntel: 1.5, Partial: 1.5, Full: 1.0},
	},
	engine.ActionHoldStill: {
		// Pin a rival, then rob them.
		engine.ActionScrapToss: {NoIntel: 1.5, Partial: 1.5, Full: 1.5},
	},
	engine.ActionFalseTrail: {
		// Reorder, then freeze the improved head in place.
		engine.ActionStakeOut: {NoIntel: 2.0, Partial: 2.0, Full: 2.5, requiresNoLock: true, chaosTempo: true},
	},
}

// antiCombos is the sparse hard negative list; wildcard partners are
// supported.
var antiCombos = map[engine.ActionID]map[engine.ActionID]float64{
	// Locking your own track, then trying to rewrite it.
	engine.ActionSnareLock: {engine.ActionFalseTrail: -3.0, engine.ActionMoonHowl: -3.0},
	engine.ActionStakeOut:  {engine.ActionFalseTrail: -2.5},
	// A reroll wastes whatever the first card arranged.
	engine.ActionFalseTrail: {engine.ActionMoonHowl: -2.0},
	// Rerolling your own den first scrambles the scoping of whatever
	// follows.
	engine.ActionMolt: {wildcardPartner: -1.0},
}

// defensiveSecond reports whether the second card is the kind the
// high-danger bonus rewards.
func defensiveSecond(id engine.ActionID) bool {
	switch id {
	case engine.ActionDenWard, engine.ActionGoToGround, engine.ActionSnareLock, engine.ActionStakeOut:
		return true
	}
	return false
}

// ComboScore returns the synergy score for playing a then b, signed;
// negative means anti-synergy. Untabulated pairs are 0 regardless of
// context, and the lookup never mutates its inputs.
func (b *Bot) ComboScore(a, second engine.ActionID, ctx ComboContext) float64 {
	// A card that ends ops this round can never open a pair.
	if engine.EffectOf(a).Kind == engine.EffectGoToGround {
		return openerBlockScore
	}

	// Hard anti-combo overrides, exact before wildcard.
	if partners, ok := antiCombos[a]; ok {
		if s, ok := partners[second]; ok && s != 0 {
			return s
		}
		if s, ok := partners[wildcardPartner]; ok && s != 0 {
			return s
		}
	}

	partners, ok := comboMatrix[a]
	if !ok {
		return 0
	}
	rec, ok := partners[second]
	if !ok {
		return 0
	}

	// Required-false predicates: any violation forces 0.
	if rec.requiresNoLock && ctx.LockActive {
		return 0
	}
	// An unreachable setup partner leaves marginal standalone value
	// rather than nothing.
	if rec.requiresReach && !ctx.ScavengeReady {
		return b.Tuning.SetupResidual
	}

	var score float64
	switch ctx.Tier {
	case TierFull:
		score = rec.Full
	case TierPartial:
		score = rec.Partial
	default:
		score = rec.NoIntel
	}

	if ctx.HighDanger && defensiveSecond(second) {
		score += b.Tuning.ComboDangerBonus
	}
	if ctx.FarBehind && rec.chaosTempo {
		score += b.Tuning.ComboBehindBonus
	}
	return score
}

// bestOutgoing returns the best matrix score from card a to any other
// card currently in hand, for the combo-setup bonus.
func (b *Bot) bestOutgoing(a engine.ActionID, hand []engine.ActionID, ctx ComboContext) float64 {
	best := 0.0
	for _, second := range hand {
		if second == a {
			continue
		}
		if s := b.ComboScore(a, second, ctx); s > best {
			best = s
		}
	}
	return best
}
