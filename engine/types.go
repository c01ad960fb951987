// Package engine implements the shared game model for Vossenjacht,
// a round-based hidden-information raid game. It holds the yard state
// (agents, night track, effect flags), the loot and action decks, and
// the effect application rules that both the authoritative simulator
// and the bot's counterfactual search run against.
//
// The package is dependency-free and does no I/O. All mutation happens
// through methods on State; speculative evaluation must operate on
// State.Clone() copies only.
package engine

// Den is a player's faction color. Den membership scopes den-specific
// events and immunity flags, and is mutable via certain card effects.
type Den uint8

const (
	DenNone   Den = iota // 0: unassigned
	DenRed               // 1
	DenAmber             // 2
	DenSilver            // 3
	DenBlack             // 4
)

// NumDens is the number of playable den colors (DenNone excluded).
const NumDens = 4

// Dens lists the playable den colors in seating order.
var Dens = [NumDens]Den{DenRed, DenAmber, DenSilver, DenBlack}

// String returns the lowercase den name used in event identifiers.
func (d Den) String() string {
	switch d {
	case DenRed:
		return "red"
	case DenAmber:
		return "amber"
	case DenSilver:
		return "silver"
	case DenBlack:
		return "black"
	}
	return "none"
}

// Choice is a terminal per-round decision.
type Choice uint8

const (
	ChoiceNone   Choice = iota // 0: not yet committed
	ChoiceLurk                 // 1: stay and wait
	ChoiceDash                 // 2: flee the yard with carried loot
	ChoiceBurrow               // 3: stay hidden; single use per raid
)

// String returns the uppercase choice name.
func (c Choice) String() string {
	switch c {
	case ChoiceLurk:
		return "LURK"
	case ChoiceDash:
		return "DASH"
	case ChoiceBurrow:
		return "BURROW"
	}
	return "NONE"
}

// Phase identifies the position within a round.
type Phase uint8

const (
	PhaseMove     Phase = iota // 0: each agent picks one move
	PhaseOps                   // 1: action cards may be played
	PhaseDecision              // 2: agents commit DASH/LURK/BURROW
	PhaseResolve               // 3: the head event resolves
)

// String returns the lowercase phase name used by the dispatcher.
func (p Phase) String() string {
	switch p {
	case PhaseMove:
		return "move"
	case PhaseOps:
		return "ops"
	case PhaseDecision:
		return "decision"
	case PhaseResolve:
		return "resolve"
	}
	return "unknown"
}

// EventID identifies a night-track event. Den-specific events carry the
// den name as a suffix (e.g. "den_hunt_red").
type EventID string

// The scripted event set.
const (
	EventHoundCharge  EventID = "hound_charge"  // generic charge, catches stayers
	EventDenHuntRed   EventID = "den_hunt_red"  // den-specific stay danger
	EventDenHuntAmber EventID = "den_hunt_amber"
	EventDenHuntSilver EventID = "den_hunt_silver"
	EventDenHuntBlack EventID = "den_hunt_black"
	EventLanternSweep EventID = "lantern_sweep" // lead-only stay danger
	EventFarmPatrol   EventID = "farm_patrol"   // punishes fleeing
	EventRoosterCrow  EventID = "rooster_crow"  // escalation; third crow catches everyone
	EventFarmerTally  EventID = "farmer_tally"  // penalizes empty-pawed foxes
	EventQuietNight   EventID = "quiet_night"   // harmless
)

// DenHuntFor returns the den-hunt event for a den color.
func DenHuntFor(d Den) EventID {
	return EventID("den_hunt_" + d.String())
}

// TerminalCrowCount is the crow occurrence on which rooster_crow catches
// every fox still in the yard. The first TerminalCrowCount-1 crows are
// harmless warnings.
const TerminalCrowCount = 3

// ActionID identifies an action card.
type ActionID string

// The action card set.
const (
	ActionDenWard    ActionID = "den_ward"     // grant immunity to a den color
	ActionFalseTrail ActionID = "false_trail"  // swap two upcoming events
	ActionMoonHowl   ActionID = "moon_howl"    // reshuffle the entire future track
	ActionPeltSwap   ActionID = "pelt_swap"    // swap den colors with a target
	ActionMolt       ActionID = "molt"         // randomize own den color
	ActionSnareLock  ActionID = "snare_lock"   // lock the future track against reordering
	ActionStakeOut   ActionID = "stake_out"    // lock the head event identity
	ActionHoldStill  ActionID = "hold_still"   // force a target to stay
	ActionKeenNose   ActionID = "keen_nose"    // privately scout upcoming events
	ActionFogCover   ActionID = "fog_cover"    // block global peeking for a round
	ActionScrapToss  ActionID = "scrap_toss"   // richest opponent discards loot
	ActionScavenge   ActionID = "scavenge"     // retrieve an action card from the discard
	ActionGoToGround ActionID = "go_to_ground" // small ward, ends own ops this round
	ActionForetell   ActionID = "foretell"     // predict the next event for a reward
	ActionShadowTrail ActionID = "shadow_trail" // bind own decision to another fox's
)

// MoveID identifies a start-of-round move option.
type MoveID uint8

const (
	MoveDrawLoot    MoveID = iota // 0: draw one loot card
	MoveDrawActions               // 1: draw up to two action cards
	MoveScout                     // 2: reveal upcoming events to everyone
	MoveShift                     // 3: reorder two upcoming events at a loot cost
)

// String returns the lowercase move name.
func (m MoveID) String() string {
	switch m {
	case MoveDrawLoot:
		return "draw_loot"
	case MoveDrawActions:
		return "draw_actions"
	case MoveScout:
		return "scout"
	case MoveShift:
		return "shift"
	}
	return "unknown"
}

// NumMoves is the number of move options.
const NumMoves = 4

// LootCard is a resource card; its value is its point worth.
type LootCard uint8

// Loot card values run 1 through MaxLootValue.
const MaxLootValue = 5

// NoTarget marks an effect that does not target an agent.
const NoTarget uint8 = 0xFF
