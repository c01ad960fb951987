// Package catalog is the read-only rules catalog: static facts about
// events and action cards, served behind a pure lookup interface so
// the decision engine never hardcodes per-event numbers. The default
// table ships here; callers may inject their own.
package catalog

import engine "github.com/stayfuntaxcol/vossenjacht-sub000/engine"

// Role scopes which agents an event applies to.
type Role uint8

const (
	RoleAnyone Role = iota // 0: every fox in the yard
	RoleLead               // 1: only the current lead
	RoleDen                // 2: only foxes of the event's den
)

// Category groups events for immunity coverage and counter-play
// scoring. Immunity covers charges and den hunts; it never covers
// patrols, which specifically punish fleeing.
type Category uint8

const (
	CategoryQuiet  Category = iota // 0
	CategoryCharge                 // 1: generic catch-on-stay
	CategoryDenHunt                // 2: den-scoped catch-on-stay
	CategoryPatrol                 // 3: catch-on-dash
	CategoryCrow                   // 4: escalation event
	CategoryTally                  // 5: loot-holding check
)

// EventFacts holds the static danger contributions per choice and the
// actor scoping for one event.
type EventFacts struct {
	DangerDash   float64
	DangerLurk   float64
	DangerBurrow float64
	AppliesTo    Role
	Den          engine.Den // meaningful only when AppliesTo == RoleDen
	Category     Category
}

// Tag describes an action card's effect category.
type Tag uint8

const (
	TagDefense Tag = iota // 0
	TagInfo               // 1
	TagTrack              // 2: track manipulation
	TagLock               // 3
	TagDenial             // 4
	TagUtility            // 5
)

// ActionFacts holds the static facts for one action card.
type ActionFacts struct {
	Tags        []Tag
	Implemented bool // false: effect not coded; scoring dampens it
}

// HasTag reports whether the card carries the given tag.
func (f ActionFacts) HasTag(t Tag) bool {
	for _, tag := range f.Tags {
		if tag == t {
			return true
		}
	}
	return false
}

// Lookup is the injectable catalog interface. Implementations must be
// pure and side-effect-free.
type Lookup interface {
	Event(id engine.EventID) (EventFacts, bool)
	Action(id engine.ActionID) (ActionFacts, bool)
}

// Static is a map-backed Lookup.
type Static struct {
	Events  map[engine.EventID]EventFacts
	Actions map[engine.ActionID]ActionFacts
}

// Event returns the facts for an event identifier.
func (s *Static) Event(id engine.EventID) (EventFacts, bool) {
	f, ok := s.Events[id]
	return f, ok
}

// Action returns the facts for an action identifier.
func (s *Static) Action(id engine.ActionID) (ActionFacts, bool) {
	f, ok := s.Actions[id]
	return f, ok
}

// Default returns the standard rules catalog. Danger numbers are on
// the engine's 0-10 scale.
func Default() *Static {
	events := map[engine.EventID]EventFacts{
		engine.EventHoundCharge: {
			DangerDash: 0, DangerLurk: 7, DangerBurrow: 0,
			AppliesTo: RoleAnyone, Category: CategoryCharge,
		},
		engine.EventLanternSweep: {
			DangerDash: 0, DangerLurk: 6, DangerBurrow: 0,
			AppliesTo: RoleLead, Category: CategoryCharge,
		},
		engine.EventFarmPatrol: {
			DangerDash: 7, DangerLurk: 3, DangerBurrow: 0,
			AppliesTo: RoleAnyone, Category: CategoryPatrol,
		},
		engine.EventRoosterCrow: {
			DangerDash: 0, DangerLurk: 0, DangerBurrow: 0,
			AppliesTo: RoleAnyone, Category: CategoryCrow,
		},
		engine.EventFarmerTally: {
			DangerDash: 0, DangerLurk: 4, DangerBurrow: 0,
			AppliesTo: RoleAnyone, Category: CategoryTally,
		},
		engine.EventQuietNight: {
			DangerDash: 0, DangerLurk: 0, DangerBurrow: 0,
			AppliesTo: RoleAnyone, Category: CategoryQuiet,
		},
	}
	for _, den := range engine.Dens {
		events[engine.DenHuntFor(den)] = EventFacts{
			DangerDash: 0, DangerLurk: 8, DangerBurrow: 0,
			AppliesTo: RoleDen, Den: den, Category: CategoryDenHunt,
		}
	}

	actions := map[engine.ActionID]ActionFacts{
		engine.ActionDenWard:     {Tags: []Tag{TagDefense}, Implemented: true},
		engine.ActionFalseTrail:  {Tags: []Tag{TagTrack}, Implemented: true},
		engine.ActionMoonHowl:    {Tags: []Tag{TagTrack, TagUtility}, Implemented: true},
		engine.ActionPeltSwap:    {Tags: []Tag{TagDenial, TagUtility}, Implemented: true},
		engine.ActionMolt:        {Tags: []Tag{TagUtility}, Implemented: true},
		engine.ActionSnareLock:   {Tags: []Tag{TagLock, TagDenial}, Implemented: true},
		engine.ActionStakeOut:    {Tags: []Tag{TagLock}, Implemented: true},
		engine.ActionHoldStill:   {Tags: []Tag{TagDenial}, Implemented: true},
		engine.ActionKeenNose:    {Tags: []Tag{TagInfo}, Implemented: true},
		engine.ActionFogCover:    {Tags: []Tag{TagInfo, TagDenial}, Implemented: true},
		engine.ActionScrapToss:   {Tags: []Tag{TagDenial, TagUtility}, Implemented: true},
		engine.ActionScavenge:    {Tags: []Tag{TagUtility}, Implemented: true},
		engine.ActionGoToGround:  {Tags: []Tag{TagDefense}, Implemented: true},
		engine.ActionForetell:    {Tags: []Tag{TagInfo}, Implemented: false},
		engine.ActionShadowTrail: {Tags: []Tag{TagUtility}, Implemented: false},
	}

	return &Static{Events: events, Actions: actions}
}
