package engine

// EffectKind is the tagged variant describing what an action card does
// to the shared state. Dispatch happens per kind, not per card name;
// new cards extend the variant set rather than a conditional chain.
type EffectKind uint8

const (
	EffectNone          EffectKind = iota // 0
	EffectGrantImmunity                   // 1: immunity flag for a den
	EffectSwapEvents                      // 2: exchange two upcoming events
	EffectShuffleTrack                    // 3: rerandomize the future order
	EffectSwapDens                        // 4: trade den colors with a target
	EffectRandomizeDen                    // 5: reroll own den color
	EffectLockTrack                       // 6: forbid track reordering
	EffectLockHead                        // 7: fix the head identity
	EffectForceStay                       // 8: pin a target in the yard
	EffectPrivateScout                    // 9: grant known upcoming events
	EffectBlockPeek                       // 10: disable global peeking
	EffectStealLoot                       // 11: target discards a loot card
	EffectScavenge                        // 12: retrieve a card from the discard
	EffectGoToGround                      // 13: end own ops for the round
	EffectPredict                         // 14: record a head prediction
	EffectFollow                          // 15: bind decision to a target's
)

// Effect describes an action card's behavior.
type Effect struct {
	Kind        EffectKind
	NeedsTarget bool // requires another agent as target
	Random      bool // outcome depends on the shared RNG
}

// PrivateScoutDepth is how many upcoming events a private scout grants.
const PrivateScoutDepth = 3

// effectTable maps every action card to its effect variant.
var effectTable = map[ActionID]Effect{
	ActionDenWard:     {Kind: EffectGrantImmunity},
	ActionFalseTrail:  {Kind: EffectSwapEvents},
	ActionMoonHowl:    {Kind: EffectShuffleTrack, Random: true},
	ActionPeltSwap:    {Kind: EffectSwapDens, NeedsTarget: true},
	ActionMolt:        {Kind: EffectRandomizeDen, Random: true},
	ActionSnareLock:   {Kind: EffectLockTrack},
	ActionStakeOut:    {Kind: EffectLockHead},
	ActionHoldStill:   {Kind: EffectForceStay, NeedsTarget: true},
	ActionKeenNose:    {Kind: EffectPrivateScout},
	ActionFogCover:    {Kind: EffectBlockPeek},
	ActionScrapToss:   {Kind: EffectStealLoot, NeedsTarget: true},
	ActionScavenge:    {Kind: EffectScavenge},
	ActionGoToGround:  {Kind: EffectGoToGround},
	ActionForetell:    {Kind: EffectPredict},
	ActionShadowTrail: {Kind: EffectFollow, NeedsTarget: true},
}

// EffectOf returns the effect variant for an action card. Unknown
// cards map to EffectNone; scoring dampens them rather than erroring.
func EffectOf(id ActionID) Effect {
	return effectTable[id]
}

// IsTrackManipulation reports whether the card rewrites the future
// track. Track manipulation is illegal while the future is locked.
func IsTrackManipulation(id ActionID) bool {
	switch effectTable[id].Kind {
	case EffectSwapEvents, EffectShuffleTrack:
		return true
	}
	return false
}

// StakeOutRounds is the multi-round persistence of a head lock.
const StakeOutRounds = 2

// ApplyAction resolves one card play against this state, removing the
// card from the actor's hand into the discard. target is NoTarget for
// untargeted cards. Returns false for plays whose preconditions do not
// hold; the state is unchanged in that case.
//
// Both the authoritative commit path and the bot's counterfactual
// search go through here, so simulated and real resolution can never
// drift apart.
func (s *State) ApplyAction(actor uint8, id ActionID, target uint8) bool {
	ag := s.Agent(actor)
	if ag == nil || !ag.InYard || !ag.HasAction(id) || ag.OpsClosed {
		return false
	}
	eff := EffectOf(id)
	var tgt *Agent
	if eff.NeedsTarget {
		tgt = s.Agent(target)
		if tgt == nil || !tgt.InYard || target == actor {
			return false
		}
	}

	switch eff.Kind {
	case EffectGrantImmunity:
		s.Flags.ImmunityByDen[ag.Den] = true

	case EffectSwapEvents:
		// Swap the two nearest swappable upcoming events.
		i, j := 0, 1
		if s.Flags.LockHead {
			i, j = 1, 2
		}
		if !s.SwapUpcoming(i, j) {
			return false
		}

	case EffectShuffleTrack:
		if !s.ShuffleTrack() {
			return false
		}

	case EffectSwapDens:
		if ag.Den == tgt.Den {
			return false // no effect without two distinct dens
		}
		ag.Den, tgt.Den = tgt.Den, ag.Den

	case EffectRandomizeDen:
		ag.Den = Dens[s.RandN(NumDens)]

	case EffectLockTrack:
		s.Flags.LockFuture = true

	case EffectLockHead:
		head, ok := s.Head()
		if !ok {
			return false
		}
		s.Flags.LockHead = true
		s.Flags.LockHeadEvent = head
		s.Flags.LockHeadRounds = StakeOutRounds

	case EffectForceStay:
		s.Flags.ForceStay[tgt.ID] = true

	case EffectPrivateScout:
		depth := PrivateScoutDepth
		if depth > len(s.Track) {
			depth = len(s.Track)
		}
		ag.KnownEvents = append([]EventID(nil), s.Track[:depth]...)
		ag.KnownVersion = s.TrackVersion

	case EffectBlockPeek:
		s.Flags.PeekBlocked = true

	case EffectStealLoot:
		if tgt.RemoveHighestLoot() == 0 {
			return false
		}

	case EffectScavenge:
		if len(s.ActionDiscard) == 0 {
			return false
		}
		// Take the most recently discarded card.
		last := s.ActionDiscard[len(s.ActionDiscard)-1]
		s.ActionDiscard = s.ActionDiscard[:len(s.ActionDiscard)-1]
		ag.Hand = append(ag.Hand, last)

	case EffectGoToGround:
		ag.OpsClosed = true

	case EffectPredict:
		head, ok := s.Head()
		if !ok {
			return false
		}
		s.Flags.Predictions[ag.ID] = head

	case EffectFollow:
		s.Flags.Follow[ag.ID] = tgt.ID

	default:
		return false
	}

	ag.RemoveAction(id)
	s.ActionDiscard = append(s.ActionDiscard, id)
	return true
}

// ScavengeReady reports whether a scavenge play could currently
// retrieve the given card from the discard pile.
func (s *State) ScavengeReady(id ActionID) bool {
	n := len(s.ActionDiscard)
	return n > 0 && s.ActionDiscard[n-1] == id
}
