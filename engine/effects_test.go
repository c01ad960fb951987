package engine

import (
	"testing"
)

// setupOps builds a raid and hands agent 0 the given cards.
func setupOps(t *testing.T, cards ...ActionID) *State {
	t.Helper()
	s := NewRaid(4, 99)
	s.Agents[0].Hand = append([]ActionID(nil), cards...)
	return s
}

func TestApplyActionPreconditions(t *testing.T) {
	s := setupOps(t, ActionDenWard)

	if s.ApplyAction(0, ActionFogCover, NoTarget) {
		t.Fatal("playing a card not in hand must fail")
	}
	s.Agents[0].InYard = false
	if s.ApplyAction(0, ActionDenWard, NoTarget) {
		t.Fatal("a fled fox cannot play cards")
	}
	s.Agents[0].InYard = true
	s.Agents[0].OpsClosed = true
	if s.ApplyAction(0, ActionDenWard, NoTarget) {
		t.Fatal("a fox that went to ground cannot play cards")
	}
}

func TestDenWardGrantsOwnDenImmunity(t *testing.T) {
	s := setupOps(t, ActionDenWard)
	den := s.Agents[0].Den
	if !s.ApplyAction(0, ActionDenWard, NoTarget) {
		t.Fatal("den ward should resolve")
	}
	if !s.Flags.ImmunityByDen[den] {
		t.Fatal("ward must cover the player's own den")
	}
	if s.Agents[0].HasAction(ActionDenWard) {
		t.Fatal("played card must leave the hand")
	}
	if !s.ScavengeReady(ActionDenWard) {
		t.Fatal("played card must land on top of the discard")
	}
}

func TestFalseTrailSwapsNearestPair(t *testing.T) {
	s := setupOps(t, ActionFalseTrail, ActionFalseTrail)
	e0, e1 := s.Track[0], s.Track[1]
	if !s.ApplyAction(0, ActionFalseTrail, NoTarget) {
		t.Fatal("false trail should resolve")
	}
	if s.Track[0] != e1 || s.Track[1] != e0 {
		t.Fatalf("expected head pair swapped, got %s,%s", s.Track[0], s.Track[1])
	}

	// Under a head lock the swap shifts down one slot.
	s.Flags.LockHead = true
	d1, d2 := s.Track[1], s.Track[2]
	if !s.ApplyAction(0, ActionFalseTrail, NoTarget) {
		t.Fatal("false trail under a head lock should still resolve")
	}
	if s.Track[1] != d2 || s.Track[2] != d1 {
		t.Fatal("head-locked false trail must swap indices 1 and 2")
	}
}

func TestTrackManipulationBlockedByFutureLock(t *testing.T) {
	s := setupOps(t, ActionFalseTrail, ActionMoonHowl)
	s.Flags.LockFuture = true
	if s.ApplyAction(0, ActionFalseTrail, NoTarget) {
		t.Fatal("false trail must fail under a future lock")
	}
	if s.ApplyAction(0, ActionMoonHowl, NoTarget) {
		t.Fatal("moon howl must fail under a future lock")
	}
	if len(s.Agents[0].Hand) != 2 {
		t.Fatal("failed plays must not consume cards")
	}
}

func TestPeltSwapRequiresDistinctDens(t *testing.T) {
	s := setupOps(t, ActionPeltSwap, ActionPeltSwap)
	s.Agents[0].Den = DenRed
	s.Agents[1].Den = DenRed
	s.Agents[2].Den = DenAmber

	if s.ApplyAction(0, ActionPeltSwap, 1) {
		t.Fatal("swapping identical dens must fail")
	}
	if s.ApplyAction(0, ActionPeltSwap, 0) {
		t.Fatal("self-targeting must fail")
	}
	if !s.ApplyAction(0, ActionPeltSwap, 2) {
		t.Fatal("distinct-den swap should resolve")
	}
	if s.Agents[0].Den != DenAmber || s.Agents[2].Den != DenRed {
		t.Fatal("dens must be exchanged")
	}
}

func TestTargetedCardsRejectFledTargets(t *testing.T) {
	s := setupOps(t, ActionHoldStill, ActionScrapToss)
	s.Agents[1].InYard = false
	s.Agents[1].Loot = []LootCard{5}
	if s.ApplyAction(0, ActionHoldStill, 1) {
		t.Fatal("hold still cannot pin a fled fox")
	}
	if s.ApplyAction(0, ActionScrapToss, 1) {
		t.Fatal("scrap toss cannot reach a fled fox")
	}
}

func TestStakeOutLocksHeadIdentity(t *testing.T) {
	s := setupOps(t, ActionStakeOut)
	head := s.Track[0]
	if !s.ApplyAction(0, ActionStakeOut, NoTarget) {
		t.Fatal("stake out should resolve")
	}
	if !s.Flags.LockHead || s.Flags.LockHeadEvent != head {
		t.Fatal("stake out must fix the current head identity")
	}
	if s.Flags.LockHeadRounds != StakeOutRounds {
		t.Fatalf("head lock persistence: want %d rounds, got %d", StakeOutRounds, s.Flags.LockHeadRounds)
	}
}

func TestKeenNoseGrantsPrivateIntel(t *testing.T) {
	s := setupOps(t, ActionKeenNose)
	if !s.ApplyAction(0, ActionKeenNose, NoTarget) {
		t.Fatal("keen nose should resolve")
	}
	known := s.Agents[0].KnownEvents
	if len(known) != PrivateScoutDepth {
		t.Fatalf("expected %d known events, got %d", PrivateScoutDepth, len(known))
	}
	for i, ev := range known {
		if s.Track[i] != ev {
			t.Fatalf("known event %d diverges from the track", i)
		}
	}
	// Private intel is a copy, immune to later reordering.
	s.SwapUpcoming(0, 1)
	if known[0] != s.Agents[0].KnownEvents[0] {
		t.Fatal("known events must not alias the live track")
	}
}

func TestScrapTossTakesHighestLoot(t *testing.T) {
	s := setupOps(t, ActionScrapToss, ActionScrapToss)
	s.Agents[1].Loot = []LootCard{2, 4}
	if !s.ApplyAction(0, ActionScrapToss, 1) {
		t.Fatal("scrap toss should resolve against a carrying target")
	}
	if s.Agents[1].CarriedValue() != 2 {
		t.Fatalf("target should lose its highest card: carried %d", s.Agents[1].CarriedValue())
	}
	s.Agents[2].Loot = nil
	if s.ApplyAction(0, ActionScrapToss, 2) {
		t.Fatal("scrap toss against empty paws must fail")
	}
}

func TestScavengeTakesTopOfDiscard(t *testing.T) {
	s := setupOps(t, ActionScavenge)
	if s.ApplyAction(0, ActionScavenge, NoTarget) {
		t.Fatal("scavenge with an empty discard must fail")
	}
	s.ActionDiscard = []ActionID{ActionFogCover, ActionDenWard}
	if !s.ApplyAction(0, ActionScavenge, NoTarget) {
		t.Fatal("scavenge should resolve")
	}
	if !s.Agents[0].HasAction(ActionDenWard) {
		t.Fatal("scavenge must retrieve the most recent discard")
	}
	// The scavenge card itself lands on the discard afterwards.
	if !s.ScavengeReady(ActionScavenge) {
		t.Fatal("scavenge should top the discard after resolving")
	}
}

func TestGoToGroundClosesOps(t *testing.T) {
	s := setupOps(t, ActionGoToGround, ActionDenWard)
	if !s.ApplyAction(0, ActionGoToGround, NoTarget) {
		t.Fatal("go to ground should resolve")
	}
	if !s.Agents[0].OpsClosed {
		t.Fatal("go to ground must close the player's ops")
	}
	if s.ApplyAction(0, ActionDenWard, NoTarget) {
		t.Fatal("no further plays after going to ground")
	}
}

func TestShadowTrailBindsFollow(t *testing.T) {
	s := setupOps(t, ActionShadowTrail)
	if !s.ApplyAction(0, ActionShadowTrail, 2) {
		t.Fatal("shadow trail should resolve")
	}
	if got := s.Flags.Follow[0]; got != 2 {
		t.Fatalf("follow binding: want target 2, got %d", got)
	}
}

func TestMoltRerollsOwnDen(t *testing.T) {
	s := setupOps(t, ActionMolt)
	if !s.ApplyAction(0, ActionMolt, NoTarget) {
		t.Fatal("molt should resolve")
	}
	found := false
	for _, d := range Dens {
		if s.Agents[0].Den == d {
			found = true
		}
	}
	if !found {
		t.Fatalf("molt produced an invalid den %v", s.Agents[0].Den)
	}
}
