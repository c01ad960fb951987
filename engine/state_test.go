package engine

import (
	"testing"
)

// setupRaid builds a deterministic four-fox raid.
func setupRaid(t *testing.T) *State {
	t.Helper()
	return NewRaid(4, 42)
}

func TestNewRaidComposition(t *testing.T) {
	s := setupRaid(t)
	if len(s.Agents) != 4 {
		t.Fatalf("expected 4 agents, got %d", len(s.Agents))
	}
	for i := range s.Agents {
		ag := &s.Agents[i]
		if !ag.InYard {
			t.Errorf("agent %d should start in the yard", ag.ID)
		}
		if !ag.BurrowAvailable {
			t.Errorf("agent %d should start with its burrow available", ag.ID)
		}
		if ag.Den == DenNone {
			t.Errorf("agent %d has no den assigned", ag.ID)
		}
	}
	crows := 0
	for _, ev := range s.Track {
		if ev == EventRoosterCrow {
			crows++
		}
	}
	if crows != TerminalCrowCount {
		t.Fatalf("track should contain %d crows, got %d", TerminalCrowCount, crows)
	}
	if s.Phase != PhaseMove {
		t.Fatalf("raid should open in the move phase, got %v", s.Phase)
	}
}

func TestNewRaidDeterministicBySeed(t *testing.T) {
	a := NewRaid(4, 7)
	b := NewRaid(4, 7)
	for i := range a.Track {
		if a.Track[i] != b.Track[i] {
			t.Fatalf("track diverged at %d: %s vs %s", i, a.Track[i], b.Track[i])
		}
	}
	c := NewRaid(4, 8)
	same := true
	for i := range a.Track {
		if a.Track[i] != c.Track[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical tracks")
	}
}

func TestSwapUpcomingVersioning(t *testing.T) {
	s := setupRaid(t)
	v0 := s.TrackVersion

	// Swapping deep in the track leaves the head alone.
	if !s.SwapUpcoming(2, 3) {
		t.Fatal("deep swap should succeed")
	}
	if s.TrackVersion != v0 {
		t.Fatalf("deep swap must not bump the version: %d -> %d", v0, s.TrackVersion)
	}

	// Force a head change by swapping two distinct events into index 0.
	i := 1
	for i < len(s.Track) && s.Track[i] == s.Track[0] {
		i++
	}
	if i == len(s.Track) {
		t.Skip("degenerate track: all events identical")
	}
	if !s.SwapUpcoming(0, i) {
		t.Fatal("head swap should succeed")
	}
	if s.TrackVersion != v0+1 {
		t.Fatalf("head swap must bump the version exactly once: %d -> %d", v0, s.TrackVersion)
	}
}

func TestSwapUpcomingRespectsLocks(t *testing.T) {
	s := setupRaid(t)

	s.Flags.LockHead = true
	if s.SwapUpcoming(0, 1) {
		t.Fatal("swap touching a locked head must fail")
	}
	if !s.SwapUpcoming(1, 2) {
		t.Fatal("swap below a locked head should still succeed")
	}

	s.Flags.LockFuture = true
	if s.SwapUpcoming(1, 2) {
		t.Fatal("swap under a future lock must fail")
	}
	if s.ShuffleTrack() {
		t.Fatal("shuffle under a future lock must fail")
	}
}

func TestShuffleTrackPinsLockedHead(t *testing.T) {
	s := setupRaid(t)
	s.Flags.LockHead = true
	head := s.Track[0]
	v0 := s.TrackVersion
	if !s.ShuffleTrack() {
		t.Fatal("shuffle with only a head lock should succeed")
	}
	if s.Track[0] != head {
		t.Fatalf("locked head moved: %s -> %s", head, s.Track[0])
	}
	if s.TrackVersion != v0 {
		t.Fatalf("pinned-head shuffle must not bump the version")
	}
}

func TestAdvanceTrackCountsCrows(t *testing.T) {
	s := setupRaid(t)
	total := len(s.Track)
	crows := uint8(0)
	for i := 0; i < total; i++ {
		ev, ok := s.AdvanceTrack()
		if !ok {
			t.Fatalf("track exhausted early at %d", i)
		}
		if ev == EventRoosterCrow {
			crows++
		}
		if s.Crows != crows {
			t.Fatalf("crow counter out of sync: want %d, got %d", crows, s.Crows)
		}
	}
	if _, ok := s.AdvanceTrack(); ok {
		t.Fatal("exhausted track should refuse to advance")
	}
}

func TestRemainingBagIsCanonical(t *testing.T) {
	s := setupRaid(t)
	bag := s.RemainingBag()
	if len(bag) != len(s.Track) {
		t.Fatalf("bag size %d, track size %d", len(bag), len(s.Track))
	}
	for i := 1; i < len(bag); i++ {
		if bag[i] < bag[i-1] {
			t.Fatalf("bag not sorted at %d: %s after %s", i, bag[i], bag[i-1])
		}
	}
	// The bag is a copy; mutating it must not touch the track.
	bag[0] = "mutated"
	if s.Track[0] == "mutated" {
		t.Fatal("bag aliases the live track")
	}
}

func TestCloneIsolation(t *testing.T) {
	s := setupRaid(t)
	s.Flags.ForceStay[2] = true
	s.Agents[0].Loot = append(s.Agents[0].Loot, 5)

	c := s.Clone()
	c.Agents[0].Loot[0] = 1
	c.Flags.ForceStay[3] = true
	c.Track[0] = "clobbered"
	c.AdvanceTrack()

	if s.Agents[0].Loot[0] != 5 {
		t.Fatal("clone shares agent loot with the original")
	}
	if s.Flags.ForceStay[3] {
		t.Fatal("clone shares flag maps with the original")
	}
	if s.Track[0] == "clobbered" {
		t.Fatal("clone shares the track with the original")
	}
}

func TestLeadRotationSkipsFledFoxes(t *testing.T) {
	s := setupRaid(t)
	if !s.IsLead(s.LeadID()) {
		t.Fatal("lead must identify itself")
	}
	lead := s.LeadID()
	s.Agent(lead).InYard = false
	if s.LeadID() == lead {
		t.Fatal("a fled fox cannot hold the lead")
	}
	for i := range s.Agents {
		s.Agents[i].InYard = false
	}
	if s.LeadID() != NoTarget {
		t.Fatal("an empty yard has no lead")
	}
}

func TestAlliesAndOpponentsScoping(t *testing.T) {
	s := setupRaid(t)
	// Put agents 0 and 1 in the same den, 2 and 3 elsewhere.
	s.Agents[0].Den = DenRed
	s.Agents[1].Den = DenRed
	s.Agents[2].Den = DenAmber
	s.Agents[3].Den = DenSilver

	allies := s.AlliesOf(0)
	if len(allies) != 1 || allies[0] != 1 {
		t.Fatalf("expected ally [1], got %v", allies)
	}
	opps := s.OpponentsOf(0)
	if len(opps) != 2 {
		t.Fatalf("expected 2 opponents, got %v", opps)
	}

	s.Agents[1].InYard = false
	if len(s.AlliesOf(0)) != 0 {
		t.Fatal("fled foxes are not allies")
	}
	if s.FledCount() != 1 {
		t.Fatalf("fled count should be 1, got %d", s.FledCount())
	}
}

func TestEndRoundResetsRoundState(t *testing.T) {
	s := setupRaid(t)
	s.Flags.PeekBlocked = true
	s.Flags.ForceStay[1] = true
	s.Flags.LockFuture = true
	s.Flags.LockHead = true
	s.Flags.LockHeadRounds = 2
	s.CommitDecision(0, ChoiceLurk)
	s.Agents[1].OpsClosed = true
	lead := s.LeadIdx

	s.EndRound()

	if s.Flags.PeekBlocked || len(s.Flags.ForceStay) != 0 || s.Flags.LockFuture {
		t.Fatal("single-round flags must clear at end of round")
	}
	if !s.Flags.LockHead || s.Flags.LockHeadRounds != 1 {
		t.Fatal("head lock should persist with one round remaining")
	}
	if s.Agents[0].Decision != ChoiceNone || s.Agents[1].OpsClosed {
		t.Fatal("decisions and ops-closed must reset")
	}
	if s.LeadIdx == lead {
		t.Fatal("lead must rotate")
	}

	s.EndRound()
	if s.Flags.LockHead {
		t.Fatal("head lock must expire after its final round")
	}
}

func TestCommitDecisionConsumesBurrow(t *testing.T) {
	s := setupRaid(t)
	s.CommitDecision(0, ChoiceBurrow)
	ag := s.Agent(0)
	if ag.BurrowAvailable {
		t.Fatal("burrowing must consume the once-per-match burrow")
	}
	if !ag.BurrowUsedMatch {
		t.Fatal("burrow use must be recorded for the match")
	}
	// Dashing marks the decision but leaves the fox until resolution.
	s.CommitDecision(1, ChoiceDash)
	if !s.Agent(1).InYard {
		t.Fatal("a dashing fox stays until the event resolves")
	}
}

func TestDrawsAndDeckAccounting(t *testing.T) {
	s := setupRaid(t)
	deckBefore := len(s.LootDeck)
	if !s.DrawLoot(0) {
		t.Fatal("draw from a stocked deck should succeed")
	}
	if len(s.LootDeck) != deckBefore-1 || len(s.Agents[0].Loot) != 1 {
		t.Fatal("loot draw accounting is off")
	}

	got := s.DrawActions(0, 2)
	if got != 2 || len(s.Agents[0].Hand) != 2 {
		t.Fatalf("expected 2 action cards drawn, got %d (hand %d)", got, len(s.Agents[0].Hand))
	}

	s.ActionDeck = s.ActionDeck[:1]
	if got := s.DrawActions(1, 3); got != 1 {
		t.Fatalf("short deck should deal what it has: want 1, got %d", got)
	}
}

func TestCarriedValueAndHighestLoot(t *testing.T) {
	ag := Agent{Loot: []LootCard{2, 5, 3}}
	if ag.CarriedValue() != 10 {
		t.Fatalf("carried value: want 10, got %d", ag.CarriedValue())
	}
	if ag.HighestLoot() != 5 {
		t.Fatalf("highest loot: want 5, got %d", ag.HighestLoot())
	}
	if ag.RemoveHighestLoot() != 5 {
		t.Fatal("remove must surrender the highest card")
	}
	if ag.CarriedValue() != 5 {
		t.Fatalf("carried value after removal: want 5, got %d", ag.CarriedValue())
	}
	empty := Agent{}
	if empty.RemoveHighestLoot() != 0 {
		t.Fatal("removing from empty paws must be a no-op zero")
	}
}
