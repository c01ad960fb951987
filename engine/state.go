package engine

import "sort"

// State is the complete shared state of one raid. The simulator owns
// the authoritative copy; bots receive it as a read-mostly snapshot and
// must clone before speculative mutation.
type State struct {
	Agents []Agent
	// Track is the future reveal order of events; index 0 is the next
	// event to resolve. When PeekBlocked is set, agent-facing logic
	// must never read Track directly — only the intel resolver's
	// sanctioned output preserves hidden-information integrity.
	Track []EventID

	Round   uint16
	Phase   Phase
	LeadIdx uint8 // rotating lead designation

	// Crows is the public count of rooster_crow resolutions. The
	// terminal-crow check runs off this counter, never off the hidden
	// track.
	Crows uint8

	// TrackVersion increments exactly when the head event identity
	// changes, by mutation or by advancing past a resolved event.
	// It stamps memorized intel so staleness is detectable.
	TrackVersion uint64

	Flags Flags

	LootDeck      []LootCard
	ActionDeck    []ActionID
	ActionDiscard []ActionID

	RNG uint64
}

// ---------------------------------------------------------------------------
// xorshift64 RNG — inline, no interface
// ---------------------------------------------------------------------------

func (s *State) nextRand() uint64 {
	x := s.RNG
	if x == 0 {
		x = 1 // xorshift can't start at 0
	}
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	s.RNG = x
	return x
}

// RandN returns a random number in [0, n).
func (s *State) RandN(n uint64) uint64 {
	return s.nextRand() % n
}

// ---------------------------------------------------------------------------
// Construction
// ---------------------------------------------------------------------------

// standardTrack is the event multiset for a raid before shuffling:
// three crows, one hunt per den, and a mix of patrols and charges.
func standardTrack() []EventID {
	return []EventID{
		EventRoosterCrow, EventRoosterCrow, EventRoosterCrow,
		EventDenHuntRed, EventDenHuntAmber, EventDenHuntSilver, EventDenHuntBlack,
		EventHoundCharge, EventHoundCharge,
		EventLanternSweep, EventLanternSweep,
		EventFarmPatrol, EventFarmPatrol,
		EventFarmerTally,
		EventQuietNight, EventQuietNight,
	}
}

// standardLootDeck returns the loot deck composition: values 1-5,
// weighted toward the middle.
func standardLootDeck() []LootCard {
	deck := make([]LootCard, 0, 20)
	counts := [MaxLootValue]int{3, 5, 5, 4, 3} // value 1..5
	for v, n := range counts {
		for i := 0; i < n; i++ {
			deck = append(deck, LootCard(v+1))
		}
	}
	return deck
}

// standardActionDeck returns the action deck composition.
func standardActionDeck() []ActionID {
	deck := []ActionID{}
	counts := map[ActionID]int{
		ActionDenWard:     3,
		ActionFalseTrail:  3,
		ActionMoonHowl:    2,
		ActionPeltSwap:    2,
		ActionMolt:        2,
		ActionSnareLock:   2,
		ActionStakeOut:    2,
		ActionHoldStill:   2,
		ActionKeenNose:    3,
		ActionFogCover:    2,
		ActionScrapToss:   2,
		ActionScavenge:    2,
		ActionGoToGround:  2,
		ActionForetell:    1,
		ActionShadowTrail: 1,
	}
	// Deterministic deck order prior to shuffling.
	ids := make([]ActionID, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		for i := 0; i < counts[id]; i++ {
			deck = append(deck, id)
		}
	}
	return deck
}

// NewRaid initializes a raid with n agents seated in den order, decks
// built and shuffled, and the night track shuffled. seed 0 is remapped
// to 1.
func NewRaid(n int, seed uint64) *State {
	s := &State{RNG: seed}
	if s.RNG == 0 {
		s.RNG = 1
	}
	s.Agents = make([]Agent, n)
	for i := range s.Agents {
		s.Agents[i] = Agent{
			ID:              uint8(i),
			Den:             Dens[i%NumDens],
			InYard:          true,
			BurrowAvailable: true,
		}
	}
	s.Track = standardTrack()
	s.LootDeck = standardLootDeck()
	s.ActionDeck = standardActionDeck()
	s.shuffleEvents(s.Track)
	s.shuffleLoot(s.LootDeck)
	s.shuffleActions(s.ActionDeck)
	s.Normalize()
	return s
}

func (s *State) shuffleEvents(ev []EventID) {
	for i := len(ev) - 1; i > 0; i-- {
		j := int(s.RandN(uint64(i + 1)))
		ev[i], ev[j] = ev[j], ev[i]
	}
}

func (s *State) shuffleLoot(cards []LootCard) {
	for i := len(cards) - 1; i > 0; i-- {
		j := int(s.RandN(uint64(i + 1)))
		cards[i], cards[j] = cards[j], cards[i]
	}
}

func (s *State) shuffleActions(cards []ActionID) {
	for i := len(cards) - 1; i > 0; i-- {
		j := int(s.RandN(uint64(i + 1)))
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// ---------------------------------------------------------------------------
// Normalization and cloning
// ---------------------------------------------------------------------------

// Normalize fills every absent field with its documented default
// (empty slices, empty maps, zero counts) so downstream readers can
// assume a fully-populated snapshot. It runs once per evaluation entry
// point and is idempotent.
func (s *State) Normalize() {
	s.Flags.normalize()
	if s.Agents == nil {
		s.Agents = []Agent{}
	}
	if s.Track == nil {
		s.Track = []EventID{}
	}
	if s.LootDeck == nil {
		s.LootDeck = []LootCard{}
	}
	if s.ActionDeck == nil {
		s.ActionDeck = []ActionID{}
	}
	if s.ActionDiscard == nil {
		s.ActionDiscard = []ActionID{}
	}
}

// Clone returns a deep copy of the state. Counterfactual simulation
// mutates clones only; the authoritative state is written solely by
// the caller committing a chosen action.
func (s *State) Clone() *State {
	out := *s
	out.Agents = make([]Agent, len(s.Agents))
	for i := range s.Agents {
		out.Agents[i] = s.Agents[i].clone()
	}
	out.Track = append([]EventID(nil), s.Track...)
	out.LootDeck = append([]LootCard(nil), s.LootDeck...)
	out.ActionDeck = append([]ActionID(nil), s.ActionDeck...)
	out.ActionDiscard = append([]ActionID(nil), s.ActionDiscard...)
	out.Flags = s.Flags.clone()
	return &out
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

// Agent returns the agent with the given ID, or nil.
func (s *State) Agent(id uint8) *Agent {
	if int(id) >= len(s.Agents) {
		return nil
	}
	return &s.Agents[id]
}

// Head returns the next event to resolve, or false when the track is
// exhausted. Callers outside the intel resolver and the authoritative
// resolver must not use this while peeking is blocked.
func (s *State) Head() (EventID, bool) {
	if len(s.Track) == 0 {
		return "", false
	}
	return s.Track[0], true
}

// IsLead reports whether the agent currently holds the lead role. Lead
// is derived positionally from LeadIdx over in-yard agents.
func (s *State) IsLead(id uint8) bool {
	return s.LeadID() == id
}

// LeadID returns the ID of the current lead agent, skipping agents no
// longer in the yard. Returns NoTarget when the yard is empty.
func (s *State) LeadID() uint8 {
	n := len(s.Agents)
	if n == 0 {
		return NoTarget
	}
	for off := 0; off < n; off++ {
		idx := (int(s.LeadIdx) + off) % n
		if s.Agents[idx].InYard {
			return s.Agents[idx].ID
		}
	}
	return NoTarget
}

// AlliesOf returns the IDs of in-yard agents sharing id's den,
// excluding id itself.
func (s *State) AlliesOf(id uint8) []uint8 {
	ag := s.Agent(id)
	if ag == nil {
		return nil
	}
	var out []uint8
	for i := range s.Agents {
		other := &s.Agents[i]
		if other.ID != id && other.InYard && other.Den == ag.Den {
			out = append(out, other.ID)
		}
	}
	return out
}

// OpponentsOf returns the IDs of in-yard agents from other dens.
func (s *State) OpponentsOf(id uint8) []uint8 {
	ag := s.Agent(id)
	if ag == nil {
		return nil
	}
	var out []uint8
	for i := range s.Agents {
		other := &s.Agents[i]
		if other.ID != id && other.InYard && other.Den != ag.Den {
			out = append(out, other.ID)
		}
	}
	return out
}

// FledCount returns the number of agents that have left the yard.
func (s *State) FledCount() int {
	n := 0
	for i := range s.Agents {
		if !s.Agents[i].InYard {
			n++
		}
	}
	return n
}

// RemainingBag returns the multiset of not-yet-revealed events in a
// canonical sorted order. The sort deliberately destroys order
// information so uniform-belief consumers cannot leak the true
// sequence.
func (s *State) RemainingBag() []EventID {
	bag := append([]EventID(nil), s.Track...)
	sort.Slice(bag, func(i, j int) bool { return bag[i] < bag[j] })
	return bag
}

// ---------------------------------------------------------------------------
// Track mutation — every mutator bumps TrackVersion iff the head
// identity changed.
// ---------------------------------------------------------------------------

// SwapUpcoming exchanges the events at track indices i and j.
// Returns false when either index is out of range or the future track
// is locked, or when i touches a locked head.
func (s *State) SwapUpcoming(i, j int) bool {
	if s.Flags.LockFuture {
		return false
	}
	if i == j || i < 0 || j < 0 || i >= len(s.Track) || j >= len(s.Track) {
		return false
	}
	if s.Flags.LockHead && (i == 0 || j == 0) {
		return false
	}
	prevHead := s.Track[0]
	s.Track[i], s.Track[j] = s.Track[j], s.Track[i]
	if s.Track[0] != prevHead {
		s.TrackVersion++
	}
	return true
}

// ShuffleTrack rerandomizes the entire future order. Respects the head
// lock by pinning index 0. Returns false when the future is locked.
func (s *State) ShuffleTrack() bool {
	if s.Flags.LockFuture {
		return false
	}
	if len(s.Track) < 2 {
		return true
	}
	prevHead := s.Track[0]
	if s.Flags.LockHead {
		rest := s.Track[1:]
		s.shuffleEvents(rest)
		return true
	}
	s.shuffleEvents(s.Track)
	if s.Track[0] != prevHead {
		s.TrackVersion++
	}
	return true
}

// AdvanceTrack pops and returns the resolved head event, bumping the
// track version and, for a crow, the public escalation counter.
// Returns false when the track is exhausted.
func (s *State) AdvanceTrack() (EventID, bool) {
	if len(s.Track) == 0 {
		return "", false
	}
	head := s.Track[0]
	s.Track = s.Track[1:]
	s.TrackVersion++
	if head == EventRoosterCrow {
		s.Crows++
	}
	return head, true
}

// ---------------------------------------------------------------------------
// Deck draws
// ---------------------------------------------------------------------------

// DrawLoot moves the top loot card to the agent's paws. Returns false
// when the deck is empty.
func (s *State) DrawLoot(id uint8) bool {
	ag := s.Agent(id)
	if ag == nil || len(s.LootDeck) == 0 {
		return false
	}
	card := s.LootDeck[len(s.LootDeck)-1]
	s.LootDeck = s.LootDeck[:len(s.LootDeck)-1]
	ag.Loot = append(ag.Loot, card)
	return true
}

// DrawActions deals up to n action cards to the agent. Returns the
// number actually drawn.
func (s *State) DrawActions(id uint8, n int) int {
	ag := s.Agent(id)
	if ag == nil {
		return 0
	}
	drawn := 0
	for drawn < n && len(s.ActionDeck) > 0 {
		card := s.ActionDeck[len(s.ActionDeck)-1]
		s.ActionDeck = s.ActionDeck[:len(s.ActionDeck)-1]
		ag.Hand = append(ag.Hand, card)
		drawn++
	}
	return drawn
}

// LootDeckMean returns the mean point value of the remaining loot deck,
// or 0 when empty.
func (s *State) LootDeckMean() float64 {
	if len(s.LootDeck) == 0 {
		return 0
	}
	total := 0
	for _, c := range s.LootDeck {
		total += int(c)
	}
	return float64(total) / float64(len(s.LootDeck))
}

// ---------------------------------------------------------------------------
// Round lifecycle
// ---------------------------------------------------------------------------

// EndRound resets single-round flags and decisions, rotates the lead,
// and advances the round counter. Burrow consumption has already
// happened at decision commit; this only clears the committed choices.
func (s *State) EndRound() {
	s.Flags.resetRound()
	for i := range s.Agents {
		s.Agents[i].Decision = ChoiceNone
		s.Agents[i].OpsClosed = false
	}
	if n := len(s.Agents); n > 0 {
		s.LeadIdx = uint8((int(s.LeadIdx) + 1) % n)
	}
	s.Round++
	s.Phase = PhaseMove
}

// CommitDecision records an agent's terminal choice for the round,
// consuming the burrow and flipping in-yard status where the choice
// demands it.
func (s *State) CommitDecision(id uint8, c Choice) {
	ag := s.Agent(id)
	if ag == nil {
		return
	}
	ag.Decision = c
	switch c {
	case ChoiceBurrow:
		ag.BurrowAvailable = false
		ag.BurrowUsedMatch = true
	case ChoiceDash:
		// The fox leaves after the event resolves; the resolver reads
		// Decision to apply dash-scoped danger first.
	}
}
