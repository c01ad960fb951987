package engine

// MaxDashPressure caps the accumulated flee incentive.
const MaxDashPressure = 10.0

// IntelMemory is an agent's memorized view of the upcoming track,
// stamped with the track version it was captured under. A version
// mismatch marks the memory stale; stale memory is still usable at a
// discounted confidence, it is never an error.
type IntelMemory struct {
	Events     []EventID
	Confidence float64
	Version    uint64
	Valid      bool
}

// Agent is one fox at the table. Den color and hand mutate each round
// via move and card effects; BurrowAvailable flips irreversibly once a
// burrow is consumed within a raid; InYard flips false on DASH or
// capture.
type Agent struct {
	ID  uint8
	Den Den

	Loot []LootCard // carried resource cards
	Hand []ActionID // action cards, order preserved

	BurrowAvailable bool // once per raid
	BurrowUsedMatch bool // separate once-per-match flag, re-armed between raids by the caller

	Decision Choice // ChoiceNone until committed this round
	InYard   bool

	// DashPressure is a persisted 0-10 scalar of accumulated incentive
	// to flee, updated round over round. It is the fallback signal when
	// event identity cannot be resolved; it is never derived from
	// carried value.
	DashPressure float64

	// Intel is the versioned memory cache written by the intel resolver.
	Intel IntelMemory

	// KnownEvents are upcoming events explicitly granted to this agent
	// (e.g. by a private scout effect), independent of the peek state.
	// KnownVersion is the track version at grant time; a mismatch
	// retires the grant so a resolved or reordered head is never
	// reported as known.
	KnownEvents  []EventID
	KnownVersion uint64

	// OpsClosed is set when the agent can play no further cards this
	// round (go_to_ground). Reset at the round boundary.
	OpsClosed bool
}

// CarriedValue returns the sum of held loot card values.
func (a *Agent) CarriedValue() int {
	total := 0
	for _, c := range a.Loot {
		total += int(c)
	}
	return total
}

// HighestLoot returns the value of the single highest loot card held,
// or 0 when empty-pawed. This is the cost of a shift move.
func (a *Agent) HighestLoot() int {
	best := 0
	for _, c := range a.Loot {
		if int(c) > best {
			best = int(c)
		}
	}
	return best
}

// RemoveHighestLoot discards the highest-value loot card and returns
// its value, or 0 if the agent holds none.
func (a *Agent) RemoveHighestLoot() int {
	bestIdx := -1
	best := 0
	for i, c := range a.Loot {
		if int(c) > best {
			best = int(c)
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return 0
	}
	a.Loot = append(a.Loot[:bestIdx], a.Loot[bestIdx+1:]...)
	return best
}

// HasAction reports whether the agent holds at least one copy of id.
func (a *Agent) HasAction(id ActionID) bool {
	for _, h := range a.Hand {
		if h == id {
			return true
		}
	}
	return false
}

// RemoveAction removes one copy of id from the hand. Returns false if
// the card is not held.
func (a *Agent) RemoveAction(id ActionID) bool {
	for i, h := range a.Hand {
		if h == id {
			a.Hand = append(a.Hand[:i], a.Hand[i+1:]...)
			return true
		}
	}
	return false
}

// clone returns a deep copy of the agent.
func (a *Agent) clone() Agent {
	out := *a
	out.Loot = append([]LootCard(nil), a.Loot...)
	out.Hand = append([]ActionID(nil), a.Hand...)
	out.KnownEvents = append([]EventID(nil), a.KnownEvents...)
	out.Intel.Events = append([]EventID(nil), a.Intel.Events...)
	return out
}
