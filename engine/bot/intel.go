package bot

import engine "github.com/stayfuntaxcol/vossenjacht-sub000/engine"

// IntelMode describes where an agent's view of the upcoming track
// comes from.
type IntelMode uint8

const (
	IntelUnknown     IntelMode = iota // 0: uniform belief over the bag
	IntelPeek                         // 1: direct read, peek allowed
	IntelLock                         // 2: head identity fixed by a lock
	IntelMemoryValid                  // 3: cached view, version matches
	IntelMemoryStale                  // 4: cached view, version mismatch
	IntelKnown                        // 5: explicitly granted events
)

// String returns the lowercase mode name.
func (m IntelMode) String() string {
	switch m {
	case IntelPeek:
		return "peek"
	case IntelLock:
		return "lock"
	case IntelMemoryValid:
		return "memory_valid"
	case IntelMemoryStale:
		return "memory_stale"
	case IntelKnown:
		return "known"
	}
	return "unknown"
}

// Intel is the sanctioned view of upcoming events for one agent.
// Confidence is 1.0 under peek or lock, 0 under unknown, and degraded
// in between. Absence of information degrades confidence; it never
// errors.
type Intel struct {
	Mode       IntelMode
	Confidence float64
	Events     []engine.EventID
}

// Tier buckets the intel into a knowledge tier.
func (in Intel) Tier() KnowledgeTier {
	switch {
	case in.Confidence >= 1.0:
		return TierFull
	case in.Confidence > 0:
		return TierPartial
	}
	return TierNoIntel
}

// ResolveIntel determines what the agent can legitimately know about
// the upcoming events. The only state mutation is the refresh of the
// agent's memory cache on a successful peek.
func (b *Bot) ResolveIntel(st *engine.State, agentID uint8, lookahead int) Intel {
	st.Normalize()
	ag := st.Agent(agentID)
	if ag == nil {
		return Intel{Mode: IntelUnknown, Confidence: 0}
	}
	if lookahead <= 0 {
		lookahead = b.Tuning.Lookahead
	}

	// An active head lock publishes the head identity outright.
	if st.Flags.LockHead && st.Flags.LockHeadEvent != "" {
		return Intel{
			Mode:       IntelLock,
			Confidence: 1.0,
			Events:     []engine.EventID{st.Flags.LockHeadEvent},
		}
	}

	if !st.Flags.PeekBlocked {
		depth := lookahead
		if depth > len(st.Track) {
			depth = len(st.Track)
		}
		events := append([]engine.EventID(nil), st.Track[:depth]...)
		// Refresh the memory cache, stamped with the current version.
		ag.Intel = engine.IntelMemory{
			Events:     append([]engine.EventID(nil), events...),
			Confidence: 1.0,
			Version:    st.TrackVersion,
			Valid:      true,
		}
		return Intel{Mode: IntelPeek, Confidence: 1.0, Events: events}
	}

	// Peek blocked: fall back to memory, then granted knowledge.
	if ag.Intel.Valid && ag.Intel.Version == st.TrackVersion {
		conf := ag.Intel.Confidence
		if conf > 1.0 {
			conf = 1.0
		}
		return Intel{
			Mode:       IntelMemoryValid,
			Confidence: conf,
			Events:     append([]engine.EventID(nil), ag.Intel.Events...),
		}
	}
	if len(ag.KnownEvents) > 0 && ag.KnownVersion == st.TrackVersion {
		return Intel{
			Mode:       IntelKnown,
			Confidence: 1.0,
			Events:     append([]engine.EventID(nil), ag.KnownEvents...),
		}
	}
	if ag.Intel.Valid {
		// Stale memory: strictly below the valid confidence.
		return Intel{
			Mode:       IntelMemoryStale,
			Confidence: ag.Intel.Confidence * b.Tuning.StaleDiscount,
			Events:     append([]engine.EventID(nil), ag.Intel.Events...),
		}
	}
	return Intel{Mode: IntelUnknown, Confidence: 0}
}

// NextEvent returns the resolvable identity of the head event, or
// false when intel cannot resolve it.
func (in Intel) NextEvent() (engine.EventID, bool) {
	if len(in.Events) == 0 || in.Confidence <= 0 {
		return "", false
	}
	return in.Events[0], true
}
