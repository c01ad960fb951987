package engine

// Flags is the bag of round-scoped effect state. All fields default to
// inactive; readers must go through a normalized State (see Normalize)
// so that nil maps never need checking downstream.
//
// Flags reset at round boundaries except where an effect states
// multi-round persistence (the head lock carries a round counter).
type Flags struct {
	ImmunityByDen  map[Den]bool      // den ward grants
	LockFuture     bool              // snare_lock: no track reordering
	LockHead       bool              // stake_out: head identity fixed
	LockHeadEvent  EventID           // the fixed head identity while LockHead
	LockHeadRounds uint8             // remaining rounds of head lock
	ForceStay      map[uint8]bool    // hold_still targets by agent ID
	PeekBlocked    bool              // fog_cover: global peek disabled
	Predictions    map[uint8]EventID // foretell records by agent ID
	Follow         map[uint8]uint8   // shadow_trail bindings: follower -> target
}

// normalize fills nil maps so every reader can index freely.
func (f *Flags) normalize() {
	if f.ImmunityByDen == nil {
		f.ImmunityByDen = make(map[Den]bool)
	}
	if f.ForceStay == nil {
		f.ForceStay = make(map[uint8]bool)
	}
	if f.Predictions == nil {
		f.Predictions = make(map[uint8]EventID)
	}
	if f.Follow == nil {
		f.Follow = make(map[uint8]uint8)
	}
}

// clone returns a deep copy of the flags bag.
func (f *Flags) clone() Flags {
	out := *f
	out.ImmunityByDen = make(map[Den]bool, len(f.ImmunityByDen))
	for k, v := range f.ImmunityByDen {
		out.ImmunityByDen[k] = v
	}
	out.ForceStay = make(map[uint8]bool, len(f.ForceStay))
	for k, v := range f.ForceStay {
		out.ForceStay[k] = v
	}
	out.Predictions = make(map[uint8]EventID, len(f.Predictions))
	for k, v := range f.Predictions {
		out.Predictions[k] = v
	}
	out.Follow = make(map[uint8]uint8, len(f.Follow))
	for k, v := range f.Follow {
		out.Follow[k] = v
	}
	return out
}

// resetRound clears single-round flags. The head lock persists while
// its round counter is positive; immunity grants last the round they
// were played plus the resolution they were played for, so they clear
// here too.
func (f *Flags) resetRound() {
	f.ImmunityByDen = make(map[Den]bool)
	f.LockFuture = false
	f.ForceStay = make(map[uint8]bool)
	f.PeekBlocked = false
	f.Predictions = make(map[uint8]EventID)
	f.Follow = make(map[uint8]uint8)

	if f.LockHeadRounds > 0 {
		f.LockHeadRounds--
	}
	if f.LockHeadRounds == 0 {
		f.LockHead = false
		f.LockHeadEvent = ""
	}
}
