// Package bot implements the utility-based policy engine for
// Vossenjacht agents: danger modeling over a partially observable
// night track, move and action-card evaluation with counterfactual
// simulation on cloned state, and final decision selection.
//
// The package is pure computation over a snapshot of engine.State; it
// performs no I/O and never mutates the authoritative state. All
// search spaces are bounded by Tuning constants so worst-case cost is
// a fixed small multiple of hand size and lookahead size.
package bot

// KnowledgeTier buckets the quality of an agent's intel for combo
// scoring.
type KnowledgeTier uint8

const (
	TierNoIntel KnowledgeTier = iota // 0: confidence 0
	TierPartial                      // 1: degraded confidence
	TierFull                         // 2: confidence 1.0
)

// MaxDanger is the top of the danger scale; every danger value is
// clamped to [0, MaxDanger].
const MaxDanger = 10.0

// Tuning holds every tunable constant of the policy engine. The source
// material keeps near-duplicate configuration blocks; this collapses
// them into one named set without asserting canonical values.
type Tuning struct {
	// Danger thresholds.
	SafeDanger     float64 // "danger if stay" at or below this is safe
	HighDanger     float64 // bag fraction classifier threshold
	ForcedStayDash float64 // dash danger while held still
	PatrolLurk     float64 // lowered LURK danger under a flee-punishing event

	// Pressure fallback.
	PressureBase    float64 // dash-pressure threshold at zero flights
	PressurePerFled float64 // threshold growth per observed flight

	// Intel.
	Lookahead     int     // peek window size
	StaleDiscount float64 // multiplier on stale memory confidence

	// Move evaluation.
	TallyBoost     float64 // draw-loot boost when the tally is next and paws are empty
	ScoutBlocked   float64 // scout value while peek is blocked
	ScoutOpen      float64 // scout value while peek is unrestricted
	ShiftMinMargin float64 // shift must beat the runner-up by this much

	// Ops evaluation.
	TeamWeight     float64 // weight on allies' utility delta
	DenyWeight     float64 // weight on opponents' utility delta
	SpendCostEarly float64 // per-card cost in early rounds
	SpendCostLate  float64 // per-card cost in late rounds
	LateRound      int     // first round considered late
	ComboTopK      int     // candidate first cards in the pair search
	ComboWeight    float64 // weight on matrix synergy in pair scoring
	SetupEarly     float64 // combo-setup bonus scale, early rounds
	SetupLate      float64 // combo-setup bonus scale, late rounds
	RandomSamples  int     // independent samples for randomized effects
	Pessimism      float64 // discount (<1) on sampled expectations
	Unimplemented  float64 // dampening for catalog-unimplemented cards
	NeverPass      bool    // prefer any legal play over PASS when close
	NeverPassSlack float64 // how close "close" is for NeverPass

	// Combo matrix situational bonuses.
	ComboDangerBonus float64 // second card defensive/lock while danger is high
	ComboBehindBonus float64 // chaos/tempo pairing while far behind
	SetupResidual    float64 // minimal score for unreachable setup pairs

	// Pressure update (simulator side).
	PressureQuietDecay float64
	PressureNearMiss   float64
	PressurePerFlight  float64
}

// DefaultTuning returns the standard constant set.
func DefaultTuning() Tuning {
	return Tuning{
		SafeDanger:     3.0,
		HighDanger:     6.0,
		ForcedStayDash: 9.5,
		PatrolLurk:     1.0,

		PressureBase:    5.0,
		PressurePerFled: 1.0,

		Lookahead:     3,
		StaleDiscount: 0.5,

		TallyBoost:     6.0,
		ScoutBlocked:   4.0,
		ScoutOpen:      0.5,
		ShiftMinMargin: 1.5,

		TeamWeight:     0.5,
		DenyWeight:     0.35,
		SpendCostEarly: 1.5,
		SpendCostLate:  0.5,
		LateRound:      5,
		ComboTopK:      3,
		ComboWeight:    0.6,
		SetupEarly:     0.25,
		SetupLate:      0.75,
		RandomSamples:  4,
		Pessimism:      0.8,
		Unimplemented:  0.25,
		NeverPass:      false,
		NeverPassSlack: 0.75,

		ComboDangerBonus: 1.0,
		ComboBehindBonus: 0.8,
		SetupResidual:    0.25,

		PressureQuietDecay: 0.5,
		PressureNearMiss:   1.5,
		PressurePerFlight:  1.0,
	}
}

// clamp bounds v to [0, MaxDanger].
func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > MaxDanger {
		return MaxDanger
	}
	return v
}
