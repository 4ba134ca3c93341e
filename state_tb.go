package cepac

import "github.com/segmentio/ksuid"

// tbTrackers are boolean TB-observables distinct from true TB state
// (§GLOSSARY "Tracker").
type tbTrackers struct {
	sputumHigh    bool
	immuneReactive bool
	symptoms      bool
}

// tbTreatmentState holds the active-or-most-recent treatment course.
type tbTreatmentState struct {
	onTreatment       bool
	empiric           bool
	line              int
	startMonth        int
	accumulatedMonths int
	preScheduledSuccess bool
	repeatsOnLine     [8]int
}

// tbProphState mirrors prophLineState but for the TB proph ladder.
type tbProphState struct {
	onProph       bool
	scheduled     bool
	lineIndex     int
	startMonth    int
	restartCount  int
}

// tbState holds the full TB subsystem: natural-history state, strain,
// trackers, care continuum, proph, treatment, and diagnostic-chain
// position.
type tbState struct {
	state  TBState
	strain TBStrain

	observedStrain    TBStrain
	hasObservedStrain bool
	strainHistory     []TBStrain

	trackers tbTrackers

	care TBCareState

	proph tbProphState
	treat tbTreatmentState

	pendingTestResult     bool
	pendingTestReturnMonth int
	pendingDSTResult      bool
	pendingDSTReturnMonth int
	diagnosticChainPos    int

	monthOfInfection    int
	hasBeenInfected     bool
	monthOfActivation   int
	monthOfTreatmentEnd int
	everTreated         bool

	unfavorableOutcome bool

	// lineageID opaquely identifies one infecting-strain lineage: a new
	// id is minted at each infection, and resistance escalation keeps
	// the existing id, so trace payloads tie an escalated strain back to
	// the infection it came from.
	lineageID ksuid.KSUID
}

// State returns the true TB natural-history state.
func (t *tbState) State() TBState { return t.state }

// Strain returns the true drug-resistance strain.
func (t *tbState) Strain() TBStrain { return t.strain }

// ObservedStrain returns the most recently determined strain, if known.
func (t *tbState) ObservedStrain() (TBStrain, bool) {
	return t.observedStrain, t.hasObservedStrain
}

// SputumHigh / ImmuneReactive / Symptoms report the three TB trackers.
func (t *tbState) SputumHigh() bool     { return t.trackers.sputumHigh }
func (t *tbState) ImmuneReactive() bool { return t.trackers.immuneReactive }
func (t *tbState) Symptoms() bool       { return t.trackers.symptoms }

// CareState returns the TB-specific care continuum position.
func (t *tbState) CareState() TBCareState { return t.care }

// OnProph / ProphLine report the TB proph ladder position.
func (t *tbState) OnProph() bool  { return t.proph.onProph }
func (t *tbState) ProphLine() int { return t.proph.lineIndex }

// OnTreatment / TreatmentLine report the active treatment course.
func (t *tbState) OnTreatment() bool   { return t.treat.onTreatment }
func (t *tbState) TreatmentLine() int  { return t.treat.line }
func (t *tbState) EmpiricTreatment() bool { return t.treat.empiric }

// HasBeenInfected / MonthOfInfection track natural history onset for
// activation-hazard computations.
func (t *tbState) HasBeenInfected() bool { return t.hasBeenInfected }
func (t *tbState) MonthOfInfection() int { return t.monthOfInfection }

// EverTreated reports whether any TB treatment course has ever started.
func (t *tbState) EverTreated() bool { return t.everTreated }

// TreatmentRepeatsOnLine returns how many times treatment line i has
// been restarted after failure.
func (t *tbState) TreatmentRepeatsOnLine(i int) int {
	if i < 0 || i >= len(t.treat.repeatsOnLine) {
		return 0
	}
	return t.treat.repeatsOnLine[i]
}

// MonthOfActivation returns the month TB last became clinically active.
func (t *tbState) MonthOfActivation() int { return t.monthOfActivation }

// LineageID returns the opaque identifier of the strain lineage the
// patient currently carries, or the zero KSUID if never infected.
func (t *tbState) LineageID() ksuid.KSUID { return t.lineageID }
