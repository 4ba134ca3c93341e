package cepac

// ARTToxicityEffect is a tagged record of a single toxicity event applied
// to a regimen. It is a sum type over severity and duration kind, as
// recommended in §9: a small, rarely-more-than-a-handful-long list that
// drugToxicityUpdater walks and filters every month rather than a formal
// event-scheduling structure.
type ARTToxicityEffect struct {
	Severity     ToxicitySeverity
	DurationKind ToxicityDuration
	StartMonth   int

	QOLModifier   float64
	MonthlyCost   float64
	DeathRateRatio float64

	// TimeToImpactMonths delays a chronic DRR's onset past StartMonth.
	TimeToImpactMonths int

	qolActive   bool
	costActive  bool
	deathActive bool
}

// responseFactors holds the per-heterogeneity-outcome multipliers derived
// from a patient-regimen response logit via the two-threshold piecewise
// map (§4.6).
type responseFactors [numHeterogeneityOutcomes]float64

// successEnvelope captures the best-ever CD4 (or CD4%) trajectory reached
// on ART, maintained separately overall and per current regimen (§4.4).
type successEnvelope struct {
	active        bool
	cd4           float64
	cd4Pct        float64
	slope         float64
	regimenIndex  int
	stageStart    int
}

// artState holds ART eligibility, the current/previous regimen, response
// heterogeneity, CD4/HVL slope bookkeeping, and the active toxicity-effect
// list.
type artState struct {
	mayReceive   bool
	onART        bool
	resuppressed bool

	regimenIndex    int
	subRegimenIndex int
	prevRegimenIndex int

	monthOfRegimenStart    int
	monthOfSubRegimenStart int
	monthOfEfficacyChange  int
	monthOfFirstARTStart   int
	haveStartedART         bool

	efficacy       EfficacyState
	observedFailed bool
	observedFailureType int

	responseLogitBase       float64
	responseLogitWithDelta  float64
	responseLogitPreDelta   float64
	responseFactors         responseFactors

	cd4Slope    float64
	cd4PctSlope float64
	slopeStage  int
	slopeStageStart int

	envelopeOverall    successEnvelope
	envelopeIndividual successEnvelope

	stiActive     bool
	stiStartMonth int

	cd4DropMonths int
	hvlRiseMonths int

	toxEffects []ARTToxicityEffect

	lastStopType ARTStopType

	unsuccessfulMonthsByHVL map[HVLStratum]int
}

// MayReceiveART reports whether the patient is ART-eligible at all under
// the configured rollout.
func (a *artState) MayReceiveART() bool { return a.mayReceive }

// OnART reports whether a regimen is currently active.
func (a *artState) OnART() bool { return a.onART }

// Resuppressed reports whether the current regimen is in its
// post-restart resuppression phase.
func (a *artState) Resuppressed() bool { return a.resuppressed }

// RegimenIndex / SubRegimenIndex identify the currently active regimen.
func (a *artState) RegimenIndex() int    { return a.regimenIndex }
func (a *artState) SubRegimenIndex() int { return a.subRegimenIndex }

// PrevRegimenIndex returns the regimen index before the most recent
// switch, or -1 if this is the first regimen.
func (a *artState) PrevRegimenIndex() int { return a.prevRegimenIndex }

// MonthOfRegimenStart / MonthOfFirstARTStart anchor efficacy-horizon and
// stage-boundary computations.
func (a *artState) MonthOfRegimenStart() int    { return a.monthOfRegimenStart }
func (a *artState) MonthOfFirstARTStart() int   { return a.monthOfFirstARTStart }
func (a *artState) HaveStartedART() bool        { return a.haveStartedART }

// Efficacy returns the current regimen's success/failure state.
func (a *artState) Efficacy() EfficacyState { return a.efficacy }

// ObservedFailed reports whether the per-line observed-failure policy has
// confirmed failure, independent of true Efficacy().
func (a *artState) ObservedFailed() bool { return a.observedFailed }

// ResponseFactor returns the response multiplier for heterogeneity
// outcome o, derived once at regimen initiation.
func (a *artState) ResponseFactor(o HeterogeneityOutcome) float64 {
	return a.responseFactors[o]
}

// CD4Slope / CD4PercentSlope return the slope installed at the last stage
// boundary crossing.
func (a *artState) CD4Slope() float64    { return a.cd4Slope }
func (a *artState) CD4PercentSlope() float64 { return a.cd4PctSlope }

// SlopeStage returns the current CD4-slope stage (0..2).
func (a *artState) SlopeStage() int { return a.slopeStage }

// STIActive reports whether the patient is in a structured-treatment-
// interruption window; STIStartMonth is the month it began.
func (a *artState) STIActive() bool    { return a.stiActive }
func (a *artState) STIStartMonth() int { return a.stiStartMonth }

// CD4DropMonths / HVLRiseMonths report consecutive months the CD4-drop
// and HVL-rise observed-failure signals have held, reset to zero the
// first month either signal doesn't (§4.6 "Observed failure").
func (a *artState) CD4DropMonths() int { return a.cd4DropMonths }
func (a *artState) HVLRiseMonths() int { return a.hvlRiseMonths }

// ToxicityEffects returns the active toxicity-effect list. Callers must
// not retain the slice past the current updater call.
func (a *artState) ToxicityEffects() []ARTToxicityEffect { return a.toxEffects }

// LastStopType returns why the most recent regimen was stopped, or
// StopNone if no regimen has ever stopped.
func (a *artState) LastStopType() ARTStopType { return a.lastStopType }
