package cepac

import "math"

// art.go holds the ART-lifecycle machinery shared between ClinicVisit
// (start/stop/switch decisions, §2 step 13) and DrugEfficacy (efficacy
// transitions, §2 step 11): response-logit sampling, the per-outcome
// response-factor derivation, and the stop-policy evaluation. Actual
// pipeline-step dispatch lives in clinic_visit.go and drug_efficacy.go.

// sampleResponseLogit draws a fresh patient-regimen response logit at
// regimen initiation and derives every heterogeneity-outcome response
// factor from it via the two-threshold piecewise-linear map (§4.6).
func sampleResponseLogit(p *Patient, ctx *SimContext, m *patientMutator) float64 {
	rng := p.RNG()
	base := rng.Gaussian(siteARTResponseLogit, p, ctx.ART.ResponseLogitMean, ctx.ART.ResponseLogitStdDev)
	withDelta := base + p.General().AdherenceLogit()
	m.SetResponseLogit(base, withDelta, base)

	propensity := LogitToProb(withDelta)
	for o := HeterogeneityOutcome(0); o < HeterogeneityOutcome(numHeterogeneityOutcomes); o++ {
		th := ctx.ART.ThresholdsByOutcome[o]
		v := PiecewiseLinearResponse(propensity, th.L1, th.L2, th.Lo, th.Hi)
		if th.Exponentiate {
			v = math.Exp(v)
		}
		m.SetResponseFactor(o, v)
	}
	return withDelta
}

// eligibleForART reports whether the patient currently satisfies the
// configured ART-start criteria (§4.6 Start).
func eligibleForART(p *Patient, ctx *SimContext) bool {
	if p.ART().OnART() || !p.ART().MayReceiveART() || p.ART().STIActive() {
		return false
	}
	if p.Disease().HIVState() == HIVNegative {
		return false
	}
	cd4 := p.Disease().TrueCD4()
	if cd4 < ctx.ART.EligibleCD4Min || (ctx.ART.EligibleCD4Max > 0 && cd4 > ctx.ART.EligibleCD4Max) {
		return false
	}
	if p.Disease().HVLStratum() < ctx.ART.EligibleHVLMin {
		return false
	}
	if ctx.ART.EligibleHVLMax > 0 && p.Disease().HVLStratum() > ctx.ART.EligibleHVLMax {
		return false
	}
	if p.Month() < ctx.ART.MinMonthToStart {
		return false
	}
	if ctx.ART.MaxMonthToStart > 0 && p.Month() > ctx.ART.MaxMonthToStart {
		return false
	}
	if p.ART().LastStopType() != StopNone {
		sinceStop := p.Month() - p.ART().monthOfRegimenStartUnsafe()
		if sinceStop < ctx.ART.MonthsSincePreviousStopRequired {
			return false
		}
	}
	return p.ART().regimenIndexForNextStart() < ctx.ART.NumRegimens
}

// monthOfRegimenStartUnsafe exposes the unexported field for the
// eligibility check above without widening the public accessor surface;
// "unsafe" here only flags that it is an internal affordance, not a
// memory-safety concern.
func (a *artState) monthOfRegimenStartUnsafe() int { return a.monthOfRegimenStart }

func (a *artState) regimenIndexForNextStart() int {
	if !a.haveStartedART {
		return 0
	}
	return a.regimenIndex + 1
}

// initiateART starts the next available regimen: samples the response
// logit, draws initial efficacy, and schedules toxicity templates.
func initiateART(p *Patient, ctx *SimContext, m *patientMutator) {
	regimen := p.ART().regimenIndexForNextStart()
	m.StartART(regimen, 0, p.Month())
	sampleResponseLogit(p, ctx, m)

	probSuccess := 0.5
	if regimen < len(ctx.ART.ProbInitialEfficacy) {
		probSuccess = ctx.ART.ProbInitialEfficacy[regimen]
	}
	probSuccess = probSuccess * p.ART().ResponseFactor(OutcomeSuppression)
	if probSuccess > 1 {
		probSuccess = 1
	}
	if p.RNG().Bernoulli(siteARTInitialEfficacy, p, probSuccess) {
		m.SetEfficacy(EfficacySuccess, p.Month())
	} else {
		m.SetEfficacy(EfficacyFailure, p.Month())
	}

	m.SetMayReceiveART(true)
	scheduleARTToxicities(p, ctx, m, regimen)
}

// scheduleARTToxicities rolls every toxicity template configured for
// regimen and, for each that fires, samples a start month and appends an
// ARTToxicityEffect (§4.6 Toxicity).
func scheduleARTToxicities(p *Patient, ctx *SimContext, m *patientMutator, regimen int) {
	rng := p.RNG()
	for i, tmpl := range ctx.ART.Toxicity {
		if tmpl.RegimenIndex != regimen {
			continue
		}
		prob := tmpl.Probability * p.ART().ResponseFactor(OutcomeToxicity)
		if !rng.Bernoulli(siteToxicityFireDraw+i, p, prob) {
			continue
		}
		start := rng.TruncatedGaussian(siteToxicityStartMonth+i, p, tmpl.StartMonthMean, tmpl.StartMonthStdDev, 0)
		m.AddToxicityEffect(ARTToxicityEffect{
			Severity:           tmpl.Severity,
			DurationKind:       tmpl.DurationKind,
			StartMonth:         p.Month() + int(start),
			QOLModifier:        tmpl.QOLModifier,
			MonthlyCost:        tmpl.MonthlyCost,
			DeathRateRatio:     tmpl.DeathRateRatio,
			TimeToImpactMonths: tmpl.TimeToImpactMonths,
		})
	}
}

// inEfficacyHorizon reports whether the current regimen's success is
// still within its protected horizon, during which no late-failure rolls
// occur (§4.6, §8 invariant 4).
func inEfficacyHorizon(p *Patient, ctx *SimContext) bool {
	if p.ART().Efficacy() != EfficacySuccess {
		return false
	}
	horizon := 0
	regimen := p.ART().RegimenIndex()
	if regimen < len(ctx.ART.EfficacyHorizonMonths) {
		horizon = ctx.ART.EfficacyHorizonMonths[regimen]
	}
	if p.ART().Resuppressed() && regimen < len(ctx.ART.ResuppressionHorizonMonths) {
		horizon = ctx.ART.ResuppressionHorizonMonths[regimen]
	}
	return p.Month() <= p.ART().MonthOfRegimenStart()+horizon
}

// evaluateStopPolicy checks every stop trigger category in priority
// order and returns the first that applies, or StopNone. Open Question
// (ii) is resolved here: a chronic-toxicity-driven switch wins over an
// observed-failure-driven switch in the same month.
func evaluateStopPolicy(p *Patient, ctx *SimContext) ARTStopType {
	if !p.ART().OnART() {
		return StopNone
	}
	regimen := p.ART().RegimenIndex()
	if regimen < len(ctx.ART.MaxMonthsOnRegimen) && ctx.ART.MaxMonthsOnRegimen[regimen] > 0 {
		if p.Month()-p.ART().MonthOfRegimenStart() >= ctx.ART.MaxMonthsOnRegimen[regimen] {
			return StopMaxMonths
		}
	}
	for _, e := range p.ART().ToxicityEffects() {
		if e.Severity == ToxicityMajor && e.StartMonth == p.Month() {
			return StopMajorToxicity
		}
	}
	for _, e := range p.ART().ToxicityEffects() {
		if e.Severity == ToxicityChronic && p.Month() >= e.StartMonth+e.TimeToImpactMonths {
			return StopChronicToxicitySwitch
		}
	}
	if p.ART().ObservedFailed() {
		if p.Month() >= p.ART().MonthOfRegimenStart()+ctx.ART.MonthsFromObservedFailureToStop {
			return StopObservedFailure
		}
	}
	if p.Monitoring().IsLTFU() {
		return StopLTFU
	}
	if p.ART().STIActive() {
		return StopSTI
	}
	return StopNone
}

// evaluateSTIStart rolls a monthly structured-treatment-interruption
// start for a patient stable on a successful regimen for at least
// STIEligibleMonths (§4.6 Stop "STI"). Starting an STI does not itself
// stop the regimen; evaluateStopPolicy picks up STIActive() on the next
// call and reports StopSTI, which clinicVisitUpdater acts on like any
// other stop trigger. endSTIIfElapsed clears the window once
// STIDurationMonths has passed, which lets eligibleForART's ordinary
// stop-then-restart path resume ART.
func evaluateSTIStart(p *Patient, ctx *SimContext, m *patientMutator) {
	if p.ART().STIActive() || p.ART().Efficacy() != EfficacySuccess {
		return
	}
	if p.Month()-p.ART().MonthOfRegimenStart() < ctx.ART.STIEligibleMonths {
		return
	}
	if p.RNG().Bernoulli(siteSTIStartDraw, p, ctx.ART.STIStartProb) {
		m.StartSTI(p.Month())
	}
}

func endSTIIfElapsed(p *Patient, ctx *SimContext, m *patientMutator) {
	if !p.ART().STIActive() {
		return
	}
	if p.Month()-p.ART().STIStartMonth() >= ctx.ART.STIDurationMonths {
		m.SetSTIActive(false)
	}
}
