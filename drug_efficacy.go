package cepac

// drugEfficacyUpdater rolls late ART failure for regimens that are past
// their protected efficacy horizon, and detects observed failure from
// the configured CD4/HVL drop signals (§2 step 11, §4.6).
type drugEfficacyUpdater struct{}

func (u *drugEfficacyUpdater) Name() string { return "DrugEfficacy" }

func (u *drugEfficacyUpdater) PerformInitialUpdates(p *Patient, ctx *SimContext, m *patientMutator) {}

func (u *drugEfficacyUpdater) PerformMonthlyUpdates(p *Patient, ctx *SimContext, m *patientMutator) {
	if !p.IsAlive() || !p.ART().OnART() {
		return
	}
	if p.ART().Efficacy() == EfficacySuccess {
		u.rollLateFailure(p, ctx, m)
	}
	u.rollObservedFailure(p, ctx, m)
}

// rollLateFailure draws a late-failure event for a currently-successful
// regimen, but only once the patient has passed its protected efficacy
// horizon (§8 invariant 4: no failure roll during the horizon).
func (u *drugEfficacyUpdater) rollLateFailure(p *Patient, ctx *SimContext, m *patientMutator) {
	if inEfficacyHorizon(p, ctx) {
		return
	}
	regimen := p.ART().RegimenIndex()
	prob := 0.0
	if regimen < len(ctx.ART.ProbLateFail) {
		prob = ctx.ART.ProbLateFail[regimen]
	}
	prob *= p.ART().ResponseFactor(OutcomeLateFailure)
	if !p.RNG().Bernoulli(siteARTLateFail, p, prob) {
		return
	}
	m.SetEfficacy(EfficacyFailure, p.Month())
}

// rollObservedFailure checks the clinical-monitoring signals that a
// provider would use to infer failure from a lab result, independent of
// the true (model-internal) efficacy state: a CD4 drop from the
// regimen's envelope peak sustained for ObservedFailureWindowMonths, a
// rise back into a high HVL stratum sustained the same way, or enough
// accumulated observed OI events to cross ObservedFailureOIThreshold.
// Each signal's consecutive-month count is tracked on the patient so a
// single bad lab month, on its own, never confirms failure.
func (u *drugEfficacyUpdater) rollObservedFailure(p *Patient, ctx *SimContext, m *patientMutator) {
	if p.ART().ObservedFailed() {
		return
	}
	envelope := p.art.envelopeIndividual
	if !envelope.active {
		return
	}
	window := ctx.ART.ObservedFailureWindowMonths
	if window <= 0 {
		window = 1
	}

	cd4Bad := false
	observedCD4 := p.Monitoring().ObservedCD4()
	if observedCD4.HasValue && ctx.ART.ObservedFailureCD4DropThreshold > 0 {
		drop := envelope.cd4 - observedCD4.Value
		cd4Bad = drop >= ctx.ART.ObservedFailureCD4DropThreshold && observedCD4.Value < ctx.ART.ObservedFailureCD4Threshold
	}
	hvlBad := false
	if hvl, ok := p.Monitoring().ObservedHVL(); ok {
		hvlBad = int(hvl) >= ctx.ART.ObservedFailureHVLRiseThreshold
	}
	m.TrackObservedFailureSignals(cd4Bad, hvlBad)

	if cd4Bad && p.ART().CD4DropMonths() >= window {
		m.SetObservedFailure(true, 0)
		u.scheduleFailureVisit(p, m)
		return
	}
	if hvlBad && p.ART().HVLRiseMonths() >= window {
		m.SetObservedFailure(true, 1)
		u.scheduleFailureVisit(p, m)
		return
	}
	if ctx.ART.ObservedFailureOIThreshold > 0 && p.Monitoring().TotalObservedOI() >= ctx.ART.ObservedFailureOIThreshold {
		m.SetObservedFailure(true, 2)
		u.scheduleFailureVisit(p, m)
	}
}

// scheduleFailureVisit pulls in the next clinic visit to the current
// month for a patient still in care whose observed failure was just
// confirmed, rather than waiting out the routine schedule.
func (u *drugEfficacyUpdater) scheduleFailureVisit(p *Patient, m *patientMutator) {
	if p.Monitoring().CareState() == CareInCare {
		m.ScheduleEmergencyVisit(p.Month(), TriggerObservedFailure)
	}
}
