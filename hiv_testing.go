package cepac

// hivTestingUpdater covers HIV detection (OI-driven, user testing
// program, and background program), post-detection linkage to care, and
// the PrEP enrollment/dropout lifecycle for HIV-negative patients (§2
// step 9, §4.10).
type hivTestingUpdater struct{}

func (u *hivTestingUpdater) Name() string { return "HIVTesting" }

func (u *hivTestingUpdater) PerformInitialUpdates(p *Patient, ctx *SimContext, m *patientMutator) {}

func (u *hivTestingUpdater) PerformMonthlyUpdates(p *Patient, ctx *SimContext, m *patientMutator) {
	if !p.IsAlive() {
		return
	}
	if p.Disease().HIVState() == HIVNegative {
		u.rollPrEP(p, ctx, m)
		return
	}
	if !p.Monitoring().Detected() {
		u.rollDetection(p, ctx, m)
		return
	}
	if !p.Monitoring().Linked() {
		u.rollLinkage(p, ctx, m)
	}
}

// rollDetection tries, in priority order, an OI-driven detection (if the
// patient has a current acute OI), the user-initiated testing program,
// and the background testing program.
func (u *hivTestingUpdater) rollDetection(p *Patient, ctx *SimContext, m *patientMutator) {
	if oi, ok := p.Disease().CurrentOI(); ok {
		if prob, has := ctx.Testing.OIDetectionProb[oi]; has && p.RNG().Bernoulli(siteHIVTestAccept, p, prob) {
			m.SetDetected(p.Month())
			return
		}
	}
	if u.rollUserTest(p, ctx, m) {
		return
	}
	u.rollBackgroundTest(p, ctx, m)
}

func (u *hivTestingUpdater) rollUserTest(p *Patient, ctx *SimContext, m *patientMutator) bool {
	if p.General().AgeMonths() < ctx.Testing.ProgramStartAgeMonths {
		return false
	}
	if p.Month() < p.Monitoring().HIVTestScheduledMonth() {
		return false
	}
	if !p.RNG().Bernoulli(siteHIVTestAccept, p, ctx.Testing.AcceptDistribution[p.Disease().HIVState()]) {
		u.scheduleNextTest(p, ctx, m)
		return false
	}
	sens := ctx.Testing.SensitivityByState[p.Disease().HIVState()]
	positive := p.RNG().Bernoulli(siteHIVTestResult, p, sens)
	m.AddCost(ctx.Testing.CostPerTest)
	if !positive {
		u.scheduleNextTest(p, ctx, m)
		return false
	}
	if !p.RNG().Bernoulli(siteHIVTestReturn, p, ctx.Testing.ReturnForResultsProb) {
		u.scheduleNextTest(p, ctx, m)
		return false
	}
	m.SetDetected(p.Month())
	return true
}

func (u *hivTestingUpdater) scheduleNextTest(p *Patient, ctx *SimContext, m *patientMutator) {
	idx := p.RNG().Categorical(siteHIVTestInterval, p, ctx.Testing.AcceptIntervalWeights)
	interval := 12
	if idx >= 0 && idx < len(ctx.Testing.AcceptIntervalMonths) {
		interval = ctx.Testing.AcceptIntervalMonths[idx]
	}
	m.ScheduleNextHIVTest(p.Month() + interval)
}

func (u *hivTestingUpdater) rollBackgroundTest(p *Patient, ctx *SimContext, m *patientMutator) {
	if p.General().AgeMonths() < ctx.Testing.BackgroundStartAgeMonths {
		return
	}
	state := p.Disease().HIVState()
	if !p.RNG().Bernoulli(siteHIVTestAccept, p, ctx.Testing.BackgroundAcceptProb[state]) {
		return
	}
	if !p.RNG().Bernoulli(siteHIVTestResult, p, ctx.Testing.BackgroundPositiveProb[state]) {
		return
	}
	if !p.RNG().Bernoulli(siteHIVTestReturn, p, ctx.Testing.BackgroundReturnProb) {
		return
	}
	m.SetDetected(p.Month())
}

// rollLinkage moves a detected-but-unlinked patient into care.
func (u *hivTestingUpdater) rollLinkage(p *Patient, ctx *SimContext, m *patientMutator) {
	prob := ctx.Testing.LinkageProbDefault
	if oi, ok := p.Disease().CurrentOI(); ok {
		if oiProb, has := ctx.Testing.LinkageProbByOI[oi]; has {
			prob = oiProb
		}
	}
	if !p.RNG().Bernoulli(siteLinkageDraw, p, prob) {
		return
	}
	m.SetLinked(p.Month())
	m.SetProphEligible(true)
	if ctx.Proph.NonComplianceProb > 0 && p.RNG().Bernoulli(siteProphNonComplianceDraw, p, ctx.Proph.NonComplianceProb) {
		m.SetProphNonCompliant(true)
	}
}

// rollPrEP drives enrollment, coverage, and dropout for HIV-negative
// patients under PrEP rollout (§4.10).
func (u *hivTestingUpdater) rollPrEP(p *Patient, ctx *SimContext, m *patientMutator) {
	if !ctx.PrEP.Enabled {
		return
	}
	switch p.Monitoring().PrEPStatus() {
	case PrEPNever:
		u.rollPrEPUptake(p, ctx, m)
	case PrEPOn:
		m.IncrementMonthsOnPrEP()
		m.AddCost(ctx.PrEP.MonthlyCost)
		u.rollPrEPDropout(p, ctx, m)
	case PrEPDroppedOut:
		if ctx.PrEP.ReuptakeAfterDropout {
			u.rollPrEPUptake(p, ctx, m)
		}
	}
}

func (u *hivTestingUpdater) rollPrEPUptake(p *Patient, ctx *SimContext, m *patientMutator) {
	risk := p.General().RiskCategory()
	uptakeProb := 0.0
	if risk < len(ctx.PrEP.UptakeProbByRisk) {
		uptakeProb = ctx.PrEP.UptakeProbByRisk[risk]
	}
	if !p.RNG().Bernoulli(sitePrEPUptake, p, uptakeProb) {
		return
	}
	if !p.RNG().Bernoulli(sitePrEPCoverage, p, ctx.PrEP.CoverageProb) {
		return
	}
	m.SetPrEPStatus(PrEPOn)
	m.ResetMonthsOnPrEP()
	m.AddCost(ctx.PrEP.MonthlyCost)
}

func (u *hivTestingUpdater) rollPrEPDropout(p *Patient, ctx *SimContext, m *patientMutator) {
	rate := ctx.PrEP.DropoutRatePre
	if p.Monitoring().MonthsOnPrEP() >= ctx.PrEP.DropoutThresholdMonth {
		rate = ctx.PrEP.DropoutRatePost
	}
	if !p.RNG().Bernoulli(sitePrEPDropout, p, rate) {
		return
	}
	m.SetPrEPStatus(PrEPDroppedOut)
}
