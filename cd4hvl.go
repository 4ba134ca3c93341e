package cepac

// cd4hvlUpdater advances the patient's true CD4 (or CD4% in the
// pediatric-early regime) and HVL stratum for the month: off-ART natural
// decline, on-ART staged slopes with a fresh slope redraw at each stage
// boundary, failure-multiplier penalties once a regimen has failed, and
// success-envelope bookkeeping used by later ART policy (§2 step 8,
// §4.4).
type cd4hvlUpdater struct{}

func (u *cd4hvlUpdater) Name() string { return "CD4HVL" }

func (u *cd4hvlUpdater) PerformInitialUpdates(p *Patient, ctx *SimContext, m *patientMutator) {}

func (u *cd4hvlUpdater) PerformMonthlyUpdates(p *Patient, ctx *SimContext, m *patientMutator) {
	if !p.IsAlive() {
		return
	}
	if p.Disease().HIVState() == HIVNegative {
		return
	}
	pediatricEarly := ctx.PediatricModuleEnabled && p.General().AgeMonths() <= ctx.CD4HVL.PediatricEarlyMaxAgeMonths

	if p.ART().OnART() {
		u.advanceOnART(p, ctx, m, pediatricEarly)
	} else {
		u.advanceOffART(p, ctx, m, pediatricEarly)
	}
	u.advanceHVL(p, ctx, m)
	u.updateEnvelope(p, ctx, m, pediatricEarly)
	u.addHIVMortalityRisk(p, ctx, m)
	if ctx.DynamicTransmissionEnabled {
		recordTransmissionContribution(p, ctx, m.stats)
	}
}

// addHIVMortalityRisk registers this month's HIV disease-progression
// death-rate ratio, keyed by the patient's current CD4/HVL stratum, for
// mortalityUpdater to weigh against background and every other risk
// (§4.7, §8 S2).
func (u *cd4hvlUpdater) addHIVMortalityRisk(p *Patient, ctx *SimContext, m *patientMutator) {
	byHVL, ok := ctx.Mortality.HIVDeathRateRatioByCD4HVL[cd4StratumIndex(p.Disease().TrueCD4())]
	if !ok {
		return
	}
	drr, ok := byHVL[p.Disease().HVLStratum()]
	if !ok || drr <= 0 {
		return
	}
	m.AddMortalityRisk(CauseHIV, drr, 0)
}

// advanceOffART applies the natural-history CD4 decline rate for the
// patient's current CD4/HVL stratum pair.
func (u *cd4hvlUpdater) advanceOffART(p *Patient, ctx *SimContext, m *patientMutator, pediatricEarly bool) {
	cd4Stratum := cd4StratumIndex(p.Disease().TrueCD4())
	hvl := p.Disease().HVLStratum()

	meanByHVL, ok := ctx.CD4HVL.OffARTDeclineMean[cd4Stratum]
	if !ok {
		return
	}
	stdByHVL := ctx.CD4HVL.OffARTDeclineStdDev[cd4Stratum]
	mean := meanByHVL[hvl]
	std := stdByHVL[hvl]
	delta := p.RNG().Gaussian(siteCD4Slope, p, mean, std)

	if pediatricEarly {
		m.SetTrueCD4Percent(p.Disease().TrueCD4Percent() + delta)
	} else {
		m.SetTrueCD4(p.Disease().TrueCD4() + delta)
	}
}

// advanceOnART applies the currently-installed slope, redrawing it
// whenever the patient crosses into a new on-ART stage boundary
// (§4.4: "stage boundaries trigger a fresh slope draw, not a
// continuation of the previous slope").
func (u *cd4hvlUpdater) advanceOnART(p *Patient, ctx *SimContext, m *patientMutator, pediatricEarly bool) {
	monthsOnRegimen := p.Month() - p.ART().MonthOfRegimenStart()
	stage := u.stageFor(ctx, monthsOnRegimen)
	if stage != p.ART().SlopeStage() {
		u.redrawSlope(p, ctx, m, stage, pediatricEarly)
	}

	slope := p.ART().CD4Slope()
	if pediatricEarly {
		slope = p.ART().CD4PercentSlope()
	}
	if p.ART().Efficacy() == EfficacyFailure {
		slope *= u.failMultiplier(ctx, monthsOnRegimen)
	}

	if pediatricEarly {
		m.SetTrueCD4Percent(p.Disease().TrueCD4Percent() + slope)
	} else {
		m.SetTrueCD4(p.Disease().TrueCD4() + slope)
	}
}

func (u *cd4hvlUpdater) stageFor(ctx *SimContext, monthsOnRegimen int) int {
	for i, boundary := range ctx.CD4HVL.StageBoundaryMonths {
		if monthsOnRegimen < boundary {
			return i
		}
	}
	return len(ctx.CD4HVL.StageBoundaryMonths)
}

func (u *cd4hvlUpdater) redrawSlope(p *Patient, ctx *SimContext, m *patientMutator, stage int, pediatricEarly bool) {
	respType := 0
	if p.ART().Efficacy() == EfficacyFailure {
		respType = 1
	}
	ageCat := p.Pediatric().AgeCategory()

	meanByStage, ok := ctx.CD4HVL.OnARTSlopeMean[respType]
	if !ok {
		m.AdvanceSlopeStage(stage, p.Month())
		return
	}
	stdByStage := ctx.CD4HVL.OnARTSlopeStdDev[respType]
	mean := meanByStage[stage][ageCat]
	std := stdByStage[stage][ageCat]
	slope := p.RNG().Gaussian(siteCD4Slope, p, mean, std)

	between := p.RNG().Gaussian(siteEnvelopeSlope, p, 0, ctx.CD4HVL.BetweenSubjectIncrementStdDev)
	slope += between

	if pediatricEarly {
		m.SetCD4PercentSlope(slope)
	} else {
		m.SetCD4Slope(slope)
	}
	m.AdvanceSlopeStage(stage, p.Month())
}

// failMultiplier scales the installed slope down once a regimen has
// failed, using an early/late split keyed off months-on-regimen rather
// than a fresh draw (§4.4).
func (u *cd4hvlUpdater) failMultiplier(ctx *SimContext, monthsOnRegimen int) float64 {
	if monthsOnRegimen < ctx.CD4HVL.FailMultiplierCutoffMonth {
		return ctx.CD4HVL.FailMultiplierEarly
	}
	return ctx.CD4HVL.FailMultiplierLate
}

// advanceHVL steps the categorical HVL stratum one unit toward the
// patient's current target (set-point off ART, suppressed target on a
// successful regimen) with fixed monthly progression probability.
func (u *cd4hvlUpdater) advanceHVL(p *Patient, ctx *SimContext, m *patientMutator) {
	current := p.Disease().HVLStratum()
	target := p.Disease().HVLSetpoint()
	if p.ART().OnART() && p.ART().Efficacy() == EfficacySuccess {
		target = p.Disease().HVLTarget()
	}
	if current == target {
		return
	}
	if !p.RNG().Bernoulli(siteHVLStep, p, ctx.CD4HVL.HVLProgressProb) {
		return
	}
	if current < target {
		m.SetHVLStratum(current + 1)
	} else {
		m.SetHVLStratum(current - 1)
	}
}

// updateEnvelope records the best (highest) CD4/CD4% ever reached on the
// current regimen and overall, used by ART-switch and proph-stop
// eligibility checks that key off "ever suppressed to X" rather than
// current value (§4.4, §4.8).
func (u *cd4hvlUpdater) updateEnvelope(p *Patient, ctx *SimContext, m *patientMutator, pediatricEarly bool) {
	if !p.ART().OnART() {
		return
	}
	cd4 := p.Disease().TrueCD4()
	cd4Pct := p.Disease().TrueCD4Percent()
	slope := p.ART().CD4Slope()
	if pediatricEarly {
		slope = p.ART().CD4PercentSlope()
	}
	regimen := p.ART().RegimenIndex()
	stageStart := p.ART().SlopeStage()

	if !p.art.envelopeOverall.active || cd4 > p.art.envelopeOverall.cd4 {
		m.SetEnvelope(true, cd4, cd4Pct, slope, regimen, stageStart)
	}
	if !p.art.envelopeIndividual.active || regimen != p.art.envelopeIndividual.regimenIndex || cd4 > p.art.envelopeIndividual.cd4 {
		m.SetEnvelope(false, cd4, cd4Pct, slope, regimen, stageStart)
	}
}
