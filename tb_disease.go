package cepac

import "github.com/segmentio/ksuid"

// tbDiseaseUpdater handles TB infection, reactivation, relapse,
// self-cure, and tracker updates (§2 step 5, §4.9).
type tbDiseaseUpdater struct{}

func (u *tbDiseaseUpdater) Name() string { return "TBDisease" }

func (u *tbDiseaseUpdater) PerformInitialUpdates(p *Patient, ctx *SimContext, m *patientMutator) {}

func (u *tbDiseaseUpdater) PerformMonthlyUpdates(p *Patient, ctx *SimContext, m *patientMutator) {
	if !p.IsAlive() || !ctx.TBModuleEnabled {
		return
	}
	switch p.TB().State() {
	case TBUninfected:
		u.rollInfection(p, ctx, m)
	case TBLatent:
		u.rollActivation(p, ctx, m)
	case TBActivePulm, TBActiveExtrapulm:
		u.rollSelfCure(p, ctx, m)
	case TBPreviouslyTreated, TBTreatmentDefault:
		u.rollRelapse(p, ctx, m)
	}
}

func (u *tbDiseaseUpdater) calendarMultiplier(ctx *SimContext, month int) float64 {
	if month < ctx.TB.NaturalHistorySegmentBoundaryMonth {
		return valueOr(ctx.TB.NaturalHistoryMultiplierSegment1, 1)
	}
	return valueOr(ctx.TB.NaturalHistoryMultiplierSegment2, 1)
}

func valueOr(v, fallback float64) float64 {
	if v == 0 {
		return fallback
	}
	return v
}

func (u *tbDiseaseUpdater) rollInfection(p *Patient, ctx *SimContext, m *patientMutator) {
	cd4Stratum := cd4StratumIndex(p.Disease().TrueCD4())
	ageBin := p.General().AgeYears() / 10
	var baseProb float64
	if byAge, ok := ctx.TB.InfectionProbByCD4AgeBin[cd4Stratum]; ok {
		baseProb = byAge[ageBin]
	}
	baseProb *= u.calendarMultiplier(ctx, p.Month())
	if p.TB().hasBeenInfected {
		baseProb *= ctx.TB.ReinfectionMultiplier
	}
	if !p.RNG().Bernoulli(siteTBInfectionDraw, p, baseProb) {
		return
	}
	m.SetTBInfected(p.Month())
	m.SetTBState(TBLatent)
	strainIdx := p.RNG().Categorical(siteTBStrainDraw, p, ctx.TB.StrainWeightsOnInfection[:])
	if strainIdx < 0 {
		strainIdx = 0
	}
	m.SetTBStrain(TBStrain(strainIdx))
	lineage := ksuid.New()
	m.SetTBLineage(lineage)
	m.trace("TB_INFECTION", lineage.String())
	if m.stats != nil {
		m.stats.RecordTBEvent(TBLatent)
	}
}

func (u *tbDiseaseUpdater) rollActivation(p *Patient, ctx *SimContext, m *patientMutator) {
	monthsSinceInfection := p.Month() - p.TB().MonthOfInfection()
	cd4Stratum := cd4StratumIndex(p.Disease().TrueCD4())
	var prob float64
	if monthsSinceInfection <= ctx.TB.ActivationStage1Months {
		prob = ctx.TB.ActivationProbStage1ByCD4[cd4Stratum]
	} else {
		prob = ctx.TB.ActivationProbStage2ByCD4[cd4Stratum]
	}
	if !p.RNG().Bernoulli(siteTBActivationDraw, p, prob) {
		return
	}
	u.activateDisease(p, ctx, m)
}

func (u *tbDiseaseUpdater) activateDisease(p *Patient, ctx *SimContext, m *patientMutator) {
	pulm := p.RNG().Bernoulli(siteTBPulmSplitDraw, p, ctx.TB.PulmonaryFraction)
	if pulm {
		m.SetTBState(TBActivePulm)
	} else {
		m.SetTBState(TBActiveExtrapulm)
	}
	sputumHigh := pulm && p.RNG().Bernoulli(siteTBSputumDraw, p, ctx.TB.SputumHighFraction)
	m.SetTBTrackers(sputumHigh, p.TB().ImmuneReactive(), true)
	m.SetTBActivationMonth(p.Month())
	if m.stats != nil {
		m.stats.RecordTBEvent(p.TB().State())
	}
}

func (u *tbDiseaseUpdater) rollRelapse(p *Patient, ctx *SimContext, m *patientMutator) {
	monthsSinceTreatment := p.Month() - p.TB().monthOfTreatmentEnd
	if monthsSinceTreatment < ctx.TB.RelapseThresholdMonths {
		return
	}
	if monthsSinceTreatment <= ctx.TB.RelapseEfficacyHorizonMonths {
		return
	}
	hazard := ctx.TB.RelapseRateMultiplier * powF(float64(monthsSinceTreatment), ctx.TB.RelapseExponent)
	cd4Stratum := cd4StratumIndex(p.Disease().TrueCD4())
	hazard *= ctx.TB.RelapseCD4Multiplier[cd4Stratum]
	if p.TB().State() == TBTreatmentDefault {
		hazard *= ctx.TB.RelapseTreatmentDefaultMultiplier
	}
	prob := RateToProb(hazard)
	if !p.RNG().Bernoulli(siteTBRelapseDraw, p, prob) {
		return
	}
	u.activateDisease(p, ctx, m)
}

func (u *tbDiseaseUpdater) rollSelfCure(p *Patient, ctx *SimContext, m *patientMutator) {
	if !ctx.TB.SelfCureEnabled || p.TB().OnTreatment() {
		return
	}
	monthsSinceActivation := p.Month() - p.TB().monthOfActivation
	if monthsSinceActivation < ctx.TB.MonthsToSelfCure {
		return
	}
	m.SetTBState(TBLatent)
}

func powF(base, exp float64) float64 {
	if exp == 0 {
		return 1
	}
	if exp == 1 {
		return base
	}
	result := 1.0
	n := int(exp)
	for i := 0; i < n; i++ {
		result *= base
	}
	return result
}
