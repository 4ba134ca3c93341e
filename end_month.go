package cepac

// endMonthUpdater closes out the month: routine (non-clinic-visit)
// monthly cost and QOL accrual, time-series stats, and the month
// counter advance. It runs last in the pipeline and, for patients who
// died earlier in the same month, is always skipped (§2 step 15).
type endMonthUpdater struct{}

func (u *endMonthUpdater) Name() string { return "EndMonth" }

func (u *endMonthUpdater) PerformInitialUpdates(p *Patient, ctx *SimContext, m *patientMutator) {}

func (u *endMonthUpdater) PerformMonthlyUpdates(p *Patient, ctx *SimContext, m *patientMutator) {
	if !p.IsAlive() {
		return
	}
	m.AddCost(ctx.Cost.RoutineMonthlyCost, SubgroupHIVNegative)
	qol := u.backgroundQOL(ctx, p.General().Gender(), p.General().AgeYears())
	m.ApplyQOLModifier(qol)

	lmBefore := p.General().LifeMonthsDiscounted()
	qalmBefore := p.General().QualityAdjustedLifeMonths()
	m.AccrueLifeMonths()

	if m.stats != nil {
		m.stats.RecordLifeMonth(1, p.General().LifeMonthsDiscounted()-lmBefore, p.General().QualityAdjustedLifeMonths()-qalmBefore)
	}
	m.AdvanceMonth()
}

func (u *endMonthUpdater) backgroundQOL(ctx *SimContext, gender Gender, ageYears int) float64 {
	byAge, ok := ctx.Cost.BackgroundQOLByGenderAge[gender]
	if !ok {
		return 1
	}
	if v, ok := byAge[ageYears]; ok {
		return v
	}
	return 1
}
