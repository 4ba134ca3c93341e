package cepac

// chrmsUpdater draws chronic-condition (CHRM) incidence each month and
// applies the ongoing mortality/cost effect of conditions already
// present (§2 step 3).
type chrmsUpdater struct{}

func (u *chrmsUpdater) Name() string { return "CHRMs" }

func (u *chrmsUpdater) PerformInitialUpdates(p *Patient, ctx *SimContext, m *patientMutator) {}

func (u *chrmsUpdater) PerformMonthlyUpdates(p *Patient, ctx *SimContext, m *patientMutator) {
	if !p.IsAlive() {
		return
	}
	rng := p.RNG()
	for i := 0; i < ctx.CHRM.NumConditions; i++ {
		if !p.Disease().HasCHRM(i) {
			if i < len(ctx.CHRM.MonthlyIncidence) && rng.Bernoulli(siteCHRMIncidence+i, p, ctx.CHRM.MonthlyIncidence[i]) {
				m.SetCHRM(i, p.Month())
			}
			continue
		}
		if i < len(ctx.CHRM.DeathRateRatio) && ctx.CHRM.DeathRateRatio[i] > 1 {
			m.AddMortalityRisk(CauseCHRM, ctx.CHRM.DeathRateRatio[i], 0)
		}
		if i < len(ctx.CHRM.MonthlyCost) {
			m.AddCost(ctx.CHRM.MonthlyCost[i])
		}
	}
}
