package cepac

// labTestUpdater draws CD4 (or CD4% for early-pediatric patients) and HVL
// for patients in care in any month that is their regular or emergency
// clinic-visit month, and records the observed value in that same month:
// results are not delayed. The CD4 draw adds Gaussian noise to the true
// value; the HVL stratum is copied as is. Clinic-visit and drug-efficacy
// policy read these observed values instead of the true underlying
// values (§2 step 12, §4.10).
type labTestUpdater struct{}

func (u *labTestUpdater) Name() string { return "LabTest" }

func (u *labTestUpdater) PerformInitialUpdates(p *Patient, ctx *SimContext, m *patientMutator) {}

func (u *labTestUpdater) PerformMonthlyUpdates(p *Patient, ctx *SimContext, m *patientMutator) {
	if !p.IsAlive() || p.Monitoring().CareState() != CareInCare {
		return
	}
	if p.Month() != p.monitor.regularVisitMonth && p.Month() != p.monitor.emergencyVisitMonth {
		return
	}
	u.drawCD4(p, ctx, m)
	u.drawHVL(p, ctx, m)
}

func (u *labTestUpdater) drawCD4(p *Patient, ctx *SimContext, m *patientMutator) {
	noise := p.RNG().Gaussian(siteLabTestNoise, p, 0, ctx.CD4HVL.BetweenSubjectIncrementStdDev)
	pediatricEarly := ctx.PediatricModuleEnabled && p.General().AgeMonths() <= ctx.CD4HVL.PediatricEarlyMaxAgeMonths
	if pediatricEarly {
		observed := p.Disease().TrueCD4Percent() + noise
		if observed < 0 {
			observed = 0
		}
		m.SetObservedCD4Percent(observed, cd4StratumIndex(observed))
		return
	}
	observed := p.Disease().TrueCD4() + noise
	if observed < 0 {
		observed = 0
	}
	m.SetObservedCD4(observed, cd4StratumIndex(observed))
}

func (u *labTestUpdater) drawHVL(p *Patient, ctx *SimContext, m *patientMutator) {
	m.SetObservedHVL(p.Disease().HVLStratum())
}
