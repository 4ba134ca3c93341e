package cepac

// hivInfectionUpdater handles HIV-negative -> infected transitions,
// acute -> chronic transition, and pediatric/adolescent age-category
// transitions (§2 step 2).
type hivInfectionUpdater struct{}

func (u *hivInfectionUpdater) Name() string { return "HIVInfection" }

func (u *hivInfectionUpdater) PerformInitialUpdates(p *Patient, ctx *SimContext, m *patientMutator) {
	if ctx.PediatricModuleEnabled && p.Pediatric().Enabled() {
		u.rollMaternalToChildTransmission(p, ctx, m)
	}
}

func (u *hivInfectionUpdater) PerformMonthlyUpdates(p *Patient, ctx *SimContext, m *patientMutator) {
	if !p.IsAlive() {
		return
	}
	if ctx.PediatricModuleEnabled {
		cat := pediatricAgeCategoryFor(p.General().AgeMonths())
		if cat != p.Pediatric().AgeCategory() {
			m.SetPediatricAgeCategory(cat)
		}
		if p.Pediatric().Enabled() {
			u.advancePostpartumExposure(p, ctx, m)
			u.advanceEIDTesting(p, ctx, m)
			u.advanceInfantProph(p, ctx, m)
		}
	}

	switch p.Disease().HIVState() {
	case HIVNegative:
		u.rollIncidentInfection(p, ctx, m)
	case HIVAcute:
		u.rollAcuteToChronic(p, ctx, m)
	}
}

// rollMaternalToChildTransmission resolves at-birth mother-to-child HIV
// transmission for an infant exposed to an HIV-positive mother, and arms
// infant proph and the first EID test (§3 pediatric data model).
func (u *hivInfectionUpdater) rollMaternalToChildTransmission(p *Patient, ctx *SimContext, m *patientMutator) {
	if p.Pediatric().MaternalStatus() == MaternalNegative {
		return
	}
	m.SetHEU(true, false)
	m.SetInfantProph(0, true)
	m.EnterEIDSystem()
	m.ScheduleEIDTest(ctx.Pediatric.EIDEligibilityAgeMonths)

	if p.RNG().Bernoulli(siteMTCTBirthDraw, p, ctx.Pediatric.BirthTransmissionProb) {
		route := PedHIVInUtero
		if p.RNG().Bernoulli(siteMTCTRouteDraw, p, 0.5) {
			route = PedHIVPeripartum
		}
		u.infectPediatric(p, m, route)
	}
}

// infectPediatric commits a vertical-transmission infection: it drives
// both the pediatric route label and the adult HIVState machine that
// CD4/HVL, ART and mortality key off.
func (u *hivInfectionUpdater) infectPediatric(p *Patient, m *patientMutator, route PediatricHIVState) {
	m.SetPediatricHIVState(route)
	m.SetHIVState(HIVAcute)
	m.SetMonthOfInfection(p.Month())
}

// advancePostpartumExposure rolls ongoing breastfeeding transmission risk
// for an infant who tested negative at birth but is still breastfeeding
// from an HIV-positive mother.
func (u *hivInfectionUpdater) advancePostpartumExposure(p *Patient, ctx *SimContext, m *patientMutator) {
	if p.Disease().HIVState() != HIVNegative {
		return
	}
	pd := p.Pediatric()
	if pd.MaternalStatus() == MaternalNegative {
		return
	}
	if pd.BreastfeedingMode() == BreastfeedingNone || p.General().AgeMonths() >= pd.breastfeedingStopAge {
		return
	}
	if p.RNG().Bernoulli(sitePostpartumTransmissionDraw, p, ctx.Pediatric.PostpartumMonthlyTransmissionProb) {
		u.infectPediatric(p, m, PedHIVPostpartum)
	}
}

// advanceEIDTesting drives the two-phase EID chain: administering the
// sample once the infant reaches testing-eligible age, then returning
// the drawn result after the configured delay and acting on it — a
// confirmed negative marks the infant as confirmed HIV-exposed-uninfected
// (HEUExposed and HEUConfirmed both true) and stops infant proph line 0;
// an EID false positive (from 1-EIDSpecificity on a truly negative
// infant) may or may not get linked to care (§3 Monitoring, §4.10).
func (u *hivInfectionUpdater) advanceEIDTesting(p *Patient, ctx *SimContext, m *patientMutator) {
	pd := p.Pediatric()
	ageMonths := p.General().AgeMonths()

	if pd.EIDScheduledResult() && !pd.EIDAwaitingReturn() && ageMonths >= pd.EIDResultDueMonth() {
		truePositive := p.Disease().HIVState() != HIVNegative
		var positive bool
		if truePositive {
			positive = p.RNG().Bernoulli(siteEIDResultDraw, p, ctx.Pediatric.EIDSensitivity)
		} else {
			positive = p.RNG().Bernoulli(siteEIDResultDraw, p, 1-ctx.Pediatric.EIDSpecificity)
		}
		m.AdministerEIDTest(positive, ageMonths+ctx.Pediatric.EIDReturnDelayMonths)
		return
	}

	if pd.EIDAwaitingReturn() && ageMonths >= pd.EIDResultDueMonth() {
		truePositive := p.Disease().HIVState() != HIVNegative
		positive := pd.EIDPendingResult()
		switch {
		case positive && !truePositive:
			linked := p.RNG().Bernoulli(siteEIDLinkDraw, p, ctx.Pediatric.EIDFalsePositiveLinkProb)
			m.SetEIDFalsePositive(linked)
		case !positive && !truePositive:
			m.SetHEU(true, true)
			m.SetInfantProph(0, false)
		}
		m.ClearEIDSchedule()
	}
}

// advanceInfantProph stops infant proph once the configured duration has
// elapsed, absent an earlier EID-confirmed-negative stop.
func (u *hivInfectionUpdater) advanceInfantProph(p *Patient, ctx *SimContext, m *patientMutator) {
	if !p.Pediatric().InfantProph(0) {
		return
	}
	if p.General().AgeMonths() >= ctx.Pediatric.InfantProphDurationMonths {
		m.SetInfantProph(0, false)
	}
}

func (u *hivInfectionUpdater) rollIncidentInfection(p *Patient, ctx *SimContext, m *patientMutator) {
	rng := p.RNG()
	ageBin := p.General().AgeYears() / 5
	riskStratum := p.General().RiskCategory()

	var baseProb float64
	if byAge, ok := ctx.General.IncidenceByGenderAgeRisk[p.General().Gender()]; ok {
		if byRisk, ok := byAge[ageBin]; ok {
			baseProb = byRisk[riskStratum]
		}
	}
	if mult, ok := ctx.General.IncidenceReductionByMonth[p.Month()]; ok {
		baseProb *= mult
	}

	if ctx.PrEP.Enabled && p.Monitoring().PrEPStatus() == PrEPOn {
		baseProb = u.prepAdjustedIncidence(p, ctx, baseProb)
	} else if ctx.DynamicTransmissionEnabled {
		baseProb = dynamicTransmissionIncidence(p, ctx, m.stats, baseProb)
	}

	if rng.Bernoulli(siteHIVInfectionDraw, p, baseProb) {
		m.SetHIVState(HIVAcute)
		m.SetMonthOfInfection(p.Month())
		if m.stats != nil {
			m.stats.RecordIncidentHIVInfection(p.Month())
		}
	} else if m.stats != nil {
		m.stats.RecordHIVNegAtStart(p.Month())
	}
}

func (u *hivInfectionUpdater) prepAdjustedIncidence(p *Patient, ctx *SimContext, baseProb float64) float64 {
	return baseProb * ctx.PrEP.IncidenceMultiplier
}

func (u *hivInfectionUpdater) rollAcuteToChronic(p *Patient, ctx *SimContext, m *patientMutator) {
	const acuteDurationMonths = 3
	if p.Month()-p.Disease().MonthOfInfection() >= acuteDurationMonths {
		m.SetHIVState(HIVAsympChronic)
		m.SetMonthOfAcuteToChronic(p.Month())
	}
}
