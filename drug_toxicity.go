package cepac

// drugToxicityUpdater applies every active ART/proph/TB-proph/TB-treatment
// toxicity effect for the month, adds the mortality risks they imply, and
// rolls monthly toxicity for active non-ART proph lines (§2 step 4).
// Scheduling of new ART toxicity effects happens at regimen initiation
// (art.go: scheduleARTToxicities, invoked from clinic_visit.go); this
// updater only walks what is already scheduled or active, plus proph's
// own independent monthly roll.
type drugToxicityUpdater struct{}

func (u *drugToxicityUpdater) Name() string { return "DrugToxicity" }

func (u *drugToxicityUpdater) PerformInitialUpdates(p *Patient, ctx *SimContext, m *patientMutator) {}

func (u *drugToxicityUpdater) PerformMonthlyUpdates(p *Patient, ctx *SimContext, m *patientMutator) {
	if !p.IsAlive() {
		return
	}
	u.walkARTToxicities(p, ctx, m)
	u.rollProphToxicities(p, ctx, m)
	u.rollTBProphToxicity(p, ctx, m)
	u.rollTBTreatmentToxicity(p, ctx, m)
}

// walkARTToxicities is the monthly filter over the small toxicity-effect
// list described in §9: effects not yet started are skipped; on their
// start month, QOL/cost/death-duration windows activate; thereafter each
// window is evaluated against its configured duration kind, and an effect
// is dropped once all three windows have closed.
func (u *drugToxicityUpdater) walkARTToxicities(p *Patient, ctx *SimContext, m *patientMutator) {
	effects := p.ART().ToxicityEffects()
	if len(effects) == 0 {
		return
	}
	month := p.Month()
	kept := effects[:0:0]
	for _, e := range effects {
		if month < e.StartMonth {
			kept = append(kept, e)
			continue
		}
		qolInScope := scopeActive(e.DurationKind, month, e.StartMonth, p.ART().OnART())
		costInScope := qolInScope
		deathInScope := qolInScope && month >= e.StartMonth+e.TimeToImpactMonths

		if qolInScope && e.QOLModifier != 0 {
			m.ApplyQOLModifier(e.QOLModifier)
		}
		if costInScope && e.MonthlyCost != 0 {
			m.AddCost(e.MonthlyCost)
		}
		if deathInScope && e.DeathRateRatio > 1 {
			cause := CauseToxicity
			if e.Severity == ToxicityMajor {
				m.AddMortalityRisk(cause, e.DeathRateRatio, 0)
			} else {
				m.AddMortalityRisk(cause, e.DeathRateRatio, 0)
			}
		}
		if e.Severity == ToxicityMajor && e.StartMonth == month && p.Monitoring().CareState() == CareInCare {
			m.ScheduleEmergencyVisit(month, TriggerToxicity)
		}
		if qolInScope || costInScope || deathInScope {
			kept = append(kept, e)
		}
	}
	m.SetToxicityEffects(kept)
}

// scopeActive evaluates whether a duration-kind window is still open in
// the given month. Regimen- and sub-regimen-scoped windows close the
// moment the patient is no longer on the regimen that opened them; the
// caller is responsible for having not stopped ART before this runs if an
// effect from the just-stopped regimen should still apply this month.
func scopeActive(kind ToxicityDuration, month, startMonth int, onART bool) bool {
	switch kind {
	case DurationThisMonth:
		return month == startMonth
	case DurationSubRegimen, DurationRegimen:
		return month >= startMonth && onART
	case DurationUntilDeath:
		return true
	default:
		return false
	}
}

func (u *drugToxicityUpdater) rollProphToxicities(p *Patient, ctx *SimContext, m *patientMutator) {
	rng := p.RNG()
	for oi := OIType(0); oi < OIType(numOITypes); oi++ {
		if !p.Proph().OnProph(oi) {
			continue
		}
		lines, ok := ctx.Proph.Lines[oi]
		if !ok {
			continue
		}
		line := p.Proph().ProphLine(oi)
		if line < 0 || line >= len(lines) {
			continue
		}
		cfg := lines[line]
		if rng.Bernoulli(siteProphToxDraw+int(oi), p, cfg.MajorToxProb) {
			if cfg.MajorToxDRR > 1 {
				m.AddMortalityRisk(CauseProphToxicity, cfg.MajorToxDRR, 0)
			}
			if cfg.SwitchOnMajorTox {
				m.StopProph(oi)
			}
		}
		if cfg.ResistanceOnsetMonth > 0 && p.Month() >= p.Proph().ProphStartMonth(oi)+cfg.ResistanceOnsetMonth {
			if !p.Proph().ProphResistant(oi) {
				m.SetProphResistant(oi, true)
			}
			if cfg.ResistanceDRR > 1 {
				m.AddMortalityRisk(CauseProphToxicity, cfg.ResistanceDRR, 0)
			}
		}
		m.AddCost(cfg.MonthlyCost)
	}
}

func (u *drugToxicityUpdater) rollTBProphToxicity(p *Patient, ctx *SimContext, m *patientMutator) {
	if !p.TB().OnProph() {
		return
	}
	line := p.TB().ProphLine()
	if line < 0 || line >= len(ctx.TB.ProphLines) {
		return
	}
	cfg := ctx.TB.ProphLines[line]
	if cfg.MajorToxProb > 0 && p.RNG().Bernoulli(siteTBProphToxDraw, p, cfg.MajorToxProb) {
		m.AddMortalityRisk(CauseProphToxicity, 1.5, 0)
		m.StopTBProph()
	}
	m.AddCost(cfg.MonthlyCost)
}

func (u *drugToxicityUpdater) rollTBTreatmentToxicity(p *Patient, ctx *SimContext, m *patientMutator) {
	if !p.TB().OnTreatment() {
		return
	}
	line := p.TB().TreatmentLine()
	if line < 0 || line >= len(ctx.TB.Treatment) {
		return
	}
	cfg := ctx.TB.Treatment[line]
	inStage1 := p.TB().treat.accumulatedMonths < cfg.Stage1Months
	toxProb := cfg.Stage2ToxProb
	if inStage1 {
		toxProb = cfg.Stage1ToxProb
	}
	if p.RNG().Bernoulli(siteTBTreatmentToxDraw, p, toxProb) {
		m.AddMortalityRisk(CauseToxicity, 1.2, 0)
	}
}
