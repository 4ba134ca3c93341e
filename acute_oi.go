package cepac

// acuteOIUpdater selects at most one acute opportunistic infection per
// month via a single fixed-order walk of the OI catalog (§2 step 6,
// §4.5). Each OI gets one independent Bernoulli roll against its
// CD4-stratum base probability, adjusted for ART and the "log gate"
// window; the first OI to fire wins and short-circuits the walk, so a
// patient never contracts two acute OIs in the same month.
type acuteOIUpdater struct{}

func (u *acuteOIUpdater) Name() string { return "AcuteOI" }

func (u *acuteOIUpdater) PerformInitialUpdates(p *Patient, ctx *SimContext, m *patientMutator) {}

func (u *acuteOIUpdater) PerformMonthlyUpdates(p *Patient, ctx *SimContext, m *patientMutator) {
	if !p.IsAlive() {
		return
	}
	m.ClearCurrentOI()
	cd4Stratum := cd4StratumIndex(p.Disease().TrueCD4())

	for oi := OIType(0); oi < OIType(numOITypes); oi++ {
		if oi == OITuberculosisAsOI && !ctx.TBAsGenericOIWhenDisabled {
			continue
		}
		if oi == OITuberculosisAsOI && ctx.TBModuleEnabled {
			// REDESIGN FLAG (iii): the dedicated TB module owns TB natural
			// history whenever it is enabled; the generic-OI slot only
			// substitutes for it when the module is off.
			continue
		}
		probs, ok := ctx.OI.BaseProbByCD4Stratum[oi]
		if !ok {
			continue
		}
		prob, ok := probs[cd4Stratum]
		if !ok || prob <= 0 {
			continue
		}
		if u.logGateExcludes(ctx, oi, p.Disease().TrueCD4()) {
			continue
		}
		if p.ART().OnART() {
			if mult, ok := ctx.OI.ARTMultiplier[oi]; ok {
				prob *= mult
			}
			prob *= p.ART().ResponseFactor(OutcomeARTEffectOI)
		}
		if !p.RNG().Bernoulli(siteAcuteOIDraw+int(oi), p, prob) {
			continue
		}
		u.onOI(p, ctx, m, oi)
		return
	}
}

// logGateExcludes implements the CD4-banded "log gate" that suppresses a
// configured subset of OIs inside a particular CD4 window
// [LogGateCD4Min, LogGateCD4Max], avoiding
// double-counting against the dedicated natural-history modules that
// cover them inside that window (§4.5).
func (u *acuteOIUpdater) logGateExcludes(ctx *SimContext, oi OIType, cd4 float64) bool {
	if !ctx.OI.LogGateExcluded[oi] {
		return false
	}
	return cd4 >= ctx.OI.LogGateCD4Min && cd4 <= ctx.OI.LogGateCD4Max
}

func (u *acuteOIUpdater) onOI(p *Patient, ctx *SimContext, m *patientMutator, oi OIType) {
	alreadyHad := p.Disease().HadOI(oi)
	m.SetCurrentOI(oi)
	if drr, ok := ctx.OI.DeathRateRatio[oi]; ok && drr > 1 {
		m.AddMortalityRisk(CauseOI, drr, 0)
	}
	if m.stats != nil {
		m.stats.RecordOI(oi)
	}
	if prob, ok := ctx.Testing.OIDetectionProb[oi]; ok && p.RNG().Bernoulli(siteOIObservedDraw+int(oi), p, prob) {
		m.IncrementObservedOI(oi)
		if p.Monitoring().CareState() == CareInCare {
			m.ScheduleEmergencyVisit(p.Month(), TriggerOI)
		}
	}
	if !alreadyHad {
		return
	}
	if residual, ok := ctx.OI.ResidualDRR[oi]; ok && residual > 1 {
		m.AddMortalityRisk(CauseOI, residual, 0)
	}
}
