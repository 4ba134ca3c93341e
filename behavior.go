package cepac

// behaviorUpdater drives the sequential adherence-intervention schedule
// and the LTFU / return-to-care logistic regressions (§2 step 10,
// §4.12).
type behaviorUpdater struct{}

func (u *behaviorUpdater) Name() string { return "Behavior" }

func (u *behaviorUpdater) PerformInitialUpdates(p *Patient, ctx *SimContext, m *patientMutator) {}

func (u *behaviorUpdater) PerformMonthlyUpdates(p *Patient, ctx *SimContext, m *patientMutator) {
	if !p.IsAlive() {
		return
	}
	u.advanceInterventions(p, ctx, m)

	if p.Monitoring().CareState() == CareInCare {
		u.rollLTFU(p, ctx, m)
	} else if p.Monitoring().IsLTFU() {
		u.rollRTC(p, ctx, m)
	}
}

// advanceInterventions starts the next configured intervention once the
// previous one (if any) has ended, and ends the active one once its
// sampled duration elapses.
func (u *behaviorUpdater) advanceInterventions(p *Patient, ctx *SimContext, m *patientMutator) {
	if !p.general.adherenceActive {
		idx := p.general.adherenceIndex
		if idx >= len(ctx.Behavior.Interventions) {
			return
		}
		cfg := ctx.Behavior.Interventions[idx]
		duration := p.RNG().TruncatedGaussian(siteAdherenceDuration, p, cfg.DurationMean, cfg.DurationStdDev, 0)
		var delta float64
		switch cfg.DistributionKind {
		case "truncated-normal":
			delta = p.RNG().TruncatedGaussian(siteAdherenceLogit, p, cfg.LogitMean, cfg.LogitStdDev, 0)
		case "squared-normal":
			delta = p.RNG().SquaredGaussian(siteAdherenceLogit, p, cfg.LogitMean, cfg.LogitStdDev)
		default:
			delta = p.RNG().Gaussian(siteAdherenceLogit, p, cfg.LogitMean, cfg.LogitStdDev)
		}
		m.StartAdherenceIntervention(idx, p.Month(), p.Month()+int(duration), delta)
		m.AddCost(cfg.StartCost)
		return
	}
	if p.Month() >= p.general.adherenceEndMonth {
		m.EndAdherenceIntervention()
		p.general.adherenceIndex++
		return
	}
	idx := p.general.adherenceIndex
	if idx < len(ctx.Behavior.Interventions) {
		m.AddCost(ctx.Behavior.Interventions[idx].MonthlyCost)
	}
}

func (u *behaviorUpdater) rollLTFU(p *Patient, ctx *SimContext, m *patientMutator) {
	w := ctx.Behavior.LTFUCovariateWeights
	logit := w.Intercept
	logit += w.Age * float64(p.General().AgeYears())
	logit += w.CD4 * p.Disease().TrueCD4()
	if p.General().Gender() == Male {
		logit += w.Gender
	}
	if u.hasAnyOIHistory(p) {
		logit += w.OIHistory
	}
	if len(p.ART().ToxicityEffects()) > 0 {
		logit += w.PriorToxicity
	}
	logit += w.RiskFactor * float64(p.General().RiskCategory())

	prob := PiecewiseLinearResponse(LogitToProb(logit), ctx.Behavior.LTFUThreshold.L1, ctx.Behavior.LTFUThreshold.L2, ctx.Behavior.LTFUThreshold.Lo, ctx.Behavior.LTFUThreshold.Hi)
	if p.RNG().Bernoulli(siteLTFUDraw, p, prob) {
		m.SetLTFU(true, p.Month())
	}
}

func (u *behaviorUpdater) rollRTC(p *Patient, ctx *SimContext, m *patientMutator) {
	w := ctx.Behavior.RTCWeights
	logit := w.Background
	if p.Disease().TrueCD4() < w.CD4Threshold {
		logit += w.LowCD4Coefficient
	}
	if oi, ok := p.Disease().CurrentOI(); ok {
		if oi == OIPCP || oi == OIMAC || oi == OICryptococcosis {
			logit += w.AcuteSevereOI
		} else {
			logit += w.AcuteMildOI
		}
	}
	if p.TB().State() == TBActivePulm || p.TB().State() == TBActiveExtrapulm {
		logit += w.TBPositive
	}
	prob := LogitToProb(logit)
	if p.RNG().Bernoulli(siteRTCDraw, p, prob) {
		m.SetLTFU(false, p.Month())
	}
}

func (u *behaviorUpdater) hasAnyOIHistory(p *Patient) bool {
	for oi := OIType(0); oi < OIType(numOITypes); oi++ {
		if p.Disease().HadOI(oi) {
			return true
		}
	}
	return false
}
