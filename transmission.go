package cepac

// dynamicTransmissionIncidence adjusts the base incidence probability to
// reflect the cohort's own running infectiousness rather than a fixed
// input table, once the warmup window has elapsed (§4.11). During
// warmup, incidence is frozen at the configured base rate and every
// HIV-positive patient-month instead feeds
// stats.RecordTransmissionContribution/RecordHIVNegAtStart so the
// aggregate has something to freeze once warmup ends.
func dynamicTransmissionIncidence(p *Patient, ctx *SimContext, stats *RunStats, baseProb float64) float64 {
	if p.Month() < ctx.Transmission.WarmupMonths {
		return baseProb
	}
	infectiousness := stats.FreezeTransmissionInfectiousness()
	rate := ProbToRate(baseProb) * infectiousness
	if mult, ok := ctx.Transmission.TimePeriodMultiplier[p.Month()]; ok {
		rate *= mult
	}
	return RateToProb(rate)
}

// recordTransmissionContribution is called every warmup-window month for
// every alive, HIV-positive patient; it feeds this patient's own
// CD4/HVL-stratum transmission rate (or the acute-state override rate,
// for a patient still in the high-viremia acute window) into the
// cohort-wide Σ_pos aggregate that freezes at the end of warmup (§4.11).
// This replaces looking the rate up against the querying (HIV-negative)
// patient's own always-zero-default stratum.
func recordTransmissionContribution(p *Patient, ctx *SimContext, stats *RunStats) {
	if stats == nil || p.Month() >= ctx.Transmission.WarmupMonths {
		return
	}
	var rate float64
	if p.Disease().HIVState() == HIVAcute {
		rate = ctx.Transmission.AcuteStateOverrideRate
	} else {
		cd4Stratum := cd4StratumIndex(p.Disease().TrueCD4())
		byHVL, ok := ctx.Transmission.RateByCD4HVL[cd4Stratum]
		if !ok {
			return
		}
		rate = byHVL[p.Disease().HVLStratum()]
	}
	stats.RecordTransmissionContribution(rate)
}
