package cepac

// beginMonthUpdater resets per-month scratch fields and, on the very
// first simulated month, draws the patient's initial age, gender, risk
// factors, CD4/HVL, and pediatric/maternal priors (§2 step 1, §4.3).
type beginMonthUpdater struct{}

func (u *beginMonthUpdater) Name() string { return "BeginMonth" }

func (u *beginMonthUpdater) PerformInitialUpdates(p *Patient, ctx *SimContext, m *patientMutator) {
	u.sampleDemographics(p, ctx, m)
	u.sampleInitialCD4HVL(p, ctx, m)
	u.sampleRiskFactors(p, ctx, m)
	if ctx.PediatricModuleEnabled {
		u.samplePediatric(p, ctx, m)
	}
	m.SetDiscount(NewDiscountRate(ctx.RNG.DiscountRateAnnual), altDiscounts(ctx))
	m.ClearMortalityRisks()
	m.ResetMonthlyQOL(1.0)
}

func altDiscounts(ctx *SimContext) []DiscountRate {
	out := make([]DiscountRate, len(ctx.RNG.AltDiscountRatesAnnual))
	for i, r := range ctx.RNG.AltDiscountRatesAnnual {
		out[i] = NewDiscountRate(r)
	}
	return out
}

func (u *beginMonthUpdater) sampleDemographics(p *Patient, ctx *SimContext, m *patientMutator) {
	rng := p.RNG()
	var ageMonths int
	if ctx.General.UseCustomAgeDist && len(ctx.General.AgeStrata) > 0 {
		weights := make([]float64, len(ctx.General.AgeStrata))
		for i, s := range ctx.General.AgeStrata {
			weights[i] = s.Weight
		}
		idx := rng.Categorical(siteAgeStratumPick, p, weights)
		if idx < 0 {
			idx = 0
		}
		stratum := ctx.General.AgeStrata[idx]
		span := stratum.MaxMonths - stratum.MinMonths
		ageMonths = stratum.MinMonths + rng.BoundedInt(siteAgeWithinStratum, p, span+1)
	} else {
		draw := rng.Gaussian(siteAgeNormal, p, ctx.General.AgeMean, ctx.General.AgeStdDev)
		if draw < 0 {
			draw = 0
		}
		ageMonths = int(draw * 12)
	}
	m.SetAgeMonths(ageMonths)

	gender := Female
	if rng.Bernoulli(siteGenderDraw, p, ctx.General.MaleFraction) {
		gender = Male
	}
	m.SetGender(gender)

	idx := rng.Categorical(siteInitialHIVState, p, ctx.General.InitialHIVStateWeights[:])
	if idx < 0 {
		idx = int(HIVNegative)
	}
	m.SetHIVState(HIVState(idx))
	if HIVState(idx) != HIVNegative {
		m.SetMonthOfInfection(0)
		if HIVState(idx) != HIVAcute {
			m.SetMonthOfAcuteToChronic(0)
		}
	}
}

func (u *beginMonthUpdater) sampleInitialCD4HVL(p *Patient, ctx *SimContext, m *patientMutator) {
	rng := p.RNG()
	if p.Disease().HIVState() == HIVNegative {
		return
	}
	var cd4 float64
	if ctx.General.CD4SqrtTransform {
		sq := rng.Gaussian(siteCD4Sqrt, p, sqrtF(ctx.General.CD4Mean), ctx.General.CD4StdDev)
		if sq < 0 {
			sq = 0
		}
		cd4 = sq * sq
	} else {
		cd4 = rng.Gaussian(siteCD4Normal, p, ctx.General.CD4Mean, ctx.General.CD4StdDev)
	}
	if cd4 < 0 {
		cd4 = 0
	}
	if ctx.General.CD4Max > 0 && cd4 > ctx.General.CD4Max {
		cd4 = ctx.General.CD4Max
	}
	m.SetTrueCD4(cd4)

	cd4Stratum := cd4StratumIndex(cd4)
	weights, ok := ctx.General.HVLDistByCD4Stratum[cd4Stratum]
	var hvl HVLStratum
	if ok {
		idx := rng.Categorical(siteHVLInitial, p, weights[:])
		if idx >= 0 {
			hvl = HVLStratum(idx)
		}
	}
	m.SetHVLStratum(hvl)
	m.SetHVLSetpoint(hvl)
	m.SetHVLTarget(hvl)
}

func (u *beginMonthUpdater) sampleRiskFactors(p *Patient, ctx *SimContext, m *patientMutator) {
	rng := p.RNG()
	flags := make([]bool, len(ctx.General.RiskCategoryProbs))
	for i, prob := range ctx.General.RiskCategoryProbs {
		flags[i] = rng.Bernoulli(siteRiskFactor+i, p, prob)
	}
	m.SetRiskFlags(flags)
}

func (u *beginMonthUpdater) samplePediatric(p *Patient, ctx *SimContext, m *patientMutator) {
	rng := p.RNG()
	m.EnablePediatric(true)
	idx := rng.Categorical(siteMaternalStatus, p, ctx.Pediatric.MaternalStatusWeights[:])
	if idx < 0 {
		idx = 0
	}
	status := MaternalStatus(idx)
	onART := status != MaternalNegative && rng.Bernoulli(siteMaternalART, p, 0.5)
	suppressed := onART && rng.Bernoulli(siteMaternalSuppress, p, 0.5)
	m.SetMaternalStatus(status, onART, true, suppressed, true)

	bfIdx := rng.Categorical(siteBreastfeeding, p, ctx.Pediatric.BreastfeedingWeights[:])
	if bfIdx < 0 {
		bfIdx = 0
	}
	m.SetBreastfeeding(BreastfeedingMode(bfIdx), ctx.Pediatric.DefaultBreastfeedingStopAgeMonths)

	m.SetPediatricAgeCategory(pediatricAgeCategoryFor(p.General().AgeMonths()))
}

func (u *beginMonthUpdater) PerformMonthlyUpdates(p *Patient, ctx *SimContext, m *patientMutator) {
	m.ClearMortalityRisks()
	m.ResetMonthlyQOL(1.0)
	m.ClearCurrentOI()
}

func sqrtF(v float64) float64 {
	if v < 0 {
		return 0
	}
	lo, hi := 0.0, v+1
	for i := 0; i < 60; i++ {
		mid := (lo + hi) / 2
		if mid*mid > v {
			hi = mid
		} else {
			lo = mid
		}
	}
	return lo
}

func cd4StratumIndex(cd4 float64) int {
	switch {
	case cd4 < 50:
		return 0
	case cd4 < 100:
		return 1
	case cd4 < 200:
		return 2
	case cd4 < 350:
		return 3
	case cd4 < 500:
		return 4
	default:
		return 5
	}
}

func pediatricAgeCategoryFor(ageMonths int) PediatricAgeCategory {
	switch {
	case ageMonths < 12:
		return AgeUnder1
	case ageMonths < 24:
		return Age1to2
	case ageMonths < 60:
		return Age2to5
	case ageMonths < 144:
		return Age5to12
	case ageMonths < 216:
		return Age12to18
	default:
		return AgeAdult
	}
}
