package cepac

// mortalityUpdater composes the month's combined death probability from
// background all-cause mortality and every MortalityRisk accumulated by
// earlier pipeline steps, draws once against that combined probability,
// and, if the patient dies, samples a cause weighted by each risk's
// death-rate ratio (§2 step 7, §4.7). This is the mandatory short-circuit
// step: SimulateMonth stops the pipeline the instant this updater kills
// the patient.
type mortalityUpdater struct{}

func (u *mortalityUpdater) Name() string { return "Mortality" }

func (u *mortalityUpdater) PerformInitialUpdates(p *Patient, ctx *SimContext, m *patientMutator) {}

func (u *mortalityUpdater) PerformMonthlyUpdates(p *Patient, ctx *SimContext, m *patientMutator) {
	if !p.IsAlive() {
		return
	}
	backgroundProb := u.backgroundProb(ctx, p.General().AgeYears(), p.General().Gender())
	risks := p.Disease().MortalityRisks()

	probs := make([]float64, 0, len(risks)+1)
	probs = append(probs, backgroundProb)
	for _, r := range risks {
		probs = append(probs, RateToProb(ProbToRate(backgroundProb)*r.DRR))
	}
	combined := ComposeIndependentProbs(probs)

	if !p.RNG().Bernoulli(siteMortalityDraw, p, combined) {
		return
	}

	cause, deathCost := u.sampleCause(p, ctx, risks, backgroundProb)
	m.Kill(cause, deathCost)
}

// backgroundProb looks up the age/gender background rate and applies the
// cohort-wide multiplier (§4.7).
func (u *mortalityUpdater) backgroundProb(ctx *SimContext, ageYears int, gender Gender) float64 {
	byGender, ok := ctx.Mortality.BackgroundRateByAgeGender[ageYears]
	if !ok {
		return 0
	}
	rate := byGender[gender] * ctx.Mortality.CohortMultiplier
	return RateToProb(rate)
}

// sampleCause draws the responsible cause weighted by each risk's share
// of the combined hazard, falling back to background if no risk fires
// (background mortality is itself a silent, uncosted cause).
func (u *mortalityUpdater) sampleCause(p *Patient, ctx *SimContext, risks []MortalityRisk, backgroundProb float64) (MortalityCause, float64) {
	if len(risks) == 0 {
		return CauseBackground, 0
	}
	weights := make([]float64, len(risks)+1)
	backgroundRate := ProbToRate(backgroundProb)
	weights[0] = backgroundRate
	for i, r := range risks {
		weights[i+1] = backgroundRate * r.DRR
	}
	idx := p.RNG().Categorical(siteMortalityCauseDraw, p, weights)
	if idx <= 0 || idx > len(risks) {
		return CauseBackground, 0
	}
	r := risks[idx-1]
	return r.Cause, r.Cost
}
