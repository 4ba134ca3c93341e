package cepac

// tbClinicalUpdater drives the TB-specific care continuum: diagnostic
// chain traversal (accept/pickup/result/return-delay), treatment
// initiation and monthly progress, TB proph start policy, and TB-specific
// LTFU/RTC when the HIV and TB clinics are not integrated (§2 step 14,
// §4.9).
type tbClinicalUpdater struct{}

func (u *tbClinicalUpdater) Name() string { return "TBClinical" }

func (u *tbClinicalUpdater) PerformInitialUpdates(p *Patient, ctx *SimContext, m *patientMutator) {}

func (u *tbClinicalUpdater) PerformMonthlyUpdates(p *Patient, ctx *SimContext, m *patientMutator) {
	if !p.IsAlive() || !ctx.TBModuleEnabled {
		return
	}
	if !ctx.TB.IntegratedHIVTBClinic {
		u.rollTBCareContinuum(p, ctx, m)
		if p.TB().CareState() != TBCareInCare && p.TB().CareState() != TBCareRTC {
			return
		}
	}

	if p.TB().OnTreatment() {
		u.advanceTreatment(p, ctx, m)
		return
	}
	if p.TB().OnProph() {
		u.evaluateTBProphStop(p, ctx, m)
	}
	if p.TB().pendingDSTResult {
		u.resolvePendingDST(p, ctx, m)
		return
	}
	if p.TB().pendingTestResult {
		u.resolvePendingTest(p, ctx, m)
		return
	}
	u.walkDiagnosticChain(p, ctx, m)
	u.evaluateTBProph(p, ctx, m)
}

func (u *tbClinicalUpdater) rollTBCareContinuum(p *Patient, ctx *SimContext, m *patientMutator) {
	switch p.TB().CareState() {
	case TBCareInCare, TBCareRTC:
		prob := ctx.TB.LTFUProbByStage[p.TB().State()]
		if p.Month()-p.TB().MonthOfActivation() > ctx.TB.MaxMonthsLTFU && ctx.TB.MaxMonthsLTFU > 0 {
			m.SetTBCareState(TBCareLTFU)
			return
		}
		if p.RNG().Bernoulli(siteTBLTFUDraw, p, prob) {
			m.SetTBCareState(TBCareLTFU)
		}
	case TBCareLTFU:
		prob := ctx.TB.RTCProbByHIVState[p.Disease().HIVState()]
		if p.RNG().Bernoulli(siteTBRTCDraw, p, prob) {
			m.SetTBCareState(TBCareRTC)
		}
	case TBCareUnlinked:
		m.SetTBCareState(TBCareInCare)
	}
}

// walkDiagnosticChain advances the patient one step through the ordered
// diagnostic-test chain: accept, pickup, sample, and (after the
// configured delay) a result that either confirms/rules out TB or routes
// to the next test in the chain.
func (u *tbClinicalUpdater) walkDiagnosticChain(p *Patient, ctx *SimContext, m *patientMutator) {
	pos := p.TB().diagnosticChainPos
	if pos < 0 || pos >= len(ctx.TB.DiagnosticChain) {
		return
	}
	test := ctx.TB.DiagnosticChain[pos]
	if test.RequireSymptoms && !p.TB().Symptoms() {
		return
	}
	if test.CalendarMonthMin > 0 && p.Month() < test.CalendarMonthMin {
		return
	}
	if !p.RNG().Bernoulli(siteTBTestAccept, p, test.AcceptProb) {
		return
	}
	if !p.RNG().Bernoulli(siteTBTestPickup, p, test.PickupProb) {
		if test.ResetOnNoPickup {
			m.SetDiagnosticChainPos(0)
		}
		return
	}
	m.AddCost(test.Cost)
	m.SetPendingTBTest(p.Month() + test.ReturnDelayMonths)
}

func (u *tbClinicalUpdater) resolvePendingTest(p *Patient, ctx *SimContext, m *patientMutator) {
	if p.Month() < p.TB().pendingTestReturnMonth {
		return
	}
	m.ClearPendingTBTest()
	pos := p.TB().diagnosticChainPos
	if pos < 0 || pos >= len(ctx.TB.DiagnosticChain) {
		return
	}
	test := ctx.TB.DiagnosticChain[pos]

	sensitivity := test.SensitivityByState[p.TB().State()]
	var positive bool
	if p.TB().State() == TBActivePulm || p.TB().State() == TBActiveExtrapulm {
		positive = p.RNG().Bernoulli(siteTBTestResult, p, sensitivity)
	} else {
		positive = p.RNG().Bernoulli(siteTBTestResult, p, 1-test.Specificity)
	}

	if positive {
		if test.EmpiricStartOnPositiveProb > 0 && p.RNG().Bernoulli(siteTBTreatmentLineDraw, p, test.EmpiricStartOnPositiveProb) {
			u.startTreatment(p, ctx, m, true)
			return
		}
		if test.NextOnPositive >= 0 {
			m.SetDiagnosticChainPos(test.NextOnPositive)
			return
		}
		if test.IncludesDST {
			m.SetPendingDST(p.Month() + test.DSTReturnDelayMonths)
			return
		}
		u.startTreatment(p, ctx, m, false)
		return
	}
	if test.EmpiricStopOnNegativeProb > 0 && p.TB().EmpiricTreatment() {
		return
	}
	if test.NextOnNegative >= 0 {
		m.SetDiagnosticChainPos(test.NextOnNegative)
		return
	}
	m.SetDiagnosticChainPos(0)
}

// resolvePendingDST returns the drug-susceptibility result scheduled by a
// positive IncludesDST test: it populates the observed strain (read by
// reporting/monitoring rather than by initialLine, which still keys off
// the true strain) and then starts treatment on the confirmed diagnosis
// (§4.9).
func (u *tbClinicalUpdater) resolvePendingDST(p *Patient, ctx *SimContext, m *patientMutator) {
	if p.Month() < p.TB().pendingDSTReturnMonth {
		return
	}
	m.ClearPendingDST()
	m.SetObservedTBStrain(p.TB().Strain())
	u.startTreatment(p, ctx, m, false)
}

func (u *tbClinicalUpdater) startTreatment(p *Patient, ctx *SimContext, m *patientMutator, empiric bool) {
	line := u.initialLine(p, ctx)
	m.StartTBTreatment(line, p.Month(), empiric)
	if p.Monitoring().CareState() == CareInCare {
		m.ScheduleEmergencyVisit(p.Month(), TriggerTBDiagnosis)
	}
}

func (u *tbClinicalUpdater) initialLine(p *Patient, ctx *SimContext) int {
	strain := p.TB().Strain()
	best, bestWeight := 0, -1.0
	for i, l := range ctx.TB.Treatment {
		if w, ok := l.InitialLineWeightByStrain[strain]; ok && w > bestWeight {
			best, bestWeight = i, w
		}
	}
	return best
}

func (u *tbClinicalUpdater) advanceTreatment(p *Patient, ctx *SimContext, m *patientMutator) {
	line := p.TB().TreatmentLine()
	if line < 0 || line >= len(ctx.TB.Treatment) {
		return
	}
	cfg := ctx.TB.Treatment[line]
	m.AccumulateTBTreatmentMonth()
	elapsed := p.TB().treat.accumulatedMonths
	totalMonths := cfg.Stage1Months + cfg.Stage2Months

	if cfg.EarlyObservedFailureMonth > 0 && elapsed == cfg.EarlyObservedFailureMonth {
		cd4Stratum := cd4StratumIndex(p.Disease().TrueCD4())
		successProb := cfg.SuccessProbByHIVCD4[cd4Stratum]
		if !p.RNG().Bernoulli(siteTBTreatmentSuccessDraw, p, successProb) {
			u.failTreatment(p, ctx, m, line, cfg)
			return
		}
	}

	if elapsed < totalMonths {
		return
	}
	cd4Stratum := cd4StratumIndex(p.Disease().TrueCD4())
	successProb := cfg.SuccessProbByHIVCD4[cd4Stratum]
	if p.RNG().Bernoulli(siteTBTreatmentSuccessDraw, p, successProb) {
		m.StopTBTreatment(p.Month(), true)
		return
	}
	u.failTreatment(p, ctx, m, line, cfg)
}

func (u *tbClinicalUpdater) failTreatment(p *Patient, ctx *SimContext, m *patientMutator, line int, cfg TBTreatmentLine) {
	if p.RNG().Bernoulli(siteTBTreatmentLineDraw, p, cfg.ResistanceIncreaseProbOnFailure) {
		u.escalateStrain(p, m)
	}
	if p.TB().TreatmentRepeatsOnLine(line) < cfg.MaxRepeats {
		m.IncrementTBTreatmentRepeats(line)
		m.StopTBTreatment(p.Month(), false)
		m.StartTBTreatment(line, p.Month(), false)
		return
	}
	m.StopTBTreatment(p.Month(), false)
}

func (u *tbClinicalUpdater) escalateStrain(p *Patient, m *patientMutator) {
	if p.TB().Strain() < StrainXDR {
		m.SetTBStrain(p.TB().Strain() + 1)
		m.trace("TB_RESISTANCE_ESCALATION", p.TB().LineageID().String())
	}
}

func (u *tbClinicalUpdater) evaluateTBProph(p *Patient, ctx *SimContext, m *patientMutator) {
	if p.TB().OnProph() || p.TB().State() != TBUninfected && p.TB().State() != TBLatent {
		return
	}
	for i, line := range ctx.TB.ProphLines {
		if line.KnownHIVPositiveOnly && !p.Monitoring().Detected() {
			continue
		}
		if line.RequireOnART && !p.ART().OnART() {
			continue
		}
		if line.ObservedCD4Max > 0 {
			observed := p.Monitoring().ObservedCD4()
			if observed.HasValue && observed.Value > line.ObservedCD4Max {
				continue
			}
		}
		if p.RNG().Bernoulli(siteTBProphStartDraw, p, line.StartProb) {
			m.StartTBProph(i, p.Month())
			return
		}
	}
}

// evaluateTBProphStop checks the active TB-proph line's duration cap;
// its major-toxicity-driven stop is decided where the toxicity draw
// already happens, in drugToxicityUpdater.rollTBProphToxicity (§4.9).
func (u *tbClinicalUpdater) evaluateTBProphStop(p *Patient, ctx *SimContext, m *patientMutator) {
	line := p.TB().ProphLine()
	if line < 0 || line >= len(ctx.TB.ProphLines) {
		return
	}
	cfg := ctx.TB.ProphLines[line]
	elapsed := p.Month() - p.TB().proph.startMonth
	if cfg.MaxMonthsOnProph > 0 && elapsed >= cfg.MaxMonthsOnProph {
		m.StopTBProph()
	}
}
