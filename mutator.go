package cepac

import "github.com/segmentio/ksuid"

// patientMutator is the single privileged abstraction through which every
// updater mutates patient state. Patient state groups expose read-only
// accessors; all writes, including those that also need to emit a stats
// or trace side-effect, go through the typed setters here. No updater may
// hold a patientMutator beyond the scope of its own call (§9 design
// notes: "friend access to patient state").
type patientMutator struct {
	p      *Patient
	stats  *RunStats
	tracer Tracer
}

func newMutator(p *Patient, stats *RunStats, tracer Tracer) *patientMutator {
	return &patientMutator{p: p, stats: stats, tracer: tracer}
}

func (m *patientMutator) trace(event string, payload string) {
	if m.tracer != nil && m.p.general.tracingEnabled {
		m.tracer.Trace(m.p.id, m.p.month, event, payload)
	}
}

// -- General --

func (m *patientMutator) SetGender(g Gender) { m.p.general.gender = g }

func (m *patientMutator) SetAgeMonths(months int) { m.p.general.ageMonths = months }

func (m *patientMutator) AdvanceAge(months int) { m.p.general.ageMonths += months }

func (m *patientMutator) SetRiskCategory(r int) { m.p.general.riskCategory = r }

func (m *patientMutator) SetRiskFlags(flags []bool) {
	m.p.general.riskFlags = append([]bool(nil), flags...)
}

func (m *patientMutator) SetDiscount(primary DiscountRate, alt []DiscountRate) {
	m.p.general.discount = primary
	m.p.general.altDiscounts = alt
	m.p.general.altCostsDisc = make([]float64, len(alt))
}

func (m *patientMutator) SetBaselineAdherenceLogit(logit float64) {
	m.p.general.baselineAdherenceLogit = logit
}

func (m *patientMutator) StartAdherenceIntervention(index, startMonth, endMonth int, delta float64) {
	g := &m.p.general
	g.adherenceActive = true
	g.adherenceIndex = index
	g.adherenceStartMonth = startMonth
	g.adherenceEndMonth = endMonth
	g.adherenceLogitDelta = delta
	m.trace("ADHERENCE_START", "")
}

func (m *patientMutator) EndAdherenceIntervention() {
	g := &m.p.general
	g.adherenceActive = false
	g.adherenceLogitDelta = 0
	m.trace("ADHERENCE_END", "")
}

func (m *patientMutator) SetTracingEnabled(on bool) { m.p.general.tracingEnabled = on }

// AddCost routes every cost-emitting event through one API (§4.13): it
// discounts for the primary rate (and, if configured, the alternates),
// records the undiscounted total, and gates the subgroup-specific total.
func (m *patientMutator) AddCost(amount float64, subgroups ...CostSubgroup) {
	if amount == 0 {
		return
	}
	g := &m.p.general
	month := m.p.month
	g.costsDiscounted += g.discount.Discount(amount, month)
	for i, d := range g.altDiscounts {
		g.altCostsDisc[i] += d.Discount(amount, month)
	}
	for _, sg := range subgroups {
		g.costsBySubgroup[sg] += g.discount.Discount(amount, month)
	}
	if m.stats != nil {
		m.stats.recordCost(amount, g.discount.Discount(amount, month), subgroups...)
	}
}

// ApplyQOLModifier multiplies the current month's QOL accumulator,
// flooring at 0.
func (m *patientMutator) ApplyQOLModifier(mult float64) {
	g := &m.p.general
	g.monthlyQOL *= mult
	if g.monthlyQOL < 0 {
		g.monthlyQOL = 0
	}
}

func (m *patientMutator) ResetMonthlyQOL(base float64) { m.p.general.monthlyQOL = base }

func (m *patientMutator) AccrueLifeMonths() {
	g := &m.p.general
	month := m.p.month
	g.lifeMonthsUndiscounted++
	disc := g.discount.Discount(1, month)
	g.lifeMonthsDiscounted += disc
	g.qualAdjLifeMonths += g.monthlyQOL * disc
}

// -- Pediatric --

func (m *patientMutator) EnablePediatric(on bool) { m.p.pediatric.enabled = on }

func (m *patientMutator) SetPediatricAgeCategory(c PediatricAgeCategory) {
	m.p.pediatric.ageCategory = c
}

func (m *patientMutator) SetMaternalStatus(status MaternalStatus, onART, onARTKnown, suppressed, suppressKnown bool) {
	pd := &m.p.pediatric
	pd.maternalStatus = status
	pd.maternalOnART = onART
	pd.maternalOnARTKnown = onARTKnown
	pd.maternalSuppressed = suppressed
	pd.maternalSuppressKnown = suppressKnown
}

func (m *patientMutator) SetBreastfeeding(mode BreastfeedingMode, stopAge int) {
	m.p.pediatric.breastfeedingMode = mode
	m.p.pediatric.breastfeedingStopAge = stopAge
}

func (m *patientMutator) EnterEIDSystem() { m.p.pediatric.inEIDSystem = true }

func (m *patientMutator) SetEIDFalsePositive(linked bool) {
	m.p.pediatric.eidFalsePositive = true
	m.p.pediatric.eidFalsePosLinked = linked
}

// ScheduleEIDTest arms the infant's next EID sample for administration at
// the given age in months.
func (m *patientMutator) ScheduleEIDTest(administerAgeMonths int) {
	pd := &m.p.pediatric
	pd.eidResultDueMonth = administerAgeMonths
	pd.eidScheduledResult = true
	pd.eidAwaitingReturn = false
}

// AdministerEIDTest records the drawn (but not yet returned) test outcome
// and arms the return at the given age in months.
func (m *patientMutator) AdministerEIDTest(positive bool, returnAgeMonths int) {
	pd := &m.p.pediatric
	pd.eidPendingResult = positive
	pd.eidResultDueMonth = returnAgeMonths
	pd.eidAwaitingReturn = true
}

// ClearEIDSchedule closes out the EID testing chain once a result has
// been returned and acted on.
func (m *patientMutator) ClearEIDSchedule() {
	pd := &m.p.pediatric
	pd.eidScheduledResult = false
	pd.eidAwaitingReturn = false
}

func (m *patientMutator) SetInfantProph(line int, on bool) {
	if line >= 0 && line < len(m.p.pediatric.infantProph) {
		m.p.pediatric.infantProph[line] = on
	}
}

func (m *patientMutator) SetHEU(exposed, confirmed bool) {
	m.p.pediatric.heuExposed = exposed
	m.p.pediatric.heuConfirmed = confirmed
	m.p.disease.heuFlag = confirmed
}

// -- Disease --

func (m *patientMutator) ClearMortalityRisks() { m.p.disease.mortalityRisks = nil }

func (m *patientMutator) AddMortalityRisk(cause MortalityCause, drr, cost float64) {
	m.p.disease.mortalityRisks = append(m.p.disease.mortalityRisks, MortalityRisk{cause, drr, cost})
	m.trace("MORTALITY_RISK", "")
}

func (m *patientMutator) SetHIVState(s HIVState) {
	m.p.disease.hivState = s
	m.trace("HIV_STATE", "")
}

func (m *patientMutator) SetPediatricHIVState(s PediatricHIVState) { m.p.disease.pedHIVState = s }

func (m *patientMutator) SetMonthOfInfection(month int) { m.p.disease.monthOfInfection = month }

func (m *patientMutator) SetMonthOfAcuteToChronic(month int) {
	m.p.disease.monthOfAcuteToChronic = month
}

func (m *patientMutator) SetTrueCD4(cd4 float64) {
	d := &m.p.disease
	if cd4 < 0 {
		cd4 = 0
	}
	d.cd4 = cd4
	if d.cd4Min == 0 || cd4 < d.cd4Min {
		d.cd4Min = cd4
	}
}

func (m *patientMutator) SetTrueCD4Percent(pct float64) {
	d := &m.p.disease
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	d.cd4Percent = pct
	if d.cd4PctMin == 0 || pct < d.cd4PctMin {
		d.cd4PctMin = pct
	}
}

func (m *patientMutator) SetHVLStratum(s HVLStratum) { m.p.disease.hvlStratum = s }
func (m *patientMutator) SetHVLSetpoint(s HVLStratum) { m.p.disease.hvlSetpoint = s }
func (m *patientMutator) SetHVLTarget(s HVLStratum)   { m.p.disease.hvlTarget = s }

func (m *patientMutator) SetCurrentOI(t OIType) {
	d := &m.p.disease
	d.currentOI = t
	d.hasCurrentOI = true
	d.oiHistory[t] = true
	d.oiHistoryMonth[t] = m.p.month
	m.trace("ACUTE_OI", "")
}

func (m *patientMutator) ClearCurrentOI() {
	m.p.disease.hasCurrentOI = false
}

func (m *patientMutator) SetCHRM(idx int, start int) {
	d := &m.p.disease
	for len(d.chrmFlags) <= idx {
		d.chrmFlags = append(d.chrmFlags, false)
		d.chrmStartMonth = append(d.chrmStartMonth, 0)
	}
	d.chrmFlags[idx] = true
	d.chrmStartMonth[idx] = start
}

func (m *patientMutator) Kill(cause MortalityCause, deathCost float64) {
	d := &m.p.disease
	if !d.alive {
		return
	}
	d.alive = false
	d.causeOfDeath = cause
	m.AddCost(deathCost)
	m.trace("DEATH", "")
	if m.stats != nil {
		m.stats.recordDeath(cause, m.p.month)
	}
}

// -- Monitoring --

func (m *patientMutator) SetDetected(month int) {
	mo := &m.p.monitor
	if mo.detected {
		return
	}
	mo.detected = true
	mo.monthDetected = month
	mo.care = CareUnlinked
	m.trace("DETECTED", "")
}

func (m *patientMutator) SetLinked(month int) {
	mo := &m.p.monitor
	mo.linked = true
	mo.monthLinked = month
	mo.care = CareInCare
	m.trace("LINKED", "")
}

func (m *patientMutator) SetCareState(c CareState) {
	m.p.monitor.care = c
	m.p.monitor.monthOfLastCareTransition = m.p.month
}

func (m *patientMutator) SetPrEPStatus(s PrEPStatus) { m.p.monitor.prepStatus = s }
func (m *patientMutator) IncrementMonthsOnPrEP()     { m.p.monitor.monthsOnPrEP++ }
func (m *patientMutator) ResetMonthsOnPrEP()         { m.p.monitor.monthsOnPrEP = 0 }

func (m *patientMutator) SetObservedCD4(v float64, stratum int) {
	o := &m.p.monitor.observedCD4
	if !o.HasValue || v < o.Min {
		o.Min = v
	}
	o.Value = v
	o.Stratum = stratum
	o.HasValue = true
}

func (m *patientMutator) SetObservedCD4Percent(v float64, stratum int) {
	o := &m.p.monitor.observedCD4Pct
	if !o.HasValue || v < o.Min {
		o.Min = v
	}
	o.Value = v
	o.Stratum = stratum
	o.HasValue = true
}

func (m *patientMutator) SetObservedHVL(s HVLStratum) {
	m.p.monitor.observedHVL = s
	m.p.monitor.hasObservedHVL = true
}

func (m *patientMutator) ScheduleRegularVisit(month int) { m.p.monitor.regularVisitMonth = month }

func (m *patientMutator) ScheduleEmergencyVisit(month int, trigger ClinicVisitTrigger) {
	m.p.monitor.emergencyVisitMonth = month
	m.p.monitor.emergencyTrigger = trigger
}

func (m *patientMutator) SetLTFU(on bool, month int) {
	mo := &m.p.monitor
	mo.ltfu = on
	if on {
		mo.monthOfLTFU = month
		mo.care = CareLTFU
	} else {
		mo.care = CareReturned
	}
	mo.monthOfLastCareTransition = month
	m.trace("LTFU", "")
}

func (m *patientMutator) IncrementObservedOI(t OIType) { m.p.monitor.observedOICounts[t]++ }

// TrackObservedFailureSignals advances this month's CD4-drop/HVL-rise
// consecutive-month counters, resetting whichever signal didn't hold, so
// rollObservedFailure can require a sustained window rather than a
// single snapshot month (§4.6 "Observed failure").
func (m *patientMutator) TrackObservedFailureSignals(cd4Bad, hvlBad bool) {
	a := &m.p.art
	if cd4Bad {
		a.cd4DropMonths++
	} else {
		a.cd4DropMonths = 0
	}
	if hvlBad {
		a.hvlRiseMonths++
	} else {
		a.hvlRiseMonths = 0
	}
}

func (m *patientMutator) ScheduleNextHIVTest(month int) { m.p.monitor.hivTestScheduledMonth = month }

// -- Proph (non-TB) --

func (m *patientMutator) SetProphEligible(on bool)     { m.p.proph.eligible = on }
func (m *patientMutator) SetProphNonCompliant(on bool) { m.p.proph.nonCompliant = on }

func (m *patientMutator) StartProph(t OIType, line int, secondary bool, month int) {
	l := &m.p.proph.lines[t]
	l.onProph = true
	l.lineIndex = line
	l.isSecondary = secondary
	l.startMonth = month
	taken := m.p.proph.everTaken[t]
	for len(taken) <= line {
		taken = append(taken, false)
	}
	taken[line] = true
	m.p.proph.everTaken[t] = taken
	m.trace("PROPH_START", "")
}

func (m *patientMutator) StopProph(t OIType) {
	m.p.proph.lines[t].onProph = false
	m.trace("PROPH_STOP", "")
}

func (m *patientMutator) SetProphResistant(t OIType, on bool) { m.p.proph.lines[t].resistant = on }

// -- ART --

func (m *patientMutator) SetMayReceiveART(on bool) { m.p.art.mayReceive = on }

func (m *patientMutator) StartART(regimen, subRegimen, month int) {
	a := &m.p.art
	if a.haveStartedART {
		a.prevRegimenIndex = a.regimenIndex
	} else {
		a.prevRegimenIndex = -1
	}
	a.onART = true
	a.regimenIndex = regimen
	a.subRegimenIndex = subRegimen
	a.monthOfRegimenStart = month
	a.monthOfSubRegimenStart = month
	if !a.haveStartedART {
		a.monthOfFirstARTStart = month
		a.haveStartedART = true
	}
	a.slopeStage = 0
	a.slopeStageStart = month
	m.trace("ART_START", "")
}

func (m *patientMutator) StopART(reason ARTStopType, month int) {
	a := &m.p.art
	a.onART = false
	a.lastStopType = reason
	m.trace("ART_STOP", "")
}

func (m *patientMutator) SetEfficacy(e EfficacyState, month int) {
	a := &m.p.art
	a.efficacy = e
	a.monthOfEfficacyChange = month
	m.trace("ART_EFFICACY", "")
}

func (m *patientMutator) SetObservedFailure(on bool, failureType int) {
	m.p.art.observedFailed = on
	m.p.art.observedFailureType = failureType
}

func (m *patientMutator) SetResponseLogit(base, withDelta, preDelta float64) {
	a := &m.p.art
	a.responseLogitBase = base
	a.responseLogitWithDelta = withDelta
	a.responseLogitPreDelta = preDelta
}

func (m *patientMutator) SetResponseFactor(o HeterogeneityOutcome, v float64) {
	m.p.art.responseFactors[o] = v
}

func (m *patientMutator) SetCD4Slope(slope float64)        { m.p.art.cd4Slope = slope }
func (m *patientMutator) SetCD4PercentSlope(slope float64) { m.p.art.cd4PctSlope = slope }

func (m *patientMutator) AdvanceSlopeStage(stage, month int) {
	m.p.art.slopeStage = stage
	m.p.art.slopeStageStart = month
}

func (m *patientMutator) SetEnvelope(overall bool, cd4, cd4Pct, slope float64, regimen, stageStart int) {
	env := &m.p.art.envelopeIndividual
	if overall {
		env = &m.p.art.envelopeOverall
	}
	env.active = true
	env.cd4 = cd4
	env.cd4Pct = cd4Pct
	env.slope = slope
	env.regimenIndex = regimen
	env.stageStart = stageStart
}

func (m *patientMutator) SetSTIActive(on bool) { m.p.art.stiActive = on }

// StartSTI begins a structured-treatment-interruption window. The window
// ends only when endSTIIfElapsed (art.go) calls SetSTIActive(false) once
// its configured duration has elapsed.
func (m *patientMutator) StartSTI(month int) {
	m.p.art.stiActive = true
	m.p.art.stiStartMonth = month
	m.trace("STI_START", "")
}

func (m *patientMutator) AddToxicityEffect(e ARTToxicityEffect) {
	m.p.art.toxEffects = append(m.p.art.toxEffects, e)
	m.trace("ART_TOXICITY", "")
}

func (m *patientMutator) SetToxicityEffects(effects []ARTToxicityEffect) {
	m.p.art.toxEffects = effects
}

// -- TB --

func (m *patientMutator) SetTBState(s TBState) {
	m.p.tb.state = s
	m.trace("TB_STATE", "")
}

func (m *patientMutator) SetTBStrain(s TBStrain) {
	m.p.tb.strain = s
	m.p.tb.strainHistory = append(m.p.tb.strainHistory, s)
}

func (m *patientMutator) SetObservedTBStrain(s TBStrain) {
	m.p.tb.observedStrain = s
	m.p.tb.hasObservedStrain = true
}

func (m *patientMutator) SetTBTrackers(sputumHigh, immuneReactive, symptoms bool) {
	t := &m.p.tb.trackers
	t.sputumHigh = sputumHigh
	t.immuneReactive = immuneReactive
	t.symptoms = symptoms
}

func (m *patientMutator) SetTBCareState(c TBCareState) { m.p.tb.care = c }

func (m *patientMutator) SetTBInfected(month int) {
	t := &m.p.tb
	t.hasBeenInfected = true
	t.monthOfInfection = month
}

func (m *patientMutator) SetTBActivationMonth(month int) { m.p.tb.monthOfActivation = month }

// SetTBLineage assigns the opaque lineage handle for the strain the
// patient currently carries; a fresh id marks a new infection event,
// while resistance escalation on an existing infection keeps it.
func (m *patientMutator) SetTBLineage(id ksuid.KSUID) { m.p.tb.lineageID = id }

func (m *patientMutator) StartTBProph(line, month int) {
	p := &m.p.tb.proph
	p.onProph = true
	p.lineIndex = line
	p.startMonth = month
	m.trace("TB_PROPH_START", "")
}

func (m *patientMutator) StopTBProph() {
	m.p.tb.proph.onProph = false
	m.trace("TB_PROPH_STOP", "")
}

func (m *patientMutator) StartTBTreatment(line, month int, empiric bool) {
	t := &m.p.tb.treat
	t.onTreatment = true
	t.line = line
	t.startMonth = month
	t.empiric = empiric
	t.accumulatedMonths = 0
	m.p.tb.everTreated = true
	m.trace("TB_TREATMENT_START", "")
}

func (m *patientMutator) AccumulateTBTreatmentMonth() { m.p.tb.treat.accumulatedMonths++ }

func (m *patientMutator) IncrementTBTreatmentRepeats(line int) {
	if line >= 0 && line < len(m.p.tb.treat.repeatsOnLine) {
		m.p.tb.treat.repeatsOnLine[line]++
	}
}

func (m *patientMutator) StopTBTreatment(month int, success bool) {
	t := &m.p.tb.treat
	t.onTreatment = false
	m.p.tb.monthOfTreatmentEnd = month
	if success {
		m.SetTBState(TBUninfected)
	} else {
		m.SetTBState(TBTreatmentDefault)
	}
	m.trace("TB_TREATMENT_STOP", "")
}

func (m *patientMutator) SetPendingTBTest(resultReturnMonth int) {
	m.p.tb.pendingTestResult = true
	m.p.tb.pendingTestReturnMonth = resultReturnMonth
}

func (m *patientMutator) ClearPendingTBTest() { m.p.tb.pendingTestResult = false }

func (m *patientMutator) SetPendingDST(resultReturnMonth int) {
	m.p.tb.pendingDSTResult = true
	m.p.tb.pendingDSTReturnMonth = resultReturnMonth
}

func (m *patientMutator) ClearPendingDST() { m.p.tb.pendingDSTResult = false }

func (m *patientMutator) SetDiagnosticChainPos(pos int) { m.p.tb.diagnosticChainPos = pos }

func (m *patientMutator) SetUnfavorableOutcome(on bool) { m.p.tb.unfavorableOutcome = on }

// -- Month advance --

func (m *patientMutator) AdvanceMonth() { m.p.month++ }
