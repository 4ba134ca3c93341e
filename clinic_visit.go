package cepac

// clinicVisitUpdater is the policy hub for regular and emergency clinic
// visits: it starts or switches ART per the eligibility/stop-policy
// machinery in art.go, starts/stops non-TB OI prophylaxis per proph.go,
// schedules the next lab draw, and applies the visit's own cost (§2 step
// 13, §4.6, §4.8).
type clinicVisitUpdater struct{}

func (u *clinicVisitUpdater) Name() string { return "ClinicVisit" }

func (u *clinicVisitUpdater) PerformInitialUpdates(p *Patient, ctx *SimContext, m *patientMutator) {}

func (u *clinicVisitUpdater) PerformMonthlyUpdates(p *Patient, ctx *SimContext, m *patientMutator) {
	if !p.IsAlive() || p.Monitoring().CareState() != CareInCare {
		return
	}
	isVisit := p.Month() == p.monitor.regularVisitMonth || p.Month() == p.monitor.emergencyVisitMonth
	if !isVisit {
		return
	}
	m.AddCost(ctx.Cost.ClinicVisitCost, SubgroupPreART)

	u.evaluateART(p, ctx, m)
	u.evaluateProph(p, ctx, m)
	u.scheduleNextVisit(p, ctx, m)
}

func (u *clinicVisitUpdater) evaluateART(p *Patient, ctx *SimContext, m *patientMutator) {
	endSTIIfElapsed(p, ctx, m)

	if p.ART().OnART() {
		if stop := evaluateStopPolicy(p, ctx); stop != StopNone {
			m.StopART(stop, p.Month())
			if stop == StopObservedFailure || stop == StopChronicToxicitySwitch {
				if eligibleForART(p, ctx) {
					initiateART(p, ctx, m)
				}
			}
			return
		}
		evaluateSTIStart(p, ctx, m)
		return
	}
	if eligibleForART(p, ctx) {
		initiateART(p, ctx, m)
	}
}

func (u *clinicVisitUpdater) evaluateProph(p *Patient, ctx *SimContext, m *patientMutator) {
	for oi := OIType(0); oi < OIType(numOITypes); oi++ {
		if p.Proph().OnProph(oi) {
			if evaluateProphStop(p, ctx, oi) {
				m.StopProph(oi)
			}
			continue
		}
		if line := evaluateProphStart(p, ctx, oi); line >= 0 {
			secondary := p.Disease().HadOI(oi)
			m.StartProph(oi, line, secondary, p.Month())
		}
	}
}

func (u *clinicVisitUpdater) scheduleNextVisit(p *Patient, ctx *SimContext, m *patientMutator) {
	const routineIntervalMonths = 3
	m.ScheduleRegularVisit(p.Month() + routineIntervalMonths)
}
