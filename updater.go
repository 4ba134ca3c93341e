package cepac

// Updater is one step of the fixed monthly pipeline (§2, §9: "a fixed,
// ordered set of subsystems, not a plugin graph"). PerformMonthlyUpdates
// is a pure function of (patient, ctx, month) that may mutate the
// patient's state, mortality-risk list, and stats through the supplied
// mutator; it must not retain m beyond the call (§5).
type Updater interface {
	Name() string
	// PerformInitialUpdates runs once, in pipeline order, before the
	// first SimulateMonth call.
	PerformInitialUpdates(p *Patient, ctx *SimContext, m *patientMutator)
	// PerformMonthlyUpdates runs every month, in pipeline order.
	PerformMonthlyUpdates(p *Patient, ctx *SimContext, m *patientMutator)
}

// Pipeline is the static, ordered table of updaters executed every month,
// per the 15-step sequence in §2. A straight-line call sequence over this
// table is preferred to dynamic dispatch per §9's design notes; the slice
// itself is the one piece of indirection needed to keep PerformInitialUpdates
// and SimulateMonth from duplicating the 15-step order.
var Pipeline = []Updater{
	&beginMonthUpdater{},
	&hivInfectionUpdater{},
	&chrmsUpdater{},
	&drugToxicityUpdater{},
	&tbDiseaseUpdater{},
	&acuteOIUpdater{},
	&mortalityUpdater{},
	&cd4hvlUpdater{},
	&hivTestingUpdater{},
	&behaviorUpdater{},
	&drugEfficacyUpdater{},
	&labTestUpdater{},
	&clinicVisitUpdater{},
	&tbClinicalUpdater{},
	&endMonthUpdater{},
}

// mortalityStepIndex is the index within Pipeline of the Mortality
// updater; SimulateMonth short-circuits immediately after it if the
// patient has died, per §2's mandatory short-circuit (a).
const mortalityStepIndex = 6

// PerformInitialUpdates runs every updater's one-shot initializer in
// pipeline order (§4.2).
func PerformInitialUpdates(p *Patient, ctx *SimContext, stats *RunStats, tracer Tracer) {
	m := newMutator(p, stats, tracer)
	for _, u := range Pipeline {
		u.PerformInitialUpdates(p, ctx, m)
	}
	p.initialized = true
}

// SimulateMonth advances the patient by one month, running each updater
// in pipeline order and stopping immediately if Mortality kills the
// patient (§2, §5 cancellation semantics: death is a clean short-circuit
// with no partial commit beyond what already happened earlier in the
// same month).
func SimulateMonth(p *Patient, ctx *SimContext, stats *RunStats, tracer Tracer) {
	if !p.initialized {
		PerformInitialUpdates(p, ctx, stats, tracer)
	}
	m := newMutator(p, stats, tracer)
	for i, u := range Pipeline {
		u.PerformMonthlyUpdates(p, ctx, m)
		if i == mortalityStepIndex && !p.IsAlive() {
			stats.RecordPatientFinalized(p)
			return
		}
	}
}

// RunPatient advances p month-by-month until it dies, up to maxMonths as
// a backstop against misconfigured inputs that never terminate a patient.
func RunPatient(p *Patient, ctx *SimContext, stats *RunStats, tracer Tracer, maxMonths int) {
	PerformInitialUpdates(p, ctx, stats, tracer)
	for month := 0; month < maxMonths && p.IsAlive(); month++ {
		SimulateMonth(p, ctx, stats, tracer)
	}
	if p.IsAlive() {
		stats.RecordPatientFinalized(p)
	}
}
