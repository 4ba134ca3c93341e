package cepac

// Patient is the aggregate root of all per-person simulation state. It
// owns seven state groups exclusively; updaters borrow mutable access for
// the duration of a single pipeline step through a patientMutator and
// never retain that access beyond the call, per §5's ordering guarantees.
type Patient struct {
	id    int
	month int

	general   generalState
	pediatric pediatricState
	disease   diseaseState
	monitor   monitoringState
	proph     prophState
	art       artState
	tb        tbState

	rng *Stream

	initialized bool
}

// NewPatient creates an unseeded patient shell. SimulateMonth runs
// PerformInitialUpdates first if it has not yet run for the patient.
func NewPatient(id int, rng *Stream) *Patient {
	p := &Patient{id: id, rng: rng}
	p.disease.alive = true
	return p
}

// ID returns the patient's unique identifier.
func (p *Patient) ID() int { return p.id }

// Month returns the current simulated month number (0 at creation).
func (p *Patient) Month() int { return p.month }

// IsAlive reports whether the patient is still alive. Once false, no
// field of any state group may change (§8 invariant 6).
func (p *Patient) IsAlive() bool { return p.disease.alive }

// General exposes the read-only general state group.
func (p *Patient) General() *generalState { return &p.general }

// Pediatric exposes the read-only pediatric state group.
func (p *Patient) Pediatric() *pediatricState { return &p.pediatric }

// Disease exposes the read-only disease state group.
func (p *Patient) Disease() *diseaseState { return &p.disease }

// Monitoring exposes the read-only monitoring state group.
func (p *Patient) Monitoring() *monitoringState { return &p.monitor }

// Proph exposes the read-only non-TB prophylaxis state group.
func (p *Patient) Proph() *prophState { return &p.proph }

// ART exposes the read-only ART state group.
func (p *Patient) ART() *artState { return &p.art }

// TB exposes the read-only TB state group.
func (p *Patient) TB() *tbState { return &p.tb }

// RNG returns the patient's private draw stream.
func (p *Patient) RNG() *Stream { return p.rng }
