package cepac

import "sync"

// RunStats is the aggregator that every updater may emit events into. It
// is either sharded per worker goroutine with a final Merge, or guarded
// by a single lock at the stats-commit boundary, per §5's resource model.
// All stat objects are borrowed, non-owning references from the patient's
// point of view.
type RunStats struct {
	mu sync.Mutex

	numPatients int

	totalCostsUndiscounted float64
	totalCostsDiscounted   float64

	totalLifeMonthsUndiscounted float64
	totalLifeMonthsDiscounted   float64
	totalQALMs                  float64

	deathsByCause map[MortalityCause]int
	deathMonths   []int

	incidentHIVInfectionsByMonth map[int]int
	hivNegAtStartByMonth         map[int]int

	oiCounts  map[OIType]int
	tbEvents  map[TBState]int

	costsBySubgroupDiscounted map[CostSubgroup]float64

	// transmissionNumerator accumulates Σ_pos transmRate(CD4_pos,HVL_pos)
	// over the warmup window (§4.11); frozen once the warmup elapses.
	transmissionNumerator float64
	transmissionFrozen    bool
	frozenInfectiousness  float64
}

// NewRunStats creates an empty aggregator.
func NewRunStats() *RunStats {
	return &RunStats{
		deathsByCause:                 make(map[MortalityCause]int),
		incidentHIVInfectionsByMonth:  make(map[int]int),
		hivNegAtStartByMonth:          make(map[int]int),
		oiCounts:                      make(map[OIType]int),
		tbEvents:                      make(map[TBState]int),
		costsBySubgroupDiscounted:     make(map[CostSubgroup]float64),
	}
}

func (s *RunStats) recordCost(undiscounted, discounted float64, subgroups ...CostSubgroup) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totalCostsUndiscounted += undiscounted
	s.totalCostsDiscounted += discounted
	for _, sg := range subgroups {
		s.costsBySubgroupDiscounted[sg] += discounted
	}
}

// CostsBySubgroup returns a copy of the cohort-wide discounted cost total
// for each tracked subgroup.
func (s *RunStats) CostsBySubgroup() map[CostSubgroup]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[CostSubgroup]float64, len(s.costsBySubgroupDiscounted))
	for sg, v := range s.costsBySubgroupDiscounted {
		out[sg] = v
	}
	return out
}

func (s *RunStats) recordDeath(cause MortalityCause, month int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deathsByCause[cause]++
	s.deathMonths = append(s.deathMonths, month)
}

// RecordLifeMonth accounts one month of survival for the end-of-month
// time-series stats (§4.13).
func (s *RunStats) RecordLifeMonth(undiscounted, discounted, qalm float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totalLifeMonthsUndiscounted += undiscounted
	s.totalLifeMonthsDiscounted += discounted
	s.totalQALMs += qalm
}

// RecordIncidentHIVInfection increments the per-calendar-month incidence
// counter used by the dynamic-transmission warmup freeze (§4.11).
func (s *RunStats) RecordIncidentHIVInfection(month int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.incidentHIVInfectionsByMonth[month]++
}

// RecordHIVNegAtStart increments the per-calendar-month HIV-negative
// denominator used alongside RecordIncidentHIVInfection.
func (s *RunStats) RecordHIVNegAtStart(month int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hivNegAtStartByMonth[month]++
}

// RecordTransmissionContribution adds one HIV-positive patient-month's
// transmission-rate contribution to the warmup-window aggregate used by
// the dynamic-transmission self-transmission multiplier (§4.11). Calls
// after the aggregate has been frozen are kept (for Merge correctness)
// but no longer affect FreezeTransmissionInfectiousness's return value.
func (s *RunStats) RecordTransmissionContribution(rate float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transmissionNumerator += rate
}

// FreezeTransmissionInfectiousness computes, on its first call, the
// warmup-window aggregate infectiousness
//
//	(Σ_pos transmRate(CD4_pos,HVL_pos)) / nNeg
//
// from the contributions and HIV-negative-at-start counts accumulated so
// far, and freezes it: every later call returns the same value regardless
// of further RecordTransmissionContribution/RecordHIVNegAtStart calls
// (§4.11).
func (s *RunStats) FreezeTransmissionInfectiousness() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.transmissionFrozen {
		return s.frozenInfectiousness
	}
	nNeg := 0
	for _, n := range s.hivNegAtStartByMonth {
		nNeg += n
	}
	if nNeg == 0 {
		nNeg = 1
	}
	s.frozenInfectiousness = s.transmissionNumerator / float64(nNeg)
	s.transmissionFrozen = true
	return s.frozenInfectiousness
}

// RecordOI increments the lifetime count of acute OI type t.
func (s *RunStats) RecordOI(t OIType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.oiCounts[t]++
}

// RecordTBEvent increments a lifetime counter for TB state transitions.
func (s *RunStats) RecordTBEvent(state TBState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tbEvents[state]++
}

// RecordPatientFinalized rolls one completed patient into the cohort
// totals; called once, when a patient dies or the driver stops advancing
// it.
func (s *RunStats) RecordPatientFinalized(p *Patient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.numPatients++
}

// Merge folds another (per-worker) RunStats into s, used by the cohort
// driver as each parallel.Range chunk over the patient population
// finishes.
func (s *RunStats) Merge(other *RunStats) {
	other.mu.Lock()
	defer other.mu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()

	s.numPatients += other.numPatients
	s.totalCostsUndiscounted += other.totalCostsUndiscounted
	s.totalCostsDiscounted += other.totalCostsDiscounted
	s.totalLifeMonthsUndiscounted += other.totalLifeMonthsUndiscounted
	s.totalLifeMonthsDiscounted += other.totalLifeMonthsDiscounted
	s.totalQALMs += other.totalQALMs
	for c, n := range other.deathsByCause {
		s.deathsByCause[c] += n
	}
	s.deathMonths = append(s.deathMonths, other.deathMonths...)
	for mth, n := range other.incidentHIVInfectionsByMonth {
		s.incidentHIVInfectionsByMonth[mth] += n
	}
	for mth, n := range other.hivNegAtStartByMonth {
		s.hivNegAtStartByMonth[mth] += n
	}
	for t, n := range other.oiCounts {
		s.oiCounts[t] += n
	}
	for st, n := range other.tbEvents {
		s.tbEvents[st] += n
	}
	for sg, v := range other.costsBySubgroupDiscounted {
		s.costsBySubgroupDiscounted[sg] += v
	}
	if !s.transmissionFrozen {
		s.transmissionNumerator += other.transmissionNumerator
	}
}

// TotalCostsDiscounted returns the run's headline discounted cost total.
func (s *RunStats) TotalCostsDiscounted() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalCostsDiscounted
}

// TotalCostsUndiscounted returns the run's undiscounted cost total.
func (s *RunStats) TotalCostsUndiscounted() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalCostsUndiscounted
}

// TotalLifeMonthsDiscounted returns the run's cohort-wide discounted life
// months.
func (s *RunStats) TotalLifeMonthsDiscounted() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalLifeMonthsDiscounted
}

// NumPatients returns the count of patients finalized into this run.
func (s *RunStats) NumPatients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.numPatients
}

// OICounts returns a copy of the lifetime acute-OI tally.
func (s *RunStats) OICounts() map[OIType]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[OIType]int, len(s.oiCounts))
	for t, n := range s.oiCounts {
		out[t] = n
	}
	return out
}

// TBEvents returns a copy of the lifetime TB state-transition tally.
func (s *RunStats) TBEvents() map[TBState]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[TBState]int, len(s.tbEvents))
	for st, n := range s.tbEvents {
		out[st] = n
	}
	return out
}

// DeathMonths returns a copy of every recorded month-of-death, in record
// order, used by the popstats rollup for survival-curve diagnostics.
func (s *RunStats) DeathMonths() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.deathMonths...)
}

// TotalLifeMonthsUndiscounted returns the run's cohort-wide undiscounted
// life months.
func (s *RunStats) TotalLifeMonthsUndiscounted() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalLifeMonthsUndiscounted
}

// TotalQALMs returns the run's cohort-wide discounted QALMs.
func (s *RunStats) TotalQALMs() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalQALMs
}

// DeathsByCause returns a copy of the lifetime cause-of-death tally.
func (s *RunStats) DeathsByCause() map[MortalityCause]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[MortalityCause]int, len(s.deathsByCause))
	for c, n := range s.deathsByCause {
		out[c] = n
	}
	return out
}

// IncidentHIVInfections returns the frozen per-month incidence counter,
// read by the dynamic-transmission hook after warmup.
func (s *RunStats) IncidentHIVInfections(month int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.incidentHIVInfectionsByMonth[month]
}

// HIVNegAtStart returns the frozen per-month negative-denominator
// counter, read alongside IncidentHIVInfections.
func (s *RunStats) HIVNegAtStart(month int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hivNegAtStartByMonth[month]
}
