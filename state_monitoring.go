package cepac

// ObservedLab bundles the most-recent value, the running minimum, and
// the stratum derived from it -- the shape shared by observed CD4 and
// observed CD4 percentage.
type ObservedLab struct {
	Value    float64
	Min      float64
	Stratum  int
	HasValue bool
}

// ClinicVisitTrigger labels why an emergency visit was scheduled.
type ClinicVisitTrigger int

const (
	TriggerNone ClinicVisitTrigger = iota
	TriggerOI
	TriggerToxicity
	TriggerObservedFailure
	TriggerTBDiagnosis
)

// monitoringState holds detection/linkage/care-continuum, scheduled lab
// and clinic visits, and LTFU bookkeeping.
type monitoringState struct {
	detected      bool
	monthDetected int
	linked        bool
	monthLinked   int

	care CareState

	prepStatus     PrEPStatus
	monthsOnPrEP   int
	prepDropoutMonth int

	hivTestScheduledMonth int

	observedCD4    ObservedLab
	observedCD4Pct ObservedLab
	observedHVL    HVLStratum
	hasObservedHVL bool

	regularVisitMonth  int
	emergencyVisitMonth int
	emergencyTrigger    ClinicVisitTrigger

	ltfu            bool
	monthOfLTFU     int
	monthOfLastCareTransition int

	observedOICounts [numOITypes]int
}

// Detected / MonthDetected report whether and when the patient was first
// identified as HIV positive.
func (m *monitoringState) Detected() bool      { return m.detected }
func (m *monitoringState) MonthDetected() int  { return m.monthDetected }

// Linked / MonthLinked report whether and when the patient entered care
// after detection.
func (m *monitoringState) Linked() bool     { return m.linked }
func (m *monitoringState) MonthLinked() int { return m.monthLinked }

// CareState returns the current position on the care continuum.
func (m *monitoringState) CareState() CareState { return m.care }

// PrEPStatus returns the patient's relationship to PrEP (negative
// patients only).
func (m *monitoringState) PrEPStatus() PrEPStatus { return m.prepStatus }

// MonthsOnPrEP returns cumulative months enrolled.
func (m *monitoringState) MonthsOnPrEP() int { return m.monthsOnPrEP }

// ObservedCD4 / ObservedCD4Percent return the most recent lab values,
// recorded by labTestUpdater in the month of the draw (no return delay).
func (m *monitoringState) ObservedCD4() ObservedLab        { return m.observedCD4 }
func (m *monitoringState) ObservedCD4Percent() ObservedLab { return m.observedCD4Pct }

// ObservedHVL returns the most recently observed HVL stratum.
func (m *monitoringState) ObservedHVL() (HVLStratum, bool) {
	return m.observedHVL, m.hasObservedHVL
}

// HIVTestScheduledMonth returns the month the next user-program test is
// scheduled, or 0 if none is pending.
func (m *monitoringState) HIVTestScheduledMonth() int { return m.hivTestScheduledMonth }

// IsLTFU reports whether the patient is currently lost to follow-up.
func (m *monitoringState) IsLTFU() bool { return m.ltfu }

// MonthOfLTFU is only valid while IsLTFU() is true.
func (m *monitoringState) MonthOfLTFU() int { return m.monthOfLTFU }

// ObservedOICount returns the running count of observed OI events of
// type t, used by observed-failure confirmation windows.
func (m *monitoringState) ObservedOICount(t OIType) int { return m.observedOICounts[t] }

// TotalObservedOI sums ObservedOICount across every OI type.
func (m *monitoringState) TotalObservedOI() int {
	total := 0
	for _, n := range m.observedOICounts {
		total += n
	}
	return total
}
