package cepac

// MortalityRisk is a single contribution to the current month's combined
// death probability: a cause, a death-rate ratio relative to background,
// and an optional cost incurred only if this cause is the one sampled as
// cause of death.
type MortalityRisk struct {
	Cause MortalityCause
	DRR   float64
	Cost  float64
}

// diseaseState holds HIV/CD4/HVL/OI/CHRM natural history and the
// mortality-risk accumulator cleared every month.
type diseaseState struct {
	hivState    HIVState
	pedHIVState PediatricHIVState

	monthOfInfection      int
	monthOfAcuteToChronic int

	cd4        float64
	cd4Percent float64
	cd4Min     float64
	cd4PctMin  float64

	hvlStratum    HVLStratum
	hvlSetpoint   HVLStratum
	hvlTarget     HVLStratum

	currentOI    OIType
	hasCurrentOI bool
	oiHistory    [numOITypes]bool
	oiHistoryMonth [numOITypes]int

	chrmFlags      []bool
	chrmStartMonth []int

	alive        bool
	causeOfDeath MortalityCause

	mortalityRisks []MortalityRisk

	heuFlag bool
}

// HIVState returns the adult HIV infection state.
func (d *diseaseState) HIVState() HIVState { return d.hivState }

// PediatricHIVState returns the pediatric-variant infection state.
func (d *diseaseState) PediatricHIVState() PediatricHIVState { return d.pedHIVState }

// MonthOfInfection is only valid while HIVState() != HIVNegative.
func (d *diseaseState) MonthOfInfection() int { return d.monthOfInfection }

// MonthOfAcuteToChronic is only valid once the patient has transitioned
// past the acute state.
func (d *diseaseState) MonthOfAcuteToChronic() int { return d.monthOfAcuteToChronic }

// TrueCD4 returns the true (not observed) absolute CD4 count.
func (d *diseaseState) TrueCD4() float64 { return d.cd4 }

// TrueCD4Percent returns the true CD4 percentage, valid only in the
// pediatric-early regime.
func (d *diseaseState) TrueCD4Percent() float64 { return d.cd4Percent }

// MinCD4ToDate and MinCD4PercentToDate track the lowest-ever true values,
// used by proph/ART eligibility history checks.
func (d *diseaseState) MinCD4ToDate() float64        { return d.cd4Min }
func (d *diseaseState) MinCD4PercentToDate() float64 { return d.cd4PctMin }

// HVLStratum, HVLSetpoint, and HVLTarget return the current, natural
// setpoint, and currently-targeted viral-load strata.
func (d *diseaseState) HVLStratum() HVLStratum  { return d.hvlStratum }
func (d *diseaseState) HVLSetpoint() HVLStratum { return d.hvlSetpoint }
func (d *diseaseState) HVLTarget() HVLStratum   { return d.hvlTarget }

// CurrentOI returns the single acute OI active this month, if any.
func (d *diseaseState) CurrentOI() (OIType, bool) { return d.currentOI, d.hasCurrentOI }

// HadOI reports whether OI type t has ever occurred.
func (d *diseaseState) HadOI(t OIType) bool { return d.oiHistory[t] }

// MonthOfOI returns the month OI type t last occurred; only valid if
// HadOI(t) is true.
func (d *diseaseState) MonthOfOI(t OIType) int { return d.oiHistoryMonth[t] }

// HasCHRM reports whether chronic condition c has incident.
func (d *diseaseState) HasCHRM(c int) bool {
	if c < 0 || c >= len(d.chrmFlags) {
		return false
	}
	return d.chrmFlags[c]
}

// IsAlive mirrors Patient.IsAlive for updaters operating directly on the
// disease state group.
func (d *diseaseState) IsAlive() bool { return d.alive }

// CauseOfDeath is only valid once IsAlive() is false.
func (d *diseaseState) CauseOfDeath() MortalityCause { return d.causeOfDeath }

// MortalityRisks returns the risks accumulated so far this month. The
// slice is cleared at BeginMonth and must not be retained past the
// updater call that reads it (§5).
func (d *diseaseState) MortalityRisks() []MortalityRisk { return d.mortalityRisks }

// HEU reports HIV-exposed-uninfected status, mirrored from pediatricState
// for convenience in adult-facing code paths.
func (d *diseaseState) HEU() bool { return d.heuFlag }
