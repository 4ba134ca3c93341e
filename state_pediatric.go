package cepac

// pediatricState carries fields relevant only when the pediatric module
// is enabled. When disabled, every updater must leave these at their
// zero values and never branch on them (§3 invariant).
type pediatricState struct {
	enabled bool

	ageCategory PediatricAgeCategory

	maternalStatus        MaternalStatus
	maternalOnART         bool
	maternalOnARTKnown    bool
	maternalSuppressed    bool
	maternalSuppressKnown bool

	breastfeedingMode    BreastfeedingMode
	breastfeedingStopAge int

	inEIDSystem        bool
	eidFalsePositive   bool
	eidFalsePosLinked  bool
	eidPendingResult   bool
	eidResultDueMonth  int
	eidScheduledResult bool
	eidAwaitingReturn  bool

	infantProph [4]bool // indexed by proph line

	heuExposed   bool
	heuConfirmed bool
}

// Enabled reports whether the pediatric module is active for this run.
func (p *pediatricState) Enabled() bool { return p.enabled }

// AgeCategory returns the pediatric age bucket.
func (p *pediatricState) AgeCategory() PediatricAgeCategory { return p.ageCategory }

// MaternalStatus returns the mother's HIV/CD4 status at birth.
func (p *pediatricState) MaternalStatus() MaternalStatus { return p.maternalStatus }

// MaternalOnART reports the true maternal ART status; MaternalOnARTKnown
// reports whether the model "knows" it (vs. the shadow unknown value).
func (p *pediatricState) MaternalOnART() bool      { return p.maternalOnART }
func (p *pediatricState) MaternalOnARTKnown() bool { return p.maternalOnARTKnown }

// MaternalSuppressed / MaternalSuppressKnown mirror MaternalOnART for
// viral suppression.
func (p *pediatricState) MaternalSuppressed() bool    { return p.maternalSuppressed }
func (p *pediatricState) MaternalSuppressKnown() bool { return p.maternalSuppressKnown }

// BreastfeedingMode returns the current feeding mode.
func (p *pediatricState) BreastfeedingMode() BreastfeedingMode { return p.breastfeedingMode }

// InEIDSystem reports whether the infant is enrolled in early-infant
// diagnosis testing.
func (p *pediatricState) InEIDSystem() bool { return p.inEIDSystem }

// EIDFalsePositive reports whether the infant received a false-positive
// EID result; EIDFalsePositiveLinked reports whether that false positive
// was acted on (linked to care).
func (p *pediatricState) EIDFalsePositive() bool       { return p.eidFalsePositive }
func (p *pediatricState) EIDFalsePositiveLinked() bool { return p.eidFalsePosLinked }

// InfantProph reports whether the infant is on proph line i.
func (p *pediatricState) InfantProph(line int) bool {
	if line < 0 || line >= len(p.infantProph) {
		return false
	}
	return p.infantProph[line]
}

// HEUExposed reports HIV-exposed-uninfected status; HEUConfirmed reports
// whether EID testing has confirmed the infant negative (the pending,
// unconfirmed window between birth and a returned negative result is
// HEUExposed()==true, HEUConfirmed()==false).
func (p *pediatricState) HEUExposed() bool   { return p.heuExposed }
func (p *pediatricState) HEUConfirmed() bool { return p.heuConfirmed }

// EIDScheduledResult reports whether an EID test administration or
// result return is currently pending; EIDAwaitingReturn distinguishes
// "sample taken, waiting out the return delay" from "waiting to reach
// testing-eligible age". EIDResultDueMonth is the age in months at which
// the next step (administer, or return) occurs. EIDPendingResult is the
// already-drawn outcome of an administered test, valid only once
// EIDAwaitingReturn is true.
func (p *pediatricState) EIDScheduledResult() bool { return p.eidScheduledResult }
func (p *pediatricState) EIDAwaitingReturn() bool  { return p.eidAwaitingReturn }
func (p *pediatricState) EIDResultDueMonth() int   { return p.eidResultDueMonth }
func (p *pediatricState) EIDPendingResult() bool   { return p.eidPendingResult }
