package cepac

// prophLineState tracks a single OI's non-TB prophylaxis bookkeeping:
// whether it is active, which line (primary/secondary) and index, and
// when it started.
type prophLineState struct {
	onProph      bool
	isSecondary  bool
	lineIndex    int
	startMonth   int
	nextLine     int
	toxicitySoFar int
	resistant     bool
}

// prophState holds per-OI prophylaxis state (§3: eligibility, per-OI
// line pointers, ever-taken matrix).
type prophState struct {
	eligible     bool
	nonCompliant bool

	lines [numOITypes]prophLineState

	everTaken [numOITypes][]bool // indexed [oi][line]
}

// Eligible reports whether the patient has ever been linked to care and
// so may start non-TB OI prophylaxis at all; NonCompliant reports
// whether they were drawn into the subgroup that, once eligible, never
// reliably takes it (§4.8, §3 Proph "eligibility and non-compliance
// flags").
func (p *prophState) Eligible() bool     { return p.eligible }
func (p *prophState) NonCompliant() bool { return p.nonCompliant }

// OnProph reports whether proph for OI t is currently active.
func (p *prophState) OnProph(t OIType) bool { return p.lines[t].onProph }

// ProphLine returns the current line index for OI t.
func (p *prophState) ProphLine(t OIType) int { return p.lines[t].lineIndex }

// ProphIsSecondary reports whether the current line for OI t is a
// secondary (post-history) line rather than primary.
func (p *prophState) ProphIsSecondary(t OIType) bool { return p.lines[t].isSecondary }

// ProphStartMonth returns the month OI t's current proph line began.
func (p *prophState) ProphStartMonth(t OIType) int { return p.lines[t].startMonth }

// ProphResistant reports whether resistance has developed for OI t's
// current proph line.
func (p *prophState) ProphResistant(t OIType) bool { return p.lines[t].resistant }

// EverTookLine reports whether OI t's line was ever started, regardless
// of current status.
func (p *prophState) EverTookLine(t OIType, line int) bool {
	taken := p.everTaken[t]
	if line < 0 || line >= len(taken) {
		return false
	}
	return taken[line]
}
