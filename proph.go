package cepac

// proph.go holds non-TB opportunistic-infection prophylaxis start/stop
// policy evaluation, called from clinic_visit.go during the monthly
// clinic-visit step (§4.8).

// evaluateProphStart returns the proph line that should start for OI t
// this month, or -1 if none should.
func evaluateProphStart(p *Patient, ctx *SimContext, oi OIType) int {
	if p.Proph().OnProph(oi) || !p.Proph().Eligible() || p.Proph().NonCompliant() {
		return -1
	}
	lines, ok := ctx.Proph.Lines[oi]
	if !ok {
		return -1
	}
	cd4 := p.Disease().TrueCD4()
	for i, line := range lines {
		if p.Proph().ProphResistant(oi) && i == p.Proph().ProphLine(oi) {
			continue
		}
		if cd4 > line.StartCD4Max {
			continue
		}
		if p.Month() < line.MinMonth {
			continue
		}
		return i
	}
	return -1
}

// evaluateProphStop returns whether currently-active proph for OI t
// should stop this month because the patient's CD4 recovered past the
// line's stop threshold.
func evaluateProphStop(p *Patient, ctx *SimContext, oi OIType) bool {
	if !p.Proph().OnProph(oi) {
		return false
	}
	lines, ok := ctx.Proph.Lines[oi]
	if !ok {
		return false
	}
	line := p.Proph().ProphLine(oi)
	if line < 0 || line >= len(lines) {
		return false
	}
	cfg := lines[line]
	if cfg.StopCD4Min <= 0 {
		return false
	}
	return p.Disease().TrueCD4() >= cfg.StopCD4Min
}
