package cepac

// envelope.go exposes read-only access to the best-CD4-ever-reached
// bookkeeping maintained by cd4hvlUpdater, used by ART switch/restart
// policy in clinic_visit.go (§4.4, §4.6).

// EnvelopeCD4 returns the best true CD4 ever reached on the current
// regimen (individual=true) or across all regimens (individual=false),
// and whether an envelope value has been recorded yet.
func EnvelopeCD4(p *Patient, individual bool) (float64, bool) {
	env := p.art.envelopeOverall
	if individual {
		env = p.art.envelopeIndividual
	}
	return env.cd4, env.active
}

// EnvelopeRegimenIndex returns the regimen index the per-regimen
// envelope was last recorded against.
func EnvelopeRegimenIndex(p *Patient) int {
	return p.art.envelopeIndividual.regimenIndex
}
