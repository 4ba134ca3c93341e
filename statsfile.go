package cepac

import (
	"bytes"
	"fmt"
)

// WriteStatsFile renders a run's headline aggregates as tab-separated,
// fixed-precision sections and appends them to path, one call per run —
// the same buffer-then-append idiom as the teacher's CSVLogger.Write*
// methods (csv_logger.go), generalized from comma-delimited rows to
// labeled tab-separated sections.
func WriteStatsFile(path string, runIndex int, stats *RunStats) error {
	var b bytes.Buffer
	fmt.Fprintf(&b, "run\t%03d\n", runIndex)
	fmt.Fprintf(&b, "patients\t%d\n", stats.NumPatients())
	fmt.Fprintf(&b, "life_months_undiscounted\t%.4f\n", stats.TotalLifeMonthsUndiscounted())
	fmt.Fprintf(&b, "life_months_discounted\t%.4f\n", stats.TotalLifeMonthsDiscounted())
	fmt.Fprintf(&b, "qalms_discounted\t%.4f\n", stats.TotalQALMs())
	fmt.Fprintf(&b, "costs_undiscounted\t%.2f\n", stats.TotalCostsUndiscounted())
	fmt.Fprintf(&b, "costs_discounted\t%.2f\n", stats.TotalCostsDiscounted())

	b.WriteString("--- deaths_by_cause ---\n")
	for cause, n := range stats.DeathsByCause() {
		fmt.Fprintf(&b, "%s\t%d\n", mortalityCauseName(cause), n)
	}

	b.WriteString("--- oi_counts ---\n")
	for t, n := range stats.OICounts() {
		fmt.Fprintf(&b, "%s\t%d\n", oiTypeName(t), n)
	}

	b.WriteString("--- tb_events ---\n")
	for st, n := range stats.TBEvents() {
		fmt.Fprintf(&b, "%s\t%d\n", tbStateName(st), n)
	}

	return AppendToOutputFile(path, b.Bytes())
}

func mortalityCauseName(c MortalityCause) string {
	switch c {
	case CauseBackground:
		return "background"
	case CauseHIV:
		return "hiv"
	case CauseOI:
		return "oi"
	case CauseCHRM:
		return "chrm"
	case CauseToxicity:
		return "toxicity"
	case CauseTB:
		return "tb"
	case CauseProphToxicity:
		return "proph_toxicity"
	default:
		return "unknown"
	}
}

func oiTypeName(t OIType) string {
	switch t {
	case OIPCP:
		return "pcp"
	case OIMAC:
		return "mac"
	case OITuberculosisAsOI:
		return "tb_as_oi"
	case OICandidiasis:
		return "candidiasis"
	case OIBacterialPneumonia:
		return "bacterial_pneumonia"
	case OIToxoplasmosis:
		return "toxoplasmosis"
	case OICMV:
		return "cmv"
	case OICryptococcosis:
		return "cryptococcosis"
	default:
		return "unknown"
	}
}

func tbStateName(s TBState) string {
	switch s {
	case TBUninfected:
		return "uninfected"
	case TBLatent:
		return "latent"
	case TBActivePulm:
		return "active_pulm"
	case TBActiveExtrapulm:
		return "active_extrapulm"
	case TBPreviouslyTreated:
		return "previously_treated"
	case TBTreatmentDefault:
		return "treatment_default"
	default:
		return "unknown"
	}
}
