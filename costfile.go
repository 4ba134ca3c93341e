package cepac

import (
	"bytes"
	"fmt"
)

// WriteCostFile appends a run's discounted cost total broken down by
// subgroup (§4.13, §6 "cost file (optional detailed costs)"), following
// the same tab-separated-section convention as statsfile.go.
func WriteCostFile(path string, runIndex int, stats *RunStats) error {
	var b bytes.Buffer
	fmt.Fprintf(&b, "run\t%03d\n", runIndex)
	fmt.Fprintf(&b, "total_discounted\t%.2f\n", stats.TotalCostsDiscounted())
	fmt.Fprintf(&b, "total_undiscounted\t%.2f\n", stats.TotalCostsUndiscounted())
	for sg, v := range stats.CostsBySubgroup() {
		fmt.Fprintf(&b, "%s\t%.2f\n", costSubgroupName(sg), v)
	}
	return AppendToOutputFile(path, b.Bytes())
}

func costSubgroupName(sg CostSubgroup) string {
	switch sg {
	case SubgroupHIVNegative:
		return "hiv_negative"
	case SubgroupPreLink:
		return "pre_link"
	case SubgroupPreART:
		return "pre_art"
	case SubgroupOnART:
		return "on_art"
	case SubgroupLTFUAfterART:
		return "ltfu_after_art"
	case SubgroupLTFUNeverART:
		return "ltfu_never_art"
	case SubgroupRTC:
		return "rtc"
	case SubgroupNeverLostOnART:
		return "never_lost_on_art"
	case SubgroupOnARTFirst6Months:
		return "on_art_first_6mo"
	case SubgroupOn1stLineART:
		return "on_1st_line_art"
	case SubgroupOn2ndPlusLineART:
		return "on_2nd_plus_line_art"
	default:
		return "unknown"
	}
}
