package cepac

import (
	"bytes"
	"fmt"
)

// OrphanRecord names one keyed-input section/key this build did not
// recognize (§6: "orphan file (optional)").
type OrphanRecord struct {
	Section string
	Key     string
}

// WriteOrphanFile appends the keyed sections/keys a run's input file
// carried that no known table consumed, so a likely typo or an
// unported subsystem shows up instead of silently vanishing. A nil or
// empty orphans slice writes nothing, matching the file's "optional"
// status.
func WriteOrphanFile(path string, runIndex int, orphans []OrphanRecord) error {
	if len(orphans) == 0 {
		return nil
	}
	var b bytes.Buffer
	fmt.Fprintf(&b, "run\t%03d\n", runIndex)
	for _, o := range orphans {
		fmt.Fprintf(&b, "%s\t%s\n", o.Section, o.Key)
	}
	return AppendToOutputFile(path, b.Bytes())
}
