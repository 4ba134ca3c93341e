package cepac

import (
	"bufio"
	"bytes"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// PopstatsEntry is one run's headline cost-effectiveness inputs, the
// unit the popstats file accumulates across runs of a strategy
// comparison (§4 computation, §6 "popstats file").
type PopstatsEntry struct {
	Strategy        string
	RunIndex        int
	CostDiscounted  float64
	QALMsDiscounted float64
}

// FrontierEntry augments a PopstatsEntry with its dominance label and
// incremental cost-effectiveness ratio against the next less-costly
// frontier entry, computed by ComputeFrontier.
type FrontierEntry struct {
	PopstatsEntry
	Dominated         bool
	ExtendedDominated bool
	ICER              float64 // +Inf for the cheapest non-dominated entry
}

// ComputeFrontier sorts entries by effectiveness, removes strictly and
// extendedly dominated strategies, and assigns an ICER to every
// surviving entry — the standard cost-effectiveness-analysis frontier
// construction the popstats roll-up performs per run set.
func ComputeFrontier(entries []PopstatsEntry) []FrontierEntry {
	out := make([]FrontierEntry, len(entries))
	for i, e := range entries {
		out[i] = FrontierEntry{PopstatsEntry: e, ICER: math.Inf(1)}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].QALMsDiscounted != out[j].QALMsDiscounted {
			return out[i].QALMsDiscounted < out[j].QALMsDiscounted
		}
		return out[i].CostDiscounted < out[j].CostDiscounted
	})

	// Simple dominance: an entry that costs no more while being no
	// less effective than another, and strictly better on at least
	// one axis, eliminates it outright.
	for i := range out {
		for j := range out {
			if i == j {
				continue
			}
			strictlyWorse := out[j].CostDiscounted <= out[i].CostDiscounted &&
				out[j].QALMsDiscounted >= out[i].QALMsDiscounted &&
				(out[j].CostDiscounted < out[i].CostDiscounted || out[j].QALMsDiscounted > out[i].QALMsDiscounted)
			if strictlyWorse {
				out[i].Dominated = true
				break
			}
		}
	}

	// Extended dominance: among the survivors, repeatedly drop the
	// entry whose ICER against its frontier predecessor is not an
	// increase over its successor's, since a mix of its neighbors
	// would beat it on average.
	for {
		idx := survivingIndices(out)
		removed := false
		for k := 1; k < len(idx)-1; k++ {
			prev, cur, next := out[idx[k-1]], out[idx[k]], out[idx[k+1]]
			if incrementalRatio(prev, next) <= incrementalRatio(prev, cur) {
				out[idx[k]].ExtendedDominated = true
				removed = true
				break
			}
		}
		if !removed {
			break
		}
	}

	idx := survivingIndices(out)
	for k, i := range idx {
		if k == 0 {
			out[i].ICER = math.Inf(1)
			continue
		}
		out[i].ICER = incrementalRatio(out[idx[k-1]], out[i])
	}
	return out
}

func survivingIndices(out []FrontierEntry) []int {
	var idx []int
	for i, e := range out {
		if !e.Dominated && !e.ExtendedDominated {
			idx = append(idx, i)
		}
	}
	return idx
}

func incrementalRatio(a, b FrontierEntry) float64 {
	dCost := b.CostDiscounted - a.CostDiscounted
	dEff := b.QALMsDiscounted - a.QALMsDiscounted
	if dEff == 0 {
		return math.Inf(1)
	}
	return dCost / dEff
}

// ReadPopstatsFile loads every entry previously committed to path, or an
// empty slice if the file does not yet exist.
func ReadPopstatsFile(path string) ([]PopstatsEntry, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, UnreadableInputError, path)
	}
	defer f.Close()

	var entries []PopstatsEntry
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 4 {
			return nil, errors.Errorf(FileParsingError, lineNum, "expected 4 tab-separated fields")
		}
		run, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, errors.Wrapf(err, FileParsingError, lineNum, "run index")
		}
		cost, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, errors.Wrapf(err, FileParsingError, lineNum, "cost")
		}
		qalms, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, errors.Wrapf(err, FileParsingError, lineNum, "qalms")
		}
		entries = append(entries, PopstatsEntry{
			Strategy:        fields[0],
			RunIndex:        run,
			CostDiscounted:  cost,
			QALMsDiscounted: qalms,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, UnreadableInputError, path)
	}
	return entries, nil
}

// CommitPopstats appends entry to the roll-up at path (creating it with
// entry as its sole line if absent), recomputes the frontier over the
// full accumulated history, and rewrites path with one line per entry
// plus its dominance label and ICER. The roll-up is append-only from the
// caller's perspective — no prior run's entry is ever dropped — even
// though the frontier recomputation requires rewriting the whole file.
func CommitPopstats(path string, entry PopstatsEntry) ([]FrontierEntry, error) {
	prior, err := ReadPopstatsFile(path)
	if err != nil {
		return nil, err
	}
	all := append(prior, entry)
	frontier := ComputeFrontier(all)

	var b bytes.Buffer
	b.WriteString("#strategy\trun\tcost_discounted\tqalms_discounted\tdominated\textended_dominated\ticer\n")
	for _, e := range frontier {
		icer := "Inf"
		if !math.IsInf(e.ICER, 1) {
			icer = fmt.Sprintf("%.4f", e.ICER)
		}
		fmt.Fprintf(&b, "%s\t%d\t%.2f\t%.4f\t%t\t%t\t%s\n",
			e.Strategy, e.RunIndex, e.CostDiscounted, e.QALMsDiscounted,
			e.Dominated, e.ExtendedDominated, icer)
	}
	if err := os.WriteFile(path, b.Bytes(), 0644); err != nil {
		return nil, errors.Wrapf(err, OutOfDiskError, path)
	}
	return frontier, nil
}
