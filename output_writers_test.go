package cepac

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteStatsFile_ContainsHeadlineAggregates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.stats.txt")
	stats := NewRunStats()
	stats.RecordPatientFinalized(&Patient{})
	stats.RecordLifeMonth(1, 0.95, 0.9)
	stats.recordDeath(CauseHIV, 10)

	if err := WriteStatsFile(path, 1, stats); err != nil {
		t.Fatalf(UnexpectedErrorWhileError, "calling WriteStatsFile", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf(UnexpectedErrorWhileError, "reading written stats file", err)
	}
	content := string(data)
	if !strings.Contains(content, "patients\t1\n") {
		t.Errorf(UnexpectedErrorWhileError, "checking patients line in stats file", "not found")
	}
	if !strings.Contains(content, "hiv\t1\n") {
		t.Errorf(UnexpectedErrorWhileError, "checking deaths_by_cause hiv line in stats file", "not found")
	}
}

func TestWriteStatsFile_AppendsAcrossCalls(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.stats.txt")
	s1 := NewRunStats()
	s1.RecordPatientFinalized(&Patient{})
	s2 := NewRunStats()
	s2.RecordPatientFinalized(&Patient{})

	if err := WriteStatsFile(path, 1, s1); err != nil {
		t.Fatalf(UnexpectedErrorWhileError, "first WriteStatsFile call", err)
	}
	if err := WriteStatsFile(path, 2, s2); err != nil {
		t.Fatalf(UnexpectedErrorWhileError, "second WriteStatsFile call", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf(UnexpectedErrorWhileError, "reading appended stats file", err)
	}
	if got := strings.Count(string(data), "run\t"); got != 2 {
		t.Errorf(UnequalIntParameterError, "number of run headers after two appends", 2, got)
	}
}

func TestWriteCostFile_ReportsSubgroupBreakdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.cost.txt")
	stats := NewRunStats()
	stats.recordCost(500, 450, SubgroupOnART)

	if err := WriteCostFile(path, 1, stats); err != nil {
		t.Fatalf(UnexpectedErrorWhileError, "calling WriteCostFile", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf(UnexpectedErrorWhileError, "reading written cost file", err)
	}
	if !strings.Contains(string(data), costSubgroupName(SubgroupOnART)) {
		t.Errorf(UnexpectedErrorWhileError, "checking subgroup name in cost file", "not found")
	}
}

func TestWriteOrphanFile_EmptyIsNoOp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.orphan.txt")
	if err := WriteOrphanFile(path, 1, nil); err != nil {
		t.Fatalf(UnexpectedErrorWhileError, "calling WriteOrphanFile with no orphans", err)
	}
	if _, err := os.Stat(path); err == nil {
		t.Errorf(UnexpectedErrorWhileError, "checking that an empty orphan set writes nothing", "file was created")
	}
}

func TestWriteOrphanFile_WritesRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.orphan.txt")
	orphans := []OrphanRecord{{Section: "future_table", Key: "x"}}
	if err := WriteOrphanFile(path, 3, orphans); err != nil {
		t.Fatalf(UnexpectedErrorWhileError, "calling WriteOrphanFile", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf(UnexpectedErrorWhileError, "reading written orphan file", err)
	}
	content := string(data)
	if !strings.Contains(content, "run\t003\n") {
		t.Errorf(UnexpectedErrorWhileError, "checking run header in orphan file", "not found")
	}
	if !strings.Contains(content, "future_table\tx\n") {
		t.Errorf(UnexpectedErrorWhileError, "checking orphan record line", "not found")
	}
}

func TestFileTracer_WritesPerPatientFile(t *testing.T) {
	dir := t.TempDir()
	tracer := NewFileTracer(dir)
	tracer.Trace(7, 3, "ADHERENCE_START", "")
	tracer.Trace(7, 4, "TB_INFECTION", "abc123")
	if err := tracer.Close(); err != nil {
		t.Fatalf(UnexpectedErrorWhileError, "closing the file tracer", err)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "trace.*.txt"))
	if err != nil {
		t.Fatalf(UnexpectedErrorWhileError, "globbing trace output directory", err)
	}
	if l := len(matches); l != 1 {
		t.Fatalf(UnequalIntParameterError, "number of trace files for one patient", 1, l)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf(UnexpectedErrorWhileError, "reading trace file", err)
	}
	content := string(data)
	if !strings.Contains(content, "**3 ADHERENCE_START\n") {
		t.Errorf(UnexpectedErrorWhileError, "checking no-payload trace line format", "not found")
	}
	if !strings.Contains(content, "**4 TB_INFECTION abc123\n") {
		t.Errorf(UnexpectedErrorWhileError, "checking payload trace line format", "not found")
	}
}
