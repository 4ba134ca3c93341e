package main

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/exascience/pargo/parallel"
	"github.com/pkg/errors"

	cepac "github.com/MGH-MPEC/cepac-go"
)

// runOneInput loads one run configuration, simulates its cohort across
// threads goroutines, and writes every configured output artifact under
// resultsDir. It mirrors the teacher's per-instance loop body in
// bin/contagion/main.go (load config, build a simulation, run it, write
// outputs) generalized from "one logger, one simulation" to "one cohort
// run, several independent output writers".
func runOneInput(path, resultsDir string, runIndex, threads int, sqliteOut bool) error {
	cfg, err := cepac.LoadRunConfig(path)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	ctx, err := cfg.Build()
	if err != nil {
		return err
	}

	for _, keyedPath := range cfg.KeyedInputFiles {
		sections, err := cepac.ParseKeyedFile(keyedPath)
		if err != nil {
			return err
		}
		orphans, err := cepac.ApplyKeyedSections(ctx, sections)
		if err != nil {
			return err
		}
		if err := cepac.WriteOrphanFile(filepath.Join(resultsDir, baseName(path)+".orphan.txt"), runIndex, orphans); err != nil {
			return errors.Wrapf(err, cepac.OutOfDiskError, path)
		}
	}

	var tracer cepac.Tracer
	if cfg.TraceEnabled {
		ft := cepac.NewFileTracer(resultsDir)
		tracer = ft
		defer ft.Close()
	}

	stats, err := simulateCohort(ctx, cfg, tracer, threads)
	if err != nil {
		return err
	}

	base := filepath.Join(resultsDir, baseName(path))
	if err := cepac.WriteStatsFile(base+".stats.txt", runIndex, stats); err != nil {
		return errors.Wrapf(err, cepac.OutOfDiskError, base)
	}
	if err := cepac.WriteCostFile(base+".cost.txt", runIndex, stats); err != nil {
		return errors.Wrapf(err, cepac.OutOfDiskError, base)
	}

	popPath := filepath.Join(resultsDir, "popstats.txt")
	entry := cepac.PopstatsEntry{
		Strategy:        baseName(path),
		RunIndex:        runIndex,
		CostDiscounted:  stats.TotalCostsDiscounted(),
		QALMsDiscounted: stats.TotalQALMs(),
	}
	frontier, err := cepac.CommitPopstats(popPath, entry)
	if err != nil {
		return errors.Wrapf(err, cepac.OutOfDiskError, popPath)
	}

	if sqliteOut || cfg.SQLiteOutput {
		sqlitePath := cfg.SQLitePath
		if sqlitePath == "" {
			sqlitePath = base
		}
		out := cepac.NewSQLiteOutput(sqlitePath)
		if err := out.Init(runIndex); err != nil {
			return err
		}
		if err := out.WriteStats(runIndex, stats); err != nil {
			return err
		}
		if err := out.WriteCosts(runIndex, stats); err != nil {
			return err
		}
		if err := out.WritePopstats(frontier); err != nil {
			return err
		}
	}
	return nil
}

// simulateCohort advances cfg.NumPatients patients to death (or the
// configured month backstop), splitting the work across threads
// goroutines with parallel.Range; each chunk the range hands out gets
// its own private RNG stream per patient and its own RunStats shard,
// which the chunk merges into the shared aggregate under a mutex as soon
// as it finishes (§5).
func simulateCohort(ctx *cepac.SimContext, cfg *cepac.RunConfig, tracer cepac.Tracer, threads int) (*cepac.RunStats, error) {
	n := ctx.Cohort.NumPatients
	maxMonths := 1200
	if cfg.MaxSimulationMonths > 0 {
		maxMonths = cfg.MaxSimulationMonths
	}
	if threads < 1 {
		threads = 1
	}

	var mu sync.Mutex
	merged := cepac.NewRunStats()
	runSeed := time.Now().UnixNano()

	parallel.Range(0, n, n/threads+1, func(low, high int) {
		local := cepac.NewRunStats()
		for i := low; i < high; i++ {
			seed := runSeed + int64(i)
			if ctx.Cohort.SeedMode == cepac.FixedSeed {
				seed = ctx.Cohort.FixedSeed + int64(i)
			}
			rng := cepac.NewStream(ctx.Cohort.SeedMode, seed)
			p := cepac.NewPatient(i, rng)
			cepac.RunPatient(p, ctx, local, tracer, maxMonths)
		}
		mu.Lock()
		merged.Merge(local)
		mu.Unlock()
	})

	return merged, nil
}

func baseName(path string) string {
	b := filepath.Base(path)
	return strings.TrimSuffix(b, filepath.Ext(b))
}
