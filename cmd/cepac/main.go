package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// main discovers every *.toml run configuration under -inputs, creates
// -results as a parallel output directory, and writes one output set per
// input — modeled on the teacher's bin/contagion/main.go loop (load
// config, run, log elapsed time per instance) but returning an exit code
// from main instead of calling log.Fatal, so one bad input does not
// stop the rest of the batch (§6, §7).
func main() {
	os.Exit(runMain())
}

func runMain() int {
	inputsDir := flag.String("inputs", "inputs", "directory containing *.toml run configuration files")
	resultsDir := flag.String("results", "results", "directory to write output files into")
	threads := flag.Int("threads", runtime.NumCPU(), "number of worker goroutines per run")
	sqliteOut := flag.Bool("sqlite", false, "also write a queryable SQLite sink alongside flat files")
	flag.Parse()

	if err := os.MkdirAll(*resultsDir, 0755); err != nil {
		log.Printf("cannot create results directory %q: %s", *resultsDir, err)
		return 1
	}

	matches, err := filepath.Glob(filepath.Join(*inputsDir, "*.toml"))
	if err != nil {
		log.Printf("cannot scan inputs directory %q: %s", *inputsDir, err)
		return 1
	}
	if len(matches) == 0 {
		log.Printf("no *.toml input files found under %q", *inputsDir)
		return 1
	}

	exitCode := 0
	firstStart := time.Now()
	for i, path := range matches {
		log.Printf("starting input %03d: %s", i+1, path)
		start := time.Now()
		if err := runOneInput(path, *resultsDir, i+1, *threads, *sqliteOut); err != nil {
			log.Printf("input %s failed: %s", path, err)
			exitCode = 1
			continue
		}
		log.Printf("finished input %03d in %s", i+1, time.Since(start))
	}
	log.Printf("completed %d input(s) in %s", len(matches), time.Since(firstStart))
	return exitCode
}
