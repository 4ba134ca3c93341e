package cepac

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteOutput is the optional queryable alternative to the flat-file
// writers, one SQLite database per output kind — exactly the teacher's
// one-db-per-artifact layout (sqlite_logger.go), generalized from
// genotype/transmission tables to run/cost/popstats tables.
type SQLiteOutput struct {
	statsPath    string
	costPath     string
	popstatsPath string
}

// NewSQLiteOutput derives the three per-artifact database paths from a
// shared base path, matching SetBasePath's suffixing convention in the
// teacher's loggers.
func NewSQLiteOutput(basePath string) *SQLiteOutput {
	return &SQLiteOutput{
		statsPath:    basePath + ".stats.db",
		costPath:     basePath + ".cost.db",
		popstatsPath: basePath + ".popstats.db",
	}
}

func openSQLiteDB(path string) (*sql.DB, error) {
	return sql.Open("sqlite3", path)
}

// Init creates the run-keyed tables in every database, matching the
// teacher's Init/newTable pattern of one table per run instance.
func (o *SQLiteOutput) Init(runIndex int) error {
	newTable := func(path, ddl string) error {
		db, err := openSQLiteDB(path)
		if err != nil {
			return err
		}
		defer db.Close()
		_, err = db.Exec(ddl)
		return err
	}
	statsTable := fmt.Sprintf("Run%03d", runIndex)
	if err := newTable(o.statsPath, fmt.Sprintf(
		"create table if not exists %s (metric text, value real)", statsTable)); err != nil {
		return err
	}
	costTable := fmt.Sprintf("Cost%03d", runIndex)
	if err := newTable(o.costPath, fmt.Sprintf(
		"create table if not exists %s (subgroup text, discounted real)", costTable)); err != nil {
		return err
	}
	if err := newTable(o.popstatsPath,
		"create table if not exists Popstats (strategy text, run int, cost real, qalms real, dominated int, extended_dominated int, icer real)"); err != nil {
		return err
	}
	return nil
}

// WriteStats inserts a run's headline aggregates as metric/value rows.
func (o *SQLiteOutput) WriteStats(runIndex int, stats *RunStats) error {
	db, err := openSQLiteDB(o.statsPath)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	table := fmt.Sprintf("Run%03d", runIndex)
	stmt, err := tx.Prepare(fmt.Sprintf("insert into %s(metric, value) values(?, ?)", table))
	if err != nil {
		return err
	}
	defer stmt.Close()

	rows := map[string]float64{
		"patients":                  float64(stats.NumPatients()),
		"life_months_undiscounted":  stats.TotalLifeMonthsUndiscounted(),
		"life_months_discounted":    stats.TotalLifeMonthsDiscounted(),
		"qalms_discounted":          stats.TotalQALMs(),
		"costs_undiscounted":        stats.TotalCostsUndiscounted(),
		"costs_discounted":          stats.TotalCostsDiscounted(),
	}
	for metric, value := range rows {
		if _, err := stmt.Exec(metric, value); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// WriteCosts inserts a run's per-subgroup discounted cost breakdown.
func (o *SQLiteOutput) WriteCosts(runIndex int, stats *RunStats) error {
	db, err := openSQLiteDB(o.costPath)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	table := fmt.Sprintf("Cost%03d", runIndex)
	stmt, err := tx.Prepare(fmt.Sprintf("insert into %s(subgroup, discounted) values(?, ?)", table))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for sg, v := range stats.CostsBySubgroup() {
		if _, err := stmt.Exec(costSubgroupName(sg), v); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// WritePopstats inserts one frontier row per entry, replacing the
// table's prior contents so the stored rows always reflect the latest
// recomputed frontier.
func (o *SQLiteOutput) WritePopstats(frontier []FrontierEntry) error {
	db, err := openSQLiteDB(o.popstatsPath)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec("delete from Popstats"); err != nil {
		return err
	}
	stmt, err := tx.Prepare("insert into Popstats(strategy, run, cost, qalms, dominated, extended_dominated, icer) values(?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range frontier {
		icer := e.ICER
		if icer > 1e18 {
			icer = 1e18 // SQLite REAL has no +Inf; clamp to a sentinel large value
		}
		if _, err := stmt.Exec(e.Strategy, e.RunIndex, e.CostDiscounted, e.QALMsDiscounted,
			e.Dominated, e.ExtendedDominated, icer); err != nil {
			return err
		}
	}
	return tx.Commit()
}
