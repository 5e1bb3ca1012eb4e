/*
main.go - Payday command-line driver

PURPOSE:
  Runs the reconciliation pipeline from the command line: point it at
  the office's spreadsheets, pick a mode, and it writes the filled
  workbooks alongside a printed summary the secretary can forward.

RUN MODES:
  daily    project one day of timeclock punches onto the weekly sheet
  weekly   reconcile the whole week and attach the review sheets
  payday   fill the cash and payroll ledgers from the weekly roster,
           with optional bonus, loan and loan-history sheets; the loan
           sheets are updated in place

COMMAND-LINE FLAGS:
  -mode     daily, weekly or payday (default: weekly)
  -weekly   weekly timesheet / roster workbook (required)
  -tar      timeclock export, .xlsx or .csv (daily and weekly)
  -day      report date for daily mode, MM/DD/YYYY
  -cash     cash ledger workbook (payday)
  -payroll  payroll ledger workbook (payday)
  -bonus    bonus sheet workbook (payday, optional)
  -loans    open loans workbook (payday, optional)
  -history  loan history workbook (payday, optional)
  -out      output directory (default: .)
  -db       run history SQLite path (default: payroll.db)
            Empty disables history, ":memory:" keeps it per-run
  -config   settings overrides, .json or .yaml

EXAMPLES:
  # Monday's punches onto the weekly sheet
  ./payday -mode=daily -weekly=WeeklyTime.xlsx -tar=tar.csv -day=08/18/2025

  # The whole week, with Review_Queue and Name_Matching sheets attached
  ./payday -mode=weekly -weekly=WeeklyTime.xlsx -tar=tar.xlsx

  # Payday with loans
  ./payday -mode=payday -weekly=WeeklyTime.xlsx -cash=Cash.xlsx \
      -payroll=Payroll.xlsx -bonus=Bonus.xlsx -loans=Loans.xlsx \
      -history=LoanHistory.xlsx

SEE ALSO:
  - pipeline/: the runs this wires together
  - ingest/: file parsing and serialization
  - store/sqlite/: run history
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/warp/payroll-engine/config"
	"github.com/warp/payroll-engine/ingest"
	"github.com/warp/payroll-engine/pipeline"
	"github.com/warp/payroll-engine/sheet"
	"github.com/warp/payroll-engine/store"
	"github.com/warp/payroll-engine/store/sqlite"
)

func main() {
	// Flags
	mode := flag.String("mode", "weekly", "run mode: daily, weekly or payday")
	weeklyPath := flag.String("weekly", "", "weekly timesheet / roster workbook")
	tarPath := flag.String("tar", "", "timeclock export, .xlsx or .csv")
	dayArg := flag.String("day", "", "report date for daily mode, MM/DD/YYYY")
	cashPath := flag.String("cash", "", "cash ledger workbook")
	payrollPath := flag.String("payroll", "", "payroll ledger workbook")
	bonusPath := flag.String("bonus", "", "bonus sheet workbook")
	loansPath := flag.String("loans", "", "open loans workbook")
	historyPath := flag.String("history", "", "loan history workbook")
	outDir := flag.String("out", ".", "output directory")
	dbPath := flag.String("db", "payroll.db", "run history SQLite path; empty disables history")
	configPath := flag.String("config", "", "settings overrides, .json or .yaml")
	flag.Parse()

	cfg, err := loadSettings(*configPath)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}

	// Run history
	var history store.RunStore
	if *dbPath != "" {
		st, err := sqlite.New(*dbPath)
		if err != nil {
			log.Fatalf("Failed to initialize run history: %v", err)
		}
		defer st.Close()
		history = st
	}

	runner := pipeline.New(cfg, history)
	ctx := context.Background()
	weekly := mustReadTable("-weekly", *weeklyPath)

	switch *mode {
	case "daily":
		day, err := time.Parse("01/02/2006", *dayArg)
		if err != nil {
			log.Fatalf("-day must be MM/DD/YYYY: %v", err)
		}
		run, err := runner.Daily(ctx, weekly, mustReadTable("-tar", *tarPath), day)
		if err != nil {
			log.Fatalf("Daily run failed: %v", err)
		}
		mustWriteWorkbook(filepath.Join(*outDir, run.Filename), run.Timesheet)
		log.Printf("Wrote %s", run.Filename)
		fmt.Println(run.Message)

	case "weekly":
		run, err := runner.Weekly(ctx, weekly, mustReadTable("-tar", *tarPath))
		if err != nil {
			log.Fatalf("Weekly run failed: %v", err)
		}
		mustWriteWorkbook(filepath.Join(*outDir, run.Filename),
			run.Timesheet, run.ReviewQueue, run.Matching)
		log.Printf("Wrote %s", run.Filename)
		fmt.Println(run.Message)

	case "payday":
		run, err := runner.Ledger(ctx, pipeline.LedgerInputs{
			Weekly:      weekly,
			Cash:        mustReadTable("-cash", *cashPath),
			Payroll:     mustReadTable("-payroll", *payrollPath),
			Bonus:       optionalTable(*bonusPath),
			Loans:       optionalTable(*loansPath),
			LoanHistory: optionalTable(*historyPath),
		})
		if err != nil {
			log.Fatalf("Payday run failed: %v", err)
		}
		mustWriteWorkbook(filepath.Join(*outDir, run.CashFilename), run.Cash)
		mustWriteWorkbook(filepath.Join(*outDir, run.PayrollFilename), run.Payroll)
		log.Printf("Wrote %s and %s", run.CashFilename, run.PayrollFilename)
		if run.LoanBook != nil {
			mustWriteWorkbook(*loansPath, run.LoanBook)
			log.Printf("Updated %s in place", *loansPath)
		}
		if run.LoanHistory != nil {
			mustWriteWorkbook(*historyPath, run.LoanHistory)
			log.Printf("Updated %s in place", *historyPath)
		}
		fmt.Println(run.Message)

	default:
		log.Fatalf("Unknown mode %q: want daily, weekly or payday", *mode)
	}
}

func loadSettings(path string) (config.Settings, error) {
	if path == "" {
		return config.Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return config.Settings{}, err
	}
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		return config.FromYAML(data)
	}
	return config.FromJSON(data)
}

func mustReadTable(name, path string) *sheet.Table {
	if path == "" {
		log.Fatalf("%s is required for this mode", name)
	}
	return optionalTable(path)
}

// optionalTable reads a workbook or CSV, returning nil for an empty
// path. CSV repairs are logged, not fatal.
func optionalTable(path string) *sheet.Table {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		t, warnings, err := ingest.CSV(data, filepath.Base(path))
		if err != nil {
			log.Fatalf("Failed to parse %s: %v", path, err)
		}
		for _, w := range warnings {
			log.Printf("%s row %d: %s", path, w.Row, w.Message)
		}
		return t
	}

	t, err := ingest.XLSX(data)
	if err != nil {
		log.Fatalf("Failed to parse %s: %v", path, err)
	}
	return t
}

func mustWriteWorkbook(path string, tables ...*sheet.Table) {
	data, err := ingest.WriteXLSX(tables...)
	if err != nil {
		log.Fatalf("Failed to build %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", path, err)
	}
}
