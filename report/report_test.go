package report_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/warp/payroll-engine/bonus"
	"github.com/warp/payroll-engine/config"
	"github.com/warp/payroll-engine/loans"
	"github.com/warp/payroll-engine/match"
	"github.com/warp/payroll-engine/money"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/reconcile"
	"github.com/warp/payroll-engine/report"
)

func aug(day int) time.Time {
	return time.Date(2025, time.August, day, 0, 0, 0, 0, time.UTC)
}

func fptr(v float64) *float64 { return &v }

func TestDailyMessage(t *testing.T) {
	res := &reconcile.DailyResult{
		Day:       aug(18), // a Monday
		Filled:    3,
		Unmatched: []string{"Zed Unknown"},
		LongShifts: []reconcile.StintHighlight{
			{Person: "Hank Pym", Longest: 10.6, Total: 11.5},
		},
		ShortDays: []reconcile.ShortDay{
			{Person: "Tiny Tim", Rounded: 3.5},
		},
	}

	got := report.DailyMessage(res, config.Default())

	want := "Updated Mon 08/18/2025: wrote Reg/OT for 3 matched employee(s).\n" +
		"Rounded to nearest 0.5h; Reg cap 8h.\n" +
		"\n" +
		"Not in WeeklyTime (1):\n" +
		"• Zed Unknown\n" +
		"\n" +
		"Long shifts >10:00 (1):\n" +
		"• Hank Pym — longest 10:36 (total 11:30)\n" +
		"\n" +
		"Very short day (>0:30 and <4:00) (1):\n" +
		"• Tiny Tim — total 3:30"
	assert.Equal(t, want, got)
}

func TestDailyMessage_CleanRun(t *testing.T) {
	res := &reconcile.DailyResult{Day: aug(19), Filled: 12}

	got := report.DailyMessage(res, config.Default())

	// Nothing flagged: just the two header lines, no empty sections.
	want := "Updated Tue 08/19/2025: wrote Reg/OT for 12 matched employee(s).\n" +
		"Rounded to nearest 0.5h; Reg cap 8h."
	assert.Equal(t, want, got)
}

func TestWeeklyMessage(t *testing.T) {
	days := make([]time.Time, 0, 7)
	for d := 18; d <= 24; d++ {
		days = append(days, aug(d))
	}

	res := &reconcile.WeeklyResult{
		Days:       days,
		FilledDays: 14,
		Matches: []match.Record{
			{Source: "Jon Smith", Target: "Jon Smithe", Score: 95},
			{Source: "Zed Unknown", Target: "", Score: 0, NeedsReview: true},
		},
		Review: []reconcile.ReviewEntry{
			{
				Day:        aug(19),
				SourceName: "Jon Smith",
				RosterName: "Jon Smithe",
				Score:      95,
				Stints:     []float64{10.6},
				Raw:        fptr(10.6),
				Rounded:    10.5,
				Suggested:  fptr(10.0),
				Reasons:    []string{"single_long_stint(10.60h)", "rounded(10.60->10.50)"},
			},
			{
				Day:        aug(18),
				SourceName: "Zed Unknown",
				Score:      0,
				Stints:     []float64{1.48},
				Raw:        fptr(1.48),
				Rounded:    1.5,
				Reasons:    []string{"low_name_match(0)", "very_low_weekday(1.5)", "rounded(1.48->1.50)"},
			},
			{
				Day:        aug(20),
				SourceName: "Maria Garcia",
				RosterName: "Maria Garcia",
				Score:      93,
				Rounded:    0,
				Reasons:    []string{"missing_day_for_regular"},
			},
		},
	}

	got := report.WeeklyMessage(res, config.Default())

	// The missing-day row counts as flagged but is excluded from the
	// heads-up tally and renders no example line.
	want := "Week 08/18 – 08/24: populated Reg (≤8h) & OT (> 8h), rounded to nearest 0.5h.\n" +
		"Filled 14 day-cells.\n" +
		"Flagged 3 item(s) for review.  Low-confidence name matches: 1.\n" +
		"Heads-up:\n" +
		"• low name match: 1\n" +
		"• single long stint: 1\n" +
		"• very low weekday: 1\n" +
		"\n" +
		"Examples:\n" +
		"- Jon Smithe on 08/19/2025: Long Stint: 10:36, Reduced 30m\n" +
		"- Zed Unknown on 08/18/2025: Low Name Match: 0%, Low Weekday: 1.5h\n" +
		"\n" +
		"Open the 'Review_Queue' sheet to fix any items. Thanks!"
	assert.Equal(t, want, got)
}

func TestWeeklyMessage_EmptyWeek(t *testing.T) {
	got := report.WeeklyMessage(&reconcile.WeeklyResult{}, config.Default())

	want := "Week N/A: populated Reg (≤8h) & OT (> 8h), rounded to nearest 0.5h.\n" +
		"Filled 0 day-cells.\n" +
		"Flagged 0 item(s) for review.\n" +
		"\n" +
		"Open the 'Review_Queue' sheet to fix any items. Thanks!"
	assert.Equal(t, want, got)
}

func TestWeeklyMessage_ExampleCap(t *testing.T) {
	res := &reconcile.WeeklyResult{Days: []time.Time{aug(18)}, FilledDays: 2}
	for _, name := range []string{"A One", "B Two", "C Three"} {
		res.Review = append(res.Review, reconcile.ReviewEntry{
			Day:        aug(18),
			SourceName: name,
			RosterName: name,
			Rounded:    1.5,
			Reasons:    []string{"very_low_weekday(1.5)"},
		})
	}
	cfg := config.Default()
	cfg.Violations.MaxExamples = 2

	got := report.WeeklyMessage(res, cfg)

	assert.Contains(t, got, "- A One on 08/18/2025")
	assert.Contains(t, got, "- B Two on 08/18/2025")
	assert.NotContains(t, got, "C Three")
}

func TestLedgerMessage(t *testing.T) {
	stats := report.LedgerStats{
		RosterRows:    12,
		CashCells:     9,
		PayrollCells:  4,
		SickEntries:   1,
		TotalsWritten: 6,
		Unmatched: []payroll.UnmatchedReport{
			{Name: "Zed Unknown", Missing: []string{"Cash", "Payroll"}},
		},
		Bonus: &bonus.Result{
			RegYards:     1000,
			DelfernYards: 200,
			TotalYards:   1200,
			NumForemen:   3,
		},
		Loans: &loans.Result{
			Processed: 3,
			Closed:    1,
			Notes:     []string{"Maria Garcia: only $150.00 deducted, $50.00 rolled"},
			Deducted:  map[string]money.Money{"Maria Garcia": money.New(150)},
		},
		LoanUnmatched: []string{"Walt Nobody"},
	}

	got := report.LedgerMessage(stats)

	want := "Filled 9 cash cell(s) and 4 payroll cell(s) from 12 roster row(s).\n" +
		"Sick entries: 1.\n" +
		"Wrote 6 cash total(s).\n" +
		"Yards: 1000 reg + 200 delfern = 1200; foremen: 3.\n" +
		"Loans: 3 processed, 1 closed.\n" +
		"\n" +
		"Not in ledgers (1):\n" +
		"• Zed Unknown (missing Cash, Payroll)\n" +
		"\n" +
		"Loan rows with no cash match (1):\n" +
		"• Walt Nobody\n" +
		"\n" +
		"Loan notes:\n" +
		"• Maria Garcia: only $150.00 deducted, $50.00 rolled"
	assert.Equal(t, want, got)
}

func TestLedgerMessage_NoExtras(t *testing.T) {
	got := report.LedgerMessage(report.LedgerStats{
		RosterRows: 5, CashCells: 3, PayrollCells: 2, TotalsWritten: 3,
	})

	want := "Filled 3 cash cell(s) and 2 payroll cell(s) from 5 roster row(s).\n" +
		"Sick entries: 0.\n" +
		"Wrote 3 cash total(s)."
	assert.Equal(t, want, got)
}
