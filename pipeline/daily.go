package pipeline

import (
	"context"
	"time"

	"github.com/warp/payroll-engine/reconcile"
	"github.com/warp/payroll-engine/report"
	"github.com/warp/payroll-engine/sheet"
	"github.com/warp/payroll-engine/store"
)

// DailyRun is the outcome of a daily fill: the reconciliation result,
// the timesheet table updated in place, and the run artifacts.
type DailyRun struct {
	Result    *reconcile.DailyResult
	Timesheet *sheet.Table
	Filename  string
	Message   string
	Run       store.Run
}

// Daily projects the punches dated day onto the weekly timesheet.
// Structural input problems (no day headers, the requested date not
// among them, missing name column) abort the run.
func (r *Runner) Daily(ctx context.Context, weekly, punches *sheet.Table, day time.Time) (*DailyRun, error) {
	ts, err := reconcile.ReadTimesheet(weekly)
	if err != nil {
		return nil, err
	}
	ps, err := reconcile.ReadPunches(punches)
	if err != nil {
		return nil, err
	}

	res, err := reconcile.Daily(ts, ps, day, r.Settings)
	if err != nil {
		return nil, err
	}

	msg := report.DailyMessage(res, r.Settings)
	matched, review := matchCounters(res.Matches)
	run, err := r.record(ctx, store.KindDaily, store.Counters{
		Matched:     matched,
		Unmatched:   len(res.Unmatched),
		NeedsReview: review,
		CellsFilled: 2 * res.Filled,
		Anomalies:   len(res.Review),
	}, msg)
	if err != nil {
		return nil, err
	}

	return &DailyRun{
		Result:    res,
		Timesheet: ts.Table,
		Filename:  r.OutputName(r.Settings.Output.WeeklyPrefix),
		Message:   msg,
		Run:       run,
	}, nil
}
