package pipeline

import (
	"context"

	"github.com/warp/payroll-engine/reconcile"
	"github.com/warp/payroll-engine/report"
	"github.com/warp/payroll-engine/sheet"
	"github.com/warp/payroll-engine/store"
)

// WeeklyRun is the outcome of a full-week fill. Timesheet is the
// input table updated in place; ReviewQueue and Matching are the
// helper sheets for the output workbook.
type WeeklyRun struct {
	Result      *reconcile.WeeklyResult
	Timesheet   *sheet.Table
	ReviewQueue *sheet.Table
	Matching    *sheet.Table
	Filename    string
	Message     string
	Run         store.Run
}

// Weekly reconciles a whole week of punches into the weekly timesheet.
func (r *Runner) Weekly(ctx context.Context, weekly, punches *sheet.Table) (*WeeklyRun, error) {
	ts, err := reconcile.ReadTimesheet(weekly)
	if err != nil {
		return nil, err
	}
	ps, err := reconcile.ReadPunches(punches)
	if err != nil {
		return nil, err
	}

	res := reconcile.Weekly(ts, ps, r.Settings)

	msg := report.WeeklyMessage(res, r.Settings)
	matched, review := matchCounters(res.Matches)
	run, err := r.record(ctx, store.KindWeekly, store.Counters{
		Matched:     matched,
		Unmatched:   len(res.Unmatched),
		NeedsReview: review,
		CellsFilled: res.FilledDays,
		Anomalies:   len(res.Review),
	}, msg)
	if err != nil {
		return nil, err
	}

	return &WeeklyRun{
		Result:      res,
		Timesheet:   ts.Table,
		ReviewQueue: report.ReviewQueueTable(res.Review),
		Matching:    report.NameMatchingTable(res.Matches),
		Filename:    r.OutputName(r.Settings.Output.WeeklyPrefix),
		Message:     msg,
		Run:         run,
	}, nil
}
