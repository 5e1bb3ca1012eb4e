package reconcile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll-engine/config"
	"github.com/warp/payroll-engine/reconcile"
)

// weekFixture: Jon works Mon-Wed (one long Tuesday), Maria one huge
// Monday, Tiny Tim is not on the timesheet at all.
func weekFixture(t *testing.T) (*reconcile.Timesheet, *reconcile.PunchSet) {
	t.Helper()
	ts, err := reconcile.ReadTimesheet(weeklyGrid("Jon Smithe", "Maria Garcia", "Fred Macdonald"))
	require.NoError(t, err)

	ps := reconcile.NewPunchSet()
	ps.Add(reconcile.Punch{Day: aug(18), Name: "Jon Smith", Hours: 8.1})
	ps.Add(reconcile.Punch{Day: aug(19), Name: "Jon Smith", Hours: 10.6})
	ps.Add(reconcile.Punch{Day: aug(20), Name: "Jon Smith", Hours: 8.0})
	ps.Add(reconcile.Punch{Day: aug(18), Name: "Maria Garcia", Hours: 17.6})
	ps.Add(reconcile.Punch{Day: aug(18), Name: "Tiny Tim", Hours: 1.6})
	return ts, ps
}

func TestWeekly_FillsEveryMappedDay(t *testing.T) {
	ts, ps := weekFixture(t)
	grid := ts.Table

	res := reconcile.Weekly(ts, ps, config.Default())

	// Two matched people x seven days.
	assert.Equal(t, 14, res.FilledDays)
	assert.Equal(t, []string{"Tiny Tim"}, res.Unmatched)
	assert.Len(t, res.Matches, 3)

	// Jon, row 4: Mon snaps to 8, Tue splits 8/2.5, Thu is a zero day.
	assert.Equal(t, "8", grid.Cell(4, 1))
	assert.Equal(t, "", grid.Cell(4, 2))
	assert.Equal(t, "8", grid.Cell(4, 3))
	assert.Equal(t, "2.5", grid.Cell(4, 4))
	assert.Equal(t, "0", grid.Cell(4, 7))
	assert.Equal(t, "", grid.Cell(4, 8))

	// Maria, row 5: Monday 17.5 splits 8/9.5, Tuesday zero.
	assert.Equal(t, "8", grid.Cell(5, 1))
	assert.Equal(t, "9.5", grid.Cell(5, 2))
	assert.Equal(t, "0", grid.Cell(5, 3))

	// Fred never matched: untouched.
	assert.Equal(t, "", grid.Cell(6, 1))
}

func TestWeekly_MissingDayForRegular(t *testing.T) {
	ts, ps := weekFixture(t)

	res := reconcile.Weekly(ts, ps, config.Default())

	// Jon is a regular (3 worked days, match 95): Thu-Sun are holes.
	var missing []reconcile.ReviewEntry
	for _, e := range res.Review {
		if e.HasTag(reconcile.TagMissingDay) {
			missing = append(missing, e)
		}
	}
	require.Len(t, missing, 4)
	for _, e := range missing {
		assert.Equal(t, "Jon Smithe", e.RosterName)
		assert.Equal(t, "Jon Smith", e.SourceName)
		assert.Equal(t, 95, e.Score)
		assert.Nil(t, e.Raw)
		assert.Equal(t, 0.0, e.Rounded)
	}
	assert.Equal(t, aug(21), missing[0].Day)
	assert.Equal(t, aug(24), missing[3].Day)

	// Maria worked one day: not a regular, no hole entries for her.
	for _, e := range res.Review {
		if e.Person() == "Maria Garcia" {
			assert.False(t, e.HasTag(reconcile.TagMissingDay))
		}
	}
}

func TestWeekly_ViolationOrdering(t *testing.T) {
	ts, ps := weekFixture(t)

	res := reconcile.Weekly(ts, ps, config.Default())

	// Jon: long Tuesday (3) + four holes (1 each) = 7 over 5 rows.
	// Maria: gt_daily_max + single_long_stint on Monday = 6 over 1 row.
	// Tim: low_name_match + very_low_weekday = 3 over 1 row.
	require.Len(t, res.Violations, 3)
	assert.Equal(t, "Jon Smithe", res.Violations[0].Person)
	assert.Equal(t, 7, res.Violations[0].Score)
	assert.Equal(t, 5, res.Violations[0].Rows)
	assert.Equal(t, "missing_day_for_regular:4, rounded:1, single_long_stint:1",
		res.Violations[0].TopReasons)

	assert.Equal(t, "Maria Garcia", res.Violations[1].Person)
	assert.Equal(t, 6, res.Violations[1].Score)

	assert.Equal(t, "Tiny Tim", res.Violations[2].Person)
	assert.Equal(t, 3, res.Violations[2].Score)

	// Review is sorted by person severity; Jon's Monday rides along
	// even though its only finding (rounding to a standard day) weighs
	// nothing.
	require.Len(t, res.Review, 8)
	assert.Equal(t, "Jon Smithe", res.Review[0].Person())
	assert.Equal(t, aug(18), res.Review[0].Day)
	assert.Equal(t, "Maria Garcia", res.Review[6].Person())
	assert.Equal(t, "Tiny Tim", res.Review[7].Person())

	maria := res.Review[6]
	assert.Equal(t,
		[]string{"gt_daily_max(17.5)", "rounded(17.60->17.50)", "single_long_stint(17.60h)"},
		maria.Reasons)
	require.NotNil(t, maria.Suggested)
	assert.Equal(t, 17.0, *maria.Suggested)

	tim := res.Review[7]
	assert.Equal(t,
		[]string{"low_name_match(0)", "very_low_weekday(1.5)", "rounded(1.60->1.50)"},
		tim.Reasons)
}

func TestWeekly_LeaderboardAndPreviews(t *testing.T) {
	ts, ps := weekFixture(t)

	res := reconcile.Weekly(ts, ps, config.Default())

	require.Len(t, res.Leaderboard, 3)
	assert.Equal(t, "Maria Garcia", res.Leaderboard[0].Person)
	assert.InDelta(t, 17.6, res.Leaderboard[0].MaxStint, 1e-9)
	assert.Equal(t, aug(18), res.Leaderboard[0].DayOfMax)
	assert.Equal(t, 1, res.Leaderboard[0].DaysOver)
	assert.InDelta(t, 17.5, res.Leaderboard[0].WeekRounded, 1e-9)

	assert.Equal(t, "Jon Smithe", res.Leaderboard[1].Person)
	assert.Equal(t, aug(19), res.Leaderboard[1].DayOfMax)
	assert.InDelta(t, 26.5, res.Leaderboard[1].WeekRounded, 1e-9)

	assert.Equal(t, "Tiny Tim", res.Leaderboard[2].Person)
	assert.Equal(t, 0, res.Leaderboard[2].DaysOver)

	// Longest-shift preview: one line per person with a stint >= 4h.
	require.Len(t, res.Longest, 2)
	assert.Equal(t, "Maria Garcia", res.Longest[0].Person)
	require.NotNil(t, res.Longest[0].Suggested)
	assert.Equal(t, 17.0, *res.Longest[0].Suggested)
	assert.Equal(t, "Jon Smithe", res.Longest[1].Person)
	assert.InDelta(t, 10.6, res.Longest[1].Longest, 1e-9)

	// Overtime preview: heaviest day per person over the cap.
	require.Len(t, res.Overtime, 2)
	assert.Equal(t, "Maria Garcia", res.Overtime[0].Person)
	assert.InDelta(t, 9.5, res.Overtime[0].OTHours, 1e-9)
	assert.Equal(t, "Jon Smithe", res.Overtime[1].Person)
	assert.InDelta(t, 2.5, res.Overtime[1].OTHours, 1e-9)
	assert.Equal(t, aug(19), res.Overtime[1].Day)
}
