/*
Package config holds every tunable the reconciliation engine reads.

PURPOSE:
  The thresholds and caps in this file are business policy, not code:
  the office decides that 92 is a confident name match and that a
  type-C employee's payroll tops out at 24 hours. Policy changes must
  not require a recompile, so all of it loads from JSON or YAML over
  the compiled-in defaults.

JSON SCHEMA (every field optional; omitted fields keep their default):
  {
    "matching":   {"strict_score": 92, "fallback_score": 85, "bonus_match_score": 90},
    "caps":       {"daily_regular_cap": 8, "daily_max_sanity": 16,
                   "weekly_cash_cap": 40, "type_c_payroll_cap": 24,
                   "sick_hours_per_day": 8},
    "flags":      {"long_stint_hours": 10, "short_weekday_hours": 2,
                   "lunch_deduct_hours": 0.5},
    "violations": {"weights": {"single_long_stint": 3},
                   "exclude_from_heads_up": ["missing_day_for_regular", "rounded"],
                   "max_examples": 8},
    "loans":      {"enabled": true, "close_epsilon": 1e-6,
                   "floor_cash_at_zero": true},
    "output":     {"date_format": "01.02.06"}
  }

DEFAULTS:
  Default() returns the full production configuration. Loading merges
  on top of it: a file overriding one violation weight keeps the rest.

SEE ALSO:
  - reconcile/: consumes Matching, Caps, Flags, Violations
  - payroll/, bonus/, loans/: consume Caps, Matching, Loans
*/
package config

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// SETTINGS GROUPS
// =============================================================================

// Matching holds the fuzzy-match thresholds, all on the 0-100 score
// scale. Strict is the primary tier, Fallback the surname tier, Bonus
// the looser tier used only for bonus attribution.
type Matching struct {
	StrictScore   int `json:"strict_score" yaml:"strict_score"`
	FallbackScore int `json:"fallback_score" yaml:"fallback_score"`
	BonusScore    int `json:"bonus_match_score" yaml:"bonus_match_score"`
}

// Caps holds the hour ceilings the splitter and reconcilers apply.
type Caps struct {
	DailyRegular    float64 `json:"daily_regular_cap" yaml:"daily_regular_cap"`
	DailyMax        float64 `json:"daily_max_sanity" yaml:"daily_max_sanity"`
	WeeklyCash      float64 `json:"weekly_cash_cap" yaml:"weekly_cash_cap"`
	TypeCPayroll    float64 `json:"type_c_payroll_cap" yaml:"type_c_payroll_cap"`
	SickHoursPerDay float64 `json:"sick_hours_per_day" yaml:"sick_hours_per_day"`
}

// Flags holds the anomaly-detection thresholds.
type Flags struct {
	LongStint   float64 `json:"long_stint_hours" yaml:"long_stint_hours"`
	LowWeekday  float64 `json:"short_weekday_hours" yaml:"short_weekday_hours"`
	LunchDeduct float64 `json:"lunch_deduct_hours" yaml:"lunch_deduct_hours"`
}

// Violations controls review-report ordering. Weights are arbitrary
// severity tuning owned by the office; nothing downstream depends on
// their absolute values, only on the sort order they induce.
type Violations struct {
	Weights            map[string]int `json:"weights" yaml:"weights"`
	ExcludeFromHeadsUp []string       `json:"exclude_from_heads_up" yaml:"exclude_from_heads_up"`
	MaxExamples        int            `json:"max_examples" yaml:"max_examples"`
}

// Loans controls the allocator.
type Loans struct {
	Enabled         bool    `json:"enabled" yaml:"enabled"`
	CloseEpsilon    float64 `json:"close_epsilon" yaml:"close_epsilon"`
	FloorCashAtZero bool    `json:"floor_cash_at_zero" yaml:"floor_cash_at_zero"`
}

// Output holds naming conventions for the artifacts a caller saves.
type Output struct {
	DateFormat    string `json:"date_format" yaml:"date_format"`
	CashPrefix    string `json:"cash_prefix" yaml:"cash_prefix"`
	PayrollPrefix string `json:"payroll_prefix" yaml:"payroll_prefix"`
	WeeklyPrefix  string `json:"weekly_prefix" yaml:"weekly_prefix"`
}

// Settings is the complete engine configuration.
type Settings struct {
	Matching   Matching   `json:"matching" yaml:"matching"`
	Caps       Caps       `json:"caps" yaml:"caps"`
	Flags      Flags      `json:"flags" yaml:"flags"`
	Violations Violations `json:"violations" yaml:"violations"`
	Loans      Loans      `json:"loans" yaml:"loans"`
	Output     Output     `json:"output" yaml:"output"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the production configuration.
func Default() Settings {
	return Settings{
		Matching: Matching{
			StrictScore:   92,
			FallbackScore: 85,
			BonusScore:    90,
		},
		Caps: Caps{
			DailyRegular:    8,
			DailyMax:        16,
			WeeklyCash:      40,
			TypeCPayroll:    24,
			SickHoursPerDay: 8,
		},
		Flags: Flags{
			LongStint:   10,
			LowWeekday:  2,
			LunchDeduct: 0.5,
		},
		Violations: Violations{
			Weights: map[string]int{
				"single_long_stint":       3,
				"gt_daily_max":            3,
				"low_name_match":          2,
				"very_low_weekday":        1,
				"missing_day_for_regular": 1,
				"rounded":                 0,
			},
			ExcludeFromHeadsUp: []string{"missing_day_for_regular", "rounded"},
			MaxExamples:        8,
		},
		Loans: Loans{
			Enabled:         true,
			CloseEpsilon:    1e-6,
			FloorCashAtZero: true,
		},
		Output: Output{
			DateFormat:    "01.02.06",
			CashPrefix:    "Cash_Filled_",
			PayrollPrefix: "Payroll_Filled_",
			WeeklyPrefix:  "Weekly_Updated_",
		},
	}
}

// =============================================================================
// LOADING
// =============================================================================

// FromJSON decodes overrides on top of the defaults.
func FromJSON(data []byte) (Settings, error) {
	s := Default()
	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parse settings JSON: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// FromYAML decodes overrides on top of the defaults.
func FromYAML(data []byte) (Settings, error) {
	s := Default()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parse settings YAML: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate rejects configurations the engine cannot run with.
func (s Settings) Validate() error {
	check := func(name string, score int) error {
		if score < 50 || score > 100 {
			return fmt.Errorf("settings: %s must be in [50,100], got %d", name, score)
		}
		return nil
	}
	if err := check("matching.strict_score", s.Matching.StrictScore); err != nil {
		return err
	}
	if err := check("matching.fallback_score", s.Matching.FallbackScore); err != nil {
		return err
	}
	if err := check("matching.bonus_match_score", s.Matching.BonusScore); err != nil {
		return err
	}
	if s.Matching.FallbackScore > s.Matching.StrictScore {
		return fmt.Errorf("settings: fallback_score %d exceeds strict_score %d",
			s.Matching.FallbackScore, s.Matching.StrictScore)
	}

	if s.Caps.DailyRegular <= 0 {
		return fmt.Errorf("settings: daily_regular_cap must be positive, got %v", s.Caps.DailyRegular)
	}
	if s.Caps.DailyMax < s.Caps.DailyRegular {
		return fmt.Errorf("settings: daily_max_sanity %v below daily_regular_cap %v",
			s.Caps.DailyMax, s.Caps.DailyRegular)
	}
	if s.Caps.WeeklyCash <= 0 || s.Caps.TypeCPayroll < 0 || s.Caps.SickHoursPerDay < 0 {
		return fmt.Errorf("settings: caps must be non-negative (weekly_cash_cap positive)")
	}

	if s.Flags.LongStint <= 0 || s.Flags.LowWeekday < 0 || s.Flags.LunchDeduct < 0 {
		return fmt.Errorf("settings: flag thresholds must be non-negative (long_stint_hours positive)")
	}

	for tag, w := range s.Violations.Weights {
		if w < 0 {
			return fmt.Errorf("settings: violation weight for %q is negative", tag)
		}
	}
	if s.Violations.MaxExamples < 0 {
		return fmt.Errorf("settings: max_examples must be non-negative")
	}

	if s.Loans.CloseEpsilon <= 0 {
		return fmt.Errorf("settings: close_epsilon must be positive, got %v", s.Loans.CloseEpsilon)
	}
	if s.Output.DateFormat == "" {
		return fmt.Errorf("settings: date_format must not be empty")
	}
	return nil
}

// Weight returns the violation weight for a reason tag; unknown tags
// weigh zero so a new flag cannot skew report order until the office
// assigns it a severity.
func (v Violations) Weight(tag string) int {
	return v.Weights[tag]
}

// Excluded reports whether a reason tag is left out of the heads-up
// section of the weekly message.
func (v Violations) Excluded(tag string) bool {
	for _, t := range v.ExcludeFromHeadsUp {
		if t == tag {
			return true
		}
	}
	return false
}
