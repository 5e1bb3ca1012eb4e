/*
Package bonus computes yard bonuses and reimbursements from the
office's bonus sheet.

PURPOSE:
  Alongside hourly pay, crews earn a share of the week's yardage.
  The bonus sheet carries two scalar cells with the week's yard
  counts, then a table of people: who gets reimbursed what, and what
  bonus role each person plays. This package turns that sheet into
  per-person dollar amounts keyed by cash-ledger name.

SHEET LAYOUT:
  B2  regular yards for the week
  B3  delfern yards for the week

  A header row whose first cell reads "name" opens the table:
    0 Name   1 Reimbursement   2 Role   3 Uploads

ROLES:
  The role cell is free text; the first matching keyword wins, in
  this order:
    foreman  split of total yards across all foremen, scaled by the
             foreman's upload count out of 10
    3x       three times the delfern yards
    0.5      half of total yards
    1x       total yards

REIMBURSEMENTS:
  The reimbursement cell is a dollar figure or an "=" formula, summed
  per person. Rows named "total" are the sheet's own footer and are
  skipped.

ATTRIBUTION:
  Both flows attach to a cash-ledger name through the bonus match
  tier, which is looser than ledger matching. Rows that match no cash
  name earn nothing; the money has nowhere to land.
*/
package bonus

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/warp/payroll-engine/config"
	"github.com/warp/payroll-engine/match"
	"github.com/warp/payroll-engine/money"
	"github.com/warp/payroll-engine/sheet"
)

// =============================================================================
// SHEET LAYOUT
// =============================================================================

const (
	regYardsRow = 1 // cell B2
	delfernRow  = 2 // cell B3
	scalarCol   = 1
	nameCol     = 0
	reimbCol    = 1
	roleCol     = 2
	uploadsCol  = 3
	maxUploads  = 10.0
	headerLabel = "name"
	footerLabel = "total"
)

// =============================================================================
// ROLES
// =============================================================================

// Role is a bonus formula keyword found in the role cell.
type Role string

const (
	RoleForeman Role = "foreman"
	RoleTriple  Role = "3x"
	RoleHalf    Role = "0.5"
	RoleSingle  Role = "1x"
	RoleNone    Role = ""
)

// ParseRole finds the first known keyword in a role cell.
func ParseRole(s string) Role {
	v := strings.ToLower(strings.TrimSpace(s))
	for _, r := range []Role{RoleForeman, RoleTriple, RoleHalf, RoleSingle} {
		if strings.Contains(v, string(r)) {
			return r
		}
	}
	return RoleNone
}

// =============================================================================
// UPLOADS
// =============================================================================

var uploadSepRE = regexp.MustCompile(`[^\d.]+`)

// ParseUploads reads a foreman's upload-count cell. Accepts a plain
// number or an informal sum like "2+3", "2,3" or "2 3"; the result is
// clamped to [0, 10] because ten uploads is a full share.
func ParseUploads(s string) float64 {
	v := strings.TrimSpace(s)
	if v == "" {
		return 0
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return clampUploads(f)
	}
	v = strings.ReplaceAll(v, ",", "+")
	v = strings.ReplaceAll(v, " ", "")
	total := 0.0
	for _, part := range uploadSepRE.Split(v, -1) {
		if part == "" {
			continue
		}
		if f, err := strconv.ParseFloat(part, 64); err == nil {
			total += f
		}
	}
	return clampUploads(total)
}

func clampUploads(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > maxUploads {
		return maxUploads
	}
	return v
}

// =============================================================================
// APPLY
// =============================================================================

// Result is the money the bonus sheet assigns, keyed by cash-ledger
// name.
type Result struct {
	RegYards        float64
	DelfernYards    float64
	TotalYards      float64
	NumForemen      int
	PeopleWithBonus int
	Bonuses         map[string]money.Money
	Reimb           map[string]money.Money
}

// Apply reads the bonus sheet and attributes bonuses and
// reimbursements to cash-ledger names.
func Apply(t *sheet.Table, cashNames []string, m config.Matching) (*Result, error) {
	startRow, err := findTableStart(t)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Bonuses: make(map[string]money.Money),
		Reimb:   make(map[string]money.Money),
	}
	res.RegYards, _ = sheet.ParseFloat(t.Cell(regYardsRow, scalarCol))
	res.DelfernYards, _ = sheet.ParseFloat(t.Cell(delfernRow, scalarCol))
	res.TotalYards = res.RegYards + res.DelfernYards

	// Foremen are counted before any bonus is computed: each foreman's
	// share depends on how many there are.
	for row := startRow; row < t.NumRows(); row++ {
		if ParseRole(t.Cell(row, roleCol)) == RoleForeman {
			res.NumForemen++
		}
	}

	for row := startRow; row < t.NumRows(); row++ {
		name := t.Cell(row, nameCol)
		role := ParseRole(t.Cell(row, roleCol))
		if sheet.Blank(name) || role == RoleNone {
			continue
		}

		amount := res.roleBonus(role)
		if amount <= 0 {
			continue
		}
		if role == RoleForeman {
			amount *= ParseUploads(t.Cell(row, uploadsCol)) / maxUploads
		}
		if cm := match.MatchLedger(name, cashNames, m.BonusScore, m.FallbackScore); cm.Ok() {
			res.Bonuses[cm.Name] = res.Bonuses[cm.Name].Add(money.New(amount))
			res.PeopleWithBonus++
		}
	}

	for row := startRow; row < t.NumRows(); row++ {
		name := t.Cell(row, nameCol)
		if sheet.Blank(name) || sheet.Label(name) == footerLabel {
			continue
		}
		val, ok := sheet.ParseMoney(t.Cell(row, reimbCol))
		if !ok {
			continue
		}
		if cm := match.MatchLedger(name, cashNames, m.BonusScore, m.FallbackScore); cm.Ok() {
			res.Reimb[cm.Name] = res.Reimb[cm.Name].Add(money.New(val))
		}
	}
	return res, nil
}

// roleBonus is the base dollar amount for a role, before the foreman
// upload scaling.
func (r *Result) roleBonus(role Role) float64 {
	switch role {
	case RoleForeman:
		if r.NumForemen == 0 {
			return 0
		}
		return r.TotalYards / float64(r.NumForemen)
	case RoleTriple:
		return r.DelfernYards * 3
	case RoleHalf:
		return r.TotalYards * 0.5
	case RoleSingle:
		return r.TotalYards
	}
	return 0
}

func findTableStart(t *sheet.Table) (int, error) {
	for row := 0; row < t.NumRows(); row++ {
		if sheet.Label(t.Cell(row, nameCol)) == headerLabel {
			return row + 1, nil
		}
	}
	return 0, &sheet.MissingLabelError{Sheet: t.Name, Label: headerLabel}
}
