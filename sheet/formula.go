/*
formula.go - Restricted formula evaluation for money cells

PURPOSE:
  Reimbursement and loan sheets carry hand-entered cells like
  "=120+45.50-10": the office types the receipts straight into the
  cell. The engine receives cell text, not computed workbook values,
  so it evaluates these itself.

SCOPE:
  The accepted grammar is additions and subtractions of decimal
  numbers with parentheses. Nothing else: no cell references, no
  functions, no multiplication. Anything outside the grammar is an
  error and the caller treats the cell as unusable.
*/
package sheet

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseMoney reads a dollar cell: either a plain figure (currency
// signs and separators tolerated) or an "=" formula.
func ParseMoney(s string) (float64, bool) {
	v := strings.TrimSpace(s)
	if v == "" {
		return 0, false
	}
	if strings.HasPrefix(v, "=") {
		f, err := EvalFormula(v[1:])
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return ParseFloat(v)
}

// EvalFormula evaluates a formula body of numbers joined by + and -,
// with optional parentheses.
func EvalFormula(expr string) (float64, error) {
	p := &formulaParser{src: expr}
	v, err := p.sum()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return 0, fmt.Errorf("formula: unexpected %q at offset %d", p.src[p.pos], p.pos)
	}
	return v, nil
}

type formulaParser struct {
	src string
	pos int
}

func (p *formulaParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *formulaParser) peek() (byte, bool) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0, false
	}
	return p.src[p.pos], true
}

// sum = value { ("+"|"-") value }
func (p *formulaParser) sum() (float64, error) {
	total, err := p.value()
	if err != nil {
		return 0, err
	}
	for {
		op, ok := p.peek()
		if !ok || (op != '+' && op != '-') {
			return total, nil
		}
		p.pos++
		v, err := p.value()
		if err != nil {
			return 0, err
		}
		if op == '+' {
			total += v
		} else {
			total -= v
		}
	}
}

// value = ["-"] ( number | "(" sum ")" )
func (p *formulaParser) value() (float64, error) {
	c, ok := p.peek()
	if !ok {
		return 0, fmt.Errorf("formula: unexpected end of input")
	}
	if c == '-' {
		p.pos++
		v, err := p.value()
		return -v, err
	}
	if c == '(' {
		p.pos++
		v, err := p.sum()
		if err != nil {
			return 0, err
		}
		c, ok = p.peek()
		if !ok || c != ')' {
			return 0, fmt.Errorf("formula: missing closing parenthesis")
		}
		p.pos++
		return v, nil
	}
	return p.number()
}

func (p *formulaParser) number() (float64, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) && (p.src[p.pos] == '.' || (p.src[p.pos] >= '0' && p.src[p.pos] <= '9')) {
		p.pos++
	}
	if p.pos == start {
		return 0, fmt.Errorf("formula: expected number at offset %d", start)
	}
	f, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("formula: bad number %q", p.src[start:p.pos])
	}
	return f, nil
}
