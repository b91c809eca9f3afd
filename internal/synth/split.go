// Package synth derives reproducible demo figures (ageing, retentions,
// snapshots, hover summaries) from a company's balances and id.
package synth

import "github.com/shopspring/decimal"

// Share is one named fraction of a total.
type Share struct {
	Label    string
	Fraction decimal.Decimal
}

// Table is an ordered split: every share gets its rounded fraction and the
// Residual bucket takes whatever is left.
type Table struct {
	Shares   []Share
	Residual string
}

// Bucket is one computed share of a split.
type Bucket struct {
	Label  string
	Amount int64
}

func share(label, fraction string) Share {
	return Share{Label: label, Fraction: decimal.RequireFromString(fraction)}
}

// AgeingTable splits a ledger balance by days past due.
var AgeingTable = Table{
	Shares: []Share{
		share("notDue", "0.35"),
		share("d30", "0.25"),
		share("d60", "0.18"),
		share("d90", "0.12"),
	},
	Residual: "over",
}

// RetentionTable splits a ledger balance into the reasons funding is held
// back, leaving the rest approved.
var RetentionTable = Table{
	Shares: []Share{
		share("ageing", "0.25"),
		share("manual", "0.10"),
		share("concentration", "0.15"),
		share("funding", "0.10"),
		share("contra", "0.10"),
	},
	Residual: "approved",
}

// Split divides total across t. Buckets always sum to exactly max(total, 0)
// and are never negative: a share is capped at what remains of the total, and
// the residual bucket absorbs rounding.
func Split(total int64, t Table) []Bucket {
	if total < 0 {
		total = 0
	}
	whole := decimal.NewFromInt(total)

	out := make([]Bucket, 0, len(t.Shares)+1)
	remaining := total
	for _, s := range t.Shares {
		amt := roundHalfUp(whole.Mul(s.Fraction)).IntPart()
		if amt < 0 {
			amt = 0
		}
		if amt > remaining {
			amt = remaining
		}
		remaining -= amt
		out = append(out, Bucket{Label: s.Label, Amount: amt})
	}
	return append(out, Bucket{Label: t.Residual, Amount: remaining})
}

// Ageing is a balance bucketed by days past due.
type Ageing struct {
	NotDue int64
	Days30 int64
	Days60 int64
	Days90 int64
	Over   int64
}

// AgeingFor splits total with AgeingTable.
func AgeingFor(total int64) Ageing {
	b := Split(total, AgeingTable)
	return Ageing{NotDue: b[0].Amount, Days30: b[1].Amount, Days60: b[2].Amount, Days90: b[3].Amount, Over: b[4].Amount}
}

// Total returns the sum of all ageing bands.
func (a Ageing) Total() int64 {
	return a.NotDue + a.Days30 + a.Days60 + a.Days90 + a.Over
}

// Retentions is a balance broken down by retention reason.
type Retentions struct {
	Ageing        int64
	Manual        int64
	Concentration int64
	Funding       int64
	Contra        int64
	Approved      int64
}

// RetentionsFor splits total with RetentionTable.
func RetentionsFor(total int64) Retentions {
	b := Split(total, RetentionTable)
	return Retentions{
		Ageing:        b[0].Amount,
		Manual:        b[1].Amount,
		Concentration: b[2].Amount,
		Funding:       b[3].Amount,
		Contra:        b[4].Amount,
		Approved:      b[5].Amount,
	}
}

// Total returns the sum of all retention buckets.
func (r Retentions) Total() int64 {
	return r.Ageing + r.Manual + r.Concentration + r.Funding + r.Contra + r.Approved
}

// WholeAmount rounds a money balance to whole units and drops the sign, the
// form Split expects.
func WholeAmount(balance decimal.Decimal) int64 {
	return roundHalfUp(balance).Abs().IntPart()
}
