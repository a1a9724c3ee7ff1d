// Package core holds the domain model and the derived-metrics
// computations every presentation surface depends on.
//
// This file contains the metrics calculator: pure functions over a
// snapshot of expenses plus the income/budget scalars. None of them
// perform I/O, none return NaN; malformed numeric input degrades to 0
// so the caller always has a renderable number.
package core

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Budget consumption tiers. Thresholds are fixed, not configurable.
const (
	WarningThreshold  = 70.0
	ExceededThreshold = 90.0
)

// BudgetStatus classifies budget consumption for the progress bar and
// the warning banner.
type BudgetStatus string

const (
	StatusOK       BudgetStatus = "ok"
	StatusWarning  BudgetStatus = "warning"
	StatusExceeded BudgetStatus = "exceeded"
)

// CategoryTotal aggregates one category's current-month spending.
type CategoryTotal struct {
	Category Category `json:"category"`
	Total    float64  `json:"total"`
	Count    int      `json:"count"`
}

// Summary is the full set of derived numbers for one snapshot.
type Summary struct {
	Total            float64         `json:"total"`
	MonthTotal       float64         `json:"month_total"`
	Remaining        float64         `json:"remaining"`
	BudgetPercentage float64         `json:"budget_percentage"`
	BudgetStatus     BudgetStatus    `json:"budget_status"`
	Breakdown        []CategoryTotal `json:"breakdown"`
}

// ParsePrice coerces an arbitrary value to a price. Nil, non-numeric,
// NaN and Inf all degrade to 0. This is the sole numeric-safety gate
// before any arithmetic.
func ParsePrice(v any) float64 {
	switch val := v.(type) {
	case nil:
		return 0
	case float64:
		return SafePrice(val)
	case float32:
		return SafePrice(float64(val))
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0
		}
		return SafePrice(f)
	default:
		return 0
	}
}

// SafePrice guards a float against NaN and Inf.
func SafePrice(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// FilterMonth keeps expenses whose date falls in the same calendar
// month and year as ref. Missing or unparseable dates are excluded,
// not errored.
func FilterMonth(expenses []Expense, ref time.Time) []Expense {
	var out []Expense
	for _, e := range expenses {
		t, err := ParseDate(e.Date)
		if err != nil {
			continue
		}
		if t.Year() == ref.Year() && t.Month() == ref.Month() {
			out = append(out, e)
		}
	}
	return out
}

// SumPrices sums the safe price of every expense. Empty sums to 0.
func SumPrices(expenses []Expense) float64 {
	var total float64
	for _, e := range expenses {
		total += SafePrice(e.Price)
	}
	return total
}

// Breakdown groups expenses by normalized category, accumulating total
// and count. Sorted by total descending; ties keep first-encounter
// order.
func Breakdown(expenses []Expense) []CategoryTotal {
	index := make(map[Category]int)
	var out []CategoryTotal
	for _, e := range expenses {
		cat := e.Category.Normalize()
		i, ok := index[cat]
		if !ok {
			i = len(out)
			index[cat] = i
			out = append(out, CategoryTotal{Category: cat})
		}
		out[i].Total += SafePrice(e.Price)
		out[i].Count++
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total > out[j].Total
	})
	return out
}

// BudgetPercentage returns monthTotal as a percentage of budget.
// A zero or negative budget means "no budget set" and yields 0, so
// there is never a division by zero.
func BudgetPercentage(monthTotal, budget float64) float64 {
	if budget <= 0 {
		return 0
	}
	return SafePrice(monthTotal/budget) * 100
}

// BudgetStatusFor classifies a consumption percentage into the three
// fixed tiers.
func BudgetStatusFor(percentage float64) BudgetStatus {
	switch {
	case percentage >= ExceededThreshold:
		return StatusExceeded
	case percentage >= WarningThreshold:
		return StatusWarning
	default:
		return StatusOK
	}
}

// Remaining is income minus all-time spending. Negative signals
// overspend relative to income, distinct from the month-scoped budget
// overspend.
func Remaining(income, totalAllTime float64) float64 {
	return SafePrice(income) - SafePrice(totalAllTime)
}

// BuildSummary derives every user-visible number from one snapshot.
func BuildSummary(expenses []Expense, settings Settings, ref time.Time) Summary {
	month := FilterMonth(expenses, ref)
	total := SumPrices(expenses)
	monthTotal := SumPrices(month)
	pct := BudgetPercentage(monthTotal, settings.Budget)
	return Summary{
		Total:            total,
		MonthTotal:       monthTotal,
		Remaining:        Remaining(settings.Income, total),
		BudgetPercentage: pct,
		BudgetStatus:     BudgetStatusFor(pct),
		Breakdown:        Breakdown(month),
	}
}
