package core

import (
	"sort"
	"time"
)

// CategoryTotal is an aggregated amount for one normalized category.
type CategoryTotal struct {
	Category string `json:"category"`
	Total    Money  `json:"total"`
}

// OtherCategory labels the rollup bucket for categories beyond the top five.
const OtherCategory = "Other"

// topCategories is how many named entries a breakdown keeps before the
// remainder collapses into OtherCategory.
const topCategories = 5

// DaysInMonth returns the day count of the given month, leap years included.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// YearlyTotals sums expense amounts per calendar month of the given year.
// The result always has 12 entries, index 0 = January; months without
// expenses hold zero. Stored amounts are summed as-is, so a corrupted
// zero or negative record skews the bucket but never fails.
func YearlyTotals(expenses []Expense, year int) []Money {
	totals := make([]Money, 12)
	for _, e := range expenses {
		if e.Date.Year() != year {
			continue
		}
		idx := e.Date.Month() - 1
		totals[idx] = totals[idx].Add(e.Amount)
	}
	return totals
}

// DailyTotals sums expense amounts per day of the given year/month. The
// result length equals the month's exact day count (29 for a leap-year
// February), index 0 = day 1.
func DailyTotals(expenses []Expense, year, month int) []Money {
	totals := make([]Money, DaysInMonth(year, month))
	for _, e := range expenses {
		if e.Date.Year() != year || e.Date.Month() != month {
			continue
		}
		idx := e.Date.Day() - 1
		totals[idx] = totals[idx].Add(e.Amount)
	}
	return totals
}

// CategoryBreakdown groups the given year/month's expenses by normalized
// category and returns them sorted descending by total. When more than five
// categories exist, the top five are kept and the rest collapse into a
// single "Other" entry holding their exact sum. Equal totals keep the order
// in which the categories were first encountered, which is deterministic
// because the expense collection is insertion-ordered.
func CategoryBreakdown(expenses []Expense, year, month int) []CategoryTotal {
	totals := make(map[string]Money)
	var order []string

	for _, e := range expenses {
		if e.Date.Year() != year || e.Date.Month() != month {
			continue
		}
		key := e.Category()
		if _, seen := totals[key]; !seen {
			order = append(order, key)
		}
		totals[key] = totals[key].Add(e.Amount)
	}

	result := make([]CategoryTotal, 0, len(order))
	for _, key := range order {
		result = append(result, CategoryTotal{Category: key, Total: totals[key]})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Total.Cents > result[j].Total.Cents
	})

	if len(result) <= topCategories {
		return result
	}

	var other Money
	for _, ct := range result[topCategories:] {
		other = other.Add(ct.Total)
	}
	return append(result[:topCategories:topCategories], CategoryTotal{
		Category: OtherCategory,
		Total:    other,
	})
}

// DayExpenses returns the expenses logged on the given date, sorted
// ascending by hour, together with their total. Expenses on the same hour
// keep insertion order.
func DayExpenses(expenses []Expense, date Date) ([]Expense, Money) {
	var day []Expense
	var total Money
	for _, e := range expenses {
		if e.Date.Year() == date.Year() && e.Date.Month() == date.Month() && e.Date.Day() == date.Day() {
			day = append(day, e)
			total = total.Add(e.Amount)
		}
	}
	sort.SliceStable(day, func(i, j int) bool {
		return day[i].Hour < day[j].Hour
	})
	return day, total
}
