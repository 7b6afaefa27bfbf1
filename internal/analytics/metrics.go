package analytics

import (
	"github.com/Dan9191/expense-tracker/internal/models"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// SavingsRate is balance as a whole percentage of income, 0 without income
func SavingsRate(income, expenses decimal.Decimal) decimal.Decimal {
	if !income.IsPositive() {
		return decimal.Zero
	}
	return income.Sub(expenses).Div(income).Mul(hundred).Round(0)
}

// PercentageChange is the change from previous to current to one decimal place.
// A zero baseline reports 100 for new activity and 0 otherwise.
func PercentageChange(previous, current decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		if current.IsPositive() {
			return hundred
		}
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(hundred).Round(1)
}

// Share is part as a whole percentage of total, 0 when total is not positive
func Share(part, total decimal.Decimal) decimal.Decimal {
	if !total.IsPositive() {
		return decimal.Zero
	}
	return part.Div(total).Mul(hundred).Round(0)
}

// PerDay spreads amount evenly over days, rounded to a whole unit
func PerDay(amount decimal.Decimal, days int64) decimal.Decimal {
	if days < 1 {
		days = 1
	}
	return amount.Div(decimal.NewFromInt(days)).Round(0)
}

// CategoryDistribution drops categories without activity
func CategoryDistribution(sums []models.CategoryAmount) []models.CategoryShare {
	out := make([]models.CategoryShare, 0, len(sums))
	for _, s := range sums {
		if !s.Amount.IsPositive() {
			continue
		}
		out = append(out, models.CategoryShare{Category: s.Category, Amount: s.Amount.InexactFloat64()})
	}
	return out
}

// TopCategories annotates up to three categories with their share of the
// top-three total, not of overall spending.
func TopCategories(top []models.CategoryAmount) []models.TopCategory {
	if len(top) > 3 {
		top = top[:3]
	}
	total := decimal.Zero
	for _, c := range top {
		total = total.Add(c.Amount)
	}

	out := make([]models.TopCategory, 0, len(top))
	for _, c := range top {
		out = append(out, models.TopCategory{
			Category:   c.Category,
			Amount:     c.Amount.InexactFloat64(),
			Percentage: Share(c.Amount, total).InexactFloat64(),
		})
	}
	return out
}

// PaymentSplit computes the payment method shares and daily averages for a period
func PaymentSplit(cash, card, income, expenses decimal.Decimal, p models.Period) models.PaymentSplit {
	total := cash.Add(card)
	days := Days(p)
	return models.PaymentSplit{
		CashAmount:     cash.InexactFloat64(),
		CardAmount:     card.InexactFloat64(),
		CashPercentage: Share(cash, total).InexactFloat64(),
		CardPercentage: Share(card, total).InexactFloat64(),
		DailyIncome:    PerDay(income, days).InexactFloat64(),
		DailySpending:  PerDay(expenses, days).InexactFloat64(),
	}
}
