package analytics

import (
	"testing"
	"time"

	"github.com/Dan9191/expense-tracker/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func periodOf(start, end time.Time) models.Period {
	return models.Period{Start: start, End: end}
}

func TestSavingsRate(t *testing.T) {
	tests := []struct {
		name             string
		income, expenses float64
		want             float64
	}{
		{name: "two thirds", income: 300, expenses: 100, want: 67},
		{name: "overspent", income: 100, expenses: 250, want: -150},
		{name: "nothing spent", income: 80, expenses: 0, want: 100},
		{name: "no income", income: 0, expenses: 40, want: 0},
		{name: "no activity", income: 0, expenses: 0, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SavingsRate(d(tt.income), d(tt.expenses)).InexactFloat64())
		})
	}
}

func TestSavingsRateMatchesFormula(t *testing.T) {
	for income := 1; income <= 500; income += 37 {
		for expenses := 0; expenses <= 600; expenses += 53 {
			inc, exp := decimal.NewFromInt(int64(income)), decimal.NewFromInt(int64(expenses))
			want := inc.Sub(exp).Div(inc).Mul(hundred).Round(0)
			assert.True(t, want.Equal(SavingsRate(inc, exp)), "income=%d expenses=%d", income, expenses)
		}
	}
}

func TestPercentageChange(t *testing.T) {
	tests := []struct {
		previous, current float64
		want              float64
	}{
		{previous: 0, current: 0, want: 0},
		{previous: 0, current: 50, want: 100},
		{previous: 100, current: 150, want: 50},
		{previous: 200, current: 100, want: -50},
		{previous: 300, current: 400, want: 33.3},
		{previous: 30, current: 0, want: -100},
	}
	for _, tt := range tests {
		got := PercentageChange(d(tt.previous), d(tt.current)).InexactFloat64()
		assert.Equal(t, tt.want, got, "previous=%v current=%v", tt.previous, tt.current)
	}
}

func TestCategoryDistributionOmitsZero(t *testing.T) {
	got := CategoryDistribution([]models.CategoryAmount{
		{Category: models.CategoryFood, Amount: d(40)},
		{Category: models.CategoryBills, Amount: decimal.Zero},
	})
	assert.Equal(t, []models.CategoryShare{{Category: models.CategoryFood, Amount: 40}}, got)
}

func TestTopCategories(t *testing.T) {
	t.Run("percentages relative to top three", func(t *testing.T) {
		got := TopCategories([]models.CategoryAmount{
			{Category: models.CategoryBills, Amount: d(50)},
			{Category: models.CategoryFood, Amount: d(30)},
			{Category: models.CategoryTransport, Amount: d(20)},
		})
		assert.Equal(t, []models.TopCategory{
			{Category: models.CategoryBills, Amount: 50, Percentage: 50},
			{Category: models.CategoryFood, Amount: 30, Percentage: 30},
			{Category: models.CategoryTransport, Amount: 20, Percentage: 20},
		}, got)
	})

	t.Run("sums to about 100 with rounding", func(t *testing.T) {
		got := TopCategories([]models.CategoryAmount{
			{Category: models.CategoryBills, Amount: d(1)},
			{Category: models.CategoryFood, Amount: d(1)},
			{Category: models.CategoryOther, Amount: d(1)},
		})
		var sum float64
		for _, c := range got {
			sum += c.Percentage
		}
		assert.InDelta(t, 100, sum, 2)
	})

	t.Run("truncates to three", func(t *testing.T) {
		got := TopCategories([]models.CategoryAmount{
			{Category: models.CategoryBills, Amount: d(4)},
			{Category: models.CategoryFood, Amount: d(3)},
			{Category: models.CategoryOther, Amount: d(2)},
			{Category: models.CategoryShopping, Amount: d(1)},
		})
		assert.Len(t, got, 3)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, TopCategories(nil))
	})
}

func TestPaymentSplit(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p := periodOf(start, start.Add(10*day))

	t.Run("shares and daily averages", func(t *testing.T) {
		got := PaymentSplit(d(75), d(25), d(1000), d(100), p)
		assert.Equal(t, models.PaymentSplit{
			CashAmount:     75,
			CardAmount:     25,
			CashPercentage: 75,
			CardPercentage: 25,
			DailyIncome:    100,
			DailySpending:  10,
		}, got)
	})

	t.Run("no spending", func(t *testing.T) {
		got := PaymentSplit(decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero, p)
		assert.Zero(t, got.CashPercentage)
		assert.Zero(t, got.CardPercentage)
	})
}
