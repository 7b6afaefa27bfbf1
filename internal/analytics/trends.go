package analytics

import (
	"time"

	"github.com/Dan9191/expense-tracker/internal/models"
	"github.com/shopspring/decimal"
)

// MonthlyBucket holds the sums for one calendar month
type MonthlyBucket struct {
	Month   time.Time
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// Label is the locale-independent three letter month name
func (b MonthlyBucket) Label() string {
	return b.Month.Format("Jan")
}

// BuildSeries lays the buckets out on one shared month axis
func BuildSeries(buckets []MonthlyBucket) (models.IncomeExpenseSeries, models.TrendSeries) {
	n := len(buckets)
	chart := models.IncomeExpenseSeries{
		Months:      make([]string, n),
		IncomeData:  make([]float64, n),
		ExpenseData: make([]float64, n),
	}
	trends := models.TrendSeries{
		Months:          chart.Months,
		BalanceData:     make([]float64, n),
		SavingsRateData: make([]float64, n),
	}

	for i, b := range buckets {
		chart.Months[i] = b.Label()
		chart.IncomeData[i] = b.Income.InexactFloat64()
		chart.ExpenseData[i] = b.Expense.InexactFloat64()
		trends.BalanceData[i] = b.Income.Sub(b.Expense).InexactFloat64()
		trends.SavingsRateData[i] = SavingsRate(b.Income, b.Expense).InexactFloat64()
	}
	return chart, trends
}
