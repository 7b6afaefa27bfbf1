package analytics

import (
	"context"
	"time"

	"github.com/Dan9191/expense-tracker/internal/models"
	"github.com/sirupsen/logrus"
)

// Engine builds analytics reports from a Store
type Engine struct {
	store Store
	log   *logrus.Logger
	now   func() time.Time
}

// NewEngine initializes a new analytics engine
func NewEngine(store Store, log *logrus.Logger) *Engine {
	return &Engine{
		store: store,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the engine's notion of now
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Report resolves q, fetches every aggregate concurrently and assembles the payload.
// Validation errors are returned before the store is touched.
func (e *Engine) Report(ctx context.Context, userID int64, q Query) (*models.AnalyticsReport, error) {
	now := e.now()
	w, err := Resolve(now, q)
	if err != nil {
		return nil, err
	}

	months := trailingMonths(now, w.Keyword.TrailingMonths())
	agg, err := fetch(ctx, e.store, userID, w, months)
	if err != nil {
		e.log.WithError(err).WithField("user_id", userID).Error("analytics aggregation failed")
		return nil, err
	}

	e.log.WithFields(logrus.Fields{
		"user_id": userID,
		"period":  w.Keyword,
		"start":   w.Current.Start.Format(time.RFC3339),
		"end":     w.Current.End.Format(time.RFC3339),
	}).Debug("analytics report built")
	return assemble(w, agg), nil
}

func assemble(w Window, agg *aggregates) *models.AnalyticsReport {
	chart, trends := BuildSeries(agg.months)
	return &models.AnalyticsReport{
		Period:         string(w.Keyword),
		CurrentPeriod:  periodRange(w.Current),
		PreviousPeriod: periodRange(w.Previous),
		Summary: models.PeriodSummary{
			Income:        agg.income.InexactFloat64(),
			Expenses:      agg.expenses.InexactFloat64(),
			Balance:       agg.income.Sub(agg.expenses).InexactFloat64(),
			SavingsRate:   SavingsRate(agg.income, agg.expenses).InexactFloat64(),
			IncomeChange:  PercentageChange(agg.prevIncome, agg.income).InexactFloat64(),
			ExpenseChange: PercentageChange(agg.prevExpenses, agg.expenses).InexactFloat64(),
		},
		CategoryDistribution: CategoryDistribution(agg.categories),
		IncomeExpenseChart:   chart,
		MonthlyTrends:        trends,
		PaymentMethods:       PaymentSplit(agg.cash, agg.card, agg.income, agg.expenses, w.Current),
		TopCategories:        TopCategories(agg.top),
	}
}

func periodRange(p models.Period) models.PeriodRange {
	return models.PeriodRange{
		Start: p.Start.Format(time.RFC3339),
		End:   p.End.Format(time.RFC3339),
	}
}
