package analytics

import (
	"context"
	"fmt"

	"github.com/Dan9191/expense-tracker/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Store is the read side of the transaction store used for reports
type Store interface {
	SumAmount(ctx context.Context, f models.AggregateFilter) (decimal.Decimal, error)
	SumByCategory(ctx context.Context, f models.AggregateFilter, limit int) ([]models.CategoryAmount, error)
}

const topCategoryLimit = 3

// aggregates is everything a report needs from the store
type aggregates struct {
	income       decimal.Decimal
	expenses     decimal.Decimal
	prevIncome   decimal.Decimal
	prevExpenses decimal.Decimal
	cash         decimal.Decimal
	card         decimal.Decimal
	categories   []models.CategoryAmount
	top          []models.CategoryAmount
	months       []MonthlyBucket
}

// fetch issues every independent query at once and waits for all of them.
// Each goroutine writes a distinct field, so no locking is needed before Wait returns.
func fetch(ctx context.Context, store Store, userID int64, w Window, months []models.Period) (*aggregates, error) {
	g, ctx := errgroup.WithContext(ctx)
	agg := &aggregates{months: make([]MonthlyBucket, len(months))}

	filter := func(kind models.Kind, p *models.Period) models.AggregateFilter {
		return models.AggregateFilter{UserID: userID, Kind: kind, Period: p}
	}
	sum := func(dst *decimal.Decimal, f models.AggregateFilter) {
		g.Go(func() error {
			v, err := store.SumAmount(ctx, f)
			if err != nil {
				return err
			}
			*dst = v
			return nil
		})
	}
	group := func(dst *[]models.CategoryAmount, limit int) {
		g.Go(func() error {
			v, err := store.SumByCategory(ctx, filter(models.KindExpense, &w.Current), limit)
			if err != nil {
				return err
			}
			*dst = v
			return nil
		})
	}

	sum(&agg.income, filter(models.KindIncome, &w.Current))
	sum(&agg.expenses, filter(models.KindExpense, &w.Current))
	sum(&agg.prevIncome, filter(models.KindIncome, &w.Previous))
	sum(&agg.prevExpenses, filter(models.KindExpense, &w.Previous))

	cash := filter(models.KindExpense, &w.Current)
	cash.PaymentMethod = models.PaymentCash
	sum(&agg.cash, cash)
	card := filter(models.KindExpense, &w.Current)
	card.PaymentMethod = models.PaymentCard
	sum(&agg.card, card)

	group(&agg.categories, 0)
	group(&agg.top, topCategoryLimit)

	for i := range months {
		i := i
		span := months[i]
		g.Go(func() error {
			income, err := store.SumAmount(ctx, filter(models.KindIncome, &span))
			if err != nil {
				return err
			}
			expense, err := store.SumAmount(ctx, filter(models.KindExpense, &span))
			if err != nil {
				return err
			}
			agg.months[i] = MonthlyBucket{Month: span.Start, Income: income, Expense: expense}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAggregationFailure, err)
	}
	return agg, nil
}
