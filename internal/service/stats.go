package service

import (
	"context"
	"fmt"

	"github.com/Dan9191/expense-tracker/internal/analytics"
	"github.com/Dan9191/expense-tracker/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Summary returns userID's all-time income, expenses and balance
func (s *Service) Summary(ctx context.Context, userID int64) (*models.Summary, error) {
	var income, expenses decimal.Decimal

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		income, err = s.repo.SumAmount(gctx, models.AggregateFilter{UserID: userID, Kind: models.KindIncome})
		return err
	})
	g.Go(func() (err error) {
		expenses, err = s.repo.SumAmount(gctx, models.AggregateFilter{UserID: userID, Kind: models.KindExpense})
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.WithError(err).WithField("user_id", userID).Error("summary aggregation failed")
		return nil, fmt.Errorf("%w: %w", analytics.ErrAggregationFailure, err)
	}

	return &models.Summary{
		TotalIncome:   income.InexactFloat64(),
		TotalExpenses: expenses.InexactFloat64(),
		Balance:       income.Sub(expenses).InexactFloat64(),
	}, nil
}

// Analytics builds the period report for userID
func (s *Service) Analytics(ctx context.Context, userID int64, q analytics.Query) (*models.AnalyticsReport, error) {
	return s.analytics.Report(ctx, userID, q)
}
