package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dan9191/expense-tracker/internal/analytics"
	"github.com/Dan9191/expense-tracker/internal/models"
	"github.com/Dan9191/expense-tracker/internal/repository"
	"github.com/shopspring/decimal"
)

// TransactionInput is a create request before validation
type TransactionInput struct {
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	Date            string          `json:"date"`
	Note            string          `json:"note"`
	Category        string          `json:"category"`
	TransactionType string          `json:"transactionType"`
}

// ListFilter narrows a transaction listing
type ListFilter struct {
	StartDate       string
	EndDate         string
	Category        string
	TransactionType string
}

// CreateTransaction validates the input and records an income or expense for userID
func (s *Service) CreateTransaction(ctx context.Context, userID int64, kind models.Kind, in TransactionInput) (*models.Transaction, error) {
	tx, err := validateInput(kind, in)
	if err != nil {
		return nil, err
	}
	tx.UserID = userID

	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	s.log.Infof("%s %d recorded for user %d: %s", kind, tx.ID, userID, tx.Amount.StringFixed(2))
	return tx, nil
}

func validateInput(kind models.Kind, in TransactionInput) (*models.Transaction, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be greater than 0", ErrValidation)
	}
	if strings.TrimSpace(in.Date) == "" {
		return nil, fmt.Errorf("%w: date is required", ErrValidation)
	}
	date, err := analytics.ParseDate("date", in.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date %q is not an ISO-8601 date", ErrValidation, in.Date)
	}

	tx := &models.Transaction{
		Kind:          kind,
		Description:   strings.TrimSpace(in.Description),
		Amount:        in.Amount,
		Date:          date,
		Note:          in.Note,
		PaymentMethod: models.PaymentCash,
	}

	if in.TransactionType != "" {
		pm, err := models.ParsePaymentMethod(in.TransactionType)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		tx.PaymentMethod = pm
	}

	switch kind {
	case models.KindExpense:
		tx.Category = models.CategoryOther
		if in.Category != "" {
			c, err := models.ParseCategory(in.Category)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrValidation, err)
			}
			tx.Category = c
		}
	case models.KindIncome:
		if in.Category != "" {
			return nil, fmt.Errorf("%w: category is only accepted on expenses", ErrValidation)
		}
	}
	return tx, nil
}

// ListTransactions returns userID's records of one kind, newest first
func (s *Service) ListTransactions(ctx context.Context, userID int64, kind models.Kind, lf ListFilter) ([]models.Transaction, error) {
	f := models.AggregateFilter{UserID: userID, Kind: kind}

	switch {
	case lf.StartDate != "" && lf.EndDate != "":
		start, err := analytics.ParseDate("startDate", lf.StartDate)
		if err != nil {
			return nil, err
		}
		end, err := analytics.ParseDate("endDate", lf.EndDate)
		if err != nil {
			return nil, err
		}
		if end.Before(start) {
			return nil, fmt.Errorf("%w: startDate must not be after endDate", analytics.ErrInvalidRange)
		}
		f.Period = &models.Period{Start: start, End: end}
	case lf.StartDate != "" || lf.EndDate != "":
		return nil, fmt.Errorf("%w: startDate and endDate must be supplied together", analytics.ErrInvalidRange)
	}

	if lf.Category != "" {
		if kind != models.KindExpense {
			return nil, fmt.Errorf("%w: category filter is only accepted on expenses", ErrValidation)
		}
		c, err := models.ParseCategory(lf.Category)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		f.Category = c
	}
	if lf.TransactionType != "" {
		pm, err := models.ParsePaymentMethod(lf.TransactionType)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		f.PaymentMethod = pm
	}

	return s.repo.ListTransactions(ctx, f)
}

// DeleteTransaction removes one of userID's records
func (s *Service) DeleteTransaction(ctx context.Context, userID int64, kind models.Kind, id int64) error {
	if err := s.repo.DeleteTransaction(ctx, kind, userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrForbidden
		}
		return err
	}
	s.log.Infof("%s %d deleted by user %d", kind, id, userID)
	return nil
}
