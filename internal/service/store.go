package service

import (
	"context"

	"github.com/Dan9191/expense-tracker/internal/analytics"
	"github.com/Dan9191/expense-tracker/internal/models"
)

//go:generate mockgen -source=store.go -destination=store_mock.go -package=service

// Repository is the persistence the service depends on
type Repository interface {
	analytics.Store

	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)

	CreateTransaction(ctx context.Context, tx *models.Transaction) error
	ListTransactions(ctx context.Context, f models.AggregateFilter) ([]models.Transaction, error)
	DeleteTransaction(ctx context.Context, kind models.Kind, userID, id int64) error
}
