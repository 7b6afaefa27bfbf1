package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Dan9191/expense-tracker/internal/models"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewRepository(db), mock
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("fills id and created_at", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tracker.users (full_name, email, password_hash, created_at)")).
			WithArgs("Ada", "ada@example.com", "hash").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), created))

		u := &models.User{FullName: "Ada", Email: "ada@example.com", PasswordHash: "hash"}
		require.NoError(t, repo.CreateUser(ctx, u))
		assert.Equal(t, int64(7), u.ID)
		assert.Equal(t, created, u.CreatedAt)
	})

	t.Run("unique violation maps to ErrDuplicate", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tracker.users")).
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.CreateUser(ctx, &models.User{Email: "ada@example.com"})
		assert.ErrorIs(t, err, ErrDuplicate)
	})
}

func TestFindUserByEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("no rows maps to ErrNotFound", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM tracker.users WHERE email = $1")).
			WithArgs("ghost@example.com").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindUserByEmail(ctx, "ghost@example.com")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("returns user", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM tracker.users WHERE email = $1")).
			WithArgs("ada@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "email", "password_hash", "created_at"}).
				AddRow(int64(1), "Ada", "ada@example.com", "hash", time.Now()))

		u, err := repo.FindUserByEmail(ctx, "ada@example.com")
		require.NoError(t, err)
		assert.Equal(t, "hash", u.PasswordHash)
	})
}

func TestSumAmount(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	t.Run("period and payment method", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta(
			"SELECT COALESCE(SUM(amount), 0) FROM tracker.expenses WHERE user_id = $1 AND date >= $2 AND date <= $3 AND payment_method = $4")).
			WithArgs(int64(3), start, end, "CASH").
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow("150.25"))

		total, err := repo.SumAmount(ctx, models.AggregateFilter{
			UserID:        3,
			Kind:          models.KindExpense,
			Period:        &models.Period{Start: start, End: end},
			PaymentMethod: models.PaymentCash,
		})
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("150.25").Equal(total))
	})

	t.Run("all time income", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(amount), 0) FROM tracker.incomes WHERE user_id = $1")).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow("0"))

		total, err := repo.SumAmount(ctx, models.AggregateFilter{UserID: 3, Kind: models.KindIncome})
		require.NoError(t, err)
		assert.True(t, total.IsZero())
	})

	t.Run("category on income is rejected before querying", func(t *testing.T) {
		repo, _ := newMockRepo(t)
		_, err := repo.SumAmount(ctx, models.AggregateFilter{UserID: 3, Kind: models.KindIncome, Category: models.CategoryFood})
		assert.Error(t, err)
	})

	t.Run("driver error is wrapped", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		boom := errors.New("connection reset")
		mock.ExpectQuery("SELECT COALESCE").WillReturnError(boom)

		_, err := repo.SumAmount(ctx, models.AggregateFilter{UserID: 3, Kind: models.KindExpense})
		assert.ErrorIs(t, err, boom)
	})
}

func TestSumByCategory(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta(
		"GROUP BY category HAVING SUM(amount) > 0 ORDER BY total DESC, category ASC LIMIT $2")).
		WithArgs(int64(9), 3).
		WillReturnRows(sqlmock.NewRows([]string{"category", "total"}).
			AddRow("FOOD", "80").
			AddRow("BILLS", "40.5"))

	got, err := repo.SumByCategory(context.Background(), models.AggregateFilter{UserID: 9, Kind: models.KindExpense}, 3)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, models.CategoryFood, got[0].Category)
	assert.Equal(t, "40.5", got[1].Amount.String())
}

func TestCreateTransaction(t *testing.T) {
	repo, mock := newMockRepo(t)
	date := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tracker.expenses (user_id, description, amount, date, note, category, payment_method)")).
		WithArgs(int64(1), "lunch", decimal.NewFromInt(12), date, "", "FOOD", "CARD").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(42), time.Now()))

	tx := &models.Transaction{
		UserID:        1,
		Kind:          models.KindExpense,
		Description:   "lunch",
		Amount:        decimal.NewFromInt(12),
		Date:          date,
		Category:      models.CategoryFood,
		PaymentMethod: models.PaymentCard,
	}
	require.NoError(t, repo.CreateTransaction(context.Background(), tx))
	assert.Equal(t, int64(42), tx.ID)
}

func TestListTransactions(t *testing.T) {
	repo, mock := newMockRepo(t)
	date := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("'' AS category, payment_method, created_at FROM tracker.incomes WHERE user_id = $1 ORDER BY date DESC, id DESC")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "description", "amount", "date", "note", "category", "payment_method", "created_at"}).
			AddRow(int64(5), int64(1), "salary", "3000", date, "", "", "CARD", date))

	got, err := repo.ListTransactions(context.Background(), models.AggregateFilter{UserID: 1, Kind: models.KindIncome})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, models.KindIncome, got[0].Kind)
	assert.Equal(t, models.PaymentCard, got[0].PaymentMethod)
	assert.Equal(t, "3000", got[0].Amount.String())
}

func TestDeleteTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes owned row", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tracker.expenses WHERE id = $1 AND user_id = $2")).
			WithArgs(int64(10), int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.DeleteTransaction(ctx, models.KindExpense, 1, 10))
	})

	t.Run("foreign or missing row is ErrNotFound", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tracker.incomes")).
			WithArgs(int64(10), int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.DeleteTransaction(ctx, models.KindIncome, 2, 10), ErrNotFound)
	})
}
