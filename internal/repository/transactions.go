package repository

import (
	"context"
	"fmt"

	"github.com/Dan9191/expense-tracker/internal/models"
)

// CreateTransaction inserts an income or expense and fills in its id and created_at
func (r *Repository) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	var (
		query string
		args  []any
	)
	switch tx.Kind {
	case models.KindIncome:
		query = `
			INSERT INTO tracker.incomes (user_id, description, amount, date, note, payment_method)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at`
		args = []any{tx.UserID, tx.Description, tx.Amount, tx.Date, tx.Note, string(tx.PaymentMethod)}
	case models.KindExpense:
		query = `
			INSERT INTO tracker.expenses (user_id, description, amount, date, note, category, payment_method)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at`
		args = []any{tx.UserID, tx.Description, tx.Amount, tx.Date, tx.Note, string(tx.Category), string(tx.PaymentMethod)}
	default:
		return fmt.Errorf("unknown transaction kind %q", tx.Kind)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&tx.ID, &tx.CreatedAt); err != nil {
		return fmt.Errorf("failed to create %s: %w", tx.Kind, err)
	}
	return nil
}

// ListTransactions returns rows matching the filter, newest first
func (r *Repository) ListTransactions(ctx context.Context, f models.AggregateFilter) ([]models.Transaction, error) {
	table, err := tableFor(f.Kind)
	if err != nil {
		return nil, err
	}
	where, args, err := whereClause(f)
	if err != nil {
		return nil, err
	}

	category := "category"
	if f.Kind == models.KindIncome {
		category = "'' AS category"
	}
	query := fmt.Sprintf(`SELECT id, user_id, description, amount, date, note, %s, payment_method, created_at
		FROM %s WHERE %s ORDER BY date DESC, id DESC`, category, table, where)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", table, err)
	}
	defer rows.Close()

	out := []models.Transaction{}
	for rows.Next() {
		var (
			tx       = models.Transaction{Kind: f.Kind}
			cat, pay string
		)
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.Description, &tx.Amount, &tx.Date, &tx.Note, &cat, &pay, &tx.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		tx.Category = models.Category(cat)
		tx.PaymentMethod = models.PaymentMethod(pay)
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", table, err)
	}
	return out, nil
}

// DeleteTransaction removes a record owned by userID. A missing or foreign
// record yields ErrNotFound so callers cannot probe other users' ids.
func (r *Repository) DeleteTransaction(ctx context.Context, kind models.Kind, userID, id int64) error {
	table, err := tableFor(kind)
	if err != nil {
		return err
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1 AND user_id = $2", table)
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", kind, id, ErrNotFound)
	}
	return nil
}
