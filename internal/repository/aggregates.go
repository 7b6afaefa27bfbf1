package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/Dan9191/expense-tracker/internal/models"
	"github.com/shopspring/decimal"
)

// tableFor maps a transaction kind to its table. Table names never come from input.
func tableFor(kind models.Kind) (string, error) {
	switch kind {
	case models.KindIncome:
		return "tracker.incomes", nil
	case models.KindExpense:
		return "tracker.expenses", nil
	default:
		return "", fmt.Errorf("unknown transaction kind %q", kind)
	}
}

// whereClause renders the filter as a WHERE body with positional arguments
func whereClause(f models.AggregateFilter) (string, []any, error) {
	if f.Category != "" && f.Kind != models.KindExpense {
		return "", nil, fmt.Errorf("category filter is only valid for expenses")
	}

	conds := []string{"user_id = $1"}
	args := []any{f.UserID}
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Period != nil {
		add("date >= $%d", f.Period.Start)
		add("date <= $%d", f.Period.End)
	}
	if f.Category != "" {
		add("category = $%d", string(f.Category))
	}
	if f.PaymentMethod != "" {
		add("payment_method = $%d", string(f.PaymentMethod))
	}
	return strings.Join(conds, " AND "), args, nil
}

// SumAmount returns the sum of amount over rows matching the filter, zero when none match
func (r *Repository) SumAmount(ctx context.Context, f models.AggregateFilter) (decimal.Decimal, error) {
	table, err := tableFor(f.Kind)
	if err != nil {
		return decimal.Zero, err
	}
	where, args, err := whereClause(f)
	if err != nil {
		return decimal.Zero, err
	}

	query := fmt.Sprintf("SELECT COALESCE(SUM(amount), 0) FROM %s WHERE %s", table, where)
	var total decimal.Decimal
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum %s: %w", table, err)
	}
	return total, nil
}

// SumByCategory groups matching expenses by category, largest first.
// Ties are ordered by category name; limit <= 0 returns every category.
func (r *Repository) SumByCategory(ctx context.Context, f models.AggregateFilter, limit int) ([]models.CategoryAmount, error) {
	if f.Kind != models.KindExpense {
		return nil, fmt.Errorf("category breakdown is only valid for expenses")
	}
	where, args, err := whereClause(f)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT category, SUM(amount) AS total FROM tracker.expenses WHERE %s
		GROUP BY category HAVING SUM(amount) > 0 ORDER BY total DESC, category ASC`, where)
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to group expenses by category: %w", err)
	}
	defer rows.Close()

	var out []models.CategoryAmount
	for rows.Next() {
		var (
			category string
			total    decimal.Decimal
		)
		if err := rows.Scan(&category, &total); err != nil {
			return nil, fmt.Errorf("failed to scan category sum: %w", err)
		}
		out = append(out, models.CategoryAmount{Category: models.Category(category), Amount: total})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate category sums: %w", err)
	}
	return out, nil
}
