package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind distinguishes the two transaction tables
type Kind string

const (
	KindIncome  Kind = "INCOME"
	KindExpense Kind = "EXPENSE"
)

// Category is the closed set of expense categories
type Category string

const (
	CategoryShopping      Category = "SHOPPING"
	CategoryFood          Category = "FOOD"
	CategoryTransport     Category = "TRANSPORT"
	CategoryEntertainment Category = "ENTERTAINMENT"
	CategoryBills         Category = "BILLS"
	CategoryOther         Category = "OTHER"
)

// Categories lists every valid category in display order
var Categories = []Category{
	CategoryShopping,
	CategoryFood,
	CategoryTransport,
	CategoryEntertainment,
	CategoryBills,
	CategoryOther,
}

// ParseCategory validates s against the category enumeration
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q: expected one of %v", s, Categories)
}

// PaymentMethod is the closed set of payment methods
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "CASH"
	PaymentCard PaymentMethod = "CARD"
)

// PaymentMethods lists every valid payment method
var PaymentMethods = []PaymentMethod{PaymentCash, PaymentCard}

// ParsePaymentMethod validates s against the payment method enumeration
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range PaymentMethods {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown transactionType %q: expected one of %v", s, PaymentMethods)
}

// Transaction is an income or expense record owned by one user.
// Category is empty for incomes.
type Transaction struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"userId"`
	Kind          Kind            `json:"-"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	Note          string          `json:"note"`
	Category      Category        `json:"category,omitempty"`
	PaymentMethod PaymentMethod   `json:"transactionType"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// Period is an inclusive [Start, End] interval
type Period struct {
	Start time.Time
	End   time.Time
}

// Duration returns End - Start
func (p Period) Duration() time.Duration {
	return p.End.Sub(p.Start)
}

// AggregateFilter scopes sum, group and list queries. Zero values mean "no restriction",
// except UserID and Kind which are always required.
type AggregateFilter struct {
	UserID        int64
	Kind          Kind
	Period        *Period
	Category      Category
	PaymentMethod PaymentMethod
}

// CategoryAmount is one row of a group-by-category sum
type CategoryAmount struct {
	Category Category        `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}
