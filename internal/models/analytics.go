package models

// Summary is the all-time totals for a user
type Summary struct {
	TotalIncome   float64 `json:"totalIncome"`
	TotalExpenses float64 `json:"totalExpenses"`
	Balance       float64 `json:"balance"`
}

// AnalyticsReport is the payload returned by the analytics endpoint
type AnalyticsReport struct {
	Period               string              `json:"period"`
	CurrentPeriod        PeriodRange         `json:"currentPeriod"`
	PreviousPeriod       PeriodRange         `json:"previousPeriod"`
	Summary              PeriodSummary       `json:"summary"`
	CategoryDistribution []CategoryShare     `json:"categoryDistribution"`
	IncomeExpenseChart   IncomeExpenseSeries `json:"incomeExpenseChart"`
	MonthlyTrends        TrendSeries         `json:"monthlyTrends"`
	PaymentMethods       PaymentSplit        `json:"paymentMethods"`
	TopCategories        []TopCategory       `json:"topCategories"`
}

// PeriodRange is a Period rendered for JSON
type PeriodRange struct {
	Start string `json:"start"` // RFC 3339
	End   string `json:"end"`   // RFC 3339
}

// PeriodSummary compares the current window against the previous one
type PeriodSummary struct {
	Income        float64 `json:"income"`
	Expenses      float64 `json:"expenses"`
	Balance       float64 `json:"balance"`
	SavingsRate   float64 `json:"savingsRate"`
	IncomeChange  float64 `json:"incomeChange"`  // percent
	ExpenseChange float64 `json:"expenseChange"` // percent
}

// CategoryShare is expense activity for one category
type CategoryShare struct {
	Category Category `json:"category"`
	Amount   float64  `json:"amount"`
}

// TopCategory carries a percentage relative to the top-3 slice only
type TopCategory struct {
	Category   Category `json:"category"`
	Amount     float64  `json:"amount"`
	Percentage float64  `json:"percentage"`
}

// IncomeExpenseSeries is the raw monthly chart
type IncomeExpenseSeries struct {
	Months      []string  `json:"months"`
	IncomeData  []float64 `json:"incomeData"`
	ExpenseData []float64 `json:"expenseData"`
}

// TrendSeries shares the month axis with IncomeExpenseSeries
type TrendSeries struct {
	Months          []string  `json:"months"`
	BalanceData     []float64 `json:"balanceData"`
	SavingsRateData []float64 `json:"savingsRateData"`
}

// PaymentSplit breaks current-period spending down by payment method
type PaymentSplit struct {
	CashAmount     float64 `json:"cashAmount"`
	CardAmount     float64 `json:"cardAmount"`
	CashPercentage float64 `json:"cashPercentage"`
	CardPercentage float64 `json:"cardPercentage"`
	DailyIncome    float64 `json:"dailyIncome"`
	DailySpending  float64 `json:"dailySpending"`
}
