package email

import (
	"errors"
	"net/smtp"
	"testing"
	"time"

	"github.com/Dan9191/expense-tracker/internal/config"
	"github.com/Dan9191/expense-tracker/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var may = time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)

func sampleReport() *models.AnalyticsReport {
	return &models.AnalyticsReport{
		Summary: models.PeriodSummary{
			Income: 3000, Expenses: 1200, Balance: 1800, SavingsRate: 60,
			IncomeChange: 20, ExpenseChange: -50,
		},
		TopCategories: []models.TopCategory{
			{Category: models.CategoryFood, Amount: 700, Percentage: 70},
			{Category: models.CategoryBills, Amount: 300, Percentage: 30},
		},
	}
}

func TestDigestBody(t *testing.T) {
	body := DigestBody("Ann Lee", may, sampleReport())

	assert.Contains(t, body, "Dear Ann Lee,")
	assert.Contains(t, body, "May 2024")
	assert.Contains(t, body, "Income:       3000.00 (+20.00% vs previous period)")
	assert.Contains(t, body, "Expenses:     1200.00 (-50.00% vs previous period)")
	assert.Contains(t, body, "Savings rate: 60.00%")
	assert.Contains(t, body, "1. FOOD 700.00 (70.00%)")
	assert.Contains(t, body, "2. BILLS 300.00 (30.00%)")
}

func TestDigestBodyWithoutExpenses(t *testing.T) {
	body := DigestBody("", may, &models.AnalyticsReport{})

	assert.Contains(t, body, "Dear there,")
	assert.Contains(t, body, "No expenses recorded this month.")
}

func TestSendMonthlyDigest(t *testing.T) {
	cfg := &config.Config{SMTPHost: "smtp.test", SMTPPort: "2525", SenderEmail: "from@test"}
	logger, hook := test.NewNullLogger()
	s := NewSender(cfg, logger)

	var gotAddr string
	var got *email.Email
	s.send = func(e *email.Email, addr string, _ smtp.Auth) error {
		got, gotAddr = e, addr
		return nil
	}

	require.NoError(t, s.SendMonthlyDigest("ann@test", "Ann", may, sampleReport()))
	assert.Equal(t, "smtp.test:2525", gotAddr)
	assert.Equal(t, []string{"ann@test"}, got.To)
	assert.Equal(t, "from@test", got.From)
	assert.Equal(t, "Your May 2024 summary", got.Subject)
	assert.Len(t, hook.Entries, 1)
}

func TestSendMonthlyDigestFailure(t *testing.T) {
	cfg := &config.Config{SMTPHost: "smtp.test", SMTPPort: "2525"}
	logger, hook := test.NewNullLogger()
	s := NewSender(cfg, logger)
	s.send = func(*email.Email, string, smtp.Auth) error { return errors.New("connection refused") }

	err := s.SendMonthlyDigest("ann@test", "Ann", may, sampleReport())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, "Failed to send digest to ann@test: connection refused", hook.LastEntry().Message)
}
