package email

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/Dan9191/expense-tracker/internal/config"
	"github.com/Dan9191/expense-tracker/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
	send   func(e *email.Email, addr string, a smtp.Auth) error
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
		send:   (*email.Email).Send,
	}
}

// SendMonthlyDigest mails a plain text summary of one month of activity
func (s *Sender) SendMonthlyDigest(to, fullName string, month time.Time, report *models.AnalyticsReport) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Your %s summary", month.Format("January 2006"))
	e.Text = []byte(DigestBody(fullName, month, report))

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := s.send(e, addr, auth); err != nil {
		s.logger.Errorf("Failed to send digest to %s: %v", to, err)
		return fmt.Errorf("failed to send digest: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}

// DigestBody renders the digest text for a report
func DigestBody(fullName string, month time.Time, report *models.AnalyticsReport) string {
	var b strings.Builder
	name := fullName
	if name == "" {
		name = "there"
	}
	fmt.Fprintf(&b, "Dear %s,\n\n", name)
	fmt.Fprintf(&b, "Here is how %s went.\n\n", month.Format("January 2006"))

	sum := report.Summary
	fmt.Fprintf(&b, "Income:       %.2f (%+.2f%% vs previous period)\n", sum.Income, sum.IncomeChange)
	fmt.Fprintf(&b, "Expenses:     %.2f (%+.2f%% vs previous period)\n", sum.Expenses, sum.ExpenseChange)
	fmt.Fprintf(&b, "Balance:      %.2f\n", sum.Balance)
	fmt.Fprintf(&b, "Savings rate: %.2f%%\n", sum.SavingsRate)

	if len(report.TopCategories) > 0 {
		b.WriteString("\nTop spending categories:\n")
		for i, c := range report.TopCategories {
			fmt.Fprintf(&b, "%d. %s %.2f (%.2f%%)\n", i+1, c.Category, c.Amount, c.Percentage)
		}
	} else {
		b.WriteString("\nNo expenses recorded this month.\n")
	}

	b.WriteString("\nBest regards,\nExpense Tracker")
	return b.String()
}
