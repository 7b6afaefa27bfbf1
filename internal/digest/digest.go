// Package digest schedules the monthly summary mail sent to every user.
package digest

import (
	"context"
	"fmt"
	"time"

	"github.com/Dan9191/expense-tracker/internal/analytics"
	"github.com/Dan9191/expense-tracker/internal/models"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

type UserLister interface {
	ListUsers(ctx context.Context) ([]models.User, error)
}

type Reporter interface {
	Analytics(ctx context.Context, userID int64, q analytics.Query) (*models.AnalyticsReport, error)
}

type Mailer interface {
	SendMonthlyDigest(to, fullName string, month time.Time, report *models.AnalyticsReport) error
}

// Scheduler runs the digest on a cron schedule
type Scheduler struct {
	users    UserLister
	reports  Reporter
	mailer   Mailer
	log      *logrus.Logger
	now      func() time.Time
	cron     *cron.Cron
	timeout  time.Duration
	schedule string
}

func NewScheduler(users UserLister, reports Reporter, mailer Mailer, log *logrus.Logger, schedule string) *Scheduler {
	return &Scheduler{
		users:    users,
		reports:  reports,
		mailer:   mailer,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
		cron:     cron.New(cron.WithLocation(time.UTC)),
		timeout:  10 * time.Minute,
		schedule: schedule,
	}
}

// Start registers the job and starts the cron runner
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		if err := s.Run(ctx); err != nil {
			s.log.WithError(err).Error("monthly digest failed")
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule digest %q: %w", s.schedule, err)
	}
	s.cron.Start()
	s.log.WithField("schedule", s.schedule).Info("monthly digest scheduled")
	return nil
}

// Stop waits for a running job to finish or ctx to expire
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// Run mails the previous calendar month's report to every user. A failure
// for one user is logged and the rest still get their mail.
func (s *Scheduler) Run(ctx context.Context) error {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	month, q := PreviousMonth(s.now())
	var sent, failed int
	for _, u := range users {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		report, err := s.reports.Analytics(ctx, u.ID, q)
		if err == nil {
			err = s.mailer.SendMonthlyDigest(u.Email, u.FullName, month, report)
		}
		if err != nil {
			failed++
			s.log.WithError(err).WithField("user_id", u.ID).Warn("digest not delivered")
			continue
		}
		sent++
	}

	s.log.WithFields(logrus.Fields{
		"month":  month.Format("2006-01"),
		"sent":   sent,
		"failed": failed,
	}).Info("monthly digest finished")
	return nil
}

// PreviousMonth returns the first instant of the calendar month before now
// and an explicit range query covering all of it.
func PreviousMonth(now time.Time) (time.Time, analytics.Query) {
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	start := thisMonth.AddDate(0, -1, 0)
	end := thisMonth.Add(-time.Nanosecond)
	return start, analytics.Query{
		StartDate: start.Format(time.RFC3339Nano),
		EndDate:   end.Format(time.RFC3339Nano),
	}
}
