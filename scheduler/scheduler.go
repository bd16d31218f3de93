// Package scheduler runs the periodic reminder sweep over unpaid bills.
package scheduler

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"

	"smartdues/models"
	"smartdues/notify"
	"smartdues/utils"
)

// Notifier is the slice of the dispatcher the sweep needs. Tests swap in
// a recording fake.
type Notifier interface {
	SendEmail(to, subject, body string) bool
	SendSMS(to, body string) bool
	SendWhatsApp(to, body string) bool
}

var remindersSent = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "smartdues_reminders_sent_total",
	Help: "Reminder notifications dispatched, by channel.",
}, []string{"channel"})

// Scheduler owns the background sweep: one fixed-interval recurring task
// bound to process lifetime, with its dependencies injected.
type Scheduler struct {
	db       *gorm.DB
	notifier Notifier
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

func New(db *gorm.DB, notifier Notifier, interval time.Duration) *Scheduler {
	return &Scheduler{
		db:       db,
		notifier: notifier,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	slog.Info("reminder scheduler started", "interval", s.interval)
	go s.run()
}

func (s *Scheduler) Stop() {
	close(s.stop)
	<-s.done
	slog.Info("reminder scheduler stopped")
}

func (s *Scheduler) run() {
	defer close(s.done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.Sweep(models.Today())
		}
	}
}

// Sweep evaluates every unpaid bill's reminder offsets against today and
// dispatches whatever matches. Nothing in here may abort the pass: bad
// offset strings parse to nothing and send failures are logged downstream.
func (s *Scheduler) Sweep(today models.DateOnly) {
	var bills []models.Bill
	if err := s.db.Where("is_paid = ?", false).Find(&bills).Error; err != nil {
		slog.Error("reminder sweep: loading bills failed", "error", err)
		return
	}

	for _, bill := range bills {
		if bill.ReminderDays == "" {
			continue
		}
		for _, days := range utils.ParseReminderDays(bill.ReminderDays) {
			remindDate := bill.DueDate.AddDate(0, 0, -days)
			if !sameDay(remindDate, today.Time) {
				continue
			}
			s.remind(bill, days, today)
		}
	}
}

func (s *Scheduler) remind(bill models.Bill, days int, today models.DateOnly) {
	var user models.User
	if err := s.db.First(&user, bill.UserID).Error; err != nil {
		return
	}

	subject := fmt.Sprintf("Reminder: %s due in %d day(s)", bill.Title, days)
	body := fmt.Sprintf("Your bill '%s' of amount ₹%s is due on %s. This is a %d-day reminder.",
		bill.Title, bill.Amount.StringFixed(2), bill.DueDate, days)

	if user.Email != "" && !s.alreadySent(user.ID, bill.ID, "email", today) {
		s.notifier.SendEmail(user.Email, subject, body)
		s.logSent(user.ID, bill.ID, "email")
	}
	if user.Phone != "" && !s.alreadySent(user.ID, bill.ID, "sms", today) {
		s.notifier.SendSMS(user.Phone, body)
		s.logSent(user.ID, bill.ID, "sms")
	}
	if user.Phone != "" && !s.alreadySent(user.ID, bill.ID, "whatsapp", today) {
		s.notifier.SendWhatsApp(user.Phone, body)
		s.logSent(user.ID, bill.ID, "whatsapp")
	}
}

// alreadySent consults the audit log so the minute-level cadence fires each
// reminder once per channel per day instead of every tick. The day check
// happens in Go to sidestep timezone-dependent SQL comparisons.
func (s *Scheduler) alreadySent(userID, billID uint, channel string, today models.DateOnly) bool {
	var last models.ReminderLog
	err := s.db.
		Where("user_id = ? AND bill_id = ? AND channel = ?", userID, billID, channel).
		Order("reminder_sent_at desc").
		First(&last).Error
	if err != nil {
		return false
	}
	return sameDay(last.ReminderSentAt.Local(), today.Time)
}

func (s *Scheduler) logSent(userID, billID uint, channel string) {
	notify.LogReminder(s.db, userID, billID, time.Now(), channel)
	remindersSent.WithLabelValues(channel).Inc()
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
