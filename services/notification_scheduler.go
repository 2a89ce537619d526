package services

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/cafe-eden/pos-app/models"
	"github.com/cafe-eden/pos-app/utils"
)

// NotificationScheduler advances the next-run timestamp of due recurring
// notifications on a fixed cadence. It is a cron-style trigger, not a
// delivery engine: the frontend surfaces notifications by timestamp.
type NotificationScheduler struct {
	db       *gorm.DB
	Interval time.Duration
	stop     chan struct{}
}

func NewNotificationScheduler(db *gorm.DB) *NotificationScheduler {
	return &NotificationScheduler{
		db:       db,
		Interval: time.Minute,
		stop:     make(chan struct{}),
	}
}

func (ns *NotificationScheduler) Start() {
	go ns.run()
	utils.InfoLogger.Println("Notification scheduler started")
}

func (ns *NotificationScheduler) Stop() {
	close(ns.stop)
}

func (ns *NotificationScheduler) run() {
	ticker := time.NewTicker(ns.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := ns.ProcessDue(time.Now()); err != nil {
				utils.ErrorLogger.Printf("Notification scheduling failed: %v", err)
			}
		case <-ns.stop:
			return
		}
	}
}

// ProcessDue advances next_run_at for every due recurring notification.
func (ns *NotificationScheduler) ProcessDue(now time.Time) error {
	var due []models.Notification
	err := ns.db.Where("recurring = ? AND next_run_at IS NOT NULL AND next_run_at <= ?", true, now).
		Find(&due).Error
	if err != nil {
		return err
	}

	for _, n := range due {
		next := NextRunAfter(&n)
		if err := ns.db.Model(&models.Notification{}).
			Where("id = ?", n.ID).
			Update("next_run_at", next).Error; err != nil {
			return err
		}
	}
	return nil
}

// NextRunAfter computes the following run of a recurring notification, or
// nil when the recurrence type is unknown.
func NextRunAfter(n *models.Notification) *time.Time {
	if n.NextRunAt == nil || n.RecurringType == nil {
		return nil
	}
	current := *n.NextRunAt

	switch *n.RecurringType {
	case models.RecurringDaily:
		next := current.AddDate(0, 0, 1)
		return &next
	case models.RecurringWeekly:
		weekday := time.Monday
		if n.RecurringValue != nil {
			weekday = parseWeekday(*n.RecurringValue)
		}
		next := nextWeekday(current, weekday)
		return &next
	case models.RecurringMonthly:
		next := current.AddDate(0, 1, 0)
		return &next
	}
	return nil
}

func parseWeekday(name string) time.Weekday {
	switch strings.ToLower(name) {
	case "sunday":
		return time.Sunday
	case "tuesday":
		return time.Tuesday
	case "wednesday":
		return time.Wednesday
	case "thursday":
		return time.Thursday
	case "friday":
		return time.Friday
	case "saturday":
		return time.Saturday
	default:
		return time.Monday
	}
}

func nextWeekday(after time.Time, weekday time.Weekday) time.Time {
	days := int(weekday-after.Weekday()+7) % 7
	if days == 0 {
		days = 7
	}
	return after.AddDate(0, 0, days)
}
