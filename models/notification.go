package models

import "time"

const (
	RecurringDaily   = "daily"
	RecurringWeekly  = "weekly"
	RecurringMonthly = "monthly"
)

type Notification struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Type           string     `gorm:"type:varchar(50);not null" json:"type"`
	Title          string     `gorm:"type:varchar(255);not null" json:"title"`
	Message        string     `gorm:"type:text" json:"message"`
	Read           bool       `gorm:"not null;default:false" json:"read"`
	ScheduledAt    *time.Time `json:"scheduled_at,omitempty"`
	Recurring      bool       `gorm:"not null;default:false" json:"recurring"`
	RecurringType  *string    `gorm:"type:varchar(20)" json:"recurring_type,omitempty"`
	RecurringValue *string    `gorm:"type:varchar(20)" json:"recurring_value,omitempty"`
	NextRunAt      *time.Time `json:"next_run_at,omitempty"`
	CreatedAt      time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"not null" json:"updated_at"`
}
