package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafe-eden/pos-app/models"
)

func strptr(s string) *string { return &s }

func TestProcessDueAdvancesDaily(t *testing.T) {
	db := setupTestDB(t)

	due := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	daily := strptr(models.RecurringDaily)
	n := models.Notification{
		Type: "report", Title: "Daily sales report",
		Recurring: true, RecurringType: daily, NextRunAt: &due,
	}
	require.NoError(t, db.Create(&n).Error)

	scheduler := NewNotificationScheduler(db)
	require.NoError(t, scheduler.ProcessDue(due.Add(time.Minute)))

	var got models.Notification
	require.NoError(t, db.First(&got, n.ID).Error)
	require.NotNil(t, got.NextRunAt)
	assert.WithinDuration(t, due.AddDate(0, 0, 1), *got.NextRunAt, time.Second)
}

func TestProcessDueSkipsFuture(t *testing.T) {
	db := setupTestDB(t)

	future := time.Now().Add(time.Hour)
	daily := strptr(models.RecurringDaily)
	n := models.Notification{
		Type: "report", Title: "Not yet",
		Recurring: true, RecurringType: daily, NextRunAt: &future,
	}
	require.NoError(t, db.Create(&n).Error)

	scheduler := NewNotificationScheduler(db)
	require.NoError(t, scheduler.ProcessDue(time.Now()))

	var got models.Notification
	require.NoError(t, db.First(&got, n.ID).Error)
	require.NotNil(t, got.NextRunAt)
	assert.WithinDuration(t, future, *got.NextRunAt, time.Second)
}

func TestNextRunAfterWeekly(t *testing.T) {
	// 2026-08-31 is a Monday.
	monday := time.Date(2026, 8, 31, 8, 0, 0, 0, time.UTC)
	weekly := strptr(models.RecurringWeekly)
	friday := strptr("friday")

	n := models.Notification{RecurringType: weekly, RecurringValue: friday, NextRunAt: &monday}
	next := NextRunAfter(&n)
	require.NotNil(t, next)
	assert.Equal(t, time.Friday, next.Weekday())
	assert.Equal(t, monday.AddDate(0, 0, 4), *next)

	// Same weekday advances a full week.
	n.RecurringValue = strptr("monday")
	next = NextRunAfter(&n)
	require.NotNil(t, next)
	assert.Equal(t, monday.AddDate(0, 0, 7), *next)
}

func TestNextRunAfterMonthly(t *testing.T) {
	base := time.Date(2026, 1, 31, 8, 0, 0, 0, time.UTC)
	monthly := strptr(models.RecurringMonthly)

	n := models.Notification{RecurringType: monthly, NextRunAt: &base}
	next := NextRunAfter(&n)
	require.NotNil(t, next)
	assert.Equal(t, base.AddDate(0, 1, 0), *next)
}

func TestNextRunAfterUnknownType(t *testing.T) {
	base := time.Now()
	odd := strptr("hourly")
	n := models.Notification{RecurringType: odd, NextRunAt: &base}
	assert.Nil(t, NextRunAfter(&n))
}
