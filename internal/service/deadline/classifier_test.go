package deadline_test

import (
	"strconv"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"startask/internal/domain"
	"startask/internal/service/deadline"
)

func TestClassify_Tiers(t *testing.T) {
	tests := []struct {
		days     int
		tier     deadline.Tier
		title    string
		priority domain.Priority
		message  string
	}{
		{-3, deadline.TierToday, "Deadline today", domain.PriorityHigh, `Project "Launch" is due today`},
		{0, deadline.TierToday, "Deadline today", domain.PriorityHigh, `Project "Launch" is due today`},
		{1, deadline.TierApproaching, "Deadline approaching", domain.PriorityHigh, `Project "Launch" is due tomorrow`},
		{2, deadline.TierNear, "Deadline near", domain.PriorityMedium, `Project "Launch" is due in 2 days`},
		{3, deadline.TierNear, "Deadline near", domain.PriorityMedium, `Project "Launch" is due in 3 days`},
		{4, deadline.TierReminder, "Project reminder", domain.PriorityLow, `Project "Launch" is due in 4 days`},
		{7, deadline.TierReminder, "Project reminder", domain.PriorityLow, `Project "Launch" is due in 7 days`},
		{30, deadline.TierReminder, "Project reminder", domain.PriorityLow, `Project "Launch" is due in 30 days`},
	}

	for _, tt := range tests {
		u := deadline.Classify("Launch", tt.days)
		assert.Equal(t, tt.tier, u.Tier, "days=%d", tt.days)
		assert.Equal(t, tt.title, u.Title, "days=%d", tt.days)
		assert.Equal(t, tt.priority, u.Priority, "days=%d", tt.days)
		assert.Equal(t, tt.message, u.Message, "days=%d", tt.days)
		assert.Equal(t, tt.days, u.DaysRemaining)
	}
}

func TestClassify_OverdueAlwaysHigh(t *testing.T) {
	for days := -30; days <= 0; days++ {
		u := deadline.Classify("p", days)
		assert.Equal(t, domain.PriorityHigh, u.Priority)
		assert.Equal(t, "Deadline today", u.Title)
	}
}

func TestClassify_ReminderCarriesDayCount(t *testing.T) {
	for days := 4; days <= 60; days++ {
		u := deadline.Classify("p", days)
		assert.Equal(t, domain.PriorityLow, u.Priority)
		assert.Contains(t, u.Message, " "+strconv.Itoa(days)+" days")
	}
}

func TestDaysRemaining(t *testing.T) {
	due := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)

	t.Run("Calendar days ignore time of day", func(t *testing.T) {
		assert.Equal(t, 1, deadline.DaysRemaining(due, time.Date(2026, 3, 10, 0, 0, 1, 0, time.UTC), time.UTC))
		assert.Equal(t, 1, deadline.DaysRemaining(due, time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC), time.UTC))
		assert.Equal(t, 0, deadline.DaysRemaining(due, time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC), time.UTC))
		assert.Equal(t, -2, deadline.DaysRemaining(due, time.Date(2026, 3, 13, 8, 0, 0, 0, time.UTC), time.UTC))
		assert.Equal(t, 8, deadline.DaysRemaining(due, time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC), time.UTC))
	})

	t.Run("Civil date follows the location", func(t *testing.T) {
		loc, err := time.LoadLocation("America/New_York")
		require.NoError(t, err)

		// 02:00 UTC on the 11th is still the 10th in New York.
		now := time.Date(2026, 3, 11, 2, 0, 0, 0, time.UTC)
		assert.Equal(t, 0, deadline.DaysRemaining(due, now, time.UTC))
		assert.Equal(t, 1, deadline.DaysRemaining(due, now, loc))
	})

	t.Run("Across DST change", func(t *testing.T) {
		loc, err := time.LoadLocation("Europe/Berlin")
		require.NoError(t, err)

		now := time.Date(2026, 3, 27, 12, 0, 0, 0, loc)
		later := time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, 7, deadline.DaysRemaining(later, now, loc))
	})

	t.Run("Nil location means UTC", func(t *testing.T) {
		assert.Equal(t, 1, deadline.DaysRemaining(due, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), nil))
	})
}
