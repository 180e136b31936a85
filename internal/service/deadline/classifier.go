package deadline

import (
	"fmt"
	"time"

	"startask/internal/domain"
)

// Tier is the urgency band a deadline falls into.
type Tier string

const (
	TierToday       Tier = "today"
	TierApproaching Tier = "approaching"
	TierNear        Tier = "near"
	TierReminder    Tier = "reminder"
)

// Urgency is the content of a deadline notification for one project.
type Urgency struct {
	Tier          Tier
	DaysRemaining int
	Title         string
	Message       string
	Priority      domain.Priority
}

// Classify maps the days left before a project's due date onto a tier.
// Overdue projects (negative days) are reported as due today.
func Classify(projectName string, daysRemaining int) Urgency {
	u := Urgency{DaysRemaining: daysRemaining}

	switch {
	case daysRemaining <= 0:
		u.Tier = TierToday
		u.Title = "Deadline today"
		u.Message = fmt.Sprintf("Project \"%s\" is due today", projectName)
		u.Priority = domain.PriorityHigh
	case daysRemaining == 1:
		u.Tier = TierApproaching
		u.Title = "Deadline approaching"
		u.Message = fmt.Sprintf("Project \"%s\" is due tomorrow", projectName)
		u.Priority = domain.PriorityHigh
	case daysRemaining <= 3:
		u.Tier = TierNear
		u.Title = "Deadline near"
		u.Message = fmt.Sprintf("Project \"%s\" is due in %d days", projectName, daysRemaining)
		u.Priority = domain.PriorityMedium
	default:
		u.Tier = TierReminder
		u.Title = "Project reminder"
		u.Message = fmt.Sprintf("Project \"%s\" is due in %d days", projectName, daysRemaining)
		u.Priority = domain.PriorityLow
	}

	return u
}

// DaysRemaining counts whole calendar days from the civil date of now in loc
// to the due date. Due dates carry no time of day, so only their year, month
// and day are used.
func DaysRemaining(due, now time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)

	dueDay := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)

	return int(dueDay.Sub(today).Hours() / 24)
}
