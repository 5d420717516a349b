package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/warrantykeeper/internal/timex"
)

// WindowUnit selects how the "expiring within N days" window is measured.
type WindowUnit int

const (
	// WindowDays measures N calendar days from now.
	WindowDays WindowUnit = iota
	// WindowLegacyMonths converts N to N/30 whole calendar months
	// (integer division), so 30..59 days mean one month and anything
	// below 30 means no window beyond today.
	WindowLegacyMonths
)

func (u WindowUnit) String() string {
	switch u {
	case WindowDays:
		return "days"
	case WindowLegacyMonths:
		return "months"
	}
	return fmt.Sprintf("WindowUnit(%d)", int(u))
}

// ParseWindowUnit accepts "days" or "months".
func ParseWindowUnit(s string) (WindowUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "days", "":
		return WindowDays, nil
	case "months":
		return WindowLegacyMonths, nil
	}
	return 0, fmt.Errorf("unknown expiry window unit %q", s)
}

// Window is an upcoming-expiration horizon.
type Window struct {
	Days int
	Unit WindowUnit
}

// End returns the last instant covered by the window starting at now.
// Calendar arithmetic is done in now's location.
func (w Window) End(now time.Time) time.Time {
	if w.Unit == WindowLegacyMonths {
		today := timex.DateOf(now)
		shifted := today.AddMonths(w.Days / 30)
		h, m, s := now.Clock()
		return time.Date(shifted.Year, shifted.Month, shifted.Day, h, m, s, now.Nanosecond(), now.Location())
	}
	return now.AddDate(0, 0, w.Days)
}
