package views

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/warrantykeeper/internal/client/models"
)

// ExpiringSoonDays is the horizon of the ExpiringSoon status.
const ExpiringSoonDays = 30

// Status is the display state of a single warranty.
type Status int

const (
	StatusActive Status = iota
	StatusExpiringSoon
	StatusExpired
)

func (s Status) String() string {
	switch s {
	case StatusExpired:
		return "Expired"
	case StatusExpiringSoon:
		return "Expiring Soon"
	default:
		return "Active"
	}
}

func expiryInstant(w models.Warranty, loc *time.Location) time.Time {
	return w.ExpiryDate.In(loc)
}

// IsExpired reports whether w expired strictly before now.
func IsExpired(w models.Warranty, now time.Time, loc *time.Location) bool {
	return expiryInstant(w, loc).Before(now)
}

// Upcoming returns the records whose expiry falls inside [now, window end],
// both ends inclusive.
func Upcoming(ws []models.Warranty, now time.Time, loc *time.Location, win Window) []models.Warranty {
	end := win.End(now.In(loc))
	return filter(ws, func(w models.Warranty) bool {
		exp := expiryInstant(w, loc)
		return !exp.Before(now) && !exp.After(end)
	})
}

// Expired returns the records whose expiry is strictly before now.
func Expired(ws []models.Warranty, now time.Time, loc *time.Location) []models.Warranty {
	return filter(ws, func(w models.Warranty) bool {
		return IsExpired(w, now, loc)
	})
}

// Active returns the complement of Expired.
func Active(ws []models.Warranty, now time.Time, loc *time.Location) []models.Warranty {
	return filter(ws, func(w models.Warranty) bool {
		return !IsExpired(w, now, loc)
	})
}

// Search matches q as a case-insensitive substring of the product name,
// brand or notes. An empty query matches everything.
func Search(ws []models.Warranty, q string) []models.Warranty {
	needle := strings.ToLower(q)
	return filter(ws, func(w models.Warranty) bool {
		if strings.Contains(strings.ToLower(w.ProductName), needle) ||
			strings.Contains(strings.ToLower(w.Brand), needle) {
			return true
		}
		return w.Notes != nil && strings.Contains(strings.ToLower(*w.Notes), needle)
	})
}

// FilterByCategory keeps the records whose category equals c exactly.
func FilterByCategory(ws []models.Warranty, c string) []models.Warranty {
	return filter(ws, func(w models.Warranty) bool {
		return w.Category == c
	})
}

// StatusOf classifies w for display.
func StatusOf(w models.Warranty, now time.Time, loc *time.Location) Status {
	exp := expiryInstant(w, loc)
	switch {
	case exp.Before(now):
		return StatusExpired
	case exp.Before(now.AddDate(0, 0, ExpiringSoonDays)):
		return StatusExpiringSoon
	}
	return StatusActive
}

// DaysRemaining returns the number of whole calendar days from today to the
// expiry date. It is negative once the warranty has expired.
func DaysRemaining(w models.Warranty, now time.Time, loc *time.Location) int {
	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	exp := w.ExpiryDate.In(time.UTC)
	return int(exp.Sub(today).Hours() / 24)
}

func filter(ws []models.Warranty, keep func(models.Warranty) bool) []models.Warranty {
	out := make([]models.Warranty, 0, len(ws))
	for _, w := range ws {
		if keep(w) {
			out = append(out, w)
		}
	}
	return out
}
