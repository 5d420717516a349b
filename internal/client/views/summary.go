package views

import (
	"time"

	"github.com/dmitrijs2005/warrantykeeper/internal/client/models"
)

// Summary is the dashboard overview of a collection.
type Summary struct {
	Total        int
	Active       int
	ExpiringSoon int
	Expired      int
	// Health is the share of active warranties in percent, 0 for an empty
	// collection.
	Health float64
}

// Summarize computes the dashboard numbers. ExpiringSoon uses the same
// window as Upcoming.
func Summarize(ws []models.Warranty, now time.Time, loc *time.Location, win Window) Summary {
	expired := len(Expired(ws, now, loc))
	s := Summary{
		Total:        len(ws),
		Expired:      expired,
		Active:       len(ws) - expired,
		ExpiringSoon: len(Upcoming(ws, now, loc, win)),
	}
	if s.Total > 0 {
		s.Health = float64(s.Active) / float64(s.Total) * 100
	}
	return s
}
