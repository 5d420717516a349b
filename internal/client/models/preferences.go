package models

import (
	"fmt"
	"sort"
)

// NotificationPreferences are the user's alert toggles. They are stored
// only; nothing is scheduled or sent.
type NotificationPreferences struct {
	WarrantyExpiration bool `json:"warrantyExpiration"`
	UpcomingExpiration bool `json:"upcomingExpiration"`
	EmailNotifications bool `json:"emailNotifications"`
	PushNotifications  bool `json:"pushNotifications"`
	NewFeatures        bool `json:"newFeatures"`
	WeeklyDigest       bool `json:"weeklyDigest"`
}

func DefaultNotificationPreferences() NotificationPreferences {
	return NotificationPreferences{
		WarrantyExpiration: true,
		UpcomingExpiration: true,
		EmailNotifications: true,
		PushNotifications:  true,
	}
}

// toggles maps each preference name to its field.
func (p *NotificationPreferences) toggles() map[string]*bool {
	return map[string]*bool{
		"warrantyExpiration": &p.WarrantyExpiration,
		"upcomingExpiration": &p.UpcomingExpiration,
		"emailNotifications": &p.EmailNotifications,
		"pushNotifications":  &p.PushNotifications,
		"newFeatures":        &p.NewFeatures,
		"weeklyDigest":       &p.WeeklyDigest,
	}
}

// Toggle flips the named preference and returns its new value.
func (p *NotificationPreferences) Toggle(name string) (bool, error) {
	v, ok := p.toggles()[name]
	if !ok {
		return false, fmt.Errorf("unknown preference %q", name)
	}
	*v = !*v
	return *v, nil
}

// Names returns the preference names in a stable order.
func (p NotificationPreferences) Names() []string {
	m := p.toggles()
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Value returns the named preference.
func (p NotificationPreferences) Value(name string) (bool, bool) {
	v, ok := p.toggles()[name]
	if !ok {
		return false, false
	}
	return *v, true
}
