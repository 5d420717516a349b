package store

import (
	"time"

	"github.com/dmitrijs2005/warrantykeeper/internal/client/views"
	"github.com/dmitrijs2005/warrantykeeper/internal/clock"
	"github.com/dmitrijs2005/warrantykeeper/internal/logging"
)

// Option configures a Store.
type Option func(*Store)

func WithClock(c clock.Clock) Option {
	return func(s *Store) { s.clock = c }
}

func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithIDGenerator replaces the UUID generator, mostly for tests.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithLocation sets the time zone in which dates start at midnight.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithWindowUnit selects how UpcomingExpirations measures its window.
func WithWindowUnit(u views.WindowUnit) Option {
	return func(s *Store) { s.unit = u }
}

// WithStorageKey overrides StorageKey.
func WithStorageKey(key string) Option {
	return func(s *Store) { s.key = key }
}
