// Package store keeps the warranty collection in memory and persists it as
// a single JSON document in a kv.Repository after every change.
//
// A Store is built with New, populated with Load and released with Close,
// which performs the final flush. All methods are safe for concurrent use.
// Reads return copies; callers never see the store's own records.
package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/warrantykeeper/internal/client/models"
	"github.com/dmitrijs2005/warrantykeeper/internal/client/repositories/kv"
	"github.com/dmitrijs2005/warrantykeeper/internal/client/views"
	"github.com/dmitrijs2005/warrantykeeper/internal/clock"
	"github.com/dmitrijs2005/warrantykeeper/internal/common"
	"github.com/dmitrijs2005/warrantykeeper/internal/logging"
	"github.com/google/uuid"
)

// CorruptSuffix is appended to the storage key when an unreadable blob is
// moved aside on Load.
const CorruptSuffix = ".corrupt"

type Store struct {
	repo  kv.Repository
	key   string
	clock clock.Clock
	log   logging.Logger
	newID func() string
	loc   *time.Location
	unit  views.WindowUnit

	mu         sync.RWMutex
	warranties []models.Warranty
}

func New(repo kv.Repository, opts ...Option) *Store {
	s := &Store{
		repo:  repo,
		key:   StorageKey,
		clock: clock.System{},
		log:   logging.Nop{},
		newID: uuid.NewString,
		loc:   time.Local,
		unit:  views.WindowDays,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory collection with the persisted one. An absent
// key means an empty collection. A blob that cannot be decoded is moved to
// key+CorruptSuffix and the store starts empty; only read failures of the
// underlying storage are returned.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.repo.Get(ctx, s.key)
	if err != nil {
		return fmt.Errorf("load %s: %w", s.key, err)
	}
	if b == nil {
		s.warranties = nil
		s.log.Debug(ctx, "no persisted warranties", "key", s.key)
		return nil
	}

	ws, err := decode(b, s.loc)
	if err != nil {
		s.log.Warn(ctx, "discarding persisted warranties", "key", s.key, "error", err)
		if rerr := s.repo.Rename(ctx, s.key, s.key+CorruptSuffix); rerr != nil {
			s.log.Error(ctx, "failed to keep corrupt state", "key", s.key, "error", rerr)
		}
		s.warranties = nil
		return nil
	}

	s.warranties = ws
	s.log.Info(ctx, "warranties loaded", "count", len(ws))
	return nil
}

// Flush writes the current collection to storage.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.persist(ctx)
}

// Close performs the final flush.
func (s *Store) Close(ctx context.Context) error {
	if err := s.Flush(ctx); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	return nil
}

// persist must be called with s.mu held.
func (s *Store) persist(ctx context.Context) error {
	b, err := encode(s.warranties)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", common.ErrPersistence, err)
	}
	if err := s.repo.Set(ctx, s.key, b); err != nil {
		return fmt.Errorf("%w: %w", common.ErrPersistence, err)
	}
	return nil
}

// persistOrLog is the write-behind of every mutation. The in-memory change
// stays even when storage fails.
func (s *Store) persistOrLog(ctx context.Context, op string) {
	if err := s.persist(ctx); err != nil {
		s.log.Error(ctx, "failed to persist warranties", "op", op, "error", err)
	}
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.warranties, func(w models.Warranty) bool {
		return w.ID == id
	})
}

// maxIDAttempts bounds how often the configured generator is retried
// before uuid.NewString takes over.
const maxIDAttempts = 16

// uniqueID draws ids until one is not in use.
func (s *Store) uniqueID() string {
	for i := 0; i < maxIDAttempts; i++ {
		id := s.newID()
		if id != "" && s.indexOf(id) < 0 {
			return id
		}
	}
	for {
		if id := uuid.NewString(); s.indexOf(id) < 0 {
			return id
		}
	}
}

// Add appends a new warranty and returns its id.
func (s *Store) Add(ctx context.Context, in models.WarrantyInput) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := models.Warranty{
		ID:             s.uniqueID(),
		ProductName:    in.ProductName,
		Brand:          in.Brand,
		Category:       in.Category,
		PurchaseDate:   in.PurchaseDate,
		WarrantyPeriod: in.WarrantyPeriod,
		ExpiryDate:     models.ComputeExpiry(in.PurchaseDate, in.WarrantyPeriod),
		Price:          in.Price,
		ReceiptImage:   in.ReceiptImage,
		Notes:          in.Notes,
		ContactInfo:    in.Contact(),
		CreatedAt:      s.clock.Now().UTC(),
	}.Clone()

	s.warranties = append(s.warranties, w)
	s.log.Debug(ctx, "warranty added", "id", w.ID)
	s.persistOrLog(ctx, "add")
	return w.ID
}

// Update applies patch to the warranty with the given id. It reports false
// and changes nothing when the id is unknown.
func (s *Store) Update(ctx context.Context, id string, patch models.WarrantyPatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		s.log.Debug(ctx, "update of unknown warranty", "id", id)
		return false
	}
	s.warranties[i] = patch.Apply(s.warranties[i])
	s.persistOrLog(ctx, "update")
	return true
}

// Delete removes the warranty with the given id. It reports false when the
// id is unknown.
func (s *Store) Delete(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		s.log.Debug(ctx, "delete of unknown warranty", "id", id)
		return false
	}
	s.warranties = slices.Delete(s.warranties, i, i+1)
	s.persistOrLog(ctx, "delete")
	return true
}

func (s *Store) GetByID(id string) (models.Warranty, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Warranty{}, false
	}
	return s.warranties[i].Clone(), true
}

// Get is GetByID for callers that prefer an error.
func (s *Store) Get(id string) (models.Warranty, error) {
	w, ok := s.GetByID(id)
	if !ok {
		return models.Warranty{}, fmt.Errorf("warranty %s: %w", id, common.ErrNotFound)
	}
	return w, nil
}

// All returns a copy of the collection in insertion order.
func (s *Store) All() []models.Warranty {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.warranties)
}

// snapshot must be called with s.mu held.
func (s *Store) snapshot() []models.Warranty {
	out := make([]models.Warranty, len(s.warranties))
	for i, w := range s.warranties {
		out[i] = w.Clone()
	}
	return out
}

// Location is the time zone dates are interpreted in.
func (s *Store) Location() *time.Location {
	return s.loc
}

// Now returns the store clock's current time.
func (s *Store) Now() time.Time {
	return s.clock.Now()
}

// UpcomingExpirations returns the warranties expiring between now and the
// end of a days-long window, inclusive.
func (s *Store) UpcomingExpirations(days int) []models.Warranty {
	return views.Upcoming(s.All(), s.clock.Now(), s.loc, views.Window{Days: days, Unit: s.unit})
}

func (s *Store) ExpiredWarranties() []models.Warranty {
	return views.Expired(s.All(), s.clock.Now(), s.loc)
}

func (s *Store) ActiveWarranties() []models.Warranty {
	return views.Active(s.All(), s.clock.Now(), s.loc)
}

func (s *Store) SearchWarranties(query string) []models.Warranty {
	return views.Search(s.All(), query)
}

func (s *Store) FilterByCategory(category string) []models.Warranty {
	return views.FilterByCategory(s.All(), category)
}

// Summary returns the dashboard numbers, with ExpiringSoon over the given
// window.
func (s *Store) Summary(days int) views.Summary {
	return views.Summarize(s.All(), s.clock.Now(), s.loc, views.Window{Days: days, Unit: s.unit})
}

// IsPersistenceError reports whether err came from the storage layer.
func IsPersistenceError(err error) bool {
	return errors.Is(err, common.ErrPersistence)
}
