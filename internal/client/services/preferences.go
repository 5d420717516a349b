package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/warrantykeeper/internal/client/models"
	"github.com/dmitrijs2005/warrantykeeper/internal/client/repositories/kv"
	"github.com/dmitrijs2005/warrantykeeper/internal/logging"
)

// PreferencesKey is the storage key of the notification preferences.
const PreferencesKey = "notification-preferences"

type PreferencesService interface {
	Get(ctx context.Context) (models.NotificationPreferences, error)
	Set(ctx context.Context, prefs models.NotificationPreferences) error
	Toggle(ctx context.Context, name string) (bool, error)
}

type preferencesService struct {
	repo kv.Repository
	log  logging.Logger
}

func NewPreferencesService(repo kv.Repository, log logging.Logger) PreferencesService {
	if log == nil {
		log = logging.Nop{}
	}
	return &preferencesService{repo: repo, log: log}
}

// Get returns the stored preferences. Absent or unreadable JSON yields the
// defaults; only storage errors are returned.
func (s *preferencesService) Get(ctx context.Context) (models.NotificationPreferences, error) {
	prefs := models.DefaultNotificationPreferences()

	b, err := s.repo.Get(ctx, PreferencesKey)
	if err != nil {
		return prefs, fmt.Errorf("read preferences: %w", err)
	}
	if b == nil {
		return prefs, nil
	}

	if err := json.Unmarshal(b, &prefs); err != nil {
		s.log.Warn(ctx, "ignoring malformed preferences", "error", err)
		return models.DefaultNotificationPreferences(), nil
	}
	return prefs, nil
}

func (s *preferencesService) Set(ctx context.Context, prefs models.NotificationPreferences) error {
	b, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := s.repo.Set(ctx, PreferencesKey, b); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

// Toggle flips the named preference, saves it and returns the new value.
func (s *preferencesService) Toggle(ctx context.Context, name string) (bool, error) {
	prefs, err := s.Get(ctx)
	if err != nil {
		return false, err
	}
	v, err := prefs.Toggle(name)
	if err != nil {
		return false, err
	}
	if err := s.Set(ctx, prefs); err != nil {
		return false, err
	}
	s.log.Debug(ctx, "preference toggled", "name", name, "value", v)
	return v, nil
}
