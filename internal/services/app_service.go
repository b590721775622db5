package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/glicocare/glicocare/internal/domain"
	apperrors "github.com/glicocare/glicocare/internal/errors"
	"github.com/glicocare/glicocare/internal/logger"
	"github.com/glicocare/glicocare/internal/storage"
)

// History caps. Older records past the cap are silently discarded.
const (
	maxGlucoseEntries = 50
	maxMealPlans      = 10
)

// AppService is the single in-memory authority for profile, glucose
// history, meal-plan history and theme. Every mutation writes through to
// the store before returning.
type AppService struct {
	store storage.Store

	mu      sync.RWMutex
	profile *domain.UserProfile
	glucose []domain.GlucoseEntry
	plans   []domain.MealPlan
	theme   domain.ThemeMode
}

// NewAppService creates the controller. Call Load before serving.
func NewAppService(store storage.Store) *AppService {
	return &AppService{
		store: store,
		theme: domain.ThemeLight,
	}
}

// Load reads the persisted records. A missing or unparseable value degrades
// to absent/empty/light; nothing here is an error to the caller except a
// failing store.
func (s *AppService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var profile domain.UserProfile
	found, err := s.read(ctx, storage.KeyProfile, &profile)
	if err != nil {
		return err
	}
	if found {
		s.profile = &profile
	}

	var glucose []domain.GlucoseEntry
	if _, err := s.read(ctx, storage.KeyGlucose, &glucose); err != nil {
		return err
	}
	s.glucose = glucose

	var plans []domain.MealPlan
	if _, err := s.read(ctx, storage.KeyMealPlans, &plans); err != nil {
		return err
	}
	s.plans = plans

	s.theme = domain.ThemeLight
	raw, err := s.store.Get(ctx, storage.KeyTheme)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return apperrors.NewStorageError(err)
	}
	if err == nil {
		var theme domain.ThemeMode
		if jsonErr := json.Unmarshal([]byte(raw), &theme); jsonErr == nil && theme == domain.ThemeDark {
			s.theme = domain.ThemeDark
		}
	}

	return nil
}

// read unmarshals the value under key into dest. A missing key or a value
// that is not valid JSON both report found=false.
func (s *AppService) read(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, err := s.store.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, apperrors.NewStorageError(err)
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		logger.Warn("Discarding unparseable stored record", "key", key, "error", err.Error())
		return false, nil
	}
	return true, nil
}

func (s *AppService) write(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize record %q: %w", key, err)
	}
	if err := s.store.Set(ctx, key, string(data)); err != nil {
		return apperrors.NewStorageError(err)
	}
	return nil
}

// HasProfile reports whether a profile exists. Every view except profile
// setup is gated on it.
func (s *AppService) HasProfile() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile != nil
}

// Profile returns the current profile, if one exists.
func (s *AppService) Profile() (domain.UserProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return domain.UserProfile{}, false
	}
	return *s.profile, true
}

// SetProfile replaces the profile wholesale and writes through.
func (s *AppService) SetProfile(ctx context.Context, profile domain.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.write(ctx, storage.KeyProfile, profile); err != nil {
		return err
	}
	s.profile = &profile
	return nil
}

// GlucoseHistory returns the readings, most recent first.
func (s *AppService) GlucoseHistory() []domain.GlucoseEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	history := make([]domain.GlucoseEntry, len(s.glucose))
	copy(history, s.glucose)
	return history
}

// AddGlucoseEntry prepends the entry, truncates the history to the cap and
// writes through. The caller owns id and timestamp generation; entries are
// not deduplicated.
func (s *AppService) AddGlucoseEntry(ctx context.Context, entry domain.GlucoseEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := make([]domain.GlucoseEntry, 0, len(s.glucose)+1)
	history = append(history, entry)
	history = append(history, s.glucose...)
	if len(history) > maxGlucoseEntries {
		history = history[:maxGlucoseEntries]
	}

	if err := s.write(ctx, storage.KeyGlucose, history); err != nil {
		return err
	}
	s.glucose = history
	return nil
}

// MealPlans returns the generated plans, most recent first.
func (s *AppService) MealPlans() []domain.MealPlan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	plans := make([]domain.MealPlan, len(s.plans))
	copy(plans, s.plans)
	return plans
}

// AddMealPlan prepends the plan, truncates to the cap and writes through.
func (s *AppService) AddMealPlan(ctx context.Context, plan domain.MealPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	plans := make([]domain.MealPlan, 0, len(s.plans)+1)
	plans = append(plans, plan)
	plans = append(plans, s.plans...)
	if len(plans) > maxMealPlans {
		plans = plans[:maxMealPlans]
	}

	if err := s.write(ctx, storage.KeyMealPlans, plans); err != nil {
		return err
	}
	s.plans = plans
	return nil
}

// Theme returns the current theme mode.
func (s *AppService) Theme() domain.ThemeMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// ToggleTheme flips light/dark, writes through and returns the new mode.
// Applying the mode to the document is the UI's job.
func (s *AppService) ToggleTheme(ctx context.Context) (domain.ThemeMode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := domain.ThemeLight
	if s.theme == domain.ThemeLight {
		next = domain.ThemeDark
	}

	if err := s.write(ctx, storage.KeyTheme, next); err != nil {
		return s.theme, err
	}
	s.theme = next
	return next, nil
}
