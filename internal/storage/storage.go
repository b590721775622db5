// Package storage is the key-value port behind the application state.
// Values are whole JSON documents keyed by fixed record names; there are no
// transactions, no migrations and no schema versioning.
package storage

import (
	"context"
	"errors"
)

// Record keys. Each key holds one JSON-serialized value.
const (
	KeyProfile   = "glicocare_profile"
	KeyGlucose   = "glicocare_glucose"
	KeyTheme     = "glicocare_theme"
	KeyMealPlans = "glicocare_meal_plans"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("storage: key not found")

// Store is a narrow get/set contract over string keys and values.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
