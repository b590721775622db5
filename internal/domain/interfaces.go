package domain

import (
	"context"
)

// NutritionAI is the gateway to the generative model. All structured
// operations request schema-constrained output and fail hard when the
// response violates its declared shape.
type NutritionAI interface {
	// FoodNutrition looks up nutrition facts for a single food item.
	FoodNutrition(ctx context.Context, foodName string, profile UserProfile) (*FoodInfo, error)

	// AnalyzeMeal breaks a free-text meal description into line items and
	// totals.
	AnalyzeMeal(ctx context.Context, description string, profile UserProfile) (*MealAnalysisResult, error)

	// GenerateMealPlan builds a daily plan tailored to the current reading.
	// The returned plan carries a fresh id, the current timestamp and the
	// locally computed glucose status, regardless of what the model claims.
	GenerateMealPlan(ctx context.Context, profile UserProfile, currentGlucose int) (*MealPlan, error)

	// Chat sends the latest user message to the assistant. History is kept
	// for display only and is not resent to the model.
	Chat(ctx context.Context, history []ChatMessage, message string, profile UserProfile) (string, error)
}

// AppState is the single authority over profile, glucose history, meal-plan
// history and theme. Every mutation writes through to persistent storage.
type AppState interface {
	Load(ctx context.Context) error
	HasProfile() bool
	Profile() (UserProfile, bool)
	SetProfile(ctx context.Context, profile UserProfile) error
	GlucoseHistory() []GlucoseEntry
	AddGlucoseEntry(ctx context.Context, entry GlucoseEntry) error
	MealPlans() []MealPlan
	AddMealPlan(ctx context.Context, plan MealPlan) error
	Theme() ThemeMode
	ToggleTheme(ctx context.Context) (ThemeMode, error)
}
