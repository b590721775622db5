package domain

import (
	"time"
)

// DiabetesType is the clinical diabetes classification of the user.
type DiabetesType string

const (
	DiabetesType1 DiabetesType = "Type1"
	DiabetesType2 DiabetesType = "Type2"
)

// ThemeMode is the UI color scheme preference.
type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

// GlucoseStatus classifies a reading against the profile's target range.
type GlucoseStatus string

const (
	StatusAlta   GlucoseStatus = "Alta"
	StatusBaixa  GlucoseStatus = "Baixa"
	StatusNormal GlucoseStatus = "Normal"
)

// MealContext labels the moment of day a glucose reading was taken.
type MealContext string

const (
	ContextBeforeBreakfast MealContext = "Antes do café da manhã"
	ContextAfterBreakfast  MealContext = "Depois do café da manhã"
	ContextBeforeLunch     MealContext = "Antes do almoço"
	ContextAfterLunch      MealContext = "Depois do almoço"
	ContextBeforeDinner    MealContext = "Antes do jantar"
	ContextAfterDinner     MealContext = "Depois do jantar"
	ContextBedtime         MealContext = "Antes de dormir"
	ContextOther           MealContext = "Outro"
)

// MealContexts lists every valid meal context, in display order.
var MealContexts = []MealContext{
	ContextBeforeBreakfast,
	ContextAfterBreakfast,
	ContextBeforeLunch,
	ContextAfterLunch,
	ContextBeforeDinner,
	ContextAfterDinner,
	ContextBedtime,
	ContextOther,
}

// IsValid reports whether c is one of the fixed meal context labels.
func (c MealContext) IsValid() bool {
	for _, ctx := range MealContexts {
		if c == ctx {
			return true
		}
	}
	return false
}

// UserProfile holds the user's identity and clinical parameters. There is
// exactly zero or one profile; edits replace it wholesale.
type UserProfile struct {
	Name           string       `json:"name"`
	Age            int          `json:"age"`
	Weight         float64      `json:"weight"`
	Height         float64      `json:"height"`
	DiabetesType   DiabetesType `json:"diabetesType"`
	Medications    string       `json:"medications"`
	TargetRangeMin int          `json:"targetRangeMin"`
	TargetRangeMax int          `json:"targetRangeMax"`
	Theme          ThemeMode    `json:"theme,omitempty"`
}

// GlucoseEntry is one glucose measurement in mg/dL. Entries are immutable
// once created; there is no edit or delete.
type GlucoseEntry struct {
	ID          string      `json:"id"`
	Value       int         `json:"value"`
	Timestamp   time.Time   `json:"timestamp"`
	MealContext MealContext `json:"mealContext"`
	Notes       string      `json:"notes,omitempty"`
}

// MealPlan is an AI-generated daily plan keyed to the glucose reading that
// triggered it. GlucoseLevel and GlucoseStatus snapshot that reading.
type MealPlan struct {
	ID            string        `json:"id"`
	Date          time.Time     `json:"date"`
	GlucoseLevel  int           `json:"glucoseLevel"`
	GlucoseStatus GlucoseStatus `json:"glucoseStatus"`
	Breakfast     string        `json:"breakfast"`
	Snack1        string        `json:"snack1"`
	Lunch         string        `json:"lunch"`
	Snack2        string        `json:"snack2"`
	Dinner        string        `json:"dinner"`
	EveningSnack  string        `json:"eveningSnack"`
	DailyAdvice   string        `json:"dailyAdvice"`
	Explanation   string        `json:"explanation"`
}

// FoodInfo is a single-item nutrition lookup result. Ephemeral, never
// persisted.
type FoodInfo struct {
	Name                string  `json:"name"`
	Calories            float64 `json:"calories"`
	Carbs               float64 `json:"carbs"`
	Protein             float64 `json:"protein"`
	Fat                 float64 `json:"fat"`
	Fiber               float64 `json:"fiber"`
	GlycemicIndex       float64 `json:"glycemicIndex"`
	ServingSize         string  `json:"servingSize"`
	DiabeticSuitability string  `json:"diabeticSuitability"`
	IsGood              bool    `json:"isGood"`
}

// MealAnalysisItem is one line item of a meal breakdown.
type MealAnalysisItem struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Carbs    float64 `json:"carbs"`
	Amount   string  `json:"amount"`
}

// MealAnalysisResult is a multi-item meal breakdown. Ephemeral.
type MealAnalysisResult struct {
	TotalCalories float64            `json:"totalCalories"`
	TotalCarbs    float64            `json:"totalCarbs"`
	TotalProtein  float64            `json:"totalProtein"`
	TotalFat      float64            `json:"totalFat"`
	Items         []MealAnalysisItem `json:"items"`
	Advice        string             `json:"advice"`
}

// ChatRole is the author of a chat message.
type ChatRole string

const (
	RoleUser  ChatRole = "user"
	RoleModel ChatRole = "model"
)

// ChatMessage is one turn of the assistant conversation. Chat history lives
// only in the client's view memory; it is never persisted.
type ChatMessage struct {
	Role ChatRole `json:"role"`
	Text string   `json:"text"`
}
