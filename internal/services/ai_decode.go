package services

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"

	"github.com/glicocare/glicocare/internal/domain"
	apperrors "github.com/glicocare/glicocare/internal/errors"
)

// Response schemas, one per structured operation. The Required lists are
// the contract: a response missing any of them is rejected in full.

var foodInfoSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"name":                {Type: genai.TypeString},
		"calories":            {Type: genai.TypeNumber},
		"carbs":               {Type: genai.TypeNumber},
		"protein":             {Type: genai.TypeNumber},
		"fat":                 {Type: genai.TypeNumber},
		"fiber":               {Type: genai.TypeNumber},
		"glycemicIndex":       {Type: genai.TypeNumber},
		"servingSize":         {Type: genai.TypeString},
		"diabeticSuitability": {Type: genai.TypeString},
		"isGood":              {Type: genai.TypeBoolean},
	},
	Required: []string{"name", "calories", "carbs", "isGood", "diabeticSuitability"},
}

var mealAnalysisSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"totalCalories": {Type: genai.TypeNumber},
		"totalCarbs":    {Type: genai.TypeNumber},
		"totalProtein":  {Type: genai.TypeNumber},
		"totalFat":      {Type: genai.TypeNumber},
		"items": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name":     {Type: genai.TypeString},
					"calories": {Type: genai.TypeNumber},
					"carbs":    {Type: genai.TypeNumber},
					"amount":   {Type: genai.TypeString},
				},
			},
		},
		"advice": {Type: genai.TypeString},
	},
	Required: []string{"totalCalories", "totalCarbs", "items", "advice"},
}

var mealPlanSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"breakfast":    {Type: genai.TypeString},
		"snack1":       {Type: genai.TypeString},
		"lunch":        {Type: genai.TypeString},
		"snack2":       {Type: genai.TypeString},
		"dinner":       {Type: genai.TypeString},
		"eveningSnack": {Type: genai.TypeString},
		"dailyAdvice":  {Type: genai.TypeString},
		"explanation": {
			Type:        genai.TypeString,
			Description: "Explicação técnica de como este plano ajuda a baixar ou subir a glicemia atual.",
		},
	},
	Required: []string{"breakfast", "lunch", "dinner", "explanation"},
}

// statusPromptLabel renders a glucose status the way the plan prompt spells
// it (uppercase).
func statusPromptLabel(status domain.GlucoseStatus) string {
	return strings.ToUpper(string(status))
}

// Payload types use pointers for required fields so a decode can tell an
// absent field from a zero value. The model's own schema enforcement is not
// trusted.

type foodInfoPayload struct {
	Name                *string  `json:"name"`
	Calories            *float64 `json:"calories"`
	Carbs               *float64 `json:"carbs"`
	Protein             float64  `json:"protein"`
	Fat                 float64  `json:"fat"`
	Fiber               float64  `json:"fiber"`
	GlycemicIndex       float64  `json:"glycemicIndex"`
	ServingSize         string   `json:"servingSize"`
	DiabeticSuitability *string  `json:"diabeticSuitability"`
	IsGood              *bool    `json:"isGood"`
}

func decodeFoodInfo(raw []byte) (*domain.FoodInfo, error) {
	const op = "food lookup"

	var payload foodInfoPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrorTypeSchema, "SCHEMA_VIOLATION", "food lookup response is not valid JSON")
	}

	switch {
	case payload.Name == nil:
		return nil, apperrors.NewSchemaError(op, "name")
	case payload.Calories == nil:
		return nil, apperrors.NewSchemaError(op, "calories")
	case payload.Carbs == nil:
		return nil, apperrors.NewSchemaError(op, "carbs")
	case payload.IsGood == nil:
		return nil, apperrors.NewSchemaError(op, "isGood")
	case payload.DiabeticSuitability == nil:
		return nil, apperrors.NewSchemaError(op, "diabeticSuitability")
	}

	return &domain.FoodInfo{
		Name:                *payload.Name,
		Calories:            *payload.Calories,
		Carbs:               *payload.Carbs,
		Protein:             payload.Protein,
		Fat:                 payload.Fat,
		Fiber:               payload.Fiber,
		GlycemicIndex:       payload.GlycemicIndex,
		ServingSize:         payload.ServingSize,
		DiabeticSuitability: *payload.DiabeticSuitability,
		IsGood:              *payload.IsGood,
	}, nil
}

type mealAnalysisPayload struct {
	TotalCalories *float64                  `json:"totalCalories"`
	TotalCarbs    *float64                  `json:"totalCarbs"`
	TotalProtein  float64                   `json:"totalProtein"`
	TotalFat      float64                   `json:"totalFat"`
	Items         []domain.MealAnalysisItem `json:"items"`
	Advice        *string                   `json:"advice"`
}

func decodeMealAnalysis(raw []byte) (*domain.MealAnalysisResult, error) {
	const op = "meal analysis"

	var payload mealAnalysisPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrorTypeSchema, "SCHEMA_VIOLATION", "meal analysis response is not valid JSON")
	}

	switch {
	case payload.TotalCalories == nil:
		return nil, apperrors.NewSchemaError(op, "totalCalories")
	case payload.TotalCarbs == nil:
		return nil, apperrors.NewSchemaError(op, "totalCarbs")
	case payload.Items == nil:
		return nil, apperrors.NewSchemaError(op, "items")
	case payload.Advice == nil:
		return nil, apperrors.NewSchemaError(op, "advice")
	}

	return &domain.MealAnalysisResult{
		TotalCalories: *payload.TotalCalories,
		TotalCarbs:    *payload.TotalCarbs,
		TotalProtein:  payload.TotalProtein,
		TotalFat:      payload.TotalFat,
		Items:         payload.Items,
		Advice:        *payload.Advice,
	}, nil
}

type mealPlanPayload struct {
	Breakfast    *string `json:"breakfast"`
	Snack1       string  `json:"snack1"`
	Lunch        *string `json:"lunch"`
	Snack2       string  `json:"snack2"`
	Dinner       *string `json:"dinner"`
	EveningSnack string  `json:"eveningSnack"`
	DailyAdvice  string  `json:"dailyAdvice"`
	Explanation  *string `json:"explanation"`
}

// buildMealPlan decodes a plan response and stamps it with the given id,
// timestamp and the locally computed glucose snapshot. Any status or level
// the model body might claim is discarded.
func buildMealPlan(raw []byte, currentGlucose int, status domain.GlucoseStatus, id string, now time.Time) (*domain.MealPlan, error) {
	const op = "meal plan"

	var payload mealPlanPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrorTypeSchema, "SCHEMA_VIOLATION", "meal plan response is not valid JSON")
	}

	switch {
	case payload.Breakfast == nil:
		return nil, apperrors.NewSchemaError(op, "breakfast")
	case payload.Lunch == nil:
		return nil, apperrors.NewSchemaError(op, "lunch")
	case payload.Dinner == nil:
		return nil, apperrors.NewSchemaError(op, "dinner")
	case payload.Explanation == nil:
		return nil, apperrors.NewSchemaError(op, "explanation")
	}

	return &domain.MealPlan{
		ID:            id,
		Date:          now,
		GlucoseLevel:  currentGlucose,
		GlucoseStatus: status,
		Breakfast:     *payload.Breakfast,
		Snack1:        payload.Snack1,
		Lunch:         *payload.Lunch,
		Snack2:        payload.Snack2,
		Dinner:        *payload.Dinner,
		EveningSnack:  payload.EveningSnack,
		DailyAdvice:   payload.DailyAdvice,
		Explanation:   *payload.Explanation,
	}, nil
}
