package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"github.com/glicocare/glicocare/internal/domain"
	apperrors "github.com/glicocare/glicocare/internal/errors"
)

// AIService talks to the Gemini API. Every structured operation declares a
// response schema and re-validates the returned document before handing it
// to the domain.
type AIService struct {
	client     *genai.Client
	flashModel string
	proModel   string
}

// NewAIService creates the Gemini client. flashModel serves lookups,
// analysis and chat; proModel serves meal-plan generation.
func NewAIService(ctx context.Context, apiKey, flashModel, proModel string) (*AIService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &AIService{
		client:     client,
		flashModel: flashModel,
		proModel:   proModel,
	}, nil
}

// Close releases the underlying client connection.
func (s *AIService) Close() error {
	return s.client.Close()
}

func diabetesLabel(profile domain.UserProfile) string {
	if profile.DiabetesType == domain.DiabetesType1 {
		return "Tipo 1"
	}
	return "Tipo 2"
}

// FoodNutrition looks up nutrition facts for a single food item.
func (s *AIService) FoodNutrition(ctx context.Context, foodName string, profile domain.UserProfile) (*domain.FoodInfo, error) {
	prompt := fmt.Sprintf(`Analise o alimento: %s. Considere que o usuário tem Diabetes %s.
Forneça dados nutricionais precisos e um conselho de se é bom ou não para o consumo dele.`,
		foodName, diabetesLabel(profile))

	model := s.client.GenerativeModel(s.flashModel)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = foodInfoSchema

	raw, err := s.generate(ctx, model, prompt, "food lookup")
	if err != nil {
		return nil, err
	}

	return decodeFoodInfo(raw)
}

// AnalyzeMeal breaks a free-text meal description into line items and
// totals, with advice tailored to the profile's diabetes type.
func (s *AIService) AnalyzeMeal(ctx context.Context, description string, profile domain.UserProfile) (*domain.MealAnalysisResult, error) {
	prompt := fmt.Sprintf(`Analise a seguinte descrição de refeição: %q.
Identifique cada item, estime as porções padrão se não especificadas, e calcule o total de calorias, carboidratos, proteínas e gorduras.
Forneça um conselho específico para um diabético do %s.`,
		description, diabetesLabel(profile))

	model := s.client.GenerativeModel(s.flashModel)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = mealAnalysisSchema

	raw, err := s.generate(ctx, model, prompt, "meal analysis")
	if err != nil {
		return nil, err
	}

	return decodeMealAnalysis(raw)
}

// GenerateMealPlan builds a daily plan tailored to the current reading. The
// glucose status is computed locally before the request and embedded in the
// prompt; the stored plan always carries the locally computed status and
// value, not whatever the model returns.
func (s *AIService) GenerateMealPlan(ctx context.Context, profile domain.UserProfile, currentGlucose int) (*domain.MealPlan, error) {
	status := domain.ClassifyGlucose(currentGlucose, profile)

	prompt := fmt.Sprintf(`Crie um plano alimentar diário focado em CORRIGIR ou MANTER a glicemia.
Glicemia Atual: %d mg/dL (Status: %s).
Perfil do Usuário: Diabético %s, %d anos.
O plano deve ser específico para o estado atual da glicemia.
Se ALTA, foque em baixo índice glicêmico e fibras. Se BAIXA, foque em estabilização.
Explique detalhadamente como esse plano ajuda na glicemia atual.`,
		currentGlucose, statusPromptLabel(status), diabetesLabel(profile), profile.Age)

	model := s.client.GenerativeModel(s.proModel)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = mealPlanSchema

	raw, err := s.generate(ctx, model, prompt, "meal plan")
	if err != nil {
		return nil, err
	}

	return buildMealPlan(raw, currentGlucose, status, uuid.NewString(), time.Now())
}

// Chat sends the latest user message to the assistant. The profile's
// diabetes type is injected as the system instruction; history is used for
// local display only and is not resent to the model.
func (s *AIService) Chat(ctx context.Context, _ []domain.ChatMessage, message string, profile domain.UserProfile) (string, error) {
	model := s.client.GenerativeModel(s.flashModel)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(fmt.Sprintf(`Você é um educador em diabetes e nutricionista especializado.
O usuário tem Diabetes %s.
Responda de forma empática, técnica porém acessível. SEMPRE inclua um aviso de que você é uma IA e ele deve consultar um médico real.`,
			diabetesLabel(profile)))},
	}

	session := model.StartChat()
	resp, err := session.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return "", apperrors.NewExternalAPIError(err, "Gemini").WithContext("operation", "chat")
	}

	text, err := responseText(resp)
	if err != nil {
		return "", apperrors.NewSchemaError("chat", "text")
	}
	return text, nil
}

// generate issues one structured-output request and returns the raw JSON
// document the model produced.
func (s *AIService) generate(ctx context.Context, model *genai.GenerativeModel, prompt, operation string) ([]byte, error) {
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, apperrors.NewExternalAPIError(err, "Gemini").WithContext("operation", operation)
	}

	text, err := responseText(resp)
	if err != nil {
		return nil, apperrors.NewSchemaError(operation, "candidates")
	}
	return []byte(text), nil
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty model response")
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response part type %T", resp.Candidates[0].Content.Parts[0])
	}
	return string(text), nil
}
