package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/glicocare/glicocare/internal/domain"
)

type foodSearchRequest struct {
	Name string `json:"name" binding:"required"`
}

// searchFood is a stateless pass-through to the AI gateway. Failures come
// back as a dismissible, non-technical banner message.
func (s *Server) searchFood(c *gin.Context) {
	var req foodSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, _ := s.app.Profile()
	info, err := s.ai.FoodNutrition(c.Request.Context(), req.Name, profile)
	if err != nil {
		s.errs.Handle(c.Request.Context(), err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Não foi possível analisar o alimento. Tente novamente."})
		return
	}

	c.JSON(http.StatusOK, info)
}

type mealAnalysisRequest struct {
	Description string `json:"description" binding:"required"`
}

func (s *Server) analyzeMeal(c *gin.Context) {
	var req mealAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Descreva a refeição."})
		return
	}

	profile, _ := s.app.Profile()
	result, err := s.ai.AnalyzeMeal(c.Request.Context(), req.Description, profile)
	if err != nil {
		s.errs.Handle(c.Request.Context(), err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Não foi possível analisar a refeição. Tente novamente."})
		return
	}

	c.JSON(http.StatusOK, result)
}

// generateMealPlan requires a usable glucose reading: today's latest, or
// the most recent overall. Without one the client is told to route to the
// logger first.
func (s *Server) generateMealPlan(c *gin.Context) {
	profile, _ := s.app.Profile()
	latest, ok := domain.LatestForPlan(s.app.GlucoseHistory(), time.Now())
	if !ok {
		c.JSON(http.StatusPreconditionFailed, gin.H{
			"code":  "glucose_required",
			"error": "Registre sua glicemia antes de gerar um plano.",
		})
		return
	}

	plan, err := s.ai.GenerateMealPlan(c.Request.Context(), profile, latest.Value)
	if err != nil {
		s.errs.Handle(c.Request.Context(), err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Não foi possível gerar o plano. Tente novamente."})
		return
	}

	if err := s.app.AddMealPlan(c.Request.Context(), *plan); err != nil {
		s.errs.Handle(c.Request.Context(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível salvar o plano."})
		return
	}

	c.JSON(http.StatusCreated, plan)
}

func (s *Server) listMealPlans(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"plans": s.app.MealPlans()})
}
