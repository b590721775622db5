package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/glicocare/glicocare/internal/domain"
)

type profileRequest struct {
	Name           string  `json:"name" binding:"required"`
	Age            int     `json:"age" binding:"required,gt=0"`
	Weight         float64 `json:"weight" binding:"required,gt=0"`
	Height         float64 `json:"height" binding:"required,gt=0"`
	DiabetesType   string  `json:"diabetesType" binding:"required,oneof=Type1 Type2"`
	Medications    string  `json:"medications"`
	TargetRangeMin int     `json:"targetRangeMin" binding:"required"`
	TargetRangeMax int     `json:"targetRangeMax" binding:"required"`
	Theme          string  `json:"theme" binding:"omitempty,oneof=light dark"`
}

func (s *Server) getProfile(c *gin.Context) {
	profile, ok := s.app.Profile()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"code": "profile_required", "error": "Nenhum perfil configurado."})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// putProfile replaces the profile wholesale. It serves both first-time setup
// and later edits.
func (s *Server) putProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile := domain.UserProfile{
		Name:           req.Name,
		Age:            req.Age,
		Weight:         req.Weight,
		Height:         req.Height,
		DiabetesType:   domain.DiabetesType(req.DiabetesType),
		Medications:    req.Medications,
		TargetRangeMin: req.TargetRangeMin,
		TargetRangeMax: req.TargetRangeMax,
		Theme:          domain.ThemeMode(req.Theme),
	}

	if err := s.app.SetProfile(c.Request.Context(), profile); err != nil {
		s.errs.Handle(c.Request.Context(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível salvar o perfil."})
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (s *Server) getTheme(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"theme": s.app.Theme()})
}

func (s *Server) toggleTheme(c *gin.Context) {
	theme, err := s.app.ToggleTheme(c.Request.Context())
	if err != nil {
		s.errs.Handle(c.Request.Context(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível salvar o tema."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": theme})
}
