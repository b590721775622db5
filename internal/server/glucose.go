package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/glicocare/glicocare/internal/domain"
)

type glucoseRequest struct {
	Value       int    `json:"value"`
	MealContext string `json:"mealContext"`
	Notes       string `json:"notes"`
}

type glucoseEntryResponse struct {
	domain.GlucoseEntry
	Status domain.GlucoseStatus `json:"status"`
}

func (s *Server) listGlucose(c *gin.Context) {
	profile, _ := s.app.Profile()
	history := s.app.GlucoseHistory()

	entries := make([]glucoseEntryResponse, len(history))
	for i, entry := range history {
		entries[i] = glucoseEntryResponse{
			GlucoseEntry: entry,
			Status:       domain.ClassifyGlucose(entry.Value, profile),
		}
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// addGlucose records a reading. The id and timestamp are generated here;
// entries are immutable once stored. A value of zero is rejected, matching
// the submission check the logger view has always had.
func (s *Server) addGlucose(c *gin.Context) {
	var req glucoseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Value <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Informe um valor de glicemia válido."})
		return
	}
	mealContext := domain.MealContext(req.MealContext)
	if !mealContext.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Momento do dia inválido."})
		return
	}

	entry := domain.GlucoseEntry{
		ID:          uuid.NewString(),
		Value:       req.Value,
		Timestamp:   time.Now(),
		MealContext: mealContext,
		Notes:       req.Notes,
	}

	if err := s.app.AddGlucoseEntry(c.Request.Context(), entry); err != nil {
		s.errs.Handle(c.Request.Context(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível salvar a medição."})
		return
	}

	profile, _ := s.app.Profile()
	c.JSON(http.StatusCreated, glucoseEntryResponse{
		GlucoseEntry: entry,
		Status:       domain.ClassifyGlucose(entry.Value, profile),
	})
}

type dashboardPoint struct {
	Time  string `json:"time"`
	Value int    `json:"value"`
}

// getDashboard aggregates what the dashboard view renders: the latest
// reading with its classification, the pending-measurement flag and today's
// time series in chronological order.
func (s *Server) getDashboard(c *gin.Context) {
	profile, _ := s.app.Profile()
	history := s.app.GlucoseHistory()
	now := time.Now()

	resp := gin.H{
		"profile":         profile,
		"hasReadingToday": domain.HasReadingToday(history, now),
		"theme":           s.app.Theme(),
	}

	if len(history) > 0 {
		latest := history[0]
		resp["latest"] = glucoseEntryResponse{
			GlucoseEntry: latest,
			Status:       domain.ClassifyGlucose(latest.Value, profile),
		}
	}

	var series []dashboardPoint
	for i := len(history) - 1; i >= 0; i-- {
		entry := history[i]
		if domain.SameCalendarDay(entry.Timestamp, now) {
			series = append(series, dashboardPoint{
				Time:  entry.Timestamp.Local().Format("15:04"),
				Value: entry.Value,
			})
		}
	}
	resp["todaySeries"] = series

	c.JSON(http.StatusOK, resp)
}
