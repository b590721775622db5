package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/glicocare/glicocare/internal/domain"
)

// chatFallback is appended as a normal assistant message when the gateway
// call fails. The chat view never shows a raw error.
const chatFallback = "Desculpe, tive um problema de conexão. Tente novamente em breve."

type chatRequest struct {
	History []domain.ChatMessage `json:"history"`
	Message string               `json:"message" binding:"required"`
}

// chat fails open: a gateway failure is answered with HTTP 200 and the
// fixed apology text so the conversation keeps flowing.
func (s *Server) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, _ := s.app.Profile()
	reply, err := s.ai.Chat(c.Request.Context(), req.History, req.Message, profile)
	if err != nil {
		s.errs.Handle(c.Request.Context(), err)
		c.JSON(http.StatusOK, domain.ChatMessage{Role: domain.RoleModel, Text: chatFallback})
		return
	}

	c.JSON(http.StatusOK, domain.ChatMessage{Role: domain.RoleModel, Text: reply})
}
