// Package server exposes the application views as a local HTTP/JSON API.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/glicocare/glicocare/internal/domain"
	apperrors "github.com/glicocare/glicocare/internal/errors"
	"github.com/glicocare/glicocare/internal/logger"
	"github.com/glicocare/glicocare/internal/services"
)

// Server wires the state controller and the AI gateway to the view routes.
type Server struct {
	router *gin.Engine
	http   *http.Server
	app    *services.AppService
	ai     domain.NutritionAI
	errs   *apperrors.Handler
}

// New builds the router with all view routes registered.
func New(app *services.AppService, ai domain.NutritionAI) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	s := &Server{
		router: router,
		app:    app,
		ai:     ai,
		errs:   apperrors.NewHandler(logger.GetLogger()),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.router.Group("/api/v1")

	// Profile setup and theme stay reachable without a profile; everything
	// else forces the client back to setup.
	api.GET("/profile", s.getProfile)
	api.PUT("/profile", s.putProfile)
	api.GET("/theme", s.getTheme)
	api.POST("/theme/toggle", s.toggleTheme)

	gated := api.Group("", s.requireProfile())
	gated.GET("/dashboard", s.getDashboard)
	gated.GET("/glucose", s.listGlucose)
	gated.POST("/glucose", s.addGlucose)
	gated.POST("/food/search", s.searchFood)
	gated.POST("/meals/analyze", s.analyzeMeal)
	gated.POST("/meals/plan", s.generateMealPlan)
	gated.GET("/meals/plans", s.listMealPlans)
	gated.POST("/chat", s.chat)
}

// requireProfile blocks every gated view until a profile exists.
func (s *Server) requireProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.app.HasProfile() {
			c.AbortWithStatusJSON(http.StatusPreconditionFailed, gin.H{
				"code":  "profile_required",
				"error": "Configure seu perfil antes de continuar.",
			})
		}
	}
}

// Router returns the underlying engine, used by tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start begins serving on the given port and blocks until the listener
// stops.
func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	logger.Info("HTTP server listening", "port", port)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}
