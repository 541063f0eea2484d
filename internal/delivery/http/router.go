package http

import (
	"github.com/gdugdh24/matchdotcom-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/matchdotcom-backend/internal/delivery/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

type Router struct {
	profileHandler *handler.ProfileHandler
	searchHandler  *handler.SearchHandler
	logger         *logrus.Logger
}

func NewRouter(
	profileHandler *handler.ProfileHandler,
	searchHandler *handler.SearchHandler,
	logger *logrus.Logger,
) *Router {
	return &Router{
		profileHandler: profileHandler,
		searchHandler:  searchHandler,
		logger:         logger,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(r.logger))

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1
	v1 := router.Group("/api/v1")
	{
		profiles := v1.Group("/profiles")
		{
			profiles.POST("", r.profileHandler.CreateProfile)
			profiles.GET("", r.profileHandler.ListProfiles)
			profiles.GET("/id/:id", r.profileHandler.GetProfileByID)
			profiles.DELETE("/id/:id", r.profileHandler.DeleteProfileByID)
			profiles.GET("/:username", r.profileHandler.GetProfile)
			profiles.PUT("/:username", r.profileHandler.UpdateProfile)
			profiles.DELETE("/:username", r.profileHandler.DeleteProfile)
			profiles.POST("/:username/geocode", r.profileHandler.RefreshCoordinates)
		}

		v1.POST("/search", r.searchHandler.Search)
	}

	return router
}
