package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/courseloom/courseloom-backend/internal/config"
	"github.com/courseloom/courseloom-backend/internal/handler"
	"github.com/courseloom/courseloom-backend/internal/middleware"
	"github.com/courseloom/courseloom-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth   *handler.AuthHandler
	Course *handler.CourseHandler
	Editor *handler.EditorHandler
	Review *handler.ReviewHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(handlers *Handlers, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.MaxMultipartMemory = cfg.MaxUploadBytes

	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── Public Group ──────────────────────────────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/login", handlers.Auth.Login)
	}

	// ─── Instructor Group (Bearer Presence) ────────────────────────────
	api := router.Group("/api/v1")
	api.Use(middleware.RequireInstructorToken())
	{
		// Courses and versions. Read endpoints allow a short browser
		// cache matching the server-side one.
		readCache := middleware.PrivateCache(int(cfg.CacheTTL.Seconds()))
		api.GET("/courses", readCache, handlers.Course.ListCourses)
		api.POST("/courses", handlers.Course.CreateCourse)
		api.GET("/courses/:course_id", readCache, handlers.Course.GetCourse)
		api.POST("/courses/:course_id/versions", handlers.Course.AddVersion)
		api.GET("/versions/:version_id", readCache, handlers.Course.GetVersion)
		api.GET("/versions/:version_id/questions", readCache, handlers.Course.ListVersionQuestions)
		api.POST("/versions/:version_id/review-request", handlers.Course.RequestReview)

		// Question-assembly sessions
		api.POST("/versions/:version_id/editor", handlers.Editor.OpenSession)
		api.GET("/editor/:session_id", handlers.Editor.GetSession)
		api.POST("/editor/:session_id/questions", handlers.Editor.AddQuestion)
		api.PUT("/editor/:session_id/questions/:question_number", handlers.Editor.EditQuestion)
		api.DELETE("/editor/:session_id/questions/:question_number", handlers.Editor.DeleteQuestion)
		api.POST("/editor/:session_id/import", handlers.Editor.ImportSuite)
		api.POST("/editor/:session_id/submit", handlers.Editor.Submit)
		api.DELETE("/editor/:session_id", handlers.Editor.DiscardSession)

		// Reviews
		api.GET("/reviews/:review_id", handlers.Review.GetReview)
		api.PUT("/reviews/:review_id/issues/:issue_id", handlers.Review.UpdateIssue)
		api.PUT("/reviews/:review_id/questions/:question_id", handlers.Review.UpdateQuestion)
	}

	return router
}
