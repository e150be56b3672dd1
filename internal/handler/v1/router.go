package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ayursutra/ayursutra/internal/config"
	"github.com/ayursutra/ayursutra/pkg/auth"
	"github.com/ayursutra/ayursutra/pkg/metrics"
)

type Handlers struct {
	Auth         *AuthHandler
	Patient      *PatientHandler
	Therapy      *TherapyHandler
	Feedback     *FeedbackHandler
	Profile      *ProfileHandler
	Advisory     *AdvisoryHandler
	Notification *NotificationHandler
}

func NewRouter(cfg *config.Config, jwtManager *auth.JWTManager, collector *metrics.Collector, log *zap.Logger, h Handlers) *gin.Engine {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(LoggingMiddleware(log))
	r.Use(MetricsMiddleware(collector))
	r.Use(CORSMiddleware(cfg.CORS))
	r.Use(RateLimitMiddleware(cfg.RateLimit))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": cfg.App.Version})
	})
	r.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(AuthRateLimitMiddleware(cfg.RateLimit))
	{
		authGroup.POST("/signup", h.Auth.SignUp)
		authGroup.POST("/signin", h.Auth.SignIn)
		authGroup.POST("/refresh", h.Auth.Refresh)
	}
	api.GET("/auth/me", AuthMiddleware(jwtManager), h.Auth.Me)

	protected := api.Group("")
	protected.Use(AuthMiddleware(jwtManager))
	{
		patients := protected.Group("/patients")
		{
			patients.POST("", h.Patient.Create)
			patients.GET("", h.Patient.List)
			patients.GET("/:id", h.Patient.Get)
			patients.PATCH("/:id", h.Patient.Update)
			patients.DELETE("/:id", h.Patient.Delete)
		}

		therapies := protected.Group("/therapies")
		{
			therapies.POST("", h.Therapy.Create)
			therapies.GET("", h.Therapy.List)
			therapies.GET("/:id", h.Therapy.Get)
			therapies.PATCH("/:id", h.Therapy.Update)
			therapies.DELETE("/:id", h.Therapy.Delete)
		}

		feedbacks := protected.Group("/feedback")
		{
			feedbacks.POST("", h.Feedback.Create)
			feedbacks.GET("", h.Feedback.List)
			feedbacks.GET("/:id", h.Feedback.Get)
			feedbacks.PATCH("/:id", h.Feedback.Update)
			feedbacks.DELETE("/:id", h.Feedback.Delete)
		}

		profileGroup := protected.Group("/profile")
		{
			profileGroup.GET("", h.Profile.Get)
			profileGroup.PATCH("", h.Profile.Update)
		}

		advisoryGroup := protected.Group("/advisory")
		{
			// Status stays reachable when the model is unconfigured so the
			// client can render the degraded state.
			advisoryGroup.GET("/status", h.Advisory.Status)

			gated := advisoryGroup.Group("")
			gated.Use(h.Advisory.Gate())
			{
				gated.POST("/dosha-analysis", h.Advisory.AnalyzeDosha)
				gated.POST("/treatment-recommendation", h.Advisory.TreatmentRecommendation)
				gated.POST("/symptom-analysis", h.Advisory.AnalyzeSymptoms)
				gated.POST("/patient-insights", h.Advisory.PatientInsights)
				gated.POST("/therapy-precautions", h.Advisory.TherapyPrecautions)
				gated.POST("/advice", h.Advisory.GeneralAdvice)
			}
		}

		notifications := protected.Group("/notifications")
		{
			notifications.GET("", h.Notification.List)
			notifications.GET("/unread-count", h.Notification.UnreadCount)
			notifications.POST("/read-all", h.Notification.MarkAllAsRead)
			notifications.POST("/:id/read", h.Notification.MarkAsRead)
			notifications.DELETE("", h.Notification.ClearAll)
			notifications.DELETE("/:id", h.Notification.Clear)
		}
	}

	return r
}
