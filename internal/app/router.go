package app

import (
	"course_backend/docs"
	"course_backend/internal/config"
	"course_backend/internal/middleware"
	"course_backend/internal/model"
	"course_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/api/health", c.health.HealthCheck)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg.JWT.Secret))
	{
		a.registerAttemptRoutes(authGroup, c)
		a.registerAuthoringRoutes(authGroup, c)
	}
}

func (a *App) registerAttemptRoutes(api *gin.RouterGroup, c *controllers) {
	// 学生本人、讲师与管理员，归属在控制器中校验
	api.POST("/attempts/:studentId/:testId", c.attempt.CreateAttempt)
	api.GET("/attempts/:studentId/:testId", c.attempt.ListAttempts)
	api.GET("/attempt/:id", c.attempt.GetAttempt)
	api.POST("/attempt/:id/grade", c.attempt.GradeAttempt)
	api.POST("/attempt/:id/answers", c.attempt.SubmitAnswers)
	api.GET("/attempt/:id/answers", c.attempt.ListAnswers)

	admin := api.Group("")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.PUT("/attempt/:id", c.attempt.AmendAttempt)
		admin.DELETE("/attempt/:id", c.attempt.DeleteAttempt)
	}

	api.PUT("/answers/:id/points", middleware.RoleMiddleware(model.Instructor), c.attempt.AwardPoints)
}

func (a *App) registerAuthoringRoutes(api *gin.RouterGroup, c *controllers) {
	api.GET("/tests", c.assessment.ListTests)
	api.GET("/tests/:id", c.assessment.GetTest)
	api.GET("/tests/:id/questions", c.assessment.ListQuestions)
	api.GET("/questions/:id", c.assessment.GetQuestion)

	instructor := api.Group("")
	instructor.Use(middleware.RoleMiddleware(model.Instructor))
	{
		instructor.POST("/tests", c.assessment.CreateTest)
		instructor.PUT("/tests/:id", c.assessment.UpdateTest)
		instructor.DELETE("/tests/:id", c.assessment.DeleteTest)

		instructor.POST("/tests/:id/questions", c.assessment.CreateQuestion)
		instructor.PUT("/questions/:id", c.assessment.UpdateQuestion)
		instructor.DELETE("/questions/:id", c.assessment.DeleteQuestion)

		// 答案键包含正确选项，仅对讲师开放
		instructor.POST("/questions/:id/answers", c.assessment.CreateAnswerKey)
		instructor.GET("/questions/:id/answers", c.assessment.ListAnswerKeys)
		instructor.GET("/answer-keys/:id", c.assessment.GetAnswerKey)
		instructor.PUT("/answer-keys/:id", c.assessment.UpdateAnswerKey)
		instructor.DELETE("/answer-keys/:id", c.assessment.DeleteAnswerKey)
	}
}
