package app

import (
	"quiz_exam_backend/docs"
	"quiz_exam_backend/internal/middleware"
	"quiz_exam_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 静态单页客户端
	router.StaticFile("/", "web/index.html")
	router.StaticFile("/index.html", "web/index.html")

	// 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/login", c.auth.Login)
		public.GET("/categories", c.question.Categories)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(repos.progress))
	{
		authGroup.POST("/logout", c.auth.Logout)
		authGroup.GET("/profile", c.auth.Profile)

		exam := authGroup.Group("/exam")
		{
			exam.POST("/start", c.exam.Start)
			exam.GET("/current", c.exam.Current)
			exam.GET("/sessions/:sessionId/questions/:order", c.exam.GetQuestion)
			exam.POST("/sessions/:sessionId/answers", c.exam.SubmitAnswer)
			exam.POST("/sessions/:sessionId/finish", c.exam.Finish)
			exam.GET("/wrong-questions", c.exam.WrongQuestions)
		}
	}
}
