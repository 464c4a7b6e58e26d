package main

import (
	"context"
	"net/http"
	"time"

	"lms-quiz-service/config"
	"lms-quiz-service/database"
	"lms-quiz-service/internal/controller/student"
	"lms-quiz-service/internal/controller/teacher"
	"lms-quiz-service/internal/logger"
	"lms-quiz-service/internal/middleware"
	"lms-quiz-service/internal/model"
	"lms-quiz-service/internal/repository"
	"lms-quiz-service/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title LMS Quiz Service API
// @version 1.0
// @description Quiz-taking workflow for learning materials: attempts with shuffled questions, answer tracking, scoring and self-review, plus teacher authoring.
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		fx.Provide(
			repository.NewMaterialRepository,
			repository.NewQuizRepository,
			repository.NewQuestionRepository,
			repository.NewQuizResultRepository,
		),

		fx.Provide(
			service.NewScoreBandService,
			service.NewMaterialService,
			service.NewQuizContentService,
			service.NewResultService,
			service.NewAttemptService,
		),

		fx.Provide(
			student.NewAttemptController,
			student.NewContentController,
			teacher.NewAuthoringController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	middleware.InitMetrics()
	r.Use(middleware.MetricsMiddleware())
	r.GET("/metrics", middleware.PrometheusHandler())

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer wires the API routes and manages the HTTP
// server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	attemptCtrl *student.AttemptController,
	contentCtrl *student.ContentController,
	authoringCtrl *teacher.AuthoringController,
) {
	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg.JWT.Secret))

	// Content reads, open to both roles.
	api.GET("/materials", contentCtrl.ListMaterials)
	api.GET("/courses/:course_id/materials", contentCtrl.ListCourseMaterials)
	api.GET("/materials/:material_id/quizzes", contentCtrl.ListQuizzesForMaterial)
	api.GET("/quizzes/:quiz_id/questions", contentCtrl.ListQuestions)

	studentGroup := api.Group("")
	studentGroup.Use(middleware.RequireRole(middleware.RoleStudent))
	{
		studentGroup.POST("/materials/:material_id/attempts", attemptCtrl.StartAttempt)
		studentGroup.GET("/attempts/:attempt_id", attemptCtrl.GetAttempt)
		studentGroup.PUT("/attempts/:attempt_id/answers", attemptCtrl.SelectAnswer)
		studentGroup.POST("/attempts/:attempt_id/submit", attemptCtrl.SubmitAttempt)
		studentGroup.GET("/attempts/:attempt_id/review", attemptCtrl.GetReview)
		studentGroup.POST("/attempts/:attempt_id/reattempt", attemptCtrl.Reattempt)
		studentGroup.GET("/my/results", attemptCtrl.GetMyResults)
	}

	teacherGroup := api.Group("")
	teacherGroup.Use(middleware.RequireRole(middleware.RoleTeacher))
	{
		teacherGroup.POST("/courses/:course_id/materials", authoringCtrl.CreateMaterial)
		teacherGroup.DELETE("/materials/:material_id", authoringCtrl.DeleteMaterial)
		teacherGroup.POST("/materials/:material_id/quizzes", authoringCtrl.CreateQuiz)
		teacherGroup.DELETE("/quizzes/:quiz_id", authoringCtrl.DeleteQuiz)
		teacherGroup.POST("/quizzes/:quiz_id/questions", authoringCtrl.AddQuestion)
		teacherGroup.POST("/quizzes/:quiz_id/questions/bulk", authoringCtrl.AddQuestionsBulk)
		teacherGroup.DELETE("/questions/:question_id", authoringCtrl.DeleteQuestion)
		teacherGroup.GET("/teacher/results", authoringCtrl.GetAllResults)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("LMS quiz service starting on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Material{},
		&model.Quiz{},
		&model.Question{},
		&model.QuizResult{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
