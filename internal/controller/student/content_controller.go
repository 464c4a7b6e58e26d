package student

import (
	"net/http"

	"lms-quiz-service/internal/controller"
	"lms-quiz-service/internal/dto"
	"lms-quiz-service/internal/middleware"
	"lms-quiz-service/internal/service"

	"github.com/gin-gonic/gin"
)

// ContentController serves the read-only course-content contracts: materials
// and the quiz/question sets attached to them.
type ContentController struct {
	materialService service.MaterialService
	contentService  service.QuizContentService
}

func NewContentController(materialService service.MaterialService, contentService service.QuizContentService) *ContentController {
	return &ContentController{
		materialService: materialService,
		contentService:  contentService,
	}
}

// ListMaterials godoc
// @Summary List all materials
// @Tags Content
// @Produce json
// @Success 200 {array} dto.MaterialResponseDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /materials [get]
func (c *ContentController) ListMaterials(ctx *gin.Context) {
	materials, err := c.materialService.ListAll()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve materials", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, materials)
}

// ListCourseMaterials godoc
// @Summary List materials of a course
// @Tags Content
// @Produce json
// @Param course_id path int true "Course ID"
// @Success 200 {array} dto.MaterialResponseDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /courses/{course_id}/materials [get]
func (c *ContentController) ListCourseMaterials(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "course_id")
	if !ok {
		return
	}
	materials, err := c.materialService.ListByCourse(courseID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve materials", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, materials)
}

// ListQuizzesForMaterial godoc
// @Summary List quizzes attached to a material
// @Description At most one quiz is expected per material; an empty list means none.
// @Tags Content
// @Produce json
// @Param material_id path int true "Material ID"
// @Success 200 {array} dto.QuizResponseDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /materials/{material_id}/quizzes [get]
func (c *ContentController) ListQuizzesForMaterial(ctx *gin.Context) {
	materialID, ok := pathID(ctx, "material_id")
	if !ok {
		return
	}
	quizzes, err := c.contentService.QuizzesForMaterial(materialID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve quizzes", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, quizzes)
}

// ListQuestions godoc
// @Summary List the questions of a quiz
// @Description Correct answers are only included for teachers.
// @Tags Content
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Success 200 {array} dto.QuestionResponseDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /quizzes/{quiz_id}/questions [get]
func (c *ContentController) ListQuestions(ctx *gin.Context) {
	quizID, ok := pathID(ctx, "quiz_id")
	if !ok {
		return
	}
	claims := middleware.CurrentIdentity(ctx)
	includeAnswers := claims != nil && claims.Role == middleware.RoleTeacher

	questions, err := c.contentService.QuestionsForQuiz(quizID, includeAnswers)
	if err != nil {
		ctx.JSON(controller.StatusForError(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, questions)
}
