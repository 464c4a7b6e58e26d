package teacher

import (
	"net/http"
	"strconv"

	"lms-quiz-service/internal/controller"
	"lms-quiz-service/internal/dto"
	"lms-quiz-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// AuthoringController exposes the teacher-only operations: material and quiz
// authoring and the submissions overview.
type AuthoringController struct {
	materialService service.MaterialService
	contentService  service.QuizContentService
	resultService   service.ResultService
}

func NewAuthoringController(
	materialService service.MaterialService,
	contentService service.QuizContentService,
	resultService service.ResultService,
) *AuthoringController {
	return &AuthoringController{
		materialService: materialService,
		contentService:  contentService,
		resultService:   resultService,
	}
}

// CreateMaterial godoc
// @Summary (Teacher) Add a material to a course
// @Tags Teacher - Authoring
// @Accept json
// @Produce json
// @Param course_id path int true "Course ID"
// @Param material body dto.MaterialCreateDTO true "Material data"
// @Success 201 {object} dto.MaterialResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Router /courses/{course_id}/materials [post]
func (c *AuthoringController) CreateMaterial(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "course_id")
	if !ok {
		return
	}
	var req dto.MaterialCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	material, err := c.materialService.Create(courseID, req)
	if err != nil {
		log.Error().Err(err).Uint("courseID", courseID).Msg("CreateMaterial: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create material", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, material)
}

// DeleteMaterial godoc
// @Summary (Teacher) Delete a material
// @Tags Teacher - Authoring
// @Produce json
// @Param material_id path int true "Material ID"
// @Success 204 "Deleted"
// @Failure 404 {object} dto.ErrorResponse
// @Router /materials/{material_id} [delete]
func (c *AuthoringController) DeleteMaterial(ctx *gin.Context) {
	materialID, ok := pathID(ctx, "material_id")
	if !ok {
		return
	}
	if err := c.materialService.Delete(materialID); err != nil {
		ctx.JSON(controller.StatusForError(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.Status(http.StatusNoContent)
}

// CreateQuiz godoc
// @Summary (Teacher) Attach a quiz to a material
// @Description Each material carries at most one quiz; a second create is rejected.
// @Tags Teacher - Authoring
// @Accept json
// @Produce json
// @Param material_id path int true "Material ID"
// @Param quiz body dto.QuizCreateDTO true "Quiz title"
// @Success 201 {object} dto.QuizResponseDTO
// @Failure 404 {object} dto.ErrorResponse "Material not found"
// @Failure 409 {object} dto.ErrorResponse "Material already has a quiz"
// @Router /materials/{material_id}/quizzes [post]
func (c *AuthoringController) CreateQuiz(ctx *gin.Context) {
	materialID, ok := pathID(ctx, "material_id")
	if !ok {
		return
	}
	var req dto.QuizCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	quiz, err := c.contentService.CreateQuiz(materialID, req)
	if err != nil {
		log.Warn().Err(err).Uint("materialID", materialID).Msg("CreateQuiz: service error")
		ctx.JSON(controller.StatusForError(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, quiz)
}

// DeleteQuiz godoc
// @Summary (Teacher) Delete a quiz and all its questions
// @Tags Teacher - Authoring
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Success 204 "Deleted"
// @Failure 404 {object} dto.ErrorResponse
// @Router /quizzes/{quiz_id} [delete]
func (c *AuthoringController) DeleteQuiz(ctx *gin.Context) {
	quizID, ok := pathID(ctx, "quiz_id")
	if !ok {
		return
	}
	if err := c.contentService.DeleteQuiz(quizID); err != nil {
		ctx.JSON(controller.StatusForError(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.Status(http.StatusNoContent)
}

// AddQuestion godoc
// @Summary (Teacher) Add a question to a quiz
// @Tags Teacher - Authoring
// @Accept json
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Param question body dto.QuestionCreateDTO true "Question with four options and the correct label"
// @Success 201 {object} dto.QuestionResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /quizzes/{quiz_id}/questions [post]
func (c *AuthoringController) AddQuestion(ctx *gin.Context) {
	quizID, ok := pathID(ctx, "quiz_id")
	if !ok {
		return
	}
	var req dto.QuestionCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	question, err := c.contentService.AddQuestion(quizID, req)
	if err != nil {
		ctx.JSON(controller.StatusForError(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, question)
}

// AddQuestionsBulk godoc
// @Summary (Teacher) Add several questions in one request
// @Tags Teacher - Authoring
// @Accept json
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Param questions body dto.BulkQuestionsCreateDTO true "Questions to add"
// @Success 201 {array} dto.QuestionResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /quizzes/{quiz_id}/questions/bulk [post]
func (c *AuthoringController) AddQuestionsBulk(ctx *gin.Context) {
	quizID, ok := pathID(ctx, "quiz_id")
	if !ok {
		return
	}
	var req dto.BulkQuestionsCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	questions, err := c.contentService.AddQuestionsBulk(quizID, req)
	if err != nil {
		log.Warn().Err(err).Uint("quizID", quizID).Msg("AddQuestionsBulk: service error")
		ctx.JSON(controller.StatusForError(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, questions)
}

// DeleteQuestion godoc
// @Summary (Teacher) Delete a question
// @Tags Teacher - Authoring
// @Produce json
// @Param question_id path int true "Question ID"
// @Success 204 "Deleted"
// @Failure 404 {object} dto.ErrorResponse
// @Router /questions/{question_id} [delete]
func (c *AuthoringController) DeleteQuestion(ctx *gin.Context) {
	questionID, ok := pathID(ctx, "question_id")
	if !ok {
		return
	}
	if err := c.contentService.DeleteQuestion(questionID); err != nil {
		ctx.JSON(controller.StatusForError(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.Status(http.StatusNoContent)
}

// GetAllResults godoc
// @Summary (Teacher) List all quiz results
// @Tags Teacher - Authoring
// @Produce json
// @Success 200 {array} dto.QuizResultDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /teacher/results [get]
func (c *AuthoringController) GetAllResults(ctx *gin.Context) {
	results, err := c.resultService.AllResults()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve results", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, results)
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}
