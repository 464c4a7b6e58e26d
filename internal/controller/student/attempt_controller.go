package student

import (
	"net/http"
	"strconv"

	"lms-quiz-service/internal/controller"
	"lms-quiz-service/internal/dto"
	"lms-quiz-service/internal/middleware"
	"lms-quiz-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// AttemptController exposes the quiz-taking workflow: start, answer, submit,
// review and reattempt, plus the student's own results history.
type AttemptController struct {
	attemptService service.AttemptService
	resultService  service.ResultService
}

func NewAttemptController(attemptService service.AttemptService, resultService service.ResultService) *AttemptController {
	return &AttemptController{
		attemptService: attemptService,
		resultService:  resultService,
	}
}

// StartAttempt godoc
// @Summary Start a quiz attempt for a material
// @Description Resolves the material's quiz, shuffles its questions and opens a fresh attempt.
// @Tags Student - Attempts
// @Produce json
// @Param material_id path int true "Material ID"
// @Success 201 {object} dto.AttemptStateDTO
// @Failure 404 {object} dto.ErrorResponse "Material has no quiz"
// @Failure 500 {object} dto.ErrorResponse
// @Router /materials/{material_id}/attempts [post]
func (c *AttemptController) StartAttempt(ctx *gin.Context) {
	materialID, ok := pathID(ctx, "material_id")
	if !ok {
		return
	}
	claims := middleware.CurrentIdentity(ctx)

	state, err := c.attemptService.Start(materialID, claims.UserID)
	if err != nil {
		log.Warn().Err(err).Uint("materialID", materialID).Msg("StartAttempt: service error")
		ctx.JSON(controller.StatusForError(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, state)
}

// GetAttempt godoc
// @Summary Get the current state of an attempt
// @Tags Student - Attempts
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Success 200 {object} dto.AttemptStateDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /attempts/{attempt_id} [get]
func (c *AttemptController) GetAttempt(ctx *gin.Context) {
	claims := middleware.CurrentIdentity(ctx)

	state, err := c.attemptService.State(ctx.Param("attempt_id"), claims.UserID)
	if err != nil {
		ctx.JSON(controller.StatusForError(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, state)
}

// SelectAnswer godoc
// @Summary Select an option for a question
// @Description Overwrites any prior selection. Rejected once the attempt is submitted.
// @Tags Student - Attempts
// @Accept json
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Param selection body dto.SelectAnswerDTO true "Question and option label"
// @Success 200 {object} dto.AttemptStateDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Attempt already submitted"
// @Router /attempts/{attempt_id}/answers [put]
func (c *AttemptController) SelectAnswer(ctx *gin.Context) {
	var req dto.SelectAnswerDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	claims := middleware.CurrentIdentity(ctx)

	state, err := c.attemptService.Select(ctx.Param("attempt_id"), claims.UserID, req)
	if err != nil {
		ctx.JSON(controller.StatusForError(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, state)
}

// SubmitAttempt godoc
// @Summary Submit an attempt for scoring
// @Description Grades every question of the quiz; unanswered questions count as incorrect.
// @Tags Student - Attempts
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Success 200 {object} dto.SubmissionResultDTO
// @Failure 400 {object} dto.ErrorResponse "Quiz has no questions"
// @Failure 409 {object} dto.ErrorResponse "Attempt already submitted"
// @Failure 500 {object} dto.ErrorResponse
// @Router /attempts/{attempt_id}/submit [post]
func (c *AttemptController) SubmitAttempt(ctx *gin.Context) {
	claims := middleware.CurrentIdentity(ctx)

	result, err := c.attemptService.Submit(ctx.Param("attempt_id"), claims.UserID)
	if err != nil {
		log.Warn().Err(err).Str("attemptID", ctx.Param("attempt_id")).Msg("SubmitAttempt: service error")
		ctx.JSON(controller.StatusForError(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetReview godoc
// @Summary Review a submitted attempt
// @Description Reveals per-option correctness for every question, in presentation order.
// @Tags Student - Attempts
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Success 200 {object} dto.AttemptReviewDTO
// @Failure 409 {object} dto.ErrorResponse "Attempt not submitted yet"
// @Router /attempts/{attempt_id}/review [get]
func (c *AttemptController) GetReview(ctx *gin.Context) {
	claims := middleware.CurrentIdentity(ctx)

	review, err := c.attemptService.Review(ctx.Param("attempt_id"), claims.UserID)
	if err != nil {
		ctx.JSON(controller.StatusForError(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, review)
}

// Reattempt godoc
// @Summary Reset an attempt for another try
// @Description Clears the result and all selections, reshuffles the same questions.
// @Tags Student - Attempts
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Success 200 {object} dto.AttemptStateDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /attempts/{attempt_id}/reattempt [post]
func (c *AttemptController) Reattempt(ctx *gin.Context) {
	claims := middleware.CurrentIdentity(ctx)

	state, err := c.attemptService.Reattempt(ctx.Param("attempt_id"), claims.UserID)
	if err != nil {
		ctx.JSON(controller.StatusForError(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, state)
}

// GetMyResults godoc
// @Summary List the acting student's quiz results
// @Tags Student - Attempts
// @Produce json
// @Success 200 {array} dto.QuizResultDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /my/results [get]
func (c *AttemptController) GetMyResults(ctx *gin.Context) {
	claims := middleware.CurrentIdentity(ctx)

	results, err := c.resultService.ResultsForStudent(claims.UserID)
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
