package controller

import (
	"errors"
	"math"
	"strconv"

	"ui_review_backend/internal/config"
	"ui_review_backend/internal/service"
	"ui_review_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	Auth        *service.AuthService
	Submissions *service.SubmissionService
	AI          *service.AIService
	IsRelease   bool
	// cookie lifetime in seconds, derived from the JWT expiry so the two
	// cannot drift apart
	CookieMaxAge int
}

func NewAdminController(auth *service.AuthService, submissions *service.SubmissionService, ai *service.AIService, cfg *config.Config) *AdminController {
	return &AdminController{
		Auth:         auth,
		Submissions:  submissions,
		AI:           ai,
		IsRelease:    cfg.Server.Mode == "release",
		CookieMaxAge: cfg.JWT.ExpireHours * 60 * 60,
	}
}

type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary Admin login
// @Description Verifies credentials and sets the adminToken session cookie
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body AdminLoginRequest true "Credentials"
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response "Invalid email or password"
// @Router /api/admin/login [post]
func (c *AdminController) Login(ctx *gin.Context) {
	var req AdminLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, admin, err := c.Auth.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, util.ErrInvalidCredentials) {
			util.Error(ctx, 401, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	ctx.SetCookie("adminToken", token, c.CookieMaxAge, "/", "", c.IsRelease, true)

	util.Success(ctx, gin.H{
		"adminId": admin.ID,
		"name":    admin.Name,
	})
}

// Logout godoc
// @Summary Admin logout
// @Tags Admin
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/admin/logout [post]
func (c *AdminController) Logout(ctx *gin.Context) {
	ctx.SetCookie("adminToken", "", -1, "/", "", c.IsRelease, true)
	util.Success(ctx, gin.H{"loggedOut": true})
}

// ListSubmissions godoc
// @Summary List submissions for grading
// @Description Filterable by dayIdx, workerId and cond (default cond 1), newest first
// @Tags Admin
// @Produce json
// @Security ApiKeyAuth
// @Param dayIdx query int false "Study day index"
// @Param workerId query string false "Worker ID"
// @Param cond query int false "Experimental condition" default(1)
// @Success 200 {object} util.Response
// @Router /api/admin/submissions [get]
func (c *AdminController) ListSubmissions(ctx *gin.Context) {
	var dayIdx *int
	if raw := ctx.Query("dayIdx"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			util.BadRequest(ctx, "dayIdx must be an integer")
			return
		}
		dayIdx = &parsed
	}

	cond := 1
	if raw := ctx.Query("cond"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			cond = parsed
		}
	}

	submissions, err := c.Submissions.List(dayIdx, ctx.Query("workerId"), cond)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"submissions": submissions,
		"total":       len(submissions),
	})
}

type UpdateScoresRequest struct {
	SubmissionID string      `json:"submissionId" binding:"required"`
	ScoreA       interface{} `json:"scoreA"`
	ScoreB       interface{} `json:"scoreB"`
	Feedback     *string     `json:"feedback"`
}

// UpdateScores godoc
// @Summary Write grading results back onto a submission
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body UpdateScoresRequest true "Scores and feedback"
// @Success 200 {object} util.Response{data=model.Submission}
// @Failure 404 {object} util.Response "Submission not found"
// @Router /api/admin/submissions/update [post]
func (c *AdminController) UpdateScores(ctx *gin.Context) {
	var req UpdateScoresRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sub, err := c.Submissions.UpdateScores(
		req.SubmissionID,
		toNullableInt(req.ScoreA),
		toNullableInt(req.ScoreB),
		req.Feedback,
	)
	if err != nil {
		if errors.Is(err, util.ErrSubmissionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, sub)
}

type GradeEvaluation struct {
	SubmissionID string      `json:"submissionId"`
	ScoreA       interface{} `json:"scoreA"`
	ScoreB       interface{} `json:"scoreB"`
	Feedback     *string     `json:"feedback"`
}

type GradeBatchRequest struct {
	Evaluations []GradeEvaluation `json:"evaluations" binding:"required,min=1"`
}

// GradeBatch godoc
// @Summary Persist a batch of grading results
// @Description One update per evaluation; item failures are reported per item
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body GradeBatchRequest true "Evaluations to persist"
// @Success 200 {object} util.Response
// @Router /api/admin/submissions/grade [post]
func (c *AdminController) GradeBatch(ctx *gin.Context) {
	var req GradeBatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	items := make([]service.GradeItem, 0, len(req.Evaluations))
	for _, e := range req.Evaluations {
		items = append(items, service.GradeItem{
			SubmissionID: e.SubmissionID,
			ScoreA:       toNullableInt(e.ScoreA),
			ScoreB:       toNullableInt(e.ScoreB),
			Feedback:     e.Feedback,
		})
	}

	results, successCount := c.Submissions.GradeBatch(items)

	util.Success(ctx, gin.H{
		"total":        len(results),
		"successCount": successCount,
		"results":      results,
	})
}

type EvaluateRequest struct {
	Prompt string `json:"prompt"`
}

// EvaluateSubmission godoc
// @Summary Grade one submission with the LLM
// @Description Returns the model's evaluation text; scores are written back separately
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Submission ID"
// @Param body body EvaluateRequest false "Optional custom prompt"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "Submission not found"
// @Router /api/admin/submissions/{id}/evaluate [post]
func (c *AdminController) EvaluateSubmission(ctx *gin.Context) {
	var req EvaluateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		util.BadRequest(ctx, err.Error())
		return
	}

	sub, err := c.Submissions.Get(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrSubmissionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	evaluation, usage, err := c.AI.Evaluate(sub.Answer, req.Prompt)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"submission": gin.H{
			"id":          sub.ID,
			"workerId":    sub.WorkerID,
			"dayIdx":      sub.DayIdx,
			"answer":      sub.Answer,
			"submittedAt": sub.SubmittedAt,
		},
		"evaluation": evaluation,
		"usage":      usage,
	})
}

type EvaluateBatchRequest struct {
	SubmissionIDs []string `json:"submissionIds" binding:"required,min=1"`
	Prompt        string   `json:"prompt"`
}

type EvaluationResult struct {
	SubmissionID string                       `json:"submissionId"`
	WorkerID     string                       `json:"workerId"`
	DayIdx       int                          `json:"dayIdx"`
	Success      bool                         `json:"success"`
	Evaluation   string                       `json:"evaluation,omitempty"`
	Usage        *service.ChatCompletionUsage `json:"usage,omitempty"`
	Error        string                       `json:"error,omitempty"`
}

// EvaluateBatch godoc
// @Summary Grade a batch of submissions with the LLM
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body EvaluateBatchRequest true "Submission IDs and optional prompt"
// @Success 200 {object} util.Response
// @Router /api/admin/submissions/evaluate [put]
func (c *AdminController) EvaluateBatch(ctx *gin.Context) {
	var req EvaluateBatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	submissions, err := c.Submissions.GetMany(req.SubmissionIDs)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if len(submissions) == 0 {
		util.NotFound(ctx)
		return
	}

	results := make([]EvaluationResult, 0, len(submissions))
	for _, sub := range submissions {
		result := EvaluationResult{
			SubmissionID: sub.ID,
			WorkerID:     sub.WorkerID,
			DayIdx:       sub.DayIdx,
		}

		evaluation, usage, err := c.AI.Evaluate(sub.Answer, req.Prompt)
		if err != nil {
			result.Error = err.Error()
		} else {
			result.Success = true
			result.Evaluation = evaluation
			result.Usage = usage
		}

		results = append(results, result)
	}

	util.Success(ctx, gin.H{
		"totalProcessed": len(results),
		"results":        results,
	})
}

type EvaluateDayRequest struct {
	DayIdx *int   `json:"dayIdx" binding:"required"`
	Prompt string `json:"prompt"`
}

// EvaluateDay godoc
// @Summary Grade every submission of one study day with the LLM
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body EvaluateDayRequest true "Day index and optional prompt"
// @Success 200 {object} util.Response
// @Router /api/admin/submissions/evaluate/day [post]
func (c *AdminController) EvaluateDay(ctx *gin.Context) {
	var req EvaluateDayRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	submissions, err := c.Submissions.ListForDay(*req.DayIdx)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	results := make([]EvaluationResult, 0, len(submissions))
	for _, sub := range submissions {
		result := EvaluationResult{
			SubmissionID: sub.ID,
			WorkerID:     sub.WorkerID,
			DayIdx:       sub.DayIdx,
		}

		evaluation, usage, err := c.AI.Evaluate(sub.Answer, req.Prompt)
		if err != nil {
			result.Error = err.Error()
		} else {
			result.Success = true
			result.Evaluation = evaluation
			result.Usage = usage
		}

		results = append(results, result)
	}

	// A day with no submissions is an empty success, not an error.
	util.Success(ctx, gin.H{
		"dayIdx":         *req.DayIdx,
		"totalProcessed": len(results),
		"results":        results,
	})
}

// toNullableInt coerces loosely-typed JSON numbers (or numeric strings) to an
// int pointer, mapping anything unparseable to nil.
func toNullableInt(value interface{}) *int {
	switch v := value.(type) {
	case nil:
		return nil
	case float64:
		n := int(math.Round(v))
		return &n
	case int:
		return &v
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil
		}
		n := int(math.Round(f))
		return &n
	default:
		return nil
	}
}
