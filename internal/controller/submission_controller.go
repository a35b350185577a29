package controller

import (
	"errors"

	"ui_review_backend/internal/service"
	"ui_review_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// Crowdsourcing platforms preview tasks with a placeholder assignment id;
// those submissions must never be recorded.
const previewAssignmentID = "ASSIGNMENT_ID_NOT_AVAILABLE"

type SubmissionController struct {
	Service *service.SubmissionService
}

func NewSubmissionController(s *service.SubmissionService) *SubmissionController {
	return &SubmissionController{Service: s}
}

type SubmitRequest struct {
	WorkerID     string `json:"workerId" binding:"required"`
	AssignmentID string `json:"assignmentId"`
	TaskNumber   *int   `json:"taskNumber"`
	Answer       string `json:"answer" binding:"required"`
	RtMs         *int   `json:"rtMs"`
}

// Submit godoc
// @Summary Submit the daily UI review
// @Description Records one answer per worker per study day and returns the completion code
// @Tags Submissions
// @Accept json
// @Produce json
// @Param body body SubmitRequest true "Submission payload"
// @Success 200 {object} util.Response{data=service.SubmitResult}
// @Failure 400 {object} util.Response "Validation or task number error"
// @Failure 409 {object} util.Response "Already submitted today"
// @Router /api/submissions [post]
func (c *SubmissionController) Submit(ctx *gin.Context) {
	var req SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if req.AssignmentID == previewAssignmentID {
		util.BadRequest(ctx, util.ErrPreviewMode.Error())
		return
	}

	result, err := c.Service.Submit(req.WorkerID, req.TaskNumber, req.Answer, req.RtMs)
	if err != nil {
		var wordErr *util.WordCountError
		switch {
		case errors.As(err, &wordErr):
			util.BadRequest(ctx, wordErr.Error())
		case errors.Is(err, util.ErrDuplicateSubmission):
			util.Conflict(ctx, err.Error())
		case errors.Is(err, util.ErrInvalidTaskNumber):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}
