package controller

import (
	"errors"

	"ui_review_backend/internal/service"
	"ui_review_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type FeedbackController struct {
	Service      *service.FeedbackService
	Participants *service.ParticipantService
}

func NewFeedbackController(s *service.FeedbackService, participants *service.ParticipantService) *FeedbackController {
	return &FeedbackController{Service: s, Participants: participants}
}

type FeedbackResponse struct {
	Histogram          *service.HistogramData      `json:"histogram"`
	Goal               *service.GoalData           `json:"goal"`
	PreviousSubmission *service.PreviousSubmission `json:"previousSubmission"`
	GroupInfo          *service.GroupInfo          `json:"groupInfo"`
}

// GetFeedback godoc
// @Summary Feedback page bundle
// @Description Prior-day result, same-condition peer aggregates and the next task number
// @Tags Feedback
// @Produce json
// @Param workerId query string true "Worker ID"
// @Success 200 {object} util.Response{data=FeedbackResponse}
// @Failure 400 {object} util.Response "Missing workerId"
// @Router /api/feedback [get]
func (c *FeedbackController) GetFeedback(ctx *gin.Context) {
	workerID := ctx.Query("workerId")
	if workerID == "" {
		util.BadRequest(ctx, "workerId is required")
		return
	}

	histogram, err := c.Service.YesterdayHistogram(workerID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	goal, err := c.Service.YesterdayGoalProgress(workerID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	previous, err := c.Service.PreviousSubmission(workerID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	var groupInfo *service.GroupInfo
	participant, err := c.Participants.Repo.FindByWorkerID(workerID)
	if err == nil {
		groupInfo = &service.GroupInfo{
			Cond:             participant.Cond,
			ParticipantOrder: participant.ParticipantOrder,
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, FeedbackResponse{
		Histogram:          histogram,
		Goal:               goal,
		PreviousSubmission: previous,
		GroupInfo:          groupInfo,
	})
}

// GetWorkerCondition godoc
// @Summary Worker's experimental condition
// @Description Used by the feedback page to gate condition-specific displays
// @Tags Feedback
// @Produce json
// @Param workerId query string true "Worker ID"
// @Success 200 {object} util.Response
// @Router /api/feedback/condition [get]
func (c *FeedbackController) GetWorkerCondition(ctx *gin.Context) {
	workerID := ctx.Query("workerId")
	if workerID == "" {
		util.BadRequest(ctx, "workerId is required")
		return
	}

	cond, err := c.Service.WorkerCondition(workerID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"cond": cond})
}
