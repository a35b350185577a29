package controller

import (
	"strings"

	"ui_review_backend/internal/service"
	"ui_review_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AccessController struct {
	Service *service.AccessService
}

func NewAccessController(s *service.AccessService) *AccessController {
	return &AccessController{Service: s}
}

type RecordAccessRequest struct {
	WorkerID string `json:"workerId"`
	Path     string `json:"path"`
}

// RecordAccess godoc
// @Summary Log a worker's page access
// @Description Idempotent per (workerId, path); repeats are acknowledged without a new row
// @Tags Access
// @Accept json
// @Produce json
// @Param body body RecordAccessRequest true "Access payload"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/access [post]
func (c *AccessController) RecordAccess(ctx *gin.Context) {
	var req RecordAccessRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	workerID := strings.TrimSpace(req.WorkerID)
	path := strings.TrimSpace(req.Path)

	if workerID == "" {
		util.BadRequest(ctx, "workerId is required")
		return
	}
	if path == "" {
		util.BadRequest(ctx, "path is required")
		return
	}

	recorded, err := c.Service.Record(workerID, path)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"recorded": recorded})
}
