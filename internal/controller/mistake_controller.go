package controller

import (
	"strconv"

	"exam_prep_backend/internal/service"
	"exam_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MistakeController struct {
	Service *service.MistakeService
}

func NewMistakeController(svc *service.MistakeService) *MistakeController {
	return &MistakeController{Service: svc}
}

type ReviewRequest struct {
	Quality *int `json:"quality" binding:"required"`
}

// @Summary 加入错题本
// @Description 已存在的错题会被覆盖并重新开始复习
// @Tags 错题本
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.AddMistakeRequest true "错题信息"
// @Success 201 {object} util.Response{data=model.Mistake}
// @Router /mistakes [post]
func (c *MistakeController) AddMistake(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.AddMistakeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	m, err := c.Service.Add(ctx.Request.Context(), user.UserID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, m)
}

// @Summary 移出错题本
// @Tags 错题本
// @Security ApiKeyAuth
// @Param questionId path int true "题目ID"
// @Success 204
// @Failure 404 {object} util.Response
// @Router /mistakes/{questionId} [delete]
func (c *MistakeController) RemoveMistake(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	questionID, err := util.ParseID("questionId", ctx.Param("questionId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	if err := c.Service.Remove(ctx.Request.Context(), user.UserID, questionID); err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.NoContent(ctx)
}

// @Summary 提交复习结果
// @Description quality 取值 0-5，按 SM-2 计算下次复习时间
// @Tags 错题本
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param questionId path int true "题目ID"
// @Param body body ReviewRequest true "复习质量"
// @Success 200 {object} util.Response{data=model.Mistake}
// @Router /mistakes/{questionId}/review [post]
func (c *MistakeController) Review(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	questionID, err := util.ParseID("questionId", ctx.Param("questionId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	var req ReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	m, err := c.Service.UpdateRevisionStatus(ctx.Request.Context(), user.UserID, questionID, *req.Quality)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, m)
}

// @Summary 待复习错题
// @Tags 错题本
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "数量，不传使用默认值"
// @Success 200 {object} util.Response{data=[]model.Mistake}
// @Router /mistakes/revision-queue [get]
func (c *MistakeController) RevisionQueue(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			util.HandleError(ctx, util.NewValidationError("limit", "must be an integer"))
			return
		}
		limit = n
	}

	queue, err := c.Service.GetRevisionQueue(ctx.Request.Context(), user.UserID, limit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, queue)
}

// @Summary 错题列表
// @Tags 错题本
// @Produce json
// @Security ApiKeyAuth
// @Param includeMastered query bool false "是否包含已掌握" default(false)
// @Success 200 {object} util.Response{data=[]model.Mistake}
// @Router /mistakes [get]
func (c *MistakeController) ListMistakes(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	includeMastered, err := strconv.ParseBool(ctx.DefaultQuery("includeMastered", "false"))
	if err != nil {
		util.HandleError(ctx, util.NewValidationError("includeMastered", "must be a boolean"))
		return
	}

	mistakes, err := c.Service.List(ctx.Request.Context(), user.UserID, includeMastered)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, mistakes)
}

// @Summary 错题统计
// @Tags 错题本
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=repository.MistakeStats}
// @Router /mistakes/stats [get]
func (c *MistakeController) Stats(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	stats, err := c.Service.Stats(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, stats)
}

// @Summary 从考试结果收集错题
// @Tags 错题本
// @Produce json
// @Security ApiKeyAuth
// @Param attemptId path int true "AttemptID"
// @Success 200 {object} util.Response{data=[]model.Mistake}
// @Failure 409 {object} util.Response
// @Router /attempts/{attemptId}/mistakes [post]
func (c *MistakeController) CaptureFromAttempt(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	attemptID, err := util.ParseID("attemptId", ctx.Param("attemptId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	mistakes, err := c.Service.CaptureFromAttempt(ctx.Request.Context(), user.UserID, attemptID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, mistakes)
}
