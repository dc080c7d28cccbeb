package controller

import (
	"exam_prep_backend/internal/service"
	"exam_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	Service *service.AttemptService
}

func NewAttemptController(svc *service.AttemptService) *AttemptController {
	return &AttemptController{Service: svc}
}

// @Summary 开始考试
// @Description 已有进行中的 attempt 时直接返回该 attempt
// @Tags 考试
// @Produce json
// @Security ApiKeyAuth
// @Param testId path int true "试卷ID"
// @Success 200 {object} util.Response{data=model.Attempt}
// @Failure 404 {object} util.Response
// @Router /tests/{testId}/attempts [post]
func (c *AttemptController) StartAttempt(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	testID, err := util.ParseID("testId", ctx.Param("testId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	attempt, err := c.Service.Start(ctx.Request.Context(), user.UserID, testID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, attempt)
}

// @Summary 我的考试记录
// @Tags 考试
// @Produce json
// @Security ApiKeyAuth
// @Param testId path int true "试卷ID"
// @Success 200 {object} util.Response{data=[]model.Attempt}
// @Router /tests/{testId}/attempts [get]
func (c *AttemptController) ListAttempts(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	testID, err := util.ParseID("testId", ctx.Param("testId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	attempts, err := c.Service.ListAttempts(ctx.Request.Context(), user.UserID, testID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, attempts)
}

// @Summary 提交答案
// @Description 同一题重复提交会覆盖之前的答案
// @Tags 考试
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param attemptId path int true "AttemptID"
// @Param questionId path int true "题目ID"
// @Param body body service.SubmitAnswerRequest true "作答内容"
// @Success 200 {object} util.Response{data=model.AnswerResponse}
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /attempts/{attemptId}/answers/{questionId} [put]
func (c *AttemptController) SubmitAnswer(ctx *gin.Context) {
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
	questionID, err := util.ParseID("questionId", ctx.Param("questionId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	var req service.SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.Service.SubmitAnswer(ctx.Request.Context(), user.UserID, attemptID, questionID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	// 判分结果在交卷前不回显
	util.Success(ctx, service.RedactScoring(resp))
}

// @Summary 交卷
// @Tags 考试
// @Produce json
// @Security ApiKeyAuth
// @Param attemptId path int true "AttemptID"
// @Success 200 {object} util.Response{data=model.Attempt}
// @Failure 409 {object} util.Response
// @Router /attempts/{attemptId}/finish [post]
func (c *AttemptController) FinishAttempt(ctx *gin.Context) {
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

	attempt, err := c.Service.Finish(ctx.Request.Context(), user.UserID, attemptID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, attempt)
}

// @Summary 考试结果
// @Tags 考试
// @Produce json
// @Security ApiKeyAuth
// @Param attemptId path int true "AttemptID"
// @Success 200 {object} util.Response{data=service.AttemptResult}
// @Router /attempts/{attemptId}/results [get]
func (c *AttemptController) GetResults(ctx *gin.Context) {
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

	result, err := c.Service.GetResults(ctx.Request.Context(), user.UserID, attemptID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// @Summary 查看任意考试结果（教师/管理员）
// @Tags 考试管理
// @Produce json
// @Security ApiKeyAuth
// @Param attemptId path int true "AttemptID"
// @Success 200 {object} util.Response{data=service.AttemptResult}
// @Router /admin/attempts/{attemptId}/results [get]
func (c *AttemptController) GetResultsForReview(ctx *gin.Context) {
	attemptID, err := util.ParseID("attemptId", ctx.Param("attemptId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	result, err := c.Service.GetResultsForReview(ctx.Request.Context(), attemptID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, result)
}
