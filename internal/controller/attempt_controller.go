package controller

import (
	"course_backend/internal/model"
	"course_backend/internal/service"
	"course_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	Service *service.AttemptService
	Grader  *service.GradingService
}

func NewAttemptController(svc *service.AttemptService, grader *service.GradingService) *AttemptController {
	return &AttemptController{Service: svc, Grader: grader}
}

// loadAttempt 读取作答并校验当前用户是否可访问
func (c *AttemptController) loadAttempt(ctx *gin.Context) (*model.Attempt, bool) {
	id, ok := util.ParamUint(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid attempt id")
		return nil, false
	}

	attempt, err := c.Service.GetAttempt(ctx.Request.Context(), id)
	if err != nil {
		util.HandleError(ctx, err)
		return nil, false
	}

	user := util.GetUserFromContext(ctx)
	if user == nil || !user.CanActFor(attempt.StudentID) {
		util.Forbidden(ctx)
		return nil, false
	}
	return attempt, true
}

func studentAndTest(ctx *gin.Context) (uint, uint, bool) {
	studentID, ok := util.ParamUint(ctx, "studentId")
	if !ok {
		util.BadRequest(ctx, "invalid student id")
		return 0, 0, false
	}
	testID, ok := util.ParamUint(ctx, "testId")
	if !ok {
		util.BadRequest(ctx, "invalid test id")
		return 0, 0, false
	}

	user := util.GetUserFromContext(ctx)
	if user == nil || !user.CanActFor(studentID) {
		util.Forbidden(ctx)
		return 0, 0, false
	}
	return studentID, testID, true
}

// @Summary 提交作答
// @Description 保存作答及随附答案并立即评分；未附答案时作答已保存但返回 400
// @Tags 作答
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "学生ID"
// @Param testId path int true "试卷ID"
// @Param body body service.CreateAttemptReq true "作答信息"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/attempts/{studentId}/{testId} [post]
func (c *AttemptController) CreateAttempt(ctx *gin.Context) {
	studentID, testID, ok := studentAndTest(ctx)
	if !ok {
		return
	}

	var req service.CreateAttemptReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	attempt, err := c.Service.CreateAttempt(ctx.Request.Context(), studentID, testID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, attempt)
}

// @Summary 学生某试卷的作答列表
// @Tags 作答
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "学生ID"
// @Param testId path int true "试卷ID"
// @Success 200 {object} util.Response
// @Router /api/attempts/{studentId}/{testId} [get]
func (c *AttemptController) ListAttempts(ctx *gin.Context) {
	studentID, testID, ok := studentAndTest(ctx)
	if !ok {
		return
	}

	attempts, err := c.Service.ListAttempts(ctx.Request.Context(), studentID, testID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, attempts)
}

// @Summary 获取作答详情
// @Tags 作答
// @Produce json
// @Security BearerAuth
// @Param id path int true "作答ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/attempt/{id} [get]
func (c *AttemptController) GetAttempt(ctx *gin.Context) {
	attempt, ok := c.loadAttempt(ctx)
	if !ok {
		return
	}
	util.Success(ctx, attempt)
}

// @Summary 评分
// @Description 按已提交答案重新计算得分与是否通过，可重复调用
// @Tags 作答
// @Produce json
// @Security BearerAuth
// @Param id path int true "作答ID"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/attempt/{id}/grade [post]
func (c *AttemptController) GradeAttempt(ctx *gin.Context) {
	attempt, ok := c.loadAttempt(ctx)
	if !ok {
		return
	}

	graded, err := c.Grader.Grade(ctx.Request.Context(), attempt.ID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, graded)
}

// @Summary 修正作答（管理员）
// @Description 整体覆盖作答字段，不触发重新评分
// @Tags 作答
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "作答ID"
// @Param body body service.AmendAttemptReq true "作答信息"
// @Success 200 {object} util.Response
// @Router /api/attempt/{id} [put]
func (c *AttemptController) AmendAttempt(ctx *gin.Context) {
	id, ok := util.ParamUint(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid attempt id")
		return
	}

	var req service.AmendAttemptReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	attempt, err := c.Service.AmendAttempt(ctx.Request.Context(), id, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, attempt)
}

// @Summary 删除作答（管理员）
// @Tags 作答
// @Produce json
// @Security BearerAuth
// @Param id path int true "作答ID"
// @Success 200 {object} util.Response
// @Router /api/attempt/{id} [delete]
func (c *AttemptController) DeleteAttempt(ctx *gin.Context) {
	id, ok := util.ParamUint(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid attempt id")
		return
	}

	if err := c.Service.DeleteAttempt(ctx.Request.Context(), id); err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// @Summary 提交答案
// @Description 同一题目重复提交时保留最后一次
// @Tags 作答
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "作答ID"
// @Param body body service.SubmitAnswersReq true "答案列表"
// @Success 200 {object} util.Response
// @Router /api/attempt/{id}/answers [post]
func (c *AttemptController) SubmitAnswers(ctx *gin.Context) {
	attempt, ok := c.loadAttempt(ctx)
	if !ok {
		return
	}

	var req service.SubmitAnswersReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	answers, err := c.Service.SubmitAnswers(ctx.Request.Context(), attempt.ID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, answers)
}

// @Summary 获取作答的答案
// @Tags 作答
// @Produce json
// @Security BearerAuth
// @Param id path int true "作答ID"
// @Success 200 {object} util.Response
// @Router /api/attempt/{id}/answers [get]
func (c *AttemptController) ListAnswers(ctx *gin.Context) {
	attempt, ok := c.loadAttempt(ctx)
	if !ok {
		return
	}

	answers, err := c.Service.ListAnswers(ctx.Request.Context(), attempt.ID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, answers)
}

// @Summary 主观题评阅
// @Description 记录人工给分，需再次评分后计入成绩
// @Tags 作答
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "答案ID"
// @Param body body service.AwardPointsReq true "给分"
// @Success 200 {object} util.Response
// @Router /api/answers/{id}/points [put]
func (c *AttemptController) AwardPoints(ctx *gin.Context) {
	id, ok := util.ParamUint(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid answer id")
		return
	}

	var req service.AwardPointsReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	answer, err := c.Service.AwardPoints(ctx.Request.Context(), id, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, answer)
}
