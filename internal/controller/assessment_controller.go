package controller

import (
	"course_backend/internal/service"
	"course_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	Service *service.AssessmentService
}

func NewAssessmentController(svc *service.AssessmentService) *AssessmentController {
	return &AssessmentController{Service: svc}
}

// @Summary 创建试卷
// @Tags 试卷
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.TestReq true "试卷信息"
// @Success 201 {object} util.Response
// @Router /api/tests [post]
func (c *AssessmentController) CreateTest(ctx *gin.Context) {
	var req service.TestReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	test, err := c.Service.CreateTest(ctx.Request.Context(), util.GetUserFromContext(ctx).UserID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, test)
}

// @Summary 试卷列表
// @Tags 试卷
// @Produce json
// @Security BearerAuth
// @Param courseId query int false "课程ID"
// @Success 200 {object} util.Response
// @Router /api/tests [get]
func (c *AssessmentController) ListTests(ctx *gin.Context) {
	courseID, ok := util.QueryUint(ctx, "courseId")
	if !ok {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	tests, err := c.Service.ListTests(ctx.Request.Context(), courseID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, tests)
}

// @Summary 试卷详情
// @Tags 试卷
// @Produce json
// @Security BearerAuth
// @Param id path int true "试卷ID"
// @Success 200 {object} util.Response
// @Router /api/tests/{id} [get]
func (c *AssessmentController) GetTest(ctx *gin.Context) {
	id, ok := util.ParamUint(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid test id")
		return
	}

	test, err := c.Service.GetTest(ctx.Request.Context(), id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, test)
}

// @Summary 更新试卷
// @Description 已有作答的试卷不可修改
// @Tags 试卷
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "试卷ID"
// @Param body body service.TestReq true "试卷信息"
// @Success 200 {object} util.Response
// @Router /api/tests/{id} [put]
func (c *AssessmentController) UpdateTest(ctx *gin.Context) {
	id, ok := util.ParamUint(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid test id")
		return
	}

	var req service.TestReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	test, err := c.Service.UpdateTest(ctx.Request.Context(), id, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, test)
}

// @Summary 删除试卷
// @Tags 试卷
// @Produce json
// @Security BearerAuth
// @Param id path int true "试卷ID"
// @Success 200 {object} util.Response
// @Router /api/tests/{id} [delete]
func (c *AssessmentController) DeleteTest(ctx *gin.Context) {
	id, ok := util.ParamUint(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid test id")
		return
	}

	if err := c.Service.DeleteTest(ctx.Request.Context(), id); err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// @Summary 添加题目
// @Tags 题目
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "试卷ID"
// @Param body body service.QuestionReq true "题目信息"
// @Success 201 {object} util.Response
// @Router /api/tests/{id}/questions [post]
func (c *AssessmentController) CreateQuestion(ctx *gin.Context) {
	testID, ok := util.ParamUint(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid test id")
		return
	}

	var req service.QuestionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.Service.CreateQuestion(ctx.Request.Context(), testID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, q)
}

// @Summary 试卷题目列表
// @Tags 题目
// @Produce json
// @Security BearerAuth
// @Param id path int true "试卷ID"
// @Success 200 {object} util.Response
// @Router /api/tests/{id}/questions [get]
func (c *AssessmentController) ListQuestions(ctx *gin.Context) {
	testID, ok := util.ParamUint(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid test id")
		return
	}

	qs, err := c.Service.ListQuestions(ctx.Request.Context(), testID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, qs)
}

// @Summary 题目详情
// @Tags 题目
// @Produce json
// @Security BearerAuth
// @Param id path int true "题目ID"
// @Success 200 {object} util.Response
// @Router /api/questions/{id} [get]
func (c *AssessmentController) GetQuestion(ctx *gin.Context) {
	id, ok := util.ParamUint(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	q, err := c.Service.GetQuestion(ctx.Request.Context(), id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, q)
}

// @Summary 更新题目
// @Tags 题目
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "题目ID"
// @Param body body service.QuestionReq true "题目信息"
// @Success 200 {object} util.Response
// @Router /api/questions/{id} [put]
func (c *AssessmentController) UpdateQuestion(ctx *gin.Context) {
	id, ok := util.ParamUint(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	var req service.QuestionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.Service.UpdateQuestion(ctx.Request.Context(), id, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, q)
}

// @Summary 删除题目
// @Tags 题目
// @Produce json
// @Security BearerAuth
// @Param id path int true "题目ID"
// @Success 200 {object} util.Response
// @Router /api/questions/{id} [delete]
func (c *AssessmentController) DeleteQuestion(ctx *gin.Context) {
	id, ok := util.ParamUint(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	if err := c.Service.DeleteQuestion(ctx.Request.Context(), id); err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// @Summary 添加答案键
// @Tags 答案键
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "题目ID"
// @Param body body service.AnswerKeyReq true "答案键"
// @Success 201 {object} util.Response
// @Router /api/questions/{id}/answers [post]
func (c *AssessmentController) CreateAnswerKey(ctx *gin.Context) {
	questionID, ok := util.ParamUint(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	var req service.AnswerKeyReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	entry, err := c.Service.CreateAnswerKey(ctx.Request.Context(), questionID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, entry)
}

// @Summary 题目答案键列表
// @Tags 答案键
// @Produce json
// @Security BearerAuth
// @Param id path int true "题目ID"
// @Success 200 {object} util.Response
// @Router /api/questions/{id}/answers [get]
func (c *AssessmentController) ListAnswerKeys(ctx *gin.Context) {
	questionID, ok := util.ParamUint(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	entries, err := c.Service.ListAnswerKeys(ctx.Request.Context(), questionID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, entries)
}

// @Summary 答案键详情
// @Tags 答案键
// @Produce json
// @Security BearerAuth
// @Param id path int true "答案键ID"
// @Success 200 {object} util.Response
// @Router /api/answer-keys/{id} [get]
func (c *AssessmentController) GetAnswerKey(ctx *gin.Context) {
	id, ok := util.ParamUint(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid answer key id")
		return
	}

	entry, err := c.Service.GetAnswerKey(ctx.Request.Context(), id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, entry)
}

// @Summary 更新答案键
// @Tags 答案键
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "答案键ID"
// @Param body body service.AnswerKeyReq true "答案键"
// @Success 200 {object} util.Response
// @Router /api/answer-keys/{id} [put]
func (c *AssessmentController) UpdateAnswerKey(ctx *gin.Context) {
	id, ok := util.ParamUint(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid answer key id")
		return
	}

	var req service.AnswerKeyReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	entry, err := c.Service.UpdateAnswerKey(ctx.Request.Context(), id, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, entry)
}

// @Summary 删除答案键
// @Tags 答案键
// @Produce json
// @Security BearerAuth
// @Param id path int true "答案键ID"
// @Success 200 {object} util.Response
// @Router /api/answer-keys/{id} [delete]
func (c *AssessmentController) DeleteAnswerKey(ctx *gin.Context) {
	id, ok := util.ParamUint(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid answer key id")
		return
	}

	if err := c.Service.DeleteAnswerKey(ctx.Request.Context(), id); err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}
