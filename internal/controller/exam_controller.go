package controller

import (
	"errors"
	"net/http"
	"strconv"

	"quiz_exam_backend/internal/middleware"
	"quiz_exam_backend/internal/model"
	"quiz_exam_backend/internal/service"
	"quiz_exam_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExamController struct {
	ExamService *service.ExamService
}

func NewExamController(examService *service.ExamService) *ExamController {
	return &ExamController{ExamService: examService}
}

// StartExamRequest 筛选字段缺省表示续用当前会话
// swagger:model StartExamRequest
type StartExamRequest struct {
	Mode          string  `json:"mode" binding:"required"`
	CategoryBig   *string `json:"categoryBig"`
	CategorySmall *string `json:"categorySmall"`
	Total         *int    `json:"total"`
}

// Start godoc
// @Summary 开始或续用答题会话
// @Description 无筛选且模式一致时续用进行中的会话，否则废弃旧会话重新组卷
// @Tags 答题
// @Accept  json
// @Produce  json
// @Param   body body StartExamRequest true "模式与筛选"
// @Success 200 {object} util.Response{data=service.StartResult}
// @Failure 400 {object} util.Response "模式或数量不合法"
// @Router /api/exam/start [post]
func (c *ExamController) Start(ctx *gin.Context) {
	id := middleware.GetIdentity(ctx)
	if id == nil {
		util.Unauthorized(ctx)
		return
	}

	var req StartExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ExamService.StartOrResume(id.UserID, service.StartRequest{
		Mode:          model.ExamMode(req.Mode),
		CategoryBig:   req.CategoryBig,
		CategorySmall: req.CategorySmall,
		Total:         req.Total,
	})
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidMode), errors.Is(err, util.ErrInvalidTotal):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrActiveSessionExists):
			util.Error(ctx, http.StatusConflict, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// Current godoc
// @Summary 当前会话进度
// @Description 进行中会话的位置指针，缓存未命中时回源关系库
// @Tags 答题
// @Produce json
// @Success 200 {object} util.Response{data=repository.Progress}
// @Failure 404 {object} util.Response "没有进行中的会话"
// @Router /api/exam/current [get]
func (c *ExamController) Current(ctx *gin.Context) {
	id := middleware.GetIdentity(ctx)
	if id == nil {
		util.Unauthorized(ctx)
		return
	}

	progress, err := c.ExamService.CurrentProgress(id.UserID)
	if err != nil {
		if errors.Is(err, util.ErrSessionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, progress)
}

// GetQuestion godoc
// @Summary 按序号取题
// @Tags 答题
// @Produce json
// @Param sessionId path int true "会话ID"
// @Param order path int true "题目序号，从1开始"
// @Success 200 {object} util.Response{data=object}
// @Failure 403 {object} util.Response "会话属于其他用户"
// @Failure 404 {object} util.Response "会话或题目不存在"
// @Router /api/exam/sessions/{sessionId}/questions/{order} [get]
func (c *ExamController) GetQuestion(ctx *gin.Context) {
	id := middleware.GetIdentity(ctx)
	if id == nil {
		util.Unauthorized(ctx)
		return
	}

	sessionID, order, ok := c.sessionAndOrder(ctx)
	if !ok {
		return
	}

	question, total, err := c.ExamService.QuestionAt(id.UserID, sessionID, order)
	if err != nil {
		c.writeExamError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"question":       question,
		"order":          order,
		"totalQuestions": total,
	})
}

// SubmitAnswerRequest 多选题的选项键需按字典序拼接，如 "AC"
// swagger:model SubmitAnswerRequest
type SubmitAnswerRequest struct {
	QuestionID uint   `json:"questionId" binding:"required"`
	Answer     string `json:"answer" binding:"required"`
}

// SubmitAnswer godoc
// @Summary 提交答案
// @Description 重复提交覆盖旧答案；背题模式返回正确答案，考试模式只返回对错
// @Tags 答题
// @Accept  json
// @Produce  json
// @Param sessionId path int true "会话ID"
// @Param body body SubmitAnswerRequest true "题目与作答"
// @Success 200 {object} util.Response{data=service.AnswerResult}
// @Failure 404 {object} util.Response "会话或题目不存在"
// @Failure 409 {object} util.Response "会话已结束"
// @Router /api/exam/sessions/{sessionId}/answers [post]
func (c *ExamController) SubmitAnswer(ctx *gin.Context) {
	id := middleware.GetIdentity(ctx)
	if id == nil {
		util.Unauthorized(ctx)
		return
	}

	sessionID, ok := c.sessionID(ctx)
	if !ok {
		return
	}

	var req SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ExamService.SubmitAnswer(id.UserID, sessionID, req.QuestionID, req.Answer)
	if err != nil {
		c.writeExamError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// Finish godoc
// @Summary 交卷
// @Description 结算得分并生成成绩单；重复交卷返回 409 和已存的成绩
// @Tags 答题
// @Produce json
// @Param sessionId path int true "会话ID"
// @Success 200 {object} util.Response{data=service.FinishResult}
// @Failure 409 {object} util.Response{data=service.FinishResult} "会话已结束"
// @Router /api/exam/sessions/{sessionId}/finish [post]
func (c *ExamController) Finish(ctx *gin.Context) {
	id := middleware.GetIdentity(ctx)
	if id == nil {
		util.Unauthorized(ctx)
		return
	}

	sessionID, ok := c.sessionID(ctx)
	if !ok {
		return
	}

	result, err := c.ExamService.Finish(id.UserID, sessionID)
	if err != nil {
		if errors.Is(err, util.ErrSessionFinished) {
			// 重复交卷时带回已存的成绩，方便客户端直接展示
			if stored, serr := c.ExamService.StoredResult(id.UserID, sessionID); serr == nil {
				ctx.JSON(http.StatusConflict, util.Response{
					Code:    http.StatusConflict,
					Message: err.Error(),
					Data:    stored,
				})
				return
			}
		}
		c.writeExamError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// WrongQuestions godoc
// @Summary 错题本
// @Description 最近一次做错的题目，含正确答案
// @Tags 答题
// @Produce json
// @Success 200 {object} util.Response{data=[]repository.WrongQuestion}
// @Router /api/exam/wrong-questions [get]
func (c *ExamController) WrongQuestions(ctx *gin.Context) {
	id := middleware.GetIdentity(ctx)
	if id == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.ExamService.WrongQuestions(id.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

func (c *ExamController) sessionID(ctx *gin.Context) (uint, bool) {
	raw := ctx.Param("sessionId")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		util.BadRequest(ctx, "invalid session id")
		return 0, false
	}
	return uint(id), true
}

func (c *ExamController) sessionAndOrder(ctx *gin.Context) (uint, int, bool) {
	sessionID, ok := c.sessionID(ctx)
	if !ok {
		return 0, 0, false
	}
	order, err := strconv.Atoi(ctx.Param("order"))
	if err != nil || order < 1 {
		util.BadRequest(ctx, "invalid question order")
		return 0, 0, false
	}
	return sessionID, order, true
}

func (c *ExamController) writeExamError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrSessionNotFound), errors.Is(err, util.ErrQuestionNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrNotSessionOwner):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrSessionFinished):
		util.Error(ctx, http.StatusConflict, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
