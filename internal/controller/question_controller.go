package controller

import (
	"quiz_exam_backend/internal/repository"
	"quiz_exam_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	QuestionRepo *repository.QuestionRepository
}

func NewQuestionController(questionRepo *repository.QuestionRepository) *QuestionController {
	return &QuestionController{QuestionRepo: questionRepo}
}

// Categories godoc
// @Summary 题库分类
// @Description 大类/小类及各自题目数，用于筛选下拉框
// @Tags 题库
// @Produce json
// @Success 200 {object} util.Response{data=[]repository.CategoryCount}
// @Router /api/categories [get]
func (c *QuestionController) Categories(ctx *gin.Context) {
	rows, err := c.QuestionRepo.ListCategories()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}
