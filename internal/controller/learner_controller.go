package controller

import (
	"errors"

	"lrs_insight_backend/internal/service"
	"lrs_insight_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LearnerController struct {
	LearnerService *service.LearnerService
}

func NewLearnerController(learnerService *service.LearnerService) *LearnerController {
	return &LearnerController{LearnerService: learnerService}
}

// Import godoc
// @Summary 导入学习者档案
// @Description 批量导入学习者画像，已存在的按 actorId 更新
// @Tags 学习者
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body []service.LearnerImport true "档案列表"
// @Success 201 {object} util.Response{data=object} "导入成功"
// @Router /api/learners [post]
func (c *LearnerController) Import(ctx *gin.Context) {
	var reqs []service.LearnerImport
	if err := ctx.ShouldBindJSON(&reqs); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	count, err := c.LearnerService.ImportProfiles(ctx.Request.Context(), reqs)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{"count": count})
}

// List godoc
// @Summary 查询全部学习者档案
// @Tags 学习者
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.LearnerProfile}
// @Router /api/learners [get]
func (c *LearnerController) List(ctx *gin.Context) {
	profiles, err := c.LearnerService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, profiles)
}

// Get godoc
// @Summary 查询单个学习者档案
// @Tags 学习者
// @Produce  json
// @Security BearerAuth
// @Param   actorId path string true "学习者标识"
// @Success 200 {object} util.Response{data=model.LearnerProfile}
// @Failure 404 {object} util.Response "学习者不存在"
// @Router /api/learners/{actorId} [get]
func (c *LearnerController) Get(ctx *gin.Context) {
	profile, err := c.LearnerService.Get(ctx.Param("actorId"))
	if err != nil {
		if errors.Is(err, util.ErrLearnerNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, profile)
}
