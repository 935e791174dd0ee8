package controller

import (
	"lrs_insight_backend/internal/service"
	"lrs_insight_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RecommendationController struct {
	RecommendationService *service.RecommendationService
}

func NewRecommendationController(recommendationService *service.RecommendationService) *RecommendationController {
	return &RecommendationController{RecommendationService: recommendationService}
}

// Recommend godoc
// @Summary 学习活动推荐
// @Description 按学习者画像加权排序未完成的活动，全部完成时返回高难度复习列表
// @Tags 推荐
// @Produce  json
// @Security BearerAuth
// @Param   actorId path string true "学习者标识"
// @Success 200 {object} util.Response{data=service.RecommendationResponse}
// @Router /api/recommendations/{actorId} [get]
func (c *RecommendationController) Recommend(ctx *gin.Context) {
	resp, err := c.RecommendationService.Recommend(ctx.Request.Context(), ctx.Param("actorId"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}
