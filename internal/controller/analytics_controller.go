package controller

import (
	"errors"

	"lrs_insight_backend/internal/service"
	"lrs_insight_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	AnalyticsService *service.AnalyticsService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService}
}

// ActivityMetrics godoc
// @Summary 单个活动的聚合指标
// @Description 完成人数、平均成绩、平均尝试次数、平均用时、平均评分和难度档位，无数据的指标返回占位而不是0
// @Tags 分析
// @Produce  json
// @Security BearerAuth
// @Param   activityId path string true "活动ID"
// @Success 200 {object} util.Response{data=model.ActivityMetrics}
// @Failure 404 {object} util.Response "活动不在目录中"
// @Router /api/analytics/activities/{activityId} [get]
func (c *AnalyticsController) ActivityMetrics(ctx *gin.Context) {
	metrics, err := c.AnalyticsService.ActivityMetrics(ctx.Request.Context(), ctx.Param("activityId"))
	if err != nil {
		if errors.Is(err, util.ErrActivityNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, metrics)
}

// Precedence godoc
// @Summary 活动先序统计
// @Description 完成目标活动的人里，有多大比例先完成了其它各个活动
// @Tags 分析
// @Produce  json
// @Security BearerAuth
// @Param   activityId path string true "活动ID"
// @Success 200 {object} util.Response{data=[]model.PrecedenceEntry}
// @Router /api/analytics/activities/{activityId}/precedence [get]
func (c *AnalyticsController) Precedence(ctx *gin.Context) {
	entries, err := c.AnalyticsService.Precedence(ctx.Request.Context(), ctx.Param("activityId"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}

// LearnerMetrics godoc
// @Summary 单个学习者的聚合指标
// @Description 完成率、总学习时长、平均成绩、平均尝试次数和按活动分桶的历史
// @Tags 分析
// @Produce  json
// @Security BearerAuth
// @Param   actorId path string true "学习者标识"
// @Success 200 {object} util.Response{data=model.LearnerMetrics}
// @Router /api/analytics/learners/{actorId} [get]
func (c *AnalyticsController) LearnerMetrics(ctx *gin.Context) {
	metrics, err := c.AnalyticsService.LearnerMetrics(ctx.Request.Context(), ctx.Param("actorId"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, metrics)
}

// Compare godoc
// @Summary 学习者与全体学习者对照
// @Tags 分析
// @Produce  json
// @Security BearerAuth
// @Param   actorId path string true "学习者标识"
// @Success 200 {object} util.Response{data=model.CommunityComparison}
// @Router /api/analytics/learners/{actorId}/comparison [get]
func (c *AnalyticsController) Compare(ctx *gin.Context) {
	comparison, err := c.AnalyticsService.Compare(ctx.Request.Context(), ctx.Param("actorId"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, comparison)
}

// Inactivity godoc
// @Summary 学习者不活跃分析
// @Description 事件时间线上的最大空档，低于阈值时不报告空档
// @Tags 分析
// @Produce  json
// @Security BearerAuth
// @Param   actorId path string true "学习者标识"
// @Success 200 {object} util.Response{data=model.InactivityReport}
// @Router /api/analytics/learners/{actorId}/inactivity [get]
func (c *AnalyticsController) Inactivity(ctx *gin.Context) {
	report, err := c.AnalyticsService.Inactivity(ctx.Request.Context(), ctx.Param("actorId"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// Overview godoc
// @Summary 全体学习者概览
// @Tags 分析
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.CohortOverview}
// @Router /api/analytics/overview [get]
func (c *AnalyticsController) Overview(ctx *gin.Context) {
	overview, err := c.AnalyticsService.Overview(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, overview)
}

// CohortLearners godoc
// @Summary 全体学习者逐人指标
// @Description 量大且不走缓存，供报表导出使用
// @Tags 分析
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=object}
// @Router /api/analytics/learners [get]
func (c *AnalyticsController) CohortLearners(ctx *gin.Context) {
	metrics, err := c.AnalyticsService.CohortLearnerMetrics(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, metrics)
}
