package controller

import (
	"errors"

	"lrs_insight_backend/internal/service"
	"lrs_insight_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StatementController struct {
	StatementService *service.StatementService
}

func NewStatementController(statementService *service.StatementService) *StatementController {
	return &StatementController{StatementService: statementService}
}

// Ingest godoc
// @Summary 上报学习事件
// @Description 写入一条 xAPI 风格的学习事件，活动ID放在对象扩展字段里
// @Tags 事件
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.StatementRequest true "事件内容"
// @Success 201 {object} util.Response{data=model.Statement} "写入成功"
// @Failure 400 {object} util.Response "事件缺少必要字段"
// @Failure 500 {object} util.Response "服务器内部错误"
// @Router /api/statements [post]
func (c *StatementController) Ingest(ctx *gin.Context) {
	var req service.StatementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	statement, err := c.StatementService.Ingest(ctx.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, util.ErrInvalidStatement) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, statement)
}

// IngestBatch godoc
// @Summary 批量上报学习事件
// @Description 整批校验通过才入库，任何一条不合法都拒绝整批
// @Tags 事件
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body []service.StatementRequest true "事件列表"
// @Success 201 {object} util.Response{data=object} "写入成功"
// @Failure 400 {object} util.Response "存在不合法事件"
// @Router /api/statements/batch [post]
func (c *StatementController) IngestBatch(ctx *gin.Context) {
	var reqs []service.StatementRequest
	if err := ctx.ShouldBindJSON(&reqs); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	count, err := c.StatementService.IngestBatch(ctx.Request.Context(), reqs)
	if err != nil {
		if errors.Is(err, util.ErrInvalidStatement) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{"count": count})
}

// List godoc
// @Summary 查询事件流水
// @Description 按时间升序返回事件，可按动词过滤
// @Tags 事件
// @Produce  json
// @Security BearerAuth
// @Param   verb query string false "动词过滤，如 completed"
// @Success 200 {object} util.Response{data=[]model.Statement}
// @Router /api/statements [get]
func (c *StatementController) List(ctx *gin.Context) {
	statements, err := c.StatementService.List(ctx.Query("verb"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, statements)
}

// ListByActor godoc
// @Summary 查询学习者的事件流水
// @Tags 事件
// @Produce  json
// @Security BearerAuth
// @Param   actorId path string true "学习者标识"
// @Success 200 {object} util.Response{data=[]model.Statement}
// @Router /api/statements/actor/{actorId} [get]
func (c *StatementController) ListByActor(ctx *gin.Context) {
	actorID := ctx.Param("actorId")
	statements, err := c.StatementService.ListByActor(actorID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, statements)
}
