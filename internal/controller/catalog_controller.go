package controller

import (
	"errors"

	"lrs_insight_backend/internal/service"
	"lrs_insight_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	CatalogService *service.CatalogService
}

func NewCatalogController(catalogService *service.CatalogService) *CatalogController {
	return &CatalogController{CatalogService: catalogService}
}

// Import godoc
// @Summary 导入课程目录
// @Description 整体替换现有目录，章节和活动的顺序以请求体为准
// @Tags 目录
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.CatalogImport true "目录内容"
// @Success 201 {object} util.Response{data=object} "导入成功"
// @Failure 400 {object} util.Response "目录为空或活动ID重复"
// @Router /api/catalog [post]
func (c *CatalogController) Import(ctx *gin.Context) {
	var req service.CatalogImport
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	catalog, err := c.CatalogService.Import(ctx.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, util.ErrEmptyCatalog) || errors.Is(err, util.ErrDuplicateActivity) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{
		"sections":   len(catalog.Sections),
		"activities": catalog.ActivityCount(),
	})
}

// Get godoc
// @Summary 查询完整课程目录
// @Tags 目录
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.Catalog}
// @Router /api/catalog [get]
func (c *CatalogController) Get(ctx *gin.Context) {
	catalog, err := c.CatalogService.Get()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, catalog)
}

// GetActivity godoc
// @Summary 查询单个活动
// @Tags 目录
// @Produce  json
// @Security BearerAuth
// @Param   activityId path string true "活动ID"
// @Success 200 {object} util.Response{data=model.Activity}
// @Failure 404 {object} util.Response "活动不在目录中"
// @Router /api/catalog/activities/{activityId} [get]
func (c *CatalogController) GetActivity(ctx *gin.Context) {
	activity, err := c.CatalogService.GetActivity(ctx.Param("activityId"))
	if err != nil {
		if errors.Is(err, util.ErrActivityNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, activity)
}

// UploadMedia godoc
// @Summary 上传活动媒体文件
// @Description 上传讲解视频等媒体，视频会探测时长用于兜底预估学习时间
// @Tags 目录
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   activityId path string true "活动ID"
// @Param   file formData file true "媒体文件"
// @Success 200 {object} util.Response{data=object} "上传成功"
// @Failure 404 {object} util.Response "活动不在目录中"
// @Router /api/catalog/activities/{activityId}/media [post]
func (c *CatalogController) UploadMedia(ctx *gin.Context) {
	activityID := ctx.Param("activityId")

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "缺少文件")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = util.MimeOctetStream
	}

	url, err := c.CatalogService.UploadActivityMedia(
		ctx.Request.Context(), activityID, fileHeader.Filename, file, fileHeader.Size, contentType)
	if err != nil {
		if errors.Is(err, util.ErrActivityNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"url": url})
}
