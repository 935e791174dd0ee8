package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"lrs_insight_backend/internal/engine"
	"lrs_insight_backend/internal/model"
	"lrs_insight_backend/internal/repository"
	"lrs_insight_backend/internal/util"
	"lrs_insight_backend/pkg/logger"

	"go.uber.org/zap"
)

type CatalogService struct {
	CatalogRepo *repository.CatalogRepository
	Storage     *StorageService
	Snapshot    *SnapshotService
}

func NewCatalogService(
	catalogRepo *repository.CatalogRepository,
	storage *StorageService,
	snapshot *SnapshotService,
) *CatalogService {
	return &CatalogService{
		CatalogRepo: catalogRepo,
		Storage:     storage,
		Snapshot:    snapshot,
	}
}

// ActivityImport 目录导入时的单个活动
type ActivityImport struct {
	ActivityID          string  `json:"activityId" binding:"required"`
	Title               string  `json:"title" binding:"required"`
	Difficulty          float64 `json:"difficulty"`
	DifficultyText      string  `json:"difficultyText"`
	InteractivityType   string  `json:"interactivityType"`
	InteractivityLevel  string  `json:"interactivityLevel"`
	SemanticDensity     string  `json:"semanticDensity"`
	TypicalLearningTime string  `json:"typicalLearningTime"`
}

// SectionImport 目录导入时的单个章节
type SectionImport struct {
	Title      string           `json:"title" binding:"required"`
	Activities []ActivityImport `json:"activities" binding:"required"`
}

// CatalogImport 整个目录导入请求
type CatalogImport struct {
	Sections []SectionImport `json:"sections" binding:"required"`
}

// Import 整体替换课程目录
// 预估时长在导入时就从 typicalLearningTime 解析出来，分析引擎不再重复解析
func (s *CatalogService) Import(ctx context.Context, req *CatalogImport) (*model.Catalog, error) {
	if len(req.Sections) == 0 {
		return nil, util.ErrEmptyCatalog
	}

	seen := make(map[string]bool)
	catalog := &model.Catalog{}
	for i, sec := range req.Sections {
		section := model.Section{
			Title: sec.Title,
			Order: i + 1,
		}
		for j, act := range sec.Activities {
			if seen[act.ActivityID] {
				return nil, fmt.Errorf("%w: %s", util.ErrDuplicateActivity, act.ActivityID)
			}
			seen[act.ActivityID] = true

			section.Activities = append(section.Activities, model.Activity{
				ActivityID:          act.ActivityID,
				Title:               act.Title,
				Difficulty:          act.Difficulty,
				DifficultyText:      act.DifficultyText,
				InteractivityType:   act.InteractivityType,
				InteractivityLevel:  act.InteractivityLevel,
				SemanticDensity:     act.SemanticDensity,
				TypicalLearningTime: act.TypicalLearningTime,
				EstimatedDuration:   engine.ParseISODuration(act.TypicalLearningTime),
				Order:               j + 1,
			})
		}
		catalog.Sections = append(catalog.Sections, section)
	}

	if err := s.CatalogRepo.Replace(catalog); err != nil {
		return nil, err
	}

	s.Snapshot.Invalidate(ctx)
	logger.Log.Info("课程目录导入完成",
		zap.Int("sections", len(catalog.Sections)),
		zap.Int("activities", catalog.ActivityCount()))
	return catalog, nil
}

func (s *CatalogService) Get() (*model.Catalog, error) {
	return s.CatalogRepo.Load()
}

func (s *CatalogService) GetActivity(activityID string) (*model.Activity, error) {
	return s.CatalogRepo.FindActivity(activityID)
}

// UploadActivityMedia 上传活动讲解视频等媒体
// 本地存储的视频会用 ffmpeg 探测时长，活动缺少标注时长时兜底预估分钟数
func (s *CatalogService) UploadActivityMedia(ctx context.Context, activityID, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	activity, err := s.CatalogRepo.FindActivity(activityID)
	if err != nil {
		return "", err
	}

	objectName := fmt.Sprintf("activities/%s/%s", activityID, filename)
	url, err := s.Storage.Upload(ctx, objectName, reader, size, contentType)
	if err != nil {
		return "", err
	}

	estimated := 0
	if local, ok := s.Storage.Provider.(*LocalStorageProvider); ok && isVideoFilename(filename) {
		if info, err := util.ProbeMedia(local.LocalPath(objectName)); err == nil {
			if activity.TypicalLearningTime == "" {
				estimated = info.EstimatedMinutes()
			}
		} else {
			logger.Log.Warn("媒体探测失败", zap.String("activity", activityID), zap.Error(err))
		}
	}

	if err := s.CatalogRepo.UpdateActivityMedia(activityID, url, estimated); err != nil {
		return "", err
	}

	s.Snapshot.Invalidate(ctx)
	return url, nil
}

func isVideoFilename(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range util.AllowedVideoExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
