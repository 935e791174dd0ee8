package repository

import (
	"lrs_insight_backend/internal/model"
	"lrs_insight_backend/internal/util"

	"gorm.io/gorm"
)

type CatalogRepository struct {
	DB *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

// Load 读取完整目录，章节和活动都按 order 排好
func (r *CatalogRepository) Load() (*model.Catalog, error) {
	var sections []model.Section
	err := r.DB.Preload("Activities", func(db *gorm.DB) *gorm.DB {
		return db.Order("activities.order ASC")
	}).Order("sections.order ASC").Find(&sections).Error
	if err != nil {
		return nil, err
	}
	return &model.Catalog{Sections: sections}, nil
}

// Replace 用新目录整体替换旧目录，导入时走事务
func (r *CatalogRepository) Replace(catalog *model.Catalog) error {
	if catalog == nil || len(catalog.Sections) == 0 {
		return util.ErrEmptyCatalog
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.Activity{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&model.Section{}).Error; err != nil {
			return err
		}
		for i := range catalog.Sections {
			if err := tx.Create(&catalog.Sections[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *CatalogRepository) FindActivity(activityID string) (*model.Activity, error) {
	var activity model.Activity
	err := r.DB.Where("activity_id = ?", activityID).First(&activity).Error
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrActivityNotFound
	}
	return &activity, err
}

func (r *CatalogRepository) UpdateActivityMedia(activityID, mediaURL string, estimatedMinutes int) error {
	updates := map[string]interface{}{"media_url": mediaURL}
	if estimatedMinutes > 0 {
		updates["estimated_duration"] = estimatedMinutes
	}
	return r.DB.Model(&model.Activity{}).
		Where("activity_id = ?", activityID).
		Updates(updates).Error
}
