package repository

import (
	"lrs_insight_backend/internal/model"
	"lrs_insight_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LearnerRepository struct {
	DB *gorm.DB
}

func NewLearnerRepository(db *gorm.DB) *LearnerRepository {
	return &LearnerRepository{DB: db}
}

// Upsert 按 actor_id 冲突时更新画像和姓名，导入档案时使用
func (r *LearnerRepository) Upsert(profile *model.LearnerProfile) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "actor_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "persona"}),
	}).Create(profile).Error
}

func (r *LearnerRepository) FindByActorID(actorID string) (*model.LearnerProfile, error) {
	var profile model.LearnerProfile
	err := r.DB.Where("actor_id = ?", actorID).First(&profile).Error
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrLearnerNotFound
	}
	return &profile, err
}

func (r *LearnerRepository) FindAll() ([]model.LearnerProfile, error) {
	var profiles []model.LearnerProfile
	err := r.DB.Order("actor_id ASC").Find(&profiles).Error
	return profiles, err
}
