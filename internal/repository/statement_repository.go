package repository

import (
	"lrs_insight_backend/internal/model"

	"gorm.io/gorm"
)

type StatementRepository struct {
	DB *gorm.DB
}

func NewStatementRepository(db *gorm.DB) *StatementRepository {
	return &StatementRepository{DB: db}
}

func (r *StatementRepository) Create(statement *model.Statement) error {
	return r.DB.Create(statement).Error
}

// CreateBatch 批量写入事件，导入场景使用
func (r *StatementRepository) CreateBatch(statements []model.Statement) error {
	if len(statements) == 0 {
		return nil
	}
	return r.DB.CreateInBatches(statements, 200).Error
}

// FindAll 按时间升序取全部事件，分析引擎构建索引时使用
func (r *StatementRepository) FindAll() ([]model.Statement, error) {
	var statements []model.Statement
	err := r.DB.Order("timestamp ASC").Find(&statements).Error
	return statements, err
}

func (r *StatementRepository) FindByActor(actorID string) ([]model.Statement, error) {
	var statements []model.Statement
	err := r.DB.Where("actor_id = ?", actorID).
		Order("timestamp ASC").
		Find(&statements).Error
	return statements, err
}

func (r *StatementRepository) FindByVerb(verb model.Verb) ([]model.Statement, error) {
	var statements []model.Statement
	err := r.DB.Where("verb = ?", verb).
		Order("timestamp ASC").
		Find(&statements).Error
	return statements, err
}
